package alphabet

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
	"golang.org/x/text/language"

	"github.com/mcoot/cwrules/internal/model"
)

type AlphabetSuite struct {
	suite.Suite
	english *Alphabet
	catalan *Alphabet
}

func TestAlphabetSuite(t *testing.T) {
	suite.Run(t, new(AlphabetSuite))
}

func (s *AlphabetSuite) SetupTest() {
	s.english = English()
	s.catalan = Catalan()
}

// Tokenize tests

func (s *AlphabetSuite) TestTokenizeEnglishWord() {
	w, err := s.english.Tokenize("COOKIE")
	s.Require().NoError(err)
	s.Equal(model.MachineWord{3, 15, 15, 11, 9, 5}, w)
}

func (s *AlphabetSuite) TestTokenizeLowerCaseIsDesignatedBlank() {
	w, err := s.english.Tokenize("COoKIE")
	s.Require().NoError(err)
	s.Equal(model.MachineWord{3, 15, 241, 11, 9, 5}, w)
}

func (s *AlphabetSuite) TestTokenizeBlankAndPlayThrough() {
	w, err := s.english.Tokenize("A?.B")
	s.Require().NoError(err)
	s.Equal(model.MachineWord{1, 0, 0, 2}, w)
}

func (s *AlphabetSuite) TestTokenizeCatalanDigraphs() {
	w, err := s.catalan.Tokenize("AL·LOQUIMIQUES")
	s.Require().NoError(err)
	s.Len(w, 10)
	s.Equal(model.MachineWord{1, 13, 17, 19, 10, 14, 10, 19, 6, 21}, w)
}

func (s *AlphabetSuite) TestTokenizeCatalanLowerCaseDigraph() {
	w, err := s.catalan.Tokenize("l·lA")
	s.Require().NoError(err)
	s.Equal(model.MachineWord{13 | 0x80, 1}, w)
}

func (s *AlphabetSuite) TestTokenizeCatalanRack() {
	w, err := s.catalan.Tokenize("AL·LQUESOI")
	s.Require().NoError(err)
	s.Equal(model.MachineWord{1, 13, 19, 6, 21, 17, 10}, w)
}

func (s *AlphabetSuite) TestTokenizeFailsOnUnknownCharacter() {
	_, err := s.english.Tokenize("CO1KIE")
	s.Require().Error(err)

	var encErr *EncodingError
	s.Require().True(errors.As(err, &encErr))
	s.Equal("CO1KIE", encErr.Text)
	s.Equal(2, encErr.Offset)
	s.ErrorIs(err, model.ErrInvalidRune)
}

func (s *AlphabetSuite) TestTokenizeDoesNotSkipPartialDigraph() {
	// A lone "L·" is neither L·L nor a pair of tiles
	_, err := s.catalan.Tokenize("L·")
	s.ErrorIs(err, model.ErrInvalidRune)
}

func (s *AlphabetSuite) TestTokenizeNormalizesCombiningMarks() {
	w, err := German().Tokenize("A\u0308")
	s.Require().NoError(err)
	s.Equal(model.MachineWord{2}, w)
}

func (s *AlphabetSuite) TestTokenizeEmptyText() {
	w, err := s.english.Tokenize("")
	s.Require().NoError(err)
	s.Empty(w)
}

func (s *AlphabetSuite) TestTokenizeToRunesKeepsCase() {
	runes, err := s.catalan.TokenizeToRunes("ny·l·lQU")
	s.Require().Error(err) // the middle dot alone is not a tile
	s.Nil(runes)

	runes, err = s.catalan.TokenizeToRunes("nyL·LQu")
	s.Require().NoError(err)
	s.Equal([]string{"ny", "L·L", "Qu"}, runes)
}

// Decode tests

func (s *AlphabetSuite) TestDecodeRendersZeroAsBlank() {
	s.Equal("CO?KIe", s.english.Decode(model.MachineWord{3, 15, 0, 11, 9, 5 | 0x80}))
}

func (s *AlphabetSuite) TestDecodePlayedRendersZeroAsPlayThrough() {
	s.Equal("OX.P", s.english.DecodePlayed(model.PlayedTiles{15, 24, 0, 16}))
}

func (s *AlphabetSuite) TestDecodeCatalanBlankDigraph() {
	s.Equal("QUl·lny", s.catalan.Decode(model.MachineWord{19, 13 | 0x80, 16 | 0x80}))
}

func (s *AlphabetSuite) TestRoundTripAllAlphabets() {
	for _, name := range Names() {
		a := FromName(name)
		for i, le := range a.Letters() {
			if i == 0 {
				continue
			}
			text := le.Rune + a.lower(le.Rune) + BlankRune
			w, err := a.Tokenize(text)
			s.Require().NoError(err, "%s %s", name, le.Rune)
			s.Equal(model.MachineWord{model.MachineLetter(i), model.MachineLetter(i).Blank(), 0}, w, "%s %s", name, le.Rune)
			s.Equal(text, a.Decode(w), "%s %s", name, le.Rune)
		}
	}
}

func (s *AlphabetSuite) TestCanonicalize() {
	out, err := s.english.Canonicalize("qUiZ?")
	s.Require().NoError(err)
	s.Equal("qUiZ?", out)

	out, err = German().Canonicalize("ÄRGER")
	s.Require().NoError(err)
	s.Equal("ÄRGER", out)
}

// ScoreOf tests

func (s *AlphabetSuite) TestScoreOf() {
	s.Equal(10, s.english.ScoreOf(17))     // Q
	s.Equal(0, s.english.ScoreOf(0))       // blank
	s.Equal(0, s.english.ScoreOf(17|0x80)) // blank designated Q
	s.Equal(0, s.english.ScoreOf(100))     // out of range
	s.Equal(10, s.catalan.ScoreOf(13))     // L·L
	s.Equal(8, s.catalan.ScoreOf(19))      // QU
	s.Equal(0, Norwegian().ScoreOf(2))     // Ä has no tiles
	s.Equal(4, SuperEnglish().ScoreOf(23)) // W
	s.Equal(8, French().ScoreOf(10))       // J
	s.Equal(6, German().ScoreOf(2))        // Ä
	s.Equal(1, s.english.ScoreOf(model.MachineLetter(1)))
}

// Lookup tests

func (s *AlphabetSuite) TestFromNameDefaultsToEnglish() {
	s.Same(English(), FromName("klingon"))
	s.Same(Catalan(), FromName("Catalan"))
}

func (s *AlphabetSuite) TestLookupUnknown() {
	_, err := Lookup("klingon")
	s.ErrorIs(err, model.ErrUnknownAlphabet)
}

func (s *AlphabetSuite) TestNames() {
	s.Equal([]string{"catalan", "english", "english_super", "french", "german", "norwegian"}, Names())
}

func (s *AlphabetSuite) TestLetterForKey() {
	ml, ok := s.english.LetterForKey("q")
	s.True(ok)
	s.Equal(model.MachineLetter(17), ml)

	ml, ok = s.catalan.LetterForKey("w")
	s.True(ok)
	s.Equal(model.MachineLetter(13), ml)

	ml, ok = s.catalan.LetterForKey("K")
	s.True(ok)
	s.Equal(model.MachineLetter(4), ml)

	_, ok = s.english.LetterForKey("?")
	s.False(ok)
	_, ok = s.english.LetterForKey("1")
	s.False(ok)
}

func (s *AlphabetSuite) TestLongestRune() {
	s.Equal(1, s.english.LongestRune())
	s.Equal(3, s.catalan.LongestRune())
}

func (s *AlphabetSuite) TestDistribution() {
	s.Equal(100, s.english.TileCount())
	s.Equal(100, s.catalan.TileCount())
	s.Equal(200, SuperEnglish().TileCount())

	dist := s.english.Distribution()
	s.Equal(2, dist[0])
	s.Equal(12, dist[5])
	_, hasZero := Norwegian().Distribution()[2]
	s.False(hasZero)
}

func (s *AlphabetSuite) TestNewRejectsBadTables() {
	_, err := New("bad", language.English, []Letter{{Rune: "A"}})
	s.Error(err)

	_, err = New("dup", language.English, []Letter{blank(2), l("A", 1, 1, 0), l("A", 1, 1, 0)})
	s.Error(err)
}
