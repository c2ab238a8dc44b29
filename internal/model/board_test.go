package model_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/cwrules/internal/alphabet"
	"github.com/mcoot/cwrules/internal/model"
	"github.com/mcoot/cwrules/internal/testutil"
)

type BoardSuite struct {
	suite.Suite
	board *model.Board
}

func TestBoardSuite(t *testing.T) {
	suite.Run(t, new(BoardSuite))
}

func (s *BoardSuite) SetupTest() {
	s.board = model.NewBoard(model.StandardLayout)
}

func (s *BoardSuite) TestNewBoardIsEmpty() {
	s.Equal(15, s.board.Dim())
	s.True(s.board.IsEmpty())
	s.Equal(0, s.board.TileCount())
}

func (s *BoardSuite) TestLetterAtOutOfBounds() {
	ml, ok := s.board.LetterAt(-1, 0)
	s.False(ok)
	s.Equal(model.EmptySquare, ml)

	_, ok = s.board.LetterAt(0, 15)
	s.False(ok)

	_, ok = s.board.LetterAt(14, 14)
	s.True(ok)
}

func (s *BoardSuite) TestPlaceAndRemove() {
	t := model.Tile{Row: 7, Col: 7, Letter: 1}
	s.Require().NoError(s.board.Place(t))
	s.False(s.board.IsEmpty())
	s.True(s.board.HasLetter(7, 7))

	s.Require().NoError(s.board.Remove(t))
	s.True(s.board.IsEmpty())
	s.False(s.board.HasLetter(7, 7))
}

func (s *BoardSuite) TestRemoveKeepsOtherTiles() {
	s.Require().NoError(s.board.Place(model.Tile{Row: 0, Col: 0, Letter: 1}))
	s.Require().NoError(s.board.Place(model.Tile{Row: 0, Col: 1, Letter: 2}))
	s.Require().NoError(s.board.Remove(model.Tile{Row: 0, Col: 0}))
	s.False(s.board.IsEmpty())
}

func (s *BoardSuite) TestPlaceOutOfBounds() {
	err := s.board.Place(model.Tile{Row: 15, Col: 0, Letter: 1})
	s.ErrorIs(err, model.ErrInvalidPosition)
}

func (s *BoardSuite) TestPlaceRefusesUndesignatedBlank() {
	err := s.board.Place(model.Tile{Row: 7, Col: 7, Letter: model.BlankLetter})
	s.ErrorIs(err, model.ErrUndesignatedBlank)
	s.True(s.board.IsEmpty())
	s.False(s.board.HasLetter(7, 7))
}

func (s *BoardSuite) TestLoadLayout() {
	board := testutil.LoadBoard(testutil.RadiosRows)
	s.False(board.IsEmpty())

	ml, ok := board.LetterAt(0, 9)
	s.True(ok)
	s.Equal(model.MachineLetter(18), ml) // R

	ml, _ = board.LetterAt(5, 4)
	s.Equal(model.MachineLetter(15).Blank(), ml) // o

	s.Equal(31, board.TileCount())
}

func (s *BoardSuite) TestLoadLayoutMultiCodepointRunes() {
	rows := make([]string, 15)
	for i := range rows {
		rows[i] = "               "
	}
	rows[7] = "      L·LA       "
	s.Require().NoError(s.board.LoadLayout(rows, alphabet.Catalan()))

	ml, _ := s.board.LetterAt(7, 6)
	s.Equal(model.MachineLetter(13), ml)
	ml, _ = s.board.LetterAt(7, 7)
	s.Equal(model.MachineLetter(1), ml)
}

func (s *BoardSuite) TestLoadLayoutWrongSize() {
	err := s.board.LoadLayout([]string{"A"}, alphabet.English())
	s.ErrorIs(err, model.ErrInvalidLayout)

	rows := make([]string, 15)
	for i := range rows {
		rows[i] = "   "
	}
	err = s.board.LoadLayout(rows, alphabet.English())
	s.ErrorIs(err, model.ErrInvalidLayout)
}

func (s *BoardSuite) TestLoadLayoutBadRune() {
	rows := append([]string(nil), testutil.RadiosRows...)
	rows[14] = "1              "
	err := s.board.LoadLayout(rows, alphabet.English())
	s.ErrorIs(err, model.ErrInvalidRune)
}

func (s *BoardSuite) TestCloneIsIndependent() {
	board := testutil.LoadBoard(testutil.RadiosRows)
	clone := board.Clone()
	s.Require().NoError(clone.Place(model.Tile{Row: 14, Col: 14, Letter: 1}))

	s.True(clone.HasLetter(14, 14))
	s.False(board.HasLetter(14, 14))
}

func (s *BoardSuite) TestJSONRoundTrip() {
	board := testutil.LoadBoard(testutil.PacifyingRows)

	data, err := json.Marshal(board)
	s.Require().NoError(err)

	var decoded model.Board
	s.Require().NoError(json.Unmarshal(data, &decoded))
	s.Equal(board.Letters(), decoded.Letters())
	s.Equal(model.LayoutStandard, decoded.Layout().Name())
	s.Equal(model.TripleWord, decoded.BonusAt(0, 0))
}

func (s *BoardSuite) TestUnmarshalRejectsShortLetters() {
	var b model.Board
	err := json.Unmarshal([]byte(`{"layout":"x","bonuses":["  ","  "],"letters":[1]}`), &b)
	s.ErrorIs(err, model.ErrInvalidLayout)
}
