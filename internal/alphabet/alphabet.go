package alphabet

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/mcoot/cwrules/internal/model"
)

// BlankRune is the display text of an undesignated blank tile
const BlankRune = "?"

// PlayThroughRune marks a square a move plays through
const PlayThroughRune = "."

// Letter describes one tile of an alphabet
type Letter struct {
	Rune     string `json:"rune"`
	Score    int    `json:"score"`
	Count    int    `json:"count"`
	Vowel    bool   `json:"vowel"`
	Category int    `json:"category"` // -1 hides the tile from detail views
	Shortcut string `json:"shortcut,omitempty"`
}

// Alphabet is an immutable tile set with the lookups needed to move between
// rune text and machine letters. Index 0 is always the blank.
type Alphabet struct {
	name      string
	tag       language.Tag
	letters   []Letter
	runes     map[string]model.MachineLetter
	shortcuts map[string]model.MachineLetter
	longest   int
}

// New builds an alphabet. letters[0] must be the blank.
func New(name string, tag language.Tag, letters []Letter) (*Alphabet, error) {
	if len(letters) == 0 || letters[0].Rune != BlankRune {
		return nil, fmt.Errorf("alphabet %s: first letter must be the blank", name)
	}
	if len(letters) > int(model.BlankBit) {
		return nil, fmt.Errorf("alphabet %s: %d letters exceeds %d", name, len(letters), model.BlankBit)
	}

	a := &Alphabet{
		name:      name,
		tag:       tag,
		letters:   append([]Letter(nil), letters...),
		runes:     make(map[string]model.MachineLetter, len(letters)),
		shortcuts: make(map[string]model.MachineLetter),
	}
	for i, l := range a.letters {
		ml := model.MachineLetter(i)
		if _, dup := a.runes[l.Rune]; dup {
			return nil, fmt.Errorf("alphabet %s: duplicate rune %q", name, l.Rune)
		}
		a.runes[l.Rune] = ml
		if l.Shortcut != "" {
			a.shortcuts[l.Shortcut] = ml
		}
		if n := utf8.RuneCountInString(l.Rune); n > a.longest {
			a.longest = n
		}
	}
	return a, nil
}

func mustNew(name string, tag language.Tag, letters []Letter) *Alphabet {
	a, err := New(name, tag, letters)
	if err != nil {
		panic(err)
	}
	return a
}

// Name returns the alphabet name
func (a *Alphabet) Name() string { return a.name }

// Size returns the number of letters including the blank
func (a *Alphabet) Size() int { return len(a.letters) }

// LongestRune returns the codepoint length of the longest rune
func (a *Alphabet) LongestRune() int { return a.longest }

// Letters returns a copy of the letter table in machine-letter order
func (a *Alphabet) Letters() []Letter {
	return append([]Letter(nil), a.letters...)
}

// Letter returns the table entry behind a machine letter, ignoring any blank
// designation
func (a *Alphabet) Letter(ml model.MachineLetter) (Letter, bool) {
	idx := int(ml.Unblank())
	if idx >= len(a.letters) {
		return Letter{}, false
	}
	return a.letters[idx], true
}

// ScoreOf returns the face value of a tile. Blanks, designated or not, and
// unknown codes are worth nothing.
func (a *Alphabet) ScoreOf(ml model.MachineLetter) int {
	if ml == model.BlankLetter || ml.IsDesignatedBlank() || int(ml) >= len(a.letters) {
		return 0
	}
	return a.letters[ml].Score
}

// Vowel reports whether the letter is a vowel
func (a *Alphabet) Vowel(ml model.MachineLetter) bool {
	l, ok := a.Letter(ml)
	return ok && l.Vowel
}

// Distribution returns the bag count of each machine letter
func (a *Alphabet) Distribution() map[model.MachineLetter]int {
	dist := make(map[model.MachineLetter]int, len(a.letters))
	for i, l := range a.letters {
		if l.Count > 0 {
			dist[model.MachineLetter(i)] = l.Count
		}
	}
	return dist
}

// TileCount returns the total number of tiles in the bag
func (a *Alphabet) TileCount() int {
	n := 0
	for _, l := range a.letters {
		n += l.Count
	}
	return n
}

// LetterForKey maps a typed key, either a rune or its input shortcut, to a
// letter. Case is ignored. The blank has no key.
func (a *Alphabet) LetterForKey(key string) (model.MachineLetter, bool) {
	upper := a.upper(key)
	if ml, ok := a.runes[upper]; ok && ml != model.BlankLetter {
		return ml, true
	}
	if ml, ok := a.shortcuts[upper]; ok {
		return ml, true
	}
	return 0, false
}

// HasKey reports whether a typed key names a letter
func (a *Alphabet) HasKey(key string) bool {
	_, ok := a.LetterForKey(key)
	return ok
}

// RuneOf renders one letter: the blank glyph for an undesignated blank and
// lower case for a designated one
func (a *Alphabet) RuneOf(ml model.MachineLetter) string {
	l, ok := a.Letter(ml)
	if !ok {
		return BlankRune
	}
	if ml.IsDesignatedBlank() {
		return a.lower(l.Rune)
	}
	return l.Rune
}

// Decode renders a rack-like word; zeros are blanks
func (a *Alphabet) Decode(w model.MachineWord) string {
	var sb strings.Builder
	for _, ml := range w {
		sb.WriteString(a.RuneOf(ml))
	}
	return sb.String()
}

// DecodePlayed renders move letters; zeros are play-through squares
func (a *Alphabet) DecodePlayed(p model.PlayedTiles) string {
	var sb strings.Builder
	for _, ml := range p {
		if ml == model.PlayThrough {
			sb.WriteString(PlayThroughRune)
			continue
		}
		sb.WriteString(a.RuneOf(ml))
	}
	return sb.String()
}

// Canonicalize normalizes blank casing by round-tripping the text
func (a *Alphabet) Canonicalize(text string) (string, error) {
	w, err := a.Tokenize(text)
	if err != nil {
		return "", err
	}
	return a.Decode(w), nil
}

func (a *Alphabet) upper(s string) string {
	return cases.Upper(a.tag).String(s)
}

func (a *Alphabet) lower(s string) string {
	return cases.Lower(a.tag).String(s)
}

// Tokenize converts rune text to machine letters by greedy longest match.
// Upper case is a normal tile, lower case a designated blank, '?' a blank and
// '.' a play-through square.
func (a *Alphabet) Tokenize(text string) (model.MachineWord, error) {
	var w model.MachineWord
	err := a.scan(text, func(_ string, ml model.MachineLetter) {
		w = append(w, ml)
	})
	if err != nil {
		return nil, err
	}
	return w, nil
}

// TokenizePlayed tokenizes move text such as "OX.P"
func (a *Alphabet) TokenizePlayed(text string) (model.PlayedTiles, error) {
	w, err := a.Tokenize(text)
	if err != nil {
		return nil, err
	}
	return model.PlayedTiles(w), nil
}

// TokenizeToRunes splits text into the rune strings that would be matched,
// unchanged
func (a *Alphabet) TokenizeToRunes(text string) ([]string, error) {
	var runes []string
	err := a.scan(text, func(matched string, _ model.MachineLetter) {
		runes = append(runes, matched)
	})
	if err != nil {
		return nil, err
	}
	return runes, nil
}

func (a *Alphabet) scan(text string, emit func(string, model.MachineLetter)) error {
	cps := []rune(norm.NFC.String(text))
	for i := 0; i < len(cps); {
		n := a.matchAt(cps, i, emit)
		if n == 0 {
			return &EncodingError{Text: text, Offset: i}
		}
		i += n
	}
	return nil
}

// matchAt emits the longest tile starting at cps[i] and returns its length
// in codepoints, or 0 when nothing matches
func (a *Alphabet) matchAt(cps []rune, i int, emit func(string, model.MachineLetter)) int {
	longest := min(a.longest, len(cps)-i)
	for n := longest; n > 0; n-- {
		sub := string(cps[i : i+n])
		if sub == PlayThroughRune {
			emit(sub, model.PlayThrough)
			return n
		}
		if ml, ok := a.runes[sub]; ok {
			emit(sub, ml)
			return n
		}
		if ml, ok := a.runes[a.upper(sub)]; ok && ml != model.BlankLetter {
			emit(sub, ml.Blank())
			return n
		}
	}
	return 0
}
