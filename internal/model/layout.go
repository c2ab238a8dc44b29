package model

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// BonusType is the premium carried by a board square
type BonusType uint8

const (
	NoBonus BonusType = iota
	DoubleLetter
	TripleLetter
	QuadrupleLetter
	DoubleWord
	TripleWord
	QuadrupleWord
	StartingSquare
)

var bonusChars = map[rune]BonusType{
	' ':  NoBonus,
	'\'': DoubleLetter,
	'"':  TripleLetter,
	'^':  QuadrupleLetter,
	'-':  DoubleWord,
	'=':  TripleWord,
	'~':  QuadrupleWord,
	'*':  StartingSquare,
}

// LetterMultiplier returns the multiplier applied to a fresh tile's value
func (b BonusType) LetterMultiplier() int {
	switch b {
	case DoubleLetter:
		return 2
	case TripleLetter:
		return 3
	case QuadrupleLetter:
		return 4
	default:
		return 1
	}
}

// WordMultiplier returns the multiplier applied to words through a fresh tile
func (b BonusType) WordMultiplier() int {
	switch b {
	case DoubleWord:
		return 2
	case TripleWord:
		return 3
	case QuadrupleWord:
		return 4
	default:
		return 1
	}
}

// String returns the layout character for the bonus
func (b BonusType) String() string {
	for ch, bt := range bonusChars {
		if bt == b {
			return string(ch)
		}
	}
	return "?"
}

// Layout is an immutable square grid of bonus squares
type Layout struct {
	name    string
	dim     int
	rows    []string
	squares []BonusType
}

// ParseLayout builds a layout from one string per row
func ParseLayout(name string, rows []string) (*Layout, error) {
	dim := len(rows)
	if dim == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrInvalidLayout)
	}
	squares := make([]BonusType, 0, dim*dim)
	for r, row := range rows {
		if n := utf8.RuneCountInString(row); n != dim {
			return nil, fmt.Errorf("%w: row %d has %d squares, want %d", ErrInvalidLayout, r, n, dim)
		}
		for _, ch := range row {
			bt, ok := bonusChars[ch]
			if !ok {
				return nil, fmt.Errorf("%w: unknown bonus %q in row %d", ErrInvalidLayout, ch, r)
			}
			squares = append(squares, bt)
		}
	}
	return &Layout{
		name:    name,
		dim:     dim,
		rows:    append([]string(nil), rows...),
		squares: squares,
	}, nil
}

func mustParseLayout(name string, rows []string) *Layout {
	l, err := ParseLayout(name, rows)
	if err != nil {
		panic(err)
	}
	return l
}

// Name returns the layout name
func (l *Layout) Name() string { return l.name }

// Dim returns the board dimension
func (l *Layout) Dim() int { return l.dim }

// Rows returns a copy of the source rows
func (l *Layout) Rows() []string { return append([]string(nil), l.rows...) }

// At returns the bonus at a square; out of bounds is NoBonus
func (l *Layout) At(row, col int) BonusType {
	if row < 0 || col < 0 || row >= l.dim || col >= l.dim {
		return NoBonus
	}
	return l.squares[row*l.dim+col]
}

// Center returns the square every opening play must cover
func (l *Layout) Center() Position {
	return Position{Row: l.dim / 2, Col: l.dim / 2}
}

// mirror completes a symmetric layout from its top half including the
// middle row
func mirror(top []string) []string {
	rows := append([]string(nil), top...)
	for i := len(top) - 2; i >= 0; i-- {
		rows = append(rows, top[i])
	}
	return rows
}

// Built-in layout names
const (
	LayoutStandard = "standard"
	LayoutSuper    = "super"
)

// StandardLayout is the 15x15 crossword board
var StandardLayout = mustParseLayout(LayoutStandard, mirror([]string{
	`=  '   =   '  =`,
	` -   "   "   - `,
	`  -   ' '   -  `,
	`'  -   '   -  '`,
	`    -     -    `,
	` "   "   "   " `,
	`  '   ' '   '  `,
	`=  '   -   '  =`,
}))

// SuperLayout is the 21x21 board
var SuperLayout = mustParseLayout(LayoutSuper, mirror([]string{
	`~  '   =  '  =   '  ~`,
	` -  "   -   -   "  - `,
	`  -  ^   - -   ^  -  `,
	`'  -  '   -   '  -  '`,
	` "  -   "   "   -  " `,
	`  ^  -   ' '   -  ^  `,
	`   '  -   '   -  '   `,
	`=      -     -      =`,
	` -  "   "   "   "  - `,
	`  -  '   ' '   '  -  `,
	`'  =  '   -   '  =  '`,
}))

// LayoutByName returns a built-in layout
func LayoutByName(name string) (*Layout, error) {
	switch strings.ToLower(name) {
	case "", LayoutStandard:
		return StandardLayout, nil
	case LayoutSuper:
		return SuperLayout, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownLayout, name)
	}
}
