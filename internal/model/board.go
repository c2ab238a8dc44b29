package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Position identifies a cell on the board
type Position struct {
	Row int `json:"row"` // 0-indexed from top
	Col int `json:"col"` // 0-indexed from left
}

// LetterEncoder converts rune text into tiles
type LetterEncoder interface {
	Tokenize(text string) (MachineWord, error)
}

// Board is a square grid of letters over a bonus layout. Letters are stored
// row-major at row*dim+col; EmptySquare marks an unoccupied cell.
type Board struct {
	layout  *Layout
	letters []MachineLetter
	empty   bool
}

// NewBoard creates an empty board for a layout
func NewBoard(layout *Layout) *Board {
	return &Board{
		layout:  layout,
		letters: make([]MachineLetter, layout.Dim()*layout.Dim()),
		empty:   true,
	}
}

// Dim returns the board dimension
func (b *Board) Dim() int {
	return b.layout.Dim()
}

// Layout returns the bonus layout
func (b *Board) Layout() *Layout {
	return b.layout
}

// IsEmpty reports whether no cell holds a letter
func (b *Board) IsEmpty() bool {
	return b.empty
}

// InBounds reports whether a cell lies on the board
func (b *Board) InBounds(row, col int) bool {
	dim := b.Dim()
	return row >= 0 && row < dim && col >= 0 && col < dim
}

// LetterAt returns the letter at a cell. ok is false when the cell is off
// the board.
func (b *Board) LetterAt(row, col int) (MachineLetter, bool) {
	if !b.InBounds(row, col) {
		return EmptySquare, false
	}
	return b.letters[row*b.Dim()+col], true
}

// HasLetter reports whether an on-board cell is occupied
func (b *Board) HasLetter(row, col int) bool {
	ml, ok := b.LetterAt(row, col)
	return ok && ml != EmptySquare
}

// BonusAt returns the bonus square type of a cell
func (b *Board) BonusAt(row, col int) BonusType {
	return b.layout.At(row, col)
}

// Place puts a tile on the board. An undesignated blank shares its code
// with EmptySquare, so it is refused rather than stored as a hole.
func (b *Board) Place(t Tile) error {
	if !b.InBounds(t.Row, t.Col) {
		return fmt.Errorf("%w: (%d, %d)", ErrInvalidPosition, t.Row, t.Col)
	}
	if t.Letter == EmptySquare {
		return fmt.Errorf("%w: (%d, %d)", ErrUndesignatedBlank, t.Row, t.Col)
	}
	b.letters[t.Row*b.Dim()+t.Col] = t.Letter
	b.empty = false
	return nil
}

// Remove clears a tile's cell
func (b *Board) Remove(t Tile) error {
	if !b.InBounds(t.Row, t.Col) {
		return fmt.Errorf("%w: (%d, %d)", ErrInvalidPosition, t.Row, t.Col)
	}
	b.letters[t.Row*b.Dim()+t.Col] = EmptySquare
	b.recomputeEmpty()
	return nil
}

func (b *Board) recomputeEmpty() {
	b.empty = true
	for _, ml := range b.letters {
		if ml != EmptySquare {
			b.empty = false
			return
		}
	}
}

// LoadLayout overwrites every cell from rows of rune text. A space is an empty
// cell; other text is tokenized so multi-codepoint tiles occupy one cell.
func (b *Board) LoadLayout(rows []string, enc LetterEncoder) error {
	dim := b.Dim()
	if len(rows) != dim {
		return fmt.Errorf("%w: %d rows, want %d", ErrInvalidLayout, len(rows), dim)
	}
	letters := make([]MachineLetter, 0, dim*dim)
	for r, row := range rows {
		cells, err := tokenizeRow(row, enc)
		if err != nil {
			return err
		}
		if len(cells) != dim {
			return fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidLayout, r, len(cells), dim)
		}
		letters = append(letters, cells...)
	}
	b.letters = letters
	b.recomputeEmpty()
	return nil
}

func tokenizeRow(row string, enc LetterEncoder) ([]MachineLetter, error) {
	var cells []MachineLetter
	for i, chunk := range strings.Split(row, " ") {
		if i > 0 {
			cells = append(cells, EmptySquare)
		}
		if chunk == "" {
			continue
		}
		w, err := enc.Tokenize(chunk)
		if err != nil {
			return nil, err
		}
		cells = append(cells, w...)
	}
	return cells, nil
}

// Letters returns a copy of the row-major letter grid
func (b *Board) Letters() []MachineLetter {
	return append([]MachineLetter(nil), b.letters...)
}

// Clone returns an independent copy sharing the immutable layout
func (b *Board) Clone() *Board {
	return &Board{
		layout:  b.layout,
		letters: b.Letters(),
		empty:   b.empty,
	}
}

// TileCount returns the number of occupied cells
func (b *Board) TileCount() int {
	n := 0
	for _, ml := range b.letters {
		if ml != EmptySquare {
			n++
		}
	}
	return n
}

type boardJSON struct {
	Layout  string   `json:"layout"`
	Bonuses []string `json:"bonuses"`
	Letters []int    `json:"letters"`
}

// MarshalJSON encodes the layout and letters
func (b *Board) MarshalJSON() ([]byte, error) {
	letters := make([]int, len(b.letters))
	for i, ml := range b.letters {
		letters[i] = int(ml)
	}
	return json.Marshal(boardJSON{
		Layout:  b.layout.Name(),
		Bonuses: b.layout.Rows(),
		Letters: letters,
	})
}

// UnmarshalJSON decodes a board written by MarshalJSON
func (b *Board) UnmarshalJSON(data []byte) error {
	var raw boardJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	layout, err := ParseLayout(raw.Layout, raw.Bonuses)
	if err != nil {
		return err
	}
	if len(raw.Letters) != layout.Dim()*layout.Dim() {
		return fmt.Errorf("%w: %d letters for dimension %d", ErrInvalidLayout, len(raw.Letters), layout.Dim())
	}
	b.layout = layout
	b.letters = make([]MachineLetter, len(raw.Letters))
	for i, v := range raw.Letters {
		b.letters[i] = MachineLetter(v)
	}
	b.recomputeEmpty()
	return nil
}
