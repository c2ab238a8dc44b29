package board

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/mcoot/cwrules/internal/alphabet"
	"github.com/mcoot/cwrules/internal/model"
)

// ToFEN encodes the board row by row, rows separated by '/'. Runs of empty
// squares are written as counts, blanks in lower case, and tiles spelled
// with more than one codepoint are wrapped in brackets.
func ToFEN(board *model.Board, alph *alphabet.Alphabet) string {
	dim := board.Dim()
	rows := make([]string, dim)
	for r := 0; r < dim; r++ {
		var sb strings.Builder
		gap := 0
		for c := 0; c < dim; c++ {
			ml, _ := board.LetterAt(r, c)
			if ml == model.EmptySquare {
				gap++
				continue
			}
			if gap > 0 {
				sb.WriteString(strconv.Itoa(gap))
				gap = 0
			}
			text := alph.RuneOf(ml)
			if utf8.RuneCountInString(text) > 1 {
				sb.WriteString("[" + text + "]")
			} else {
				sb.WriteString(text)
			}
		}
		if gap > 0 {
			sb.WriteString(strconv.Itoa(gap))
		}
		rows[r] = sb.String()
	}
	return strings.Join(rows, "/")
}

// FromFEN decodes a position written by ToFEN onto a fresh board
func FromFEN(layout *model.Layout, fen string, alph *alphabet.Alphabet) (*model.Board, error) {
	board := model.NewBoard(layout)
	dim := board.Dim()

	rows := strings.Split(norm.NFC.String(strings.TrimSpace(fen)), "/")
	if len(rows) != dim {
		return nil, fmt.Errorf("%w: %d rows, want %d", model.ErrInvalidFEN, len(rows), dim)
	}

	for r, row := range rows {
		cells, err := parseFENRow(row, dim, alph)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", r+1, err)
		}
		if len(cells) != dim {
			return nil, fmt.Errorf("%w: row %d has %d squares, want %d", model.ErrInvalidFEN, r+1, len(cells), dim)
		}
		for c, ml := range cells {
			if ml == model.EmptySquare {
				continue
			}
			if err := board.Place(model.Tile{Row: r, Col: c, Letter: ml}); err != nil {
				return nil, err
			}
		}
	}
	return board, nil
}

// parseFENRow decodes one row, failing as soon as it runs past dim squares
func parseFENRow(row string, dim int, alph *alphabet.Alphabet) ([]model.MachineLetter, error) {
	cells := make([]model.MachineLetter, 0, dim)
	overflow := func() error {
		return fmt.Errorf("%w: more than %d squares", model.ErrInvalidFEN, dim)
	}
	cps := []rune(row)
	for i := 0; i < len(cps); {
		switch {
		case unicode.IsDigit(cps[i]):
			j := i
			for j < len(cps) && unicode.IsDigit(cps[j]) {
				j++
			}
			n, err := strconv.Atoi(string(cps[i:j]))
			if err != nil || n == 0 {
				return nil, fmt.Errorf("%w: bad gap %q", model.ErrInvalidFEN, string(cps[i:j]))
			}
			if n > dim-len(cells) {
				return nil, overflow()
			}
			for k := 0; k < n; k++ {
				cells = append(cells, model.EmptySquare)
			}
			i = j
		case cps[i] == '[':
			end := -1
			for j := i + 1; j < len(cps); j++ {
				if cps[j] == ']' {
					end = j
					break
				}
			}
			if end < 0 {
				return nil, fmt.Errorf("%w: unclosed bracket", model.ErrInvalidFEN)
			}
			ml, err := fenLetter(string(cps[i+1:end]), alph)
			if err != nil {
				return nil, err
			}
			if len(cells) == dim {
				return nil, overflow()
			}
			cells = append(cells, ml)
			i = end + 1
		default:
			ml, err := fenLetter(string(cps[i]), alph)
			if err != nil {
				return nil, err
			}
			if len(cells) == dim {
				return nil, overflow()
			}
			cells = append(cells, ml)
			i++
		}
	}
	return cells, nil
}

// fenLetter decodes the text of exactly one tile
func fenLetter(text string, alph *alphabet.Alphabet) (model.MachineLetter, error) {
	w, err := alph.Tokenize(text)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", model.ErrInvalidFEN, err)
	}
	if len(w) != 1 || w[0] == model.BlankLetter {
		return 0, fmt.Errorf("%w: %q is not a single tile", model.ErrInvalidFEN, text)
	}
	return w[0], nil
}

// Render returns the board as rows of rune text, a space for each empty
// square. Rows load back with Board.LoadLayout unless neighbouring tiles
// spell a longer tile, as N then Y do in Catalan; FEN has no such ambiguity.
func Render(board *model.Board, alph *alphabet.Alphabet) []string {
	dim := board.Dim()
	rows := make([]string, dim)
	for r := 0; r < dim; r++ {
		var sb strings.Builder
		for c := 0; c < dim; c++ {
			ml, _ := board.LetterAt(r, c)
			if ml == model.EmptySquare {
				sb.WriteByte(' ')
				continue
			}
			sb.WriteString(alph.RuneOf(ml))
		}
		rows[r] = sb.String()
	}
	return rows
}
