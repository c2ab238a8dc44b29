package editor

import (
	"strings"

	"github.com/mcoot/cwrules/internal/alphabet"
	"github.com/mcoot/cwrules/internal/model"
)

// WordsFormed lists the distinct words of two or more tiles on the board
// with the placement laid over it, in reading order. With a nil placement
// every word on the board is listed; otherwise only words using a tentative
// tile count.
func WordsFormed(board *model.Board, p *model.Placement, alph *alphabet.Alphabet) []string {
	dim := board.Dim()
	grid := board.Letters()
	fresh := make([]bool, len(grid))
	if p != nil {
		for _, t := range p.Tiles() {
			if !board.InBounds(t.Row, t.Col) || t.Letter == model.EmptySquare {
				continue
			}
			grid[t.Row*dim+t.Col] = t.Letter
			fresh[t.Row*dim+t.Col] = true
		}
	}

	seen := make(map[string]bool)
	var words []string
	collect := func(cells []int) {
		if len(cells) < 2 {
			return
		}
		usesFresh := false
		var sb strings.Builder
		for _, idx := range cells {
			usesFresh = usesFresh || fresh[idx]
			sb.WriteString(alph.RuneOf(grid[idx]))
		}
		if p != nil && !usesFresh {
			return
		}
		if w := sb.String(); !seen[w] {
			seen[w] = true
			words = append(words, w)
		}
	}

	// A word is recorded at the square where it starts
	for row := 0; row < dim; row++ {
		for col := 0; col < dim; col++ {
			if grid[row*dim+col] == model.EmptySquare {
				continue
			}
			if col == 0 || grid[row*dim+col-1] == model.EmptySquare {
				var cells []int
				for c := col; c < dim && grid[row*dim+c] != model.EmptySquare; c++ {
					cells = append(cells, row*dim+c)
				}
				collect(cells)
			}
			if row == 0 || grid[(row-1)*dim+col] == model.EmptySquare {
				var cells []int
				for r := row; r < dim && grid[r*dim+col] != model.EmptySquare; r++ {
					cells = append(cells, r*dim+col)
				}
				collect(cells)
			}
		}
	}
	return words
}
