package editor

import "github.com/mcoot/cwrules/internal/model"

// Arrow is the typing cursor on the board
type Arrow struct {
	Row        int  `json:"row"`
	Col        int  `json:"col"`
	Horizontal bool `json:"horizontal"`
	Show       bool `json:"show"`
}

// NextArrow returns the arrow after a click on a square. Clicking a new
// square shows a horizontal arrow there; clicking the same square cycles
// horizontal, vertical, hidden.
func NextArrow(a Arrow, row, col int) Arrow {
	if row != a.Row || col != a.Col {
		return Arrow{Row: row, Col: col, Horizontal: true, Show: true}
	}

	next := Arrow{Row: row, Col: col}
	switch {
	case a.Show && a.Horizontal:
		next.Show = true
	case a.Show:
		next.Show = false
	default:
		next.Show = true
		next.Horizontal = true
	}
	return next
}

// ArrowAfterPlacement steps the arrow by increment (1 or -1) along its
// direction, skipping board letters. Moving forward also skips tentative
// tiles. The result may lie just off the board.
func ArrowAfterPlacement(a Arrow, p model.Placement, increment int, board *model.Board) Arrow {
	row, col := a.Row, a.Col
	dim := board.Dim()
	skip := func(r, c int) bool {
		if board.HasLetter(r, c) {
			return true
		}
		_, tentative := p.At(r, c)
		return increment == 1 && tentative
	}

	if a.Horizontal {
		for {
			col += increment
			if col >= dim || col < 0 || !skip(row, col) {
				break
			}
		}
	} else {
		for {
			row += increment
			if row >= dim || row < 0 || !skip(row, col) {
				break
			}
		}
	}
	return Arrow{Row: row, Col: col, Horizontal: a.Horizontal, Show: true}
}
