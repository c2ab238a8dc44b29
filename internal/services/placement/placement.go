// Package placement decides whether tentatively placed tiles form a legal
// play and extracts the full run of squares the play covers.
package placement

import (
	"sort"

	"github.com/mcoot/cwrules/internal/model"
)

// Contiguous validates a placement against the board and returns the run
// it forms, including board letters it plays through. ok is false when
// the placement is illegal.
func Contiguous(board *model.Board, p model.Placement) (model.Run, bool) {
	sorted := p.Tiles()
	if !Legal(board, sorted) {
		return model.Run{}, false
	}
	return extractRun(board, p, sorted), true
}

// Legal reports whether tiles sorted by (col, row) make a legal play. Every
// tile must sit on an empty square. Together they must be colinear,
// contiguous through board letters, connected to the board, and cover the
// center when the board is empty.
func Legal(board *model.Board, sorted []model.Tile) bool {
	if len(sorted) == 0 {
		return false
	}

	rows := make(map[int]bool)
	cols := make(map[int]bool)
	for _, t := range sorted {
		if !board.InBounds(t.Row, t.Col) || board.HasLetter(t.Row, t.Col) {
			return false
		}
		rows[t.Row] = true
		cols[t.Col] = true
	}
	if (len(rows) > 1 && len(cols) != 1) || (len(cols) > 1 && len(rows) != 1) {
		return false
	}

	for i := 0; i < len(sorted)-1; i++ {
		if !Borders(board, sorted[i], sorted[i+1]) {
			return false
		}
	}

	if board.IsEmpty() {
		center := board.Layout().Center()
		return rows[center.Row] && cols[center.Col]
	}

	for _, t := range sorted {
		if TouchesBoardTile(board, t) {
			return true
		}
	}
	return false
}

// Borders reports whether two tiles touch, either directly or across a gap
// filled entirely by board letters
func Borders(board *model.Board, a, b model.Tile) bool {
	switch {
	case a.Col == b.Col:
		for row := min(a.Row, b.Row) + 1; row < max(a.Row, b.Row); row++ {
			if !board.HasLetter(row, a.Col) {
				return false
			}
		}
		return true
	case a.Row == b.Row:
		for col := min(a.Col, b.Col) + 1; col < max(a.Col, b.Col); col++ {
			if !board.HasLetter(a.Row, col) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

var neighbours = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// TouchesBoardTile reports whether a tile is orthogonally adjacent to a
// board letter. Squares off the board never count.
func TouchesBoardTile(board *model.Board, t model.Tile) bool {
	for _, d := range neighbours {
		if board.HasLetter(t.Row+d[0], t.Col+d[1]) {
			return true
		}
	}
	return false
}

// Orientation infers the direction of sorted tiles. Two or more tiles
// sharing a first column are vertical. A lone tile is horizontal when it has
// a board letter to its left or right.
func Orientation(board *model.Board, sorted []model.Tile) model.Direction {
	switch {
	case len(sorted) > 1:
		if sorted[0].Col == sorted[1].Col {
			return model.Vertical
		}
		return model.Horizontal
	case len(sorted) == 1:
		t := sorted[0]
		if board.HasLetter(t.Row, t.Col+1) || board.HasLetter(t.Row, t.Col-1) {
			return model.Horizontal
		}
	}
	return model.Vertical
}

func extractRun(board *model.Board, p model.Placement, sorted []model.Tile) model.Run {
	dir := Orientation(board, sorted)
	dr, dc := 1, 0
	if dir == model.Horizontal {
		dr, dc = 0, 1
	}

	run := make(map[model.Position]model.RunTile, len(sorted))
	for _, t := range sorted {
		run[t.Position()] = model.RunTile{Tile: t, Fresh: true}
	}
	absorb := func(row, col int) bool {
		ml, _ := board.LetterAt(row, col)
		if ml == model.EmptySquare {
			return false
		}
		run[model.Position{Row: row, Col: col}] = model.RunTile{
			Tile: model.Tile{Row: row, Col: col, Letter: ml},
		}
		return true
	}

	first := sorted[0]
	row, col := first.Row-dr, first.Col-dc
	for absorb(row, col) {
		row, col = row-dr, col-dc
	}

	// Forward, keep going through tentative tiles as well
	row, col = first.Row+dr, first.Col+dc
	for {
		if !absorb(row, col) {
			if _, ok := p.At(row, col); !ok {
				break
			}
		}
		row, col = row+dr, col+dc
	}

	tiles := make([]model.RunTile, 0, len(run))
	for _, rt := range run {
		tiles = append(tiles, rt)
	}
	sortRun(tiles)
	return model.Run{Tiles: tiles, Direction: dir}
}

func sortRun(tiles []model.RunTile) {
	sort.Slice(tiles, func(i, j int) bool {
		if tiles[i].Col == tiles[j].Col {
			return tiles[i].Row < tiles[j].Row
		}
		return tiles[i].Col < tiles[j].Col
	})
}
