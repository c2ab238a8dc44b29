package testutil

import (
	"github.com/mcoot/cwrules/internal/alphabet"
	"github.com/mcoot/cwrules/internal/model"
)

// RadiosRows is a mid-game English position on the standard board
var RadiosRows = []string{
	"         RADIOS",
	"         E     ",
	"      R SI     ",
	"      U E      ",
	"    ZINGARO    ",
	"    o   T      ",
	"    N          ",
	"   WASTE       ",
	"    T          ",
	"    I          ",
	"    O          ",
	"    N          ",
	"               ",
	"               ",
	"               ",
}

// PacifyingRows is a late-game English position on the standard board with
// an open first column
var PacifyingRows = []string{
	" PACIFYING     ",
	" IS            ",
	"YE             ",
	" REQUALIFIED   ",
	"H L            ",
	"EDS            ",
	"NO   T         ",
	" RAINWASHING   ",
	"UM   O         ",
	"T  E O         ",
	" WAKEnERS      ",
	" OnETIME       ",
	"OOT  E B       ",
	"N      U       ",
	" JACULATING    ",
}

// LoadBoard builds a standard English board from rows of rune text. It
// panics on bad fixtures.
func LoadBoard(rows []string) *model.Board {
	board := model.NewBoard(model.StandardLayout)
	if err := board.LoadLayout(rows, alphabet.English()); err != nil {
		panic(err)
	}
	return board
}

// Tiles builds a placement, e.g. Tiles(Tile(9, 1, "Q"), Tile(9, 2, "u"))
func Tiles(tiles ...model.Tile) model.Placement {
	return model.NewPlacement(tiles...)
}

// Tile builds one English tile from rune text. It panics on bad fixtures.
func Tile(row, col int, text string) model.Tile {
	w, err := alphabet.English().Tokenize(text)
	if err != nil || len(w) != 1 {
		panic("bad tile fixture " + text)
	}
	return model.Tile{Row: row, Col: col, Letter: w[0]}
}
