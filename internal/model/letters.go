package model

// MachineLetter is the compact code for a single tile.
//
// Codes 1..127 index into an alphabet. A code with BlankBit set is a blank
// that has been designated as the letter (ml &^ BlankBit). What a zero means
// depends on the container holding it: a blank tile in a MachineWord, a
// play-through marker in PlayedTiles, and an empty square on a Board.
type MachineLetter byte

const (
	// BlankLetter is an undesignated blank tile
	BlankLetter MachineLetter = 0

	// PlayThrough marks a square already holding a board letter
	PlayThrough MachineLetter = 0

	// EmptySquare is an unoccupied board cell
	EmptySquare MachineLetter = 0

	// BlankBit flags a blank designated as a letter
	BlankBit MachineLetter = 0x80

	// EmptyRackSpace is a gap on a displayed rack. A designated blank with
	// no letter cannot exist, so the code is free for this use.
	EmptyRackSpace MachineLetter = 0x80
)

// IsDesignatedBlank reports whether the letter is a blank played as a letter
func (ml MachineLetter) IsDesignatedBlank() bool {
	return ml&BlankBit != 0
}

// Blank returns the designated-blank form of the letter
func (ml MachineLetter) Blank() MachineLetter {
	return ml | BlankBit
}

// Unblank strips the blank designation, returning the face letter
func (ml MachineLetter) Unblank() MachineLetter {
	return ml &^ BlankBit
}

// IntrinsicTile returns the tile that was drawn from the rack to play this
// letter: a designated blank came from a blank tile.
func (ml MachineLetter) IntrinsicTile() MachineLetter {
	if ml.IsDesignatedBlank() {
		return BlankLetter
	}
	return ml
}

// MachineWord is a sequence of tiles such as a rack or an exchange. A zero is
// an undesignated blank.
type MachineWord []MachineLetter

// PlayedTiles is the letter sequence of a placement move along its run. A
// zero marks a square the move plays through.
type PlayedTiles []MachineLetter

// FreshCount returns the number of tiles actually placed by the move
func (p PlayedTiles) FreshCount() int {
	n := 0
	for _, ml := range p {
		if ml != PlayThrough {
			n++
		}
	}
	return n
}

// Tiles returns the rack tiles consumed by the move
func (p PlayedTiles) Tiles() MachineWord {
	w := make(MachineWord, 0, len(p))
	for _, ml := range p {
		if ml != PlayThrough {
			w = append(w, ml.IntrinsicTile())
		}
	}
	return w
}
