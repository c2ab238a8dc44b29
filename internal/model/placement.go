package model

import (
	"fmt"
	"sort"
)

// Direction is the axis a word runs along
type Direction int

const (
	Horizontal Direction = iota
	Vertical
)

// Cross returns the perpendicular direction
func (d Direction) Cross() Direction {
	if d == Horizontal {
		return Vertical
	}
	return Horizontal
}

// String returns the lower-case direction name
func (d Direction) String() string {
	if d == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// MarshalText encodes the direction name
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText decodes a direction name
func (d *Direction) UnmarshalText(text []byte) error {
	switch string(text) {
	case "horizontal", "":
		*d = Horizontal
	case "vertical":
		*d = Vertical
	default:
		return fmt.Errorf("unknown direction %q", text)
	}
	return nil
}

// Tile is a letter at a board position
type Tile struct {
	Row    int           `json:"row"`
	Col    int           `json:"col"`
	Letter MachineLetter `json:"letter"`
}

// Position returns the tile's cell
func (t Tile) Position() Position {
	return Position{Row: t.Row, Col: t.Col}
}

// Placement is an immutable set of tentatively placed tiles keyed by cell.
// Every change produces a new Placement.
type Placement struct {
	tiles map[Position]MachineLetter
}

// NewPlacement builds a placement; later tiles on the same cell win
func NewPlacement(tiles ...Tile) Placement {
	m := make(map[Position]MachineLetter, len(tiles))
	for _, t := range tiles {
		m[t.Position()] = t.Letter
	}
	return Placement{tiles: m}
}

// Len returns the number of tentative tiles
func (p Placement) Len() int {
	return len(p.tiles)
}

// At returns the tentative letter at a cell
func (p Placement) At(row, col int) (MachineLetter, bool) {
	ml, ok := p.tiles[Position{Row: row, Col: col}]
	return ml, ok
}

// With returns a copy holding an additional (or replaced) tile
func (p Placement) With(t Tile) Placement {
	m := make(map[Position]MachineLetter, len(p.tiles)+1)
	for pos, ml := range p.tiles {
		m[pos] = ml
	}
	m[t.Position()] = t.Letter
	return Placement{tiles: m}
}

// Without returns a copy with the tile at a cell removed
func (p Placement) Without(row, col int) Placement {
	m := make(map[Position]MachineLetter, len(p.tiles))
	for pos, ml := range p.tiles {
		if pos.Row != row || pos.Col != col {
			m[pos] = ml
		}
	}
	return Placement{tiles: m}
}

// Tiles returns the tiles sorted by column then row
func (p Placement) Tiles() []Tile {
	tiles := make([]Tile, 0, len(p.tiles))
	for pos, ml := range p.tiles {
		tiles = append(tiles, Tile{Row: pos.Row, Col: pos.Col, Letter: ml})
	}
	SortTiles(tiles)
	return tiles
}

// SortTiles orders tiles by column, then row
func SortTiles(tiles []Tile) {
	sort.Slice(tiles, func(i, j int) bool {
		if tiles[i].Col == tiles[j].Col {
			return tiles[i].Row < tiles[j].Row
		}
		return tiles[i].Col < tiles[j].Col
	})
}

// RunTile is one square of an extracted word run
type RunTile struct {
	Tile
	Fresh bool `json:"fresh"` // placed by this move rather than already on the board
}

// Run is the full contiguous word a placement forms along its direction
type Run struct {
	Tiles     []RunTile `json:"tiles"`
	Direction Direction `json:"direction"`
}

// Start returns the first square of the run
func (r Run) Start() Position {
	if len(r.Tiles) == 0 {
		return Position{}
	}
	return r.Tiles[0].Position()
}

// PlayedTiles returns the run as move letters, with absorbed board letters
// as play-through markers
func (r Run) PlayedTiles() PlayedTiles {
	p := make(PlayedTiles, len(r.Tiles))
	for i, t := range r.Tiles {
		if t.Fresh {
			p[i] = t.Letter
		} else {
			p[i] = PlayThrough
		}
	}
	return p
}
