// Package moves converts between tentative placements and the move notation
// stored in game events.
package moves

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/mcoot/cwrules/internal/alphabet"
	"github.com/mcoot/cwrules/internal/model"
	"github.com/mcoot/cwrules/internal/services/placement"
)

// Move is a legal placement encoded for an event log
type Move struct {
	Position  string            `json:"position"`
	Row       int               `json:"row"`
	Col       int               `json:"col"`
	Direction model.Direction   `json:"direction"`
	Letters   model.PlayedTiles `json:"letters"`
	Run       model.Run         `json:"-"`
}

// FromPlacement encodes a tentative placement as a move. Board letters the
// play runs through become play-through markers. ok is false for illegal
// placements and for plays holding an undesignated blank.
func FromPlacement(board *model.Board, p model.Placement) (Move, bool) {
	run, ok := placement.Contiguous(board, p)
	if !ok {
		return Move{}, false
	}
	return FromRun(run)
}

// FromRun encodes an extracted run
func FromRun(run model.Run) (Move, bool) {
	if len(run.Tiles) == 0 {
		return Move{}, false
	}
	for _, t := range run.Tiles {
		if t.Fresh && t.Letter == model.BlankLetter {
			return Move{}, false
		}
	}
	start := run.Start()
	return Move{
		Position:  FormatCoordinates(start.Row, start.Col, run.Direction),
		Row:       start.Row,
		Col:       start.Col,
		Direction: run.Direction,
		Letters:   run.PlayedTiles(),
		Run:       run,
	}, true
}

// FormatCoordinates renders a start square in move notation: row then
// column for horizontal plays ("8H"), column then row for vertical ones
// ("H8")
func FormatCoordinates(row, col int, dir model.Direction) string {
	r := strconv.Itoa(row + 1)
	c := string(rune('A' + col))
	if dir == model.Horizontal {
		return r + c
	}
	return c + r
}

var (
	horizontalCoords = regexp.MustCompile(`^([0-9][0-9]?)([A-Ua-u])$`)
	verticalCoords   = regexp.MustCompile(`^([A-Ua-u])([0-9][0-9]?)$`)
)

// ParseCoordinates is the inverse of FormatCoordinates
func ParseCoordinates(coords string) (row, col int, dir model.Direction, err error) {
	coords = strings.TrimSpace(coords)
	var rowPart, colPart string
	if m := horizontalCoords.FindStringSubmatch(coords); m != nil {
		rowPart, colPart, dir = m[1], m[2], model.Horizontal
	} else if m := verticalCoords.FindStringSubmatch(coords); m != nil {
		rowPart, colPart, dir = m[2], m[1], model.Vertical
	} else {
		return 0, 0, 0, fmt.Errorf("%w: %q", model.ErrInvalidCoordinates, coords)
	}

	row, _ = strconv.Atoi(rowPart)
	if row < 1 {
		return 0, 0, 0, fmt.Errorf("%w: %q", model.ErrInvalidCoordinates, coords)
	}
	col = int(strings.ToUpper(colPart)[0] - 'A')
	return row - 1, col, dir, nil
}

// PlacementFromNotation rebuilds the tentative tiles of a move written in
// notation. Play-through markers must sit on board letters and placed
// letters on empty squares.
func PlacementFromNotation(board *model.Board, coords string, letters model.PlayedTiles) (model.Placement, error) {
	row, col, dir, err := ParseCoordinates(coords)
	if err != nil {
		return model.Placement{}, err
	}
	if letters.FreshCount() == 0 {
		return model.Placement{}, model.ErrEmptyPlacement
	}

	dr, dc := 0, 1
	if dir == model.Vertical {
		dr, dc = 1, 0
	}

	var tiles []model.Tile
	for i, ml := range letters {
		r, c := row+i*dr, col+i*dc
		if !board.InBounds(r, c) {
			return model.Placement{}, fmt.Errorf("%w: (%d, %d)", model.ErrInvalidPosition, r, c)
		}
		occupied := board.HasLetter(r, c)
		switch {
		case ml == model.PlayThrough && !occupied:
			return model.Placement{}, fmt.Errorf("%w: nothing to play through at %s", model.ErrIllegalPlacement, FormatCoordinates(r, c, dir))
		case ml != model.PlayThrough && occupied:
			return model.Placement{}, fmt.Errorf("%w: %s", model.ErrCellOccupied, FormatCoordinates(r, c, dir))
		case ml != model.PlayThrough:
			tiles = append(tiles, model.Tile{Row: r, Col: c, Letter: ml})
		}
	}
	return model.NewPlacement(tiles...), nil
}

// Display renders a placement event with the board letters it played
// through in parentheses, e.g. "(L)ImB"
func Display(evt model.GameEvent, board *model.Board, alph *alphabet.Alphabet) (string, error) {
	letters, err := alph.TokenizePlayed(evt.PlayedTiles)
	if err != nil {
		return "", err
	}

	dr, dc := 0, 1
	if evt.Direction == model.Vertical {
		dr, dc = 1, 0
	}

	var sb strings.Builder
	open := false
	for i, ml := range letters {
		r, c := evt.Row+i*dr, evt.Col+i*dc
		if ml == model.PlayThrough {
			if !open {
				sb.WriteByte('(')
				open = true
			}
			onBoard, _ := board.LetterAt(r, c)
			sb.WriteString(alph.RuneOf(onBoard))
			continue
		}
		if open {
			sb.WriteByte(')')
			open = false
		}
		sb.WriteString(alph.RuneOf(ml))
	}
	if open {
		sb.WriteByte(')')
	}
	return sb.String(), nil
}
