// Package editor implements the state transitions of interactive tile
// placement: typing, deleting, dragging and dropping tiles and designating
// blanks. Every operation returns new values and leaves its inputs alone.
package editor

import (
	"strings"

	"github.com/mcoot/cwrules/internal/alphabet"
	"github.com/mcoot/cwrules/internal/model"
	"github.com/mcoot/cwrules/internal/services/scoring"
)

const (
	keyBackspace = "BACKSPACE"
	keySpace     = " "
)

// State is the editing context: the committed board, the tiles placed on it
// so far and the displayed rack, where EmptyRackSpace marks a gap left by a
// placed tile
type State struct {
	Board     *model.Board
	Alphabet  *alphabet.Alphabet
	Rack      model.MachineWord
	Placement model.Placement
}

// Result is the state after an edit along with the running score
type Result struct {
	Placement    model.Placement   `json:"-"`
	Rack         model.MachineWord `json:"rack"`
	Score        int               `json:"score"`
	Legal        bool              `json:"legal"`
	Undesignated bool              `json:"undesignated,omitempty"`
}

// KeyResult is the result of a key press, including where the arrow moved
type KeyResult struct {
	Result
	Arrow Arrow `json:"arrow"`
}

// Service applies edits and scores the outcome
type Service struct {
	scorer scoring.ServiceInterface
}

// New creates a new editor Service
func New(scorer scoring.ServiceInterface) *Service {
	return &Service{
		scorer: scorer,
	}
}

func (s *Service) result(st State, p model.Placement, rack model.MachineWord) Result {
	score, legal := s.scorer.Score(st.Board, p, st.Alphabet)
	return Result{Placement: p, Rack: rack, Score: score, Legal: legal}
}

// KeyPress handles one typed key at the arrow. Lower case plays the tile
// from the rack, falling back to a blank. Upper case asks for a blank,
// falling back to the tile. Backspace removes the tile behind the arrow and
// space moves the arrow on. A non-nil pool enables board editing, where
// tiles missing from the rack may come straight from the bag. ok is false
// when the key does nothing.
func (s *Service) KeyPress(st State, a Arrow, key string, pool map[model.MachineLetter]int) (KeyResult, bool) {
	normalized := strings.ToUpper(key)
	special := normalized == keyBackspace || normalized == keySpace
	if !special && !st.Alphabet.HasKey(key) {
		return KeyResult{}, false
	}

	onBoard := a.Show && st.Board.InBounds(a.Row, a.Col)
	if !special && (!onBoard || st.Board.HasLetter(a.Row, a.Col)) {
		return KeyResult{}, false
	}

	switch normalized {
	case keyBackspace:
		next := ArrowAfterPlacement(a, st.Placement, -1, st.Board)
		// Never back off the board
		if next.Row < 0 {
			next.Row = a.Row
		}
		if next.Col < 0 {
			next.Col = a.Col
		}
		next.Horizontal = a.Horizontal
		return s.DeleteAt(st, next), true
	case keySpace:
		next := ArrowAfterPlacement(a, st.Placement, 1, st.Board)
		dim := st.Board.Dim()
		if next.Row > dim-1 {
			next.Row = a.Row
		}
		if next.Col > dim-1 {
			next.Col = a.Col
		}
		return KeyResult{
			Result: s.result(st, st.Placement, append(model.MachineWord(nil), st.Rack...)),
			Arrow:  next,
		}, true
	}

	typed, _ := st.Alphabet.LetterForKey(key)
	wantsBlank := key == normalized
	rack := append(model.MachineWord(nil), st.Rack...)
	blankIdx := indexOf(rack, model.BlankLetter)
	tileIdx := indexOf(rack, typed)

	var letter model.MachineLetter
	switch {
	case wantsBlank && blankIdx >= 0:
		letter = typed.Blank()
		rack[blankIdx] = model.EmptyRackSpace
	case wantsBlank && pool != nil && pool[model.BlankLetter] > 0:
		letter = typed.Blank()
	case tileIdx >= 0:
		letter = typed
		rack[tileIdx] = model.EmptyRackSpace
	case blankIdx >= 0:
		letter = typed.Blank()
		rack[blankIdx] = model.EmptyRackSpace
	case pool != nil && pool[typed] > 0:
		letter = typed
	default:
		return KeyResult{}, false
	}

	p := st.Placement.With(model.Tile{Row: a.Row, Col: a.Col, Letter: letter})
	return KeyResult{
		Result: s.result(st, p, rack),
		Arrow:  ArrowAfterPlacement(a, st.Placement, 1, st.Board),
	}, true
}

// DeleteAt removes the tentative tile under the arrow. The tile goes back
// into the first rack gap; with no gap it came from the bag and is dropped.
// A designated blank returns as a plain blank.
func (s *Service) DeleteAt(st State, a Arrow) KeyResult {
	rack := append(model.MachineWord(nil), st.Rack...)
	p := st.Placement
	if ml, ok := p.At(a.Row, a.Col); ok {
		p = p.Without(a.Row, a.Col)
		if gap := indexOf(rack, model.EmptyRackSpace); gap >= 0 {
			rack[gap] = ml.IntrinsicTile()
		}
	}
	a.Show = true
	return KeyResult{Result: s.result(st, p, rack), Arrow: a}
}

// StableInsert puts a letter into the rack at index, closing the nearest
// gap so the rack keeps its length where possible. A tie between gaps goes
// to the right.
func StableInsert(rack model.MachineWord, index int, letter model.MachineLetter) model.MachineWord {
	index = max(0, min(index, len(rack)))
	left := append(model.MachineWord(nil), rack[:index]...)
	right := append(model.MachineWord(nil), rack[index:]...)

	gapLeft := lastIndexOf(left, model.EmptyRackSpace)
	gapRight := indexOf(right, model.EmptyRackSpace)
	if gapLeft >= 0 && gapRight >= 0 {
		if len(left)-gapLeft < gapRight {
			gapRight = -1
		} else {
			gapLeft = -1
		}
	}

	switch {
	case gapLeft >= 0:
		left = append(left[:gapLeft], left[gapLeft+1:]...)
		// Keep the left side's length
		if len(right) > 0 {
			left = append(left, right[0])
			right = right[1:]
		}
	case gapRight >= 0:
		right = append(right[:gapRight], right[gapRight+1:]...)
	}

	out := make(model.MachineWord, 0, len(left)+1+len(right))
	out = append(out, left...)
	out = append(out, letter)
	return append(out, right...)
}

// ReturnToRack moves the tentative tile on a square back onto the rack at
// rackIndex. ok is false when the square is off the board.
func (s *Service) ReturnToRack(st State, rackIndex int, from model.Position) (Result, bool) {
	if !st.Board.InBounds(from.Row, from.Col) {
		return Result{}, false
	}
	ml, ok := st.Placement.At(from.Row, from.Col)
	if !ok {
		return s.result(st, st.Placement, append(model.MachineWord(nil), st.Rack...)), true
	}
	p := st.Placement.Without(from.Row, from.Col)
	return s.result(st, p, StableInsert(st.Rack, rackIndex, ml.IntrinsicTile())), true
}

// Source is where a dragged tile came from: a rack slot when RackIndex is
// not negative, otherwise a tentative tile's square
type Source struct {
	RackIndex int            `json:"rack_index"`
	Square    model.Position `json:"square"`
}

// FromRack is a drag source on the rack
func FromRack(index int) Source {
	return Source{RackIndex: index}
}

// FromSquare is a drag source on the board
func FromSquare(row, col int) Source {
	return Source{RackIndex: -1, Square: model.Position{Row: row, Col: col}}
}

// DropTile handles a tile dropped on an empty board square. A tentative tile
// already on the target swaps places with the dragged one. Moved blanks lose
// their designation. ok is false when the source holds no tile or the target
// is a board letter.
func (s *Service) DropTile(st State, row, col int, src Source) (Result, bool) {
	if !st.Board.InBounds(row, col) || st.Board.HasLetter(row, col) {
		return Result{}, false
	}

	target, hasTarget := st.Placement.At(row, col)
	rack := append(model.MachineWord(nil), st.Rack...)
	p := st.Placement.Without(row, col)

	var letter model.MachineLetter
	if src.RackIndex >= 0 {
		if src.RackIndex >= len(rack) || rack[src.RackIndex] == model.EmptyRackSpace {
			return Result{}, false
		}
		letter = rack[src.RackIndex]
		if hasTarget {
			rack[src.RackIndex] = target.IntrinsicTile()
		} else {
			rack[src.RackIndex] = model.EmptyRackSpace
		}
	} else {
		from := src.Square
		if from.Row == row && from.Col == col {
			return Result{}, false
		}
		ml, ok := st.Placement.At(from.Row, from.Col)
		if !ok {
			return Result{}, false
		}
		letter = ml
		p = p.Without(from.Row, from.Col)
		if hasTarget {
			p = p.With(model.Tile{Row: from.Row, Col: from.Col, Letter: target})
		}
	}

	letter = letter.IntrinsicTile()
	p = p.With(model.Tile{Row: row, Col: col, Letter: letter})
	res := s.result(st, p, rack)
	res.Undesignated = letter == model.BlankLetter
	return res, true
}

// DesignateBlank turns every undesignated blank in the placement into a
// blank played as letter
func (s *Service) DesignateBlank(st State, letter model.MachineLetter) Result {
	p := st.Placement
	for _, t := range st.Placement.Tiles() {
		if t.Letter == model.BlankLetter {
			p = p.With(model.Tile{Row: t.Row, Col: t.Col, Letter: letter.Unblank().Blank()})
		}
	}
	return s.result(st, p, append(model.MachineWord(nil), st.Rack...))
}

func indexOf(w model.MachineWord, ml model.MachineLetter) int {
	for i, x := range w {
		if x == ml {
			return i
		}
	}
	return -1
}

func lastIndexOf(w model.MachineWord, ml model.MachineLetter) int {
	for i := len(w) - 1; i >= 0; i-- {
		if w[i] == ml {
			return i
		}
	}
	return -1
}

// Interface for dependency injection
type ServiceInterface interface {
	KeyPress(st State, a Arrow, key string, pool map[model.MachineLetter]int) (KeyResult, bool)
	DeleteAt(st State, a Arrow) KeyResult
	ReturnToRack(st State, rackIndex int, from model.Position) (Result, bool)
	DropTile(st State, row, col int, src Source) (Result, bool)
	DesignateBlank(st State, letter model.MachineLetter) Result
}

var _ ServiceInterface = (*Service)(nil)
