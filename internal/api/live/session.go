package live

import (
	"context"
	"fmt"

	"github.com/mcoot/cwrules/internal/alphabet"
	"github.com/mcoot/cwrules/internal/api/apierr"
	"github.com/mcoot/cwrules/internal/api/request"
	"github.com/mcoot/cwrules/internal/api/response"
	"github.com/mcoot/cwrules/internal/model"
	"github.com/mcoot/cwrules/internal/services/editor"
	"github.com/mcoot/cwrules/internal/services/scoring"
)

// Inbound message types
const (
	TypePlace     = "place"     // replace the placement with Tiles
	TypeRack      = "rack"      // set the rack and clear the placement
	TypeArrow     = "arrow"     // click a square
	TypeKey       = "key"       // type Key at the arrow
	TypeDesignate = "designate" // designate blanks as Key
	TypeClear     = "clear"     // return every placed tile to the rack
)

// Outbound message types
const (
	TypeScore = "score"
	TypeEvent = "event"
	TypeError = "error"
)

var errMalformedMessage = apierr.NewInvalidRequestError("malformed message")

// Inbound is a message from a client
type Inbound struct {
	Type  string         `json:"type"`
	Tiles []request.Tile `json:"tiles,omitempty"`
	Rack  string         `json:"rack,omitempty"`
	Row   int            `json:"row,omitempty"`
	Col   int            `json:"col,omitempty"`
	Key   string         `json:"key,omitempty"`
}

// Outbound is a message to a client: the running score of its placement,
// an event appended to the game, or an error
type Outbound struct {
	Type    string                  `json:"type"`
	Score   *response.ScoreResponse `json:"score,omitempty"`
	Rack    *string                 `json:"rack,omitempty"`
	Arrow   *editor.Arrow           `json:"arrow,omitempty"`
	Event   *model.GameEvent        `json:"event,omitempty"`
	Summary string                  `json:"summary,omitempty"`
	Error   *apierr.APIError        `json:"error,omitempty"`
}

func errorOutbound(err error) Outbound {
	e := apierr.Describe(err)
	return Outbound{Type: TypeError, Error: &e}
}

// BoardSource loads the committed board of a game
type BoardSource interface {
	GetBoard(ctx context.Context, gameID model.GameID) (*model.Board, error)
}

// Session is the editing state of one connection. The board is reloaded
// on every message so plays committed by anyone are taken into account.
type Session struct {
	gameID    model.GameID
	alph      *alphabet.Alphabet
	boards    BoardSource
	scorer    scoring.ServiceInterface
	editor    editor.ServiceInterface
	fullRack  model.MachineWord
	rack      model.MachineWord
	placement model.Placement
	arrow     editor.Arrow
}

// NewSession creates an empty editing session on a game
func NewSession(gameID model.GameID, alph *alphabet.Alphabet, boards BoardSource, scorer scoring.ServiceInterface, ed editor.ServiceInterface) *Session {
	return &Session{
		gameID:    gameID,
		alph:      alph,
		boards:    boards,
		scorer:    scorer,
		editor:    ed,
		placement: model.NewPlacement(),
	}
}

// Handle applies one message and returns the reply
func (s *Session) Handle(ctx context.Context, in Inbound) Outbound {
	board, err := s.boards.GetBoard(ctx, s.gameID)
	if err != nil {
		return errorOutbound(err)
	}
	st := editor.State{Board: board, Alphabet: s.alph, Rack: s.rack, Placement: s.placement}

	switch in.Type {
	case TypePlace:
		tiles, err := request.Tiles(s.alph, in.Tiles)
		if err != nil {
			return errorOutbound(err)
		}
		s.placement = model.NewPlacement(tiles...)

	case TypeRack:
		rack, err := s.alph.Tokenize(in.Rack)
		if err != nil {
			return errorOutbound(err)
		}
		s.fullRack = rack
		s.reset()

	case TypeArrow:
		if !board.InBounds(in.Row, in.Col) {
			return errorOutbound(fmt.Errorf("%w: (%d, %d)", model.ErrInvalidPosition, in.Row, in.Col))
		}
		if board.HasLetter(in.Row, in.Col) {
			return errorOutbound(fmt.Errorf("%w: (%d, %d)", model.ErrCellOccupied, in.Row, in.Col))
		}
		s.arrow = editor.NextArrow(s.arrow, in.Row, in.Col)

	case TypeKey:
		if !s.arrow.Show {
			return errorOutbound(apierr.NewInvalidRequestError("no arrow on the board"))
		}
		kr, ok := s.editor.KeyPress(st, s.arrow, in.Key, nil)
		if ok {
			s.placement = kr.Placement
			s.rack = kr.Rack
			s.arrow = kr.Arrow
		}

	case TypeDesignate:
		ml, ok := s.alph.LetterForKey(in.Key)
		if !ok || ml == model.BlankLetter {
			return errorOutbound(fmt.Errorf("%w: %q", model.ErrInvalidRune, in.Key))
		}
		res := s.editor.DesignateBlank(st, ml.Unblank())
		s.placement = res.Placement

	case TypeClear:
		s.reset()

	default:
		return errorOutbound(apierr.NewInvalidRequestError(fmt.Sprintf("unknown message type %q", in.Type)))
	}

	return s.snapshot(board)
}

func (s *Session) reset() {
	s.rack = append(model.MachineWord(nil), s.fullRack...)
	s.placement = model.NewPlacement()
}

func (s *Session) snapshot(board *model.Board) Outbound {
	score, legal := s.scorer.Score(board, s.placement, s.alph)
	resp := response.NewScoreResponse(board, s.placement, s.alph, score, legal)
	rack := response.RackText(s.rack, s.alph)
	arrow := s.arrow
	return Outbound{Type: TypeScore, Score: resp, Rack: &rack, Arrow: &arrow}
}
