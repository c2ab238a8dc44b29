package board

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mcoot/cwrules/internal/alphabet"
	"github.com/mcoot/cwrules/internal/model"
	"github.com/mcoot/cwrules/internal/storage"
)

// Service provides board persistence and board text formats
type Service struct {
	storage storage.Storage
	logger  *slog.Logger
}

// New creates a new board Service
func New(storage storage.Storage, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// CreateBoard initializes an empty board for a game
func (s *Service) CreateBoard(ctx context.Context, gameID model.GameID, layout *model.Layout) (*model.Board, error) {
	board := model.NewBoard(layout)
	if err := s.storage.SaveBoard(ctx, gameID, board); err != nil {
		return nil, err
	}
	return board, nil
}

// GetBoard retrieves a game's board
func (s *Service) GetBoard(ctx context.Context, gameID model.GameID) (*model.Board, error) {
	return s.storage.GetBoard(ctx, gameID)
}

// SaveBoard stores a game's board
func (s *Service) SaveBoard(ctx context.Context, gameID model.GameID, board *model.Board) error {
	return s.storage.SaveBoard(ctx, gameID, board)
}

// DeleteBoard removes a game's board
func (s *Service) DeleteBoard(ctx context.Context, gameID model.GameID) error {
	return s.storage.DeleteBoard(ctx, gameID)
}

// Commit places tiles on the board and saves it. Nothing is written unless
// every tile lands on an empty square.
func (s *Service) Commit(ctx context.Context, gameID model.GameID, board *model.Board, tiles []model.Tile) error {
	for _, t := range tiles {
		if !board.InBounds(t.Row, t.Col) {
			return fmt.Errorf("%w: (%d, %d)", model.ErrInvalidPosition, t.Row, t.Col)
		}
		if board.HasLetter(t.Row, t.Col) {
			return fmt.Errorf("%w: (%d, %d)", model.ErrCellOccupied, t.Row, t.Col)
		}
		if t.Letter == model.EmptySquare {
			return fmt.Errorf("%w: (%d, %d)", model.ErrUndesignatedBlank, t.Row, t.Col)
		}
	}
	for _, t := range tiles {
		if err := board.Place(t); err != nil {
			return err
		}
	}

	s.logger.Debug("tiles committed",
		slog.String("game_id", string(gameID)),
		slog.Int("tiles", len(tiles)),
	)
	return s.storage.SaveBoard(ctx, gameID, board)
}

// Withdraw lifts tiles off the board and saves it
func (s *Service) Withdraw(ctx context.Context, gameID model.GameID, board *model.Board, tiles []model.Tile) error {
	for _, t := range tiles {
		if err := board.Remove(t); err != nil {
			return err
		}
	}

	s.logger.Debug("tiles withdrawn",
		slog.String("game_id", string(gameID)),
		slog.Int("tiles", len(tiles)),
	)
	return s.storage.SaveBoard(ctx, gameID, board)
}

// LoadLayout builds a board from display rows such as those produced by
// Render
func (s *Service) LoadLayout(layout *model.Layout, rows []string, alph *alphabet.Alphabet) (*model.Board, error) {
	board := model.NewBoard(layout)
	if err := board.LoadLayout(rows, alph); err != nil {
		return nil, err
	}
	return board, nil
}

// ToFEN encodes a board position
func (s *Service) ToFEN(board *model.Board, alph *alphabet.Alphabet) string {
	return ToFEN(board, alph)
}

// FromFEN decodes a board position onto a layout
func (s *Service) FromFEN(layout *model.Layout, fen string, alph *alphabet.Alphabet) (*model.Board, error) {
	return FromFEN(layout, fen, alph)
}

// Render returns one display row per board row
func (s *Service) Render(board *model.Board, alph *alphabet.Alphabet) []string {
	return Render(board, alph)
}

// Interface for dependency injection
type ServiceInterface interface {
	CreateBoard(ctx context.Context, gameID model.GameID, layout *model.Layout) (*model.Board, error)
	GetBoard(ctx context.Context, gameID model.GameID) (*model.Board, error)
	SaveBoard(ctx context.Context, gameID model.GameID, board *model.Board) error
	DeleteBoard(ctx context.Context, gameID model.GameID) error
	Commit(ctx context.Context, gameID model.GameID, board *model.Board, tiles []model.Tile) error
	Withdraw(ctx context.Context, gameID model.GameID, board *model.Board, tiles []model.Tile) error
	LoadLayout(layout *model.Layout, rows []string, alph *alphabet.Alphabet) (*model.Board, error)
	ToFEN(board *model.Board, alph *alphabet.Alphabet) string
	FromFEN(layout *model.Layout, fen string, alph *alphabet.Alphabet) (*model.Board, error)
	Render(board *model.Board, alph *alphabet.Alphabet) []string
}

var _ ServiceInterface = (*Service)(nil)
