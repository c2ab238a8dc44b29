package storage

import (
	"context"

	"github.com/mcoot/cwrules/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Game operations
	SaveGame(ctx context.Context, game *model.Game) error
	GetGame(ctx context.Context, id model.GameID) (*model.Game, error)
	DeleteGame(ctx context.Context, id model.GameID) error

	// Board operations
	SaveBoard(ctx context.Context, gameID model.GameID, board *model.Board) error
	GetBoard(ctx context.Context, gameID model.GameID) (*model.Board, error)
	DeleteBoard(ctx context.Context, gameID model.GameID) error

	// Event log operations. Events are only ever appended.
	AppendEvent(ctx context.Context, gameID model.GameID, event model.GameEvent) error
	GetEvents(ctx context.Context, gameID model.GameID) ([]model.GameEvent, error)
	DeleteEvents(ctx context.Context, gameID model.GameID) error
}
