package memory

import (
	"context"
	"sync"

	"github.com/mcoot/cwrules/internal/model"
	"github.com/mcoot/cwrules/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	games  map[model.GameID]*model.Game
	boards map[model.GameID]*model.Board
	events map[model.GameID][]model.GameEvent
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		games:  make(map[model.GameID]*model.Game),
		boards: make(map[model.GameID]*model.Board),
		events: make(map[model.GameID][]model.GameEvent),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Game operations

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[game.ID] = copyGame(game)
	return nil
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, ok := s.games[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	return copyGame(game), nil
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, id)
	return nil
}

// Board operations. Boards are mutable, so callers always get their own copy.

func (s *Storage) SaveBoard(ctx context.Context, gameID model.GameID, board *model.Board) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.boards[gameID] = board.Clone()
	return nil
}

func (s *Storage) GetBoard(ctx context.Context, gameID model.GameID) (*model.Board, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	board, ok := s.boards[gameID]
	if !ok {
		return nil, model.ErrBoardNotFound
	}
	return board.Clone(), nil
}

func (s *Storage) DeleteBoard(ctx context.Context, gameID model.GameID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.boards, gameID)
	return nil
}

// Event log operations

func (s *Storage) AppendEvent(ctx context.Context, gameID model.GameID, event model.GameEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[gameID] = append(s.events[gameID], event)
	return nil
}

func (s *Storage) GetEvents(ctx context.Context, gameID model.GameID) ([]model.GameEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]model.GameEvent, len(s.events[gameID]))
	copy(result, s.events[gameID])
	return result, nil
}

func (s *Storage) DeleteEvents(ctx context.Context, gameID model.GameID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.events, gameID)
	return nil
}

func copyGame(g *model.Game) *model.Game {
	c := *g
	c.Players = append([]model.PlayerID(nil), g.Players...)
	c.Scores = make(map[model.PlayerID]int, len(g.Scores))
	for id, score := range g.Scores {
		c.Scores[id] = score
	}
	return &c
}
