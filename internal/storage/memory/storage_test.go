package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/cwrules/internal/model"
	"github.com/mcoot/cwrules/internal/testutil"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func newGame(id model.GameID) *model.Game {
	return &model.Game{
		ID:        id,
		Alphabet:  "english",
		Layout:    model.LayoutStandard,
		Players:   []model.PlayerID{"alice", "bob"},
		Scores:    map[model.PlayerID]int{"alice": 0, "bob": 0},
		CreatedAt: time.Now(),
	}
}

// Game tests

func (s *StorageSuite) TestSaveAndGetGame() {
	err := s.storage.SaveGame(s.ctx, newGame("game-1"))
	s.Require().NoError(err)

	retrieved, err := s.storage.GetGame(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Equal(model.GameID("game-1"), retrieved.ID)
	s.Equal([]model.PlayerID{"alice", "bob"}, retrieved.Players)
}

func (s *StorageSuite) TestGetGameNotFound() {
	_, err := s.storage.GetGame(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StorageSuite) TestSavedGameIsNotShared() {
	game := newGame("game-1")
	s.Require().NoError(s.storage.SaveGame(s.ctx, game))

	game.Scores["alice"] = 99
	retrieved, err := s.storage.GetGame(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Equal(0, retrieved.Scores["alice"])
}

func (s *StorageSuite) TestDeleteGame() {
	_ = s.storage.SaveGame(s.ctx, newGame("game-1"))

	err := s.storage.DeleteGame(s.ctx, "game-1")
	s.Require().NoError(err)

	_, err = s.storage.GetGame(s.ctx, "game-1")
	s.ErrorIs(err, model.ErrGameNotFound)
}

// Board tests

func (s *StorageSuite) TestSaveAndGetBoard() {
	board := testutil.LoadBoard(testutil.RadiosRows)
	err := s.storage.SaveBoard(s.ctx, "game-1", board)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetBoard(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Equal(board.Letters(), retrieved.Letters())
}

func (s *StorageSuite) TestGetBoardNotFound() {
	_, err := s.storage.GetBoard(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrBoardNotFound)
}

func (s *StorageSuite) TestBoardCopiesAreIndependent() {
	board := model.NewBoard(model.StandardLayout)
	s.Require().NoError(s.storage.SaveBoard(s.ctx, "game-1", board))

	retrieved, err := s.storage.GetBoard(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Require().NoError(retrieved.Place(model.Tile{Row: 7, Col: 7, Letter: 1}))

	again, err := s.storage.GetBoard(s.ctx, "game-1")
	s.Require().NoError(err)
	s.True(again.IsEmpty())
}

func (s *StorageSuite) TestDeleteBoard() {
	_ = s.storage.SaveBoard(s.ctx, "game-1", model.NewBoard(model.StandardLayout))

	s.Require().NoError(s.storage.DeleteBoard(s.ctx, "game-1"))

	_, err := s.storage.GetBoard(s.ctx, "game-1")
	s.ErrorIs(err, model.ErrBoardNotFound)
}

// Event tests

func (s *StorageSuite) TestAppendAndGetEvents() {
	s.Require().NoError(s.storage.AppendEvent(s.ctx, "game-1", model.GameEvent{ID: "e1", PlayerID: "alice", Type: model.EventPass}))
	s.Require().NoError(s.storage.AppendEvent(s.ctx, "game-1", model.GameEvent{ID: "e2", PlayerID: "bob", Type: model.EventExchange}))
	s.Require().NoError(s.storage.AppendEvent(s.ctx, "game-2", model.GameEvent{ID: "x", PlayerID: "carol", Type: model.EventPass}))

	events, err := s.storage.GetEvents(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Require().Len(events, 2)
	s.Equal("e1", events[0].ID)
	s.Equal("e2", events[1].ID)
}

func (s *StorageSuite) TestGetEventsForUnknownGameIsEmpty() {
	events, err := s.storage.GetEvents(s.ctx, "nonexistent")
	s.Require().NoError(err)
	s.Empty(events)
}

func (s *StorageSuite) TestDeleteEvents() {
	_ = s.storage.AppendEvent(s.ctx, "game-1", model.GameEvent{ID: "e1"})

	s.Require().NoError(s.storage.DeleteEvents(s.ctx, "game-1"))

	events, err := s.storage.GetEvents(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Empty(events)
}
