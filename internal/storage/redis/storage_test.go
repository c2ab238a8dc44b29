package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/cwrules/internal/model"
	"github.com/mcoot/cwrules/internal/testutil"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.RecordTTL = time.Hour

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

// Game tests

func (s *StorageSuite) TestSaveAndGetGame() {
	game := &model.Game{
		ID:        "game-1",
		Alphabet:  "catalan",
		Layout:    model.LayoutStandard,
		Players:   []model.PlayerID{"alice", "bob"},
		Scores:    map[model.PlayerID]int{"alice": 12, "bob": 0},
		CreatedAt: time.Now(),
	}

	err := s.storage.SaveGame(s.ctx, game)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetGame(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Equal(game.ID, retrieved.ID)
	s.Equal("catalan", retrieved.Alphabet)
	s.Equal(12, retrieved.Scores["alice"])
}

func (s *StorageSuite) TestGetGameNotFound() {
	_, err := s.storage.GetGame(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StorageSuite) TestGameTTL() {
	_ = s.storage.SaveGame(s.ctx, &model.Game{ID: "game-1"})

	ttl := s.mini.TTL(keysFor("game-1").game)
	s.Equal(time.Hour, ttl)
}

func (s *StorageSuite) TestWritesRenewTheWholeRecord() {
	s.Require().NoError(s.storage.SaveGame(s.ctx, &model.Game{ID: "game-1"}))
	s.Require().NoError(s.storage.SaveBoard(s.ctx, "game-1", model.NewBoard(model.StandardLayout)))

	s.mini.FastForward(50 * time.Minute)
	s.Require().NoError(s.storage.AppendEvent(s.ctx, "game-1", model.GameEvent{ID: "e1"}))

	keys := keysFor("game-1")
	for _, k := range keys.all() {
		s.Equal(time.Hour, s.mini.TTL(k), k)
	}

	s.mini.FastForward(61 * time.Minute)
	_, err := s.storage.GetGame(s.ctx, "game-1")
	s.ErrorIs(err, model.ErrGameNotFound)
	_, err = s.storage.GetBoard(s.ctx, "game-1")
	s.ErrorIs(err, model.ErrBoardNotFound)
}

func (s *StorageSuite) TestRecordKeysShareAHashTag() {
	for _, k := range keysFor("GAME01").all() {
		s.Contains(k, "{GAME01}")
	}
}

func (s *StorageSuite) TestDeleteGame() {
	_ = s.storage.SaveGame(s.ctx, &model.Game{ID: "game-1"})

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
	s.Equal(model.TripleWord, retrieved.BonusAt(0, 0))
	s.False(retrieved.IsEmpty())
}

func (s *StorageSuite) TestGetBoardNotFound() {
	_, err := s.storage.GetBoard(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrBoardNotFound)
}

func (s *StorageSuite) TestDeleteBoard() {
	_ = s.storage.SaveBoard(s.ctx, "game-1", model.NewBoard(model.SuperLayout))

	s.Require().NoError(s.storage.DeleteBoard(s.ctx, "game-1"))
	s.False(s.mini.Exists(keysFor("game-1").board))
}

// Event tests

func (s *StorageSuite) TestAppendAndGetEvents() {
	first := model.GameEvent{
		ID:          "e1",
		PlayerID:    "alice",
		Type:        model.EventTilePlacement,
		PlayedTiles: "QuA",
		Position:    "10B",
		Row:         9,
		Col:         1,
		Direction:   model.Horizontal,
		Score:       32,
		Cumulative:  32,
	}
	second := model.GameEvent{ID: "e2", PlayerID: "bob", Type: model.EventPass}

	s.Require().NoError(s.storage.AppendEvent(s.ctx, "game-1", first))
	s.Require().NoError(s.storage.AppendEvent(s.ctx, "game-1", second))

	events, err := s.storage.GetEvents(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Require().Len(events, 2)
	s.Equal("QuA", events[0].PlayedTiles)
	s.Equal(32, events[0].Cumulative)
	s.Equal(model.EventPass, events[1].Type)

	list, err := s.mini.List(keysFor("game-1").events)
	s.Require().NoError(err)
	s.Len(list, 2)
	s.Equal(time.Hour, s.mini.TTL(keysFor("game-1").events))
}

func (s *StorageSuite) TestGetEventsForUnknownGameIsEmpty() {
	events, err := s.storage.GetEvents(s.ctx, "nonexistent")
	s.Require().NoError(err)
	s.Empty(events)
}

func (s *StorageSuite) TestGetEventsRejectsCorruptEntries() {
	_, err := s.mini.RPush(keysFor("game-1").events, "not json")
	s.Require().NoError(err)

	_, err = s.storage.GetEvents(s.ctx, "game-1")
	s.Error(err)
}

func (s *StorageSuite) TestDeleteEvents() {
	_ = s.storage.AppendEvent(s.ctx, "game-1", model.GameEvent{ID: "e1"})

	s.Require().NoError(s.storage.DeleteEvents(s.ctx, "game-1"))

	events, err := s.storage.GetEvents(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Empty(events)
}
