package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/cwrules/internal/model"
	"github.com/mcoot/cwrules/internal/storage"
)

// Storage keeps each game record in three keys: the game as JSON, the board
// as JSON, and the event log as a LIST of JSON events.
type Storage struct {
	client *redis.Client
	cfg    Config
}

var _ storage.Storage = (*Storage)(nil)

// New connects and pings the server
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return NewWithClient(client, cfg), nil
}

func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{client: client, cfg: cfg}
}

func (s *Storage) Close() error {
	return s.client.Close()
}

// write runs fn in a MULTI/EXEC and renews the whole record's expiry
func (s *Storage) write(ctx context.Context, id model.GameID, fn func(redis.Pipeliner, recordKeys)) error {
	keys := keysFor(id)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		fn(pipe, keys)
		if s.cfg.RecordTTL > 0 {
			for _, k := range keys.all() {
				pipe.Expire(ctx, k, s.cfg.RecordTTL)
			}
		}
		return nil
	})
	return err
}

func (s *Storage) getJSON(ctx context.Context, key string, notFound error, dst any) error {
	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return notFound
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decoding %s: %w", key, err)
	}
	return nil
}

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	data, err := json.Marshal(game)
	if err != nil {
		return err
	}
	return s.write(ctx, game.ID, func(pipe redis.Pipeliner, k recordKeys) {
		pipe.Set(ctx, k.game, data, 0)
	})
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	var game model.Game
	if err := s.getJSON(ctx, keysFor(id).game, model.ErrGameNotFound, &game); err != nil {
		return nil, err
	}
	return &game, nil
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	return s.client.Del(ctx, keysFor(id).game).Err()
}

func (s *Storage) SaveBoard(ctx context.Context, gameID model.GameID, board *model.Board) error {
	data, err := json.Marshal(board)
	if err != nil {
		return err
	}
	return s.write(ctx, gameID, func(pipe redis.Pipeliner, k recordKeys) {
		pipe.Set(ctx, k.board, data, 0)
	})
}

func (s *Storage) GetBoard(ctx context.Context, gameID model.GameID) (*model.Board, error) {
	var board model.Board
	if err := s.getJSON(ctx, keysFor(gameID).board, model.ErrBoardNotFound, &board); err != nil {
		return nil, err
	}
	return &board, nil
}

func (s *Storage) DeleteBoard(ctx context.Context, gameID model.GameID) error {
	return s.client.Del(ctx, keysFor(gameID).board).Err()
}

func (s *Storage) AppendEvent(ctx context.Context, gameID model.GameID, event model.GameEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return s.write(ctx, gameID, func(pipe redis.Pipeliner, k recordKeys) {
		pipe.RPush(ctx, k.events, data)
	})
}

func (s *Storage) GetEvents(ctx context.Context, gameID model.GameID) ([]model.GameEvent, error) {
	values, err := s.client.LRange(ctx, keysFor(gameID).events, 0, -1).Result()
	if err != nil {
		return nil, err
	}

	events := make([]model.GameEvent, 0, len(values))
	for i, val := range values {
		var event model.GameEvent
		if err := json.Unmarshal([]byte(val), &event); err != nil {
			return nil, fmt.Errorf("decoding event %d of game %s: %w", i, gameID, err)
		}
		events = append(events, event)
	}
	return events, nil
}

func (s *Storage) DeleteEvents(ctx context.Context, gameID model.GameID) error {
	return s.client.Del(ctx, keysFor(gameID).events).Err()
}
