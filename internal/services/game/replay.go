package game

import (
	"context"
	"fmt"

	"github.com/mcoot/cwrules/internal/alphabet"
	"github.com/mcoot/cwrules/internal/model"
	"github.com/mcoot/cwrules/internal/services/turns"
)

// Replay is a game position rebuilt from its event log
type Replay struct {
	Board  *model.Board                `json:"board"`
	Scores map[model.PlayerID]int      `json:"scores"`
	Pool   map[model.MachineLetter]int `json:"pool"` // tiles not on the board
	Turns  int                         `json:"turns"`
}

// Replay rebuilds the board and scores turn by turn. Plays that were
// challenged off never reach the board.
func (c *Controller) Replay(ctx context.Context, gameID model.GameID) (*Replay, error) {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	events, err := c.storage.GetEvents(ctx, gameID)
	if err != nil {
		return nil, err
	}
	layout, err := model.LayoutByName(game.Layout)
	if err != nil {
		return nil, err
	}
	alph := alphabet.FromName(game.Alphabet)

	boardObj := model.NewBoard(layout)
	scores := make(map[model.PlayerID]int, len(game.Players))
	for _, p := range game.Players {
		scores[p] = 0
	}

	segmented := turns.Segment(events)
	for _, turn := range segmented {
		scores[turn.PlayerID()] = turn.Cumulative()
		if turn.ChallengedOff() {
			continue
		}

		var lastPlaced []model.Tile
		for _, evt := range turn.Events {
			switch evt.Type {
			case model.EventTilePlacement:
				tiles, err := placedTiles(evt, alph)
				if err != nil {
					return nil, err
				}
				for _, t := range tiles {
					if err := boardObj.Place(t); err != nil {
						return nil, err
					}
				}
				lastPlaced = tiles
			case model.EventPhonyTilesReturned:
				for _, t := range lastPlaced {
					if err := boardObj.Remove(t); err != nil {
						return nil, err
					}
				}
				lastPlaced = nil
			}
		}
	}

	return &Replay{
		Board:  boardObj,
		Scores: scores,
		Pool:   Unseen(boardObj, alph),
		Turns:  len(segmented),
	}, nil
}

// Unseen returns the bag distribution less every tile on the board.
// Designated blanks count against the blanks.
func Unseen(board *model.Board, alph *alphabet.Alphabet) map[model.MachineLetter]int {
	pool := alph.Distribution()
	for _, ml := range board.Letters() {
		if ml == model.EmptySquare {
			continue
		}
		tile := ml.IntrinsicTile()
		if pool[tile] > 1 {
			pool[tile]--
		} else {
			delete(pool, tile)
		}
	}
	return pool
}

// placedTiles recovers the tiles a placement event put on the board
func placedTiles(evt model.GameEvent, alph *alphabet.Alphabet) ([]model.Tile, error) {
	letters, err := alph.TokenizePlayed(evt.PlayedTiles)
	if err != nil {
		return nil, fmt.Errorf("event %s: %w", evt.ID, err)
	}

	dr, dc := 0, 1
	if evt.Direction == model.Vertical {
		dr, dc = 1, 0
	}

	var tiles []model.Tile
	for i, ml := range letters {
		if ml == model.PlayThrough {
			continue
		}
		tiles = append(tiles, model.Tile{Row: evt.Row + i*dr, Col: evt.Col + i*dc, Letter: ml})
	}
	if len(tiles) == 0 {
		return nil, fmt.Errorf("event %s: %w", evt.ID, model.ErrEmptyPlacement)
	}
	return tiles, nil
}
