package request

import (
	"fmt"

	"github.com/mcoot/cwrules/internal/alphabet"
	"github.com/mcoot/cwrules/internal/model"
)

// Tile is a letter on a square. Letter is rune text in the alphabet: upper
// case for a tile, lower case for a designated blank and "?" for a blank.
type Tile struct {
	Row    int    `json:"row"`
	Col    int    `json:"col"`
	Letter string `json:"letter"`
}

// ToModel encodes the tile's letter
func (t Tile) ToModel(alph *alphabet.Alphabet) (model.Tile, error) {
	w, err := alph.Tokenize(t.Letter)
	if err != nil {
		return model.Tile{}, err
	}
	if len(w) != 1 {
		return model.Tile{}, fmt.Errorf("%w: %q is not a single tile", model.ErrInvalidRune, t.Letter)
	}
	return model.Tile{Row: t.Row, Col: t.Col, Letter: w[0]}, nil
}

// Tiles encodes a list of request tiles
func Tiles(alph *alphabet.Alphabet, tiles []Tile) ([]model.Tile, error) {
	out := make([]model.Tile, 0, len(tiles))
	for _, t := range tiles {
		mt, err := t.ToModel(alph)
		if err != nil {
			return nil, err
		}
		out = append(out, mt)
	}
	return out, nil
}

// TokenizeRequest is the request body for tokenizing text
type TokenizeRequest struct {
	Text string `json:"text"`
}

// DecodeRequest is the request body for decoding machine letters. Played
// renders zeros as play-through squares rather than blanks.
type DecodeRequest struct {
	Letters []int `json:"letters"`
	Played  bool  `json:"played,omitempty"`
}

// ScoreRequest is the request body for scoring a tentative play on a
// board given either as FEN or as display rows. With neither the board is
// empty.
type ScoreRequest struct {
	Alphabet string   `json:"alphabet,omitempty"`
	Layout   string   `json:"layout,omitempty"`
	FEN      string   `json:"fen,omitempty"`
	Rows     []string `json:"rows,omitempty"`
	Tiles    []Tile   `json:"tiles"`
}

// CreateGameRequest is the request body for creating a game
type CreateGameRequest struct {
	Players  []string `json:"players"`
	Alphabet string   `json:"alphabet,omitempty"`
	Layout   string   `json:"layout,omitempty"`
}

// PlayRequest is the request body for a tile placement, given either as
// tiles or as move notation (coords plus word)
type PlayRequest struct {
	PlayerID string `json:"player_id"`
	Rack     string `json:"rack,omitempty"`
	Tiles    []Tile `json:"tiles,omitempty"`
	Coords   string `json:"coords,omitempty"`
	Word     string `json:"word,omitempty"`
}

// PassRequest is the request body for passing
type PassRequest struct {
	PlayerID string `json:"player_id"`
}

// ExchangeRequest is the request body for exchanging tiles
type ExchangeRequest struct {
	PlayerID string `json:"player_id"`
	Rack     string `json:"rack,omitempty"`
	Tiles    string `json:"tiles"`
}

// ChallengeRequest is the request body for an unsuccessful challenge
type ChallengeRequest struct {
	Challenger string `json:"challenger"`
}

// ChallengeBonusRequest is the request body for awarding a challenge bonus
type ChallengeBonusRequest struct {
	Bonus int `json:"bonus"`
}
