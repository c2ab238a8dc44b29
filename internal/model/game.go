package model

import (
	"slices"
	"time"
)

// GameID uniquely identifies a game record
type GameID string

// PlayerID is supplied by the caller; the record keeps no player accounts
type PlayerID string

// Game is the record of one crossword game: who plays, with which tiles and
// on which board. The board and event log are stored alongside it.
type Game struct {
	ID         GameID           `json:"id"`
	Alphabet   string           `json:"alphabet"`
	Layout     string           `json:"layout"`
	Players    []PlayerID       `json:"players"`
	Scores     map[PlayerID]int `json:"scores"`
	OnTurn     int              `json:"on_turn"`
	EventCount int              `json:"event_count"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

// HasPlayer reports whether a player takes part in the game
func (g *Game) HasPlayer(playerID PlayerID) bool {
	return slices.Contains(g.Players, playerID)
}

// CurrentPlayer returns the player on turn
func (g *Game) CurrentPlayer() PlayerID {
	if len(g.Players) == 0 {
		return ""
	}
	return g.Players[g.OnTurn%len(g.Players)]
}

// AdvanceTurn moves the on-turn marker to the next player
func (g *Game) AdvanceTurn() {
	if len(g.Players) > 0 {
		g.OnTurn = (g.OnTurn + 1) % len(g.Players)
	}
}
