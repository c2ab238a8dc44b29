package model

import "time"

// EventType identifies the kind of game event
type EventType string

const (
	EventTilePlacement      EventType = "tile_placement"
	EventPass               EventType = "pass"
	EventExchange           EventType = "exchange"
	EventChallenge          EventType = "challenge"
	EventChallengeBonus     EventType = "challenge_bonus"
	EventPhonyTilesReturned EventType = "phony_tiles_returned"
)

// GameEvent is one entry of a game's append-only event log
type GameEvent struct {
	ID       string    `json:"id"`
	PlayerID PlayerID  `json:"player_id"`
	Type     EventType `json:"type"`

	// Rack is the author's rack before the event, when known
	Rack string `json:"rack,omitempty"`

	// Placement fields. PlayedTiles uses '.' for play-through squares.
	PlayedTiles string    `json:"played_tiles,omitempty"`
	Position    string    `json:"position,omitempty"`
	Row         int       `json:"row"`
	Col         int       `json:"col"`
	Direction   Direction `json:"direction"`

	Exchanged string `json:"exchanged,omitempty"`

	Score      int `json:"score"`
	Bonus      int `json:"bonus,omitempty"`
	LostScore  int `json:"lost_score,omitempty"`
	Cumulative int `json:"cumulative"`

	CreatedAt time.Time `json:"created_at"`
}

// Turn is a maximal run of consecutive events by one author
type Turn struct {
	FirstEventIndex int         `json:"first_event_index"`
	Events          []GameEvent `json:"events"`
}

// PlayerID returns the author of the turn
func (t Turn) PlayerID() PlayerID {
	if len(t.Events) == 0 {
		return ""
	}
	return t.Events[0].PlayerID
}

// Cumulative returns the author's cumulative score after the turn
func (t Turn) Cumulative() int {
	if len(t.Events) == 0 {
		return 0
	}
	return t.Events[len(t.Events)-1].Cumulative
}

// ChallengedOff reports whether the turn is a placement that was withdrawn
func (t Turn) ChallengedOff() bool {
	return len(t.Events) == 2 &&
		t.Events[0].Type == EventTilePlacement &&
		t.Events[1].Type == EventPhonyTilesReturned
}
