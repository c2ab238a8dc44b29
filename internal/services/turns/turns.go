// Package turns groups a flat event log into turns.
package turns

import "github.com/mcoot/cwrules/internal/model"

// Segment splits events into maximal runs by the same author. Each turn
// records the index of its first event in the log. The result is derived
// fresh on every call.
func Segment(events []model.GameEvent) []model.Turn {
	var turns []model.Turn
	for i, evt := range events {
		if n := len(turns); n > 0 && turns[n-1].PlayerID() == evt.PlayerID {
			turns[n-1].Events = append(turns[n-1].Events, evt)
			continue
		}
		turns = append(turns, model.Turn{
			FirstEventIndex: i,
			Events:          []model.GameEvent{evt},
		})
	}
	return turns
}
