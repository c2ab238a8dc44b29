package redis

import "github.com/mcoot/cwrules/internal/model"

const keyPrefix = "cwrules"

// recordKeys names the keys of one game record. The braces make the game ID
// a hash tag, so a cluster keeps the keys in one slot and a transaction may
// touch them all.
type recordKeys struct {
	game   string
	board  string
	events string
}

func keysFor(id model.GameID) recordKeys {
	base := keyPrefix + ":{" + string(id) + "}"
	return recordKeys{
		game:   base + ":game",
		board:  base + ":board",
		events: base + ":events",
	}
}

func (k recordKeys) all() []string {
	return []string{k.game, k.board, k.events}
}
