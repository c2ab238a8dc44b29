package moves

import (
	"fmt"
	"unicode/utf8"

	"github.com/mcoot/cwrules/internal/alphabet"
	"github.com/mcoot/cwrules/internal/model"
)

// Summary describes an event in one line, e.g. "alice played 8H CAT for
// 10 points."
func Summary(evt model.GameEvent, alph *alphabet.Alphabet) string {
	player := evt.PlayerID
	switch evt.Type {
	case model.EventTilePlacement:
		return fmt.Sprintf("%s played %s %s for %d points.", player, evt.Position, evt.PlayedTiles, evt.Score)
	case model.EventExchange:
		return fmt.Sprintf("%s exchanged %d tiles.", player, tileCount(evt.Exchanged, alph))
	case model.EventPass:
		return fmt.Sprintf("%s passed their turn.", player)
	case model.EventChallenge:
		return fmt.Sprintf("%s lost their turn to an unsuccessful challenge.", player)
	case model.EventChallengeBonus:
		return fmt.Sprintf("%s received a challenge bonus of %d points.", player, evt.Bonus)
	case model.EventPhonyTilesReturned:
		return fmt.Sprintf("%s had their play challenged off, losing %d points.", player, evt.LostScore)
	default:
		return fmt.Sprintf("unhandled event: %s", evt.Type)
	}
}

func tileCount(text string, alph *alphabet.Alphabet) int {
	runes, err := alph.TokenizeToRunes(text)
	if err != nil {
		return utf8.RuneCountInString(text)
	}
	return len(runes)
}
