package moves

import (
	"sort"
	"strings"

	"github.com/mcoot/cwrules/internal/alphabet"
	"github.com/mcoot/cwrules/internal/model"
)

// ComputeLeaveWithGaps removes the tiles used by a play or exchange from a
// rack, leaving a space where each used tile was. played is move text such
// as "TRUNCa.E" or exchange text such as "AE?"; a designated blank uses up
// a '?'.
func ComputeLeaveWithGaps(alph *alphabet.Alphabet, played, rack string) (string, error) {
	leave, err := leaveRunes(alph, played, rack)
	if err != nil {
		return "", err
	}
	for i, r := range leave {
		if r == "" {
			leave[i] = " "
		}
	}
	return strings.Join(leave, ""), nil
}

// ComputeLeave returns the sorted tiles left on the rack after a play
func ComputeLeave(alph *alphabet.Alphabet, played, rack string) (string, error) {
	leave, err := leaveRunes(alph, played, rack)
	if err != nil {
		return "", err
	}
	kept := leave[:0]
	for _, r := range leave {
		if r != "" {
			kept = append(kept, r)
		}
	}
	sort.Strings(kept)
	return strings.Join(kept, ""), nil
}

func leaveRunes(alph *alphabet.Alphabet, played, rack string) ([]string, error) {
	leave, err := alph.TokenizeToRunes(rack)
	if err != nil {
		return nil, err
	}
	used, err := alph.TokenizeToRunes(played)
	if err != nil {
		return nil, err
	}

	for _, r := range used {
		if r == alphabet.PlayThroughRune {
			continue
		}
		w, _ := alph.Tokenize(r)
		if len(w) == 1 && w[0].IsDesignatedBlank() {
			r = alphabet.BlankRune
		}
		// Later duplicates go first; gaps are marked with "" so they never match
		for i := len(leave) - 1; i >= 0; i-- {
			if leave[i] == r {
				leave[i] = ""
				break
			}
		}
	}
	return leave, nil
}

// ComputeLeaveML is ComputeLeave over machine letters. Play-through
// markers are skipped and the remaining rack keeps its order.
func ComputeLeaveML(played model.PlayedTiles, rack model.MachineWord) model.MachineWord {
	used := make([]bool, len(rack))
	for _, ml := range played {
		if ml == model.PlayThrough {
			continue
		}
		want := ml.IntrinsicTile()
		for i := len(rack) - 1; i >= 0; i-- {
			if !used[i] && rack[i] == want {
				used[i] = true
				break
			}
		}
	}

	leave := make(model.MachineWord, 0, len(rack))
	for i, ml := range rack {
		if !used[i] {
			leave = append(leave, ml)
		}
	}
	return leave
}
