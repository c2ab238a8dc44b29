package scoring

import (
	"github.com/mcoot/cwrules/internal/alphabet"
	"github.com/mcoot/cwrules/internal/model"
	"github.com/mcoot/cwrules/internal/services/placement"
)

// BingoBonus is awarded for playing a full rack
const BingoBonus = 50

// BingoSize is the number of tiles that earns the bingo bonus
const BingoSize = 7

// Service scores tentative plays. It holds no state and is safe to call on
// every keystroke.
type Service struct{}

// New creates a new scoring Service
func New() *Service {
	return &Service{}
}

// Score returns the score of a tentative placement. ok is false when the
// placement is not a legal play.
func (s *Service) Score(board *model.Board, p model.Placement, alph *alphabet.Alphabet) (int, bool) {
	run, ok := placement.Contiguous(board, p)
	if !ok {
		return 0, false
	}
	return s.ScoreRun(board, run, p.Len(), alph), true
}

// ScoreRun scores an already extracted run. placed is the number of tiles
// the player put down.
func (s *Service) ScoreRun(board *model.Board, run model.Run, placed int, alph *alphabet.Alphabet) int {
	crossDir := run.Direction.Cross()

	mainScore := 0
	crossScores := 0
	wordMultiplier := 1
	bingo := 0
	if placed == BingoSize {
		bingo = BingoBonus
	}

	for _, rt := range run.Tiles {
		letterMultiplier := 1
		crossWordMultiplier := 1
		if rt.Fresh {
			// Bonus squares only count under a fresh tile
			bonus := board.BonusAt(rt.Row, rt.Col)
			letterMultiplier = bonus.LetterMultiplier()
			if wm := bonus.WordMultiplier(); wm > 1 {
				wordMultiplier *= wm
				crossWordMultiplier = wm
			}
		}

		cs, realCrossWord := crossScore(board, rt.Row, rt.Col, crossDir, alph)
		ls := alph.ScoreOf(rt.Letter)
		mainScore += ls * letterMultiplier

		// cs alone can't tell a real cross word from blanks, so check both
		if realCrossWord && rt.Fresh {
			crossScores += ls*letterMultiplier*crossWordMultiplier + cs*crossWordMultiplier
		}
	}

	return mainScore*wordMultiplier + crossScores + bingo
}

// crossScore sums the board letters either side of a square along crossDir.
// The second result is true when any such letter exists.
func crossScore(board *model.Board, row, col int, crossDir model.Direction, alph *alphabet.Alphabet) (int, bool) {
	dr, dc := 1, 0
	if crossDir == model.Horizontal {
		dr, dc = 0, 1
	}

	score := 0
	actualCrossWord := false
	for _, sign := range [2]int{-1, 1} {
		r, c := row+sign*dr, col+sign*dc
		for board.HasLetter(r, c) {
			ml, _ := board.LetterAt(r, c)
			score += alph.ScoreOf(ml)
			actualCrossWord = true
			r, c = r+sign*dr, c+sign*dc
		}
	}
	return score, actualCrossWord
}

// Interface for dependency injection
type ServiceInterface interface {
	Score(board *model.Board, p model.Placement, alph *alphabet.Alphabet) (int, bool)
	ScoreRun(board *model.Board, run model.Run, placed int, alph *alphabet.Alphabet) int
}

var _ ServiceInterface = (*Service)(nil)
