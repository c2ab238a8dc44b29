package moves

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/cwrules/internal/alphabet"
	"github.com/mcoot/cwrules/internal/model"
)

type LeaveSuite struct {
	suite.Suite
	english *alphabet.Alphabet
}

func TestLeaveSuite(t *testing.T) {
	suite.Run(t, new(LeaveSuite))
}

func (s *LeaveSuite) SetupTest() {
	s.english = alphabet.English()
}

func (s *LeaveSuite) TestComputeLeave() {
	leave, err := ComputeLeave(s.english, "DOGS", "GOURDES")
	s.Require().NoError(err)
	s.Equal("ERU", leave)

	leave, err = ComputeLeave(s.english, "DOgS", "?OURDES")
	s.Require().NoError(err)
	s.Equal("ERU", leave)
}

func (s *LeaveSuite) TestComputeLeaveSkipsPlayThrough() {
	leave, err := ComputeLeave(s.english, "TRUNCa.E", "ACENRTU?")
	s.Require().NoError(err)
	s.Equal("A", leave)
}

func (s *LeaveSuite) TestComputeLeaveWithGaps() {
	leave, err := ComputeLeaveWithGaps(s.english, "AE?", "AAEIO??")
	s.Require().NoError(err)
	s.Equal("A  IO? ", leave)
}

func (s *LeaveSuite) TestComputeLeaveMultiCodepoint() {
	leave, err := ComputeLeaveWithGaps(alphabet.Catalan(), "L·LQU", "AL·LQUESOI")
	s.Require().NoError(err)
	s.Equal("A  ESOI", leave)
}

func (s *LeaveSuite) TestComputeLeaveBadRack() {
	_, err := ComputeLeave(s.english, "A", "A1")
	s.ErrorIs(err, model.ErrInvalidRune)
}

func (s *LeaveSuite) TestComputeLeaveML() {
	rack := model.MachineWord{7, 15, 21, 18, 4, 5, 19}
	played := model.PlayedTiles{4, 15, 7, 19}
	s.Equal(model.MachineWord{21, 18, 5}, ComputeLeaveML(played, rack))

	rack = model.MachineWord{0, 15, 21, 18, 4, 5, 19}
	played = model.PlayedTiles{4, 0, 15, 7 | 0x80, 19}
	s.Equal(model.MachineWord{21, 18, 5}, ComputeLeaveML(played, rack))
}

func (s *LeaveSuite) TestComputeLeaveMLIgnoresMissingTiles() {
	rack := model.MachineWord{1, 2}
	s.Equal(model.MachineWord{1, 2}, ComputeLeaveML(model.PlayedTiles{26}, rack))
}

// Summary tests

func (s *LeaveSuite) TestSummary() {
	s.Equal("alice played 8H CAT for 10 points.", Summary(model.GameEvent{
		PlayerID: "alice", Type: model.EventTilePlacement, Position: "8H", PlayedTiles: "CAT", Score: 10,
	}, s.english))
	s.Equal("bob exchanged 3 tiles.", Summary(model.GameEvent{
		PlayerID: "bob", Type: model.EventExchange, Exchanged: "AE?",
	}, s.english))
	s.Equal("bob passed their turn.", Summary(model.GameEvent{
		PlayerID: "bob", Type: model.EventPass,
	}, s.english))
	s.Equal("unhandled event: mystery", Summary(model.GameEvent{Type: "mystery"}, s.english))
}

func (s *LeaveSuite) TestSummaryCountsDigraphsAsOneTile() {
	s.Equal("bob exchanged 2 tiles.", Summary(model.GameEvent{
		PlayerID: "bob", Type: model.EventExchange, Exchanged: "L·LQU",
	}, alphabet.Catalan()))
}
