package placement

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/cwrules/internal/model"
	"github.com/mcoot/cwrules/internal/testutil"
)

type PlacementSuite struct {
	suite.Suite
	board *model.Board
}

func TestPlacementSuite(t *testing.T) {
	suite.Run(t, new(PlacementSuite))
}

func (s *PlacementSuite) SetupTest() {
	s.board = testutil.LoadBoard(testutil.RadiosRows)
}

func tile(row, col int) model.Tile {
	return model.Tile{Row: row, Col: col, Letter: 1}
}

// Borders tests

func (s *PlacementSuite) TestBordersAcrossBoardLetters() {
	s.True(Borders(s.board, tile(2, 5), tile(2, 7)))
	s.True(Borders(s.board, tile(2, 7), tile(2, 10)))
	s.False(Borders(s.board, tile(2, 5), tile(2, 10)))
}

func (s *PlacementSuite) TestBordersDirectlyAdjacent() {
	s.True(Borders(s.board, tile(13, 3), tile(13, 4)))
	s.True(Borders(s.board, tile(12, 3), tile(13, 3)))
	s.False(Borders(s.board, tile(12, 3), tile(13, 4)))
}

// TouchesBoardTile tests

func (s *PlacementSuite) TestTouchesBoardTile() {
	s.True(TouchesBoardTile(s.board, tile(2, 5)))
	s.False(TouchesBoardTile(s.board, tile(2, 4)))
	s.True(TouchesBoardTile(s.board, tile(0, 14)))
	s.False(TouchesBoardTile(s.board, tile(5, 11)))
}

func (s *PlacementSuite) TestOffBoardNeighbourDoesNotTouch() {
	s.False(TouchesBoardTile(s.board, tile(14, 14)))
}

// Orientation tests

func (s *PlacementSuite) TestSingleTileWithHorizontalNeighbourIsHorizontal() {
	s.Equal(model.Horizontal, Orientation(s.board, []model.Tile{tile(2, 7)}))
}

func (s *PlacementSuite) TestSingleTileWithoutHorizontalNeighbourIsVertical() {
	s.Equal(model.Vertical, Orientation(s.board, []model.Tile{tile(12, 4)}))
	s.Equal(model.Vertical, Orientation(s.board, []model.Tile{tile(13, 13)}))
}

// Contiguous tests

func (s *PlacementSuite) TestContiguousAbsorbsBoardLetters() {
	p := testutil.Tiles(
		testutil.Tile(9, 1, "Q"),
		testutil.Tile(9, 2, "u"),
		testutil.Tile(9, 3, "A"),
		testutil.Tile(9, 5, "L"),
	)
	run, ok := Contiguous(s.board, p)
	s.Require().True(ok)
	s.Equal(model.Horizontal, run.Direction)
	s.Require().Len(run.Tiles, 5)
	s.Equal(model.Position{Row: 9, Col: 1}, run.Start())

	s.True(run.Tiles[0].Fresh)
	s.False(run.Tiles[3].Fresh)
	s.Equal(model.MachineLetter(9), run.Tiles[3].Letter) // I on the board
	s.True(run.Tiles[4].Fresh)
	s.Equal(model.PlayedTiles{17, 21 | 0x80, 1, 0, 12}, run.PlayedTiles())
}

func (s *PlacementSuite) TestContiguousSingleTileExtendsBothWays() {
	// S hooks the end of ZINGARO
	run, ok := Contiguous(s.board, testutil.Tiles(testutil.Tile(4, 11, "S")))
	s.Require().True(ok)
	s.Equal(model.Horizontal, run.Direction)
	s.Len(run.Tiles, 8)
	s.Equal(model.Position{Row: 4, Col: 4}, run.Start())
}

func (s *PlacementSuite) TestContiguousVerticalPlayThrough() {
	// Extends the N T I O N column downwards
	run, ok := Contiguous(s.board, testutil.Tiles(
		testutil.Tile(12, 4, "S"),
		testutil.Tile(13, 4, "A"),
	))
	s.Require().True(ok)
	s.Equal(model.Vertical, run.Direction)
	s.Equal(model.Position{Row: 4, Col: 4}, run.Start())
	s.Len(run.Tiles, 10)
}

func (s *PlacementSuite) TestUnbridgedGapIsIllegal() {
	_, ok := Contiguous(s.board, testutil.Tiles(
		testutil.Tile(13, 3, "A"),
		testutil.Tile(13, 5, "B"),
	))
	s.False(ok)
}

func (s *PlacementSuite) TestNonColinearIsIllegal() {
	_, ok := Contiguous(s.board, testutil.Tiles(
		testutil.Tile(12, 3, "A"),
		testutil.Tile(12, 4, "B"),
		testutil.Tile(13, 4, "C"),
	))
	s.False(ok)
}

func (s *PlacementSuite) TestDisconnectedIsIllegal() {
	_, ok := Contiguous(s.board, testutil.Tiles(
		testutil.Tile(13, 10, "A"),
		testutil.Tile(13, 11, "B"),
	))
	s.False(ok)
}

func (s *PlacementSuite) TestEmptyPlacementIsIllegal() {
	_, ok := Contiguous(s.board, model.NewPlacement())
	s.False(ok)
}

func (s *PlacementSuite) TestOffBoardTileIsIllegal() {
	_, ok := Contiguous(s.board, testutil.Tiles(
		testutil.Tile(11, 5, "A"),
		testutil.Tile(11, 15, "B"),
	))
	s.False(ok)
}

func (s *PlacementSuite) TestTileOnOccupiedSquareIsIllegal() {
	_, ok := Contiguous(s.board, testutil.Tiles(testutil.Tile(0, 9, "X")))
	s.False(ok)

	_, ok = Contiguous(s.board, testutil.Tiles(
		testutil.Tile(0, 8, "A"),
		testutil.Tile(0, 9, "B"),
	))
	s.False(ok)
}

func (s *PlacementSuite) TestSevenTilesOverAWordIsIllegal() {
	var tiles []model.Tile
	for col := 4; col <= 10; col++ {
		tiles = append(tiles, testutil.Tile(4, col, "E"))
	}
	s.False(Legal(s.board, tiles))
	_, ok := Contiguous(s.board, testutil.Tiles(tiles...))
	s.False(ok)
}

func (s *PlacementSuite) TestOpeningMustCoverCenter() {
	empty := model.NewBoard(model.StandardLayout)

	_, ok := Contiguous(empty, testutil.Tiles(
		testutil.Tile(7, 4, "C"),
		testutil.Tile(7, 5, "A"),
		testutil.Tile(7, 6, "T"),
	))
	s.False(ok)

	run, ok := Contiguous(empty, testutil.Tiles(
		testutil.Tile(7, 5, "C"),
		testutil.Tile(7, 6, "A"),
		testutil.Tile(7, 7, "T"),
	))
	s.Require().True(ok)
	s.Len(run.Tiles, 3)
}

func (s *PlacementSuite) TestOpeningOnSuperBoardUsesItsCenter() {
	empty := model.NewBoard(model.SuperLayout)
	_, ok := Contiguous(empty, testutil.Tiles(
		testutil.Tile(7, 7, "A"),
		testutil.Tile(8, 7, "T"),
	))
	s.False(ok)

	_, ok = Contiguous(empty, testutil.Tiles(
		testutil.Tile(10, 10, "A"),
		testutil.Tile(11, 10, "T"),
	))
	s.True(ok)
}

func (s *PlacementSuite) TestContiguousIsIdempotent() {
	p := testutil.Tiles(testutil.Tile(10, 2, "Q"), testutil.Tile(10, 3, "u"), testutil.Tile(10, 5, "D"))
	first, ok1 := Contiguous(s.board, p)
	second, ok2 := Contiguous(s.board, p)
	s.Equal(ok1, ok2)
	s.Equal(first, second)
}
