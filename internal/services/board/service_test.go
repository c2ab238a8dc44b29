package board

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/cwrules/internal/alphabet"
	"github.com/mcoot/cwrules/internal/model"
	"github.com/mcoot/cwrules/internal/storage/memory"
	"github.com/mcoot/cwrules/internal/testutil"
)

const radiosFEN = "9RADIOS/9E5/6R1SI5/6U1E6/4ZINGARO4/4o3T6/4N10/3WASTE7/4T10/4I10/4O10/4N10/15/15/15"

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.service = New(s.storage, testutil.NopLogger())
	s.ctx = context.Background()
}

// CreateBoard tests

func (s *ServiceSuite) TestCreateBoardSucceeds() {
	board, err := s.service.CreateBoard(s.ctx, "game-1", model.StandardLayout)
	s.Require().NoError(err)

	s.Equal(15, board.Dim())
	s.True(board.IsEmpty())
}

func (s *ServiceSuite) TestCreateBoardIsPersisted() {
	_, err := s.service.CreateBoard(s.ctx, "game-1", model.SuperLayout)
	s.Require().NoError(err)

	retrieved, err := s.service.GetBoard(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Equal(21, retrieved.Dim())
}

// GetBoard tests

func (s *ServiceSuite) TestGetBoardNotFound() {
	_, err := s.service.GetBoard(s.ctx, "game-1")
	s.ErrorIs(err, model.ErrBoardNotFound)
}

func (s *ServiceSuite) TestDeleteBoard() {
	_, _ = s.service.CreateBoard(s.ctx, "game-1", model.StandardLayout)

	s.Require().NoError(s.service.DeleteBoard(s.ctx, "game-1"))

	_, err := s.service.GetBoard(s.ctx, "game-1")
	s.ErrorIs(err, model.ErrBoardNotFound)
}

// Commit tests

func (s *ServiceSuite) TestCommitPlacesAndSaves() {
	board, _ := s.service.CreateBoard(s.ctx, "game-1", model.StandardLayout)
	tiles := []model.Tile{{Row: 7, Col: 7, Letter: 1}, {Row: 7, Col: 8, Letter: 20}}

	err := s.service.Commit(s.ctx, "game-1", board, tiles)
	s.Require().NoError(err)

	retrieved, err := s.service.GetBoard(s.ctx, "game-1")
	s.Require().NoError(err)
	s.True(retrieved.HasLetter(7, 7))
	s.True(retrieved.HasLetter(7, 8))
}

func (s *ServiceSuite) TestCommitRejectsOccupiedSquare() {
	board := testutil.LoadBoard(testutil.RadiosRows)
	s.Require().NoError(s.service.SaveBoard(s.ctx, "game-1", board))

	err := s.service.Commit(s.ctx, "game-1", board, []model.Tile{
		{Row: 12, Col: 4, Letter: 19},
		{Row: 7, Col: 7, Letter: 1},
	})
	s.ErrorIs(err, model.ErrCellOccupied)

	// Nothing was placed
	s.False(board.HasLetter(12, 4))
}

func (s *ServiceSuite) TestCommitRejectsOffBoardTile() {
	board, _ := s.service.CreateBoard(s.ctx, "game-1", model.StandardLayout)

	err := s.service.Commit(s.ctx, "game-1", board, []model.Tile{{Row: 0, Col: 15, Letter: 1}})
	s.ErrorIs(err, model.ErrInvalidPosition)
}

func (s *ServiceSuite) TestCommitRejectsUndesignatedBlank() {
	board, _ := s.service.CreateBoard(s.ctx, "game-1", model.StandardLayout)

	err := s.service.Commit(s.ctx, "game-1", board, []model.Tile{
		{Row: 7, Col: 7, Letter: 1},
		{Row: 7, Col: 8, Letter: model.BlankLetter},
	})
	s.ErrorIs(err, model.ErrUndesignatedBlank)
	s.True(board.IsEmpty())
}

func (s *ServiceSuite) TestWithdrawRemovesTiles() {
	board, _ := s.service.CreateBoard(s.ctx, "game-1", model.StandardLayout)
	tiles := []model.Tile{{Row: 7, Col: 7, Letter: 1}}
	s.Require().NoError(s.service.Commit(s.ctx, "game-1", board, tiles))

	s.Require().NoError(s.service.Withdraw(s.ctx, "game-1", board, tiles))

	retrieved, err := s.service.GetBoard(s.ctx, "game-1")
	s.Require().NoError(err)
	s.True(retrieved.IsEmpty())
}

// LoadLayout tests

func (s *ServiceSuite) TestLoadLayout() {
	board, err := s.service.LoadLayout(model.StandardLayout, testutil.RadiosRows, alphabet.English())
	s.Require().NoError(err)
	s.Equal(31, board.TileCount())
}

func (s *ServiceSuite) TestLoadLayoutRejectsBadRows() {
	_, err := s.service.LoadLayout(model.StandardLayout, []string{"RADIOS"}, alphabet.English())
	s.ErrorIs(err, model.ErrInvalidLayout)
}

// FEN tests

func (s *ServiceSuite) TestToFEN() {
	board := testutil.LoadBoard(testutil.RadiosRows)
	s.Equal(radiosFEN, s.service.ToFEN(board, alphabet.English()))
}

func (s *ServiceSuite) TestToFENEmptyBoard() {
	board := model.NewBoard(model.StandardLayout)
	s.Equal("15/15/15/15/15/15/15/15/15/15/15/15/15/15/15", s.service.ToFEN(board, alphabet.English()))
}

func (s *ServiceSuite) TestFromFEN() {
	board, err := s.service.FromFEN(model.StandardLayout, radiosFEN, alphabet.English())
	s.Require().NoError(err)
	s.Equal(testutil.LoadBoard(testutil.RadiosRows).Letters(), board.Letters())
}

func (s *ServiceSuite) TestFENRoundTripsPacifying() {
	board := testutil.LoadBoard(testutil.PacifyingRows)
	fen := s.service.ToFEN(board, alphabet.English())

	decoded, err := s.service.FromFEN(model.StandardLayout, fen, alphabet.English())
	s.Require().NoError(err)
	s.Equal(board.Letters(), decoded.Letters())
}

func (s *ServiceSuite) TestFENBracketsMultiCodepointTiles() {
	catalan := alphabet.Catalan()
	board := model.NewBoard(model.StandardLayout)
	s.Require().NoError(board.Place(model.Tile{Row: 0, Col: 0, Letter: 16}))                              // NY
	s.Require().NoError(board.Place(model.Tile{Row: 7, Col: 7, Letter: model.MachineLetter(13).Blank()})) // l·l
	s.Require().NoError(board.Place(model.Tile{Row: 7, Col: 8, Letter: 1}))

	fen := s.service.ToFEN(board, catalan)
	s.Equal("[NY]14/15/15/15/15/15/15/7[l·l]A6/15/15/15/15/15/15/15", fen)

	decoded, err := s.service.FromFEN(model.StandardLayout, fen, catalan)
	s.Require().NoError(err)
	s.Equal(board.Letters(), decoded.Letters())
}

func (s *ServiceSuite) TestFromFENErrors() {
	english := alphabet.English()
	cases := map[string]string{
		"too few rows":     "15/15",
		"short row":        "14/15/15/15/15/15/15/15/15/15/15/15/15/15/15",
		"long row":         "16/15/15/15/15/15/15/15/15/15/15/15/15/15/15",
		"unknown letter":   "1%13/15/15/15/15/15/15/15/15/15/15/15/15/15/15",
		"unclosed bracket": "[AB/15/15/15/15/15/15/15/15/15/15/15/15/15/15",
		"two tiles in one": "[AB]14/15/15/15/15/15/15/15/15/15/15/15/15/15/15",
		"blank square":     "?14/15/15/15/15/15/15/15/15/15/15/15/15/15/15",
		"zero gap":         "0A14/15/15/15/15/15/15/15/15/15/15/15/15/15/15",
	}
	for name, fen := range cases {
		_, err := s.service.FromFEN(model.StandardLayout, fen, english)
		s.ErrorIs(err, model.ErrInvalidFEN, name)
	}
}

func (s *ServiceSuite) TestFromFENRejectsOversizedGapsEarly() {
	english := alphabet.English()

	// A gap this large must fail before any squares are allocated
	_, err := s.service.FromFEN(model.StandardLayout, "999999999/15/15/15/15/15/15/15/15/15/15/15/15/15/15", english)
	s.ErrorIs(err, model.ErrInvalidFEN)
	s.ErrorContains(err, "more than 15 squares")

	_, err = s.service.FromFEN(model.StandardLayout, "15A/15/15/15/15/15/15/15/15/15/15/15/15/15/15", english)
	s.ErrorIs(err, model.ErrInvalidFEN)
	s.ErrorContains(err, "more than 15 squares")

	_, err = s.service.FromFEN(model.StandardLayout, "99999999999999999999/15/15/15/15/15/15/15/15/15/15/15/15/15/15", english)
	s.ErrorIs(err, model.ErrInvalidFEN)
}

// Render tests

func (s *ServiceSuite) TestRenderRoundTripsThroughLoadLayout() {
	board := testutil.LoadBoard(testutil.RadiosRows)
	rows := s.service.Render(board, alphabet.English())
	s.Equal(testutil.RadiosRows, rows)

	loaded, err := s.service.LoadLayout(model.StandardLayout, rows, alphabet.English())
	s.Require().NoError(err)
	s.Equal(board.Letters(), loaded.Letters())
}

func (s *ServiceSuite) TestRenderMultiCodepointTiles() {
	board := model.NewBoard(model.StandardLayout)
	s.Require().NoError(board.Place(model.Tile{Row: 7, Col: 6, Letter: 13}))
	s.Require().NoError(board.Place(model.Tile{Row: 7, Col: 7, Letter: 1}))

	rows := s.service.Render(board, alphabet.Catalan())
	s.Equal("      L·LA       ", rows[7])
}
