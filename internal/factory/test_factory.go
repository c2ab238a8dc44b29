package factory

import (
	"context"
	"time"

	"github.com/mcoot/cwrules/internal/alphabet"
	"github.com/mcoot/cwrules/internal/dependencies/mocks"
	"github.com/mcoot/cwrules/internal/model"
	"github.com/mcoot/cwrules/internal/storage/memory"
	"github.com/mcoot/cwrules/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, mockClock, mockRandom, testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}

// CreateGame creates an English game on the standard board with the given ID
func (t *TestApp) CreateGame(ctx context.Context, id model.GameID, players ...model.PlayerID) (*model.Game, error) {
	t.MockRandom.QueueGameID(string(id))
	return t.GameController.CreateGame(ctx, players, alphabet.NameEnglish, model.LayoutStandard)
}

// SeedBoard replaces a game's board with a position given as rows of rune
// text, bypassing the event log
func (t *TestApp) SeedBoard(ctx context.Context, id model.GameID, rows []string) error {
	b, err := t.BoardService.LoadLayout(model.StandardLayout, rows, alphabet.English())
	if err != nil {
		return err
	}
	return t.BoardService.SaveBoard(ctx, id, b)
}
