package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/mcoot/cwrules/internal/alphabet"
	"github.com/mcoot/cwrules/internal/dependencies/clock"
	"github.com/mcoot/cwrules/internal/dependencies/random"
	"github.com/mcoot/cwrules/internal/model"
	"github.com/mcoot/cwrules/internal/services/board"
	"github.com/mcoot/cwrules/internal/services/moves"
	"github.com/mcoot/cwrules/internal/services/placement"
	"github.com/mcoot/cwrules/internal/services/scoring"
	"github.com/mcoot/cwrules/internal/services/turns"
	"github.com/mcoot/cwrules/internal/storage"
)

// Controller keeps game records: one board and an append-only event log per
// game. It validates and scores plays but does not run a game lifecycle.
type Controller struct {
	storage        storage.Storage
	boardService   board.ServiceInterface
	scoringService scoring.ServiceInterface
	clock          clock.Clock
	random         random.Random
	logger         *slog.Logger

	// mu serializes appends so the event log and cumulative scores agree
	mu sync.Mutex
}

// NewController creates a new game Controller
func NewController(
	storage storage.Storage,
	boardService board.ServiceInterface,
	scoringService scoring.ServiceInterface,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:        storage,
		boardService:   boardService,
		scoringService: scoringService,
		clock:          clock,
		random:         random,
		logger:         logger,
	}
}

// CreateGame starts a record for two or more players. Empty alphabet and
// layout names select English on the standard board.
func (c *Controller) CreateGame(ctx context.Context, players []model.PlayerID, alphabetName, layoutName string) (*model.Game, error) {
	if len(players) < 2 {
		return nil, model.ErrInsufficientPlayers
	}
	for i, p := range players {
		if p == "" || slices.Contains(players[:i], p) {
			return nil, fmt.Errorf("%w: player ids must be distinct and non-empty", model.ErrInsufficientPlayers)
		}
	}

	if alphabetName == "" {
		alphabetName = alphabet.NameEnglish
	}
	alph, err := alphabet.Lookup(alphabetName)
	if err != nil {
		return nil, err
	}
	layout, err := model.LayoutByName(layoutName)
	if err != nil {
		return nil, err
	}

	now := c.clock.Now()
	gameID := model.GameID(c.random.GameID())

	scores := make(map[model.PlayerID]int, len(players))
	for _, p := range players {
		scores[p] = 0
	}

	game := &model.Game{
		ID:        gameID,
		Alphabet:  alph.Name(),
		Layout:    layout.Name(),
		Players:   append([]model.PlayerID(nil), players...),
		Scores:    scores,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := c.boardService.CreateBoard(ctx, gameID, layout); err != nil {
		return nil, err
	}

	if err := c.storage.SaveGame(ctx, game); err != nil {
		c.logger.Error("failed to save game",
			slog.String("game_id", string(game.ID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.logger.Info("game created",
		slog.String("game_id", string(gameID)),
		slog.String("alphabet", game.Alphabet),
		slog.String("layout", game.Layout),
		slog.Int("player_count", len(players)),
	)

	return game, nil
}

// GetGame retrieves a game by ID
func (c *Controller) GetGame(ctx context.Context, gameID model.GameID) (*model.Game, error) {
	return c.getGame(ctx, gameID)
}

// DeleteGame removes a game together with its board and event log
func (c *Controller) DeleteGame(ctx context.Context, gameID model.GameID) error {
	if _, err := c.storage.GetGame(ctx, gameID); err != nil {
		return err
	}
	if err := c.storage.DeleteEvents(ctx, gameID); err != nil {
		return err
	}
	if err := c.boardService.DeleteBoard(ctx, gameID); err != nil {
		return err
	}
	if err := c.storage.DeleteGame(ctx, gameID); err != nil {
		return err
	}

	c.logger.Info("game deleted", slog.String("game_id", string(gameID)))
	return nil
}

// PlaceTiles validates, scores and commits a play given as board tiles. An
// empty rack skips the rack check.
func (c *Controller) PlaceTiles(ctx context.Context, gameID model.GameID, playerID model.PlayerID, rack string, tiles []model.Tile) (*model.GameEvent, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	game, boardObj, alph, err := c.load(ctx, gameID, playerID)
	if err != nil {
		return nil, err
	}

	p := model.NewPlacement(tiles...)
	if p.Len() == 0 {
		return nil, model.ErrEmptyPlacement
	}
	if p.Len() != len(tiles) {
		return nil, fmt.Errorf("%w: two tiles on one square", model.ErrIllegalPlacement)
	}
	for _, t := range tiles {
		if boardObj.HasLetter(t.Row, t.Col) {
			return nil, fmt.Errorf("%w: (%d, %d)", model.ErrCellOccupied, t.Row, t.Col)
		}
	}

	return c.commitPlay(ctx, game, boardObj, alph, playerID, rack, p)
}

// PlayNotation validates, scores and commits a play written in move
// notation, e.g. coordinates "8H" and word "CAT" or "OX.P"
func (c *Controller) PlayNotation(ctx context.Context, gameID model.GameID, playerID model.PlayerID, rack, coords, word string) (*model.GameEvent, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	game, boardObj, alph, err := c.load(ctx, gameID, playerID)
	if err != nil {
		return nil, err
	}

	letters, err := alph.TokenizePlayed(word)
	if err != nil {
		return nil, err
	}
	p, err := moves.PlacementFromNotation(boardObj, coords, letters)
	if err != nil {
		return nil, err
	}

	return c.commitPlay(ctx, game, boardObj, alph, playerID, rack, p)
}

func (c *Controller) commitPlay(
	ctx context.Context,
	game *model.Game,
	boardObj *model.Board,
	alph *alphabet.Alphabet,
	playerID model.PlayerID,
	rack string,
	p model.Placement,
) (*model.GameEvent, error) {
	run, ok := placement.Contiguous(boardObj, p)
	if !ok {
		return nil, model.ErrIllegalPlacement
	}
	move, ok := moves.FromRun(run)
	if !ok {
		return nil, model.ErrUndesignatedBlank
	}

	canonicalRack, err := c.checkRack(alph, rack, move.Letters.Tiles())
	if err != nil {
		return nil, err
	}

	score := c.scoringService.ScoreRun(boardObj, run, p.Len(), alph)
	tiles := p.Tiles()
	if err := c.boardService.Commit(ctx, game.ID, boardObj, tiles); err != nil {
		return nil, err
	}

	event := model.GameEvent{
		PlayerID:    playerID,
		Type:        model.EventTilePlacement,
		Rack:        canonicalRack,
		PlayedTiles: alph.DecodePlayed(move.Letters),
		Position:    move.Position,
		Row:         move.Row,
		Col:         move.Col,
		Direction:   move.Direction,
		Score:       score,
		Cumulative:  game.Scores[playerID] + score,
	}
	recorded, err := c.record(ctx, game, event, func() error {
		return c.boardService.Withdraw(ctx, game.ID, boardObj, tiles)
	})
	if err != nil {
		return nil, err
	}

	c.logger.Info("tiles played",
		slog.String("game_id", string(game.ID)),
		slog.String("player_id", string(playerID)),
		slog.String("position", move.Position),
		slog.Int("score", score),
	)
	return recorded, nil
}

// Pass records a passed turn
func (c *Controller) Pass(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (*model.GameEvent, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	game, _, _, err := c.load(ctx, gameID, playerID)
	if err != nil {
		return nil, err
	}

	event := model.GameEvent{
		PlayerID:   playerID,
		Type:       model.EventPass,
		Cumulative: game.Scores[playerID],
	}
	return c.record(ctx, game, event, nil)
}

// Exchange records an exchange of tiles. An empty rack skips the rack check.
func (c *Controller) Exchange(ctx context.Context, gameID model.GameID, playerID model.PlayerID, rack, tiles string) (*model.GameEvent, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	game, _, alph, err := c.load(ctx, gameID, playerID)
	if err != nil {
		return nil, err
	}

	exchanged, err := alph.Tokenize(tiles)
	if err != nil {
		return nil, err
	}
	if len(exchanged) == 0 {
		return nil, fmt.Errorf("%w: nothing to exchange", model.ErrEmptyPlacement)
	}
	for i, ml := range exchanged {
		exchanged[i] = ml.IntrinsicTile()
	}

	canonicalRack, err := c.checkRack(alph, rack, exchanged)
	if err != nil {
		return nil, err
	}

	event := model.GameEvent{
		PlayerID:   playerID,
		Type:       model.EventExchange,
		Rack:       canonicalRack,
		Exchanged:  alph.Decode(exchanged),
		Cumulative: game.Scores[playerID],
	}
	return c.record(ctx, game, event, nil)
}

// ChallengeOff withdraws the last play: its tiles leave the board and its
// author loses the points it scored
func (c *Controller) ChallengeOff(ctx context.Context, gameID model.GameID) (*model.GameEvent, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	game, err := c.getGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	last, err := c.lastPlacement(ctx, gameID)
	if err != nil {
		return nil, err
	}
	boardObj, err := c.boardService.GetBoard(ctx, gameID)
	if err != nil {
		return nil, err
	}
	alph := alphabet.FromName(game.Alphabet)

	tiles, err := placedTiles(*last, alph)
	if err != nil {
		return nil, err
	}
	if err := c.boardService.Withdraw(ctx, gameID, boardObj, tiles); err != nil {
		return nil, err
	}

	event := model.GameEvent{
		PlayerID:   last.PlayerID,
		Type:       model.EventPhonyTilesReturned,
		LostScore:  last.Score,
		Cumulative: game.Scores[last.PlayerID] - last.Score,
	}
	recorded, err := c.record(ctx, game, event, func() error {
		return c.boardService.Commit(ctx, gameID, boardObj, tiles)
	})
	if err != nil {
		return nil, err
	}

	c.logger.Info("play challenged off",
		slog.String("game_id", string(gameID)),
		slog.String("player_id", string(last.PlayerID)),
		slog.Int("score", last.Score),
	)
	return recorded, nil
}

// ChallengeBonus awards the author of the last play a bonus for a failed
// challenge against it
func (c *Controller) ChallengeBonus(ctx context.Context, gameID model.GameID, bonus int) (*model.GameEvent, error) {
	if bonus < 0 {
		return nil, model.ErrInvalidBonus
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	game, err := c.getGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	last, err := c.lastPlacement(ctx, gameID)
	if err != nil {
		return nil, err
	}

	event := model.GameEvent{
		PlayerID:   last.PlayerID,
		Type:       model.EventChallengeBonus,
		Bonus:      bonus,
		Cumulative: game.Scores[last.PlayerID] + bonus,
	}
	return c.record(ctx, game, event, nil)
}

// UnsuccessfulChallenge records that a challenger lost their turn
func (c *Controller) UnsuccessfulChallenge(ctx context.Context, gameID model.GameID, challenger model.PlayerID) (*model.GameEvent, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	game, _, _, err := c.load(ctx, gameID, challenger)
	if err != nil {
		return nil, err
	}

	event := model.GameEvent{
		PlayerID:   challenger,
		Type:       model.EventChallenge,
		Cumulative: game.Scores[challenger],
	}
	return c.record(ctx, game, event, nil)
}

// Events returns a game's full event log
func (c *Controller) Events(ctx context.Context, gameID model.GameID) ([]model.GameEvent, error) {
	if _, err := c.storage.GetGame(ctx, gameID); err != nil {
		return nil, err
	}
	return c.storage.GetEvents(ctx, gameID)
}

// Turns groups a game's event log into turns
func (c *Controller) Turns(ctx context.Context, gameID model.GameID) ([]model.Turn, error) {
	events, err := c.Events(ctx, gameID)
	if err != nil {
		return nil, err
	}
	return turns.Segment(events), nil
}

// Summaries describes each event of a game in one line
func (c *Controller) Summaries(ctx context.Context, gameID model.GameID) ([]string, error) {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	events, err := c.storage.GetEvents(ctx, gameID)
	if err != nil {
		return nil, err
	}

	alph := alphabet.FromName(game.Alphabet)
	summaries := make([]string, len(events))
	for i, evt := range events {
		summaries[i] = moves.Summary(evt, alph)
	}
	return summaries, nil
}

// load fetches the pieces every move needs and checks the player takes part
func (c *Controller) load(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (*model.Game, *model.Board, *alphabet.Alphabet, error) {
	game, err := c.getGame(ctx, gameID)
	if err != nil {
		return nil, nil, nil, err
	}
	if !game.HasPlayer(playerID) {
		return nil, nil, nil, model.ErrPlayerNotFound
	}
	boardObj, err := c.boardService.GetBoard(ctx, gameID)
	if err != nil {
		return nil, nil, nil, err
	}
	return game, boardObj, alphabet.FromName(game.Alphabet), nil
}

// checkRack confirms the tiles come from the rack and returns the rack in
// canonical form. An empty rack is not checked.
func (c *Controller) checkRack(alph *alphabet.Alphabet, rack string, tiles model.MachineWord) (string, error) {
	if rack == "" {
		return "", nil
	}
	rackWord, err := alph.Tokenize(rack)
	if err != nil {
		return "", err
	}
	left := slices.Clone(rackWord)
	for _, ml := range tiles {
		i := slices.Index(left, ml)
		if i < 0 {
			return "", fmt.Errorf("%w: %s from %s", model.ErrTilesNotOnRack, alph.Decode(tiles), alph.Decode(rackWord))
		}
		left = slices.Delete(left, i, i+1)
	}
	return alph.Decode(rackWord), nil
}

// record stamps and stores an event, then updates the game's scores. The
// event log is written first and is authoritative: when the append fails,
// undo reverts any board change the move already saved. A game record left
// behind by a failed save is brought up to date by getGame.
func (c *Controller) record(ctx context.Context, game *model.Game, event model.GameEvent, undo func() error) (*model.GameEvent, error) {
	now := c.clock.Now()
	event.ID = c.random.EventID()
	event.CreatedAt = now

	if err := c.storage.AppendEvent(ctx, game.ID, event); err != nil {
		c.logger.Error("failed to append event",
			slog.String("game_id", string(game.ID)),
			slog.String("type", string(event.Type)),
			slog.String("error", err.Error()),
		)
		if undo != nil {
			if undoErr := undo(); undoErr != nil {
				c.logger.Error("failed to revert board",
					slog.String("game_id", string(game.ID)),
					slog.String("error", undoErr.Error()),
				)
				return nil, errors.Join(err, undoErr)
			}
		}
		return nil, err
	}

	apply(game, event)
	if err := c.storage.SaveGame(ctx, game); err != nil {
		c.logger.Error("failed to save game after event",
			slog.String("game_id", string(game.ID)),
			slog.String("event_id", event.ID),
			slog.String("error", err.Error()),
		)
		return nil, err
	}
	return &event, nil
}

// apply folds one logged event into the game record
func apply(game *model.Game, event model.GameEvent) {
	game.Scores[event.PlayerID] = event.Cumulative
	game.EventCount++
	game.AdvanceTurn()
	game.UpdatedAt = event.CreatedAt
}

// getGame fetches a game and replays any logged events its record has not
// caught up with
func (c *Controller) getGame(ctx context.Context, gameID model.GameID) (*model.Game, error) {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	events, err := c.storage.GetEvents(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if len(events) <= game.EventCount {
		return game, nil
	}

	c.logger.Warn("game record behind event log",
		slog.String("game_id", string(gameID)),
		slog.Int("recorded", game.EventCount),
		slog.Int("logged", len(events)),
	)
	if game.Scores == nil {
		game.Scores = make(map[model.PlayerID]int, len(game.Players))
	}
	for _, evt := range events[game.EventCount:] {
		apply(game, evt)
	}
	if err := c.storage.SaveGame(ctx, game); err != nil {
		c.logger.Error("failed to save caught up game",
			slog.String("game_id", string(gameID)),
			slog.String("error", err.Error()),
		)
	}
	return game, nil
}

// lastPlacement returns the last event when it is a tile placement
func (c *Controller) lastPlacement(ctx context.Context, gameID model.GameID) (*model.GameEvent, error) {
	events, err := c.storage.GetEvents(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 || events[len(events)-1].Type != model.EventTilePlacement {
		return nil, model.ErrNoPlacementToReturn
	}
	return &events[len(events)-1], nil
}

// Interface for dependency injection
type ControllerInterface interface {
	CreateGame(ctx context.Context, players []model.PlayerID, alphabetName, layoutName string) (*model.Game, error)
	GetGame(ctx context.Context, gameID model.GameID) (*model.Game, error)
	DeleteGame(ctx context.Context, gameID model.GameID) error
	PlaceTiles(ctx context.Context, gameID model.GameID, playerID model.PlayerID, rack string, tiles []model.Tile) (*model.GameEvent, error)
	PlayNotation(ctx context.Context, gameID model.GameID, playerID model.PlayerID, rack, coords, word string) (*model.GameEvent, error)
	Pass(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (*model.GameEvent, error)
	Exchange(ctx context.Context, gameID model.GameID, playerID model.PlayerID, rack, tiles string) (*model.GameEvent, error)
	ChallengeOff(ctx context.Context, gameID model.GameID) (*model.GameEvent, error)
	ChallengeBonus(ctx context.Context, gameID model.GameID, bonus int) (*model.GameEvent, error)
	UnsuccessfulChallenge(ctx context.Context, gameID model.GameID, challenger model.PlayerID) (*model.GameEvent, error)
	Events(ctx context.Context, gameID model.GameID) ([]model.GameEvent, error)
	Turns(ctx context.Context, gameID model.GameID) ([]model.Turn, error)
	Replay(ctx context.Context, gameID model.GameID) (*Replay, error)
	Summaries(ctx context.Context, gameID model.GameID) ([]string, error)
}

var _ ControllerInterface = (*Controller)(nil)
