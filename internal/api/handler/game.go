package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/cwrules/internal/alphabet"
	"github.com/mcoot/cwrules/internal/api/apierr"
	"github.com/mcoot/cwrules/internal/api/live"
	"github.com/mcoot/cwrules/internal/api/request"
	"github.com/mcoot/cwrules/internal/api/response"
	"github.com/mcoot/cwrules/internal/model"
	"github.com/mcoot/cwrules/internal/services/board"
	"github.com/mcoot/cwrules/internal/services/game"
	"github.com/mcoot/cwrules/internal/services/moves"
)

// GameHandler handles game record endpoints
type GameHandler struct {
	gameController game.ControllerInterface
	boardService   board.ServiceInterface
	hubManager     *live.HubManager
	logger         *slog.Logger
}

// NewGameHandler creates a new game handler. hubManager may be nil, in
// which case events are not pushed to live connections.
func NewGameHandler(gameController game.ControllerInterface, boardService board.ServiceInterface, hubManager *live.HubManager, logger *slog.Logger) *GameHandler {
	return &GameHandler{
		gameController: gameController,
		boardService:   boardService,
		hubManager:     hubManager,
		logger:         logger,
	}
}

// Create handles POST /api/v1/games
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateGameRequest
	if !decodeBody(w, r, &req) {
		return
	}

	players := make([]model.PlayerID, len(req.Players))
	for i, p := range req.Players {
		players[i] = model.PlayerID(p)
	}

	g, err := h.gameController.CreateGame(r.Context(), players, req.Alphabet, req.Layout)
	if err != nil {
		WriteError(w, err)
		return
	}

	resp, err := h.gameWithBoard(r.Context(), g)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, resp)
}

// Get handles GET /api/v1/games/{id}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	g, err := h.gameController.GetGame(r.Context(), gameID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	resp, err := h.gameWithBoard(r.Context(), g)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, resp)
}

// Delete handles DELETE /api/v1/games/{id}
func (h *GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := gameID(r)
	if err := h.gameController.DeleteGame(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}

	if h.hubManager != nil {
		h.hubManager.RemoveHub(id)
	}
	response.NoContent(w)
}

// Play handles POST /api/v1/games/{id}/play
func (h *GameHandler) Play(w http.ResponseWriter, r *http.Request) {
	var req request.PlayRequest
	if !decodeBody(w, r, &req) {
		return
	}

	id := gameID(r)
	playerID := model.PlayerID(req.PlayerID)

	var evt *model.GameEvent
	var err error
	switch {
	case req.Coords != "" && len(req.Tiles) > 0:
		WriteError(w, apierr.NewInvalidRequestError("give either tiles or coords and word, not both"))
		return
	case req.Coords != "":
		evt, err = h.gameController.PlayNotation(r.Context(), id, playerID, req.Rack, req.Coords, req.Word)
	default:
		var g *model.Game
		g, err = h.gameController.GetGame(r.Context(), id)
		if err != nil {
			WriteError(w, err)
			return
		}
		var tiles []model.Tile
		tiles, err = request.Tiles(alphabet.FromName(g.Alphabet), req.Tiles)
		if err != nil {
			WriteError(w, err)
			return
		}
		evt, err = h.gameController.PlaceTiles(r.Context(), id, playerID, req.Rack, tiles)
	}
	if err != nil {
		WriteError(w, err)
		return
	}

	h.respondEvent(w, r, http.StatusCreated, evt)
}

// Pass handles POST /api/v1/games/{id}/pass
func (h *GameHandler) Pass(w http.ResponseWriter, r *http.Request) {
	var req request.PassRequest
	if !decodeBody(w, r, &req) {
		return
	}

	evt, err := h.gameController.Pass(r.Context(), gameID(r), model.PlayerID(req.PlayerID))
	if err != nil {
		WriteError(w, err)
		return
	}
	h.respondEvent(w, r, http.StatusCreated, evt)
}

// Exchange handles POST /api/v1/games/{id}/exchange
func (h *GameHandler) Exchange(w http.ResponseWriter, r *http.Request) {
	var req request.ExchangeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	evt, err := h.gameController.Exchange(r.Context(), gameID(r), model.PlayerID(req.PlayerID), req.Rack, req.Tiles)
	if err != nil {
		WriteError(w, err)
		return
	}
	h.respondEvent(w, r, http.StatusCreated, evt)
}

// Challenge handles POST /api/v1/games/{id}/challenge, an unsuccessful
// challenge that costs the challenger a turn
func (h *GameHandler) Challenge(w http.ResponseWriter, r *http.Request) {
	var req request.ChallengeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	evt, err := h.gameController.UnsuccessfulChallenge(r.Context(), gameID(r), model.PlayerID(req.Challenger))
	if err != nil {
		WriteError(w, err)
		return
	}
	h.respondEvent(w, r, http.StatusCreated, evt)
}

// ChallengeOff handles POST /api/v1/games/{id}/challenge-off
func (h *GameHandler) ChallengeOff(w http.ResponseWriter, r *http.Request) {
	evt, err := h.gameController.ChallengeOff(r.Context(), gameID(r))
	if err != nil {
		WriteError(w, err)
		return
	}
	h.respondEvent(w, r, http.StatusCreated, evt)
}

// ChallengeBonus handles POST /api/v1/games/{id}/challenge-bonus
func (h *GameHandler) ChallengeBonus(w http.ResponseWriter, r *http.Request) {
	var req request.ChallengeBonusRequest
	if !decodeBody(w, r, &req) {
		return
	}

	evt, err := h.gameController.ChallengeBonus(r.Context(), gameID(r), req.Bonus)
	if err != nil {
		WriteError(w, err)
		return
	}
	h.respondEvent(w, r, http.StatusCreated, evt)
}

// Events handles GET /api/v1/games/{id}/events
func (h *GameHandler) Events(w http.ResponseWriter, r *http.Request) {
	events, err := h.gameController.Events(r.Context(), gameID(r))
	if err != nil {
		WriteError(w, err)
		return
	}
	if events == nil {
		events = []model.GameEvent{}
	}
	response.JSON(w, http.StatusOK, response.EventsResponse{Events: events})
}

// Turns handles GET /api/v1/games/{id}/turns
func (h *GameHandler) Turns(w http.ResponseWriter, r *http.Request) {
	turns, err := h.gameController.Turns(r.Context(), gameID(r))
	if err != nil {
		WriteError(w, err)
		return
	}
	if turns == nil {
		turns = []model.Turn{}
	}
	response.JSON(w, http.StatusOK, response.TurnsResponse{Turns: turns})
}

// Summaries handles GET /api/v1/games/{id}/summaries
func (h *GameHandler) Summaries(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.gameController.Summaries(r.Context(), gameID(r))
	if err != nil {
		WriteError(w, err)
		return
	}
	if summaries == nil {
		summaries = []string{}
	}
	response.JSON(w, http.StatusOK, response.SummariesResponse{Summaries: summaries})
}

// Replay handles GET /api/v1/games/{id}/replay
func (h *GameHandler) Replay(w http.ResponseWriter, r *http.Request) {
	id := gameID(r)
	g, err := h.gameController.GetGame(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	replay, err := h.gameController.Replay(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	alph := alphabet.FromName(g.Alphabet)
	pool, unseen := response.PoolFromModel(replay.Pool, alph)
	response.JSON(w, http.StatusOK, response.ReplayResponse{
		Board:  response.BoardFromModel(replay.Board, alph),
		Scores: response.ScoresFromModel(replay.Scores),
		Pool:   pool,
		Unseen: unseen,
		Turns:  replay.Turns,
	})
}

// respondEvent writes an appended event with its summary and pushes it to
// the game's live connections
func (h *GameHandler) respondEvent(w http.ResponseWriter, r *http.Request, status int, evt *model.GameEvent) {
	id := gameID(r)
	g, err := h.gameController.GetGame(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	summary := moves.Summary(*evt, alphabet.FromName(g.Alphabet))
	if h.hubManager != nil {
		if hub := h.hubManager.GetHub(id); hub != nil {
			hub.BroadcastEvent(*evt, summary)
		}
	}

	h.logger.Debug("event appended",
		slog.String("game_id", string(id)),
		slog.String("type", string(evt.Type)),
	)
	response.JSON(w, status, response.EventResponse{Event: *evt, Summary: summary})
}

func (h *GameHandler) gameWithBoard(ctx context.Context, g *model.Game) (response.Game, error) {
	b, err := h.boardService.GetBoard(ctx, g.ID)
	if err != nil {
		return response.Game{}, err
	}
	resp := response.GameFromModel(g)
	rendered := response.BoardFromModel(b, alphabet.FromName(g.Alphabet))
	resp.Board = &rendered
	return resp, nil
}

func gameID(r *http.Request) model.GameID {
	return model.GameID(mux.Vars(r)["id"])
}
