package handler

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/mcoot/cwrules/internal/alphabet"
	"github.com/mcoot/cwrules/internal/api/live"
	"github.com/mcoot/cwrules/internal/services/board"
	"github.com/mcoot/cwrules/internal/services/editor"
	"github.com/mcoot/cwrules/internal/services/game"
	"github.com/mcoot/cwrules/internal/services/scoring"
)

// LiveHandler upgrades game connections to websockets
type LiveHandler struct {
	gameController game.ControllerInterface
	boardService   board.ServiceInterface
	scorer         scoring.ServiceInterface
	editor         editor.ServiceInterface
	hubManager     *live.HubManager
	upgrader       websocket.Upgrader
	logger         *slog.Logger
}

// NewLiveHandler creates a new live handler
func NewLiveHandler(
	gameController game.ControllerInterface,
	boardService board.ServiceInterface,
	scorer scoring.ServiceInterface,
	ed editor.ServiceInterface,
	hubManager *live.HubManager,
	logger *slog.Logger,
) *LiveHandler {
	return &LiveHandler{
		gameController: gameController,
		boardService:   boardService,
		scorer:         scorer,
		editor:         ed,
		hubManager:     hubManager,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger: logger,
	}
}

// Serve handles GET /api/v1/games/{id}/live
func (h *LiveHandler) Serve(w http.ResponseWriter, r *http.Request) {
	id := gameID(r)
	g, err := h.gameController.GetGame(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied
		h.logger.Warn("websocket upgrade failed",
			slog.String("game_id", string(id)),
			slog.String("error", err.Error()),
		)
		return
	}

	session := live.NewSession(id, alphabet.FromName(g.Alphabet), h.boardService, h.scorer, h.editor)
	live.ServeClient(r.Context(), conn, h.hubManager.GetOrCreateHub(id), session, h.logger)
}
