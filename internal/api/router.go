package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/cwrules/internal/api/handler"
	"github.com/mcoot/cwrules/internal/api/live"
	"github.com/mcoot/cwrules/internal/api/middleware"
	"github.com/mcoot/cwrules/internal/api/response"
	"github.com/mcoot/cwrules/internal/services/board"
	"github.com/mcoot/cwrules/internal/services/editor"
	"github.com/mcoot/cwrules/internal/services/game"
	"github.com/mcoot/cwrules/internal/services/scoring"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	GameController game.ControllerInterface
	BoardService   board.ServiceInterface
	Scorer         scoring.ServiceInterface
	Editor         editor.ServiceInterface
	HubManager     *live.HubManager
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	hubManager := cfg.HubManager
	if hubManager == nil {
		hubManager = live.NewHubManager(cfg.Logger)
	}

	// Create handlers
	rulesHandler := handler.NewRulesHandler(cfg.BoardService, cfg.Scorer)
	gameHandler := handler.NewGameHandler(cfg.GameController, cfg.BoardService, hubManager, cfg.Logger)
	liveHandler := handler.NewLiveHandler(cfg.GameController, cfg.BoardService, cfg.Scorer, cfg.Editor, hubManager, cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Recovery(cfg.Logger))
	api.Use(middleware.Logging(cfg.Logger))

	// Rules routes (stateless)
	api.HandleFunc("/alphabets", rulesHandler.ListAlphabets).Methods(http.MethodGet)
	api.HandleFunc("/alphabets/{name}", rulesHandler.GetAlphabet).Methods(http.MethodGet)
	api.HandleFunc("/alphabets/{name}/tokenize", rulesHandler.Tokenize).Methods(http.MethodPost)
	api.HandleFunc("/alphabets/{name}/decode", rulesHandler.Decode).Methods(http.MethodPost)
	api.HandleFunc("/layouts/{name}", rulesHandler.GetLayout).Methods(http.MethodGet)
	api.HandleFunc("/score", rulesHandler.Score).Methods(http.MethodPost)

	// Game record routes
	games := api.PathPrefix("/games").Subrouter()
	games.HandleFunc("", gameHandler.Create).Methods(http.MethodPost)
	games.HandleFunc("/{id}", gameHandler.Get).Methods(http.MethodGet)
	games.HandleFunc("/{id}", gameHandler.Delete).Methods(http.MethodDelete)
	games.HandleFunc("/{id}/play", gameHandler.Play).Methods(http.MethodPost)
	games.HandleFunc("/{id}/pass", gameHandler.Pass).Methods(http.MethodPost)
	games.HandleFunc("/{id}/exchange", gameHandler.Exchange).Methods(http.MethodPost)
	games.HandleFunc("/{id}/challenge", gameHandler.Challenge).Methods(http.MethodPost)
	games.HandleFunc("/{id}/challenge-off", gameHandler.ChallengeOff).Methods(http.MethodPost)
	games.HandleFunc("/{id}/challenge-bonus", gameHandler.ChallengeBonus).Methods(http.MethodPost)
	games.HandleFunc("/{id}/events", gameHandler.Events).Methods(http.MethodGet)
	games.HandleFunc("/{id}/turns", gameHandler.Turns).Methods(http.MethodGet)
	games.HandleFunc("/{id}/summaries", gameHandler.Summaries).Methods(http.MethodGet)
	games.HandleFunc("/{id}/replay", gameHandler.Replay).Methods(http.MethodGet)
	games.HandleFunc("/{id}/live", liveHandler.Serve).Methods(http.MethodGet)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.Health{Status: "ok"})
}
