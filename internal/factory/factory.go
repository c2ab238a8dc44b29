package factory

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/mcoot/cwrules/internal/api/live"
	"github.com/mcoot/cwrules/internal/dependencies/clock"
	"github.com/mcoot/cwrules/internal/dependencies/random"
	"github.com/mcoot/cwrules/internal/services/board"
	"github.com/mcoot/cwrules/internal/services/editor"
	"github.com/mcoot/cwrules/internal/services/game"
	"github.com/mcoot/cwrules/internal/services/scoring"
	"github.com/mcoot/cwrules/internal/storage"
	"github.com/mcoot/cwrules/internal/storage/memory"
	redisstorage "github.com/mcoot/cwrules/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	BoardService   *board.Service
	ScoringService *scoring.Service
	EditorService  *editor.Service
	GameController *game.Controller
	HubManager     *live.HubManager
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// ConfigFromEnv reads the storage settings:
//
//	STORAGE_TYPE      memory (default) or redis
//	REDIS_URL         required for redis
//	REDIS_RECORD_TTL  idle lifetime of a game record, e.g. 72h; 0 keeps records forever
func ConfigFromEnv(getenv func(string) string, logger *slog.Logger) (Config, error) {
	cfg := Config{Logger: logger, StorageType: getenv("STORAGE_TYPE")}
	if cfg.StorageType != StorageTypeRedis {
		return cfg, nil
	}

	redisCfg := redisstorage.DefaultConfig()
	redisCfg.URL = getenv("REDIS_URL")
	if redisCfg.URL == "" {
		return Config{}, errors.New("REDIS_URL required when STORAGE_TYPE=redis")
	}
	if ttl := getenv("REDIS_RECORD_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil || d < 0 {
			return Config{}, fmt.Errorf("invalid REDIS_RECORD_TTL %q", ttl)
		}
		redisCfg.RecordTTL = d
	}
	cfg.RedisConfig = &redisCfg
	return cfg, nil
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, fmt.Errorf("invalid StorageType %q: must be %q or %q", storageType, StorageTypeMemory, StorageTypeRedis)
	}

	return newWithDependencies(store, clock.New(), random.New(), logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, logger *slog.Logger) *App {
	boardService := board.New(store, logger)
	scoringService := scoring.New()
	editorService := editor.New(scoringService)
	gameController := game.NewController(store, boardService, scoringService, clk, rnd, logger)

	return &App{
		Storage:        store,
		Clock:          clk,
		Random:         rnd,
		BoardService:   boardService,
		ScoringService: scoringService,
		EditorService:  editorService,
		GameController: gameController,
		HubManager:     live.NewHubManager(logger),
	}
}

// Close disconnects live clients and releases the storage backend
func (a *App) Close() error {
	a.HubManager.Shutdown()
	if closer, ok := a.Storage.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
