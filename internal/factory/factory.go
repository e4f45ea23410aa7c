package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/mindgrid/mindgrid-server/internal/dependencies/clock"
	"github.com/mindgrid/mindgrid-server/internal/services/account"
	"github.com/mindgrid/mindgrid-server/internal/services/admin"
	"github.com/mindgrid/mindgrid-server/internal/services/session"
	"github.com/mindgrid/mindgrid-server/internal/storage"
	"github.com/mindgrid/mindgrid-server/internal/storage/memory"
	redisstorage "github.com/mindgrid/mindgrid-server/internal/storage/redis"
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
	Clock clock.Clock

	// Services
	AccountService *account.Service
	SessionService *session.Service
	AdminService   *admin.Service
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
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	return newWithDependencies(store, clock.New(), logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, logger *slog.Logger) *App {
	accountService := account.New(store, clk, logger)
	sessionService := session.New(store, clk, logger)
	adminService := admin.New(store, logger)

	return &App{
		Storage:        store,
		Clock:          clk,
		AccountService: accountService,
		SessionService: sessionService,
		AdminService:   adminService,
	}
}
