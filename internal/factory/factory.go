package factory

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/vtt-tools/discordlink/internal/dependencies/clock"
	"github.com/vtt-tools/discordlink/internal/dependencies/random"
	"github.com/vtt-tools/discordlink/internal/directory"
	"github.com/vtt-tools/discordlink/internal/model"
	"github.com/vtt-tools/discordlink/internal/notify"
	"github.com/vtt-tools/discordlink/internal/remote"
	"github.com/vtt-tools/discordlink/internal/services/reconcile"
	"github.com/vtt-tools/discordlink/internal/services/syncer"
	"github.com/vtt-tools/discordlink/internal/storage"
	"github.com/vtt-tools/discordlink/internal/storage/memory"
	redisstorage "github.com/vtt-tools/discordlink/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Store storage.ConfigStore

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Collaborators
	Client    *remote.Client
	Directory directory.PlayerDirectory
	Notifier  notify.Notifier

	// Services
	Reconciler *reconcile.Service
	Syncer     *syncer.Service
}

// Config holds configuration for the application factory
type Config struct {
	// BaseURL is the remote identity service endpoint
	BaseURL string
	// Players is the host-supplied enumeration of eligible local accounts
	Players []model.PlayerRecord
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// Notifier receives sync-channel notifications (optional)
	// If nil, notifications are logged
	Notifier notify.Notifier
	// SyncRunner executes the full-sync bulk operation (optional)
	// If nil, the sync is triggered on the identity service itself
	SyncRunner syncer.Runner
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.ConfigStore
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

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()
	client := remote.NewClient(cfg.BaseURL, rnd, logger)
	dir := directory.NewStatic(cfg.Players)

	return newWithDependencies(store, client, dir, cfg.Notifier, cfg.SyncRunner, clk, rnd, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.ConfigStore,
	client *remote.Client,
	dir directory.PlayerDirectory,
	notifier notify.Notifier,
	runner syncer.Runner,
	clk clock.Clock,
	rnd random.Random,
	logger *slog.Logger,
) *App {
	if notifier == nil {
		notifier = notify.NewLogNotifier(logger)
	}

	if runner == nil {
		// Default full sync runs on the identity service, under the
		// credential persisted at trigger time
		runner = syncer.RunnerFunc(func(ctx context.Context) error {
			settings, err := store.LoadSettings(ctx)
			if err != nil {
				return err
			}
			if settings.Credential == "" {
				return model.ErrNoCredential
			}
			return client.TriggerSync(ctx, settings.Credential)
		})
	}

	reconciler := reconcile.New(store, dir, client, notifier, logger)
	syncService := syncer.New(runner, store, clk, logger)

	return &App{
		Store:      store,
		Clock:      clk,
		Random:     rnd,
		Client:     client,
		Directory:  dir,
		Notifier:   notifier,
		Reconciler: reconciler,
		Syncer:     syncService,
	}
}
