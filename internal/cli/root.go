package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vtt-tools/discordlink/internal/factory"
	redisstorage "github.com/vtt-tools/discordlink/internal/storage/redis"
)

var (
	cfg *Config
	app *factory.App
	out *Output
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	var envErr error
	cfg, envErr = DefaultConfig()
	if envErr != nil {
		cfg = &Config{Output: "text"}
	}

	rootCmd := &cobra.Command{
		Use:   "discordlink",
		Short: "Link local tabletop players to their Discord accounts",
		Long: `discordlink reconciles local player accounts with Discord identities
through a remote identity service.

It resolves unknown mappings by display name, validates operator-entered
Discord ids, persists the resulting configuration, and can trigger a full
synchronization of game data.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if envErr != nil {
				return envErr
			}
			return setup()
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.BaseURL, "server", cfg.BaseURL, "Identity service URL (env: DISCORDLINK_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.Credential, "auth", cfg.Credential, "Bearer credential (env: DISCORDLINK_AUTH)")
	rootCmd.PersistentFlags().StringVar(&cfg.StorageType, "storage", cfg.StorageType, "Storage backend: memory, redis (env: DISCORDLINK_STORAGE)")
	rootCmd.PersistentFlags().StringVar(&cfg.RedisURL, "redis-url", cfg.RedisURL, "Redis URL for the redis backend (env: DISCORDLINK_REDIS_URL)")
	rootCmd.PersistentFlags().StringVar(&cfg.PlayersFile, "players", cfg.PlayersFile, "Path to the eligible players file (env: DISCORDLINK_PLAYERS)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newFetchCmd())
	rootCmd.AddCommand(newSaveCmd())
	rootCmd.AddCommand(newSyncCmd())
	rootCmd.AddCommand(newStatusCmd())

	return rootCmd
}

// setup wires the application from the resolved configuration
func setup() error {
	out = NewOutput(cfg.Output)

	players, err := loadPlayers(cfg.PlayersFile)
	if err != nil {
		return err
	}

	fcfg := factory.Config{
		BaseURL:     cfg.BaseURL,
		Players:     players,
		Logger:      newLogger(cfg.Verbose),
		StorageType: cfg.StorageType,
	}

	if cfg.StorageType == factory.StorageTypeRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		fcfg.RedisConfig = &redisCfg
	}

	app, err = factory.New(fcfg)
	return err
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
