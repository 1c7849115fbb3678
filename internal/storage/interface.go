package storage

import (
	"context"
	"time"

	"github.com/vtt-tools/discordlink/internal/model"
)

// ConfigStore defines the interface for persisted module configuration.
// The host application owns the actual key/value store; both backends here
// implement the same contract so the reconcile service never cares which
// one it is talking to.
//
// Field-level setters exist so callers can persist only what changed:
// rewriting an unchanged credential would make the sync-channel collaborator
// reconnect for nothing.
type ConfigStore interface {
	// LoadSettings returns the persisted settings. A store with nothing
	// persisted yet returns zero-value settings, not an error.
	LoadSettings(ctx context.Context) (*model.Settings, error)
	SaveSettings(ctx context.Context, s *model.Settings) error

	SaveCredential(ctx context.Context, credential string) error
	SaveGuildName(ctx context.Context, name string) error
	SaveValid(ctx context.Context, valid bool) error
	SaveIDMap(ctx context.Context, idMap map[model.PlayerID]model.DiscordID) error
	SaveLastSync(ctx context.Context, at time.Time) error
}
