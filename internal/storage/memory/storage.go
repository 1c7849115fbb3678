package memory

import (
	"context"
	"sync"
	"time"

	"github.com/vtt-tools/discordlink/internal/model"
	"github.com/vtt-tools/discordlink/internal/storage"
)

// Storage is an in-memory implementation of the config store
type Storage struct {
	mu       sync.RWMutex
	settings model.Settings
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{}
}

// Ensure Storage implements the interface
var _ storage.ConfigStore = (*Storage)(nil)

func (s *Storage) LoadSettings(ctx context.Context) (*model.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.settings
	out.IDMap = copyIDMap(s.settings.IDMap)
	return &out, nil
}

func (s *Storage) SaveSettings(ctx context.Context, settings *model.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = *settings
	s.settings.IDMap = copyIDMap(settings.IDMap)
	return nil
}

func (s *Storage) SaveCredential(ctx context.Context, credential string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.Credential = credential
	return nil
}

func (s *Storage) SaveGuildName(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.GuildName = name
	return nil
}

func (s *Storage) SaveValid(ctx context.Context, valid bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.Valid = valid
	return nil
}

func (s *Storage) SaveIDMap(ctx context.Context, idMap map[model.PlayerID]model.DiscordID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.IDMap = copyIDMap(idMap)
	return nil
}

func (s *Storage) SaveLastSync(ctx context.Context, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.LastSyncAt = at
	return nil
}

func copyIDMap(in map[model.PlayerID]model.DiscordID) map[model.PlayerID]model.DiscordID {
	if in == nil {
		return nil
	}
	out := make(map[model.PlayerID]model.DiscordID, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
