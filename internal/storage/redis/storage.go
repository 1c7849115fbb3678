package redis

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vtt-tools/discordlink/internal/model"
	"github.com/vtt-tools/discordlink/internal/storage"
)

// Storage is a Redis-backed implementation of the config store
type Storage struct {
	client *redis.Client
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{client: client}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client) *Storage {
	return &Storage{client: client}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.ConfigStore = (*Storage)(nil)

func (s *Storage) LoadSettings(ctx context.Context) (*model.Settings, error) {
	values, err := s.client.MGet(ctx, guildNameKey, credentialKey, validKey, idMapKey, lastSyncKey).Result()
	if err != nil {
		return nil, err
	}

	settings := &model.Settings{
		GuildName:  stringAt(values, 0),
		Credential: stringAt(values, 1),
	}

	if v := stringAt(values, 2); v != "" {
		valid, err := strconv.ParseBool(v)
		if err != nil {
			return nil, err
		}
		settings.Valid = valid
	}

	if v := stringAt(values, 3); v != "" {
		if err := json.Unmarshal([]byte(v), &settings.IDMap); err != nil {
			return nil, err
		}
	}

	if v := stringAt(values, 4); v != "" {
		at, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return nil, err
		}
		settings.LastSyncAt = at
	}

	return settings, nil
}

func (s *Storage) SaveSettings(ctx context.Context, settings *model.Settings) error {
	idMap, err := json.Marshal(settings.IDMap)
	if err != nil {
		return err
	}

	// Pipeline so a settings save is applied as a unit
	pipe := s.client.Pipeline()
	pipe.Set(ctx, guildNameKey, settings.GuildName, 0)
	pipe.Set(ctx, credentialKey, settings.Credential, 0)
	pipe.Set(ctx, validKey, strconv.FormatBool(settings.Valid), 0)
	pipe.Set(ctx, idMapKey, idMap, 0)
	pipe.Set(ctx, lastSyncKey, settings.LastSyncAt.Format(time.RFC3339Nano), 0)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) SaveCredential(ctx context.Context, credential string) error {
	return s.client.Set(ctx, credentialKey, credential, 0).Err()
}

func (s *Storage) SaveGuildName(ctx context.Context, name string) error {
	return s.client.Set(ctx, guildNameKey, name, 0).Err()
}

func (s *Storage) SaveValid(ctx context.Context, valid bool) error {
	return s.client.Set(ctx, validKey, strconv.FormatBool(valid), 0).Err()
}

func (s *Storage) SaveIDMap(ctx context.Context, idMap map[model.PlayerID]model.DiscordID) error {
	data, err := json.Marshal(idMap)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, idMapKey, data, 0).Err()
}

func (s *Storage) SaveLastSync(ctx context.Context, at time.Time) error {
	return s.client.Set(ctx, lastSyncKey, at.Format(time.RFC3339Nano), 0).Err()
}

// stringAt reads an MGET slot, treating a missing key as empty
func stringAt(values []any, i int) string {
	if i >= len(values) || values[i] == nil {
		return ""
	}
	v, ok := values[i].(string)
	if !ok {
		return ""
	}
	return v
}
