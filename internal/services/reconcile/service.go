package reconcile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/vtt-tools/discordlink/internal/directory"
	"github.com/vtt-tools/discordlink/internal/model"
	"github.com/vtt-tools/discordlink/internal/notify"
	"github.com/vtt-tools/discordlink/internal/remote"
	"github.com/vtt-tools/discordlink/internal/storage"
)

// Service runs the identity reconciliation workflow: resolving unknown
// player-to-Discord mappings via remote lookup and validating candidate
// mapping sets before they are persisted.
//
// The IdentityMap is not locked across operations. Triggering Fetch while
// another operation is in flight can interleave mutations; callers are
// expected to use the busy flags as a soft guard, matching how the host
// UI disables its buttons.
type Service struct {
	store     storage.ConfigStore
	directory directory.PlayerDirectory
	client    *remote.Client
	notifier  notify.Notifier
	logger    *slog.Logger

	busy atomic.Bool
}

// New creates a new reconciliation service
func New(
	store storage.ConfigStore,
	dir directory.PlayerDirectory,
	client *remote.Client,
	notifier notify.Notifier,
	logger *slog.Logger,
) *Service {
	return &Service{
		store:     store,
		directory: dir,
		client:    client,
		notifier:  notifier,
		logger:    logger.With(slog.String("component", "reconcile")),
	}
}

// Busy reports whether a fetch or save is in flight, for the host UI to
// disable its controls
func (s *Service) Busy() bool {
	return s.busy.Load()
}

// Load builds a session IdentityMap from persisted settings and a live
// enumeration of eligible players. A Discord id already present on a
// directory record is user-supplied and takes precedence over the
// persisted mapping.
func (s *Service) Load(ctx context.Context) (*model.IdentityMap, error) {
	settings, err := s.store.LoadSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	players, err := s.directory.EligiblePlayers(ctx)
	if err != nil {
		return nil, fmt.Errorf("enumerate players: %w", err)
	}

	for i := range players {
		if players[i].DiscordID == "" {
			players[i].DiscordID = settings.IDMap[players[i].LocalID]
		}
	}

	return &model.IdentityMap{
		GuildName:  settings.GuildName,
		Credential: settings.Credential,
		Valid:      settings.Valid,
		Players:    players,
	}, nil
}

// Fetch resolves the Discord ids of unresolved players by display name.
//
// The guild refresh and the name lookup run concurrently and are both
// joined before any result is applied, so a failure in either branch
// leaves the players untouched: lookup results are applied atomically or
// not at all. A 401 from either branch clears the credential and aborts;
// any other guild failure is best-effort and only logged.
func (s *Service) Fetch(ctx context.Context, m *model.IdentityMap) error {
	// the credential is fixed at operation start; a concurrent
	// invalidation must not swap it mid-operation
	credential := m.Credential
	if credential == "" {
		return model.ErrNoCredential
	}

	unresolved := m.UnresolvedPlayers()
	if len(unresolved) == 0 {
		return model.ErrNothingToResolve
	}

	s.busy.Store(true)
	defer s.busy.Store(false)

	names := make([]string, len(unresolved))
	for i, p := range unresolved {
		names[i] = p.DisplayName
	}

	var (
		wg        sync.WaitGroup
		guild     *remote.Guild
		guildErr  error
		resolved  map[string]model.DiscordID
		lookupErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		guild, guildErr = s.client.FetchGuild(ctx, credential)
	}()
	go func() {
		defer wg.Done()
		resolved, lookupErr = s.client.Lookup(ctx, credential, names)
	}()
	wg.Wait()

	if errors.Is(lookupErr, model.ErrAuthInvalid) || errors.Is(guildErr, model.ErrAuthInvalid) {
		m.ClearCredential()
		s.logger.Warn("credential rejected, stored auth cleared")
		if errors.Is(lookupErr, model.ErrAuthInvalid) {
			return lookupErr
		}
		return guildErr
	}

	if lookupErr != nil {
		return fmt.Errorf("lookup discord ids: %w", lookupErr)
	}

	if guildErr != nil {
		s.logger.Warn("guild refresh failed", slog.Any("error", guildErr))
	} else if guild != nil {
		m.GuildName = guild.Name
	} else {
		m.GuildName = ""
	}

	applied := 0
	for name, id := range resolved {
		// display names are not unique; the first matching record wins
		if p := m.PlayerByName(name); p != nil {
			p.DiscordID = id
			applied++
		}
	}

	s.logger.Info("fetch complete",
		slog.Int("requested", len(names)),
		slog.Int("resolved", applied))
	return nil
}

// SaveResult reports the outcome of a Save call
type SaveResult struct {
	Valid             bool
	CredentialChanged bool
	// Invalid holds the players whose Discord ids the service rejected,
	// for individual user-facing reports
	Invalid []model.PlayerRecord
}

// Save validates the current candidate mapping set and persists the
// session's settings.
//
// The configuration counts as valid when at most one candidate id is
// rejected. The credential is written only when it differs from the
// previously persisted value, so the push channel is not told to
// reconnect for an unchanged credential.
func (s *Service) Save(ctx context.Context, m *model.IdentityMap) (*SaveResult, error) {
	credential := m.Credential

	s.busy.Store(true)
	defer s.busy.Store(false)

	invalidIDs, err := s.client.Validate(ctx, credential, m.CandidateDiscordIDs())
	if err != nil {
		if errors.Is(err, model.ErrAuthInvalid) {
			m.ClearCredential()
			s.logger.Warn("credential rejected, stored auth cleared")
			return nil, err
		}
		return nil, fmt.Errorf("validate discord ids: %w", err)
	}

	result := &SaveResult{}
	for _, id := range invalidIDs {
		p := m.PlayerByDiscordID(id)
		if p == nil {
			continue
		}
		result.Invalid = append(result.Invalid, *p)
		s.logger.Warn("discord id could not be found",
			slog.String("player", p.DisplayName),
			slog.String("discord_id", string(id)))
	}

	// a single rejected id does not invalidate the configuration
	m.Valid = len(invalidIDs) <= 1
	result.Valid = m.Valid

	if m.GuildName == "" && m.Credential != "" {
		guild, err := s.client.FetchGuild(ctx, credential)
		switch {
		case errors.Is(err, model.ErrAuthInvalid):
			m.ClearCredential()
			s.logger.Warn("credential rejected during guild refresh, stored auth cleared")
		case err != nil:
			s.logger.Warn("guild refresh failed", slog.Any("error", err))
		case guild != nil:
			m.GuildName = guild.Name
		}
	}

	prev, err := s.store.LoadSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	result.CredentialChanged = prev.Credential != m.Credential
	if result.CredentialChanged {
		if err := s.store.SaveCredential(ctx, m.Credential); err != nil {
			return nil, fmt.Errorf("save credential: %w", err)
		}
	}
	if err := s.store.SaveGuildName(ctx, m.GuildName); err != nil {
		return nil, fmt.Errorf("save guild name: %w", err)
	}
	if err := s.store.SaveValid(ctx, m.Valid); err != nil {
		return nil, fmt.Errorf("save valid flag: %w", err)
	}
	if err := s.store.SaveIDMap(ctx, m.IDMap()); err != nil {
		return nil, fmt.Errorf("save id map: %w", err)
	}

	s.notifier.ConfigChanged(ctx, result.CredentialChanged)

	s.logger.Info("configuration saved",
		slog.Bool("valid", m.Valid),
		slog.Bool("credential_changed", result.CredentialChanged),
		slog.Int("mapped_players", len(m.IDMap())))
	return result, nil
}
