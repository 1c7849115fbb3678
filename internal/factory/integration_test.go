package factory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/vtt-tools/discordlink/internal/model"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp("tok",
		model.PlayerRecord{LocalID: "u1", DisplayName: "Alice"},
		model.PlayerRecord{LocalID: "u2", DisplayName: "Bob"},
	)
	s.ctx = context.Background()
}

func (s *IntegrationSuite) TearDownTest() {
	s.app.Close()
}

// Test: complete linking flow from first fetch to persisted configuration
func (s *IntegrationSuite) TestCompleteLinkingFlow() {
	s.app.Server.SetGuild("Dragon Keep")
	s.app.Server.AddName("Alice", "123456")
	s.app.Server.AddName("Bob", "789012")

	// Step 1: first session, nothing persisted yet; the operator pastes
	// the credential in
	m, err := s.app.Reconciler.Load(s.ctx)
	s.Require().NoError(err)
	s.Empty(m.Credential)
	m.Credential = "tok"

	// Step 2: resolve both players by display name
	s.Require().NoError(s.app.Reconciler.Fetch(s.ctx, m))
	s.Equal(model.DiscordID("123456"), m.Players[0].DiscordID)
	s.Equal(model.DiscordID("789012"), m.Players[1].DiscordID)
	s.Equal("Dragon Keep", m.GuildName)

	// Step 3: validate and persist
	result, err := s.app.Reconciler.Save(s.ctx, m)
	s.Require().NoError(err)
	s.True(result.Valid)
	s.True(result.CredentialChanged)
	s.Equal([]bool{true}, s.app.Recorder.Calls)

	// Step 4: a new session picks the mappings back up
	m2, err := s.app.Reconciler.Load(s.ctx)
	s.Require().NoError(err)
	s.Equal("tok", m2.Credential)
	s.True(m2.Valid)
	s.Equal(model.DiscordID("123456"), m2.Players[0].DiscordID)
	s.Equal(model.DiscordID("789012"), m2.Players[1].DiscordID)

	// Step 5: saving again with the same credential does not ask the
	// push channel to reconnect
	result, err = s.app.Reconciler.Save(s.ctx, m2)
	s.Require().NoError(err)
	s.False(result.CredentialChanged)
	s.Equal([]bool{true, false}, s.app.Recorder.Calls)
}

// Test: full sync runs against the service and records its completion
func (s *IntegrationSuite) TestFullSyncFlow() {
	m, err := s.app.Reconciler.Load(s.ctx)
	s.Require().NoError(err)
	m.Credential = "tok"
	_, err = s.app.Reconciler.Save(s.ctx, m)
	s.Require().NoError(err)

	s.Require().NoError(s.app.Syncer.TriggerFullSync(s.ctx))
	s.Equal(1, s.app.Server.SyncCalls())

	settings, err := s.app.Store.LoadSettings(s.ctx)
	s.Require().NoError(err)
	s.True(s.app.MockClock.Now().Equal(settings.LastSyncAt))
}

// Test: full sync without a persisted credential is refused up front
func (s *IntegrationSuite) TestFullSyncWithoutCredential() {
	err := s.app.Syncer.TriggerFullSync(s.ctx)
	s.ErrorIs(err, model.ErrNoCredential)
	s.Zero(s.app.Server.SyncCalls())
}

// Test: a revoked credential discovered during fetch does not corrupt the
// previously persisted configuration
func (s *IntegrationSuite) TestRevokedCredentialKeepsPersistedState() {
	s.app.Server.AddName("Alice", "123456")

	m, err := s.app.Reconciler.Load(s.ctx)
	s.Require().NoError(err)
	m.Credential = "tok"
	s.Require().NoError(s.app.Reconciler.Fetch(s.ctx, m))
	_, err = s.app.Reconciler.Save(s.ctx, m)
	s.Require().NoError(err)

	// the service rotates its token; the stored credential is now stale
	s.app.Server.SetToken("rotated")
	s.app.Server.AddName("Bob", "789012")

	m2, err := s.app.Reconciler.Load(s.ctx)
	s.Require().NoError(err)

	err = s.app.Reconciler.Fetch(s.ctx, m2)
	s.ErrorIs(err, model.ErrAuthInvalid)
	s.Empty(m2.Credential)
	s.Empty(m2.Players[1].DiscordID, "no partial result applied")

	// the persisted configuration is untouched until the operator saves
	settings, err := s.app.Store.LoadSettings(s.ctx)
	s.Require().NoError(err)
	s.Equal("tok", settings.Credential)
	s.Equal(map[model.PlayerID]model.DiscordID{"u1": "123456"}, settings.IDMap)
}
