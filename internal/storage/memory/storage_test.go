package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/vtt-tools/discordlink/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func (s *StorageSuite) TestLoadEmptySettings() {
	settings, err := s.storage.LoadSettings(s.ctx)
	s.Require().NoError(err)
	s.Empty(settings.Credential)
	s.Empty(settings.GuildName)
	s.False(settings.Valid)
	s.Empty(settings.IDMap)
}

func (s *StorageSuite) TestSaveAndLoadSettings() {
	in := &model.Settings{
		GuildName:  "Dragon Keep",
		Credential: "tok",
		Valid:      true,
		IDMap:      map[model.PlayerID]model.DiscordID{"u1": "123456"},
		LastSyncAt: time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
	}
	s.Require().NoError(s.storage.SaveSettings(s.ctx, in))

	out, err := s.storage.LoadSettings(s.ctx)
	s.Require().NoError(err)
	s.Equal(in, out)
}

func (s *StorageSuite) TestFieldLevelSaves() {
	s.Require().NoError(s.storage.SaveCredential(s.ctx, "tok"))
	s.Require().NoError(s.storage.SaveGuildName(s.ctx, "Dragon Keep"))
	s.Require().NoError(s.storage.SaveValid(s.ctx, true))
	s.Require().NoError(s.storage.SaveIDMap(s.ctx, map[model.PlayerID]model.DiscordID{"u1": "123456"}))

	out, err := s.storage.LoadSettings(s.ctx)
	s.Require().NoError(err)
	s.Equal("tok", out.Credential)
	s.Equal("Dragon Keep", out.GuildName)
	s.True(out.Valid)
	s.Equal(map[model.PlayerID]model.DiscordID{"u1": "123456"}, out.IDMap)
}

func (s *StorageSuite) TestLoadedSettingsAreACopy() {
	s.Require().NoError(s.storage.SaveIDMap(s.ctx, map[model.PlayerID]model.DiscordID{"u1": "123456"}))

	first, err := s.storage.LoadSettings(s.ctx)
	s.Require().NoError(err)
	first.IDMap["u2"] = "999999"

	second, err := s.storage.LoadSettings(s.ctx)
	s.Require().NoError(err)
	s.Len(second.IDMap, 1)
}
