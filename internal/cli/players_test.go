package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vtt-tools/discordlink/internal/model"
)

func TestLoadPlayers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "players.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"local_id": "u1", "display_name": "Alice", "discord_id": "123456"},
		{"local_id": "u2", "display_name": "Bob"}
	]`), 0600))

	players, err := loadPlayers(path)
	require.NoError(t, err)
	require.Len(t, players, 2)
	assert.Equal(t, model.PlayerID("u1"), players[0].LocalID)
	assert.Equal(t, model.DiscordID("123456"), players[0].DiscordID)
	assert.Equal(t, "Bob", players[1].DisplayName)
	assert.Empty(t, players[1].DiscordID)
}

func TestLoadPlayersMissingFile(t *testing.T) {
	players, err := loadPlayers(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	assert.Empty(t, players)
}

func TestLoadPlayersMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "players.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	_, err := loadPlayers(path)
	assert.Error(t, err)
}
