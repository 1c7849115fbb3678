package directory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vtt-tools/discordlink/internal/model"
)

func TestStaticPreservesOrder(t *testing.T) {
	dir := NewStatic([]model.PlayerRecord{
		{LocalID: "u3", DisplayName: "Carol"},
		{LocalID: "u1", DisplayName: "Alice"},
		{LocalID: "u2", DisplayName: "Bob"},
	})

	players, err := dir.EligiblePlayers(context.Background())
	require.NoError(t, err)
	require.Len(t, players, 3)
	assert.Equal(t, model.PlayerID("u3"), players[0].LocalID)
	assert.Equal(t, model.PlayerID("u1"), players[1].LocalID)
	assert.Equal(t, model.PlayerID("u2"), players[2].LocalID)
}

func TestStaticReturnsACopy(t *testing.T) {
	dir := NewStatic([]model.PlayerRecord{{LocalID: "u1", DisplayName: "Alice"}})

	first, err := dir.EligiblePlayers(context.Background())
	require.NoError(t, err)
	first[0].DiscordID = "123456"

	second, err := dir.EligiblePlayers(context.Background())
	require.NoError(t, err)
	assert.Empty(t, second[0].DiscordID)
}
