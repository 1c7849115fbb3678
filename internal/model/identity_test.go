package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testMap() *IdentityMap {
	return &IdentityMap{
		GuildName:  "Dragon Keep",
		Credential: "tok",
		Players: []PlayerRecord{
			{LocalID: "u1", DisplayName: "Alice", DiscordID: "123456"},
			{LocalID: "u2", DisplayName: "Bob"},
			{LocalID: "u3", DisplayName: "Carol", DiscordID: "789012"},
			{LocalID: "u4", DisplayName: "Bob"},
		},
	}
}

func TestUnresolvedPlayers(t *testing.T) {
	m := testMap()

	unresolved := m.UnresolvedPlayers()
	assert.Len(t, unresolved, 2)
	assert.Equal(t, PlayerID("u2"), unresolved[0].LocalID)
	assert.Equal(t, PlayerID("u4"), unresolved[1].LocalID)
}

func TestCandidateDiscordIDs(t *testing.T) {
	m := testMap()

	assert.Equal(t, []DiscordID{"123456", "789012"}, m.CandidateDiscordIDs())
}

func TestCandidateDiscordIDsEmpty(t *testing.T) {
	m := &IdentityMap{Players: []PlayerRecord{{LocalID: "u1", DisplayName: "Alice"}}}

	assert.Empty(t, m.CandidateDiscordIDs())
}

func TestIDMapContainsOnlyResolvedPlayers(t *testing.T) {
	m := testMap()

	assert.Equal(t, map[PlayerID]DiscordID{
		"u1": "123456",
		"u3": "789012",
	}, m.IDMap())
}

func TestPlayerByNameFirstMatchWins(t *testing.T) {
	m := testMap()

	p := m.PlayerByName("Bob")
	assert.NotNil(t, p)
	assert.Equal(t, PlayerID("u2"), p.LocalID)
}

func TestPlayerByNameNotFound(t *testing.T) {
	m := testMap()

	assert.Nil(t, m.PlayerByName("Mallory"))
}

func TestPlayerByDiscordID(t *testing.T) {
	m := testMap()

	p := m.PlayerByDiscordID("789012")
	assert.NotNil(t, p)
	assert.Equal(t, PlayerID("u3"), p.LocalID)
}

func TestClearCredential(t *testing.T) {
	m := testMap()
	m.ClearCredential()

	assert.Empty(t, m.Credential)
	assert.Empty(t, m.GuildName)
	// player data is untouched
	assert.Len(t, m.Players, 4)
	assert.Equal(t, DiscordID("123456"), m.Players[0].DiscordID)
}
