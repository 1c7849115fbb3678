package model

// PlayerID uniquely identifies a local player account
type PlayerID string

// DiscordID is the external Discord user identifier for a player.
// The empty value means the player is unresolved.
type DiscordID string

// PlayerRecord associates a local player account with a Discord account
type PlayerRecord struct {
	LocalID     PlayerID  `json:"local_id"`
	DisplayName string    `json:"display_name"` // not unique, used for lookup requests
	DiscordID   DiscordID `json:"discord_id"`
}

// Resolved reports whether the player has a Discord account assigned
func (p PlayerRecord) Resolved() bool {
	return p.DiscordID != ""
}

// IdentityMap is the session aggregate of player-to-Discord associations
// plus auth and validity state. It holds no network or persistence logic;
// the reconcile service mutates it and asks a ConfigStore to save it.
type IdentityMap struct {
	GuildName  string // cached display name of the linked guild, may be stale
	Credential string // opaque bearer token; empty means unauthenticated
	Valid      bool
	Players    []PlayerRecord // insertion order = directory enumeration order
}

// UnresolvedPlayers returns the players with no Discord account assigned,
// in enumeration order
func (m *IdentityMap) UnresolvedPlayers() []PlayerRecord {
	var out []PlayerRecord
	for _, p := range m.Players {
		if !p.Resolved() {
			out = append(out, p)
		}
	}
	return out
}

// CandidateDiscordIDs returns every non-empty Discord id currently staged,
// including ids entered this session that have not been validated yet
func (m *IdentityMap) CandidateDiscordIDs() []DiscordID {
	var out []DiscordID
	for _, p := range m.Players {
		if p.Resolved() {
			out = append(out, p.DiscordID)
		}
	}
	return out
}

// IDMap derives the persisted local-id to discord-id mapping, containing
// only resolved players
func (m *IdentityMap) IDMap() map[PlayerID]DiscordID {
	out := make(map[PlayerID]DiscordID)
	for _, p := range m.Players {
		if p.Resolved() {
			out[p.LocalID] = p.DiscordID
		}
	}
	return out
}

// PlayerByName returns the first player with the given display name.
// Display names are not unique; when duplicates exist the first match in
// enumeration order wins.
func (m *IdentityMap) PlayerByName(name string) *PlayerRecord {
	for i := range m.Players {
		if m.Players[i].DisplayName == name {
			return &m.Players[i]
		}
	}
	return nil
}

// PlayerByDiscordID returns the first player holding the given Discord id
func (m *IdentityMap) PlayerByDiscordID(id DiscordID) *PlayerRecord {
	for i := range m.Players {
		if m.Players[i].DiscordID == id {
			return &m.Players[i]
		}
	}
	return nil
}

// ClearCredential invalidates the stored credential and the guild name
// cached under it. This is the only path that clears a set credential.
func (m *IdentityMap) ClearCredential() {
	m.Credential = ""
	m.GuildName = ""
}
