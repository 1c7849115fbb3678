package model

import "time"

// Settings is the persisted configuration slice of an IdentityMap: the
// fields that outlive a reconciliation session
type Settings struct {
	GuildName  string                 `json:"guild_name"`
	Credential string                 `json:"auth"`
	Valid      bool                   `json:"valid_config"`
	IDMap      map[PlayerID]DiscordID `json:"id_map"`
	LastSyncAt time.Time              `json:"last_sync"`
}
