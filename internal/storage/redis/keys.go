package redis

// Key prefix for all persisted configuration
const keyPrefix = "discordlink"

// One key per persisted setting so field-level writes stay independent

const (
	guildNameKey  = keyPrefix + ":guild_name"
	credentialKey = keyPrefix + ":auth"
	validKey      = keyPrefix + ":valid_config"
	idMapKey      = keyPrefix + ":id_map"
	lastSyncKey   = keyPrefix + ":last_sync"
)
