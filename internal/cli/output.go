package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/vtt-tools/discordlink/internal/model"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case FetchResult:
		o.printFetchResult(v)
	case SaveResult:
		o.printSaveResult(v)
	case StatusResult:
		o.printStatusResult(v)
	case SyncResult:
		o.printSyncResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// PlayerView is a player row in command output
type PlayerView struct {
	LocalID     string `json:"local_id"`
	DisplayName string `json:"display_name"`
	DiscordID   string `json:"discord_id,omitempty"`
}

// FetchResult reports a fetch command outcome
type FetchResult struct {
	GuildName string       `json:"guild_name,omitempty"`
	Players   []PlayerView `json:"players"`
	Saved     bool         `json:"saved"`
}

// SaveResult reports a save command outcome
type SaveResult struct {
	Valid             bool         `json:"valid"`
	CredentialChanged bool         `json:"credential_changed"`
	Invalid           []PlayerView `json:"invalid,omitempty"`
}

// StatusResult reports the persisted configuration
type StatusResult struct {
	GuildName     string    `json:"guild_name,omitempty"`
	CredentialSet bool      `json:"credential_set"`
	Valid         bool      `json:"valid"`
	MappedPlayers int       `json:"mapped_players"`
	LastSyncAt    time.Time `json:"last_sync,omitempty"`
}

// SyncResult reports a sync command outcome
type SyncResult struct {
	Completed bool `json:"completed"`
}

func playerViews(players []model.PlayerRecord) []PlayerView {
	out := make([]PlayerView, len(players))
	for i, p := range players {
		out[i] = PlayerView{
			LocalID:     string(p.LocalID),
			DisplayName: p.DisplayName,
			DiscordID:   string(p.DiscordID),
		}
	}
	return out
}

func (o *Output) printFetchResult(r FetchResult) {
	if r.GuildName != "" {
		fmt.Printf("Guild: %s\n", r.GuildName)
	}
	fmt.Printf("Players (%d):\n", len(r.Players))
	for _, p := range r.Players {
		if p.DiscordID != "" {
			fmt.Printf("  - %s (%s) -> %s\n", p.DisplayName, p.LocalID, p.DiscordID)
		} else {
			fmt.Printf("  - %s (%s) -> unresolved\n", p.DisplayName, p.LocalID)
		}
	}
	if r.Saved {
		fmt.Println("Mappings saved")
	} else {
		fmt.Println("Mappings not saved; run 'discordlink save' or pass --save")
	}
}

func (o *Output) printSaveResult(r SaveResult) {
	validStr := "no"
	if r.Valid {
		validStr = "yes"
	}
	fmt.Printf("Configuration valid: %s\n", validStr)
	if r.CredentialChanged {
		fmt.Println("Credential updated")
	}
	for _, p := range r.Invalid {
		fmt.Printf("  ! %s: Discord id %s could not be found\n", p.DisplayName, p.DiscordID)
	}
}

func (o *Output) printStatusResult(r StatusResult) {
	credStr := "not set"
	if r.CredentialSet {
		credStr = "set"
	}
	validStr := "no"
	if r.Valid {
		validStr = "yes"
	}
	if r.GuildName != "" {
		fmt.Printf("Guild: %s\n", r.GuildName)
	}
	fmt.Printf("Credential: %s\n", credStr)
	fmt.Printf("Valid: %s\n", validStr)
	fmt.Printf("Mapped players: %d\n", r.MappedPlayers)
	if !r.LastSyncAt.IsZero() {
		fmt.Printf("Last full sync: %s\n", r.LastSyncAt.Format(time.RFC3339))
	}
}

func (o *Output) printSyncResult(r SyncResult) {
	if r.Completed {
		fmt.Println("Full sync complete")
	}
}
