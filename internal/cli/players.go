package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/vtt-tools/discordlink/internal/model"
)

// loadPlayers reads the eligible player list from a JSON file. The file
// plays the role of the host application's user directory: a JSON array
// of {local_id, display_name, discord_id} objects, where a non-empty
// discord_id is an operator-supplied mapping that takes precedence over
// anything persisted.
//
// A missing file is not an error; it yields an empty directory.
func loadPlayers(path string) ([]model.PlayerRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read players file: %w", err)
	}

	var players []model.PlayerRecord
	if err := json.Unmarshal(data, &players); err != nil {
		return nil, fmt.Errorf("parse players file %s: %w", path, err)
	}
	return players, nil
}
