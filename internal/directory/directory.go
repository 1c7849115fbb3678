package directory

import (
	"context"

	"github.com/vtt-tools/discordlink/internal/model"
)

// PlayerDirectory enumerates the local player accounts eligible for
// Discord linking. The host application applies its own role and
// permission filters before the records reach this interface.
type PlayerDirectory interface {
	EligiblePlayers(ctx context.Context) ([]model.PlayerRecord, error)
}

// Static is a PlayerDirectory over a fixed player list, preserving the
// order the players were supplied in
type Static struct {
	players []model.PlayerRecord
}

// NewStatic creates a Static directory
func NewStatic(players []model.PlayerRecord) *Static {
	return &Static{players: players}
}

// Ensure Static implements the interface
var _ PlayerDirectory = (*Static)(nil)

// EligiblePlayers returns a copy of the configured player list
func (s *Static) EligiblePlayers(ctx context.Context) ([]model.PlayerRecord, error) {
	out := make([]model.PlayerRecord, len(s.players))
	copy(out, s.players)
	return out, nil
}
