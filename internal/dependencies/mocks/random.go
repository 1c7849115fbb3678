package mocks

import (
	"fmt"
	"sync"

	"github.com/vtt-tools/discordlink/internal/dependencies/random"
)

// MockRandom is a deterministic Random implementation for testing. It is
// safe for concurrent use since fetch issues overlapping requests.
type MockRandom struct {
	mu      sync.Mutex
	counter int
}

// Ensure MockRandom implements Random
var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a MockRandom
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// RequestID returns sequential ids: req-1, req-2, ...
func (r *MockRandom) RequestID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counter++
	return fmt.Sprintf("req-%d", r.counter)
}
