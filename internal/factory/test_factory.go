package factory

import (
	"context"
	"time"

	"github.com/vtt-tools/discordlink/internal/dependencies/mocks"
	"github.com/vtt-tools/discordlink/internal/directory"
	"github.com/vtt-tools/discordlink/internal/model"
	"github.com/vtt-tools/discordlink/internal/remote"
	"github.com/vtt-tools/discordlink/internal/remote/remotetest"
	"github.com/vtt-tools/discordlink/internal/storage/memory"
	"github.com/vtt-tools/discordlink/internal/testutil"
)

// RecordingNotifier captures sync-channel notifications for assertions
type RecordingNotifier struct {
	Calls []bool
}

// ConfigChanged records the notification
func (n *RecordingNotifier) ConfigChanged(ctx context.Context, credentialChanged bool) {
	n.Calls = append(n.Calls, credentialChanged)
}

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Fake remote identity service
	Server *remotetest.Server

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
	Recorder   *RecordingNotifier
}

// NewTestApp creates an App wired against a fake identity service, with
// in-memory storage and mocked dependencies. The fake accepts the given
// bearer token.
func NewTestApp(token string, players ...model.PlayerRecord) *TestApp {
	server := remotetest.New(token)
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()
	recorder := &RecordingNotifier{}
	logger := testutil.NopLogger()

	client := remote.NewClient(server.URL(), mockRandom, logger)
	dir := directory.NewStatic(players)

	app := newWithDependencies(store, client, dir, recorder, nil, mockClock, mockRandom, logger)

	return &TestApp{
		App:        app,
		Server:     server,
		MockClock:  mockClock,
		MockRandom: mockRandom,
		Recorder:   recorder,
	}
}

// Close shuts down the fake identity service
func (t *TestApp) Close() {
	t.Server.Close()
}
