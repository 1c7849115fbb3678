package syncer

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/vtt-tools/discordlink/internal/dependencies/clock"
	"github.com/vtt-tools/discordlink/internal/model"
	"github.com/vtt-tools/discordlink/internal/storage"
)

// Runner executes the bulk synchronization. What the operation does
// internally is the sync subsystem's business; this service only owns the
// trigger and its serialization against reconciliation.
type Runner interface {
	FullSync(ctx context.Context) error
}

// RunnerFunc adapts a function to the Runner interface
type RunnerFunc func(ctx context.Context) error

// FullSync calls f
func (f RunnerFunc) FullSync(ctx context.Context) error {
	return f(ctx)
}

// Service triggers full synchronizations and records when the last one
// completed.
//
// Serialization is advisory: Running is a flag for the host UI to disable
// its controls, not a lock on the identity map. A failure from the runner
// never touches identity state.
type Service struct {
	runner  Runner
	store   storage.ConfigStore
	clock   clock.Clock
	logger  *slog.Logger
	running atomic.Bool
}

// New creates a new sync service
func New(runner Runner, store storage.ConfigStore, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		runner: runner,
		store:  store,
		clock:  clk,
		logger: logger.With(slog.String("component", "syncer")),
	}
}

// Running reports whether a full sync is in flight
func (s *Service) Running() bool {
	return s.running.Load()
}

// TriggerFullSync kicks off a full sync. A second trigger while one is in
// flight is rejected with ErrSyncInProgress.
func (s *Service) TriggerFullSync(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return model.ErrSyncInProgress
	}
	defer s.running.Store(false)

	s.logger.Info("full sync started")
	if err := s.runner.FullSync(ctx); err != nil {
		return fmt.Errorf("full sync: %w", err)
	}

	if err := s.store.SaveLastSync(ctx, s.clock.Now()); err != nil {
		// the sync itself succeeded; the timestamp is bookkeeping
		s.logger.Warn("failed to record last sync time", slog.Any("error", err))
	}

	s.logger.Info("full sync complete")
	return nil
}
