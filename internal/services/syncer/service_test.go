package syncer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/vtt-tools/discordlink/internal/dependencies/mocks"
	"github.com/vtt-tools/discordlink/internal/model"
	"github.com/vtt-tools/discordlink/internal/storage/memory"
	"github.com/vtt-tools/discordlink/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	s.ctx = context.Background()
}

func (s *ServiceSuite) newService(runner Runner) *Service {
	return New(runner, s.storage, s.clock, testutil.NopLogger())
}

func (s *ServiceSuite) TestTriggerFullSyncRecordsTimestamp() {
	ran := false
	svc := s.newService(RunnerFunc(func(ctx context.Context) error {
		ran = true
		return nil
	}))

	s.Require().NoError(svc.TriggerFullSync(s.ctx))
	s.True(ran)

	settings, err := s.storage.LoadSettings(s.ctx)
	s.Require().NoError(err)
	s.True(s.clock.Now().Equal(settings.LastSyncAt))
}

func (s *ServiceSuite) TestTriggerFullSyncRunnerFailure() {
	svc := s.newService(RunnerFunc(func(ctx context.Context) error {
		return errors.New("boom")
	}))

	err := svc.TriggerFullSync(s.ctx)
	s.Require().Error(err)
	s.False(svc.Running(), "running flag restored after failure")

	settings, err := s.storage.LoadSettings(s.ctx)
	s.Require().NoError(err)
	s.True(settings.LastSyncAt.IsZero(), "no timestamp recorded for a failed sync")
}

func (s *ServiceSuite) TestTriggerFullSyncRejectsReentry() {
	started := make(chan struct{})
	release := make(chan struct{})

	svc := s.newService(RunnerFunc(func(ctx context.Context) error {
		close(started)
		<-release
		return nil
	}))

	done := make(chan error, 1)
	go func() {
		done <- svc.TriggerFullSync(s.ctx)
	}()

	<-started
	s.True(svc.Running())
	s.ErrorIs(svc.TriggerFullSync(s.ctx), model.ErrSyncInProgress)

	close(release)
	s.Require().NoError(<-done)
	s.False(svc.Running())
}
