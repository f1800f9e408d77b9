package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/seanacker/souberUp/internal/service"
)

// Scheduler runs the daily usage-retention cleanup. Disabled when retention
// is zero.
type Scheduler struct {
	cron      *cron.Cron
	usage     *service.UsageService
	retention time.Duration
	log       zerolog.Logger
}

func NewScheduler(usage *service.UsageService, retention time.Duration, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:      cron.New(),
		usage:     usage,
		retention: retention,
		log:       log,
	}
}

func (s *Scheduler) Start() error {
	if s.retention <= 0 {
		s.log.Debug().Msg("usage retention disabled")
		return nil
	}

	if _, err := s.cron.AddFunc("30 3 * * *", s.cleanupUsage); err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
		s.log.Warn().Msg("scheduler stop timed out")
	}
}

func (s *Scheduler) cleanupUsage() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := s.usage.CleanupOldUsage(ctx, s.retention); err != nil {
		s.log.Error().Err(err).Msg("usage cleanup failed")
	}
}
