package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/seanacker/souberUp/internal/ids"
	"github.com/seanacker/souberUp/internal/models"
)

var ErrNegativeUsage = errors.New("usage total must not be negative")

const msPerMinute = 60_000

type WeeklyProgress struct {
	GoalMinutes int
	TotalMS     int64
	Percent     float64
}

type UsageService struct {
	users UserStore
	usage UsageStore
	log   zerolog.Logger
}

func NewUsageService(users UserStore, usage UsageStore, log zerolog.Logger) *UsageService {
	return &UsageService{
		users: users,
		usage: usage,
		log:   log,
	}
}

// AddDailyUsage upserts the tracked total for one calendar day. Repeated
// reports for the same day replace the stored value. Users may only report
// their own usage.
func (s *UsageService) AddDailyUsage(ctx context.Context, callerID string, userID string, date time.Time, totalMS int64) error {
	if callerID != userID {
		return ErrPermissionDenied
	}
	if totalMS < 0 {
		return ErrNegativeUsage
	}

	return s.usage.Upsert(ctx, models.UsageDaily{
		ID:      ids.New(),
		UserID:  userID,
		Date:    date,
		TotalMS: totalMS,
	})
}

// WeeklyProgress sums usage over [weekStart, weekStart+7d) and expresses it
// against the user's goal, capped at 100%. A zero goal always reads 0%.
func (s *UsageService) WeeklyProgress(ctx context.Context, userID string, weekStart time.Time) (WeeklyProgress, error) {
	weekEnd := weekStart.AddDate(0, 0, 7)

	totalMS, err := s.usage.SumRange(ctx, userID, weekStart, weekEnd)
	if err != nil {
		return WeeklyProgress{}, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return WeeklyProgress{}, err
	}

	goal := user.UsageGoalMinutes
	percent := 0.0
	if goal > 0 {
		percent = float64(totalMS) / float64(int64(goal)*msPerMinute) * 100
		if percent > 100 {
			percent = 100
		}
	}

	return WeeklyProgress{
		GoalMinutes: goal,
		TotalMS:     totalMS,
		Percent:     percent,
	}, nil
}

// CleanupOldUsage drops rows older than the retention window. Used by the
// daily job; a zero retention disables it.
func (s *UsageService) CleanupOldUsage(ctx context.Context, retention time.Duration) error {
	if retention <= 0 {
		return nil
	}

	cutoff := time.Now().UTC().Add(-retention)
	deleted, err := s.usage.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return err
	}
	if deleted > 0 {
		s.log.Info().Int64("rows", deleted).Msg("old usage rows removed")
	}
	return nil
}
