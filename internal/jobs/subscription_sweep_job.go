package job

import (
	"context"
	"log/slog"
	"time"

	"github.com/maheshrc27/realty-crm/internal/repository"
	"github.com/robfig/cron"
)

const (
	// SweepSchedule is how often lapsed subscriptions are checked.
	SweepSchedule = "@every 1h"
	// GracePeriod is how long a canceled or past-due plan keeps its tier after
	// the paid period ends.
	GracePeriod = 72 * time.Hour
)

type SubscriptionSweepJob struct {
	pr  repository.ProfileRepository
	now func() time.Time
}

func NewSubscriptionSweepJob(pr repository.ProfileRepository) *SubscriptionSweepJob {
	return &SubscriptionSweepJob{
		pr:  pr,
		now: time.Now,
	}
}

// Register adds the sweep to the cron scheduler.
func (j *SubscriptionSweepJob) Register(c *cron.Cron) error {
	return c.AddFunc(SweepSchedule, j.DeactivateLapsed)
}

// DeactivateLapsed moves canceled and past-due profiles whose grace period
// has run out to inactive.
func (j *SubscriptionSweepJob) DeactivateLapsed() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cutoff := j.now().Add(-GracePeriod)
	n, err := j.pr.DeactivateLapsed(ctx, cutoff)
	if err != nil {
		slog.Info(err.Error())
		return
	}
	if n > 0 {
		slog.Info("deactivated lapsed subscriptions", "count", n, "cutoff", cutoff)
	}
}
