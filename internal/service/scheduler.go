package service

import (
	"context"
	"time"
)

// TaskScheduler hands work to the background queue.
type TaskScheduler interface {
	ScheduleWelcomeEmail(ctx context.Context, userID int64) error
	// ScheduleTaskReminder queues a reminder delivered at remindAt. dueAt
	// travels with it so a reminder for a rescheduled task can be dropped.
	ScheduleTaskReminder(ctx context.Context, taskID int64, dueAt, remindAt time.Time) error
}
