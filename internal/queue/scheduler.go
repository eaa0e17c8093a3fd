package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/hibiken/asynq"
)

// Enqueuer is satisfied by *asynq.Client.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Scheduler turns service requests into asynq tasks.
type Scheduler struct {
	client Enqueuer
}

func NewScheduler(client Enqueuer) *Scheduler {
	return &Scheduler{client: client}
}

func (s *Scheduler) ScheduleWelcomeEmail(ctx context.Context, userID int64) error {
	return s.enqueue(ctx, TaskTypeWelcomeEmail, WelcomeEmailPayload{UserID: userID}, asynq.MaxRetry(5))
}

func (s *Scheduler) ScheduleTaskReminder(ctx context.Context, taskID int64, dueAt, remindAt time.Time) error {
	payload := TaskReminderPayload{TaskID: taskID, DueAt: dueAt.UTC().Truncate(time.Microsecond)}
	return s.enqueue(ctx, TaskTypeTaskReminder, payload, asynq.ProcessAt(remindAt), asynq.MaxRetry(3))
}

func (s *Scheduler) enqueue(ctx context.Context, taskType string, payload any, opts ...asynq.Option) error {
	taskPayload, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	task := asynq.NewTask(taskType, taskPayload)

	info, err := s.client.EnqueueContext(ctx, task, opts...)
	if err != nil {
		return fmt.Errorf("enqueue %s: %w", taskType, err)
	}

	log.Printf("Task scheduled: %s %s (queue=%s)", taskType, info.ID, info.Queue)
	return nil
}
