package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/hibiken/asynq"
	"github.com/maheshrc27/realty-crm/internal/models"
)

// Register wires the task handlers into the asynq mux.
func (q *Queue) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(TaskTypeWelcomeEmail, q.HandleWelcomeEmailTask)
	mux.HandleFunc(TaskTypeTaskReminder, q.HandleTaskReminderTask)
}

func (q *Queue) HandleWelcomeEmailTask(ctx context.Context, task *asynq.Task) error {
	var payload WelcomeEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("decode payload: %v: %w", err, asynq.SkipRetry)
	}

	user, isExist, err := q.ur.GetByID(ctx, payload.UserID)
	if err != nil {
		return err
	}
	if !isExist {
		log.Printf("Welcome email skipped, user %d no longer exists", payload.UserID)
		return nil
	}

	return q.email.SendWelcome(ctx, user.Email, user.Name)
}

func (q *Queue) HandleTaskReminderTask(ctx context.Context, task *asynq.Task) error {
	var payload TaskReminderPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("decode payload: %v: %w", err, asynq.SkipRetry)
	}

	t, isExist, err := q.tr.Find(ctx, payload.TaskID)
	if err != nil {
		return err
	}
	if !isExist {
		log.Printf("Reminder skipped, task %d was deleted", payload.TaskID)
		return nil
	}
	if skip, reason := staleReminder(t, payload); skip {
		log.Printf("Reminder skipped for task %d: %s", t.ID, reason)
		return nil
	}

	settings, err := q.settings.GetSettingsInfo(ctx, t.AssigneeID)
	if err != nil {
		return err
	}
	if !settings.EmailNotifications {
		log.Printf("Reminder skipped for task %d: notifications disabled", t.ID)
		return nil
	}

	user, isExist, err := q.ur.GetByID(ctx, t.AssigneeID)
	if err != nil {
		return err
	}
	if !isExist {
		return nil
	}

	return q.email.SendTaskReminder(ctx, user.Email, user.Name, t)
}

func staleReminder(t *models.Task, payload TaskReminderPayload) (bool, string) {
	if t.Status == models.TaskStatusDone {
		return true, "task is done"
	}
	// Postgres keeps timestamps at microsecond precision.
	if t.DueAt == nil || !t.DueAt.Truncate(time.Microsecond).Equal(payload.DueAt.Truncate(time.Microsecond)) {
		return true, "due date changed"
	}
	return false, ""
}
