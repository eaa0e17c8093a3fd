package queue

import (
	"time"

	"github.com/maheshrc27/realty-crm/internal/repository"
	"github.com/maheshrc27/realty-crm/internal/service"
)

const (
	TaskTypeWelcomeEmail = "email:welcome"
	TaskTypeTaskReminder = "task:reminder"
)

type WelcomeEmailPayload struct {
	UserID int64 `json:"user_id"`
}

type TaskReminderPayload struct {
	TaskID int64     `json:"task_id"`
	DueAt  time.Time `json:"due_at"`
}

// Queue holds what the worker handlers need to deliver emails.
type Queue struct {
	ur       repository.UserRepository
	tr       repository.TaskRepository
	settings service.SettingsService
	email    service.EmailService
}

func NewQueue(
	ur repository.UserRepository,
	tr repository.TaskRepository,
	settings service.SettingsService,
	email service.EmailService) *Queue {
	return &Queue{
		ur:       ur,
		tr:       tr,
		settings: settings,
		email:    email,
	}
}
