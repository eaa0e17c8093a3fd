package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/maheshrc27/realty-crm/internal/models"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

const senderName = "Realty CRM"

type EmailService interface {
	SendWelcome(ctx context.Context, to, name string) error
	SendTaskReminder(ctx context.Context, to, name string, task *models.Task) error
}

type emailService struct {
	apiKey      string
	from        string
	frontendURL string
}

func NewEmailService(apiKey, from, frontendURL string) EmailService {
	return &emailService{
		apiKey:      apiKey,
		from:        from,
		frontendURL: frontendURL,
	}
}

func (s *emailService) SendWelcome(ctx context.Context, to, name string) error {
	subject, body := welcomeMessage(name, s.frontendURL)
	return s.send(ctx, to, name, subject, body)
}

func (s *emailService) SendTaskReminder(ctx context.Context, to, name string, task *models.Task) error {
	subject, body := reminderMessage(task, s.frontendURL)
	return s.send(ctx, to, name, subject, body)
}

func (s *emailService) send(ctx context.Context, to, name, subject, body string) error {
	if s.apiKey == "" {
		slog.Info("sendgrid api key not configured, email skipped", "to", to, "subject", subject)
		return nil
	}

	from := mail.NewEmail(senderName, s.from)
	recipient := mail.NewEmail(name, to)
	message := mail.NewSingleEmail(from, subject, recipient, body, "")
	client := sendgrid.NewSendClient(s.apiKey)

	response, err := client.SendWithContext(ctx, message)
	if err != nil {
		slog.Info(err.Error())
		return fmt.Errorf("send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("send email: sendgrid status %d", response.StatusCode)
	}
	return nil
}

func welcomeMessage(name, frontendURL string) (string, string) {
	subject := "Welcome to Realty CRM"
	body := fmt.Sprintf(`Hi %s,

Your workspace is ready. Add your first leads and listings at %s/dashboard.

The Realty CRM team`, name, frontendURL)
	return subject, body
}

func reminderMessage(task *models.Task, frontendURL string) (string, string) {
	subject := "Reminder: " + task.Title
	due := "soon"
	if task.DueAt != nil {
		due = task.DueAt.UTC().Format(time.RFC1123)
	}
	body := fmt.Sprintf(`Task "%s" (%s priority) is due %s.

%s

Open it at %s/tasks/%d`, task.Title, task.Priority, due, task.Description, frontendURL, task.ID)
	return subject, body
}
