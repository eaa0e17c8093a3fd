package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/maheshrc27/realty-crm/internal/models"
)

type SettingsRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*models.Settings, bool, error)
	Upsert(ctx context.Context, s *models.Settings) error
}

type settingsRepository struct {
	db *sql.DB
}

func NewSettingsRepository(db *sql.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) GetByUserID(ctx context.Context, userID int64) (*models.Settings, bool, error) {
	query := `SELECT id, user_id, email_notifications, reminder_minutes, created_at, updated_at FROM settings WHERE user_id = $1`
	row := r.db.QueryRowContext(ctx, query, userID)

	var settings models.Settings
	err := row.Scan(&settings.ID, &settings.UserID, &settings.EmailNotifications, &settings.ReminderMinutes, &settings.CreatedAt, &settings.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}

	return &settings, true, nil
}

func (r *settingsRepository) Upsert(ctx context.Context, s *models.Settings) error {
	query := `
		INSERT INTO settings (user_id, email_notifications, reminder_minutes)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE
		SET email_notifications = EXCLUDED.email_notifications,
			reminder_minutes = EXCLUDED.reminder_minutes,
			updated_at = NOW()
	`
	_, err := r.db.ExecContext(ctx, query, s.UserID, s.EmailNotifications, s.ReminderMinutes)
	if err != nil {
		slog.Info(err.Error())
		return err
	}

	return nil
}
