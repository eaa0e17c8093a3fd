package models

import "time"

const DefaultReminderMinutes = 60

// Settings are the per-user notification preferences.
type Settings struct {
	ID                 int64     `db:"id" json:"id"`
	UserID             int64     `db:"user_id" json:"user_id"`
	EmailNotifications bool      `db:"email_notifications" json:"email_notifications"`
	ReminderMinutes    int       `db:"reminder_minutes" json:"reminder_minutes"`
	CreatedAt          time.Time `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time `db:"updated_at" json:"updated_at"`
}

func DefaultSettings(userID int64) *Settings {
	return &Settings{
		UserID:             userID,
		EmailNotifications: true,
		ReminderMinutes:    DefaultReminderMinutes,
	}
}
