package transfer

import "time"

type ProfileUpdate struct {
	FullName string `json:"full_name" validate:"required,max=120"`
	Company  string `json:"company" validate:"max=120"`
	Phone    string `json:"phone" validate:"max=40"`
}

type SettingsUpdate struct {
	EmailNotifications bool `json:"email_notifications"`
	ReminderMinutes    int  `json:"reminder_minutes" validate:"gte=0,max=10080"`
}

type AddMemberRequest struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required,oneof=admin agent"`
}

type ApiKeyResponse struct {
	ID        int64     `json:"id"`
	ApiKey    string    `json:"api_key"`
	CreatedAt time.Time `json:"created_at"`
}
