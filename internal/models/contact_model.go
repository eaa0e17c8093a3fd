package models

import "time"

const (
	ContactKindBuyer  = "buyer"
	ContactKindSeller = "seller"
	ContactKindAgent  = "agent"
	ContactKindVendor = "vendor"
	ContactKindOther  = "other"
)

type Contact struct {
	ID          int64     `db:"id" json:"id"`
	WorkspaceID int64     `db:"workspace_id" json:"workspace_id"`
	OwnerID     int64     `db:"owner_id" json:"owner_id"`
	FirstName   string    `db:"first_name" json:"first_name"`
	LastName    string    `db:"last_name" json:"last_name"`
	Email       string    `db:"email" json:"email"`
	Phone       string    `db:"phone" json:"phone"`
	Company     string    `db:"company" json:"company"`
	Kind        string    `db:"kind" json:"kind"`
	Notes       string    `db:"notes" json:"notes"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
