package models

import "time"

const (
	RoleOwner = "owner"
	RoleAdmin = "admin"
	RoleAgent = "agent"
)

const (
	SubscriptionStatusInactive = "inactive"
	SubscriptionStatusActive   = "active"
	SubscriptionStatusTrialing = "trialing"
	SubscriptionStatusPastDue  = "past_due"
	SubscriptionStatusCanceled = "canceled"
)

// Profile holds the per-user subscription and billing metadata. There is
// exactly one profile per user.
type Profile struct {
	ID                   int64      `db:"id" json:"id"`
	UserID               int64      `db:"user_id" json:"user_id"`
	WorkspaceID          int64      `db:"workspace_id" json:"workspace_id"`
	FullName             string     `db:"full_name" json:"full_name"`
	Company              string     `db:"company" json:"company"`
	Phone                string     `db:"phone" json:"phone"`
	Role                 string     `db:"role" json:"role"`
	Tier                 string     `db:"tier" json:"tier"`
	SubscriptionStatus   string     `db:"subscription_status" json:"subscription_status"`
	StripeCustomerID     string     `db:"stripe_customer_id" json:"-"`
	StripeSubscriptionID string     `db:"stripe_subscription_id" json:"-"`
	CurrentPeriodEnd     *time.Time `db:"current_period_end" json:"current_period_end,omitempty"`
	CreatedAt            time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time  `db:"updated_at" json:"updated_at"`
}

// HasActiveSubscription reports whether the billing status grants the tier's
// paid features.
func (p *Profile) HasActiveSubscription() bool {
	return p.SubscriptionStatus == SubscriptionStatusActive || p.SubscriptionStatus == SubscriptionStatusTrialing
}

type Workspace struct {
	ID        int64     `db:"id" json:"id"`
	OwnerID   int64     `db:"owner_id" json:"owner_id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// TeamMember is a profile joined with its user row for team listings.
type TeamMember struct {
	UserID   int64     `db:"user_id" json:"user_id"`
	Email    string    `db:"email" json:"email"`
	FullName string    `db:"full_name" json:"full_name"`
	Role     string    `db:"role" json:"role"`
	JoinedAt time.Time `db:"created_at" json:"joined_at"`
}
