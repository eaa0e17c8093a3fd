package transfer

import (
	"time"

	"github.com/maheshrc27/realty-crm/internal/models"
	"github.com/maheshrc27/realty-crm/internal/plans"
)

type CheckoutRequest struct {
	PlanID string `json:"plan_id" validate:"required"`
}

type URLResponse struct {
	URL string `json:"url"`
}

type SubscriptionResponse struct {
	Tier             string      `json:"tier"`
	Status           string      `json:"status"`
	CurrentPeriodEnd *time.Time  `json:"current_period_end,omitempty"`
	HasCustomer      bool        `json:"has_customer"`
	Plan             *plans.Plan `json:"plan,omitempty"`

	History []*models.Subscription `json:"history,omitempty"`
}

// CheckoutParams carries what the payment gateway needs to open a session.
type CheckoutParams struct {
	UserID        int64
	PlanID        string
	PriceID       string
	CustomerID    string
	CustomerEmail string
	SuccessURL    string
	CancelURL     string
}
