package transfer

import (
	"time"

	"github.com/shopspring/decimal"
)

type LeadInput struct {
	Name       string          `json:"name" validate:"required,max=200"`
	Email      string          `json:"email" validate:"omitempty,email"`
	Phone      string          `json:"phone" validate:"max=40"`
	Source     string          `json:"source" validate:"max=80"`
	Status     string          `json:"status" validate:"omitempty,oneof=new contacted qualified proposal won lost"`
	Budget     decimal.Decimal `json:"budget"`
	Notes      string          `json:"notes" validate:"max=5000"`
	PropertyID *int64          `json:"property_id"`
}

type PropertyInput struct {
	Title        string          `json:"title" validate:"required,max=200"`
	Address      string          `json:"address" validate:"max=300"`
	City         string          `json:"city" validate:"max=120"`
	State        string          `json:"state" validate:"max=120"`
	Zip          string          `json:"zip" validate:"max=20"`
	PropertyType string          `json:"property_type" validate:"required,oneof=house apartment condo land commercial"`
	Status       string          `json:"status" validate:"omitempty,oneof=available pending sold off_market"`
	Price        decimal.Decimal `json:"price"`
	Bedrooms     int             `json:"bedrooms" validate:"gte=0,max=100"`
	Bathrooms    int             `json:"bathrooms" validate:"gte=0,max=100"`
	AreaSqft     int             `json:"area_sqft" validate:"gte=0"`
	Description  string          `json:"description" validate:"max=10000"`
}

type ContactInput struct {
	FirstName string `json:"first_name" validate:"required,max=120"`
	LastName  string `json:"last_name" validate:"max=120"`
	Email     string `json:"email" validate:"omitempty,email"`
	Phone     string `json:"phone" validate:"max=40"`
	Company   string `json:"company" validate:"max=120"`
	Kind      string `json:"kind" validate:"omitempty,oneof=buyer seller agent vendor other"`
	Notes     string `json:"notes" validate:"max=5000"`
}

type TaskInput struct {
	Title       string     `json:"title" validate:"required,max=200"`
	Description string     `json:"description" validate:"max=5000"`
	DueAt       *time.Time `json:"due_at"`
	Priority    string     `json:"priority" validate:"omitempty,oneof=low medium high"`
	Status      string     `json:"status" validate:"omitempty,oneof=pending in_progress done"`
	AssigneeID  int64      `json:"assignee_id" validate:"gte=0"`
	LeadID      *int64     `json:"lead_id"`
}

type ClientInput struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"omitempty,email"`
	Company string `json:"company" validate:"max=120"`
	Phone   string `json:"phone" validate:"max=40"`
	Status  string `json:"status" validate:"omitempty,oneof=active inactive"`
}
