package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	LeadStatusNew       = "new"
	LeadStatusContacted = "contacted"
	LeadStatusQualified = "qualified"
	LeadStatusProposal  = "proposal"
	LeadStatusWon       = "won"
	LeadStatusLost      = "lost"
)

var LeadStatuses = []string{
	LeadStatusNew,
	LeadStatusContacted,
	LeadStatusQualified,
	LeadStatusProposal,
	LeadStatusWon,
	LeadStatusLost,
}

type Lead struct {
	ID          int64           `db:"id" json:"id"`
	WorkspaceID int64           `db:"workspace_id" json:"workspace_id"`
	OwnerID     int64           `db:"owner_id" json:"owner_id"`
	Name        string          `db:"name" json:"name"`
	Email       string          `db:"email" json:"email"`
	Phone       string          `db:"phone" json:"phone"`
	Source      string          `db:"source" json:"source"`
	Status      string          `db:"status" json:"status"`
	Budget      decimal.Decimal `db:"budget" json:"budget"`
	Notes       string          `db:"notes" json:"notes"`
	PropertyID  *int64          `db:"property_id" json:"property_id,omitempty"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updated_at"`
}

// IsOpen reports whether the lead is still in the pipeline.
func (l *Lead) IsOpen() bool {
	return l.Status != LeadStatusWon && l.Status != LeadStatusLost
}
