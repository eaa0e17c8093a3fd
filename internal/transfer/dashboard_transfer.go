package transfer

import (
	"github.com/maheshrc27/realty-crm/internal/models"
	"github.com/shopspring/decimal"
)

type DashboardSummary struct {
	Tier           string                   `json:"tier"`
	Features       []string                 `json:"features"`
	Leads          []models.StatusCount     `json:"leads"`
	Properties     []models.StatusCount     `json:"properties"`
	UpcomingTasks  []*models.Task           `json:"upcoming_tasks"`
	MemberLeads    []models.MemberLeadCount `json:"member_leads,omitempty"`
	ClientCount    *int                     `json:"client_count,omitempty"`
	RecentActivity []*models.ActivityLog    `json:"recent_activity,omitempty"`
}

type Analytics struct {
	TotalLeads     int             `json:"total_leads"`
	WonLeads       int             `json:"won_leads"`
	ConversionRate float64         `json:"conversion_rate"`
	PipelineValue  decimal.Decimal `json:"pipeline_value"`
}
