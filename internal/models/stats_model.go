package models

import "github.com/shopspring/decimal"

// StatusCount is one row of a GROUP BY status aggregate.
type StatusCount struct {
	Status string          `json:"status"`
	Count  int             `json:"count"`
	Total  decimal.Decimal `json:"total"`
}

type MemberLeadCount struct {
	UserID   int64  `json:"user_id"`
	FullName string `json:"full_name"`
	Leads    int    `json:"leads"`
}
