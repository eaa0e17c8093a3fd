// Package demo builds the sample data shown on the marketing site and used
// by crmctl to seed a workspace. Everything here is in memory and
// deterministic for a given reference time.
package demo

import (
	"fmt"
	"sort"
	"time"

	"github.com/maheshrc27/realty-crm/internal/models"
	"github.com/maheshrc27/realty-crm/internal/plans"
	"github.com/maheshrc27/realty-crm/internal/service"
	"github.com/maheshrc27/realty-crm/internal/transfer"
	"github.com/shopspring/decimal"
)

// Data is one demo workspace worth of CRM rows.
type Data struct {
	Leads      []*models.Lead     `json:"leads"`
	Properties []*models.Property `json:"properties"`
	Tasks      []*models.Task     `json:"tasks"`
	Clients    []*models.Client   `json:"clients,omitempty"`
}

type Dashboard struct {
	Demo      bool                       `json:"demo"`
	Plan      plans.Plan                 `json:"plan"`
	Summary   *transfer.DashboardSummary `json:"summary"`
	Analytics *transfer.Analytics        `json:"analytics,omitempty"`
	Data      *Data                      `json:"data"`
}

var members = []models.MemberLeadCount{
	{UserID: 1, FullName: "Dana Whitfield"},
	{UserID: 2, FullName: "Marcus Oyelaran"},
	{UserID: 3, FullName: "Priya Raman"},
}

type leadSeed struct {
	name, source, status string
	budget               int64
	owner                int64
}

var leadSeeds = []leadSeed{
	{"Olivia Hart", "website", models.LeadStatusNew, 420000, 1},
	{"Ethan Brooks", "referral", models.LeadStatusContacted, 615000, 2},
	{"Sofia Nguyen", "open house", models.LeadStatusQualified, 380000, 1},
	{"Liam Carter", "zillow", models.LeadStatusProposal, 890000, 3},
	{"Ava Patel", "referral", models.LeadStatusWon, 510000, 2},
	{"Noah Kim", "website", models.LeadStatusLost, 275000, 3},
	{"Mia Rossi", "instagram", models.LeadStatusNew, 330000, 1},
	{"Lucas Meyer", "open house", models.LeadStatusWon, 720000, 1},
}

type propertySeed struct {
	title, city, kind, status string
	price                     int64
	beds, baths, sqft         int
}

var propertySeeds = []propertySeed{
	{"Craftsman bungalow on Elm", "Portland", models.PropertyTypeHouse, models.PropertyStatusAvailable, 545000, 3, 2, 1650},
	{"Downtown loft 4B", "Portland", models.PropertyTypeApartment, models.PropertyStatusPending, 389000, 1, 1, 820},
	{"Lakeview condo", "Lake Oswego", models.PropertyTypeCondo, models.PropertyStatusAvailable, 465000, 2, 2, 1100},
	{"Corner retail unit", "Beaverton", models.PropertyTypeCommercial, models.PropertyStatusOffMarket, 1250000, 0, 1, 3200},
	{"Hillside lot", "West Linn", models.PropertyTypeLand, models.PropertyStatusSold, 210000, 0, 0, 0},
}

// Workspace returns the sample rows with timestamps relative to now.
func Workspace(now time.Time) *Data {
	day := now.UTC().Truncate(24 * time.Hour)
	d := &Data{}

	for i, s := range propertySeeds {
		created := day.AddDate(0, 0, -30+i*3)
		d.Properties = append(d.Properties, &models.Property{
			ID:           int64(i + 1),
			OwnerID:      1,
			Title:        s.title,
			Address:      fmt.Sprintf("%d Demo Street", 100+i*12),
			City:         s.city,
			State:        "OR",
			Zip:          fmt.Sprintf("972%02d", i+1),
			PropertyType: s.kind,
			Status:       s.status,
			Price:        decimal.NewFromInt(s.price),
			Bedrooms:     s.beds,
			Bathrooms:    s.baths,
			AreaSqft:     s.sqft,
			CreatedAt:    created,
			UpdatedAt:    created,
		})
	}

	for i, s := range leadSeeds {
		created := day.AddDate(0, 0, -20+i*2)
		lead := &models.Lead{
			ID:        int64(i + 1),
			OwnerID:   s.owner,
			Name:      s.name,
			Email:     fmt.Sprintf("lead%d@example.com", i+1),
			Source:    s.source,
			Status:    s.status,
			Budget:    decimal.NewFromInt(s.budget),
			CreatedAt: created,
			UpdatedAt: created,
		}
		if i < len(d.Properties) {
			pid := d.Properties[i].ID
			lead.PropertyID = &pid
		}
		d.Leads = append(d.Leads, lead)
	}

	taskTitles := []string{"Call back about financing", "Schedule showing", "Send comparables", "Prepare offer paperwork", "Follow up after open house"}
	for i, title := range taskTitles {
		due := day.Add(time.Duration(10+i*26) * time.Hour)
		leadID := d.Leads[i].ID
		status := models.TaskStatusPending
		if i == 3 {
			status = models.TaskStatusDone
		}
		d.Tasks = append(d.Tasks, &models.Task{
			ID:         int64(i + 1),
			CreatorID:  1,
			AssigneeID: int64(i%len(members)) + 1,
			LeadID:     &leadID,
			Title:      title,
			DueAt:      &due,
			Priority:   []string{models.TaskPriorityHigh, models.TaskPriorityMedium, models.TaskPriorityLow}[i%3],
			Status:     status,
			CreatedAt:  day.AddDate(0, 0, -2),
			UpdatedAt:  day.AddDate(0, 0, -2),
		})
	}

	for i, name := range []string{"Cascade Relocation", "Northwest Builders", "Harbor Family Office"} {
		d.Clients = append(d.Clients, &models.Client{
			ID:        int64(i + 1),
			Name:      name,
			Email:     fmt.Sprintf("contact%d@example.com", i+1),
			Company:   name,
			Status:    models.ClientStatusActive,
			CreatedAt: day.AddDate(0, -2, i),
			UpdatedAt: day.AddDate(0, -2, i),
		})
	}

	return d
}

// Build returns the demo dashboard for a tier, shaped like the real one.
func Build(catalog *plans.Catalog, tier string, now time.Time) (*Dashboard, error) {
	plan, ok := catalog.PlanByID(tier)
	if !ok {
		return nil, fmt.Errorf("unknown tier %q: %w", tier, service.ErrValidation)
	}

	data := Workspace(now)
	if plan.Tier != plans.TierCorporate {
		data.Clients = nil
	}

	leadSummary := summarize(len(data.Leads), func(i int) (string, decimal.Decimal) {
		return data.Leads[i].Status, data.Leads[i].Budget
	})
	summary := &transfer.DashboardSummary{
		Tier:     plan.Tier,
		Features: plans.FeaturesForTier(plan.Tier),
		Leads:    leadSummary,
		Properties: summarize(len(data.Properties), func(i int) (string, decimal.Decimal) {
			return data.Properties[i].Status, data.Properties[i].Price
		}),
		UpcomingTasks: upcoming(data.Tasks, now),
	}

	dash := &Dashboard{
		Demo:    true,
		Plan:    plan,
		Summary: summary,
		Data:    data,
	}

	if plans.HasFeature(plans.FeatureSharedPipeline, plan.Tier) {
		summary.MemberLeads = memberLeads(data.Leads)
	}
	if plans.HasFeature(plans.FeatureAnalytics, plan.Tier) {
		dash.Analytics = service.ComputeAnalytics(leadSummary)
	}
	if plans.HasFeature(plans.FeatureClients, plan.Tier) {
		n := len(data.Clients)
		summary.ClientCount = &n
	}
	return dash, nil
}

func summarize(n int, row func(i int) (string, decimal.Decimal)) []models.StatusCount {
	byStatus := map[string]*models.StatusCount{}
	for i := 0; i < n; i++ {
		status, amount := row(i)
		sc, ok := byStatus[status]
		if !ok {
			sc = &models.StatusCount{Status: status, Total: decimal.Zero}
			byStatus[status] = sc
		}
		sc.Count++
		sc.Total = sc.Total.Add(amount)
	}

	out := make([]models.StatusCount, 0, len(byStatus))
	for _, sc := range byStatus {
		out = append(out, *sc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Status < out[j].Status })
	return out
}

func upcoming(tasks []*models.Task, now time.Time) []*models.Task {
	horizon := now.Add(service.UpcomingWindow)
	out := []*models.Task{}
	for _, t := range tasks {
		if t.Status != models.TaskStatusDone && t.DueAt != nil && t.DueAt.Before(horizon) {
			out = append(out, t)
		}
	}
	return out
}

func memberLeads(leads []*models.Lead) []models.MemberLeadCount {
	out := make([]models.MemberLeadCount, len(members))
	copy(out, members)
	for _, l := range leads {
		for i := range out {
			if out[i].UserID == l.OwnerID {
				out[i].Leads++
			}
		}
	}
	return out
}
