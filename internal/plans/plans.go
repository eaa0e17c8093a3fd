package plans

import (
	"slices"
	"strings"
)

const (
	TierSingleUser = "single_user"
	TierTeam       = "team"
	TierCorporate  = "corporate"
)

const (
	FeatureLeads          = "leads"
	FeatureProperties     = "properties"
	FeatureContacts       = "contacts"
	FeatureTasks          = "tasks"
	FeaturePropertyPhotos = "property_photos"
	FeatureAnalytics      = "analytics"
	FeatureTeamManagement = "team_management"
	FeatureSharedPipeline = "shared_pipeline"
	FeatureClients        = "clients"
	FeatureActivityLogs   = "activity_logs"
	FeatureAPIAccess      = "api_access"
)

// Unlimited marks a limit that does not apply.
const Unlimited = -1

type Feature struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tiers       []string `json:"tiers"`
}

type Plan struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Tier          string   `json:"tier"`
	PriceCents    int64    `json:"price_cents"`
	Currency      string   `json:"currency"`
	Interval      string   `json:"interval"`
	Features      []string `json:"features"`
	MaxLeads      int      `json:"max_leads"`
	MaxSeats      int      `json:"max_seats"`
	StripePriceID string   `json:"-"`
}

var allTiers = []string{TierSingleUser, TierTeam, TierCorporate}

var features = map[string]Feature{
	FeatureLeads:          {Name: FeatureLeads, Description: "Lead pipeline", Tiers: allTiers},
	FeatureProperties:     {Name: FeatureProperties, Description: "Property listings", Tiers: allTiers},
	FeatureContacts:       {Name: FeatureContacts, Description: "Contact book", Tiers: allTiers},
	FeatureTasks:          {Name: FeatureTasks, Description: "Tasks and reminders", Tiers: allTiers},
	FeaturePropertyPhotos: {Name: FeaturePropertyPhotos, Description: "Listing photo uploads", Tiers: []string{TierTeam, TierCorporate}},
	FeatureAnalytics:      {Name: FeatureAnalytics, Description: "Pipeline analytics", Tiers: []string{TierTeam, TierCorporate}},
	FeatureTeamManagement: {Name: FeatureTeamManagement, Description: "Invite and manage agents", Tiers: []string{TierTeam, TierCorporate}},
	FeatureSharedPipeline: {Name: FeatureSharedPipeline, Description: "Workspace-wide pipeline view", Tiers: []string{TierTeam, TierCorporate}},
	FeatureClients:        {Name: FeatureClients, Description: "Managed client accounts", Tiers: []string{TierCorporate}},
	FeatureActivityLogs:   {Name: FeatureActivityLogs, Description: "Workspace audit log", Tiers: []string{TierCorporate}},
	FeatureAPIAccess:      {Name: FeatureAPIAccess, Description: "API key access", Tiers: []string{TierCorporate}},
}

var catalog = []Plan{
	{
		ID:         TierSingleUser,
		Name:       "Single User",
		Tier:       TierSingleUser,
		PriceCents: 2900,
		Currency:   "usd",
		Interval:   "month",
		MaxLeads:   250,
		MaxSeats:   1,
	},
	{
		ID:         TierTeam,
		Name:       "Team",
		Tier:       TierTeam,
		PriceCents: 7900,
		Currency:   "usd",
		Interval:   "month",
		MaxLeads:   2500,
		MaxSeats:   10,
	},
	{
		ID:         TierCorporate,
		Name:       "Corporate",
		Tier:       TierCorporate,
		PriceCents: 19900,
		Currency:   "usd",
		Interval:   "month",
		MaxLeads:   Unlimited,
		MaxSeats:   Unlimited,
	},
}

// Catalog is the read-only plan list with Stripe price IDs attached.
type Catalog struct {
	plans []Plan
}

// NewCatalog builds the catalog, attaching price IDs keyed by plan ID.
func NewCatalog(priceIDs map[string]string) *Catalog {
	list := make([]Plan, 0, len(catalog))
	for _, p := range catalog {
		p.Features = FeaturesForTier(p.Tier)
		p.StripePriceID = priceIDs[p.ID]
		list = append(list, p)
	}
	return &Catalog{plans: list}
}

func (c *Catalog) List() []Plan {
	return slices.Clone(c.plans)
}

func (c *Catalog) PlanByID(id string) (Plan, bool) {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, p := range c.plans {
		if p.ID == id {
			return p, true
		}
	}
	return Plan{}, false
}

func (c *Catalog) PlanByPriceID(priceID string) (Plan, bool) {
	if priceID == "" {
		return Plan{}, false
	}
	for _, p := range c.plans {
		if p.StripePriceID == priceID {
			return p, true
		}
	}
	return Plan{}, false
}

// HasFeature reports whether the feature is included in the tier.
func HasFeature(name, tier string) bool {
	f, ok := features[name]
	if !ok || tier == "" {
		return false
	}
	return slices.Contains(f.Tiers, tier)
}

// FeatureByName returns the feature definition.
func FeatureByName(name string) (Feature, bool) {
	f, ok := features[name]
	return f, ok
}

func FeaturesForTier(tier string) []string {
	var names []string
	for name, f := range features {
		if slices.Contains(f.Tiers, tier) {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

// RequiredTier returns the lowest tier that includes the feature.
func RequiredTier(name string) string {
	f, ok := features[name]
	if !ok {
		return ""
	}
	for _, tier := range allTiers {
		if slices.Contains(f.Tiers, tier) {
			return tier
		}
	}
	return ""
}

// Tiers lists the tiers from lowest to highest.
func Tiers() []string {
	return slices.Clone(allTiers)
}

func IsValidTier(tier string) bool {
	return slices.Contains(allTiers, tier)
}

func LeadLimit(tier string) int {
	for _, p := range catalog {
		if p.Tier == tier {
			return p.MaxLeads
		}
	}
	return catalog[0].MaxLeads
}

func SeatLimit(tier string) int {
	for _, p := range catalog {
		if p.Tier == tier {
			return p.MaxSeats
		}
	}
	return catalog[0].MaxSeats
}

// WithinLimit reports whether one more item fits under limit.
func WithinLimit(current, limit int) bool {
	return limit == Unlimited || current < limit
}

// DashboardPath returns the dashboard route of a tier. Unknown tiers land on
// the single-user dashboard.
func DashboardPath(tier string) string {
	switch tier {
	case TierTeam:
		return "/dashboard/team"
	case TierCorporate:
		return "/dashboard/corporate"
	default:
		return "/dashboard/single-user"
	}
}
