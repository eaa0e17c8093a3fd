package service

import (
	"github.com/maheshrc27/realty-crm/internal/models"
	"github.com/maheshrc27/realty-crm/internal/plans"
)

// Access is the caller's resolved position: which workspace they act in and
// which subscription governs it. Members inherit the workspace owner's plan.
type Access struct {
	UserID      int64
	WorkspaceID int64
	Role        string
	Tier        string
	Status      string
}

// Active reports whether the governing subscription is paid up.
func (a *Access) Active() bool {
	return a.Status == models.SubscriptionStatusActive || a.Status == models.SubscriptionStatusTrialing
}

// EffectiveTier is the tier used for gating. Without an active subscription
// only the single-user base plan applies.
func (a *Access) EffectiveTier() string {
	if !a.Active() || !plans.IsValidTier(a.Tier) {
		return plans.TierSingleUser
	}
	return a.Tier
}

func (a *Access) Can(feature string) bool {
	return plans.HasFeature(feature, a.EffectiveTier())
}

func (a *Access) CanManageTeam() bool {
	return a.Role == models.RoleOwner || a.Role == models.RoleAdmin
}
