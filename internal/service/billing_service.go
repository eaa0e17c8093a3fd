package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/maheshrc27/realty-crm/internal/models"
	"github.com/maheshrc27/realty-crm/internal/payment"
	"github.com/maheshrc27/realty-crm/internal/plans"
	"github.com/maheshrc27/realty-crm/internal/repository"
	"github.com/maheshrc27/realty-crm/internal/transfer"
)

type BillingService interface {
	Plans() []plans.Plan
	Checkout(ctx context.Context, a *Access, planID string) (string, error)
	Portal(ctx context.Context, a *Access) (string, error)
	Subscription(ctx context.Context, a *Access) (*transfer.SubscriptionResponse, error)
}

type billingService struct {
	frontendURL string
	catalog     *plans.Catalog
	gateway     payment.Gateway
	u           repository.UserRepository
	p           repository.ProfileRepository
	sr          repository.SubscriptionRepository
}

func NewBillingService(
	frontendURL string,
	catalog *plans.Catalog,
	gateway payment.Gateway,
	u repository.UserRepository,
	p repository.ProfileRepository,
	sr repository.SubscriptionRepository) BillingService {
	return &billingService{
		frontendURL: strings.TrimRight(frontendURL, "/"),
		catalog:     catalog,
		gateway:     gateway,
		u:           u,
		p:           p,
		sr:          sr,
	}
}

func (s *billingService) Plans() []plans.Plan {
	return s.catalog.List()
}

// Checkout opens a subscription checkout for the workspace owner and returns
// the hosted page URL.
func (s *billingService) Checkout(ctx context.Context, a *Access, planID string) (string, error) {
	if a.Role != models.RoleOwner {
		return "", fmt.Errorf("only the workspace owner manages billing: %w", ErrForbidden)
	}

	plan, ok := s.catalog.PlanByID(planID)
	if !ok {
		return "", fmt.Errorf("unknown plan %q: %w", planID, ErrValidation)
	}
	if plan.StripePriceID == "" {
		return "", fmt.Errorf("plan %q has no price configured: %w", plan.ID, ErrValidation)
	}

	profile, isExist, err := s.p.GetByUserID(ctx, a.UserID)
	if err != nil {
		return "", fmt.Errorf("load profile: %w", err)
	}
	if !isExist {
		return "", fmt.Errorf("profile for user %d: %w", a.UserID, ErrNotFound)
	}
	if profile.HasActiveSubscription() {
		return "", fmt.Errorf("subscription already active, change plans from the billing portal: %w", ErrConflict)
	}

	params := transfer.CheckoutParams{
		UserID:     a.UserID,
		PlanID:     plan.ID,
		PriceID:    plan.StripePriceID,
		CustomerID: profile.StripeCustomerID,
		SuccessURL: s.frontendURL + "/dashboard?checkout=success",
		CancelURL:  s.frontendURL + "/pricing?checkout=cancelled",
	}
	if params.CustomerID == "" {
		user, isExist, err := s.u.GetByID(ctx, a.UserID)
		if err != nil {
			return "", fmt.Errorf("load user: %w", err)
		}
		if isExist {
			params.CustomerEmail = user.Email
		}
	}

	url, err := s.gateway.CreateCheckoutSession(ctx, params)
	if err != nil {
		return "", fmt.Errorf("checkout: %w", err)
	}
	return url, nil
}

func (s *billingService) Portal(ctx context.Context, a *Access) (string, error) {
	if a.Role != models.RoleOwner {
		return "", fmt.Errorf("only the workspace owner manages billing: %w", ErrForbidden)
	}

	profile, isExist, err := s.p.GetByUserID(ctx, a.UserID)
	if err != nil {
		return "", fmt.Errorf("load profile: %w", err)
	}
	if !isExist || profile.StripeCustomerID == "" {
		return "", fmt.Errorf("no billing account yet: %w", ErrValidation)
	}

	url, err := s.gateway.CreatePortalSession(ctx, profile.StripeCustomerID, s.frontendURL+"/dashboard")
	if err != nil {
		return "", fmt.Errorf("portal: %w", err)
	}
	return url, nil
}

// Subscription reports the billing state governing the caller's workspace.
func (s *billingService) Subscription(ctx context.Context, a *Access) (*transfer.SubscriptionResponse, error) {
	profile, isExist, err := s.p.GetByUserID(ctx, a.UserID)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if !isExist {
		return nil, fmt.Errorf("profile for user %d: %w", a.UserID, ErrNotFound)
	}

	if profile.Role != models.RoleOwner {
		owner, ok, err := s.p.GetWorkspaceOwner(ctx, profile.WorkspaceID)
		if err != nil {
			return nil, fmt.Errorf("load workspace owner: %w", err)
		}
		if ok {
			profile = owner
		}
	}

	res := &transfer.SubscriptionResponse{
		Tier:             profile.Tier,
		Status:           profile.SubscriptionStatus,
		CurrentPeriodEnd: profile.CurrentPeriodEnd,
		HasCustomer:      profile.StripeCustomerID != "" && profile.UserID == a.UserID,
	}
	if plan, ok := s.catalog.PlanByID(profile.Tier); ok {
		res.Plan = &plan
	}

	// Only the paying account sees its subscription history.
	if profile.UserID == a.UserID {
		history, err := s.sr.ListByUserID(ctx, a.UserID)
		if err != nil {
			return nil, fmt.Errorf("list subscriptions: %w", err)
		}
		res.History = history
	}
	return res, nil
}
