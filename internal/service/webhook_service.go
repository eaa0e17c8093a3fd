package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/maheshrc27/realty-crm/internal/models"
	"github.com/maheshrc27/realty-crm/internal/payment"
	"github.com/maheshrc27/realty-crm/internal/plans"
	"github.com/maheshrc27/realty-crm/internal/repository"
	"github.com/stripe/stripe-go/v81"
)

var ErrInvalidSignature = errors.New("invalid webhook signature")

type WebhookResult struct {
	EventID   string `json:"event_id"`
	EventType string `json:"event_type"`
	Handled   bool   `json:"handled"`
}

type WebhookService interface {
	// ProcessWebhook verifies and applies a Stripe event. A nil result means
	// the payload could not be verified.
	ProcessWebhook(ctx context.Context, payload []byte, signature string) (*WebhookResult, error)
}

type webhookService struct {
	gateway payment.Gateway
	catalog *plans.Catalog
	p       repository.ProfileRepository
	sr      repository.SubscriptionRepository
}

func NewWebhookService(
	gateway payment.Gateway,
	catalog *plans.Catalog,
	p repository.ProfileRepository,
	sr repository.SubscriptionRepository) WebhookService {
	return &webhookService{
		gateway: gateway,
		catalog: catalog,
		p:       p,
		sr:      sr,
	}
}

func (s *webhookService) ProcessWebhook(ctx context.Context, payload []byte, signature string) (*WebhookResult, error) {
	event, err := s.gateway.ConstructEvent(payload, signature)
	if err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	result := &WebhookResult{
		EventID:   event.ID,
		EventType: string(event.Type),
		Handled:   true,
	}

	switch event.Type {
	case "checkout.session.completed":
		err = s.checkoutCompleted(ctx, event)
	case "customer.subscription.created", "customer.subscription.updated":
		err = s.subscriptionChanged(ctx, event)
	case "customer.subscription.deleted":
		err = s.subscriptionDeleted(ctx, event)
	case "invoice.paid":
		err = s.invoiceStatus(ctx, event, models.SubscriptionStatusActive)
	case "invoice.payment_failed":
		err = s.invoiceStatus(ctx, event, models.SubscriptionStatusPastDue)
	default:
		result.Handled = false
	}

	if err != nil {
		slog.Error("webhook processing failed", "event_id", event.ID, "event_type", event.Type, "error", err)
		result.Handled = false
		return result, err
	}
	return result, nil
}

func (s *webhookService) checkoutCompleted(ctx context.Context, event stripe.Event) error {
	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		return fmt.Errorf("decode checkout session: %w", err)
	}

	userID, err := strconv.ParseInt(sess.ClientReferenceID, 10, 64)
	if err != nil {
		slog.Warn("checkout session without a user reference", "session_id", sess.ID)
		return nil
	}

	profile, isExist, err := s.p.GetByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}
	if !isExist {
		slog.Warn("profile not found for checkout", "user_id", userID)
		return nil
	}

	if plan, ok := s.catalog.PlanByID(sess.Metadata["plan_id"]); ok {
		profile.Tier = plan.Tier
	}
	profile.SubscriptionStatus = models.SubscriptionStatusActive
	if sess.Customer != nil && sess.Customer.ID != "" {
		profile.StripeCustomerID = sess.Customer.ID
	}
	if sess.Subscription != nil && sess.Subscription.ID != "" {
		profile.StripeSubscriptionID = sess.Subscription.ID
	}

	if err := s.p.UpdateBilling(ctx, profile); err != nil {
		return fmt.Errorf("update billing: %w", err)
	}
	return nil
}

func (s *webhookService) subscriptionChanged(ctx context.Context, event stripe.Event) error {
	var sub stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
		return fmt.Errorf("decode subscription: %w", err)
	}

	profile, err := s.profileForSubscription(ctx, &sub)
	if err != nil || profile == nil {
		return err
	}

	status := MapSubscriptionStatus(sub.Status)
	var periodEnd *time.Time
	if sub.CurrentPeriodEnd > 0 {
		end := time.Unix(sub.CurrentPeriodEnd, 0).UTC()
		periodEnd = &end
	}
	plan, hasPlan := s.planForSubscription(&sub)

	record := &models.Subscription{
		UserID:              profile.UserID,
		SubscriptionID:      sub.ID,
		SubscriptionEndDate: periodEnd,
		Status:              status,
	}
	if hasPlan {
		record.PlanID = plan.ID
	}

	if supersededBy(profile, sub.ID) {
		slog.Info("subscription superseded, history only", "user_id", profile.UserID, "subscription_id", sub.ID, "current", profile.StripeSubscriptionID)
		return s.record(ctx, record)
	}

	profile.SubscriptionStatus = status
	profile.StripeSubscriptionID = sub.ID
	if periodEnd != nil {
		profile.CurrentPeriodEnd = periodEnd
	}
	if hasPlan {
		profile.Tier = plan.Tier
	}

	if err := s.p.UpdateBilling(ctx, profile); err != nil {
		return fmt.Errorf("update billing: %w", err)
	}

	record.SubscriptionEndDate = profile.CurrentPeriodEnd
	return s.record(ctx, record)
}

func (s *webhookService) subscriptionDeleted(ctx context.Context, event stripe.Event) error {
	var sub stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
		return fmt.Errorf("decode subscription: %w", err)
	}

	profile, err := s.profileForSubscription(ctx, &sub)
	if err != nil || profile == nil {
		return err
	}

	record := &models.Subscription{
		UserID:         profile.UserID,
		SubscriptionID: sub.ID,
		Status:         models.SubscriptionStatusCanceled,
	}
	if sub.CurrentPeriodEnd > 0 {
		end := time.Unix(sub.CurrentPeriodEnd, 0).UTC()
		record.SubscriptionEndDate = &end
	}

	if supersededBy(profile, sub.ID) {
		slog.Info("superseded subscription deleted, history only", "user_id", profile.UserID, "subscription_id", sub.ID, "current", profile.StripeSubscriptionID)
		return s.record(ctx, record)
	}

	profile.SubscriptionStatus = models.SubscriptionStatusCanceled
	if err := s.p.UpdateBilling(ctx, profile); err != nil {
		return fmt.Errorf("update billing: %w", err)
	}

	record.SubscriptionEndDate = profile.CurrentPeriodEnd
	return s.record(ctx, record)
}

func (s *webhookService) record(ctx context.Context, sub *models.Subscription) error {
	if _, err := s.sr.Upsert(ctx, sub); err != nil {
		return fmt.Errorf("record subscription: %w", err)
	}
	return nil
}

// supersededBy reports whether the profile already bills through a different
// subscription, in which case events for subscriptionID only touch history.
func supersededBy(profile *models.Profile, subscriptionID string) bool {
	return profile.StripeSubscriptionID != "" && profile.StripeSubscriptionID != subscriptionID
}

func (s *webhookService) invoiceStatus(ctx context.Context, event stripe.Event, status string) error {
	var inv stripe.Invoice
	if err := json.Unmarshal(event.Data.Raw, &inv); err != nil {
		return fmt.Errorf("decode invoice: %w", err)
	}
	if inv.Customer == nil || inv.Customer.ID == "" {
		slog.Warn("invoice without customer", "invoice_id", inv.ID)
		return nil
	}

	profile, isExist, err := s.p.GetByStripeCustomerID(ctx, inv.Customer.ID)
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}
	if !isExist {
		slog.Warn("profile not found for customer", "customer_id", inv.Customer.ID)
		return nil
	}

	profile.SubscriptionStatus = status
	if err := s.p.UpdateBilling(ctx, profile); err != nil {
		return fmt.Errorf("update billing: %w", err)
	}
	return nil
}

// profileForSubscription finds the subscriber by subscription id, then by
// customer id, then by the user id stamped in metadata at checkout. A nil
// profile with a nil error means nobody matched.
func (s *webhookService) profileForSubscription(ctx context.Context, sub *stripe.Subscription) (*models.Profile, error) {
	profile, isExist, err := s.p.GetByStripeSubscriptionID(ctx, sub.ID)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if isExist {
		return profile, nil
	}

	record, isExist, err := s.sr.GetBySubscriptionID(ctx, sub.ID)
	if err != nil {
		return nil, fmt.Errorf("load subscription: %w", err)
	}
	if isExist {
		profile, isExist, err = s.p.GetByUserID(ctx, record.UserID)
		if err != nil {
			return nil, fmt.Errorf("load profile: %w", err)
		}
		if isExist {
			return profile, nil
		}
	}

	if sub.Customer != nil && sub.Customer.ID != "" {
		profile, isExist, err = s.p.GetByStripeCustomerID(ctx, sub.Customer.ID)
		if err != nil {
			return nil, fmt.Errorf("load profile: %w", err)
		}
		if isExist {
			return profile, nil
		}
	}

	if userID, err := strconv.ParseInt(sub.Metadata["user_id"], 10, 64); err == nil {
		profile, isExist, err = s.p.GetByUserID(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("load profile: %w", err)
		}
		if isExist {
			if sub.Customer != nil && sub.Customer.ID != "" {
				profile.StripeCustomerID = sub.Customer.ID
			}
			return profile, nil
		}
	}

	slog.Warn("profile not found for subscription", "subscription_id", sub.ID)
	return nil, nil
}

func (s *webhookService) planForSubscription(sub *stripe.Subscription) (plans.Plan, bool) {
	if plan, ok := s.catalog.PlanByID(sub.Metadata["plan_id"]); ok {
		return plan, true
	}
	if sub.Items != nil && len(sub.Items.Data) > 0 && sub.Items.Data[0].Price != nil {
		return s.catalog.PlanByPriceID(sub.Items.Data[0].Price.ID)
	}
	return plans.Plan{}, false
}

// MapSubscriptionStatus folds Stripe's subscription states into the profile's.
func MapSubscriptionStatus(status stripe.SubscriptionStatus) string {
	switch status {
	case stripe.SubscriptionStatusActive:
		return models.SubscriptionStatusActive
	case stripe.SubscriptionStatusTrialing:
		return models.SubscriptionStatusTrialing
	case stripe.SubscriptionStatusPastDue, stripe.SubscriptionStatusUnpaid:
		return models.SubscriptionStatusPastDue
	case stripe.SubscriptionStatusCanceled, stripe.SubscriptionStatusIncompleteExpired:
		return models.SubscriptionStatusCanceled
	default:
		return models.SubscriptionStatusInactive
	}
}
