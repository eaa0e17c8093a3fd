package service

import (
	"context"
	"errors"
	"testing"
	"time"

	config "github.com/maheshrc27/realty-crm/configs"
	"github.com/maheshrc27/realty-crm/internal/models"
	"github.com/maheshrc27/realty-crm/internal/payment"
	"github.com/maheshrc27/realty-crm/internal/plans"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/webhook"
)

const webhookSecret = "whsec_test_secret"

func newWebhookFixture() (*mockProfileRepo, *mockSubscriptionRepo, WebhookService) {
	p := new(mockProfileRepo)
	sr := new(mockSubscriptionRepo)
	gateway := payment.NewStripeGateway(config.Stripe{WebhookSecret: webhookSecret})
	catalog := plans.NewCatalog(map[string]string{
		plans.TierTeam:      "price_team",
		plans.TierCorporate: "price_corp",
	})
	return p, sr, NewWebhookService(gateway, catalog, p, sr)
}

func sign(payload string) string {
	return webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   []byte(payload),
		Secret:    webhookSecret,
		Timestamp: time.Now(),
	}).Header
}

const checkoutCompleted = `{
	"id": "evt_checkout",
	"object": "event",
	"type": "checkout.session.completed",
	"data": {"object": {
		"id": "cs_1",
		"object": "checkout.session",
		"client_reference_id": "1",
		"customer": "cus_1",
		"subscription": "sub_1",
		"metadata": {"plan_id": "team"}
	}}
}`

func TestWebhook_CheckoutCompleted(t *testing.T) {
	p, _, svc := newWebhookFixture()
	ctx := context.Background()

	p.On("GetByUserID", ctx, int64(1)).Return(&models.Profile{UserID: 1, Tier: plans.TierSingleUser}, true, nil)
	p.On("UpdateBilling", ctx, mock.MatchedBy(func(pr *models.Profile) bool {
		return pr.Tier == plans.TierTeam &&
			pr.SubscriptionStatus == models.SubscriptionStatusActive &&
			pr.StripeCustomerID == "cus_1" &&
			pr.StripeSubscriptionID == "sub_1"
	})).Return(nil)

	result, err := svc.ProcessWebhook(ctx, []byte(checkoutCompleted), sign(checkoutCompleted))
	require.NoError(t, err)
	assert.True(t, result.Handled)
	assert.Equal(t, "evt_checkout", result.EventID)
	p.AssertExpectations(t)
}

func TestWebhook_InvalidSignature(t *testing.T) {
	p, _, svc := newWebhookFixture()

	result, err := svc.ProcessWebhook(context.Background(), []byte(checkoutCompleted), "t=1,v1=deadbeef")
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrInvalidSignature)

	tampered := checkoutCompleted + " "
	result, err = svc.ProcessWebhook(context.Background(), []byte(tampered), sign(checkoutCompleted))
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrInvalidSignature)
	p.AssertNotCalled(t, "UpdateBilling", mock.Anything, mock.Anything)
}

func TestWebhook_ProcessingFailureKeepsResult(t *testing.T) {
	p, _, svc := newWebhookFixture()
	ctx := context.Background()

	p.On("GetByUserID", ctx, int64(1)).Return(&models.Profile{UserID: 1}, true, nil)
	p.On("UpdateBilling", ctx, mock.Anything).Return(errors.New("deadlock detected"))

	result, err := svc.ProcessWebhook(ctx, []byte(checkoutCompleted), sign(checkoutCompleted))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidSignature)
	require.NotNil(t, result)
	assert.False(t, result.Handled)
}

func TestWebhook_SubscriptionUpdated(t *testing.T) {
	p, sr, svc := newWebhookFixture()
	ctx := context.Background()
	payload := `{
		"id": "evt_sub",
		"object": "event",
		"type": "customer.subscription.updated",
		"data": {"object": {
			"id": "sub_1",
			"object": "subscription",
			"customer": "cus_1",
			"status": "past_due",
			"current_period_end": 1767225600,
			"metadata": {},
			"items": {"object": "list", "data": [{"id": "si_1", "object": "subscription_item", "price": {"id": "price_corp", "object": "price"}}]}
		}}
	}`
	periodEnd := time.Unix(1767225600, 0).UTC()

	p.On("GetByStripeSubscriptionID", ctx, "sub_1").Return(&models.Profile{UserID: 1, Tier: plans.TierTeam}, true, nil)
	p.On("UpdateBilling", ctx, mock.MatchedBy(func(pr *models.Profile) bool {
		return pr.Tier == plans.TierCorporate &&
			pr.SubscriptionStatus == models.SubscriptionStatusPastDue &&
			pr.CurrentPeriodEnd != nil && pr.CurrentPeriodEnd.Equal(periodEnd)
	})).Return(nil)
	sr.On("Upsert", ctx, mock.MatchedBy(func(s *models.Subscription) bool {
		return s.SubscriptionID == "sub_1" && s.PlanID == plans.TierCorporate && s.Status == models.SubscriptionStatusPastDue
	})).Return(int64(1), nil)

	result, err := svc.ProcessWebhook(ctx, []byte(payload), sign(payload))
	require.NoError(t, err)
	assert.True(t, result.Handled)
	p.AssertExpectations(t)
	sr.AssertExpectations(t)
}

func TestWebhook_SubscriptionDeleted(t *testing.T) {
	p, sr, svc := newWebhookFixture()
	ctx := context.Background()
	payload := `{"id":"evt_del","object":"event","type":"customer.subscription.deleted",
		"data":{"object":{"id":"sub_1","object":"subscription","customer":"cus_1","status":"canceled"}}}`

	p.On("GetByStripeSubscriptionID", ctx, "sub_1").Return(&models.Profile{UserID: 1, Tier: plans.TierTeam}, true, nil)
	p.On("UpdateBilling", ctx, mock.MatchedBy(func(pr *models.Profile) bool {
		return pr.SubscriptionStatus == models.SubscriptionStatusCanceled && pr.Tier == plans.TierTeam
	})).Return(nil)
	sr.On("Upsert", ctx, mock.Anything).Return(int64(1), nil)

	_, err := svc.ProcessWebhook(ctx, []byte(payload), sign(payload))
	require.NoError(t, err)
	p.AssertExpectations(t)
}

func TestWebhook_SubscriptionResolvedThroughStoredRecord(t *testing.T) {
	p, sr, svc := newWebhookFixture()
	ctx := context.Background()
	payload := `{"id":"evt_sub2","object":"event","type":"customer.subscription.created",
		"data":{"object":{"id":"sub_9","object":"subscription","status":"active","metadata":{"plan_id":"team"}}}}`

	p.On("GetByStripeSubscriptionID", ctx, "sub_9").Return(nil, false, nil)
	sr.On("GetBySubscriptionID", ctx, "sub_9").Return(&models.Subscription{UserID: 4, SubscriptionID: "sub_9"}, true, nil)
	p.On("GetByUserID", ctx, int64(4)).Return(&models.Profile{UserID: 4, Tier: plans.TierSingleUser}, true, nil)
	p.On("UpdateBilling", ctx, mock.MatchedBy(func(pr *models.Profile) bool {
		return pr.UserID == 4 && pr.Tier == plans.TierTeam && pr.StripeSubscriptionID == "sub_9"
	})).Return(nil)
	sr.On("Upsert", ctx, mock.MatchedBy(func(s *models.Subscription) bool {
		return s.UserID == 4 && s.PlanID == plans.TierTeam
	})).Return(int64(2), nil)

	result, err := svc.ProcessWebhook(ctx, []byte(payload), sign(payload))
	require.NoError(t, err)
	assert.True(t, result.Handled)
	p.AssertExpectations(t)
	sr.AssertExpectations(t)
}

func TestWebhook_SupersededSubscriptionOnlyRecordsHistory(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		status  string
	}{
		{
			name: "deleted",
			payload: `{"id":"evt_old_del","object":"event","type":"customer.subscription.deleted",
				"data":{"object":{"id":"sub_old","object":"subscription","customer":"cus_1","status":"canceled"}}}`,
			status: models.SubscriptionStatusCanceled,
		},
		{
			name: "updated",
			payload: `{"id":"evt_old_upd","object":"event","type":"customer.subscription.updated",
				"data":{"object":{"id":"sub_old","object":"subscription","customer":"cus_1","status":"past_due","metadata":{"plan_id":"single_user"}}}}`,
			status: models.SubscriptionStatusPastDue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, sr, svc := newWebhookFixture()
			ctx := context.Background()

			current := &models.Profile{
				UserID:               1,
				Tier:                 plans.TierTeam,
				SubscriptionStatus:   models.SubscriptionStatusActive,
				StripeCustomerID:     "cus_1",
				StripeSubscriptionID: "sub_new",
			}
			p.On("GetByStripeSubscriptionID", ctx, "sub_old").Return(nil, false, nil)
			sr.On("GetBySubscriptionID", ctx, "sub_old").Return(&models.Subscription{UserID: 1, SubscriptionID: "sub_old"}, true, nil)
			p.On("GetByUserID", ctx, int64(1)).Return(current, true, nil)
			sr.On("Upsert", ctx, mock.MatchedBy(func(s *models.Subscription) bool {
				return s.SubscriptionID == "sub_old" && s.UserID == 1 && s.Status == tt.status
			})).Return(int64(3), nil)

			result, err := svc.ProcessWebhook(ctx, []byte(tt.payload), sign(tt.payload))
			require.NoError(t, err)
			assert.True(t, result.Handled)

			p.AssertNotCalled(t, "UpdateBilling", mock.Anything, mock.Anything)
			sr.AssertExpectations(t)
			assert.Equal(t, "sub_new", current.StripeSubscriptionID)
			assert.Equal(t, models.SubscriptionStatusActive, current.SubscriptionStatus)
			assert.Equal(t, plans.TierTeam, current.Tier)
		})
	}
}

func TestWebhook_InvoiceEvents(t *testing.T) {
	tests := []struct {
		eventType string
		want      string
	}{
		{"invoice.paid", models.SubscriptionStatusActive},
		{"invoice.payment_failed", models.SubscriptionStatusPastDue},
	}

	for _, tt := range tests {
		t.Run(tt.eventType, func(t *testing.T) {
			p, _, svc := newWebhookFixture()
			ctx := context.Background()
			payload := `{"id":"evt_inv","object":"event","type":"` + tt.eventType + `",
				"data":{"object":{"id":"in_1","object":"invoice","customer":"cus_1"}}}`

			p.On("GetByStripeCustomerID", ctx, "cus_1").Return(&models.Profile{UserID: 1}, true, nil)
			p.On("UpdateBilling", ctx, mock.MatchedBy(func(pr *models.Profile) bool {
				return pr.SubscriptionStatus == tt.want
			})).Return(nil)

			_, err := svc.ProcessWebhook(ctx, []byte(payload), sign(payload))
			require.NoError(t, err)
			p.AssertExpectations(t)
		})
	}
}

func TestWebhook_UnknownCustomerAcknowledged(t *testing.T) {
	p, _, svc := newWebhookFixture()
	ctx := context.Background()
	payload := `{"id":"evt_inv","object":"event","type":"invoice.paid",
		"data":{"object":{"id":"in_1","object":"invoice","customer":"cus_missing"}}}`

	p.On("GetByStripeCustomerID", ctx, "cus_missing").Return(nil, false, nil)

	result, err := svc.ProcessWebhook(ctx, []byte(payload), sign(payload))
	require.NoError(t, err)
	assert.True(t, result.Handled)
}

func TestWebhook_UnhandledType(t *testing.T) {
	_, _, svc := newWebhookFixture()
	payload := `{"id":"evt_x","object":"event","type":"customer.created","data":{"object":{"id":"cus_1"}}}`

	result, err := svc.ProcessWebhook(context.Background(), []byte(payload), sign(payload))
	require.NoError(t, err)
	assert.False(t, result.Handled)
	assert.Equal(t, "customer.created", result.EventType)
}

func TestMapSubscriptionStatus(t *testing.T) {
	tests := map[stripe.SubscriptionStatus]string{
		stripe.SubscriptionStatusActive:            models.SubscriptionStatusActive,
		stripe.SubscriptionStatusTrialing:          models.SubscriptionStatusTrialing,
		stripe.SubscriptionStatusPastDue:           models.SubscriptionStatusPastDue,
		stripe.SubscriptionStatusUnpaid:            models.SubscriptionStatusPastDue,
		stripe.SubscriptionStatusCanceled:          models.SubscriptionStatusCanceled,
		stripe.SubscriptionStatusIncompleteExpired: models.SubscriptionStatusCanceled,
		stripe.SubscriptionStatusIncomplete:        models.SubscriptionStatusInactive,
		stripe.SubscriptionStatusPaused:            models.SubscriptionStatusInactive,
	}
	for in, want := range tests {
		assert.Equal(t, want, MapSubscriptionStatus(in), string(in))
	}
}
