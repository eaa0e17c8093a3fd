package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/maheshrc27/realty-crm/internal/models"
	"github.com/maheshrc27/realty-crm/internal/repository"
	"github.com/maheshrc27/realty-crm/internal/transfer"
	"github.com/stretchr/testify/mock"
	"github.com/stripe/stripe-go/v81"
)

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*models.User, bool, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*models.User), args.Bool(1), args.Error(2)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, bool, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*models.User), args.Bool(1), args.Error(2)
}

func (m *mockUserRepo) Create(ctx context.Context, tx *sql.Tx, user *models.User) (int64, error) {
	args := m.Called(ctx, tx, user)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) Remove(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockWorkspaceRepo struct{ mock.Mock }

func (m *mockWorkspaceRepo) Create(ctx context.Context, tx *sql.Tx, ws *models.Workspace) (int64, error) {
	args := m.Called(ctx, tx, ws)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockWorkspaceRepo) GetByID(ctx context.Context, id int64) (*models.Workspace, bool, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*models.Workspace), args.Bool(1), args.Error(2)
}

func (m *mockWorkspaceRepo) GetByOwnerID(ctx context.Context, ownerID int64) (*models.Workspace, bool, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*models.Workspace), args.Bool(1), args.Error(2)
}

type mockProfileRepo struct{ mock.Mock }

func (m *mockProfileRepo) profile(args mock.Arguments) (*models.Profile, bool, error) {
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*models.Profile), args.Bool(1), args.Error(2)
}

func (m *mockProfileRepo) GetByUserID(ctx context.Context, userID int64) (*models.Profile, bool, error) {
	return m.profile(m.Called(ctx, userID))
}

func (m *mockProfileRepo) GetByStripeCustomerID(ctx context.Context, customerID string) (*models.Profile, bool, error) {
	return m.profile(m.Called(ctx, customerID))
}

func (m *mockProfileRepo) GetByStripeSubscriptionID(ctx context.Context, subscriptionID string) (*models.Profile, bool, error) {
	return m.profile(m.Called(ctx, subscriptionID))
}

func (m *mockProfileRepo) GetWorkspaceOwner(ctx context.Context, workspaceID int64) (*models.Profile, bool, error) {
	return m.profile(m.Called(ctx, workspaceID))
}

func (m *mockProfileRepo) Upsert(ctx context.Context, profile *models.Profile) (int64, error) {
	args := m.Called(ctx, profile)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockProfileRepo) UpdateDetails(ctx context.Context, profile *models.Profile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *mockProfileRepo) UpdateBilling(ctx context.Context, profile *models.Profile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *mockProfileRepo) SetWorkspace(ctx context.Context, userID, workspaceID int64, role string) error {
	return m.Called(ctx, userID, workspaceID, role).Error(0)
}

func (m *mockProfileRepo) ListMembers(ctx context.Context, workspaceID int64) ([]*models.TeamMember, error) {
	args := m.Called(ctx, workspaceID)
	return args.Get(0).([]*models.TeamMember), args.Error(1)
}

func (m *mockProfileRepo) CountMembers(ctx context.Context, workspaceID int64) (int, error) {
	args := m.Called(ctx, workspaceID)
	return args.Int(0), args.Error(1)
}

func (m *mockProfileRepo) DeactivateLapsed(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

type mockLeadRepo struct{ mock.Mock }

func (m *mockLeadRepo) Create(ctx context.Context, lead *models.Lead) (int64, error) {
	args := m.Called(ctx, lead)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockLeadRepo) GetByID(ctx context.Context, workspaceID, id int64) (*models.Lead, bool, error) {
	args := m.Called(ctx, workspaceID, id)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*models.Lead), args.Bool(1), args.Error(2)
}

func (m *mockLeadRepo) List(ctx context.Context, workspaceID int64, filter repository.ListFilter) ([]*models.Lead, error) {
	args := m.Called(ctx, workspaceID, filter)
	return args.Get(0).([]*models.Lead), args.Error(1)
}

func (m *mockLeadRepo) Update(ctx context.Context, lead *models.Lead) (bool, error) {
	args := m.Called(ctx, lead)
	return args.Bool(0), args.Error(1)
}

func (m *mockLeadRepo) Remove(ctx context.Context, workspaceID, id int64) (bool, error) {
	args := m.Called(ctx, workspaceID, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockLeadRepo) CountByWorkspace(ctx context.Context, workspaceID int64) (int, error) {
	args := m.Called(ctx, workspaceID)
	return args.Int(0), args.Error(1)
}

func (m *mockLeadRepo) StatusSummary(ctx context.Context, workspaceID int64) ([]models.StatusCount, error) {
	args := m.Called(ctx, workspaceID)
	return args.Get(0).([]models.StatusCount), args.Error(1)
}

func (m *mockLeadRepo) CountByMember(ctx context.Context, workspaceID int64) ([]models.MemberLeadCount, error) {
	args := m.Called(ctx, workspaceID)
	return args.Get(0).([]models.MemberLeadCount), args.Error(1)
}

type mockPropertyRepo struct{ mock.Mock }

func (m *mockPropertyRepo) Create(ctx context.Context, p *models.Property) (int64, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockPropertyRepo) GetByID(ctx context.Context, workspaceID, id int64) (*models.Property, bool, error) {
	args := m.Called(ctx, workspaceID, id)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*models.Property), args.Bool(1), args.Error(2)
}

func (m *mockPropertyRepo) List(ctx context.Context, workspaceID int64, filter repository.ListFilter) ([]*models.Property, error) {
	args := m.Called(ctx, workspaceID, filter)
	return args.Get(0).([]*models.Property), args.Error(1)
}

func (m *mockPropertyRepo) Update(ctx context.Context, p *models.Property) (bool, error) {
	args := m.Called(ctx, p)
	return args.Bool(0), args.Error(1)
}

func (m *mockPropertyRepo) Remove(ctx context.Context, workspaceID, id int64) (bool, error) {
	args := m.Called(ctx, workspaceID, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockPropertyRepo) StatusSummary(ctx context.Context, workspaceID int64) ([]models.StatusCount, error) {
	args := m.Called(ctx, workspaceID)
	return args.Get(0).([]models.StatusCount), args.Error(1)
}

type mockTaskRepo struct{ mock.Mock }

func (m *mockTaskRepo) task(args mock.Arguments) (*models.Task, bool, error) {
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*models.Task), args.Bool(1), args.Error(2)
}

func (m *mockTaskRepo) Create(ctx context.Context, t *models.Task) (int64, error) {
	args := m.Called(ctx, t)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockTaskRepo) GetByID(ctx context.Context, workspaceID, id int64) (*models.Task, bool, error) {
	return m.task(m.Called(ctx, workspaceID, id))
}

func (m *mockTaskRepo) Find(ctx context.Context, id int64) (*models.Task, bool, error) {
	return m.task(m.Called(ctx, id))
}

func (m *mockTaskRepo) List(ctx context.Context, workspaceID int64, filter repository.ListFilter) ([]*models.Task, error) {
	args := m.Called(ctx, workspaceID, filter)
	return args.Get(0).([]*models.Task), args.Error(1)
}

func (m *mockTaskRepo) ListOpenDueBefore(ctx context.Context, workspaceID int64, before time.Time) ([]*models.Task, error) {
	args := m.Called(ctx, workspaceID, before)
	return args.Get(0).([]*models.Task), args.Error(1)
}

func (m *mockTaskRepo) Update(ctx context.Context, t *models.Task) (bool, error) {
	args := m.Called(ctx, t)
	return args.Bool(0), args.Error(1)
}

func (m *mockTaskRepo) Remove(ctx context.Context, workspaceID, id int64) (bool, error) {
	args := m.Called(ctx, workspaceID, id)
	return args.Bool(0), args.Error(1)
}

type mockClientRepo struct{ mock.Mock }

func (m *mockClientRepo) Create(ctx context.Context, c *models.Client) (int64, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockClientRepo) GetByID(ctx context.Context, workspaceID, id int64) (*models.Client, bool, error) {
	args := m.Called(ctx, workspaceID, id)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*models.Client), args.Bool(1), args.Error(2)
}

func (m *mockClientRepo) List(ctx context.Context, workspaceID int64, filter repository.ListFilter) ([]*models.Client, error) {
	args := m.Called(ctx, workspaceID, filter)
	return args.Get(0).([]*models.Client), args.Error(1)
}

func (m *mockClientRepo) Update(ctx context.Context, c *models.Client) (bool, error) {
	args := m.Called(ctx, c)
	return args.Bool(0), args.Error(1)
}

func (m *mockClientRepo) Remove(ctx context.Context, workspaceID, id int64) (bool, error) {
	args := m.Called(ctx, workspaceID, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockClientRepo) CountByWorkspace(ctx context.Context, workspaceID int64) (int, error) {
	args := m.Called(ctx, workspaceID)
	return args.Int(0), args.Error(1)
}

type mockSubscriptionRepo struct{ mock.Mock }

func (m *mockSubscriptionRepo) GetBySubscriptionID(ctx context.Context, subscriptionID string) (*models.Subscription, bool, error) {
	args := m.Called(ctx, subscriptionID)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*models.Subscription), args.Bool(1), args.Error(2)
}

func (m *mockSubscriptionRepo) ListByUserID(ctx context.Context, userID int64) ([]*models.Subscription, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]*models.Subscription), args.Error(1)
}

func (m *mockSubscriptionRepo) Upsert(ctx context.Context, sub *models.Subscription) (int64, error) {
	args := m.Called(ctx, sub)
	return args.Get(0).(int64), args.Error(1)
}

type mockSettingsService struct{ mock.Mock }

func (m *mockSettingsService) GetSettingsInfo(ctx context.Context, userID int64) (*models.Settings, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Settings), args.Error(1)
}

func (m *mockSettingsService) UpdateSettings(ctx context.Context, userID int64, su *transfer.SettingsUpdate) (*models.Settings, error) {
	args := m.Called(ctx, userID, su)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Settings), args.Error(1)
}

type mockScheduler struct{ mock.Mock }

func (m *mockScheduler) ScheduleWelcomeEmail(ctx context.Context, userID int64) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *mockScheduler) ScheduleTaskReminder(ctx context.Context, taskID int64, due, at time.Time) error {
	return m.Called(ctx, taskID, due, at).Error(0)
}

type mockGateway struct{ mock.Mock }

func (m *mockGateway) CreateCheckoutSession(ctx context.Context, params transfer.CheckoutParams) (string, error) {
	args := m.Called(ctx, params)
	return args.String(0), args.Error(1)
}

func (m *mockGateway) CreatePortalSession(ctx context.Context, customerID, returnURL string) (string, error) {
	args := m.Called(ctx, customerID, returnURL)
	return args.String(0), args.Error(1)
}

func (m *mockGateway) ConstructEvent(payload []byte, signature string) (stripe.Event, error) {
	args := m.Called(payload, signature)
	return args.Get(0).(stripe.Event), args.Error(1)
}

type mockIdentityProvider struct{ mock.Mock }

func (m *mockIdentityProvider) AuthCodeURL(state string) string {
	return m.Called(state).String(0)
}

func (m *mockIdentityProvider) Exchange(ctx context.Context, code string) (*transfer.GoogleUser, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transfer.GoogleUser), args.Error(1)
}

type mockApiKeyRepo struct{ mock.Mock }

func (m *mockApiKeyRepo) UserIDByKey(ctx context.Context, key string) (int64, bool, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(int64), args.Bool(1), args.Error(2)
}

func (m *mockApiKeyRepo) ListByUserID(ctx context.Context, userID int64) ([]*models.ApiKey, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]*models.ApiKey), args.Error(1)
}

func (m *mockApiKeyRepo) CreateWithin(ctx context.Context, key *models.ApiKey, limit int) (int64, bool, error) {
	args := m.Called(ctx, key, limit)
	return args.Get(0).(int64), args.Bool(1), args.Error(2)
}

func (m *mockApiKeyRepo) Remove(ctx context.Context, userID, id int64) (bool, error) {
	args := m.Called(ctx, userID, id)
	return args.Bool(0), args.Error(1)
}

// nopActivity records nothing.
type nopActivity struct{}

func (nopActivity) Record(context.Context, *Access, string, string, int64) {}

func (nopActivity) List(context.Context, *Access, int, int) ([]*models.ActivityLog, error) {
	return []*models.ActivityLog{}, nil
}

func ownerAccess(tier string) *Access {
	return &Access{
		UserID:      1,
		WorkspaceID: 10,
		Role:        models.RoleOwner,
		Tier:        tier,
		Status:      models.SubscriptionStatusActive,
	}
}
