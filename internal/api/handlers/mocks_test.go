package handlers

import (
	"context"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/realty-crm/internal/models"
	"github.com/maheshrc27/realty-crm/internal/plans"
	"github.com/maheshrc27/realty-crm/internal/repository"
	"github.com/maheshrc27/realty-crm/internal/service"
	"github.com/maheshrc27/realty-crm/internal/transfer"
	"github.com/stretchr/testify/mock"
)

// asCaller stands in for the auth middleware.
func asCaller(a *service.Access) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("user_id", "1")
		c.Locals("access", a)
		return c.Next()
	}
}

func teamOwner() *service.Access {
	return &service.Access{UserID: 1, WorkspaceID: 10, Role: models.RoleOwner, Tier: plans.TierTeam, Status: models.SubscriptionStatusActive}
}

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) Signup(ctx context.Context, req *transfer.SignupRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockAuthService) Login(ctx context.Context, req *transfer.LoginRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockAuthService) GoogleLoginURL(state string) string {
	return m.Called(state).String(0)
}

func (m *mockAuthService) GoogleCallback(ctx context.Context, code string) (*models.User, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockAuthService) SessionToken(userID int64) (string, error) {
	args := m.Called(userID)
	return args.String(0), args.Error(1)
}

type mockProfileService struct {
	mock.Mock
}

func (m *mockProfileService) GetAccess(ctx context.Context, userID int64) (*service.Access, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Access), args.Error(1)
}

func (m *mockProfileService) GetProfile(ctx context.Context, userID int64) (*models.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *mockProfileService) UpdateProfile(ctx context.Context, userID int64, pu *transfer.ProfileUpdate) (*models.Profile, error) {
	args := m.Called(ctx, userID, pu)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

type mockLeadService struct {
	mock.Mock
}

func (m *mockLeadService) Create(ctx context.Context, a *service.Access, in *transfer.LeadInput) (*models.Lead, error) {
	args := m.Called(ctx, a, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Lead), args.Error(1)
}

func (m *mockLeadService) Get(ctx context.Context, a *service.Access, id int64) (*models.Lead, error) {
	args := m.Called(ctx, a, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Lead), args.Error(1)
}

func (m *mockLeadService) List(ctx context.Context, a *service.Access, filter repository.ListFilter) ([]*models.Lead, error) {
	args := m.Called(ctx, a, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Lead), args.Error(1)
}

func (m *mockLeadService) Update(ctx context.Context, a *service.Access, id int64, in *transfer.LeadInput) (*models.Lead, error) {
	args := m.Called(ctx, a, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Lead), args.Error(1)
}

func (m *mockLeadService) Remove(ctx context.Context, a *service.Access, id int64) error {
	return m.Called(ctx, a, id).Error(0)
}

type mockPropertyService struct {
	mock.Mock
}

func (m *mockPropertyService) Create(ctx context.Context, a *service.Access, in *transfer.PropertyInput) (*models.Property, error) {
	panic("not used")
}

func (m *mockPropertyService) Get(ctx context.Context, a *service.Access, id int64) (*models.Property, error) {
	panic("not used")
}

func (m *mockPropertyService) List(ctx context.Context, a *service.Access, filter repository.ListFilter) ([]*models.Property, error) {
	panic("not used")
}

func (m *mockPropertyService) Update(ctx context.Context, a *service.Access, id int64, in *transfer.PropertyInput) (*models.Property, error) {
	panic("not used")
}

func (m *mockPropertyService) Remove(ctx context.Context, a *service.Access, id int64) error {
	panic("not used")
}

func (m *mockPropertyService) AddPhotos(ctx context.Context, a *service.Access, id int64, files []*multipart.FileHeader) ([]models.PropertyPhoto, error) {
	args := m.Called(ctx, a, id, files)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PropertyPhoto), args.Error(1)
}

type mockBillingService struct {
	mock.Mock
}

func (m *mockBillingService) Plans() []plans.Plan {
	return m.Called().Get(0).([]plans.Plan)
}

func (m *mockBillingService) Checkout(ctx context.Context, a *service.Access, planID string) (string, error) {
	args := m.Called(ctx, a, planID)
	return args.String(0), args.Error(1)
}

func (m *mockBillingService) Portal(ctx context.Context, a *service.Access) (string, error) {
	args := m.Called(ctx, a)
	return args.String(0), args.Error(1)
}

func (m *mockBillingService) Subscription(ctx context.Context, a *service.Access) (*transfer.SubscriptionResponse, error) {
	args := m.Called(ctx, a)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transfer.SubscriptionResponse), args.Error(1)
}

type mockWebhookService struct {
	mock.Mock
}

func (m *mockWebhookService) ProcessWebhook(ctx context.Context, payload []byte, signature string) (*service.WebhookResult, error) {
	args := m.Called(ctx, payload, signature)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.WebhookResult), args.Error(1)
}

type mockTeamService struct {
	mock.Mock
}

func (m *mockTeamService) ListMembers(ctx context.Context, a *service.Access) ([]*models.TeamMember, error) {
	args := m.Called(ctx, a)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.TeamMember), args.Error(1)
}

func (m *mockTeamService) AddMember(ctx context.Context, a *service.Access, req *transfer.AddMemberRequest) (*models.TeamMember, error) {
	args := m.Called(ctx, a, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TeamMember), args.Error(1)
}

func (m *mockTeamService) RemoveMember(ctx context.Context, a *service.Access, userID int64) error {
	return m.Called(ctx, a, userID).Error(0)
}
