package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	config "github.com/maheshrc27/realty-crm/configs"
	"github.com/maheshrc27/realty-crm/internal/models"
	"github.com/maheshrc27/realty-crm/internal/plans"
	"github.com/maheshrc27/realty-crm/internal/service"
	"github.com/maheshrc27/realty-crm/internal/transfer"
	"github.com/maheshrc27/realty-crm/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testConfig = config.Config{
	SecretKey:   "test-secret",
	CookieName:  "session",
	FrontendURL: "https://app.example.com/",
}

type mockProfiles struct {
	mock.Mock
}

func (m *mockProfiles) GetAccess(ctx context.Context, userID int64) (*service.Access, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Access), args.Error(1)
}

func (m *mockProfiles) GetProfile(ctx context.Context, userID int64) (*models.Profile, error) {
	panic("not used")
}

func (m *mockProfiles) UpdateProfile(ctx context.Context, userID int64, pu *transfer.ProfileUpdate) (*models.Profile, error) {
	panic("not used")
}

type mockKeys struct {
	mock.Mock
}

func (m *mockKeys) Create(ctx context.Context, userID int64) (*models.ApiKey, error) {
	panic("not used")
}

func (m *mockKeys) List(ctx context.Context, userID int64) ([]*models.ApiKey, error) {
	panic("not used")
}

func (m *mockKeys) GetUserID(ctx context.Context, apiKey string) (int64, error) {
	args := m.Called(ctx, apiKey)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockKeys) RemoveAPIKey(ctx context.Context, userID, keyID int64) error {
	panic("not used")
}

func access(tier, status string) *service.Access {
	return &service.Access{UserID: 7, WorkspaceID: 3, Role: models.RoleOwner, Tier: tier, Status: status}
}

func sessionCookie(t *testing.T) *http.Cookie {
	token, err := utils.GenerateToken(testConfig.SecretKey, "7", time.Hour)
	require.NoError(t, err)
	return &http.Cookie{Name: testConfig.CookieName, Value: token}
}

func decode(t *testing.T, resp *http.Response) map[string]any {
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func protectedApp(keys *mockKeys, profiles *mockProfiles, extra ...fiber.Handler) *fiber.App {
	app := fiber.New()
	handlers := []fiber.Handler{NewAuthMiddleware(testConfig, keys, profiles).AuthMiddleware()}
	handlers = append(handlers, extra...)
	handlers = append(handlers, func(c *fiber.Ctx) error {
		a := c.Locals("access").(*service.Access)
		return c.JSON(fiber.Map{"user_id": c.Locals("user_id"), "tier": a.EffectiveTier()})
	})
	app.Get("/api/leads", handlers...)
	return app
}

func TestAuthMiddleware_Cookie(t *testing.T) {
	profiles := new(mockProfiles)
	profiles.On("GetAccess", mock.Anything, int64(7)).Return(access(plans.TierTeam, "active"), nil)
	app := protectedApp(new(mockKeys), profiles)

	req := httptest.NewRequest(http.MethodGet, "/api/leads", nil)
	req.AddCookie(sessionCookie(t))
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, "7", body["user_id"])
	assert.Equal(t, plans.TierTeam, body["tier"])
}

func TestAuthMiddleware_MissingCredentials(t *testing.T) {
	app := protectedApp(new(mockKeys), new(mockProfiles))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/leads", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_InvalidCookieIsCleared(t *testing.T) {
	app := protectedApp(new(mockKeys), new(mockProfiles))

	req := httptest.NewRequest(http.MethodGet, "/api/leads", nil)
	req.AddCookie(&http.Cookie{Name: testConfig.CookieName, Value: "garbage"})
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	var cleared bool
	for _, ck := range resp.Cookies() {
		if ck.Name == testConfig.CookieName && ck.Value == "" {
			cleared = true
		}
	}
	assert.True(t, cleared, "session cookie should be expired")
}

func TestAuthMiddleware_APIKeyRequiresFeature(t *testing.T) {
	keys := new(mockKeys)
	keys.On("GetUserID", mock.Anything, "key_team").Return(int64(7), nil)
	keys.On("GetUserID", mock.Anything, "key_corp").Return(int64(8), nil)
	keys.On("GetUserID", mock.Anything, "key_bad").Return(int64(0), service.ErrNotFound)

	profiles := new(mockProfiles)
	profiles.On("GetAccess", mock.Anything, int64(7)).Return(access(plans.TierTeam, "active"), nil)
	profiles.On("GetAccess", mock.Anything, int64(8)).Return(access(plans.TierCorporate, "active"), nil)
	app := protectedApp(keys, profiles)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/leads?api_key=key_team", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, plans.FeatureAPIAccess, body["feature"])
	assert.Contains(t, body["upgrade_url"], "plan=corporate")

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/leads?api_key=key_corp", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/leads?api_key=key_bad", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_MissingProfile(t *testing.T) {
	profiles := new(mockProfiles)
	profiles.On("GetAccess", mock.Anything, int64(7)).Return(nil, service.ErrNotFound)
	app := protectedApp(new(mockKeys), profiles)

	req := httptest.NewRequest(http.MethodGet, "/api/leads", nil)
	req.AddCookie(sessionCookie(t))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireFeature(t *testing.T) {
	tests := []struct {
		name   string
		access *service.Access
		want   int
	}{
		{"team has analytics", access(plans.TierTeam, "active"), fiber.StatusOK},
		{"single user lacks analytics", access(plans.TierSingleUser, "active"), fiber.StatusForbidden},
		{"canceled corporate falls back", access(plans.TierCorporate, "canceled"), fiber.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profiles := new(mockProfiles)
			profiles.On("GetAccess", mock.Anything, int64(7)).Return(tt.access, nil)
			app := protectedApp(new(mockKeys), profiles, RequireFeature(testConfig.FrontendURL, plans.FeatureAnalytics))

			req := httptest.NewRequest(http.MethodGet, "/api/leads", nil)
			req.AddCookie(sessionCookie(t))
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)

			if tt.want == fiber.StatusForbidden {
				body := decode(t, resp)
				assert.Equal(t, plans.FeatureAnalytics, body["feature"])
				assert.Equal(t, "https://app.example.com/pricing?feature=analytics&plan=team", body["upgrade_url"])
			}
		})
	}
}

func TestRequireFeature_Unauthenticated(t *testing.T) {
	app := fiber.New()
	app.Get("/x", RequireFeature(testConfig.FrontendURL, plans.FeatureLeads), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/x", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func guardedApp(profiles *mockProfiles) *fiber.App {
	app := fiber.New()
	dashboards := app.Group("/dashboard", NewDashboardGuard(testConfig, profiles).Guard())
	for _, tier := range plans.Tiers() {
		dashboards.Get(plans.DashboardPath(tier)[len("/dashboard"):], func(c *fiber.Ctx) error {
			return c.SendString(c.Path())
		})
	}
	dashboards.Get("/", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	return app
}

func TestDashboardGuard_RedirectsToLogin(t *testing.T) {
	app := guardedApp(new(mockProfiles))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/dashboard/team?tab=leads", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "https://app.example.com/login?next=%2Fdashboard%2Fteam%3Ftab%3Dleads", resp.Header.Get("Location"))

	req := httptest.NewRequest(http.MethodGet, "/dashboard/team", nil)
	req.AddCookie(&http.Cookie{Name: testConfig.CookieName, Value: "expired"})
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Location"), "/login?next=")
}

func TestDashboardGuard_TierRouting(t *testing.T) {
	tests := []struct {
		name     string
		access   *service.Access
		path     string
		status   int
		location string
	}{
		{"root goes to tier dashboard", access(plans.TierTeam, "active"), "/dashboard", fiber.StatusFound, "/dashboard/team"},
		{"wrong tier redirected", access(plans.TierSingleUser, "active"), "/dashboard/corporate", fiber.StatusFound, "/dashboard/single-user"},
		{"inactive corporate downgraded", access(plans.TierCorporate, "past_due"), "/dashboard/corporate", fiber.StatusFound, "/dashboard/single-user"},
		{"matching tier passes", access(plans.TierCorporate, "active"), "/dashboard/corporate", fiber.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profiles := new(mockProfiles)
			profiles.On("GetAccess", mock.Anything, int64(7)).Return(tt.access, nil)
			app := guardedApp(profiles)

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			req.AddCookie(sessionCookie(t))
			resp, err := app.Test(req)
			require.NoError(t, err)

			assert.Equal(t, tt.status, resp.StatusCode)
			if tt.location != "" {
				assert.Equal(t, tt.location, resp.Header.Get("Location"))
			}
		})
	}
}

func TestUpgradeURL(t *testing.T) {
	assert.Equal(t, "https://app.example.com/pricing?feature=clients&plan=corporate", UpgradeURL("https://app.example.com", plans.FeatureClients))
	assert.Equal(t, "https://app.example.com/pricing?feature=nope", UpgradeURL("https://app.example.com", "nope"))
}
