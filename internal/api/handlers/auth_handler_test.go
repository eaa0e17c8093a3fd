package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	config "github.com/maheshrc27/realty-crm/configs"
	"github.com/maheshrc27/realty-crm/internal/models"
	"github.com/maheshrc27/realty-crm/internal/plans"
	"github.com/maheshrc27/realty-crm/internal/service"
	"github.com/maheshrc27/realty-crm/internal/transfer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var authConfig = config.Config{
	CookieName:      "session",
	FrontendURL:     "https://app.example.com",
	SessionDuration: time.Hour,
}

func authApp(auth *mockAuthService, profiles *mockProfileService) *fiber.App {
	h := NewAuthHandler(authConfig, auth, profiles)
	app := fiber.New()
	app.Post("/auth/signup", h.Signup)
	app.Post("/auth/login", h.Login)
	app.Post("/auth/logout", h.Logout)
	app.Get("/auth/google", h.GoogleLogin)
	app.Get("/auth/google/callback", h.GoogleCallback)
	return app
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func findCookie(resp *http.Response, name string) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestSignup(t *testing.T) {
	auth := new(mockAuthService)
	profiles := new(mockProfileService)
	auth.On("Signup", mock.Anything, &transfer.SignupRequest{
		Email: "ana@example.com", Password: "s3cretpass", FullName: "Ana Reyes",
	}).Return(&models.User{ID: 5, Email: "ana@example.com"}, nil)
	auth.On("SessionToken", int64(5)).Return("signed.jwt.token", nil)
	profiles.On("GetAccess", mock.Anything, int64(5)).Return(&service.Access{UserID: 5, Tier: plans.TierSingleUser, Status: models.SubscriptionStatusInactive}, nil)

	body := `{"email":"ana@example.com","password":"s3cretpass","full_name":"Ana Reyes"}`
	resp, err := authApp(auth, profiles).Test(jsonRequest(http.MethodPost, "/auth/signup", body))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	cookie := findCookie(resp, "session")
	require.NotNil(t, cookie)
	assert.Equal(t, "signed.jwt.token", cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.JSONEq(t, `{"user_id":5,"redirect":"/dashboard/single-user"}`, readBody(t, resp))
}

func TestSignup_Errors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		err    error
		status int
	}{
		{"invalid body", `{"email":"nope","password":"short"}`, nil, fiber.StatusBadRequest},
		{"duplicate email", `{"email":"ana@example.com","password":"s3cretpass","full_name":"Ana"}`, fmt.Errorf("email: %w", service.ErrConflict), fiber.StatusConflict},
		{"profile never written", `{"email":"ana@example.com","password":"s3cretpass","full_name":"Ana"}`, fmt.Errorf("upsert profile after 3 attempts: boom"), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := new(mockAuthService)
			if tt.err != nil {
				auth.On("Signup", mock.Anything, mock.Anything).Return(nil, tt.err)
			}

			resp, err := authApp(auth, new(mockProfileService)).Test(jsonRequest(http.MethodPost, "/auth/signup", tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Nil(t, findCookie(resp, "session"))
			auth.AssertExpectations(t)
		})
	}
}

func TestLogin(t *testing.T) {
	auth := new(mockAuthService)
	profiles := new(mockProfileService)
	auth.On("Login", mock.Anything, &transfer.LoginRequest{Email: "ana@example.com", Password: "wrong"}).
		Return(nil, fmt.Errorf("bad credentials: %w", service.ErrUnauthorized))
	auth.On("Login", mock.Anything, &transfer.LoginRequest{Email: "ana@example.com", Password: "right"}).
		Return(&models.User{ID: 5}, nil)
	auth.On("SessionToken", int64(5)).Return("tok", nil)
	profiles.On("GetAccess", mock.Anything, int64(5)).Return(&service.Access{UserID: 5, Tier: plans.TierCorporate, Status: models.SubscriptionStatusActive}, nil)
	app := authApp(auth, profiles)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/auth/login", `{"email":"ana@example.com","password":"wrong"}`))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, err = app.Test(jsonRequest(http.MethodPost, "/auth/login", `{"email":"ana@example.com","password":"right"}`))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"user_id":5,"redirect":"/dashboard/corporate"}`, readBody(t, resp))
}

func TestLogout(t *testing.T) {
	resp, err := authApp(new(mockAuthService), new(mockProfileService)).Test(httptest.NewRequest(http.MethodPost, "/auth/logout", nil))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	cookie := findCookie(resp, "session")
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
}

func TestGoogleLogin_SetsState(t *testing.T) {
	auth := new(mockAuthService)
	auth.On("GoogleLoginURL", mock.AnythingOfType("string")).Return("https://accounts.google.com/o/oauth2/auth?x=1")

	resp, err := authApp(auth, new(mockProfileService)).Test(httptest.NewRequest(http.MethodGet, "/auth/google", nil))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusTemporaryRedirect, resp.StatusCode)
	assert.Equal(t, "https://accounts.google.com/o/oauth2/auth?x=1", resp.Header.Get("Location"))
	state := findCookie(resp, oauthStateCookie)
	require.NotNil(t, state)
	auth.AssertCalled(t, "GoogleLoginURL", state.Value)
}

func TestGoogleCallback(t *testing.T) {
	auth := new(mockAuthService)
	profiles := new(mockProfileService)
	auth.On("GoogleCallback", mock.Anything, "code-1").Return(&models.User{ID: 9}, nil)
	auth.On("SessionToken", int64(9)).Return("tok", nil)
	profiles.On("GetAccess", mock.Anything, int64(9)).Return(&service.Access{UserID: 9, Tier: plans.TierTeam, Status: models.SubscriptionStatusActive}, nil)
	app := authApp(auth, profiles)

	req := httptest.NewRequest(http.MethodGet, "/auth/google/callback?code=code-1&state=abc", nil)
	req.AddCookie(&http.Cookie{Name: oauthStateCookie, Value: "abc"})
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusTemporaryRedirect, resp.StatusCode)
	assert.Equal(t, "https://app.example.com/dashboard/team", resp.Header.Get("Location"))
	assert.NotNil(t, findCookie(resp, "session"))
}

func TestGoogleCallback_StateMismatch(t *testing.T) {
	auth := new(mockAuthService)
	app := authApp(auth, new(mockProfileService))

	req := httptest.NewRequest(http.MethodGet, "/auth/google/callback?code=code-1&state=forged", nil)
	req.AddCookie(&http.Cookie{Name: oauthStateCookie, Value: "abc"})
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	auth.AssertNotCalled(t, "GoogleCallback", mock.Anything, mock.Anything)
}
