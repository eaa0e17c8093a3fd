package handlers

import (
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	config "github.com/maheshrc27/realty-crm/configs"
	"github.com/maheshrc27/realty-crm/internal/api/middleware"
	"github.com/maheshrc27/realty-crm/internal/models"
	"github.com/maheshrc27/realty-crm/internal/plans"
	"github.com/maheshrc27/realty-crm/internal/service"
	"github.com/maheshrc27/realty-crm/internal/transfer"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const oauthStateCookie = "oauth_state"

type AuthHandler struct {
	s        service.AuthService
	profiles service.ProfileService
	cfg      config.Config
}

func NewAuthHandler(cfg config.Config, service service.AuthService, profiles service.ProfileService) *AuthHandler {
	return &AuthHandler{s: service, profiles: profiles, cfg: cfg}
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req transfer.SignupRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	user, err := h.s.Signup(c.Context(), &req)
	if err != nil {
		return serviceError(c, err)
	}

	return h.startSession(c, fiber.StatusCreated, user)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req transfer.LoginRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	user, err := h.s.Login(c.Context(), &req)
	if err != nil {
		return serviceError(c, err)
	}

	return h.startSession(c, fiber.StatusOK, user)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	middleware.ClearSessionCookie(c, h.cfg.CookieName)
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *AuthHandler) GoogleLogin(c *fiber.Ctx) error {
	state, err := gonanoid.New()
	if err != nil {
		return serviceError(c, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/auth/google",
		Expires:  time.Now().Add(10 * time.Minute),
	})

	return c.Redirect(h.s.GoogleLoginURL(state), fiber.StatusTemporaryRedirect)
}

func (h *AuthHandler) GoogleCallback(c *fiber.Ctx) error {
	state := c.Cookies(oauthStateCookie)
	if state == "" || state != c.Query("state") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid OAuth state",
		})
	}
	c.ClearCookie(oauthStateCookie)

	user, err := h.s.GoogleCallback(c.Context(), c.Query("code"))
	if err != nil {
		return serviceError(c, err)
	}

	if err := h.setSessionCookie(c, user.ID); err != nil {
		return serviceError(c, err)
	}

	frontend := strings.TrimRight(h.cfg.FrontendURL, "/")
	return c.Redirect(frontend+h.dashboardPath(c, user.ID), fiber.StatusTemporaryRedirect)
}

func (h *AuthHandler) startSession(c *fiber.Ctx, status int, user *models.User) error {
	if err := h.setSessionCookie(c, user.ID); err != nil {
		return serviceError(c, err)
	}

	return c.Status(status).JSON(transfer.AuthResponse{
		UserID:   user.ID,
		Redirect: h.dashboardPath(c, user.ID),
	})
}

func (h *AuthHandler) setSessionCookie(c *fiber.Ctx, userID int64) error {
	token, err := h.s.SessionToken(userID)
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.cfg.CookieName,
		Value:    token,
		HTTPOnly: true,
		Secure:   strings.HasPrefix(h.cfg.FrontendURL, "https://"),
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
		Expires:  time.Now().Add(h.cfg.SessionDuration),
	})
	return nil
}

func (h *AuthHandler) dashboardPath(c *fiber.Ctx, userID int64) string {
	access, err := h.profiles.GetAccess(c.Context(), userID)
	if err != nil {
		slog.Warn("dashboard redirect falls back to base tier", "user_id", userID, "error", err)
		return plans.DashboardPath(plans.TierSingleUser)
	}
	return plans.DashboardPath(access.EffectiveTier())
}
