package middleware

import (
	"log/slog"
	"net/url"
	"slices"
	"strings"

	"github.com/gofiber/fiber/v2"
	config "github.com/maheshrc27/realty-crm/configs"
	"github.com/maheshrc27/realty-crm/internal/plans"
	"github.com/maheshrc27/realty-crm/internal/service"
)

type DashboardGuard struct {
	profiles service.ProfileService
	cfg      config.Config
}

func NewDashboardGuard(cfg config.Config, profiles service.ProfileService) *DashboardGuard {
	return &DashboardGuard{profiles: profiles, cfg: cfg}
}

// Guard protects the dashboard pages. Visitors without a valid session are
// sent to the login page; signed-in callers landing on the wrong tier's
// dashboard are sent to their own.
func (g *DashboardGuard) Guard() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Cookies(g.cfg.CookieName)
		if tokenString == "" {
			return c.Redirect(g.loginURL(c), fiber.StatusFound)
		}

		userID, err := sessionUserID(g.cfg.SecretKey, tokenString)
		if err != nil {
			ClearSessionCookie(c, g.cfg.CookieName)
			return c.Redirect(g.loginURL(c), fiber.StatusFound)
		}

		access, err := g.profiles.GetAccess(c.Context(), userID)
		if err != nil {
			slog.Warn("dashboard access unavailable", "user_id", userID, "error", err)
			return c.Redirect(g.loginURL(c), fiber.StatusFound)
		}

		want := plans.DashboardPath(access.EffectiveTier())
		path := strings.TrimRight(c.Path(), "/")
		if path != want && (path == "/dashboard" || isTierDashboard(path)) {
			return c.Redirect(want, fiber.StatusFound)
		}

		setCaller(c, userID, access)
		return c.Next()
	}
}

func (g *DashboardGuard) loginURL(c *fiber.Ctx) string {
	q := url.Values{}
	q.Set("next", c.OriginalURL())
	return strings.TrimRight(g.cfg.FrontendURL, "/") + "/login?" + q.Encode()
}

func isTierDashboard(path string) bool {
	return slices.ContainsFunc(plans.Tiers(), func(tier string) bool {
		return plans.DashboardPath(tier) == path
	})
}
