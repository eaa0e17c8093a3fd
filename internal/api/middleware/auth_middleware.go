package middleware

import (
	"errors"
	"log"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	config "github.com/maheshrc27/realty-crm/configs"
	"github.com/maheshrc27/realty-crm/internal/plans"
	"github.com/maheshrc27/realty-crm/internal/service"
)

type AuthMiddleware struct {
	keys     service.ApiKeyService
	profiles service.ProfileService
	cfg      config.Config
}

func NewAuthMiddleware(cfg config.Config, keys service.ApiKeyService, profiles service.ProfileService) *AuthMiddleware {
	return &AuthMiddleware{keys: keys, profiles: profiles, cfg: cfg}
}

// AuthMiddleware authenticates with the session cookie or an api_key query
// parameter and stores the caller's access in the request locals.
func (m *AuthMiddleware) AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Cookies(m.cfg.CookieName)
		apiKey := c.Query("api_key")

		if tokenString == "" && apiKey == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing Keys or cookies",
			})
		}

		var userID int64
		if apiKey != "" {
			id, err := m.keys.GetUserID(c.Context(), apiKey)
			if err != nil {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Invalid API key",
				})
			}
			userID = id
		} else {
			id, err := sessionUserID(m.cfg.SecretKey, tokenString)
			if err != nil {
				ClearSessionCookie(c, m.cfg.CookieName)
				log.Printf("Token validation failed: %v", err)
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Invalid or expired token",
				})
			}
			userID = id
		}

		access, err := m.profiles.GetAccess(c.Context(), userID)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Account profile not found",
				})
			}
			slog.Error("load access", "user_id", userID, "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Something went wrong",
			})
		}

		if apiKey != "" && !access.Can(plans.FeatureAPIAccess) {
			return featureDenied(c, m.cfg.FrontendURL, plans.FeatureAPIAccess)
		}

		setCaller(c, userID, access)
		return c.Next()
	}
}
