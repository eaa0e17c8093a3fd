package middleware

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/realty-crm/internal/plans"
	"github.com/maheshrc27/realty-crm/internal/service"
)

// RequireFeature rejects callers whose effective tier lacks the feature. It
// must run after AuthMiddleware.
func RequireFeature(frontendURL, feature string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		access, ok := c.Locals("access").(*service.Access)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Not authenticated",
			})
		}
		if !access.Can(feature) {
			return featureDenied(c, frontendURL, feature)
		}
		return c.Next()
	}
}

func featureDenied(c *fiber.Ctx, frontendURL, feature string) error {
	return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
		"error":       "Your plan does not include this feature",
		"feature":     feature,
		"upgrade_url": UpgradeURL(frontendURL, feature),
	})
}

// UpgradeURL points at the pricing page with the tier that unlocks feature.
func UpgradeURL(frontendURL, feature string) string {
	q := url.Values{}
	q.Set("feature", feature)
	if tier := plans.RequiredTier(feature); tier != "" {
		q.Set("plan", tier)
	}
	return strings.TrimRight(frontendURL, "/") + "/pricing?" + q.Encode()
}
