package middleware

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/realty-crm/internal/service"
	"github.com/maheshrc27/realty-crm/pkg/utils"
)

func sessionUserID(secretKey, tokenString string) (int64, error) {
	claims, err := utils.ValidateToken(secretKey, tokenString)
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseInt(claims.UserID, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed subject %q: %w", claims.UserID, err)
	}
	return id, nil
}

// ClearSessionCookie expires the session cookie on the client.
func ClearSessionCookie(c *fiber.Ctx, name string) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		MaxAge:   -1, // Delete cookie
		Expires:  time.Unix(0, 0),
	})
}

func setCaller(c *fiber.Ctx, userID int64, access *service.Access) {
	c.Locals("user_id", strconv.FormatInt(userID, 10))
	c.Locals("access", access)
}
