package handlers

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/realty-crm/internal/payment"
	"github.com/maheshrc27/realty-crm/internal/repository"
	"github.com/maheshrc27/realty-crm/internal/service"
	"github.com/maheshrc27/realty-crm/internal/transfer"
)

func GetUserID(c *fiber.Ctx) int64 {
	userID, _ := strconv.Atoi(c.Locals("user_id").(string))
	return int64(userID)
}

// GetAccess returns the caller resolved by the auth middleware.
func GetAccess(c *fiber.Ctx) *service.Access {
	access, _ := c.Locals("access").(*service.Access)
	return access
}

// serviceError maps service errors onto HTTP statuses. Unexpected errors are
// logged and reported without details.
func serviceError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, service.ErrValidation):
		status = fiber.StatusBadRequest
	case errors.Is(err, service.ErrForbidden), errors.Is(err, service.ErrLimitReached):
		status = fiber.StatusForbidden
	case errors.Is(err, service.ErrConflict):
		status = fiber.StatusConflict
	case errors.Is(err, service.ErrUnauthorized):
		status = fiber.StatusUnauthorized
	case errors.Is(err, service.ErrStorageDisabled), errors.Is(err, payment.ErrNotConfigured):
		status = fiber.StatusServiceUnavailable
	}

	if status == fiber.StatusInternalServerError {
		slog.Error("request failed", "method", c.Method(), "path", c.Path(), "error", err)
		return c.Status(status).JSON(fiber.Map{
			"error": "Something went wrong",
		})
	}

	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

// parseBody decodes and validates a JSON body. It writes the 400 response
// itself and reports whether the handler should continue.
func parseBody(c *fiber.Ctx, out any) (bool, error) {
	if err := c.BodyParser(out); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}
	if err := transfer.Validate(out); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Validation failed",
			"details": transfer.ValidationDetails(err),
		})
	}
	return true, nil
}

func paramID(c *fiber.Ctx, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func invalidID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "Invalid id",
	})
}

// listFilter reads pagination and the status filter from the query string.
func listFilter(c *fiber.Ctx, statusParam string) repository.ListFilter {
	return repository.ListFilter{
		Status: c.Query(statusParam),
		Limit:  c.QueryInt("limit", repository.DefaultListLimit),
		Offset: c.QueryInt("offset", 0),
	}.Normalize()
}
