package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/realty-crm/internal/service"
)

// MaxWebhookPayload caps the Stripe event body.
const MaxWebhookPayload = 64 << 10

type WebhookHandler struct {
	s service.WebhookService
}

func NewWebhookHandler(service service.WebhookService) *WebhookHandler {
	return &WebhookHandler{s: service}
}

func (h *WebhookHandler) StripeWebhook(c *fiber.Ctx) error {
	payload := c.Body()
	if len(payload) > MaxWebhookPayload {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{
			"error": "Payload too large",
		})
	}

	signature := c.Get("Stripe-Signature")
	if signature == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Missing signature",
		})
	}

	result, err := h.s.ProcessWebhook(c.Context(), payload, signature)
	if result == nil {
		if err != nil && !errors.Is(err, service.ErrInvalidSignature) {
			slog.Error("webhook verification failed", "error", err)
		}
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid signature",
		})
	}

	if err != nil {
		slog.Error("webhook processing failed", "event_id", result.EventID, "type", result.EventType, "error", err)
		return c.JSON(fiber.Map{
			"received": true,
			"message":  "Event received but could not be processed",
		})
	}

	return c.JSON(fiber.Map{
		"received": true,
		"handled":  result.Handled,
	})
}
