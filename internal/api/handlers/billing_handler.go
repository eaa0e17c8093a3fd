package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/realty-crm/internal/service"
	"github.com/maheshrc27/realty-crm/internal/transfer"
)

type BillingHandler struct {
	s service.BillingService
}

func NewBillingHandler(service service.BillingService) *BillingHandler {
	return &BillingHandler{s: service}
}

func (h *BillingHandler) ListPlans(c *fiber.Ctx) error {
	return c.JSON(h.s.Plans())
}

func (h *BillingHandler) Checkout(c *fiber.Ctx) error {
	var req transfer.CheckoutRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	url, err := h.s.Checkout(c.Context(), GetAccess(c), req.PlanID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(transfer.URLResponse{URL: url})
}

func (h *BillingHandler) Portal(c *fiber.Ctx) error {
	url, err := h.s.Portal(c.Context(), GetAccess(c))
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(transfer.URLResponse{URL: url})
}

func (h *BillingHandler) Subscription(c *fiber.Ctx) error {
	sub, err := h.s.Subscription(c.Context(), GetAccess(c))
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(sub)
}
