package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/realty-crm/internal/service"
	"github.com/maheshrc27/realty-crm/internal/transfer"
)

type LeadHandler struct {
	s service.LeadService
}

func NewLeadHandler(service service.LeadService) *LeadHandler {
	return &LeadHandler{s: service}
}

func (h *LeadHandler) CreateLead(c *fiber.Ctx) error {
	var in transfer.LeadInput
	if ok, err := parseBody(c, &in); !ok {
		return err
	}

	lead, err := h.s.Create(c.Context(), GetAccess(c), &in)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(lead)
}

func (h *LeadHandler) ListLeads(c *fiber.Ctx) error {
	leads, err := h.s.List(c.Context(), GetAccess(c), listFilter(c, "status"))
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(leads)
}

func (h *LeadHandler) GetLead(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}

	lead, err := h.s.Get(c.Context(), GetAccess(c), id)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(lead)
}

func (h *LeadHandler) UpdateLead(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}

	var in transfer.LeadInput
	if ok, err := parseBody(c, &in); !ok {
		return err
	}

	lead, err := h.s.Update(c.Context(), GetAccess(c), id, &in)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(lead)
}

func (h *LeadHandler) RemoveLead(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}

	if err := h.s.Remove(c.Context(), GetAccess(c), id); err != nil {
		return serviceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
