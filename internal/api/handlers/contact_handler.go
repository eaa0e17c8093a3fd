package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/realty-crm/internal/service"
	"github.com/maheshrc27/realty-crm/internal/transfer"
)

type ContactHandler struct {
	s service.ContactService
}

func NewContactHandler(service service.ContactService) *ContactHandler {
	return &ContactHandler{s: service}
}

func (h *ContactHandler) CreateContact(c *fiber.Ctx) error {
	var in transfer.ContactInput
	if ok, err := parseBody(c, &in); !ok {
		return err
	}

	contact, err := h.s.Create(c.Context(), GetAccess(c), &in)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(contact)
}

func (h *ContactHandler) ListContacts(c *fiber.Ctx) error {
	contacts, err := h.s.List(c.Context(), GetAccess(c), listFilter(c, "kind"))
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(contacts)
}

func (h *ContactHandler) GetContact(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}

	contact, err := h.s.Get(c.Context(), GetAccess(c), id)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(contact)
}

func (h *ContactHandler) UpdateContact(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}

	var in transfer.ContactInput
	if ok, err := parseBody(c, &in); !ok {
		return err
	}

	contact, err := h.s.Update(c.Context(), GetAccess(c), id, &in)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(contact)
}

func (h *ContactHandler) RemoveContact(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}

	if err := h.s.Remove(c.Context(), GetAccess(c), id); err != nil {
		return serviceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
