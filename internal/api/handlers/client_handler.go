package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/realty-crm/internal/service"
	"github.com/maheshrc27/realty-crm/internal/transfer"
)

type ClientHandler struct {
	s service.ClientService
}

func NewClientHandler(service service.ClientService) *ClientHandler {
	return &ClientHandler{s: service}
}

func (h *ClientHandler) CreateClient(c *fiber.Ctx) error {
	var in transfer.ClientInput
	if ok, err := parseBody(c, &in); !ok {
		return err
	}

	client, err := h.s.Create(c.Context(), GetAccess(c), &in)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(client)
}

func (h *ClientHandler) ListClients(c *fiber.Ctx) error {
	clients, err := h.s.List(c.Context(), GetAccess(c), listFilter(c, "status"))
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(clients)
}

func (h *ClientHandler) GetClient(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}

	client, err := h.s.Get(c.Context(), GetAccess(c), id)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(client)
}

func (h *ClientHandler) UpdateClient(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}

	var in transfer.ClientInput
	if ok, err := parseBody(c, &in); !ok {
		return err
	}

	client, err := h.s.Update(c.Context(), GetAccess(c), id, &in)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(client)
}

func (h *ClientHandler) RemoveClient(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}

	if err := h.s.Remove(c.Context(), GetAccess(c), id); err != nil {
		return serviceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
