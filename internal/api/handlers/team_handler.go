package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/realty-crm/internal/service"
	"github.com/maheshrc27/realty-crm/internal/transfer"
)

type TeamHandler struct {
	s service.TeamService
}

func NewTeamHandler(service service.TeamService) *TeamHandler {
	return &TeamHandler{s: service}
}

func (h *TeamHandler) ListMembers(c *fiber.Ctx) error {
	members, err := h.s.ListMembers(c.Context(), GetAccess(c))
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(members)
}

func (h *TeamHandler) AddMember(c *fiber.Ctx) error {
	var req transfer.AddMemberRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	member, err := h.s.AddMember(c.Context(), GetAccess(c), &req)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(member)
}

func (h *TeamHandler) RemoveMember(c *fiber.Ctx) error {
	userID, ok := paramID(c, "user_id")
	if !ok {
		return invalidID(c)
	}

	if err := h.s.RemoveMember(c.Context(), GetAccess(c), userID); err != nil {
		return serviceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
