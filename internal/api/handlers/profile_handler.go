package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/realty-crm/internal/service"
	"github.com/maheshrc27/realty-crm/internal/transfer"
)

type ProfileHandler struct {
	s service.ProfileService
}

func NewProfileHandler(service service.ProfileService) *ProfileHandler {
	return &ProfileHandler{s: service}
}

func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	profile, err := h.s.GetProfile(c.Context(), GetUserID(c))
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(profile)
}

func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	var req transfer.ProfileUpdate
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	profile, err := h.s.UpdateProfile(c.Context(), GetUserID(c), &req)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(profile)
}
