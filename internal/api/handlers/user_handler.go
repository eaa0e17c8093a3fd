package handlers

import (
	"github.com/gofiber/fiber/v2"
	config "github.com/maheshrc27/realty-crm/configs"
	"github.com/maheshrc27/realty-crm/internal/api/middleware"
	"github.com/maheshrc27/realty-crm/internal/service"
)

type UserHandler struct {
	s   service.UserService
	cfg config.Config
}

func NewUserHandler(cfg config.Config, service service.UserService) *UserHandler {
	return &UserHandler{s: service, cfg: cfg}
}

func (h *UserHandler) GetUserInfo(c *fiber.Ctx) error {
	userId := GetUserID(c)

	userInfo, err := h.s.GetUserInfo(c.Context(), userId)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(userInfo)
}

func (h *UserHandler) RemoveUser(c *fiber.Ctx) error {
	if err := h.s.RemoveUser(c.Context(), GetAccess(c)); err != nil {
		return serviceError(c, err)
	}

	middleware.ClearSessionCookie(c, h.cfg.CookieName)
	return c.SendStatus(fiber.StatusNoContent)
}
