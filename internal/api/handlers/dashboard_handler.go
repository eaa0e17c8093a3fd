package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/realty-crm/internal/service"
)

type DashboardHandler struct {
	s        service.DashboardService
	activity service.ActivityService
}

func NewDashboardHandler(s service.DashboardService, activity service.ActivityService) *DashboardHandler {
	return &DashboardHandler{s: s, activity: activity}
}

// Summary serves the tier dashboards. The dashboard guard has already routed
// the caller to the page matching their tier.
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.s.Summary(c.Context(), GetAccess(c))
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(summary)
}

func (h *DashboardHandler) Analytics(c *fiber.Ctx) error {
	analytics, err := h.s.Analytics(c.Context(), GetAccess(c))
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(analytics)
}

func (h *DashboardHandler) ActivityLogs(c *fiber.Ctx) error {
	filter := listFilter(c, "status")

	logs, err := h.activity.List(c.Context(), GetAccess(c), filter.Limit, filter.Offset)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(logs)
}
