package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/realty-crm/internal/demo"
	"github.com/maheshrc27/realty-crm/internal/plans"
)

type DemoHandler struct {
	catalog *plans.Catalog
	now     func() time.Time
}

func NewDemoHandler(catalog *plans.Catalog) *DemoHandler {
	return &DemoHandler{catalog: catalog, now: time.Now}
}

func (h *DemoHandler) Dashboard(c *fiber.Ctx) error {
	tier := c.Query("tier", plans.TierSingleUser)

	dash, err := demo.Build(h.catalog, tier, h.now().UTC().Truncate(24*time.Hour))
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(dash)
}
