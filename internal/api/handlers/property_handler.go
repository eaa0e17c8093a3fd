package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/realty-crm/internal/service"
	"github.com/maheshrc27/realty-crm/internal/transfer"
)

type PropertyHandler struct {
	s service.PropertyService
}

func NewPropertyHandler(service service.PropertyService) *PropertyHandler {
	return &PropertyHandler{s: service}
}

func (h *PropertyHandler) CreateProperty(c *fiber.Ctx) error {
	var in transfer.PropertyInput
	if ok, err := parseBody(c, &in); !ok {
		return err
	}

	property, err := h.s.Create(c.Context(), GetAccess(c), &in)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(property)
}

func (h *PropertyHandler) ListProperties(c *fiber.Ctx) error {
	properties, err := h.s.List(c.Context(), GetAccess(c), listFilter(c, "status"))
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(properties)
}

func (h *PropertyHandler) GetProperty(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}

	property, err := h.s.Get(c.Context(), GetAccess(c), id)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(property)
}

func (h *PropertyHandler) UpdateProperty(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}

	var in transfer.PropertyInput
	if ok, err := parseBody(c, &in); !ok {
		return err
	}

	property, err := h.s.Update(c.Context(), GetAccess(c), id, &in)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(property)
}

func (h *PropertyHandler) RemoveProperty(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}

	if err := h.s.Remove(c.Context(), GetAccess(c), id); err != nil {
		return serviceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *PropertyHandler) UploadPhotos(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}

	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse form",
		})
	}

	files := form.File["files"]
	if len(files) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No files selected",
		})
	}

	photos, err := h.s.AddPhotos(c.Context(), GetAccess(c), id, files)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(photos)
}
