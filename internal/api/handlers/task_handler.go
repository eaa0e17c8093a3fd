package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/realty-crm/internal/service"
	"github.com/maheshrc27/realty-crm/internal/transfer"
)

type TaskHandler struct {
	s service.TaskService
}

func NewTaskHandler(service service.TaskService) *TaskHandler {
	return &TaskHandler{s: service}
}

func (h *TaskHandler) CreateTask(c *fiber.Ctx) error {
	var in transfer.TaskInput
	if ok, err := parseBody(c, &in); !ok {
		return err
	}

	task, err := h.s.Create(c.Context(), GetAccess(c), &in)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(task)
}

func (h *TaskHandler) ListTasks(c *fiber.Ctx) error {
	tasks, err := h.s.List(c.Context(), GetAccess(c), listFilter(c, "status"))
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(tasks)
}

func (h *TaskHandler) GetTask(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}

	task, err := h.s.Get(c.Context(), GetAccess(c), id)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(task)
}

func (h *TaskHandler) UpdateTask(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}

	var in transfer.TaskInput
	if ok, err := parseBody(c, &in); !ok {
		return err
	}

	task, err := h.s.Update(c.Context(), GetAccess(c), id, &in)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(task)
}

func (h *TaskHandler) RemoveTask(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}

	if err := h.s.Remove(c.Context(), GetAccess(c), id); err != nil {
		return serviceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
