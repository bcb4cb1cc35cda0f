package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jemert1992/socialcontrol/internal/service"
	"github.com/jemert1992/socialcontrol/internal/transfer"
)

type QueueHandler struct {
	s service.QueueService
}

func NewQueueHandler(s service.QueueService) *QueueHandler {
	return &QueueHandler{s: s}
}

func (h *QueueHandler) Listing(c *fiber.Ctx) error {
	items, err := h.s.Listing(c.Context())
	if err != nil {
		return jsonError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"items": transfer.ToContentResponses(items),
		"count": len(items),
	})
}

func (h *QueueHandler) Process(c *fiber.Ctx) error {
	outcomes, err := h.s.ProcessDue(c.Context(), time.Now().UTC())
	if err != nil {
		return jsonError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"processed": len(outcomes),
		"results":   outcomes,
	})
}

func (h *QueueHandler) SimulatePost(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid content id",
		})
	}

	var body struct {
		Platforms []string `json:"platforms"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	results, item, err := h.s.SimulatePost(c.Context(), int64(id), body.Platforms)
	if err != nil {
		return jsonError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Content posted successfully",
		"results": results,
		"content": transfer.ToContentResponse(item),
	})
}
