package handlers

import (
	"io"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/jemert1992/socialcontrol/internal/service"
	"github.com/jemert1992/socialcontrol/internal/transfer"
)

type ContentHandler struct {
	s service.ContentService
}

func NewContentHandler(s service.ContentService) *ContentHandler {
	return &ContentHandler{s: s}
}

func (h *ContentHandler) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No file provided",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		slog.Info(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to read file",
		})
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		slog.Info(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to read file",
		})
	}

	upload := &transfer.ContentUpload{
		Caption:       c.FormValue("caption"),
		Hashtags:      c.FormValue("hashtags"),
		Platforms:     c.FormValue("platforms"),
		ScheduledTime: c.FormValue("scheduled_time"),
		Status:        c.FormValue("status"),
	}

	item, err := h.s.Upload(c.Context(), upload, fileHeader.Filename, data)
	if err != nil {
		return jsonError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "File uploaded successfully",
		"content": transfer.ToContentResponse(item),
	})
}

func (h *ContentHandler) List(c *fiber.Ctx) error {
	status := c.Query("status")
	page := c.QueryInt("page", 1)
	perPage := c.QueryInt("per_page", 20)

	items, pagination, err := h.s.List(c.Context(), status, page, perPage)
	if err != nil {
		return jsonError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"items":      transfer.ToContentResponses(items),
		"pagination": pagination,
	})
}

func (h *ContentHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid content id",
		})
	}

	item, err := h.s.Get(c.Context(), int64(id))
	if err != nil {
		return jsonError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(transfer.ToContentResponse(item))
}

func (h *ContentHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid content id",
		})
	}

	var patch transfer.ContentPatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	item, err := h.s.Update(c.Context(), int64(id), &patch)
	if err != nil {
		return jsonError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(transfer.ToContentResponse(item))
}

func (h *ContentHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid content id",
		})
	}

	if err := h.s.Delete(c.Context(), int64(id)); err != nil {
		return jsonError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Content deleted successfully",
	})
}
