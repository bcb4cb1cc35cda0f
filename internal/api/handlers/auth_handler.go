package handlers

import (
	"github.com/gofiber/fiber/v2"
	config "github.com/jemert1992/socialcontrol/configs"
	"github.com/jemert1992/socialcontrol/internal/service"
)

type AuthHandler struct {
	cfg config.Config
	s   service.AuthService
}

func NewAuthHandler(cfg config.Config, s service.AuthService) *AuthHandler {
	return &AuthHandler{cfg: cfg, s: s}
}

func (h *AuthHandler) IssueToken(c *fiber.Ctx) error {
	var body struct {
		APIKey string `json:"api_key"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	token, err := h.s.IssueToken(c.Context(), body.APIKey)
	if err != nil {
		return jsonError(c, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.cfg.CookieName,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
	})

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"token": token,
	})
}
