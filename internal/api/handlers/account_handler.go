package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jemert1992/socialcontrol/internal/service"
	"github.com/jemert1992/socialcontrol/internal/transfer"
)

type AccountHandler struct {
	s service.AccountService
}

func NewAccountHandler(s service.AccountService) *AccountHandler {
	return &AccountHandler{s: s}
}

func (h *AccountHandler) Create(c *fiber.Ctx) error {
	var creation transfer.AccountCreation
	if err := c.BodyParser(&creation); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	account, err := h.s.Create(c.Context(), &creation)
	if err != nil {
		return jsonError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Account added successfully",
		"account": transfer.ToAccountResponse(account),
	})
}

func (h *AccountHandler) List(c *fiber.Ctx) error {
	accounts, err := h.s.ListActive(c.Context())
	if err != nil {
		return jsonError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(transfer.ToAccountResponses(accounts))
}
