package handler

import (
	"github.com/gofiber/fiber/v2"
)

// BotStatus handles GET /api/bot-status
func (h *APIHandler) BotStatus(c *fiber.Ctx) error {
	report, err := h.status.Status(reqCtx(c))
	if err != nil {
		return h.internalError(c, "failed to assemble status", err)
	}
	return c.JSON(report)
}
