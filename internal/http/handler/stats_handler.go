package handler

import (
	"github.com/gofiber/fiber/v2"
)

// BotStats handles GET /api/bot-stats
func (h *APIHandler) BotStats(c *fiber.Ctx) error {
	stats, err := h.repos.Stats.Collect(reqCtx(c))
	if err != nil {
		return h.internalError(c, "failed to collect stats", err)
	}
	return c.JSON(stats)
}
