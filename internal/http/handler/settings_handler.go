package handler

import (
	"github.com/filegram/panel/internal/app/model"
	"github.com/gofiber/fiber/v2"
)

// GetSettings handles GET /api/bot-settings. Stored sets may be partial;
// the response always carries the full defaulted document.
func (h *APIHandler) GetSettings(c *fiber.Ctx) error {
	stored, err := h.repos.Settings.Get(reqCtx(c))
	if err != nil {
		return h.internalError(c, "failed to load settings", err)
	}
	return c.JSON(stored.Merged())
}

// UpdateSettings handles PUT /api/bot-settings. Only the submitted keys are
// touched; unknown keys are stored as-is since the bot owns the schema.
func (h *APIHandler) UpdateSettings(c *fiber.Ctx) error {
	var updates model.Settings
	if err := c.BodyParser(&updates); err != nil {
		return badRequest(c, "invalid request body")
	}
	if len(updates) == 0 {
		return badRequest(c, "no settings submitted")
	}
	delete(updates, "_id")
	delete(updates, "id")

	ctx := reqCtx(c)
	if err := h.repos.Settings.Update(ctx, updates); err != nil {
		return h.internalError(c, "failed to update settings", err)
	}

	stored, err := h.repos.Settings.Get(ctx)
	if err != nil {
		return h.internalError(c, "failed to load settings", err)
	}
	return c.JSON(stored.Merged())
}
