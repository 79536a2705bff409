package handler

import (
	"github.com/filegram/panel/internal/app/repository"
	"github.com/gofiber/fiber/v2"
)

// ListFiles handles GET /api/bot-files
func (h *APIHandler) ListFiles(c *fiber.Ctx) error {
	page, limit := pageArgs(c)
	q := repository.FileQuery{
		Page:   page,
		Limit:  limit,
		Search: c.Query("search"),
		Type:   c.Query("type"),
	}

	files, total, err := h.repos.Files.List(reqCtx(c), q)
	if err != nil {
		return h.internalError(c, "failed to list files", err)
	}
	return c.JSON(newPaginated(files, page, limit, total))
}
