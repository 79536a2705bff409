package handler

import (
	"context"

	"github.com/filegram/panel/internal/infra/db"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// paginated is the envelope every list endpoint returns.
type paginated struct {
	Data       any   `json:"data"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

func newPaginated(data any, page, limit int, total int64) paginated {
	pages := int64(0)
	if limit > 0 {
		pages = (total + int64(limit) - 1) / int64(limit)
	}
	return paginated{Data: data, Page: page, Limit: limit, Total: total, TotalPages: pages}
}

// pageArgs reads page/limit query params; bounds are enforced again at the
// repository layer.
func pageArgs(c *fiber.Ctx) (int, int) {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit := c.QueryInt("limit", 20)
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

func reqCtx(c *fiber.Ctx) context.Context {
	ctx := c.UserContext()
	if ctx == nil {
		ctx = context.Background()
	}
	return ctx
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

func notFound(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": msg})
}

// internalError logs the full error and returns a sanitized message. When
// the failure looks like a database connectivity problem, a human hint is
// attached so the dashboard can surface it.
func (h *APIHandler) internalError(c *fiber.Ctx, msg string, err error) error {
	h.logger.Error(msg, zap.Error(err), zap.String("path", c.Path()))

	body := fiber.Map{"error": msg}
	if hint := db.ConnectionHint(err); hint != "" {
		body["hint"] = hint
	}
	return c.Status(fiber.StatusInternalServerError).JSON(body)
}
