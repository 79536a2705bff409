package handler

import (
	"errors"

	"github.com/filegram/panel/internal/app/model"
	"github.com/filegram/panel/internal/app/repository"
	"github.com/filegram/panel/internal/app/service"
	"github.com/gofiber/fiber/v2"
)

// ListBroadcasts handles GET /api/bot-broadcast
func (h *APIHandler) ListBroadcasts(c *fiber.Ctx) error {
	page, limit := pageArgs(c)
	jobs, total, err := h.broadcasts.ListBroadcasts(reqCtx(c), page, limit)
	if err != nil {
		return h.internalError(c, "failed to list broadcasts", err)
	}
	return c.JSON(newPaginated(jobs, page, limit, total))
}

type createBroadcastRequest struct {
	Message string                 `json:"message"`
	Type    string                 `json:"type"`
	Options model.BroadcastOptions `json:"options"`
}

// CreateBroadcast handles POST /api/bot-broadcast
func (h *APIHandler) CreateBroadcast(c *fiber.Ctx) error {
	var req createBroadcastRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	job, err := h.broadcasts.CreateBroadcast(reqCtx(c), service.CreateBroadcastInput{
		Message:   req.Message,
		Type:      req.Type,
		CreatedBy: actor(c).ID,
		Options:   req.Options,
	})
	if err != nil {
		if errors.Is(err, service.ErrEmptyBroadcast) {
			return badRequest(c, "message is required")
		}
		return h.internalError(c, "failed to create broadcast", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":     true,
		"total_users": job.TotalUsers,
		"broadcast":   job,
	})
}

// CancelBroadcast handles DELETE /api/bot-broadcast?id=
// Only pending jobs can be cancelled; anything the bot already picked up
// is refused with 400.
func (h *APIHandler) CancelBroadcast(c *fiber.Ctx) error {
	id := c.Query("id")
	if id == "" {
		return badRequest(c, "id is required")
	}

	if err := h.broadcasts.CancelBroadcast(reqCtx(c), id); err != nil {
		switch {
		case errors.Is(err, repository.ErrBroadcastNotFound):
			return notFound(c, "broadcast not found")
		case errors.Is(err, repository.ErrBroadcastNotPending):
			return badRequest(c, "broadcast is not pending")
		}
		return h.internalError(c, "failed to cancel broadcast", err)
	}
	return c.JSON(fiber.Map{"success": true, "status": model.BroadcastCancelled})
}
