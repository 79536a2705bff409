package handler

import (
	"errors"

	"github.com/filegram/panel/internal/app/model"
	"github.com/filegram/panel/internal/app/repository"
	"github.com/gofiber/fiber/v2"
)

// ListFsub handles GET /api/bot-fsub
func (h *APIHandler) ListFsub(c *fiber.Ctx) error {
	ctx := reqCtx(c)
	channels, err := h.repos.Fsub.List(ctx)
	if err != nil {
		return h.internalError(c, "failed to list channels", err)
	}

	stored, err := h.repos.Settings.Get(ctx)
	if err != nil {
		return h.internalError(c, "failed to load settings", err)
	}
	enabled := true
	if v, ok := stored.Merged()["fsub_mode"].(bool); ok {
		enabled = v
	}

	return c.JSON(fiber.Map{"data": channels, "fsub_enabled": enabled})
}

type fsubRequest struct {
	Action          string `json:"action"`
	ChannelID       int64  `json:"channel_id"`
	ChannelName     string `json:"channel_name"`
	ChannelUsername string `json:"channel_username"`
}

// UpdateFsub handles POST /api/bot-fsub with actions add, remove and toggle.
func (h *APIHandler) UpdateFsub(c *fiber.Ctx) error {
	var req fsubRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	ctx := reqCtx(c)
	switch req.Action {
	case "add":
		if req.ChannelID == 0 {
			return badRequest(c, "channel_id is required")
		}
		ch := &model.FsubChannel{
			ChannelID:       req.ChannelID,
			ChannelName:     req.ChannelName,
			ChannelUsername: req.ChannelUsername,
			AddedBy:         actor(c).ID,
		}
		if err := h.repos.Fsub.Add(ctx, ch); err != nil {
			if errors.Is(err, repository.ErrChannelExists) {
				return badRequest(c, "channel already added")
			}
			return h.internalError(c, "failed to add channel", err)
		}
		return c.Status(fiber.StatusCreated).JSON(ch)

	case "remove":
		if req.ChannelID == 0 {
			return badRequest(c, "channel_id is required")
		}
		if err := h.repos.Fsub.Remove(ctx, req.ChannelID); err != nil {
			if errors.Is(err, repository.ErrChannelNotFound) {
				return notFound(c, "channel not found")
			}
			return h.internalError(c, "failed to remove channel", err)
		}
		return c.JSON(fiber.Map{"success": true})

	case "toggle":
		stored, err := h.repos.Settings.Get(ctx)
		if err != nil {
			return h.internalError(c, "failed to load settings", err)
		}
		current := true
		if v, ok := stored.Merged()["fsub_mode"].(bool); ok {
			current = v
		}
		next := !current
		if err := h.repos.Settings.Update(ctx, model.Settings{"fsub_mode": next}); err != nil {
			return h.internalError(c, "failed to toggle fsub mode", err)
		}
		return c.JSON(fiber.Map{"success": true, "fsub_enabled": next})

	default:
		return badRequest(c, "action must be one of: add, remove, toggle")
	}
}
