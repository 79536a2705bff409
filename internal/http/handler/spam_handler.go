package handler

import (
	"errors"
	"time"

	"github.com/filegram/panel/internal/app/repository"
	"github.com/gofiber/fiber/v2"
)

// SpamOverview handles GET /api/bot-spam. Flagged users paginate; the high
// activity and recent log sections are fixed-size summaries.
func (h *APIHandler) SpamOverview(c *fiber.Ctx) error {
	ctx := reqCtx(c)
	page, limit := pageArgs(c)

	flagged, total, err := h.repos.Users.ListFlagged(ctx, page, limit)
	if err != nil {
		return h.internalError(c, "failed to list flagged users", err)
	}

	since := time.Now().Add(-24 * time.Hour)
	active, err := h.repos.Users.ListHighActivity(ctx, since, 10)
	if err != nil {
		return h.internalError(c, "failed to list high activity users", err)
	}

	// Spam logs are best-effort: the collection may not exist on older
	// bot deployments, in which case this is empty.
	logs, err := h.repos.Users.RecentSpamLogs(ctx, since, 50)
	if err != nil {
		logs = nil
	}

	owner := isOwner(c)
	return c.JSON(fiber.Map{
		"flagged":       newPaginated(userViews(flagged, owner), page, limit, total),
		"high_activity": userViews(active, owner),
		"recent_logs":   logs,
	})
}

type spamRequest struct {
	Action string `json:"action"`
	UserID int64  `json:"user_id"`
}

// UpdateSpam handles POST /api/bot-spam with action clear_flag.
func (h *APIHandler) UpdateSpam(c *fiber.Ctx) error {
	var req spamRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.Action != "clear_flag" {
		return badRequest(c, "action must be clear_flag")
	}
	if req.UserID == 0 {
		return badRequest(c, "user_id is required")
	}

	if err := h.repos.Users.ClearSpamFlag(reqCtx(c), req.UserID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return notFound(c, "user not found")
		}
		return h.internalError(c, "failed to clear spam flag", err)
	}
	return c.JSON(fiber.Map{"success": true, "user_id": req.UserID})
}
