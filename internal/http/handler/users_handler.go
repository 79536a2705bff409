package handler

import (
	"errors"
	"strconv"
	"time"

	"github.com/filegram/panel/internal/app/model"
	"github.com/filegram/panel/internal/app/repository"
	"github.com/gofiber/fiber/v2"
)

// userView is the wire shape of a user row. Non-owner callers get a masked
// id and no contact fields.
type userView struct {
	UserID       string     `json:"user_id"`
	Name         string     `json:"name"`
	Username     string     `json:"username,omitempty"`
	Phone        string     `json:"phone,omitempty"`
	Banned       bool       `json:"banned"`
	BannedAt     *time.Time `json:"banned_at,omitempty"`
	IsPremium    bool       `json:"is_premium"`
	JoinedDate   time.Time  `json:"joined_date"`
	SpamFlagged  bool       `json:"spam_flagged"`
	SpamCount    int        `json:"spam_count"`
	MessageCount int64      `json:"message_count"`
	LastActive   *time.Time `json:"last_active,omitempty"`
}

func userViews(users []model.User, owner bool) []userView {
	views := make([]userView, len(users))
	for i, u := range users {
		views[i] = userView{
			UserID:       strconv.FormatInt(u.UserID, 10),
			Name:         u.Name,
			Banned:       u.Banned,
			BannedAt:     u.BannedAt,
			IsPremium:    u.IsPremium,
			JoinedDate:   u.JoinedDate,
			SpamFlagged:  u.SpamFlagged,
			SpamCount:    u.SpamCount,
			MessageCount: u.MessageCount,
			LastActive:   u.LastActive,
		}
		if owner {
			views[i].Username = u.Username
			views[i].Phone = u.Phone
		} else {
			views[i].UserID = maskUserID(u.UserID)
		}
	}
	return views
}

// maskUserID hides all but the last four digits of a numeric user id.
func maskUserID(id int64) string {
	s := strconv.FormatInt(id, 10)
	if len(s) <= 4 {
		return "***" + s
	}
	return "***" + s[len(s)-4:]
}

// ListUsers handles GET /api/bot-users
func (h *APIHandler) ListUsers(c *fiber.Ctx) error {
	page, limit := pageArgs(c)
	q := repository.UserQuery{
		Page:   page,
		Limit:  limit,
		Search: c.Query("search"),
		Filter: c.Query("filter", model.UserFilterAll),
	}

	users, total, err := h.repos.Users.List(reqCtx(c), q)
	if err != nil {
		return h.internalError(c, "failed to list users", err)
	}
	return c.JSON(newPaginated(userViews(users, isOwner(c)), page, limit, total))
}

type updateUserRequest struct {
	UserID int64  `json:"user_id"`
	Action string `json:"action"`
}

// UpdateUser handles POST /api/bot-users
func (h *APIHandler) UpdateUser(c *fiber.Ctx) error {
	var req updateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.UserID == 0 {
		return badRequest(c, "user_id is required")
	}

	var banned bool
	switch req.Action {
	case "ban":
		banned = true
	case "unban":
		banned = false
	default:
		return badRequest(c, "action must be one of: ban, unban")
	}

	if err := h.repos.Users.SetBanned(reqCtx(c), req.UserID, banned); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return notFound(c, "user not found")
		}
		return h.internalError(c, "failed to update user", err)
	}
	return c.JSON(fiber.Map{"success": true, "user_id": req.UserID, "banned": banned})
}
