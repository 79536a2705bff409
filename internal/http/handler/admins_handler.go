package handler

import (
	"errors"

	"github.com/filegram/panel/internal/app/model"
	"github.com/filegram/panel/internal/app/repository"
	"github.com/filegram/panel/internal/app/service"
	"github.com/gofiber/fiber/v2"
)

// ListAdmins handles GET /api/bot-admins
func (h *APIHandler) ListAdmins(c *fiber.Ctx) error {
	admins, err := h.admins.ListAdmins(reqCtx(c))
	if err != nil {
		return h.internalError(c, "failed to list admins", err)
	}
	return c.JSON(fiber.Map{"data": admins})
}

type createAdminRequest struct {
	UserID      int64             `json:"user_id"`
	Name        string            `json:"name"`
	Permissions model.Permissions `json:"permissions"`
}

// CreateAdmin handles POST /api/bot-admins
func (h *APIHandler) CreateAdmin(c *fiber.Ctx) error {
	var req createAdminRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	admin, err := h.admins.CreateAdmin(reqCtx(c), service.CreateAdminInput{
		UserID:      req.UserID,
		Name:        req.Name,
		Permissions: req.Permissions,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidAdminID):
			return badRequest(c, "user_id is required")
		case errors.Is(err, repository.ErrAdminExists):
			return badRequest(c, "admin already exists")
		}
		return h.internalError(c, "failed to create admin", err)
	}
	return c.Status(fiber.StatusCreated).JSON(admin)
}

type updateAdminRequest struct {
	UserID      int64             `json:"user_id"`
	Name        *string           `json:"name"`
	Permissions model.Permissions `json:"permissions"`
}

// UpdateAdmin handles PUT /api/bot-admins
func (h *APIHandler) UpdateAdmin(c *fiber.Ctx) error {
	var req updateAdminRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	admin, err := h.admins.UpdateAdmin(reqCtx(c), req.UserID, service.UpdateAdminInput{
		Name:        req.Name,
		Permissions: req.Permissions,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidAdminID):
			return badRequest(c, "user_id is required")
		case errors.Is(err, repository.ErrAdminNotFound):
			return notFound(c, "admin not found")
		}
		return h.internalError(c, "failed to update admin", err)
	}
	return c.JSON(admin)
}

// DeleteAdmin handles DELETE /api/bot-admins?user_id=
func (h *APIHandler) DeleteAdmin(c *fiber.Ctx) error {
	userID := int64(c.QueryInt("user_id"))
	if userID == 0 {
		return badRequest(c, "user_id is required")
	}

	if err := h.admins.DeleteAdmin(reqCtx(c), userID); err != nil {
		if errors.Is(err, repository.ErrAdminNotFound) {
			return notFound(c, "admin not found")
		}
		return h.internalError(c, "failed to delete admin", err)
	}
	return c.JSON(fiber.Map{"success": true})
}
