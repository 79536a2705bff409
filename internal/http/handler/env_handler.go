package handler

import (
	"errors"

	"github.com/filegram/panel/internal/app/repository"
	"github.com/filegram/panel/internal/app/service"
	"github.com/gofiber/fiber/v2"
)

// ListEnvVars handles GET /api/bot-env
func (h *APIHandler) ListEnvVars(c *fiber.Ctx) error {
	vars, err := h.env.ListEnvVars(reqCtx(c))
	if err != nil {
		return h.internalError(c, "failed to list env vars", err)
	}
	return c.JSON(fiber.Map{"data": vars})
}

type upsertEnvVarRequest struct {
	Key          string `json:"key"`
	Value        string `json:"value"`
	Description  string `json:"description"`
	IsSecret     bool   `json:"is_secret"`
	SyncToRender bool   `json:"sync_to_render"`
}

// UpsertEnvVar handles POST /api/bot-env
func (h *APIHandler) UpsertEnvVar(c *fiber.Ctx) error {
	var req upsertEnvVarRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	v, sync, err := h.env.UpsertEnvVar(reqCtx(c), service.UpsertEnvVarInput{
		Key:         req.Key,
		Value:       req.Value,
		Description: req.Description,
		IsSecret:    req.IsSecret,
		Sync:        req.SyncToRender,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidEnvKey) {
			return badRequest(c, "key is required")
		}
		return h.internalError(c, "failed to save env var", err)
	}

	body := fiber.Map{"success": true, "var": v}
	if sync != nil {
		body["synced"] = sync.Synced()
		if sync.Err != nil {
			body["sync_error"] = sync.Err.Error()
		}
	}
	return c.JSON(body)
}

// DeleteEnvVar handles DELETE /api/bot-env?key=&sync_to_render=
func (h *APIHandler) DeleteEnvVar(c *fiber.Ctx) error {
	key := c.Query("key")
	if key == "" {
		return badRequest(c, "key is required")
	}

	sync, err := h.env.DeleteEnvVar(reqCtx(c), key, c.QueryBool("sync_to_render"))
	if err != nil {
		if errors.Is(err, repository.ErrEnvVarNotFound) {
			return notFound(c, "env var not found")
		}
		return h.internalError(c, "failed to delete env var", err)
	}

	body := fiber.Map{"success": true}
	if sync != nil {
		body["synced"] = sync.Synced()
		if sync.Err != nil {
			body["sync_error"] = sync.Err.Error()
		}
	}
	return c.JSON(body)
}
