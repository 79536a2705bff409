package handler

import (
	"errors"

	"github.com/filegram/panel/internal/app/repository"
	"github.com/filegram/panel/internal/app/service"
	"github.com/gofiber/fiber/v2"
)

// ListLinks handles GET /api/bot-links
func (h *APIHandler) ListLinks(c *fiber.Ctx) error {
	page, limit := pageArgs(c)
	q := repository.LinkQuery{
		Page:       page,
		Limit:      limit,
		Search:     c.Query("search"),
		CategoryID: c.Query("category_id"),
	}

	links, total, err := h.links.ListLinks(reqCtx(c), q)
	if err != nil {
		return h.internalError(c, "failed to list links", err)
	}
	return c.JSON(newPaginated(links, page, limit, total))
}

// LinkStats handles GET /api/bot-links/stats
func (h *APIHandler) LinkStats(c *fiber.Ctx) error {
	stats, err := h.links.LinkStats(reqCtx(c))
	if err != nil {
		return h.internalError(c, "failed to collect link stats", err)
	}
	return c.JSON(stats)
}

type createLinkRequest struct {
	Name       string   `json:"name"`
	BotLink    string   `json:"bot_link"`
	CategoryID *string  `json:"category_id"`
	LinkType   string   `json:"link_type"`
	Notes      string   `json:"notes"`
	SharedWith []string `json:"shared_with"`
}

// CreateLink handles POST /api/bot-links
func (h *APIHandler) CreateLink(c *fiber.Ctx) error {
	var req createLinkRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	link, err := h.links.CreateLink(reqCtx(c), service.CreateLinkInput{
		Name:       req.Name,
		BotLink:    req.BotLink,
		CategoryID: req.CategoryID,
		LinkType:   req.LinkType,
		Notes:      req.Notes,
		SharedWith: req.SharedWith,
		Actor:      actor(c),
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidLink) {
			return badRequest(c, "name and bot_link are required")
		}
		return h.internalError(c, "failed to create link", err)
	}
	return c.Status(fiber.StatusCreated).JSON(link)
}

type updateLinkRequest struct {
	ID            string   `json:"id"`
	Name          *string  `json:"name"`
	BotLink       *string  `json:"bot_link"`
	CategoryID    *string  `json:"category_id"`
	ClearCategory bool     `json:"clear_category"`
	LinkType      *string  `json:"link_type"`
	IsActive      *bool    `json:"is_active"`
	Notes         *string  `json:"notes"`
	SharedWith    []string `json:"shared_with"`
}

// UpdateLink handles PUT /api/bot-links
func (h *APIHandler) UpdateLink(c *fiber.Ctx) error {
	var req updateLinkRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.ID == "" {
		return badRequest(c, "id is required")
	}

	link, err := h.links.UpdateLink(reqCtx(c), req.ID, service.UpdateLinkInput{
		Name:       req.Name,
		BotLink:    req.BotLink,
		CategoryID: req.CategoryID,
		ClearCat:   req.ClearCategory,
		LinkType:   req.LinkType,
		IsActive:   req.IsActive,
		Notes:      req.Notes,
		SharedWith: req.SharedWith,
		Actor:      actor(c),
	})
	if err != nil {
		if errors.Is(err, repository.ErrLinkNotFound) {
			return notFound(c, "link not found")
		}
		return h.internalError(c, "failed to update link", err)
	}
	return c.JSON(link)
}

// DeleteLink handles DELETE /api/bot-links?id=
func (h *APIHandler) DeleteLink(c *fiber.Ctx) error {
	id := c.Query("id")
	if id == "" {
		return badRequest(c, "id is required")
	}

	if err := h.links.DeleteLink(reqCtx(c), id, actor(c)); err != nil {
		if errors.Is(err, repository.ErrLinkNotFound) {
			return notFound(c, "link not found")
		}
		return h.internalError(c, "failed to delete link", err)
	}
	return c.JSON(fiber.Map{"success": true})
}

type categoryRequest struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// ListCategories handles GET /api/link-categories
func (h *APIHandler) ListCategories(c *fiber.Ctx) error {
	cats, err := h.links.ListCategories(reqCtx(c))
	if err != nil {
		return h.internalError(c, "failed to list categories", err)
	}
	return c.JSON(fiber.Map{"data": cats})
}

// CreateCategory handles POST /api/link-categories
func (h *APIHandler) CreateCategory(c *fiber.Ctx) error {
	var req categoryRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	cat, err := h.links.CreateCategory(reqCtx(c), req.Name, req.Color)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCategory) {
			return badRequest(c, "name is required")
		}
		return h.internalError(c, "failed to create category", err)
	}
	return c.Status(fiber.StatusCreated).JSON(cat)
}

// UpdateCategory handles PUT /api/link-categories
func (h *APIHandler) UpdateCategory(c *fiber.Ctx) error {
	var req categoryRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.ID == "" {
		return badRequest(c, "id is required")
	}

	cat, err := h.links.UpdateCategory(reqCtx(c), req.ID, req.Name, req.Color)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCategory):
			return badRequest(c, "name is required")
		case errors.Is(err, repository.ErrCategoryNotFound):
			return notFound(c, "category not found")
		}
		return h.internalError(c, "failed to update category", err)
	}
	return c.JSON(cat)
}

// DeleteCategory handles DELETE /api/link-categories?id=
// Links in the category are kept and detached, never deleted.
func (h *APIHandler) DeleteCategory(c *fiber.Ctx) error {
	id := c.Query("id")
	if id == "" {
		return badRequest(c, "id is required")
	}

	if err := h.links.DeleteCategory(reqCtx(c), id); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return notFound(c, "category not found")
		}
		return h.internalError(c, "failed to delete category", err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// ListActivity handles GET /api/activity
func (h *APIHandler) ListActivity(c *fiber.Ctx) error {
	page, limit := pageArgs(c)
	entries, total, err := h.links.ListActivity(reqCtx(c), page, limit)
	if err != nil {
		return h.internalError(c, "failed to list activity", err)
	}
	return c.JSON(newPaginated(entries, page, limit, total))
}
