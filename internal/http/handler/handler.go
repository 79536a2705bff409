// Package handler implements the dashboard API endpoints. Handlers are
// thin: query parsing and response shaping here, behaviour in the service
// layer, storage in the repositories.
package handler

import (
	"github.com/filegram/panel/internal/app/repository"
	"github.com/filegram/panel/internal/app/service"
	"github.com/filegram/panel/internal/infra/auth"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// APIDeps groups dependencies required by the API handlers.
type APIDeps struct {
	Logger     *zap.Logger
	Repos      *repository.Repositories
	Links      service.LinkService
	Admins     service.AdminService
	Broadcasts service.BroadcastService
	Env        service.EnvService
	Status     service.StatusService
}

// APIHandler implements the dashboard API endpoints.
type APIHandler struct {
	logger     *zap.Logger
	repos      *repository.Repositories
	links      service.LinkService
	admins     service.AdminService
	broadcasts service.BroadcastService
	env        service.EnvService
	status     service.StatusService
}

// NewAPIHandler creates an API handler with the provided dependencies.
func NewAPIHandler(deps APIDeps) *APIHandler {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &APIHandler{
		logger:     logger,
		repos:      deps.Repos,
		links:      deps.Links,
		admins:     deps.Admins,
		broadcasts: deps.Broadcasts,
		env:        deps.Env,
		status:     deps.Status,
	}
}

// Register wires the API routes onto the provided router. The router is
// expected to already carry the authentication middleware; owner-only
// resources add their own role gate.
func (h *APIHandler) Register(api fiber.Router, ownerOnly fiber.Handler) {
	api.Get("/bot-stats", h.BotStats)

	api.Get("/bot-users", h.ListUsers)
	api.Post("/bot-users", h.UpdateUser)

	api.Get("/bot-files", h.ListFiles)

	api.Get("/bot-links", h.ListLinks)
	api.Get("/bot-links/stats", h.LinkStats)
	api.Post("/bot-links", h.CreateLink)
	api.Put("/bot-links", h.UpdateLink)
	api.Delete("/bot-links", h.DeleteLink)

	api.Get("/link-categories", h.ListCategories)
	api.Post("/link-categories", h.CreateCategory)
	api.Put("/link-categories", h.UpdateCategory)
	api.Delete("/link-categories", h.DeleteCategory)

	api.Get("/activity", h.ListActivity)

	admins := api.Group("/bot-admins", ownerOnly)
	admins.Get("/", h.ListAdmins)
	admins.Post("/", h.CreateAdmin)
	admins.Put("/", h.UpdateAdmin)
	admins.Delete("/", h.DeleteAdmin)

	api.Get("/bot-broadcast", h.ListBroadcasts)
	api.Post("/bot-broadcast", h.CreateBroadcast)
	api.Delete("/bot-broadcast", h.CancelBroadcast)

	env := api.Group("/bot-env", ownerOnly)
	env.Get("/", h.ListEnvVars)
	env.Post("/", h.UpsertEnvVar)
	env.Delete("/", h.DeleteEnvVar)

	api.Get("/bot-fsub", h.ListFsub)
	api.Post("/bot-fsub", h.UpdateFsub)

	api.Get("/bot-settings", h.GetSettings)
	api.Put("/bot-settings", h.UpdateSettings)

	api.Get("/bot-spam", h.SpamOverview)
	api.Post("/bot-spam", h.UpdateSpam)

	api.Get("/bot-status", h.BotStatus)
}

// isOwner reports whether the authenticated identity holds the owner role.
func isOwner(c *fiber.Ctx) bool {
	identity, _ := c.Locals("identity").(*auth.Identity)
	return identity != nil && identity.IsOwner()
}

// actor extracts the acting identity for activity attribution.
func actor(c *fiber.Ctx) service.Actor {
	identity, _ := c.Locals("identity").(*auth.Identity)
	if identity == nil {
		return service.Actor{}
	}
	return service.Actor{ID: identity.UserID}
}
