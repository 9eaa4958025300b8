package httpapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/complainthub/complainthub/internal/api/http/handlers"
	"github.com/complainthub/complainthub/internal/auth"
	"github.com/complainthub/complainthub/internal/domain"
)

// Handlers bundles every route handler for registration.
type Handlers struct {
	Health    *handlers.HealthHandler
	Auth      *handlers.AuthHandler
	Tickets   *handlers.TicketsHandler
	Brands    *handlers.BrandsHandler
	Team      *handlers.TeamHandler
	Analytics *handlers.AnalyticsHandler
	Chat      *handlers.ChatHandler
	Admin     *handlers.AdminHandler
}

// RegisterRoutes wires all endpoints. Invitation lookup and acceptance are
// public so invitees without accounts can redeem their token.
func RegisterRoutes(app *fiber.App, authMW *auth.AuthMiddleware, h Handlers) {
	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)

	app.Post("/login/access-token", h.Auth.Login)
	app.Post("/auth/signup", h.Auth.Signup)

	app.Get("/invitations/:token", h.Team.Lookup)
	app.Post("/invitations/:token/accept", h.Team.Accept)

	app.Get("/tickets/track/:code", h.Tickets.Track)

	api := app.Group("", authMW.Handle)

	api.Get("/auth/me", h.Auth.Me)

	tickets := api.Group("/tickets")
	tickets.Post("", auth.RequireRole(domain.RoleUser), h.Tickets.Create)
	tickets.Get("", h.Tickets.List)
	tickets.Get("/:id", h.Tickets.Get)
	tickets.Patch("/:id/status", auth.RequireRole(domain.RoleBrandUser, domain.RoleAdmin), h.Tickets.UpdateStatus)
	tickets.Post("/:id/rating", auth.RequireRole(domain.RoleUser), h.Tickets.Rate)
	tickets.Post("/:id/voice", h.Tickets.UploadVoiceNote)
	tickets.Get("/:id/voice", h.Tickets.ListVoiceNotes)

	brands := api.Group("/brands")
	brands.Get("", h.Brands.List)
	brands.Post("", auth.RequireAdmin(), h.Brands.Create)
	brands.Get("/me", auth.RequireRole(domain.RoleBrandUser), h.Brands.Me)
	brands.Get("/:id", h.Brands.Get)
	brands.Put("/:id", auth.RequireRole(domain.RoleBrandUser, domain.RoleAdmin), h.Brands.Update)
	brands.Delete("/:id", auth.RequireAdmin(), h.Brands.Delete)
	brands.Get("/:id/team-members", auth.RequireRole(domain.RoleBrandUser, domain.RoleAdmin), h.Brands.TeamMembers)
	brands.Post("/:id/invitations", auth.RequireRole(domain.RoleBrandUser, domain.RoleAdmin), h.Team.Invite)
	brands.Get("/:id/invitations", auth.RequireRole(domain.RoleBrandUser, domain.RoleAdmin), h.Team.List)
	brands.Delete("/:id/invitations/:invitationID", auth.RequireRole(domain.RoleBrandUser, domain.RoleAdmin), h.Team.Revoke)
	brands.Get("/:id/billing", auth.RequireRole(domain.RoleBrandUser, domain.RoleAdmin), h.Brands.BillingEntries)
	brands.Post("/:id/topup", auth.RequireRole(domain.RoleBrandUser, domain.RoleAdmin), h.Brands.TopUp)

	analytics := api.Group("/analytics")
	analytics.Get("/overview", h.Analytics.Overview)
	analytics.Get("/brands", auth.RequireAdmin(), h.Analytics.Brands)

	chat := api.Group("/chat")
	chat.Post("/start/:ticketID", h.Chat.Start)
	chat.Post("/send", h.Chat.Send)
	chat.Get("/messages/:sessionID", h.Chat.Messages)

	admin := api.Group("/admin", auth.RequireAdmin())
	admin.Get("/stats", h.Admin.Stats)
	admin.Get("/users", h.Admin.Users)
	admin.Get("/billing-logs", h.Admin.BillingLogs)
	admin.Get("/settings", h.Admin.GetSettings)
	admin.Put("/settings", h.Admin.UpdateSettings)
}
