package handlers

import (
	"math"

	"github.com/gofiber/fiber/v2"

	"github.com/complainthub/complainthub/internal/api/dto"
	"github.com/complainthub/complainthub/internal/repository"
	"github.com/complainthub/complainthub/internal/service"
	apperrors "github.com/complainthub/complainthub/pkg/util"
)

// AdminHandler serves the platform administration endpoints. Every route is
// behind the admin role guard.
type AdminHandler struct {
	users    repository.UserRepository
	brands   repository.BrandRepository
	tickets  repository.TicketRepository
	billing  *service.BillingService
	settings repository.SettingsStore
}

// NewAdminHandler constructs the handler.
func NewAdminHandler(users repository.UserRepository, brands repository.BrandRepository, tickets repository.TicketRepository, billing *service.BillingService, settings repository.SettingsStore) *AdminHandler {
	return &AdminHandler{
		users:    users,
		brands:   brands,
		tickets:  tickets,
		billing:  billing,
		settings: settings,
	}
}

// Stats returns platform-wide counters.
func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	ctx := c.Context()
	totalUsers, err := h.users.CountAll(ctx)
	if err != nil {
		return apperrors.MapError(err)
	}
	totalBrands, err := h.brands.CountAll(ctx)
	if err != nil {
		return apperrors.MapError(err)
	}
	totalTickets, err := h.tickets.CountAll(ctx)
	if err != nil {
		return apperrors.MapError(err)
	}
	resolved, err := h.tickets.CountResolved(ctx)
	if err != nil {
		return apperrors.MapError(err)
	}
	var rate float64
	if totalTickets > 0 {
		rate = math.Round(float64(resolved)/float64(totalTickets)*1000) / 10
	}
	return c.JSON(dto.PlatformStatsResponse{
		TotalUsers:      totalUsers,
		TotalBrands:     totalBrands,
		TotalTickets:    totalTickets,
		ResolvedTickets: resolved,
		ResolutionRate:  rate,
	})
}

// Users lists every account on the platform.
func (h *AdminHandler) Users(c *fiber.Ctx) error {
	users, err := h.users.List(c.Context())
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(dto.NewUserListResponse(users))
}

// BillingLogs lists the platform-wide credit ledger.
func (h *AdminHandler) BillingLogs(c *fiber.Ctx) error {
	entries, err := h.billing.AllEntries(c.Context(), c.QueryInt("limit", 200))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewBillingEntryListResponse(entries))
}

// GetSettings returns the stored platform settings.
func (h *AdminHandler) GetSettings(c *fiber.Ctx) error {
	settings, err := h.settings.GetAll(c.Context())
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	if settings == nil {
		settings = map[string]string{}
	}
	return c.JSON(dto.SettingsResponse{Settings: settings})
}

// UpdateSettings replaces the stored platform settings.
func (h *AdminHandler) UpdateSettings(c *fiber.Ctx) error {
	var req dto.SettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	if len(req.Settings) == 0 {
		return apperrors.NewValidationError("settings required", nil)
	}
	if err := h.settings.SetAll(c.Context(), req.Settings); err != nil {
		return apperrors.NewInternalError(err)
	}
	return c.JSON(dto.SettingsResponse{Settings: req.Settings})
}
