package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/complainthub/complainthub/internal/auth"
	"github.com/complainthub/complainthub/internal/service"
)

// AnalyticsHandler serves dashboard metrics.
type AnalyticsHandler struct {
	analytics *service.AnalyticsService
}

// NewAnalyticsHandler constructs the handler.
func NewAnalyticsHandler(analytics *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

// Overview computes the scoped dashboard overview. Accepts the same filter
// query params as the ticket list plus period_days.
func (h *AnalyticsHandler) Overview(c *fiber.Ctx) error {
	actor := auth.UserFromContext(c)
	spec, err := parseFilterSpec(c)
	if err != nil {
		return err
	}
	overview, err := h.analytics.OverviewFor(c.Context(), actor, c.QueryInt("period_days", 30), spec)
	if err != nil {
		return err
	}
	return c.JSON(overview)
}

// Brands computes the admin cross-brand performance report.
func (h *AnalyticsHandler) Brands(c *fiber.Ctx) error {
	report, err := h.analytics.BrandAnalyticsReport(c.Context(), c.QueryInt("period_days", 30))
	if err != nil {
		return err
	}
	return c.JSON(report)
}
