package analytics_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/complainthub/complainthub/internal/analytics"
	"github.com/complainthub/complainthub/internal/domain"
)

func intPtr(v int) *int { return &v }

// TestSummarizeScenario verifies the canonical mix: two resolved tickets rated
// 4 and 2 plus one new ticket.
func TestSummarizeScenario(t *testing.T) {
	tickets := []domain.Ticket{
		{Status: domain.TicketStatusResolved, SatisfactionRating: intPtr(4)},
		{Status: domain.TicketStatusResolved, SatisfactionRating: intPtr(2)},
		{Status: domain.TicketStatusNew},
	}

	s := analytics.Summarize(tickets)

	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 2, s.Resolved)
	assert.Equal(t, 1, s.Pending)
	assert.InDelta(t, 66.7, s.ResolutionRate, 0.001)
	assert.InDelta(t, 3.0, s.AvgSatisfaction, 0.001)
}

// TestSummarizeEmptyCollection verifies the divide-by-zero guards.
func TestSummarizeEmptyCollection(t *testing.T) {
	s := analytics.Summarize(nil)

	assert.Equal(t, 0, s.Total)
	assert.Equal(t, 0.0, s.ResolutionRate)
	assert.Equal(t, 0.0, s.AvgSatisfaction)
}

// TestSummarizeNoRatings verifies average satisfaction is 0 when no ticket
// carries a rating.
func TestSummarizeNoRatings(t *testing.T) {
	tickets := []domain.Ticket{
		{Status: domain.TicketStatusResolved},
		{Status: domain.TicketStatusClosed},
	}

	s := analytics.Summarize(tickets)

	assert.Equal(t, 0.0, s.AvgSatisfaction)
	assert.GreaterOrEqual(t, s.ResolutionRate, 0.0)
	assert.LessOrEqual(t, s.ResolutionRate, 100.0)
}

// TestGrowthZeroLastPeriod verifies growth is a defined 0 when the previous
// period had no complaints, never Inf or NaN.
func TestGrowthZeroLastPeriod(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	tickets := make([]domain.Ticket, 0, 10)
	for i := 0; i < 10; i++ {
		tickets = append(tickets, domain.Ticket{CreatedAt: now.AddDate(0, 0, -1)})
	}

	report := analytics.Growth(tickets, now, 7)

	assert.Equal(t, 10, report.ThisPeriod)
	assert.Equal(t, 0, report.LastPeriod)
	assert.Equal(t, 0.0, report.GrowthPct)
}

// TestGrowthPeriodBoundaries verifies the half-open previous period window.
func TestGrowthPeriodBoundaries(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	tickets := []domain.Ticket{
		{CreatedAt: now.AddDate(0, 0, -2)},  // this period
		{CreatedAt: now.AddDate(0, 0, -8)},  // last period
		{CreatedAt: now.AddDate(0, 0, -10)}, // last period
		{CreatedAt: now.AddDate(0, 0, -20)}, // before both
	}

	report := analytics.Growth(tickets, now, 7)

	assert.Equal(t, 1, report.ThisPeriod)
	assert.Equal(t, 2, report.LastPeriod)
	assert.InDelta(t, -50.0, report.GrowthPct, 0.001)
}

// TestTopPerformingExcludesEmptyBrandsAndSortsDescending mirrors the scenario
// [{total:0},{total:5,rate:80},{total:3,rate:100}] -> [100, 80].
func TestTopPerformingExcludesEmptyBrandsAndSortsDescending(t *testing.T) {
	brands := []domain.Brand{
		{ID: 1, Name: "Quiet Co"},
		{ID: 2, Name: "Busy Co"},
		{ID: 3, Name: "Perfect Co"},
	}
	tickets := []domain.Ticket{
		{BrandID: 2, Status: domain.TicketStatusResolved},
		{BrandID: 2, Status: domain.TicketStatusResolved},
		{BrandID: 2, Status: domain.TicketStatusResolved},
		{BrandID: 2, Status: domain.TicketStatusResolved},
		{BrandID: 2, Status: domain.TicketStatusNew},
		{BrandID: 3, Status: domain.TicketStatusResolved},
		{BrandID: 3, Status: domain.TicketStatusResolved},
		{BrandID: 3, Status: domain.TicketStatusResolved},
	}

	rows := analytics.PerformanceByBrand(brands, tickets)
	assert.Len(t, rows, 3)
	assert.Equal(t, "Quiet Co", rows[0].BrandName, "input order preserved")
	assert.Equal(t, 0, rows[0].Total)

	top := analytics.TopPerforming(rows, 5)

	assert.Len(t, top, 2, "brands without tickets are excluded")
	assert.Equal(t, "Perfect Co", top[0].BrandName)
	assert.InDelta(t, 100.0, top[0].ResolutionRate, 0.001)
	assert.Equal(t, "Busy Co", top[1].BrandName)
	assert.InDelta(t, 80.0, top[1].ResolutionRate, 0.001)
}

// TestTopPerformingStableTies verifies ties keep original collection order.
func TestTopPerformingStableTies(t *testing.T) {
	brands := []domain.Brand{
		{ID: 1, Name: "First"},
		{ID: 2, Name: "Second"},
	}
	tickets := []domain.Ticket{
		{BrandID: 1, Status: domain.TicketStatusResolved},
		{BrandID: 2, Status: domain.TicketStatusResolved},
	}

	top := analytics.TopPerforming(analytics.PerformanceByBrand(brands, tickets), 5)

	assert.Equal(t, "First", top[0].BrandName)
	assert.Equal(t, "Second", top[1].BrandName)
}

// TestTopPerformingLimit verifies the table is capped at the requested size.
func TestTopPerformingLimit(t *testing.T) {
	brands := make([]domain.Brand, 0, 7)
	tickets := make([]domain.Ticket, 0, 7)
	for i := int64(1); i <= 7; i++ {
		brands = append(brands, domain.Brand{ID: i})
		tickets = append(tickets, domain.Ticket{BrandID: i, Status: domain.TicketStatusResolved})
	}

	top := analytics.TopPerforming(analytics.PerformanceByBrand(brands, tickets), 5)

	assert.Len(t, top, 5)
}
