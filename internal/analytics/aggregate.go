package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/complainthub/complainthub/internal/domain"
)

// Summary carries the derived counts for a ticket collection.
type Summary struct {
	Total           int     `json:"total"`
	Resolved        int     `json:"resolved"`
	Pending         int     `json:"pending"`
	ResolutionRate  float64 `json:"resolution_rate"`
	AvgSatisfaction float64 `json:"avg_satisfaction"`
}

// Summarize computes counts, resolution rate and average satisfaction for the
// collection. Every division is guarded: an empty collection yields zeroes,
// never NaN or Inf.
func Summarize(tickets []domain.Ticket) Summary {
	s := Summary{Total: len(tickets)}

	ratingSum := 0
	ratingCount := 0
	for i := range tickets {
		if tickets[i].Resolved() {
			s.Resolved++
		}
		if r := tickets[i].SatisfactionRating; r != nil {
			ratingSum += *r
			ratingCount++
		}
	}
	s.Pending = s.Total - s.Resolved

	if s.Total > 0 {
		s.ResolutionRate = round1(float64(s.Resolved) / float64(s.Total) * 100)
	}
	if ratingCount > 0 {
		s.AvgSatisfaction = round1(float64(ratingSum) / float64(ratingCount))
	}
	return s
}

// GrowthReport compares complaint volume between two adjacent periods.
type GrowthReport struct {
	ThisPeriod int     `json:"this_period"`
	LastPeriod int     `json:"last_period"`
	GrowthPct  float64 `json:"growth_pct"`
}

// Growth counts tickets created in [now-period, now) against the period
// before it. Growth is defined as 0 when the previous period is empty.
func Growth(tickets []domain.Ticket, now time.Time, periodDays int) GrowthReport {
	periodStart := now.AddDate(0, 0, -periodDays)
	previousStart := periodStart.AddDate(0, 0, -periodDays)

	var report GrowthReport
	for i := range tickets {
		created := tickets[i].CreatedAt
		switch {
		case !created.Before(periodStart):
			report.ThisPeriod++
		case !created.Before(previousStart) && created.Before(periodStart):
			report.LastPeriod++
		}
	}
	if report.LastPeriod > 0 {
		report.GrowthPct = round1(float64(report.ThisPeriod-report.LastPeriod) / float64(report.LastPeriod) * 100)
	}
	return report
}

// BrandPerformance is one row of the per-brand performance table.
type BrandPerformance struct {
	BrandID   int64  `json:"brand_id"`
	BrandName string `json:"brand_name"`
	Summary
}

// PerformanceByBrand computes a Summary over each brand's own tickets,
// preserving the brand collection order.
func PerformanceByBrand(brands []domain.Brand, tickets []domain.Ticket) []BrandPerformance {
	byBrand := make(map[int64][]domain.Ticket, len(brands))
	for _, t := range tickets {
		byBrand[t.BrandID] = append(byBrand[t.BrandID], t)
	}

	rows := make([]BrandPerformance, 0, len(brands))
	for _, b := range brands {
		rows = append(rows, BrandPerformance{
			BrandID:   b.ID,
			BrandName: b.Name,
			Summary:   Summarize(byBrand[b.ID]),
		})
	}
	return rows
}

// TopPerforming returns the best brands by resolution rate: only brands with
// at least one ticket qualify, sorted descending, ties kept in input order.
func TopPerforming(rows []BrandPerformance, limit int) []BrandPerformance {
	top := make([]BrandPerformance, 0, len(rows))
	for _, row := range rows {
		if row.Total > 0 {
			top = append(top, row)
		}
	}
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].ResolutionRate > top[j].ResolutionRate
	})
	if limit > 0 && len(top) > limit {
		top = top[:limit]
	}
	return top
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
