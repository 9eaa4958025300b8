package analytics

import (
	"strings"
	"time"

	"github.com/complainthub/complainthub/internal/domain"
)

// FilterSpec describes the admin/brand complaint list filters. Nil or empty
// fields match everything; supplied predicates combine with logical AND.
type FilterSpec struct {
	BrandID *int64
	Status  *domain.TicketStatus
	Date    *time.Time
	Search  string
}

// Filter returns the tickets satisfying every supplied predicate. The input
// slice is never mutated and result order follows input order.
func Filter(tickets []domain.Ticket, spec FilterSpec) []domain.Ticket {
	result := make([]domain.Ticket, 0, len(tickets))
	for _, t := range tickets {
		if matches(&t, spec) {
			result = append(result, t)
		}
	}
	return result
}

func matches(t *domain.Ticket, spec FilterSpec) bool {
	if spec.BrandID != nil && t.BrandID != *spec.BrandID {
		return false
	}
	if spec.Status != nil && t.Status != *spec.Status {
		return false
	}
	if spec.Date != nil && !sameCalendarDay(t.CreatedAt, *spec.Date) {
		return false
	}
	if search := strings.TrimSpace(spec.Search); search != "" && !matchesSearch(t, search) {
		return false
	}
	return true
}

// matchesSearch reports whether any of the four searchable fields contains the
// query, case-insensitively.
func matchesSearch(t *domain.Ticket, query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(t.Title), q) ||
		strings.Contains(strings.ToLower(t.Description), q) ||
		strings.Contains(strings.ToLower(t.OwnerName), q) ||
		strings.Contains(strings.ToLower(t.BrandName), q)
}

// sameCalendarDay compares by local calendar date, not by a time range.
func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Local().Date()
	by, bm, bd := b.Local().Date()
	return ay == by && am == bm && ad == bd
}
