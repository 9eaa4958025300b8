package domain

import "time"

// TicketStatus enumerates lifecycle states for complaint tickets.
type TicketStatus string

const (
	TicketStatusNew        TicketStatus = "new"
	TicketStatusInProgress TicketStatus = "in-progress"
	TicketStatusResolved   TicketStatus = "resolved"
	TicketStatusClosed     TicketStatus = "closed"
)

// Valid reports whether the status is one of the known lifecycle states.
func (s TicketStatus) Valid() bool {
	switch s {
	case TicketStatusNew, TicketStatusInProgress, TicketStatusResolved, TicketStatusClosed:
		return true
	}
	return false
}

// TicketUrgency enumerates how pressing a complaint is.
type TicketUrgency string

const (
	TicketUrgencyLow    TicketUrgency = "low"
	TicketUrgencyMedium TicketUrgency = "medium"
	TicketUrgencyHigh   TicketUrgency = "high"
)

// TicketChannel identifies how a complaint entered the platform.
type TicketChannel string

const (
	TicketChannelWeb   TicketChannel = "web"
	TicketChannelVoice TicketChannel = "voice"
	TicketChannelChat  TicketChannel = "chat"
	TicketChannelEmail TicketChannel = "email"
)

// Ticket is the aggregate for customer complaints.
type Ticket struct {
	ID            int64
	ReferenceCode string
	BrandID       int64
	BrandName     string
	OwnerID       int64
	OwnerName     string
	OwnerEmail    string
	OwnerPhone    string
	Title         string
	Description   string
	Category      string
	Urgency       TicketUrgency
	Channel       TicketChannel
	Status        TicketStatus

	// SatisfactionRating is set by the owner exactly once, after resolution.
	SatisfactionRating  *int
	SatisfactionComment *string

	// FeeChargedAt marks when the unresolved-complaint fee was deducted.
	FeeChargedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	ClosedAt  *time.Time
}

// Resolved reports whether the ticket counts as resolved for analytics.
func (t *Ticket) Resolved() bool {
	return t.Status == TicketStatusResolved
}

// Unresolved reports whether the ticket is still pending work and therefore
// eligible for the overdue-complaint fee.
func (t *Ticket) Unresolved() bool {
	return t.Status == TicketStatusNew || t.Status == TicketStatusInProgress
}
