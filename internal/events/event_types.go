package events

import (
	"time"

	"github.com/complainthub/complainthub/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated       EventType = "ticket_created"
	EventTicketStatusChanged EventType = "ticket_status_changed"
	EventTicketRated         EventType = "ticket_rated"
	EventCreditCharged       EventType = "credit_charged"
	EventLowBalance          EventType = "low_balance"
	EventInvitationAccepted  EventType = "invitation_accepted"
)

// Actor encapsulates actor metadata for an event. System-originated events
// (the billing sweep) carry no user.
type Actor struct {
	UserID *int64           `json:"user_id,omitempty"`
	Role   *domain.UserRole `json:"role,omitempty"`
	System bool             `json:"system,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  int64       `json:"ticket_id,omitempty"`
	BrandID   int64       `json:"brand_id,omitempty"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	BrandID  int64                `json:"brand_id"`
	Title    string               `json:"title"`
	Category string               `json:"category"`
	Urgency  domain.TicketUrgency `json:"urgency"`
	Channel  domain.TicketChannel `json:"channel"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
}

// TicketRatedPayload payload.
type TicketRatedPayload struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment,omitempty"`
}

// CreditChargedPayload payload.
type CreditChargedPayload struct {
	Amount     float64 `json:"amount"`
	NewBalance float64 `json:"new_balance"`
	Reason     string  `json:"reason"`
}

// LowBalancePayload payload.
type LowBalancePayload struct {
	Balance   float64 `json:"balance"`
	Threshold float64 `json:"threshold"`
}

// InvitationAcceptedPayload payload.
type InvitationAcceptedPayload struct {
	BrandID int64  `json:"brand_id"`
	Email   string `json:"email"`
}
