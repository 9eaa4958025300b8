package dto

import (
	"time"

	"github.com/complainthub/complainthub/internal/domain"
)

// CreateTicketRequest is the payload for filing a complaint.
type CreateTicketRequest struct {
	BrandID     int64  `json:"brand_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Urgency     string `json:"urgency"`
	Channel     string `json:"channel"`
}

// UpdateTicketStatusRequest carries a lifecycle transition.
type UpdateTicketStatusRequest struct {
	Status string `json:"status"`
}

// RateTicketRequest carries the owner's satisfaction rating.
type RateTicketRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// TicketResponse is the wire shape of a ticket.
type TicketResponse struct {
	ID                  int64      `json:"id"`
	ReferenceCode       string     `json:"reference_code"`
	BrandID             int64      `json:"brand_id"`
	BrandName           string     `json:"brand_name"`
	OwnerID             int64      `json:"owner_id"`
	OwnerName           string     `json:"owner_name"`
	Title               string     `json:"title"`
	Description         string     `json:"description"`
	Category            string     `json:"category"`
	Urgency             string     `json:"urgency"`
	Channel             string     `json:"channel"`
	Status              string     `json:"status"`
	SatisfactionRating  *int       `json:"satisfaction_rating,omitempty"`
	SatisfactionComment *string    `json:"satisfaction_comment,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
	ClosedAt            *time.Time `json:"closed_at,omitempty"`
}

// NewTicketResponse maps a domain ticket.
func NewTicketResponse(t *domain.Ticket) TicketResponse {
	return TicketResponse{
		ID:                  t.ID,
		ReferenceCode:       t.ReferenceCode,
		BrandID:             t.BrandID,
		BrandName:           t.BrandName,
		OwnerID:             t.OwnerID,
		OwnerName:           t.OwnerName,
		Title:               t.Title,
		Description:         t.Description,
		Category:            t.Category,
		Urgency:             string(t.Urgency),
		Channel:             string(t.Channel),
		Status:              string(t.Status),
		SatisfactionRating:  t.SatisfactionRating,
		SatisfactionComment: t.SatisfactionComment,
		CreatedAt:           t.CreatedAt,
		UpdatedAt:           t.UpdatedAt,
		ClosedAt:            t.ClosedAt,
	}
}

// NewTicketListResponse maps a slice of tickets.
func NewTicketListResponse(tickets []domain.Ticket) []TicketResponse {
	out := make([]TicketResponse, 0, len(tickets))
	for i := range tickets {
		out = append(out, NewTicketResponse(&tickets[i]))
	}
	return out
}

// TicketTrackingResponse is the public tracking view of a complaint. It
// omits owner contact details and the description since the endpoint is
// unauthenticated.
type TicketTrackingResponse struct {
	ReferenceCode string     `json:"reference_code"`
	BrandName     string     `json:"brand_name"`
	Title         string     `json:"title"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	ClosedAt      *time.Time `json:"closed_at,omitempty"`
}

// NewTicketTrackingResponse maps a ticket to its public tracking view.
func NewTicketTrackingResponse(t *domain.Ticket) TicketTrackingResponse {
	return TicketTrackingResponse{
		ReferenceCode: t.ReferenceCode,
		BrandName:     t.BrandName,
		Title:         t.Title,
		Status:        string(t.Status),
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
		ClosedAt:      t.ClosedAt,
	}
}

// VoiceAttachmentResponse is the wire shape of an uploaded voice note.
type VoiceAttachmentResponse struct {
	ID        int64     `json:"id"`
	TicketID  int64     `json:"ticket_id"`
	FileName  string    `json:"file_name"`
	MimeType  string    `json:"mime_type"`
	SizeBytes int64     `json:"size_bytes"`
	CreatedAt time.Time `json:"created_at"`
}

// NewVoiceAttachmentResponse maps a voice attachment.
func NewVoiceAttachmentResponse(a *domain.VoiceAttachment) VoiceAttachmentResponse {
	return VoiceAttachmentResponse{
		ID:        a.ID,
		TicketID:  a.TicketID,
		FileName:  a.FileName,
		MimeType:  a.MimeType,
		SizeBytes: a.SizeBytes,
		CreatedAt: a.CreatedAt,
	}
}

// NewVoiceAttachmentListResponse maps a slice of voice attachments.
func NewVoiceAttachmentListResponse(attachments []domain.VoiceAttachment) []VoiceAttachmentResponse {
	out := make([]VoiceAttachmentResponse, 0, len(attachments))
	for i := range attachments {
		out = append(out, NewVoiceAttachmentResponse(&attachments[i]))
	}
	return out
}
