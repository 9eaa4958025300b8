package dto

import (
	"time"

	"github.com/complainthub/complainthub/internal/domain"
)

// BrandRequest is the payload for brand create and update.
type BrandRequest struct {
	Name         string `json:"name"`
	SupportEmail string `json:"support_email"`
	Industry     string `json:"industry"`
	LogoURL      string `json:"logo_url"`
	ContactInfo  string `json:"contact_info"`
}

// BrandResponse is the wire shape of a brand.
type BrandResponse struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	SupportEmail  string    `json:"support_email"`
	Industry      string    `json:"industry"`
	LogoURL       string    `json:"logo_url,omitempty"`
	ContactInfo   string    `json:"contact_info,omitempty"`
	CreditBalance float64   `json:"credit_balance"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewBrandResponse maps a domain brand.
func NewBrandResponse(b *domain.Brand) BrandResponse {
	return BrandResponse{
		ID:            b.ID,
		Name:          b.Name,
		SupportEmail:  b.SupportEmail,
		Industry:      b.Industry,
		LogoURL:       b.LogoURL,
		ContactInfo:   b.ContactInfo,
		CreditBalance: b.CreditBalance,
		CreatedAt:     b.CreatedAt,
	}
}

// NewBrandListResponse maps a slice of brands.
func NewBrandListResponse(brands []domain.Brand) []BrandResponse {
	out := make([]BrandResponse, 0, len(brands))
	for i := range brands {
		out = append(out, NewBrandResponse(&brands[i]))
	}
	return out
}

// TopUpRequest carries a credit top up amount.
type TopUpRequest struct {
	Amount float64 `json:"amount"`
}

// BillingEntryResponse is the wire shape of a ledger record.
type BillingEntryResponse struct {
	ID          int64     `json:"id"`
	BrandID     int64     `json:"brand_id"`
	TicketID    *int64    `json:"ticket_id,omitempty"`
	Type        string    `json:"type"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewBillingEntryResponse maps a ledger entry.
func NewBillingEntryResponse(e *domain.BillingEntry) BillingEntryResponse {
	return BillingEntryResponse{
		ID:          e.ID,
		BrandID:     e.BrandID,
		TicketID:    e.TicketID,
		Type:        string(e.Type),
		Amount:      e.Amount,
		Description: e.Description,
		CreatedAt:   e.CreatedAt,
	}
}

// NewBillingEntryListResponse maps a slice of ledger entries.
func NewBillingEntryListResponse(entries []domain.BillingEntry) []BillingEntryResponse {
	out := make([]BillingEntryResponse, 0, len(entries))
	for i := range entries {
		out = append(out, NewBillingEntryResponse(&entries[i]))
	}
	return out
}
