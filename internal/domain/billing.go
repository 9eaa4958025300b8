package domain

import "time"

// BillingEntryType distinguishes ledger entry kinds.
type BillingEntryType string

const (
	BillingEntryCharge BillingEntryType = "charge"
	BillingEntryTopUp  BillingEntryType = "top_up"
)

// BillingEntry is an immutable credit ledger record for a brand. Charges carry
// a negative amount and reference the ticket that triggered them.
type BillingEntry struct {
	ID          int64
	BrandID     int64
	TicketID    *int64
	Type        BillingEntryType
	Amount      float64
	Description string
	CreatedAt   time.Time
}
