package domain

import "time"

// Brand is a tenant organization receiving and resolving complaints.
type Brand struct {
	ID           int64
	Name         string
	SupportEmail string
	Industry     string
	LogoURL      string
	ContactInfo  string

	// CreditBalance is consumed by unresolved-complaint fees. It may go
	// negative: the fee is owed regardless of balance.
	CreditBalance float64

	CreatedAt time.Time
	UpdatedAt time.Time
}
