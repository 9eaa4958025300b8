package domain

import "time"

// Invitation lets a brand add a team member. Acceptance via the token creates
// a brand_user account bound to the inviting brand.
type Invitation struct {
	ID         int64
	BrandID    int64
	Email      string
	Token      string
	ExpiresAt  time.Time
	AcceptedAt *time.Time
	CreatedAt  time.Time
}

// Expired reports whether the invitation can no longer be accepted.
func (i *Invitation) Expired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}
