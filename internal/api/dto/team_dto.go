package dto

import (
	"time"

	"github.com/complainthub/complainthub/internal/domain"
)

// InviteRequest asks to invite a team member by email.
type InviteRequest struct {
	Email string `json:"email"`
}

// AcceptInvitationRequest completes invitation acceptance with account
// details.
type AcceptInvitationRequest struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// InvitationResponse is the wire shape of an invitation. The token is only
// exposed to the inviting brand.
type InvitationResponse struct {
	ID         int64      `json:"id"`
	BrandID    int64      `json:"brand_id"`
	Email      string     `json:"email"`
	Token      string     `json:"token,omitempty"`
	ExpiresAt  time.Time  `json:"expires_at"`
	AcceptedAt *time.Time `json:"accepted_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// NewInvitationResponse maps an invitation, including its token.
func NewInvitationResponse(inv *domain.Invitation) InvitationResponse {
	return InvitationResponse{
		ID:         inv.ID,
		BrandID:    inv.BrandID,
		Email:      inv.Email,
		Token:      inv.Token,
		ExpiresAt:  inv.ExpiresAt,
		AcceptedAt: inv.AcceptedAt,
		CreatedAt:  inv.CreatedAt,
	}
}

// NewPublicInvitationResponse maps an invitation without the token, for the
// public lookup endpoint.
func NewPublicInvitationResponse(inv *domain.Invitation) InvitationResponse {
	out := NewInvitationResponse(inv)
	out.Token = ""
	return out
}

// NewInvitationListResponse maps a slice of invitations.
func NewInvitationListResponse(invitations []domain.Invitation) []InvitationResponse {
	out := make([]InvitationResponse, 0, len(invitations))
	for i := range invitations {
		out = append(out, NewInvitationResponse(&invitations[i]))
	}
	return out
}
