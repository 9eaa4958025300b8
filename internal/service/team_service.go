package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/complainthub/complainthub/internal/config"
	"github.com/complainthub/complainthub/internal/domain"
	"github.com/complainthub/complainthub/internal/events"
	"github.com/complainthub/complainthub/internal/repository"
	apperrors "github.com/complainthub/complainthub/pkg/util"
)

// TeamService manages brand team invitations and token-based acceptance.
type TeamService struct {
	invitations repository.InvitationRepository
	authService *AuthService
	dispatcher  events.Dispatcher
	ttl         time.Duration
	now         func() time.Time
}

// NewTeamService constructs the service.
func NewTeamService(invitations repository.InvitationRepository, authService *AuthService, dispatcher events.Dispatcher, cfg config.AuthConfig) *TeamService {
	ttl := time.Duration(cfg.InvitationTTLHours) * time.Hour
	if ttl <= 0 {
		ttl = 72 * time.Hour
	}
	return &TeamService{
		invitations: invitations,
		authService: authService,
		dispatcher:  dispatcher,
		ttl:         ttl,
		now:         time.Now,
	}
}

// Invite creates an invitation for a brand team member.
func (s *TeamService) Invite(ctx context.Context, actor *domain.User, brandID int64, email string) (*domain.Invitation, error) {
	if err := requireBrandAccess(actor, brandID); err != nil {
		return nil, err
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, apperrors.NewValidationError("valid email required", nil)
	}
	inv := &domain.Invitation{
		BrandID:   brandID,
		Email:     email,
		Token:     uuid.NewString(),
		ExpiresAt: s.now().Add(s.ttl),
	}
	if err := s.invitations.Create(ctx, inv); err != nil {
		return nil, apperrors.MapError(err)
	}
	return inv, nil
}

// ListInvitations returns a brand's pending and accepted invitations.
func (s *TeamService) ListInvitations(ctx context.Context, actor *domain.User, brandID int64) ([]domain.Invitation, error) {
	if err := requireBrandAccess(actor, brandID); err != nil {
		return nil, err
	}
	invitations, err := s.invitations.ListByBrand(ctx, brandID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if invitations == nil {
		invitations = []domain.Invitation{}
	}
	return invitations, nil
}

// RevokeInvitation deletes a pending invitation.
func (s *TeamService) RevokeInvitation(ctx context.Context, actor *domain.User, brandID, invitationID int64) error {
	if err := requireBrandAccess(actor, brandID); err != nil {
		return err
	}
	if err := s.invitations.Delete(ctx, brandID, invitationID); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// InvitationByToken resolves a public invitation token.
func (s *TeamService) InvitationByToken(ctx context.Context, token string) (*domain.Invitation, error) {
	inv, err := s.invitations.GetByToken(ctx, token)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return inv, nil
}

// Accept redeems an invitation token, creating a brand_user account bound to
// the inviting brand.
func (s *TeamService) Accept(ctx context.Context, token string, input SignupInput) (*domain.User, error) {
	inv, err := s.invitations.GetByToken(ctx, token)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if inv.AcceptedAt != nil {
		return nil, apperrors.NewConflict("invitation already accepted", nil)
	}
	if inv.Expired(s.now()) {
		return nil, apperrors.NewConflict("invitation expired", nil)
	}
	if input.Email == "" {
		input.Email = inv.Email
	}

	user, err := s.authService.CreateBrandUser(ctx, inv.BrandID, input)
	if err != nil {
		return nil, err
	}
	if err := s.invitations.MarkAccepted(ctx, inv.ID, s.now()); err != nil {
		return nil, apperrors.MapError(err)
	}
	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventInvitationAccepted,
			BrandID:   inv.BrandID,
			Actor:     userActor(user),
			Timestamp: s.now(),
			Payload: events.InvitationAcceptedPayload{
				BrandID: inv.BrandID,
				Email:   user.Email,
			},
		})
	}
	return user, nil
}
