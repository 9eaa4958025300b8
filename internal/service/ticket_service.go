package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/complainthub/complainthub/internal/domain"
	"github.com/complainthub/complainthub/internal/events"
	"github.com/complainthub/complainthub/internal/repository"
	apperrors "github.com/complainthub/complainthub/pkg/util"
)

// allowedTransitions is the explicit lifecycle table. The source UI allowed
// any transition; illegal ones are now rejected. Resolved tickets may be
// reopened, closed is terminal.
var allowedTransitions = map[domain.TicketStatus][]domain.TicketStatus{
	domain.TicketStatusNew:        {domain.TicketStatusInProgress, domain.TicketStatusClosed},
	domain.TicketStatusInProgress: {domain.TicketStatusResolved, domain.TicketStatusClosed},
	domain.TicketStatusResolved:   {domain.TicketStatusInProgress, domain.TicketStatusClosed},
	domain.TicketStatusClosed:     {},
}

func isValidTransition(current, next domain.TicketStatus) bool {
	for _, candidate := range allowedTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}

// TicketService coordinates the complaint lifecycle.
type TicketService struct {
	tickets     repository.TicketRepository
	brands      repository.BrandRepository
	attachments repository.AttachmentRepository
	dispatcher  events.Dispatcher
	now         func() time.Time
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	TicketRepo     repository.TicketRepository
	BrandRepo      repository.BrandRepository
	AttachmentRepo repository.AttachmentRepository
	Dispatcher     events.Dispatcher
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	BrandID     int64
	Title       string
	Description string
	Category    string
	Urgency     domain.TicketUrgency
	Channel     domain.TicketChannel
}

// VoiceNoteInput defines voice attachment metadata.
type VoiceNoteInput struct {
	FileName   string
	MimeType   string
	SizeBytes  int64
	StorageKey string
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:     deps.TicketRepo,
		brands:      deps.BrandRepo,
		attachments: deps.AttachmentRepo,
		dispatcher:  deps.Dispatcher,
		now:         time.Now,
	}
}

// CreateTicket files a new complaint for a customer against a brand.
func (s *TicketService) CreateTicket(ctx context.Context, owner *domain.User, input TicketCreateInput) (*domain.Ticket, error) {
	if owner == nil {
		return nil, apperrors.NewUnauthorized("user required")
	}
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Description) == "" {
		return nil, apperrors.NewValidationError("title and description required", nil)
	}
	brand, err := s.brands.GetByID(ctx, input.BrandID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	ticket := &domain.Ticket{
		ReferenceCode: generateReferenceCode(),
		BrandID:       brand.ID,
		BrandName:     brand.Name,
		OwnerID:       owner.ID,
		OwnerName:     owner.FullName,
		OwnerEmail:    owner.Email,
		OwnerPhone:    owner.Phone,
		Title:         strings.TrimSpace(input.Title),
		Description:   strings.TrimSpace(input.Description),
		Category:      input.Category,
		Urgency:       input.Urgency,
		Channel:       input.Channel,
		Status:        domain.TicketStatusNew,
	}
	if ticket.Urgency == "" {
		ticket.Urgency = domain.TicketUrgencyMedium
	}
	if ticket.Channel == "" {
		ticket.Channel = domain.TicketChannelWeb
	}

	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		BrandID:  ticket.BrandID,
		Actor:    userActor(owner),
		Payload: events.TicketCreatedPayload{
			BrandID:  ticket.BrandID,
			Title:    ticket.Title,
			Category: ticket.Category,
			Urgency:  ticket.Urgency,
			Channel:  ticket.Channel,
		},
	})
	return ticket, nil
}

// GetTicket fetches a ticket the actor is allowed to see.
func (s *TicketService) GetTicket(ctx context.Context, actor *domain.User, ticketID int64) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if !canAccessTicket(actor, ticket) {
		return nil, apperrors.NewForbidden("access denied")
	}
	return ticket, nil
}

// TrackByReference looks up a complaint by its public reference code. The
// endpoint is unauthenticated; callers only learn the code they already hold.
func (s *TicketService) TrackByReference(ctx context.Context, code string) (*domain.Ticket, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, apperrors.NewValidationError("reference code required", nil)
	}
	ticket, err := s.tickets.GetByReferenceCode(ctx, code)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return ticket, nil
}

// ListTickets returns tickets visible to the actor, narrowed DB-side by role.
func (s *TicketService) ListTickets(ctx context.Context, actor *domain.User, filter repository.TicketFilter) ([]domain.Ticket, error) {
	if actor == nil {
		return []domain.Ticket{}, nil
	}
	switch actor.Role {
	case domain.RoleAdmin:
		// no scoping
	case domain.RoleBrandUser:
		if actor.BrandID == nil {
			return []domain.Ticket{}, nil
		}
		filter.BrandID = actor.BrandID
	case domain.RoleUser:
		filter.OwnerID = &actor.ID
	default:
		return []domain.Ticket{}, nil
	}
	tickets, err := s.tickets.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if tickets == nil {
		tickets = []domain.Ticket{}
	}
	return tickets, nil
}

// UpdateStatus transitions a ticket through the lifecycle table. The row is
// re-read after the write so callers always see the authoritative state.
func (s *TicketService) UpdateStatus(ctx context.Context, actor *domain.User, ticketID int64, newStatus domain.TicketStatus) (*domain.Ticket, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("user required")
	}
	if actor.Role != domain.RoleAdmin && actor.Role != domain.RoleBrandUser {
		return nil, apperrors.NewForbidden("brand or admin role required")
	}
	if !newStatus.Valid() {
		return nil, apperrors.NewValidationError("unknown status", map[string]any{"status": newStatus})
	}
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if !canAccessTicket(actor, ticket) {
		return nil, apperrors.NewForbidden("access denied")
	}
	if ticket.Status == newStatus {
		return ticket, nil
	}
	if !isValidTransition(ticket.Status, newStatus) {
		return nil, apperrors.NewConflict("invalid status transition", map[string]any{
			"from": ticket.Status,
			"to":   newStatus,
		})
	}

	oldStatus := ticket.Status
	ticket.Status = newStatus
	if newStatus == domain.TicketStatusClosed {
		now := s.now()
		ticket.ClosedAt = &now
	} else if ticket.ClosedAt != nil {
		ticket.ClosedAt = nil
	}
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}

	updated, err := s.tickets.GetByID(ctx, ticket.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketStatusChanged,
		TicketID: updated.ID,
		BrandID:  updated.BrandID,
		Actor:    userActor(actor),
		Payload: events.TicketStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: updated.Status,
		},
	})
	return updated, nil
}

// RateTicket records the owner's satisfaction rating: only after resolution,
// only by the owner, exactly once.
func (s *TicketService) RateTicket(ctx context.Context, actor *domain.User, ticketID int64, rating int, comment string) (*domain.Ticket, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("user required")
	}
	if rating < 1 || rating > 5 {
		return nil, apperrors.NewValidationError("rating must be between 1 and 5", nil)
	}
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if ticket.OwnerID != actor.ID {
		return nil, apperrors.NewForbidden("only the complaint owner can rate it")
	}
	if ticket.Status != domain.TicketStatusResolved {
		return nil, apperrors.NewConflict("ticket must be resolved before rating", nil)
	}
	if ticket.SatisfactionRating != nil {
		return nil, apperrors.NewConflict("ticket already rated", nil)
	}

	ticket.SatisfactionRating = &rating
	if trimmed := strings.TrimSpace(comment); trimmed != "" {
		ticket.SatisfactionComment = &trimmed
	}
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketRated,
		TicketID: ticket.ID,
		BrandID:  ticket.BrandID,
		Actor:    userActor(actor),
		Payload: events.TicketRatedPayload{
			Rating:  rating,
			Comment: comment,
		},
	})
	return ticket, nil
}

// AttachVoiceNote records an uploaded voice note against a ticket.
func (s *TicketService) AttachVoiceNote(ctx context.Context, actor *domain.User, ticketID int64, input VoiceNoteInput) (*domain.VoiceAttachment, error) {
	ticket, err := s.GetTicket(ctx, actor, ticketID)
	if err != nil {
		return nil, err
	}
	att := &domain.VoiceAttachment{
		TicketID:   ticket.ID,
		FileName:   input.FileName,
		MimeType:   input.MimeType,
		SizeBytes:  input.SizeBytes,
		StorageKey: input.StorageKey,
	}
	if err := s.attachments.Create(ctx, att); err != nil {
		return nil, apperrors.MapError(err)
	}
	return att, nil
}

// ListVoiceNotes returns voice attachments for a visible ticket.
func (s *TicketService) ListVoiceNotes(ctx context.Context, actor *domain.User, ticketID int64) ([]domain.VoiceAttachment, error) {
	ticket, err := s.GetTicket(ctx, actor, ticketID)
	if err != nil {
		return nil, err
	}
	notes, err := s.attachments.ListByTicket(ctx, ticket.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return notes, nil
}

func canAccessTicket(actor *domain.User, ticket *domain.Ticket) bool {
	if actor == nil {
		return false
	}
	switch actor.Role {
	case domain.RoleAdmin:
		return true
	case domain.RoleBrandUser:
		return actor.BrandID != nil && *actor.BrandID == ticket.BrandID
	case domain.RoleUser:
		return actor.ID == ticket.OwnerID
	}
	return false
}

func generateReferenceCode() string {
	return "CMP-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func userActor(user *domain.User) events.Actor {
	if user == nil {
		return events.Actor{System: true}
	}
	id := user.ID
	role := user.Role
	return events.Actor{UserID: &id, Role: &role}
}

func systemActor() events.Actor {
	return events.Actor{System: true}
}
