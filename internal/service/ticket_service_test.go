package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/complainthub/complainthub/internal/domain"
	"github.com/complainthub/complainthub/internal/events"
	"github.com/complainthub/complainthub/internal/repository"
	apperrors "github.com/complainthub/complainthub/pkg/util"
)

func newTicketServiceForTest(tickets *mockTicketRepo, brands *mockBrandRepo, attachments *mockAttachmentRepo, dispatcher *capturingDispatcher) *TicketService {
	svc := NewTicketService(TicketDependencies{
		TicketRepo:     tickets,
		BrandRepo:      brands,
		AttachmentRepo: attachments,
		Dispatcher:     dispatcher,
	})
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}

func brandUser(id, brandID int64) *domain.User {
	return &domain.User{ID: id, Role: domain.RoleBrandUser, BrandID: &brandID}
}

func customer(id int64) *domain.User {
	return &domain.User{ID: id, Role: domain.RoleUser}
}

func errCode(t *testing.T, err error) string {
	t.Helper()
	assert.Error(t, err)
	return apperrors.ToDomainError(err).Code
}

// TestCreateTicketDefaults verifies a minimal request produces a new ticket
// with defaulted urgency and channel and a generated reference code.
func TestCreateTicketDefaults(t *testing.T) {
	tickets := new(mockTicketRepo)
	brands := new(mockBrandRepo)
	dispatcher := &capturingDispatcher{}
	svc := newTicketServiceForTest(tickets, brands, new(mockAttachmentRepo), dispatcher)

	brands.On("GetByID", mock.Anything, int64(7)).Return(&domain.Brand{ID: 7, Name: "Acme"}, nil)
	tickets.On("Create", mock.Anything, mock.AnythingOfType("*domain.Ticket")).Return(nil)

	ticket, err := svc.CreateTicket(context.Background(), customer(3), TicketCreateInput{
		BrandID:     7,
		Title:       "Broken screen",
		Description: "Arrived cracked",
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.TicketStatusNew, ticket.Status)
	assert.Equal(t, domain.TicketUrgencyMedium, ticket.Urgency)
	assert.Equal(t, domain.TicketChannelWeb, ticket.Channel)
	assert.Equal(t, "Acme", ticket.BrandName)
	assert.True(t, strings.HasPrefix(ticket.ReferenceCode, "CMP-"))
	assert.Len(t, dispatcher.published(events.EventTicketCreated), 1)
	tickets.AssertExpectations(t)
}

func TestCreateTicketRequiresTitleAndDescription(t *testing.T) {
	svc := newTicketServiceForTest(new(mockTicketRepo), new(mockBrandRepo), new(mockAttachmentRepo), &capturingDispatcher{})

	_, err := svc.CreateTicket(context.Background(), customer(3), TicketCreateInput{BrandID: 7, Title: "  "})
	assert.Equal(t, "VALIDATION_FAILED", errCode(t, err))
}

// TestUpdateStatusValidTransitions walks every legal lifecycle edge.
func TestUpdateStatusValidTransitions(t *testing.T) {
	cases := []struct {
		from domain.TicketStatus
		to   domain.TicketStatus
	}{
		{domain.TicketStatusNew, domain.TicketStatusInProgress},
		{domain.TicketStatusNew, domain.TicketStatusClosed},
		{domain.TicketStatusInProgress, domain.TicketStatusResolved},
		{domain.TicketStatusInProgress, domain.TicketStatusClosed},
		{domain.TicketStatusResolved, domain.TicketStatusInProgress},
		{domain.TicketStatusResolved, domain.TicketStatusClosed},
	}
	for _, tc := range cases {
		t.Run(string(tc.from)+"_to_"+string(tc.to), func(t *testing.T) {
			tickets := new(mockTicketRepo)
			dispatcher := &capturingDispatcher{}
			svc := newTicketServiceForTest(tickets, new(mockBrandRepo), new(mockAttachmentRepo), dispatcher)

			ticket := &domain.Ticket{ID: 1, BrandID: 7, OwnerID: 3, Status: tc.from}
			tickets.On("GetByID", mock.Anything, int64(1)).Return(ticket, nil)
			tickets.On("Update", mock.Anything, ticket).Return(nil)

			updated, err := svc.UpdateStatus(context.Background(), brandUser(10, 7), 1, tc.to)

			assert.NoError(t, err)
			assert.Equal(t, tc.to, updated.Status)
			if tc.to == domain.TicketStatusClosed {
				assert.NotNil(t, updated.ClosedAt)
			} else {
				assert.Nil(t, updated.ClosedAt)
			}
			assert.Len(t, dispatcher.published(events.EventTicketStatusChanged), 1)
		})
	}
}

// TestUpdateStatusRejectsIllegalTransitions checks the lifecycle table blocks
// skipping states and reopening closed tickets.
func TestUpdateStatusRejectsIllegalTransitions(t *testing.T) {
	cases := []struct {
		from domain.TicketStatus
		to   domain.TicketStatus
	}{
		{domain.TicketStatusNew, domain.TicketStatusResolved},
		{domain.TicketStatusClosed, domain.TicketStatusNew},
		{domain.TicketStatusClosed, domain.TicketStatusInProgress},
		{domain.TicketStatusClosed, domain.TicketStatusResolved},
		{domain.TicketStatusResolved, domain.TicketStatusNew},
	}
	for _, tc := range cases {
		t.Run(string(tc.from)+"_to_"+string(tc.to), func(t *testing.T) {
			tickets := new(mockTicketRepo)
			svc := newTicketServiceForTest(tickets, new(mockBrandRepo), new(mockAttachmentRepo), &capturingDispatcher{})

			ticket := &domain.Ticket{ID: 1, BrandID: 7, OwnerID: 3, Status: tc.from}
			tickets.On("GetByID", mock.Anything, int64(1)).Return(ticket, nil)

			_, err := svc.UpdateStatus(context.Background(), brandUser(10, 7), 1, tc.to)

			assert.Equal(t, "CONFLICT", errCode(t, err))
			tickets.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		})
	}
}

func TestUpdateStatusSameStatusIsNoOp(t *testing.T) {
	tickets := new(mockTicketRepo)
	dispatcher := &capturingDispatcher{}
	svc := newTicketServiceForTest(tickets, new(mockBrandRepo), new(mockAttachmentRepo), dispatcher)

	ticket := &domain.Ticket{ID: 1, BrandID: 7, OwnerID: 3, Status: domain.TicketStatusInProgress}
	tickets.On("GetByID", mock.Anything, int64(1)).Return(ticket, nil)

	updated, err := svc.UpdateStatus(context.Background(), brandUser(10, 7), 1, domain.TicketStatusInProgress)

	assert.NoError(t, err)
	assert.Equal(t, domain.TicketStatusInProgress, updated.Status)
	assert.Empty(t, dispatcher.published(events.EventTicketStatusChanged))
	tickets.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateStatusRequiresBrandOrAdminRole(t *testing.T) {
	svc := newTicketServiceForTest(new(mockTicketRepo), new(mockBrandRepo), new(mockAttachmentRepo), &capturingDispatcher{})

	_, err := svc.UpdateStatus(context.Background(), customer(3), 1, domain.TicketStatusInProgress)
	assert.Equal(t, "FORBIDDEN", errCode(t, err))
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	svc := newTicketServiceForTest(new(mockTicketRepo), new(mockBrandRepo), new(mockAttachmentRepo), &capturingDispatcher{})

	_, err := svc.UpdateStatus(context.Background(), brandUser(10, 7), 1, domain.TicketStatus("escalated"))
	assert.Equal(t, "VALIDATION_FAILED", errCode(t, err))
}

func TestUpdateStatusDeniesOtherBrand(t *testing.T) {
	tickets := new(mockTicketRepo)
	svc := newTicketServiceForTest(tickets, new(mockBrandRepo), new(mockAttachmentRepo), &capturingDispatcher{})

	ticket := &domain.Ticket{ID: 1, BrandID: 7, OwnerID: 3, Status: domain.TicketStatusNew}
	tickets.On("GetByID", mock.Anything, int64(1)).Return(ticket, nil)

	_, err := svc.UpdateStatus(context.Background(), brandUser(10, 99), 1, domain.TicketStatusInProgress)
	assert.Equal(t, "FORBIDDEN", errCode(t, err))
}

// TestRateTicket covers the rating rules: owner only, resolved only, range
// 1..5, exactly once.
func TestRateTicket(t *testing.T) {
	t.Run("owner rates resolved ticket", func(t *testing.T) {
		tickets := new(mockTicketRepo)
		dispatcher := &capturingDispatcher{}
		svc := newTicketServiceForTest(tickets, new(mockBrandRepo), new(mockAttachmentRepo), dispatcher)

		ticket := &domain.Ticket{ID: 1, BrandID: 7, OwnerID: 3, Status: domain.TicketStatusResolved}
		tickets.On("GetByID", mock.Anything, int64(1)).Return(ticket, nil)
		tickets.On("Update", mock.Anything, ticket).Return(nil)

		rated, err := svc.RateTicket(context.Background(), customer(3), 1, 4, "  quick fix  ")

		assert.NoError(t, err)
		assert.Equal(t, 4, *rated.SatisfactionRating)
		assert.Equal(t, "quick fix", *rated.SatisfactionComment)
		assert.Len(t, dispatcher.published(events.EventTicketRated), 1)
	})

	t.Run("rating out of range", func(t *testing.T) {
		svc := newTicketServiceForTest(new(mockTicketRepo), new(mockBrandRepo), new(mockAttachmentRepo), &capturingDispatcher{})

		_, err := svc.RateTicket(context.Background(), customer(3), 1, 0, "")
		assert.Equal(t, "VALIDATION_FAILED", errCode(t, err))

		_, err = svc.RateTicket(context.Background(), customer(3), 1, 6, "")
		assert.Equal(t, "VALIDATION_FAILED", errCode(t, err))
	})

	t.Run("only the owner may rate", func(t *testing.T) {
		tickets := new(mockTicketRepo)
		svc := newTicketServiceForTest(tickets, new(mockBrandRepo), new(mockAttachmentRepo), &capturingDispatcher{})

		ticket := &domain.Ticket{ID: 1, BrandID: 7, OwnerID: 3, Status: domain.TicketStatusResolved}
		tickets.On("GetByID", mock.Anything, int64(1)).Return(ticket, nil)

		_, err := svc.RateTicket(context.Background(), customer(4), 1, 5, "")
		assert.Equal(t, "FORBIDDEN", errCode(t, err))
	})

	t.Run("unresolved ticket cannot be rated", func(t *testing.T) {
		tickets := new(mockTicketRepo)
		svc := newTicketServiceForTest(tickets, new(mockBrandRepo), new(mockAttachmentRepo), &capturingDispatcher{})

		ticket := &domain.Ticket{ID: 1, BrandID: 7, OwnerID: 3, Status: domain.TicketStatusInProgress}
		tickets.On("GetByID", mock.Anything, int64(1)).Return(ticket, nil)

		_, err := svc.RateTicket(context.Background(), customer(3), 1, 5, "")
		assert.Equal(t, "CONFLICT", errCode(t, err))
	})

	t.Run("second rating is rejected", func(t *testing.T) {
		tickets := new(mockTicketRepo)
		svc := newTicketServiceForTest(tickets, new(mockBrandRepo), new(mockAttachmentRepo), &capturingDispatcher{})

		existing := 5
		ticket := &domain.Ticket{ID: 1, BrandID: 7, OwnerID: 3, Status: domain.TicketStatusResolved, SatisfactionRating: &existing}
		tickets.On("GetByID", mock.Anything, int64(1)).Return(ticket, nil)

		_, err := svc.RateTicket(context.Background(), customer(3), 1, 3, "")
		assert.Equal(t, "CONFLICT", errCode(t, err))
		tickets.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

// TestTrackByReference covers the public status lookup: the code is
// normalized before the query and a miss maps to not-found.
func TestTrackByReference(t *testing.T) {
	t.Run("found after normalization", func(t *testing.T) {
		tickets := new(mockTicketRepo)
		svc := newTicketServiceForTest(tickets, new(mockBrandRepo), new(mockAttachmentRepo), &capturingDispatcher{})

		tickets.On("GetByReferenceCode", mock.Anything, "CMP-AB12CD34").
			Return(&domain.Ticket{ID: 1, ReferenceCode: "CMP-AB12CD34", Status: domain.TicketStatusInProgress}, nil)

		ticket, err := svc.TrackByReference(context.Background(), "  cmp-ab12cd34 ")
		assert.NoError(t, err)
		assert.Equal(t, "CMP-AB12CD34", ticket.ReferenceCode)
	})

	t.Run("unknown code is not found", func(t *testing.T) {
		tickets := new(mockTicketRepo)
		svc := newTicketServiceForTest(tickets, new(mockBrandRepo), new(mockAttachmentRepo), &capturingDispatcher{})

		tickets.On("GetByReferenceCode", mock.Anything, "CMP-MISSING1").Return(nil, pgx.ErrNoRows)

		_, err := svc.TrackByReference(context.Background(), "CMP-MISSING1")
		assert.Equal(t, "NOT_FOUND", errCode(t, err))
	})

	t.Run("blank code is rejected", func(t *testing.T) {
		svc := newTicketServiceForTest(new(mockTicketRepo), new(mockBrandRepo), new(mockAttachmentRepo), &capturingDispatcher{})

		_, err := svc.TrackByReference(context.Background(), "   ")
		assert.Equal(t, "VALIDATION_FAILED", errCode(t, err))
	})
}

// TestAttachVoiceNoteDeniedForStranger: visibility is checked before any
// attachment row is written.
func TestAttachVoiceNoteDeniedForStranger(t *testing.T) {
	tickets := new(mockTicketRepo)
	attachments := new(mockAttachmentRepo)
	svc := newTicketServiceForTest(tickets, new(mockBrandRepo), attachments, &capturingDispatcher{})

	tickets.On("GetByID", mock.Anything, int64(1)).
		Return(&domain.Ticket{ID: 1, BrandID: 7, OwnerID: 3, Status: domain.TicketStatusNew}, nil)

	_, err := svc.AttachVoiceNote(context.Background(), customer(99), 1, VoiceNoteInput{FileName: "note.webm"})

	assert.Equal(t, "FORBIDDEN", errCode(t, err))
	attachments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// TestListTicketsScoping verifies the DB-side narrowing per role.
func TestListTicketsScoping(t *testing.T) {
	t.Run("nil actor returns empty", func(t *testing.T) {
		svc := newTicketServiceForTest(new(mockTicketRepo), new(mockBrandRepo), new(mockAttachmentRepo), &capturingDispatcher{})

		tickets, err := svc.ListTickets(context.Background(), nil, repository.TicketFilter{})
		assert.NoError(t, err)
		assert.Empty(t, tickets)
	})

	t.Run("brand user without brand returns empty", func(t *testing.T) {
		svc := newTicketServiceForTest(new(mockTicketRepo), new(mockBrandRepo), new(mockAttachmentRepo), &capturingDispatcher{})

		actor := &domain.User{ID: 10, Role: domain.RoleBrandUser}
		tickets, err := svc.ListTickets(context.Background(), actor, repository.TicketFilter{})
		assert.NoError(t, err)
		assert.Empty(t, tickets)
	})

	t.Run("customer is narrowed to own tickets", func(t *testing.T) {
		ticketRepo := new(mockTicketRepo)
		svc := newTicketServiceForTest(ticketRepo, new(mockBrandRepo), new(mockAttachmentRepo), &capturingDispatcher{})

		ticketRepo.On("ListWithFilter", mock.Anything, mock.MatchedBy(func(f repository.TicketFilter) bool {
			return f.OwnerID != nil && *f.OwnerID == 3
		})).Return([]domain.Ticket{{ID: 1, OwnerID: 3}}, nil)

		tickets, err := svc.ListTickets(context.Background(), customer(3), repository.TicketFilter{})
		assert.NoError(t, err)
		assert.Len(t, tickets, 1)
	})
}
