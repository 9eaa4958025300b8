package service

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/complainthub/complainthub/internal/domain"
	"github.com/complainthub/complainthub/internal/events"
	"github.com/complainthub/complainthub/internal/repository"
)

type mockTicketRepo struct {
	mock.Mock
}

func (m *mockTicketRepo) Create(ctx context.Context, ticket *domain.Ticket) error {
	args := m.Called(ctx, ticket)
	return args.Error(0)
}

func (m *mockTicketRepo) Update(ctx context.Context, ticket *domain.Ticket) error {
	args := m.Called(ctx, ticket)
	return args.Error(0)
}

func (m *mockTicketRepo) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	args := m.Called(ctx, id)
	if t, ok := args.Get(0).(*domain.Ticket); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTicketRepo) GetByReferenceCode(ctx context.Context, code string) (*domain.Ticket, error) {
	args := m.Called(ctx, code)
	if t, ok := args.Get(0).(*domain.Ticket); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTicketRepo) ListWithFilter(ctx context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	args := m.Called(ctx, filter)
	if t, ok := args.Get(0).([]domain.Ticket); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTicketRepo) ListUnchargedUnresolvedBefore(ctx context.Context, cutoff time.Time) ([]domain.Ticket, error) {
	args := m.Called(ctx, cutoff)
	if t, ok := args.Get(0).([]domain.Ticket); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTicketRepo) MarkFeeCharged(ctx context.Context, id int64, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *mockTicketRepo) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockTicketRepo) CountResolved(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type mockBrandRepo struct {
	mock.Mock
}

func (m *mockBrandRepo) Create(ctx context.Context, brand *domain.Brand) error {
	args := m.Called(ctx, brand)
	return args.Error(0)
}

func (m *mockBrandRepo) Update(ctx context.Context, brand *domain.Brand) error {
	args := m.Called(ctx, brand)
	return args.Error(0)
}

func (m *mockBrandRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockBrandRepo) GetByID(ctx context.Context, id int64) (*domain.Brand, error) {
	args := m.Called(ctx, id)
	if b, ok := args.Get(0).(*domain.Brand); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBrandRepo) List(ctx context.Context) ([]domain.Brand, error) {
	args := m.Called(ctx)
	if b, ok := args.Get(0).([]domain.Brand); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBrandRepo) AdjustCredit(ctx context.Context, id int64, delta float64) (float64, error) {
	args := m.Called(ctx, id, delta)
	return args.Get(0).(float64), args.Error(1)
}

func (m *mockBrandRepo) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type mockAttachmentRepo struct {
	mock.Mock
}

func (m *mockAttachmentRepo) Create(ctx context.Context, att *domain.VoiceAttachment) error {
	args := m.Called(ctx, att)
	return args.Error(0)
}

func (m *mockAttachmentRepo) ListByTicket(ctx context.Context, ticketID int64) ([]domain.VoiceAttachment, error) {
	args := m.Called(ctx, ticketID)
	if a, ok := args.Get(0).([]domain.VoiceAttachment); ok {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockBillingRepo struct {
	mock.Mock
}

func (m *mockBillingRepo) Create(ctx context.Context, entry *domain.BillingEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *mockBillingRepo) ListByBrand(ctx context.Context, brandID int64, limit int) ([]domain.BillingEntry, error) {
	args := m.Called(ctx, brandID, limit)
	if e, ok := args.Get(0).([]domain.BillingEntry); ok {
		return e, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBillingRepo) ListAll(ctx context.Context, limit int) ([]domain.BillingEntry, error) {
	args := m.Called(ctx, limit)
	if e, ok := args.Get(0).([]domain.BillingEntry); ok {
		return e, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*domain.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if u, ok := args.Get(0).(*domain.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if u, ok := args.Get(0).([]domain.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) ListByBrand(ctx context.Context, brandID int64) ([]domain.User, error) {
	args := m.Called(ctx, brandID)
	if u, ok := args.Get(0).([]domain.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type mockInvitationRepo struct {
	mock.Mock
}

func (m *mockInvitationRepo) Create(ctx context.Context, inv *domain.Invitation) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

func (m *mockInvitationRepo) ListByBrand(ctx context.Context, brandID int64) ([]domain.Invitation, error) {
	args := m.Called(ctx, brandID)
	if i, ok := args.Get(0).([]domain.Invitation); ok {
		return i, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockInvitationRepo) GetByToken(ctx context.Context, token string) (*domain.Invitation, error) {
	args := m.Called(ctx, token)
	if i, ok := args.Get(0).(*domain.Invitation); ok {
		return i, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockInvitationRepo) Delete(ctx context.Context, brandID, id int64) error {
	args := m.Called(ctx, brandID, id)
	return args.Error(0)
}

func (m *mockInvitationRepo) MarkAccepted(ctx context.Context, id int64, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

// capturingDispatcher records every published event for assertions.
type capturingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *capturingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *capturingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *capturingDispatcher) published(eventType events.EventType) []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []events.Event
	for _, e := range d.events {
		if e.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}
