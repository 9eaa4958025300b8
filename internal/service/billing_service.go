package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/complainthub/complainthub/internal/config"
	"github.com/complainthub/complainthub/internal/domain"
	"github.com/complainthub/complainthub/internal/events"
	"github.com/complainthub/complainthub/internal/repository"
	apperrors "github.com/complainthub/complainthub/pkg/util"
)

// BillingService applies the unresolved-complaint fee: a ticket still new or
// in-progress past the configured window costs its brand a one-time charge.
type BillingService struct {
	tickets    repository.TicketRepository
	brands     repository.BrandRepository
	ledger     repository.BillingRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.BillingConfig
	now        func() time.Time
}

// NewBillingService constructs the service.
func NewBillingService(tickets repository.TicketRepository, brands repository.BrandRepository, ledger repository.BillingRepository, dispatcher events.Dispatcher, logger *zap.Logger, cfg config.BillingConfig) *BillingService {
	return &BillingService{
		tickets:    tickets,
		brands:     brands,
		ledger:     ledger,
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
		now:        time.Now,
	}
}

// SweepUnresolvedFees charges every overdue uncharged ticket once and returns
// how many fees were applied. A failure on one ticket does not stop the rest.
func (s *BillingService) SweepUnresolvedFees(ctx context.Context) (int, error) {
	cutoff := s.now().Add(-s.cfg.UnresolvedWindow())
	overdue, err := s.tickets.ListUnchargedUnresolvedBefore(ctx, cutoff)
	if err != nil {
		return 0, apperrors.MapError(err)
	}

	charged := 0
	for i := range overdue {
		if err := s.chargeTicket(ctx, &overdue[i]); err != nil {
			s.logger.Error("fee charge failed",
				zap.Int64("ticket_id", overdue[i].ID),
				zap.Int64("brand_id", overdue[i].BrandID),
				zap.Error(err))
			continue
		}
		charged++
	}
	if charged > 0 {
		s.logger.Info("billing sweep applied fees", zap.Int("count", charged))
	}
	return charged, nil
}

func (s *BillingService) chargeTicket(ctx context.Context, ticket *domain.Ticket) error {
	now := s.now()
	// Mark first: MarkFeeCharged is conditional on fee_charged_at IS NULL, so
	// a concurrent sweep cannot double-charge the same ticket.
	if err := s.tickets.MarkFeeCharged(ctx, ticket.ID, now); err != nil {
		return err
	}

	balance, err := s.brands.AdjustCredit(ctx, ticket.BrandID, -s.cfg.FeeAmount)
	if err != nil {
		return err
	}

	ticketID := ticket.ID
	entry := &domain.BillingEntry{
		BrandID:     ticket.BrandID,
		TicketID:    &ticketID,
		Type:        domain.BillingEntryCharge,
		Amount:      -s.cfg.FeeAmount,
		Description: fmt.Sprintf("Unresolved complaint %s past %dh window", ticket.ReferenceCode, s.cfg.UnresolvedWindowHours),
	}
	if err := s.ledger.Create(ctx, entry); err != nil {
		return err
	}

	s.publish(ctx, events.Event{
		Type:     events.EventCreditCharged,
		TicketID: ticket.ID,
		BrandID:  ticket.BrandID,
		Actor:    systemActor(),
		Payload: events.CreditChargedPayload{
			Amount:     -s.cfg.FeeAmount,
			NewBalance: balance,
			Reason:     entry.Description,
		},
	})
	if balance < s.cfg.LowBalanceThreshold && balance+s.cfg.FeeAmount >= s.cfg.LowBalanceThreshold {
		s.publish(ctx, events.Event{
			Type:    events.EventLowBalance,
			BrandID: ticket.BrandID,
			Actor:   systemActor(),
			Payload: events.LowBalancePayload{
				Balance:   balance,
				Threshold: s.cfg.LowBalanceThreshold,
			},
		})
	}
	return nil
}

// TopUp credits a brand's balance and records the ledger entry.
func (s *BillingService) TopUp(ctx context.Context, actor *domain.User, brandID int64, amount float64) (*domain.BillingEntry, error) {
	if err := requireBrandAccess(actor, brandID); err != nil {
		return nil, err
	}
	if amount <= 0 {
		return nil, apperrors.NewValidationError("amount must be positive", nil)
	}
	if _, err := s.brands.AdjustCredit(ctx, brandID, amount); err != nil {
		return nil, apperrors.MapError(err)
	}
	entry := &domain.BillingEntry{
		BrandID:     brandID,
		Type:        domain.BillingEntryTopUp,
		Amount:      amount,
		Description: "Credit top up",
	}
	if err := s.ledger.Create(ctx, entry); err != nil {
		return nil, apperrors.MapError(err)
	}
	return entry, nil
}

// Entries lists a brand's ledger.
func (s *BillingService) Entries(ctx context.Context, actor *domain.User, brandID int64, limit int) ([]domain.BillingEntry, error) {
	if err := requireBrandAccess(actor, brandID); err != nil {
		return nil, err
	}
	entries, err := s.ledger.ListByBrand(ctx, brandID, limit)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if entries == nil {
		entries = []domain.BillingEntry{}
	}
	return entries, nil
}

// AllEntries lists the platform-wide ledger for admins.
func (s *BillingService) AllEntries(ctx context.Context, limit int) ([]domain.BillingEntry, error) {
	entries, err := s.ledger.ListAll(ctx, limit)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if entries == nil {
		entries = []domain.BillingEntry{}
	}
	return entries, nil
}

func (s *BillingService) publish(ctx context.Context, event events.Event) {
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
