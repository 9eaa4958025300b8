package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/complainthub/complainthub/internal/config"
	"github.com/complainthub/complainthub/internal/domain"
	"github.com/complainthub/complainthub/internal/events"
)

func newBillingServiceForTest(tickets *mockTicketRepo, brands *mockBrandRepo, ledger *mockBillingRepo, dispatcher *capturingDispatcher) *BillingService {
	svc := NewBillingService(tickets, brands, ledger, dispatcher, zap.NewNop(), config.BillingConfig{
		FeeAmount:             50,
		UnresolvedWindowHours: 24,
		LowBalanceThreshold:   100,
	})
	svc.now = func() time.Time { return time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC) }
	return svc
}

func overdueTicket(id, brandID int64) domain.Ticket {
	return domain.Ticket{
		ID:            id,
		ReferenceCode: "CMP-TEST0001",
		BrandID:       brandID,
		Status:        domain.TicketStatusNew,
	}
}

// TestSweepChargesOverdueTicket verifies the fee path: mark, debit, ledger
// entry, event.
func TestSweepChargesOverdueTicket(t *testing.T) {
	tickets := new(mockTicketRepo)
	brands := new(mockBrandRepo)
	ledger := new(mockBillingRepo)
	dispatcher := &capturingDispatcher{}
	svc := newBillingServiceForTest(tickets, brands, ledger, dispatcher)

	tickets.On("ListUnchargedUnresolvedBefore", mock.Anything, mock.AnythingOfType("time.Time")).
		Return([]domain.Ticket{overdueTicket(1, 7)}, nil)
	tickets.On("MarkFeeCharged", mock.Anything, int64(1), mock.AnythingOfType("time.Time")).Return(nil)
	brands.On("AdjustCredit", mock.Anything, int64(7), float64(-50)).Return(float64(450), nil)
	ledger.On("Create", mock.Anything, mock.MatchedBy(func(e *domain.BillingEntry) bool {
		return e.BrandID == 7 && e.Amount == -50 && e.Type == domain.BillingEntryCharge && e.TicketID != nil && *e.TicketID == 1
	})).Return(nil)

	charged, err := svc.SweepUnresolvedFees(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 1, charged)
	assert.Len(t, dispatcher.published(events.EventCreditCharged), 1)
	assert.Empty(t, dispatcher.published(events.EventLowBalance))
	tickets.AssertExpectations(t)
	brands.AssertExpectations(t)
	ledger.AssertExpectations(t)
}

// TestSweepLowBalanceEventFiresOnCrossing: the alert fires only when the
// charge moves the balance below the threshold, not when it was already
// below.
func TestSweepLowBalanceEventFiresOnCrossing(t *testing.T) {
	cases := []struct {
		name       string
		newBalance float64
		wantEvent  bool
	}{
		{"crosses threshold", 80, true},
		{"already below threshold", 30, false},
		{"stays above threshold", 200, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tickets := new(mockTicketRepo)
			brands := new(mockBrandRepo)
			ledger := new(mockBillingRepo)
			dispatcher := &capturingDispatcher{}
			svc := newBillingServiceForTest(tickets, brands, ledger, dispatcher)

			tickets.On("ListUnchargedUnresolvedBefore", mock.Anything, mock.AnythingOfType("time.Time")).
				Return([]domain.Ticket{overdueTicket(1, 7)}, nil)
			tickets.On("MarkFeeCharged", mock.Anything, int64(1), mock.AnythingOfType("time.Time")).Return(nil)
			brands.On("AdjustCredit", mock.Anything, int64(7), float64(-50)).Return(tc.newBalance, nil)
			ledger.On("Create", mock.Anything, mock.AnythingOfType("*domain.BillingEntry")).Return(nil)

			_, err := svc.SweepUnresolvedFees(context.Background())
			assert.NoError(t, err)

			if tc.wantEvent {
				assert.Len(t, dispatcher.published(events.EventLowBalance), 1)
			} else {
				assert.Empty(t, dispatcher.published(events.EventLowBalance))
			}
		})
	}
}

// TestSweepContinuesAfterFailure: one failing charge must not abort the rest
// of the batch.
func TestSweepContinuesAfterFailure(t *testing.T) {
	tickets := new(mockTicketRepo)
	brands := new(mockBrandRepo)
	ledger := new(mockBillingRepo)
	svc := newBillingServiceForTest(tickets, brands, ledger, &capturingDispatcher{})

	tickets.On("ListUnchargedUnresolvedBefore", mock.Anything, mock.AnythingOfType("time.Time")).
		Return([]domain.Ticket{overdueTicket(1, 7), overdueTicket(2, 8)}, nil)
	tickets.On("MarkFeeCharged", mock.Anything, int64(1), mock.AnythingOfType("time.Time")).
		Return(errors.New("row already claimed"))
	tickets.On("MarkFeeCharged", mock.Anything, int64(2), mock.AnythingOfType("time.Time")).Return(nil)
	brands.On("AdjustCredit", mock.Anything, int64(8), float64(-50)).Return(float64(500), nil)
	ledger.On("Create", mock.Anything, mock.AnythingOfType("*domain.BillingEntry")).Return(nil)

	charged, err := svc.SweepUnresolvedFees(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 1, charged)
	brands.AssertNotCalled(t, "AdjustCredit", mock.Anything, int64(7), mock.Anything)
}

// TestSweepMarksBeforeDebit: the conditional mark runs first so concurrent
// sweeps cannot double-charge.
func TestSweepMarksBeforeDebit(t *testing.T) {
	tickets := new(mockTicketRepo)
	brands := new(mockBrandRepo)
	ledger := new(mockBillingRepo)
	svc := newBillingServiceForTest(tickets, brands, ledger, &capturingDispatcher{})

	var order []string
	tickets.On("ListUnchargedUnresolvedBefore", mock.Anything, mock.AnythingOfType("time.Time")).
		Return([]domain.Ticket{overdueTicket(1, 7)}, nil)
	tickets.On("MarkFeeCharged", mock.Anything, int64(1), mock.AnythingOfType("time.Time")).
		Run(func(mock.Arguments) { order = append(order, "mark") }).Return(nil)
	brands.On("AdjustCredit", mock.Anything, int64(7), float64(-50)).
		Run(func(mock.Arguments) { order = append(order, "debit") }).Return(float64(500), nil)
	ledger.On("Create", mock.Anything, mock.AnythingOfType("*domain.BillingEntry")).Return(nil)

	_, err := svc.SweepUnresolvedFees(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, []string{"mark", "debit"}, order)
}

func TestTopUp(t *testing.T) {
	t.Run("positive amount credits the brand", func(t *testing.T) {
		brands := new(mockBrandRepo)
		ledger := new(mockBillingRepo)
		svc := newBillingServiceForTest(new(mockTicketRepo), brands, ledger, &capturingDispatcher{})

		brands.On("AdjustCredit", mock.Anything, int64(7), float64(250)).Return(float64(700), nil)
		ledger.On("Create", mock.Anything, mock.MatchedBy(func(e *domain.BillingEntry) bool {
			return e.Type == domain.BillingEntryTopUp && e.Amount == 250
		})).Return(nil)

		entry, err := svc.TopUp(context.Background(), brandUser(10, 7), 7, 250)
		assert.NoError(t, err)
		assert.Equal(t, float64(250), entry.Amount)
	})

	t.Run("non-positive amount is rejected", func(t *testing.T) {
		svc := newBillingServiceForTest(new(mockTicketRepo), new(mockBrandRepo), new(mockBillingRepo), &capturingDispatcher{})

		_, err := svc.TopUp(context.Background(), brandUser(10, 7), 7, 0)
		assert.Equal(t, "VALIDATION_FAILED", errCode(t, err))
	})

	t.Run("other brand is forbidden", func(t *testing.T) {
		svc := newBillingServiceForTest(new(mockTicketRepo), new(mockBrandRepo), new(mockBillingRepo), &capturingDispatcher{})

		_, err := svc.TopUp(context.Background(), brandUser(10, 99), 7, 100)
		assert.Equal(t, "FORBIDDEN", errCode(t, err))
	})
}
