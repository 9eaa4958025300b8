package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/complainthub/complainthub/internal/service"
)

// BillingWorker runs the unresolved-fee sweep on a fixed interval.
type BillingWorker struct {
	billing  *service.BillingService
	logger   *zap.Logger
	interval time.Duration
}

// NewBillingWorker constructs the worker.
func NewBillingWorker(billing *service.BillingService, logger *zap.Logger, interval time.Duration) *BillingWorker {
	return &BillingWorker{billing: billing, logger: logger, interval: interval}
}

// Run blocks until ctx is cancelled, sweeping once at startup and then on
// every tick.
func (w *BillingWorker) Run(ctx context.Context) {
	w.logger.Info("billing worker started", zap.Duration("interval", w.interval))
	w.sweep(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("billing worker stopped")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *BillingWorker) sweep(ctx context.Context) {
	charged, err := w.billing.SweepUnresolvedFees(ctx)
	if err != nil {
		w.logger.Error("billing sweep failed", zap.Error(err))
		return
	}
	if charged > 0 {
		w.logger.Info("billing sweep completed", zap.Int("charged", charged))
	}
}
