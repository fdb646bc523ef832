package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"profast/internal/service"
)

// ReconcileWorker periodically audits parcels marked Paid that carry no
// payment record. Such rows mean the status flag and the financial log have
// diverged; they are logged for manual repair, never auto-corrected.
type ReconcileWorker struct {
	paymentSvc *service.PaymentService
	interval   time.Duration
	batchSize  int
}

func NewReconcileWorker(paymentSvc *service.PaymentService) *ReconcileWorker {
	return &ReconcileWorker{
		paymentSvc: paymentSvc,
		interval:   time.Minute,
		batchSize:  20,
	}
}

func (w *ReconcileWorker) Start(ctx context.Context) {
	slog.Info("starting payment reconcile worker")
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("payment reconcile worker stopped")
			return
		case <-ticker.C:
			if err := w.audit(ctx); err != nil {
				slog.Error("reconcile pass failed", "error", err)
			}
		}
	}
}

func (w *ReconcileWorker) audit(ctx context.Context) error {
	parcels, err := w.paymentSvc.FindUnreconciled(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("find unreconciled parcels: %w", err)
	}

	for _, p := range parcels {
		slog.Warn("parcel marked Paid without a payment record",
			"parcel", p.ID, "tracking", p.TrackingID, "owner", p.CreatedBy)
	}

	return nil
}
