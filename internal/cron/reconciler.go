package cron

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"shopgate/internal/models"
	"shopgate/internal/payment"
	"shopgate/internal/pkg/utils"
)

// AttemptSource is the slice of the attempt repository the sweep needs.
type AttemptSource interface {
	ListPending(olderThan time.Duration, limit int) ([]models.PaymentAttempt, error)
	MarkPaid(trackID, refNumber, cardNumber string) error
	MarkFailed(trackID string) error
}

// Reconciler periodically re-verifies stale pending attempts. A gateway can
// confirm a charge while the callback never reaches us (closed tab, failed
// settlement call); the sweep closes that window.
type Reconciler struct {
	cron       *cron.Cron
	attempts   AttemptSource
	payments   payment.Verifier
	orders     payment.Settler
	logger     *zap.Logger
	staleAfter time.Duration
	batchSize  int
}

// NewReconciler creates the sweep. orders may be nil when no backend
// settlement is configured.
func NewReconciler(attempts AttemptSource, payments payment.Verifier, orders payment.Settler, logger *zap.Logger) *Reconciler {
	return &Reconciler{
		cron:       cron.New(cron.WithSeconds()),
		attempts:   attempts,
		payments:   payments,
		orders:     orders,
		logger:     logger,
		staleAfter: 15 * time.Minute,
		batchSize:  50,
	}
}

// Start registers and starts the sweep, every 10 minutes.
func (r *Reconciler) Start() {
	r.cron.AddFunc("0 */10 * * * *", func() {
		r.logger.Debug("Running: payment reconciliation sweep")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		r.RunOnce(ctx)
	})
	r.cron.Start()
}

// Stop stops the scheduler; the returned context is done when running jobs
// have finished.
func (r *Reconciler) Stop() context.Context {
	return r.cron.Stop()
}

// RunOnce sweeps one batch of stale pending attempts.
func (r *Reconciler) RunOnce(ctx context.Context) {
	pending, err := r.attempts.ListPending(r.staleAfter, r.batchSize)
	if err != nil {
		r.logger.Error("failed to list pending attempts", zap.Error(err))
		return
	}

	for _, attempt := range pending {
		vr := r.payments.VerifyIntent(ctx, payment.GatewayID(attempt.Gateway), attempt.TrackID)
		if !vr.Success {
			// A definitive gateway rejection closes the attempt; transport
			// trouble leaves it for the next sweep.
			if vr.Kind == payment.FailureRemoteRejected || vr.Kind == payment.FailureProviderAmbiguous {
				if err := r.attempts.MarkFailed(attempt.TrackID); err != nil {
					r.logger.Error("failed to close rejected attempt",
						zap.String("track_id", attempt.TrackID), zap.Error(err))
				}
			}
			continue
		}

		if r.orders != nil {
			if st, err := r.orders.SettlePayment(ctx, attempt.TrackID, attempt.OrderNumber); err != nil {
				r.logger.Warn("settlement failed during reconciliation",
					zap.String("track_id", attempt.TrackID), zap.Error(err))
			} else if !st.Success {
				r.logger.Warn("order backend rejected reconciled settlement",
					zap.String("track_id", attempt.TrackID), zap.String("error", st.Error))
			}
		}

		if err := r.attempts.MarkPaid(attempt.TrackID, vr.RefNumber, utils.MaskCardNumber(vr.CardNumber)); err != nil {
			r.logger.Error("failed to settle attempt",
				zap.String("track_id", attempt.TrackID), zap.Error(err))
			continue
		}
		r.logger.Info("reconciled stale payment",
			zap.String("gateway", attempt.Gateway),
			zap.String("track_id", attempt.TrackID),
			zap.String("order_number", attempt.OrderNumber))
	}
}
