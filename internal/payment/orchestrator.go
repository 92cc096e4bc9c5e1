package payment

import (
	"context"
	"net/url"

	"go.uber.org/zap"
)

// Verifier is the slice of the gateway client the orchestrator needs.
type Verifier interface {
	VerifyIntent(ctx context.Context, id GatewayID, trackID string) VerificationResult
}

// Settlement is the order backend's answer to marking an order paid.
type Settlement struct {
	Success     bool
	OrderNumber string
	RefNumber   string
	CardNumber  string
	AlreadyPaid bool
	Error       string
}

// Settler marks the correlated order paid once the gateway confirms the
// charge.
type Settler interface {
	SettlePayment(ctx context.Context, trackID, orderNumber string) (Settlement, error)
}

// PendingOrderStore is the cart the orchestrator clears after a confirmed
// payment. Clearing is the only operation it needs.
type PendingOrderStore interface {
	ClearPendingOrder(ctx context.Context, orderNumber string) error
}

// State is the orchestrator's user-facing verdict. Succeeded and Failed are
// terminal; a retry restarts the whole flow from a fresh query string.
type State int

const (
	StateVerifying State = iota
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "verifying"
	}
}

// Outcome is the single source of truth the result page renders from.
// Settled distinguishes a payment whose order backend bookkeeping landed
// from one the reconciliation sweep still has to catch up on; the user-facing
// verdict is State either way.
type Outcome struct {
	State       State     `json:"state"`
	Gateway     GatewayID `json:"gateway"`
	TrackID     string    `json:"track_id,omitempty"`
	OrderNumber string    `json:"order_number,omitempty"`
	RefNumber   string    `json:"ref_number,omitempty"`
	CardNumber  string    `json:"card_number,omitempty"`
	Amount      int64     `json:"amount,omitempty"`
	Reason      string    `json:"reason,omitempty"`
	Settled     bool      `json:"-"`
}

// Orchestrator reconciles gateway-side payment confirmation with the order
// state kept by the shop backend.
type Orchestrator struct {
	resolver *Resolver
	payments Verifier
	orders   Settler
	cart     PendingOrderStore
	logger   *zap.Logger
}

// NewOrchestrator wires the verification flow. orders and cart may be nil
// when the respective side effect is not configured.
func NewOrchestrator(resolver *Resolver, payments Verifier, orders Settler, cart PendingOrderStore, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		resolver: resolver,
		payments: payments,
		orders:   orders,
		cart:     cart,
		logger:   logger,
	}
}

// Run drives one verification pass over a callback query string: resolve the
// context, verify with the gateway, then settle the order. Gateway failure is
// fatal; settlement failure after a confirmed charge is logged and the
// outcome stays Succeeded — the customer paid, the bookkeeping can catch up.
func (o *Orchestrator) Run(ctx context.Context, query url.Values) Outcome {
	cb := o.resolver.Resolve(query)
	out := Outcome{
		State:       StateVerifying,
		Gateway:     cb.Gateway,
		TrackID:     cb.TrackID,
		OrderNumber: cb.OrderNumber,
	}

	if cb.TrackID == "" {
		out.State = StateFailed
		out.Reason = "missing track id"
		return out
	}

	vr := o.payments.VerifyIntent(ctx, cb.Gateway, cb.TrackID)
	if !vr.Success {
		out.State = StateFailed
		out.Reason = vr.Error
		if out.Reason == "" {
			out.Reason = "payment was not verified"
		}
		return out
	}

	out.RefNumber = vr.RefNumber
	out.CardNumber = vr.CardNumber
	out.Amount = vr.Amount
	// Nothing to settle when no backend is configured.
	out.Settled = o.orders == nil

	if o.orders != nil {
		st, err := o.orders.SettlePayment(ctx, cb.TrackID, cb.OrderNumber)
		switch {
		case err != nil:
			o.logger.Warn("order settlement failed after confirmed payment",
				zap.String("gateway", string(cb.Gateway)),
				zap.String("track_id", cb.TrackID),
				zap.String("order_number", cb.OrderNumber),
				zap.Error(err))
		case !st.Success:
			o.logger.Warn("order backend rejected settlement",
				zap.String("gateway", string(cb.Gateway)),
				zap.String("track_id", cb.TrackID),
				zap.String("error", st.Error))
		default:
			out.Settled = true
			if st.OrderNumber != "" {
				out.OrderNumber = st.OrderNumber
			}
			if st.RefNumber != "" {
				out.RefNumber = st.RefNumber
			}
			if st.CardNumber != "" {
				out.CardNumber = st.CardNumber
			}
		}
	}

	if o.cart != nil {
		if err := o.cart.ClearPendingOrder(ctx, cb.OrderNumber); err != nil {
			o.logger.Warn("failed to clear pending order",
				zap.String("order_number", cb.OrderNumber), zap.Error(err))
		}
	}

	out.State = StateSucceeded
	return out
}
