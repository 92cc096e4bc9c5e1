package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"shopgate/internal/cart"
	"shopgate/internal/config"
	"shopgate/internal/models"
	"shopgate/internal/payment"
	"shopgate/internal/pkg/utils"
	"shopgate/internal/repository"
	"shopgate/internal/shop"
)

// CheckoutHandler starts a payment: order first, then gateway intent, then
// the redirect URL back to the caller.
type CheckoutHandler struct {
	shop     *shop.Client
	payments *payment.Client
	attempts *repository.AttemptRepository
	cart     cart.Store
	cfg      *config.PaymentConfig
	logger   *zap.Logger
}

func NewCheckoutHandler(
	shopClient *shop.Client,
	payments *payment.Client,
	attempts *repository.AttemptRepository,
	cartStore cart.Store,
	cfg *config.PaymentConfig,
	logger *zap.Logger,
) *CheckoutHandler {
	return &CheckoutHandler{
		shop:     shopClient,
		payments: payments,
		attempts: attempts,
		cart:     cartStore,
		cfg:      cfg,
		logger:   logger,
	}
}

// CheckoutRequest is the storefront's "pay now" call. Amount is in the
// gateway's minor unit.
type CheckoutRequest struct {
	Gateway     string            `json:"gateway" validate:"required"`
	Amount      int64             `json:"amount" validate:"required,gt=0"`
	Currency    string            `json:"currency" validate:"omitempty,max=8"`
	Description string            `json:"description" validate:"omitempty,max=255"`
	Items       []shop.OrderItem  `json:"items" validate:"omitempty,dive"`
	Customer    shop.CustomerInfo `json:"customer"`
	Metadata    map[string]any    `json:"metadata"`
}

func (h *CheckoutHandler) Checkout(c echo.Context) error {
	var req CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if !payment.IsValidID(req.Gateway) {
		return fail(c, http.StatusBadRequest, "unknown gateway: "+req.Gateway)
	}
	gatewayID := payment.GatewayID(req.Gateway)
	desc := payment.Describe(gatewayID)
	if req.Amount < desc.MinAmount {
		return fail(c, http.StatusBadRequest,
			fmt.Sprintf("amount below gateway minimum (%d %s)", desc.MinAmount, desc.DefaultCurrency))
	}

	ctx := c.Request().Context()

	// Order first, so the callback can correlate the payment. Checkout
	// without cart items is a bare top-up style payment with a locally
	// generated order number.
	orderNumber := utils.GenerateOrderID()
	if len(req.Items) > 0 {
		if req.Customer.Name == "" {
			return fail(c, http.StatusBadRequest, "customer name is required")
		}
		order, err := h.shop.CreateOrder(ctx, req.Items, req.Customer, req.Currency)
		if err != nil {
			h.logger.Error("order creation failed", zap.Error(err))
			return fail(c, http.StatusBadGateway, "order creation failed")
		}
		orderNumber = order.OrderNumber
	}

	callbackURL := h.callbackURL(gatewayID, orderNumber)
	intent := h.payments.CreateIntent(ctx, gatewayID, payment.IntentRequest{
		Amount:      req.Amount,
		Currency:    req.Currency,
		Description: req.Description,
		OrderID:     orderNumber,
		CallbackURL: callbackURL,
		Phone:       req.Customer.Phone,
		Email:       req.Customer.Email,
		Name:        req.Customer.Name,
		Metadata:    req.Metadata,
	})
	if !intent.Success {
		h.logger.Warn("payment intent rejected",
			zap.String("gateway", req.Gateway),
			zap.String("kind", string(intent.Kind)),
			zap.String("error", intent.Error))
		return fail(c, http.StatusBadGateway, intent.Error)
	}

	h.journal(orderNumber, req, desc, intent)

	if snapshot, err := json.Marshal(req.Items); err == nil {
		if err := h.cart.SavePendingOrder(ctx, orderNumber, snapshot); err != nil {
			h.logger.Warn("failed to save pending order", zap.Error(err))
		}
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success":      true,
		"order_number": orderNumber,
		"track_id":     intent.TrackID,
		"payment_url":  intent.PaymentURL,
	})
}

// journal records the new attempt for the reconciliation sweep. attempts may
// be nil when no local journal is configured.
func (h *CheckoutHandler) journal(orderNumber string, req CheckoutRequest, desc payment.Descriptor, intent payment.IntentResult) {
	if h.attempts == nil {
		return
	}
	if err := h.attempts.Create(&models.PaymentAttempt{
		OrderNumber: orderNumber,
		Gateway:     req.Gateway,
		TrackID:     intent.TrackID,
		Amount:      req.Amount,
		Currency:    orDefault(req.Currency, desc.DefaultCurrency),
	}); err != nil {
		h.logger.Error("failed to journal payment attempt",
			zap.String("track_id", intent.TrackID), zap.Error(err))
	}
}

// callbackURL carries the gateway and order number through the redirect so
// the callback page can re-resolve both.
func (h *CheckoutHandler) callbackURL(id payment.GatewayID, orderNumber string) string {
	base := h.cfg.CallbackURL
	if base == "" {
		return ""
	}
	q := url.Values{}
	q.Set("gateway", string(id))
	q.Set("orderNumber", orderNumber)
	sep := "?"
	if u, err := url.Parse(base); err == nil && u.RawQuery != "" {
		sep = "&"
	}
	return base + sep + q.Encode()
}

func orDefault(value, def string) string {
	if value == "" {
		return def
	}
	return value
}
