package handler

import (
	"context"
	"html/template"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"shopgate/internal/payment"
	"shopgate/internal/pkg/utils"
)

// OutcomeRunner drives one verification pass for a callback query string.
type OutcomeRunner interface {
	Run(ctx context.Context, query url.Values) payment.Outcome
}

// AttemptJournal mirrors verification outcomes into the local attempt record.
type AttemptJournal interface {
	MarkPaid(trackID, refNumber, cardNumber string) error
	MarkFailed(trackID string) error
}

// PaymentCallbackHandler serves the gateway redirect target.
type PaymentCallbackHandler struct {
	orchestrator OutcomeRunner
	attempts     AttemptJournal
	logger       *zap.Logger
}

// NewPaymentCallbackHandler creates a new payment callback handler. attempts
// may be nil when no local journal is configured.
func NewPaymentCallbackHandler(orchestrator OutcomeRunner, attempts AttemptJournal, logger *zap.Logger) *PaymentCallbackHandler {
	return &PaymentCallbackHandler{
		orchestrator: orchestrator,
		attempts:     attempts,
		logger:       logger,
	}
}

// Callback handles the browser redirect back from a gateway. Each page load
// runs one full verification pass; the retry link simply reloads the page.
func (h *PaymentCallbackHandler) Callback(c echo.Context) error {
	query := c.Request().URL.Query()
	out := h.orchestrator.Run(c.Request().Context(), query)
	h.journal(out)

	switch out.State {
	case payment.StateSucceeded:
		return h.renderResult(c, resultPage{
			Title:       "پرداخت موفق",
			Message:     "سفارش شما با موفقیت ثبت شد",
			Success:     true,
			OrderNumber: out.OrderNumber,
			RefNumber:   out.RefNumber,
			CardNumber:  out.CardNumber,
			Amount:      out.Amount,
			Currency:    payment.Describe(out.Gateway).DefaultCurrency,
		})
	default:
		reason := out.Reason
		if reason == "" {
			reason = "پرداخت انجام نشد"
		}
		return h.renderResult(c, resultPage{
			Title:       "پرداخت ناموفق",
			Message:     reason,
			OrderNumber: out.OrderNumber,
			Retry:       true,
		})
	}
}

// VerifyAPI is the JSON variant of the callback for frontends that render
// the result themselves. Body fields mirror the callback query parameters.
func (h *PaymentCallbackHandler) VerifyAPI(c echo.Context) error {
	var req struct {
		Gateway     string `json:"gateway"`
		TrackID     string `json:"track_id"`
		OrderNumber string `json:"order_number"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"success": false, "error": "invalid request"})
	}

	query := url.Values{}
	if req.Gateway != "" {
		query.Set("gateway", req.Gateway)
	}
	if req.TrackID != "" {
		query.Set("track_id", req.TrackID)
	}
	if req.OrderNumber != "" {
		query.Set("orderNumber", req.OrderNumber)
	}

	out := h.orchestrator.Run(c.Request().Context(), query)
	h.journal(out)

	status := http.StatusOK
	if out.State == payment.StateFailed {
		status = http.StatusPaymentRequired
	}
	return c.JSON(status, map[string]any{
		"success":      out.State == payment.StateSucceeded,
		"state":        out.State.String(),
		"gateway":      out.Gateway,
		"order_number": out.OrderNumber,
		"ref_number":   out.RefNumber,
		"card_number":  out.CardNumber,
		"amount":       out.Amount,
		"error":        out.Reason,
	})
}

// journal mirrors the outcome into the local attempt record. Journal trouble
// never affects the user-facing outcome. A confirmed payment whose backend
// settlement has not landed yet stays pending so the reconciliation sweep
// retries it.
func (h *PaymentCallbackHandler) journal(out payment.Outcome) {
	if h.attempts == nil || out.TrackID == "" {
		return
	}

	var err error
	switch {
	case out.State == payment.StateSucceeded && out.Settled:
		err = h.attempts.MarkPaid(out.TrackID, out.RefNumber, utils.MaskCardNumber(out.CardNumber))
	case out.State == payment.StateFailed:
		err = h.attempts.MarkFailed(out.TrackID)
	}
	if err != nil {
		h.logger.Warn("failed to journal payment outcome",
			zap.String("track_id", out.TrackID), zap.Error(err))
	}
}

type resultPage struct {
	Title       string
	Message     string
	Success     bool
	Retry       bool
	OrderNumber string
	RefNumber   string
	CardNumber  string
	Amount      int64
	Currency    string
}

var resultTemplate = template.Must(template.New("payment").Parse(`<!DOCTYPE html>
<html dir="rtl">
<head>
    <meta charset="UTF-8">
    <title>نتیجه پرداخت</title>
    <style>
        body { font-family: Tahoma, sans-serif; background: #f2f2f2; margin: 0; padding: 20px; display: flex; justify-content: center; align-items: center; min-height: 100vh; }
        .box { background: #fff; border-radius: 8px; box-shadow: 0 2px 10px rgba(0,0,0,0.1); padding: 40px; text-align: center; max-width: 400px; width: 100%; }
        h1 { margin-bottom: 20px; }
        h1.ok { color: #1a7f37; }
        h1.fail { color: #c0392b; }
        p { color: #666; margin-bottom: 10px; }
        .mono { direction: ltr; font-family: monospace; }
        a.retry { display: inline-block; margin-top: 16px; color: #1a66c0; }
    </style>
</head>
<body>
    <div class="box">
        <h1 class="{{if .Success}}ok{{else}}fail{{end}}">{{.Title}}</h1>
        {{if .OrderNumber}}<p>شماره سفارش: <span class="mono">{{.OrderNumber}}</span></p>{{end}}
        {{if .RefNumber}}<p>کد پیگیری: <span class="mono">{{.RefNumber}}</span></p>{{end}}
        {{if .CardNumber}}<p>پرداخت از کارت: <span class="mono">{{.CardNumber}}</span></p>{{end}}
        {{if .AmountStr}}<p>مبلغ: <span>{{.AmountStr}}</span></p>{{end}}
        <p>{{.Message}}</p>
        {{if .Retry}}<a class="retry" href="">بررسی مجدد</a>{{end}}
    </div>
</body>
</html>`))

func (h *PaymentCallbackHandler) renderResult(c echo.Context, page resultPage) error {
	data := map[string]any{
		"Title":       page.Title,
		"Message":     page.Message,
		"Success":     page.Success,
		"Retry":       page.Retry,
		"OrderNumber": page.OrderNumber,
		"RefNumber":   page.RefNumber,
		"CardNumber":  page.CardNumber,
		"AmountStr":   "",
	}
	if page.Amount > 0 {
		data["AmountStr"] = payment.FormatAmount(page.Amount, page.Currency, "fa")
	}

	c.Response().Header().Set(echo.HeaderContentType, "text/html; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	return resultTemplate.Execute(c.Response().Writer, data)
}
