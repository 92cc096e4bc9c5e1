package shop

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"shopgate/internal/payment"
	"shopgate/internal/pkg/httpclient"
)

// Client consumes the storefront order backend. The payment flow treats it
// as an opaque collaborator: create an order, fetch it, mark it paid.
type Client struct {
	http    *httpclient.Client
	baseURL string
	logger  *zap.Logger
}

// NewClient creates a shop backend client rooted at baseURL.
func NewClient(baseURL string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		http:    httpclient.New(),
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}
}

// CustomerInfo is the buyer contact block sent with an order. A name is only
// required when an order is actually created; bare top-up payments carry an
// empty block.
type CustomerInfo struct {
	Name    string `json:"name" validate:"omitempty,max=200"`
	Phone   string `json:"phone" validate:"omitempty,max=20"`
	Email   string `json:"email" validate:"omitempty,email"`
	Address string `json:"address,omitempty" validate:"omitempty,max=500"`
}

// OrderItem is one cart line.
type OrderItem struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
	Variant   string `json:"variant,omitempty"`
}

// Order is the backend's canonical order record.
type Order struct {
	ID          string `json:"id"`
	OrderNumber string `json:"order_number"`
	Status      string `json:"status"`
	TotalAmount int64  `json:"total_amount"`
	Currency    string `json:"currency"`
	RefNumber   string `json:"ref_number,omitempty"`
	CardNumber  string `json:"card_number,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// CreateOrder registers a new order with the backend.
func (c *Client) CreateOrder(ctx context.Context, items []OrderItem, customer CustomerInfo, currency string) (*Order, error) {
	body := map[string]any{
		"items":         items,
		"customer_info": customer,
	}
	if currency != "" {
		body["currency"] = currency
	}

	resp, err := c.http.PostJSON(ctx, c.baseURL+"/orders", body, nil)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	var out struct {
		Success bool   `json:"success"`
		Order   *Order `json:"order"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(resp.Body, &out); err != nil {
		return nil, fmt.Errorf("create order: parse response: %w", err)
	}
	if !resp.OK() || out.Order == nil {
		msg := out.Error
		if msg == "" {
			msg = fmt.Sprintf("status %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("create order: %s", msg)
	}
	return out.Order, nil
}

// GetOrder fetches an order by its public number.
func (c *Client) GetOrder(ctx context.Context, orderNumber string) (*Order, error) {
	resp, err := c.http.GetJSON(ctx, c.baseURL+"/orders/"+url.PathEscape(orderNumber), nil)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}

	var out struct {
		Order *Order `json:"order"`
		Error string `json:"error"`
	}
	if err := json.Unmarshal(resp.Body, &out); err != nil {
		return nil, fmt.Errorf("get order: parse response: %w", err)
	}
	if !resp.OK() || out.Order == nil {
		msg := out.Error
		if msg == "" {
			msg = "order not found"
		}
		return nil, fmt.Errorf("get order: %s", msg)
	}
	return out.Order, nil
}

// SettlePayment marks the correlated order paid once the gateway has
// confirmed the charge. Implements payment.Settler. A backend that reports
// the order as already paid counts as success: verification is idempotent.
func (c *Client) SettlePayment(ctx context.Context, trackID, orderNumber string) (payment.Settlement, error) {
	body := map[string]any{"track_id": trackID}
	if orderNumber != "" {
		body["order_number"] = orderNumber
	}

	resp, err := c.http.PostJSON(ctx, c.baseURL+"/verify-payment", body, nil)
	if err != nil {
		return payment.Settlement{}, fmt.Errorf("settle payment: %w", err)
	}

	var out struct {
		Success     bool   `json:"success"`
		OrderNumber string `json:"order_number"`
		Status      string `json:"status"`
		RefNumber   string `json:"ref_number"`
		CardNumber  string `json:"card_number"`
		AlreadyPaid bool   `json:"already_paid"`
		Error       string `json:"error"`
	}
	if err := json.Unmarshal(resp.Body, &out); err != nil {
		return payment.Settlement{}, fmt.Errorf("settle payment: parse response: %w", err)
	}

	st := payment.Settlement{
		Success:     out.Success || out.AlreadyPaid,
		OrderNumber: out.OrderNumber,
		RefNumber:   out.RefNumber,
		CardNumber:  out.CardNumber,
		AlreadyPaid: out.AlreadyPaid,
		Error:       out.Error,
	}
	if !resp.OK() {
		st.Success = false
		if st.Error == "" {
			st.Error = fmt.Sprintf("status %d", resp.StatusCode)
		}
	}
	return st, nil
}
