package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"shopgate/internal/pkg/httpclient"
)

// TokenProvider returns the current session token, or "" for anonymous
// checkout. Absence of a token is not an error at this layer.
type TokenProvider func() string

// Client talks to the remote gateway proxy. Methods never return a Go error:
// every transport or provider failure is folded into the result so nothing
// escapes this boundary.
type Client struct {
	http    *httpclient.Client
	baseURL string
	token   TokenProvider
	logger  *zap.Logger
}

// NewClient creates a gateway proxy client.
func NewClient(baseURL string, token TokenProvider, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		http:    httpclient.New(),
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		logger:  logger,
	}
}

// proxyEnvelope is the proxy's uniform response wrapper around the
// provider's own fields.
type proxyEnvelope struct {
	Success bool           `json:"success"`
	Data    map[string]any `json:"data"`
	Error   string         `json:"error"`
}

func (c *Client) endpoint(id GatewayID, op string) string {
	return fmt.Sprintf("%s/integrations/%s/%s", c.baseURL, id, op)
}

func (c *Client) authHeaders() map[string]string {
	if c.token == nil {
		return nil
	}
	tok := c.token()
	if tok == "" {
		return nil
	}
	return map[string]string{"Authorization": "Bearer " + tok}
}

// CreateIntent creates a payment intent and returns where to redirect the
// browser. Invalid input is rejected before any network call.
func (c *Client) CreateIntent(ctx context.Context, id GatewayID, req IntentRequest) IntentResult {
	if !IsValidID(string(id)) {
		return IntentResult{Error: "unknown gateway: " + string(id), Kind: FailureInvalidGateway}
	}
	if req.Amount <= 0 {
		return IntentResult{Error: "amount must be positive", Kind: FailureInvalidRequest}
	}

	desc := Describe(id)
	if req.Description == "" {
		req.Description = "Payment"
	}
	body := buildCreatePayload(desc, req)

	resp, err := c.http.PostJSON(ctx, c.endpoint(id, desc.CreateOp), body, c.authHeaders())
	if err != nil {
		return IntentResult{Error: networkError(err), Kind: FailureNetwork}
	}

	var env proxyEnvelope
	if err := json.Unmarshal(resp.Body, &env); err != nil {
		return IntentResult{Error: networkError(err), Kind: FailureNetwork}
	}
	if !resp.OK() || !env.Success {
		msg := env.Error
		if msg == "" {
			msg = "Payment creation failed"
		}
		return IntentResult{Error: msg, Kind: FailureRemoteRejected}
	}

	return IntentResult{
		Success:    true,
		TrackID:    firstString(env.Data, "track_id", "trackId", "authority"),
		PaymentURL: firstString(env.Data, "payment_url", "paymentUrl", "link"),
		Raw:        env.Data,
	}
}

// VerifyIntent asks the gateway whether trackID was paid. Safe to call more
// than once for the same track id; providers report an already-settled
// payment as success and the predicates accept that.
func (c *Client) VerifyIntent(ctx context.Context, id GatewayID, trackID string) VerificationResult {
	if !IsValidID(string(id)) {
		return VerificationResult{Error: "unknown gateway: " + string(id), Kind: FailureInvalidGateway}
	}
	if trackID == "" {
		return VerificationResult{Error: "missing track id", Kind: FailureMissingTrackID}
	}

	desc := Describe(id)
	// Both key spellings: providers disagree on naming.
	body := map[string]any{"trackId": trackID, "track_id": trackID}

	resp, err := c.http.PostJSON(ctx, c.endpoint(id, desc.VerifyOp), body, c.authHeaders())
	if err != nil {
		return VerificationResult{Error: networkError(err), Kind: FailureNetwork}
	}

	var env proxyEnvelope
	if err := json.Unmarshal(resp.Body, &env); err != nil {
		return VerificationResult{Error: networkError(err), Kind: FailureNetwork}
	}
	if !resp.OK() || !env.Success {
		msg := env.Error
		if msg == "" {
			msg = "Verification failed"
		}
		return VerificationResult{Error: msg, Kind: FailureRemoteRejected, Raw: env.Data}
	}

	status := firstString(env.Data, "status", "result")
	if !isPaid(id, env.Data) {
		msg := env.Error
		if msg == "" {
			msg = "Payment was not successful"
		}
		return VerificationResult{Status: status, Raw: env.Data, Error: msg, Kind: FailureProviderAmbiguous}
	}

	amount, _ := numberField(env.Data, "amount")
	return VerificationResult{
		Success:    true,
		Status:     status,
		RefNumber:  firstString(env.Data, "refNumber", "ref_id", "Shaparak_Ref_Id"),
		CardNumber: firstString(env.Data, "cardNumber", "card_pan", "card_number"),
		Amount:     amount,
		Raw:        env.Data,
	}
}

func networkError(err error) string {
	if err == nil || err.Error() == "" {
		return "Network error"
	}
	return err.Error()
}
