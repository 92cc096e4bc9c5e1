package payment

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildCreatePayload_PerGatewayFieldNames(t *testing.T) {
	req := IntentRequest{
		Amount:      12000,
		Description: "Test order",
		OrderID:     "ORD-1",
		CallbackURL: "https://example.com/payment/callback",
		Phone:       "09120000000",
		Email:       "buyer@example.com",
		Name:        "Buyer",
	}

	tests := []struct {
		gateway     GatewayID
		wantKeys    []string
		absentKeys  []string
		callbackKey string
	}{
		{Zibal, []string{"amount", "callbackUrl", "description", "orderId", "mobile"}, []string{"callback_url", "email"}, "callbackUrl"},
		{ZarinPal, []string{"amount", "callback_url", "description", "order_id", "mobile", "email"}, []string{"callbackUrl"}, "callback_url"},
		{IDPay, []string{"amount", "callback", "desc", "order_id", "phone", "mail", "name"}, []string{"description", "email"}, "callback"},
		{PayStar, []string{"amount", "callback", "description", "order_id", "phone"}, []string{"mail"}, "callback"},
		{NextPay, []string{"amount", "callback_uri", "order_id", "customer_phone"}, []string{"description"}, "callback_uri"},
		{OxaPay, []string{"amount", "currency", "return_url", "description", "order_id", "email"}, []string{"callback"}, "return_url"},
	}

	for _, tt := range tests {
		t.Run(string(tt.gateway), func(t *testing.T) {
			body := buildCreatePayload(Describe(tt.gateway), req)
			for _, key := range tt.wantKeys {
				require.Contains(t, body, key)
			}
			for _, key := range tt.absentKeys {
				require.NotContains(t, body, key)
			}
			require.Equal(t, req.CallbackURL, body[tt.callbackKey])
		})
	}
}

func TestBuildCreatePayload_Stripe(t *testing.T) {
	req := IntentRequest{
		Amount:      500,
		Currency:    "USD",
		Description: "Sub",
		CallbackURL: "https://example.com/cb?orderNumber=42",
	}
	body := buildCreatePayload(Describe(Stripe), req)

	require.Equal(t, "usd", body["currency"])
	require.Equal(t, "https://example.com/cb?orderNumber=42&status=success", body["success_url"])
	require.Equal(t, "https://example.com/cb?orderNumber=42&status=cancelled", body["cancel_url"])
	require.Equal(t, "Sub", body["product_name"])
}

func TestBuildCreatePayload_OmitsEmptyFields(t *testing.T) {
	body := buildCreatePayload(Describe(Zibal), IntentRequest{Amount: 5000})

	require.Equal(t, map[string]any{"amount": int64(5000)}, body)
}

func TestBuildCreatePayload_DefaultCurrency(t *testing.T) {
	body := buildCreatePayload(Describe(OxaPay), IntentRequest{Amount: 3})
	require.Equal(t, "USD", body["currency"])

	body = buildCreatePayload(Describe(OxaPay), IntentRequest{Amount: 3, Currency: "USDT"})
	require.Equal(t, "USDT", body["currency"])
}

func TestBuildCreatePayload_Metadata(t *testing.T) {
	meta := map[string]any{"campaign": "spring"}
	body := buildCreatePayload(Describe(Zibal), IntentRequest{Amount: 5000, Metadata: meta})
	require.Equal(t, meta, body["metadata"])
}
