package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func newProxy(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, nil, nil), srv
}

func writeEnvelope(w http.ResponseWriter, status int, env map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}

func TestCreateIntent_Success(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	client, _ := newProxy(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		writeEnvelope(w, http.StatusOK, map[string]any{
			"success": true,
			"data": map[string]any{
				"trackId":     361033,
				"payment_url": "https://gateway.zibal.ir/start/361033",
			},
		})
	})

	res := client.CreateIntent(context.Background(), Zibal, IntentRequest{
		Amount:      250000,
		CallbackURL: "https://shop.example.com/payment/callback",
	})

	require.True(t, res.Success)
	require.Empty(t, res.Error)
	require.Equal(t, "361033", res.TrackID)
	require.Equal(t, "https://gateway.zibal.ir/start/361033", res.PaymentURL)
	require.Equal(t, "/integrations/zibal/request", gotPath)
	require.Equal(t, float64(250000), gotBody["amount"])
	require.Equal(t, "Payment", gotBody["description"])
}

func TestCreateIntent_InvalidInputSkipsNetwork(t *testing.T) {
	var calls atomic.Int64
	client, _ := newProxy(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeEnvelope(w, http.StatusOK, map[string]any{"success": true})
	})

	res := client.CreateIntent(context.Background(), Zibal, IntentRequest{Amount: 0})
	require.False(t, res.Success)
	require.Equal(t, FailureInvalidRequest, res.Kind)

	res = client.CreateIntent(context.Background(), GatewayID("paypal"), IntentRequest{Amount: 1000})
	require.False(t, res.Success)
	require.Equal(t, FailureInvalidGateway, res.Kind)

	require.Zero(t, calls.Load())
}

func TestCreateIntent_RemoteRejected(t *testing.T) {
	client, _ := newProxy(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusBadGateway, map[string]any{
			"success": false,
			"error":   "merchant not active",
		})
	})

	res := client.CreateIntent(context.Background(), ZarinPal, IntentRequest{Amount: 1000})

	require.False(t, res.Success)
	require.Equal(t, FailureRemoteRejected, res.Kind)
	require.Equal(t, "merchant not active", res.Error)
}

func TestCreateIntent_RejectedWithoutMessage(t *testing.T) {
	client, _ := newProxy(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, map[string]any{"success": false})
	})

	res := client.CreateIntent(context.Background(), Zibal, IntentRequest{Amount: 1000})

	require.Equal(t, FailureRemoteRejected, res.Kind)
	require.Equal(t, "Payment creation failed", res.Error)
}

func TestCreateIntent_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()
	client := NewClient(srv.URL, nil, nil)

	res := client.CreateIntent(context.Background(), Zibal, IntentRequest{Amount: 1000})

	require.False(t, res.Success)
	require.Equal(t, FailureNetwork, res.Kind)
	require.NotEmpty(t, res.Error)
}

func TestCreateIntent_SendsBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeEnvelope(w, http.StatusOK, map[string]any{"success": true, "data": map[string]any{}})
	}))
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL, func() string { return "tok-1" }, nil)
	client.CreateIntent(context.Background(), Zibal, IntentRequest{Amount: 1000})
	require.Equal(t, "Bearer tok-1", gotAuth)

	client = NewClient(srv.URL, func() string { return "" }, nil)
	client.CreateIntent(context.Background(), Zibal, IntentRequest{Amount: 1000})
	require.Empty(t, gotAuth)
}

func TestVerifyIntent_Success(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	client, _ := newProxy(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		writeEnvelope(w, http.StatusOK, map[string]any{
			"success": true,
			"data": map[string]any{
				"result":    100,
				"amount":    250000,
				"refNumber": "R-778",
				"cardNumber": "603799******1234",
			},
		})
	})

	res := client.VerifyIntent(context.Background(), Zibal, "361033")

	require.True(t, res.Success)
	require.Equal(t, "R-778", res.RefNumber)
	require.Equal(t, "603799******1234", res.CardNumber)
	require.Equal(t, int64(250000), res.Amount)
	require.Equal(t, "/integrations/zibal/verify", gotPath)
	// Both spellings go on the wire.
	require.Equal(t, "361033", gotBody["trackId"])
	require.Equal(t, "361033", gotBody["track_id"])
}

func TestVerifyIntent_NotPaid(t *testing.T) {
	client, _ := newProxy(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, map[string]any{
			"success": true,
			"data":    map[string]any{"result": 102},
		})
	})

	res := client.VerifyIntent(context.Background(), Zibal, "361033")

	require.False(t, res.Success)
	require.Equal(t, FailureProviderAmbiguous, res.Kind)
	require.Equal(t, "Payment was not successful", res.Error)
	require.Equal(t, "102", res.Status)
	require.NotNil(t, res.Raw)
}

func TestVerifyIntent_MissingTrackID(t *testing.T) {
	var calls atomic.Int64
	client, _ := newProxy(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	})

	res := client.VerifyIntent(context.Background(), Zibal, "")

	require.False(t, res.Success)
	require.Equal(t, FailureMissingTrackID, res.Kind)
	require.Zero(t, calls.Load())
}

func TestVerifyIntent_RemoteRejected(t *testing.T) {
	client, _ := newProxy(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, map[string]any{"success": false})
	})

	res := client.VerifyIntent(context.Background(), IDPay, "p-55")

	require.Equal(t, FailureRemoteRejected, res.Kind)
	require.Equal(t, "Verification failed", res.Error)
}
