package shop

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func newBackend(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, nil)
}

func TestCreateOrder(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	client := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"order": map[string]any{
				"id":           "uuid-1",
				"order_number": "ORD-42",
				"status":       "pending",
				"total_amount": 250000,
				"currency":     "IRR",
			},
		})
	})

	order, err := client.CreateOrder(context.Background(),
		[]OrderItem{{ProductID: "sku-1", Quantity: 2}},
		CustomerInfo{Name: "Buyer", Phone: "09120000000"},
		"IRR")

	require.NoError(t, err)
	require.Equal(t, "/orders", gotPath)
	require.Equal(t, "ORD-42", order.OrderNumber)
	require.Equal(t, int64(250000), order.TotalAmount)
	require.Contains(t, gotBody, "items")
	require.Contains(t, gotBody, "customer_info")
	require.Equal(t, "IRR", gotBody["currency"])
}

func TestCreateOrder_BackendError(t *testing.T) {
	client := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "error": "product out of stock"})
	})

	_, err := client.CreateOrder(context.Background(), nil, CustomerInfo{Name: "Buyer"}, "")
	require.Error(t, err)
	require.Contains(t, err.Error(), "product out of stock")
}

func TestGetOrder(t *testing.T) {
	var gotPath string
	client := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"order": map[string]any{"order_number": "ORD-42", "status": "paid"},
		})
	})

	order, err := client.GetOrder(context.Background(), "ORD-42")
	require.NoError(t, err)
	require.Equal(t, "/orders/ORD-42", gotPath)
	require.Equal(t, "paid", order.Status)
}

func TestGetOrder_NotFound(t *testing.T) {
	client := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]any{"error": ""})
	})

	_, err := client.GetOrder(context.Background(), "ORD-404")
	require.Error(t, err)
	require.Contains(t, err.Error(), "order not found")
}

func TestSettlePayment(t *testing.T) {
	var gotBody map[string]any
	client := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/verify-payment", r.URL.Path)
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success":      true,
			"order_number": "ORD-42",
			"ref_number":   "R-778",
			"card_number":  "603799******1234",
		})
	})

	st, err := client.SettlePayment(context.Background(), "361033", "ORD-42")
	require.NoError(t, err)
	require.True(t, st.Success)
	require.Equal(t, "ORD-42", st.OrderNumber)
	require.Equal(t, "R-778", st.RefNumber)
	require.Equal(t, "361033", gotBody["track_id"])
	require.Equal(t, "ORD-42", gotBody["order_number"])
}

func TestSettlePayment_AlreadyPaidCountsAsSuccess(t *testing.T) {
	client := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success":      false,
			"already_paid": true,
			"order_number": "ORD-42",
		})
	})

	st, err := client.SettlePayment(context.Background(), "361033", "ORD-42")
	require.NoError(t, err)
	require.True(t, st.Success)
	require.True(t, st.AlreadyPaid)
}

func TestSettlePayment_HTTPErrorOverridesBody(t *testing.T) {
	client := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true})
	})

	st, err := client.SettlePayment(context.Background(), "361033", "")
	require.NoError(t, err)
	require.False(t, st.Success)
	require.Equal(t, "status 500", st.Error)
}

func TestSettlePayment_OmitsEmptyOrderNumber(t *testing.T) {
	var gotBody map[string]any
	client := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true})
	})

	_, err := client.SettlePayment(context.Background(), "361033", "")
	require.NoError(t, err)
	require.NotContains(t, gotBody, "order_number")
}
