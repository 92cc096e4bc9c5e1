package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func listGateways(t *testing.T, target string) (int, map[string]any) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()

	require.NoError(t, NewGatewayHandler().List(e.NewContext(req, rec)))

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return rec.Code, out
}

func TestGatewayList(t *testing.T) {
	code, out := listGateways(t, "/api/gateways")
	require.Equal(t, http.StatusOK, code)
	require.Len(t, out["gateways"], 7)
}

func TestGatewayList_Filters(t *testing.T) {
	_, out := listGateways(t, "/api/gateways?type=domestic")
	require.Len(t, out["gateways"], 5)

	_, out = listGateways(t, "/api/gateways?type=international")
	gateways := out["gateways"].([]any)
	require.Len(t, gateways, 2)
	for _, g := range gateways {
		require.Equal(t, true, g.(map[string]any)["international"])
	}
}

func TestGatewayList_UnknownFilter(t *testing.T) {
	code, out := listGateways(t, "/api/gateways?type=crypto")
	require.Equal(t, http.StatusBadRequest, code)
	require.Equal(t, false, out["success"])
}
