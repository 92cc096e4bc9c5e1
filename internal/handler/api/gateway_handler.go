package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"shopgate/internal/payment"
)

// GatewayHandler exposes the gateway registry to the storefront frontend.
type GatewayHandler struct{}

func NewGatewayHandler() *GatewayHandler {
	return &GatewayHandler{}
}

// List returns the supported gateways, optionally filtered with
// ?type=domestic or ?type=international.
func (h *GatewayHandler) List(c echo.Context) error {
	filter := payment.ListAll
	switch c.QueryParam("type") {
	case "domestic":
		filter = payment.ListDomestic
	case "international":
		filter = payment.ListInternational
	case "":
	default:
		return fail(c, http.StatusBadRequest, "unknown gateway type filter")
	}

	descs := payment.List(filter)
	out := make([]map[string]any, 0, len(descs))
	for _, d := range descs {
		out = append(out, map[string]any{
			"id":               d.ID,
			"name":             d.Name,
			"name_fa":          d.LocalName,
			"default_currency": d.DefaultCurrency,
			"min_amount":       d.MinAmount,
			"international":    d.International,
		})
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "gateways": out})
}
