package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"shopgate/internal/repository"
	"shopgate/internal/shop"
)

// OrderHandler exposes order tracking: the backend's canonical order plus
// the local payment attempt history.
type OrderHandler struct {
	shop     *shop.Client
	attempts *repository.AttemptRepository
	logger   *zap.Logger
}

func NewOrderHandler(shopClient *shop.Client, attempts *repository.AttemptRepository, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{shop: shopClient, attempts: attempts, logger: logger}
}

func (h *OrderHandler) Get(c echo.Context) error {
	orderNumber := c.Param("orderNumber")
	if orderNumber == "" {
		return fail(c, http.StatusBadRequest, "order number is required")
	}

	order, err := h.shop.GetOrder(c.Request().Context(), orderNumber)
	if err != nil {
		h.logger.Warn("order lookup failed", zap.String("order_number", orderNumber), zap.Error(err))
		return fail(c, http.StatusNotFound, "order not found")
	}

	attempts, err := h.attempts.FindByOrderNumber(orderNumber)
	if err != nil {
		attempts = nil
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success":  true,
		"order":    order,
		"attempts": attempts,
	})
}
