package router

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"shopgate/internal/cart"
	"shopgate/internal/config"
	"shopgate/internal/handler"
	"shopgate/internal/handler/api"
	"shopgate/internal/middleware"
	"shopgate/internal/payment"
	"shopgate/internal/repository"
	"shopgate/internal/shop"
)

// Setup configures all routes for the Echo server.
func Setup(
	e *echo.Echo,
	db *gorm.DB,
	cfg *config.Config,
	paymentClient *payment.Client,
	shopClient *shop.Client,
	orchestrator *payment.Orchestrator,
	cartStore cart.Store,
	logger *zap.Logger,
) {
	// Global middleware
	e.Use(echomw.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger(logger))
	e.Validator = api.NewValidator()

	attempts := repository.NewAttemptRepository(db)

	// Handlers
	checkoutHandler := api.NewCheckoutHandler(shopClient, paymentClient, attempts, cartStore, &cfg.Payment, logger)
	gatewayHandler := api.NewGatewayHandler()
	orderHandler := api.NewOrderHandler(shopClient, attempts, logger)
	callbackHandler := handler.NewPaymentCallbackHandler(orchestrator, attempts, logger)

	// API routes
	apiGroup := e.Group("/api")
	apiGroup.POST("/checkout", checkoutHandler.Checkout)
	apiGroup.POST("/payment/verify", callbackHandler.VerifyAPI)
	apiGroup.GET("/gateways", gatewayHandler.List)
	apiGroup.GET("/orders/:orderNumber", orderHandler.Get)

	// Gateway redirect target
	e.GET("/payment/callback", callbackHandler.Callback)

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})
}
