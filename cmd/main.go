package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"shopgate/internal/bootstrap"
	"shopgate/internal/cart"
	"shopgate/internal/config"
	cronpkg "shopgate/internal/cron"
	"shopgate/internal/payment"
	"shopgate/internal/repository"
	"shopgate/internal/router"
	"shopgate/internal/shop"
)

func main() {
	// --- Logger ---
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// --- Config ---
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	// --- Database ---
	db, err := config.NewDatabase(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := bootstrap.Migrate(db); err != nil {
		logger.Fatal("Failed to migrate database schema", zap.Error(err))
	}

	// --- Pending order store (Redis with in-memory fallback) ---
	cartStore, cartErr := cart.New(cfg.Redis.Addr, cfg.Redis.Pass, cfg.Redis.DB, 24*time.Hour)
	if cartErr != nil {
		logger.Warn("Redis unavailable for pending orders, using in-memory fallback", zap.Error(cartErr))
	}

	// --- Payment flow ---
	paymentClient := payment.NewClient(cfg.Payment.ProxyBaseURL, func() string {
		return cfg.Payment.ProxyToken
	}, logger)
	shopClient := shop.NewClient(cfg.Shop.Endpoint(), logger)
	resolver := payment.NewResolver(payment.GatewayID(cfg.Payment.DefaultGateway))
	orchestrator := payment.NewOrchestrator(resolver, paymentClient, shopClient, cartStore, logger)

	// --- Echo ---
	e := echo.New()
	e.HideBanner = true
	router.Setup(e, db, cfg, paymentClient, shopClient, orchestrator, cartStore, logger)

	// --- Reconciliation sweep ---
	reconciler := cronpkg.NewReconciler(repository.NewAttemptRepository(db), paymentClient, shopClient, logger)
	reconciler.Start()

	// --- Start Server ---
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	go func() {
		logger.Info("Starting shopgate server", zap.String("addr", addr))
		if err := e.Start(addr); err != nil {
			logger.Info("Server stopped", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down...")

	ctx := reconciler.Stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
