package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"morishcart/internal/config"
	"morishcart/internal/coupon"
	"morishcart/internal/database"
	"morishcart/internal/handler"
	"morishcart/internal/middleware"
	"morishcart/internal/repository"
	"morishcart/internal/router"
	"morishcart/internal/service"
	"morishcart/internal/signer"

	"github.com/shopspring/decimal"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Monetary fields serialise as JSON numbers, matching the storefront API.
	decimal.MarshalJSONWithoutQuotes = true

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting morishcart API server")

	if !cfg.IsProduction() && os.Getenv("ORDER_SIGN_SECRET") == "" {
		logger.Warn().Msg("ORDER_SIGN_SECRET not set, using insecure development default")
	}

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Initialize repositories
	productRepo := repository.NewProductRepository(pool, logger)
	couponRepo := repository.NewCouponRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)
	verificationRepo := repository.NewVerificationRepository(pool, logger)
	analyticsRepo := repository.NewAnalyticsRepository(pool, logger)

	// Initialize order signer and coupon validator
	orderSigner, err := signer.New(cfg.Signing.Secret)
	if err != nil {
		return fmt.Errorf("failed to initialize order signer: %w", err)
	}

	validator := coupon.NewValidator(couponRepo, logger)

	// Initialize services
	productService := service.NewProductService(productRepo, logger)
	couponService := service.NewCouponService(couponRepo, validator, logger)
	orderService := service.NewOrderService(
		orderRepo,
		productRepo,
		verificationRepo,
		validator,
		orderSigner,
		service.OrderConfig{
			MaxQuantity: cfg.Checkout.MaxQuantity,
			DedupWindow: time.Duration(cfg.Checkout.DedupWindowSeconds) * time.Second,
		},
		logger,
	)
	verificationService := service.NewVerificationService(verificationRepo, logger)
	analyticsService := service.NewAnalyticsService(analyticsRepo, logger)

	// Initialize HTTP handlers
	handlers := router.Handlers{
		Checkout:     handler.NewCheckoutHandler(orderService, logger),
		Coupon:       handler.NewCouponHandler(couponService, logger),
		Product:      handler.NewProductHandler(productService, logger),
		Verification: handler.NewVerificationHandler(verificationService, orderService, logger),
		Analytics:    handler.NewAnalyticsHandler(analyticsService, logger),
	}

	// Initialize rate limiter and router
	limiter := middleware.NewRateLimiter(cfg.Checkout.RateLimitPerMinute, cfg.Checkout.RateLimitBurst, logger)
	mux := router.New(handlers, limiter, cfg.Auth.APIKey, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
