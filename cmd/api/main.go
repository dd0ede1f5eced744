package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dafibh/fortuna/fortuna-tracker/internal/config"
	"github.com/dafibh/fortuna/fortuna-tracker/internal/domain"
	"github.com/dafibh/fortuna/fortuna-tracker/internal/handler"
	"github.com/dafibh/fortuna/fortuna-tracker/internal/middleware"
	"github.com/dafibh/fortuna/fortuna-tracker/internal/repository/storeapi"
	"github.com/dafibh/fortuna/fortuna-tracker/internal/service"
	"github.com/dafibh/fortuna/fortuna-tracker/internal/websocket"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// @title Fortuna Tracker API
// @version 1.0
// @description Personal finance dashboard over a remote transaction and goal store
// @BasePath /api/v1
func main() {
	// Initialize zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Store client
	store := storeapi.NewClient(storeapi.Config{
		BaseURL: cfg.Store.BaseURL,
		Timeout: cfg.Store.Timeout,
	}, log.Logger)
	log.Info().Str("store", store.BaseURL()).Dur("timeout", cfg.Store.Timeout).Msg("Using finance store")

	// Realtime events
	hub := websocket.NewHub()

	// Initialize services
	registry := domain.DefaultCategoryRegistry()
	financeService := service.NewFinanceService(store, registry, hub, log.Logger, service.FinanceServiceConfig{
		StrictSplitKinds: cfg.StrictSplitKinds,
	})
	dashboardService := service.NewDashboardService(financeService, registry, nil)

	// Initial load; the API still starts and reports the error through /status
	loadCtx, loadCancel := context.WithTimeout(context.Background(), cfg.Store.Timeout)
	if err := financeService.Load(loadCtx); err != nil {
		log.Error().Err(err).Msg("Initial data load failed")
	} else {
		snapshot := financeService.Snapshot()
		log.Info().
			Int("transactions", len(snapshot.Transactions)).
			Int("goals", len(snapshot.Goals)).
			Msg("Loaded finance data")
	}
	loadCancel()

	// Background refresh
	var refreshWorker *service.RefreshWorker
	if cfg.Store.ReloadInterval > 0 {
		refreshWorker = service.NewRefreshWorker(financeService, log.Logger, service.RefreshWorkerConfig{
			Interval: cfg.Store.ReloadInterval,
			Timeout:  cfg.Store.Timeout,
		})
		refreshWorker.Start(context.Background())
	}

	// Rate limiter
	rateLimiter := middleware.NewRateLimiterWithConfig(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
	defer rateLimiter.Stop()

	// Initialize handlers
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	transactionHandler := handler.NewTransactionHandler(financeService, dashboardService)
	goalHandler := handler.NewGoalHandler(financeService, dashboardService)
	categoryHandler := handler.NewCategoryHandler(registry)
	statusHandler := handler.NewStatusHandler(financeService)
	wsHandler := handler.NewWebSocketHandler(hub, cfg.CORSOrigins, financeService)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Request ID middleware
	e.Use(echomiddleware.RequestID())

	// CORS middleware
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		MaxAge:       86400,
	}))

	// Security headers middleware (helmet-like)
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		HSTSMaxAge:         31536000,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}))

	// Request logging middleware with zerolog
	e.Use(zerologMiddleware())

	// Recovery middleware
	e.Use(echomiddleware.Recover())

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Register API routes
	handler.RegisterRoutes(e, rateLimiter, dashboardHandler, transactionHandler, goalHandler, categoryHandler, statusHandler, wsHandler)

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("Starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	if refreshWorker != nil {
		refreshWorker.Stop()
	}
	hub.CloseAll()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// zerologMiddleware returns a middleware that logs requests using zerolog
func zerologMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			event := log.Info()
			if res.Status >= http.StatusInternalServerError {
				event = log.Warn()
			}
			event.
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", res.Status).
				Dur("latency", time.Since(start)).
				Str("request_id", res.Header().Get(echo.HeaderXRequestID)).
				Msg("request")

			return nil
		}
	}
}
