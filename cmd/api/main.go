package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"travel-assistant/internal/api"
	custommw "travel-assistant/internal/api/middleware"
	"travel-assistant/internal/config"
	"travel-assistant/internal/modules/assistant"
	"travel-assistant/internal/modules/geo"
	"travel-assistant/internal/modules/knowledge"
	"travel-assistant/internal/modules/lodging"
	"travel-assistant/internal/modules/routing"
	"travel-assistant/internal/modules/travel"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	// 1. --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 2. --- Logger ---
	logger, err := newLogger(cfg.AppEnv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("starting travel-assistant", zap.String("port", cfg.ServerPort))

	// 3. --- Provider clients ---
	// One bounded client shared by every provider: a timed-out call is
	// treated like any other provider failure.
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout()}

	geoService := geo.NewService(cfg.GeocodeBaseURL, httpClient, logger)
	routingService := routing.NewService(cfg.RoutingBaseURL, httpClient, logger)
	knowledgeService := knowledge.NewService(cfg.KnowledgeBaseURL, httpClient, logger)
	lodgingService := lodging.NewService(cfg.PlacesBaseURL, cfg.PlacesAPIKey, httpClient, logger)

	// 4. --- Aggregator and assistant ---
	travelService := travel.NewService(
		geoService,
		routingService,
		knowledgeService,
		lodgingService,
		cfg.AllowedTravelModes(),
		logger,
	)
	travelHandler := travel.NewHandler(travelService)

	assistantService := assistant.NewService(
		cfg.OpenAIAPIKey,
		cfg.OpenAIModel,
		cfg.AllowedTravelModes(),
		travelService,
		logger,
	)
	assistantHandler := assistant.NewHandler(assistantService)

	// 5. --- HTTP server ---
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(custommw.RequestLogger(logger))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.ClientOrigin},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	api.SetupRoutes(e, travelHandler, assistantHandler)

	go func() {
		if err := e.Start(":" + cfg.ServerPort); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	// 6. --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down travel-assistant...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}

	logger.Info("travel-assistant stopped")
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
