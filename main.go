package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/eazymytrip/backend/internal/adapter/amadeus"
	"github.com/eazymytrip/backend/internal/adapter/genai"
	"github.com/eazymytrip/backend/internal/assistant"
	"github.com/eazymytrip/backend/internal/config"
	"github.com/eazymytrip/backend/internal/service"
	"github.com/eazymytrip/backend/internal/store"
	"github.com/eazymytrip/backend/internal/travel"
	v1 "github.com/eazymytrip/backend/internal/transport/http/v1"
	"github.com/eazymytrip/backend/policy"
)

func main() {
	cfg := config.Load()

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()

	logger.Info().
		Int("http_port", cfg.HTTPPort).
		Str("database", cfg.DatabaseURL).
		Str("model", cfg.GeminiModel).
		Msg("starting backend")

	db, err := store.NewSQLiteStore(cfg.DatabaseURL, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize store")
	}
	defer db.Close()

	gen := genai.NewClient(cfg.GeminiBaseURL, cfg.GeminiAPIKey, cfg.GeminiTimeout)

	providers := amadeus.NewClient(cfg.AmadeusBaseURL, cfg.AmadeusClientID, cfg.AmadeusClientSecret, cfg.ProviderTimeout)
	flights := travel.NewFlightService(providers, gen, cfg.GeminiModel, logger)
	hotels := travel.NewHotelService(providers, gen, cfg.GeminiModel, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	policyEngine, err := policy.NewEngine(ctx, policy.DefaultPolicy)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize policy engine")
	}

	sessions := assistant.NewSessionStore(cfg.SessionIdleTTL, cfg.SessionSweepInterval, logger)
	sessions.StartEvictionLoop(ctx)

	engine := assistant.NewEngine(gen, cfg.GeminiModel, flights, hotels, policyEngine, sessions, logger)
	svc := service.New(db, engine, logger)
	h := v1.NewHandler(svc, cfg.JWTSecret)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	h.RegisterRoutes(e)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	logger.Info().Int("port", cfg.HTTPPort).Msg("API started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server gracefully")
	}

	logger.Info().Msg("stopped")
}
