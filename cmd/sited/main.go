package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"institute-site-backend/config"
	"institute-site-backend/internal/api"
	"institute-site-backend/internal/logger"
	"institute-site-backend/internal/session"
	"institute-site-backend/internal/store"
)

func main() {
	// Load configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", configPath).Msg("failed to load configuration")
	}

	lgr := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Pretty: cfg.Logging.Format == "text",
	})
	lgr.Info().Str("path", configPath).Msg("configuration loaded")

	if cfg.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	appStore, err := store.Open(ctx, &cfg.Database, logger.Component(lgr, "store"))
	cancel()
	if err != nil {
		lgr.Fatal().Err(err).Str("driver", cfg.Database.Driver).Msg("failed to open store")
	}
	lgr.Info().Str("driver", cfg.Database.Driver).Msg("data store initialized")

	sessions := session.NewManager(cfg.Session)
	router, err := api.NewRouter(appStore, sessions, cfg.Server, logger.Component(lgr, "http"))
	if err != nil {
		lgr.Fatal().Err(err).Msg("failed to build router")
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start the server in a goroutine
	go func() {
		lgr.Info().Int("port", cfg.Server.Port).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lgr.Fatal().Err(err).Msg("HTTP server ListenAndServe")
		}
	}()

	// Setup signal handling for graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	// Block until a signal is received.
	<-stop
	lgr.Info().Msg("shutdown signal received, stopping services")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		lgr.Error().Err(err).Msg("HTTP server Shutdown")
	}
	if err := appStore.Close(shutdownCtx); err != nil {
		lgr.Error().Err(err).Msg("failed to close store")
	}

	lgr.Info().Msg("server gracefully stopped")
}
