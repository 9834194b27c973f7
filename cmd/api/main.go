package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/caregiver-app/picto-admin-backend/config"
	"github.com/caregiver-app/picto-admin-backend/internal/auth"
	"github.com/caregiver-app/picto-admin-backend/internal/bootstrap"
	"github.com/caregiver-app/picto-admin-backend/internal/stats"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	setupLogger(cfg)

	ctx := context.Background()

	fb, err := bootstrap.OpenFirebase(ctx, cfg.Firebase)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize firebase")
	}
	defer fb.Close()

	rdb := bootstrap.OpenRedis(cfg.Redis)
	if rdb != nil {
		defer rdb.Close()
	}

	router := bootstrap.NewRouter(cfg, fb, rdb)

	// Keep the dashboard cache warm while a cache is available.
	var refresher *stats.Refresher
	if rdb != nil {
		refresher = stats.NewRefresher(
			stats.NewService(fb.Firestore, auth.NewEmailDirectory(fb.Auth)),
			stats.NewRedisCache(rdb, stats.DefaultTTL),
		)
		if err := refresher.Start(); err != nil {
			log.Warn().Err(err).Msg("failed to start stats refresher")
			refresher = nil
		}
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Str("env", cfg.App.Environment).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	if refresher != nil {
		refresher.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}

	log.Info().Msg("server stopped")
}

func setupLogger(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.App.Environment != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}
