package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/FaranAlam/faran-portfolio/internal/auth"
	"github.com/FaranAlam/faran-portfolio/internal/config"
	"github.com/FaranAlam/faran-portfolio/internal/db"
	"github.com/FaranAlam/faran-portfolio/internal/handlers"
	"github.com/FaranAlam/faran-portfolio/internal/logging"
	"github.com/FaranAlam/faran-portfolio/internal/mailer"
	"github.com/FaranAlam/faran-portfolio/internal/metrics"
	"github.com/FaranAlam/faran-portfolio/internal/uploads"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("invalid configuration")
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx := context.Background()
	store, err := db.NewStore(ctx, cfg.DatabaseURL)
	if err != nil {
		logging.Fatal().Err(err).Msg("db connect failed")
	}
	defer store.Close()

	if err := db.Migrate(cfg.DatabaseURL); err != nil {
		logging.Fatal().Err(err).Msg("db migrate failed")
	}

	authSvc, err := auth.NewService(store, auth.NewHasher(cfg.BcryptCost), auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTExpiresIn))
	if err != nil {
		logging.Fatal().Err(err).Msg("auth setup failed")
	}
	if _, err := authSvc.Bootstrap(ctx, cfg.DefaultAdmin); err != nil {
		logging.Fatal().Err(err).Msg("admin bootstrap failed")
	}

	mail := mailer.New(cfg.SMTP)
	if !mail.Enabled() {
		logging.Warn().Msg("SMTP not configured; email notifications disabled")
	}

	images := uploads.New(cfg.UploadDir)
	if err := images.Init(); err != nil {
		logging.Fatal().Err(err).Str("dir", cfg.UploadDir).Msg("upload dir unavailable")
	}

	poolStats := metrics.NewPoolStatsCollector(store.Pool())
	poolStats.Start(15 * time.Second)
	defer poolStats.Stop()

	router := handlers.NewRouter(handlers.Deps{
		Store:              store,
		Auth:               authSvc,
		Notifier:           mail,
		Mail:               mail,
		Images:             images,
		RateLimits:         cfg.RateLimits,
		CorsAllowedOrigins: cfg.CorsAllowedOrigins,
		TrustedProxies:     cfg.TrustedProxies,
		MaxBodyBytes:       cfg.MaxBodyBytes,
		UploadDir:          cfg.UploadDir,
		DefaultAuthor:      cfg.BlogDefaultAuthor,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	go func() {
		logging.Info().Str("port", cfg.Port).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("server error")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	logging.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("shutdown error")
	}
	if err := mail.Close(shutdownCtx); err != nil {
		logging.Warn().Err(err).Msg("pending notifications dropped")
	}
}
