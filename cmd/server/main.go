package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"billkit/internal/config"
	"billkit/internal/email/noop"
	sesemail "billkit/internal/email/ses"
	"billkit/internal/handler"
	"billkit/internal/logger"
	"billkit/internal/port"
	"billkit/internal/repository/postgres"
	"billkit/internal/router"
	"billkit/internal/service"
	s3storage "billkit/internal/storage/s3"
)

const shutdownTimeout = 10 * time.Second

// @title                      billkit API
// @version                    1.0
// @description                GST totals and document verification.
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger.Setup(cfg.Log)

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	verificationRepo := postgres.NewVerificationRepo(db)
	sacRepo := postgres.NewSACRepo(db)

	// Initialize storage
	var storage port.ObjectStorage
	if cfg.Verification.ArchiveSnapshots {
		storage, err = s3storage.NewS3Client(&cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
	}

	sender, err := newEmailSender(cfg.Email)
	if err != nil {
		return fmt.Errorf("failed to initialize email sender: %w", err)
	}

	// Initialize services
	authSvc := service.NewAuthService(cfg.JWT)
	totalsSvc := service.NewTotalsService(cfg.Tax)
	catalogSvc := service.NewCatalogService(sacRepo)
	verificationSvc := service.NewVerificationService(verificationRepo, catalogSvc, storage, sender, cfg)

	if err := catalogSvc.Reload(context.Background()); err != nil {
		log.Warn().Err(err).Msg("SAC catalog unavailable, using built-in codes")
	}

	// Initialize handlers
	healthH := handler.NewHealthHandler(db)
	totalsH := handler.NewTotalsHandler(totalsSvc)
	catalogH := handler.NewCatalogHandler(catalogSvc)
	verificationH := handler.NewVerificationHandler(verificationSvc)

	// Setup router
	r := router.Setup(cfg, authSvc, healthH, totalsH, catalogH, verificationH)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Server.Port).Str("environment", cfg.Server.Environment).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	log.Info().Msg("server stopped")
	return nil
}

func newEmailSender(cfg config.EmailConfig) (port.EmailSender, error) {
	switch strings.ToLower(cfg.Provider) {
	case "ses":
		return sesemail.NewSESSender(cfg.Region, cfg.FromAddress, cfg.FromName, cfg.ConsoleURL)
	case "", "noop":
		return noop.NewNoopSender(cfg.ConsoleURL), nil
	default:
		return nil, fmt.Errorf("unknown email provider %q", cfg.Provider)
	}
}
