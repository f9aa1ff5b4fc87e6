// cmd/server/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/codr1/CourtPlay/internal/api/auth"
	"github.com/codr1/CourtPlay/internal/booking"
	"github.com/codr1/CourtPlay/internal/config"
	"github.com/codr1/CourtPlay/internal/db"
	"github.com/codr1/CourtPlay/internal/email"
	"github.com/codr1/CourtPlay/internal/ratelimit"
	"github.com/codr1/CourtPlay/internal/scheduler"
)

const shutdownTimeout = 30 * time.Second

func setupLogger(cfg *config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if cfg.Features.EnableDebug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	if cfg.App.Environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	log.Logger = log.With().Str("app", cfg.App.Name).Logger()
	// Goroutines detached from a request still log through the global logger.
	zerolog.DefaultContextLogger = &log.Logger
}

func defaultConfigPath() string {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return path
	}
	return "config/app.yaml"
}

func bookingConfig(cfg *config.Config) (booking.Config, error) {
	opening, err := booking.ParseTimeOfDay(cfg.Booking.Opening)
	if err != nil {
		return booking.Config{}, fmt.Errorf("booking opening: %w", err)
	}
	closing, err := booking.ParseTimeOfDay(cfg.Booking.Closing)
	if err != nil {
		return booking.Config{}, fmt.Errorf("booking closing: %w", err)
	}
	return booking.Config{
		Grid: booking.GridConfig{
			Location:    cfg.Booking.Location(),
			Opening:     opening,
			Closing:     closing,
			SlotMinutes: cfg.Booking.SlotMinutes,
		},
		Policy: booking.StatePolicy{
			GuardPastCancellation: cfg.Booking.AdminStateChange.GuardPastCancellation,
			AllowReactivation:     cfg.Booking.AdminStateChange.AllowReactivation,
		},
	}, nil
}

func newEmailSender(ctx context.Context, cfg config.EmailConfig, environment string) email.EmailSender {
	if !cfg.Enabled() {
		if environment == "development" {
			log.Info().Msg("Email not configured; booking emails go to the log")
			return email.LogSender{}
		}
		log.Warn().Msg("Email not configured; booking emails are disabled")
		return nil
	}
	client, err := email.NewSESClient(ctx, cfg)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create SES client; booking emails are disabled")
		return nil
	}
	return client
}

func main() {
	configPath := flag.String("config", defaultConfigPath(), "path to the YAML configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Str("config_path", *configPath).Msg("Failed to load configuration")
	}
	setupLogger(cfg)

	database, err := db.NewFromConfig(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer database.Close()

	bookingCfg, err := bookingConfig(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid booking configuration")
	}
	manager, err := booking.NewManager(database, bookingCfg, nil)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create booking manager")
	}

	sessionTTL, err := cfg.SessionTTL()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid session configuration")
	}
	sessions := auth.NewMemoryStore(sessionTTL, nil)
	auth.SetCookieSecurity(cfg.App.Environment != "development")

	limiter := ratelimit.New(nil)
	defer limiter.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sender := newEmailSender(ctx, cfg.Email, cfg.App.Environment)
	notifier := email.NewNotifier(database.Queries, sender, cfg.App.Name, bookingCfg.Grid.Location)
	defer notifier.Wait()

	sched, err := scheduler.New()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create scheduler")
	}
	if err := scheduler.RegisterMaintenanceJobs(sched, cfg.Scheduler, manager, sessions); err != nil {
		log.Fatal().Err(err).Msg("Failed to register scheduler jobs")
	}

	server := newServer(cfg, serverDeps{
		db:       database,
		manager:  manager,
		sessions: sessions,
		limiter:  limiter,
		notifier: notifier,
	})

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		sched.Start()
		<-ctx.Done()
		return sched.Stop()
	})

	g.Go(func() error {
		log.Info().
			Int("port", cfg.App.Port).
			Str("environment", cfg.App.Environment).
			Bool("email_enabled", notifier.Enabled()).
			Msg("Starting server")
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		log.Info().Msg("Shutting down server")
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Server terminated with error")
		os.Exit(1)
	}
}
