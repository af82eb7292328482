package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/splitq/splitq/internal/api"
	"github.com/splitq/splitq/internal/auth"
	"github.com/splitq/splitq/internal/config"
	"github.com/splitq/splitq/internal/reminder"
	"github.com/splitq/splitq/internal/storage/sqlite"
	"github.com/splitq/splitq/pkg/logging"
)

func main() {
	cfg := config.MustLoad()
	logging.Setup(cfg.Env)

	slog.Info("Starting splitq",
		"env", cfg.Env,
		"host", cfg.HTTP.Host,
		"port", cfg.HTTP.Port,
	)

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	services := api.NewServices(store)
	authenticator := auth.NewPasswordAuthenticator(store)
	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	server := api.New(cfg, services, authenticator, jwtManager)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Reminder.Enabled {
		sender := reminder.NewSMTPSender(cfg.Reminder.SMTPAddr, cfg.Reminder.From)
		job := reminder.NewJob(services.Debts, sender)
		reminder.NewScheduler(job, cfg.Reminder.Interval).Start(ctx)
	}

	go server.MustStart()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	slog.Info("Shutdown signal received")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Stop(shutdownCtx); err != nil {
		slog.Error("Failed to stop server cleanly", "error", err)
	}
}
