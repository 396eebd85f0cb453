// Command sender отправляет квитанции о Premium-доступе по событиям из RabbitMQ.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/magabrotheeeer/lesson-hub/internal/app/sender"
	"github.com/magabrotheeeer/lesson-hub/internal/config"
	"github.com/magabrotheeeer/lesson-hub/internal/lib/sl"
)

var errNoBroker = errors.New("rabbitmq url is required for the sender service")

func main() {
	cfg := config.MustLoad()

	level := slog.LevelDebug
	if cfg.Env == "prod" {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With(slog.String("service", "sender"))

	if err := run(cfg, logger); err != nil {
		logger.Error("sender stopped with error", sl.Err(err))
		os.Exit(1)
	}
	logger.Info("sender stopped gracefully")
}

func run(cfg *config.Config, logger *slog.Logger) error {
	if cfg.RabbitMQURL == "" {
		return errNoBroker
	}
	if cfg.SMTPHost == "" {
		logger.Warn("smtp host is empty, receipt delivery will fail until it is configured")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("starting sender", slog.String("env", cfg.Env))
	app, err := sender.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	return app.Run(ctx)
}
