package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	coreconfig "gastobot/core/config"
	"gastobot/core/logger"
	"gastobot/internal/app"

	"github.com/joho/godotenv"
)

const defaultConfigPath = "config.yaml"

func main() {
	if err := run(); err != nil {
		log.Printf("fatal: %v", err)
		os.Exit(1)
	}
}

func run() error {
	// .env is optional; envconfig picks the variables up either way.
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = defaultConfigPath
	}

	cfg, err := coreconfig.Load(cfgPath)
	if err != nil {
		return err
	}

	if err := logger.Init(cfg); err != nil {
		return err
	}
	defer func() {
		if err := logger.Shutdown(); err != nil {
			log.Printf("logger shutdown error: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, cfg); err != nil {
		logger.L.With("component", "app").Error("bot stopped",
			slog.String("event", "fatal"),
			slog.String("err", err.Error()),
		)
		return err
	}

	logger.L.With("component", "app").Info("bot stopped",
		slog.String("event", "shutdown"),
	)
	return nil
}
