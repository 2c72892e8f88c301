// Package app wires configuration, infrastructure and domain components
// into a runnable bot.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	coreconfig "gastobot/core/config"
	"gastobot/core/database"
	"gastobot/core/logger"
	coretelegram "gastobot/core/telegram"
	"gastobot/core/telegram/middleware"
	"gastobot/internal/archive"
	"gastobot/internal/flow"
	"gastobot/internal/ratelimit"
	"gastobot/internal/router"
	"gastobot/internal/session"
	"gastobot/internal/sheets"
	"gastobot/internal/telegram"
)

// Run builds the bot and blocks until ctx is cancelled or startup fails.
func Run(ctx context.Context, cfg *coreconfig.Config) error {
	if cfg == nil {
		return fmt.Errorf("app: nil config")
	}

	sessions := session.NewMemoryStore()
	limiter := ratelimit.New(
		time.Duration(cfg.Limiter.WindowMS)*time.Millisecond,
		time.Duration(cfg.Limiter.IdleEvictSeconds)*time.Second,
	)

	sink, cleanup, err := buildSink(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	resolver := telegram.NewFileResolver(cfg.Telegram.Token)
	single := flow.NewSingle(sink, resolver, sessions)
	multi := flow.NewMulti(sink, resolver, sessions)
	rt := router.New(sessions, limiter, single, multi)

	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go limiter.Run(sweepCtx, time.Duration(cfg.Limiter.SweepIntervalSeconds)*time.Second)

	opts := coretelegram.RunOptions{
		Config: cfg,
		Middlewares: []coretelegram.Middleware{
			{Name: "recover", Use: middleware.RecoverMiddleware},
			{Name: "logging", Use: middleware.LoggerMiddleware},
			{Name: "session", Use: telegram.SessionMiddleware(sessions)},
		},
		Routes:  telegram.Routes(rt),
		OnError: telegram.OnError,
		OnStart: func(_ context.Context, runtime coretelegram.Runtime) error {
			resolver.Bind(runtime.Bot)
			logger.Info(ctx, "app", "ready",
				slog.String("mode", cfg.Telegram.RunMode),
			)
			return nil
		},
		OnStop: func(_ context.Context, _ coretelegram.Runtime) error {
			stopSweep()
			return nil
		},
	}

	return coretelegram.RunTelegram(ctx, opts)
}

// buildSink constructs the sheets sink and, when configured, wraps it with
// the Postgres archive mirror.
func buildSink(ctx context.Context, cfg *coreconfig.Config) (sheets.Sink, func(), error) {
	appender, err := sheets.NewAppender(ctx, cfg.Sheets)
	if err != nil {
		return nil, nil, fmt.Errorf("app: sheets sink: %w", err)
	}

	if !cfg.ArchiveEnabled() {
		return appender, func() {}, nil
	}

	if err := database.RunMigrations(cfg.Database); err != nil {
		return nil, nil, fmt.Errorf("app: migrations: %w", err)
	}
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("app: database: %w", err)
	}

	cleanup := func() {
		if err := db.Close(); err != nil {
			logger.Warn(context.Background(), "db", "close.failed",
				slog.String("err", err.Error()),
			)
		}
	}
	return archive.NewSink(appender, archive.NewRepository(db)), cleanup, nil
}
