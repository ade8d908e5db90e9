package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stonkbot/internal/bot"
	"stonkbot/internal/config"
	"stonkbot/internal/sched"
	"stonkbot/internal/store"

	"github.com/google/uuid"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadBotFromEnv()
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})).
		With("run_id", uuid.NewString())

	marketTZ, err := time.LoadLocation("America/New_York")
	if err != nil {
		logger.Error("load market timezone", "err", err)
		os.Exit(1)
	}

	st := store.New(cfg.DataDir)
	b, err := bot.New(cfg, logger, st)
	if err != nil {
		logger.Error("bot init failed", "err", err)
		os.Exit(1)
	}
	if err := b.Start(); err != nil {
		logger.Error("bot start failed", "err", err)
		os.Exit(1)
	}
	defer b.Close()

	scheduler := sched.New(logger, marketTZ, cfg.LeaderboardEvery)
	b.RegisterSchedule(scheduler)

	logger.Info("stonkbot running", "data_dir", cfg.DataDir)
	scheduler.Run(ctx)
	logger.Info("stonkbot shutdown")
}
