package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"studyBuddy/internal/app"
	"studyBuddy/internal/config"
	"studyBuddy/internal/logger"

	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	var (
		cfg *config.Config
		err error
	)
	if path := os.Getenv("STUDYBUDDY_CONFIG"); path != "" {
		cfg, err = config.LoadFile(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(cfg).Init(ctx)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}

	if err := a.Run(ctx); err != nil {
		logger.Error("App: Stopped with error", err, zap.String("addr", cfg.GetServerAddr()))
		return err
	}

	logger.Info("App: Stopped")
	return nil
}
