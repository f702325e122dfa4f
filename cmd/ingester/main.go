package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonesrussell/skypulse/internal/bootstrap"
	"github.com/jonesrussell/skypulse/internal/logger"
)

func main() {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		logger.Must(logger.Config{}).Fatal("failed to load config", logger.Error(err))
	}

	log, err := bootstrap.CreateLogger(cfg, "ingester")
	if err != nil {
		logger.Must(logger.Config{}).Fatal("failed to create logger", logger.Error(err))
	}
	defer func() { _ = log.Sync() }()

	comps, err := bootstrap.NewIngesterComponents(cfg, log)
	if err != nil {
		log.Fatal("failed to wire ingester", logger.Error(err))
	}
	defer comps.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := comps.Ingester.Run(ctx); err != nil {
		// A lost stream connection exits nonzero so the supervisor restarts
		// the subscription from "now".
		log.Error("ingester exited", logger.Error(err))
		stop()
		comps.Close()
		_ = log.Sync()
		os.Exit(1)
	}

	log.Info("ingester stopped gracefully")
}
