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

	log, err := bootstrap.CreateLogger(cfg, "processor")
	if err != nil {
		logger.Must(logger.Config{}).Fatal("failed to create logger", logger.Error(err))
	}
	defer func() { _ = log.Sync() }()

	comps, err := bootstrap.NewProcessorComponents(cfg, log)
	if err != nil {
		log.Fatal("failed to wire processor", logger.Error(err))
	}
	defer comps.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Run blocks until the context is cancelled; the in-flight delivery is
	// finished and acknowledged before it returns.
	if err := comps.Consumer.Run(ctx); err != nil {
		log.Error("consumer exited", logger.Error(err))
		stop()
		comps.Close()
		_ = log.Sync()
		os.Exit(1)
	}

	log.Info("processor stopped gracefully")
}
