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

	log, err := bootstrap.CreateLogger(cfg, "httpd")
	if err != nil {
		logger.Must(logger.Config{}).Fatal("failed to create logger", logger.Error(err))
	}
	defer func() { _ = log.Sync() }()

	comps, err := bootstrap.NewHTTPComponents(cfg, log)
	if err != nil {
		log.Fatal("failed to wire stats API", logger.Error(err))
	}
	defer comps.Close()

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- comps.Server.Start()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		log.Error("server error", logger.Error(err))
		comps.Close()
		_ = log.Sync()
		os.Exit(1)
	case sig := <-shutdown:
		log.Info("shutdown signal received", logger.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), bootstrap.HTTPShutdownTimeout())
		defer cancel()

		if err := comps.Server.Shutdown(ctx); err != nil {
			log.Error("graceful shutdown failed", logger.Error(err))
			comps.Close()
			_ = log.Sync()
			os.Exit(1)
		}

		log.Info("server stopped gracefully")
	}
}
