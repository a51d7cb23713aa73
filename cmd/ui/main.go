package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"trade-journal-go/internal/config"
	"trade-journal-go/internal/journal"
	"trade-journal-go/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load application configuration
	cfg, err := config.LoadConfig("./configs")
	if err != nil {
		// We can't use the logger here because it's not initialized yet.
		panic(fmt.Sprintf("could not load config: %v", err))
	}

	// Initialize logger
	log, err := logger.NewLogger(cfg.Logger.Level, cfg.Logger.Format)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()
	log.Info("Configuration loaded", zap.String("journal_url", cfg.Journal.BaseURL))

	if cfg.Logger.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Wire the remote trade API into the screens
	client := journal.NewRestClient(&cfg.Journal, log)
	router, err := NewRouter(NewUIHandler(log.Named("ui"), client, cfg.UI))
	if err != nil {
		log.Fatal("Failed to parse templates", zap.Error(err))
	}

	// Setup context for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := NewServer(cfg.Server.Port, router, log).Run(ctx); err != nil {
		log.Error("UI server stopped with error", zap.Error(err))
		os.Exit(1)
	}
	log.Info("Shutdown complete.")
}
