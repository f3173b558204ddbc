package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/xtding233/pull-predictor/internal/config"
	"github.com/xtding233/pull-predictor/internal/game"
	"github.com/xtding233/pull-predictor/internal/logging"
	"github.com/xtding233/pull-predictor/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "logging: %v\n", err)
		os.Exit(1)
	}
	defer logging.Sync()
	log := logging.L()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(server.Options{
		Addr:          cfg.Addr,
		CacheSize:     cfg.CacheSize,
		CacheTTL:      cfg.CacheTTL,
		WatchInterval: cfg.WatchInterval,
	}, game.NewLoader(cfg.ConfigDir), log)

	if err := srv.Run(ctx); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
