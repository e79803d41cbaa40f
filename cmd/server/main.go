// Package main - Entry point for the cloudguide API server
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"cloudguide/adapters/rates"
	"cloudguide/adapters/storage"
	"cloudguide/api"
	"cloudguide/core/engine"
	"cloudguide/internal/config"
	"cloudguide/internal/logging"
	"cloudguide/internal/metrics"
)

const version = "1.0.0"

func main() {
	configPath := flag.String("config", "", "Path to a JSON or YAML config file")
	addr := flag.String("addr", "", "Server address (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.Server.Address = *addr
	}
	config.Set(cfg)

	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
	defer logging.Sync()

	if err := run(cfg); err != nil {
		logging.Fatal("server failed", zap.Error(err))
	}
}

func run(cfg *config.Config) error {
	m := metrics.Default()

	source := rates.NewMetricsSource(
		rates.NewCachingSource(rates.New(cfg.Pricing.RatesFile), cfg.Pricing.CacheTTL()),
		m,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Fail fast on a broken rate file
	if _, err := source.Load(ctx); err != nil {
		return err
	}

	store, err := storage.Open(storage.Backend(cfg.Storage.Backend), storage.Options{
		Path: cfg.Storage.Path,
		DSN:  cfg.Storage.DSN,
	})
	if err != nil {
		return err
	}
	defer store.Close()

	eng := engine.New(source, engine.Config{
		Currency: cfg.Pricing.DefaultCurrency,
		Version:  version,
	})

	server := api.NewServer(eng, store, m, api.Options{
		Address:      cfg.Server.Address,
		ReadTimeout:  cfg.Server.ReadTimeout(),
		WriteTimeout: cfg.Server.WriteTimeout(),
		RateLimit:    cfg.Server.RateLimit,
		Burst:        cfg.Server.Burst,
		Version:      version,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logging.Info("cloudguide server ready",
		zap.String("version", version),
		zap.String("address", cfg.Server.Address),
		zap.String("storage", cfg.Storage.Backend),
		zap.String("rates", source.Name()),
	)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logging.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
