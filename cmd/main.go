package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"taxidispatch/config"
	"taxidispatch/pkg/api"
	"taxidispatch/pkg/bot"
	"taxidispatch/pkg/logger"
	"taxidispatch/pkg/metrics"
	"taxidispatch/service"
	"taxidispatch/storage"
	"taxidispatch/storage/memory"
	"taxidispatch/storage/postgres"
	"taxidispatch/storage/supabase"
)

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

// run returns instead of exiting so deferred shutdown always happens. Errors
// are logged where they occur.
func run() error {
	// 1. Load Config
	cfg := config.Load()

	// 2. Initialize Logger
	log := logger.New(cfg.ServiceName, cfg.LoggerLevel)

	// 3. Metrics registry shared by services and the /metrics endpoint
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	// 4. Storage backend
	stg, err := openStorage(cfg, log)
	if err != nil {
		log.Error("Failed to open storage", logger.String("backend", cfg.StorageBackend), logger.Error(err))
		return err
	}
	defer stg.Close()

	// 5. Services and HTTP surface
	svc := service.New(stg, log, m, service.Options{EnrichConcurrency: cfg.EnrichConcurrency})
	router := api.NewRouter(svc, log, api.Options{
		Gatherer:       reg,
		Metrics:        m,
		RequestTimeout: cfg.RequestTimeout,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 6. Staff Telegram bot, when a token is configured
	if cfg.TelegramBotToken != "" {
		staffBot, err := bot.New(&cfg, svc, log)
		if err != nil {
			log.Error("Failed to initialize staff bot", logger.Error(err))
			return err
		}
		go staffBot.Start()
		defer staffBot.Stop()
	}

	// 7. Serve until a signal or a listener failure
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	log.Info("Dispatch API is listening", logger.Int("port", cfg.HTTPPort), logger.String("backend", cfg.StorageBackend))
	return serve(srv, quit, log)
}

// serve runs srv until quit fires or the listener fails. On quit the server
// is shut down gracefully.
func serve(srv *http.Server, quit <-chan os.Signal, log logger.ILogger) error {
	serveErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case <-quit:
	case err := <-serveErr:
		log.Error("HTTP server stopped", logger.Error(err))
		return err
	}

	log.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Shutdown did not complete", logger.Error(err))
		return err
	}
	return nil
}

func openStorage(cfg config.Config, log logger.ILogger) (storage.IStorage, error) {
	switch cfg.StorageBackend {
	case config.BackendPostgres:
		return postgres.New(context.Background(), cfg, log)
	case config.BackendSupabase:
		return supabase.New(cfg, log)
	case config.BackendMemory:
		log.Info("Using in-memory storage; data is lost on restart")
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
