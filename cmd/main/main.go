package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/UnknownOlympus/members/internal/api"
	"github.com/UnknownOlympus/members/internal/config"
	"github.com/UnknownOlympus/members/internal/lib/logger/sl"
	"github.com/UnknownOlympus/members/internal/metrics"
	"github.com/UnknownOlympus/members/internal/repository"
	"github.com/UnknownOlympus/members/internal/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// main is the entry point of the application.
func main() {
	var wgr sync.WaitGroup

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad()

	logger := sl.New(cfg.Env, os.Stdout)

	// Create a separate registry for metrics with exemplar
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	dtb, err := repository.NewDatabase(ctx, cfg.Postgres)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err) //nolint:gocritic // nothing to release yet
	}
	defer dtb.Close()

	employeeRepo := repository.NewEmployeeRepository(dtb, appMetrics)
	apiServer := server.NewAPIServer(cfg.HTTP, api.NewRouter(logger, employeeRepo, appMetrics))

	wgr.Add(2) //nolint:mnd // api and monitoring servers

	go func() {
		defer wgr.Done()
		server.StartMonitoringServer(ctx, logger, reg, dtb, cfg.Monitoring.Port)
	}()

	go func() {
		defer wgr.Done()
		logger.InfoContext(ctx, "Starting members API")
		if serveErr := server.Serve(ctx, logger, apiServer, cfg.HTTP.ShutdownTimeout); serveErr != nil {
			logger.ErrorContext(ctx, "Members API failed", sl.Err(serveErr))
			stop()
		}
		logger.InfoContext(ctx, "Members API stopped.")
	}()

	logger.InfoContext(ctx, "Application started. Press Ctrl+C to stop.")

	wgr.Wait()

	logger.InfoContext(ctx, "Application stopped gracefully...")
}
