package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/UnknownOlympus/members/internal/config"
	"github.com/UnknownOlympus/members/internal/lib/logger/sl"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const defaultShutdownTimeout = 5 * time.Second

// NewAPIServer builds the public HTTP server for handler using the configured timeouts.
func NewAPIServer(cfg config.HTTPConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Address,
		Handler:           handler,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
}

// NewMonitoringMux serves Prometheus metrics from reg and the health check.
func NewMonitoringMux(log *slog.Logger, reg *prometheus.Registry, db DBPinger) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{EnableOpenMetrics: true}))
	mux.Handle("/healthz", NewHealthChecker(db, log))
	return mux
}

// StartMonitoringServer runs the metrics and health endpoints on port until ctx is cancelled.
func StartMonitoringServer(ctx context.Context, log *slog.Logger, reg *prometheus.Registry, db DBPinger, port int) {
	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(port),
		Handler:           NewMonitoringMux(log, reg, db),
		ReadHeaderTimeout: defaultShutdownTimeout,
	}

	if err := Serve(ctx, log.With(slog.String("server", "monitoring")), srv, defaultShutdownTimeout); err != nil {
		log.ErrorContext(ctx, "Monitoring server failed", sl.Err(err))
	}
}

// Serve runs srv until ctx is cancelled, then shuts it down within shutdownTimeout.
func Serve(ctx context.Context, log *slog.Logger, srv *http.Server, shutdownTimeout time.Duration) error {
	errCh := make(chan error, 1)

	go func() {
		log.InfoContext(ctx, "Starting HTTP server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("failed to serve on %s: %w", srv.Addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	log.InfoContext(ctx, "Shutting down HTTP server", "addr", srv.Addr)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server on %s: %w", srv.Addr, err)
	}

	return nil
}
