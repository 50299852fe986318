package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/nkiryanov/exertrack/internal/db"
	"github.com/nkiryanov/exertrack/internal/handlers"
	"github.com/nkiryanov/exertrack/internal/logger"
	"github.com/nkiryanov/exertrack/internal/repository/postgres"
	"github.com/nkiryanov/exertrack/internal/service/exercise"
	"github.com/nkiryanov/exertrack/internal/service/user"
)

type ServerApp struct {
	ListenAddr string
	Handler    http.Handler
}

func NewServerApp(ctx context.Context, c *Config) (*ServerApp, error) {
	if c.DatabaseDSN == "" {
		return nil, errors.New("database DSN is required")
	}

	// Initialize logger
	var loggerOpts []logger.Option
	if c.LogFile != "" {
		loggerOpts = append(loggerOpts, logger.WithRotatingFile(c.LogFile))
	}
	l, err := logger.New(c.Environment, c.LogLevel, loggerOpts...)
	if err != nil {
		return nil, fmt.Errorf("error while initializing logger: %w", err)
	}

	// Connect to the database and run migrations
	pool, err := db.ConnectAndMigrate(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("error while connecting to db. Err: %w", err)
	}

	// Initialize repositories
	storage := postgres.NewStorage(pool)

	// Initialize services
	userService := user.NewService(user.Config{StrictEmptyList: c.StrictEmptyUsers}, storage.User())
	exerciseService := exercise.NewService(storage.User(), storage.Entry())

	// Metrics registry is optional, nil leaves /metrics unmounted
	var registry *prometheus.Registry
	if c.MetricsEnabled {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	mux := handlers.NewRouter(
		userService,
		exerciseService,
		l,
		registry,
	)

	return &ServerApp{
		ListenAddr: c.ListenAddr,
		Handler:    mux,
	}, nil
}

// Run starts http server and closes gracefully on context cancellation
func (s *ServerApp) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:    s.ListenAddr,
		Handler: s.Handler,
	}

	idleConnsClosed := make(chan struct{})
	srvCtx, srvCtxCancel := context.WithCancel(ctx)
	defer srvCtxCancel()

	go func() {
		<-srvCtx.Done()

		timeoutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(timeoutCtx); err == context.DeadlineExceeded {
			// Consider to use logger dependency
			slog.Error("HTTP server shutdown timeout exceeded, forcing shutdown...")
		}
		// Consider to use logger dependency
		slog.Info("HTTP server stopped")
		close(idleConnsClosed)
	}()

	// Listen and serve until context is cancelled; then close gracefully connections
	slog.Info("Starting server")
	err := httpServer.ListenAndServe()
	srvCtxCancel()
	<-idleConnsClosed

	return err
}
