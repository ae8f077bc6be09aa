// Package server exposes the console REST API over echo and maps gateway
// and cluster errors onto HTTP statuses.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/armadakv/console-sub000/pkg/cluster"
	"github.com/armadakv/console-sub000/pkg/history"
	"github.com/armadakv/console-sub000/pkg/log"
	"github.com/armadakv/console-sub000/pkg/status"
)

// Config carries the server settings.
type Config struct {
	// RequestTimeout bounds one inbound request end to end, including the
	// status fan-out.
	RequestTimeout time.Duration
	// GracefulShutdownTimeout bounds draining on shutdown.
	GracefulShutdownTimeout time.Duration
	// ScanLimit is the default page size for key scans.
	ScanLimit int
}

// Server is the console HTTP server.
type Server struct {
	registry                *cluster.Registry
	aggregator              *status.Aggregator
	history                 *history.Store // nil when history is disabled
	requestTimeout          time.Duration
	gracefulShutdownTimeout time.Duration
	scanLimit               int
	echo                    *echo.Echo
}

// New creates the server and wires its routes. historyStore may be nil.
func New(registry *cluster.Registry, aggregator *status.Aggregator, historyStore *history.Store, cfg Config) *Server {
	s := &Server{
		registry:                registry,
		aggregator:              aggregator,
		history:                 historyStore,
		requestTimeout:          cfg.RequestTimeout,
		gracefulShutdownTimeout: cfg.GracefulShutdownTimeout,
		scanLimit:               cfg.ScanLimit,
		echo:                    echo.New(),
	}
	s.setupRoutes()
	return s
}

// Start runs the server until SIGINT/SIGTERM, then shuts down gracefully.
func (s *Server) Start(addr string) error {
	go func() {
		log.Info().Str("addr", addr).Msg("Starting console server")
		if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	return s.Shutdown()
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown() error {
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), s.gracefulShutdownTimeout)
	defer cancel()

	return s.echo.Shutdown(ctx)
}

func (s *Server) setupRoutes() {
	s.echo.HideBanner = true
	s.echo.HidePort = true

	// Add middleware
	s.echo.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	s.echo.Use(middleware.Logger())
	s.echo.Use(middleware.Recover())
	s.echo.Use(middleware.CORS())

	// Register routes
	s.echo.GET("/status", s.StatusHandler)
	s.echo.GET("/status/history", s.StatusHistoryHandler)
	s.echo.GET("/cluster", s.ClusterHandler)
	s.echo.GET("/servers", s.ServersHandler)
	s.echo.GET("/tables", s.ListTablesHandler)
	s.echo.POST("/tables", s.CreateTableHandler)
	s.echo.DELETE("/tables/:name", s.DeleteTableHandler)
	s.echo.GET("/kv/:table", s.ListKeysHandler)
	s.echo.GET("/kv/:table/:key", s.GetKeyHandler)
	s.echo.PUT("/kv/:table", s.PutKeyHandler)
	s.echo.DELETE("/kv/:table", s.DeleteKeyHandler)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// requestContext derives the per-request deadline every handler works under.
func (s *Server) requestContext(ctx echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx.Request().Context(), s.requestTimeout)
}

// client returns the shared cluster client, connecting on first use.
func (s *Server) client(ctx context.Context) (cluster.Client, error) {
	return s.registry.Get(ctx)
}
