package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	ginhandler "signup-service/internal/adapter/gin/handler"
	"signup-service/internal/config"

	"go.uber.org/zap"
)

// Server struct holds all server dependencies
type Server struct {
	Config   *config.Config
	Logger   *zap.Logger
	HTTP     *http.Server
	listener net.Listener
}

// New creates a new server instance serving the Gin router
func New(
	cfg *config.Config,
	l *zap.Logger,
	userHandler *ginhandler.UserHandler,
	healthHandler *ginhandler.HealthHandler,
) *Server {
	return NewWithHandler(cfg, l, SetupGinHandler(userHandler, healthHandler, l))
}

// NewWithHandler creates a server instance around an arbitrary handler
func NewWithHandler(cfg *config.Config, l *zap.Logger, h http.Handler) *Server {
	return &Server{
		Config: cfg,
		Logger: l,
		HTTP: &http.Server{
			Addr:              httpAddress(cfg),
			Handler:           h,
			ReadHeaderTimeout: time.Duration(cfg.App.ReadHeaderTimeoutSeconds) * time.Second,
			IdleTimeout:       120 * time.Second,
		},
	}
}

// Listen binds the configured port. Bind failures surface here, before any
// request is served.
func (s *Server) Listen() error {
	lc := net.ListenConfig{}
	lis, err := lc.Listen(context.Background(), "tcp", s.HTTP.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.HTTP.Addr, err)
	}
	s.listener = lis
	return nil
}

// Serve accepts connections on the bound listener until Shutdown is called
func (s *Server) Serve() error {
	if s.listener == nil {
		return errors.New("server is not listening")
	}

	s.Logger.Info("HTTP server running", zap.String("address", s.Addr()))

	if err := s.HTTP.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Addr returns the bound address, or the configured one before Listen
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.HTTP.Addr
}

// Shutdown stops accepting connections and waits for in-flight requests
// until ctx is done.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.HTTP.Shutdown(ctx)
}

func httpAddress(cfg *config.Config) string {
	return ":" + cfg.App.Port
}
