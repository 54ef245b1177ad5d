// Package server runs the HTTP services: lifecycle, graceful shutdown and
// the middleware every tetris service shares.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
)

// Server limits.
const (
	ReadHeaderTimeout = 5 * time.Second
	ShutdownTimeout   = 5 * time.Second
)

// Server wraps an http.Server for one named service.
type Server struct {
	name   string
	http   *http.Server
	logger *log.Logger
}

// New builds a server listening on addr. The handler is wrapped with the
// request ID, tracing, logging and recovery middleware.
func New(name, addr string, h http.Handler, logger *log.Logger) *Server {
	return &Server{
		name:   name,
		logger: logger,
		http: &http.Server{
			Addr:              addr,
			Handler:           Chain(h, Recover(logger), Logging(logger), Tracing(name), RequestID),
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
	}
}

// Name returns the service name.
func (s *Server) Name() string { return s.name }

// Addr returns the configured listen address.
func (s *Server) Addr() string { return s.http.Addr }

// Run listens on the configured address and serves until ctx ends.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return fmt.Errorf("server: %s: listen: %w", s.name, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx ends, then shuts down
// gracefully within ShutdownTimeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	serveErr := make(chan error, 1)
	s.logger.Info("listening", "service", s.name, "address", ln.Addr().String())
	go func() {
		serveErr <- s.http.Serve(ln)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down", "service", s.name)
		if err := s.http.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server: %s: shutdown: %w", s.name, err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: %s: serve: %w", s.name, err)
	}
}
