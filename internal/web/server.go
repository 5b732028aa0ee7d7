// Package web hosts the console's HTTP surface: the shell page and the
// JSON API the page drives.
package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"
)

// defaultShutdownTimeout caps how long a graceful shutdown may take.
const defaultShutdownTimeout = 5 * time.Second

// Config defines the inputs for the web server.
type Config struct {
	HTTPAddr string
}

// Server hosts the console HTTP server.
type Server struct {
	httpAddr   string
	httpServer *http.Server
}

// NewServer builds the console web server around the given handler.
func NewServer(config Config, handler http.Handler) (*Server, error) {
	addr := strings.TrimSpace(config.HTTPAddr)
	if addr == "" {
		return nil, errors.New("http addr is required")
	}
	if handler == nil {
		return nil, errors.New("handler is required")
	}
	return &Server{
		httpAddr: addr,
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// ListenAndServe runs the HTTP server until the context ends.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	serveErr := make(chan error, 1)
	log.Printf("console listening on %s", s.httpAddr)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}
