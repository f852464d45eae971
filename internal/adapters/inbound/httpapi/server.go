package httpapi

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"
)

// Server wraps http.Server with hardened timeouts and an async start that
// surfaces immediate bind failures.
type Server struct {
	server *http.Server
}

// NewServer creates a server for the given address and handler.
func NewServer(addr string, handler http.Handler) (*Server, error) {
	if addr == "" {
		return nil, fmt.Errorf("address is required")
	}
	if handler == nil {
		return nil, fmt.Errorf("handler is required")
	}

	return &Server{
		server: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
	}, nil
}

// Start begins serving on a background goroutine. It waits briefly so that
// immediate startup errors (port in use, bad address) are returned to the
// caller instead of lost in a goroutine.
func (s *Server) Start() error {
	errChan := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("httpapi server error: %v", err)
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return err
	case <-time.After(100 * time.Millisecond):
		log.Printf("httpapi server listening on %s", s.server.Addr)
		return nil
	}
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		if err := s.server.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}
	}
	return nil
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.server.Addr
}
