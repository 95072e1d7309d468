package devserver

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"
)

// Server runs the activities API over HTTP.
type Server struct {
	srv      *http.Server
	listener net.Listener
}

// Listen binds addr (use "127.0.0.1:0" for an ephemeral port) and prepares a
// server for store. Call Serve to start accepting.
func Listen(addr string, store *Store) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("devserver.Listen: %w", err)
	}
	return &Server{
		listener: ln,
		srv: &http.Server{
			Handler:      NewRouter(store),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}, nil
}

// URL is the base URL clients should use.
func (s *Server) URL() string {
	return "http://" + s.listener.Addr().String()
}

// Serve accepts connections until ctx is done, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.srv.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	log.Printf("devserver listening on %s", s.URL())

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("devserver.Serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.srv.Shutdown(shutCtx); err != nil {
		return fmt.Errorf("devserver.Serve: shutdown: %w", err)
	}
	log.Println("devserver stopped")
	return nil
}
