package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// readHeaderTimeout is the timeout for reading request headers.
const readHeaderTimeout = 10 * time.Second

// shutdownTimeout is the timeout for graceful server shutdown.
const shutdownTimeout = 5 * time.Second

// Server represents the HTTP API server for Glance.
type Server struct {
	Token       string
	Addr        string // Set dynamically from flags
	hasHandlers bool
	mux         *http.ServeMux // Custom mux to avoid global collisions
	server      HTTPServer     // Optional injected server for testing
}

// HTTPServer is the server surface Start depends on, injectable for
// tests.
type HTTPServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

// NewServer is a factory function creating a new Server instance.
// An empty token disables authentication. The server parameter is
// optional and allows dependency injection for testing.
func NewServer(token, addr string, server ...HTTPServer) *Server {
	var injectedServer HTTPServer
	if len(server) > 0 {
		injectedServer = server[0]
	}

	api := &Server{
		Token:  token,
		Addr:   addr,
		mux:    http.NewServeMux(),
		server: injectedServer,
	}
	logrus.WithField("addr", api.Addr).Debug("Initialized new API server")

	return api
}

// Addr formats an API address string from host and port, bracketing
// IPv6 hosts.
func Addr(host, port string) string {
	address := host + ":" + port
	if host != "" && strings.Contains(host, ":") && net.ParseIP(host) != nil {
		address = "[" + host + "]:" + port
	}

	return address
}

// RegisterFunc registers an HTTP handler function for the given pattern.
func (s *Server) RegisterFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.mux.HandleFunc(pattern, s.requireToken(http.HandlerFunc(handler)))
	s.hasHandlers = true
}

// RegisterHandler registers an HTTP handler for the given pattern.
func (s *Server) RegisterHandler(pattern string, handler http.Handler) {
	s.mux.Handle(pattern, s.requireToken(handler))
	s.hasHandlers = true
}

// ServeHTTP dispatches a request on the server's mux, making Server
// usable as a plain http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// requireToken wraps a handler with bearer-token authentication when a
// token is configured.
func (s *Server) requireToken(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.Token != "" {
			auth := r.Header.Get("Authorization")
			if auth == "" || !strings.HasPrefix(auth, "Bearer ") ||
				strings.TrimPrefix(auth, "Bearer ") != s.Token {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)

				return
			}
		}

		next.ServeHTTP(w, r)
	}
}

// Start starts the HTTP API server.
// If blocking is true, it runs in the foreground and blocks until
// shutdown. If blocking is false, it runs in the background and shuts
// down when ctx is canceled.
func (s *Server) Start(ctx context.Context, blocking bool) error {
	if !s.hasHandlers {
		logrus.Info("No handlers registered, skipping API start")

		return nil
	}

	server := s.server
	if server == nil {
		server = &http.Server{
			Addr:              s.Addr,
			Handler:           s.mux,
			ReadHeaderTimeout: readHeaderTimeout,
			BaseContext:       func(_ net.Listener) context.Context { return ctx },
		}
	}

	logrus.WithField("addr", s.Addr).Info("Starting HTTP API server")

	if blocking {
		return runHTTPServer(ctx, server)
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Error("HTTP server failed: ", err)
		}
	}()

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logrus.WithError(err).Error("Failed to shutdown server")
		}
	}()

	return nil
}

// runHTTPServer runs the server in the foreground and handles graceful
// shutdown on context cancellation.
func runHTTPServer(ctx context.Context, server HTTPServer) error {
	errChan := make(chan error, 1)

	go func() {
		errChan <- server.ListenAndServe()
	}()

	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}

		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		return nil
	}
}
