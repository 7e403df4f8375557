// Package server wires the poolplane HTTP API: routing, middleware, and
// graceful shutdown.
package server

import (
	"context"
	"net/http"
	"time"

	"poolplane/internal/server/handlers"
	"poolplane/internal/server/middleware"
)

// Options carries the knobs the server needs beyond its handlers.
type Options struct {
	// MetricsHandler serves GET /metrics; nil disables the endpoint.
	MetricsHandler http.Handler

	// RateLimit is requests per second per client; 0 means unlimited.
	RateLimit float64
}

// Server is the HTTP server for the poolplane API.
type Server struct {
	httpServer *http.Server
}

// New creates the API server around the given handlers.
func New(addr string, h *handlers.Handlers, opts Options) *Server {
	limited := middleware.RateLimit(opts.RateLimit, int(opts.RateLimit))

	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", h.Healthz)
	mux.HandleFunc("GET /readyz", h.Readyz)
	if opts.MetricsHandler != nil {
		mux.Handle("GET /metrics", opts.MetricsHandler)
	}

	// Resolution and refresh, the owner-agnostic product surface.
	mux.Handle("GET /products/owners", limited(http.HandlerFunc(h.GetOwnersWithProducts)))
	mux.Handle("PUT /products/subscriptions", limited(http.HandlerFunc(h.RefreshPoolsForProducts)))

	// Job polling.
	mux.Handle("GET /jobs/{id}", limited(http.HandlerFunc(h.GetJob)))

	// Out-of-band catalog seeding.
	mux.Handle("POST /owners", limited(http.HandlerFunc(h.CreateOwner)))
	mux.Handle("POST /owners/{key}/products", limited(http.HandlerFunc(h.UpsertProduct)))
	mux.Handle("GET /owners/{key}/products/{id}", limited(http.HandlerFunc(h.GetOwnerProduct)))

	return &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      middleware.RequestID(mux),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
	}
}

// Run starts the HTTP server. It blocks until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	serverErr := make(chan error, 1)

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		shutDownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		return s.Shutdown(shutDownCtx)
	}
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
