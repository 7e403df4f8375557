// Package handlers contains HTTP handlers for the poolplane API.
package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"poolplane/internal/catalog"
	"poolplane/internal/jobs"
	"poolplane/pkg/api"
)

// Resolver answers product-to-owner resolution queries.
type Resolver interface {
	ResolveOwners(ctx context.Context, productIDs []string) ([]catalog.Owner, error)
}

// Dispatcher issues refresh jobs for the owners matching a product set.
type Dispatcher interface {
	RefreshOwnersWithProduct(ctx context.Context, productIDs []string) ([]*jobs.RefreshJob, error)
}

// JobStore is the polling surface of the job registry.
type JobStore interface {
	Get(jobID string) (*jobs.RefreshJob, error)
}

// Handlers holds all HTTP handlers and their dependencies.
type Handlers struct {
	resolver   Resolver
	dispatcher Dispatcher
	jobs       JobStore
	store      catalog.Store
	ready      func(context.Context) error
	logger     *slog.Logger
}

// New creates a Handlers instance. ready may be nil when there is no
// external dependency to probe.
func New(r Resolver, d Dispatcher, j JobStore, store catalog.Store, ready func(context.Context) error, logger *slog.Logger) *Handlers {
	return &Handlers{
		resolver:   r,
		dispatcher: d,
		jobs:       j,
		store:      store,
		ready:      ready,
		logger:     logger,
	}
}

// A helper function to write standard JSON responses.
func (h *Handlers) respondJson(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

// A helper function to return consistent error messages.
func (h *Handlers) httpError(w http.ResponseWriter, message string, code int) {
	h.respondJson(w, code, api.ErrorResponse{
		Error: message,
		Code:  strconv.Itoa(code),
	})
}
