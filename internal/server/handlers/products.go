package handlers

import (
	"errors"
	"net/http"

	"poolplane/internal/resolver"
	"poolplane/pkg/api"
)

// GetOwnersWithProducts handles GET /products/owners?product=p1&product=p2.
// The response is the censored owner summary set: key and id only.
func (h *Handlers) GetOwnersWithProducts(w http.ResponseWriter, r *http.Request) {
	productIDs := r.URL.Query()["product"]

	owners, err := h.resolver.ResolveOwners(r.Context(), productIDs)
	if errors.Is(err, resolver.ErrNoProductIDs) {
		h.httpError(w, "At least one product id is required", http.StatusBadRequest)
		return
	}
	if err != nil {
		h.logger.Error("owner resolution failed", "error", err)
		h.httpError(w, "Failed to resolve owners", http.StatusInternalServerError)
		return
	}

	resp := make([]api.OwnerResponse, 0, len(owners))
	for _, o := range owners {
		resp = append(resp, api.OwnerResponse{Key: o.Key, ID: o.ID})
	}
	h.respondJson(w, http.StatusOK, resp)
}

// RefreshPoolsForProducts handles PUT /products/subscriptions?product=p1.
// It dispatches one refresh job per affected owner and returns the handles;
// an empty handle list for unknown ids is a success, not an error.
func (h *Handlers) RefreshPoolsForProducts(w http.ResponseWriter, r *http.Request) {
	productIDs := r.URL.Query()["product"]

	handles, err := h.dispatcher.RefreshOwnersWithProduct(r.Context(), productIDs)
	if errors.Is(err, resolver.ErrNoProductIDs) {
		h.httpError(w, "At least one product id is required", http.StatusBadRequest)
		return
	}
	if err != nil {
		h.logger.Error("refresh dispatch failed", "error", err)
		h.httpError(w, "Failed to dispatch refresh jobs", http.StatusInternalServerError)
		return
	}

	resp := make([]api.RefreshJobResponse, 0, len(handles))
	for _, job := range handles {
		resp = append(resp, api.RefreshJobResponse{
			ID:        job.ID,
			Name:      job.Name,
			OwnerKey:  job.OwnerKey,
			Status:    string(job.Status),
			CreatedAt: job.CreatedAt,
		})
	}
	h.respondJson(w, http.StatusAccepted, resp)
}
