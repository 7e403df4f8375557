package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"poolplane/internal/catalog"
	"poolplane/pkg/api"
)

// CreateOwner handles POST /owners. Tenants are created out-of-band of the
// resolution/refresh flow; this is the seeding primitive.
func (h *Handlers) CreateOwner(w http.ResponseWriter, r *http.Request) {
	var req api.CreateOwnerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.httpError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Key == "" {
		h.httpError(w, "Owner key is required", http.StatusBadRequest)
		return
	}

	owner := &catalog.Owner{
		ID:        uuid.NewString(),
		Key:       req.Key,
		Name:      req.Name,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.store.CreateOwner(r.Context(), owner); err != nil {
		h.logger.Error("owner creation failed", "key", req.Key, "error", err)
		h.httpError(w, "Failed to create owner", http.StatusInternalServerError)
		return
	}

	h.respondJson(w, http.StatusCreated, api.OwnerResponse{Key: owner.Key, ID: owner.ID})
}

// UpsertProduct handles POST /owners/{key}/products.
func (h *Handlers) UpsertProduct(w http.ResponseWriter, r *http.Request) {
	ownerKey := r.PathValue("key")

	var req api.ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.httpError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.ID == "" {
		h.httpError(w, "Product id is required", http.StatusBadRequest)
		return
	}

	product := &catalog.Product{
		ID:          req.ID,
		OwnerKey:    ownerKey,
		Name:        req.Name,
		ProvidedIDs: req.ProvidedIDs,
	}
	if req.DerivedID != "" {
		derived, err := h.store.GetProduct(r.Context(), ownerKey, req.DerivedID)
		if errors.Is(err, catalog.ErrProductNotFound) {
			h.httpError(w, "Derived product not found", http.StatusBadRequest)
			return
		}
		if err != nil {
			h.logger.Error("derived product lookup failed", "owner", ownerKey, "error", err)
			h.httpError(w, "Failed to store product", http.StatusInternalServerError)
			return
		}
		product.Derived = derived
	}

	if err := h.store.UpsertProduct(r.Context(), product); err != nil {
		if errors.Is(err, catalog.ErrOwnerNotFound) {
			h.httpError(w, "Owner not found", http.StatusNotFound)
			return
		}
		h.logger.Error("product upsert failed", "owner", ownerKey, "product", req.ID, "error", err)
		h.httpError(w, "Failed to store product", http.StatusInternalServerError)
		return
	}

	h.respondJson(w, http.StatusCreated, productResponse(product))
}

// GetOwnerProduct handles GET /owners/{key}/products/{id}. The not-found
// response is identical whether the owner is unknown, the product is
// unknown, or the id exists only under a different owner, so the lookup
// never leaks other tenants' catalogs.
func (h *Handlers) GetOwnerProduct(w http.ResponseWriter, r *http.Request) {
	ownerKey := r.PathValue("key")
	productID := r.PathValue("id")

	product, err := h.store.GetProduct(r.Context(), ownerKey, productID)
	if errors.Is(err, catalog.ErrProductNotFound) || errors.Is(err, catalog.ErrOwnerNotFound) {
		h.httpError(w, "Product not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.Error("product lookup failed", "error", err)
		h.httpError(w, "Failed to look up product", http.StatusInternalServerError)
		return
	}

	h.respondJson(w, http.StatusOK, productResponse(product))
}

func productResponse(p *catalog.Product) api.ProductResponse {
	resp := api.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		OwnerKey:    p.OwnerKey,
		ProvidedIDs: p.ProvidedIDs,
	}
	if p.Derived != nil {
		resp.DerivedID = p.Derived.ID
	}
	return resp
}
