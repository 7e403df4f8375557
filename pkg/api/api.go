// Package api contains shared JSON request/response structs.
// This package is shared between the CLI and the server.
package api

import "time"

// OwnerResponse is the censored owner summary returned by resolution
// queries: key and id only, never the owner's products or pools.
type OwnerResponse struct {
	Key string `json:"key"`
	ID  string `json:"id"`
}

// RefreshJobResponse is the handle returned for each dispatched refresh job.
type RefreshJobResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	OwnerKey  string    `json:"owner_key"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// JobStatusResponse is the response body for job status polling.
type JobStatusResponse struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	OwnerKey   string     `json:"owner_key"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	StartedAt  *time.Time `json:"started_at,omitempty"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
	Result     string     `json:"result,omitempty"`
	Error      string     `json:"error,omitempty"`
}

// CreateOwnerRequest is the request body for creating a tenant.
type CreateOwnerRequest struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

// ProductRequest is the request body for upserting a product under an
// owner. Derived products reference other products by id within the same
// owner's namespace.
type ProductRequest struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	ProvidedIDs []string `json:"provided_ids,omitempty"`
	DerivedID   string   `json:"derived_id,omitempty"`
}

// ProductResponse is a single product as returned by the censored
// per-owner lookup.
type ProductResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	OwnerKey    string   `json:"owner_key"`
	ProvidedIDs []string `json:"provided_ids,omitempty"`
	DerivedID   string   `json:"derived_id,omitempty"`
}

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}
