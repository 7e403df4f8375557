// Package catalog contains the multi-tenant product catalog models and
// the query interface consumed by the resolver and the pool refresher.
package catalog

import "time"

// Owner represents a tenant in the multi-tenant catalog.
// All products and pools are scoped by the owner's key.
type Owner struct {
	ID        string
	Key       string
	Name      string
	CreatedAt time.Time
}

// Product is a catalog entry scoped to one owner. The same product ID may
// exist independently under different owners and must never be conflated.
type Product struct {
	ID       string
	OwnerKey string
	Name     string

	// ProvidedIDs are the ids of products bundled directly inside this
	// product's definition. They reference products under the same owner.
	ProvidedIDs []string

	// Derived is an optional sub-pool product generated from this product.
	// Observed data never nests derivation further, but the resolver must
	// not rely on that.
	Derived *Product

	CreatedAt time.Time
}

// Pool is a sellable entitlement quantity computed from a top-level product.
// This service only triggers recomputation; it never edits pools directly.
type Pool struct {
	ID        string
	OwnerKey  string
	ProductID string
	Quantity  int64
	UpdatedAt time.Time
}
