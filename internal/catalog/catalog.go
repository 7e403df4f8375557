package catalog

import (
	"context"
	"errors"
)

// ErrOwnerNotFound is returned when an owner key resolves to no tenant.
var ErrOwnerNotFound = errors.New("owner not found")

// ErrProductNotFound is returned when a product lookup misses. Handlers must
// surface it identically whether the id is unknown everywhere or belongs to
// another owner, so the error itself carries no owner information.
var ErrProductNotFound = errors.New("product not found")

// Catalog is the read side consumed by the resolver. Implementations must be
// safe for concurrent use.
type Catalog interface {
	// ListOwners returns every tenant in the catalog.
	ListOwners(ctx context.Context) ([]Owner, error)

	// GetOwner returns the owner with the given key.
	GetOwner(ctx context.Context, key string) (*Owner, error)

	// ProductsByOwner returns all top-level products under one owner,
	// with provided ids and the derived product populated.
	ProductsByOwner(ctx context.Context, ownerKey string) ([]Product, error)

	// GetProduct returns one product under one owner. A miss is always
	// ErrProductNotFound, whether the id exists elsewhere or nowhere.
	GetProduct(ctx context.Context, ownerKey, productID string) (*Product, error)
}

// Store extends Catalog with the write primitives used for out-of-band
// seeding and by the pool refresher.
type Store interface {
	Catalog

	// CreateOwner inserts a new tenant.
	CreateOwner(ctx context.Context, owner *Owner) error

	// UpsertProduct inserts or replaces a product under its owner.
	UpsertProduct(ctx context.Context, product *Product) error

	// PoolsByOwner returns the pools currently recorded for an owner.
	PoolsByOwner(ctx context.Context, ownerKey string) ([]Pool, error)

	// ReplacePools swaps an owner's pool set for the recomputed one.
	ReplacePools(ctx context.Context, ownerKey string, pools []Pool) error
}
