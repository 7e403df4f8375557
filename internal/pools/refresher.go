// Package pools performs the per-owner pool recomputation that refresh jobs
// execute. The dispatcher and workers treat it as an opaque long-running
// operation behind the Refresher interface.
package pools

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"poolplane/internal/catalog"
)

// Refresher recomputes the subscription pools of a single owner. The
// returned string is a human-readable result stored on the finished job.
type Refresher interface {
	RefreshPools(ctx context.Context, ownerKey string) (string, error)
}

// CatalogRefresher rebuilds an owner's pools from its catalog: one pool per
// marketed product, i.e. a product no other product in the same catalog
// lists as provided or carries as derived. Existing quantities survive the
// rebuild; new pools start at a quantity of one.
type CatalogRefresher struct {
	store catalog.Store
}

// NewCatalogRefresher creates a Refresher over the given catalog store.
func NewCatalogRefresher(store catalog.Store) *CatalogRefresher {
	return &CatalogRefresher{store: store}
}

func (r *CatalogRefresher) RefreshPools(ctx context.Context, ownerKey string) (string, error) {
	if _, err := r.store.GetOwner(ctx, ownerKey); err != nil {
		return "", fmt.Errorf("refresh pools for %s: %w", ownerKey, err)
	}

	products, err := r.store.ProductsByOwner(ctx, ownerKey)
	if err != nil {
		return "", fmt.Errorf("refresh pools for %s: %w", ownerKey, err)
	}

	// Products referenced by another product are not marketed on their own.
	referenced := make(map[string]struct{})
	for i := range products {
		for _, id := range products[i].ProvidedIDs {
			referenced[id] = struct{}{}
		}
		visited := map[string]struct{}{products[i].ID: {}}
		for d := products[i].Derived; d != nil; d = d.Derived {
			if _, seen := visited[d.ID]; seen {
				break
			}
			visited[d.ID] = struct{}{}
			referenced[d.ID] = struct{}{}
		}
	}

	existing, err := r.store.PoolsByOwner(ctx, ownerKey)
	if err != nil {
		return "", fmt.Errorf("refresh pools for %s: %w", ownerKey, err)
	}
	byProduct := make(map[string]catalog.Pool, len(existing))
	for _, p := range existing {
		byProduct[p.ProductID] = p
	}

	now := time.Now().UTC()
	var rebuilt []catalog.Pool
	for i := range products {
		p := &products[i]
		if _, ok := referenced[p.ID]; ok {
			continue
		}
		pool := catalog.Pool{
			ID:        uuid.NewString(),
			OwnerKey:  ownerKey,
			ProductID: p.ID,
			Quantity:  1,
			UpdatedAt: now,
		}
		if prev, ok := byProduct[p.ID]; ok {
			pool.ID = prev.ID
			pool.Quantity = prev.Quantity
		}
		rebuilt = append(rebuilt, pool)
	}

	if err := r.store.ReplacePools(ctx, ownerKey, rebuilt); err != nil {
		return "", fmt.Errorf("refresh pools for %s: %w", ownerKey, err)
	}

	return fmt.Sprintf("Pools refreshed for owner %s (%d pools)", ownerKey, len(rebuilt)), nil
}
