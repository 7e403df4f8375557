// Package resolver answers which owners' catalogs contain a given set of
// product identifiers, directly or through provided/derived references.
package resolver

import (
	"context"
	"errors"
	"fmt"

	"poolplane/internal/catalog"
)

// ErrNoProductIDs is returned when a caller passes an empty identifier set.
// An empty set is a caller error, never "all owners" or "no owners".
var ErrNoProductIDs = errors.New("at least one product id is required")

// Resolver resolves product identifiers to the owners whose catalogs match.
// It is stateless and safe for concurrent use.
type Resolver struct {
	catalog catalog.Catalog
}

// New creates a Resolver backed by the given catalog.
func New(c catalog.Catalog) *Resolver {
	return &Resolver{catalog: c}
}

// ResolveOwners returns the distinct owners that have at least one product
// whose contributed identifier set intersects productIDs. A product
// contributes its own id, the ids of its provided products, and everything
// its derived product contributes. Matching is scoped per owner; identifiers
// never match across tenants. Unknown identifiers resolve to an empty set.
func (r *Resolver) ResolveOwners(ctx context.Context, productIDs []string) ([]catalog.Owner, error) {
	if len(productIDs) == 0 {
		return nil, ErrNoProductIDs
	}

	wanted := make(map[string]struct{}, len(productIDs))
	for _, id := range productIDs {
		wanted[id] = struct{}{}
	}

	owners, err := r.catalog.ListOwners(ctx)
	if err != nil {
		return nil, fmt.Errorf("list owners: %w", err)
	}

	var matched []catalog.Owner
	for _, owner := range owners {
		products, err := r.catalog.ProductsByOwner(ctx, owner.Key)
		if err != nil {
			return nil, fmt.Errorf("products for owner %s: %w", owner.Key, err)
		}
		for i := range products {
			if contributes(&products[i], wanted) {
				matched = append(matched, owner)
				break
			}
		}
	}
	return matched, nil
}

// contributes walks the product's derived chain iteratively with a visited
// set, so a malformed self-referential or cyclic catalog entry terminates
// instead of looping.
func contributes(p *catalog.Product, wanted map[string]struct{}) bool {
	visited := make(map[string]struct{})

	for cur := p; cur != nil; cur = cur.Derived {
		if _, seen := visited[cur.ID]; seen {
			return false
		}
		visited[cur.ID] = struct{}{}

		if _, ok := wanted[cur.ID]; ok {
			return true
		}
		for _, id := range cur.ProvidedIDs {
			if _, ok := wanted[id]; ok {
				return true
			}
		}
	}
	return false
}
