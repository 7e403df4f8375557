package catalog

import (
	"context"
	"sync"
	"time"
)

// Memory is an in-memory Store guarded by a RWMutex. It backs tests and
// single-process deployments that run without a database.
//
// Derived references are stored by id and resolved against the current
// catalog on every read, so an update to a derived product is visible
// through its parent, the same way the relational store re-resolves
// derived_id. A derived id with no matching product stays nil.
type Memory struct {
	mu       sync.RWMutex
	owners   map[string]Owner              // key -> owner
	products map[string]map[string]Product // owner key -> product id -> product, Derived stripped
	derived  map[string]map[string]string  // owner key -> product id -> derived product id
	pools    map[string][]Pool             // owner key -> pools
}

// NewMemory creates an empty in-memory catalog.
func NewMemory() *Memory {
	return &Memory{
		owners:   make(map[string]Owner),
		products: make(map[string]map[string]Product),
		derived:  make(map[string]map[string]string),
		pools:    make(map[string][]Pool),
	}
}

func (m *Memory) ListOwners(ctx context.Context) ([]Owner, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	owners := make([]Owner, 0, len(m.owners))
	for _, o := range m.owners {
		owners = append(owners, o)
	}
	return owners, nil
}

func (m *Memory) GetOwner(ctx context.Context, key string) (*Owner, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	o, ok := m.owners[key]
	if !ok {
		return nil, ErrOwnerNotFound
	}
	return &o, nil
}

func (m *Memory) ProductsByOwner(ctx context.Context, ownerKey string) ([]Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	linked := m.linkedProductsLocked(ownerKey)
	products := make([]Product, 0, len(linked))
	for _, p := range linked {
		products = append(products, *p)
	}
	return products, nil
}

func (m *Memory) GetProduct(ctx context.Context, ownerKey, productID string) (*Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.linkedProductsLocked(ownerKey)[productID]
	if !ok {
		return nil, ErrProductNotFound
	}
	return p, nil
}

// linkedProductsLocked materializes copies of one owner's products with
// derived pointers resolved against the current catalog. Callers must hold
// at least a read lock.
func (m *Memory) linkedProductsLocked(ownerKey string) map[string]*Product {
	byID := m.products[ownerKey]
	copies := make(map[string]*Product, len(byID))
	for id, p := range byID {
		cp := p
		copies[id] = &cp
	}
	for id, derivedID := range m.derived[ownerKey] {
		if d, ok := copies[derivedID]; ok {
			copies[id].Derived = d
		}
	}
	return copies
}

func (m *Memory) CreateOwner(ctx context.Context, owner *Owner) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if owner.CreatedAt.IsZero() {
		owner.CreatedAt = time.Now().UTC()
	}
	m.owners[owner.Key] = *owner
	return nil
}

func (m *Memory) UpsertProduct(ctx context.Context, product *Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.owners[product.OwnerKey]; !ok {
		return ErrOwnerNotFound
	}
	if product.CreatedAt.IsZero() {
		product.CreatedAt = time.Now().UTC()
	}

	byID := m.products[product.OwnerKey]
	if byID == nil {
		byID = make(map[string]Product)
		m.products[product.OwnerKey] = byID
	}
	stored := *product
	stored.Derived = nil
	byID[product.ID] = stored

	der := m.derived[product.OwnerKey]
	if der == nil {
		der = make(map[string]string)
		m.derived[product.OwnerKey] = der
	}
	if product.Derived != nil {
		der[product.ID] = product.Derived.ID
	} else {
		delete(der, product.ID)
	}
	return nil
}

func (m *Memory) PoolsByOwner(ctx context.Context, ownerKey string) ([]Pool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	pools := make([]Pool, len(m.pools[ownerKey]))
	copy(pools, m.pools[ownerKey])
	return pools, nil
}

func (m *Memory) ReplacePools(ctx context.Context, ownerKey string, pools []Pool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.owners[ownerKey]; !ok {
		return ErrOwnerNotFound
	}
	replacement := make([]Pool, len(pools))
	copy(replacement, pools)
	m.pools[ownerKey] = replacement
	return nil
}
