package pools

import (
	"context"
	"strings"
	"testing"

	"poolplane/internal/catalog"
)

func seedOwner(t *testing.T) *catalog.Memory {
	t.Helper()

	m := catalog.NewMemory()
	ctx := context.Background()
	if err := m.CreateOwner(ctx, &catalog.Owner{ID: "1", Key: "acme"}); err != nil {
		t.Fatalf("CreateOwner: %v", err)
	}

	// "main" is marketed; "addon" is provided by it and "sub" derived
	// from it, so neither gets its own pool.
	m.UpsertProduct(ctx, &catalog.Product{ID: "addon", OwnerKey: "acme"})
	m.UpsertProduct(ctx, &catalog.Product{
		ID: "main", OwnerKey: "acme",
		ProvidedIDs: []string{"addon"},
		Derived:     &catalog.Product{ID: "sub", OwnerKey: "acme"},
	})
	m.UpsertProduct(ctx, &catalog.Product{ID: "sub", OwnerKey: "acme"})

	return m
}

func TestRefreshPoolsMarketedProductsOnly(t *testing.T) {
	m := seedOwner(t)
	r := NewCatalogRefresher(m)

	result, err := r.RefreshPools(context.Background(), "acme")
	if err != nil {
		t.Fatalf("RefreshPools: %v", err)
	}
	if !strings.Contains(result, "acme") {
		t.Errorf("result %q does not mention the owner", result)
	}

	pools, _ := m.PoolsByOwner(context.Background(), "acme")
	if len(pools) != 1 {
		t.Fatalf("got %d pools, want 1: %+v", len(pools), pools)
	}
	if pools[0].ProductID != "main" {
		t.Errorf("pooled product %s, want main", pools[0].ProductID)
	}
	if pools[0].Quantity != 1 {
		t.Errorf("new pool quantity %d, want 1", pools[0].Quantity)
	}
}

func TestRefreshPoolsKeepsExistingQuantity(t *testing.T) {
	m := seedOwner(t)
	ctx := context.Background()
	m.ReplacePools(ctx, "acme", []catalog.Pool{
		{ID: "pool-1", OwnerKey: "acme", ProductID: "main", Quantity: 25},
	})

	r := NewCatalogRefresher(m)
	if _, err := r.RefreshPools(ctx, "acme"); err != nil {
		t.Fatalf("RefreshPools: %v", err)
	}

	pools, _ := m.PoolsByOwner(ctx, "acme")
	if len(pools) != 1 {
		t.Fatalf("got %d pools, want 1", len(pools))
	}
	if pools[0].ID != "pool-1" || pools[0].Quantity != 25 {
		t.Errorf("existing pool not preserved: %+v", pools[0])
	}
}

func TestRefreshPoolsUnknownOwner(t *testing.T) {
	r := NewCatalogRefresher(catalog.NewMemory())

	if _, err := r.RefreshPools(context.Background(), "ghost"); err == nil {
		t.Fatal("expected error for unknown owner")
	}
}
