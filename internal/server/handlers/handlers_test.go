package handlers

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"poolplane/internal/catalog"
	"poolplane/internal/jobs"
	"poolplane/internal/resolver"
)

// nopSink accepts tasks without executing them, so dispatched jobs stay
// QUEUED for the duration of a handler test.
type nopSink struct{}

func (nopSink) Submit(ctx context.Context, task jobs.Task) error { return nil }

type fixture struct {
	handlers *Handlers
	store    *catalog.Memory
	registry *jobs.Registry
}

// newFixture wires real components over an in-memory catalog seeded with
// two owners sharing the "p1" id, plus owner-a's bundle product.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	m := catalog.NewMemory()
	ctx := context.Background()
	for _, key := range []string{"owner-a", "owner-b"} {
		if err := m.CreateOwner(ctx, &catalog.Owner{ID: "id-" + key, Key: key}); err != nil {
			t.Fatalf("CreateOwner(%s): %v", key, err)
		}
		m.UpsertProduct(ctx, &catalog.Product{ID: "p1", OwnerKey: key, Name: "p1"})
	}
	m.UpsertProduct(ctx, &catalog.Product{ID: "bundle-sub", OwnerKey: "owner-a", Name: "bundle sub"})
	m.UpsertProduct(ctx, &catalog.Product{
		ID: "bundle", OwnerKey: "owner-a", Name: "bundle",
		ProvidedIDs: []string{"extra"},
		Derived:     &catalog.Product{ID: "bundle-sub"},
	})

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	res := resolver.New(m)
	reg := jobs.NewRegistry()
	disp := jobs.NewDispatcher(res, reg, nopSink{}, log)

	return &fixture{
		handlers: New(res, disp, reg, m, nil, log),
		store:    m,
		registry: reg,
	}
}
