package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"poolplane/internal/catalog"
)

func TestPoolsByOwner(t *testing.T) {
	c, mock := newMockCatalog(t)
	defer c.db.Close()

	updatedAt := time.Now()
	mock.ExpectQuery(`SELECT id, product_id, quantity, updated_at\s+FROM pools`).
		WithArgs("acme").
		WillReturnRows(sqlmock.NewRows([]string{"id", "product_id", "quantity", "updated_at"}).
			AddRow("pool-1", "p4", int64(10), updatedAt))

	pools, err := c.PoolsByOwner(context.Background(), "acme")
	if err != nil {
		t.Fatalf("PoolsByOwner failed: %v", err)
	}
	if len(pools) != 1 {
		t.Fatalf("got %d pools, want 1", len(pools))
	}
	if pools[0].OwnerKey != "acme" || pools[0].Quantity != 10 {
		t.Errorf("unexpected pool: %+v", pools[0])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestReplacePools(t *testing.T) {
	c, mock := newMockCatalog(t)
	defer c.db.Close()

	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM pools WHERE owner_key = \$1`).
		WithArgs("acme").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`INSERT INTO pools`).
		WithArgs("pool-1", "acme", "p4", int64(10), now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := c.ReplacePools(context.Background(), "acme", []catalog.Pool{
		{ID: "pool-1", OwnerKey: "acme", ProductID: "p4", Quantity: 10, UpdatedAt: now},
	})
	if err != nil {
		t.Fatalf("ReplacePools failed: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}
