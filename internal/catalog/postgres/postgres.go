// Package postgres implements the catalog store on PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// Catalog provides a PostgreSQL-backed catalog.Store.
type Catalog struct {
	db *sql.DB
}

// New opens a connection pool against the given database URL.
func New(ctx context.Context, databaseURL string) (*Catalog, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Catalog{db: db}, nil
}

// DB exposes the underlying handle for migrations.
func (c *Catalog) DB() *sql.DB {
	return c.db
}

// Ping reports whether the database is reachable.
func (c *Catalog) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

// Close closes the connection pool.
func (c *Catalog) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}
