package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"poolplane/internal/catalog"
)

// CreateOwner inserts a new tenant row.
func (c *Catalog) CreateOwner(ctx context.Context, owner *catalog.Owner) error {
	query := `
		INSERT INTO owners (id, key, name, created_at)
		VALUES ($1, $2, $3, COALESCE($4, NOW()))
	`

	var createdAt interface{}
	if !owner.CreatedAt.IsZero() {
		createdAt = owner.CreatedAt
	}

	_, err := c.db.ExecContext(ctx, query, owner.ID, owner.Key, owner.Name, createdAt)
	if err != nil {
		return fmt.Errorf("create owner %s: %w", owner.Key, err)
	}
	return nil
}

// GetOwner returns the tenant with the given key.
func (c *Catalog) GetOwner(ctx context.Context, key string) (*catalog.Owner, error) {
	query := `SELECT id, key, name, created_at FROM owners WHERE key = $1`

	var owner catalog.Owner
	err := c.db.QueryRowContext(ctx, query, key).
		Scan(&owner.ID, &owner.Key, &owner.Name, &owner.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, catalog.ErrOwnerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get owner %s: %w", key, err)
	}
	return &owner, nil
}

// ListOwners returns every tenant.
func (c *Catalog) ListOwners(ctx context.Context) ([]catalog.Owner, error) {
	query := `SELECT id, key, name, created_at FROM owners ORDER BY key`

	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list owners: %w", err)
	}
	defer rows.Close()

	var owners []catalog.Owner
	for rows.Next() {
		var o catalog.Owner
		if err := rows.Scan(&o.ID, &o.Key, &o.Name, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan owner: %w", err)
		}
		owners = append(owners, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list owners: %w", err)
	}
	return owners, nil
}
