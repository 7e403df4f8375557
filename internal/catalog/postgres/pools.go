package postgres

import (
	"context"
	"fmt"

	"poolplane/internal/catalog"
)

// PoolsByOwner returns the pools currently recorded for an owner.
func (c *Catalog) PoolsByOwner(ctx context.Context, ownerKey string) ([]catalog.Pool, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT id, product_id, quantity, updated_at
		FROM pools
		WHERE owner_key = $1
		ORDER BY product_id
	`, ownerKey)
	if err != nil {
		return nil, fmt.Errorf("pools for owner %s: %w", ownerKey, err)
	}
	defer rows.Close()

	var pools []catalog.Pool
	for rows.Next() {
		var p catalog.Pool
		if err := rows.Scan(&p.ID, &p.ProductID, &p.Quantity, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan pool: %w", err)
		}
		p.OwnerKey = ownerKey
		pools = append(pools, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pools for owner %s: %w", ownerKey, err)
	}
	return pools, nil
}

// ReplacePools swaps an owner's pool set for the recomputed one in a single
// transaction, so pollers never observe a half-rebuilt set.
func (c *Catalog) ReplacePools(ctx context.Context, ownerKey string, pools []catalog.Pool) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("replace pools for %s: %w", ownerKey, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM pools WHERE owner_key = $1`, ownerKey); err != nil {
		return fmt.Errorf("clear pools for %s: %w", ownerKey, err)
	}

	for _, p := range pools {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO pools (id, owner_key, product_id, quantity, updated_at)
			VALUES ($1, $2, $3, $4, $5)
		`, p.ID, ownerKey, p.ProductID, p.Quantity, p.UpdatedAt)
		if err != nil {
			return fmt.Errorf("insert pool %s for %s: %w", p.ID, ownerKey, err)
		}
	}

	return tx.Commit()
}
