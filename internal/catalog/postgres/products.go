package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"poolplane/internal/catalog"
)

// UpsertProduct inserts or replaces a product and its provided-product rows
// in one transaction.
func (c *Catalog) UpsertProduct(ctx context.Context, product *catalog.Product) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("upsert product %s/%s: %w", product.OwnerKey, product.ID, err)
	}
	defer tx.Rollback()

	var derivedID sql.NullString
	if product.Derived != nil {
		derivedID = sql.NullString{String: product.Derived.ID, Valid: true}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO products (owner_key, id, name, derived_id, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (owner_key, id)
		DO UPDATE SET name = EXCLUDED.name, derived_id = EXCLUDED.derived_id
	`, product.OwnerKey, product.ID, product.Name, derivedID)
	if err != nil {
		return fmt.Errorf("upsert product %s/%s: %w", product.OwnerKey, product.ID, err)
	}

	_, err = tx.ExecContext(ctx,
		`DELETE FROM provided_products WHERE owner_key = $1 AND product_id = $2`,
		product.OwnerKey, product.ID)
	if err != nil {
		return fmt.Errorf("clear provided products for %s/%s: %w", product.OwnerKey, product.ID, err)
	}

	for _, providedID := range product.ProvidedIDs {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO provided_products (owner_key, product_id, provided_id)
			VALUES ($1, $2, $3)
		`, product.OwnerKey, product.ID, providedID)
		if err != nil {
			return fmt.Errorf("insert provided product %s for %s/%s: %w",
				providedID, product.OwnerKey, product.ID, err)
		}
	}

	return tx.Commit()
}

// ProductsByOwner returns every product under one owner with provided ids
// and derived references resolved. Derived pointers reference products of
// the same owner only; a derived_id that resolves nowhere is left nil.
func (c *Catalog) ProductsByOwner(ctx context.Context, ownerKey string) ([]catalog.Product, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT id, name, derived_id, created_at
		FROM products
		WHERE owner_key = $1
		ORDER BY id
	`, ownerKey)
	if err != nil {
		return nil, fmt.Errorf("products for owner %s: %w", ownerKey, err)
	}
	defer rows.Close()

	byID := make(map[string]*catalog.Product)
	derivedIDs := make(map[string]string)
	var order []string

	for rows.Next() {
		var (
			p         catalog.Product
			derivedID sql.NullString
		)
		if err := rows.Scan(&p.ID, &p.Name, &derivedID, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		p.OwnerKey = ownerKey
		byID[p.ID] = &p
		order = append(order, p.ID)
		if derivedID.Valid {
			derivedIDs[p.ID] = derivedID.String
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("products for owner %s: %w", ownerKey, err)
	}

	if err := c.attachProvided(ctx, ownerKey, byID); err != nil {
		return nil, err
	}

	// Link derived chains inside the owner's namespace. Dangling references
	// stay nil rather than failing the whole load.
	for id, derivedID := range derivedIDs {
		if derived, ok := byID[derivedID]; ok {
			byID[id].Derived = derived
		}
	}

	products := make([]catalog.Product, 0, len(order))
	for _, id := range order {
		products = append(products, *byID[id])
	}
	return products, nil
}

// GetProduct returns one product under one owner. Misses are always
// catalog.ErrProductNotFound regardless of where the id might exist.
func (c *Catalog) GetProduct(ctx context.Context, ownerKey, productID string) (*catalog.Product, error) {
	products, err := c.ProductsByOwner(ctx, ownerKey)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == productID {
			return &products[i], nil
		}
	}
	return nil, catalog.ErrProductNotFound
}

func (c *Catalog) attachProvided(ctx context.Context, ownerKey string, byID map[string]*catalog.Product) error {
	rows, err := c.db.QueryContext(ctx, `
		SELECT product_id, provided_id
		FROM provided_products
		WHERE owner_key = $1
		ORDER BY product_id, provided_id
	`, ownerKey)
	if err != nil {
		return fmt.Errorf("provided products for owner %s: %w", ownerKey, err)
	}
	defer rows.Close()

	for rows.Next() {
		var productID, providedID string
		if err := rows.Scan(&productID, &providedID); err != nil {
			return fmt.Errorf("scan provided product: %w", err)
		}
		if p, ok := byID[productID]; ok {
			p.ProvidedIDs = append(p.ProvidedIDs, providedID)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("provided products for owner %s: %w", ownerKey, err)
	}
	return nil
}
