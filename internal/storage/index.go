package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/pazarlink/pazarlink/internal/common"
	"github.com/pazarlink/pazarlink/internal/model"
)

// The catalog index methods back the order-import resolver. They return
// common.ErrNotFound on a miss so I/O failures stay distinguishable, and
// they are safe for concurrent reads.

// LookupBySKU returns the product with the exact SKU.
func (s *SQLiteCatalog) LookupBySKU(ctx context.Context, sku string) (*model.Product, error) {
	return s.lookupOne(ctx, `sku = ?`, sku)
}

// LookupByBarcode returns the product with the exact barcode.
func (s *SQLiteCatalog) LookupByBarcode(ctx context.Context, barcode string) (*model.Product, error) {
	return s.lookupOne(ctx, `barcode = ?`, barcode)
}

// LookupByPlatformID returns the product with the exact platform product id.
func (s *SQLiteCatalog) LookupByPlatformID(ctx context.Context, platformID string) (*model.Product, error) {
	return s.lookupOne(ctx, `platform_product_id = ?`, platformID)
}

// SearchByTitleTokens returns products whose names contain every token,
// case-insensitively.
func (s *SQLiteCatalog) SearchByTitleTokens(ctx context.Context, tokens []string) ([]model.Product, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, nil
	}

	conditions := make([]string, 0, len(tokens))
	args := make([]any, 0, len(tokens))
	for _, token := range tokens {
		conditions = append(conditions, `name LIKE ? ESCAPE '\' COLLATE NOCASE`)
		args = append(args, "%"+escapeLike(token)+"%")
	}

	query := `SELECT id, sku, barcode, platform_product_id, name, category, created_at, updated_at
		FROM products WHERE ` + strings.Join(conditions, " AND ") + ` ORDER BY sku`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search by title: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanProducts(rows)
}

// SearchBySKUPattern returns products whose SKU starts with or contains the
// fragment. Prefix matches are listed first.
func (s *SQLiteCatalog) SearchBySKUPattern(ctx context.Context, fragment string) ([]model.Product, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if strings.TrimSpace(fragment) == "" {
		return nil, nil
	}

	escaped := escapeLike(fragment)
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, sku, barcode, platform_product_id, name, category, created_at, updated_at
		FROM products
		WHERE sku LIKE ? ESCAPE '\'
		ORDER BY CASE WHEN sku LIKE ? ESCAPE '\' THEN 0 ELSE 1 END, sku`,
		"%"+escaped+"%", escaped+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to search by SKU pattern: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanProducts(rows)
}

func (s *SQLiteCatalog) lookupOne(ctx context.Context, where string, arg any) (*model.Product, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if str, ok := arg.(string); ok && strings.TrimSpace(str) == "" {
		return nil, common.ErrNotFound
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, sku, barcode, platform_product_id, name, category, created_at, updated_at
		FROM products WHERE `+where+` LIMIT 1`, arg)

	var p model.Product
	var barcode, platformID, category sql.NullString
	err := row.Scan(&p.ID, &p.SKU, &barcode, &platformID, &p.Name, &category, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up product: %w", err)
	}
	p.Barcode = barcode.String
	p.PlatformProductID = platformID.String
	p.Category = category.String
	return &p, nil
}
