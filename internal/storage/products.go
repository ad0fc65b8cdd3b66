package storage

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/pazarlink/pazarlink/internal/model"
	"github.com/pazarlink/pazarlink/internal/service"
)

// SaveProducts upserts products by SKU in a single transaction.
func (s *SQLiteCatalog) SaveProducts(ctx context.Context, products []model.Product) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateProducts(products); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO products (sku, barcode, platform_product_id, name, category)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(sku) DO UPDATE SET
			barcode = excluded.barcode,
			platform_product_id = excluded.platform_product_id,
			name = excluded.name,
			category = excluded.category,
			updated_at = CURRENT_TIMESTAMP`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, p := range products {
		if _, err := stmt.ExecContext(ctx, p.SKU, p.Barcode, p.PlatformProductID, p.Name, p.Category); err != nil {
			return fmt.Errorf("failed to save product %s: %w", p.SKU, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// GetProducts returns products matching the filter.
func (s *SQLiteCatalog) GetProducts(ctx context.Context, filter service.ProductFilter) ([]model.Product, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `SELECT id, sku, barcode, platform_product_id, name, category, created_at, updated_at FROM products`
	var args []any
	if filter.Category != "" {
		query += ` WHERE category = ?`
		args = append(args, filter.Category)
	}
	query += ` ORDER BY sku`
	if filter.Limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanProducts(rows)
}

// GetProductBySKU returns the product with the exact SKU.
func (s *SQLiteCatalog) GetProductBySKU(ctx context.Context, sku string) (*model.Product, error) {
	return s.lookupOne(ctx, `sku = ?`, sku)
}

// CountProducts returns the total number of catalog entries.
func (s *SQLiteCatalog) CountProducts(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

// ListSKUs returns every SKU in the catalog, sorted.
func (s *SQLiteCatalog) ListSKUs(ctx context.Context) ([]string, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT sku FROM products ORDER BY sku`)
	if err != nil {
		return nil, fmt.Errorf("failed to list SKUs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var skus []string
	for rows.Next() {
		var sku string
		if err := rows.Scan(&sku); err != nil {
			return nil, fmt.Errorf("failed to scan SKU: %w", err)
		}
		skus = append(skus, sku)
	}
	return skus, rows.Err()
}

// statisticsPrefixLength and statisticsPrefixTopN bound the common-prefix
// table fed to the classifier.
const (
	statisticsPrefixLength = 3
	statisticsPrefixTopN   = 20
)

// ComputeStatistics derives catalog-wide shape statistics, split between the
// SKU and barcode populations, for the code classifier.
func (s *SQLiteCatalog) ComputeStatistics(ctx context.Context) (*model.CatalogStatistics, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT sku, COALESCE(barcode, '') FROM products`)
	if err != nil {
		return nil, fmt.Errorf("failed to query codes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	stats := &model.CatalogStatistics{
		SKULengths:        make(map[int]int),
		BarcodeLengths:    make(map[int]int),
		CommonSKUPrefixes: make(map[string]int),
		CommonSKUSuffixes: make(map[string]int),
	}

	prefixCounts := make(map[string]int)
	suffixCounts := make(map[string]int)
	var alphaChars, numericChars, totalChars int

	for rows.Next() {
		var sku, barcode string
		if err := rows.Scan(&sku, &barcode); err != nil {
			return nil, fmt.Errorf("failed to scan codes: %w", err)
		}

		if sku != "" {
			stats.TotalSKUs++
			stats.SKULengths[len(sku)]++
			if len(sku) >= statisticsPrefixLength {
				prefixCounts[sku[:statisticsPrefixLength]]++
				suffixCounts[sku[len(sku)-statisticsPrefixLength:]]++
			}
			for _, r := range sku {
				totalChars++
				switch {
				case unicode.IsLetter(r):
					alphaChars++
				case unicode.IsDigit(r):
					numericChars++
				}
			}
		}
		if barcode != "" {
			stats.TotalBarcodes++
			stats.BarcodeLengths[len(barcode)]++
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate codes: %w", err)
	}

	stats.CommonSKUPrefixes = topN(prefixCounts, statisticsPrefixTopN)
	stats.CommonSKUSuffixes = topN(suffixCounts, statisticsPrefixTopN)
	if totalChars > 0 {
		stats.SKUAlphaRatio = float64(alphaChars) / float64(totalChars)
		stats.SKUNumericRatio = float64(numericChars) / float64(totalChars)
	}

	return stats, nil
}

// topN keeps the n most frequent entries of a count table. Prefixes seen
// only once are noise, not convention.
func topN(counts map[string]int, n int) map[string]int {
	type entry struct {
		key   string
		count int
	}
	entries := make([]entry, 0, len(counts))
	for k, c := range counts {
		if c < 2 {
			continue
		}
		entries = append(entries, entry{key: k, count: c})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].key < entries[j].key
	})
	if len(entries) > n {
		entries = entries[:n]
	}

	out := make(map[string]int, len(entries))
	for _, e := range entries {
		out[e.key] = e.count
	}
	return out
}

func scanProducts(rows *sql.Rows) ([]model.Product, error) {
	var products []model.Product
	for rows.Next() {
		var p model.Product
		var barcode, platformID, category sql.NullString
		if err := rows.Scan(&p.ID, &p.SKU, &barcode, &platformID, &p.Name, &category, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		p.Barcode = barcode.String
		p.PlatformProductID = platformID.String
		p.Category = category.String
		products = append(products, p)
	}
	return products, rows.Err()
}

// escapeLike escapes LIKE wildcards in user-supplied fragments.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
