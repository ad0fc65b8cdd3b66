// Package resolver links externally sourced order line items to catalog
// products through an ordered chain of matching strategies.
package resolver

import (
	"context"

	"github.com/pazarlink/pazarlink/internal/model"
)

// CatalogIndex is the read-only lookup capability over the merchant's
// catalog, implemented by the persistence layer. Lookups return
// common.ErrNotFound on a miss; any other error is treated as an I/O
// failure. Implementations must be safe for concurrent reads.
type CatalogIndex interface {
	LookupBySKU(ctx context.Context, sku string) (*model.Product, error)
	LookupByBarcode(ctx context.Context, barcode string) (*model.Product, error)
	LookupByPlatformID(ctx context.Context, platformID string) (*model.Product, error)
	// SearchByTitleTokens returns products whose names contain every token,
	// case-insensitively.
	SearchByTitleTokens(ctx context.Context, tokens []string) ([]model.Product, error)
	// SearchBySKUPattern returns products whose SKU starts with or contains
	// the fragment.
	SearchBySKUPattern(ctx context.Context, fragment string) ([]model.Product, error)
}
