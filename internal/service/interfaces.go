// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/pazarlink/pazarlink/internal/model"
)

// ProductFilter defines filtering options for catalog queries.
type ProductFilter struct {
	Category string
	Limit    int
	Offset   int
}

// CatalogStore defines the contract for the catalog persistence layer.
type CatalogStore interface {
	// Product operations
	SaveProducts(ctx context.Context, products []model.Product) error
	GetProducts(ctx context.Context, filter ProductFilter) ([]model.Product, error)
	GetProductBySKU(ctx context.Context, sku string) (*model.Product, error)
	CountProducts(ctx context.Context) (int, error)
	ListSKUs(ctx context.Context) ([]string, error)

	// Aggregate statistics consumed by the code classifier.
	ComputeStatistics(ctx context.Context) (*model.CatalogStatistics, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
