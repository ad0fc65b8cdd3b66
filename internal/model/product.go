// Package model defines the core domain models used throughout the application.
package model

import "time"

// Product represents one catalog entry owned by the merchant.
type Product struct {
	CreatedAt         time.Time
	UpdatedAt         time.Time
	SKU               string
	Barcode           string
	PlatformProductID string
	Name              string
	Category          string
	ID                int64
}

// CatalogStatistics holds aggregate shape statistics over the catalog,
// computed separately for the known-SKU and known-barcode populations.
// It is recomputed periodically by the catalog collaborator and consumed
// read-only by the code classifier.
type CatalogStatistics struct {
	SKULengths        map[int]int
	BarcodeLengths    map[int]int
	CommonSKUPrefixes map[string]int
	CommonSKUSuffixes map[string]int
	SKUAlphaRatio     float64
	SKUNumericRatio   float64
	TotalSKUs         int
	TotalBarcodes     int
}

// HasSKULength reports whether any known SKU has the given length.
func (s CatalogStatistics) HasSKULength(n int) bool {
	return s.SKULengths[n] > 0
}

// HasBarcodeLength reports whether any known barcode has the given length.
func (s CatalogStatistics) HasBarcodeLength(n int) bool {
	return s.BarcodeLengths[n] > 0
}

// HasSKUPrefix reports whether the code starts with one of the catalog's
// common SKU prefixes.
func (s CatalogStatistics) HasSKUPrefix(code string) bool {
	for prefix := range s.CommonSKUPrefixes {
		if len(code) >= len(prefix) && code[:len(prefix)] == prefix {
			return true
		}
	}
	return false
}
