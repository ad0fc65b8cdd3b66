package model

// LineItem is one product entry within an externally sourced marketplace
// order, already normalized by the platform-specific mapping layer.
type LineItem struct {
	SKU               string `json:"sku"`
	Barcode           string `json:"barcode"`
	PlatformProductID string `json:"platform_product_id"`
	Title             string `json:"title"`
}

// IsEmpty reports whether the item carries no usable identity signal at all.
func (li LineItem) IsEmpty() bool {
	return li.SKU == "" && li.Barcode == "" && li.PlatformProductID == "" && li.Title == ""
}

// MatchStrategy names the resolver strategy that produced a link.
type MatchStrategy string

// Match strategies in priority order.
const (
	StrategyExactSKU          MatchStrategy = "exact_sku"
	StrategyExactBarcode      MatchStrategy = "exact_barcode"
	StrategyPlatformProductID MatchStrategy = "platform_product_id"
	StrategyFuzzyTitle        MatchStrategy = "fuzzy_title"
	StrategyPartialSKU        MatchStrategy = "partial_sku"
	StrategyBarcodeVariation  MatchStrategy = "barcode_variations"
)

// MatchResult is the outcome of resolving one line item against the catalog.
// At most one link is ever produced; an unmatched item is an expected,
// reportable outcome, not an error.
type MatchResult struct {
	Product  *Product
	Strategy MatchStrategy
	Matched  bool
}
