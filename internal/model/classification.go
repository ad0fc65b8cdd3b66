package model

// CodeType indicates which identifier family a product code belongs to.
type CodeType string

// Code type constants.
const (
	CodeTypeSKU     CodeType = "sku"
	CodeTypeBarcode CodeType = "barcode"
)

// Signal records one scorer's contribution to a classification.
type Signal struct {
	Scorer     string
	Type       CodeType
	Confidence float64
	Weight     float64
}

// ClassificationResult represents the outcome of classifying a single code.
// Confidence is scaled to [0,1].
type ClassificationResult struct {
	Code       string
	Type       CodeType
	Signals    []Signal
	Confidence float64
}
