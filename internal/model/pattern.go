package model

// VariantType labels what a pattern group's suffixes encode.
type VariantType string

// Variant type constants.
const (
	VariantTypeColor   VariantType = "color"
	VariantTypeSize    VariantType = "size"
	VariantTypeVersion VariantType = "version"
	VariantTypeNumeric VariantType = "numeric"
	VariantTypeGeneric VariantType = "generic"
)

// Pattern represents one detected base-pattern/variant family across the
// catalog's SKUs. Confidence is scaled to [0,100]. A single code may belong
// to multiple overlapping patterns; reconciliation is the caller's concern.
type Pattern struct {
	ID              string
	BasePattern     string
	Separator       string
	VariantType     VariantType
	MemberCodes     []string
	VariantSuffixes []string
	Confidence      int
}

// MemberCount returns the number of codes in the group.
func (p Pattern) MemberCount() int {
	return len(p.MemberCodes)
}
