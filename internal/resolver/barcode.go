package resolver

import "strings"

// Null-sentinel barcode values seen in marketplace feeds. Items carrying
// one of these have no real barcode and must not match anything.
var barcodeNullSentinels = map[string]struct{}{
	"0":    {},
	"-":    {},
	"n/a":  {},
	"na":   {},
	"null": {},
	"none": {},
	"yok":  {},
	"0000000000000": {},
}

// isNullBarcode reports whether the barcode is empty or a known sentinel.
func isNullBarcode(barcode string) bool {
	trimmed := strings.ToLower(strings.TrimSpace(barcode))
	if trimmed == "" {
		return true
	}
	_, ok := barcodeNullSentinels[trimmed]
	return ok
}

// barcodeVariations returns normalized forms of a barcode worth retrying:
// leading zeros stripped, EAN-13 zero-padded to GTIN-14, and GTIN-14
// truncated back to EAN-13. The original value is not included.
func barcodeVariations(barcode string) []string {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return nil
	}

	seen := map[string]struct{}{barcode: {}}
	var variations []string
	add := func(v string) {
		if v == "" {
			return
		}
		if _, ok := seen[v]; ok {
			return
		}
		seen[v] = struct{}{}
		variations = append(variations, v)
	}

	add(strings.TrimLeft(barcode, "0"))

	if len(barcode) == 13 {
		add("0" + barcode)
	}
	if len(barcode) == 14 && strings.HasPrefix(barcode, "0") {
		add(barcode[1:])
	}

	return variations
}
