package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pazarlink/pazarlink/internal/common"
	"github.com/pazarlink/pazarlink/internal/model"
)

// testStats mimics a catalog with hyphenated alphanumeric SKUs and EAN-style
// barcodes.
func testStats() model.CatalogStatistics {
	return model.CatalogStatistics{
		SKULengths:     map[int]int{11: 12, 15: 7, 16: 4},
		BarcodeLengths: map[int]int{8: 3, 12: 5, 13: 40, 14: 2},
		CommonSKUPrefixes: map[string]int{
			"NWK": 9,
			"NWA": 4,
		},
		TotalSKUs:     23,
		TotalBarcodes: 50,
	}
}

func TestClassifier_BarcodeShapes(t *testing.T) {
	c := New()

	tests := []struct {
		name string
		code string
	}{
		{name: "EAN-13", code: "8690123456789"},
		{name: "EAN-13 ISBN prefix", code: "9789750719387"},
		{name: "UPC-A", code: "123456789012"},
		{name: "EAN-8", code: "12345678"},
	}

	// Known shapes must clear the 0.7 floor from the shape alone; catalog
	// statistics may reinforce the answer but are never required for it.
	statsCases := []struct {
		name  string
		stats model.CatalogStatistics
	}{
		{name: "with catalog stats", stats: testStats()},
		{name: "empty catalog", stats: model.CatalogStatistics{}},
	}

	for _, sc := range statsCases {
		for _, tt := range tests {
			t.Run(sc.name+"/"+tt.name, func(t *testing.T) {
				result, err := c.Classify(tt.code, sc.stats)
				require.NoError(t, err)

				assert.Equal(t, model.CodeTypeBarcode, result.Type)
				assert.GreaterOrEqual(t, result.Confidence, 0.7)
			})
		}
	}
}

func TestClassifier_SKUShapes(t *testing.T) {
	c := New()
	stats := testStats()

	tests := []struct {
		name string
		code string
	}{
		{name: "multi-segment hyphenated", code: "NWAD-SA003-A2542"},
		{name: "prefix and numeric variant", code: "NWK-AS001"},
		{name: "underscore separated", code: "TSHIRT_001_RED"},
		{name: "mixed with space", code: "AB 1234 XL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := c.Classify(tt.code, stats)
			require.NoError(t, err)

			assert.Equal(t, model.CodeTypeSKU, result.Type)
			assert.Greater(t, result.Confidence, 0.0)
		})
	}
}

func TestClassifier_EmptyInput(t *testing.T) {
	c := New()

	for _, code := range []string{"", "   ", "\t"} {
		_, err := c.Classify(code, model.CatalogStatistics{})
		require.Error(t, err)
		assert.ErrorIs(t, err, common.ErrInvalidInput)
	}
}

func TestClassifier_AmbiguityDefaultsToSKU(t *testing.T) {
	c := New()

	// Two digits carry no strong signal in either direction. The documented
	// default is a low-confidence SKU answer, never an "unknown" class.
	result, err := c.Classify("12", model.CatalogStatistics{})
	require.NoError(t, err)

	assert.Equal(t, model.CodeTypeSKU, result.Type)
	assert.LessOrEqual(t, result.Confidence, 0.4)
	assert.GreaterOrEqual(t, result.Confidence, 0.3)
}

func TestClassifier_SignalsReported(t *testing.T) {
	c := New()

	result, err := c.Classify("8690123456789", testStats())
	require.NoError(t, err)

	require.NotEmpty(t, result.Signals)
	scorers := make(map[string]model.Signal)
	for _, s := range result.Signals {
		scorers[s.Scorer] = s
	}

	format, ok := scorers["format"]
	require.True(t, ok, "format scorer should fire on an EAN-13")
	assert.Equal(t, model.CodeTypeBarcode, format.Type)
	assert.InDelta(t, 0.98, format.Confidence, 0.001)
	assert.InDelta(t, 0.4, format.Weight, 0.001)
}

func TestClassifier_PureFunction(t *testing.T) {
	c := New()
	stats := testStats()

	first, err := c.Classify("NWK-AS001", stats)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := c.Classify("NWK-AS001", stats)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestClassifier_CatalogPrefixTipsTheScale(t *testing.T) {
	c := New()

	// Without catalog evidence the short mixed code is weak; a known
	// catalog prefix adds SKU weight.
	noStats := model.CatalogStatistics{}
	withPrefix := model.CatalogStatistics{
		SKULengths:        map[int]int{7: 3},
		CommonSKUPrefixes: map[string]int{"NWK": 9},
	}

	weak, err := c.Classify("NWK-A01", noStats)
	require.NoError(t, err)
	strong, err := c.Classify("NWK-A01", withPrefix)
	require.NoError(t, err)

	assert.Equal(t, model.CodeTypeSKU, weak.Type)
	assert.Equal(t, model.CodeTypeSKU, strong.Type)
	assert.Greater(t, strong.Confidence, weak.Confidence)
}
