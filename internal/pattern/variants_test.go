package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pazarlink/pazarlink/internal/model"
)

func TestClassifySuffix(t *testing.T) {
	tests := []struct {
		suffix string
		want   model.VariantType
	}{
		{suffix: "001", want: model.VariantTypeNumeric},
		{suffix: "42", want: model.VariantTypeNumeric},
		{suffix: "SIYAH", want: model.VariantTypeColor},
		{suffix: "black", want: model.VariantTypeColor},
		{suffix: "Bordo", want: model.VariantTypeColor},
		{suffix: "XL", want: model.VariantTypeSize},
		{suffix: "m", want: model.VariantTypeSize},
		{suffix: "BUYUK", want: model.VariantTypeSize},
		{suffix: "v2", want: model.VariantTypeVersion},
		{suffix: "PRO", want: model.VariantTypeVersion},
		{suffix: "A2", want: model.VariantTypeVersion},
		{suffix: "WIDGET", want: model.VariantTypeGeneric},
		{suffix: "A2542", want: model.VariantTypeGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.suffix, func(t *testing.T) {
			assert.Equal(t, tt.want, classifySuffix(tt.suffix))
		})
	}
}

func TestDetectVariantType(t *testing.T) {
	tests := []struct {
		name     string
		suffixes []string
		want     model.VariantType
	}{
		{name: "all colors", suffixes: []string{"SIYAH", "BEYAZ", "MAVI"}, want: model.VariantTypeColor},
		{name: "majority sizes", suffixes: []string{"S", "M", "L", "OTHER"}, want: model.VariantTypeSize},
		{name: "exactly half numeric", suffixes: []string{"001", "002", "AA", "BB"}, want: model.VariantTypeNumeric},
		{name: "no majority", suffixes: []string{"SIYAH", "XL", "001", "WIDGET"}, want: model.VariantTypeGeneric},
		{name: "empty", suffixes: nil, want: model.VariantTypeGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, detectVariantType(tt.suffixes))
		})
	}
}
