package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pazarlink/pazarlink/internal/common"
	"github.com/pazarlink/pazarlink/internal/model"
)

func TestRuleSet_Apply(t *testing.T) {
	rules, err := NewRuleSet([]model.ExtractionRule{
		{
			Name:            "slash variants",
			MatchExpression: `^([A-Z]+)/(\d+)$`,
			BaseRule:        `$1`,
			VariantRule:     `$2`,
			Priority:        5,
			IsActive:        true,
		},
		{
			Name:            "year prefixed",
			MatchExpression: `^(\d{4})([A-Z]+)(\d+)$`,
			BaseRule:        `$1 "-" $2`,
			VariantRule:     `$3`,
			Priority:        10,
			IsActive:        true,
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, rules.Len())

	tests := []struct {
		name        string
		code        string
		wantBase    string
		wantVariant string
		wantMatch   bool
	}{
		{name: "slash rule", code: "SHOE/42", wantBase: "SHOE", wantVariant: "42", wantMatch: true},
		{name: "year rule with literal", code: "2024KLM007", wantBase: "2024-KLM", wantVariant: "007", wantMatch: true},
		{name: "no rule applies", code: "plain-code", wantMatch: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base, variant, ok := rules.Apply(tt.code)
			assert.Equal(t, tt.wantMatch, ok)
			if tt.wantMatch {
				assert.Equal(t, tt.wantBase, base)
				assert.Equal(t, tt.wantVariant, variant)
			}
		})
	}
}

func TestRuleSet_PriorityOrder(t *testing.T) {
	// Both rules match; the higher priority one must win.
	rules, err := NewRuleSet([]model.ExtractionRule{
		{Name: "low", MatchExpression: `^(\w+)-(\w+)$`, BaseRule: `$1`, VariantRule: `$2`, Priority: 1, IsActive: true},
		{Name: "high", MatchExpression: `^(\w+)-(\w+)$`, BaseRule: `$1 "!"`, VariantRule: `$2`, Priority: 9, IsActive: true},
	})
	require.NoError(t, err)

	base, _, ok := rules.Apply("AA-BB")
	require.True(t, ok)
	assert.Equal(t, "AA!", base)
}

func TestRuleSet_InactiveRulesSkipped(t *testing.T) {
	rules, err := NewRuleSet([]model.ExtractionRule{
		{Name: "off", MatchExpression: `^(\w+)$`, BaseRule: `$1`, VariantRule: `$1`, IsActive: false},
	})
	require.NoError(t, err)

	assert.Equal(t, 0, rules.Len())
	_, _, ok := rules.Apply("ANYTHING")
	assert.False(t, ok)
}

func TestRuleSet_ConstructionErrors(t *testing.T) {
	tests := []struct {
		name string
		rule model.ExtractionRule
	}{
		{
			name: "bad regex",
			rule: model.ExtractionRule{Name: "r", MatchExpression: `([`, BaseRule: `$1`, VariantRule: `$1`, IsActive: true},
		},
		{
			name: "group reference out of range",
			rule: model.ExtractionRule{Name: "r", MatchExpression: `^(\w+)$`, BaseRule: `$2`, VariantRule: `$1`, IsActive: true},
		},
		{
			name: "empty template",
			rule: model.ExtractionRule{Name: "r", MatchExpression: `^(\w+)$`, BaseRule: ``, VariantRule: `$1`, IsActive: true},
		},
		{
			name: "unquoted literal",
			rule: model.ExtractionRule{Name: "r", MatchExpression: `^(\w+)$`, BaseRule: `$1 raw`, VariantRule: `$1`, IsActive: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRuleSet([]model.ExtractionRule{tt.rule})
			require.Error(t, err)
			assert.ErrorIs(t, err, common.ErrInvalidConfig)
		})
	}
}
