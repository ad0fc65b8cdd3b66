package model

import "time"

// ExtractionRule is a declarative, user-defined rule for splitting a code
// into base pattern and variant suffix. MatchExpression is a regular
// expression with capture groups; BaseRule and VariantRule are small
// templates built only from $N group references and quoted literals
// (e.g. `$1 "-" $2`), interpreted by a sandboxed evaluator. Rules never
// execute caller-supplied code.
type ExtractionRule struct {
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	Name            string    `json:"name"`
	MatchExpression string    `json:"match_expression"`
	BaseRule        string    `json:"base_rule"`
	VariantRule     string    `json:"variant_rule"`
	Priority        int       `json:"priority"`
	IsActive        bool      `json:"is_active"`
}
