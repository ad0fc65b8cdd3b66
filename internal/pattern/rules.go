package pattern

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/pazarlink/pazarlink/internal/common"
	"github.com/pazarlink/pazarlink/internal/model"
)

// templateToken is one piece of an extraction template: either a capture
// group reference or a literal string.
type templateToken struct {
	literal string
	group   int
}

// compiledRule is an ExtractionRule with its expression and templates
// compiled. Templates are interpreted, never executed, so user rules cannot
// run code.
type compiledRule struct {
	regex    *regexp.Regexp
	base     []templateToken
	variant  []templateToken
	name     string
	priority int
}

// RuleSet evaluates user-defined extraction rules in priority order.
type RuleSet struct {
	rules []compiledRule
}

// NewRuleSet compiles the given rules. Inactive rules are skipped; a bad
// expression or template fails construction.
func NewRuleSet(rules []model.ExtractionRule) (*RuleSet, error) {
	compiled := make([]compiledRule, 0, len(rules))

	for _, r := range rules {
		if !r.IsActive {
			continue
		}

		regex, err := regexp.Compile(r.MatchExpression)
		if err != nil {
			return nil, fmt.Errorf("%w: rule %q has invalid match expression: %v", common.ErrInvalidConfig, r.Name, err)
		}

		base, err := parseTemplate(r.BaseRule, regex.NumSubexp())
		if err != nil {
			return nil, fmt.Errorf("%w: rule %q base template: %v", common.ErrInvalidConfig, r.Name, err)
		}
		variant, err := parseTemplate(r.VariantRule, regex.NumSubexp())
		if err != nil {
			return nil, fmt.Errorf("%w: rule %q variant template: %v", common.ErrInvalidConfig, r.Name, err)
		}

		compiled = append(compiled, compiledRule{
			regex:    regex,
			base:     base,
			variant:  variant,
			name:     r.Name,
			priority: r.Priority,
		})
	}

	sort.SliceStable(compiled, func(i, j int) bool {
		return compiled[i].priority > compiled[j].priority
	})

	return &RuleSet{rules: compiled}, nil
}

// Len returns the number of active compiled rules.
func (rs *RuleSet) Len() int {
	return len(rs.rules)
}

// Apply evaluates the rules against a code in priority order and returns the
// first rule's base/variant extraction.
func (rs *RuleSet) Apply(code string) (base, variant string, ok bool) {
	for _, rule := range rs.rules {
		groups := rule.regex.FindStringSubmatch(code)
		if groups == nil {
			continue
		}
		return evalTemplate(rule.base, groups), evalTemplate(rule.variant, groups), true
	}
	return "", "", false
}

// parseTemplate parses an extraction template into tokens. The grammar is
// deliberately tiny: whitespace-separated $N group references and
// double-quoted literals, concatenated in order. Example: `$1 "-" $2`.
func parseTemplate(template string, numGroups int) ([]templateToken, error) {
	fields := strings.Fields(template)
	if len(fields) == 0 {
		return nil, fmt.Errorf("template is empty")
	}

	tokens := make([]templateToken, 0, len(fields))
	for _, f := range fields {
		switch {
		case strings.HasPrefix(f, "$"):
			n, err := strconv.Atoi(f[1:])
			if err != nil {
				return nil, fmt.Errorf("bad group reference %q", f)
			}
			if n < 1 || n > numGroups {
				return nil, fmt.Errorf("group reference %q out of range (expression has %d groups)", f, numGroups)
			}
			tokens = append(tokens, templateToken{group: n})
		case len(f) >= 2 && strings.HasPrefix(f, `"`) && strings.HasSuffix(f, `"`):
			tokens = append(tokens, templateToken{literal: f[1 : len(f)-1], group: -1})
		default:
			return nil, fmt.Errorf("unrecognized template token %q", f)
		}
	}
	return tokens, nil
}

func evalTemplate(tokens []templateToken, groups []string) string {
	var b strings.Builder
	for _, tok := range tokens {
		if tok.group > 0 {
			b.WriteString(groups[tok.group])
		} else {
			b.WriteString(tok.literal)
		}
	}
	return b.String()
}
