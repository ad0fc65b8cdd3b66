// Package pattern discovers latent base-pattern/variant families across a
// catalog's SKUs. Analysis is a recomputable batch operation over a catalog
// snapshot; nothing is maintained incrementally.
package pattern

import (
	"context"
	"sort"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/pazarlink/pazarlink/internal/model"
)

// patternNamespace seeds deterministic pattern ids, so identical inputs
// produce identical ids across runs.
var patternNamespace = uuid.MustParse("8f1a36a4-21cd-43c8-9a5e-7de0c5b68f21")

// AnalysisStats summarizes one analysis run.
type AnalysisStats struct {
	CountsByVariantType map[model.VariantType]int
	TotalCodes          int
	PatternsFound       int
	AverageConfidence   float64
}

// Result bundles the detected patterns with run statistics.
type Result struct {
	Patterns []model.Pattern
	Stats    AnalysisStats
}

// Detector extracts, scores, and filters candidate pattern groups.
type Detector struct {
	rules *RuleSet
	opts  Options
}

// New creates a detector, validating the options up front.
func New(opts Options) (*Detector, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Detector{opts: opts}, nil
}

// WithRules attaches user-defined extraction rules. Rule extractions
// participate in grouping ahead of separator splits.
func (d *Detector) WithRules(rules *RuleSet) *Detector {
	d.rules = rules
	return d
}

// candidate is one (base, separator, variant) segmentation of a code.
type candidate struct {
	base    string
	sep     string
	variant string
	code    string
}

// group accumulates candidates sharing a (base, separator) key.
type group struct {
	members  map[string]struct{}
	suffixes map[string]struct{}
	base     string
	sep      string
}

// Analyze runs a full detection pass over the codes. It is a pure function
// of its inputs: identical codes and options yield identical pattern ids,
// confidences, and variant types. Empty input yields an empty result.
// The context is checked between group-scoring iterations so large analyses
// can be aborted.
func (d *Detector) Analyze(ctx context.Context, codes []string) (Result, error) {
	result := Result{
		Stats: AnalysisStats{
			TotalCodes:          len(codes),
			CountsByVariantType: make(map[model.VariantType]int),
		},
	}
	if len(codes) == 0 {
		return result, nil
	}

	groups := make(map[string]*group)
	for _, code := range codes {
		for _, cand := range d.extract(code) {
			key := cand.base + "\x00" + cand.sep
			g, ok := groups[key]
			if !ok {
				g = &group{
					base:     cand.base,
					sep:      cand.sep,
					members:  make(map[string]struct{}),
					suffixes: make(map[string]struct{}),
				}
				groups[key] = g
			}
			g.members[cand.code] = struct{}{}
			g.suffixes[cand.variant] = struct{}{}
		}
	}

	// Deterministic iteration order for scoring and cancellation checks.
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	patterns := make([]model.Pattern, 0, len(groups))
	for _, key := range keys {
		select {
		case <-ctx.Done():
			return Result{}, ctx.Err()
		default:
		}

		g := groups[key]
		if len(g.members) < d.opts.MinGroupSize {
			continue
		}

		p := d.scoreGroup(g)
		if p.Confidence < d.opts.MinConfidence {
			continue
		}
		patterns = append(patterns, p)
	}

	patterns = dedupeByMembers(patterns)

	sort.SliceStable(patterns, func(i, j int) bool {
		if patterns[i].Confidence != patterns[j].Confidence {
			return patterns[i].Confidence > patterns[j].Confidence
		}
		return patterns[i].BasePattern < patterns[j].BasePattern
	})

	result.Patterns = patterns
	result.Stats.PatternsFound = len(patterns)
	if len(patterns) > 0 {
		total := 0
		for _, p := range patterns {
			total += p.Confidence
			result.Stats.CountsByVariantType[p.VariantType]++
		}
		result.Stats.AverageConfidence = float64(total) / float64(len(patterns))
	}

	return result, nil
}

// extract produces every candidate segmentation of one code: user rules
// first, then separator splits at every depth, then an alpha/digit boundary
// refinement of the trailing segment (catalogs encode numeric variants as
// NWK-AS001 rather than NWK-AS-001).
func (d *Detector) extract(code string) []candidate {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil
	}

	var candidates []candidate

	if d.rules != nil {
		if base, variant, ok := d.rules.Apply(code); ok {
			if cand, valid := d.makeCandidate(code, base, "", variant); valid {
				candidates = append(candidates, cand)
			}
		}
	}

	for _, sep := range d.opts.Separators {
		if !strings.Contains(code, sep) {
			continue
		}
		segments := strings.Split(code, sep)

		maxSplit := d.opts.MaxPatternLength
		if maxSplit > len(segments) {
			maxSplit = len(segments)
		}
		for i := 1; i < maxSplit; i++ {
			base := strings.Join(segments[:i], sep)
			variant := strings.Join(segments[i:], sep)
			if cand, valid := d.makeCandidate(code, base, sep, variant); valid {
				candidates = append(candidates, cand)
			}
		}

		// Trailing-segment refinement: NWK-AS001 also yields base NWK-AS
		// with numeric variant 001.
		if len(segments) > d.opts.MaxPatternLength {
			continue
		}
		last := segments[len(segments)-1]
		if letters, digits, ok := splitAlphaDigitBoundary(last); ok {
			base := strings.Join(append(append([]string{}, segments[:len(segments)-1]...), letters), sep)
			if cand, valid := d.makeCandidate(code, base, sep, digits); valid {
				candidates = append(candidates, cand)
			}
		}
	}

	return candidates
}

// makeCandidate applies the shared rejection rules.
func (d *Detector) makeCandidate(code, base, sep, variant string) (candidate, bool) {
	if len(base) < 2 || variant == "" {
		return candidate{}, false
	}
	if d.opts.SmartExclusions && containsExcludedToken(variant, d.opts.ExclusionTokens) {
		return candidate{}, false
	}
	return candidate{base: base, sep: sep, variant: variant, code: code}, true
}

func containsExcludedToken(variant string, tokens []string) bool {
	lowered := strings.ToLower(variant)
	for _, tok := range tokens {
		if strings.Contains(lowered, tok) {
			return true
		}
	}
	return false
}

// splitAlphaDigitBoundary splits a segment like AS001 into ("AS", "001").
// The boundary is the last letter-to-digit transition; segments without a
// trailing digit run report no boundary.
func splitAlphaDigitBoundary(segment string) (letters, digits string, ok bool) {
	i := len(segment)
	for i > 0 && unicode.IsDigit(rune(segment[i-1])) {
		i--
	}
	if i == 0 || i == len(segment) {
		return "", "", false
	}
	if !unicode.IsLetter(rune(segment[i-1])) {
		return "", "", false
	}
	return segment[:i], segment[i:], true
}

// scoreGroup turns a surviving group into a scored Pattern.
func (d *Detector) scoreGroup(g *group) model.Pattern {
	members := setToSortedSlice(g.members)
	suffixes := setToSortedSlice(g.suffixes)

	variantType := detectVariantType(suffixes)

	score := 50

	frequency := len(members) * 10
	if frequency > 30 {
		frequency = 30
	}
	score += frequency

	diversity := len(suffixes) * 5
	if diversity > 20 {
		diversity = 20
	}
	score += diversity

	if meanLength(suffixes) <= 4 {
		score += 10
	}
	if variantType != model.VariantTypeGeneric {
		score += 10
	}
	if score > 100 {
		score = 100
	}

	return model.Pattern{
		ID:              uuid.NewSHA1(patternNamespace, []byte(g.base+"\x00"+g.sep)).String(),
		BasePattern:     g.base,
		Separator:       g.sep,
		VariantType:     variantType,
		MemberCodes:     members,
		VariantSuffixes: suffixes,
		Confidence:      score,
	}
}

// dedupeByMembers collapses patterns covering the exact same member set:
// a boundary refinement and its coarser split describe one family. The
// higher-confidence, longer-base pattern wins. Patterns with differing
// member sets are left alone; overlap is legitimate and reconciled by the
// caller.
func dedupeByMembers(patterns []model.Pattern) []model.Pattern {
	byMembers := make(map[string]model.Pattern)
	for _, p := range patterns {
		key := strings.Join(p.MemberCodes, "\x00")
		existing, ok := byMembers[key]
		if !ok || better(p, existing) {
			byMembers[key] = p
		}
	}

	out := make([]model.Pattern, 0, len(byMembers))
	for _, p := range byMembers {
		out = append(out, p)
	}
	return out
}

func better(a, b model.Pattern) bool {
	if a.Confidence != b.Confidence {
		return a.Confidence > b.Confidence
	}
	if len(a.BasePattern) != len(b.BasePattern) {
		return len(a.BasePattern) > len(b.BasePattern)
	}
	return a.BasePattern < b.BasePattern
}

func setToSortedSlice(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

func meanLength(values []string) float64 {
	if len(values) == 0 {
		return 0
	}
	total := 0
	for _, v := range values {
		total += len(v)
	}
	return float64(total) / float64(len(values))
}
