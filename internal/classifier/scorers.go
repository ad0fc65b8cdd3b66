package classifier

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/pazarlink/pazarlink/internal/model"
)

// Vote is one scorer's opinion about a code.
type Vote struct {
	Type       model.CodeType
	Confidence float64
}

// Scorer scores a single code against one family of signals. Scorers are
// independent; the classifier combines their votes with fixed weights.
type Scorer interface {
	Name() string
	Score(code string, stats model.CatalogStatistics) (Vote, bool)
}

// separators recognized inside product codes.
const codeSeparators = "-_. "

func hasSeparator(code string) bool {
	return strings.ContainsAny(code, codeSeparators)
}

func isNumeric(code string) bool {
	if code == "" {
		return false
	}
	for _, r := range code {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func hasLetterAndDigit(code string) bool {
	var letter, digit bool
	for _, r := range code {
		switch {
		case unicode.IsLetter(r):
			letter = true
		case unicode.IsDigit(r):
			digit = true
		}
		if letter && digit {
			return true
		}
	}
	return false
}

// barcodeFormat is one entry in the fixed table of known barcode shapes.
type barcodeFormat struct {
	matches    func(code string) bool
	name       string
	confidence float64
}

var barcodeFormats = []barcodeFormat{
	{name: "EAN-13", confidence: 0.98, matches: func(c string) bool { return len(c) == 13 && isNumeric(c) }},
	{name: "UPC-A", confidence: 0.95, matches: func(c string) bool { return len(c) == 12 && isNumeric(c) }},
	{name: "ISBN", confidence: 0.95, matches: func(c string) bool {
		return len(c) == 13 && isNumeric(c) && (strings.HasPrefix(c, "978") || strings.HasPrefix(c, "979"))
	}},
	{name: "EAN-8", confidence: 0.95, matches: func(c string) bool { return len(c) == 8 && isNumeric(c) }},
	{name: "generic-numeric", confidence: 0.7, matches: func(c string) bool { return len(c) >= 10 && isNumeric(c) }},
}

// FormatScorer tests a code against the fixed table of known barcode shapes
// and returns the highest matching confidence.
type FormatScorer struct{}

// Name identifies the scorer in classification signals.
func (FormatScorer) Name() string { return "format" }

// Score returns a barcode vote when any known shape matches.
func (FormatScorer) Score(code string, _ model.CatalogStatistics) (Vote, bool) {
	best := 0.0
	for _, f := range barcodeFormats {
		if f.matches(code) && f.confidence > best {
			best = f.confidence
		}
	}
	if best == 0 {
		return Vote{}, false
	}
	return Vote{Type: model.CodeTypeBarcode, Confidence: best}, true
}

// StatisticalScorer scores a code against catalog-wide shape statistics.
type StatisticalScorer struct{}

// Name identifies the scorer in classification signals.
func (StatisticalScorer) Name() string { return "statistical" }

// Score accumulates per-class evidence and votes the heavier class.
func (StatisticalScorer) Score(code string, stats model.CatalogStatistics) (Vote, bool) {
	var skuScore, barcodeScore float64

	if stats.HasSKULength(len(code)) {
		skuScore += 0.3
	}
	if stats.HasBarcodeLength(len(code)) {
		barcodeScore += 0.3
	}

	if hasLetterAndDigit(code) {
		skuScore += 0.4
	} else if isNumeric(code) {
		barcodeScore += 0.5
	}

	if hasSeparator(code) {
		skuScore += 0.3
	}
	if stats.HasSKUPrefix(code) {
		skuScore += 0.2
	}

	if skuScore == 0 && barcodeScore == 0 {
		return Vote{}, false
	}
	if barcodeScore > skuScore {
		return Vote{Type: model.CodeTypeBarcode, Confidence: minFloat(barcodeScore, 1.0)}, true
	}
	return Vote{Type: model.CodeTypeSKU, Confidence: minFloat(skuScore, 1.0)}, true
}

// shapeIndicator is a hand-curated code shape with an intrinsic confidence.
type shapeIndicator struct {
	regex      *regexp.Regexp
	name       string
	confidence float64
}

// Curated from codes observed across marketplace integrations. Not fitted;
// fixed heuristics.
var (
	skuIndicators = []shapeIndicator{
		{name: "brand-prefixed-hyphenated", confidence: 0.85, regex: regexp.MustCompile(`^[A-Z]{2,5}-[A-Z0-9]{2,}(-[A-Z0-9]+)*$`)},
		{name: "underscore-numbered", confidence: 0.75, regex: regexp.MustCompile(`^[A-Za-z]{2,6}_\d{2,}$`)},
		{name: "letters-then-digits", confidence: 0.7, regex: regexp.MustCompile(`^[A-Za-z]{2,}\d{2,}$`)},
		{name: "dotted-variant", confidence: 0.7, regex: regexp.MustCompile(`^[A-Za-z0-9]+\.[A-Za-z0-9.]+$`)},
	}
	barcodeIndicators = []shapeIndicator{
		{name: "gs1-turkey", confidence: 0.95, regex: regexp.MustCompile(`^86\d{11}$`)},
		{name: "ean13-shape", confidence: 0.9, regex: regexp.MustCompile(`^\d{13}$`)},
		{name: "upc-shape", confidence: 0.85, regex: regexp.MustCompile(`^\d{12}$`)},
		{name: "ean8-shape", confidence: 0.9, regex: regexp.MustCompile(`^\d{8}$`)},
		{name: "vendor-generated", confidence: 0.75, regex: regexp.MustCompile(`^2\d{9,12}$`)},
	}
)

// LearnedScorer tests a code against curated shape indicators for both
// classes. SKU indicators are checked first; a barcode indicator overrides
// only when its confidence is strictly higher.
type LearnedScorer struct{}

// Name identifies the scorer in classification signals.
func (LearnedScorer) Name() string { return "learned" }

// Score returns the best indicator vote, if any indicator matches.
func (LearnedScorer) Score(code string, _ model.CatalogStatistics) (Vote, bool) {
	var vote Vote
	var matched bool

	for _, ind := range skuIndicators {
		if ind.regex.MatchString(code) && ind.confidence > vote.Confidence {
			vote = Vote{Type: model.CodeTypeSKU, Confidence: ind.confidence}
			matched = true
		}
	}
	for _, ind := range barcodeIndicators {
		if ind.regex.MatchString(code) && ind.confidence > vote.Confidence {
			vote = Vote{Type: model.CodeTypeBarcode, Confidence: ind.confidence}
			matched = true
		}
	}

	return vote, matched
}

// HeuristicScorer accumulates weak SKU-leaning structural evidence.
// Its vote is always for the SKU class, capped at 0.8.
type HeuristicScorer struct{}

// Name identifies the scorer in classification signals.
func (HeuristicScorer) Name() string { return "heuristic" }

var alnumBlockRegex = regexp.MustCompile(`^[A-Za-z0-9]+$`)

// hasRepeatedBlocks reports whether the code is built from two or more
// alphanumeric blocks joined by a single separator, like ABC-101-RED.
func hasRepeatedBlocks(code string) bool {
	for _, sep := range []string{"-", "_", ".", " "} {
		if !strings.Contains(code, sep) {
			continue
		}
		segments := strings.Split(code, sep)
		if len(segments) < 2 {
			continue
		}
		valid := true
		for _, seg := range segments {
			if seg == "" || !alnumBlockRegex.MatchString(seg) {
				valid = false
				break
			}
		}
		if valid {
			return true
		}
	}
	return false
}

// Score sums structural SKU hints.
func (HeuristicScorer) Score(code string, stats model.CatalogStatistics) (Vote, bool) {
	score := 0.1

	if hasLetterAndDigit(code) {
		score += 0.25
	}
	if hasSeparator(code) {
		score += 0.2
	}
	if hasRepeatedBlocks(code) {
		score += 0.15
	}
	if stats.HasSKUPrefix(code) {
		score += 0.1
	}
	if len(code) >= 6 && len(code) <= 30 {
		score += 0.1
	}

	return Vote{Type: model.CodeTypeSKU, Confidence: minFloat(score, 0.8)}, true
}

// minFloat returns the minimum of two float64 values.
func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
