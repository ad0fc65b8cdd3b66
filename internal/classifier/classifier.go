// Package classifier decides whether an opaque product code is a SKU or a
// barcode. Four independent scorers vote and a fixed-weight reducer combines
// them; ambiguity degrades to a documented SKU default rather than an
// "unknown" class, so downstream tooling never has to branch on a third
// outcome.
package classifier

import (
	"fmt"
	"strings"

	"github.com/pazarlink/pazarlink/internal/common"
	"github.com/pazarlink/pazarlink/internal/model"
)

// Decision thresholds for the weighted vote.
const (
	barcodeThreshold = 0.5
	skuThreshold     = 0.4
	// ambiguityFloor is the confidence reported when no class wins and the
	// classifier falls back to the SKU default.
	ambiguityFloor = 0.3
)

type weightedScorer struct {
	scorer Scorer
	weight float64
}

// Classifier is a stateless ensemble of weighted scorers. The zero value is
// not usable; construct with New.
type Classifier struct {
	scorers []weightedScorer
}

// New creates a classifier with the standard scorer ensemble. Weights are
// fixed heuristics, not fitted parameters.
func New() *Classifier {
	return &Classifier{
		scorers: []weightedScorer{
			{scorer: FormatScorer{}, weight: 0.4},
			{scorer: StatisticalScorer{}, weight: 0.3},
			{scorer: LearnedScorer{}, weight: 0.2},
			{scorer: HeuristicScorer{}, weight: 0.1},
		},
	}
}

// Classify scores one code against the catalog statistics and returns its
// class with a confidence in [0,1]. Empty input is rejected. The call is a
// pure function over its inputs.
func (c *Classifier) Classify(code string, stats model.CatalogStatistics) (model.ClassificationResult, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return model.ClassificationResult{}, fmt.Errorf("%w: code must not be empty", common.ErrInvalidInput)
	}

	var skuScore, barcodeScore float64
	signals := make([]model.Signal, 0, len(c.scorers))

	for _, ws := range c.scorers {
		vote, ok := ws.scorer.Score(code, stats)
		if !ok {
			continue
		}
		signals = append(signals, model.Signal{
			Scorer:     ws.scorer.Name(),
			Type:       vote.Type,
			Confidence: vote.Confidence,
			Weight:     ws.weight,
		})
		switch vote.Type {
		case model.CodeTypeSKU:
			skuScore += ws.weight * vote.Confidence
		case model.CodeTypeBarcode:
			barcodeScore += ws.weight * vote.Confidence
		}
	}

	result := model.ClassificationResult{Code: code, Signals: signals}

	switch {
	case barcodeScore > skuScore && barcodeScore > barcodeThreshold:
		result.Type = model.CodeTypeBarcode
		result.Confidence = minFloat(barcodeScore, 1.0)
	case skuScore > barcodeScore && skuScore > skuThreshold:
		result.Type = model.CodeTypeSKU
		result.Confidence = minFloat(skuScore, 1.0)
	default:
		// Documented ambiguity default: prefer a low-confidence SKU answer
		// over an "unknown" class.
		result.Type = model.CodeTypeSKU
		result.Confidence = maxFloat(skuScore, ambiguityFloor)
	}

	return result, nil
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
