package resolver

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/pazarlink/pazarlink/internal/common"
	"github.com/pazarlink/pazarlink/internal/model"
)

// fuzzyTitleTokenLimit caps how many leading title tokens feed the fuzzy
// search. Titles are long and tails are noisy; the first words carry the
// product identity.
const fuzzyTitleTokenLimit = 3

// Resolver links one line item to at most one catalog product. Resolve calls
// are stateless beyond the shared read-only index and safe to run
// concurrently.
type Resolver struct {
	index CatalogIndex
}

// New creates a resolver over the given catalog index. A missing index is a
// fatal configuration error, not something to limp along without.
func New(index CatalogIndex) (*Resolver, error) {
	if index == nil {
		return nil, fmt.Errorf("%w: catalog index is required", common.ErrCatalogUnavailable)
	}
	return &Resolver{index: index}, nil
}

// strategy attempts one matching heuristic. A nil product with nil error
// means the strategy does not apply or found nothing unambiguous.
type strategy struct {
	run  func(ctx context.Context, r *Resolver, item model.LineItem) (*model.Product, error)
	name model.MatchStrategy
}

// Strategies in strict priority order; the first unambiguous hit wins and
// evaluation stops. Ambiguity degrades to no-match, never to a guess.
var strategies = []strategy{
	{name: model.StrategyExactSKU, run: resolveExactSKU},
	{name: model.StrategyExactBarcode, run: resolveExactBarcode},
	{name: model.StrategyPlatformProductID, run: resolvePlatformID},
	{name: model.StrategyFuzzyTitle, run: resolveFuzzyTitle},
	{name: model.StrategyPartialSKU, run: resolvePartialSKU},
	{name: model.StrategyBarcodeVariation, run: resolveBarcodeVariations},
}

// Resolve finds the catalog product for a line item, or reports it unlinked.
// An unmatched item returns MatchResult{Matched: false} with a nil error;
// only catalog lookup I/O failures surface as (retryable) errors.
func (r *Resolver) Resolve(ctx context.Context, item model.LineItem) (model.MatchResult, error) {
	for _, s := range strategies {
		product, err := s.run(ctx, r, item)
		if err != nil {
			return model.MatchResult{}, fmt.Errorf("strategy %s: %w", s.name, err)
		}
		if product != nil {
			return model.MatchResult{Matched: true, Product: product, Strategy: s.name}, nil
		}
	}
	return model.MatchResult{Matched: false}, nil
}

// lookup normalizes index errors: a miss becomes (nil, nil); anything else
// is wrapped retryable so the caller may retry the whole resolve call.
func lookup(product *model.Product, err error) (*model.Product, error) {
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil
		}
		return nil, common.NewRetryableError(err)
	}
	return product, nil
}

func resolveExactSKU(ctx context.Context, r *Resolver, item model.LineItem) (*model.Product, error) {
	sku := strings.TrimSpace(item.SKU)
	if sku == "" {
		return nil, nil
	}
	return lookup(r.index.LookupBySKU(ctx, sku))
}

func resolveExactBarcode(ctx context.Context, r *Resolver, item model.LineItem) (*model.Product, error) {
	if isNullBarcode(item.Barcode) {
		return nil, nil
	}
	return lookup(r.index.LookupByBarcode(ctx, strings.TrimSpace(item.Barcode)))
}

func resolvePlatformID(ctx context.Context, r *Resolver, item model.LineItem) (*model.Product, error) {
	id := strings.TrimSpace(item.PlatformProductID)
	if id == "" {
		return nil, nil
	}
	return lookup(r.index.LookupByPlatformID(ctx, id))
}

func resolveFuzzyTitle(ctx context.Context, r *Resolver, item model.LineItem) (*model.Product, error) {
	tokens := strings.Fields(item.Title)
	if len(tokens) == 0 {
		return nil, nil
	}
	if len(tokens) > fuzzyTitleTokenLimit {
		tokens = tokens[:fuzzyTitleTokenLimit]
	}

	candidates, err := r.index.SearchByTitleTokens(ctx, tokens)
	if err != nil {
		return nil, common.NewRetryableError(err)
	}
	// More than one candidate is no-match, not a guess.
	if len(candidates) != 1 {
		return nil, nil
	}
	return &candidates[0], nil
}

func resolvePartialSKU(ctx context.Context, r *Resolver, item model.LineItem) (*model.Product, error) {
	sku := strings.TrimSpace(item.SKU)
	if len(sku) < 3 {
		return nil, nil
	}

	candidates, err := r.index.SearchBySKUPattern(ctx, sku)
	if err != nil {
		return nil, common.NewRetryableError(err)
	}
	if len(candidates) != 1 {
		return nil, nil
	}
	return &candidates[0], nil
}

func resolveBarcodeVariations(ctx context.Context, r *Resolver, item model.LineItem) (*model.Product, error) {
	if isNullBarcode(item.Barcode) {
		return nil, nil
	}
	for _, variation := range barcodeVariations(strings.TrimSpace(item.Barcode)) {
		product, err := lookup(r.index.LookupByBarcode(ctx, variation))
		if err != nil {
			return nil, err
		}
		if product != nil {
			return product, nil
		}
	}
	return nil, nil
}

// ItemResult pairs a line item with its resolution outcome.
type ItemResult struct {
	Err    error
	Result model.MatchResult
	Item   model.LineItem
}

// BatchSummary aggregates resolution outcomes. One item failing never
// aborts the batch; consumers report "N linked via strategy X / M unlinked".
type BatchSummary struct {
	Linked   map[model.MatchStrategy]int
	Results  []ItemResult
	Unlinked int
	Failed   int
}

// ResolveBatch resolves the line items of one order-import batch
// concurrently. Limit bounds the parallelism; values below 1 mean
// one-at-a-time.
func (r *Resolver) ResolveBatch(ctx context.Context, items []model.LineItem, limit int) (*BatchSummary, error) {
	if limit < 1 {
		limit = 1
	}

	summary := &BatchSummary{
		Linked:  make(map[model.MatchStrategy]int),
		Results: make([]ItemResult, len(items)),
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			result, err := r.Resolve(gctx, item)

			mu.Lock()
			defer mu.Unlock()
			summary.Results[i] = ItemResult{Item: item, Result: result, Err: err}
			switch {
			case err != nil:
				summary.Failed++
			case result.Matched:
				summary.Linked[result.Strategy]++
			default:
				summary.Unlinked++
			}
			// Per-item failures are recorded, not propagated; cancellation
			// still stops the group.
			if gctx.Err() != nil {
				return gctx.Err()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return summary, err
	}
	return summary, nil
}

// TotalLinked sums links across strategies.
func (s *BatchSummary) TotalLinked() int {
	total := 0
	for _, n := range s.Linked {
		total += n
	}
	return total
}
