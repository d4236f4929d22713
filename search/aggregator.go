package search

import (
	"context"
	"math"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"pricescout/pricing"
	"pricescout/relevance"
)

// maxResults caps the ranked output.
const maxResults = 5

// Aggregator fans a search term out to every source of a category,
// waits for all of them to settle, then filters, ranks and truncates
// the merged listings.
type Aggregator struct {
	router *Router
	scorer relevance.Scorer
	logger *zap.Logger
}

func NewAggregator(router *Router, scorer relevance.Scorer, logger *zap.Logger) *Aggregator {
	return &Aggregator{
		router: router,
		scorer: scorer,
		logger: logger,
	}
}

// Search runs the full aggregation pipeline. A failing or slow source
// never aborts the others: each adapter self-bounds its latency and
// its errors are logged and absorbed here. The call itself only fails
// with ErrEmptyTerm, ErrInvalidCategory or ErrNoResults.
func (a *Aggregator) Search(ctx context.Context, term, category string) ([]ScoredItem, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, ErrEmptyTerm
	}

	sources, err := a.router.Resolve(category)
	if err != nil {
		return nil, err
	}

	a.logger.Info("starting search",
		zap.String("term", term),
		zap.String("category", category),
		zap.Int("sources", len(sources)))

	// One result slot per source, filled in router order, so that the
	// merge never depends on which adapter finished first.
	collected := make([][]RawItem, len(sources))
	var wg sync.WaitGroup
	for i, src := range sources {
		wg.Add(1)
		go func(i int, src Source) {
			defer wg.Done()
			items, err := src.Fetch(ctx, term)
			if err != nil {
				a.logger.Warn("source failed",
					zap.String("source", src.Name()),
					zap.Error(err))
				return
			}
			a.logger.Info("source succeeded",
				zap.String("source", src.Name()),
				zap.Int("items", len(items)))
			collected[i] = items
		}(i, src)
	}
	wg.Wait()

	var scored []ScoredItem
	total := 0
	for _, items := range collected {
		total += len(items)
		for _, item := range items {
			score := a.scorer.Score(item.Title, term, item.Rating)
			if score <= 0 {
				continue
			}
			price := pricing.Normalize(item.Price)
			if math.IsInf(price, 0) || math.IsNaN(price) {
				continue
			}
			scored = append(scored, ScoredItem{
				RawItem:         item,
				Score:           score,
				NormalizedPrice: price,
			})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].NormalizedPrice < scored[j].NormalizedPrice
	})

	if len(scored) == 0 {
		a.logger.Info("no relevant items",
			zap.String("term", term),
			zap.Int("raw_items", total))
		return nil, ErrNoResults
	}
	if len(scored) > maxResults {
		scored = scored[:maxResults]
	}

	a.logger.Info("search complete",
		zap.String("term", term),
		zap.Int("raw_items", total),
		zap.Int("returned", len(scored)))
	return scored, nil
}
