package aggregator

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/crowdwisdom/marketbrief/internal/models"
)

// Aggregator issues the configured queries against the search capability,
// merges the results, deduplicates by URL and keeps the top items by
// relevance.
type Aggregator struct {
	provider    models.SearchProvider
	constraints models.SearchConstraints
	maxItems    int
	maxImages   int
	logger      *slog.Logger
}

func New(provider models.SearchProvider, constraints models.SearchConstraints, maxItems, maxImages int, logger *slog.Logger) *Aggregator {
	return &Aggregator{
		provider:    provider,
		constraints: constraints,
		maxItems:    maxItems,
		maxImages:   maxImages,
		logger:      logger,
	}
}

// Aggregate runs every query concurrently and returns the ranked, deduplicated
// top items plus candidate image URLs. A failed query is logged and skipped;
// when every query fails the result is empty, never an error.
func (a *Aggregator) Aggregate(ctx context.Context, queries []string) ([]models.NewsItem, []string) {
	results := make([]models.SearchResult, len(queries))

	var wg sync.WaitGroup
	for i, query := range queries {
		wg.Add(1)
		go func(i int, query string) {
			defer wg.Done()

			result, err := a.provider.Search(ctx, query, a.constraints)
			if err != nil {
				a.logger.Warn("search query failed", "provider", a.provider.Name(), "query", query, "error", err)
				return
			}
			results[i] = result
		}(i, query)
	}
	wg.Wait()

	// Merge in query order so URL dedup is deterministic regardless of
	// which call finished first.
	var merged []models.NewsItem
	var imageURLs []string
	for _, result := range results {
		merged = append(merged, result.Items...)
		imageURLs = append(imageURLs, result.ImageURLs...)
	}

	items := rank(dedupe(merged), a.maxItems)
	images := dedupeStrings(imageURLs, a.maxImages)

	a.logger.Info("aggregation complete", "queries", len(queries), "items", len(items), "candidate_images", len(images))
	return items, images
}

// dedupe keeps the first occurrence of each URL.
func dedupe(items []models.NewsItem) []models.NewsItem {
	seen := make(map[string]struct{}, len(items))
	out := make([]models.NewsItem, 0, len(items))
	for _, item := range items {
		if _, dup := seen[item.URL]; dup {
			continue
		}
		seen[item.URL] = struct{}{}
		out = append(out, item)
	}
	return out
}

// rank orders by relevance descending, ties broken by publication recency,
// then truncates to limit.
func rank(items []models.NewsItem, limit int) []models.NewsItem {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Relevance != items[j].Relevance {
			return items[i].Relevance > items[j].Relevance
		}
		return items[i].PublishedAt.After(items[j].PublishedAt)
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}

func dedupeStrings(urls []string, limit int) []string {
	seen := make(map[string]struct{}, len(urls))
	var out []string
	for _, url := range urls {
		if url == "" {
			continue
		}
		if _, dup := seen[url]; dup {
			continue
		}
		seen[url] = struct{}{}
		out = append(out, url)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
