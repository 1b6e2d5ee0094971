// Package demo provides a canned search provider so the full pipeline can
// run end to end without any API credentials.
package demo

import (
	"context"
	"time"

	"github.com/crowdwisdom/marketbrief/internal/models"
)

type SearchProvider struct{}

func NewSearchProvider() *SearchProvider {
	return &SearchProvider{}
}

func (p *SearchProvider) Search(ctx context.Context, query string, c models.SearchConstraints) (models.SearchResult, error) {
	return models.SearchResult{Items: sampleItems(), ImageURLs: nil}, nil
}

func (p *SearchProvider) Name() string {
	return "demo"
}

func sampleItems() []models.NewsItem {
	published := time.Now().Add(-1 * time.Hour)
	return []models.NewsItem{
		{
			Title:       "S&P 500 Closes Higher on Strong Earnings Reports",
			Body:        "The S&P 500 index gained 0.8% today, reaching 4,785 points, driven by strong quarterly earnings from major technology companies. Apple and Microsoft both exceeded analyst expectations.",
			URL:         "https://example.com/sp500-gains",
			PublishedAt: published,
			Relevance:   0.95,
		},
		{
			Title:       "Federal Reserve Signals Cautious Approach to Rate Cuts",
			Body:        "Federal Reserve Chair Jerome Powell indicated that the central bank will take a measured approach to interest rate adjustments, citing ongoing inflation concerns and labor market strength.",
			URL:         "https://example.com/fed-rates",
			PublishedAt: published,
			Relevance:   0.92,
		},
		{
			Title:       "Tesla Announces Expansion Plans, Stock Surges",
			Body:        "Tesla shares jumped 2.5% in after-hours trading following the company's announcement of new manufacturing facilities in Texas and Berlin.",
			URL:         "https://example.com/tesla-expansion",
			PublishedAt: published,
			Relevance:   0.89,
		},
		{
			Title:       "Banking Sector Shows Mixed Results in Earnings Season",
			Body:        "Major banks reported mixed quarterly results, with JPMorgan Chase beating expectations while Bank of America faced challenges from higher credit loss provisions.",
			URL:         "https://example.com/banking-earnings",
			PublishedAt: published,
			Relevance:   0.87,
		},
		{
			Title:       "Oil Prices Rise on Supply Concerns",
			Body:        "Crude oil prices gained 1.2% as geopolitical tensions raised supply concerns. West Texas Intermediate crude closed at $73.45 per barrel.",
			URL:         "https://example.com/oil-prices",
			PublishedAt: published,
			Relevance:   0.84,
		},
	}
}
