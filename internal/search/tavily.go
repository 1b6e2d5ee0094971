package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/crowdwisdom/marketbrief/internal/models"
)

const tavilyEndpoint = "https://api.tavily.com/search"

// TavilyClient implements models.SearchProvider against the Tavily search
// API.
type TavilyClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

type tavilyRequest struct {
	APIKey         string   `json:"api_key"`
	Query          string   `json:"query"`
	SearchDepth    string   `json:"search_depth,omitempty"`
	MaxResults     int      `json:"max_results,omitempty"`
	IncludeDomains []string `json:"include_domains,omitempty"`
	IncludeImages  bool     `json:"include_images,omitempty"`
}

type tavilyResponse struct {
	Results []struct {
		Title         string  `json:"title"`
		Content       string  `json:"content"`
		URL           string  `json:"url"`
		PublishedDate string  `json:"published_date"`
		Score         float64 `json:"score"`
	} `json:"results"`
	Images []string `json:"images"`
}

func NewTavilyClient(apiKey string, timeout time.Duration) *TavilyClient {
	return &TavilyClient{
		apiKey:  apiKey,
		baseURL: tavilyEndpoint,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *TavilyClient) Search(ctx context.Context, query string, constraints models.SearchConstraints) (models.SearchResult, error) {
	body, err := json.Marshal(tavilyRequest{
		APIKey:         c.apiKey,
		Query:          query,
		SearchDepth:    constraints.Depth,
		MaxResults:     constraints.MaxResults,
		IncludeDomains: constraints.Domains,
		IncludeImages:  constraints.IncludeImages,
	})
	if err != nil {
		return models.SearchResult{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return models.SearchResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return models.SearchResult{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.SearchResult{}, fmt.Errorf("tavily returned status %d", resp.StatusCode)
	}

	var apiResp tavilyResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return models.SearchResult{}, err
	}

	result := models.SearchResult{
		Items:     make([]models.NewsItem, 0, len(apiResp.Results)),
		ImageURLs: apiResp.Images,
	}
	for _, r := range apiResp.Results {
		result.Items = append(result.Items, models.NewsItem{
			Title:       r.Title,
			Body:        r.Content,
			URL:         r.URL,
			PublishedAt: parsePublishedDate(r.PublishedDate),
			Relevance:   clampRelevance(r.Score),
		})
	}

	return result, nil
}

func (c *TavilyClient) Name() string {
	return "tavily"
}

// parsePublishedDate tolerates the handful of timestamp formats Tavily
// emits; an unparseable date is simply left zero.
func parsePublishedDate(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}

func clampRelevance(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
