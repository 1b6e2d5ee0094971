package models

import (
	"context"
	"time"
)

// NewsItem is a single article returned by the search capability.
// URL is the uniqueness key across the whole run.
type NewsItem struct {
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	URL         string    `json:"url"`
	PublishedAt time.Time `json:"published_at,omitempty"`
	Relevance   float64   `json:"relevance"`
}

// ImageRef is a candidate image. LocalPath is set once the image has been
// fetched and resized; a ref whose fetch failed is dropped, never carried
// downstream with an empty path.
type ImageRef struct {
	SourceURL string `json:"source_url"`
	LocalPath string `json:"local_path,omitempty"`
	Caption   string `json:"caption,omitempty"`
}

type DigestProvenance string

const (
	ProvenancePrimaryModel     DigestProvenance = "primary_model"
	ProvenanceSecondaryModel   DigestProvenance = "secondary_model"
	ProvenanceTemplateFallback DigestProvenance = "template_fallback"
)

// Digest is the condensed English summary of the aggregated news.
type Digest struct {
	Body        string           `json:"body"`
	GeneratedAt time.Time        `json:"generated_at"`
	WordCount   int              `json:"word_count"`
	Provenance  DigestProvenance `json:"provenance"`
}

type TranslationProvenance string

const (
	ProvenanceTranslated  TranslationProvenance = "translated"
	ProvenancePlaceholder TranslationProvenance = "placeholder"
)

// TranslatedDigest is one per-language variant of the digest. Provenance
// records whether the body came from the translation provider or from the
// static placeholder.
type TranslatedDigest struct {
	Language   Language              `json:"language"`
	Body       string                `json:"body"`
	Provenance TranslationProvenance `json:"provenance"`
}

type PublishState string

const (
	PublishSent    PublishState = "sent"
	PublishSkipped PublishState = "skipped_not_configured"
	PublishFailed  PublishState = "failed"
)

type PublishStatus struct {
	State  PublishState `json:"state"`
	Reason string       `json:"reason,omitempty"`
}

// RunArtifact is the complete record of one pipeline execution. The
// orchestrator is its only writer; once persisted it is never modified.
type RunArtifact struct {
	RunID          string                   `json:"run_id"`
	Timestamp      time.Time                `json:"timestamp"`
	Digest         Digest                   `json:"digest"`
	Translations   []TranslatedDigest       `json:"translations"`
	Images         []ImageRef               `json:"images"`
	ReportPath     string                   `json:"report_path,omitempty"`
	PublishResults map[string]PublishStatus `json:"publish_results"`
	Success        bool                     `json:"success"`
}

// SearchConstraints bound a single search call.
type SearchConstraints struct {
	Domains       []string
	Depth         string
	MaxResults    int
	IncludeImages bool
}

// SearchResult carries articles plus any candidate image URLs the search
// capability surfaced alongside them.
type SearchResult struct {
	Items     []NewsItem
	ImageURLs []string
}

type SearchProvider interface {
	Search(ctx context.Context, query string, c SearchConstraints) (SearchResult, error)
	Name() string
}

// SummarizationProvider condenses text. Providers are tried in priority
// order; an error or empty response means fall through to the next one.
type SummarizationProvider interface {
	Summarize(ctx context.Context, text string) (string, error)
	Name() string
}

type TranslationProvider interface {
	Translate(ctx context.Context, text string, target Language) (string, error)
	Name() string
}

type ImageFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// MessagingChannel delivers a condensed message, optionally with a photo.
type MessagingChannel interface {
	Name() string
	Configured() bool
	Send(ctx context.Context, text string, imagePath string) error
}

// DurableStore persists the terminal RunArtifact. Writes are append-only:
// a run never overwrites another run's files.
type DurableStore interface {
	Save(artifact *RunArtifact) error
}
