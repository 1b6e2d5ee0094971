package summarizer_test

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/crowdwisdom/marketbrief/internal/models"
	"github.com/crowdwisdom/marketbrief/internal/summarizer"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	name string
	body string
	err  error
}

func (p *stubProvider) Summarize(ctx context.Context, text string) (string, error) {
	return p.body, p.err
}

func (p *stubProvider) Name() string { return p.name }

func discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func sampleItems() []models.NewsItem {
	return []models.NewsItem{
		{Title: "S&P 500 Closes Higher", Body: "The index gained 0.8% today.", URL: "https://example.com/a"},
		{Title: "Fed Signals Caution", Body: "Powell indicated a measured approach.", URL: "https://example.com/b"},
	}
}

func TestSummarizePrimaryProviderWins(t *testing.T) {
	s := summarizer.New([]models.SummarizationProvider{
		&stubProvider{name: "primary", body: "Markets closed mixed today."},
		&stubProvider{name: "secondary", body: "should not be used"},
	}, 500, discard())

	digest := s.Summarize(context.Background(), sampleItems())

	require.Equal(t, "Markets closed mixed today.", digest.Body)
	require.Equal(t, models.ProvenancePrimaryModel, digest.Provenance)
	require.Equal(t, 4, digest.WordCount)
}

func TestSummarizeFallsBackToSecondary(t *testing.T) {
	s := summarizer.New([]models.SummarizationProvider{
		&stubProvider{name: "primary", err: errors.New("quota exceeded")},
		&stubProvider{name: "secondary", body: "Secondary summary."},
	}, 500, discard())

	digest := s.Summarize(context.Background(), sampleItems())

	require.Equal(t, "Secondary summary.", digest.Body)
	require.Equal(t, models.ProvenanceSecondaryModel, digest.Provenance)
}

func TestSummarizeEmptyResponseTreatedAsFailure(t *testing.T) {
	s := summarizer.New([]models.SummarizationProvider{
		&stubProvider{name: "primary", body: "   \n"},
		&stubProvider{name: "secondary", body: "Secondary summary."},
	}, 500, discard())

	digest := s.Summarize(context.Background(), sampleItems())

	require.Equal(t, models.ProvenanceSecondaryModel, digest.Provenance)
}

func TestSummarizeAllProvidersFailUsesTemplate(t *testing.T) {
	s := summarizer.New([]models.SummarizationProvider{
		&stubProvider{name: "primary", err: errors.New("down")},
		&stubProvider{name: "secondary", err: errors.New("down")},
	}, 500, discard())

	digest := s.Summarize(context.Background(), sampleItems())

	require.Equal(t, models.ProvenanceTemplateFallback, digest.Provenance)
	require.Contains(t, digest.Body, "S&P 500 Closes Higher")
	require.Contains(t, digest.Body, "Trading Outlook")
}

func TestSummarizeNoProvidersUsesTemplate(t *testing.T) {
	s := summarizer.New(nil, 500, discard())

	digest := s.Summarize(context.Background(), sampleItems())

	require.Equal(t, models.ProvenanceTemplateFallback, digest.Provenance)
}

func TestSummarizeEmptyItems(t *testing.T) {
	s := summarizer.New([]models.SummarizationProvider{
		&stubProvider{name: "primary", body: "should not be called"},
	}, 500, discard())

	digest := s.Summarize(context.Background(), nil)

	require.Equal(t, models.ProvenanceTemplateFallback, digest.Provenance)
	require.Contains(t, digest.Body, "No financial news available")
}

func TestSummarizeCapsWordCount(t *testing.T) {
	long := strings.Repeat("word ", 800)
	s := summarizer.New([]models.SummarizationProvider{
		&stubProvider{name: "primary", body: long},
	}, 500, discard())

	digest := s.Summarize(context.Background(), sampleItems())

	require.Equal(t, 500, digest.WordCount)
	require.LessOrEqual(t, digest.WordCount, 500)
}
