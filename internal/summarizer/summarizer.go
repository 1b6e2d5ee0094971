package summarizer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/crowdwisdom/marketbrief/internal/models"
)

const (
	// Bounded input for provider calls: top items only, bodies truncated.
	promptItems     = 3
	promptBodyRunes = 200

	noNewsBody = "No financial news available at this time."

	outlookBoilerplate = "Trading Outlook:\nInvestors should monitor upcoming earnings reports and " +
		"economic data releases for market direction cues."
)

// Summarizer reduces aggregated items to a single digest. Providers are
// tried in priority order; the deterministic template is the terminal
// fallback, so Summarize never fails.
type Summarizer struct {
	providers []models.SummarizationProvider
	wordLimit int
	logger    *slog.Logger
}

func New(providers []models.SummarizationProvider, wordLimit int, logger *slog.Logger) *Summarizer {
	return &Summarizer{
		providers: providers,
		wordLimit: wordLimit,
		logger:    logger,
	}
}

func (s *Summarizer) Summarize(ctx context.Context, items []models.NewsItem) models.Digest {
	if len(items) == 0 {
		return s.digest(noNewsBody, models.ProvenanceTemplateFallback)
	}

	input := buildInput(items)

	for i, provider := range s.providers {
		body, err := provider.Summarize(ctx, input)
		if err != nil {
			s.logger.Warn("summarization provider failed", "provider", provider.Name(), "error", err)
			continue
		}
		if strings.TrimSpace(body) == "" {
			s.logger.Warn("summarization provider returned empty response", "provider", provider.Name())
			continue
		}

		provenance := models.ProvenancePrimaryModel
		if i > 0 {
			provenance = models.ProvenanceSecondaryModel
		}
		return s.digest(body, provenance)
	}

	s.logger.Info("all summarization providers exhausted, using template")
	return s.digest(templateSummary(items), models.ProvenanceTemplateFallback)
}

func (s *Summarizer) digest(body string, provenance models.DigestProvenance) models.Digest {
	body = capWords(strings.TrimSpace(body), s.wordLimit)
	return models.Digest{
		Body:        body,
		GeneratedAt: time.Now().UTC(),
		WordCount:   len(strings.Fields(body)),
		Provenance:  provenance,
	}
}

func buildInput(items []models.NewsItem) string {
	var sb strings.Builder
	for _, item := range items[:min(len(items), promptItems)] {
		sb.WriteString(item.Title)
		sb.WriteString(": ")
		sb.WriteString(truncateRunes(item.Body, promptBodyRunes))
		sb.WriteString("\n")
	}
	return sb.String()
}

// templateSummary is the deterministic fallback built from the raw items.
func templateSummary(items []models.NewsItem) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Daily Financial Market Summary - %s\n\n", time.Now().Format("2006-01-02"))
	sb.WriteString("Key Market Developments:\n")

	for i, item := range items[:min(len(items), promptItems)] {
		fmt.Fprintf(&sb, "%d. %s\n   %s\n\n", i+1, item.Title, truncateRunes(item.Body, 150))
	}

	sb.WriteString("Market Analysis:\n")
	sb.WriteString("Based on the latest financial news, the US markets are showing mixed signals. " +
		"Key developments include corporate earnings announcements, Federal Reserve policy updates, " +
		"and economic indicator releases.\n\n")
	sb.WriteString(outlookBoilerplate)
	return sb.String()
}

func truncateRunes(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}

func capWords(body string, limit int) string {
	if limit <= 0 {
		return body
	}
	words := strings.Fields(body)
	if len(words) <= limit {
		return body
	}
	return strings.Join(words[:limit], " ")
}
