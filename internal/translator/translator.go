package translator

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/crowdwisdom/marketbrief/internal/models"
)

// Translator produces one TranslatedDigest per configured language. A
// provider failure substitutes the language's static placeholder; the output
// order always matches the configured language order, not completion order.
type Translator struct {
	provider  models.TranslationProvider
	languages []models.Language
	logger    *slog.Logger
}

// New accepts a nil provider; every language then gets its placeholder.
func New(provider models.TranslationProvider, languages []models.Language, logger *slog.Logger) *Translator {
	return &Translator{
		provider:  provider,
		languages: languages,
		logger:    logger,
	}
}

func (t *Translator) Translate(ctx context.Context, digest models.Digest) []models.TranslatedDigest {
	results := make([]models.TranslatedDigest, len(t.languages))

	var wg sync.WaitGroup
	for i, lang := range t.languages {
		wg.Add(1)
		go func(i int, lang models.Language) {
			defer wg.Done()
			results[i] = t.translateOne(ctx, digest, lang)
		}(i, lang)
	}
	wg.Wait()

	return results
}

func (t *Translator) translateOne(ctx context.Context, digest models.Digest, lang models.Language) models.TranslatedDigest {
	if t.provider == nil {
		return placeholderDigest(lang)
	}

	body, err := t.provider.Translate(ctx, digest.Body, lang)
	if err != nil {
		t.logger.Warn("translation failed, using placeholder", "provider", t.provider.Name(), "language", lang.Code, "error", err)
		return placeholderDigest(lang)
	}
	if strings.TrimSpace(body) == "" {
		t.logger.Warn("translation empty, using placeholder", "provider", t.provider.Name(), "language", lang.Code)
		return placeholderDigest(lang)
	}

	return models.TranslatedDigest{
		Language:   lang,
		Body:       body,
		Provenance: models.ProvenanceTranslated,
	}
}

func placeholderDigest(lang models.Language) models.TranslatedDigest {
	return models.TranslatedDigest{
		Language:   lang,
		Body:       Placeholder(lang),
		Provenance: models.ProvenancePlaceholder,
	}
}
