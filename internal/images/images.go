package images

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/crowdwisdom/marketbrief/internal/models"
	"github.com/disintegration/imaging"
)

const (
	maxWidth  = 800
	maxHeight = 600
	// Some image hosts reject requests without a browser user agent.
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

// HTTPFetcher downloads image bytes with a bounded timeout.
type HTTPFetcher struct {
	client *http.Client
}

func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "image/webp,image/apng,image/*,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image fetch returned status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

// Processor turns candidate image URLs into fetched, resized ImageRefs on
// disk. A URL whose fetch or decode fails is dropped entirely.
type Processor struct {
	fetcher   models.ImageFetcher
	outputDir string
	limit     int
	logger    *slog.Logger
}

func NewProcessor(fetcher models.ImageFetcher, outputDir string, limit int, logger *slog.Logger) *Processor {
	return &Processor{
		fetcher:   fetcher,
		outputDir: outputDir,
		limit:     limit,
		logger:    logger,
	}
}

func (p *Processor) Process(ctx context.Context, urls []string, runID string) []models.ImageRef {
	var refs []models.ImageRef
	for i, rawURL := range urls {
		if p.limit > 0 && len(refs) >= p.limit {
			break
		}

		path, err := p.processOne(ctx, rawURL, runID, i+1)
		if err != nil {
			p.logger.Warn("dropping image", "url", rawURL, "error", err)
			continue
		}

		refs = append(refs, models.ImageRef{
			SourceURL: rawURL,
			LocalPath: path,
			Caption:   captionFor(rawURL),
		})
	}
	return refs
}

func (p *Processor) processOne(ctx context.Context, rawURL, runID string, n int) (string, error) {
	data, err := p.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return "", err
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("decode: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxWidth || bounds.Dy() > maxHeight {
		img = imaging.Fit(img, maxWidth, maxHeight, imaging.Lanczos)
	}

	if err := os.MkdirAll(p.outputDir, 0o755); err != nil {
		return "", err
	}

	path := filepath.Join(p.outputDir, fmt.Sprintf("financial_chart_%d_%s.png", n, runID))
	tmp, err := os.CreateTemp(p.outputDir, ".chart-*")
	if err != nil {
		return "", err
	}
	if err := imaging.Encode(tmp, img, imaging.PNG); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("encode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}

	return path, nil
}

func captionFor(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return ""
	}
	return "Source: " + u.Host
}
