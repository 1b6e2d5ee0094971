package report_test

import (
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/crowdwisdom/marketbrief/internal/models"
	"github.com/crowdwisdom/marketbrief/internal/report"
	"github.com/stretchr/testify/require"
)

func discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// An empty fonts dir disables the font download, forcing the built-in font
// so tests stay offline.
func newTestRenderer(t *testing.T, outputDir string) *report.Renderer {
	t.Helper()
	return report.NewRenderer(outputDir, "", "", time.Second, 2, discard())
}

func asciiTranslations() []models.TranslatedDigest {
	return []models.TranslatedDigest{
		{Language: models.Arabic, Body: "placeholder body", Provenance: models.ProvenancePlaceholder},
		{Language: models.Hindi, Body: "placeholder body", Provenance: models.ProvenancePlaceholder},
	}
}

func TestRenderProducesReportWithoutImages(t *testing.T) {
	dir := t.TempDir()
	r := newTestRenderer(t, dir)

	digest := models.Digest{
		Body:        "* Markets rose today.\n* **Fed**: held rates.",
		GeneratedAt: time.Now(),
		Provenance:  models.ProvenancePrimaryModel,
	}

	path, err := r.Render(digest, asciiTranslations(), nil, "run1")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "financial_report_run1.pdf"), path)
	require.FileExists(t, path)
}

func TestRenderSkipsUnloadableImage(t *testing.T) {
	dir := t.TempDir()
	r := newTestRenderer(t, dir)

	digest := models.Digest{Body: "Single point.", GeneratedAt: time.Now()}
	images := []models.ImageRef{
		{SourceURL: "https://img/missing", LocalPath: filepath.Join(dir, "does-not-exist.png")},
	}

	path, err := r.Render(digest, nil, images, "run2")
	require.NoError(t, err)
	require.FileExists(t, path)
}

func TestRenderFailsWhenOutputUnwritable(t *testing.T) {
	r := report.NewRenderer("/proc/definitely/not/writable", "", "", time.Second, 2, discard())

	digest := models.Digest{Body: "point", GeneratedAt: time.Now()}
	_, err := r.Render(digest, nil, nil, "run3")
	require.Error(t, err)
}
