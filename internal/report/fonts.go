package report

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

const (
	notoSansURL  = "https://github.com/googlefonts/noto-fonts/raw/main/hinted/ttf/NotoSans/NotoSans-Regular.ttf"
	notoSansFile = "NotoSans-Regular.ttf"

	unicodeFontFamily = "UnicodeSans"
	builtinFontFamily = "Helvetica"
)

// resolveFont picks the font for the report: the configured TTF if it
// exists, otherwise a Noto Sans download cached in fontsDir, otherwise the
// built-in Helvetica. An empty path means the built-in core font.
func resolveFont(configured, fontsDir string, timeout time.Duration, logger *slog.Logger) (family, path string) {
	if configured != "" {
		if _, err := os.Stat(configured); err == nil {
			return unicodeFontFamily, configured
		}
		logger.Warn("configured font not found, falling back", "path", configured)
	}

	if fontsDir == "" {
		// Download fallback disabled.
		return builtinFontFamily, ""
	}

	cached, err := ensureNotoSans(fontsDir, timeout)
	if err != nil {
		logger.Warn("unicode font unavailable, using built-in font", "error", err)
		return builtinFontFamily, ""
	}
	return unicodeFontFamily, cached
}

// ensureNotoSans downloads the fallback font once and reuses the cached
// copy on later runs.
func ensureNotoSans(fontsDir string, timeout time.Duration) (string, error) {
	path := filepath.Join(fontsDir, notoSansFile)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	if err := os.MkdirAll(fontsDir, 0o755); err != nil {
		return "", err
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(notoSansURL)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("font download returned status %d", resp.StatusCode)
	}

	tmp, err := os.CreateTemp(fontsDir, ".font-*")
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", err
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
