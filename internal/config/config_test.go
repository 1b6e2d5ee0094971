package config_test

import (
	"testing"
	"time"

	"github.com/crowdwisdom/marketbrief/internal/config"
	"github.com/crowdwisdom/marketbrief/internal/models"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TAVILY_API_KEY", "")
	t.Setenv("SEARCH_QUERIES", "")
	t.Setenv("TARGET_LANGUAGES", "")

	cfg := config.Load()

	require.Len(t, cfg.SearchQueries, 4)
	require.Equal(t, "advanced", cfg.SearchDepth)
	require.Equal(t, 10, cfg.MaxResults)
	require.Equal(t, 5, cfg.MaxItems)
	require.Equal(t, 2, cfg.ReportImages)
	require.Equal(t, models.DefaultLanguages(), cfg.Languages)
	require.Equal(t, 15*time.Second, cfg.ImageTimeout)
	require.Equal(t, 4096, cfg.MessageLimit)
	require.Equal(t, 1024, cfg.CaptionLimit)
	require.Equal(t, "outputs", cfg.OutputDir)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SEARCH_QUERIES", "crypto news, fed policy ")
	t.Setenv("TARGET_LANGUAGES", "hebrew,arabic")
	t.Setenv("SEARCH_MAX_RESULTS", "3")
	t.Setenv("IMAGE_TIMEOUT", "5s")
	t.Setenv("DEMO_MODE", "true")

	cfg := config.Load()

	require.Equal(t, []string{"crypto news", "fed policy"}, cfg.SearchQueries)
	require.Equal(t, []models.Language{models.Hebrew, models.Arabic}, cfg.Languages)
	require.Equal(t, 3, cfg.MaxResults)
	require.Equal(t, 5*time.Second, cfg.ImageTimeout)
	require.True(t, cfg.DemoMode)
}

func TestLoadIgnoresUnknownLanguages(t *testing.T) {
	t.Setenv("TARGET_LANGUAGES", "klingon,hindi,hindi")

	cfg := config.Load()

	require.Equal(t, []models.Language{models.Hindi}, cfg.Languages)
}

func TestValidateRequiresSearchKey(t *testing.T) {
	t.Setenv("TAVILY_API_KEY", "")
	t.Setenv("DEMO_MODE", "")

	cfg := config.Load()
	err := cfg.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "TAVILY_API_KEY")
}

func TestValidateDemoModeNeedsNoKey(t *testing.T) {
	t.Setenv("TAVILY_API_KEY", "")
	t.Setenv("DEMO_MODE", "true")

	cfg := config.Load()
	require.NoError(t, cfg.Validate())
}
