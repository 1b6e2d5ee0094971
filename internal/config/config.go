package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/crowdwisdom/marketbrief/internal/models"
)

// Config enumerates every recognized option. It is built once at startup and
// passed explicitly into the pipeline; no component reads the environment on
// its own.
type Config struct {
	TavilyAPIKey    string
	OpenAIAPIKey    string
	AnthropicAPIKey string

	TelegramToken     string
	TelegramChannelID string

	SearchQueries  []string
	AllowedDomains []string
	SearchDepth    string
	MaxResults     int
	MaxItems       int
	MaxImages      int
	ReportImages   int

	Languages []models.Language

	SearchTimeout time.Duration
	ImageTimeout  time.Duration
	FontTimeout   time.Duration

	OutputDir string
	FontsDir  string
	FontPath  string

	MessageLimit     int
	CaptionLimit     int
	SummaryWordLimit int

	DemoMode bool
	LogLevel string
}

func Load() *Config {
	return &Config{
		TavilyAPIKey:    getEnv("TAVILY_API_KEY", ""),
		OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
		AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),

		TelegramToken:     getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramChannelID: getEnv("TELEGRAM_CHANNEL_ID", ""),

		SearchQueries: splitAndTrim(getEnv("SEARCH_QUERIES",
			"US stock market today S&P 500 NASDAQ,"+
				"Federal Reserve interest rates today,"+
				"major corporate earnings today,"+
				"US economic indicators today")),
		AllowedDomains: splitAndTrim(getEnv("SEARCH_DOMAINS",
			"reuters.com,bloomberg.com,cnbc.com,marketwatch.com,yahoo.com,finviz.com")),
		SearchDepth:  getEnv("SEARCH_DEPTH", "advanced"),
		MaxResults:   getEnvAsInt("SEARCH_MAX_RESULTS", 10),
		MaxItems:     getEnvAsInt("MAX_ITEMS", 5),
		MaxImages:    getEnvAsInt("MAX_IMAGES", 10),
		ReportImages: getEnvAsInt("REPORT_IMAGES", 2),

		Languages: parseLanguages(getEnv("TARGET_LANGUAGES", "")),

		SearchTimeout: getEnvAsDuration("SEARCH_TIMEOUT", 30*time.Second),
		ImageTimeout:  getEnvAsDuration("IMAGE_TIMEOUT", 15*time.Second),
		FontTimeout:   getEnvAsDuration("FONT_TIMEOUT", 30*time.Second),

		OutputDir: getEnv("OUTPUT_DIR", "outputs"),
		FontsDir:  getEnv("FONTS_DIR", "fonts"),
		FontPath:  getEnv("FONT_PATH", ""),

		MessageLimit:     getEnvAsInt("TELEGRAM_MESSAGE_LIMIT", 4096),
		CaptionLimit:     getEnvAsInt("TELEGRAM_CAPTION_LIMIT", 1024),
		SummaryWordLimit: getEnvAsInt("SUMMARY_WORD_LIMIT", 500),

		DemoMode: getEnvAsBool("DEMO_MODE", false),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// Validate reports the configuration errors that prevent a run from starting.
// Missing optional capabilities degrade the run instead of blocking it.
func (c *Config) Validate() error {
	if c.TavilyAPIKey == "" && !c.DemoMode {
		return fmt.Errorf("TAVILY_API_KEY is required (or set DEMO_MODE=true)")
	}
	if len(c.SearchQueries) == 0 {
		return fmt.Errorf("SEARCH_QUERIES must contain at least one query")
	}
	if c.MaxItems <= 0 {
		return fmt.Errorf("MAX_ITEMS must be positive")
	}
	if c.MaxResults <= 0 {
		return fmt.Errorf("SEARCH_MAX_RESULTS must be positive")
	}
	if c.MessageLimit <= 0 || c.CaptionLimit <= 0 {
		return fmt.Errorf("telegram size limits must be positive")
	}
	if c.SummaryWordLimit <= 0 {
		return fmt.Errorf("SUMMARY_WORD_LIMIT must be positive")
	}
	return nil
}

func parseLanguages(raw string) []models.Language {
	codes := splitAndTrim(raw)
	if len(codes) == 0 {
		return models.DefaultLanguages()
	}

	var langs []models.Language
	seen := make(map[string]struct{})
	for _, code := range codes {
		lang, ok := models.LanguageByCode(code)
		if !ok {
			continue
		}
		if _, dup := seen[lang.Code]; dup {
			continue
		}
		seen[lang.Code] = struct{}{}
		langs = append(langs, lang)
	}
	if len(langs) == 0 {
		return models.DefaultLanguages()
	}
	return langs
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
