package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/crowdwisdom/marketbrief/internal/aggregator"
	"github.com/crowdwisdom/marketbrief/internal/ai"
	"github.com/crowdwisdom/marketbrief/internal/config"
	"github.com/crowdwisdom/marketbrief/internal/demo"
	"github.com/crowdwisdom/marketbrief/internal/images"
	"github.com/crowdwisdom/marketbrief/internal/logger"
	"github.com/crowdwisdom/marketbrief/internal/models"
	"github.com/crowdwisdom/marketbrief/internal/pipeline"
	"github.com/crowdwisdom/marketbrief/internal/report"
	"github.com/crowdwisdom/marketbrief/internal/search"
	"github.com/crowdwisdom/marketbrief/internal/store"
	"github.com/crowdwisdom/marketbrief/internal/summarizer"
	"github.com/crowdwisdom/marketbrief/internal/telegram"
	"github.com/crowdwisdom/marketbrief/internal/translator"
)

func main() {
	demoFlag := flag.Bool("demo", false, "run with canned sample data, no API keys required")
	flag.Parse()

	_ = godotenv.Load()

	cfg := config.Load()
	if *demoFlag {
		cfg.DemoMode = true
	}

	log := logger.New("marketbrief", cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var searchProvider models.SearchProvider
	if cfg.DemoMode {
		log.Info("demo mode: using canned search results")
		searchProvider = demo.NewSearchProvider()
	} else {
		searchProvider = search.NewTavilyClient(cfg.TavilyAPIKey, cfg.SearchTimeout)
	}

	var summaryProviders []models.SummarizationProvider
	var translationProvider models.TranslationProvider
	if cfg.OpenAIAPIKey != "" {
		openAI := ai.NewOpenAIClient(cfg.OpenAIAPIKey)
		summaryProviders = append(summaryProviders, openAI)
		translationProvider = openAI
	} else {
		log.Warn("OpenAI not configured, model summaries and translations degraded")
	}
	if cfg.AnthropicAPIKey != "" {
		summaryProviders = append(summaryProviders, ai.NewAnthropicClient(cfg.AnthropicAPIKey))
	}

	constraints := models.SearchConstraints{
		Domains:       cfg.AllowedDomains,
		Depth:         cfg.SearchDepth,
		MaxResults:    cfg.MaxResults,
		IncludeImages: true,
	}

	orchestrator := pipeline.NewOrchestrator(
		cfg.SearchQueries,
		aggregator.New(searchProvider, constraints, cfg.MaxItems, cfg.MaxImages, log),
		summarizer.New(summaryProviders, cfg.SummaryWordLimit, log),
		translator.New(translationProvider, cfg.Languages, log),
		images.NewProcessor(images.NewHTTPFetcher(cfg.ImageTimeout), cfg.OutputDir, cfg.ReportImages, log),
		report.NewRenderer(cfg.OutputDir, cfg.FontsDir, cfg.FontPath, cfg.FontTimeout, cfg.ReportImages, log),
		telegram.NewPublisher(
			[]models.MessagingChannel{telegram.NewChannel(cfg.TelegramToken, cfg.TelegramChannelID, log)},
			cfg.MessageLimit, cfg.CaptionLimit, log),
		store.NewFileStore(cfg.OutputDir, log),
		store.NewRunID,
		log,
	)

	artifact, err := orchestrator.Run(ctx)
	if err != nil {
		log.Error("run failed", "error", err)
		os.Exit(1)
	}

	log.Info("run complete",
		"run_id", artifact.RunID,
		"provenance", string(artifact.Digest.Provenance),
		"translations", len(artifact.Translations),
		"images", len(artifact.Images),
		"report", artifact.ReportPath,
	)
}
