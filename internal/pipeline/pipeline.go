package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/crowdwisdom/marketbrief/internal/models"
)

// State names a stage of the run.
type State string

const (
	StateInit        State = "init"
	StateAggregating State = "aggregating"
	StateSummarizing State = "summarizing"
	StateTranslating State = "translating"
	StateRendering   State = "rendering"
	StatePublishing  State = "publishing"
	StateFinalizing  State = "finalizing"
	StateDone        State = "done"
	StateFailed      State = "failed"
)

// Stage capabilities, one per pipeline step. Every stage embeds its own
// fallback, so the orchestrator only fails on infrastructure errors.
type (
	Aggregator interface {
		Aggregate(ctx context.Context, queries []string) ([]models.NewsItem, []string)
	}
	Summarizer interface {
		Summarize(ctx context.Context, items []models.NewsItem) models.Digest
	}
	Translator interface {
		Translate(ctx context.Context, digest models.Digest) []models.TranslatedDigest
	}
	ImageProcessor interface {
		Process(ctx context.Context, urls []string, runID string) []models.ImageRef
	}
	Renderer interface {
		Render(digest models.Digest, translations []models.TranslatedDigest, images []models.ImageRef, runID string) (string, error)
	}
	Publisher interface {
		Publish(ctx context.Context, digest models.Digest, images []models.ImageRef) map[string]models.PublishStatus
	}
)

// Orchestrator sequences the stages and owns the run's artifact. It is the
// artifact's only writer; stage outputs are immutable values once merged.
type Orchestrator struct {
	queries    []string
	aggregator Aggregator
	summarizer Summarizer
	translator Translator
	images     ImageProcessor
	renderer   Renderer
	publisher  Publisher
	store      models.DurableStore
	newRunID   func() string
	logger     *slog.Logger

	mu    sync.Mutex
	state State
}

func NewOrchestrator(
	queries []string,
	aggregator Aggregator,
	summarizer Summarizer,
	translator Translator,
	images ImageProcessor,
	renderer Renderer,
	publisher Publisher,
	store models.DurableStore,
	newRunID func() string,
	logger *slog.Logger,
) *Orchestrator {
	return &Orchestrator{
		queries:    queries,
		aggregator: aggregator,
		summarizer: summarizer,
		translator: translator,
		images:     images,
		renderer:   renderer,
		publisher:  publisher,
		store:      store,
		newRunID:   newRunID,
		logger:     logger,
		state:      StateInit,
	}
}

// State reports the current stage.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

func (o *Orchestrator) setState(s State) {
	o.mu.Lock()
	o.state = s
	o.mu.Unlock()
	o.logger.Info("pipeline stage", "state", string(s))
}

// Run executes one complete pipeline pass. Provider failures inside the
// stages degrade the artifact; Run itself errors only when the artifact
// cannot be persisted.
func (o *Orchestrator) Run(ctx context.Context) (*models.RunArtifact, error) {
	runID := o.newRunID()
	artifact := &models.RunArtifact{
		RunID:     runID,
		Timestamp: time.Now().UTC(),
	}
	o.logger.Info("starting run", "run_id", runID)

	o.setState(StateAggregating)
	items, imageURLs := o.aggregator.Aggregate(ctx, o.queries)

	o.setState(StateSummarizing)
	artifact.Digest = o.summarizer.Summarize(ctx, items)
	artifact.Images = o.images.Process(ctx, imageURLs, runID)

	o.setState(StateTranslating)
	artifact.Translations = o.translator.Translate(ctx, artifact.Digest)

	// Rendering and publishing share inputs but not outputs; run them
	// concurrently and merge results here.
	var wg sync.WaitGroup
	var reportPath string
	var renderErr error
	var publishResults map[string]models.PublishStatus

	o.setState(StateRendering)
	o.setState(StatePublishing)

	wg.Add(2)
	go func() {
		defer wg.Done()
		reportPath, renderErr = o.renderer.Render(artifact.Digest, artifact.Translations, artifact.Images, runID)
	}()
	go func() {
		defer wg.Done()
		publishResults = o.publisher.Publish(ctx, artifact.Digest, artifact.Images)
	}()
	wg.Wait()

	if renderErr != nil {
		// Report loss is degradation, not failure; the JSON and text
		// artifacts still carry the run's content.
		o.logger.Error("report rendering failed", "error", renderErr)
	} else {
		artifact.ReportPath = reportPath
	}
	artifact.PublishResults = publishResults

	o.setState(StateFinalizing)
	artifact.Success = true
	if err := o.store.Save(artifact); err != nil {
		artifact.Success = false
		o.setState(StateFailed)
		return artifact, fmt.Errorf("persist artifact: %w", err)
	}

	o.setState(StateDone)
	return artifact, nil
}
