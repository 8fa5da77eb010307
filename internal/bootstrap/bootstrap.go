package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/overruled/enforcement-search/internal/config"
	"github.com/overruled/enforcement-search/internal/core/domain"
	"github.com/overruled/enforcement-search/internal/core/usecase"
	"github.com/overruled/enforcement-search/internal/infrastructure/llm/azureopenai"
	"github.com/overruled/enforcement-search/internal/infrastructure/resilience"
	"github.com/overruled/enforcement-search/internal/infrastructure/search/cognitive"
	"github.com/overruled/enforcement-search/internal/observability/metrics"
	"github.com/overruled/enforcement-search/internal/taxonomy"
)

// App owns the wired query pipeline and the process-wide metrics registry.
// The pipeline itself is built lazily on first use so the API process can
// start (and serve /health) before the Azure backends are reachable, and
// /admin/cleanup can drop it for a clean rebuild on the next request.
type App struct {
	Config  config.Config
	Metrics *metrics.HTTPServerMetrics

	service string

	mu       sync.Mutex
	pipeline *pipeline
}

type pipeline struct {
	classifier   *azureopenai.Classifier
	orchestrator *usecase.Orchestrator
}

func New(cfg config.Config, service string) *App {
	return &App{
		Config:  cfg,
		Metrics: metrics.NewHTTPServerMetrics(service),
		service: service,
	}
}

func (a *App) getPipeline() (*pipeline, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.pipeline != nil {
		return a.pipeline, nil
	}

	p, err := a.buildPipeline()
	if err != nil {
		return nil, err
	}
	a.pipeline = p
	slog.Info("pipeline_initialized", "service", a.service)
	return p, nil
}

func (a *App) buildPipeline() (*pipeline, error) {
	llmClient, err := azureopenai.NewClient(azureopenai.Config{
		Endpoint:            a.Config.AzureOpenAIEndpoint,
		APIKey:              a.Config.AzureOpenAIAPIKey,
		APIVersion:          a.Config.AzureOpenAIAPIVersion,
		ChatDeployment:      a.Config.ChatDeployment,
		ReasoningDeployment: a.Config.ReasoningDeployment,
		EmbeddingDeployment: a.Config.EmbeddingDeployment,
	}, resilience.NewExecutor(resilience.LLMPolicy()))
	if err != nil {
		return nil, fmt.Errorf("init llm client: %w", err)
	}
	llmClient.OnUsage(func(operation, model string, promptTokens, completionTokens int) {
		a.Metrics.RecordTokenUsage(a.service, operation, model, promptTokens, completionTokens)
	})

	index, err := cognitive.New(cognitive.Config{
		Endpoint:   a.Config.SearchEndpoint,
		Index:      a.Config.SearchIndex,
		APIKey:     a.Config.SearchAPIKey,
		APIVersion: a.Config.SearchAPIVersion,
	}, resilience.NewExecutor(resilience.DefaultPolicy()))
	if err != nil {
		return nil, fmt.Errorf("init search index: %w", err)
	}

	mapper, err := taxonomy.NewMapper()
	if err != nil {
		return nil, fmt.Errorf("init taxonomy mapper: %w", err)
	}

	classifier := azureopenai.NewClassifier(llmClient)
	classifier.OnFallback(func(reason string) {
		a.Metrics.RecordClassifierFallback(a.service, reason)
	})

	retriever := usecase.NewRetriever(
		azureopenai.NewEmbedder(llmClient),
		index,
		a.Config.RetrievalResultCap,
	)

	orchestrator := usecase.NewOrchestrator(
		classifier,
		azureopenai.NewExtractor(llmClient, mapper),
		retriever,
		azureopenai.NewSynthesizer(llmClient),
		a.Metrics.Observer(a.service),
	)

	return &pipeline{
		classifier:   classifier,
		orchestrator: orchestrator,
	}, nil
}

// Route runs the full routing pipeline. A pipeline build failure is a
// terminal error envelope, not a panic or a dropped request.
func (a *App) Route(ctx context.Context, question string) domain.Envelope {
	p, err := a.getPipeline()
	if err != nil {
		slog.Error("pipeline_init_failed", "error", err)
		return domain.ErrorResult{Err: fmt.Errorf("initialize pipeline: %w", err)}.Envelope(question)
	}
	return p.orchestrator.Route(ctx, question)
}

// Classify exposes the routing decision alone, without dispatching it.
func (a *App) Classify(ctx context.Context, question string) domain.Classification {
	p, err := a.getPipeline()
	if err != nil {
		slog.Error("pipeline_init_failed", "error", err)
		return domain.FallbackClassification("Pipeline unavailable, defaulting to semantic search")
	}
	return p.classifier.Classify(ctx, question)
}

// ResetPipeline drops the built pipeline so the next request constructs a
// fresh one. Pipeline components hold no external connections beyond pooled
// HTTP clients, so dropping the reference is the whole teardown.
func (a *App) ResetPipeline(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.pipeline != nil {
		a.pipeline = nil
		slog.Info("pipeline_reset", "service", a.service)
	}
	return nil
}

// Close tears the app down for process shutdown.
func (a *App) Close() {
	_ = a.ResetPipeline(context.Background())
}
