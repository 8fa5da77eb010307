package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/overruled/enforcement-search/internal/core/domain"
	"github.com/overruled/enforcement-search/internal/core/ports"
)

// PipelineObserver receives routing outcomes for observability. Implementations
// must be cheap and never fail the request.
type PipelineObserver interface {
	ObserveRoute(queryType string, documents int, duration time.Duration)
}

type noopObserver struct{}

func (noopObserver) ObserveRoute(string, int, time.Duration) {}

// Orchestrator sequences one classification and exactly one handling path per
// question, normalizing every outcome into the response envelope. It holds no
// per-request state; the shared component handles are safe for concurrent use.
type Orchestrator struct {
	classifier  ports.QueryClassifier
	extractor   ports.FilterExtractor
	retriever   ports.DocumentRetriever
	synthesizer ports.AnswerSynthesizer
	observer    PipelineObserver
}

func NewOrchestrator(
	classifier ports.QueryClassifier,
	extractor ports.FilterExtractor,
	retriever ports.DocumentRetriever,
	synthesizer ports.AnswerSynthesizer,
	observer PipelineObserver,
) *Orchestrator {
	if observer == nil {
		observer = noopObserver{}
	}
	return &Orchestrator{
		classifier:  classifier,
		extractor:   extractor,
		retriever:   retriever,
		synthesizer: synthesizer,
		observer:    observer,
	}
}

// Route classifies the question and dispatches it to one terminal state.
// Faults never escape: any failure inside a handling path terminates in the
// error envelope.
func (o *Orchestrator) Route(ctx context.Context, question string) domain.Envelope {
	start := time.Now()
	question = strings.TrimSpace(question)
	if question == "" {
		return domain.ErrorResult{Err: domain.WrapError(domain.ErrInvalidInput, "route", fmt.Errorf("empty question"))}.Envelope(question)
	}

	classification := o.classifier.Classify(ctx, question)
	result := o.dispatch(ctx, question, classification)
	envelope := result.Envelope(question)

	o.observer.ObserveRoute(envelope.QueryType, len(envelope.Documents), time.Since(start))
	slog.Info("question_routed",
		"query_type", envelope.QueryType,
		"confidence", classification.Confidence,
		"documents", len(envelope.Documents),
		"duration_ms", float64(time.Since(start).Microseconds())/1000.0,
	)
	return envelope
}

func (o *Orchestrator) dispatch(ctx context.Context, question string, cls domain.Classification) domain.RouteResult {
	switch cls.Route {
	case domain.RouteNeedsClarification:
		if strings.TrimSpace(cls.ClarificationQuestion) == "" {
			cls.ClarificationQuestion = "Could you provide more detail about what you are looking for, such as a time period, sanctions program, or document type?"
		}
		return domain.ClarificationResult{Classification: cls}

	case domain.RouteStructuredSearch:
		filters := o.extractor.Extract(ctx, question)
		filters.Normalize()
		return domain.FiltersResult{Classification: cls, Filters: filters}

	case domain.RouteStatisticalQuery:
		return domain.PlaceholderResult{Classification: cls}

	case domain.RouteSemanticSearch:
		return o.answer(ctx, question, cls, string(domain.RouteSemanticSearch))

	default:
		// Unknown route values never drop the request.
		slog.Warn("unknown_route_fallback", "route", string(cls.Route))
		return o.answer(ctx, question, cls, "semantic_search_fallback")
	}
}

func (o *Orchestrator) answer(ctx context.Context, question string, cls domain.Classification, queryType string) domain.RouteResult {
	documents, err := o.retriever.Search(ctx, question)
	if err != nil {
		return domain.ErrorResult{Err: err}
	}

	text, err := o.synthesizer.Synthesize(ctx, question, documents)
	if err != nil {
		return domain.ErrorResult{Err: domain.WrapError(domain.ErrSynthesis, "synthesize answer", err)}
	}

	return domain.AnsweredResult{
		Classification: cls,
		QueryType:      queryType,
		Answer: domain.Answer{
			Text:      text,
			Documents: documents,
		},
	}
}
