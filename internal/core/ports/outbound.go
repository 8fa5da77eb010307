package ports

import (
	"context"

	"github.com/overruled/enforcement-search/internal/core/domain"
)

// QueryClassifier assigns a handling route to a raw question. Implementations
// must never fail: a degraded classifier returns the semantic-search fallback
// classification instead of an error.
type QueryClassifier interface {
	Classify(ctx context.Context, question string) domain.Classification
}

// FilterExtractor converts a question into a structured filter payload.
// Implementations must always return a usable FilterSet; when the decision
// service output cannot be recovered the keyword-only fallback is returned.
type FilterExtractor interface {
	Extract(ctx context.Context, question string) domain.FilterSet
}

// Embedder builds the dense query vector for hybrid retrieval.
type Embedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// DocumentIndex executes one hybrid lexical + multi-vector query against the
// document backend and returns hits in backend fused-score order.
type DocumentIndex interface {
	HybridSearch(ctx context.Context, queryText string, queryVector []float32) ([]domain.DocumentRecord, error)
}

// AnswerSynthesizer produces a grounded answer from retrieved documents.
// Failures propagate: there is no safe default answer.
type AnswerSynthesizer interface {
	Synthesize(ctx context.Context, question string, documents []domain.RetrievedDocument) (string, error)
}

// ActionStore persists enforcement actions for the bulk import. Reset
// truncates an existing table or creates it, so every import is a full
// reload.
type ActionStore interface {
	Reset(ctx context.Context) error
	InsertBatch(ctx context.Context, actions []domain.EnforcementAction) error
}
