package usecase

import (
	"fmt"

	"context"

	"github.com/overruled/enforcement-search/internal/core/domain"
	"github.com/overruled/enforcement-search/internal/core/ports"
)

// DefaultResultCap bounds how many documents one retrieval may return.
const DefaultResultCap = 15

// Retriever runs the two-step hybrid retrieval: embed the question, then one
// combined lexical + multi-vector query against the document backend. Hits
// keep the backend's fused-score order; no re-ranking happens here.
type Retriever struct {
	embedder  ports.Embedder
	index     ports.DocumentIndex
	resultCap int
}

func NewRetriever(embedder ports.Embedder, index ports.DocumentIndex, resultCap int) *Retriever {
	if resultCap <= 0 {
		resultCap = DefaultResultCap
	}
	return &Retriever{
		embedder:  embedder,
		index:     index,
		resultCap: resultCap,
	}
}

func (r *Retriever) Search(ctx context.Context, question string) ([]domain.RetrievedDocument, error) {
	queryVector, err := r.embedder.EmbedQuery(ctx, question)
	if err != nil {
		return nil, domain.WrapError(domain.ErrRetrieval, "embed query", err)
	}

	records, err := r.index.HybridSearch(ctx, question, queryVector)
	if err != nil {
		return nil, domain.WrapError(domain.ErrRetrieval, "hybrid search", err)
	}
	if len(records) > r.resultCap {
		records = records[:r.resultCap]
	}

	docs := make([]domain.RetrievedDocument, 0, len(records))
	for _, rec := range records {
		if rec.ID == "" {
			return nil, domain.WrapError(domain.ErrRetrieval, "hybrid search", fmt.Errorf("backend record without id"))
		}
		docs = append(docs, toRetrievedDocument(rec))
	}
	return docs, nil
}
