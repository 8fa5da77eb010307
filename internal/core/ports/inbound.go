package ports

import (
	"context"

	"github.com/overruled/enforcement-search/internal/core/domain"
)

// QuestionRouter is the inbound contract for the full routing pipeline.
type QuestionRouter interface {
	Route(ctx context.Context, question string) domain.Envelope
}

// DocumentRetriever is the inbound contract for hybrid retrieval on its own.
type DocumentRetriever interface {
	Search(ctx context.Context, question string) ([]domain.RetrievedDocument, error)
}
