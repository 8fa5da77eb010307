package azureopenai

import (
	"context"
	"log/slog"
	"time"

	"github.com/overruled/enforcement-search/internal/core/domain"
	"github.com/overruled/enforcement-search/internal/taxonomy"
)

const extractionTimeout = 30 * time.Second

// Extractor converts a question into a structured filter payload via the
// chat deployment, then remaps tag display values to internal codes. It
// never returns an error: any failure degrades to the keyword-only filter
// set carrying the raw question.
type Extractor struct {
	client *Client
	mapper *taxonomy.Mapper
	prompt string
}

func NewExtractor(client *Client, mapper *taxonomy.Mapper) *Extractor {
	return &Extractor{
		client: client,
		mapper: mapper,
		prompt: buildExtractionPrompt(mapper.Vocabulary()),
	}
}

func (e *Extractor) Extract(ctx context.Context, question string) domain.FilterSet {
	ctx, cancel := context.WithTimeout(ctx, extractionTimeout)
	defer cancel()

	content, err := e.client.chat(ctx, "extract_filters",
		e.client.cfg.ChatDeployment,
		e.prompt,
		question,
		0.1, 0)
	if err != nil {
		slog.Warn("filter_extraction_failed", "error", err)
		return domain.KeywordOnlyFilterSet(question)
	}

	filters := domain.NewFilterSet()
	if err := recoverJSON(content, &filters); err != nil {
		slog.Warn("filter_extraction_unparseable", "error", err)
		return domain.KeywordOnlyFilterSet(question)
	}
	return e.mapper.Apply(filters)
}
