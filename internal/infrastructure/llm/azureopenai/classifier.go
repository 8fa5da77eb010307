package azureopenai

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/overruled/enforcement-search/internal/core/domain"
)

const classificationTimeout = 30 * time.Second

// Classifier assigns a handling route to questions via the chat deployment.
// It never returns an error: any upstream or parse failure degrades to the
// semantic-search fallback classification.
type Classifier struct {
	client     *Client
	onFallback func(reason string)
}

func NewClassifier(client *Client) *Classifier {
	return &Classifier{client: client}
}

// OnFallback registers a hook invoked whenever classification degrades to
// the fallback. Used for metrics; must be cheap.
func (c *Classifier) OnFallback(fn func(reason string)) {
	c.onFallback = fn
}

func (c *Classifier) fallback(reason, message string) domain.Classification {
	if c.onFallback != nil {
		c.onFallback(reason)
	}
	return domain.FallbackClassification(message)
}

func (c *Classifier) Classify(ctx context.Context, question string) domain.Classification {
	ctx, cancel := context.WithTimeout(ctx, classificationTimeout)
	defer cancel()

	content, err := c.client.chat(ctx, "classify_query",
		c.client.cfg.ChatDeployment,
		classificationPrompt,
		fmt.Sprintf("Classify this query: %s", question),
		0.1, 0)
	if err != nil {
		slog.Warn("classification_failed", "error", err)
		return c.fallback("upstream_error", "Error occurred during classification, defaulting to semantic search")
	}

	var cls domain.Classification
	if err := recoverJSON(content, &cls); err != nil {
		slog.Warn("classification_unparseable", "error", err)
		return c.fallback("unparseable_response", "Error parsing classification response, defaulting to semantic search")
	}
	if cls.Confidence < 0 || cls.Confidence > 1 {
		slog.Warn("classification_confidence_out_of_range", "confidence", cls.Confidence)
		return c.fallback("confidence_out_of_range", "Classification confidence out of range, defaulting to semantic search")
	}
	return cls
}
