package azureopenai

import (
	"context"
	"fmt"
	"time"

	"github.com/overruled/enforcement-search/internal/core/domain"
)

const (
	synthesisTimeout   = 120 * time.Second
	synthesisMaxTokens = 2000
)

// Synthesizer generates a grounded answer from retrieved documents on the
// reasoning deployment. Unlike the routing components, failures propagate:
// there is no safe default answer for a legal question.
type Synthesizer struct {
	client *Client
}

func NewSynthesizer(client *Client) *Synthesizer {
	return &Synthesizer{client: client}
}

func (s *Synthesizer) Synthesize(ctx context.Context, question string, documents []domain.RetrievedDocument) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, synthesisTimeout)
	defer cancel()

	content, err := s.client.chat(ctx, "synthesize_answer",
		s.client.cfg.ReasoningDeployment,
		synthesisPrompt,
		buildSynthesisInput(question, documents),
		0, synthesisMaxTokens)
	if err != nil {
		return "", fmt.Errorf("answer generation: %w", err)
	}
	return content, nil
}
