package azureopenai

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const embeddingTimeout = 30 * time.Second

// Embedder produces dense query vectors on the embedding deployment.
type Embedder struct {
	client *Client
}

func NewEmbedder(client *Client) *Embedder {
	return &Embedder{client: client}
}

func (e *Embedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	ctx, cancel := context.WithTimeout(ctx, embeddingTimeout)
	defer cancel()

	req := openai.EmbeddingRequest{
		Input:          []string{text},
		Model:          openai.EmbeddingModel(e.client.cfg.EmbeddingDeployment),
		EncodingFormat: openai.EmbeddingEncodingFormatFloat,
	}

	var vector []float32
	var usage openai.Usage
	err := e.client.exec.Do(ctx, "embed_query", classifyOpenAIError, func(ctx context.Context) error {
		resp, err := e.client.api.CreateEmbeddings(ctx, req)
		if err != nil {
			return err
		}
		if len(resp.Data) == 0 {
			return fmt.Errorf("empty embedding response")
		}
		vector = resp.Data[0].Embedding
		usage = resp.Usage
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	e.client.recordUsage("embed_query", e.client.cfg.EmbeddingDeployment, usage.PromptTokens, usage.CompletionTokens)
	return vector, nil
}
