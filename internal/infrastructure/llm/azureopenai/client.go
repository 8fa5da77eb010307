package azureopenai

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/overruled/enforcement-search/internal/infrastructure/resilience"
)

// Config holds the Azure OpenAI connection and deployment settings. The
// routing deployments (classification and extraction) run on the chat
// deployment; synthesis runs on the reasoning deployment.
type Config struct {
	Endpoint   string
	APIKey     string
	APIVersion string

	ChatDeployment      string
	ReasoningDeployment string
	EmbeddingDeployment string
}

func (c Config) validate() error {
	if strings.TrimSpace(c.Endpoint) == "" {
		return fmt.Errorf("azureopenai: endpoint is required")
	}
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("azureopenai: api key is required")
	}
	if c.ChatDeployment == "" || c.ReasoningDeployment == "" || c.EmbeddingDeployment == "" {
		return fmt.Errorf("azureopenai: all three deployments must be set")
	}
	return nil
}

// Client is the shared Azure OpenAI handle behind the classifier, extractor,
// synthesizer and embedder. Safe for concurrent use.
type Client struct {
	api  *openai.Client
	cfg  Config
	exec *resilience.Executor

	onUsage func(operation, model string, promptTokens, completionTokens int)
}

func NewClient(cfg Config, exec *resilience.Executor) (*Client, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if exec == nil {
		exec = resilience.NewExecutor(resilience.LLMPolicy())
	}

	apiCfg := openai.DefaultAzureConfig(cfg.APIKey, cfg.Endpoint)
	if cfg.APIVersion != "" {
		apiCfg.APIVersion = cfg.APIVersion
	}
	// Model names are Azure deployment names already; no remapping.
	apiCfg.AzureModelMapperFunc = func(model string) string { return model }

	return &Client{
		api:  openai.NewClientWithConfig(apiCfg),
		cfg:  cfg,
		exec: exec,
	}, nil
}

// OnUsage registers a hook invoked with the token counts of every
// successful completion and embedding call. Used for metrics; must be cheap.
func (c *Client) OnUsage(fn func(operation, model string, promptTokens, completionTokens int)) {
	c.onUsage = fn
}

func (c *Client) recordUsage(operation, model string, promptTokens, completionTokens int) {
	if c.onUsage != nil {
		c.onUsage(operation, model, promptTokens, completionTokens)
	}
}

// chat runs one system+user exchange against the given deployment and
// returns the assistant text.
func (c *Client) chat(ctx context.Context, operation, deployment, systemPrompt, userPrompt string, temperature float32, maxTokens int) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       deployment,
		Temperature: temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	}
	if maxTokens > 0 {
		req.MaxCompletionTokens = maxTokens
	}

	var content string
	var usage openai.Usage
	err := c.exec.Do(ctx, operation, classifyOpenAIError, func(ctx context.Context) error {
		resp, err := c.api.CreateChatCompletion(ctx, req)
		if err != nil {
			return err
		}
		if len(resp.Choices) == 0 {
			return fmt.Errorf("empty completion response")
		}
		content = resp.Choices[0].Message.Content
		usage = resp.Usage
		return nil
	})
	if err != nil {
		return "", err
	}
	c.recordUsage(operation, deployment, usage.PromptTokens, usage.CompletionTokens)
	return content, nil
}
