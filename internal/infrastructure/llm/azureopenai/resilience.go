package azureopenai

import (
	"context"
	"errors"
	"net/http"

	openai "github.com/sashabaranov/go-openai"

	"github.com/overruled/enforcement-search/internal/infrastructure/resilience"
)

// classifyOpenAIError decides retry and breaker treatment for one Azure
// OpenAI failure. Rate limits and server faults retry; caller mistakes and
// context expiry do not.
func classifyOpenAIError(err error) resilience.Verdict {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return resilience.Verdict{Retryable: false, RecordFailure: false}
	}

	status := 0
	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		status = reqErr.HTTPStatusCode
	default:
		// Transport-level failure (DNS, reset, timeout before a status).
		return resilience.Verdict{Retryable: true, RecordFailure: true}
	}

	switch {
	case status == http.StatusTooManyRequests:
		return resilience.Verdict{Retryable: true, RecordFailure: true}
	case status >= 500:
		return resilience.Verdict{Retryable: true, RecordFailure: true}
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		// Credential problems will not heal under retry, but the breaker
		// should still shed load off a misconfigured deployment.
		return resilience.Verdict{Retryable: false, RecordFailure: true}
	default:
		return resilience.Verdict{Retryable: false, RecordFailure: false}
	}
}
