package cognitive

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/overruled/enforcement-search/internal/core/domain"
	"github.com/overruled/enforcement-search/internal/infrastructure/resilience"
)

const (
	defaultAPIVersion = "2024-07-01"

	// One vector query per embedded field; the backend fuses lexical and
	// vector rankings into a single score.
	kNearestNeighbors = 30
	resultTop         = 15

	searchTimeout = 30 * time.Second
)

var vectorFields = []string{"KeyFactsVector", "DocumentTextVector", "CommentaryVector"}

var selectFields = strings.Join([]string{
	"ID", "BrowserFile", "Title", "KeyFacts", "DocumentText", "Commentary",
	"DateIssued", "Published", "DocumentTypes", "NumberOfViolations",
	"SettlementAmount", "SanctionPrograms", "Industries", "ReferenceCount",
}, ",")

// HTTPStatusError carries a non-2xx search backend status for retry
// classification.
type HTTPStatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *HTTPStatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("search backend status %s: %s", e.Status, e.Body)
	}
	return fmt.Sprintf("search backend status %s", e.Status)
}

// Config holds the search backend connection settings.
type Config struct {
	Endpoint   string
	Index      string
	APIKey     string
	APIVersion string
}

// Client queries one index of the document search backend over its REST
// API. Safe for concurrent use.
type Client struct {
	endpoint   string
	index      string
	apiKey     string
	apiVersion string
	httpClient *http.Client
	exec       *resilience.Executor
}

func New(cfg Config, exec *resilience.Executor) (*Client, error) {
	if strings.TrimSpace(cfg.Endpoint) == "" {
		return nil, fmt.Errorf("cognitive: endpoint is required")
	}
	if strings.TrimSpace(cfg.Index) == "" {
		return nil, fmt.Errorf("cognitive: index is required")
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("cognitive: api key is required")
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = defaultAPIVersion
	}
	if exec == nil {
		exec = resilience.NewExecutor(resilience.DefaultPolicy())
	}
	return &Client{
		endpoint:   strings.TrimRight(cfg.Endpoint, "/"),
		index:      cfg.Index,
		apiKey:     cfg.APIKey,
		apiVersion: cfg.APIVersion,
		httpClient: &http.Client{Timeout: searchTimeout},
		exec:       exec,
	}, nil
}

// HybridSearch runs one combined lexical + multi-vector query and returns
// hits in the backend's fused-score order.
func (c *Client) HybridSearch(ctx context.Context, queryText string, queryVector []float32) ([]domain.DocumentRecord, error) {
	if len(queryVector) == 0 {
		return nil, fmt.Errorf("cognitive: query vector is empty")
	}

	queries := make([]vectorQuery, 0, len(vectorFields))
	for _, field := range vectorFields {
		queries = append(queries, vectorQuery{
			Kind:   "vector",
			Vector: queryVector,
			K:      kNearestNeighbors,
			Fields: field,
		})
	}
	body, err := json.Marshal(searchRequest{
		Search:        queryText,
		VectorQueries: queries,
		Select:        selectFields,
		Top:           resultTop,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal search request: %w", err)
	}

	url := fmt.Sprintf("%s/indexes/%s/docs/search?api-version=%s", c.endpoint, c.index, c.apiVersion)

	var decoded searchResponse
	err = c.exec.Do(ctx, "hybrid_search", classifySearchError, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("create search request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("api-key", c.apiKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("search request: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 300 {
			detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
			return &HTTPStatusError{
				StatusCode: resp.StatusCode,
				Status:     resp.Status,
				Body:       strings.TrimSpace(string(detail)),
			}
		}

		decoded = searchResponse{}
		if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
			return fmt.Errorf("decode search response: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	records := make([]domain.DocumentRecord, 0, len(decoded.Value))
	for _, hit := range decoded.Value {
		records = append(records, domain.DocumentRecord{
			ID:               hit.ID,
			Title:            hit.Title,
			BrowserFile:      hit.BrowserFile,
			DateIssued:       hit.DateIssued,
			DocumentTypes:    hit.DocumentTypes,
			KeyFacts:         hit.KeyFacts,
			DocumentText:     hit.DocumentText,
			Commentary:       hit.Commentary,
			SettlementAmount: hit.SettlementAmount,
			SanctionPrograms: hit.SanctionPrograms,
			Industries:       hit.Industries,
			ReferenceCount:   hit.ReferenceCount,
			Score:            hit.Score,
		})
	}
	return records, nil
}

// classifySearchError retries rate limits and server faults; everything
// else is terminal. Context expiry stays off the breaker.
func classifySearchError(err error) resilience.Verdict {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return resilience.Verdict{Retryable: false, RecordFailure: false}
	}
	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) {
		switch {
		case statusErr.StatusCode == http.StatusTooManyRequests, statusErr.StatusCode >= 500:
			return resilience.Verdict{Retryable: true, RecordFailure: true}
		default:
			return resilience.Verdict{Retryable: false, RecordFailure: false}
		}
	}
	return resilience.Verdict{Retryable: true, RecordFailure: true}
}
