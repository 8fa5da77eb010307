package httpadapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/overruled/enforcement-search/internal/core/domain"
)

type serviceFake struct {
	envelope    domain.Envelope
	routeCalled bool
	resetCalled bool
	resetErr    error
}

func (f *serviceFake) Route(_ context.Context, question string) domain.Envelope {
	f.routeCalled = true
	env := f.envelope
	env.Question = question
	return env
}

func (f *serviceFake) Classify(context.Context, string) domain.Classification {
	return domain.Classification{
		Route:      domain.RouteSemanticSearch,
		Confidence: 0.8,
		Reasoning:  "content analysis required",
	}
}

func (f *serviceFake) ResetPipeline(context.Context) error {
	f.resetCalled = true
	return f.resetErr
}

func newTestRouter(svc *serviceFake) http.Handler {
	return NewRouter(svc, nil, "enforcement-search-api", 0, 0).Handler()
}

func postJSON(t *testing.T, handler http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)
	return res
}

func TestChatRejectsEmptyQuestion(t *testing.T) {
	svc := &serviceFake{}
	handler := newTestRouter(svc)

	for _, body := range []string{`{"question":""}`, `{"question":"   "}`, `{}`} {
		res := postJSON(t, handler, "/chat", body)
		if res.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d", body, res.Code)
		}
	}
	if svc.routeCalled {
		t.Fatalf("empty question must not reach the pipeline")
	}
}

func TestChatRejectsInvalidJSON(t *testing.T) {
	handler := newTestRouter(&serviceFake{})
	res := postJSON(t, handler, "/chat", "{not json")
	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
}

func TestChatReturnsEnvelope(t *testing.T) {
	svc := &serviceFake{envelope: domain.Envelope{
		QueryType: "semantic_search",
		Answer:    "Yes. According to [Case A], it is permitted.",
		Documents: []domain.RetrievedDocument{{ID: "a1", Title: "Case A"}},
	}}
	handler := newTestRouter(svc)

	res := postJSON(t, handler, "/chat", `{"question":"Can it be imported?"}`)
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", res.Code, res.Body.String())
	}

	var env domain.Envelope
	if err := json.Unmarshal(res.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if env.Question != "Can it be imported?" {
		t.Fatalf("question not echoed: %q", env.Question)
	}
	if env.QueryType != "semantic_search" || len(env.Documents) != 1 {
		t.Fatalf("envelope not passed through: %+v", env)
	}
}

func TestChatErrorEnvelopeIs500(t *testing.T) {
	svc := &serviceFake{envelope: domain.Envelope{
		QueryType: "error",
		Error:     "retrieval: hybrid search: backend down",
		Answer:    "I apologize, but I encountered an error while processing your question. Please try rephrasing your query.",
	}}
	handler := newTestRouter(svc)

	res := postJSON(t, handler, "/chat", `{"question":"q"}`)
	if res.Code != http.StatusInternalServerError {
		t.Fatalf("error envelope must map to 500, got %d", res.Code)
	}
}

func TestChatMethodNotAllowed(t *testing.T) {
	handler := newTestRouter(&serviceFake{})
	req := httptest.NewRequest(http.MethodGet, "/chat", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)
	if res.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", res.Code)
	}
}

func TestHealthAndRoot(t *testing.T) {
	handler := newTestRouter(&serviceFake{})

	for _, path := range []string{"/", "/health"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		res := httptest.NewRecorder()
		handler.ServeHTTP(res, req)
		if res.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, res.Code)
		}
	}
}

func TestQueryTypesEnumeratesRoutes(t *testing.T) {
	handler := newTestRouter(&serviceFake{})
	req := httptest.NewRequest(http.MethodGet, "/query-types", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}

	var payload struct {
		SupportedQueryTypes []struct {
			Type string `json:"type"`
		} `json:"supported_query_types"`
		RoutingInfo struct {
			FallbackMethod string `json:"fallback_method"`
		} `json:"routing_info"`
	}
	if err := json.Unmarshal(res.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if len(payload.SupportedQueryTypes) != 3 {
		t.Fatalf("expected 3 query types, got %d", len(payload.SupportedQueryTypes))
	}
	if payload.RoutingInfo.FallbackMethod != "semantic_search" {
		t.Fatalf("wrong fallback method %q", payload.RoutingInfo.FallbackMethod)
	}
}

func TestClassifyEndpoint(t *testing.T) {
	handler := newTestRouter(&serviceFake{})
	res := postJSON(t, handler, "/classify", `{"question":"How does OFAC determine penalty amounts?"}`)
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}

	var payload struct {
		Question       string                `json:"question"`
		Classification domain.Classification `json:"classification"`
	}
	if err := json.Unmarshal(res.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload.Classification.Route != domain.RouteSemanticSearch {
		t.Fatalf("classification not surfaced: %+v", payload)
	}
}

func TestAdminCleanup(t *testing.T) {
	svc := &serviceFake{}
	handler := newTestRouter(svc)

	res := postJSON(t, handler, "/admin/cleanup", "")
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	if !svc.resetCalled {
		t.Fatalf("cleanup must reset the pipeline")
	}
}

func TestRateLimitReturns429(t *testing.T) {
	handler := NewRouter(&serviceFake{}, nil, "enforcement-search-api", 1, 1).Handler()

	req1 := httptest.NewRequest(http.MethodGet, "/health", nil)
	res1 := httptest.NewRecorder()
	handler.ServeHTTP(res1, req1)
	if res1.Code != http.StatusOK {
		t.Fatalf("first request expected 200, got %d", res1.Code)
	}

	req2 := httptest.NewRequest(http.MethodGet, "/health", nil)
	res2 := httptest.NewRecorder()
	handler.ServeHTTP(res2, req2)
	if res2.Code != http.StatusTooManyRequests {
		t.Fatalf("second request expected 429, got %d", res2.Code)
	}
	if res2.Header().Get("Retry-After") == "" {
		t.Fatalf("expected Retry-After header for 429 response")
	}
}
