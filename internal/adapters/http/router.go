package httpadapter

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/overruled/enforcement-search/internal/core/domain"
	"github.com/overruled/enforcement-search/internal/observability/metrics"
)

const apiVersion = "2.0.0"

// Service is the application surface the HTTP layer talks to. The pipeline
// behind it is built lazily; ResetPipeline tears it down for recreation.
type Service interface {
	Route(ctx context.Context, question string) domain.Envelope
	Classify(ctx context.Context, question string) domain.Classification
	ResetPipeline(ctx context.Context) error
}

type Router struct {
	svc     Service
	metrics *metrics.HTTPServerMetrics
	service string

	rateLimitRPS   float64
	rateLimitBurst int
}

func NewRouter(svc Service, m *metrics.HTTPServerMetrics, service string, rateLimitRPS float64, rateLimitBurst int) *Router {
	return &Router{
		svc:            svc,
		metrics:        m,
		service:        service,
		rateLimitRPS:   rateLimitRPS,
		rateLimitBurst: rateLimitBurst,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", rt.root)
	mux.HandleFunc("/health", rt.health)
	mux.HandleFunc("/chat", rt.chat)
	mux.HandleFunc("/query-types", rt.queryTypes)
	mux.HandleFunc("/classify", rt.classify)
	mux.HandleFunc("/admin/cleanup", rt.cleanup)
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
	}

	var handler http.Handler = mux
	handler = rateLimitMiddleware(handler, rt.rateLimitRPS, rt.rateLimitBurst)
	if rt.metrics != nil {
		handler = rt.metrics.Middleware(rt.service, handler)
	}
	handler = accessLogMiddleware(handler)
	handler = requestIDMiddleware(handler)
	return handler
}

func (rt *Router) root(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Legal Search Engine API with Intelligent Routing is running",
		"version": apiVersion,
		"features": []string{
			"Structured Keyword Search with Filters",
			"Semantic Document Search with RAG",
			"Statistical Queries (placeholder)",
			"Intelligent Query Routing",
		},
	})
}

func (rt *Router) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":          "healthy",
		"service":         "Legal Search Engine API",
		"version":         apiVersion,
		"routing_enabled": true,
	})
}

type chatRequest struct {
	Question string `json:"question"`
	ThreadID string `json:"thread_id,omitempty"`
}

func (rt *Router) chat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Question cannot be empty"})
		return
	}

	envelope := rt.svc.Route(r.Context(), req.Question)
	writeJSON(w, statusForEnvelope(envelope), envelope)
}

func (rt *Router) classify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Question cannot be empty"})
		return
	}

	classification := rt.svc.Classify(r.Context(), req.Question)
	writeJSON(w, http.StatusOK, map[string]any{
		"question":       req.Question,
		"classification": classification,
	})
}

func (rt *Router) cleanup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	if err := rt.svc.ResetPipeline(r.Context()); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Cleanup completed successfully",
		"status":  "success",
	})
}

func (rt *Router) queryTypes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"supported_query_types": []map[string]any{
			{
				"type":        string(domain.RouteStructuredSearch),
				"name":        "Structured Keyword Search with Filters",
				"description": "For structured queries with specific criteria like date ranges, programs, industries, etc.",
				"examples": []string{
					"Find OFAC violations related to Iran sanctions from 2020 to 2023",
					"Show me voluntary disclosures in the financial services industry",
					"Search for cases involving penalties over $1 million",
				},
			},
			{
				"type":        string(domain.RouteSemanticSearch),
				"name":        "Semantic Document Search",
				"description": "For complex questions requiring semantic understanding and analysis of document content",
				"examples": []string{
					"Can Iranian origin banknotes be imported into the U.S.?",
					"What are the compliance requirements for financial institutions?",
					"How does OFAC determine penalty amounts?",
				},
			},
			{
				"type":        string(domain.RouteStatisticalQuery),
				"name":        "Statistical Queries",
				"description": "For aggregate questions and statistics (coming soon)",
				"examples": []string{
					"How many violations were there in 2023?",
					"What's the average penalty amount for financial institutions?",
					"Which industry had the most violations?",
				},
				"status": "placeholder",
			},
		},
		"routing_info": map[string]any{
			"automatic":            true,
			"confidence_threshold": 0.5,
			"fallback_method":      string(domain.RouteSemanticSearch),
		},
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
