package metrics

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTPServerMetrics holds the private registry for the query API process:
// HTTP server metrics plus the question-pipeline metrics recorded through
// the PipelineObserver hook.
type HTTPServerMetrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	questionsTotal          *prometheus.CounterVec
	pipelineDuration        *prometheus.HistogramVec
	retrievedDocuments      *prometheus.HistogramVec
	noContextTotal          *prometheus.CounterVec
	classifierFallbackTotal *prometheus.CounterVec
	llmTokensTotal          *prometheus.CounterVec
}

func NewHTTPServerMetrics(service string) *HTTPServerMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ers",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ers",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "ers",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	questionsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ers",
			Subsystem: "pipeline",
			Name:      "questions_total",
			Help:      "Total routed questions by terminal query type.",
		},
		[]string{"service", "query_type"},
	)
	pipelineDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ers",
			Subsystem: "pipeline",
			Name:      "duration_seconds",
			Help:      "End-to-end question handling duration in seconds.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"service", "query_type"},
	)
	retrievedDocuments := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ers",
			Subsystem: "pipeline",
			Name:      "retrieved_documents",
			Help:      "Distribution of retrieved documents per answered question.",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 10, 15},
		},
		[]string{"service"},
	)
	noContextTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ers",
			Subsystem: "pipeline",
			Name:      "no_context_total",
			Help:      "Total answered questions without retrieved documents.",
		},
		[]string{"service"},
	)
	classifierFallbackTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ers",
			Subsystem: "pipeline",
			Name:      "classifier_fallback_total",
			Help:      "Total classifications degraded to the semantic fallback.",
		},
		[]string{"service", "reason"},
	)
	llmTokensTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ers",
			Subsystem: "llm",
			Name:      "tokens_total",
			Help:      "Token usage by direction.",
		},
		[]string{"service", "operation", "direction", "model"},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		questionsTotal,
		pipelineDuration,
		retrievedDocuments,
		noContextTotal,
		classifierFallbackTotal,
		llmTokensTotal,
	)

	return &HTTPServerMetrics{
		registry:                registry,
		requestTotal:            requestTotal,
		requestDuration:         requestDuration,
		requestInFlight:         requestInFlight,
		questionsTotal:          questionsTotal,
		pipelineDuration:        pipelineDuration,
		retrievedDocuments:      retrievedDocuments,
		noContextTotal:          noContextTotal,
		classifierFallbackTotal: classifierFallbackTotal,
		llmTokensTotal:          llmTokensTotal,
	}
}

func (m *HTTPServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *HTTPServerMetrics) Middleware(service string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		next.ServeHTTP(recorder, r)

		m.requestTotal.WithLabelValues(
			service,
			r.Method,
			r.URL.Path,
			strconv.Itoa(recorder.statusCode),
		).Inc()
		m.requestDuration.WithLabelValues(service, r.Method, r.URL.Path).Observe(time.Since(start).Seconds())
	})
}

// PipelineObserver binds one service label so the orchestrator can record
// outcomes without knowing about prometheus.
type PipelineObserver struct {
	service string
	metrics *HTTPServerMetrics
}

func (m *HTTPServerMetrics) Observer(service string) *PipelineObserver {
	return &PipelineObserver{service: service, metrics: m}
}

func (o *PipelineObserver) ObserveRoute(queryType string, documents int, duration time.Duration) {
	if queryType == "" {
		queryType = "unknown"
	}
	o.metrics.questionsTotal.WithLabelValues(o.service, queryType).Inc()
	o.metrics.pipelineDuration.WithLabelValues(o.service, queryType).Observe(duration.Seconds())

	if queryType == "semantic_search" || queryType == "semantic_search_fallback" {
		o.metrics.retrievedDocuments.WithLabelValues(o.service).Observe(float64(documents))
		if documents == 0 {
			o.metrics.noContextTotal.WithLabelValues(o.service).Inc()
		}
	}
}

func (m *HTTPServerMetrics) RecordClassifierFallback(service, reason string) {
	if reason == "" {
		reason = "unknown"
	}
	m.classifierFallbackTotal.WithLabelValues(service, reason).Inc()
}

func (m *HTTPServerMetrics) RecordTokenUsage(service, operation, model string, promptTokens, completionTokens int) {
	if model == "" {
		model = "unknown"
	}
	if promptTokens > 0 {
		m.llmTokensTotal.WithLabelValues(service, operation, "in", model).Add(float64(promptTokens))
	}
	if completionTokens > 0 {
		m.llmTokensTotal.WithLabelValues(service, operation, "out", model).Add(float64(completionTokens))
	}
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusRecorder) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *statusRecorder) Flush() {
	flusher, ok := w.ResponseWriter.(http.Flusher)
	if ok {
		flusher.Flush()
	}
}

func (w *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not implement http.Hijacker")
	}
	return hijacker.Hijack()
}

func (w *statusRecorder) Push(target string, opts *http.PushOptions) error {
	pusher, ok := w.ResponseWriter.(http.Pusher)
	if !ok {
		return http.ErrNotSupported
	}
	return pusher.Push(target, opts)
}
