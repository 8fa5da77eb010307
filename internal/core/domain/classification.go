package domain

// Route is the handling path chosen for a user question.
type Route string

const (
	RouteStructuredSearch   Route = "structured_search"
	RouteSemanticSearch     Route = "semantic_search"
	RouteStatisticalQuery   Route = "statistical_query"
	RouteNeedsClarification Route = "needs_clarification"
)

// Classification is the classifier verdict for one question. It is produced
// fresh per request and never persisted. ClarificationQuestion is set only
// for the clarification route.
type Classification struct {
	Route                 Route   `json:"query_type"`
	Confidence            float64 `json:"confidence"`
	Reasoning             string  `json:"reasoning"`
	ClarificationQuestion string  `json:"clarification_question,omitempty"`
}

// FallbackClassification is the safe default used when the decision service
// is unreachable or returns output that does not parse. Semantic search is
// the only route that accepts an unfiltered question, so availability wins
// over precision here.
func FallbackClassification(reason string) Classification {
	return Classification{
		Route:      RouteSemanticSearch,
		Confidence: 0.5,
		Reasoning:  reason,
	}
}
