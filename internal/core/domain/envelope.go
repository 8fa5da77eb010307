package domain

import (
	"encoding/json"
	"fmt"
)

// Envelope is the single wire-level response shape every route terminates in.
// Exactly one of answer-bearing success, clarification, or error is the
// active branch; Documents is populated only on the semantic route.
type Envelope struct {
	Question              string              `json:"question"`
	QueryType             string              `json:"query_type"`
	Classification        *Classification     `json:"classification,omitempty"`
	Documents             []RetrievedDocument `json:"documents"`
	Answer                string              `json:"answer"`
	SearchParameters      *FilterSet          `json:"search_parameters,omitempty"`
	ClarificationQuestion string              `json:"clarification_question,omitempty"`
	Message               string              `json:"message,omitempty"`
	Error                 string              `json:"error,omitempty"`
}

// RouteResult is a terminal pipeline outcome. The five implementations keep
// the orchestrator's terminal states exhaustive and checkable; Envelope is
// the only way out.
type RouteResult interface {
	Envelope(question string) Envelope
}

// ClarificationResult terminates a request that needs a follow-up question.
type ClarificationResult struct {
	Classification Classification
}

func (r ClarificationResult) Envelope(question string) Envelope {
	cls := r.Classification
	return Envelope{
		Question:              question,
		QueryType:             string(RouteNeedsClarification),
		Classification:        &cls,
		Documents:             []RetrievedDocument{},
		ClarificationQuestion: cls.ClarificationQuestion,
		Message:               "I need more information to help you effectively.",
		Answer:                fmt.Sprintf("I need clarification to provide the best results. %s", cls.ClarificationQuestion),
	}
}

// FiltersResult terminates the structured route. The filter payload is a
// preview for the caller; no search runs against it here.
type FiltersResult struct {
	Classification Classification
	Filters        FilterSet
}

func (r FiltersResult) Envelope(question string) Envelope {
	cls := r.Classification
	filters := r.Filters
	rendered, err := json.MarshalIndent(filters, "", "  ")
	if err != nil {
		rendered = []byte("{}")
	}
	return Envelope{
		Question:         question,
		QueryType:        string(RouteStructuredSearch),
		Classification:   &cls,
		Documents:        []RetrievedDocument{},
		SearchParameters: &filters,
		Answer: fmt.Sprintf(
			"I've processed your query into structured search parameters. The system would search for documents matching these criteria: %s",
			rendered,
		),
	}
}

// AnsweredResult terminates the semantic route with a grounded answer.
type AnsweredResult struct {
	Classification Classification
	QueryType      string
	Answer         Answer
}

func (r AnsweredResult) Envelope(question string) Envelope {
	cls := r.Classification
	queryType := r.QueryType
	if queryType == "" {
		queryType = string(RouteSemanticSearch)
	}
	docs := r.Answer.Documents
	if docs == nil {
		docs = []RetrievedDocument{}
	}
	return Envelope{
		Question:       question,
		QueryType:      queryType,
		Classification: &cls,
		Documents:      docs,
		Answer:         r.Answer.Text,
	}
}

// PlaceholderResult terminates the statistical route until NL2SQL exists.
type PlaceholderResult struct {
	Classification Classification
}

func (r PlaceholderResult) Envelope(question string) Envelope {
	cls := r.Classification
	return Envelope{
		Question:       question,
		QueryType:      string(RouteStatisticalQuery),
		Classification: &cls,
		Documents:      []RetrievedDocument{},
		Message:        "Statistical and aggregate queries are not yet supported. This feature is coming soon!",
		Answer:         "I apologize, but I cannot process statistical queries yet. This feature is under development. Please try asking about specific documents, cases, or legal concepts instead.",
	}
}

// ErrorResult terminates any request whose handling path failed. The error
// string is diagnostic; the answer is the user-facing apology.
type ErrorResult struct {
	Err error
}

func (r ErrorResult) Envelope(question string) Envelope {
	errText := ""
	if r.Err != nil {
		errText = r.Err.Error()
	}
	return Envelope{
		Question:  question,
		QueryType: "error",
		Documents: []RetrievedDocument{},
		Error:     errText,
		Message:   "An error occurred while processing your query.",
		Answer:    "I apologize, but I encountered an error while processing your question. Please try rephrasing your query.",
	}
}
