package azureopenai

import "testing"

type probe struct {
	QueryType  string  `json:"query_type"`
	Confidence float64 `json:"confidence"`
}

func TestRecoverJSONStrict(t *testing.T) {
	var p probe
	if err := recoverJSON(`{"query_type":"semantic_search","confidence":0.9}`, &p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.QueryType != "semantic_search" || p.Confidence != 0.9 {
		t.Fatalf("wrong parse: %+v", p)
	}
}

func TestRecoverJSONFenced(t *testing.T) {
	var p probe
	content := "```json\n{\"query_type\":\"structured_search\",\"confidence\":0.8}\n```"
	if err := recoverJSON(content, &p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.QueryType != "structured_search" {
		t.Fatalf("wrong parse: %+v", p)
	}
}

func TestRecoverJSONEmbeddedInProse(t *testing.T) {
	var p probe
	content := `Sure, here is the classification you asked for:
{"query_type":"statistical_query","confidence":0.95}
Let me know if you need anything else.`
	if err := recoverJSON(content, &p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.QueryType != "statistical_query" {
		t.Fatalf("wrong parse: %+v", p)
	}
}

func TestRecoverJSONBracesInsideStrings(t *testing.T) {
	var p probe
	content := `prefix {"query_type":"semantic_search {with braces}","confidence":0.5} suffix`
	if err := recoverJSON(content, &p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.QueryType != "semantic_search {with braces}" {
		t.Fatalf("wrong parse: %+v", p)
	}
}

func TestRecoverJSONNothingParseable(t *testing.T) {
	var p probe
	if err := recoverJSON("I could not produce the requested output.", &p); err == nil {
		t.Fatalf("expected error for prose-only response")
	}
	if err := recoverJSON("", &p); err == nil {
		t.Fatalf("expected error for empty response")
	}
}
