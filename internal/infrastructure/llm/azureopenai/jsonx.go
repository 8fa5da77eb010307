package azureopenai

import (
	"encoding/json"
	"fmt"
	"strings"
)

// recoverJSON parses a model response that should be a single JSON object
// but may arrive wrapped in markdown fences or surrounded by prose. Three
// stages, cheapest first: strict parse, fence strip, balanced-brace scan.
func recoverJSON(content string, v any) error {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return fmt.Errorf("empty response")
	}

	if json.Unmarshal([]byte(trimmed), v) == nil {
		return nil
	}

	stripped := stripFences(trimmed)
	if stripped != trimmed && json.Unmarshal([]byte(stripped), v) == nil {
		return nil
	}

	for _, candidate := range braceCandidates(trimmed) {
		if json.Unmarshal([]byte(candidate), v) == nil {
			return nil
		}
	}
	return fmt.Errorf("no parseable JSON object in response")
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// braceCandidates returns every balanced top-level {...} span in s, in
// order of appearance. String literals are respected so braces inside
// quoted values do not break the depth count.
func braceCandidates(s string) []string {
	var candidates []string
	depth := 0
	start := -1
	inString := false
	escaped := false

	for i, r := range s {
		if inString {
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == '"':
				inString = false
			}
			continue
		}
		switch r {
		case '"':
			inString = true
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth > 0 {
				depth--
				if depth == 0 && start >= 0 {
					candidates = append(candidates, s[start:i+1])
					start = -1
				}
			}
		}
	}
	return candidates
}
