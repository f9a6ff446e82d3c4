package advisor

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/dvloznov/finance-advisor/internal/domain"
)

// jsonObjectPattern matches brace-delimited candidates with at most one
// level of nested braces, enough for the flat three-field reply we expect.
var jsonObjectPattern = regexp.MustCompile(`\{[^{}]*(?:\{[^{}]*\}[^{}]*)*\}`)

// ParseRecommendation turns raw model output into a validated
// recommendation. It never panics on malformed input; failures come back as
// errors wrapping one of ErrUnparsable, ErrMissingField, ErrEmptyField or
// ErrInvalidType so callers can log the reason.
//
// Strategies are tried in order: strip markdown fences and parse directly,
// then scan the raw text for embedded JSON-like substrings. Partial records
// are never returned.
func ParseRecommendation(raw string) (*domain.Recommendation, error) {
	cleaned := stripFences(strings.TrimSpace(raw))

	obj, ok := decodeObject(cleaned)
	if !ok {
		obj, ok = extractEmbeddedObject(strings.TrimSpace(raw))
		if !ok {
			return nil, fmt.Errorf("ParseRecommendation: %w", ErrUnparsable)
		}
	}

	rec, err := validateRecommendation(obj)
	if err != nil {
		return nil, fmt.Errorf("ParseRecommendation: %w", err)
	}
	return rec, nil
}

// stripFences extracts the payload from a markdown code fence. A fence with
// a json hint wins; otherwise the span between the first opening fence and
// the last closing fence is taken. Text without a complete fence pair is
// returned unchanged.
func stripFences(s string) string {
	if start := strings.Index(s, "```json"); start != -1 {
		rest := s[start+len("```json"):]
		if end := strings.Index(rest, "```"); end != -1 {
			return strings.TrimSpace(rest[:end])
		}
		return s
	}
	if start := strings.Index(s, "```"); start != -1 {
		rest := s[start+3:]
		if end := strings.LastIndex(rest, "```"); end > 0 {
			return strings.TrimSpace(rest[:end])
		}
	}
	return s
}

// decodeObject parses s as a single JSON object.
func decodeObject(s string) (map[string]interface{}, bool) {
	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(s), &obj); err != nil {
		return nil, false
	}
	if obj == nil {
		// "null" decodes without error but carries nothing.
		return nil, false
	}
	return obj, true
}

// extractEmbeddedObject scans free-form text for brace-delimited candidates
// and returns the first one that parses into an object carrying all three
// required keys.
func extractEmbeddedObject(s string) (map[string]interface{}, bool) {
	for _, candidate := range jsonObjectPattern.FindAllString(s, -1) {
		obj, ok := decodeObject(candidate)
		if !ok {
			continue
		}
		if hasKeys(obj, "title", "desc", "type") {
			return obj, true
		}
	}
	return nil, false
}

func hasKeys(obj map[string]interface{}, keys ...string) bool {
	for _, k := range keys {
		if _, ok := obj[k]; !ok {
			return false
		}
	}
	return true
}
