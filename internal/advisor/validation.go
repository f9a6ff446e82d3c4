package advisor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dvloznov/finance-advisor/internal/domain"
)

// Interpretation failure reasons. Callers distinguish them with errors.Is;
// every failure is logged together with the offending raw text.
var (
	ErrUnparsable   = errors.New("no parsable recommendation object in model output")
	ErrMissingField = errors.New("recommendation is missing a required field")
	ErrEmptyField   = errors.New("recommendation field is empty or not a string")
	ErrInvalidType  = errors.New("recommendation type is not a known value")
)

var requiredFields = []string{"title", "desc", "type"}

// validateRecommendation enforces the recommendation schema on a decoded
// object: all three fields present, non-empty strings after trimming, and a
// type from the fixed four-value set. Violations reject the whole record.
func validateRecommendation(obj map[string]interface{}) (*domain.Recommendation, error) {
	values := make(map[string]string, len(requiredFields))
	for _, field := range requiredFields {
		v, ok := obj[field]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingField, field)
		}
		s, ok := v.(string)
		if !ok || strings.TrimSpace(s) == "" {
			return nil, fmt.Errorf("%w: %q", ErrEmptyField, field)
		}
		values[field] = s
	}

	recType := domain.RecommendationType(values["type"])
	if !recType.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidType, values["type"])
	}

	return &domain.Recommendation{
		Title: values["title"],
		Desc:  values["desc"],
		Type:  recType,
	}, nil
}
