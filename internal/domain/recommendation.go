package domain

import (
	"cloud.google.com/go/civil"
)

// RecommendationType classifies a generated recommendation. Exactly these
// four values are ever written to the store.
type RecommendationType string

const (
	TypeExcessiveExpenses    RecommendationType = "excessive_expenses"
	TypeRecurrentExpenses    RecommendationType = "recurrent_expenses"
	TypeSavingsOpportunities RecommendationType = "savings_opportunities"
	TypeNoTransactions       RecommendationType = "no_transactions"
)

// Valid reports whether t is one of the four known recommendation types.
func (t RecommendationType) Valid() bool {
	switch t {
	case TypeExcessiveExpenses, TypeRecurrentExpenses, TypeSavingsOpportunities, TypeNoTransactions:
		return true
	}
	return false
}

// Storage limits for recommendation fields. Fields longer than this are
// truncated before persistence, with a warning log.
const (
	MaxTitleLen = 100
	MaxDescLen  = 280
)

// Recommendation is the three-field record produced per user per run.
// Never mutated after creation; a later run supersedes it rather than
// deleting it.
type Recommendation struct {
	Title string             `json:"title"`
	Desc  string             `json:"desc"`
	Type  RecommendationType `json:"type"`
}

// PriorRecommendation is a previously persisted recommendation read back
// from the store as composer input. Useful is tri-state: nil means the
// user has not evaluated it yet.
type PriorRecommendation struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Type        RecommendationType `json:"type"`
	Useful      *bool              `json:"useful"`
	Date        civil.Date         `json:"date"`
}
