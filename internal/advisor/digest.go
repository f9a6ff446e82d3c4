package advisor

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/dvloznov/finance-advisor/internal/domain"
)

// categoryStats accumulates per-category expense figures for the digest.
type categoryStats struct {
	count int
	total decimal.Decimal
}

// Summarize reduces a user's transactions into the analytical digest that is
// embedded into the prompt. It is a pure text derivation: counts by kind, an
// expense breakdown by category with recurrence call-outs, and a list of
// unusually large movements.
//
// Categories appear in insertion order of first occurrence, not sorted, so
// the digest is deterministic for a given input order.
func Summarize(transactions []domain.Transaction) string {
	if len(transactions) == 0 {
		return EmptyDigest
	}

	var lines []string
	lines = append(lines, fmt.Sprintf("Total transactions: %d", len(transactions)))

	var expenses, incomes int
	for _, t := range transactions {
		switch t.Kind {
		case domain.KindExpense:
			expenses++
		case domain.KindIncome:
			incomes++
		}
	}
	lines = append(lines, fmt.Sprintf("Expenses: %d, Incomes: %d", expenses, incomes))

	if expenses > 0 {
		var order []string
		stats := make(map[string]*categoryStats)
		for _, t := range transactions {
			if t.Kind != domain.KindExpense {
				continue
			}
			s, ok := stats[t.Category]
			if !ok {
				s = &categoryStats{}
				stats[t.Category] = s
				order = append(order, t.Category)
			}
			s.count++
			s.total = s.total.Add(t.Amount)
		}

		lines = append(lines, "Expense breakdown:")
		for _, cat := range order {
			s := stats[cat]
			lines = append(lines, fmt.Sprintf("  - %s: %d transactions, total $%s", cat, s.count, s.total.String()))
			if s.count > 1 {
				lines = append(lines, fmt.Sprintf("    -> RECURRENT PATTERN DETECTED in %s", cat))
			}
		}
	}

	var large []domain.Transaction
	for _, t := range transactions {
		if t.Amount.GreaterThan(largeAmountThreshold) {
			large = append(large, t)
		}
	}
	if len(large) > 0 {
		lines = append(lines, fmt.Sprintf("Large transactions (>1000): %d", len(large)))
		for _, t := range large {
			lines = append(lines, fmt.Sprintf("  - %s: $%s (%s)", t.Title, t.Amount.String(), t.Category))
		}
	}

	return strings.Join(lines, "\n")
}
