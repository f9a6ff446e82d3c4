package advisor

import (
	"strings"
	"testing"

	"cloud.google.com/go/civil"

	"github.com/dvloznov/finance-advisor/internal/domain"
)

func priorRec(title string, useful *bool) domain.PriorRecommendation {
	return domain.PriorRecommendation{
		Title:       title,
		Description: "some earlier advice",
		Type:        domain.TypeSavingsOpportunities,
		Useful:      useful,
		Date:        civil.Date{Year: 2026, Month: 8, Day: 20},
	}
}

func TestBuildPrompt_EmbedsRulesAndLimits(t *testing.T) {
	prompt := BuildPrompt(nil, nil, EmptyDigest)

	for _, want := range []string{
		"IMPORTANT ANALYSIS RULES:",
		"CLASSIFICATION RULES:",
		`Only classify as "recurrent_expenses" if there are 2+ transactions`,
		"MAX 100 characters",
		"MAX 280 characters",
		"Return ONLY a JSON object",
		"previousResponses:",
		"financialMovements:",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildPrompt_EmptyUser(t *testing.T) {
	prompt := BuildPrompt(nil, nil, EmptyDigest)

	if !strings.Contains(prompt, EmptyDigest) {
		t.Error("prompt does not embed the empty digest sentinel")
	}
	if !strings.Contains(prompt, `"no_transactions": Only if financialMovements is completely empty`) {
		t.Error("prompt missing the no_transactions classification rule")
	}
	if !strings.Contains(prompt, "SPECIAL CASE - NO TRANSACTIONS:") {
		t.Error("prompt missing the empty-case instructions")
	}
	// Both data blocks must be empty JSON arrays, never null.
	if !strings.Contains(prompt, "previousResponses:\n[]") {
		t.Errorf("previousResponses block is not []:\n%s", prompt)
	}
	if !strings.Contains(prompt, "financialMovements:\n[]") {
		t.Errorf("financialMovements block is not []:\n%s", prompt)
	}
}

func TestBuildPrompt_SerializesTransactions(t *testing.T) {
	transactions := []domain.Transaction{
		tx("groceries", domain.KindExpense, "Supermarket", 50),
		tx("electronics", domain.KindExpense, "Laptop", 1500),
	}
	prompt := BuildPrompt(transactions, nil, Summarize(transactions))

	// Amounts are plain JSON numbers with exact values.
	if !strings.Contains(prompt, `"amount": 50`) {
		t.Errorf("prompt missing unquoted amount 50:\n%s", prompt)
	}
	if !strings.Contains(prompt, `"amount": 1500`) {
		t.Errorf("prompt missing unquoted amount 1500:\n%s", prompt)
	}
	if strings.Contains(prompt, `"amount": "50"`) {
		t.Error("amounts must not be quoted")
	}
	if !strings.Contains(prompt, `"date": "2026-08-25"`) {
		t.Errorf("prompt missing calendar date:\n%s", prompt)
	}

	// Input order is preserved.
	first := strings.Index(prompt, "Supermarket")
	second := strings.Index(prompt, "Laptop")
	if first == -1 || second == -1 || first > second {
		t.Errorf("transactions not serialized in input order (%d, %d)", first, second)
	}
}

func TestBuildPrompt_SerializesPriors(t *testing.T) {
	yes := true
	priors := []domain.PriorRecommendation{
		priorRec("Watch your groceries", nil),
		priorRec("Nice savings streak", &yes),
	}
	prompt := BuildPrompt(nil, priors, EmptyDigest)

	if !strings.Contains(prompt, `"title": "Watch your groceries"`) {
		t.Error("prompt missing first prior recommendation")
	}
	// Tri-state useful: unknown serializes as null, evaluated as a bool.
	if !strings.Contains(prompt, `"useful": null`) {
		t.Error("unknown useful flag must serialize as null")
	}
	if !strings.Contains(prompt, `"useful": true`) {
		t.Error("evaluated useful flag must serialize as true")
	}
}

func TestBuildPrompt_Deterministic(t *testing.T) {
	transactions := []domain.Transaction{
		tx("groceries", domain.KindExpense, "Supermarket", 50),
		tx("transport", domain.KindExpense, "Bus", 5),
	}
	priors := []domain.PriorRecommendation{priorRec("Watch your groceries", nil)}
	digest := Summarize(transactions)

	first := BuildPrompt(transactions, priors, digest)
	for i := 0; i < 10; i++ {
		if got := BuildPrompt(transactions, priors, digest); got != first {
			t.Fatal("BuildPrompt not deterministic for identical inputs")
		}
	}
}

func TestBuildSimplePrompt(t *testing.T) {
	transactions := []domain.Transaction{
		tx("groceries", domain.KindExpense, "Supermarket", 50),
	}
	prompt := BuildSimplePrompt(transactions, nil)

	for _, want := range []string{
		"Return JSON only:",
		`"title"`,
		`"desc"`,
		`"type"`,
		"MAX 100 characters",
		"MAX 280 characters",
		`"amount": 50`,
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("simple prompt missing %q:\n%s", want, prompt)
		}
	}

	// The short variant drops the long-form rule block.
	if strings.Contains(prompt, "IMPORTANT ANALYSIS RULES:") {
		t.Error("simple prompt must not carry the long-form rules")
	}
}
