package advisor

import (
	"strings"
	"testing"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/dvloznov/finance-advisor/internal/domain"
)

func tx(category string, kind domain.TransactionKind, title string, amount int64) domain.Transaction {
	return domain.Transaction{
		UID:      "user-1",
		Category: category,
		Kind:     kind,
		Title:    title,
		Account:  "checking",
		Amount:   decimal.NewFromInt(amount),
		Date:     civil.Date{Year: 2026, Month: 8, Day: 25},
	}
}

func TestSummarize_Empty(t *testing.T) {
	got := Summarize(nil)
	if got != EmptyDigest {
		t.Errorf("Summarize(nil) = %q, want %q", got, EmptyDigest)
	}

	got = Summarize([]domain.Transaction{})
	if got != EmptyDigest {
		t.Errorf("Summarize(empty) = %q, want %q", got, EmptyDigest)
	}
}

func TestSummarize_Counts(t *testing.T) {
	digest := Summarize([]domain.Transaction{
		tx("groceries", domain.KindExpense, "Supermarket", 50),
		tx("groceries", domain.KindExpense, "Corner store", 60),
		tx("salary", domain.KindIncome, "Monthly salary", 3000),
	})

	if !strings.Contains(digest, "Total transactions: 3") {
		t.Errorf("digest missing total count:\n%s", digest)
	}
	if !strings.Contains(digest, "Expenses: 2, Incomes: 1") {
		t.Errorf("digest missing kind split:\n%s", digest)
	}
	if !strings.Contains(digest, "groceries: 2 transactions, total $110") {
		t.Errorf("digest missing category total:\n%s", digest)
	}
}

func TestSummarize_RecurrentPattern(t *testing.T) {
	digest := Summarize([]domain.Transaction{
		tx("groceries", domain.KindExpense, "Supermarket", 50),
		tx("groceries", domain.KindExpense, "Corner store", 60),
		tx("electronics", domain.KindExpense, "Headphones", 90),
	})

	if !strings.Contains(digest, "RECURRENT PATTERN DETECTED in groceries") {
		t.Errorf("expected recurrent flag for groceries:\n%s", digest)
	}
	if strings.Contains(digest, "RECURRENT PATTERN DETECTED in electronics") {
		t.Errorf("single-transaction category must not be flagged:\n%s", digest)
	}
}

func TestSummarize_LargeTransactions(t *testing.T) {
	tests := []struct {
		name      string
		amount    int64
		wantLarge bool
	}{
		{"strictly above threshold", 1001, true},
		{"exactly at threshold", 1000, false},
		{"well above threshold", 1500, true},
		{"small", 50, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			digest := Summarize([]domain.Transaction{
				tx("electronics", domain.KindExpense, "Laptop", tt.amount),
			})
			gotLarge := strings.Contains(digest, "Large transactions (>1000)")
			if gotLarge != tt.wantLarge {
				t.Errorf("amount %d: large call-out = %v, want %v\n%s", tt.amount, gotLarge, tt.wantLarge, digest)
			}
		})
	}
}

func TestSummarize_LargeTransactionRendering(t *testing.T) {
	digest := Summarize([]domain.Transaction{
		tx("groceries", domain.KindExpense, "Supermarket", 50),
		tx("electronics", domain.KindExpense, "Laptop", 1500),
	})

	if !strings.Contains(digest, "  - Laptop: $1500 (electronics)") {
		t.Errorf("large transaction not rendered with title, amount and category:\n%s", digest)
	}
}

func TestSummarize_InsertionOrderGrouping(t *testing.T) {
	digest := Summarize([]domain.Transaction{
		tx("transport", domain.KindExpense, "Bus", 5),
		tx("groceries", domain.KindExpense, "Supermarket", 50),
		tx("transport", domain.KindExpense, "Taxi", 15),
	})

	transportIdx := strings.Index(digest, "- transport:")
	groceriesIdx := strings.Index(digest, "- groceries:")
	if transportIdx == -1 || groceriesIdx == -1 {
		t.Fatalf("missing category lines:\n%s", digest)
	}
	if transportIdx > groceriesIdx {
		t.Errorf("categories not in first-occurrence order:\n%s", digest)
	}
}

func TestSummarize_Deterministic(t *testing.T) {
	input := []domain.Transaction{
		tx("groceries", domain.KindExpense, "Supermarket", 50),
		tx("transport", domain.KindExpense, "Bus", 5),
		tx("salary", domain.KindIncome, "Monthly salary", 3000),
		tx("electronics", domain.KindExpense, "Laptop", 1500),
	}

	first := Summarize(input)
	for i := 0; i < 10; i++ {
		if got := Summarize(input); got != first {
			t.Fatalf("Summarize not deterministic:\nfirst:\n%s\ngot:\n%s", first, got)
		}
	}
}
