// Seeds the transactions table with a small sample window for one user,
// for trying the advisor against a fresh dataset.
package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/dvloznov/finance-advisor/internal/config"
	"github.com/dvloznov/finance-advisor/internal/domain"
	infra "github.com/dvloznov/finance-advisor/internal/infra/bigquery"
	"github.com/dvloznov/finance-advisor/internal/logger"
)

func main() {
	log := logger.New()

	uid := flag.String("user", "", "user id to seed transactions for (required)")
	flag.Parse()

	if *uid == "" {
		log.Fatal().Msg("Error: --user is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Configuration error")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	repo, err := infra.NewAdvisorRepository(ctx, cfg.ProjectID, cfg.Dataset)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize BigQuery repository")
	}
	defer repo.Close()

	transactions := sampleTransactions(*uid, civil.DateOf(time.Now()))
	if err := repo.InsertTransactions(ctx, transactions); err != nil {
		log.Fatal().Err(err).Msg("Seeding failed")
	}

	fmt.Printf("Seeded %d transactions for %s.\n", len(transactions), *uid)
}

// sampleTransactions covers the interesting digest cases: a recurrent
// category, a large single expense, and an income.
func sampleTransactions(uid string, today civil.Date) []domain.Transaction {
	return []domain.Transaction{
		{UID: uid, Category: "groceries", Kind: domain.KindExpense, Title: "Supermarket", Account: "checking", Amount: decimal.NewFromInt(50), Date: today.AddDays(-6)},
		{UID: uid, Category: "groceries", Kind: domain.KindExpense, Title: "Corner store", Account: "checking", Amount: decimal.NewFromInt(60), Date: today.AddDays(-4)},
		{UID: uid, Category: "groceries", Kind: domain.KindExpense, Title: "Supermarket", Account: "checking", Amount: decimal.NewFromInt(70), Date: today.AddDays(-2)},
		{UID: uid, Category: "electronics", Kind: domain.KindExpense, Title: "Laptop", Account: "credit", Amount: decimal.NewFromInt(1500), Date: today.AddDays(-3)},
		{UID: uid, Category: "salary", Kind: domain.KindIncome, Title: "Monthly salary", Account: "checking", Amount: decimal.NewFromInt(3000), Date: today.AddDays(-5)},
	}
}
