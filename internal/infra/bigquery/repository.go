package bigquery

import (
	"context"
	"fmt"
	"math/big"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dvloznov/finance-advisor/internal/domain"
)

// AdvisorRepository implements advisor.Store on top of BigQuery. It holds a
// shared client so operations do not open a new connection each time;
// project and dataset come from configuration, never from package state.
type AdvisorRepository struct {
	client  *bigquery.Client
	dataset string
}

// NewAdvisorRepository creates a repository with a shared BigQuery client.
func NewAdvisorRepository(ctx context.Context, projectID, dataset string) (*AdvisorRepository, error) {
	client, err := bigquery.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("NewAdvisorRepository: creating client: %w", err)
	}
	return &AdvisorRepository{
		client:  client,
		dataset: dataset,
	}, nil
}

// Close closes the BigQuery client connection.
func (r *AdvisorRepository) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}

// ListUserIDs delegates to ListUserIDsWithClient with the shared client.
func (r *AdvisorRepository) ListUserIDs(ctx context.Context) ([]string, error) {
	return ListUserIDsWithClient(ctx, r.client, r.dataset)
}

// ListTransactionsSince fetches and maps one user's recent transactions.
func (r *AdvisorRepository) ListTransactionsSince(ctx context.Context, uid string, since civil.Date) ([]domain.Transaction, error) {
	rows, err := QueryTransactionsSinceWithClient(ctx, r.client, r.dataset, uid, since)
	if err != nil {
		return nil, err
	}

	transactions := make([]domain.Transaction, 0, len(rows))
	for _, row := range rows {
		transactions = append(transactions, domain.Transaction{
			UID:      row.UID,
			Category: row.Category,
			Kind:     domain.TransactionKind(row.Kind),
			Title:    row.Title,
			Account:  row.Account,
			Amount:   amountFromRat(row.Amount),
			Date:     row.Date,
		})
	}
	return transactions, nil
}

// ListPriorRecommendations fetches and maps the user's recommendations with
// useful in {true, unknown}.
func (r *AdvisorRepository) ListPriorRecommendations(ctx context.Context, uid string) ([]domain.PriorRecommendation, error) {
	rows, err := QueryPriorRecommendationsWithClient(ctx, r.client, r.dataset, uid)
	if err != nil {
		return nil, err
	}

	priors := make([]domain.PriorRecommendation, 0, len(rows))
	for _, row := range rows {
		var useful *bool
		if row.Useful.Valid {
			b := row.Useful.Bool
			useful = &b
		}
		priors = append(priors, domain.PriorRecommendation{
			Title:       row.Title,
			Description: row.Description,
			Type:        domain.RecommendationType(row.Type),
			Useful:      useful,
			Date:        row.Date,
		})
	}
	return priors, nil
}

// MarkUnknownRecommendationsUseful delegates to the DML update with the
// shared client.
func (r *AdvisorRepository) MarkUnknownRecommendationsUseful(ctx context.Context, uid string) (int64, error) {
	return MarkUnknownRecommendationsUsefulWithClient(ctx, r.client, r.dataset, uid)
}

// InsertRecommendation persists one new recommendation with a generated id,
// a NULL useful flag and the given date.
func (r *AdvisorRepository) InsertRecommendation(ctx context.Context, uid string, rec *domain.Recommendation, date civil.Date) error {
	row := &RecommendationRow{
		RecommendationID: uuid.NewString(),
		UID:              uid,
		Title:            rec.Title,
		Description:      rec.Desc,
		Type:             string(rec.Type),
		Useful:           bigquery.NullBool{Valid: false},
		Date:             date,
	}
	return InsertRecommendationWithClient(ctx, r.client, r.dataset, row)
}

// InsertTransactions maps and inserts a batch of transactions. Used by the
// seed tool only.
func (r *AdvisorRepository) InsertTransactions(ctx context.Context, transactions []domain.Transaction) error {
	rows := make([]*TransactionRow, 0, len(transactions))
	for _, t := range transactions {
		rows = append(rows, &TransactionRow{
			UID:      t.UID,
			Category: t.Category,
			Kind:     string(t.Kind),
			Title:    t.Title,
			Account:  t.Account,
			Amount:   t.Amount.Rat(),
			Date:     t.Date,
		})
	}
	return InsertTransactionsWithClient(ctx, r.client, r.dataset, rows)
}

// amountFromRat converts a BigQuery NUMERIC value into a decimal amount.
// NUMERIC carries at most nine fractional digits.
func amountFromRat(rat *big.Rat) decimal.Decimal {
	if rat == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigRat(rat, 9)
}
