package advisor

import (
	"context"

	"cloud.google.com/go/civil"

	"github.com/dvloznov/finance-advisor/internal/domain"
)

// Store is the managed-database surface the run needs. The BigQuery
// repository in internal/infra/bigquery is the concrete implementation;
// tests substitute mocks.
type Store interface {
	// ListUserIDs returns the distinct user identifiers known to the store.
	ListUserIDs(ctx context.Context) ([]string, error)

	// ListTransactionsSince returns the user's movements dated on or after
	// the given calendar date.
	ListTransactionsSince(ctx context.Context, uid string, since civil.Date) ([]domain.Transaction, error)

	// ListPriorRecommendations returns the user's recommendations whose
	// useful flag is true or still unknown.
	ListPriorRecommendations(ctx context.Context, uid string) ([]domain.PriorRecommendation, error)

	// MarkUnknownRecommendationsUseful flips all of the user's unknown
	// useful flags to true and reports how many rows changed.
	MarkUnknownRecommendationsUseful(ctx context.Context, uid string) (int64, error)

	// InsertRecommendation persists one new recommendation with an unknown
	// useful flag and the given date.
	InsertRecommendation(ctx context.Context, uid string, rec *domain.Recommendation, date civil.Date) error
}

// Generator is the generative backend: prompt text in, raw reply text out.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ExchangeArchiver stores a prompt/response exchange for offline diagnosis.
// Archiving is best effort; failures never affect the run.
type ExchangeArchiver interface {
	ArchiveExchange(ctx context.Context, uid, prompt, response string) error
}
