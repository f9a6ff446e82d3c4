package advisor

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/rs/zerolog"

	"github.com/dvloznov/finance-advisor/internal/domain"
	"github.com/dvloznov/finance-advisor/internal/logger"
)

// Outcome classifies the result of processing one user.
type Outcome int

const (
	OutcomeProcessed Outcome = iota
	OutcomeProcessedNoMovements
	OutcomeFailed
)

// UserResult is the explicit per-user result the runner accumulates instead
// of relying on catch-and-continue control flow.
type UserResult struct {
	UID     string
	Outcome Outcome
	Err     error
}

// Summary aggregates one run over all users.
type Summary struct {
	Users       int // distinct users seen
	Processed   int // recommendation generated and persisted
	NoMovements int // processed, but with an empty transaction window
	Errors      int // users skipped because of a failure
}

// Runner executes one sequential advisor pass: for every known user, fetch
// the recent window and prior recommendations, compose a prompt, call the
// generator, interpret the reply and persist the result. A single user's
// failure never aborts the run.
type Runner struct {
	Store     Store
	Generator Generator

	// Archive receives each prompt/response exchange when set. Optional.
	Archive ExchangeArchiver

	// DryRun skips all store writes.
	DryRun bool

	// Now is the clock used for the lookback window and the persisted
	// date. Defaults to time.Now; tests pin it.
	Now func() time.Time
}

func (r *Runner) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

// Run processes every user the store knows about and returns the aggregate
// summary. It only fails outright when the user list itself cannot be
// fetched; everything past that point is per-user and non-fatal.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	log := logger.FromContext(ctx)

	uids, err := r.Store.ListUserIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("Run: listing user ids: %w", err)
	}
	log.Info().Int("users", len(uids)).Msg("Starting advisor run")

	summary := &Summary{Users: len(uids)}
	for _, uid := range uids {
		res := r.RunUser(ctx, uid)
		switch res.Outcome {
		case OutcomeProcessed:
			summary.Processed++
		case OutcomeProcessedNoMovements:
			summary.Processed++
			summary.NoMovements++
		case OutcomeFailed:
			summary.Errors++
			log.Error().Err(res.Err).Str("uid", uid).Msg("User skipped")
		}
	}

	log.Info().
		Int("users", summary.Users).
		Int("processed", summary.Processed).
		Int("no_movements", summary.NoMovements).
		Int("errors", summary.Errors).
		Msg("Advisor run finished")

	return summary, nil
}

// RunUser processes a single user end to end and reports the outcome.
func (r *Runner) RunUser(ctx context.Context, uid string) UserResult {
	log := logger.FromContext(ctx).With().Str("uid", uid).Logger()
	today := civil.DateOf(r.now())
	since := today.AddDays(-LookbackDays)

	transactions, err := r.Store.ListTransactionsSince(ctx, uid, since)
	if err != nil {
		return failed(uid, fmt.Errorf("fetching transactions: %w", err))
	}
	priors, err := r.Store.ListPriorRecommendations(ctx, uid)
	if err != nil {
		return failed(uid, fmt.Errorf("fetching prior recommendations: %w", err))
	}
	log.Info().Int("transactions", len(transactions)).Int("priors", len(priors)).Msg("User data fetched")

	digest := Summarize(transactions)
	prompt := BuildPrompt(transactions, priors, digest)

	raw, err := r.Generator.Generate(ctx, prompt)
	if err != nil {
		return failed(uid, fmt.Errorf("generating recommendation: %w", err))
	}

	if r.Archive != nil {
		if err := r.Archive.ArchiveExchange(ctx, uid, prompt, raw); err != nil {
			log.Warn().Err(err).Msg("Archiving exchange failed")
		}
	}

	rec, err := ParseRecommendation(raw)
	if err != nil {
		log.Error().Err(err).Str("raw_output", raw).Msg("Model output rejected")
		return failed(uid, fmt.Errorf("interpreting model output: %w", err))
	}
	log.Info().Str("title", rec.Title).Str("type", string(rec.Type)).Msg("Recommendation generated")

	if r.DryRun {
		log.Info().Msg("Dry run, skipping store writes")
		return success(uid, transactions)
	}

	// The two writes are independent: a failure flipping the old unknown
	// flags must not block inserting the new recommendation.
	if n, err := r.Store.MarkUnknownRecommendationsUseful(ctx, uid); err != nil {
		log.Warn().Err(err).Msg("Updating prior unknown recommendations failed")
	} else if n > 0 {
		log.Info().Int64("updated", n).Msg("Prior unknown recommendations marked useful")
	}

	rec.Title = truncateField(log, "title", rec.Title, domain.MaxTitleLen)
	rec.Desc = truncateField(log, "desc", rec.Desc, domain.MaxDescLen)

	if err := r.Store.InsertRecommendation(ctx, uid, rec, today); err != nil {
		return failed(uid, fmt.Errorf("inserting recommendation: %w", err))
	}
	log.Info().Msg("Recommendation saved")

	return success(uid, transactions)
}

// truncateField cuts a field down to its storage limit, logging a warning
// whenever content is lost. Truncation counts characters, not bytes.
func truncateField(log zerolog.Logger, field, value string, max int) string {
	runes := []rune(value)
	if len(runes) <= max {
		return value
	}
	log.Warn().
		Str("field", field).
		Int("length", len(runes)).
		Int("max", max).
		Msg("Field truncated before persistence")
	return string(runes[:max])
}

func success(uid string, transactions []domain.Transaction) UserResult {
	if len(transactions) == 0 {
		return UserResult{UID: uid, Outcome: OutcomeProcessedNoMovements}
	}
	return UserResult{UID: uid, Outcome: OutcomeProcessed}
}

func failed(uid string, err error) UserResult {
	return UserResult{UID: uid, Outcome: OutcomeFailed, Err: err}
}
