package bigquery

import (
	"context"
	"fmt"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"
)

// QueryPriorRecommendationsWithClient returns one user's recommendations
// whose useful flag is true or still NULL, oldest first. Rejected ones
// (useful = false) are filtered out so the composer does not repeat ideas
// the user disliked.
func QueryPriorRecommendationsWithClient(ctx context.Context, client *bigquery.Client, dataset, uid string) ([]*RecommendationRow, error) {
	q := client.Query(fmt.Sprintf(`
		SELECT recommendation_id, uid, title, description, type, useful, date
		FROM %s.%s
		WHERE uid = @uid
		  AND (useful IS NULL OR useful = TRUE)
		ORDER BY date
	`, dataset, recommendationsTable))
	q.Parameters = []bigquery.QueryParameter{
		{Name: "uid", Value: uid},
	}

	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("QueryPriorRecommendations: query read: %w", err)
	}

	var rows []*RecommendationRow
	for {
		var r RecommendationRow
		err := it.Next(&r)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("QueryPriorRecommendations: iter next: %w", err)
		}
		rows = append(rows, &r)
	}

	return rows, nil
}

// MarkUnknownRecommendationsUsefulWithClient flips all of one user's NULL
// useful flags to TRUE and returns the number of rows updated. A new
// recommendation supersedes the old unevaluated ones, which are then
// treated as acted upon.
func MarkUnknownRecommendationsUsefulWithClient(ctx context.Context, client *bigquery.Client, dataset, uid string) (int64, error) {
	q := client.Query(fmt.Sprintf(`
		UPDATE %s.%s
		SET useful = TRUE
		WHERE uid = @uid
		  AND useful IS NULL
	`, dataset, recommendationsTable))
	q.Parameters = []bigquery.QueryParameter{
		{Name: "uid", Value: uid},
	}

	job, err := q.Run(ctx)
	if err != nil {
		return 0, fmt.Errorf("MarkUnknownRecommendationsUseful: running update query: %w", err)
	}

	status, err := job.Wait(ctx)
	if err != nil {
		return 0, fmt.Errorf("MarkUnknownRecommendationsUseful: waiting for job: %w", err)
	}
	if err := status.Err(); err != nil {
		return 0, fmt.Errorf("MarkUnknownRecommendationsUseful: job error: %w", err)
	}

	if stats, ok := status.Statistics.Details.(*bigquery.QueryStatistics); ok {
		return stats.NumDMLAffectedRows, nil
	}
	return 0, nil
}

// InsertRecommendationWithClient inserts a single RecommendationRow.
// Uses DML INSERT to avoid streaming buffer issues with later UPDATEs of
// the useful flag.
func InsertRecommendationWithClient(ctx context.Context, client *bigquery.Client, dataset string, row *RecommendationRow) error {
	q := client.Query(fmt.Sprintf(`
		INSERT %s.%s (
			recommendation_id, uid, title, description, type, useful, date
		)
		VALUES (
			@recommendation_id, @uid, @title, @description, @type, @useful, @date
		)
	`, dataset, recommendationsTable))

	q.Parameters = []bigquery.QueryParameter{
		{Name: "recommendation_id", Value: row.RecommendationID},
		{Name: "uid", Value: row.UID},
		{Name: "title", Value: row.Title},
		{Name: "description", Value: row.Description},
		{Name: "type", Value: row.Type},
		{Name: "useful", Value: row.Useful},
		{Name: "date", Value: row.Date},
	}

	job, err := q.Run(ctx)
	if err != nil {
		return fmt.Errorf("InsertRecommendation: running insert query: %w", err)
	}

	status, err := job.Wait(ctx)
	if err != nil {
		return fmt.Errorf("InsertRecommendation: waiting for job: %w", err)
	}
	if err := status.Err(); err != nil {
		return fmt.Errorf("InsertRecommendation: job error: %w", err)
	}

	return nil
}
