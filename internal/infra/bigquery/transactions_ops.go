package bigquery

import (
	"context"
	"fmt"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/civil"
	"google.golang.org/api/iterator"
)

// ListUserIDsWithClient returns the distinct user ids appearing in the
// transactions table, using the provided BigQuery client.
func ListUserIDsWithClient(ctx context.Context, client *bigquery.Client, dataset string) ([]string, error) {
	q := client.Query(fmt.Sprintf(`
		SELECT DISTINCT uid
		FROM %s.%s
		WHERE uid IS NOT NULL AND uid != ''
		ORDER BY uid
	`, dataset, transactionsTable))

	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("ListUserIDs: query read: %w", err)
	}

	var uids []string
	for {
		var row struct {
			UID string `bigquery:"uid"`
		}
		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ListUserIDs: iter next: %w", err)
		}
		uids = append(uids, row.UID)
	}

	return uids, nil
}

// QueryTransactionsSinceWithClient returns one user's transactions dated on
// or after the given calendar date, oldest first.
func QueryTransactionsSinceWithClient(ctx context.Context, client *bigquery.Client, dataset, uid string, since civil.Date) ([]*TransactionRow, error) {
	q := client.Query(fmt.Sprintf(`
		SELECT uid, category, type, title, account, amount, date, created_ts
		FROM %s.%s
		WHERE uid = @uid
		  AND date >= @since
		ORDER BY date, created_ts
	`, dataset, transactionsTable))
	q.Parameters = []bigquery.QueryParameter{
		{Name: "uid", Value: uid},
		{Name: "since", Value: since},
	}

	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("QueryTransactionsSince: query read: %w", err)
	}

	var rows []*TransactionRow
	for {
		var r TransactionRow
		err := it.Next(&r)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("QueryTransactionsSince: iter next: %w", err)
		}
		rows = append(rows, &r)
	}

	return rows, nil
}

// InsertTransactionsWithClient streams a batch of TransactionRow into the
// transactions table. Used by the seed tool only.
func InsertTransactionsWithClient(ctx context.Context, client *bigquery.Client, dataset string, rows []*TransactionRow) error {
	if len(rows) == 0 {
		return nil
	}

	inserter := client.Dataset(dataset).Table(transactionsTable).Inserter()
	if err := inserter.Put(ctx, rows); err != nil {
		return fmt.Errorf("InsertTransactions: inserting rows: %w", err)
	}

	return nil
}
