package bigquery

import (
	"math/big"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/civil"
)

const transactionsTable = "transactions"

// TransactionRow mirrors the transactions table schema. Rows are read-only
// to the advisor; only the seed tool ever inserts them.
type TransactionRow struct {
	UID      string     `bigquery:"uid"`      // REQUIRED
	Category string     `bigquery:"category"` // REQUIRED
	Kind     string     `bigquery:"type"`     // REQUIRED: "income" or "expense"
	Title    string     `bigquery:"title"`    // REQUIRED
	Account  string     `bigquery:"account"`  // REQUIRED
	Amount   *big.Rat   `bigquery:"amount"`   // REQUIRED NUMERIC
	Date     civil.Date `bigquery:"date"`     // REQUIRED DATE

	CreatedTS bigquery.NullTimestamp `bigquery:"created_ts"` // NULLABLE
}
