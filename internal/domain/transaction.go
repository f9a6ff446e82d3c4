package domain

import (
	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// TransactionKind distinguishes money coming in from money going out.
type TransactionKind string

const (
	KindIncome  TransactionKind = "income"
	KindExpense TransactionKind = "expense"
)

// Transaction is one financial movement belonging to a single user.
// Transactions are owned by the store and read-only to the advisor run;
// the repository maps them from the transactions table schema.
type Transaction struct {
	UID      string
	Category string
	Kind     TransactionKind
	Title    string
	Account  string
	Amount   decimal.Decimal
	Date     civil.Date
}
