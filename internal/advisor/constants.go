package advisor

import "github.com/shopspring/decimal"

const (
	// LookbackDays is the transaction window fed into each run.
	LookbackDays = 7

	// EmptyDigest is the fixed sentinel the summarizer returns for users
	// with no movements in the window. The composed prompt then steers the
	// model towards a no_transactions recommendation.
	EmptyDigest = "No financial movements to analyze."
)

// largeAmountThreshold marks individual movements worth calling out in the
// digest. Amounts must strictly exceed it.
var largeAmountThreshold = decimal.NewFromInt(1000)
