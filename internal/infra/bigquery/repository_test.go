package bigquery

import (
	"math/big"
	"testing"
)

func TestAmountFromRat(t *testing.T) {
	tests := []struct {
		name string
		rat  *big.Rat
		want string
	}{
		{"nil", nil, "0"},
		{"integer", big.NewRat(1500, 1), "1500"},
		{"cents", big.NewRat(1999, 100), "19.99"},
		{"negative", big.NewRat(-50, 1), "-50"},
		{"nine fractional digits", big.NewRat(1, 1000000000), "0.000000001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := amountFromRat(tt.rat).String(); got != tt.want {
				t.Errorf("amountFromRat(%v) = %s, want %s", tt.rat, got, tt.want)
			}
		})
	}
}
