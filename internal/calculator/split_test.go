package calculator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitEvenly(t *testing.T) {
	tests := []struct {
		name        string
		amount      string
		debtors     []string
		places      int32
		wantErr     bool
		wantAmounts []string
	}{
		{
			name:        "divides exactly",
			amount:      "90",
			debtors:     []string{"Alice", "Bob", "Charlie"},
			places:      2,
			wantAmounts: []string{"30", "30", "30"},
		},
		{
			name:        "leftover cent goes to first debtor",
			amount:      "100",
			debtors:     []string{"Alice", "Bob", "Charlie"},
			places:      2,
			wantAmounts: []string{"33.34", "33.33", "33.33"},
		},
		{
			name:        "two leftover cents spread over first two debtors",
			amount:      "0.05",
			debtors:     []string{"Alice", "Bob", "Charlie"},
			places:      2,
			wantAmounts: []string{"0.02", "0.02", "0.01"},
		},
		{
			name:        "currency without minor units",
			amount:      "10000",
			debtors:     []string{"Alice", "Bob", "Charlie"},
			places:      0,
			wantAmounts: []string{"3334", "3333", "3333"},
		},
		{
			name:        "residue finer than places lands on first debtor",
			amount:      "10.005",
			debtors:     []string{"Alice", "Bob", "Charlie"},
			places:      2,
			wantAmounts: []string{"3.345", "3.33", "3.33"},
		},
		{
			name:        "single debtor takes everything",
			amount:      "42.5",
			debtors:     []string{"Alice"},
			places:      2,
			wantAmounts: []string{"42.5"},
		},
		{
			name:    "no debtors should error",
			amount:  "10",
			debtors: []string{},
			places:  2,
			wantErr: true,
		},
		{
			name:    "negative amount should error",
			amount:  "-10",
			debtors: []string{"Alice"},
			places:  2,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount := decimal.RequireFromString(tt.amount)
			splits, err := SplitEvenly(amount, tt.debtors, tt.places)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Len(t, splits, len(tt.wantAmounts))

			sum := decimal.Zero
			for i, s := range splits {
				assert.Equal(t, tt.debtors[i], s.DebtorID)
				assert.True(t, decimal.RequireFromString(tt.wantAmounts[i]).Equal(s.Amount),
					"split %d = %s, want %s", i, s.Amount, tt.wantAmounts[i])
				sum = sum.Add(s.Amount)
			}
			assert.True(t, amount.Equal(sum), "parts sum to %s, want %s", sum, amount)
		})
	}
}
