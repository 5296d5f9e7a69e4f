package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// SplitEvenly divides amount equally among debtors, rounded down to places
// fraction digits. Minor units left over by the rounding go one each to the
// first debtors, so the parts always add up to amount exactly.
func SplitEvenly(amount decimal.Decimal, debtors []string, places int32) ([]Split, error) {
	if len(debtors) == 0 {
		return nil, fmt.Errorf("must have at least one debtor")
	}
	if amount.IsNegative() {
		return nil, fmt.Errorf("amount cannot be negative")
	}
	if places < 0 {
		places = 0
	}

	count := decimal.NewFromInt(int64(len(debtors)))
	share := amount.Div(count).RoundDown(places)
	unit := decimal.New(1, -places)

	// Whole minor units still to hand out after the rounded shares.
	leftover := amount.Sub(share.Mul(count)).Div(unit).IntPart()

	splits := make([]Split, len(debtors))
	sum := decimal.Zero
	for i, debtor := range debtors {
		part := share
		if int64(i) < leftover {
			part = part.Add(unit)
		}
		splits[i] = Split{DebtorID: debtor, Amount: part}
		sum = sum.Add(part)
	}

	// An amount finer than places leaves a sub-unit residue.
	if residue := amount.Sub(sum); !residue.IsZero() {
		splits[0].Amount = splits[0].Amount.Add(residue)
	}

	return splits, nil
}
