// Package calculator computes wallet balances from expenses and splits.
//
// The engine is a pure function of its inputs: it keeps no state between
// calls, never performs I/O and is safe for concurrent use. Callers load
// members and expenses from storage and hand them over as plain values.
package calculator

import (
	"github.com/shopspring/decimal"
)

// Split assigns part of an expense to a debtor.
type Split struct {
	DebtorID string
	Amount   decimal.Decimal
}

// Expense is an EXPENSE-type transaction reduced to what balances need.
type Expense struct {
	PayerID string
	Total   decimal.Decimal
	Splits  []Split
}

// SettlementForBalance is a recorded payment from one member to another.
type SettlementForBalance struct {
	FromUserID string // Who paid (debtor settling up)
	ToUserID   string // Who received (creditor being paid)
	Amount     decimal.Decimal
}

// NetBalance is one member's aggregate position in a wallet.
type NetBalance struct {
	MemberID string
	Amount   decimal.Decimal // Positive = owed money, Negative = owes money
}

// NetBalances holds one entry per member, in membership order.
type NetBalances []NetBalance

// Map returns the balances keyed by member ID.
func (n NetBalances) Map() map[string]decimal.Decimal {
	m := make(map[string]decimal.Decimal, len(n))
	for _, b := range n {
		m[b.MemberID] = b.Amount
	}
	return m
}

// Sum adds up every member's net.
func (n NetBalances) Sum() decimal.Decimal {
	sum := decimal.Zero
	for _, b := range n {
		sum = sum.Add(b.Amount)
	}
	return sum
}

// Transfer is a suggested payment that moves a debtor towards zero.
type Transfer struct {
	From   string // Person who owes
	To     string // Person who is owed
	Amount decimal.Decimal
}

// Policy switches the two accounting rules that are kept from observed
// behavior of the product rather than from a written requirement.
type Policy struct {
	// IgnoreUnknownMembers drops payers and debtors that are not current
	// wallet members. When false they get their own entry, appended after
	// the members in the order they are first seen.
	IgnoreUnknownMembers bool

	// CreditPayerFullAmount credits the payer with the expense total. When
	// false the payer is credited with the sum of the expense's splits,
	// which keeps the wallet's nets summing to zero.
	CreditPayerFullAmount bool

	// Epsilon is the remaining magnitude SuggestTransfers treats as settled.
	Epsilon decimal.Decimal
}

// DefaultPolicy returns the rules the application has always used.
func DefaultPolicy() Policy {
	return Policy{
		IgnoreUnknownMembers:  true,
		CreditPayerFullAmount: true,
		Epsilon:               decimal.Zero,
	}
}

// Engine computes net balances and settlement suggestions under a Policy.
type Engine struct {
	policy Policy
}

// NewEngine creates an Engine with the given policy.
func NewEngine(policy Policy) *Engine {
	if policy.Epsilon.IsNegative() {
		policy.Epsilon = policy.Epsilon.Neg()
	}
	return &Engine{policy: policy}
}

// Policy returns the engine's policy.
func (e *Engine) Policy() Policy {
	return e.policy
}

// ledger accumulates amounts per member while preserving insertion order.
type ledger struct {
	index         map[string]int
	entries       NetBalances
	allowUnknowns bool
}

func newLedger(members []string, allowUnknowns bool) *ledger {
	l := &ledger{
		index:         make(map[string]int, len(members)),
		entries:       make(NetBalances, 0, len(members)),
		allowUnknowns: allowUnknowns,
	}
	for _, m := range members {
		if _, seen := l.index[m]; seen {
			continue
		}
		l.index[m] = len(l.entries)
		l.entries = append(l.entries, NetBalance{MemberID: m, Amount: decimal.Zero})
	}
	return l
}

func (l *ledger) add(memberID string, amount decimal.Decimal) {
	i, ok := l.index[memberID]
	if !ok {
		if !l.allowUnknowns {
			return
		}
		i = len(l.entries)
		l.index[memberID] = i
		l.entries = append(l.entries, NetBalance{MemberID: memberID, Amount: decimal.Zero})
	}
	l.entries[i].Amount = l.entries[i].Amount.Add(amount)
}

// ComputeNetBalances nets every expense against the wallet's members.
//
// Algorithm:
//   - every member starts at zero
//   - the payer of each expense is credited (the full total by default)
//   - each split debits its debtor by the split amount
//
// Split amounts are not checked against the total. An expense whose splits
// over- or under-cover the total leaves the wallet's nets off zero by the
// difference.
func (e *Engine) ComputeNetBalances(members []string, expenses []Expense) NetBalances {
	l := newLedger(members, !e.policy.IgnoreUnknownMembers)

	for _, exp := range expenses {
		credit := exp.Total
		if !e.policy.CreditPayerFullAmount {
			credit = decimal.Zero
			for _, s := range exp.Splits {
				credit = credit.Add(s.Amount)
			}
		}
		l.add(exp.PayerID, credit)

		for _, s := range exp.Splits {
			l.add(s.DebtorID, s.Amount.Neg())
		}
	}

	return l.entries
}

// ApplySettlements returns a copy of net with recorded payments applied: the
// payer's balance improves and the receiver's decreases. Unknown members are
// handled as in ComputeNetBalances.
func (e *Engine) ApplySettlements(net NetBalances, settlements []SettlementForBalance) NetBalances {
	l := &ledger{
		index:         make(map[string]int, len(net)),
		entries:       make(NetBalances, len(net)),
		allowUnknowns: !e.policy.IgnoreUnknownMembers,
	}
	copy(l.entries, net)
	for i, b := range l.entries {
		l.index[b.MemberID] = i
	}

	for _, s := range settlements {
		l.add(s.FromUserID, s.Amount)
		l.add(s.ToUserID, s.Amount.Neg())
	}

	return l.entries
}

// position is a creditor's or debtor's outstanding magnitude.
type position struct {
	memberID  string
	remaining decimal.Decimal
}

// SuggestTransfers pairs debtors with creditors, largest first, until one
// side is exhausted. Equal magnitudes resolve to the member that comes first
// in net, so identical input always yields identical transfers.
func (e *Engine) SuggestTransfers(net NetBalances) []Transfer {
	var creditors, debtors []*position
	for _, b := range net {
		switch {
		case b.Amount.GreaterThan(e.policy.Epsilon):
			creditors = append(creditors, &position{memberID: b.MemberID, remaining: b.Amount})
		case b.Amount.Neg().GreaterThan(e.policy.Epsilon):
			debtors = append(debtors, &position{memberID: b.MemberID, remaining: b.Amount.Neg()})
		}
	}

	var transfers []Transfer
	for {
		debtor := e.largest(debtors)
		creditor := e.largest(creditors)
		if debtor == nil || creditor == nil {
			break
		}

		amount := decimal.Min(debtor.remaining, creditor.remaining)
		transfers = append(transfers, Transfer{
			From:   debtor.memberID,
			To:     creditor.memberID,
			Amount: amount,
		})

		debtor.remaining = debtor.remaining.Sub(amount)
		creditor.remaining = creditor.remaining.Sub(amount)
	}

	return transfers
}

// largest returns the first position with the greatest remaining magnitude
// above epsilon, or nil when every position is settled.
func (e *Engine) largest(positions []*position) *position {
	var best *position
	for _, p := range positions {
		if !p.remaining.GreaterThan(e.policy.Epsilon) {
			continue
		}
		if best == nil || p.remaining.GreaterThan(best.remaining) {
			best = p
		}
	}
	return best
}
