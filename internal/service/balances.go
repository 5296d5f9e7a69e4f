package service

import (
	"context"
	"fmt"

	"github.com/mmynk/walletwise/internal/calculator"
	"github.com/mmynk/walletwise/internal/models"
)

// BalanceSource is the storage a balance computation reads from.
type BalanceSource interface {
	ListMemberIDs(ctx context.Context, walletID string) ([]string, error)
	ListExpensesByWallet(ctx context.Context, walletID string) ([]*models.Transaction, error)
	ListSettlementsByWallet(ctx context.Context, walletID string) ([]*models.Settlement, error)
}

// UserLookup resolves user accounts by ID.
type UserLookup interface {
	GetUsersByIDs(ctx context.Context, ids []string) (map[string]*models.User, error)
}

// DisplayNames maps every member of net to the name shown for them. Members
// whose account no longer exists are shown by ID.
func DisplayNames(ctx context.Context, users UserLookup, net calculator.NetBalances) (map[string]string, error) {
	ids := make([]string, len(net))
	for i, b := range net {
		ids[i] = b.MemberID
	}
	found, err := users.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load members: %w", err)
	}

	names := make(map[string]string, len(ids))
	for _, id := range ids {
		names[id] = id
		if u, ok := found[id]; ok {
			names[id] = u.Name()
		}
	}
	return names, nil
}

// Balances loads a wallet's members and expenses and nets them with engine.
// When applySettlements is set, recorded settlements are netted in too.
func Balances(ctx context.Context, src BalanceSource, engine *calculator.Engine, walletID string, applySettlements bool) (calculator.NetBalances, error) {
	members, err := src.ListMemberIDs(ctx, walletID)
	if err != nil {
		return nil, fmt.Errorf("failed to load members: %w", err)
	}

	txns, err := src.ListExpensesByWallet(ctx, walletID)
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}

	expenses := make([]calculator.Expense, len(txns))
	for i, t := range txns {
		splits := make([]calculator.Split, len(t.Splits))
		for j, sp := range t.Splits {
			splits[j] = calculator.Split{DebtorID: sp.OwedBy, Amount: sp.Amount}
		}
		expenses[i] = calculator.Expense{PayerID: t.PaidBy, Total: t.Amount, Splits: splits}
	}

	net := engine.ComputeNetBalances(members, expenses)
	if !applySettlements {
		return net, nil
	}

	recorded, err := src.ListSettlementsByWallet(ctx, walletID)
	if err != nil {
		return nil, fmt.Errorf("failed to load settlements: %w", err)
	}
	settlements := make([]calculator.SettlementForBalance, len(recorded))
	for i, st := range recorded {
		settlements[i] = calculator.SettlementForBalance{
			FromUserID: st.FromUserID,
			ToUserID:   st.ToUserID,
			Amount:     st.Amount,
		}
	}
	return engine.ApplySettlements(net, settlements), nil
}
