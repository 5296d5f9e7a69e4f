package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/walletwise/internal/calculator"
	"github.com/mmynk/walletwise/internal/models"
	"github.com/mmynk/walletwise/internal/storage"
	"github.com/mmynk/walletwise/pkg/api"
	"github.com/mmynk/walletwise/pkg/api/apiconnect"
)

var _ apiconnect.TransactionServiceHandler = (*TransactionService)(nil)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// TransactionService implements the Connect TransactionService.
type TransactionService struct {
	store  storage.Store
	logger *slog.Logger
}

// NewTransactionService creates a TransactionService.
func NewTransactionService(store storage.Store, logger *slog.Logger) *TransactionService {
	return &TransactionService{store: store, logger: logger}
}

// CreateTransaction records an income or expense in a wallet the caller
// belongs to. Expenses may be split among members, either with explicit
// amounts or evenly.
func (s *TransactionService) CreateTransaction(ctx context.Context, req *connect.Request[api.CreateTransactionRequest]) (*connect.Response[api.CreateTransactionResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	msg := req.Msg

	s.logger.Info("CreateTransaction request received",
		"wallet_id", msg.WalletID,
		"user_id", userID,
		"splits_count", len(msg.Splits),
		"split_evenly_count", len(msg.SplitEvenlyAmong),
	)

	if _, err := membership(ctx, s.store, msg.WalletID, userID); err != nil {
		return nil, err
	}
	wallet, err := s.store.GetWallet(ctx, msg.WalletID)
	if err != nil {
		return nil, toConnectError(err)
	}
	if !msg.Amount.IsPositive() {
		return nil, invalidArgument("amount must be greater than zero")
	}
	if err := checkPrecision("amount", msg.Amount, wallet.Currency); err != nil {
		return nil, err
	}
	if msg.CategoryID == "" {
		return nil, invalidArgument("category_id is required")
	}

	category, err := s.store.GetCategory(ctx, msg.CategoryID)
	if err != nil {
		return nil, toConnectError(err)
	}
	// Private categories stay invisible to everyone but their creator.
	if !category.IsSystem && category.CreatedBy != userID {
		return nil, connect.NewError(connect.CodeNotFound, fmt.Errorf("category %s: %w", msg.CategoryID, storage.ErrNotFound))
	}
	if msg.Type != "" && !strings.EqualFold(msg.Type, string(category.Type)) {
		return nil, invalidArgument("type %s does not match category type %s", msg.Type, category.Type)
	}

	payer := msg.PaidBy
	if payer == "" {
		payer = userID
	}

	splits, err := buildSplits(msg, wallet.Currency)
	if err != nil {
		return nil, err
	}
	if len(splits) > 0 && category.Type != models.CategoryTypeExpense {
		return nil, invalidArgument("only expenses can be split")
	}

	participants := []string{payer}
	for _, sp := range splits {
		participants = append(participants, sp.OwedBy)
	}
	if err := requireMembers(ctx, s.store, msg.WalletID, participants...); err != nil {
		return nil, err
	}

	txn := &models.Transaction{
		WalletID:    msg.WalletID,
		CategoryID:  category.ID,
		Type:        category.Type,
		Amount:      msg.Amount,
		Date:        protoToUnix(msg.Date, time.Now().Unix()),
		Description: strings.TrimSpace(msg.Description),
		PaidBy:      payer,
		CreatedBy:   userID,
		Splits:      splits,
	}
	if err := s.store.CreateTransaction(ctx, txn); err != nil {
		s.logger.Error("CreateTransaction failed", "wallet_id", msg.WalletID, "error", err)
		return nil, toConnectError(err)
	}

	s.logger.Info("Transaction created", "transaction_id", txn.ID, "wallet_id", txn.WalletID, "type", txn.Type)
	return connect.NewResponse(&api.CreateTransactionResponse{Transaction: transactionToAPI(txn)}), nil
}

// buildSplits turns the request's explicit or even split into model splits.
// Explicit split amounts are not checked against the total.
func buildSplits(msg *api.CreateTransactionRequest, currency string) ([]models.Split, error) {
	if len(msg.Splits) > 0 && len(msg.SplitEvenlyAmong) > 0 {
		return nil, invalidArgument("give either splits or split_evenly_among, not both")
	}

	if len(msg.SplitEvenlyAmong) > 0 {
		even, err := calculator.SplitEvenly(msg.Amount, msg.SplitEvenlyAmong, models.CurrencyPlaces(currency))
		if err != nil {
			return nil, invalidArgument("%v", err)
		}
		splits := make([]models.Split, len(even))
		for i, sp := range even {
			splits[i] = models.Split{OwedBy: sp.DebtorID, Amount: sp.Amount}
		}
		return splits, nil
	}

	splits := make([]models.Split, 0, len(msg.Splits))
	for i, sp := range msg.Splits {
		if sp == nil || sp.UserID == "" {
			return nil, invalidArgument("split %d: user_id is required", i)
		}
		if sp.Amount.IsNegative() {
			return nil, invalidArgument("split %d: amount cannot be negative", i)
		}
		if err := checkPrecision(fmt.Sprintf("split %d: amount", i), sp.Amount, currency); err != nil {
			return nil, err
		}
		splits = append(splits, models.Split{OwedBy: sp.UserID, Amount: sp.Amount})
	}
	return splits, nil
}

// ListTransactions lists a wallet's transactions, newest first.
func (s *TransactionService) ListTransactions(ctx context.Context, req *connect.Request[api.ListTransactionsRequest]) (*connect.Response[api.ListTransactionsResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := membership(ctx, s.store, req.Msg.WalletID, userID); err != nil {
		return nil, err
	}

	limit := int(req.Msg.Limit)
	switch {
	case limit <= 0:
		limit = defaultPageSize
	case limit > maxPageSize:
		limit = maxPageSize
	}
	if req.Msg.Offset < 0 {
		return nil, invalidArgument("offset cannot be negative")
	}

	txns, err := s.store.ListTransactionsByWallet(ctx, req.Msg.WalletID, limit, int(req.Msg.Offset))
	if err != nil {
		s.logger.Error("ListTransactions failed", "wallet_id", req.Msg.WalletID, "error", err)
		return nil, toConnectError(err)
	}

	out := make([]*api.Transaction, len(txns))
	for i, t := range txns {
		out[i] = transactionToAPI(t)
	}

	s.logger.Info("ListTransactions successful", "wallet_id", req.Msg.WalletID, "count", len(out))
	return connect.NewResponse(&api.ListTransactionsResponse{Transactions: out}), nil
}

// DeleteTransaction deletes a transaction. Only its creator or a wallet
// owner may do so.
func (s *TransactionService) DeleteTransaction(ctx context.Context, req *connect.Request[api.DeleteTransactionRequest]) (*connect.Response[api.DeleteTransactionResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if req.Msg.TransactionID == "" {
		return nil, invalidArgument("transaction_id is required")
	}

	txn, err := s.store.GetTransaction(ctx, req.Msg.TransactionID)
	if err != nil {
		return nil, toConnectError(err)
	}
	member, err := membership(ctx, s.store, txn.WalletID, userID)
	if err != nil {
		return nil, err
	}
	if !canModify(member, txn.CreatedBy) {
		return nil, permissionDenied("only the creator or a wallet owner can delete a transaction")
	}

	if err := s.store.DeleteTransaction(ctx, txn.ID); err != nil {
		s.logger.Error("DeleteTransaction failed", "transaction_id", txn.ID, "error", err)
		return nil, toConnectError(err)
	}

	s.logger.Info("Transaction deleted", "transaction_id", txn.ID, "wallet_id", txn.WalletID, "user_id", userID)
	return connect.NewResponse(&api.DeleteTransactionResponse{}), nil
}
