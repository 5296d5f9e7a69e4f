package sqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/mmynk/walletwise/internal/models"
)

const transactionColumns = `id, wallet_id, category_id, type, amount, occurred_at, description, paid_by, created_by, created_at`

// CreateTransaction persists a transaction together with its splits.
func (s *SQLStore) CreateTransaction(ctx context.Context, txn *models.Transaction) error {
	if txn.ID == "" {
		txn.ID = uuid.New().String()
	}
	if txn.CreatedAt == 0 {
		txn.CreatedAt = time.Now().Unix()
	}
	if txn.Date == 0 {
		txn.Date = txn.CreatedAt
	}

	return s.inTx(ctx, func(tx *sqlx.Tx) error {
		_, err := tx.NamedExecContext(ctx, `
			INSERT INTO transactions (`+transactionColumns+`)
			VALUES (:id, :wallet_id, :category_id, :type, :amount, :occurred_at, :description, :paid_by, :created_by, :created_at)`,
			txn,
		)
		if err != nil {
			return fmt.Errorf("failed to insert transaction: %w", err)
		}

		for i := range txn.Splits {
			split := &txn.Splits[i]
			if split.ID == "" {
				split.ID = uuid.New().String()
			}
			split.TransactionID = txn.ID

			_, err = tx.ExecContext(ctx, tx.Rebind(`
				INSERT INTO splits (id, transaction_id, position, owed_by, amount)
				VALUES (?, ?, ?, ?, ?)`),
				split.ID, txn.ID, i, split.OwedBy, split.Amount,
			)
			if err != nil {
				return fmt.Errorf("failed to insert split: %w", err)
			}
		}
		return nil
	})
}

// GetTransaction retrieves a transaction by ID, including its splits.
func (s *SQLStore) GetTransaction(ctx context.Context, transactionID string) (*models.Transaction, error) {
	txn := &models.Transaction{}
	err := s.db.GetContext(ctx, txn,
		s.db.Rebind(`SELECT `+transactionColumns+` FROM transactions WHERE id = ?`),
		transactionID,
	)
	if err != nil {
		return nil, notFound(err, "transaction", transactionID)
	}

	if err := s.attachSplits(ctx, []*models.Transaction{txn}); err != nil {
		return nil, err
	}
	return txn, nil
}

// ListTransactionsByWallet retrieves a page of a wallet's transactions, newest first.
func (s *SQLStore) ListTransactionsByWallet(ctx context.Context, walletID string, limit, offset int) ([]*models.Transaction, error) {
	var txns []*models.Transaction
	err := s.db.SelectContext(ctx, &txns, s.db.Rebind(`
		SELECT `+transactionColumns+` FROM transactions
		WHERE wallet_id = ?
		ORDER BY occurred_at DESC, created_at DESC, id
		LIMIT ? OFFSET ?`),
		walletID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions by wallet: %w", err)
	}

	if err := s.attachSplits(ctx, txns); err != nil {
		return nil, err
	}
	return txns, nil
}

// ListExpensesByWallet retrieves every EXPENSE transaction of a wallet, oldest first.
func (s *SQLStore) ListExpensesByWallet(ctx context.Context, walletID string) ([]*models.Transaction, error) {
	var txns []*models.Transaction
	err := s.db.SelectContext(ctx, &txns, s.db.Rebind(`
		SELECT `+transactionColumns+` FROM transactions
		WHERE wallet_id = ? AND type = ?
		ORDER BY occurred_at, created_at, id`),
		walletID, string(models.CategoryTypeExpense),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses by wallet: %w", err)
	}

	if err := s.attachSplits(ctx, txns); err != nil {
		return nil, err
	}
	return txns, nil
}

// DeleteTransaction removes a transaction; its splits go with it.
func (s *SQLStore) DeleteTransaction(ctx context.Context, transactionID string) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM transactions WHERE id = ?`), transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	return expectAffected(res, "transaction", transactionID)
}

// attachSplits loads the splits of txns in one query, in recorded order.
func (s *SQLStore) attachSplits(ctx context.Context, txns []*models.Transaction) error {
	if len(txns) == 0 {
		return nil
	}

	ids := make([]string, len(txns))
	byID := make(map[string]*models.Transaction, len(txns))
	for i, t := range txns {
		ids[i] = t.ID
		byID[t.ID] = t
	}

	query, args, err := sqlx.In(`
		SELECT id, transaction_id, owed_by, amount FROM splits
		WHERE transaction_id IN (?)
		ORDER BY transaction_id, position`, ids)
	if err != nil {
		return fmt.Errorf("failed to build splits query: %w", err)
	}

	var splits []models.Split
	if err := s.db.SelectContext(ctx, &splits, s.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("failed to get splits: %w", err)
	}

	for _, split := range splits {
		if t, ok := byID[split.TransactionID]; ok {
			t.Splits = append(t.Splits, split)
		}
	}
	return nil
}
