package sqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/walletwise/internal/models"
)

const settlementColumns = `id, wallet_id, from_user_id, to_user_id, amount, occurred_at, created_at, created_by, note`

// CreateSettlement persists a new settlement to the database.
func (s *SQLStore) CreateSettlement(ctx context.Context, settlement *models.Settlement) error {
	// Generate ID if not set
	if settlement.ID == "" {
		settlement.ID = uuid.New().String()
	}
	if settlement.CreatedAt == 0 {
		settlement.CreatedAt = time.Now().Unix()
	}
	if settlement.Date == 0 {
		settlement.Date = settlement.CreatedAt
	}

	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO settlements (`+settlementColumns+`)
		VALUES (:id, :wallet_id, :from_user_id, :to_user_id, :amount, :occurred_at, :created_at, :created_by, :note)`,
		settlement,
	)
	if err != nil {
		return fmt.Errorf("failed to insert settlement: %w", err)
	}

	return nil
}

// GetSettlement retrieves a settlement by ID.
func (s *SQLStore) GetSettlement(ctx context.Context, settlementID string) (*models.Settlement, error) {
	settlement := &models.Settlement{}
	err := s.db.GetContext(ctx, settlement,
		s.db.Rebind(`SELECT `+settlementColumns+` FROM settlements WHERE id = ?`),
		settlementID,
	)
	if err != nil {
		return nil, notFound(err, "settlement", settlementID)
	}
	return settlement, nil
}

// ListSettlementsByWallet retrieves all settlements for a wallet, newest first.
func (s *SQLStore) ListSettlementsByWallet(ctx context.Context, walletID string) ([]*models.Settlement, error) {
	var settlements []*models.Settlement
	err := s.db.SelectContext(ctx, &settlements, s.db.Rebind(`
		SELECT `+settlementColumns+` FROM settlements
		WHERE wallet_id = ?
		ORDER BY occurred_at DESC, created_at DESC, id`),
		walletID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements by wallet: %w", err)
	}
	return settlements, nil
}

// DeleteSettlement removes a settlement by ID.
func (s *SQLStore) DeleteSettlement(ctx context.Context, settlementID string) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM settlements WHERE id = ?`), settlementID)
	if err != nil {
		return fmt.Errorf("failed to delete settlement: %w", err)
	}
	return expectAffected(res, "settlement", settlementID)
}
