package sqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/mmynk/walletwise/internal/models"
	"github.com/mmynk/walletwise/internal/storage"
)

const walletColumns = `id, name, type, currency, created_by, created_at`

// CreateWallet persists a new wallet and its creator's OWNER membership.
func (s *SQLStore) CreateWallet(ctx context.Context, wallet *models.Wallet) error {
	if wallet.ID == "" {
		wallet.ID = uuid.New().String()
	}
	if wallet.CreatedAt == 0 {
		wallet.CreatedAt = time.Now().Unix()
	}

	return s.inTx(ctx, func(tx *sqlx.Tx) error {
		_, err := tx.NamedExecContext(ctx, `
			INSERT INTO wallets (`+walletColumns+`)
			VALUES (:id, :name, :type, :currency, :created_by, :created_at)`,
			wallet,
		)
		if err != nil {
			return fmt.Errorf("failed to insert wallet: %w", err)
		}

		owner := &models.Member{
			WalletID: wallet.ID,
			UserID:   wallet.CreatedBy,
			Role:     models.RoleOwner,
			JoinedAt: wallet.CreatedAt,
		}
		if err := insertMember(ctx, tx, owner); err != nil {
			return err
		}
		return nil
	})
}

// GetWallet retrieves a wallet by ID.
func (s *SQLStore) GetWallet(ctx context.Context, walletID string) (*models.Wallet, error) {
	wallet := &models.Wallet{}
	err := s.db.GetContext(ctx, wallet,
		s.db.Rebind(`SELECT `+walletColumns+` FROM wallets WHERE id = ?`),
		walletID,
	)
	if err != nil {
		return nil, notFound(err, "wallet", walletID)
	}
	return wallet, nil
}

// ListWalletsByUser retrieves the wallets a user belongs to, newest first.
func (s *SQLStore) ListWalletsByUser(ctx context.Context, userID string) ([]*models.Wallet, error) {
	var wallets []*models.Wallet
	err := s.db.SelectContext(ctx, &wallets, s.db.Rebind(`
		SELECT w.id, w.name, w.type, w.currency, w.created_by, w.created_at
		FROM wallets w
		JOIN wallet_members m ON m.wallet_id = w.id
		WHERE m.user_id = ?
		ORDER BY w.created_at DESC, w.id`),
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list wallets by user: %w", err)
	}
	return wallets, nil
}

// DeleteWallet removes a wallet. Members, transactions and settlements
// are removed by cascade.
func (s *SQLStore) DeleteWallet(ctx context.Context, walletID string) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM wallets WHERE id = ?`), walletID)
	if err != nil {
		return fmt.Errorf("failed to delete wallet: %w", err)
	}
	return expectAffected(res, "wallet", walletID)
}

func insertMember(ctx context.Context, ext sqlx.ExtContext, member *models.Member) error {
	_, err := sqlx.NamedExecContext(ctx, ext, `
		INSERT INTO wallet_members (wallet_id, user_id, role, joined_at)
		VALUES (:wallet_id, :user_id, :role, :joined_at)`,
		member,
	)
	if err != nil {
		return fmt.Errorf("failed to insert member: %w", err)
	}
	return nil
}

// AddMember adds a user to a wallet.
func (s *SQLStore) AddMember(ctx context.Context, member *models.Member) error {
	if member.JoinedAt == 0 {
		member.JoinedAt = time.Now().Unix()
	}
	if member.Role == "" {
		member.Role = models.RoleMember
	}

	if err := insertMember(ctx, s.db, member); err != nil {
		if _, getErr := s.GetMember(ctx, member.WalletID, member.UserID); getErr == nil {
			return fmt.Errorf("member %s of wallet %s: %w", member.UserID, member.WalletID, storage.ErrAlreadyExists)
		}
		return err
	}
	return nil
}

// GetMember retrieves a user's membership in a wallet.
func (s *SQLStore) GetMember(ctx context.Context, walletID, userID string) (*models.Member, error) {
	member := &models.Member{}
	err := s.db.GetContext(ctx, member, s.db.Rebind(`
		SELECT wallet_id, user_id, role, joined_at
		FROM wallet_members WHERE wallet_id = ? AND user_id = ?`),
		walletID, userID,
	)
	if err != nil {
		return nil, notFound(err, "member", userID)
	}
	return member, nil
}

// ListMembers retrieves a wallet's members in join order. Members who
// joined in the same second are ordered by user ID.
func (s *SQLStore) ListMembers(ctx context.Context, walletID string) ([]*models.Member, error) {
	var members []*models.Member
	err := s.db.SelectContext(ctx, &members, s.db.Rebind(`
		SELECT wallet_id, user_id, role, joined_at
		FROM wallet_members WHERE wallet_id = ?
		ORDER BY joined_at, user_id`),
		walletID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return members, nil
}

// ListMemberIDs retrieves a wallet's member user IDs in the order of ListMembers.
func (s *SQLStore) ListMemberIDs(ctx context.Context, walletID string) ([]string, error) {
	var ids []string
	err := s.db.SelectContext(ctx, &ids, s.db.Rebind(`
		SELECT user_id FROM wallet_members WHERE wallet_id = ?
		ORDER BY joined_at, user_id`),
		walletID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list member IDs: %w", err)
	}
	return ids, nil
}

// RemoveMember removes a user from a wallet. Removing the wallet's only
// OWNER fails with storage.ErrLastOwner and leaves the membership intact.
func (s *SQLStore) RemoveMember(ctx context.Context, walletID, userID string) error {
	owner := string(models.RoleOwner)
	return s.inTx(ctx, func(tx *sqlx.Tx) error {
		if s.driver == DriverPostgres {
			// Concurrent removals in the same wallet queue on the wallet row.
			if _, err := tx.ExecContext(ctx, `SELECT id FROM wallets WHERE id = $1 FOR UPDATE`, walletID); err != nil {
				return fmt.Errorf("failed to lock wallet: %w", err)
			}
		}

		res, err := tx.ExecContext(ctx, tx.Rebind(`
			DELETE FROM wallet_members
			WHERE wallet_id = ? AND user_id = ?
			  AND (role <> ? OR (
			    SELECT COUNT(*) FROM wallet_members WHERE wallet_id = ? AND role = ?
			  ) > 1)`),
			walletID, userID, owner, walletID, owner,
		)
		if err != nil {
			return fmt.Errorf("failed to remove member: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if n > 0 {
			return nil
		}

		var role string
		err = tx.GetContext(ctx, &role, tx.Rebind(`
			SELECT role FROM wallet_members WHERE wallet_id = ? AND user_id = ?`),
			walletID, userID,
		)
		if err != nil {
			return notFound(err, "member", userID)
		}
		return fmt.Errorf("member %s: %w", userID, storage.ErrLastOwner)
	})
}
