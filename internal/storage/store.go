// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/walletwise/internal/models"
)

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when a unique record would be duplicated.
	ErrAlreadyExists = errors.New("already exists")
	// ErrLastOwner is returned when a change would leave a wallet without an OWNER.
	ErrLastOwner = errors.New("wallet must keep at least one owner")
)

// Store defines the interface for all persistence operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	UserStore
	WalletStore
	CategoryStore
	TransactionStore
	SettlementStore

	// Close releases any resources held by the store.
	Close() error
}

// UserStore persists user accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	// GetUserByEmail returns ErrNotFound if no user has the email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// GetUserByID returns ErrNotFound if the user does not exist.
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	// GetUsersByIDs returns a map of user ID to User. Users that don't exist
	// are omitted from the result.
	GetUsersByIDs(ctx context.Context, ids []string) (map[string]*models.User, error)
}

// WalletStore persists wallets and their memberships.
type WalletStore interface {
	// CreateWallet persists a new wallet and makes its creator an OWNER in
	// the same transaction. The wallet.ID field will be populated by the store.
	CreateWallet(ctx context.Context, wallet *models.Wallet) error
	GetWallet(ctx context.Context, walletID string) (*models.Wallet, error)
	// ListWalletsByUser returns the wallets userID is a member of, newest first.
	ListWalletsByUser(ctx context.Context, userID string) ([]*models.Wallet, error)
	// DeleteWallet removes the wallet with its members, transactions and settlements.
	DeleteWallet(ctx context.Context, walletID string) error

	// AddMember returns ErrAlreadyExists if the user is already a member.
	AddMember(ctx context.Context, member *models.Member) error
	// GetMember returns ErrNotFound if userID is not a member of walletID.
	GetMember(ctx context.Context, walletID, userID string) (*models.Member, error)
	// ListMembers returns the wallet's members in join order.
	ListMembers(ctx context.Context, walletID string) ([]*models.Member, error)
	// ListMemberIDs returns the wallet's member user IDs in join order.
	ListMemberIDs(ctx context.Context, walletID string) ([]string, error)
	// RemoveMember returns ErrLastOwner if userID is the wallet's only OWNER.
	RemoveMember(ctx context.Context, walletID, userID string) error
}

// CategoryStore persists transaction categories.
type CategoryStore interface {
	CreateCategory(ctx context.Context, category *models.Category) error
	GetCategory(ctx context.Context, categoryID string) (*models.Category, error)
	// ListCategories returns system categories plus those created by userID,
	// system first then by name. An empty categoryType lists both types.
	ListCategories(ctx context.Context, userID string, categoryType models.CategoryType) ([]*models.Category, error)
	UpdateCategory(ctx context.Context, category *models.Category) error
	DeleteCategory(ctx context.Context, categoryID string) error
	// UpsertSystemCategory creates a system category or refreshes the
	// description of the one with the same name and type.
	UpsertSystemCategory(ctx context.Context, category *models.Category) error
	// CountTransactionsByCategory reports how many transactions use the category.
	CountTransactionsByCategory(ctx context.Context, categoryID string) (int, error)
}

// TransactionStore persists transactions and their splits.
type TransactionStore interface {
	// CreateTransaction persists the transaction and its splits atomically,
	// populating IDs and timestamps.
	CreateTransaction(ctx context.Context, tx *models.Transaction) error
	GetTransaction(ctx context.Context, transactionID string) (*models.Transaction, error)
	// ListTransactionsByWallet returns transactions with splits, newest first.
	ListTransactionsByWallet(ctx context.Context, walletID string, limit, offset int) ([]*models.Transaction, error)
	// ListExpensesByWallet returns every EXPENSE transaction of the wallet
	// with its splits, oldest first.
	ListExpensesByWallet(ctx context.Context, walletID string) ([]*models.Transaction, error)
	DeleteTransaction(ctx context.Context, transactionID string) error
}

// SettlementStore persists recorded settlements.
type SettlementStore interface {
	CreateSettlement(ctx context.Context, settlement *models.Settlement) error
	GetSettlement(ctx context.Context, settlementID string) (*models.Settlement, error)
	// ListSettlementsByWallet returns the wallet's settlements, newest first.
	ListSettlementsByWallet(ctx context.Context, walletID string) ([]*models.Settlement, error)
	DeleteSettlement(ctx context.Context, settlementID string) error
}
