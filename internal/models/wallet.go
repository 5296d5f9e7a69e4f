package models

import "strings"

// WalletType distinguishes personal ledgers from shared ones.
type WalletType string

const (
	WalletTypePersonal WalletType = "PERSONAL"
	WalletTypeGroup    WalletType = "GROUP"
)

// Valid reports whether t is a known wallet type.
func (t WalletType) Valid() bool {
	return t == WalletTypePersonal || t == WalletTypeGroup
}

// Role is a member's permission level within a wallet.
type Role string

const (
	// RoleOwner can add and remove members and delete the wallet.
	RoleOwner Role = "OWNER"
	// RoleMember can record transactions and settlements.
	RoleMember Role = "MEMBER"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleOwner || r == RoleMember
}

// Wallet represents a named ledger containing transactions and memberships.
type Wallet struct {
	// ID is the unique identifier for the wallet (UUID format).
	ID string `db:"id"`

	// Name is the display name of the wallet (e.g., "Roommates", "Savings").
	Name string `db:"name"`

	// Type is PERSONAL or GROUP.
	Type WalletType `db:"type"`

	// Currency is the ISO 4217 code all amounts in the wallet are in.
	Currency string `db:"currency"`

	// CreatedBy is the user ID who created the wallet. The creator is the
	// wallet's first OWNER.
	CreatedBy string `db:"created_by"`

	// CreatedAt is the Unix timestamp when the wallet was created.
	CreatedAt int64 `db:"created_at"`
}

// Member is a user's membership in a wallet.
type Member struct {
	WalletID string `db:"wallet_id"`
	UserID   string `db:"user_id"`
	Role     Role   `db:"role"`

	// JoinedAt is the Unix timestamp when the user joined. Members are
	// listed in join order.
	JoinedAt int64 `db:"joined_at"`
}

// currencyPlaces lists currencies whose conventional precision is not two
// fraction digits.
var currencyPlaces = map[string]int32{
	"BHD": 3,
	"CLP": 0,
	"COP": 0,
	"ISK": 0,
	"JPY": 0,
	"KRW": 0,
	"KWD": 3,
	"OMR": 3,
	"PYG": 0,
	"TND": 3,
	"VND": 0,
}

// CurrencyPlaces returns the number of fraction digits amounts in currency
// are conventionally split at.
func CurrencyPlaces(currency string) int32 {
	if places, ok := currencyPlaces[strings.ToUpper(currency)]; ok {
		return places
	}
	return 2
}
