package models

import "github.com/shopspring/decimal"

// Settlement represents a payment between wallet members to clear debts.
// Settlements are recorded by users; the balance engine never creates them.
type Settlement struct {
	// ID is the unique identifier for the settlement (UUID format).
	ID string `db:"id"`

	// WalletID is the wallet this settlement belongs to.
	WalletID string `db:"wallet_id"`

	// FromUserID is the user who paid (debtor settling up).
	FromUserID string `db:"from_user_id"`

	// ToUserID is the user who received payment (creditor being paid).
	ToUserID string `db:"to_user_id"`

	// Amount is the payment amount.
	Amount decimal.Decimal `db:"amount"`

	// Date is the Unix timestamp of the payment.
	Date int64 `db:"occurred_at"`

	// CreatedAt is the Unix timestamp when the settlement was recorded.
	CreatedAt int64 `db:"created_at"`

	// CreatedBy is the user ID who recorded this settlement.
	CreatedBy string `db:"created_by"`

	// Note is an optional description for the settlement.
	Note string `db:"note"`
}
