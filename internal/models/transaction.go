package models

import "github.com/shopspring/decimal"

// Transaction is an amount recorded against a wallet and category.
//
// Only EXPENSE transactions take part in balance calculations. The payer
// fronted Amount; Splits say how much each debtor owes of it.
type Transaction struct {
	// ID is the unique identifier for the transaction (UUID format).
	ID string `db:"id"`

	WalletID   string `db:"wallet_id"`
	CategoryID string `db:"category_id"`

	// Type is copied from the category when the transaction is recorded.
	Type CategoryType `db:"type"`

	// Amount is the full amount paid. Always positive.
	Amount decimal.Decimal `db:"amount"`

	// Date is the Unix timestamp the money moved.
	Date int64 `db:"occurred_at"`

	Description string `db:"description"`

	// PaidBy is the user ID who paid.
	PaidBy string `db:"paid_by"`

	// CreatedBy is the user ID who recorded the transaction.
	CreatedBy string `db:"created_by"`

	CreatedAt int64 `db:"created_at"`

	// Splits are the debtors' shares. Not validated against Amount.
	Splits []Split `db:"-"`
}

// Split is the part of a transaction owed by one debtor.
type Split struct {
	ID            string          `db:"id"`
	TransactionID string          `db:"transaction_id"`
	OwedBy        string          `db:"owed_by"`
	Amount        decimal.Decimal `db:"amount"`
}
