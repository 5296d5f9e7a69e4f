package api

import (
	"github.com/shopspring/decimal"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// Split is the part of a transaction owed by one member.
type Split struct {
	UserID string          `json:"user_id"`
	Amount decimal.Decimal `json:"amount"`
}

type Transaction struct {
	ID          string                 `json:"id"`
	WalletID    string                 `json:"wallet_id"`
	CategoryID  string                 `json:"category_id"`
	Type        string                 `json:"type"`
	Amount      decimal.Decimal        `json:"amount"`
	Date        *timestamppb.Timestamp `json:"date,omitempty"`
	Description string                 `json:"description"`
	PaidBy      string                 `json:"paid_by"`
	CreatedBy   string                 `json:"created_by"`
	CreatedAt   *timestamppb.Timestamp `json:"created_at,omitempty"`
	Splits      []*Split               `json:"splits"`
}

type CreateTransactionRequest struct {
	WalletID   string `json:"wallet_id"`
	CategoryID string `json:"category_id"`
	// Type is taken from the category; when given it must match.
	Type        string                 `json:"type,omitempty"`
	Amount      decimal.Decimal        `json:"amount"`
	Date        *timestamppb.Timestamp `json:"date,omitempty"`
	Description string                 `json:"description,omitempty"`
	// PaidBy defaults to the caller.
	PaidBy string `json:"paid_by,omitempty"`

	// Splits lists each debtor's share explicitly.
	Splits []*Split `json:"splits,omitempty"`
	// SplitEvenlyAmong divides Amount equally among these members instead.
	SplitEvenlyAmong []string `json:"split_evenly_among,omitempty"`
}

type CreateTransactionResponse struct {
	Transaction *Transaction `json:"transaction"`
}

type ListTransactionsRequest struct {
	WalletID string `json:"wallet_id"`
	Limit    int32  `json:"limit,omitempty"`
	Offset   int32  `json:"offset,omitempty"`
}

type ListTransactionsResponse struct {
	Transactions []*Transaction `json:"transactions"`
}

type DeleteTransactionRequest struct {
	TransactionID string `json:"transaction_id"`
}

type DeleteTransactionResponse struct{}
