package api

import (
	"github.com/shopspring/decimal"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// Settlement is a recorded payment from a debtor to a creditor.
type Settlement struct {
	ID         string                 `json:"id"`
	WalletID   string                 `json:"wallet_id"`
	FromUserID string                 `json:"from_user_id"`
	ToUserID   string                 `json:"to_user_id"`
	Amount     decimal.Decimal        `json:"amount"`
	Date       *timestamppb.Timestamp `json:"date,omitempty"`
	Note       string                 `json:"note"`
	CreatedBy  string                 `json:"created_by"`
	CreatedAt  *timestamppb.Timestamp `json:"created_at,omitempty"`
}

type CreateSettlementRequest struct {
	WalletID   string          `json:"wallet_id"`
	FromUserID string          `json:"from_user_id"`
	ToUserID   string          `json:"to_user_id"`
	Amount     decimal.Decimal `json:"amount"`
	// Date defaults to now.
	Date *timestamppb.Timestamp `json:"date,omitempty"`
	Note string                 `json:"note,omitempty"`
}

type CreateSettlementResponse struct {
	Settlement *Settlement `json:"settlement"`
}

type ListSettlementsRequest struct {
	WalletID string `json:"wallet_id"`
}

type ListSettlementsResponse struct {
	Settlements []*Settlement `json:"settlements"`
}

type DeleteSettlementRequest struct {
	SettlementID string `json:"settlement_id"`
}

type DeleteSettlementResponse struct{}
