package api

import (
	"github.com/shopspring/decimal"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// Wallet is a ledger as seen by one of its members.
type Wallet struct {
	ID        string                 `json:"id"`
	Name      string                 `json:"name"`
	Type      string                 `json:"type"` // PERSONAL or GROUP
	Currency  string                 `json:"currency"`
	CreatedBy string                 `json:"created_by"`
	CreatedAt *timestamppb.Timestamp `json:"created_at,omitempty"`

	// Role is the caller's role in the wallet.
	Role string `json:"role"`
}

// Member is a user's membership in a wallet.
type Member struct {
	UserID      string                 `json:"user_id"`
	Email       string                 `json:"email"`
	DisplayName string                 `json:"display_name"`
	Role        string                 `json:"role"` // OWNER or MEMBER
	JoinedAt    *timestamppb.Timestamp `json:"joined_at,omitempty"`
}

type CreateWalletRequest struct {
	Name string `json:"name"`
	// Type defaults to PERSONAL.
	Type string `json:"type,omitempty"`
	// Currency defaults to the server's configured currency.
	Currency string `json:"currency,omitempty"`
}

type CreateWalletResponse struct {
	Wallet *Wallet `json:"wallet"`
}

type ListWalletsRequest struct{}

type ListWalletsResponse struct {
	Wallets []*Wallet `json:"wallets"`
}

type GetWalletRequest struct {
	WalletID string `json:"wallet_id"`
}

type GetWalletResponse struct {
	Wallet  *Wallet   `json:"wallet"`
	Members []*Member `json:"members"`
}

type DeleteWalletRequest struct {
	WalletID string `json:"wallet_id"`
}

type DeleteWalletResponse struct{}

type AddMemberRequest struct {
	WalletID string `json:"wallet_id"`
	Email    string `json:"email"`
	// Role defaults to MEMBER.
	Role string `json:"role,omitempty"`
}

type AddMemberResponse struct {
	Member *Member `json:"member"`
}

type ListMembersRequest struct {
	WalletID string `json:"wallet_id"`
}

type ListMembersResponse struct {
	Members []*Member `json:"members"`
}

type RemoveMemberRequest struct {
	WalletID string `json:"wallet_id"`
	UserID   string `json:"user_id"`
}

type RemoveMemberResponse struct{}

// MemberBalance is one member's net position. Positive means the wallet
// owes the member; negative means the member owes the wallet.
type MemberBalance struct {
	UserID      string          `json:"user_id"`
	DisplayName string          `json:"display_name"`
	Amount      decimal.Decimal `json:"amount"`
}

// Transfer is a suggested payment between two members.
type Transfer struct {
	FromUserID string          `json:"from_user_id"`
	FromName   string          `json:"from_name"`
	ToUserID   string          `json:"to_user_id"`
	ToName     string          `json:"to_name"`
	Amount     decimal.Decimal `json:"amount"`
}

type GetBalancesRequest struct {
	WalletID string `json:"wallet_id"`
	// ApplySettlements nets recorded settlements into the balances before
	// suggesting transfers.
	ApplySettlements bool `json:"apply_settlements,omitempty"`
}

type GetBalancesResponse struct {
	Currency  string           `json:"currency"`
	Balances  []*MemberBalance `json:"balances"`
	Transfers []*Transfer      `json:"transfers"`
}
