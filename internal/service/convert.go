package service

import (
	"time"

	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/mmynk/walletwise/internal/models"
	"github.com/mmynk/walletwise/pkg/api"
)

func unixToProto(sec int64) *timestamppb.Timestamp {
	if sec == 0 {
		return nil
	}
	return timestamppb.New(time.Unix(sec, 0))
}

// protoToUnix returns ts in Unix seconds, or fallback when ts is unset.
func protoToUnix(ts *timestamppb.Timestamp, fallback int64) int64 {
	if ts == nil {
		return fallback
	}
	return ts.GetSeconds()
}

func userToAPI(u *models.User) *api.User {
	return &api.User{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		CreatedAt:   unixToProto(u.CreatedAt),
	}
}

func walletToAPI(w *models.Wallet, role models.Role) *api.Wallet {
	return &api.Wallet{
		ID:        w.ID,
		Name:      w.Name,
		Type:      string(w.Type),
		Currency:  w.Currency,
		CreatedBy: w.CreatedBy,
		CreatedAt: unixToProto(w.CreatedAt),
		Role:      string(role),
	}
}

// memberToAPI converts m; user may be nil when the account is gone.
func memberToAPI(m *models.Member, user *models.User) *api.Member {
	out := &api.Member{
		UserID:   m.UserID,
		Role:     string(m.Role),
		JoinedAt: unixToProto(m.JoinedAt),
	}
	if user != nil {
		out.Email = user.Email
		out.DisplayName = user.Name()
	}
	return out
}

func categoryToAPI(c *models.Category, userID string) *api.Category {
	return &api.Category{
		ID:          c.ID,
		Name:        c.Name,
		Type:        string(c.Type),
		Description: c.Description,
		IsSystem:    c.IsSystem,
		Editable:    c.EditableBy(userID),
	}
}

func transactionToAPI(t *models.Transaction) *api.Transaction {
	splits := make([]*api.Split, len(t.Splits))
	for i, s := range t.Splits {
		splits[i] = &api.Split{UserID: s.OwedBy, Amount: s.Amount}
	}
	return &api.Transaction{
		ID:          t.ID,
		WalletID:    t.WalletID,
		CategoryID:  t.CategoryID,
		Type:        string(t.Type),
		Amount:      t.Amount,
		Date:        unixToProto(t.Date),
		Description: t.Description,
		PaidBy:      t.PaidBy,
		CreatedBy:   t.CreatedBy,
		CreatedAt:   unixToProto(t.CreatedAt),
		Splits:      splits,
	}
}

func settlementToAPI(s *models.Settlement) *api.Settlement {
	return &api.Settlement{
		ID:         s.ID,
		WalletID:   s.WalletID,
		FromUserID: s.FromUserID,
		ToUserID:   s.ToUserID,
		Amount:     s.Amount,
		Date:       unixToProto(s.Date),
		Note:       s.Note,
		CreatedBy:  s.CreatedBy,
		CreatedAt:  unixToProto(s.CreatedAt),
	}
}
