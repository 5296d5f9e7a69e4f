package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/walletwise/internal/models"
	"github.com/mmynk/walletwise/internal/storage"
	"github.com/mmynk/walletwise/pkg/api"
	"github.com/mmynk/walletwise/pkg/api/apiconnect"
)

var _ apiconnect.SettlementServiceHandler = (*SettlementService)(nil)

// SettlementService implements the Connect SettlementService.
type SettlementService struct {
	store  storage.Store
	logger *slog.Logger
}

// NewSettlementService creates a SettlementService.
func NewSettlementService(store storage.Store, logger *slog.Logger) *SettlementService {
	return &SettlementService{store: store, logger: logger}
}

// CreateSettlement records a payment between two members of a wallet.
func (s *SettlementService) CreateSettlement(ctx context.Context, req *connect.Request[api.CreateSettlementRequest]) (*connect.Response[api.CreateSettlementResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	msg := req.Msg

	if _, err := membership(ctx, s.store, msg.WalletID, userID); err != nil {
		return nil, err
	}
	if msg.FromUserID == "" || msg.ToUserID == "" {
		return nil, invalidArgument("from_user_id and to_user_id are required")
	}
	if msg.FromUserID == msg.ToUserID {
		return nil, invalidArgument("from_user_id and to_user_id must differ")
	}
	if !msg.Amount.IsPositive() {
		return nil, invalidArgument("amount must be greater than zero")
	}
	wallet, err := s.store.GetWallet(ctx, msg.WalletID)
	if err != nil {
		return nil, toConnectError(err)
	}
	if err := checkPrecision("amount", msg.Amount, wallet.Currency); err != nil {
		return nil, err
	}
	if err := requireMembers(ctx, s.store, msg.WalletID, msg.FromUserID, msg.ToUserID); err != nil {
		return nil, err
	}

	settlement := &models.Settlement{
		WalletID:   msg.WalletID,
		FromUserID: msg.FromUserID,
		ToUserID:   msg.ToUserID,
		Amount:     msg.Amount,
		Date:       protoToUnix(msg.Date, time.Now().Unix()),
		CreatedBy:  userID,
		Note:       strings.TrimSpace(msg.Note),
	}
	if err := s.store.CreateSettlement(ctx, settlement); err != nil {
		s.logger.Error("CreateSettlement failed", "wallet_id", msg.WalletID, "error", err)
		return nil, toConnectError(err)
	}

	s.logger.Info("Settlement recorded",
		"settlement_id", settlement.ID,
		"wallet_id", settlement.WalletID,
		"from", settlement.FromUserID,
		"to", settlement.ToUserID,
		"amount", settlement.Amount.String(),
	)
	return connect.NewResponse(&api.CreateSettlementResponse{Settlement: settlementToAPI(settlement)}), nil
}

// ListSettlements lists a wallet's settlements, newest first.
func (s *SettlementService) ListSettlements(ctx context.Context, req *connect.Request[api.ListSettlementsRequest]) (*connect.Response[api.ListSettlementsResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := membership(ctx, s.store, req.Msg.WalletID, userID); err != nil {
		return nil, err
	}

	settlements, err := s.store.ListSettlementsByWallet(ctx, req.Msg.WalletID)
	if err != nil {
		s.logger.Error("ListSettlements failed", "wallet_id", req.Msg.WalletID, "error", err)
		return nil, toConnectError(err)
	}

	out := make([]*api.Settlement, len(settlements))
	for i, st := range settlements {
		out[i] = settlementToAPI(st)
	}
	return connect.NewResponse(&api.ListSettlementsResponse{Settlements: out}), nil
}

// DeleteSettlement deletes a settlement. Only its creator or a wallet owner
// may do so.
func (s *SettlementService) DeleteSettlement(ctx context.Context, req *connect.Request[api.DeleteSettlementRequest]) (*connect.Response[api.DeleteSettlementResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if req.Msg.SettlementID == "" {
		return nil, invalidArgument("settlement_id is required")
	}

	settlement, err := s.store.GetSettlement(ctx, req.Msg.SettlementID)
	if err != nil {
		return nil, toConnectError(err)
	}
	member, err := membership(ctx, s.store, settlement.WalletID, userID)
	if err != nil {
		return nil, err
	}
	if !canModify(member, settlement.CreatedBy) {
		return nil, permissionDenied("only the creator or a wallet owner can delete a settlement")
	}

	if err := s.store.DeleteSettlement(ctx, settlement.ID); err != nil {
		s.logger.Error("DeleteSettlement failed", "settlement_id", settlement.ID, "error", err)
		return nil, toConnectError(err)
	}

	s.logger.Info("Settlement deleted", "settlement_id", settlement.ID, "user_id", userID)
	return connect.NewResponse(&api.DeleteSettlementResponse{}), nil
}
