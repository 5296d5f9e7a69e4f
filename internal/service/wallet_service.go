package service

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/walletwise/internal/auth"
	"github.com/mmynk/walletwise/internal/calculator"
	"github.com/mmynk/walletwise/internal/models"
	"github.com/mmynk/walletwise/internal/storage"
	"github.com/mmynk/walletwise/pkg/api"
	"github.com/mmynk/walletwise/pkg/api/apiconnect"
)

var _ apiconnect.WalletServiceHandler = (*WalletService)(nil)

var currencyCode = regexp.MustCompile(`^[A-Z]{3}$`)

// checkPrecision rejects amounts finer than the currency's minor unit.
func checkPrecision(field string, amount decimal.Decimal, currency string) error {
	places := models.CurrencyPlaces(currency)
	if !amount.Equal(amount.Truncate(places)) {
		return invalidArgument("%s %s has more than %d decimal places for %s", field, amount, places, currency)
	}
	return nil
}

// WalletService implements the Connect WalletService.
type WalletService struct {
	store           storage.Store
	engine          *calculator.Engine
	defaultCurrency string
	logger          *slog.Logger
}

// NewWalletService creates a WalletService. Wallets created without a
// currency get defaultCurrency.
func NewWalletService(store storage.Store, engine *calculator.Engine, defaultCurrency string, logger *slog.Logger) *WalletService {
	return &WalletService{
		store:           store,
		engine:          engine,
		defaultCurrency: defaultCurrency,
		logger:          logger,
	}
}

// CreateWallet creates a wallet owned by the caller.
func (s *WalletService) CreateWallet(ctx context.Context, req *connect.Request[api.CreateWalletRequest]) (*connect.Response[api.CreateWalletResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Msg.Name)
	if name == "" {
		return nil, invalidArgument("name is required")
	}

	walletType := models.WalletTypePersonal
	if req.Msg.Type != "" {
		walletType = models.WalletType(strings.ToUpper(req.Msg.Type))
	}
	if !walletType.Valid() {
		return nil, invalidArgument("unknown wallet type %q", req.Msg.Type)
	}

	currency := strings.ToUpper(strings.TrimSpace(req.Msg.Currency))
	if currency == "" {
		currency = s.defaultCurrency
	}
	if !currencyCode.MatchString(currency) {
		return nil, invalidArgument("currency must be a three-letter ISO 4217 code, got %q", req.Msg.Currency)
	}

	wallet := &models.Wallet{
		Name:      name,
		Type:      walletType,
		Currency:  currency,
		CreatedBy: userID,
	}
	if err := s.store.CreateWallet(ctx, wallet); err != nil {
		s.logger.Error("CreateWallet failed", "user_id", userID, "error", err)
		return nil, toConnectError(err)
	}

	s.logger.Info("Wallet created", "wallet_id", wallet.ID, "type", wallet.Type, "user_id", userID)
	return connect.NewResponse(&api.CreateWalletResponse{
		Wallet: walletToAPI(wallet, models.RoleOwner),
	}), nil
}

// ListWallets lists the caller's wallets, newest first.
func (s *WalletService) ListWallets(ctx context.Context, req *connect.Request[api.ListWalletsRequest]) (*connect.Response[api.ListWalletsResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	wallets, err := s.store.ListWalletsByUser(ctx, userID)
	if err != nil {
		s.logger.Error("ListWallets failed", "user_id", userID, "error", err)
		return nil, toConnectError(err)
	}

	out := make([]*api.Wallet, 0, len(wallets))
	for _, w := range wallets {
		member, err := s.store.GetMember(ctx, w.ID, userID)
		if err != nil {
			return nil, toConnectError(err)
		}
		out = append(out, walletToAPI(w, member.Role))
	}

	s.logger.Info("ListWallets successful", "user_id", userID, "count", len(out))
	return connect.NewResponse(&api.ListWalletsResponse{Wallets: out}), nil
}

// GetWallet returns a wallet with its members.
func (s *WalletService) GetWallet(ctx context.Context, req *connect.Request[api.GetWalletRequest]) (*connect.Response[api.GetWalletResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	member, err := membership(ctx, s.store, req.Msg.WalletID, userID)
	if err != nil {
		return nil, err
	}

	wallet, err := s.store.GetWallet(ctx, member.WalletID)
	if err != nil {
		return nil, toConnectError(err)
	}
	members, err := s.members(ctx, wallet.ID)
	if err != nil {
		return nil, err
	}

	return connect.NewResponse(&api.GetWalletResponse{
		Wallet:  walletToAPI(wallet, member.Role),
		Members: members,
	}), nil
}

// DeleteWallet deletes a wallet and everything recorded in it. Owners only.
func (s *WalletService) DeleteWallet(ctx context.Context, req *connect.Request[api.DeleteWalletRequest]) (*connect.Response[api.DeleteWalletResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := requireOwner(ctx, s.store, req.Msg.WalletID, userID); err != nil {
		return nil, err
	}

	if err := s.store.DeleteWallet(ctx, req.Msg.WalletID); err != nil {
		s.logger.Error("DeleteWallet failed", "wallet_id", req.Msg.WalletID, "error", err)
		return nil, toConnectError(err)
	}

	s.logger.Info("Wallet deleted", "wallet_id", req.Msg.WalletID, "user_id", userID)
	return connect.NewResponse(&api.DeleteWalletResponse{}), nil
}

// AddMember adds a registered user, found by email, to a wallet. Owners only.
func (s *WalletService) AddMember(ctx context.Context, req *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := requireOwner(ctx, s.store, req.Msg.WalletID, userID); err != nil {
		return nil, err
	}

	email := auth.NormalizeEmail(req.Msg.Email)
	if email == "" {
		return nil, invalidArgument("email is required")
	}

	role := models.RoleMember
	if req.Msg.Role != "" {
		role = models.Role(strings.ToUpper(req.Msg.Role))
	}
	if !role.Valid() {
		return nil, invalidArgument("unknown role %q", req.Msg.Role)
	}

	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, toConnectError(fmt.Errorf("no registered user with that email: %w", err))
	}

	member := &models.Member{WalletID: req.Msg.WalletID, UserID: user.ID, Role: role}
	if err := s.store.AddMember(ctx, member); err != nil {
		s.logger.Warn("AddMember failed", "wallet_id", req.Msg.WalletID, "member_id", user.ID, "error", err)
		return nil, toConnectError(err)
	}

	s.logger.Info("Member added", "wallet_id", member.WalletID, "member_id", user.ID, "role", role)
	return connect.NewResponse(&api.AddMemberResponse{Member: memberToAPI(member, user)}), nil
}

// ListMembers lists a wallet's members in join order.
func (s *WalletService) ListMembers(ctx context.Context, req *connect.Request[api.ListMembersRequest]) (*connect.Response[api.ListMembersResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := membership(ctx, s.store, req.Msg.WalletID, userID); err != nil {
		return nil, err
	}

	members, err := s.members(ctx, req.Msg.WalletID)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.ListMembersResponse{Members: members}), nil
}

// RemoveMember removes a member from a wallet. Owners only; the last OWNER
// cannot be removed.
func (s *WalletService) RemoveMember(ctx context.Context, req *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.RemoveMemberResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := requireOwner(ctx, s.store, req.Msg.WalletID, userID); err != nil {
		return nil, err
	}
	if req.Msg.UserID == "" {
		return nil, invalidArgument("user_id is required")
	}

	if err := s.store.RemoveMember(ctx, req.Msg.WalletID, req.Msg.UserID); err != nil {
		s.logger.Warn("RemoveMember failed", "wallet_id", req.Msg.WalletID, "member_id", req.Msg.UserID, "error", err)
		return nil, toConnectError(err)
	}

	s.logger.Info("Member removed", "wallet_id", req.Msg.WalletID, "member_id", req.Msg.UserID, "user_id", userID)
	return connect.NewResponse(&api.RemoveMemberResponse{}), nil
}

// GetBalances computes every member's net position from the wallet's
// expenses and suggests the transfers that would settle them.
func (s *WalletService) GetBalances(ctx context.Context, req *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := membership(ctx, s.store, req.Msg.WalletID, userID); err != nil {
		return nil, err
	}

	wallet, err := s.store.GetWallet(ctx, req.Msg.WalletID)
	if err != nil {
		return nil, toConnectError(err)
	}

	net, err := Balances(ctx, s.store, s.engine, wallet.ID, req.Msg.ApplySettlements)
	if err != nil {
		s.logger.Error("GetBalances failed", "wallet_id", wallet.ID, "error", err)
		return nil, toConnectError(err)
	}
	transfers := s.engine.SuggestTransfers(net)

	names, err := DisplayNames(ctx, s.store, net)
	if err != nil {
		return nil, toConnectError(err)
	}

	resp := &api.GetBalancesResponse{
		Currency:  wallet.Currency,
		Balances:  make([]*api.MemberBalance, len(net)),
		Transfers: make([]*api.Transfer, len(transfers)),
	}
	for i, b := range net {
		resp.Balances[i] = &api.MemberBalance{UserID: b.MemberID, DisplayName: names[b.MemberID], Amount: b.Amount}
	}
	for i, t := range transfers {
		resp.Transfers[i] = &api.Transfer{
			FromUserID: t.From,
			FromName:   names[t.From],
			ToUserID:   t.To,
			ToName:     names[t.To],
			Amount:     t.Amount,
		}
	}

	s.logger.Info("GetBalances successful",
		"wallet_id", wallet.ID,
		"members", len(net),
		"transfers", len(transfers),
		"apply_settlements", req.Msg.ApplySettlements,
	)
	return connect.NewResponse(resp), nil
}

// members loads a wallet's members with their account details.
func (s *WalletService) members(ctx context.Context, walletID string) ([]*api.Member, error) {
	members, err := s.store.ListMembers(ctx, walletID)
	if err != nil {
		return nil, toConnectError(err)
	}

	ids := make([]string, len(members))
	for i, m := range members {
		ids[i] = m.UserID
	}
	users, err := s.store.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, toConnectError(err)
	}

	out := make([]*api.Member, len(members))
	for i, m := range members {
		out[i] = memberToAPI(m, users[m.UserID])
	}
	return out, nil
}
