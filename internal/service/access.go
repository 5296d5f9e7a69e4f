package service

import (
	"context"
	"errors"

	"connectrpc.com/connect"

	"github.com/mmynk/walletwise/internal/models"
	"github.com/mmynk/walletwise/internal/storage"
)

// membership returns userID's membership of walletID. Wallets the user does
// not belong to are reported as NotFound, exactly like missing ones.
func membership(ctx context.Context, store storage.WalletStore, walletID, userID string) (*models.Member, error) {
	if walletID == "" {
		return nil, invalidArgument("wallet_id is required")
	}

	member, err := store.GetMember(ctx, walletID, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, connect.NewError(connect.CodeNotFound, errors.New("wallet not found"))
	}
	if err != nil {
		return nil, toConnectError(err)
	}
	return member, nil
}

// requireOwner is membership restricted to OWNERs.
func requireOwner(ctx context.Context, store storage.WalletStore, walletID, userID string) (*models.Member, error) {
	member, err := membership(ctx, store, walletID, userID)
	if err != nil {
		return nil, err
	}
	if member.Role != models.RoleOwner {
		return nil, permissionDenied("only wallet owners can do this")
	}
	return member, nil
}

// requireMembers checks that every user in ids belongs to walletID.
func requireMembers(ctx context.Context, store storage.WalletStore, walletID string, ids ...string) error {
	memberIDs, err := store.ListMemberIDs(ctx, walletID)
	if err != nil {
		return toConnectError(err)
	}
	members := make(map[string]bool, len(memberIDs))
	for _, id := range memberIDs {
		members[id] = true
	}
	for _, id := range ids {
		if !members[id] {
			return permissionDenied("user %s is not a member of wallet %s", id, walletID)
		}
	}
	return nil
}

// canModify reports whether the member may delete a record created by createdBy.
func canModify(member *models.Member, createdBy string) bool {
	return member.UserID == createdBy || member.Role == models.RoleOwner
}
