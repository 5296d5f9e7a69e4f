package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/walletwise/pkg/api"
)

func TestSettlements(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")
	carol := env.register(t, "carol")
	dave := env.register(t, "dave")

	walletID := env.groupWallet(t, alice, bob, carol)

	tests := []struct {
		name string
		req  *api.CreateSettlementRequest
		code connect.Code
	}{
		{
			name: "same user on both sides",
			req:  &api.CreateSettlementRequest{WalletID: walletID, FromUserID: bob.ID, ToUserID: bob.ID, Amount: d("10")},
			code: connect.CodeInvalidArgument,
		},
		{
			name: "zero amount",
			req:  &api.CreateSettlementRequest{WalletID: walletID, FromUserID: bob.ID, ToUserID: alice.ID, Amount: d("0")},
			code: connect.CodeInvalidArgument,
		},
		{
			name: "missing party",
			req:  &api.CreateSettlementRequest{WalletID: walletID, FromUserID: bob.ID, Amount: d("10")},
			code: connect.CodeInvalidArgument,
		},
		{
			name: "finer than the currency allows",
			req:  &api.CreateSettlementRequest{WalletID: walletID, FromUserID: bob.ID, ToUserID: alice.ID, Amount: d("12.5")},
			code: connect.CodeInvalidArgument,
		},
		{
			name: "party outside the wallet",
			req:  &api.CreateSettlementRequest{WalletID: walletID, FromUserID: dave.ID, ToUserID: alice.ID, Amount: d("10")},
			code: connect.CodePermissionDenied,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.settlements.CreateSettlement(ctx, as(bob, tt.req))
			assertCode(t, tt.code, err)
		})
	}

	first, err := env.settlements.CreateSettlement(ctx, as(bob, &api.CreateSettlementRequest{
		WalletID: walletID, FromUserID: bob.ID, ToUserID: alice.ID, Amount: d("12500"), Note: "half",
	}))
	require.NoError(t, err)
	assert.NotNil(t, first.Msg.Settlement.Date)
	assert.Equal(t, bob.ID, first.Msg.Settlement.CreatedBy)

	t.Run("list", func(t *testing.T) {
		resp, err := env.settlements.ListSettlements(ctx, as(carol, &api.ListSettlementsRequest{WalletID: walletID}))
		require.NoError(t, err)
		require.Len(t, resp.Msg.Settlements, 1)
		assert.Equal(t, "half", resp.Msg.Settlements[0].Note)
		assertDecimal(t, "12500", resp.Msg.Settlements[0].Amount)

		_, err = env.settlements.ListSettlements(ctx, as(dave, &api.ListSettlementsRequest{WalletID: walletID}))
		assertCode(t, connect.CodeNotFound, err)
	})

	t.Run("delete", func(t *testing.T) {
		_, err := env.settlements.DeleteSettlement(ctx, as(carol, &api.DeleteSettlementRequest{SettlementID: first.Msg.Settlement.ID}))
		assertCode(t, connect.CodePermissionDenied, err)

		_, err = env.settlements.DeleteSettlement(ctx, as(bob, &api.DeleteSettlementRequest{SettlementID: first.Msg.Settlement.ID}))
		require.NoError(t, err)

		resp, err := env.settlements.ListSettlements(ctx, as(alice, &api.ListSettlementsRequest{WalletID: walletID}))
		require.NoError(t, err)
		assert.Empty(t, resp.Msg.Settlements)
	})
}
