package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/walletwise/pkg/api"
)

func TestRegisterAndLogin(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	alice := env.register(t, "alice")
	assert.NotEmpty(t, alice.Token)

	t.Run("duplicate email", func(t *testing.T) {
		_, err := env.auth.Register(ctx, connect.NewRequest(&api.RegisterRequest{
			Email: "ALICE@example.com", Password: "password123", DisplayName: "Other",
		}))
		assertCode(t, connect.CodeAlreadyExists, err)
	})

	t.Run("weak password", func(t *testing.T) {
		_, err := env.auth.Register(ctx, connect.NewRequest(&api.RegisterRequest{
			Email: "bob@example.com", Password: "short", DisplayName: "Bob",
		}))
		assertCode(t, connect.CodeInvalidArgument, err)
	})

	t.Run("missing display name", func(t *testing.T) {
		_, err := env.auth.Register(ctx, connect.NewRequest(&api.RegisterRequest{
			Email: "bob@example.com", Password: "password123",
		}))
		assertCode(t, connect.CodeInvalidArgument, err)
	})

	t.Run("login", func(t *testing.T) {
		resp, err := env.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{
			Email: "alice@example.com", Password: "password123",
		}))
		require.NoError(t, err)
		assert.Equal(t, alice.ID, resp.Msg.User.ID)
		assert.NotEmpty(t, resp.Msg.Token)
		assert.NotNil(t, resp.Msg.ExpiresAt)
	})

	t.Run("login with wrong password", func(t *testing.T) {
		_, err := env.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{
			Email: "alice@example.com", Password: "wrong-password",
		}))
		assertCode(t, connect.CodeUnauthenticated, err)
	})
}

func TestGetCurrentUser(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	alice := env.register(t, "alice")

	resp, err := env.auth.GetCurrentUser(ctx, as(alice, &api.GetCurrentUserRequest{}))
	require.NoError(t, err)
	assert.Equal(t, alice.ID, resp.Msg.User.ID)
	assert.Equal(t, "alice", resp.Msg.User.DisplayName)
	assert.NotNil(t, resp.Msg.User.CreatedAt)

	_, err = env.auth.GetCurrentUser(ctx, as(nil, &api.GetCurrentUserRequest{}))
	assertCode(t, connect.CodeUnauthenticated, err)

	_, err = env.auth.Logout(ctx, as(alice, &api.LogoutRequest{}))
	assert.NoError(t, err)
}
