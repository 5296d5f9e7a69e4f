package service

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/walletwise/internal/auth"
	"github.com/mmynk/walletwise/internal/calculator"
	"github.com/mmynk/walletwise/internal/middleware"
	"github.com/mmynk/walletwise/internal/models"
	"github.com/mmynk/walletwise/internal/storage/sqlstore"
	"github.com/mmynk/walletwise/pkg/api"
	"github.com/mmynk/walletwise/pkg/api/apiconnect"
)

// testEnv is a running set of services backed by a temp SQLite database.
type testEnv struct {
	store        *sqlstore.SQLStore
	auth         apiconnect.AuthServiceClient
	wallets      apiconnect.WalletServiceClient
	categories   apiconnect.CategoryServiceClient
	transactions apiconnect.TransactionServiceClient
	settlements  apiconnect.SettlementServiceClient
}

// testUser is a registered user and their session token.
type testUser struct {
	ID    string
	Email string
	Token string
}

func setupTestServer(t *testing.T) *testEnv {
	t.Helper()

	store, err := sqlstore.New(sqlstore.DriverSQLite, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err, "failed to create store")
	t.Cleanup(func() { store.Close() })

	ctx := context.Background()
	for _, c := range models.DefaultCategories {
		category := c
		require.NoError(t, store.UpsertSystemCategory(ctx, &category))
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	engine := calculator.NewEngine(calculator.DefaultPolicy())

	public := connect.WithInterceptors(middleware.OptionalAuth(jwtManager))
	private := connect.WithInterceptors(middleware.RequireAuth(jwtManager))

	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewAuthServiceHandler(
		NewAuthService(auth.NewPasswordAuthenticator(store), jwtManager, store, logger), public))
	mux.Handle(apiconnect.NewCategoryServiceHandler(NewCategoryService(store, logger), public))
	mux.Handle(apiconnect.NewWalletServiceHandler(NewWalletService(store, engine, "COP", logger), private))
	mux.Handle(apiconnect.NewTransactionServiceHandler(NewTransactionService(store, logger), private))
	mux.Handle(apiconnect.NewSettlementServiceHandler(NewSettlementService(store, logger), private))

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client := server.Client()
	return &testEnv{
		store:        store,
		auth:         apiconnect.NewAuthServiceClient(client, server.URL),
		wallets:      apiconnect.NewWalletServiceClient(client, server.URL),
		categories:   apiconnect.NewCategoryServiceClient(client, server.URL),
		transactions: apiconnect.NewTransactionServiceClient(client, server.URL),
		settlements:  apiconnect.NewSettlementServiceClient(client, server.URL),
	}
}

// as builds a request authenticated as u. A nil u sends no token.
func as[T any](u *testUser, msg *T) *connect.Request[T] {
	req := connect.NewRequest(msg)
	if u != nil {
		req.Header().Set("Authorization", "Bearer "+u.Token)
	}
	return req
}

func (e *testEnv) register(t *testing.T, name string) *testUser {
	t.Helper()
	email := name + "@example.com"
	resp, err := e.auth.Register(context.Background(), connect.NewRequest(&api.RegisterRequest{
		Email:       email,
		Password:    "password123",
		DisplayName: name,
	}))
	require.NoError(t, err, "Register %s", name)
	return &testUser{ID: resp.Msg.User.ID, Email: email, Token: resp.Msg.Token}
}

// groupWallet creates a GROUP wallet owned by owner with the given members.
func (e *testEnv) groupWallet(t *testing.T, owner *testUser, members ...*testUser) string {
	t.Helper()
	ctx := context.Background()
	resp, err := e.wallets.CreateWallet(ctx, as(owner, &api.CreateWalletRequest{Name: "Roommates", Type: "GROUP"}))
	require.NoError(t, err)
	walletID := resp.Msg.Wallet.ID

	for _, m := range members {
		_, err := e.wallets.AddMember(ctx, as(owner, &api.AddMemberRequest{WalletID: walletID, Email: m.Email}))
		require.NoError(t, err, "AddMember %s", m.Email)
	}
	return walletID
}

// categoryID returns the ID of the system category with the given name.
func (e *testEnv) categoryID(t *testing.T, name string) string {
	t.Helper()
	resp, err := e.categories.ListCategories(context.Background(), as(nil, &api.ListCategoriesRequest{}))
	require.NoError(t, err)
	for _, c := range resp.Msg.Categories {
		if c.Name == name {
			return c.ID
		}
	}
	t.Fatalf("no category named %q", name)
	return ""
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, d(want).Equal(got), "got %s, want %s", got, want)
}

func assertCode(t *testing.T, want connect.Code, err error) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, want, connect.CodeOf(err), "error: %v", err)
}
