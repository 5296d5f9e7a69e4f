package sqlstore

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/walletwise/internal/models"
	"github.com/mmynk/walletwise/internal/storage"
)

func newTestStore(t *testing.T) *SQLStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "nested", "test.db")
	store, err := New(DriverSQLite, dbPath)
	require.NoError(t, err, "failed to create store")
	t.Cleanup(func() { store.Close() })
	return store
}

func createUser(t *testing.T, store *SQLStore, email string) *models.User {
	t.Helper()
	user := models.NewUser(email, "", "hash")
	require.NoError(t, store.CreateUser(context.Background(), user))
	return user
}

func createCategory(t *testing.T, store *SQLStore, categoryType models.CategoryType) *models.Category {
	t.Helper()
	cat := &models.Category{Name: "Food " + string(categoryType), Type: categoryType, IsSystem: true}
	require.NoError(t, store.CreateCategory(context.Background(), cat))
	return cat
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestNew(t *testing.T) {
	t.Run("rejects unknown driver", func(t *testing.T) {
		_, err := New("mysql", "whatever")
		assert.Error(t, err)
	})

	t.Run("migrations are idempotent", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "test.db")
		first, err := New(DriverSQLite, path)
		require.NoError(t, err)
		require.NoError(t, first.Close())

		second, err := New(DriverSQLite, path)
		require.NoError(t, err)
		defer second.Close()
		assert.Equal(t, DriverSQLite, second.Driver())
	})
}

func TestUsers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := createUser(t, store, "alice@example.com")

	t.Run("duplicate email is rejected", func(t *testing.T) {
		err := store.CreateUser(ctx, models.NewUser("alice@example.com", "Other", "hash"))
		assert.ErrorIs(t, err, storage.ErrAlreadyExists)
	})

	t.Run("lookup by email and ID", func(t *testing.T) {
		byEmail, err := store.GetUserByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, alice.ID, byEmail.ID)

		byID, err := store.GetUserByID(ctx, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, alice.Email, byID.Email)
	})

	t.Run("missing user is ErrNotFound", func(t *testing.T) {
		_, err := store.GetUserByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, storage.ErrNotFound)
		_, err = store.GetUserByID(ctx, "nonexistent-id")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("batch lookup omits unknown IDs", func(t *testing.T) {
		bob := createUser(t, store, "bob@example.com")
		users, err := store.GetUsersByIDs(ctx, []string{alice.ID, bob.ID, "ghost"})
		require.NoError(t, err)
		assert.Len(t, users, 2)
		assert.Equal(t, "bob@example.com", users[bob.ID].Email)

		empty, err := store.GetUsersByIDs(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, empty)
	})
}

func TestWallets(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := createUser(t, store, "alice@example.com")
	bob := createUser(t, store, "bob@example.com")
	carol := createUser(t, store, "carol@example.com")

	wallet := &models.Wallet{Name: "Roommates", Type: models.WalletTypeGroup, Currency: "COP", CreatedBy: alice.ID}
	require.NoError(t, store.CreateWallet(ctx, wallet))
	require.NotEmpty(t, wallet.ID)

	t.Run("creator becomes owner", func(t *testing.T) {
		member, err := store.GetMember(ctx, wallet.ID, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, models.RoleOwner, member.Role)
	})

	t.Run("members are listed in join order", func(t *testing.T) {
		require.NoError(t, store.AddMember(ctx, &models.Member{WalletID: wallet.ID, UserID: carol.ID, JoinedAt: wallet.CreatedAt + 10}))
		require.NoError(t, store.AddMember(ctx, &models.Member{WalletID: wallet.ID, UserID: bob.ID, JoinedAt: wallet.CreatedAt + 20}))

		ids, err := store.ListMemberIDs(ctx, wallet.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{alice.ID, carol.ID, bob.ID}, ids)

		members, err := store.ListMembers(ctx, wallet.ID)
		require.NoError(t, err)
		require.Len(t, members, 3)
		assert.Equal(t, models.RoleMember, members[1].Role)
	})

	t.Run("adding an existing member fails", func(t *testing.T) {
		err := store.AddMember(ctx, &models.Member{WalletID: wallet.ID, UserID: bob.ID})
		assert.ErrorIs(t, err, storage.ErrAlreadyExists)
	})

	t.Run("wallets are listed per member", func(t *testing.T) {
		wallets, err := store.ListWalletsByUser(ctx, bob.ID)
		require.NoError(t, err)
		require.Len(t, wallets, 1)
		assert.Equal(t, "Roommates", wallets[0].Name)
		assert.Equal(t, models.WalletTypeGroup, wallets[0].Type)
	})

	t.Run("remove member", func(t *testing.T) {
		require.NoError(t, store.RemoveMember(ctx, wallet.ID, carol.ID))
		_, err := store.GetMember(ctx, wallet.ID, carol.ID)
		assert.ErrorIs(t, err, storage.ErrNotFound)
		assert.ErrorIs(t, store.RemoveMember(ctx, wallet.ID, carol.ID), storage.ErrNotFound)
	})

	t.Run("only owner is kept", func(t *testing.T) {
		err := store.RemoveMember(ctx, wallet.ID, alice.ID)
		assert.ErrorIs(t, err, storage.ErrLastOwner)

		member, err := store.GetMember(ctx, wallet.ID, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, models.RoleOwner, member.Role)
	})

	t.Run("delete cascades to members", func(t *testing.T) {
		require.NoError(t, store.DeleteWallet(ctx, wallet.ID))
		_, err := store.GetWallet(ctx, wallet.ID)
		assert.ErrorIs(t, err, storage.ErrNotFound)

		wallets, err := store.ListWalletsByUser(ctx, alice.ID)
		require.NoError(t, err)
		assert.Empty(t, wallets)

		assert.ErrorIs(t, store.DeleteWallet(ctx, wallet.ID), storage.ErrNotFound)
	})
}

func TestRemoveMemberKeepsAnOwner(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		alice := createUser(t, store, fmt.Sprintf("alice%d@example.com", i))
		bob := createUser(t, store, fmt.Sprintf("bob%d@example.com", i))

		wallet := &models.Wallet{Name: "Shared", Type: models.WalletTypeGroup, Currency: "USD", CreatedBy: alice.ID}
		require.NoError(t, store.CreateWallet(ctx, wallet))
		require.NoError(t, store.AddMember(ctx, &models.Member{WalletID: wallet.ID, UserID: bob.ID, Role: models.RoleOwner}))

		// Each owner removes the other at the same time.
		var wg sync.WaitGroup
		errs := make([]error, 2)
		for j, id := range []string{alice.ID, bob.ID} {
			j, id := j, id
			wg.Add(1)
			go func() {
				defer wg.Done()
				errs[j] = store.RemoveMember(ctx, wallet.ID, id)
			}()
		}
		wg.Wait()

		failed := 0
		for _, err := range errs {
			if err != nil {
				assert.ErrorIs(t, err, storage.ErrLastOwner)
				failed++
			}
		}
		assert.Equal(t, 1, failed, "exactly one removal must be refused")

		members, err := store.ListMembers(ctx, wallet.ID)
		require.NoError(t, err)
		require.Len(t, members, 1)
		assert.Equal(t, models.RoleOwner, members[0].Role)
	}
}

func TestCategories(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := createUser(t, store, "alice@example.com")
	bob := createUser(t, store, "bob@example.com")

	for _, c := range models.DefaultCategories {
		cat := c
		require.NoError(t, store.UpsertSystemCategory(ctx, &cat))
	}

	t.Run("upsert does not duplicate system categories", func(t *testing.T) {
		food := models.Category{Name: "Food", Type: models.CategoryTypeExpense, Description: "Updated"}
		require.NoError(t, store.UpsertSystemCategory(ctx, &food))

		all, err := store.ListCategories(ctx, "", "")
		require.NoError(t, err)
		assert.Len(t, all, len(models.DefaultCategories))

		got, err := store.GetCategory(ctx, food.ID)
		require.NoError(t, err)
		assert.Equal(t, "Updated", got.Description)
		assert.True(t, got.IsSystem)
	})

	custom := &models.Category{Name: "Aardvark care", Type: models.CategoryTypeExpense, CreatedBy: alice.ID}
	require.NoError(t, store.CreateCategory(ctx, custom))

	t.Run("user categories are private and listed after system ones", func(t *testing.T) {
		forAlice, err := store.ListCategories(ctx, alice.ID, models.CategoryTypeExpense)
		require.NoError(t, err)
		require.NotEmpty(t, forAlice)
		assert.Equal(t, custom.ID, forAlice[len(forAlice)-1].ID)
		for _, c := range forAlice {
			assert.Equal(t, models.CategoryTypeExpense, c.Type)
		}

		forBob, err := store.ListCategories(ctx, bob.ID, "")
		require.NoError(t, err)
		for _, c := range forBob {
			assert.NotEqual(t, custom.ID, c.ID)
		}
	})

	t.Run("update and delete", func(t *testing.T) {
		custom.Name = "Pets"
		custom.Description = "Vet, food"
		require.NoError(t, store.UpdateCategory(ctx, custom))

		got, err := store.GetCategory(ctx, custom.ID)
		require.NoError(t, err)
		assert.Equal(t, "Pets", got.Name)

		n, err := store.CountTransactionsByCategory(ctx, custom.ID)
		require.NoError(t, err)
		assert.Zero(t, n)

		require.NoError(t, store.DeleteCategory(ctx, custom.ID))
		_, err = store.GetCategory(ctx, custom.ID)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestTransactions(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := createUser(t, store, "alice@example.com")
	bob := createUser(t, store, "bob@example.com")
	expense := createCategory(t, store, models.CategoryTypeExpense)
	income := createCategory(t, store, models.CategoryTypeIncome)

	wallet := &models.Wallet{Name: "Trip", Type: models.WalletTypeGroup, Currency: "USD", CreatedBy: alice.ID}
	require.NoError(t, store.CreateWallet(ctx, wallet))
	require.NoError(t, store.AddMember(ctx, &models.Member{WalletID: wallet.ID, UserID: bob.ID}))

	dinner := &models.Transaction{
		WalletID:   wallet.ID,
		CategoryID: expense.ID,
		Type:       models.CategoryTypeExpense,
		Amount:     d("100.10"),
		Date:       1000,
		PaidBy:     alice.ID,
		CreatedBy:  alice.ID,
		Splits: []models.Split{
			{OwedBy: bob.ID, Amount: d("50.05")},
			{OwedBy: alice.ID, Amount: d("50.05")},
		},
	}
	require.NoError(t, store.CreateTransaction(ctx, dinner))

	salary := &models.Transaction{
		WalletID:   wallet.ID,
		CategoryID: income.ID,
		Type:       models.CategoryTypeIncome,
		Amount:     d("2000"),
		Date:       2000,
		PaidBy:     alice.ID,
		CreatedBy:  alice.ID,
	}
	require.NoError(t, store.CreateTransaction(ctx, salary))

	t.Run("amounts and split order survive a round trip", func(t *testing.T) {
		got, err := store.GetTransaction(ctx, dinner.ID)
		require.NoError(t, err)
		assert.True(t, d("100.10").Equal(got.Amount), "amount = %s", got.Amount)
		require.Len(t, got.Splits, 2)
		assert.Equal(t, bob.ID, got.Splits[0].OwedBy)
		assert.Equal(t, alice.ID, got.Splits[1].OwedBy)
		assert.True(t, d("50.05").Equal(got.Splits[0].Amount))
	})

	t.Run("list is newest first and paginated", func(t *testing.T) {
		page, err := store.ListTransactionsByWallet(ctx, wallet.ID, 1, 0)
		require.NoError(t, err)
		require.Len(t, page, 1)
		assert.Equal(t, salary.ID, page[0].ID)

		page, err = store.ListTransactionsByWallet(ctx, wallet.ID, 1, 1)
		require.NoError(t, err)
		require.Len(t, page, 1)
		assert.Equal(t, dinner.ID, page[0].ID)
		assert.Len(t, page[0].Splits, 2)
	})

	t.Run("expenses exclude income", func(t *testing.T) {
		expenses, err := store.ListExpensesByWallet(ctx, wallet.ID)
		require.NoError(t, err)
		require.Len(t, expenses, 1)
		assert.Equal(t, dinner.ID, expenses[0].ID)
	})

	t.Run("category usage is counted", func(t *testing.T) {
		n, err := store.CountTransactionsByCategory(ctx, expense.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})

	t.Run("delete removes transaction", func(t *testing.T) {
		require.NoError(t, store.DeleteTransaction(ctx, dinner.ID))
		_, err := store.GetTransaction(ctx, dinner.ID)
		assert.ErrorIs(t, err, storage.ErrNotFound)
		assert.ErrorIs(t, store.DeleteTransaction(ctx, dinner.ID), storage.ErrNotFound)
	})
}

func TestSettlements(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := createUser(t, store, "alice@example.com")
	bob := createUser(t, store, "bob@example.com")

	wallet := &models.Wallet{Name: "Trip", Type: models.WalletTypeGroup, Currency: "USD", CreatedBy: alice.ID}
	require.NoError(t, store.CreateWallet(ctx, wallet))

	older := &models.Settlement{WalletID: wallet.ID, FromUserID: bob.ID, ToUserID: alice.ID, Amount: d("20.5"), Date: 100, CreatedBy: bob.ID}
	newer := &models.Settlement{WalletID: wallet.ID, FromUserID: bob.ID, ToUserID: alice.ID, Amount: d("4.5"), Date: 200, CreatedBy: bob.ID, Note: "rest"}
	require.NoError(t, store.CreateSettlement(ctx, older))
	require.NoError(t, store.CreateSettlement(ctx, newer))
	require.NotEmpty(t, older.ID)
	require.NotZero(t, older.CreatedAt)

	list, err := store.ListSettlementsByWallet(ctx, wallet.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)
	assert.Equal(t, "rest", list[0].Note)
	assert.True(t, d("20.5").Equal(list[1].Amount))

	got, err := store.GetSettlement(ctx, older.ID)
	require.NoError(t, err)
	assert.Equal(t, bob.ID, got.FromUserID)

	require.NoError(t, store.DeleteSettlement(ctx, older.ID))
	_, err = store.GetSettlement(ctx, older.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
