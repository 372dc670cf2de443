package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anmolv/kittysplit/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	tempDir, err := os.MkdirTemp("", "kittysplit-test-*")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := New(filepath.Join(tempDir, "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func newTestKitty(t *testing.T, store *SQLiteStore) *models.Kitty {
	t.Helper()
	kitty := &models.Kitty{Name: "Flat 4B", Currency: "€"}
	owner := &models.Member{UserID: "user-1", Name: "Alice"}
	require.NoError(t, store.CreateKitty(context.Background(), kitty, owner))
	return kitty
}

func TestCreateKitty(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	kitty := &models.Kitty{Name: "Ski Trip", Currency: "$"}
	owner := &models.Member{UserID: "user-1", Name: "Alice"}
	require.NoError(t, store.CreateKitty(ctx, kitty, owner))

	assert.NotEmpty(t, kitty.ID)
	assert.NotZero(t, kitty.CreatedAt)
	assert.NotEmpty(t, owner.ID)
	assert.True(t, owner.IsOwner)
	assert.Equal(t, kitty.ID, owner.KittyID)

	got, err := store.GetKitty(ctx, kitty.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ski Trip", got.Name)
	assert.Equal(t, "$", got.Currency)

	members, err := store.ListMembers(ctx, kitty.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.True(t, members[0].IsOwner)
	assert.Equal(t, "user-1", members[0].UserID)
}

func TestGetKittyNotFound(t *testing.T) {
	store := newTestStore(t)
	_, err := store.GetKitty(context.Background(), "nonexistent-id")
	assert.Error(t, err)
}

func TestListKittiesForUser(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := newTestKitty(t, store)
	second := &models.Kitty{Name: "Road Trip", Currency: "$", CreatedAt: first.CreatedAt + 10}
	require.NoError(t, store.CreateKitty(ctx, second, &models.Member{UserID: "user-1", Name: "Alice"}))

	// another user's kitty should not appear
	require.NoError(t, store.CreateKitty(ctx,
		&models.Kitty{Name: "Other", Currency: "£"},
		&models.Member{UserID: "user-2", Name: "Bob"}))

	kitties, err := store.ListKittiesForUser(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, kitties, 2)
	assert.Equal(t, "Road Trip", kitties[0].Name) // newest first
	assert.Equal(t, "Flat 4B", kitties[1].Name)
}

func TestMembers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	kitty := newTestKitty(t, store)

	invitee := &models.Member{KittyID: kitty.ID, Email: "bob@example.com", Name: "Bob"}
	require.NoError(t, store.AddMember(ctx, invitee))
	assert.NotEmpty(t, invitee.ID, "surrogate ID must be assigned at creation")

	bare := &models.Member{KittyID: kitty.ID, Name: "Carol"}
	require.NoError(t, store.AddMember(ctx, bare))

	members, err := store.ListMembers(ctx, kitty.ID)
	require.NoError(t, err)
	require.Len(t, members, 3)
	// insertion order preserved
	assert.Equal(t, "Alice", members[0].Name)
	assert.Equal(t, "Bob", members[1].Name)
	assert.Equal(t, "Carol", members[2].Name)
	assert.Equal(t, "bob@example.com", members[1].Email)
	assert.Empty(t, members[2].UserID)
	assert.Empty(t, members[2].Email)

	require.NoError(t, store.RemoveMember(ctx, kitty.ID, invitee.ID))
	members, err = store.ListMembers(ctx, kitty.ID)
	require.NoError(t, err)
	assert.Len(t, members, 2)

	assert.Error(t, store.RemoveMember(ctx, kitty.ID, "nonexistent-id"))
}

func TestExpenses(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	kitty := newTestKitty(t, store)

	expense := &models.Expense{
		KittyID:      kitty.ID,
		Title:        "Groceries",
		Amount:       42.5,
		PayerID:      "user-1",
		Participants: []string{"bob@example.com", "user-1"},
	}
	require.NoError(t, store.CreateExpense(ctx, expense))
	assert.NotEmpty(t, expense.ID)
	assert.NotZero(t, expense.CreatedAt)

	second := &models.Expense{
		KittyID:      kitty.ID,
		Title:        "Fuel",
		Amount:       30,
		PayerID:      "bob@example.com",
		Participants: []string{"user-1"},
		CreatedAt:    expense.CreatedAt + 5,
	}
	require.NoError(t, store.CreateExpense(ctx, second))

	expenses, err := store.ListExpenses(ctx, kitty.ID)
	require.NoError(t, err)
	require.Len(t, expenses, 2)
	assert.Equal(t, "Groceries", expenses[0].Title) // oldest first
	assert.ElementsMatch(t, []string{"user-1", "bob@example.com"}, expenses[0].Participants)
	assert.Equal(t, []string{"user-1"}, expenses[1].Participants)

	require.NoError(t, store.DeleteExpense(ctx, kitty.ID, expense.ID))
	expenses, err = store.ListExpenses(ctx, kitty.ID)
	require.NoError(t, err)
	assert.Len(t, expenses, 1)

	assert.Error(t, store.DeleteExpense(ctx, kitty.ID, "nonexistent-id"))
}

func TestReplaceSettlements(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	kitty := newTestKitty(t, store)

	settlements := []*models.Settlement{
		{FromKey: "bob@example.com", FromName: "Bob", ToKey: "user-1", ToName: "Alice", Amount: 33.33, Settled: true},
	}
	require.NoError(t, store.ReplaceSettlements(ctx, kitty.ID, settlements))
	assert.NotEmpty(t, settlements[0].ID)
	assert.Equal(t, kitty.ID, settlements[0].KittyID)

	got, err := store.ListSettlements(ctx, kitty.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 33.33, got[0].Amount)
	assert.True(t, got[0].Settled)

	// replacement rewrites the whole array: flipped flag plus a new record
	settlements[0].Settled = false
	settlements = append(settlements, &models.Settlement{
		FromKey: "carol@example.com", FromName: "Carol",
		ToKey: "user-1", ToName: "Alice",
		Amount: 12.5, Settled: true,
	})
	require.NoError(t, store.ReplaceSettlements(ctx, kitty.ID, settlements))

	got, err = store.ListSettlements(ctx, kitty.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.False(t, got[0].Settled)
	assert.Equal(t, settlements[0].ID, got[0].ID, "existing record keeps its ID across rewrites")
	assert.True(t, got[1].Settled)
}

func TestUsers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := models.NewUser("alice@example.com", "Alice", "hash")
	require.NoError(t, store.CreateUser(ctx, user))

	byEmail, err := store.GetUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, user.ID, byEmail.ID)
	assert.Equal(t, "Alice", byEmail.DisplayName)

	byID, err := store.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "alice@example.com", byID.Email)

	missing, err := store.GetUserByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)

	// duplicate email rejected by the unique constraint
	assert.Error(t, store.CreateUser(ctx, models.NewUser("alice@example.com", "Alice 2", "hash2")))
}
