// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/anmolv/kittysplit/internal/models"
)

// ErrNotFound is wrapped by store implementations when a requested record
// does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the interface for kitty storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// CreateUser persists a new registered user.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves a user by email.
	// Returns (nil, nil) if no such user exists.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves a user by ID.
	// Returns (nil, nil) if no such user exists.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// CreateKitty persists a new kitty together with its owner member.
	// IDs and CreatedAt are populated by the store if unset.
	CreateKitty(ctx context.Context, kitty *models.Kitty, owner *models.Member) error

	// GetKitty retrieves a kitty by ID.
	GetKitty(ctx context.Context, kittyID string) (*models.Kitty, error)

	// ListKittiesForUser retrieves the kitties a registered user belongs to.
	ListKittiesForUser(ctx context.Context, userID string) ([]*models.Kitty, error)

	// AddMember persists a new member. The surrogate ID is assigned here
	// if unset.
	AddMember(ctx context.Context, member *models.Member) error

	// RemoveMember deletes a member from a kitty. Expenses referencing the
	// member are left in place; the balance engine skips dangling
	// references.
	RemoveMember(ctx context.Context, kittyID, memberID string) error

	// ListMembers retrieves a kitty's members in insertion order, so
	// downstream balance and plan computations see a stable ordering.
	ListMembers(ctx context.Context, kittyID string) ([]*models.Member, error)

	// CreateExpense persists a new expense with its participant set.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// ListExpenses retrieves a kitty's expenses, oldest first.
	ListExpenses(ctx context.Context, kittyID string) ([]*models.Expense, error)

	// DeleteExpense removes an expense from a kitty.
	DeleteExpense(ctx context.Context, kittyID, expenseID string) error

	// ListSettlements retrieves a kitty's settlement records, oldest first.
	ListSettlements(ctx context.Context, kittyID string) ([]*models.Settlement, error)

	// ReplaceSettlements atomically replaces a kitty's full settlement
	// array. Callers read-modify-write the whole array on every toggle so
	// concurrent toggles cannot lose updates to individual records.
	ReplaceSettlements(ctx context.Context, kittyID string, settlements []*models.Settlement) error

	// Close releases any resources held by the store.
	Close() error
}
