// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/anmolv/kittysplit/internal/models"
	"github.com/anmolv/kittysplit/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Open database with pure Go driver
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// Run migrations
	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateKitty persists a new kitty and its owner member in one transaction.
func (s *SQLiteStore) CreateKitty(ctx context.Context, kitty *models.Kitty, owner *models.Member) error {
	if kitty.ID == "" {
		kitty.ID = uuid.New().String()
	}
	if kitty.CreatedAt == 0 {
		kitty.CreatedAt = time.Now().Unix()
	}
	if owner.ID == "" {
		owner.ID = uuid.New().String()
	}
	owner.KittyID = kitty.ID
	owner.IsOwner = true

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO kitties (id, name, currency, created_at) VALUES (?, ?, ?, ?)",
		kitty.ID, kitty.Name, kitty.Currency, kitty.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert kitty: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO members (id, kitty_id, user_id, email, name, is_owner) VALUES (?, ?, ?, ?, ?, 1)",
		owner.ID, owner.KittyID, nullable(owner.UserID), nullable(owner.Email), owner.Name,
	)
	if err != nil {
		return fmt.Errorf("failed to insert owner member: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetKitty retrieves a kitty by ID.
func (s *SQLiteStore) GetKitty(ctx context.Context, kittyID string) (*models.Kitty, error) {
	kitty := &models.Kitty{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, currency, created_at FROM kitties WHERE id = ?",
		kittyID,
	).Scan(&kitty.ID, &kitty.Name, &kitty.Currency, &kitty.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("kitty %s: %w", kittyID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get kitty: %w", err)
	}
	return kitty, nil
}

// ListKittiesForUser retrieves all kitties the user is a member of,
// newest first.
func (s *SQLiteStore) ListKittiesForUser(ctx context.Context, userID string) ([]*models.Kitty, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT k.id, k.name, k.currency, k.created_at
		 FROM kitties k
		 JOIN members m ON m.kitty_id = k.id
		 WHERE m.user_id = ?
		 ORDER BY k.created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list kitties: %w", err)
	}
	defer rows.Close()

	var kitties []*models.Kitty
	for rows.Next() {
		kitty := &models.Kitty{}
		if err := rows.Scan(&kitty.ID, &kitty.Name, &kitty.Currency, &kitty.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan kitty: %w", err)
		}
		kitties = append(kitties, kitty)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate kitties: %w", err)
	}
	return kitties, nil
}

// AddMember persists a new member, assigning the surrogate ID if unset.
func (s *SQLiteStore) AddMember(ctx context.Context, member *models.Member) error {
	if member.ID == "" {
		member.ID = uuid.New().String()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO members (id, kitty_id, user_id, email, name, is_owner) VALUES (?, ?, ?, ?, ?, ?)",
		member.ID, member.KittyID, nullable(member.UserID), nullable(member.Email), member.Name, member.IsOwner,
	)
	if err != nil {
		return fmt.Errorf("failed to insert member: %w", err)
	}
	return nil
}

// RemoveMember deletes a member. Expense rows referencing the member stay;
// the balance engine skips dangling references.
func (s *SQLiteStore) RemoveMember(ctx context.Context, kittyID, memberID string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM members WHERE kitty_id = ? AND id = ?",
		kittyID, memberID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete member: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("member %s: %w", memberID, storage.ErrNotFound)
	}
	return nil
}

// ListMembers retrieves a kitty's members in insertion order.
func (s *SQLiteStore) ListMembers(ctx context.Context, kittyID string) ([]*models.Member, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, kitty_id, user_id, email, name, is_owner
		 FROM members WHERE kitty_id = ? ORDER BY rowid`,
		kittyID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []*models.Member
	for rows.Next() {
		member := &models.Member{}
		var userID, email sql.NullString
		if err := rows.Scan(&member.ID, &member.KittyID, &userID, &email, &member.Name, &member.IsOwner); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		member.UserID = userID.String
		member.Email = email.String
		members = append(members, member)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}
	return members, nil
}

// nullable maps an empty string to SQL NULL.
func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
