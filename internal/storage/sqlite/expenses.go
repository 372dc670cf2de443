package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/anmolv/kittysplit/internal/models"
	"github.com/anmolv/kittysplit/internal/storage"
)

// CreateExpense persists a new expense with its participant set.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO expenses (id, kitty_id, title, amount, payer_key, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		expense.ID, expense.KittyID, expense.Title, expense.Amount, expense.PayerID, expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for _, participant := range expense.Participants {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO expense_participants (expense_id, participant_key) VALUES (?, ?)",
			expense.ID, participant,
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense participant: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListExpenses retrieves a kitty's expenses with participants, oldest first.
func (s *SQLiteStore) ListExpenses(ctx context.Context, kittyID string) ([]*models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, kitty_id, title, amount, payer_key, created_at
		 FROM expenses WHERE kitty_id = ? ORDER BY created_at, rowid`,
		kittyID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		expense := &models.Expense{}
		if err := rows.Scan(&expense.ID, &expense.KittyID, &expense.Title,
			&expense.Amount, &expense.PayerID, &expense.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	for _, expense := range expenses {
		participants, err := s.listParticipants(ctx, expense.ID)
		if err != nil {
			return nil, err
		}
		expense.Participants = participants
	}
	return expenses, nil
}

func (s *SQLiteStore) listParticipants(ctx context.Context, expenseID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT participant_key FROM expense_participants WHERE expense_id = ? ORDER BY participant_key",
		expenseID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense participants: %w", err)
	}
	defer rows.Close()

	var participants []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participants: %w", err)
	}
	return participants, nil
}

// DeleteExpense removes an expense; participants cascade.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, kittyID, expenseID string) error {
	var exists int
	err := s.db.QueryRowContext(ctx,
		"SELECT 1 FROM expenses WHERE kitty_id = ? AND id = ?",
		kittyID, expenseID,
	).Scan(&exists)
	if err == sql.ErrNoRows {
		return fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to check expense existence: %w", err)
	}

	_, err = s.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", expenseID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	return nil
}
