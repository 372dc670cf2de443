package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/anmolv/kittysplit/internal/models"
)

// ListSettlements retrieves a kitty's settlement records, oldest first.
func (s *SQLiteStore) ListSettlements(ctx context.Context, kittyID string) ([]*models.Settlement, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, kitty_id, from_key, from_name, to_key, to_name, amount, settled, created_at
		 FROM settlements WHERE kitty_id = ? ORDER BY created_at, rowid`,
		kittyID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}
	defer rows.Close()

	var settlements []*models.Settlement
	for rows.Next() {
		settlement := &models.Settlement{}
		if err := rows.Scan(&settlement.ID, &settlement.KittyID,
			&settlement.FromKey, &settlement.FromName,
			&settlement.ToKey, &settlement.ToName,
			&settlement.Amount, &settlement.Settled, &settlement.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan settlement: %w", err)
		}
		settlements = append(settlements, settlement)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate settlements: %w", err)
	}
	return settlements, nil
}

// ReplaceSettlements atomically replaces the kitty's full settlement array.
// The whole array is rewritten on every toggle so a toggle never patches a
// record another writer has since replaced.
func (s *SQLiteStore) ReplaceSettlements(ctx context.Context, kittyID string, settlements []*models.Settlement) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM settlements WHERE kitty_id = ?", kittyID); err != nil {
		return fmt.Errorf("failed to clear settlements: %w", err)
	}

	for _, settlement := range settlements {
		if settlement.ID == "" {
			settlement.ID = uuid.New().String()
		}
		if settlement.CreatedAt == 0 {
			settlement.CreatedAt = time.Now().Unix()
		}
		settlement.KittyID = kittyID

		_, err := tx.ExecContext(ctx,
			`INSERT INTO settlements (id, kitty_id, from_key, from_name, to_key, to_name, amount, settled, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			settlement.ID, settlement.KittyID,
			settlement.FromKey, settlement.FromName,
			settlement.ToKey, settlement.ToName,
			settlement.Amount, settlement.Settled, settlement.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert settlement: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
