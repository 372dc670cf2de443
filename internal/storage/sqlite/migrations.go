package sqlite

import "database/sql"

// migrations contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist.
// IMPORTANT: Kitties must be created BEFORE members/expenses/settlements
// due to foreign key constraints.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    display_name TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS kitties (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    currency TEXT NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS members (
    id TEXT PRIMARY KEY,
    kitty_id TEXT NOT NULL,
    user_id TEXT,
    email TEXT,
    name TEXT NOT NULL,
    is_owner INTEGER NOT NULL DEFAULT 0,
    FOREIGN KEY (kitty_id) REFERENCES kitties(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS expenses (
    id TEXT PRIMARY KEY,
    kitty_id TEXT NOT NULL,
    title TEXT NOT NULL,
    amount REAL NOT NULL,
    payer_key TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    FOREIGN KEY (kitty_id) REFERENCES kitties(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS expense_participants (
    expense_id TEXT NOT NULL,
    participant_key TEXT NOT NULL,
    PRIMARY KEY (expense_id, participant_key),
    FOREIGN KEY (expense_id) REFERENCES expenses(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS settlements (
    id TEXT PRIMARY KEY,
    kitty_id TEXT NOT NULL,
    from_key TEXT NOT NULL,
    from_name TEXT NOT NULL,
    to_key TEXT NOT NULL,
    to_name TEXT NOT NULL,
    amount REAL NOT NULL,
    settled INTEGER NOT NULL DEFAULT 0,
    created_at INTEGER NOT NULL,
    FOREIGN KEY (kitty_id) REFERENCES kitties(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_members_kitty_id ON members(kitty_id);
CREATE INDEX IF NOT EXISTS idx_members_user_id ON members(user_id);
CREATE INDEX IF NOT EXISTS idx_expenses_kitty_id ON expenses(kitty_id);
CREATE INDEX IF NOT EXISTS idx_expense_participants_expense_id ON expense_participants(expense_id);
CREATE INDEX IF NOT EXISTS idx_settlements_kitty_id ON settlements(kitty_id);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
