// Package models defines the core domain models for Kittysplit.
//
// # Models
//
//   - Kitty: a named group sharing expenses, with a single display currency
//   - Member: a person in a kitty; either a registered user or an
//     email-only invitee added before they create an account
//   - Expense: a shared cost paid by one member and split equally among
//     its participants
//   - Settlement: a persisted, toggleable marker that a proposed
//     member-to-member repayment has been paid outside the system
//   - User: a registered account (login, display name)
//
// # Design Principles
//
// 1. **Stable identity**: every member gets a surrogate ID at creation time,
// so ledger matching never depends on a value derived at read time.
// 2. **Avoid circular references**: relationships use ID strings, not
// pointers.
// 3. **Derived data stays out**: balances and settlement plans are computed
// from members and expenses on every read; they are never stored here.
package models
