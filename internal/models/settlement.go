package models

// Settlement represents a persisted marker that a proposed repayment
// between two members has been paid outside the system.
//
// A settlement is created the first time a user toggles a proposed
// transaction; after that its Settled flag flips on repeat toggles.
// Settlements are never deleted: they are retained as history even if the
// balances later change and the exact transaction no longer appears in the
// current plan.
type Settlement struct {
	// ID is the unique identifier for the settlement (UUID format).
	ID string

	// KittyID is the kitty this settlement belongs to.
	KittyID string

	// FromKey is the identity key of the member who owed (the payer of
	// the settlement).
	FromKey string

	// FromName is the payer's display name at the time of recording.
	FromName string

	// ToKey is the identity key of the member who was owed.
	ToKey string

	// ToName is the receiver's display name at the time of recording.
	ToName string

	// Amount is the settled amount, rounded to 2 decimal places.
	Amount float64

	// Settled reports whether the transaction is currently marked paid.
	Settled bool

	// CreatedAt is the Unix timestamp when the settlement was first
	// recorded.
	CreatedAt int64
}
