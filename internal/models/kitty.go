package models

// Kitty represents a group of people sharing expenses.
// Each kitty carries a single display currency chosen at creation time;
// no conversion is ever performed.
type Kitty struct {
	// ID is the unique identifier for the kitty (UUID format).
	ID string

	// Name is the display name of the kitty (e.g., "Flat 4B", "Ski Trip").
	Name string

	// Currency is the display symbol prefixed to amounts (e.g., "€", "$").
	// It is a bare symbol string, not an ISO code.
	Currency string

	// CreatedAt is the Unix timestamp when the kitty was created.
	CreatedAt int64
}

// Member represents a person in a kitty.
// A member may be linked to a registered user (UserID set), known only by
// email (invitee), or neither — in which case the surrogate ID is the only
// handle on them.
type Member struct {
	// ID is the surrogate identifier assigned when the member is added
	// (UUID format). It is persisted and stable across recomputation runs.
	ID string

	// KittyID is the kitty this member belongs to.
	KittyID string

	// UserID links this member to a registered user account, if any.
	UserID string

	// Email is the member's email address, if known. Used as the identity
	// key for invitees who have not registered yet.
	Email string

	// Name is the display name shown in balances and settlements.
	Name string

	// IsOwner marks the kitty's owner. Exactly one member per kitty is the
	// owner; the owner cannot be removed.
	IsOwner bool
}

// Expense represents a shared cost paid by one member on behalf of a set
// of participants. The amount is split equally among participants; the
// payer need not be a participant.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// KittyID is the kitty this expense belongs to.
	KittyID string

	// Title is a short human-readable description (e.g., "Groceries").
	Title string

	// Amount is the full expense amount. Must be positive.
	Amount float64

	// PayerID is the identity key of the member who paid.
	PayerID string

	// Participants are the identity keys of the members splitting the
	// expense. Never empty; deduplicated upstream.
	Participants []string

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64
}
