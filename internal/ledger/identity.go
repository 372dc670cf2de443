package ledger

// Member is a member view with the minimal information needed for balance
// calculations.
type Member struct {
	// SurrogateID is the persisted ID assigned when the member was added.
	SurrogateID string
	// UserID is the registered account ID, if the member has one.
	UserID string
	// Email is the member's email, if known.
	Email string
	// Name is the display name carried through to ledger entries and
	// settlements.
	Name string
}

// KeyOf returns the canonical identity key for a member, so payer and
// participant references in expenses can be compared for equality
// regardless of whether the member is a registered user or an email-only
// invitee.
//
// Preference order: registered user ID, then email, then the persisted
// surrogate ID. The surrogate is assigned at member creation and stored,
// never derived at read time, so every branch yields a key that is stable
// across recomputation runs.
func KeyOf(m Member) string {
	if m.UserID != "" {
		return m.UserID
	}
	if m.Email != "" {
		return m.Email
	}
	return m.SurrogateID
}
