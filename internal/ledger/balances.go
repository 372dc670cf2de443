package ledger

// Expense is an expense view with the minimal information needed for
// balance calculations.
type Expense struct {
	Amount       float64
	PayerKey     string
	Participants []string
}

// Entry holds one member's derived totals for a point-in-time snapshot of
// expenses.
type Entry struct {
	Key  string
	Name string
	Paid float64 // Total amount paid across all expenses
	Owed float64 // Total fair share across participated expenses
	Net  float64 // Owed - Paid; positive = owes money, negative = is owed
}

// ComputeBalances folds a list of expenses into one Entry per member.
//
// For each expense the full amount is credited to the payer's Paid and an
// equal per-head share is added to each participant's Owed. References to
// members no longer in the list are skipped silently: a removed payer's
// contribution is dropped, and a removed participant's share is absorbed
// rather than redistributed. This keeps historical expenses viewable after
// membership changes.
//
// Expenses with a non-positive amount or no participants contribute
// nothing; upstream validation should have rejected them already.
//
// The function is pure and order-independent. Entries are returned in
// member-list order so callers get reproducible downstream plans.
func ComputeBalances(members []Member, expenses []Expense) []Entry {
	entries := make([]Entry, len(members))
	index := make(map[string]*Entry, len(members))
	for i, m := range members {
		entries[i] = Entry{Key: KeyOf(m), Name: m.Name}
		index[entries[i].Key] = &entries[i]
	}

	for _, exp := range expenses {
		if exp.Amount <= 0 || len(exp.Participants) == 0 {
			continue
		}
		if payer, ok := index[exp.PayerKey]; ok {
			payer.Paid += exp.Amount
		}
		perHead := exp.Amount / float64(len(exp.Participants))
		for _, p := range exp.Participants {
			if entry, ok := index[p]; ok {
				entry.Owed += perHead
			}
		}
	}

	for i := range entries {
		entries[i].Net = entries[i].Owed - entries[i].Paid
	}
	return entries
}
