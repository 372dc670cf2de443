package ledger

// Record is a settlement view with the minimal information needed for
// reconciliation against a freshly computed plan.
type Record struct {
	ID      string
	FromKey string
	ToKey   string
	Amount  float64
	Settled bool
}

// PlannedSettlement is a proposed transaction annotated with its persisted
// settlement status, if any.
type PlannedSettlement struct {
	Transaction
	// RecordID is the matched settlement's ID, or empty if the transaction
	// has never been toggled.
	RecordID string
	// Settled reports whether the matched record is currently marked paid.
	Settled bool
}

// MatchSettlements annotates each planned transaction with the settlement
// record it corresponds to, matching on exact (from, to, amount) equality
// after 2-decimal rounding. No fuzzy matching: if balances shift and a
// transaction's amount changes by a cent, a previously settled record no
// longer matches and the transaction shows as pending again. The old record
// stays behind as history.
func MatchSettlements(plan []Transaction, records []Record) []PlannedSettlement {
	out := make([]PlannedSettlement, len(plan))
	for i, txn := range plan {
		out[i] = PlannedSettlement{Transaction: txn}
		if rec, ok := FindRecord(records, txn.FromKey, txn.ToKey, txn.Amount); ok {
			out[i].RecordID = rec.ID
			out[i].Settled = rec.Settled
		}
	}
	return out
}

// FindRecord locates the settlement record for a (from, to, amount) triple.
// The amount is compared after rounding, matching how records are persisted.
func FindRecord(records []Record, fromKey, toKey string, amount float64) (Record, bool) {
	amount = Round2(amount)
	for _, rec := range records {
		if rec.FromKey == fromKey && rec.ToKey == toKey && Round2(rec.Amount) == amount {
			return rec, true
		}
	}
	return Record{}, false
}
