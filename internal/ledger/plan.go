package ledger

import (
	"math"
	"sort"
)

// Epsilon is the balance floor below which a member is treated as settled:
// one currency minor unit.
const Epsilon = 0.01

// Transaction is a directed member-to-member repayment proposed by the
// planner. From always owes money, To is always owed.
type Transaction struct {
	FromKey  string
	FromName string
	ToKey    string
	ToName   string
	Amount   float64
}

// Round2 rounds an amount to 2 decimal places for display and persistence.
func Round2(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// PlanSettlements computes the list of transactions that zeroes all net
// balances, using greedy largest-debtor/largest-creditor matching.
//
// The greedy heuristic is not provably minimal for adversarial balance
// distributions (an exact minimum requires subset-sum search), but it emits
// at most debtors+creditors-1 transactions since every step exhausts at
// least one party.
//
// Amounts are rounded to 2 decimals at emission time only; intermediate
// balances stay unrounded so rounding error does not compound across
// transactions. Sort ties keep the input entry order, so a stable member
// ordering upstream yields a reproducible plan.
func PlanSettlements(entries []Entry) []Transaction {
	var debtors, creditors []Entry
	for _, e := range entries {
		switch {
		case e.Net > Epsilon:
			debtors = append(debtors, e)
		case e.Net < -Epsilon:
			creditors = append(creditors, e)
		}
	}

	sort.SliceStable(debtors, func(i, j int) bool {
		return debtors[i].Net > debtors[j].Net
	})
	sort.SliceStable(creditors, func(i, j int) bool {
		return creditors[i].Net < creditors[j].Net
	})

	owes := make([]float64, len(debtors))
	for i, d := range debtors {
		owes[i] = d.Net
	}
	due := make([]float64, len(creditors))
	for j, c := range creditors {
		due[j] = -c.Net
	}

	var plan []Transaction
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		amount := math.Min(owes[i], due[j])
		if amount > Epsilon {
			plan = append(plan, Transaction{
				FromKey:  debtors[i].Key,
				FromName: debtors[i].Name,
				ToKey:    creditors[j].Key,
				ToName:   creditors[j].Name,
				Amount:   Round2(amount),
			})
		}
		owes[i] -= amount
		due[j] -= amount
		if owes[i] <= Epsilon {
			i++
		}
		if due[j] <= Epsilon {
			j++
		}
	}
	return plan
}
