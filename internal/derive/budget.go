// Package derive contains the pure derivation layer: every function takes a
// read-only snapshot of records (plus parameters such as a reference clock)
// and returns a display-ready view model. Nothing here touches storage or
// mutates its inputs.
package derive

import (
	"math"

	"fintrack/internal/core"
)

// BudgetStatus is the derived row shown in the budget table.
type BudgetStatus struct {
	ID             string  `json:"_id"`
	UserID         string  `json:"userId"`
	Category       string  `json:"category"`
	Budget         float64 `json:"budget"`
	ActualSpending float64 `json:"actualSpending"`
	Difference     float64 `json:"difference"`
	Status         string  `json:"status"`
}

// BudgetStatusFor recomputes actual spending for one budget from the full
// transaction snapshot: the lifetime sum of raw amounts in the budget's
// category. Difference is reported as an absolute value; the sign lives in
// the status message.
func BudgetStatusFor(b core.BudgetRecord, transactions []core.Transaction) BudgetStatus {
	var actual float64
	for _, tx := range transactions {
		if tx.Category == b.Category {
			actual += tx.Amount
		}
	}

	diff := b.Budget - actual
	var status string
	switch {
	case diff > 0:
		status = "Under budget by " + core.FormatAmount(diff)
	case diff < 0:
		status = "Over budget by " + core.FormatAmount(-diff)
	default:
		status = "Exactly on budget"
	}

	return BudgetStatus{
		ID:             b.ID,
		UserID:         b.UserID,
		Category:       b.Category,
		Budget:         b.Budget,
		ActualSpending: actual,
		Difference:     math.Abs(diff),
		Status:         status,
	}
}

// BudgetStatuses derives one status row per budget record, in snapshot order.
func BudgetStatuses(budgets []core.BudgetRecord, transactions []core.Transaction) []BudgetStatus {
	out := make([]BudgetStatus, len(budgets))
	for i, b := range budgets {
		out[i] = BudgetStatusFor(b, transactions)
	}
	return out
}
