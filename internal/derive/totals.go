package derive

import "fintrack/internal/core"

// Totals is the dashboard headline: lifetime income, expenses and what is
// left over. Expenses accumulate raw amounts, so the value is positive for
// normally entered records.
type Totals struct {
	Income    float64 `json:"income"`
	Expenses  float64 `json:"expenses"`
	Available float64 `json:"available"`
}

// DashboardTotals splits the transaction snapshot by category kind and sums
// each side.
func DashboardTotals(transactions []core.Transaction) Totals {
	var t Totals
	for _, tx := range transactions {
		if core.KindOf(tx.Category) == core.KindIncome {
			t.Income += tx.Amount
		} else {
			t.Expenses += tx.Amount
		}
	}
	t.Available = t.Income - t.Expenses
	return t
}
