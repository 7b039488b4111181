// Package core holds the record types shared by storage, transport and the
// derivation layer, plus the category sign convention applied before any
// aggregation.
package core

import "math"

// CategoryKind classifies a transaction category as income or expense.
type CategoryKind int

const (
	KindExpense CategoryKind = iota
	KindIncome
)

// incomeCategories is the single source of the income convention. Every
// other category is an expense.
var incomeCategories = map[string]struct{}{
	"Salary":      {},
	"Freelancing": {},
}

// KindOf returns the kind for a category name.
func KindOf(category string) CategoryKind {
	if _, ok := incomeCategories[category]; ok {
		return KindIncome
	}
	return KindExpense
}

// SignedAmount normalizes a transaction amount for aggregation: income
// amounts keep their sign, expense amounts are forced negative.
func SignedAmount(t Transaction) float64 {
	if KindOf(t.Category) == KindIncome {
		return t.Amount
	}
	return -math.Abs(t.Amount)
}
