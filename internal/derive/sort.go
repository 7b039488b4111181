package derive

import (
	"sort"
	"time"

	"fintrack/internal/core"
)

// Direction is one leg of the tri-state sort cycle.
type Direction int

const (
	Unsorted Direction = iota
	Ascending
	Descending
)

// SortState names the active sort column and direction for a table.
type SortState struct {
	Field     string
	Direction Direction
}

// Toggle advances the cycle for a column activation: a fresh column starts
// ascending; repeated activations go ascending → descending → unsorted.
func (s SortState) Toggle(field string) SortState {
	if s.Field != field {
		return SortState{Field: field, Direction: Ascending}
	}
	switch s.Direction {
	case Ascending:
		return SortState{Field: field, Direction: Descending}
	case Descending:
		return SortState{Field: field, Direction: Unsorted}
	default:
		return SortState{Field: field, Direction: Ascending}
	}
}

// Field is one sortable column: exactly one of Numeric or Text is set.
// Derived columns (such as a debt's total due) supply an accessor that
// computes the value, so tables never reach into records by string key.
type Field[T any] struct {
	Numeric func(T) float64
	Text    func(T) string
}

// FieldSet enumerates the sortable columns of one record kind.
type FieldSet[T any] map[string]Field[T]

// SortBy returns a sorted copy of items. The unsorted state, or an unknown
// field name, returns the items in their original (storage) order. The input
// slice is never mutated.
func SortBy[T any](items []T, fields FieldSet[T], state SortState) []T {
	out := make([]T, len(items))
	copy(out, items)

	if state.Direction == Unsorted {
		return out
	}
	f, ok := fields[state.Field]
	if !ok {
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		if f.Numeric != nil {
			a, b := f.Numeric(out[i]), f.Numeric(out[j])
			if state.Direction == Ascending {
				return a < b
			}
			return a > b
		}
		a, b := f.Text(out[i]), f.Text(out[j])
		if state.Direction == Ascending {
			return a < b
		}
		return a > b
	})
	return out
}

// Sortable columns per table, matching the columns the record tables expose.
var (
	DebtFields = FieldSet[core.DebtRecord]{
		"category":     {Text: func(d core.DebtRecord) string { return d.Category }},
		"amount":       {Numeric: func(d core.DebtRecord) float64 { return d.Amount }},
		"interestRate": {Numeric: func(d core.DebtRecord) float64 { return d.InterestRate }},
		"dueDate":      {Text: func(d core.DebtRecord) string { return d.DueDate.Format(time.RFC3339) }},
		"totalDue":     {Numeric: TotalDue},
	}

	GoalFields = FieldSet[core.SavingGoal]{
		"goalName":        {Text: func(g core.SavingGoal) string { return g.GoalName }},
		"targetAmount":    {Numeric: func(g core.SavingGoal) float64 { return g.TargetAmount }},
		"remainingAmount": {Numeric: func(g core.SavingGoal) float64 { return g.RemainingAmount }},
		"deadline":        {Text: func(g core.SavingGoal) string { return g.Deadline.Format(time.RFC3339) }},
	}

	BudgetFields = FieldSet[BudgetStatus]{
		"category":       {Text: func(b BudgetStatus) string { return b.Category }},
		"budget":         {Numeric: func(b BudgetStatus) float64 { return b.Budget }},
		"actualSpending": {Numeric: func(b BudgetStatus) float64 { return b.ActualSpending }},
		"difference":     {Numeric: func(b BudgetStatus) float64 { return b.Difference }},
		"status":         {Text: func(b BudgetStatus) string { return b.Status }},
	}
)
