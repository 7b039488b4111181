package derive

import (
	"testing"
	"time"

	"fintrack/internal/core"
)

func sampleDebts() []core.DebtRecord {
	return []core.DebtRecord{
		{ID: "a", Category: "Mortgage", Amount: 900, InterestRate: 3, DueDate: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "b", Category: "Credit Card", Amount: 300, InterestRate: 19, DueDate: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "c", Category: "Loan", Amount: 500, InterestRate: 7, DueDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)},
	}
}

func debtIDs(debts []core.DebtRecord) []string {
	out := make([]string, len(debts))
	for i, d := range debts {
		out[i] = d.ID
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestToggleCycle(t *testing.T) {
	var s SortState

	s = s.Toggle("amount")
	if s != (SortState{Field: "amount", Direction: Ascending}) {
		t.Fatalf("first click: %+v", s)
	}
	s = s.Toggle("amount")
	if s.Direction != Descending {
		t.Fatalf("second click: %+v", s)
	}
	s = s.Toggle("amount")
	if s.Direction != Unsorted {
		t.Fatalf("third click: %+v", s)
	}

	// Clicking a different column resets to ascending.
	s = SortState{Field: "amount", Direction: Descending}
	s = s.Toggle("category")
	if s != (SortState{Field: "category", Direction: Ascending}) {
		t.Fatalf("column switch: %+v", s)
	}
}

func TestSortByNumeric(t *testing.T) {
	debts := sampleDebts()

	asc := SortBy(debts, DebtFields, SortState{Field: "amount", Direction: Ascending})
	if got := debtIDs(asc); !equalIDs(got, []string{"b", "c", "a"}) {
		t.Errorf("ascending = %v", got)
	}

	desc := SortBy(debts, DebtFields, SortState{Field: "amount", Direction: Descending})
	if got := debtIDs(desc); !equalIDs(got, []string{"a", "c", "b"}) {
		t.Errorf("descending = %v", got)
	}

	// Reversing direction yields the exact reverse permutation.
	for i := range asc {
		if asc[i].ID != desc[len(desc)-1-i].ID {
			t.Fatalf("descending is not the reverse of ascending: %v vs %v", debtIDs(asc), debtIDs(desc))
		}
	}
}

func TestSortByDerivedTotalDue(t *testing.T) {
	debts := sampleDebts()
	// totalDue: a=927, b=357, c=535
	got := SortBy(debts, DebtFields, SortState{Field: "totalDue", Direction: Ascending})
	if ids := debtIDs(got); !equalIDs(ids, []string{"b", "c", "a"}) {
		t.Errorf("totalDue ascending = %v", ids)
	}
}

func TestSortByText(t *testing.T) {
	debts := sampleDebts()
	got := SortBy(debts, DebtFields, SortState{Field: "category", Direction: Ascending})
	if ids := debtIDs(got); !equalIDs(ids, []string{"b", "c", "a"}) {
		t.Errorf("category ascending = %v", ids)
	}
}

func TestThreeClicksRestoreOriginalOrder(t *testing.T) {
	debts := sampleDebts()
	original := debtIDs(debts)

	var s SortState
	var view []core.DebtRecord
	for i := 0; i < 3; i++ {
		s = s.Toggle("interestRate")
		view = SortBy(debts, DebtFields, s)
	}
	if got := debtIDs(view); !equalIDs(got, original) {
		t.Errorf("after full cycle = %v, want storage order %v", got, original)
	}
}

func TestSortByDoesNotMutateInput(t *testing.T) {
	debts := sampleDebts()
	original := debtIDs(debts)

	SortBy(debts, DebtFields, SortState{Field: "amount", Direction: Descending})
	if got := debtIDs(debts); !equalIDs(got, original) {
		t.Errorf("source collection mutated: %v", got)
	}
}

func TestSortByUnknownField(t *testing.T) {
	debts := sampleDebts()
	got := SortBy(debts, DebtFields, SortState{Field: "nope", Direction: Ascending})
	if ids := debtIDs(got); !equalIDs(ids, debtIDs(debts)) {
		t.Errorf("unknown field should keep storage order: %v", ids)
	}
}

func TestGoalAndBudgetFieldSets(t *testing.T) {
	goals := []core.SavingGoal{
		{ID: "g1", GoalName: "Car", TargetAmount: 9000, RemainingAmount: 4000},
		{ID: "g2", GoalName: "Bike", TargetAmount: 800, RemainingAmount: 100},
	}
	sorted := SortBy(goals, GoalFields, SortState{Field: "goalName", Direction: Ascending})
	if sorted[0].ID != "g2" {
		t.Errorf("goalName ascending: %+v", sorted)
	}

	rows := []BudgetStatus{
		{ID: "b1", Category: "Rent", Difference: 10},
		{ID: "b2", Category: "Food", Difference: 250},
	}
	byDiff := SortBy(rows, BudgetFields, SortState{Field: "difference", Direction: Descending})
	if byDiff[0].ID != "b2" {
		t.Errorf("difference descending: %+v", byDiff)
	}
}
