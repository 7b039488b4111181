package derive

import (
	"testing"
	"time"

	"fintrack/internal/core"
)

func tx(category string, amount float64, date time.Time) core.Transaction {
	return core.Transaction{
		UserID:   "u1",
		Date:     date,
		Amount:   amount,
		Category: category,
	}
}

func TestBudgetStatusFor(t *testing.T) {
	d1 := time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		budget     core.BudgetRecord
		txs        []core.Transaction
		wantActual float64
		wantDiff   float64
		wantStatus string
	}{
		{
			name:   "over budget",
			budget: core.BudgetRecord{Category: "Food", Budget: 150},
			txs: []core.Transaction{
				tx("Salary", 1000, d1),
				tx("Food", 200, d1),
			},
			wantActual: 200,
			wantDiff:   50,
			wantStatus: "Over budget by 50",
		},
		{
			name:   "under budget",
			budget: core.BudgetRecord{Category: "Rent", Budget: 800},
			txs: []core.Transaction{
				tx("Rent", 500, d1),
				tx("Food", 40, d1),
			},
			wantActual: 500,
			wantDiff:   300,
			wantStatus: "Under budget by 300",
		},
		{
			name:   "exactly on budget",
			budget: core.BudgetRecord{Category: "Utilities", Budget: 120},
			txs: []core.Transaction{
				tx("Utilities", 70, d1),
				tx("Utilities", 50, d1),
			},
			wantActual: 120,
			wantDiff:   0,
			wantStatus: "Exactly on budget",
		},
		{
			name:       "no matching transactions",
			budget:     core.BudgetRecord{Category: "Entertainment", Budget: 60},
			txs:        []core.Transaction{tx("Food", 10, d1)},
			wantActual: 0,
			wantDiff:   60,
			wantStatus: "Under budget by 60",
		},
		{
			name:   "fractional difference",
			budget: core.BudgetRecord{Category: "Food", Budget: 100},
			txs:    []core.Transaction{tx("Food", 100.5, d1)},
			wantActual: 100.5,
			wantDiff:   0.5,
			wantStatus: "Over budget by 0.5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BudgetStatusFor(tt.budget, tt.txs)
			if got.ActualSpending != tt.wantActual {
				t.Errorf("ActualSpending = %v, want %v", got.ActualSpending, tt.wantActual)
			}
			if got.Difference != tt.wantDiff {
				t.Errorf("Difference = %v, want %v", got.Difference, tt.wantDiff)
			}
			if got.Status != tt.wantStatus {
				t.Errorf("Status = %q, want %q", got.Status, tt.wantStatus)
			}
		})
	}
}

func TestBudgetStatusForIdempotent(t *testing.T) {
	budget := core.BudgetRecord{Category: "Food", Budget: 150}
	txs := []core.Transaction{
		tx("Food", 20, time.Now()),
		tx("Food", 35.5, time.Now()),
	}

	first := BudgetStatusFor(budget, txs)
	second := BudgetStatusFor(budget, txs)
	if first != second {
		t.Errorf("re-invocation with unchanged snapshot changed result: %+v vs %+v", first, second)
	}
}

func TestBudgetStatusesPreservesOrder(t *testing.T) {
	budgets := []core.BudgetRecord{
		{ID: "b1", Category: "Food", Budget: 100},
		{ID: "b2", Category: "Rent", Budget: 900},
	}
	got := BudgetStatuses(budgets, nil)
	if len(got) != 2 || got[0].ID != "b1" || got[1].ID != "b2" {
		t.Fatalf("statuses out of order: %+v", got)
	}
}
