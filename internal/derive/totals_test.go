package derive

import (
	"testing"
	"time"

	"fintrack/internal/core"
)

func TestDashboardTotals(t *testing.T) {
	d := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		txs  []core.Transaction
		want Totals
	}{
		{
			name: "mixed income and expenses",
			txs: []core.Transaction{
				tx("Salary", 2000, d),
				tx("Freelancing", 500, d),
				tx("Food", 300, d),
				tx("Rent", 900, d),
			},
			want: Totals{Income: 2500, Expenses: 1200, Available: 1300},
		},
		{
			name: "empty snapshot",
			txs:  nil,
			want: Totals{},
		},
		{
			name: "expenses only",
			txs:  []core.Transaction{tx("Food", 75.5, d)},
			want: Totals{Income: 0, Expenses: 75.5, Available: -75.5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DashboardTotals(tt.txs); got != tt.want {
				t.Errorf("DashboardTotals = %+v, want %+v", got, tt.want)
			}
		})
	}
}
