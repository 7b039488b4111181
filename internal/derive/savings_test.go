package derive

import (
	"testing"

	"fintrack/internal/core"
)

func TestInitGoal(t *testing.T) {
	g := InitGoal(core.SavingGoal{TargetAmount: 5000, CurrentAmount: 1200})
	if g.RemainingAmount != 5000 {
		t.Errorf("RemainingAmount = %v, want target 5000", g.RemainingAmount)
	}
}

func TestContribute(t *testing.T) {
	tests := []struct {
		name      string
		remaining float64
		amount    float64
		want      float64
	}{
		{"normal contribution", 500, 100, 400},
		{"zero is no-op", 500, 0, 500},
		{"negative is no-op", 500, -25, 500},
		{"may go negative", 50, 80, -30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := core.SavingGoal{TargetAmount: 1000, RemainingAmount: tt.remaining}
			got := Contribute(g, tt.amount)
			if got.RemainingAmount != tt.want {
				t.Errorf("RemainingAmount = %v, want %v", got.RemainingAmount, tt.want)
			}
			if g.RemainingAmount != tt.remaining {
				t.Errorf("input goal mutated: %v", g.RemainingAmount)
			}
		})
	}
}
