package derive

import "fintrack/internal/core"

// InitGoal prepares a freshly created saving goal: the remaining amount
// starts equal to the target. CurrentAmount is deliberately not consulted
// here; progress only moves through Contribute.
func InitGoal(g core.SavingGoal) core.SavingGoal {
	g.RemainingAmount = g.TargetAmount
	return g
}

// Contribute applies a contribution toward a goal and returns the updated
// goal. Contributions of zero or less are ignored. The remaining amount is
// allowed to go negative when contributions exceed the target; callers that
// want a floor must enforce it themselves.
func Contribute(g core.SavingGoal, amount float64) core.SavingGoal {
	if amount <= 0 {
		return g
	}
	g.RemainingAmount -= amount
	return g
}
