package core

import (
	"errors"
	"math"
	"strings"
	"time"
)

type (
	// Transaction is a single income or expense entry. Whether the amount
	// counts as income or expense is decided by the category kind, not by
	// the sign of Amount (see category.go).
	Transaction struct {
		ID            string    `json:"_id"`
		UserID        string    `json:"userId"`
		Date          time.Time `json:"date"`
		Description   string    `json:"description"`
		Amount        float64   `json:"amount"`
		Category      string    `json:"category"`
		PaymentMethod string    `json:"paymentMethod"`
	}

	// BudgetRecord is a planned amount for one category. Actual spending is
	// never trusted from storage; it is recomputed from the transaction
	// snapshot on every derivation pass.
	BudgetRecord struct {
		ID       string  `json:"_id"`
		UserID   string  `json:"userId"`
		Category string  `json:"category"`
		Budget   float64 `json:"budget"`
	}

	// SavingGoal tracks progress toward a target amount. RemainingAmount
	// starts at TargetAmount and decreases as contributions are applied.
	SavingGoal struct {
		ID              string    `json:"_id"`
		UserID          string    `json:"userId"`
		GoalName        string    `json:"goalName"`
		TargetAmount    float64   `json:"targetAmount"`
		CurrentAmount   float64   `json:"currentAmount"`
		Deadline        time.Time `json:"deadline"`
		RemainingAmount float64   `json:"remainingAmount"`
	}

	// DebtRecord is a principal with a simple (non-compounding) interest
	// rate expressed in percent.
	DebtRecord struct {
		ID           string      `json:"_id"`
		UserID       string      `json:"userId"`
		Category     string      `json:"category"`
		Amount       float64     `json:"amount"`
		InterestRate float64     `json:"interestRate"`
		DueDate      time.Time   `json:"dueDate"`
		Repayments   []Repayment `json:"repayments"`
	}

	Repayment struct {
		Date   time.Time `json:"date"`
		Amount float64   `json:"amount"`
	}

	// Notification is transient: derived from the debt snapshot, never
	// persisted. Read state is process-local.
	Notification struct {
		ID      string    `json:"id"`
		Message string    `json:"message"`
		Read    bool      `json:"read"`
		DueDate time.Time `json:"dueDate"`
	}
)

var (
	ErrEmptyUserID      = errors.New("empty user id")
	ErrEmptyCategory    = errors.New("empty category")
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyGoalName    = errors.New("empty goal name")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidDate      = errors.New("invalid date")
)

func validAmount(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (t Transaction) Validate() error {
	if strings.TrimSpace(t.UserID) == "" {
		return ErrEmptyUserID
	}
	if t.Date.IsZero() {
		return ErrInvalidDate
	}
	if len(strings.TrimSpace(t.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(t.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if err := validAmount(t.Amount); err != nil {
		return err
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	return nil
}

func (b BudgetRecord) Validate() error {
	if strings.TrimSpace(b.UserID) == "" {
		return ErrEmptyUserID
	}
	if strings.TrimSpace(b.Category) == "" {
		return ErrEmptyCategory
	}
	return validAmount(b.Budget)
}

func (g SavingGoal) Validate() error {
	if strings.TrimSpace(g.UserID) == "" {
		return ErrEmptyUserID
	}
	if len(strings.TrimSpace(g.GoalName)) == 0 {
		return ErrEmptyGoalName
	}
	if err := validAmount(g.TargetAmount); err != nil {
		return err
	}
	if g.Deadline.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

func (d DebtRecord) Validate() error {
	if strings.TrimSpace(d.UserID) == "" {
		return ErrEmptyUserID
	}
	if strings.TrimSpace(d.Category) == "" {
		return ErrEmptyCategory
	}
	if err := validAmount(d.Amount); err != nil {
		return err
	}
	if math.IsNaN(d.InterestRate) || math.IsInf(d.InterestRate, 0) || d.InterestRate < 0 {
		return ErrInvalidAmount
	}
	if d.DueDate.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// SameDay reports whether a and b fall on the same calendar day,
// ignoring time of day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DateOnly truncates t to midnight UTC of its calendar day.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
