// Package storage persists the four record collections. Two backends exist:
// SQLite (modernc driver, golang-migrate migrations) and an in-memory store
// used as the default backend and as the test double.
package storage

import (
	"context"
	"errors"

	"fintrack/internal/core"
)

// ErrNotFound is returned when an id-based lookup, update or delete matches
// no record.
var ErrNotFound = errors.New("record not found")

// Store is the port the HTTP layer and services depend on. List methods
// return records in storage order; derived views are computed elsewhere.
type Store interface {
	ListTransactions(ctx context.Context, userID string) ([]core.Transaction, error)
	GetTransaction(ctx context.Context, id string) (core.Transaction, error)
	CreateTransaction(ctx context.Context, t *core.Transaction) error
	UpdateTransaction(ctx context.Context, t core.Transaction) error
	DeleteTransaction(ctx context.Context, id string) error

	ListBudgets(ctx context.Context, userID string) ([]core.BudgetRecord, error)
	CreateBudget(ctx context.Context, b *core.BudgetRecord) error
	UpdateBudget(ctx context.Context, b core.BudgetRecord) error
	DeleteBudget(ctx context.Context, id string) error

	ListGoals(ctx context.Context, userID string) ([]core.SavingGoal, error)
	GetGoal(ctx context.Context, id string) (core.SavingGoal, error)
	CreateGoal(ctx context.Context, g *core.SavingGoal) error
	UpdateGoal(ctx context.Context, g core.SavingGoal) error
	DeleteGoal(ctx context.Context, id string) error

	ListDebts(ctx context.Context, userID string) ([]core.DebtRecord, error)
	GetDebt(ctx context.Context, id string) (core.DebtRecord, error)
	CreateDebt(ctx context.Context, d *core.DebtRecord) error
	UpdateDebt(ctx context.Context, d core.DebtRecord) error
	DeleteDebt(ctx context.Context, id string) error

	Close() error
}

// SyncState marks a transaction's position in the export pipeline.
type SyncState string

const (
	SyncPending SyncState = "pending"
	SyncDone    SyncState = "synced"
	SyncError   SyncState = "error"
)

// PendingTransaction is the minimal row the sync worker needs to queue work.
type PendingTransaction struct {
	ID     string
	UserID string
}
