package storage

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"fintrack/internal/core"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore keeps all records in process memory. It backs tests and the
// DATA_BACKEND=memory mode; nothing survives a restart.
type MemoryStore struct {
	mu      sync.RWMutex
	txns    []core.Transaction
	budgets []core.BudgetRecord
	goals   []core.SavingGoal
	debts   []core.DebtRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Close() error { return nil }

// --- transactions ---

func (s *MemoryStore) ListTransactions(_ context.Context, userID string) ([]core.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []core.Transaction
	for _, t := range s.txns {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *MemoryStore) GetTransaction(_ context.Context, id string) (core.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.txns {
		if t.ID == id {
			return t, nil
		}
	}
	return core.Transaction{}, ErrNotFound
}

func (s *MemoryStore) CreateTransaction(_ context.Context, t *core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	s.txns = append(s.txns, *t)
	return nil
}

func (s *MemoryStore) UpdateTransaction(_ context.Context, t core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.txns {
		if s.txns[i].ID == t.ID {
			s.txns[i] = t
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryStore) DeleteTransaction(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.txns {
		if s.txns[i].ID == id {
			s.txns = append(s.txns[:i], s.txns[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// --- budgets ---

func (s *MemoryStore) ListBudgets(_ context.Context, userID string) ([]core.BudgetRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []core.BudgetRecord
	for _, b := range s.budgets {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *MemoryStore) CreateBudget(_ context.Context, b *core.BudgetRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	s.budgets = append(s.budgets, *b)
	return nil
}

func (s *MemoryStore) UpdateBudget(_ context.Context, b core.BudgetRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.budgets {
		if s.budgets[i].ID == b.ID {
			s.budgets[i] = b
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryStore) DeleteBudget(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.budgets {
		if s.budgets[i].ID == id {
			s.budgets = append(s.budgets[:i], s.budgets[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// --- saving goals ---

func (s *MemoryStore) ListGoals(_ context.Context, userID string) ([]core.SavingGoal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []core.SavingGoal
	for _, g := range s.goals {
		if g.UserID == userID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (s *MemoryStore) GetGoal(_ context.Context, id string) (core.SavingGoal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, g := range s.goals {
		if g.ID == id {
			return g, nil
		}
	}
	return core.SavingGoal{}, ErrNotFound
}

func (s *MemoryStore) CreateGoal(_ context.Context, g *core.SavingGoal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if g.ID == "" {
		g.ID = uuid.New().String()
	}
	s.goals = append(s.goals, *g)
	return nil
}

func (s *MemoryStore) UpdateGoal(_ context.Context, g core.SavingGoal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.goals {
		if s.goals[i].ID == g.ID {
			s.goals[i] = g
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryStore) DeleteGoal(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.goals {
		if s.goals[i].ID == id {
			s.goals = append(s.goals[:i], s.goals[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// --- debts ---

func (s *MemoryStore) ListDebts(_ context.Context, userID string) ([]core.DebtRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []core.DebtRecord
	for _, d := range s.debts {
		if d.UserID == userID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (s *MemoryStore) GetDebt(_ context.Context, id string) (core.DebtRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, d := range s.debts {
		if d.ID == id {
			return d, nil
		}
	}
	return core.DebtRecord{}, ErrNotFound
}

func (s *MemoryStore) CreateDebt(_ context.Context, d *core.DebtRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	s.debts = append(s.debts, *d)
	return nil
}

func (s *MemoryStore) UpdateDebt(_ context.Context, d core.DebtRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.debts {
		if s.debts[i].ID == d.ID {
			s.debts[i] = d
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryStore) DeleteDebt(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.debts {
		if s.debts[i].ID == id {
			s.debts = append(s.debts[:i], s.debts[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
