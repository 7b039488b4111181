package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // pure Go SQLite driver, no CGO

	"fintrack/internal/core"
)

var _ Store = (*SQLiteRepository)(nil)

// SQLiteRepository implements Store on a local SQLite file. It also carries
// the sync-state bookkeeping the export worker depends on.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// --- transactions ---

func (r *SQLiteRepository) ListTransactions(ctx context.Context, userID string) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, date, description, amount, category, payment_method
		 FROM transactions WHERE user_id = ? ORDER BY created_at, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) GetTransaction(ctx context.Context, id string) (core.Transaction, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, date, description, amount, category, payment_method
		 FROM transactions WHERE id = ?`, id)
	t, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, ErrNotFound
	}
	return t, err
}

func (r *SQLiteRepository) CreateTransaction(ctx context.Context, t *core.Transaction) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (id, user_id, date, description, amount, category, payment_method, sync_state)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.UserID, t.Date.UTC().Format(time.RFC3339), t.Description, t.Amount,
		t.Category, t.PaymentMethod, string(SyncPending))
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) UpdateTransaction(ctx context.Context, t core.Transaction) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE transactions
		 SET date = ?, description = ?, amount = ?, category = ?, payment_method = ?, sync_state = ?
		 WHERE id = ?`,
		t.Date.UTC().Format(time.RFC3339), t.Description, t.Amount, t.Category,
		t.PaymentMethod, string(SyncPending), t.ID)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) DeleteTransaction(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return requireRow(res)
}

// --- budgets ---

func (r *SQLiteRepository) ListBudgets(ctx context.Context, userID string) ([]core.BudgetRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, category, budget FROM budget_records WHERE user_id = ? ORDER BY rowid`, userID)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	defer rows.Close()

	var out []core.BudgetRecord
	for rows.Next() {
		var b core.BudgetRecord
		if err := rows.Scan(&b.ID, &b.UserID, &b.Category, &b.Budget); err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) CreateBudget(ctx context.Context, b *core.BudgetRecord) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO budget_records (id, user_id, category, budget) VALUES (?, ?, ?, ?)`,
		b.ID, b.UserID, b.Category, b.Budget)
	if err != nil {
		return fmt.Errorf("insert budget: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) UpdateBudget(ctx context.Context, b core.BudgetRecord) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE budget_records SET category = ?, budget = ? WHERE id = ?`,
		b.Category, b.Budget, b.ID)
	if err != nil {
		return fmt.Errorf("update budget: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) DeleteBudget(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM budget_records WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}
	return requireRow(res)
}

// --- saving goals ---

func (r *SQLiteRepository) ListGoals(ctx context.Context, userID string) ([]core.SavingGoal, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, goal_name, target_amount, current_amount, deadline, remaining_amount
		 FROM saving_goals WHERE user_id = ? ORDER BY rowid`, userID)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer rows.Close()

	var out []core.SavingGoal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) GetGoal(ctx context.Context, id string) (core.SavingGoal, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, goal_name, target_amount, current_amount, deadline, remaining_amount
		 FROM saving_goals WHERE id = ?`, id)
	g, err := scanGoal(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.SavingGoal{}, ErrNotFound
	}
	return g, err
}

func (r *SQLiteRepository) CreateGoal(ctx context.Context, g *core.SavingGoal) error {
	if g.ID == "" {
		g.ID = uuid.New().String()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO saving_goals (id, user_id, goal_name, target_amount, current_amount, deadline, remaining_amount)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		g.ID, g.UserID, g.GoalName, g.TargetAmount, g.CurrentAmount,
		g.Deadline.UTC().Format(time.RFC3339), g.RemainingAmount)
	if err != nil {
		return fmt.Errorf("insert goal: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) UpdateGoal(ctx context.Context, g core.SavingGoal) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE saving_goals
		 SET goal_name = ?, target_amount = ?, current_amount = ?, deadline = ?, remaining_amount = ?
		 WHERE id = ?`,
		g.GoalName, g.TargetAmount, g.CurrentAmount,
		g.Deadline.UTC().Format(time.RFC3339), g.RemainingAmount, g.ID)
	if err != nil {
		return fmt.Errorf("update goal: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) DeleteGoal(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM saving_goals WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	return requireRow(res)
}

// --- debts ---

func (r *SQLiteRepository) ListDebts(ctx context.Context, userID string) ([]core.DebtRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, category, amount, interest_rate, due_date
		 FROM debt_records WHERE user_id = ? ORDER BY rowid`, userID)
	if err != nil {
		return nil, fmt.Errorf("list debts: %w", err)
	}
	defer rows.Close()

	var out []core.DebtRecord
	for rows.Next() {
		d, err := scanDebt(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		reps, err := r.listRepayments(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Repayments = reps
	}
	return out, nil
}

func (r *SQLiteRepository) GetDebt(ctx context.Context, id string) (core.DebtRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, category, amount, interest_rate, due_date FROM debt_records WHERE id = ?`, id)
	d, err := scanDebt(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.DebtRecord{}, ErrNotFound
	}
	if err != nil {
		return core.DebtRecord{}, err
	}
	d.Repayments, err = r.listRepayments(ctx, d.ID)
	return d, err
}

func (r *SQLiteRepository) CreateDebt(ctx context.Context, d *core.DebtRecord) error {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO debt_records (id, user_id, category, amount, interest_rate, due_date)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		d.ID, d.UserID, d.Category, d.Amount, d.InterestRate, d.DueDate.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("insert debt: %w", err)
	}
	for _, rep := range d.Repayments {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO repayments (debt_id, date, amount) VALUES (?, ?, ?)`,
			d.ID, rep.Date.UTC().Format(time.RFC3339), rep.Amount); err != nil {
			return fmt.Errorf("insert repayment: %w", err)
		}
	}
	return tx.Commit()
}

func (r *SQLiteRepository) UpdateDebt(ctx context.Context, d core.DebtRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE debt_records SET category = ?, amount = ?, interest_rate = ?, due_date = ? WHERE id = ?`,
		d.Category, d.Amount, d.InterestRate, d.DueDate.UTC().Format(time.RFC3339), d.ID)
	if err != nil {
		return fmt.Errorf("update debt: %w", err)
	}
	if err := requireRow(res); err != nil {
		return err
	}

	// Repayments are replaced wholesale with the record's current list.
	if _, err := tx.ExecContext(ctx, `DELETE FROM repayments WHERE debt_id = ?`, d.ID); err != nil {
		return fmt.Errorf("clear repayments: %w", err)
	}
	for _, rep := range d.Repayments {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO repayments (debt_id, date, amount) VALUES (?, ?, ?)`,
			d.ID, rep.Date.UTC().Format(time.RFC3339), rep.Amount); err != nil {
			return fmt.Errorf("insert repayment: %w", err)
		}
	}
	return tx.Commit()
}

func (r *SQLiteRepository) DeleteDebt(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM debt_records WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete debt: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) listRepayments(ctx context.Context, debtID string) ([]core.Repayment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT date, amount FROM repayments WHERE debt_id = ? ORDER BY id`, debtID)
	if err != nil {
		return nil, fmt.Errorf("list repayments: %w", err)
	}
	defer rows.Close()

	var out []core.Repayment
	for rows.Next() {
		var rep core.Repayment
		var date string
		if err := rows.Scan(&date, &rep.Amount); err != nil {
			return nil, fmt.Errorf("scan repayment: %w", err)
		}
		rep.Date, err = time.Parse(time.RFC3339, date)
		if err != nil {
			return nil, fmt.Errorf("parse repayment date: %w", err)
		}
		out = append(out, rep)
	}
	return out, rows.Err()
}

// --- sync bookkeeping for the export worker ---

// PendingTransactions returns transactions not yet mirrored to the export
// destination, oldest first.
func (r *SQLiteRepository) PendingTransactions(ctx context.Context, limit int) ([]PendingTransaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id FROM transactions WHERE sync_state = ? ORDER BY created_at LIMIT ?`,
		string(SyncPending), limit)
	if err != nil {
		return nil, fmt.Errorf("pending transactions: %w", err)
	}
	defer rows.Close()

	var out []PendingTransaction
	for rows.Next() {
		var p PendingTransaction
		if err := rows.Scan(&p.ID, &p.UserID); err != nil {
			return nil, fmt.Errorf("scan pending transaction: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) MarkSynced(ctx context.Context, id string) error {
	return r.setSyncState(ctx, id, SyncDone)
}

func (r *SQLiteRepository) MarkSyncError(ctx context.Context, id string) error {
	return r.setSyncState(ctx, id, SyncError)
}

func (r *SQLiteRepository) setSyncState(ctx context.Context, id string, state SyncState) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET sync_state = ? WHERE id = ?`, string(state), id)
	if err != nil {
		return fmt.Errorf("set sync state: %w", err)
	}
	return requireRow(res)
}

// --- scan helpers ---

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (core.Transaction, error) {
	var t core.Transaction
	var date string
	if err := row.Scan(&t.ID, &t.UserID, &date, &t.Description, &t.Amount, &t.Category, &t.PaymentMethod); err != nil {
		return core.Transaction{}, err
	}
	parsed, err := time.Parse(time.RFC3339, date)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse transaction date: %w", err)
	}
	t.Date = parsed
	return t, nil
}

func scanGoal(row rowScanner) (core.SavingGoal, error) {
	var g core.SavingGoal
	var deadline string
	if err := row.Scan(&g.ID, &g.UserID, &g.GoalName, &g.TargetAmount, &g.CurrentAmount, &deadline, &g.RemainingAmount); err != nil {
		return core.SavingGoal{}, err
	}
	parsed, err := time.Parse(time.RFC3339, deadline)
	if err != nil {
		return core.SavingGoal{}, fmt.Errorf("parse goal deadline: %w", err)
	}
	g.Deadline = parsed
	return g, nil
}

func scanDebt(row rowScanner) (core.DebtRecord, error) {
	var d core.DebtRecord
	var due string
	if err := row.Scan(&d.ID, &d.UserID, &d.Category, &d.Amount, &d.InterestRate, &due); err != nil {
		return core.DebtRecord{}, err
	}
	parsed, err := time.Parse(time.RFC3339, due)
	if err != nil {
		return core.DebtRecord{}, fmt.Errorf("parse debt due date: %w", err)
	}
	d.DueDate = parsed
	return d, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
