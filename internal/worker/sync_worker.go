// Package worker mirrors stored transactions into the spreadsheet export.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"fintrack/internal/amqp"
	"fintrack/internal/sheets"
	"fintrack/internal/storage"

	"fintrack/internal/core"
)

// Store is the storage surface the worker needs: record lookup plus the
// sync-state bookkeeping. *storage.SQLiteRepository satisfies it.
type Store interface {
	GetTransaction(ctx context.Context, id string) (core.Transaction, error)
	PendingTransactions(ctx context.Context, limit int) ([]storage.PendingTransaction, error)
	MarkSynced(ctx context.Context, id string) error
	MarkSyncError(ctx context.Context, id string) error
}

// SyncWorker pushes transactions from the local store to the export mirror.
type SyncWorker struct {
	store     Store
	mirror    sheets.TransactionMirror
	batchSize int
}

func NewSyncWorker(store Store, mirror sheets.TransactionMirror, batchSize int) *SyncWorker {
	return &SyncWorker{
		store:     store,
		mirror:    mirror,
		batchSize: batchSize,
	}
}

// HandleMessage dispatches a queue message to the right handler.
func (w *SyncWorker) HandleMessage(ctx context.Context, msg *amqp.TransactionMessage) error {
	switch msg.Type {
	case amqp.MessageTypeSync:
		return w.handleSync(ctx, msg)
	case amqp.MessageTypeDelete:
		return w.handleDelete(ctx, msg)
	default:
		return fmt.Errorf("unknown message type %q", msg.Type)
	}
}

func (w *SyncWorker) handleSync(ctx context.Context, msg *amqp.TransactionMessage) error {
	slog.InfoContext(ctx, "Processing sync message", "id", msg.ID)

	t, err := w.store.GetTransaction(ctx, msg.ID)
	if errors.Is(err, storage.ErrNotFound) {
		// Deleted between publish and consume; nothing left to mirror.
		slog.WarnContext(ctx, "Transaction gone before sync", "id", msg.ID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("get transaction: %w", err)
	}

	return w.syncToMirror(ctx, t)
}

func (w *SyncWorker) handleDelete(ctx context.Context, msg *amqp.TransactionMessage) error {
	slog.InfoContext(ctx, "Processing delete message", "id", msg.ID)

	if err := w.mirror.Delete(ctx, msg.ID); err != nil {
		return fmt.Errorf("delete transaction row: %w", err)
	}
	return nil
}

func (w *SyncWorker) syncToMirror(ctx context.Context, t core.Transaction) error {
	ref, err := w.mirror.Append(ctx, t)
	if err != nil {
		if markErr := w.store.MarkSyncError(ctx, t.ID); markErr != nil {
			slog.ErrorContext(ctx, "Failed to mark sync error", "id", t.ID, "error", markErr)
		}
		return fmt.Errorf("append transaction: %w", err)
	}

	if err := w.store.MarkSynced(ctx, t.ID); err != nil {
		return fmt.Errorf("mark synced: %w", err)
	}

	slog.InfoContext(ctx, "Transaction synced", "id", t.ID, "row", ref)
	return nil
}

// ProcessPending drains a batch of transactions the queue never delivered.
// This is the backup path for lost messages.
func (w *SyncWorker) ProcessPending(ctx context.Context) error {
	pending, err := w.store.PendingTransactions(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("get pending transactions: %w", err)
	}
	if len(pending) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "Processing pending transactions", "count", len(pending))

	for _, p := range pending {
		t, err := w.store.GetTransaction(ctx, p.ID)
		if err != nil {
			slog.ErrorContext(ctx, "Failed to get pending transaction", "id", p.ID, "error", err)
			if err := w.store.MarkSyncError(ctx, p.ID); err != nil {
				slog.ErrorContext(ctx, "Failed to mark sync error", "id", p.ID, "error", err)
			}
			continue
		}
		if err := w.syncToMirror(ctx, t); err != nil {
			slog.ErrorContext(ctx, "Failed to sync pending transaction", "id", p.ID, "error", err)
		}
	}
	return nil
}

// StartupSyncCheck drains pending transactions accumulated while the worker
// was down, using a larger batch than the periodic pass.
func (w *SyncWorker) StartupSyncCheck(ctx context.Context) error {
	pending, err := w.store.PendingTransactions(ctx, w.batchSize*5)
	if err != nil {
		return fmt.Errorf("get pending transactions for startup check: %w", err)
	}
	if len(pending) == 0 {
		slog.InfoContext(ctx, "No pending transactions found on startup")
		return nil
	}

	slog.InfoContext(ctx, "Found pending transactions on startup, processing...",
		"count", len(pending))

	synced := 0
	failed := 0
	for _, p := range pending {
		t, err := w.store.GetTransaction(ctx, p.ID)
		if err != nil {
			slog.ErrorContext(ctx, "Failed to get transaction for startup sync",
				"id", p.ID, "error", err)
			if err := w.store.MarkSyncError(ctx, p.ID); err != nil {
				slog.ErrorContext(ctx, "Failed to mark sync error", "id", p.ID, "error", err)
			}
			failed++
			continue
		}
		if err := w.syncToMirror(ctx, t); err != nil {
			slog.ErrorContext(ctx, "Failed to sync transaction during startup",
				"id", p.ID, "error", err)
			failed++
			continue
		}
		synced++
	}

	slog.InfoContext(ctx, "Startup sync completed",
		"total", len(pending), "synced", synced, "errors", failed)
	return nil
}
