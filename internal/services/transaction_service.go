package services

import (
	"context"
	"fmt"
	"log/slog"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
	"fintrack/internal/storage"
)

// SyncPublisher is the slice of the AMQP client the service needs. A nil
// publisher disables the export pipeline without changing request behavior.
type SyncPublisher interface {
	Publish(ctx context.Context, msg *amqp.TransactionMessage) error
}

// TransactionService orchestrates transaction writes across the store and
// the export queue. The store is authoritative; publishing is best effort.
type TransactionService struct {
	store     storage.Store
	publisher SyncPublisher
}

func NewTransactionService(store storage.Store, publisher SyncPublisher) *TransactionService {
	return &TransactionService{
		store:     store,
		publisher: publisher,
	}
}

// Create saves the transaction locally, then queues it for export.
func (s *TransactionService) Create(ctx context.Context, t *core.Transaction) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if err := s.store.CreateTransaction(ctx, t); err != nil {
		return fmt.Errorf("save transaction: %w", err)
	}

	s.publish(ctx, amqp.NewSyncMessage(t.ID, t.UserID))
	return nil
}

// Update rewrites the stored transaction and queues a re-sync.
func (s *TransactionService) Update(ctx context.Context, t core.Transaction) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if err := s.store.UpdateTransaction(ctx, t); err != nil {
		return err
	}

	s.publish(ctx, amqp.NewSyncMessage(t.ID, t.UserID))
	return nil
}

// Delete removes the transaction locally, then queues removal of its
// exported row.
func (s *TransactionService) Delete(ctx context.Context, id string) error {
	t, err := s.store.GetTransaction(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.DeleteTransaction(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, amqp.NewDeleteMessage(t.ID, t.UserID))
	return nil
}

func (s *TransactionService) publish(ctx context.Context, msg *amqp.TransactionMessage) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, msg); err != nil {
		// The transaction is already persisted; the startup sync check
		// picks up anything that never reached the queue.
		slog.ErrorContext(ctx, "Failed to publish transaction message",
			"type", msg.Type, "id", msg.ID, "error", err)
	}
}
