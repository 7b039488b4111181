package amqp

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	// MessageTypeSync asks the worker to mirror a stored transaction to
	// the export destination.
	MessageTypeSync = "sync"
	// MessageTypeDelete asks the worker to remove a transaction's row
	// from the export destination.
	MessageTypeDelete = "delete"
)

// TransactionMessage is the envelope the API publishes and the worker
// consumes. It carries only identifiers; the worker fetches the full record
// from the database when it needs one.
type TransactionMessage struct {
	Type      string    `json:"type"`
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Timestamp time.Time `json:"timestamp"`
}

func NewSyncMessage(id, userID string) *TransactionMessage {
	return &TransactionMessage{
		Type:      MessageTypeSync,
		ID:        id,
		UserID:    userID,
		Timestamp: time.Now(),
	}
}

func NewDeleteMessage(id, userID string) *TransactionMessage {
	return &TransactionMessage{
		Type:      MessageTypeDelete,
		ID:        id,
		UserID:    userID,
		Timestamp: time.Now(),
	}
}

func (m *TransactionMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func TransactionMessageFromJSON(data []byte) (*TransactionMessage, error) {
	var msg TransactionMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if msg.Type != MessageTypeSync && msg.Type != MessageTypeDelete {
		return nil, fmt.Errorf("unknown message type %q", msg.Type)
	}
	if msg.ID == "" {
		return nil, fmt.Errorf("message missing transaction id")
	}
	return &msg, nil
}
