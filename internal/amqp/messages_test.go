package amqp

import (
	"testing"
	"time"
)

func TestNewSyncMessage(t *testing.T) {
	msg := NewSyncMessage("tx-1", "user-1")

	if msg.Type != MessageTypeSync {
		t.Errorf("Type = %q, want %q", msg.Type, MessageTypeSync)
	}
	if msg.ID != "tx-1" || msg.UserID != "user-1" {
		t.Errorf("unexpected identifiers: %+v", msg)
	}
	if msg.Timestamp.IsZero() {
		t.Error("Timestamp should not be zero")
	}
	if time.Since(msg.Timestamp) > time.Second {
		t.Error("Timestamp should be recent")
	}
}

func TestTransactionMessage_JSON(t *testing.T) {
	timestamp := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	msg := &TransactionMessage{
		Type:      MessageTypeDelete,
		ID:        "tx-9",
		UserID:    "user-2",
		Timestamp: timestamp,
	}

	jsonBytes, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	parsed, err := TransactionMessageFromJSON(jsonBytes)
	if err != nil {
		t.Fatalf("TransactionMessageFromJSON() error = %v", err)
	}

	if parsed.Type != msg.Type {
		t.Errorf("Parsed Type = %q, want %q", parsed.Type, msg.Type)
	}
	if parsed.ID != msg.ID || parsed.UserID != msg.UserID {
		t.Errorf("Parsed identifiers = %+v, want %+v", parsed, msg)
	}
	if !parsed.Timestamp.Equal(msg.Timestamp) {
		t.Errorf("Parsed Timestamp = %v, want %v", parsed.Timestamp, msg.Timestamp)
	}
}

func TestTransactionMessage_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"type": "sync", "id":`},
		{"unknown type", `{"type": "reindex", "id": "tx-1"}`},
		{"missing id", `{"type": "sync"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := TransactionMessageFromJSON([]byte(tt.body)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}
