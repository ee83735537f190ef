package amqp

import (
	"encoding/json"
	"time"
)

const (
	ActionExpenseAdded   = "expense_added"
	ActionExpenseRemoved = "expense_removed"
)

// ExpenseEventMessage is the lightweight notification published after a
// ledger mutation. It carries only identifiers; the worker re-reads the
// trip from storage and recomputes the snapshot from scratch.
type ExpenseEventMessage struct {
	TripID    string    `json:"trip_id"`
	ExpenseID string    `json:"expense_id"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

func NewExpenseEventMessage(tripID, expenseID, action string) *ExpenseEventMessage {
	return &ExpenseEventMessage{
		TripID:    tripID,
		ExpenseID: expenseID,
		Action:    action,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *ExpenseEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ExpenseEventMessageFromJSON creates a message from JSON bytes
func ExpenseEventMessageFromJSON(data []byte) (*ExpenseEventMessage, error) {
	var msg ExpenseEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
