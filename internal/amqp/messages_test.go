package amqp

import "testing"

func TestExpenseEventMessageRoundTrip(t *testing.T) {
	msg := NewExpenseEventMessage("t1", "e1", ActionExpenseAdded)
	if msg.Timestamp.IsZero() {
		t.Fatal("expected timestamp to be set")
	}

	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got, err := ExpenseEventMessageFromJSON(body)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.TripID != "t1" || got.ExpenseID != "e1" || got.Action != ActionExpenseAdded {
		t.Fatalf("unexpected message: %+v", got)
	}
}

func TestExpenseEventMessageFromJSONInvalid(t *testing.T) {
	if _, err := ExpenseEventMessageFromJSON([]byte("not json")); err == nil {
		t.Fatal("expected error for invalid payload")
	}
}
