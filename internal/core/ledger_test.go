package core

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func seededLedger(t *testing.T) *Ledger {
	t.Helper()
	l := NewLedger(DefaultTolerances())
	for _, p := range tripParticipants() {
		if err := l.AddParticipant(p); err != nil {
			t.Fatalf("add participant %s: %v", p.ID, err)
		}
	}
	return l
}

func TestLedgerAddParticipant(t *testing.T) {
	l := seededLedger(t)
	if err := l.AddParticipant(Participant{ID: "laura", Name: "Laura"}); !errors.Is(err, ErrParticipantExists) {
		t.Fatalf("expected ErrParticipantExists, got %v", err)
	}
	if err := l.AddParticipant(Participant{ID: "", Name: "Ghost"}); !errors.Is(err, ErrInvalidParticipant) {
		t.Fatalf("expected ErrInvalidParticipant for blank id, got %v", err)
	}
	if err := l.AddParticipant(Participant{ID: "ghost", Name: " "}); !errors.Is(err, ErrInvalidParticipant) {
		t.Fatalf("expected ErrInvalidParticipant for blank name, got %v", err)
	}
	if got := len(l.Participants()); got != 3 {
		t.Fatalf("expected 3 participants, got %d", got)
	}
}

func TestLedgerAddExpenseRejectionLeavesStateUnchanged(t *testing.T) {
	l := seededLedger(t)
	_, err := l.AddExpense(ExpenseDraft{
		Label:        "Car Rental",
		Amount:       Money{Amount: 240, Currency: "USD"},
		PaidBy:       "nina",
		Strategy:     PercentageSplit{Shares: map[string]float64{"laura": 50, "david": 30}},
		Participants: []string{"laura", "david", "nina"},
	})
	var mismatch PercentageSplitMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected PercentageSplitMismatchError, got %v", err)
	}
	if len(l.Expenses()) != 0 {
		t.Fatal("rejected draft must not be stored")
	}
}

func TestLedgerAddExpenseDefaultsToEqualSplit(t *testing.T) {
	l := seededLedger(t)
	id, err := l.AddExpense(ExpenseDraft{
		Label:        "Dinner",
		Amount:       Money{Amount: 90, Currency: "usd"},
		PaidBy:       "david",
		Participants: []string{"laura", "david", "nina", "david"},
	})
	if err != nil {
		t.Fatalf("add expense: %v", err)
	}
	if id == "" {
		t.Fatal("expected an assigned expense id")
	}
	e := l.Expenses()[0]
	if e.Strategy.Type() != SplitEqual {
		t.Fatalf("expected equal split default, got %s", e.Strategy.Type())
	}
	if e.Amount.Currency != "USD" {
		t.Fatalf("expected upper-cased currency, got %q", e.Amount.Currency)
	}
	if len(e.Participants) != 3 {
		t.Fatalf("expected deduped participants, got %v", e.Participants)
	}
}

func TestLedgerRemoveParticipantInUse(t *testing.T) {
	l := seededLedger(t)
	if _, err := l.AddExpense(ExpenseDraft{
		Label:        "Park Passes",
		Amount:       Money{Amount: 90, Currency: "EUR"},
		PaidBy:       "laura",
		Strategy:     EqualSplit{},
		Participants: []string{"laura", "david"},
	}); err != nil {
		t.Fatalf("add expense: %v", err)
	}

	if err := l.RemoveParticipant("david"); !errors.Is(err, ErrParticipantInUse) {
		t.Fatalf("expected ErrParticipantInUse, got %v", err)
	}
	// Nina is not referenced by any expense and can leave.
	if err := l.RemoveParticipant("nina"); err != nil {
		t.Fatalf("remove unreferenced participant: %v", err)
	}
	if err := l.RemoveParticipant("ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLedgerRemoveExpense(t *testing.T) {
	l := seededLedger(t)
	id, err := l.AddExpense(ExpenseDraft{
		Label:        "Dinner",
		Amount:       Money{Amount: 60, Currency: "USD"},
		PaidBy:       "laura",
		Participants: []string{"laura", "david"},
	})
	if err != nil {
		t.Fatalf("add expense: %v", err)
	}
	if err := l.RemoveExpense(id); err != nil {
		t.Fatalf("remove expense: %v", err)
	}
	if err := l.RemoveExpense(id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLedgerSnapshot(t *testing.T) {
	l := seededLedger(t)
	if _, err := l.AddExpense(ExpenseDraft{
		Label:        "Cabin deposit",
		Amount:       Money{Amount: 480, Currency: "USD"},
		PaidBy:       "laura",
		Strategy:     EqualSplit{},
		Participants: []string{"laura", "david", "nina"},
	}); err != nil {
		t.Fatalf("add expense: %v", err)
	}

	snap, err := l.Snapshot("USD", testRates())
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if math.Abs(snap.Balances["laura"]-320) > 1e-9 {
		t.Fatalf("laura: expected +320, got %v", snap.Balances["laura"])
	}

	again, err := l.Snapshot("USD", testRates())
	if err != nil {
		t.Fatalf("second snapshot: %v", err)
	}
	if !reflect.DeepEqual(snap, again) {
		t.Fatal("snapshot must be idempotent for unchanged state")
	}
}

func TestRestoreRebuildsLedger(t *testing.T) {
	l := seededLedger(t)
	if _, err := l.AddExpense(ExpenseDraft{
		Label:        "Dinner",
		Amount:       Money{Amount: 60, Currency: "USD"},
		PaidBy:       "laura",
		Participants: []string{"laura", "david", "nina"},
	}); err != nil {
		t.Fatalf("add expense: %v", err)
	}

	restored := Restore(DefaultTolerances(), l.Participants(), l.Expenses())
	a, err := l.Snapshot("USD", testRates())
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	b, err := restored.Snapshot("USD", testRates())
	if err != nil {
		t.Fatalf("restored snapshot: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatal("restored ledger must produce the same snapshot")
	}
}
