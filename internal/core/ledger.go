package core

import (
	"fmt"

	"github.com/google/uuid"
)

// Ledger is the public entry point of the settlement core. It owns an
// insertion-ordered expense collection and the participant directory
// for one trip, and re-derives every snapshot from scratch.
//
// The ledger is single-writer: callers that share one instance across
// goroutines must serialize mutations and snapshots behind their own
// mutual-exclusion boundary.
type Ledger struct {
	participants []Participant
	directory    map[string]Participant
	expenses     []Expense
	tol          Tolerances
}

func NewLedger(tol Tolerances) *Ledger {
	return &Ledger{
		directory: make(map[string]Participant),
		tol:       tol,
	}
}

// AddParticipant registers a traveler. Fails with ErrParticipantExists
// on a duplicate id.
func (l *Ledger) AddParticipant(p Participant) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if _, ok := l.directory[p.ID]; ok {
		return fmt.Errorf("%w: %q", ErrParticipantExists, p.ID)
	}
	l.directory[p.ID] = p
	l.participants = append(l.participants, p)
	return nil
}

// RemoveParticipant removes a traveler. Fails with ErrParticipantInUse
// while any expense still references the id; orphaned expenses are
// never created silently.
func (l *Ledger) RemoveParticipant(id string) error {
	if _, ok := l.directory[id]; !ok {
		return fmt.Errorf("participant %q: %w", id, ErrNotFound)
	}
	for _, e := range l.expenses {
		if e.references(id) {
			return fmt.Errorf("%w: %q in expense %q", ErrParticipantInUse, id, e.Label)
		}
	}
	delete(l.directory, id)
	for i, p := range l.participants {
		if p.ID == id {
			l.participants = append(l.participants[:i], l.participants[i+1:]...)
			break
		}
	}
	return nil
}

// AddExpense validates a draft and, on acceptance, stores it as an
// immutable expense. All-or-nothing: a rejected draft leaves the ledger
// unchanged. Returns the assigned expense id.
func (l *Ledger) AddExpense(d ExpenseDraft) (string, error) {
	if d.Strategy == nil {
		d.Strategy = EqualSplit{}
	}
	d.Participants = dedupe(d.Participants)
	if err := ValidateDraft(d, l.directory, l.tol); err != nil {
		return "", err
	}

	e := Expense{
		ID:           uuid.NewString(),
		Label:        d.Label,
		Amount:       Money{Amount: d.Amount.Amount, Currency: NormalizeCurrencyCode(d.Amount.Currency)},
		PaidBy:       d.PaidBy,
		Strategy:     d.Strategy,
		Participants: d.Participants,
		Category:     d.Category,
		Notes:        d.Notes,
	}
	l.expenses = append(l.expenses, e)
	return e.ID, nil
}

// RemoveExpense deletes an expense by id, or fails with ErrNotFound.
func (l *Ledger) RemoveExpense(id string) error {
	for i, e := range l.expenses {
		if e.ID == id {
			l.expenses = append(l.expenses[:i], l.expenses[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("expense %q: %w", id, ErrNotFound)
}

// Snapshot recomputes the full balance picture in the display currency.
// Nothing is memoized; two calls with unchanged state and rates return
// identical results.
func (l *Ledger) Snapshot(display string, rates RateTable) (BalanceSnapshot, error) {
	return Aggregate(l.expenses, l.participants, display, rates)
}

// Participants returns the directory in insertion order.
func (l *Ledger) Participants() []Participant {
	out := make([]Participant, len(l.participants))
	copy(out, l.participants)
	return out
}

// Expenses returns the expense collection in insertion order.
func (l *Ledger) Expenses() []Expense {
	out := make([]Expense, len(l.expenses))
	copy(out, l.expenses)
	return out
}

// restore appends an already-accepted expense without re-validating.
// Used when rebuilding a ledger from storage.
func (l *Ledger) restore(e Expense) {
	l.expenses = append(l.expenses, e)
}

// Restore rebuilds a ledger from persisted participants and expenses,
// trusting that each expense passed validation when first accepted.
func Restore(tol Tolerances, participants []Participant, expenses []Expense) *Ledger {
	l := NewLedger(tol)
	for _, p := range participants {
		l.directory[p.ID] = p
		l.participants = append(l.participants, p)
	}
	for _, e := range expenses {
		l.restore(e)
	}
	return l
}

func (e Expense) references(id string) bool {
	if e.PaidBy == id {
		return true
	}
	for _, pid := range e.Participants {
		if pid == id {
			return true
		}
	}
	switch s := e.Strategy.(type) {
	case ExactSplit:
		if _, ok := s.Shares[id]; ok {
			return true
		}
	case PercentageSplit:
		if _, ok := s.Shares[id]; ok {
			return true
		}
	}
	return false
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
