package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	SplitEqual      SplitType = "equal"
	SplitExact      SplitType = "exact"
	SplitPercentage SplitType = "percentage"
)

type (
	SplitType string

	// Money is an amount tagged with an ISO 4217-style currency code.
	// Arithmetic across two different currencies is only legal through
	// Normalize.
	Money struct {
		Amount   float64
		Currency string
	}

	// Participant is a person who may owe or be owed money within one
	// trip's ledger. The ID is immutable once the participant is added.
	Participant struct {
		ID   string
		Name string
	}

	// Trip groups one ledger's worth of participants and expenses.
	Trip struct {
		ID          string
		Title       string
		Destination string
		Start       time.Time
		End         time.Time
	}

	// Expense is a single recorded cost, paid by one participant and
	// owed in some proportion by a subset of participants. Immutable
	// once accepted; edits are modeled as delete + re-add.
	Expense struct {
		ID           string
		Label        string
		Amount       Money
		PaidBy       string
		Strategy     SplitStrategy
		Participants []string
		Category     string
		Notes        string
	}

	// ExpenseDraft is the pre-validation shape of an expense as
	// submitted by the host application.
	ExpenseDraft struct {
		Label        string
		Amount       Money
		PaidBy       string
		Strategy     SplitStrategy
		Participants []string
		Category     string
		Notes        string
	}
)

// SplitStrategy is the closed variant over the three supported ways of
// dividing an expense. The unexported marker method seals the set so the
// resolver's type switch covers every case.
type SplitStrategy interface {
	Type() SplitType
	sealedSplit()
}

// EqualSplit divides the expense evenly among its participants.
type EqualSplit struct{}

// ExactSplit assigns each participant an explicit amount. Shares are
// denominated in the parent expense's currency and must sum to the
// expense total at acceptance time.
type ExactSplit struct {
	Shares map[string]Money
}

// PercentageSplit assigns each participant a percentage of the total.
// Percentages must sum to 100 at acceptance time.
type PercentageSplit struct {
	Shares map[string]float64
}

func (EqualSplit) Type() SplitType      { return SplitEqual }
func (ExactSplit) Type() SplitType      { return SplitExact }
func (PercentageSplit) Type() SplitType { return SplitPercentage }

func (EqualSplit) sealedSplit()      {}
func (ExactSplit) sealedSplit()      {}
func (PercentageSplit) sealedSplit() {}

var (
	ErrEmptyLabel          = errors.New("empty label")
	ErrNonPositiveAmount   = errors.New("amount must be positive")
	ErrNoParticipants      = errors.New("expense has no participants")
	ErrUnknownPayer        = errors.New("payer is not in the participant directory")
	ErrUnknownParticipant  = errors.New("participant is not in the directory")
	ErrShareNotParticipant = errors.New("split share references a non-participant")
	ErrUnknownCurrency     = errors.New("currency has no rate table entry")
	ErrParticipantInUse    = errors.New("participant is referenced by an expense")
	ErrParticipantExists   = errors.New("participant id already present")
	ErrNotFound            = errors.New("not found")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInvalidParticipant  = errors.New("invalid participant")
	ErrInvalidTrip         = errors.New("invalid trip")
)

func (p Participant) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("%w: id cannot be empty", ErrInvalidParticipant)
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidParticipant)
	}
	return nil
}

func (t Trip) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("%w: title cannot be empty", ErrInvalidTrip)
	}
	if !t.End.IsZero() && t.End.Before(t.Start) {
		return fmt.Errorf("%w: end must not precede start", ErrInvalidTrip)
	}
	return nil
}
