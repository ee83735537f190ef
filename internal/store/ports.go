// Package store defines the outbound persistence ports for trip
// ledgers. Implementations live in the sqlite and memory subpackages.
package store

import (
	"context"

	"tripsplit/internal/core"
)

// TripStore persists trips, their participant directories and their
// insertion-ordered expense collections. Invariant enforcement (sum
// checks, in-use participants) stays in core; a store only records what
// the service layer already accepted.
type TripStore interface {
	CreateTrip(ctx context.Context, t core.Trip) error
	GetTrip(ctx context.Context, id string) (core.Trip, error)
	ListTrips(ctx context.Context) ([]core.Trip, error)

	AddParticipant(ctx context.Context, tripID string, p core.Participant) error
	RemoveParticipant(ctx context.Context, tripID, participantID string) error
	ListParticipants(ctx context.Context, tripID string) ([]core.Participant, error)

	AppendExpense(ctx context.Context, tripID string, e core.Expense) error
	RemoveExpense(ctx context.Context, tripID, expenseID string) error
	// ListExpenses returns expenses in insertion order.
	ListExpenses(ctx context.Context, tripID string) ([]core.Expense, error)

	Close() error
}
