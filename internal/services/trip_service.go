// Package services provides business logic and orchestration services.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"tripsplit/internal/amqp"
	"tripsplit/internal/core"
	applog "tripsplit/internal/log"
	"tripsplit/internal/rates"
	"tripsplit/internal/store"
)

// EventPublisher is the outbound port for mutation notifications.
// *amqp.Client satisfies it; tests use a recording fake.
type EventPublisher interface {
	PublishExpenseEvent(ctx context.Context, tripID, expenseID, action string) error
}

// TripService orchestrates trip ledgers across storage, the rates
// provider and event publishing. Mutations and snapshots are serialized
// behind one mutex: the aggregation invariant assumes no concurrent
// mutation during a snapshot pass.
type TripService struct {
	mu     sync.Mutex
	store  store.TripStore
	events EventPublisher
	rates  rates.Provider
	tol    core.Tolerances
}

func NewTripService(st store.TripStore, events EventPublisher, provider rates.Provider, tol core.Tolerances) *TripService {
	return &TripService{
		store:  st,
		events: events,
		rates:  provider,
		tol:    tol,
	}
}

// CreateTrip registers a new trip with an empty ledger.
func (s *TripService) CreateTrip(ctx context.Context, title, destination string, start, end time.Time) (core.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := core.Trip{
		ID:          uuid.NewString(),
		Title:       title,
		Destination: destination,
		Start:       start,
		End:         end,
	}
	if err := t.Validate(); err != nil {
		return core.Trip{}, err
	}
	if err := s.store.CreateTrip(ctx, t); err != nil {
		return core.Trip{}, fmt.Errorf("create trip: %w", err)
	}

	slog.InfoContext(ctx, "Trip created",
		applog.FieldOperation, applog.OpCreate,
		applog.FieldTripID, t.ID,
		"title", t.Title)
	return t, nil
}

func (s *TripService) GetTrip(ctx context.Context, tripID string) (core.Trip, error) {
	return s.store.GetTrip(ctx, tripID)
}

func (s *TripService) ListTrips(ctx context.Context) ([]core.Trip, error) {
	return s.store.ListTrips(ctx)
}

// AddParticipant adds a traveler to the trip's directory.
func (s *TripService) AddParticipant(ctx context.Context, tripID, name string) (core.Participant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ledger, err := s.loadLedger(ctx, tripID)
	if err != nil {
		return core.Participant{}, err
	}

	p := core.Participant{ID: uuid.NewString(), Name: name}
	if err := ledger.AddParticipant(p); err != nil {
		return core.Participant{}, err
	}
	if err := s.store.AddParticipant(ctx, tripID, p); err != nil {
		return core.Participant{}, fmt.Errorf("persist participant: %w", err)
	}

	slog.InfoContext(ctx, "Participant added",
		applog.FieldOperation, applog.OpCreate,
		applog.FieldTripID, tripID,
		applog.FieldParticipant, p.ID)
	return p, nil
}

// RemoveParticipant removes a traveler. The core ledger's in-use check
// runs first, so an expense can never be orphaned silently.
func (s *TripService) RemoveParticipant(ctx context.Context, tripID, participantID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ledger, err := s.loadLedger(ctx, tripID)
	if err != nil {
		return err
	}
	if err := ledger.RemoveParticipant(participantID); err != nil {
		return err
	}
	if err := s.store.RemoveParticipant(ctx, tripID, participantID); err != nil {
		return fmt.Errorf("persist participant removal: %w", err)
	}

	slog.InfoContext(ctx, "Participant removed",
		applog.FieldOperation, applog.OpDelete,
		applog.FieldTripID, tripID,
		applog.FieldParticipant, participantID)
	return nil
}

func (s *TripService) ListParticipants(ctx context.Context, tripID string) ([]core.Participant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ledger, err := s.loadLedger(ctx, tripID)
	if err != nil {
		return nil, err
	}
	return ledger.Participants(), nil
}

// AddExpense validates a draft against the trip's ledger and, on
// acceptance, persists it and publishes an event. Rejection leaves both
// ledger and storage untouched.
func (s *TripService) AddExpense(ctx context.Context, tripID string, draft core.ExpenseDraft) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ledger, err := s.loadLedger(ctx, tripID)
	if err != nil {
		return "", err
	}

	id, err := ledger.AddExpense(draft)
	if err != nil {
		return "", err
	}

	expenses := ledger.Expenses()
	accepted := expenses[len(expenses)-1]
	if err := s.store.AppendExpense(ctx, tripID, accepted); err != nil {
		return "", fmt.Errorf("persist expense: %w", err)
	}

	slog.InfoContext(ctx, "Expense added",
		applog.FieldOperation, applog.OpCreate,
		applog.FieldTripID, tripID,
		applog.FieldExpenseID, id,
		applog.FieldLabel, accepted.Label,
		applog.FieldAmount, accepted.Amount.String(),
		applog.FieldSplitType, string(accepted.Strategy.Type()))

	s.publishEvent(ctx, tripID, id, amqp.ActionExpenseAdded)
	return id, nil
}

// RemoveExpense deletes an expense from the trip's ledger.
func (s *TripService) RemoveExpense(ctx context.Context, tripID, expenseID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ledger, err := s.loadLedger(ctx, tripID)
	if err != nil {
		return err
	}
	if err := ledger.RemoveExpense(expenseID); err != nil {
		return err
	}
	if err := s.store.RemoveExpense(ctx, tripID, expenseID); err != nil {
		return fmt.Errorf("persist expense removal: %w", err)
	}

	slog.InfoContext(ctx, "Expense removed",
		applog.FieldOperation, applog.OpDelete,
		applog.FieldTripID, tripID,
		applog.FieldExpenseID, expenseID)
	s.publishEvent(ctx, tripID, expenseID, amqp.ActionExpenseRemoved)
	return nil
}

func (s *TripService) ListExpenses(ctx context.Context, tripID string) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ledger, err := s.loadLedger(ctx, tripID)
	if err != nil {
		return nil, err
	}
	return ledger.Expenses(), nil
}

// Snapshot recomputes the trip's balance picture in the display
// currency, with rates supplied fresh by the provider.
func (s *TripService) Snapshot(ctx context.Context, tripID, displayCurrency string) (core.BalanceSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ledger, err := s.loadLedger(ctx, tripID)
	if err != nil {
		return core.BalanceSnapshot{}, err
	}
	table, err := s.rates.Rates(ctx)
	if err != nil {
		return core.BalanceSnapshot{}, fmt.Errorf("load rates: %w", err)
	}

	snap, err := ledger.Snapshot(displayCurrency, table)
	if err != nil {
		return core.BalanceSnapshot{}, err
	}

	var sum float64
	for _, b := range snap.Balances {
		sum += b
	}
	slog.DebugContext(ctx, "Snapshot computed",
		applog.FieldOperation, applog.OpSnapshot,
		applog.FieldTripID, tripID,
		applog.FieldCurrency, snap.Total.Currency,
		applog.FieldBalanceSum, sum)
	return snap, nil
}

// loadLedger rebuilds the trip's ledger from storage. Expenses were
// validated when first accepted, so Restore trusts them.
func (s *TripService) loadLedger(ctx context.Context, tripID string) (*core.Ledger, error) {
	if _, err := s.store.GetTrip(ctx, tripID); err != nil {
		return nil, err
	}
	participants, err := s.store.ListParticipants(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("load participants: %w", err)
	}
	expenses, err := s.store.ListExpenses(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("load expenses: %w", err)
	}
	return core.Restore(s.tol, participants, expenses), nil
}

func (s *TripService) publishEvent(ctx context.Context, tripID, expenseID, action string) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishExpenseEvent(ctx, tripID, expenseID, action); err != nil {
		// Events are advisory; the mutation is already persisted.
		slog.ErrorContext(ctx, "Failed to publish expense event",
			applog.FieldTripID, tripID,
			applog.FieldExpenseID, expenseID,
			"action", action,
			applog.FieldError, err)
	}
}

// Close releases the underlying store.
func (s *TripService) Close() error {
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			return fmt.Errorf("close store: %w", err)
		}
	}
	return nil
}
