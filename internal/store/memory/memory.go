// Package memory implements the trip store in process memory. Used as
// the default backend and as the fake in service and handler tests.
package memory

import (
	"context"
	"fmt"
	"sync"

	"tripsplit/internal/core"
	"tripsplit/internal/store"
)

type tripState struct {
	trip         core.Trip
	participants []core.Participant
	expenses     []core.Expense
}

type Store struct {
	mu    sync.Mutex
	trips map[string]*tripState
	order []string
}

var _ store.TripStore = (*Store)(nil)

func New() *Store {
	return &Store{trips: make(map[string]*tripState)}
}

func (s *Store) Close() error { return nil }

func (s *Store) CreateTrip(_ context.Context, t core.Trip) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.trips[t.ID]; ok {
		return fmt.Errorf("trip %q already exists", t.ID)
	}
	s.trips[t.ID] = &tripState{trip: t}
	s.order = append(s.order, t.ID)
	return nil
}

func (s *Store) GetTrip(_ context.Context, id string) (core.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.trips[id]
	if !ok {
		return core.Trip{}, fmt.Errorf("trip %q: %w", id, core.ErrNotFound)
	}
	return st.trip, nil
}

func (s *Store) ListTrips(_ context.Context) ([]core.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Trip, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.trips[id].trip)
	}
	return out, nil
}

func (s *Store) AddParticipant(_ context.Context, tripID string, p core.Participant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.trips[tripID]
	if !ok {
		return fmt.Errorf("trip %q: %w", tripID, core.ErrNotFound)
	}
	st.participants = append(st.participants, p)
	return nil
}

func (s *Store) RemoveParticipant(_ context.Context, tripID, participantID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.trips[tripID]
	if !ok {
		return fmt.Errorf("trip %q: %w", tripID, core.ErrNotFound)
	}
	for i, p := range st.participants {
		if p.ID == participantID {
			st.participants = append(st.participants[:i], st.participants[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("participant %q: %w", participantID, core.ErrNotFound)
}

func (s *Store) ListParticipants(_ context.Context, tripID string) ([]core.Participant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.trips[tripID]
	if !ok {
		return nil, fmt.Errorf("trip %q: %w", tripID, core.ErrNotFound)
	}
	out := make([]core.Participant, len(st.participants))
	copy(out, st.participants)
	return out, nil
}

func (s *Store) AppendExpense(_ context.Context, tripID string, e core.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.trips[tripID]
	if !ok {
		return fmt.Errorf("trip %q: %w", tripID, core.ErrNotFound)
	}
	st.expenses = append(st.expenses, e)
	return nil
}

func (s *Store) RemoveExpense(_ context.Context, tripID, expenseID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.trips[tripID]
	if !ok {
		return fmt.Errorf("trip %q: %w", tripID, core.ErrNotFound)
	}
	for i, e := range st.expenses {
		if e.ID == expenseID {
			st.expenses = append(st.expenses[:i], st.expenses[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("expense %q: %w", expenseID, core.ErrNotFound)
}

func (s *Store) ListExpenses(_ context.Context, tripID string) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.trips[tripID]
	if !ok {
		return nil, fmt.Errorf("trip %q: %w", tripID, core.ErrNotFound)
	}
	out := make([]core.Expense, len(st.expenses))
	copy(out, st.expenses)
	return out, nil
}
