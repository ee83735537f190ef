// Package sqlite implements the trip store on an embedded SQLite
// database using the pure-Go modernc driver.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"tripsplit/internal/core"
	"tripsplit/internal/store"

	_ "modernc.org/sqlite"
)

type Repository struct {
	db *sql.DB
}

var _ store.TripStore = (*Repository)(nil)

func NewRepository(dbPath string) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *Repository) CreateTrip(ctx context.Context, t core.Trip) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO trips (id, title, destination, start_date, end_date) VALUES (?, ?, ?, ?, ?)`,
		t.ID, t.Title, t.Destination, formatDate(t.Start), formatDate(t.End))
	if err != nil {
		return fmt.Errorf("create trip: %w", err)
	}
	return nil
}

func (r *Repository) GetTrip(ctx context.Context, id string) (core.Trip, error) {
	var (
		t          core.Trip
		start, end string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, title, destination, start_date, end_date FROM trips WHERE id = ?`, id).
		Scan(&t.ID, &t.Title, &t.Destination, &start, &end)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Trip{}, fmt.Errorf("trip %q: %w", id, core.ErrNotFound)
	}
	if err != nil {
		return core.Trip{}, fmt.Errorf("get trip: %w", err)
	}
	t.Start = parseDate(start)
	t.End = parseDate(end)
	return t, nil
}

func (r *Repository) ListTrips(ctx context.Context) ([]core.Trip, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, destination, start_date, end_date FROM trips ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list trips: %w", err)
	}
	defer rows.Close()

	var trips []core.Trip
	for rows.Next() {
		var (
			t          core.Trip
			start, end string
		)
		if err := rows.Scan(&t.ID, &t.Title, &t.Destination, &start, &end); err != nil {
			return nil, fmt.Errorf("scan trip: %w", err)
		}
		t.Start = parseDate(start)
		t.End = parseDate(end)
		trips = append(trips, t)
	}
	return trips, rows.Err()
}

func (r *Repository) AddParticipant(ctx context.Context, tripID string, p core.Participant) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO participants (trip_id, id, name) VALUES (?, ?, ?)`,
		tripID, p.ID, p.Name)
	if err != nil {
		return fmt.Errorf("add participant: %w", err)
	}
	return nil
}

func (r *Repository) RemoveParticipant(ctx context.Context, tripID, participantID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM participants WHERE trip_id = ? AND id = ?`, tripID, participantID)
	if err != nil {
		return fmt.Errorf("remove participant: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("participant %q: %w", participantID, core.ErrNotFound)
	}
	return nil
}

func (r *Repository) ListParticipants(ctx context.Context, tripID string) ([]core.Participant, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name FROM participants WHERE trip_id = ? ORDER BY seq`, tripID)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	defer rows.Close()

	var out []core.Participant
	for rows.Next() {
		var p core.Participant
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, fmt.Errorf("scan participant: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repository) AppendExpense(ctx context.Context, tripID string, e core.Expense) error {
	shares, err := encodeShares(e.Strategy)
	if err != nil {
		return err
	}
	participants, err := encodeParticipants(e.Participants)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO expenses (id, trip_id, label, amount, currency, paid_by, split_type, shares, participants, category, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, tripID, e.Label, e.Amount.Amount, e.Amount.Currency, e.PaidBy,
		string(e.Strategy.Type()), shares, participants, e.Category, e.Notes)
	if err != nil {
		return fmt.Errorf("append expense: %w", err)
	}
	return nil
}

func (r *Repository) RemoveExpense(ctx context.Context, tripID, expenseID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM expenses WHERE trip_id = ? AND id = ?`, tripID, expenseID)
	if err != nil {
		return fmt.Errorf("remove expense: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("expense %q: %w", expenseID, core.ErrNotFound)
	}
	return nil
}

// ListExpenses returns the trip's expenses in insertion order (seq is
// monotonically assigned on insert).
func (r *Repository) ListExpenses(ctx context.Context, tripID string) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, label, amount, currency, paid_by, split_type, shares, participants, category, notes
		 FROM expenses WHERE trip_id = ? ORDER BY seq`, tripID)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var out []core.Expense
	for rows.Next() {
		var (
			e            core.Expense
			splitType    string
			shares       string
			participants string
		)
		if err := rows.Scan(&e.ID, &e.Label, &e.Amount.Amount, &e.Amount.Currency,
			&e.PaidBy, &splitType, &shares, &participants, &e.Category, &e.Notes); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		e.Strategy, err = decodeStrategy(splitType, shares)
		if err != nil {
			return nil, fmt.Errorf("expense %s: %w", e.ID, err)
		}
		e.Participants, err = decodeParticipants(participants)
		if err != nil {
			return nil, fmt.Errorf("expense %s: %w", e.ID, err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
