// Package memory implements the snapshot exporter in process memory,
// for tests and local development.
package memory

import (
	"context"
	"sync"

	"tripsplit/internal/core"
	"tripsplit/internal/export"
)

type ExportedSnapshot struct {
	Trip         core.Trip
	Participants []core.Participant
	Snapshot     core.BalanceSnapshot
}

type Exporter struct {
	mu       sync.Mutex
	exported []ExportedSnapshot
}

var _ export.SnapshotExporter = (*Exporter)(nil)

func New() *Exporter {
	return &Exporter{}
}

func (e *Exporter) ExportSnapshot(_ context.Context, trip core.Trip, participants []core.Participant, snap core.BalanceSnapshot) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.exported = append(e.exported, ExportedSnapshot{
		Trip:         trip,
		Participants: participants,
		Snapshot:     snap,
	})
	return nil
}

// Exported returns everything exported so far, oldest first.
func (e *Exporter) Exported() []ExportedSnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]ExportedSnapshot, len(e.exported))
	copy(out, e.exported)
	return out
}
