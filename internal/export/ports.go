// Package export defines the outbound port for publishing computed
// balance snapshots to a display/export destination.
package export

import (
	"context"

	"tripsplit/internal/core"
)

// SnapshotExporter renders a freshly computed snapshot somewhere a
// human can read it. The ledger only produces structured numbers; all
// formatting concerns live behind this port.
type SnapshotExporter interface {
	ExportSnapshot(ctx context.Context, trip core.Trip, participants []core.Participant, snap core.BalanceSnapshot) error
}
