// Package worker recomputes and exports trip balance snapshots in
// response to expense events.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"tripsplit/internal/amqp"
	"tripsplit/internal/export"
	applog "tripsplit/internal/log"
	"tripsplit/internal/services"
)

// ExportWorker handles expense events by recomputing the affected
// trip's snapshot and pushing it through the exporter. The snapshot is
// always rebuilt from current state; the message only names the trip.
type ExportWorker struct {
	service         *services.TripService
	exporter        export.SnapshotExporter
	displayCurrency string
}

func NewExportWorker(service *services.TripService, exporter export.SnapshotExporter, displayCurrency string) *ExportWorker {
	return &ExportWorker{
		service:         service,
		exporter:        exporter,
		displayCurrency: displayCurrency,
	}
}

// HandleExpenseEvent processes a single expense event message.
func (w *ExportWorker) HandleExpenseEvent(ctx context.Context, msg *amqp.ExpenseEventMessage) error {
	slog.InfoContext(ctx, "Processing expense event",
		applog.FieldOperation, applog.OpExport,
		applog.FieldTripID, msg.TripID,
		applog.FieldExpenseID, msg.ExpenseID,
		"action", msg.Action)

	trip, err := w.service.GetTrip(ctx, msg.TripID)
	if err != nil {
		return fmt.Errorf("load trip: %w", err)
	}
	participants, err := w.service.ListParticipants(ctx, msg.TripID)
	if err != nil {
		return fmt.Errorf("load participants: %w", err)
	}
	snap, err := w.service.Snapshot(ctx, msg.TripID, w.displayCurrency)
	if err != nil {
		return fmt.Errorf("compute snapshot: %w", err)
	}

	if err := w.exporter.ExportSnapshot(ctx, trip, participants, snap); err != nil {
		return fmt.Errorf("export snapshot: %w", err)
	}

	slog.InfoContext(ctx, "Snapshot exported",
		applog.FieldTripID, msg.TripID,
		applog.FieldCurrency, snap.Total.Currency,
		"participants", len(participants))
	return nil
}
