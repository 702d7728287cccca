// Package worker runs the background export loop that keeps the
// spreadsheet snapshot in sync with the data set.
package worker

import (
	"context"
	"time"

	"pousada/internal/export"
	"pousada/internal/models"
	"pousada/internal/store"

	"github.com/rs/zerolog"
)

// SnapshotWriter renders a full snapshot to its destination.
type SnapshotWriter interface {
	Write(snapshot export.Snapshot) error
}

// ExportWorker rebuilds the export file whenever something changed.
// Requests are coalesced: many changes in a burst cause one rebuild.
type ExportWorker struct {
	data        *store.Collections
	writer      SnapshotWriter
	retryPolicy RetryPolicy
	queue       chan string
	logger      *zerolog.Logger
}

// NewExportWorker builds a worker with sane retry defaults.
func NewExportWorker(data *store.Collections, writer SnapshotWriter, retry RetryPolicy, logger *zerolog.Logger) *ExportWorker {
	if retry.MaxRetries == 0 {
		retry.MaxRetries = 5
	}
	if retry.InitialDelay == 0 {
		retry.InitialDelay = 2 * time.Second
	}
	if retry.MaxDelay == 0 {
		retry.MaxDelay = time.Minute
	}
	if retry.BackoffFactor == 0 {
		retry.BackoffFactor = 2
	}

	return &ExportWorker{
		data:        data,
		writer:      writer,
		retryPolicy: retry,
		queue:       make(chan string, models.WorkerQueueSize),
		logger:      logger,
	}
}

// EnqueueExport schedules a rebuild. It never blocks; when the queue is
// full the request is dropped, which is safe because any queued request
// already rebuilds the whole snapshot.
func (w *ExportWorker) EnqueueExport(ctx context.Context, reason string) error {
	select {
	case w.queue <- reason:
	default:
		w.logger.Warn().Str("reason", reason).Msg("export queue full, request coalesced")
	}
	return nil
}

// Start runs the loop until ctx is done.
func (w *ExportWorker) Start(ctx context.Context) {
	w.logger.Info().Msg("export worker started")
	defer w.logger.Info().Msg("export worker stopped")

	for {
		select {
		case <-ctx.Done():
			return
		case reason := <-w.queue:
			w.drain()
			w.runExport(ctx, reason)
		}
	}
}

// drain discards queued requests; the next rebuild covers them all.
func (w *ExportWorker) drain() {
	for {
		select {
		case <-w.queue:
		default:
			return
		}
	}
}

func (w *ExportWorker) runExport(ctx context.Context, reason string) {
	for attempt := 1; attempt <= w.retryPolicy.MaxRetries; attempt++ {
		err := w.exportOnce(ctx)
		if err == nil {
			w.logger.Info().Str("reason", reason).Int("attempt", attempt).Msg("export written")
			return
		}

		w.logger.Error().Err(err).Str("reason", reason).Int("attempt", attempt).Msg("export failed")

		if attempt == w.retryPolicy.MaxRetries {
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(w.retryPolicy.NextDelay(attempt)):
		}
	}
}

func (w *ExportWorker) exportOnce(ctx context.Context) error {
	guests, err := w.data.Guests(ctx)
	if err != nil {
		return err
	}
	rooms, err := w.data.Rooms(ctx)
	if err != nil {
		return err
	}
	bookings, err := w.data.Bookings(ctx)
	if err != nil {
		return err
	}

	return w.writer.Write(export.Snapshot{
		Guests:   guests,
		Rooms:    rooms,
		Bookings: bookings,
	})
}
