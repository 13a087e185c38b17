package queue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/donaldgifford/ebay-catalog-importer/internal/metrics"
	"github.com/donaldgifford/ebay-catalog-importer/internal/store"
)

// LeaseStore is the slice of store.Store the Postgres queue needs.
type LeaseStore interface {
	EnqueueImport(ctx context.Context, jobID string, payload []byte) (bool, error)
	ClaimImport(ctx context.Context, consumer string, visibility time.Duration) (*store.QueuedImport, error)
	ExtendImportLease(ctx context.Context, jobID, consumer string, visibility time.Duration) error
	AckImport(ctx context.Context, jobID, consumer string) error
}

// PostgresQueue implements Queue on the import_queue table. Claims use
// FOR UPDATE SKIP LOCKED, so any number of workers can poll the same table.
type PostgresQueue struct {
	store        LeaseStore
	visibility   time.Duration
	pollInterval time.Duration
	log          *slog.Logger
}

// PostgresOption configures a PostgresQueue.
type PostgresOption func(*PostgresQueue)

// WithLeaseVisibility sets the lease length of a claimed row.
func WithLeaseVisibility(d time.Duration) PostgresOption {
	return func(q *PostgresQueue) {
		if d > 0 {
			q.visibility = d
		}
	}
}

// WithLeasePollInterval sets how long Receive waits before re-polling an
// empty table.
func WithLeasePollInterval(d time.Duration) PostgresOption {
	return func(q *PostgresQueue) {
		if d > 0 {
			q.pollInterval = d
		}
	}
}

// WithPostgresLogger sets the logger.
func WithPostgresLogger(l *slog.Logger) PostgresOption {
	return func(q *PostgresQueue) {
		q.log = l
	}
}

// NewPostgresQueue creates a queue over the given store.
func NewPostgresQueue(s LeaseStore, opts ...PostgresOption) *PostgresQueue {
	q := &PostgresQueue{
		store:        s,
		visibility:   DefaultVisibility,
		pollInterval: DefaultPollInterval,
		log:          slog.Default(),
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Publish inserts the message keyed by job id; a repeat is a no-op.
func (q *PostgresQueue) Publish(ctx context.Context, msg Message) error {
	payload, err := encode(msg)
	if err != nil {
		metrics.QueuePublishTotal.WithLabelValues("error").Inc()
		return err
	}

	inserted, err := q.store.EnqueueImport(ctx, msg.JobID, payload)
	if err != nil {
		metrics.QueuePublishTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("enqueueing job %s: %w", msg.JobID, err)
	}
	if !inserted {
		metrics.QueuePublishTotal.WithLabelValues("duplicate").Inc()
		q.log.Debug("job already enqueued", "job_id", msg.JobID)
		return nil
	}

	metrics.QueuePublishTotal.WithLabelValues("ok").Inc()
	return nil
}

// Receive claims the oldest visible row. When the table is empty it waits
// one poll interval, tries once more, and returns nil if still empty.
func (q *PostgresQueue) Receive(ctx context.Context, consumer string) (*Delivery, error) {
	d, err := q.claim(ctx, consumer)
	if err != nil || d != nil {
		return d, err
	}

	timer := time.NewTimer(q.pollInterval)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
	}

	return q.claim(ctx, consumer)
}

func (q *PostgresQueue) claim(ctx context.Context, consumer string) (*Delivery, error) {
	for {
		row, err := q.store.ClaimImport(ctx, consumer, q.visibility)
		if err != nil {
			return nil, fmt.Errorf("claiming import: %w", err)
		}
		if row == nil {
			return nil, nil
		}

		msg, err := decode(row.Payload)
		if err != nil {
			// Nothing can process this row; drop it and look again.
			q.log.Error("dropping undecodable queue row", "job_id", row.JobID, "error", err)
			if ackErr := q.store.AckImport(ctx, row.JobID, consumer); ackErr != nil {
				return nil, fmt.Errorf("dropping undecodable row %s: %w", row.JobID, ackErr)
			}
			metrics.QueueDeliveriesTotal.WithLabelValues("dead_lettered").Inc()
			continue
		}

		redelivered := row.Attempts > 1
		kind := "new"
		if redelivered {
			kind = "redelivered"
		}
		metrics.QueueDeliveriesTotal.WithLabelValues(kind).Inc()

		return &Delivery{
			Message:     msg,
			ID:          row.JobID,
			Attempt:     row.Attempts,
			Redelivered: redelivered,
			consumer:    consumer,
		}, nil
	}
}

// Touch pushes the row's visibility out by another lease.
func (q *PostgresQueue) Touch(ctx context.Context, d *Delivery) error {
	err := q.store.ExtendImportLease(ctx, d.ID, d.consumer, q.visibility)
	if errors.Is(err, store.ErrNotHeld) {
		return fmt.Errorf("job %s: %w", d.ID, ErrLeaseLost)
	}
	if err != nil {
		return fmt.Errorf("extending lease on %s: %w", d.ID, err)
	}
	return nil
}

// Ack marks the row done if d still holds its lease. Acked rows are purged
// by the scheduler.
func (q *PostgresQueue) Ack(ctx context.Context, d *Delivery) error {
	err := q.store.AckImport(ctx, d.ID, d.consumer)
	if errors.Is(err, store.ErrNotHeld) {
		return fmt.Errorf("job %s: %w", d.ID, ErrLeaseLost)
	}
	if err != nil {
		return fmt.Errorf("acking %s: %w", d.ID, err)
	}
	return nil
}

// Close is a no-op; the store owns the pool.
func (q *PostgresQueue) Close() error { return nil }
