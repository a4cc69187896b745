// Package worker consumes mirror-sync requests and keeps the spreadsheet
// mirror converging on the entity store.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"drawtrack/internal/amqp"
	"drawtrack/internal/services"
)

// SyncConsumer delivers queued sync requests; implemented by the AMQP client
// and by MemoryQueue.
type SyncConsumer interface {
	ConsumeSyncRequests(ctx context.Context, handler func(*amqp.SyncRequest) error) error
}

const defaultSyncTimeout = 30 * time.Second

// SyncWorker runs the queue consumer plus a periodic backup sync that
// repairs the mirror when queue messages were lost or dropped.
type SyncWorker struct {
	syncer   *services.SyncService
	consumer SyncConsumer
	interval time.Duration
}

// NewSyncWorker builds a worker. A non-positive interval disables the
// periodic backup sync.
func NewSyncWorker(syncer *services.SyncService, consumer SyncConsumer, interval time.Duration) *SyncWorker {
	return &SyncWorker{
		syncer:   syncer,
		consumer: consumer,
		interval: interval,
	}
}

// HandleSyncRequest refreshes the whole mirror. The request only says why a
// refresh was asked for; the push always covers the full entry set.
func (w *SyncWorker) HandleSyncRequest(ctx context.Context, msg *amqp.SyncRequest) error {
	slog.InfoContext(ctx, "Processing sync request",
		"entry_id", msg.EntryID,
		"reason", msg.Reason)

	ctx, cancel := context.WithTimeout(ctx, defaultSyncTimeout)
	defer cancel()

	if _, err := w.syncer.SyncAll(ctx); err != nil {
		return fmt.Errorf("handle sync request for entry %d: %w", msg.EntryID, err)
	}
	return nil
}

// Run blocks until the context ends, consuming the queue and firing the
// periodic backup sync.
func (w *SyncWorker) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		err := w.consumer.ConsumeSyncRequests(ctx, func(msg *amqp.SyncRequest) error {
			return w.HandleSyncRequest(ctx, msg)
		})
		if err != nil && ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	})

	if w.interval > 0 {
		g.Go(func() error {
			return w.runPeriodicSync(ctx)
		})
	}

	return g.Wait()
}

func (w *SyncWorker) runPeriodicSync(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			syncCtx, cancel := context.WithTimeout(ctx, defaultSyncTimeout)
			if _, err := w.syncer.SyncAll(syncCtx); err != nil {
				slog.ErrorContext(ctx, "Periodic mirror sync failed", "error", err)
			}
			cancel()
		}
	}
}
