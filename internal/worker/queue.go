package worker

import (
	"context"
	"fmt"
	"log/slog"

	"drawtrack/internal/amqp"
)

// MemoryQueue is the in-process stand-in for the AMQP queue, used when no
// broker is configured. A full queue drops the request instead of blocking
// the CRUD path; the periodic backup sync repairs the mirror anyway.
type MemoryQueue struct {
	requests chan *amqp.SyncRequest
}

func NewMemoryQueue(size int) *MemoryQueue {
	if size <= 0 {
		size = 64
	}
	return &MemoryQueue{
		requests: make(chan *amqp.SyncRequest, size),
	}
}

// TriggerSync enqueues a sync request without blocking.
func (q *MemoryQueue) TriggerSync(_ context.Context, entryID int64, reason string) error {
	select {
	case q.requests <- amqp.NewSyncRequest(entryID, reason):
		return nil
	default:
		return fmt.Errorf("sync queue full, dropping request for entry %d", entryID)
	}
}

// ConsumeSyncRequests delivers queued requests to handler until the context
// ends. Handler errors are logged and the request dropped; the next full
// sync supersedes it.
func (q *MemoryQueue) ConsumeSyncRequests(ctx context.Context, handler func(*amqp.SyncRequest) error) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg := <-q.requests:
			if err := handler(msg); err != nil {
				slog.ErrorContext(ctx, "Failed to handle sync request",
					"entry_id", msg.EntryID,
					"reason", msg.Reason,
					"error", err)
			}
		}
	}
}

// Pending reports the number of queued requests; used by tests.
func (q *MemoryQueue) Pending() int {
	return len(q.requests)
}
