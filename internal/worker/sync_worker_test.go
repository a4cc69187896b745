package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"drawtrack/internal/amqp"
	"drawtrack/internal/core"
	"drawtrack/internal/services"
	sheetsmem "drawtrack/internal/sheets/memory"
	"drawtrack/internal/store/memory"
)

func TestMemoryQueueRoundTrip(t *testing.T) {
	q := NewMemoryQueue(4)

	if err := q.TriggerSync(context.Background(), 7, "entry_created"); err != nil {
		t.Fatalf("TriggerSync: %v", err)
	}
	if q.Pending() != 1 {
		t.Fatalf("Pending = %d, want 1", q.Pending())
	}

	ctx, cancel := context.WithCancel(context.Background())
	got := make(chan *amqp.SyncRequest, 1)
	done := make(chan error, 1)
	go func() {
		done <- q.ConsumeSyncRequests(ctx, func(msg *amqp.SyncRequest) error {
			got <- msg
			return nil
		})
	}()

	select {
	case msg := <-got:
		if msg.EntryID != 7 || msg.Reason != "entry_created" {
			t.Fatalf("msg = %+v", msg)
		}
	case <-time.After(time.Second):
		t.Fatal("request never delivered")
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("consume exit = %v, want context.Canceled", err)
	}
}

func TestMemoryQueueFullDropsRequest(t *testing.T) {
	q := NewMemoryQueue(1)
	ctx := context.Background()

	if err := q.TriggerSync(ctx, 1, "entry_created"); err != nil {
		t.Fatalf("first TriggerSync: %v", err)
	}
	if err := q.TriggerSync(ctx, 2, "entry_created"); err == nil {
		t.Fatal("second TriggerSync should fail on a full queue")
	}
	if q.Pending() != 1 {
		t.Fatalf("Pending = %d, want 1", q.Pending())
	}
}

func TestHandleSyncRequestPushesFullSet(t *testing.T) {
	ctx := context.Background()
	entityStore := memory.New()
	mirror := sheetsmem.New()

	user, _ := entityStore.CreateUser(ctx, core.NewUser{Username: "a", Email: "a@example.com"})
	for _, title := range []string{"x", "y"} {
		if _, err := entityStore.CreateDrawingEntry(ctx, core.DrawingEntry{
			UserID: user.ID, ClientName: "Acme", DrawingTitle: title, Amount: "1",
		}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	w := NewSyncWorker(services.NewSyncService(entityStore, mirror), NewMemoryQueue(1), 0)
	if err := w.HandleSyncRequest(ctx, amqp.NewSyncRequest(1, "entry_created")); err != nil {
		t.Fatalf("HandleSyncRequest: %v", err)
	}

	data, _ := mirror.Data(ctx)
	if len(data.Values) != 3 {
		t.Fatalf("mirror rows = %d, want 3", len(data.Values))
	}
}

func TestRunConsumesQueuedRequests(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	entityStore := memory.New()
	mirror := sheetsmem.New()
	queue := NewMemoryQueue(4)
	w := NewSyncWorker(services.NewSyncService(entityStore, mirror), queue, 0)

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	if err := queue.TriggerSync(ctx, 1, "entry_created"); err != nil {
		t.Fatalf("TriggerSync: %v", err)
	}

	deadline := time.After(time.Second)
	for mirror.SyncCount() == 0 {
		select {
		case <-deadline:
			t.Fatal("mirror never synced")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("Run exit = %v, want context.Canceled", err)
	}
}

func TestPeriodicBackupSync(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mirror := sheetsmem.New()
	w := NewSyncWorker(services.NewSyncService(memory.New(), mirror), NewMemoryQueue(1), 10*time.Millisecond)

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	deadline := time.After(time.Second)
	for mirror.SyncCount() < 2 {
		select {
		case <-deadline:
			t.Fatalf("backup sync ran %d times, want >= 2", mirror.SyncCount())
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	<-done
}
