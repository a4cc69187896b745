package services

import (
	"context"
	"testing"

	"drawtrack/internal/core"
	sheetsmem "drawtrack/internal/sheets/memory"
	"drawtrack/internal/store/memory"
)

func TestSyncAllCoversEveryUser(t *testing.T) {
	ctx := context.Background()
	entityStore := memory.New()
	mirror := sheetsmem.New()
	svc := NewSyncService(entityStore, mirror)

	u1, _ := entityStore.CreateUser(ctx, core.NewUser{Username: "a", Email: "a@example.com"})
	u2, _ := entityStore.CreateUser(ctx, core.NewUser{Username: "b", Email: "b@example.com"})
	for _, e := range []core.DrawingEntry{
		{UserID: u1.ID, ClientName: "Acme", DrawingTitle: "x", Amount: "1"},
		{UserID: u2.ID, ClientName: "Beta", DrawingTitle: "y", Amount: "2"},
		{UserID: u2.ID, ClientName: "Beta", DrawingTitle: "z", Amount: "3"},
	} {
		if _, err := entityStore.CreateDrawingEntry(ctx, e); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	rows, err := svc.SyncAll(ctx)
	if err != nil {
		t.Fatalf("SyncAll: %v", err)
	}
	if rows != 4 {
		t.Fatalf("rows = %d, want 4 (header + 3)", rows)
	}

	data, err := mirror.Data(ctx)
	if err != nil {
		t.Fatalf("Data: %v", err)
	}
	if len(data.Values) != 4 {
		t.Fatalf("mirror rows = %d", len(data.Values))
	}
}

func TestSyncAllEmptyStore(t *testing.T) {
	ctx := context.Background()
	svc := NewSyncService(memory.New(), sheetsmem.New())

	rows, err := svc.SyncAll(ctx)
	if err != nil {
		t.Fatalf("SyncAll: %v", err)
	}
	if rows != 1 {
		t.Fatalf("rows = %d, want header only", rows)
	}
}
