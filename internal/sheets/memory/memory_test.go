package memory

import (
	"context"
	"testing"

	"drawtrack/internal/core"
	"drawtrack/internal/sheets"
)

func TestSyncEntriesOverwrites(t *testing.T) {
	ctx := context.Background()
	s := New()

	n, err := s.SyncEntries(ctx, []core.DrawingEntry{
		{ID: 1, UserID: 1, ClientName: "Acme", DrawingTitle: "a", Amount: "10"},
		{ID: 2, UserID: 1, ClientName: "Beta", DrawingTitle: "b", Amount: "20"},
	})
	if err != nil {
		t.Fatalf("SyncEntries: %v", err)
	}
	if n != 3 {
		t.Fatalf("updatedRows = %d, want 3 (header + 2)", n)
	}

	// second sync with fewer entries must fully replace the first
	n, err = s.SyncEntries(ctx, []core.DrawingEntry{
		{ID: 3, UserID: 2, ClientName: "Gamma", DrawingTitle: "c", Amount: "30"},
	})
	if err != nil {
		t.Fatalf("SyncEntries again: %v", err)
	}
	if n != 2 {
		t.Fatalf("updatedRows = %d, want 2", n)
	}

	data, err := s.Data(ctx)
	if err != nil {
		t.Fatalf("Data: %v", err)
	}
	if data.Range != sheets.EntryRange {
		t.Fatalf("range = %q", data.Range)
	}
	if len(data.Values) != 2 {
		t.Fatalf("values = %d rows, want 2", len(data.Values))
	}
	if data.Values[1][0] != "3" || data.Values[1][1] != "Gamma" {
		t.Fatalf("row = %v", data.Values[1])
	}
	if s.SyncCount() != 2 {
		t.Fatalf("SyncCount = %d, want 2", s.SyncCount())
	}
}

func TestDataBeforeAnySync(t *testing.T) {
	data, err := New().Data(context.Background())
	if err != nil {
		t.Fatalf("Data: %v", err)
	}
	if len(data.Values) != 0 {
		t.Fatalf("values = %v, want empty", data.Values)
	}
}
