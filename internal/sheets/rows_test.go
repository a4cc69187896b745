package sheets

import (
	"testing"
	"time"

	"drawtrack/internal/core"
)

func TestBuildRowsHeaderOnly(t *testing.T) {
	rows := BuildRows(nil)
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want header only", len(rows))
	}
	if rows[0][0] != "ID" || rows[0][9] != "User ID" {
		t.Fatalf("header = %v", rows[0])
	}
}

func TestBuildRowsFormatting(t *testing.T) {
	entry := core.DrawingEntry{
		ID:                 7,
		UserID:             1,
		ClientName:         "Acme",
		DrawingTitle:       "Poster",
		DrawingDescription: "two panels",
		Deadline:           core.NewDate(2026, 3, 5),
		Amount:             "149.99",
		DateCreated:        time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC),
		Completed:          true,
		Favorite:           false,
	}

	rows := BuildRows([]core.DrawingEntry{entry})
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}

	want := []string{"7", "Acme", "Poster", "two panels", "3/5/2026", "149.99", "1/2/2026, 3:04:05 PM", "Yes", "No", "1"}
	got := rows[1]
	if len(got) != len(want) {
		t.Fatalf("row width = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("col %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestBuildRowsEmptyDeadline(t *testing.T) {
	rows := BuildRows([]core.DrawingEntry{{ID: 1, UserID: 2, Amount: "0"}})
	if rows[1][4] != "" {
		t.Fatalf("unset deadline rendered as %q", rows[1][4])
	}
	if rows[1][6] != "" {
		t.Fatalf("zero dateCreated rendered as %q", rows[1][6])
	}
}
