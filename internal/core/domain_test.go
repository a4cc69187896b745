package core

import (
	"encoding/json"
	"testing"
	"time"
)

func TestNewEntryValidate(t *testing.T) {
	valid := NewEntry{
		ClientName:   "Acme Studio",
		DrawingTitle: "Bridge sketch",
		Amount:       "149.99",
		Deadline:     "2026-03-01",
	}

	cases := []struct {
		name    string
		mutate  func(*NewEntry)
		badKeys []string
	}{
		{"valid", func(e *NewEntry) {}, nil},
		{"valid without deadline", func(e *NewEntry) { e.Deadline = "" }, nil},
		{"whole number amount", func(e *NewEntry) { e.Amount = "1200" }, nil},
		{"missing client name", func(e *NewEntry) { e.ClientName = "  " }, []string{"clientName"}},
		{"missing title", func(e *NewEntry) { e.DrawingTitle = "" }, []string{"drawingTitle"}},
		{"negative amount", func(e *NewEntry) { e.Amount = "-5" }, []string{"amount"}},
		{"three decimals", func(e *NewEntry) { e.Amount = "10.999" }, []string{"amount"}},
		{"non-numeric amount", func(e *NewEntry) { e.Amount = "abc" }, []string{"amount"}},
		{"empty amount", func(e *NewEntry) { e.Amount = "" }, []string{"amount"}},
		{"bad deadline", func(e *NewEntry) { e.Deadline = "01/02/2026" }, []string{"deadline"}},
		{
			"everything wrong",
			func(e *NewEntry) {
				e.ClientName = ""
				e.DrawingTitle = ""
				e.Amount = "x"
				e.Deadline = "soon"
			},
			[]string{"clientName", "drawingTitle", "amount", "deadline"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := valid
			tc.mutate(&in)
			err := in.Validate()
			if len(tc.badKeys) == 0 {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			var invalid *InvalidInputError
			if !asInvalidInput(err, &invalid) {
				t.Fatalf("Validate() = %v, want *InvalidInputError", err)
			}
			if len(invalid.Fields) != len(tc.badKeys) {
				t.Fatalf("got %d field errors %v, want %d", len(invalid.Fields), invalid.Fields, len(tc.badKeys))
			}
			for _, key := range tc.badKeys {
				if _, ok := invalid.Fields[key]; !ok {
					t.Fatalf("missing field error for %q in %v", key, invalid.Fields)
				}
			}
		})
	}
}

func asInvalidInput(err error, target **InvalidInputError) bool {
	if err == nil {
		return false
	}
	v, ok := err.(*InvalidInputError)
	if ok {
		*target = v
	}
	return ok
}

func TestNewEntryEntryTrimsAndParses(t *testing.T) {
	in := NewEntry{
		ClientName:         "  Acme  ",
		DrawingTitle:       " Poster ",
		DrawingDescription: " rough draft ",
		Deadline:           "2026-04-15",
		Amount:             " 99.50 ",
		Favorite:           true,
	}
	got := in.Entry(7)
	if got.UserID != 7 {
		t.Fatalf("UserID = %d, want 7", got.UserID)
	}
	if got.ClientName != "Acme" || got.DrawingTitle != "Poster" || got.DrawingDescription != "rough draft" {
		t.Fatalf("fields not trimmed: %+v", got)
	}
	if got.Amount != "99.50" {
		t.Fatalf("Amount = %q, want %q", got.Amount, "99.50")
	}
	if got.Deadline.String() != "2026-04-15" {
		t.Fatalf("Deadline = %q, want 2026-04-15", got.Deadline.String())
	}
	if !got.Favorite || got.Completed {
		t.Fatalf("flags = favorite:%v completed:%v", got.Favorite, got.Completed)
	}
}

func TestEntryPatchApply(t *testing.T) {
	base := DrawingEntry{
		ID:           3,
		UserID:       1,
		ClientName:   "Acme",
		DrawingTitle: "Poster",
		Amount:       "100",
		DateCreated:  time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC),
	}

	title := "Poster v2"
	completed := true
	got := EntryPatch{DrawingTitle: &title, Completed: &completed}.Apply(base)

	if got.DrawingTitle != "Poster v2" || !got.Completed {
		t.Fatalf("patched fields not applied: %+v", got)
	}
	if got.ClientName != "Acme" || got.Amount != "100" {
		t.Fatalf("untouched fields changed: %+v", got)
	}
	if got.ID != 3 || got.UserID != 1 || !got.DateCreated.Equal(base.DateCreated) {
		t.Fatalf("immutable fields changed: %+v", got)
	}

	if !(EntryPatch{}).IsEmpty() {
		t.Fatal("zero patch should be empty")
	}
	if (EntryPatch{DrawingTitle: &title}).IsEmpty() {
		t.Fatal("non-zero patch should not be empty")
	}
}

func TestDateJSON(t *testing.T) {
	d := NewDate(2026, 3, 1)
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"2026-03-01"` {
		t.Fatalf("marshal = %s", b)
	}

	empty, err := json.Marshal(Date{})
	if err != nil {
		t.Fatalf("marshal zero: %v", err)
	}
	if string(empty) != "null" {
		t.Fatalf("marshal zero = %s, want null", empty)
	}

	var back Date
	if err := json.Unmarshal([]byte(`"2026-03-01"`), &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(d.Time) {
		t.Fatalf("round trip = %v, want %v", back, d)
	}

	var fromNull Date
	if err := json.Unmarshal([]byte("null"), &fromNull); err != nil {
		t.Fatalf("unmarshal null: %v", err)
	}
	if !fromNull.IsEmpty() {
		t.Fatalf("null should unmarshal to empty date, got %v", fromNull)
	}

	var bad Date
	if err := json.Unmarshal([]byte(`"01/02/2026"`), &bad); err == nil {
		t.Fatal("expected error for non-ISO date")
	}
}
