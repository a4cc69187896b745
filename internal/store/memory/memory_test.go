package memory

import (
	"context"
	"errors"
	"testing"

	"drawtrack/internal/core"
)

func TestUserLifecycle(t *testing.T) {
	ctx := context.Background()
	s := New()

	created, err := s.CreateUser(ctx, core.NewUser{
		Username: "demo",
		Email:    "demo@example.com",
		IsAdmin:  true,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if created.ID != 1 {
		t.Fatalf("first user id = %d, want 1", created.ID)
	}

	byID, err := s.GetUser(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if byID != created {
		t.Fatalf("GetUser = %+v, want %+v", byID, created)
	}

	byUsername, err := s.GetUserByUsername(ctx, "demo")
	if err != nil || byUsername.ID != created.ID {
		t.Fatalf("GetUserByUsername = %+v, %v", byUsername, err)
	}

	byEmail, err := s.GetUserByEmail(ctx, "demo@example.com")
	if err != nil || byEmail.ID != created.ID {
		t.Fatalf("GetUserByEmail = %+v, %v", byEmail, err)
	}

	second, err := s.CreateUser(ctx, core.NewUser{Username: "other", Email: "other@example.com"})
	if err != nil {
		t.Fatalf("CreateUser second: %v", err)
	}
	if second.ID != 2 {
		t.Fatalf("second user id = %d, want 2", second.ID)
	}

	all, err := s.GetAllUsers(ctx)
	if err != nil {
		t.Fatalf("GetAllUsers: %v", err)
	}
	if len(all) != 2 || all[0].ID != 1 || all[1].ID != 2 {
		t.Fatalf("GetAllUsers = %+v", all)
	}
}

func TestUserNotFound(t *testing.T) {
	ctx := context.Background()
	s := New()

	if _, err := s.GetUser(ctx, 99); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("GetUser err = %v, want ErrNotFound", err)
	}
	if _, err := s.GetUserByUsername(ctx, "ghost"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("GetUserByUsername err = %v, want ErrNotFound", err)
	}
	if _, err := s.GetUserByEmail(ctx, "ghost@example.com"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("GetUserByEmail err = %v, want ErrNotFound", err)
	}
}

func TestEntryLifecycle(t *testing.T) {
	ctx := context.Background()
	s := New()

	created, err := s.CreateDrawingEntry(ctx, core.DrawingEntry{
		UserID:       1,
		ClientName:   "Acme",
		DrawingTitle: "Poster",
		Amount:       "100.50",
	})
	if err != nil {
		t.Fatalf("CreateDrawingEntry: %v", err)
	}
	if created.ID != 1 {
		t.Fatalf("first entry id = %d, want 1", created.ID)
	}
	if created.DateCreated.IsZero() {
		t.Fatal("DateCreated not stamped")
	}

	got, err := s.GetDrawingEntry(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetDrawingEntry: %v", err)
	}
	if got.ClientName != "Acme" {
		t.Fatalf("GetDrawingEntry = %+v", got)
	}

	got.Completed = true
	updated, err := s.UpdateDrawingEntry(ctx, got)
	if err != nil {
		t.Fatalf("UpdateDrawingEntry: %v", err)
	}
	if !updated.Completed {
		t.Fatalf("update lost: %+v", updated)
	}

	if err := s.DeleteDrawingEntry(ctx, created.ID); err != nil {
		t.Fatalf("DeleteDrawingEntry: %v", err)
	}
	if _, err := s.GetDrawingEntry(ctx, created.ID); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("after delete err = %v, want ErrNotFound", err)
	}
}

func TestEntryIDsAreNeverReused(t *testing.T) {
	ctx := context.Background()
	s := New()

	first, _ := s.CreateDrawingEntry(ctx, core.DrawingEntry{UserID: 1, ClientName: "A", DrawingTitle: "t", Amount: "1"})
	if err := s.DeleteDrawingEntry(ctx, first.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	second, _ := s.CreateDrawingEntry(ctx, core.DrawingEntry{UserID: 1, ClientName: "B", DrawingTitle: "t", Amount: "1"})
	if second.ID <= first.ID {
		t.Fatalf("id reused: first=%d second=%d", first.ID, second.ID)
	}
}

func TestGetDrawingEntriesScopedToOwner(t *testing.T) {
	ctx := context.Background()
	s := New()

	for _, e := range []core.DrawingEntry{
		{UserID: 1, ClientName: "Acme", DrawingTitle: "a", Amount: "1"},
		{UserID: 2, ClientName: "Beta", DrawingTitle: "b", Amount: "2"},
		{UserID: 1, ClientName: "Acme", DrawingTitle: "c", Amount: "3"},
	} {
		if _, err := s.CreateDrawingEntry(ctx, e); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	mine, err := s.GetDrawingEntries(ctx, 1)
	if err != nil {
		t.Fatalf("GetDrawingEntries: %v", err)
	}
	if len(mine) != 2 || mine[0].ID != 1 || mine[1].ID != 3 {
		t.Fatalf("entries for user 1 = %+v", mine)
	}

	none, err := s.GetDrawingEntries(ctx, 9)
	if err != nil {
		t.Fatalf("GetDrawingEntries empty: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("entries for unknown user = %+v", none)
	}
}

func TestUpdateAndDeleteMissingEntry(t *testing.T) {
	ctx := context.Background()
	s := New()

	if _, err := s.UpdateDrawingEntry(ctx, core.DrawingEntry{ID: 42}); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("update missing err = %v, want ErrNotFound", err)
	}
	if err := s.DeleteDrawingEntry(ctx, 42); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("delete missing err = %v, want ErrNotFound", err)
	}
}
