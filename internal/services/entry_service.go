// Package services orchestrates drawing-entry operations across the entity
// store and the mirror-sync queue.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"drawtrack/internal/core"
	"drawtrack/internal/store"
)

// MirrorTrigger enqueues a mirror refresh. Implemented by the AMQP client
// and by the in-process queue.
type MirrorTrigger interface {
	TriggerSync(ctx context.Context, entryID int64, reason string) error
}

// EntryService is the owner-scoped façade over drawing entries. Every read
// and mutation is scoped to the calling owner; an entry owned by someone
// else behaves exactly like a missing one.
type EntryService struct {
	store   store.EntityStore
	trigger MirrorTrigger
}

func NewEntryService(entityStore store.EntityStore, trigger MirrorTrigger) *EntryService {
	return &EntryService{
		store:   entityStore,
		trigger: trigger,
	}
}

// List returns the owner's entries with the search and category views
// applied, search first. An empty category skips category filtering.
func (s *EntryService) List(ctx context.Context, ownerID int64, category core.Category, query string) ([]core.DrawingEntry, error) {
	entries, err := s.store.GetDrawingEntries(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	entries = core.FilterSearch(entries, query)
	if category != "" {
		entries = core.FilterCategory(entries, category)
	}
	return entries, nil
}

// Create validates the input, stores the entry for the owner and triggers a
// mirror refresh.
func (s *EntryService) Create(ctx context.Context, ownerID int64, in core.NewEntry) (core.DrawingEntry, error) {
	if err := in.Validate(); err != nil {
		return core.DrawingEntry{}, err
	}

	created, err := s.store.CreateDrawingEntry(ctx, in.Entry(ownerID))
	if err != nil {
		return core.DrawingEntry{}, fmt.Errorf("create entry: %w", err)
	}

	s.fireSync(ctx, created.ID, "entry_created")
	return created, nil
}

// Update merges the patch onto the owner's entry. Missing and foreign
// entries are both reported as core.ErrNotFound.
func (s *EntryService) Update(ctx context.Context, ownerID, id int64, patch core.EntryPatch) (core.DrawingEntry, error) {
	entry, err := s.getOwned(ctx, ownerID, id)
	if err != nil {
		return core.DrawingEntry{}, err
	}

	updated, err := s.store.UpdateDrawingEntry(ctx, patch.Apply(entry))
	if err != nil {
		return core.DrawingEntry{}, fmt.Errorf("update entry %d: %w", id, err)
	}

	s.fireSync(ctx, id, "entry_updated")
	return updated, nil
}

// Delete removes the owner's entry.
func (s *EntryService) Delete(ctx context.Context, ownerID, id int64) error {
	if _, err := s.getOwned(ctx, ownerID, id); err != nil {
		return err
	}
	if err := s.store.DeleteDrawingEntry(ctx, id); err != nil {
		return fmt.Errorf("delete entry %d: %w", id, err)
	}

	s.fireSync(ctx, id, "entry_deleted")
	return nil
}

// ToggleFavorite flips the favorite flag and returns the new value. The
// flip is read-modify-write: concurrent toggles are last-writer-wins.
func (s *EntryService) ToggleFavorite(ctx context.Context, ownerID, id int64) (bool, error) {
	entry, err := s.getOwned(ctx, ownerID, id)
	if err != nil {
		return false, err
	}
	next := !entry.Favorite
	if _, err := s.Update(ctx, ownerID, id, core.EntryPatch{Favorite: &next}); err != nil {
		return false, err
	}
	return next, nil
}

// ToggleCompleted flips the completed flag and returns the new value.
func (s *EntryService) ToggleCompleted(ctx context.Context, ownerID, id int64) (bool, error) {
	entry, err := s.getOwned(ctx, ownerID, id)
	if err != nil {
		return false, err
	}
	next := !entry.Completed
	if _, err := s.Update(ctx, ownerID, id, core.EntryPatch{Completed: &next}); err != nil {
		return false, err
	}
	return next, nil
}

// Summary aggregates the owner's full entry set, independent of any view.
func (s *EntryService) Summary(ctx context.Context, ownerID int64) (core.Summary, error) {
	entries, err := s.store.GetDrawingEntries(ctx, ownerID)
	if err != nil {
		return core.Summary{}, fmt.Errorf("summarize entries: %w", err)
	}
	return core.BuildSummary(entries), nil
}

func (s *EntryService) getOwned(ctx context.Context, ownerID, id int64) (core.DrawingEntry, error) {
	entry, err := s.store.GetDrawingEntry(ctx, id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return core.DrawingEntry{}, fmt.Errorf("entry %d: %w", id, core.ErrNotFound)
		}
		return core.DrawingEntry{}, fmt.Errorf("get entry %d: %w", id, err)
	}
	if entry.UserID != ownerID {
		// ownership mismatch is indistinguishable from absence
		return core.DrawingEntry{}, fmt.Errorf("entry %d: %w", id, core.ErrNotFound)
	}
	return entry, nil
}

// fireSync enqueues a mirror refresh. Failures are logged and swallowed;
// the mirror is best-effort and must never fail a mutation.
func (s *EntryService) fireSync(ctx context.Context, entryID int64, reason string) {
	if s.trigger == nil {
		return
	}
	if err := s.trigger.TriggerSync(ctx, entryID, reason); err != nil {
		slog.ErrorContext(ctx, "Failed to trigger mirror sync",
			"entry_id", entryID,
			"reason", reason,
			"error", err)
	}
}
