package services

import (
	"context"
	"fmt"
	"log/slog"

	"drawtrack/internal/core"
	"drawtrack/internal/sheets"
	"drawtrack/internal/store"
)

// SyncService pushes the full entry set of every user into the spreadsheet
// mirror. The mirror is always overwritten wholesale, so a single failed
// push is repaired by the next one.
type SyncService struct {
	store  store.EntityStore
	mirror sheets.MirrorWriter
}

func NewSyncService(entityStore store.EntityStore, mirror sheets.MirrorWriter) *SyncService {
	return &SyncService{
		store:  entityStore,
		mirror: mirror,
	}
}

// SyncAll snapshots all users' entries and overwrites the mirror. Returns
// the number of spreadsheet rows written, header included.
func (s *SyncService) SyncAll(ctx context.Context) (int64, error) {
	entries, err := s.snapshot(ctx)
	if err != nil {
		return 0, err
	}

	rows, err := s.mirror.SyncEntries(ctx, entries)
	if err != nil {
		return 0, fmt.Errorf("sync mirror: %w", err)
	}

	slog.InfoContext(ctx, "Mirror sync completed",
		"entries", len(entries),
		"updated_rows", rows)
	return rows, nil
}

func (s *SyncService) snapshot(ctx context.Context) ([]core.DrawingEntry, error) {
	users, err := s.store.GetAllUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	var entries []core.DrawingEntry
	for _, u := range users {
		userEntries, err := s.store.GetDrawingEntries(ctx, u.ID)
		if err != nil {
			return nil, fmt.Errorf("list entries for user %d: %w", u.ID, err)
		}
		entries = append(entries, userEntries...)
	}
	return entries, nil
}
