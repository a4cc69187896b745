// Package memory is the in-process mirror used in development and tests.
package memory

import (
	"context"
	"sync"

	"drawtrack/internal/core"
	ports "drawtrack/internal/sheets"
)

type Store struct {
	mu     sync.Mutex
	values [][]string
	syncs  int
}

// Ensure interface conformance
var (
	_ ports.MirrorWriter = (*Store)(nil)
	_ ports.MirrorReader = (*Store)(nil)
)

func New() *Store {
	return &Store{}
}

// SyncEntries replaces the held mirror with header plus entry rows.
func (s *Store) SyncEntries(_ context.Context, entries []core.DrawingEntry) (int64, error) {
	rows := ports.BuildRows(entries)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = rows
	s.syncs++
	return int64(len(rows)), nil
}

// Data returns the last synced mirror contents.
func (s *Store) Data(_ context.Context) (ports.Data, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values := make([][]string, len(s.values))
	for i, row := range s.values {
		values[i] = append([]string(nil), row...)
	}
	return ports.Data{Range: ports.EntryRange, Values: values}, nil
}

// SyncCount reports how many overwrites have happened; used by tests.
func (s *Store) SyncCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.syncs
}
