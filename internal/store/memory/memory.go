// Package memory is the default in-process entity store. Identifiers are
// monotonic and never reused, so a deleted entry's id stays dangling instead
// of pointing at a newer record.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"drawtrack/internal/core"
)

type Store struct {
	mu          sync.RWMutex
	users       map[int64]core.User
	entries     map[int64]core.DrawingEntry
	nextUserID  int64
	nextEntryID int64
}

func New() *Store {
	return &Store{
		users:       make(map[int64]core.User),
		entries:     make(map[int64]core.DrawingEntry),
		nextUserID:  1,
		nextEntryID: 1,
	}
}

func (s *Store) CreateUser(_ context.Context, u core.NewUser) (core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := core.User{
		ID:           s.nextUserID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		AvatarURL:    u.AvatarURL,
		IsAdmin:      u.IsAdmin,
	}
	s.nextUserID++
	s.users[user.ID] = user
	return user, nil
}

func (s *Store) GetUser(_ context.Context, id int64) (core.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return core.User{}, fmt.Errorf("user %d: %w", id, core.ErrNotFound)
	}
	return user, nil
}

func (s *Store) GetUserByUsername(_ context.Context, username string) (core.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.userIDs() {
		if s.users[id].Username == username {
			return s.users[id], nil
		}
	}
	return core.User{}, fmt.Errorf("user %q: %w", username, core.ErrNotFound)
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (core.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.userIDs() {
		if s.users[id].Email == email {
			return s.users[id], nil
		}
	}
	return core.User{}, fmt.Errorf("user %q: %w", email, core.ErrNotFound)
}

func (s *Store) GetAllUsers(_ context.Context) ([]core.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]core.User, 0, len(s.users))
	for _, id := range s.userIDs() {
		out = append(out, s.users[id])
	}
	return out, nil
}

func (s *Store) CreateDrawingEntry(_ context.Context, e core.DrawingEntry) (core.DrawingEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e.ID = s.nextEntryID
	s.nextEntryID++
	if e.DateCreated.IsZero() {
		e.DateCreated = time.Now()
	}
	s.entries[e.ID] = e
	return e, nil
}

func (s *Store) GetDrawingEntry(_ context.Context, id int64) (core.DrawingEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[id]
	if !ok {
		return core.DrawingEntry{}, fmt.Errorf("entry %d: %w", id, core.ErrNotFound)
	}
	return entry, nil
}

// GetDrawingEntries returns the user's entries in ascending id order, which
// is insertion order since ids never go backwards.
func (s *Store) GetDrawingEntries(_ context.Context, userID int64) ([]core.DrawingEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int64, 0, len(s.entries))
	for id, e := range s.entries {
		if e.UserID == userID {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]core.DrawingEntry, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.entries[id])
	}
	return out, nil
}

// UpdateDrawingEntry replaces the stored entry wholesale. The caller is
// responsible for merging; id, owner and creation time come from e.
func (s *Store) UpdateDrawingEntry(_ context.Context, e core.DrawingEntry) (core.DrawingEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[e.ID]; !ok {
		return core.DrawingEntry{}, fmt.Errorf("entry %d: %w", e.ID, core.ErrNotFound)
	}
	s.entries[e.ID] = e
	return e, nil
}

func (s *Store) DeleteDrawingEntry(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[id]; !ok {
		return fmt.Errorf("entry %d: %w", id, core.ErrNotFound)
	}
	delete(s.entries, id)
	return nil
}

func (s *Store) Close() error {
	return nil
}

// userIDs returns all user ids ascending; callers must hold at least a read
// lock.
func (s *Store) userIDs() []int64 {
	ids := make([]int64, 0, len(s.users))
	for id := range s.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
