// Package store defines the entity storage port shared by the memory and
// sqlite backends.
package store

import (
	"context"

	"drawtrack/internal/core"
)

// EntityStore is the persistence boundary for users and drawing entries.
// Implementations signal absence with core.ErrNotFound and must be safe for
// concurrent use.
type EntityStore interface {
	CreateUser(ctx context.Context, u core.NewUser) (core.User, error)
	GetUser(ctx context.Context, id int64) (core.User, error)
	GetUserByUsername(ctx context.Context, username string) (core.User, error)
	GetUserByEmail(ctx context.Context, email string) (core.User, error)
	GetAllUsers(ctx context.Context) ([]core.User, error)

	CreateDrawingEntry(ctx context.Context, e core.DrawingEntry) (core.DrawingEntry, error)
	GetDrawingEntry(ctx context.Context, id int64) (core.DrawingEntry, error)
	GetDrawingEntries(ctx context.Context, userID int64) ([]core.DrawingEntry, error)
	UpdateDrawingEntry(ctx context.Context, e core.DrawingEntry) (core.DrawingEntry, error)
	DeleteDrawingEntry(ctx context.Context, id int64) error

	Close() error
}
