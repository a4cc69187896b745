// Package backend selects and builds the entity store implementation.
package backend

import (
	"context"

	"drawtrack/internal/store"
)

// CleanupFunc releases the resources a backend holds.
type CleanupFunc func() error

// BackendResult contains the store instance and optional cleanup function.
type BackendResult struct {
	Store   store.EntityStore
	Cleanup CleanupFunc
}

// Factory creates entity stores based on configuration.
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
}

// Config holds configuration for backend creation.
type Config struct {
	Type BackendType

	// SQLite specific
	SQLiteDBPath string
}

// BackendType names an entity store implementation.
type BackendType string

const (
	MemoryBackend BackendType = "memory"
	SQLiteBackend BackendType = "sqlite"
)

func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is known.
func (bt BackendType) IsValid() bool {
	switch bt {
	case MemoryBackend, SQLiteBackend:
		return true
	default:
		return false
	}
}

// Validate checks that the configuration is complete for the chosen type.
func (c Config) Validate() error {
	if !c.Type.IsValid() {
		return &InvalidConfigError{Reason: "unknown backend type " + string(c.Type)}
	}
	if c.Type == SQLiteBackend && c.SQLiteDBPath == "" {
		return &InvalidConfigError{Reason: "sqlite backend requires a database path"}
	}
	return nil
}

// InvalidConfigError reports an unusable backend configuration.
type InvalidConfigError struct {
	Reason string
}

func (e *InvalidConfigError) Error() string {
	return "invalid backend config: " + e.Reason
}
