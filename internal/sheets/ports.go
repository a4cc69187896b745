// Package sheets defines the spreadsheet mirror ports and the row layout
// shared by the google and memory adapters.
package sheets

import (
	"context"

	"drawtrack/internal/core"
)

// Data is a raw rectangular slice of the mirror sheet.
type Data struct {
	Range  string     `json:"range"`
	Values [][]string `json:"values"`
}

// Ports for outbound adapters.
type (
	// MirrorWriter overwrites the mirror sheet with the full entry set and
	// reports how many rows it wrote, header included.
	MirrorWriter interface {
		SyncEntries(ctx context.Context, entries []core.DrawingEntry) (updatedRows int64, err error)
	}

	// MirrorReader returns the current mirror contents.
	MirrorReader interface {
		Data(ctx context.Context) (Data, error)
	}
)
