package sheets

import (
	"strconv"
	"time"

	"drawtrack/internal/core"
)

// DefaultSheetName is the tab holding the mirrored entries.
const DefaultSheetName = "DrawingEntries"

// EntryRange covers the header plus all mirrored columns.
const EntryRange = DefaultSheetName + "!A:J"

// Header is the first row of the mirror sheet.
var Header = []string{
	"ID",
	"Client Name",
	"Drawing Title",
	"Description",
	"Deadline",
	"Amount",
	"Date Created",
	"Completed",
	"Favorite",
	"User ID",
}

// BuildRows renders the full mirror payload: the header followed by one row
// per entry in input order.
func BuildRows(entries []core.DrawingEntry) [][]string {
	rows := make([][]string, 0, len(entries)+1)
	rows = append(rows, Header)
	for _, e := range entries {
		rows = append(rows, entryRow(e))
	}
	return rows
}

func entryRow(e core.DrawingEntry) []string {
	return []string{
		strconv.FormatInt(e.ID, 10),
		e.ClientName,
		e.DrawingTitle,
		e.DrawingDescription,
		formatDeadline(e.Deadline),
		e.Amount,
		formatDateTime(e.DateCreated),
		yesNo(e.Completed),
		yesNo(e.Favorite),
		strconv.FormatInt(e.UserID, 10),
	}
}

func formatDeadline(d core.Date) string {
	if d.IsEmpty() {
		return ""
	}
	return d.Format("1/2/2006")
}

func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("1/2/2006, 3:04:05 PM")
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
