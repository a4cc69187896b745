package core

import (
	"sort"
	"strings"
)

// Category is one of the five mutually exclusive dashboard views.
type Category string

const (
	CategoryLatest    Category = "latest"
	CategoryCompleted Category = "completed"
	CategoryIncome    Category = "income"
	CategoryFavorites Category = "favorites"
	CategoryHistory   Category = "history"
)

// IsValid reports whether c names a known category.
func (c Category) IsValid() bool {
	switch c {
	case CategoryLatest, CategoryCompleted, CategoryIncome, CategoryFavorites, CategoryHistory:
		return true
	default:
		return false
	}
}

// ClientIncome aggregates one client's entries.
type ClientIncome struct {
	ClientName   string  `json:"clientName"`
	ProjectCount int     `json:"projectCount"`
	TotalAmount  float64 `json:"totalAmount"`
}

// Summary is the income view of an owner's full entry set. The counts cover
// the whole set, independent of any active filter.
type Summary struct {
	TotalIncome    float64        `json:"totalIncome"`
	CompletedCount int            `json:"completedCount"`
	PendingCount   int            `json:"pendingCount"`
	Clients        []ClientIncome `json:"clients"`
}

// FilterSearch returns the entries whose client name, title or description
// contains query, case-insensitively. An empty query keeps everything.
// The input slice is never mutated.
func FilterSearch(entries []DrawingEntry, query string) []DrawingEntry {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return append([]DrawingEntry(nil), entries...)
	}
	out := make([]DrawingEntry, 0, len(entries))
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.ClientName), query) ||
			strings.Contains(strings.ToLower(e.DrawingTitle), query) ||
			strings.Contains(strings.ToLower(e.DrawingDescription), query) {
			out = append(out, e)
		}
	}
	return out
}

// FilterCategory applies one of the category views. latest and history both
// return the full set newest first; completed returns the completed subset
// newest first; favorites returns the favorite subset in store order; income
// is an aggregation trigger and leaves the entries untouched. Date sorts are
// stable, so entries created at the same instant keep their relative order.
func FilterCategory(entries []DrawingEntry, category Category) []DrawingEntry {
	out := append([]DrawingEntry(nil), entries...)
	switch category {
	case CategoryLatest, CategoryHistory:
		sortNewestFirst(out)
	case CategoryCompleted:
		out = keep(out, func(e DrawingEntry) bool { return e.Completed })
		sortNewestFirst(out)
	case CategoryFavorites:
		out = keep(out, func(e DrawingEntry) bool { return e.Favorite })
	}
	return out
}

func sortNewestFirst(entries []DrawingEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].DateCreated.After(entries[j].DateCreated)
	})
}

func keep(entries []DrawingEntry, pred func(DrawingEntry) bool) []DrawingEntry {
	out := entries[:0]
	for _, e := range entries {
		if pred(e) {
			out = append(out, e)
		}
	}
	return out
}

// TotalIncome sums the parsed amounts of all entries.
func TotalIncome(entries []DrawingEntry) float64 {
	var total float64
	for _, e := range entries {
		total += ParseAmount(e.Amount)
	}
	return total
}

// CompletedCount counts the entries marked completed.
func CompletedCount(entries []DrawingEntry) int {
	n := 0
	for _, e := range entries {
		if e.Completed {
			n++
		}
	}
	return n
}

// PendingCount counts the entries not yet completed.
func PendingCount(entries []DrawingEntry) int {
	return len(entries) - CompletedCount(entries)
}

// ClientIncomeBreakdown groups entries by exact client name and reports the
// project count and summed amount per client, in first-seen order.
func ClientIncomeBreakdown(entries []DrawingEntry) []ClientIncome {
	index := map[string]int{}
	out := make([]ClientIncome, 0)
	for _, e := range entries {
		i, ok := index[e.ClientName]
		if !ok {
			i = len(out)
			index[e.ClientName] = i
			out = append(out, ClientIncome{ClientName: e.ClientName})
		}
		out[i].ProjectCount++
		out[i].TotalAmount += ParseAmount(e.Amount)
	}
	return out
}

// BuildSummary assembles the income view over the full entry set.
func BuildSummary(entries []DrawingEntry) Summary {
	return Summary{
		TotalIncome:    TotalIncome(entries),
		CompletedCount: CompletedCount(entries),
		PendingCount:   PendingCount(entries),
		Clients:        ClientIncomeBreakdown(entries),
	}
}
