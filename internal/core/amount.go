// Package core holds the DrawTrack domain model and the pure read-side
// transforms over it.
//
// This file contains amount parsing for aggregation. Amounts are stored as
// strings to preserve the formatting the user typed; aggregation parses them
// with the same leniency the original UI relied on: the longest numeric
// prefix wins, and anything unparseable counts as 0 rather than an error.
package core

import (
	"strconv"
	"strings"
)

// ParseAmount converts an amount string to a float64 for aggregation.
//
// It mirrors parseFloat semantics: leading whitespace is skipped, the longest
// prefix that forms a decimal number is parsed, and a string with no numeric
// prefix yields 0. It never returns an error.
//
// Examples:
//
//	ParseAmount("100.50")  -> 100.5
//	ParseAmount("12.34xy") -> 12.34
//	ParseAmount("abc")     -> 0
//	ParseAmount("")        -> 0
func ParseAmount(s string) float64 {
	prefix := numericPrefix(strings.TrimSpace(s))
	if prefix == "" {
		return 0
	}
	f, err := strconv.ParseFloat(prefix, 64)
	if err != nil {
		return 0
	}
	return f
}

// numericPrefix returns the longest leading substring of s that is a decimal
// number, or "" when s does not start with one.
func numericPrefix(s string) string {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := false
	dot := false
	for i < len(s) {
		c := s[i]
		if c >= '0' && c <= '9' {
			digits = true
			i++
			continue
		}
		if c == '.' && !dot {
			dot = true
			i++
			continue
		}
		break
	}
	if !digits {
		return ""
	}
	return s[:i]
}
