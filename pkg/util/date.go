package util

import (
	"strconv"
	"time"
)

var ledgerDateLayouts = []string{
	"2006-01-02",
	"02-01-2006",
	"2006/01/02",
	"02/01/2006",
}

// ParseLedgerDate tries ISO-8601 date, day-first locale forms, and RFC3339.
// Returns (t, true) if any worked; the time is normalized to UTC midnight.
func ParseLedgerDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range ledgerDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}

// ParseLedgerDateDefault parses a date or returns the default if empty/invalid.
func ParseLedgerDateDefault(s string, def time.Time) time.Time {
	if t, ok := ParseLedgerDate(s); ok {
		return t
	}
	return def
}

// ParseIntDefault parses string to int or returns default if empty/invalid.
func ParseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
