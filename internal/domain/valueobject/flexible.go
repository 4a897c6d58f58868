// Package valueobject provides permissive parsing for values coming from
// tabular storage, where cells are frequently empty or malformed.
package valueobject

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ParseFlexibleDate parses a date cell into a calendar date at midnight UTC.
// Two shapes are accepted: ISO-like (YYYY-MM-DD, optionally with a time
// suffix) and day-first slash-delimited (DD/MM/YYYY). Slash-delimited input
// is split by hand so the day and month can never be transposed by a
// locale-sensitive parser. Anything else yields nil.
func ParseFlexibleDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	if strings.Contains(s, "/") {
		return parseDayFirst(s)
	}

	// ISO date, with or without a time component.
	datePart := s
	if idx := strings.IndexAny(s, "T "); idx > 0 {
		datePart = s[:idx]
	}
	parsed, err := time.Parse("2006-01-02", datePart)
	if err != nil {
		return nil
	}
	day := Midnight(parsed)
	return &day
}

// parseDayFirst parses DD/MM/YYYY by explicit field extraction.
func parseDayFirst(s string) *time.Time {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return nil
	}

	day, errD := strconv.Atoi(strings.TrimSpace(parts[0]))
	month, errM := strconv.Atoi(strings.TrimSpace(parts[1]))
	year, errY := strconv.Atoi(strings.TrimSpace(parts[2]))
	if errD != nil || errM != nil || errY != nil {
		return nil
	}
	if month < 1 || month > 12 || day < 1 || day > 31 || year < 1 {
		return nil
	}

	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// Reject rollovers such as 31/02/2024.
	if date.Day() != day || date.Month() != time.Month(month) {
		return nil
	}
	return &date
}

// ParseFlexibleAmount parses a monetary cell. Non-numeric input degrades to
// zero so a single bad record cannot blank an aggregation.
func ParseFlexibleAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return decimal.Zero
	}

	amount, err := decimal.NewFromString(s)
	if err != nil || amount.IsNegative() {
		return decimal.Zero
	}
	return amount
}

// Midnight truncates a timestamp to its calendar date at midnight UTC.
// All date comparisons in status derivation operate on midnight-normalized
// values so a payment due today is not flagged as overdue.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the whole number of days from a to b, counted on
// midnight-normalized dates. Negative when b precedes a.
func DaysBetween(a, b time.Time) int {
	return int(Midnight(b).Sub(Midnight(a)).Hours() / 24)
}
