// Package valueobject provides permissive parsing for values coming from
// tabular storage, where cells are frequently empty or malformed.
package valueobject

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestParseFlexibleDate(t *testing.T) {
	march15 := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input string
		want  *time.Time
	}{
		{name: "ISO date", input: "2024-03-15", want: &march15},
		{name: "ISO datetime", input: "2024-03-15T10:30:00Z", want: &march15},
		{name: "ISO date with space-separated time", input: "2024-03-15 10:30:00", want: &march15},
		{name: "day-first slash date", input: "15/03/2024", want: &march15},
		{name: "day-first with surrounding whitespace", input: "  15/03/2024  ", want: &march15},
		{name: "empty cell", input: "", want: nil},
		{name: "whitespace-only cell", input: "   ", want: nil},
		{name: "garbage", input: "not a date", want: nil},
		{name: "rollover day rejected", input: "31/02/2024", want: nil},
		{name: "rollover day rejected in ISO", input: "2024-02-31", want: nil},
		{name: "month out of range", input: "15/13/2024", want: nil},
		{name: "day out of range", input: "32/01/2024", want: nil},
		{name: "two fields only", input: "15/03", want: nil},
		{name: "non-numeric fields", input: "dd/mm/yyyy", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseFlexibleDate(tt.input)
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("ParseFlexibleDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if got != nil && !got.Equal(*tt.want) {
				t.Errorf("ParseFlexibleDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseFlexibleDate_DayFirstNeverTransposed(t *testing.T) {
	// 05/03 must parse as March 5th, never May 3rd.
	got := ParseFlexibleDate("05/03/2024")
	if got == nil {
		t.Fatal("expected a parsed date")
	}
	if got.Month() != time.March || got.Day() != 5 {
		t.Errorf("ParseFlexibleDate(05/03/2024) = %v, want 2024-03-05", got)
	}
}

func TestParseFlexibleAmount(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain number", input: "1500", want: "1500"},
		{name: "decimal number", input: "1500.50", want: "1500.5"},
		{name: "dollar prefix", input: "$1500", want: "1500"},
		{name: "thousands separators", input: "1,500.00", want: "1500"},
		{name: "dollar and separators", input: "$12,345.67", want: "12345.67"},
		{name: "surrounding whitespace", input: "  1500  ", want: "1500"},
		{name: "empty cell degrades to zero", input: "", want: "0"},
		{name: "garbage degrades to zero", input: "n/a", want: "0"},
		{name: "negative degrades to zero", input: "-200", want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseFlexibleAmount(tt.input)
			want, _ := decimal.NewFromString(tt.want)
			if !got.Equal(want) {
				t.Errorf("ParseFlexibleAmount(%q) = %s, want %s", tt.input, got, want)
			}
		})
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name string
		a    time.Time
		b    time.Time
		want int
	}{
		{
			name: "same day",
			a:    time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC),
			b:    time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC),
			want: 0,
		},
		{
			name: "same day different hours",
			a:    time.Date(2024, time.March, 15, 23, 0, 0, 0, time.UTC),
			b:    time.Date(2024, time.March, 15, 1, 0, 0, 0, time.UTC),
			want: 0,
		},
		{
			name: "one day apart",
			a:    time.Date(2024, time.March, 14, 0, 0, 0, 0, time.UTC),
			b:    time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC),
			want: 1,
		},
		{
			name: "negative when b precedes a",
			a:    time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC),
			b:    time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC),
			want: -5,
		},
		{
			name: "across a month boundary",
			a:    time.Date(2024, time.February, 12, 0, 0, 0, 0, time.UTC),
			b:    time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC),
			want: 32,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysBetween(tt.a, tt.b); got != tt.want {
				t.Errorf("DaysBetween() = %d, want %d", got, tt.want)
			}
		})
	}
}
