package utils

import (
	"testing"
	"time"
)

func TestIsMarketOpenAt(t *testing.T) {
	tests := []struct {
		name string
		t    time.Time
		want bool
	}{
		{"morning session", time.Date(2026, 3, 4, 10, 30, 0, 0, HKT), true},
		{"lunch break", time.Date(2026, 3, 4, 12, 30, 0, 0, HKT), false},
		{"afternoon session", time.Date(2026, 3, 4, 14, 0, 0, 0, HKT), true},
		{"after close", time.Date(2026, 3, 4, 16, 1, 0, 0, HKT), false},
		{"before auction", time.Date(2026, 3, 4, 8, 0, 0, 0, HKT), false},
		{"saturday", time.Date(2026, 3, 7, 10, 30, 0, 0, HKT), false},
		{"lunar new year", time.Date(2026, 2, 17, 10, 30, 0, 0, HKT), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsMarketOpenAt(tt.t); got != tt.want {
				t.Errorf("IsMarketOpenAt(%v) = %v, want %v", tt.t, got, tt.want)
			}
		})
	}
}

func TestMarketStatusAt(t *testing.T) {
	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"morning", time.Date(2026, 3, 4, 10, 0, 0, 0, HKT), "OPEN (Morning Session)"},
		{"lunch", time.Date(2026, 3, 4, 12, 30, 0, 0, HKT), "LUNCH BREAK"},
		{"afternoon", time.Date(2026, 3, 4, 15, 0, 0, 0, HKT), "OPEN (Afternoon Session)"},
		{"auction", time.Date(2026, 3, 4, 9, 15, 0, 0, HKT), "PRE-OPENING AUCTION"},
		{"weekend", time.Date(2026, 3, 8, 10, 0, 0, 0, HKT), "CLOSED (Weekend)"},
		{"holiday", time.Date(2026, 7, 1, 10, 0, 0, 0, HKT), "CLOSED (HKSAR Establishment Day)"},
		{"evening", time.Date(2026, 3, 4, 20, 0, 0, 0, HKT), "CLOSED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MarketStatusAt(tt.t); got != tt.want {
				t.Errorf("MarketStatusAt(%v) = %q, want %q", tt.t, got, tt.want)
			}
		})
	}
}

func TestNextPrevTradingDay(t *testing.T) {
	// Friday 2026-03-06 → next is Monday 2026-03-09.
	friday := time.Date(2026, 3, 6, 12, 0, 0, 0, HKT)
	next := NextTradingDay(friday)
	if next.Weekday() != time.Monday || next.Day() != 9 {
		t.Errorf("NextTradingDay(Friday) = %v, want Monday 2026-03-09", next)
	}

	// Monday 2026-03-09 → previous is Friday 2026-03-06.
	prev := PrevTradingDay(next)
	if prev.Weekday() != time.Friday || prev.Day() != 6 {
		t.Errorf("PrevTradingDay(Monday) = %v, want Friday 2026-03-06", prev)
	}

	// Day before Lunar New Year block skips to the Friday after.
	cnyEve := time.Date(2026, 2, 16, 12, 0, 0, 0, HKT)
	next = NextTradingDay(cnyEve)
	if next.Format("2006-01-02") != "2026-02-20" {
		t.Errorf("NextTradingDay(CNY eve) = %v, want 2026-02-20", next)
	}
}

func TestTradingDaysBetween(t *testing.T) {
	// Mon 2026-03-02 through Sun 2026-03-08: five trading days.
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, HKT)
	end := time.Date(2026, 3, 8, 0, 0, 0, 0, HKT)
	if got := TradingDaysBetween(start, end); got != 5 {
		t.Errorf("TradingDaysBetween = %d, want 5", got)
	}
}

func TestParseFormatDateHKT(t *testing.T) {
	parsed, err := ParseDateHKT("2026-03-04")
	if err != nil {
		t.Fatalf("ParseDateHKT failed: %v", err)
	}
	if got := FormatDateHKT(parsed); got != "2026-03-04" {
		t.Errorf("round trip: got %q", got)
	}
}
