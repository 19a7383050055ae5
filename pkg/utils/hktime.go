// Package utils provides Hong Kong market-clock helpers shared by the CLI
// and the API layer.
package utils

import (
	"time"
)

// HKT is the Hong Kong Time location (UTC+8, no DST).
var HKT *time.Location

func init() {
	var err error
	HKT, err = time.LoadLocation("Asia/Hong_Kong")
	if err != nil {
		// Fallback: create fixed zone if tz database is not available
		HKT = time.FixedZone("HKT", 8*60*60)
	}
}

// NowHKT returns the current time in HKT.
func NowHKT() time.Time {
	return time.Now().In(HKT)
}

// ToHKT converts a time.Time to HKT.
func ToHKT(t time.Time) time.Time {
	return t.In(HKT)
}

// MorningOpenTime returns the HKEX morning session open (9:30 AM HKT).
func MorningOpenTime(date time.Time) time.Time {
	d := date.In(HKT)
	return time.Date(d.Year(), d.Month(), d.Day(), 9, 30, 0, 0, HKT)
}

// MorningCloseTime returns the HKEX morning session close (12:00 PM HKT).
func MorningCloseTime(date time.Time) time.Time {
	d := date.In(HKT)
	return time.Date(d.Year(), d.Month(), d.Day(), 12, 0, 0, 0, HKT)
}

// AfternoonOpenTime returns the HKEX afternoon session open (1:00 PM HKT).
func AfternoonOpenTime(date time.Time) time.Time {
	d := date.In(HKT)
	return time.Date(d.Year(), d.Month(), d.Day(), 13, 0, 0, 0, HKT)
}

// AfternoonCloseTime returns the HKEX afternoon session close (4:00 PM HKT).
func AfternoonCloseTime(date time.Time) time.Time {
	d := date.In(HKT)
	return time.Date(d.Year(), d.Month(), d.Day(), 16, 0, 0, 0, HKT)
}

// AuctionStart returns the pre-opening auction start time (9:00 AM HKT).
func AuctionStart(date time.Time) time.Time {
	d := date.In(HKT)
	return time.Date(d.Year(), d.Month(), d.Day(), 9, 0, 0, 0, HKT)
}

// IsMarketOpen checks if HKEX is currently in a trading session.
func IsMarketOpen() bool {
	return IsMarketOpenAt(NowHKT())
}

// IsMarketOpenAt checks if HKEX would be in a trading session at the given
// time. The lunch break (12:00–13:00) counts as closed.
func IsMarketOpenAt(t time.Time) bool {
	t = t.In(HKT)

	if t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
		return false
	}
	if IsTradingHoliday(t) {
		return false
	}

	morning := !t.Before(MorningOpenTime(t)) && !t.After(MorningCloseTime(t))
	afternoon := !t.Before(AfternoonOpenTime(t)) && !t.After(AfternoonCloseTime(t))
	return morning || afternoon
}

// NextTradingDay returns the next trading day from the given date.
// If the given date is a trading day, it returns the next one.
func NextTradingDay(from time.Time) time.Time {
	next := from.In(HKT).AddDate(0, 0, 1)
	for !IsTradingDay(next) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// PrevTradingDay returns the previous trading day from the given date.
func PrevTradingDay(from time.Time) time.Time {
	prev := from.In(HKT).AddDate(0, 0, -1)
	for !IsTradingDay(prev) {
		prev = prev.AddDate(0, 0, -1)
	}
	return prev
}

// IsTradingDay checks if the given date is a trading day (not weekend, not holiday).
func IsTradingDay(t time.Time) bool {
	t = t.In(HKT)
	if t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
		return false
	}
	return !IsTradingHoliday(t)
}

// TradingDaysBetween returns the number of trading days between two dates (exclusive of end).
func TradingDaysBetween(start, end time.Time) int {
	start = start.In(HKT)
	end = end.In(HKT)
	count := 0
	current := start
	for current.Before(end) {
		if IsTradingDay(current) {
			count++
		}
		current = current.AddDate(0, 0, 1)
	}
	return count
}

// IsTradingHoliday checks if the given date is an HKEX holiday.
// This list should be updated annually.
func IsTradingHoliday(t time.Time) bool {
	t = t.In(HKT)
	dateStr := t.Format("2006-01-02")

	_, isHoliday := hkexHolidays2026[dateStr]
	return isHoliday
}

// HKEX holidays for 2026 (update annually).
// Source: HKEX trading calendar.
var hkexHolidays2026 = map[string]string{
	"2026-01-01": "New Year's Day",
	"2026-02-17": "Lunar New Year",
	"2026-02-18": "Lunar New Year",
	"2026-02-19": "Lunar New Year",
	"2026-04-03": "Good Friday",
	"2026-04-06": "Easter Monday",
	"2026-04-07": "Ching Ming Festival (observed)",
	"2026-05-01": "Labour Day",
	"2026-05-25": "Buddha's Birthday (observed)",
	"2026-06-19": "Tuen Ng Festival",
	"2026-07-01": "HKSAR Establishment Day",
	"2026-10-01": "National Day",
	"2026-10-19": "Chung Yeung Festival (observed)",
	"2026-12-25": "Christmas Day",
}

// GetTradingHolidays returns all HKEX holidays for the current year.
func GetTradingHolidays() map[string]string {
	return hkexHolidays2026
}

// ParseDateHKT parses a date string in "2006-01-02" format and returns it in HKT.
func ParseDateHKT(dateStr string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", dateStr, HKT)
}

// FormatDateHKT formats a time.Time to "2006-01-02" in HKT.
func FormatDateHKT(t time.Time) string {
	return t.In(HKT).Format("2006-01-02")
}

// FormatDateTimeHKT formats a time.Time to "2006-01-02 15:04:05 HKT".
func FormatDateTimeHKT(t time.Time) string {
	return t.In(HKT).Format("2006-01-02 15:04:05 HKT")
}

// MarketStatus returns the current HKEX status string.
func MarketStatus() string {
	return MarketStatusAt(NowHKT())
}

// MarketStatusAt returns the HKEX status string for the given time.
func MarketStatusAt(now time.Time) string {
	now = now.In(HKT)

	if now.Weekday() == time.Saturday || now.Weekday() == time.Sunday {
		return "CLOSED (Weekend)"
	}

	if IsTradingHoliday(now) {
		holiday := hkexHolidays2026[now.Format("2006-01-02")]
		return "CLOSED (" + holiday + ")"
	}

	switch {
	case now.Before(AuctionStart(now)):
		return "PRE-MARKET"
	case now.Before(MorningOpenTime(now)):
		return "PRE-OPENING AUCTION"
	case !now.After(MorningCloseTime(now)):
		return "OPEN (Morning Session)"
	case now.Before(AfternoonOpenTime(now)):
		return "LUNCH BREAK"
	case !now.After(AfternoonCloseTime(now)):
		return "OPEN (Afternoon Session)"
	default:
		return "CLOSED"
	}
}
