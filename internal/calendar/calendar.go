package calendar

import "time"

// LatestTradingDay returns the most recent weekday on or before now,
// truncated to a bare date: Saturday maps to the preceding Friday,
// Sunday to the Friday two days earlier. Holidays are not modeled.
func LatestTradingDay(now time.Time) time.Time {
	d := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	switch d.Weekday() {
	case time.Saturday:
		return d.AddDate(0, 0, -1)
	case time.Sunday:
		return d.AddDate(0, 0, -2)
	}
	return d
}

// IsWeekday reports whether t falls Monday through Friday.
func IsWeekday(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}
