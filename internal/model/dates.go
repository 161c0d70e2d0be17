package model

import "time"

// DateLayout is the day-granular wire format for due, defer, and
// recurrence-end dates. Lexicographic order on these strings is date order.
const DateLayout = "2006-01-02"

func DateString(t time.Time) string {
	return t.Format(DateLayout)
}

func parseDate(s string) (time.Time, bool) {
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func daysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func clampDay(year int, month time.Month, day int) int {
	if max := daysInMonth(year, month); day > max {
		return max
	}
	if day < 1 {
		return 1
	}
	return day
}
