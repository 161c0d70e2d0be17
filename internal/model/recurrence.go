package model

import (
	"encoding/json"
	"time"
)

type RecurrenceKind string

const (
	RecurDaily   RecurrenceKind = "daily"
	RecurWeekly  RecurrenceKind = "weekly"
	RecurMonthly RecurrenceKind = "monthly"
	RecurYearly  RecurrenceKind = "yearly"
)

// Recurrence is a tagged pattern: Kind selects the rule, the remaining
// fields refine it. Unset refinements mean "same day as the previous
// occurrence".
type Recurrence struct {
	Kind RecurrenceKind `json:"kind"`

	// Weekly: explicit weekdays to fire on.
	DaysOfWeek []time.Weekday `json:"daysOfWeek,omitempty"`

	// Monthly: a fixed day of the month, or the Nth weekday.
	DayOfMonth int          `json:"dayOfMonth,omitempty"`
	Nth        int          `json:"nth,omitempty"`
	NthWeekday time.Weekday `json:"nthWeekday,omitempty"`

	// Yearly: a fixed month and day.
	Month time.Month `json:"month,omitempty"`
	Day   int        `json:"day,omitempty"`
}

// MigrateLegacyRecurrence converts the old bare-string form ("daily",
// "weekly", ...) into the tagged struct. Unknown strings migrate to the
// zero value, which IsRecurring treats as not recurring.
func MigrateLegacyRecurrence(s string) Recurrence {
	switch RecurrenceKind(s) {
	case RecurDaily, RecurWeekly, RecurMonthly, RecurYearly:
		return Recurrence{Kind: RecurrenceKind(s)}
	default:
		return Recurrence{}
	}
}

// UnmarshalJSON accepts both the tagged object and the legacy bare string,
// so older persisted data loads without a separate migration pass.
func (r *Recurrence) UnmarshalJSON(data []byte) error {
	*r = Recurrence{}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*r = MigrateLegacyRecurrence(s)
		return nil
	}
	type plain Recurrence
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*r = Recurrence(p)
	return nil
}

func (r Recurrence) IsZero() bool {
	return r.Kind == ""
}

func (r Recurrence) Clone() Recurrence {
	out := r
	if r.DaysOfWeek != nil {
		out.DaysOfWeek = append([]time.Weekday(nil), r.DaysOfWeek...)
	}
	return out
}

// NextAfter computes the occurrence following from, at day granularity in
// from's location. Month and year arithmetic clamps to the target month's
// length rather than normalizing past it.
func (r Recurrence) NextAfter(from time.Time) time.Time {
	from = midnight(from)
	switch r.Kind {
	case RecurDaily:
		return from.AddDate(0, 0, 1)

	case RecurWeekly:
		if len(r.DaysOfWeek) == 0 {
			return from.AddDate(0, 0, 7)
		}
		for d := 1; d <= 7; d++ {
			c := from.AddDate(0, 0, d)
			for _, wd := range r.DaysOfWeek {
				if c.Weekday() == wd {
					return c
				}
			}
		}
		return from.AddDate(0, 0, 7)

	case RecurMonthly:
		year, month := nextMonth(from)
		if r.Nth > 0 {
			return nthWeekdayOfMonth(year, month, r.NthWeekday, r.Nth, from.Location())
		}
		day := r.DayOfMonth
		if day == 0 {
			day = from.Day()
		}
		return time.Date(year, month, clampDay(year, month, day), 0, 0, 0, 0, from.Location())

	case RecurYearly:
		year := from.Year() + 1
		month := r.Month
		if month == 0 {
			month = from.Month()
		}
		day := r.Day
		if day == 0 {
			day = from.Day()
		}
		return time.Date(year, month, clampDay(year, month, day), 0, 0, 0, 0, from.Location())
	}
	return time.Time{}
}

func nextMonth(t time.Time) (int, time.Month) {
	year, month := t.Year(), t.Month()
	if month == time.December {
		return year + 1, time.January
	}
	return year, month + 1
}

// nthWeekdayOfMonth finds the nth given weekday; when the month has fewer
// than n, the last occurrence is used.
func nthWeekdayOfMonth(year int, month time.Month, weekday time.Weekday, n int, loc *time.Location) time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	offset := (int(weekday) - int(first.Weekday()) + 7) % 7
	day := 1 + offset + (n-1)*7
	for day > daysInMonth(year, month) {
		day -= 7
	}
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}
