package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestNextAfter_Daily(t *testing.T) {
	r := Recurrence{Kind: RecurDaily}
	assert.Equal(t, date(2026, 3, 11), r.NextAfter(date(2026, 3, 10)))
}

func TestNextAfter_WeeklyWithDays(t *testing.T) {
	r := Recurrence{Kind: RecurWeekly, DaysOfWeek: []time.Weekday{time.Monday, time.Thursday}}

	// 2026-03-10 is a Tuesday; next match is Thursday the 12th.
	assert.Equal(t, date(2026, 3, 12), r.NextAfter(date(2026, 3, 10)))
	// From Thursday, the next match is Monday the 16th.
	assert.Equal(t, date(2026, 3, 16), r.NextAfter(date(2026, 3, 12)))
}

func TestNextAfter_WeeklyWithoutDays(t *testing.T) {
	r := Recurrence{Kind: RecurWeekly}
	assert.Equal(t, date(2026, 3, 17), r.NextAfter(date(2026, 3, 10)))
}

func TestNextAfter_MonthlyClampsDay(t *testing.T) {
	r := Recurrence{Kind: RecurMonthly, DayOfMonth: 31}

	// February 2026 has 28 days.
	assert.Equal(t, date(2026, 2, 28), r.NextAfter(date(2026, 1, 31)))

	same := Recurrence{Kind: RecurMonthly}
	assert.Equal(t, date(2026, 4, 15), same.NextAfter(date(2026, 3, 15)))
}

func TestNextAfter_MonthlyNthWeekday(t *testing.T) {
	// Second Tuesday of April 2026 is the 14th.
	r := Recurrence{Kind: RecurMonthly, Nth: 2, NthWeekday: time.Tuesday}
	assert.Equal(t, date(2026, 4, 14), r.NextAfter(date(2026, 3, 10)))

	// A 5th Friday does not exist in April 2026; clamp to the last one (24th).
	fifth := Recurrence{Kind: RecurMonthly, Nth: 5, NthWeekday: time.Friday}
	assert.Equal(t, date(2026, 4, 24), fifth.NextAfter(date(2026, 3, 10)))
}

func TestNextAfter_YearlyClampsFeb29(t *testing.T) {
	r := Recurrence{Kind: RecurYearly, Month: time.February, Day: 29}
	// 2026 is not a leap year.
	assert.Equal(t, date(2026, 2, 28), r.NextAfter(date(2025, 2, 28)))
}

func TestNextAfter_DecemberRollsOver(t *testing.T) {
	r := Recurrence{Kind: RecurMonthly, DayOfMonth: 5}
	assert.Equal(t, date(2027, 1, 5), r.NextAfter(date(2026, 12, 20)))
}

func TestUnmarshal_LegacyString(t *testing.T) {
	var r Recurrence
	require.NoError(t, json.Unmarshal([]byte(`"weekly"`), &r))
	assert.Equal(t, RecurWeekly, r.Kind)

	require.NoError(t, json.Unmarshal([]byte(`"no idea"`), &r))
	assert.True(t, r.IsZero())

	require.NoError(t, json.Unmarshal([]byte(`{"kind":"monthly","dayOfMonth":15}`), &r))
	assert.Equal(t, RecurMonthly, r.Kind)
	assert.Equal(t, 15, r.DayOfMonth)
}

func TestNextInstance_RespectsEndDate(t *testing.T) {
	now := date(2026, 3, 10)
	task := NewTask("standup", "", now)
	task.Recurrence = &Recurrence{Kind: RecurDaily}

	past := "2026-01-01"
	task.RecurrenceEndDate = &past
	assert.Nil(t, task.NextInstance(now), "ended recurrence produces nothing")

	future := "2027-01-01"
	task.RecurrenceEndDate = &future
	inst := task.NextInstance(now)
	require.NotNil(t, inst)
	assert.NotEqual(t, task.ID, inst.ID)
	require.NotNil(t, inst.RecurrenceParentID)
	assert.Equal(t, task.ID, *inst.RecurrenceParentID)
	require.NotNil(t, inst.DueDate)
	assert.Equal(t, "2026-03-11", *inst.DueDate)
	assert.False(t, inst.Completed)
}

func TestNextInstance_PreservesOriginalParent(t *testing.T) {
	now := date(2026, 3, 10)
	origin := "task_origin"
	task := NewTask("chain", "", now)
	task.Recurrence = &Recurrence{Kind: RecurDaily}
	task.RecurrenceParentID = &origin

	inst := task.NextInstance(now)
	require.NotNil(t, inst)
	assert.Equal(t, origin, *inst.RecurrenceParentID)
}

func TestNextInstance_NotRecurring(t *testing.T) {
	task := NewTask("one shot", "", date(2026, 3, 10))
	assert.Nil(t, task.NextInstance(date(2026, 3, 10)))
}
