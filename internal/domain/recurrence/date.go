// Package recurrence computes due occurrences of recurring expense definitions.
// Everything in this package is pure: no I/O, no clock reads.
package recurrence

import "time"

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// Day truncates t to its calendar day in t's own location and returns that
// day at midnight UTC. All occurrence dates are expressed this way.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DayIn returns the calendar day of t as observed in loc.
func DayIn(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return Day(t.In(loc))
}

// daysIn returns the number of days in the given month.
func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// clampedDate builds year-month-day, clamping day to the last day of the month.
func clampedDate(year int, month time.Month, day int) time.Time {
	if last := daysIn(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// isoWeekday converts a time.Weekday to ISO numbering (1=Monday..7=Sunday).
func isoWeekday(t time.Time) int {
	return (int(t.Weekday())+6)%7 + 1
}

// daysBetween returns the whole number of days from a to b; both must be day-aligned UTC.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
