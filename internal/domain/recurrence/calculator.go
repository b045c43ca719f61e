package recurrence

import (
	"fmt"
	"time"

	"github.com/retail-backoffice/backend/internal/domain/entity"
	domainerror "github.com/retail-backoffice/backend/internal/domain/error"
)

// DueOccurrence returns the most recent occurrence of def that is on or
// before asOf and not yet satisfied by the watermark.
//
// The boolean is false when nothing is due: the candidate falls before the
// start date, after the end date, or on/before LastGeneratedDate. asOf is
// interpreted as a calendar day (see Day). An error is returned only when
// the definition itself is malformed.
func DueOccurrence(def *entity.RecurringExpense, asOf time.Time) (time.Time, bool, error) {
	if err := ValidateSchedule(def.Frequency, def.ExecutionDay); err != nil {
		return time.Time{}, false, err
	}

	today := Day(asOf)
	start := Day(def.StartDate)

	var candidate time.Time
	switch def.Frequency {
	case entity.FrequencyMonthly:
		candidate = latestMonthly(def.ExecutionDay, today)
	case entity.FrequencyAnnual:
		candidate = latestAnnual(start.Month(), def.ExecutionDay, today)
	case entity.FrequencyWeekly:
		candidate = latestWeekday(def.ExecutionDay, today)
	case entity.FrequencyBiweekly:
		var ok bool
		candidate, ok = latestBiweekly(def.ExecutionDay, start, today)
		if !ok {
			return time.Time{}, false, nil
		}
	}

	if candidate.Before(start) {
		return time.Time{}, false, nil
	}
	if def.EndDate != nil && candidate.After(Day(*def.EndDate)) {
		return time.Time{}, false, nil
	}
	if def.LastGeneratedDate != nil && !candidate.After(Day(*def.LastGeneratedDate)) {
		return time.Time{}, false, nil
	}

	return candidate, true, nil
}

// ValidateSchedule checks that frequency is supported and executionDay is in range for it.
func ValidateSchedule(frequency entity.Frequency, executionDay int) error {
	if !frequency.IsValid() {
		return fmt.Errorf("%w: %q", domainerror.ErrInvalidFrequency, frequency)
	}

	maxDay := 31
	if frequency.UsesWeekday() {
		maxDay = 7
	}
	if executionDay < 1 || executionDay > maxDay {
		return fmt.Errorf("%w: %d for %s frequency", domainerror.ErrInvalidExecutionDay, executionDay, frequency)
	}

	return nil
}

// latestMonthly returns the latest clamped executionDay on or before today.
func latestMonthly(executionDay int, today time.Time) time.Time {
	candidate := clampedDate(today.Year(), today.Month(), executionDay)
	if candidate.After(today) {
		prev := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
		candidate = clampedDate(prev.Year(), prev.Month(), executionDay)
	}
	return candidate
}

// latestAnnual returns the latest month/executionDay on or before today.
// Feb 29 clamps to Feb 28 in non-leap years.
func latestAnnual(month time.Month, executionDay int, today time.Time) time.Time {
	candidate := clampedDate(today.Year(), month, executionDay)
	if candidate.After(today) {
		candidate = clampedDate(today.Year()-1, month, executionDay)
	}
	return candidate
}

// latestWeekday returns the latest date on or before today with the given ISO weekday.
func latestWeekday(weekday int, today time.Time) time.Time {
	back := (isoWeekday(today) - weekday + 7) % 7
	return today.AddDate(0, 0, -back)
}

// latestBiweekly returns the latest matching weekday on or before today that
// is an even number of weeks from the anchor, the first matching weekday on
// or after start. It reports false when today is before the anchor.
func latestBiweekly(weekday int, start, today time.Time) (time.Time, bool) {
	anchor := start.AddDate(0, 0, (weekday-isoWeekday(start)+7)%7)
	if today.Before(anchor) {
		return time.Time{}, false
	}

	candidate := latestWeekday(weekday, today)
	if (daysBetween(anchor, candidate)/7)%2 != 0 {
		candidate = candidate.AddDate(0, 0, -7)
	}
	return candidate, true
}
