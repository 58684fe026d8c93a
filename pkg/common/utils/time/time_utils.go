package time

import (
	"fmt"
	"time"

	"github.com/rcreports/uptimechart/pkg/common/conventions"
)

// CalculateStepsForTimeRange calculates the step duration for a given time range and number of steps.
func CalculateStepsForTimeRange(from, to time.Time, steps int) time.Duration {
	if steps <= 0 {
		steps = 1
	}
	step := to.Sub(from) / time.Duration(steps)

	// Round step to minutes.
	if step < time.Minute {
		step = time.Minute
	}

	return step.Truncate(time.Minute)
}

// RoundTimeToDay rounds a time to the start of the day (00:00:00).
func RoundTimeToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// WeekSunday returns the Sunday that starts the week of the given time.
func WeekSunday(t time.Time) time.Time {
	return RoundTimeToDay(t).AddDate(0, 0, -int(t.Weekday()))
}

// MonthFirst returns the first TS of the month for the given time.
func MonthFirst(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// QuarterFirst returns the first TS of the quarter for the given time.
func QuarterFirst(t time.Time) time.Time {
	month := ((t.Month()-1)/3)*3 + 1
	return time.Date(t.Year(), month, 1, 0, 0, 0, 0, t.Location())
}

// YearFirst returns the first TS of the year for the given time.
func YearFirst(t time.Time) time.Time {
	return time.Date(t.Year(), 1, 1, 0, 0, 0, 0, t.Location())
}

// NextMonths returns the first TS of the month that is `months` after the given time month.
func NextMonths(t time.Time, months int) time.Time {
	// Normalized by time.Date (e.g month 14 is february of next year).
	return time.Date(t.Year(), t.Month()+time.Month(months), 1, 0, 0, 0, 0, t.Location())
}

// YearAgo returns the same instant one calendar year before.
func YearAgo(t time.Time) time.Time {
	return t.AddDate(-1, 0, 0)
}

// DateRangeStart returns the start of the date range that ends at `now`.
func DateRangeStart(now time.Time, r conventions.DateRange) (time.Time, error) {
	switch r {
	case conventions.DateRangeYear:
		return now.AddDate(-1, 0, 0), nil
	case conventions.DateRangeSixMonths:
		return now.AddDate(0, -6, 0), nil
	case conventions.DateRangeThreeMonths:
		return now.AddDate(0, -3, 0), nil
	case conventions.DateRangeOneMonth:
		return now.AddDate(0, -1, 0), nil
	}

	return time.Time{}, fmt.Errorf("unknown date range %q", r)
}
