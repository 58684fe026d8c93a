package scale

import (
	"sort"
	"time"

	utilstime "github.com/rcreports/uptimechart/pkg/common/utils/time"
)

// Time is a linear scale over time instants (millisecond precision).
type Time struct {
	lin Linear
	loc *time.Location
}

// NewTime returns a new time scale. It is not clamped, instants out of the
// domain are extrapolated.
func NewTime(start, end time.Time, rng [2]float64) Time {
	return Time{
		lin: NewLinear([2]float64{float64(start.UnixMilli()), float64(end.UnixMilli())}, rng, false),
		loc: start.Location(),
	}
}

// Domain returns the domain instants.
func (t Time) Domain() (time.Time, time.Time) {
	d := t.lin.Domain()
	return t.fromMillis(d[0]), t.fromMillis(d[1])
}

func (t Time) Range() [2]float64 { return t.lin.Range() }

// Scale maps an instant into the range.
func (t Time) Scale(ts time.Time) float64 {
	return t.lin.Scale(float64(ts.UnixMilli()))
}

// ScaleMillis maps milliseconds since epoch into the range.
func (t Time) ScaleMillis(ms int64) float64 {
	return t.lin.Scale(float64(ms))
}

// Invert maps a range value back into an instant.
func (t Time) Invert(v float64) time.Time {
	return t.fromMillis(t.lin.Invert(v))
}

func (t Time) fromMillis(ms float64) time.Time {
	return time.UnixMilli(int64(ms)).In(t.loc)
}

type tickInterval struct {
	approx time.Duration
	floor  func(time.Time) time.Time
	next   func(time.Time) time.Time
	// keep filters the boundaries so steps >1 stay aligned with the calendar.
	keep func(time.Time) bool
}

const day = 24 * time.Hour

func hourInterval(step int) tickInterval {
	return tickInterval{
		approx: time.Duration(step) * time.Hour,
		floor:  func(t time.Time) time.Time { return t.Truncate(time.Hour) },
		next:   func(t time.Time) time.Time { return t.Add(time.Hour) },
		keep:   func(t time.Time) bool { return t.Hour()%step == 0 },
	}
}

func dayInterval(step int) tickInterval {
	return tickInterval{
		approx: time.Duration(step) * day,
		floor:  utilstime.RoundTimeToDay,
		next:   func(t time.Time) time.Time { return t.AddDate(0, 0, 1) },
		keep:   func(t time.Time) bool { return (t.Day()-1)%step == 0 },
	}
}

func monthInterval(step int) tickInterval {
	return tickInterval{
		approx: time.Duration(step) * 30 * day,
		floor:  utilstime.MonthFirst,
		next:   func(t time.Time) time.Time { return utilstime.NextMonths(t, 1) },
		keep:   func(t time.Time) bool { return int(t.Month()-1)%step == 0 },
	}
}

var tickIntervals = []tickInterval{
	hourInterval(1),
	hourInterval(3),
	hourInterval(6),
	hourInterval(12),
	dayInterval(1),
	dayInterval(2),
	{
		approx: 7 * day,
		floor:  utilstime.WeekSunday,
		next:   func(t time.Time) time.Time { return t.AddDate(0, 0, 7) },
		keep:   func(time.Time) bool { return true },
	},
	monthInterval(1),
	monthInterval(3),
	{
		approx: 365 * day,
		floor:  utilstime.YearFirst,
		next:   func(t time.Time) time.Time { return t.AddDate(1, 0, 0) },
		keep:   func(time.Time) bool { return true },
	},
}

// Ticks returns calendar aligned instants inside the domain, using the
// interval that gives the closest number of ticks to count.
func (t Time) Ticks(count int) []time.Time {
	if count <= 0 {
		count = 10
	}

	start, end := t.Domain()
	if end.Before(start) {
		start, end = end, start
	}

	span := end.Sub(start)
	if span <= 0 {
		return nil
	}

	interval := pickInterval(span / time.Duration(count))

	var ticks []time.Time
	for ts := interval.floor(start); !ts.After(end); ts = interval.next(ts) {
		if ts.Before(start) || !interval.keep(ts) {
			continue
		}
		ticks = append(ticks, ts)
	}

	return ticks
}

func pickInterval(target time.Duration) tickInterval {
	i := sort.Search(len(tickIntervals), func(i int) bool { return tickIntervals[i].approx > target })
	switch {
	case i == len(tickIntervals):
		return tickIntervals[len(tickIntervals)-1]
	case i == 0:
		return tickIntervals[0]
	}

	// Closest by ratio.
	if float64(target)/float64(tickIntervals[i-1].approx) < float64(tickIntervals[i].approx)/float64(target) {
		return tickIntervals[i-1]
	}
	return tickIntervals[i]
}

// FormatTimeTick formats a tick with the coarsest unit that still identifies it.
func FormatTimeTick(t time.Time) string {
	switch {
	case t.Hour() != 0 || t.Minute() != 0:
		return t.Format("03 PM")
	case t.Weekday() != time.Sunday && t.Day() != 1:
		return t.Format("Mon 02")
	case t.Day() != 1:
		return t.Format("Jan 02")
	case t.Month() != time.January:
		return t.Format("January")
	}
	return t.Format("2006")
}
