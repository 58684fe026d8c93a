package model

import (
	"math"
	"time"

	commonmodel "github.com/rcreports/uptimechart/pkg/common/model"
)

// ServiceStats is the summary of a service on a date range, shown on the dashboard index.
type ServiceStats struct {
	Service        string
	Uptime         float64 // National uptime percent.
	Target         float64
	Outages        int
	PlannedHours   float64
	UnplannedHours float64
}

// BelowTarget returns true if the service didn't reach its uptime target.
func (s ServiceStats) BelowTarget() bool {
	return s.Uptime < s.Target
}

// NewServiceStats summarizes the uptime and the outages of a service in the [from, to] window,
// outages are clipped to the window.
func NewServiceStats(uptime commonmodel.BulletDatum, history commonmodel.HistoryDatum, from, to time.Time) ServiceStats {
	s := ServiceStats{
		Service: uptime.Service,
		Uptime:  uptime.National,
		Target:  uptime.Target,
	}

	for _, o := range history.Outages {
		if !o.Overlaps(from, to) {
			continue
		}

		start := math.Max(float64(o.Start), float64(from.UnixMilli()))
		end := math.Min(float64(o.End), float64(to.UnixMilli()))
		hours := math.Max(end-start, 0) / float64(time.Hour/time.Millisecond)

		s.Outages++
		if o.Planned {
			s.PlannedHours += hours
		} else {
			s.UnplannedHours += hours
		}
	}

	return s
}
