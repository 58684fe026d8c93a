package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rcreports/uptimechart/internal/http/backend/model"
	commonmodel "github.com/rcreports/uptimechart/pkg/common/model"
)

func TestNewServiceStats(t *testing.T) {
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	ms := func(t time.Time) int64 { return t.UnixMilli() }

	tests := map[string]struct {
		uptime   commonmodel.BulletDatum
		history  commonmodel.HistoryDatum
		expStats model.ServiceStats
		expBelow bool
	}{
		"No outages should only have the uptime.": {
			uptime:   commonmodel.BulletDatum{Service: "Nova", National: 99.9, Target: 99.5},
			expStats: model.ServiceStats{Service: "Nova", Uptime: 99.9, Target: 99.5},
		},

		"Outages should be summed by type.": {
			uptime: commonmodel.BulletDatum{Service: "Nova", National: 98, Target: 99.5},
			history: commonmodel.HistoryDatum{Service: "Nova", Outages: []commonmodel.Outage{
				{Start: ms(from.Add(time.Hour)), End: ms(from.Add(3 * time.Hour)), Planned: true},
				{Start: ms(from.Add(24 * time.Hour)), End: ms(from.Add(24*time.Hour + 30*time.Minute))},
				{Start: ms(from.Add(48 * time.Hour)), End: ms(from.Add(49 * time.Hour))},
			}},
			expStats: model.ServiceStats{Service: "Nova", Uptime: 98, Target: 99.5, Outages: 3, PlannedHours: 2, UnplannedHours: 1.5},
			expBelow: true,
		},

		"Outages should be clipped to the window.": {
			uptime: commonmodel.BulletDatum{Service: "Nova", National: 99, Target: 99},
			history: commonmodel.HistoryDatum{Service: "Nova", Outages: []commonmodel.Outage{
				{Start: ms(from.Add(-2 * time.Hour)), End: ms(from.Add(time.Hour))},
				{Start: ms(to.Add(-time.Hour)), End: ms(to.Add(5 * time.Hour)), Planned: true},
				{Start: ms(to.Add(time.Hour)), End: ms(to.Add(2 * time.Hour))},
			}},
			expStats: model.ServiceStats{Service: "Nova", Uptime: 99, Target: 99, Outages: 2, PlannedHours: 1, UnplannedHours: 1},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)

			got := model.NewServiceStats(test.uptime, test.history, from, to)
			assert.Equal(test.expStats, got)
			assert.Equal(test.expBelow, got.BelowTarget())
		})
	}
}
