package model_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rcreports/uptimechart/pkg/common/model"
)

func getGoodReport() model.UptimeReport {
	return model.UptimeReport{
		Bullets: []model.BulletDatum{
			{
				Service:  "Nova",
				National: 98.0,
				Target:   99.0,
				Cells: []model.Cell{
					{Name: "NP", Uptime: 98.05},
					{Name: "QH2-UoM", Uptime: 97.05},
				},
			},
		},
		History: []model.HistoryDatum{
			{
				Service: "Nova",
				Outages: []model.Outage{
					{Start: 1457000000000, End: 1458000000000, Planned: true},
				},
			},
		},
	}
}

func TestUptimeReportValidate(t *testing.T) {
	tests := map[string]struct {
		report func() model.UptimeReport
		expErr bool
	}{
		"A correct report should not fail.": {
			report: getGoodReport,
		},

		"An empty report should not fail.": {
			report: func() model.UptimeReport { return model.UptimeReport{} },
		},

		"A bullet without service should fail.": {
			report: func() model.UptimeReport {
				r := getGoodReport()
				r.Bullets[0].Service = ""
				return r
			},
			expErr: true,
		},

		"A bullet without cells should fail.": {
			report: func() model.UptimeReport {
				r := getGoodReport()
				r.Bullets[0].Cells = nil
				return r
			},
			expErr: true,
		},

		"A cell uptime over 100 should fail.": {
			report: func() model.UptimeReport {
				r := getGoodReport()
				r.Bullets[0].Cells[0].Uptime = 100.1
				return r
			},
			expErr: true,
		},

		"A NaN national uptime should fail.": {
			report: func() model.UptimeReport {
				r := getGoodReport()
				r.Bullets[0].National = math.NaN()
				return r
			},
			expErr: true,
		},

		"A negative target should fail.": {
			report: func() model.UptimeReport {
				r := getGoodReport()
				r.Bullets[0].Target = -1
				return r
			},
			expErr: true,
		},

		"An invalid cell name should fail.": {
			report: func() model.UptimeReport {
				r := getGoodReport()
				r.Bullets[0].Cells[0].Name = "-NP"
				return r
			},
			expErr: true,
		},

		"An outage that ends before it starts should fail.": {
			report: func() model.UptimeReport {
				r := getGoodReport()
				r.History[0].Outages[0].End = r.History[0].Outages[0].Start - 1
				return r
			},
			expErr: true,
		},

		"A zero length outage should not fail.": {
			report: func() model.UptimeReport {
				r := getGoodReport()
				r.History[0].Outages[0].End = r.History[0].Outages[0].Start
				return r
			},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)

			err := test.report().Validate()

			if test.expErr {
				assert.Error(err)
			} else {
				assert.NoError(err)
			}
		})
	}
}

func TestOutage(t *testing.T) {
	o := model.Outage{Start: 1000, End: 3600 * 1000}

	assert.Equal(t, 3599*time.Second, o.Duration())
	assert.Equal(t, 3599*time.Second, model.Outage{Start: 3600 * 1000, End: 1000}.Duration())
	assert.True(t, o.Overlaps(time.UnixMilli(0), time.UnixMilli(2000)))
	assert.True(t, o.Overlaps(time.UnixMilli(3600*1000), time.UnixMilli(3700*1000)))
	assert.False(t, o.Overlaps(time.UnixMilli(3601*1000), time.UnixMilli(3700*1000)))
	assert.Equal(t, time.UnixMilli(1000).UTC(), o.StartTime())
}
