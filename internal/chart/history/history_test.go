package history_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcreports/uptimechart/internal/chart/dispatch"
	"github.com/rcreports/uptimechart/internal/chart/history"
	"github.com/rcreports/uptimechart/pkg/common/model"
)

var testTimeNow = time.Date(2025, 11, 19, 12, 0, 0, 0, time.UTC)

func testOutageStart() time.Time {
	return time.Date(2024, 11, 19, 12, 0, 0, 0, time.UTC).AddDate(0, 0, 100)
}

func newChart(t *testing.T) *history.Chart {
	c, err := history.New(history.DefaultConfig())
	require.NoError(t, err)
	return c
}

func TestOutageWidth(t *testing.T) {
	tests := map[string]struct {
		x0, x1   float64
		expWidth float64
	}{
		"Sub pixel outages should be one pixel wide.": {x0: 10, x1: 10.2, expWidth: 1},
		"Widths should be rounded up.":                {x0: 10, x1: 12.1, expWidth: 3},
		"Exact widths should be kept.":                {x0: 10, x1: 15, expWidth: 5},
		"Negative widths should be one pixel wide.":   {x0: 10, x1: 5, expWidth: 1},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.expWidth, history.OutageWidth(test.x0, test.x1))
		})
	}

	assert.True(t, math.IsNaN(history.OutageWidth(math.NaN(), 10)))
}

func TestFormatHours(t *testing.T) {
	tests := map[string]struct {
		hours  float64
		expStr string
	}{
		"More than one hour should use one decimal.":                 {hours: 277.77777, expStr: "277.8"},
		"More than one hour halves should be rounded up.":            {hours: 2.25, expStr: "2.3"},
		"More than one hour with zero decimal should show it.":       {hours: 1.04, expStr: "1.0"},
		"One hour should use one significant digit.":                 {hours: 1, expStr: "1"},
		"Less than one hour should use one significant digit.":       {hours: 0.5, expStr: "0.5"},
		"Less than one hour halves should be rounded up.":            {hours: 0.25, expStr: "0.3"},
		"Close to one hour should be rounded to one.":                {hours: 0.97, expStr: "1"},
		"Seconds should use one significant digit.":                  {hours: 1.0 / 3600, expStr: "0.0003"},
		"Milliseconds should use exponential notation.":              {hours: 1.0 / 3600000, expStr: "3e-7"},
		"Zero should be zero.":                                       {hours: 0, expStr: "0"},
		"Minute aligned hours should round on the stored value.":     {hours: 69.0 / 60, expStr: "1.1"},
		"Minute aligned fractions should round on the stored value.": {hours: 21.0 / 60, expStr: "0.3"},
		"Rounding up should carry to a new integer digit.":           {hours: 9.96, expStr: "10.0"},
		"Small values over the exponential limit should be decimal":  {hours: 0.000004, expStr: "0.000004"},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.expStr, history.FormatHours(test.hours))
		})
	}
}

func TestLayoutNoData(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	l := newChart(t).Layout(nil, 0, testTimeNow)

	assert.Nil(l.Scale)
	assert.Empty(l.Rows)
	assert.Empty(l.Grid)
	require.NotNil(l.NoData)
	assert.Equal("No Data Available.", l.NoData.Text)
	assert.Equal(520.0, l.NoData.X)
	assert.Equal(86.0, l.NoData.Y)
	assert.Equal(122.0, l.Height)

	_, ok := l.HitTest(520, 86)
	assert.False(ok)
}

func TestLayoutScenario(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	start := testOutageStart()
	data := []model.HistoryDatum{
		{
			Service: "Nova",
			Outages: []model.Outage{
				{Start: start.UnixMilli(), End: start.UnixMilli() + 1000, Planned: true},
			},
		},
		{
			Service: "Swift",
			Outages: []model.Outage{
				{Start: start.UnixMilli(), End: start.Add(10 * 24 * time.Hour).UnixMilli(), Planned: false},
			},
		},
	}

	l := newChart(t).Layout(data, 0, testTimeNow)

	require.NotNil(l.Scale)
	assert.Nil(l.NoData)
	assert.Equal(time.Date(2024, 11, 19, 12, 0, 0, 0, time.UTC), l.Start)
	assert.Equal(testTimeNow, l.End)
	assert.Equal(800.0, l.AvailableWidth)
	assert.Equal(960.0, l.Width)
	assert.Equal(64.0+90, l.Height)

	// Titles.
	assert.Equal("Uptime History", l.Heading.Text)
	assert.Equal(-100.0, l.Heading.X)
	assert.Equal(-50.0, l.Heading.Y)
	assert.Equal("from 2024-11-19 to 2025-11-19", l.Subheading.Text)
	assert.Equal(-33.0, l.Subheading.Y)

	// Legend.
	require.Len(l.Legend.Items, 2)
	assert.Equal(-12.0, l.Legend.Y)
	assert.Equal(690.0, l.Legend.Items[0].Swatch.X)
	assert.Equal("uptm_planned", l.Legend.Items[0].Swatch.Class)
	assert.Equal(710.0, l.Legend.Items[0].Text.X)
	assert.Equal(-41.5, l.Legend.Items[0].Text.Y)
	assert.Equal(-33.0, l.Legend.Items[1].Swatch.Y)
	assert.Equal(-24.5, l.Legend.Items[1].Text.Y)

	// Axis and grid.
	require.Len(l.Axis.Ticks, 12)
	require.Len(l.Grid, 12)
	assert.Equal("December", l.Axis.Ticks[0].Label)
	assert.Equal("2025", l.Axis.Ticks[1].Label)
	assert.Equal(l.Axis.Ticks[0].X, l.Grid[0].X1)
	assert.Equal(73.0, l.Grid[0].Y2)

	// Rows.
	require.Len(l.Rows, 2)
	nova := l.Rows[0]
	assert.Equal("Nova", nova.Service)
	assert.Equal(0.0, nova.Y)
	assert.Equal(23.0, nova.Label.Y)
	assert.Equal(-100.0, nova.Label.X)
	assert.Equal(14.0, nova.Baseline.Y)
	assert.InDelta(800, nova.Baseline.Width, 1e-9)
	assert.Equal(32.0, l.Rows[1].Y)

	// Outages.
	require.Len(nova.Outages, 1)
	o := nova.Outages[0]
	assert.InDelta(l.Scale.Scale(start), o.Bar.X, 1e-9)
	assert.Equal(1.0, o.Bar.Width)
	assert.Equal(14.0, o.Bar.Y)
	assert.Equal(18.0, o.Bar.Height)
	assert.Equal("uptm_planned", o.Bar.Class)
	assert.Equal("check", o.Icon)
	assert.Equal("2025-02-27 0.0003h", o.Label)

	swift := l.Rows[1].Outages[0]
	assert.Equal("uptm_unplanned", swift.Bar.Class)
	assert.Equal("cross", swift.Icon)
	assert.Equal("2025-02-27 240.0h", swift.Label)
	assert.Equal(math.Ceil(l.Scale.Scale(start.Add(10*24*time.Hour))-l.Scale.Scale(start)), swift.Bar.Width)
}

func TestLayoutScenarioOutageWidth(t *testing.T) {
	start := testOutageStart()
	data := []model.HistoryDatum{{
		Service: "Nova",
		Outages: []model.Outage{{Start: start.UnixMilli(), End: start.UnixMilli() + 1000, Planned: true}},
	}}

	l := newChart(t).Layout(data, 0, testTimeNow)
	sc := l.Scale
	exp := math.Max(1, math.Ceil(sc.ScaleMillis(start.UnixMilli()+1000)-sc.ScaleMillis(start.UnixMilli())))

	assert.Equal(t, exp, l.Rows[0].Outages[0].Bar.Width)
	assert.InDelta(t, sc.ScaleMillis(start.UnixMilli()), l.Rows[0].Outages[0].Bar.X, 1e-9)
}

func TestLayoutLeapDay(t *testing.T) {
	l := newChart(t).Layout(nil, 0, time.Date(2024, 2, 29, 10, 0, 0, 0, time.UTC))

	assert.Equal(t, time.Date(2023, 3, 1, 10, 0, 0, 0, time.UTC), l.Start)
}

func TestLayoutIdempotent(t *testing.T) {
	start := testOutageStart()
	data := []model.HistoryDatum{{
		Service: "Nova",
		Outages: []model.Outage{{Start: start.UnixMilli(), End: start.UnixMilli() + 3600000}},
	}}

	c := newChart(t)
	assert.Equal(t, c.Layout(data, 1200, testTimeNow), c.Layout(data, 1200, testTimeNow))
}

func TestLayoutHitTest(t *testing.T) {
	start := testOutageStart()
	data := []model.HistoryDatum{
		{
			Service: "Nova",
			Outages: []model.Outage{
				{Start: start.UnixMilli(), End: start.Add(10 * 24 * time.Hour).UnixMilli(), Planned: false},
				{Start: start.Add(24 * time.Hour).UnixMilli(), End: start.Add(26 * time.Hour).UnixMilli(), Planned: true},
			},
		},
		{
			Service: "Swift",
			Outages: []model.Outage{
				{Start: start.UnixMilli(), End: start.Add(30 * time.Minute).UnixMilli(), Planned: true},
			},
		},
	}

	l := newChart(t).Layout(data, 0, testTimeNow)
	x0 := l.Scale.Scale(start)
	x1 := l.Scale.Scale(start.Add(24 * time.Hour))

	tests := map[string]struct {
		x, y     float64
		expHit   bool
		expEvent dispatch.Event
	}{
		"An outage should be hit.": {
			x: 120 + x0 + 0.5, y: 70 + 20,
			expHit: true,
			expEvent: dispatch.Event{
				Target: "row/0/outage/0", Value: 240, Label: "2025-02-27 240.0h", Color: history.UnplannedFill, Icon: "cross",
				Pos: &dispatch.Point{X: 120 + x0, Y: 70 + 14 - 11},
			},
		},

		"The latest overlapping outage should be hit.": {
			x: 120 + x1 + 0.5, y: 70 + 20,
			expHit: true,
			expEvent: dispatch.Event{
				Target: "row/0/outage/1", Value: 2, Label: "2025-02-28 2.0h", Color: history.PlannedFill, Icon: "check",
				Pos: &dispatch.Point{X: 120 + x1, Y: 70 + 14 - 11},
			},
		},

		"An outage on the second row should be hit.": {
			x: 120 + x0 + 0.5, y: 70 + 32 + 20,
			expHit: true,
			expEvent: dispatch.Event{
				Target: "row/1/outage/0", Value: 0.5, Label: "2025-02-27 0.5h", Color: history.PlannedFill, Icon: "check",
				Pos: &dispatch.Point{X: 120 + x0, Y: 70 + 32 + 14 - 11},
			},
		},

		"The row spacing should not be hit.": {
			x: 120 + x0 + 0.5, y: 70 + 5,
		},

		"The baseline without outages should not be hit.": {
			x: 120 + 700, y: 70 + 20,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)

			got, ok := l.HitTest(test.x, test.y)

			assert.Equal(test.expHit, ok)
			if test.expHit {
				assert.Equal(test.expEvent, got)
			}
		})
	}
}
