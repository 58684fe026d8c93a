package chart_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcreports/uptimechart/internal/chart"
	"github.com/rcreports/uptimechart/internal/chart/bullet"
	"github.com/rcreports/uptimechart/internal/chart/dispatch"
	"github.com/rcreports/uptimechart/internal/chart/history"
	"github.com/rcreports/uptimechart/pkg/common/model"
)

func newBulletInstance(t *testing.T) *chart.Instance[[]model.BulletDatum, bullet.Layout] {
	c, err := bullet.New(bullet.DefaultConfig())
	require.NoError(t, err)

	return chart.NewInstance(func(data []model.BulletDatum, w float64) bullet.Layout {
		return c.Layout(data, w, nil)
	}, 0, dispatch.TooltipConfig{})
}

func testBulletData() []model.BulletDatum {
	return []model.BulletDatum{{
		Service: "Nova", National: 98, Target: 99,
		Cells: []model.Cell{{Name: "NP", Uptime: 98.05}, {Name: "QH2", Uptime: 99.05}},
	}}
}

func TestInstanceUpdateWithoutData(t *testing.T) {
	i := newBulletInstance(t)

	_, err := i.Update()
	assert.ErrorIs(t, err, chart.ErrNotBound)
}

func TestInstanceUpdateIdempotent(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	i := newBulletInstance(t)
	rendered := i.Render(testBulletData())

	first, err := i.Update()
	require.NoError(err)
	second, err := i.Update()
	require.NoError(err)

	assert.Equal(rendered, first)
	assert.Equal(first, second)
}

func TestInstanceResize(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	i := newBulletInstance(t)
	i.Render(testBulletData())

	l, err := i.Resize(1200)
	require.NoError(err)
	assert.Equal(1040.0, l.UsableWidth)
	assert.Equal(1040.0, i.Layout().UsableWidth)
}

func TestInstancePointerTooltip(t *testing.T) {
	assert := assert.New(t)

	i := newBulletInstance(t)
	l := i.Render(testBulletData())
	g := l.Gauges[0]

	// NP measure.
	i.Pointer(g.X+10, g.Y+20)
	st := i.Tooltip().State()
	assert.True(st.Visible)
	assert.Equal("NP", st.Event.Label)
	assert.Equal(98.05, st.Event.Value)

	// Leave the chart.
	i.PointerLeave()
	st = i.Tooltip().State()
	assert.False(st.Visible)
}

func TestInstanceHistoryTooltipTransitions(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	now := time.Date(2025, 11, 19, 12, 0, 0, 0, time.UTC)
	c, err := history.New(history.DefaultConfig())
	require.NoError(err)
	i := chart.NewInstance(func(data []model.HistoryDatum, w float64) history.Layout {
		return c.Layout(data, w, now)
	}, 0, c.Config().Tooltip)

	start := now.AddDate(0, -2, 0)
	l := i.Render([]model.HistoryDatum{{
		Service: "Nova",
		Outages: []model.Outage{{Start: start.UnixMilli(), End: start.Add(48 * time.Hour).UnixMilli(), Planned: true}},
	}})
	o := l.Rows[0].Outages[0]

	i.Pointer(l.Margin.Left+o.Bar.X+0.5, l.Margin.Top+o.Bar.Y+1)
	st := i.Tooltip().State()
	assert.True(st.Visible)
	assert.Equal(200*time.Millisecond, st.Transition)
	assert.Equal("check", st.Event.Icon)

	i.Pointer(0, 0)
	st = i.Tooltip().State()
	assert.False(st.Visible)
	assert.Equal(500*time.Millisecond, st.Transition)
}

func TestInstanceRedraw(t *testing.T) {
	assert := assert.New(t)

	i := newBulletInstance(t)

	calls := []string{}
	i.OnRedrawRequested(func(ctx context.Context) error {
		calls = append(calls, "first")
		return nil
	})
	i.OnRedrawRequested(func(ctx context.Context) error {
		calls = append(calls, "second")
		return fmt.Errorf("something")
	})
	i.OnRedrawRequested(func(ctx context.Context) error {
		calls = append(calls, "third")
		return nil
	})

	err := i.RequestRedraw(context.TODO())
	assert.Error(err)

	err = i.RequestRedraw(context.TODO())
	assert.Error(err)

	assert.Equal([]string{"first", "second", "third", "first", "second", "third"}, calls)
}
