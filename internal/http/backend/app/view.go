package app

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rcreports/uptimechart/internal/chart"
	"github.com/rcreports/uptimechart/internal/chart/bullet"
	"github.com/rcreports/uptimechart/internal/chart/dispatch"
	"github.com/rcreports/uptimechart/internal/chart/history"
	"github.com/rcreports/uptimechart/internal/chart/session"
	"github.com/rcreports/uptimechart/pkg/common/conventions"
	"github.com/rcreports/uptimechart/pkg/common/model"
	utilstime "github.com/rcreports/uptimechart/pkg/common/utils/time"
)

// View is a live chart of a viewer. It keeps the chart bound to its data and
// container so pointer events can be resolved into tooltips, and notifies
// its redraw observers when the chart changes.
type View interface {
	Chart() string
	// Pointer handles a pointer move on chart coordinates.
	Pointer(x, y float64)
	// PointerLeave handles the pointer leaving the chart.
	PointerLeave()
	Tooltip() *dispatch.Tooltip
	// Refresh gets the data again and renders it.
	Refresh(ctx context.Context) error
	// Redraw lays out again the current data.
	Redraw(ctx context.Context) error
	Resize(ctx context.Context, width float64) error
	// SetDateRange changes the date range of the data, charts without date
	// ranges ignore it.
	SetDateRange(ctx context.Context, dr conventions.DateRange) error
	// SVG renders the current layout.
	SVG() (string, error)
	OnRedrawRequested(f chart.RedrawFunc)
}

type NewViewRequest struct {
	Chart     string
	DateRange conventions.DateRange
	Width     float64
	SessionID string
}

// NewView returns a new live chart view with its data already rendered.
func (a *App) NewView(ctx context.Context, req NewViewRequest) (View, error) {
	var v View
	switch req.Chart {
	case ChartBullet:
		dr, err := defaultDateRange(req.DateRange)
		if err != nil {
			return nil, err
		}
		sess, _ := a.sessions.Get(req.SessionID)
		v = a.newBulletView(sess, dr, req.Width)
	case ChartHistory:
		v = a.newHistoryView(req.Width)
	default:
		return nil, fmt.Errorf("unknown chart %q", req.Chart)
	}

	err := v.Refresh(ctx)
	if err != nil {
		return nil, err
	}

	return v, nil
}

type bulletView struct {
	app  *App
	sess *session.Session
	inst *chart.Instance[[]model.BulletDatum, bullet.Layout]

	mu        sync.Mutex
	dateRange conventions.DateRange
	chart     *bullet.Chart
}

func (a *App) newBulletView(sess *session.Session, dr conventions.DateRange, width float64) *bulletView {
	v := &bulletView{
		app:       a,
		sess:      sess,
		dateRange: dr,
		chart:     a.bulletChart,
	}
	// Bullet tooltips have no transitions.
	v.inst = chart.NewInstance(v.layout, width, dispatch.TooltipConfig{})

	return v
}

func (v *bulletView) layout(data []model.BulletDatum, width float64) bullet.Layout {
	v.mu.Lock()
	c := v.chart
	v.mu.Unlock()

	return c.Layout(data, width, v.sess)
}

func (v *bulletView) Chart() string                        { return ChartBullet }
func (v *bulletView) Pointer(x, y float64)                 { v.inst.Pointer(x, y) }
func (v *bulletView) PointerLeave()                        { v.inst.PointerLeave() }
func (v *bulletView) Tooltip() *dispatch.Tooltip           { return v.inst.Tooltip() }
func (v *bulletView) OnRedrawRequested(f chart.RedrawFunc) { v.inst.OnRedrawRequested(f) }

func (v *bulletView) Refresh(ctx context.Context) error {
	v.mu.Lock()
	dr := v.dateRange
	v.mu.Unlock()

	data, c, err := v.app.prepareBullet(ctx, v.sess, dr)
	if err != nil {
		return err
	}

	v.mu.Lock()
	v.chart = c
	v.mu.Unlock()

	v.inst.Render(data)

	return v.inst.RequestRedraw(ctx)
}

func (v *bulletView) Redraw(ctx context.Context) error {
	_, err := v.inst.Update()
	if err != nil {
		return err
	}

	return v.inst.RequestRedraw(ctx)
}

func (v *bulletView) Resize(ctx context.Context, width float64) error {
	_, err := v.inst.Resize(width)
	if err != nil {
		return err
	}

	return v.inst.RequestRedraw(ctx)
}

func (v *bulletView) SetDateRange(ctx context.Context, dr conventions.DateRange) error {
	dr, err := defaultDateRange(dr)
	if err != nil {
		return err
	}

	v.mu.Lock()
	v.dateRange = dr
	v.mu.Unlock()

	return v.Refresh(ctx)
}

func (v *bulletView) SVG() (string, error) {
	var b bytes.Buffer
	err := v.app.renderer.Bullet(&b, v.inst.Layout())
	if err != nil {
		return "", err
	}
	return b.String(), nil
}

type historyView struct {
	app  *App
	inst *chart.Instance[[]model.HistoryDatum, history.Layout]

	mu  sync.Mutex
	now time.Time
}

func (a *App) newHistoryView(width float64) *historyView {
	v := &historyView{app: a}
	v.inst = chart.NewInstance(v.layout, width, a.historyChart.Config().Tooltip)

	return v
}

// layout uses the time of the latest refresh so redraws don't move the timeline.
func (v *historyView) layout(data []model.HistoryDatum, width float64) history.Layout {
	v.mu.Lock()
	now := v.now
	v.mu.Unlock()

	return v.app.historyChart.Layout(data, width, now)
}

func (v *historyView) Chart() string                        { return ChartHistory }
func (v *historyView) Pointer(x, y float64)                 { v.inst.Pointer(x, y) }
func (v *historyView) PointerLeave()                        { v.inst.PointerLeave() }
func (v *historyView) Tooltip() *dispatch.Tooltip           { return v.inst.Tooltip() }
func (v *historyView) OnRedrawRequested(f chart.RedrawFunc) { v.inst.OnRedrawRequested(f) }

func (v *historyView) Refresh(ctx context.Context) error {
	now := v.app.timeNowFunc()
	data, err := v.app.historyGetter.ListOutageHistory(ctx, utilstime.YearAgo(now), now)
	if err != nil {
		return fmt.Errorf("could not get outage history: %w", err)
	}

	v.mu.Lock()
	v.now = now
	v.mu.Unlock()

	v.inst.Render(data)

	return v.inst.RequestRedraw(ctx)
}

func (v *historyView) Redraw(ctx context.Context) error {
	_, err := v.inst.Update()
	if err != nil {
		return err
	}

	return v.inst.RequestRedraw(ctx)
}

func (v *historyView) Resize(ctx context.Context, width float64) error {
	_, err := v.inst.Resize(width)
	if err != nil {
		return err
	}

	return v.inst.RequestRedraw(ctx)
}

func (v *historyView) SetDateRange(ctx context.Context, dr conventions.DateRange) error { return nil }

func (v *historyView) SVG() (string, error) {
	var b bytes.Buffer
	err := v.app.renderer.History(&b, v.inst.Layout())
	if err != nil {
		return "", err
	}
	return b.String(), nil
}
