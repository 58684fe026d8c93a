package app

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/rcreports/uptimechart/internal/chart/bullet"
	"github.com/rcreports/uptimechart/internal/chart/color"
	"github.com/rcreports/uptimechart/internal/chart/session"
	"github.com/rcreports/uptimechart/internal/config"
	"github.com/rcreports/uptimechart/pkg/common/conventions"
	commonerrors "github.com/rcreports/uptimechart/pkg/common/errors"
	"github.com/rcreports/uptimechart/pkg/common/model"
	pluginv1 "github.com/rcreports/uptimechart/pkg/plugin/color/v1"
)

const (
	ChartBullet  = "bullet"
	ChartHistory = "history"

	formatSVG  = "svg"
	formatJSON = "json"
)

type RenderUptimeRequest struct {
	DateRange conventions.DateRange
	// Width is the container width, zero uses the default.
	Width     float64
	SessionID string
}

type RenderUptimeResponse struct {
	SessionID string
	DateRange conventions.DateRange
	Data      []model.BulletDatum
	Layout    bullet.Layout
	SVG       string
}

// RenderUptime renders the uptime bullet chart of a date range for a viewer session.
func (a *App) RenderUptime(ctx context.Context, req RenderUptimeRequest) (resp *RenderUptimeResponse, err error) {
	t0 := time.Now()
	defer func() {
		a.metricsRecorder.MeasureChartRenderDuration(ctx, ChartBullet, formatSVG, time.Since(t0), err)
	}()

	dr, err := defaultDateRange(req.DateRange)
	if err != nil {
		return nil, err
	}

	sess, sessID := a.sessions.Get(req.SessionID)

	data, chart, err := a.prepareBullet(ctx, sess, dr)
	if err != nil {
		return nil, err
	}

	layout := chart.Layout(data, req.Width, sess)

	var b bytes.Buffer
	err = a.renderer.Bullet(&b, layout)
	if err != nil {
		return nil, fmt.Errorf("could not render bullet chart: %w", err)
	}

	return &RenderUptimeResponse{
		SessionID: sessID,
		DateRange: dr,
		Data:      data,
		Layout:    layout,
		SVG:       b.String(),
	}, nil
}

type GetUptimeDataRequest struct {
	DateRange conventions.DateRange
}

type GetUptimeDataResponse struct {
	DateRange conventions.DateRange
	Data      []model.BulletDatum
}

// GetUptimeData returns the data of the uptime bullet chart of a date range.
func (a *App) GetUptimeData(ctx context.Context, req GetUptimeDataRequest) (resp *GetUptimeDataResponse, err error) {
	t0 := time.Now()
	defer func() {
		a.metricsRecorder.MeasureChartRenderDuration(ctx, ChartBullet, formatJSON, time.Since(t0), err)
	}()

	dr, err := defaultDateRange(req.DateRange)
	if err != nil {
		return nil, err
	}

	data, err := a.uptimeGetter.ListUptimeSummaries(ctx, dr)
	if err != nil {
		return nil, fmt.Errorf("could not get uptime summaries: %w", err)
	}

	return &GetUptimeDataResponse{DateRange: dr, Data: data}, nil
}

// prepareBullet gets the data of the date range and returns a bullet chart
// colored for that data. It also locks the session domain so all the date
// ranges are aligned with the year one.
func (a *App) prepareBullet(ctx context.Context, sess *session.Session, dr conventions.DateRange) ([]model.BulletDatum, *bullet.Chart, error) {
	data, err := a.uptimeGetter.ListUptimeSummaries(ctx, dr)
	if err != nil {
		return nil, nil, fmt.Errorf("could not get uptime summaries: %w", err)
	}

	err = a.lockDomain(ctx, sess, dr, data)
	if err != nil {
		return nil, nil, err
	}

	colorFunc, err := a.colorFunc(ctx, sess, dr, data)
	if err != nil {
		return nil, nil, err
	}

	chart, err := bullet.New(a.bulletChart.Config().WithColor(colorFunc))
	if err != nil {
		return nil, nil, err
	}

	return data, chart, nil
}

func (a *App) lockDomain(ctx context.Context, sess *session.Session, dr conventions.DateRange, data []model.BulletDatum) error {
	if _, ok := sess.LockedDomain(); ok {
		return nil
	}

	yearData := data
	if dr != conventions.DateRangeYear {
		var err error
		yearData, err = a.uptimeGetter.ListUptimeSummaries(ctx, conventions.DateRangeYear)
		if err != nil {
			return fmt.Errorf("could not get year uptime summaries: %w", err)
		}
	}

	if len(yearData) == 0 {
		return nil
	}

	if sess.LockDomain(session.Domain{bullet.Minimum(yearData), 100}) {
		a.logger.Debugf("Session domain locked")
	}

	return nil
}

func (a *App) colorFunc(ctx context.Context, sess *session.Session, dr conventions.DateRange, data []model.BulletDatum) (color.Func, error) {
	switch a.colors.Mode {
	case config.ColorModePalette:
		return sess.AssignColors(cellNames(data), a.palette).Func(), nil

	case config.ColorModePlugin:
		p, err := a.colorPluginGetter.GetColorPlugin(ctx, a.colors.PluginID)
		if err != nil {
			return nil, fmt.Errorf("could not get %q color plugin: %w", a.colors.PluginID, err)
		}
		meta := map[string]string{
			pluginv1.MetaChart:     ChartBullet,
			pluginv1.MetaDateRange: string(dr),
		}
		return p.ColorFunc(ctx, meta, a.colors.PluginOptions), nil
	}

	return color.FromTable(a.colors.Table), nil
}

// cellNames returns the unique cell names of the data in order of appearance.
func cellNames(data []model.BulletDatum) []string {
	seen := map[string]bool{}
	names := []string{}
	for _, d := range data {
		for _, n := range d.CellNames() {
			if seen[n] {
				continue
			}
			seen[n] = true
			names = append(names, n)
		}
	}
	return names
}

func defaultDateRange(dr conventions.DateRange) (conventions.DateRange, error) {
	if dr == "" {
		return conventions.DateRangeYear, nil
	}

	if !dr.IsValid() {
		return "", fmt.Errorf("%q: %w", dr, commonerrors.ErrInvalidRange)
	}

	return dr, nil
}
