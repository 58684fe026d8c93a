package app

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/rcreports/uptimechart/internal/chart/history"
	"github.com/rcreports/uptimechart/pkg/common/model"
	utilstime "github.com/rcreports/uptimechart/pkg/common/utils/time"
)

type RenderHistoryRequest struct {
	// Width is the container width, zero uses the default.
	Width float64
}

type RenderHistoryResponse struct {
	From   time.Time
	To     time.Time
	Data   []model.HistoryDatum
	Layout history.Layout
	SVG    string
}

// RenderHistory renders the outage history chart of the last year.
func (a *App) RenderHistory(ctx context.Context, req RenderHistoryRequest) (resp *RenderHistoryResponse, err error) {
	t0 := time.Now()
	defer func() {
		a.metricsRecorder.MeasureChartRenderDuration(ctx, ChartHistory, formatSVG, time.Since(t0), err)
	}()

	now := a.timeNowFunc()
	from := utilstime.YearAgo(now)
	data, err := a.historyGetter.ListOutageHistory(ctx, from, now)
	if err != nil {
		return nil, fmt.Errorf("could not get outage history: %w", err)
	}

	layout := a.historyChart.Layout(data, req.Width, now)

	var b bytes.Buffer
	err = a.renderer.History(&b, layout)
	if err != nil {
		return nil, fmt.Errorf("could not render history chart: %w", err)
	}

	return &RenderHistoryResponse{
		From:   from,
		To:     now,
		Data:   data,
		Layout: layout,
		SVG:    b.String(),
	}, nil
}

type GetHistoryDataRequest struct{}

type GetHistoryDataResponse struct {
	From time.Time
	To   time.Time
	Data []model.HistoryDatum
}

// GetHistoryData returns the data of the outage history chart.
func (a *App) GetHistoryData(ctx context.Context, req GetHistoryDataRequest) (resp *GetHistoryDataResponse, err error) {
	t0 := time.Now()
	defer func() {
		a.metricsRecorder.MeasureChartRenderDuration(ctx, ChartHistory, formatJSON, time.Since(t0), err)
	}()

	now := a.timeNowFunc()
	from := utilstime.YearAgo(now)
	data, err := a.historyGetter.ListOutageHistory(ctx, from, now)
	if err != nil {
		return nil, fmt.Errorf("could not get outage history: %w", err)
	}

	return &GetHistoryDataResponse{From: from, To: now, Data: data}, nil
}
