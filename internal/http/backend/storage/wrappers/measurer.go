package wrappers

import (
	"context"
	"time"

	"github.com/rcreports/uptimechart/internal/http/backend/metrics"
	"github.com/rcreports/uptimechart/internal/http/backend/storage"
	"github.com/rcreports/uptimechart/pkg/common/conventions"
	"github.com/rcreports/uptimechart/pkg/common/model"
)

type measuredUptimeGetter struct {
	orig    storage.UptimeGetter
	metrics metrics.Recorder
}

func NewMeasuredUptimeGetter(orig storage.UptimeGetter, metricsRecorder metrics.Recorder) storage.UptimeGetter {
	return measuredUptimeGetter{
		orig:    orig,
		metrics: metricsRecorder,
	}
}

func (m measuredUptimeGetter) ListUptimeSummaries(ctx context.Context, dateRange conventions.DateRange) (data []model.BulletDatum, err error) {
	t0 := time.Now()
	defer func() {
		m.metrics.MeasureStorageOperationDuration(ctx, "ListUptimeSummaries", time.Since(t0), err)
	}()

	return m.orig.ListUptimeSummaries(ctx, dateRange)
}

type measuredHistoryGetter struct {
	orig    storage.HistoryGetter
	metrics metrics.Recorder
}

func NewMeasuredHistoryGetter(orig storage.HistoryGetter, metricsRecorder metrics.Recorder) storage.HistoryGetter {
	return measuredHistoryGetter{
		orig:    orig,
		metrics: metricsRecorder,
	}
}

func (m measuredHistoryGetter) ListOutageHistory(ctx context.Context, from, to time.Time) (data []model.HistoryDatum, err error) {
	t0 := time.Now()
	defer func() {
		m.metrics.MeasureStorageOperationDuration(ctx, "ListOutageHistory", time.Since(t0), err)
	}()

	return m.orig.ListOutageHistory(ctx, from, to)
}
