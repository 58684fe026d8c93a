package metrics

import (
	"context"
	"time"
)

type Recorder interface {
	MeasureStorageOperationDuration(ctx context.Context, op string, t time.Duration, err error)
	MeasurePrometheusStorageBackgroundCacheRefresh(ctx context.Context, t time.Duration, err error)
	MeasurePrometheusAPIClientOperation(ctx context.Context, op string, t time.Duration, err error)
	MeasureChartRenderDuration(ctx context.Context, chart, format string, t time.Duration, err error)
	MeasureInteractionSessionDuration(ctx context.Context, chart string, t time.Duration)
	AddInteractionEvent(ctx context.Context, chart, eventType string)
}

type noopRecorder bool

var NoopRecorder Recorder = noopRecorder(false)

func (r noopRecorder) MeasureStorageOperationDuration(ctx context.Context, op string, t time.Duration, err error) {
}

func (r noopRecorder) MeasurePrometheusStorageBackgroundCacheRefresh(ctx context.Context, t time.Duration, err error) {
}

func (r noopRecorder) MeasurePrometheusAPIClientOperation(ctx context.Context, op string, t time.Duration, err error) {
}

func (r noopRecorder) MeasureChartRenderDuration(ctx context.Context, chart, format string, t time.Duration, err error) {
}

func (r noopRecorder) MeasureInteractionSessionDuration(ctx context.Context, chart string, t time.Duration) {
}

func (r noopRecorder) AddInteractionEvent(ctx context.Context, chart, eventType string) {}
