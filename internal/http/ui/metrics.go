package ui

import (
	"context"
	"time"

	gohttpmetrics "github.com/slok/go-http-metrics/metrics"

	"github.com/rcreports/uptimechart/internal/http/backend/metrics"
)

// MetricsRecorder is the service used to record metrics in the HTTP API handler.
type MetricsRecorder interface {
	gohttpmetrics.Recorder
}

var noopMetricsRecorder = struct {
	gohttpmetrics.Recorder
}{
	Recorder: gohttpmetrics.Dummy,
}

// InteractionMetricsRecorder is the service used to record the metrics of the chart interaction websockets.
type InteractionMetricsRecorder interface {
	MeasureInteractionSessionDuration(ctx context.Context, chart string, t time.Duration)
	AddInteractionEvent(ctx context.Context, chart, eventType string)
}

var noopInteractionMetricsRecorder InteractionMetricsRecorder = metrics.NoopRecorder
