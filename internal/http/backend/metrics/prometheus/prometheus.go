package prometheus

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	Prefix = "uptimechart"
)

type Recorder struct {
	reg prometheus.Registerer

	storagePromCacheLatency *prometheus.HistogramVec
	storageOperationLatency *prometheus.HistogramVec
	promAPICliLatency       *prometheus.HistogramVec
	chartRenderLatency      *prometheus.HistogramVec
	interactionSessionDur   *prometheus.HistogramVec
	interactionEvents       *prometheus.CounterVec
}

func NewRecorder(reg prometheus.Registerer) Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	r := &Recorder{
		reg: reg,

		storagePromCacheLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Prefix,
				Subsystem: "storage_prometheus",
				Name:      "cache_background_refresh_duration_seconds",
				Help:      "Duration histogram of Prometheus storage cache refresh operations.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"success"},
		),

		storageOperationLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Prefix,
				Subsystem: "storage",
				Name:      "operation_duration_seconds",
				Help:      "Duration histogram of storage operations.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation", "success"},
		),

		promAPICliLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Prefix,
				Subsystem: "prometheus_api_client",
				Name:      "operation_duration_seconds",
				Help:      "Duration histogram of Prometheus API client operations.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation", "success"},
		),

		chartRenderLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Prefix,
				Subsystem: "chart",
				Name:      "render_duration_seconds",
				Help:      "Duration histogram of chart renders.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"chart", "format", "success"},
		),

		interactionSessionDur: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Prefix,
				Subsystem: "interaction",
				Name:      "session_duration_seconds",
				Help:      "Duration histogram of chart interaction websocket sessions.",
				Buckets:   []float64{1, 5, 15, 30, 60, 300, 900, 1800, 3600},
			},
			[]string{"chart"},
		),

		interactionEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Prefix,
				Subsystem: "interaction",
				Name:      "events_total",
				Help:      "Total number of chart interaction events received.",
			},
			[]string{"chart", "type"},
		),
	}

	r.init()

	return *r
}

func (r Recorder) init() {
	// Register our collectors.
	r.reg.MustRegister(
		r.storagePromCacheLatency,
		r.promAPICliLatency,
		r.storageOperationLatency,
		r.chartRenderLatency,
		r.interactionSessionDur,
		r.interactionEvents,
	)
}

func (r Recorder) MeasurePrometheusStorageBackgroundCacheRefresh(ctx context.Context, t time.Duration, err error) {
	r.storagePromCacheLatency.WithLabelValues(strconv.FormatBool(err == nil)).Observe(t.Seconds())
}

func (r Recorder) MeasurePrometheusAPIClientOperation(ctx context.Context, op string, t time.Duration, err error) {
	r.promAPICliLatency.WithLabelValues(op, strconv.FormatBool(err == nil)).Observe(t.Seconds())
}

func (r Recorder) MeasureStorageOperationDuration(ctx context.Context, op string, t time.Duration, err error) {
	r.storageOperationLatency.WithLabelValues(op, strconv.FormatBool(err == nil)).Observe(t.Seconds())
}

func (r Recorder) MeasureChartRenderDuration(ctx context.Context, chart, format string, t time.Duration, err error) {
	r.chartRenderLatency.WithLabelValues(chart, format, strconv.FormatBool(err == nil)).Observe(t.Seconds())
}

func (r Recorder) MeasureInteractionSessionDuration(ctx context.Context, chart string, t time.Duration) {
	r.interactionSessionDur.WithLabelValues(chart).Observe(t.Seconds())
}

func (r Recorder) AddInteractionEvent(ctx context.Context, chart, eventType string) {
	r.interactionEvents.WithLabelValues(chart, eventType).Inc()
}
