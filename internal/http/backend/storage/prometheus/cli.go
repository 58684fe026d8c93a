package prometheus

import (
	"context"
	"time"

	prometheusv1 "github.com/prometheus/client_golang/api/prometheus/v1"
	"github.com/prometheus/common/model"

	"github.com/rcreports/uptimechart/internal/http/backend/metrics"
)

// PrometheusAPIClient is the part of the Prometheus API client we use.
// We define it so we can add flexibility like easily mocking in tests or wrap it for functionality.
type PrometheusAPIClient interface {
	Query(ctx context.Context, query string, ts time.Time, opts ...prometheusv1.Option) (model.Value, prometheusv1.Warnings, error)
	QueryRange(ctx context.Context, query string, r prometheusv1.Range, opts ...prometheusv1.Option) (model.Value, prometheusv1.Warnings, error)
}

//go:generate mockery --case underscore --output prometheusmock --outpkg prometheusmock --name PrometheusAPIClient

var _ PrometheusAPIClient = prometheusv1.API(nil)

func NewMeasuredPrometheusAPIClient(metricsRecorder metrics.Recorder, promcli PrometheusAPIClient) PrometheusAPIClient {
	return measuredPrometheusAPIClient{
		promcli:         promcli,
		metricsRecorder: metricsRecorder,
	}
}

type measuredPrometheusAPIClient struct {
	promcli         PrometheusAPIClient
	metricsRecorder metrics.Recorder
}

func (m measuredPrometheusAPIClient) Query(ctx context.Context, query string, ts time.Time, opts ...prometheusv1.Option) (v model.Value, w prometheusv1.Warnings, err error) {
	start := time.Now()
	defer func() {
		m.metricsRecorder.MeasurePrometheusAPIClientOperation(ctx, "Query", time.Since(start), err)
	}()
	return m.promcli.Query(ctx, query, ts, opts...)
}

func (m measuredPrometheusAPIClient) QueryRange(ctx context.Context, query string, r prometheusv1.Range, opts ...prometheusv1.Option) (v model.Value, w prometheusv1.Warnings, err error) {
	start := time.Now()
	defer func() {
		m.metricsRecorder.MeasurePrometheusAPIClientOperation(ctx, "QueryRange", time.Since(start), err)
	}()
	return m.promcli.QueryRange(ctx, query, r, opts...)
}
