package prometheus

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rcreports/uptimechart/internal/http/backend/metrics"
	"github.com/rcreports/uptimechart/internal/http/backend/storage"
	"github.com/rcreports/uptimechart/internal/log"
	"github.com/rcreports/uptimechart/pkg/common/conventions"
	commonerrors "github.com/rcreports/uptimechart/pkg/common/errors"
	"github.com/rcreports/uptimechart/pkg/common/model"
)

// Queries are the PromQL templates used to get the data. They are rendered with
// `{{ .window }}` (date range duration) and `{{ .selector }}` (selector labels).
type Queries struct {
	CellUptime     string
	NationalUptime string
	Target         string
	Outages        string
}

type RepositoryConfig struct {
	PrometheusClient     PrometheusAPIClient
	Queries              Queries
	Selector             map[string]string
	HistoryResolution    int
	CacheRefreshInterval time.Duration
	TimeNowFunc          func() time.Time // Used for faking time in testing.
	MetricsRecorder      metrics.Recorder
	Logger               log.Logger
}

func (c *RepositoryConfig) defaults() error {
	if c.PrometheusClient == nil {
		return fmt.Errorf("prometheus client is required")
	}

	if c.Queries.CellUptime == "" || c.Queries.NationalUptime == "" || c.Queries.Target == "" || c.Queries.Outages == "" {
		return fmt.Errorf("all the queries are required")
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.prometheus.repository"})

	if c.CacheRefreshInterval < 1*time.Minute {
		c.CacheRefreshInterval = 1 * time.Minute
	}

	if c.HistoryResolution <= 0 {
		c.HistoryResolution = 10000
	}

	if c.TimeNowFunc == nil {
		c.TimeNowFunc = time.Now
	}

	if c.MetricsRecorder == nil {
		c.MetricsRecorder = metrics.NoopRecorder
	}

	return nil
}

// Repository gets the uptime data from Prometheus. Queries are expensive (a year of data),
// so the data is kept on a cache refreshed in background.
type Repository struct {
	promcli              PrometheusAPIClient
	queries              queryTemplates
	selector             map[string]string
	historyResolution    int
	CacheRefreshInterval time.Duration
	logger               log.Logger
	timeNowFunc          func() time.Time
	metricsRecorder      metrics.Recorder

	cache cache
	mu    sync.RWMutex
}

var (
	_ storage.UptimeGetter  = &Repository{}
	_ storage.HistoryGetter = &Repository{}
)

func NewRepository(ctx context.Context, config RepositoryConfig) (*Repository, error) {
	if err := config.defaults(); err != nil {
		return nil, err
	}

	queries, err := newQueryTemplates(config.Queries)
	if err != nil {
		return nil, err
	}

	r := &Repository{
		promcli:              config.PrometheusClient,
		queries:              queries,
		selector:             config.Selector,
		historyResolution:    config.HistoryResolution,
		CacheRefreshInterval: config.CacheRefreshInterval,
		timeNowFunc:          config.TimeNowFunc,
		metricsRecorder:      config.MetricsRecorder,
		logger:               config.Logger,
	}

	// Warm caches.
	err = r.refreshCaches(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not warm caches: %w", err)
	}

	// Trigger background refresh caches.
	go func() {
		for {
			select {
			case <-ctx.Done():
				r.logger.Infof("Stopping cache refresh")
				return
			case <-time.After(r.CacheRefreshInterval):
				err := r.Reload(ctx)
				if err != nil {
					r.logger.Errorf("Could not refresh caches: %v", err)
				}
			}
		}
	}()

	return r, nil
}

// Reload refreshes the caches.
func (r *Repository) Reload(ctx context.Context) (err error) {
	t0 := time.Now()
	defer func() {
		r.metricsRecorder.MeasurePrometheusStorageBackgroundCacheRefresh(ctx, time.Since(t0), err)
	}()

	return r.refreshCaches(ctx)
}

func (r *Repository) ListUptimeSummaries(ctx context.Context, dateRange conventions.DateRange) ([]model.BulletDatum, error) {
	if !dateRange.IsValid() {
		return nil, fmt.Errorf("%q: %w", dateRange, commonerrors.ErrInvalidRange)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	data := r.cache.UptimeByRange[dateRange]
	res := make([]model.BulletDatum, 0, len(data))
	for _, d := range data {
		d.Cells = append([]model.Cell{}, d.Cells...)
		res = append(res, d)
	}

	return res, nil
}

func (r *Repository) ListOutageHistory(ctx context.Context, from, to time.Time) ([]model.HistoryDatum, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res := make([]model.HistoryDatum, 0, len(r.cache.History))
	for _, h := range r.cache.History {
		d := model.HistoryDatum{Service: h.Service, Outages: []model.Outage{}}
		for _, o := range h.Outages {
			if o.Overlaps(from, to) {
				d.Outages = append(d.Outages, o)
			}
		}
		res = append(res, d)
	}

	return res, nil
}
