package file

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/rcreports/uptimechart/internal/http/backend/storage"
	"github.com/rcreports/uptimechart/internal/log"
	"github.com/rcreports/uptimechart/pkg/common/conventions"
	commonerrors "github.com/rcreports/uptimechart/pkg/common/errors"
	"github.com/rcreports/uptimechart/pkg/common/model"
)

// LoadReport loads an uptime report from YAML (or JSON) raw data and validates it.
func LoadReport(data []byte) (*model.UptimeReport, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("report is empty: %w", commonerrors.ErrRequired)
	}

	r := &model.UptimeReport{}
	err := yaml.UnmarshalStrict(data, r)
	if err != nil {
		return nil, fmt.Errorf("could not unmarshal report: %w", err)
	}

	err = r.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid report: %w", err)
	}

	return r, nil
}

type RepositoryConfig struct {
	Path   string
	Logger log.Logger
}

func (c *RepositoryConfig) defaults() error {
	if c.Path == "" {
		return fmt.Errorf("report file path is required")
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.file.repository"})

	return nil
}

// Repository serves the uptime data of a report file. The file has a single snapshot so
// all the date ranges return the same summaries. Reload reads the file again, on error the
// previous data is kept.
type Repository struct {
	path   string
	logger log.Logger

	report model.UptimeReport
	mu     sync.RWMutex
}

var (
	_ storage.UptimeGetter  = &Repository{}
	_ storage.HistoryGetter = &Repository{}
)

func NewRepository(ctx context.Context, config RepositoryConfig) (*Repository, error) {
	if err := config.defaults(); err != nil {
		return nil, err
	}

	r := &Repository{
		path:   config.Path,
		logger: config.Logger,
	}

	err := r.Reload(ctx)
	if err != nil {
		return nil, err
	}

	return r, nil
}

// NewReportRepository returns a repository that serves an already loaded report.
func NewReportRepository(report model.UptimeReport) *Repository {
	return &Repository{
		logger: log.Noop,
		report: report,
	}
}

// Reload loads the report file again.
func (r *Repository) Reload(ctx context.Context) error {
	// Already loaded reports have nothing to reload.
	if r.path == "" {
		return nil
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		return fmt.Errorf("could not read report file: %w", err)
	}

	report, err := LoadReport(data)
	if err != nil {
		return fmt.Errorf("could not load %q report: %w", r.path, err)
	}

	r.mu.Lock()
	r.report = *report
	r.mu.Unlock()

	r.logger.WithValues(log.Kv{"services": len(report.Bullets), "path": r.path}).Infof("Report loaded")

	return nil
}

func (r *Repository) ListUptimeSummaries(ctx context.Context, dateRange conventions.DateRange) ([]model.BulletDatum, error) {
	if !dateRange.IsValid() {
		return nil, fmt.Errorf("%q: %w", dateRange, commonerrors.ErrInvalidRange)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	res := make([]model.BulletDatum, 0, len(r.report.Bullets))
	for _, b := range r.report.Bullets {
		b.Cells = append([]model.Cell{}, b.Cells...)
		res = append(res, b)
	}

	return res, nil
}

func (r *Repository) ListOutageHistory(ctx context.Context, from, to time.Time) ([]model.HistoryDatum, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%s is before %s: %w", to, from, commonerrors.ErrInvalidRange)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	res := make([]model.HistoryDatum, 0, len(r.report.History))
	for _, h := range r.report.History {
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
