package storage

import (
	"context"
	"time"

	"github.com/rcreports/uptimechart/pkg/common/conventions"
	"github.com/rcreports/uptimechart/pkg/common/model"
)

// UptimeGetter knows how to get the uptime summary of the services for one
// of the dashboard date ranges.
type UptimeGetter interface {
	ListUptimeSummaries(ctx context.Context, dateRange conventions.DateRange) ([]model.BulletDatum, error)
}

//go:generate mockery --case underscore --output storagemock --outpkg storagemock --name UptimeGetter

// HistoryGetter knows how to get the outages of the services that overlap
// the [from, to] window.
type HistoryGetter interface {
	ListOutageHistory(ctx context.Context, from, to time.Time) ([]model.HistoryDatum, error)
}

//go:generate mockery --case underscore --output storagemock --outpkg storagemock --name HistoryGetter
