package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rcreports/uptimechart/internal/http/backend/model"
	"github.com/rcreports/uptimechart/pkg/common/conventions"
	commonmodel "github.com/rcreports/uptimechart/pkg/common/model"
	utilstime "github.com/rcreports/uptimechart/pkg/common/utils/time"
)

type ListServiceStatsRequest struct {
	DateRange conventions.DateRange
}

type ListServiceStatsResponse struct {
	DateRange   conventions.DateRange
	From        time.Time
	To          time.Time
	Stats       []model.ServiceStats
	BelowTarget int
}

// ListServiceStats summarizes the uptime and outages of each service on a date range.
// Services are returned in the same order as the uptime summaries.
func (a *App) ListServiceStats(ctx context.Context, req ListServiceStatsRequest) (*ListServiceStatsResponse, error) {
	dr, err := defaultDateRange(req.DateRange)
	if err != nil {
		return nil, err
	}

	now := a.timeNowFunc()
	from, err := utilstime.DateRangeStart(now, dr)
	if err != nil {
		return nil, err
	}

	uptimes, err := a.uptimeGetter.ListUptimeSummaries(ctx, dr)
	if err != nil {
		return nil, fmt.Errorf("could not get uptime summaries: %w", err)
	}

	histories, err := a.historyGetter.ListOutageHistory(ctx, from, now)
	if err != nil {
		return nil, fmt.Errorf("could not get outage history: %w", err)
	}

	historyByService := map[string]commonmodel.HistoryDatum{}
	for _, h := range histories {
		historyByService[h.Service] = h
	}

	resp := &ListServiceStatsResponse{
		DateRange: dr,
		From:      from,
		To:        now,
		Stats:     make([]model.ServiceStats, 0, len(uptimes)),
	}
	for _, u := range uptimes {
		s := model.NewServiceStats(u, historyByService[u.Service], from, now)
		if s.BelowTarget() {
			resp.BelowTarget++
		}
		resp.Stats = append(resp.Stats, s)
	}

	return resp, nil
}
