package ui

import (
	"errors"
	"net/http"
	"time"

	"github.com/rcreports/uptimechart/internal/http/backend/app"
	"github.com/rcreports/uptimechart/pkg/common/conventions"
	commonerrors "github.com/rcreports/uptimechart/pkg/common/errors"
)

func (u ui) handlerIndex() http.HandlerFunc {
	type tplDataService struct {
		Name           string
		Uptime         float64
		Target         float64
		Outages        int
		PlannedHours   float64
		UnplannedHours float64
		BelowTarget    bool
	}

	type tplDataRange struct {
		DateRange conventions.DateRange
		URL       string
		Selected  bool
	}

	type tplData struct {
		From        string
		To          string
		Ranges      []tplDataRange
		Services    []tplDataService
		BelowTarget int
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		resp, err := u.serviceApp.ListServiceStats(ctx, app.ListServiceStatsRequest{
			DateRange: urls.DateRangeFromRequest(r),
		})
		if err != nil {
			if errors.Is(err, commonerrors.ErrInvalidRange) {
				http.Error(w, "invalid date range", http.StatusBadRequest)
				return
			}
			u.logger.Errorf("Could not list service stats: %s", err)
			http.Error(w, "could not get service stats", http.StatusInternalServerError)
			return
		}

		data := tplData{
			From:        resp.From.Format(time.DateOnly),
			To:          resp.To.Format(time.DateOnly),
			BelowTarget: resp.BelowTarget,
		}
		for _, dr := range conventions.DateRanges {
			data.Ranges = append(data.Ranges, tplDataRange{
				DateRange: dr,
				URL:       urls.URLWithDateRange(urls.NonAppURL("/"), dr),
				Selected:  dr == resp.DateRange,
			})
		}
		for _, s := range resp.Stats {
			data.Services = append(data.Services, tplDataService{
				Name:           s.Service,
				Uptime:         s.Uptime,
				Target:         s.Target,
				Outages:        s.Outages,
				PlannedHours:   s.PlannedHours,
				UnplannedHours: s.UnplannedHours,
				BelowTarget:    s.BelowTarget(),
			})
		}

		u.tplRenderer.RenderResponse(ctx, w, r, "index", data)
	})
}
