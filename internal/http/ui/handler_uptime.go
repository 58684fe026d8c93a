package ui

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"

	"github.com/rcreports/uptimechart/internal/http/backend/app"
	"github.com/rcreports/uptimechart/internal/http/ui/htmx"
	"github.com/rcreports/uptimechart/pkg/common/conventions"
	commonerrors "github.com/rcreports/uptimechart/pkg/common/errors"
	"github.com/rcreports/uptimechart/pkg/common/model"
)

type tplDataRangeButton struct {
	Label    string
	URL      string
	Selected bool
}

func (u ui) handlerUptime() http.HandlerFunc {
	// Available components
	const (
		componentChart = "chart"
	)

	type tplData struct {
		DateRange    conventions.DateRange
		Ranges       []tplDataRangeButton
		SVG          string
		SVGURL       string
		DataURL      string
		WebsocketURL string
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		isHTMXCall := htmx.NewRequest(r.Header).IsHTMXRequest()
		component := urls.ComponentFromRequest(r)

		width, err := urls.WidthFromRequest(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		// Unknown snippet.
		if isHTMXCall && component != "" && component != componentChart {
			http.Error(w, "Unknown component", http.StatusBadRequest)
			return
		}

		resp, err := u.serviceApp.RenderUptime(ctx, app.RenderUptimeRequest{
			DateRange: urls.DateRangeFromRequest(r),
			Width:     width,
			SessionID: urls.SessionIDFromRequest(r),
		})
		if err != nil {
			u.handleChartError(w, err)
			return
		}
		urls.SetSessionID(w, resp.SessionID)

		data := tplData{
			DateRange:    resp.DateRange,
			SVG:          resp.SVG,
			SVGURL:       urls.URLWithDateRange(urls.AppURL("/uptime.svg"), resp.DateRange),
			DataURL:      urls.URLWithDateRange(urls.AppURL("/uptime.json"), resp.DateRange),
			WebsocketURL: urls.URLWithDateRange(urls.AppURL("/ws/"+app.ChartBullet), resp.DateRange),
		}
		for _, dr := range conventions.DateRanges {
			data.Ranges = append(data.Ranges, tplDataRangeButton{
				Label:    dateRangeLabel(dr),
				URL:      urls.URLWithComponent(urls.URLWithDateRange(urls.AppURL("/uptime"), dr), componentChart),
				Selected: dr == resp.DateRange,
			})
		}

		switch {
		// Snippet chart.
		case isHTMXCall && component == componentChart:
			htmx.NewResponse().WithPushURL(urls.URLWithDateRange(urls.AppURL("/uptime"), resp.DateRange)).SetHeaders(w)
			u.tplRenderer.RenderResponse(ctx, w, r, "app_uptime_comp_chart", data)

		// Full page load.
		default:
			u.tplRenderer.RenderResponse(ctx, w, r, "app_uptime", data)
		}
	})
}

func (u ui) handlerUptimeSVG() http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		width, err := urls.WidthFromRequest(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		resp, err := u.serviceApp.RenderUptime(ctx, app.RenderUptimeRequest{
			DateRange: urls.DateRangeFromRequest(r),
			Width:     width,
			SessionID: urls.SessionIDFromRequest(r),
		})
		if err != nil {
			u.handleChartError(w, err)
			return
		}
		urls.SetSessionID(w, resp.SessionID)

		writeSVG(w, resp.SVG)
	})
}

func (u ui) handlerUptimeJSON() http.HandlerFunc {
	type jsonCell struct {
		Name   string    `json:"name"`
		Uptime jsonFloat `json:"uptime"`
	}

	type jsonDatum struct {
		Service  string     `json:"service"`
		National jsonFloat  `json:"national"`
		Target   jsonFloat  `json:"target"`
		Cells    []jsonCell `json:"cells"`
	}

	type jsonData struct {
		DateRange conventions.DateRange `json:"range"`
		Uptime    []jsonDatum           `json:"uptime"`
	}

	mapToJSON := func(data []model.BulletDatum) []jsonDatum {
		res := make([]jsonDatum, 0, len(data))
		for _, d := range data {
			jd := jsonDatum{
				Service:  d.Service,
				National: jsonFloat(d.National),
				Target:   jsonFloat(d.Target),
				Cells:    make([]jsonCell, 0, len(d.Cells)),
			}
			for _, c := range d.Cells {
				jd.Cells = append(jd.Cells, jsonCell{Name: c.Name, Uptime: jsonFloat(c.Uptime)})
			}
			res = append(res, jd)
		}
		return res
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp, err := u.serviceApp.GetUptimeData(r.Context(), app.GetUptimeDataRequest{
			DateRange: urls.DateRangeFromRequest(r),
		})
		if err != nil {
			u.handleChartError(w, err)
			return
		}

		writeJSON(w, jsonData{DateRange: resp.DateRange, Uptime: mapToJSON(resp.Data)})
	})
}

func (u ui) handleChartError(w http.ResponseWriter, err error) {
	if errors.Is(err, commonerrors.ErrInvalidRange) {
		http.Error(w, "invalid date range", http.StatusBadRequest)
		return
	}

	u.logger.Errorf("Could not get chart: %s", err)
	http.Error(w, "could not get chart", http.StatusInternalServerError)
}

func writeSVG(w http.ResponseWriter, svg string) {
	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(svg))
}

// jsonFloat is a float that is marshaled as null when it's not a number.
type jsonFloat float64

func (f jsonFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(v)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(v)
}
