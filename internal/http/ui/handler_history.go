package ui

import (
	"net/http"
	"time"

	"github.com/rcreports/uptimechart/internal/http/backend/app"
	"github.com/rcreports/uptimechart/pkg/common/model"
)

func (u ui) handlerHistory() http.HandlerFunc {
	type tplData struct {
		From         string
		To           string
		SVG          string
		SVGURL       string
		DataURL      string
		WebsocketURL string
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		width, err := urls.WidthFromRequest(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		resp, err := u.serviceApp.RenderHistory(ctx, app.RenderHistoryRequest{Width: width})
		if err != nil {
			u.handleChartError(w, err)
			return
		}

		u.tplRenderer.RenderResponse(ctx, w, r, "app_history", tplData{
			From:         resp.From.Format(time.DateOnly),
			To:           resp.To.Format(time.DateOnly),
			SVG:          resp.SVG,
			SVGURL:       urls.AppURL("/history.svg"),
			DataURL:      urls.AppURL("/history.json"),
			WebsocketURL: urls.AppURL("/ws/" + app.ChartHistory),
		})
	})
}

func (u ui) handlerHistorySVG() http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		width, err := urls.WidthFromRequest(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		resp, err := u.serviceApp.RenderHistory(r.Context(), app.RenderHistoryRequest{Width: width})
		if err != nil {
			u.handleChartError(w, err)
			return
		}

		writeSVG(w, resp.SVG)
	})
}

func (u ui) handlerHistoryJSON() http.HandlerFunc {
	type jsonData struct {
		From    time.Time            `json:"from"`
		To      time.Time            `json:"to"`
		History []model.HistoryDatum `json:"history"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp, err := u.serviceApp.GetHistoryData(r.Context(), app.GetHistoryDataRequest{})
		if err != nil {
			u.handleChartError(w, err)
			return
		}

		writeJSON(w, jsonData{From: resp.From, To: resp.To, History: resp.Data})
	})
}
