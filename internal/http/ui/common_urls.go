package ui

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/rcreports/uptimechart/internal/http/ui/htmx"
	"github.com/rcreports/uptimechart/pkg/common/conventions"
)

const (
	queryParamComponent = "component"
	queryParamFrom      = "from"
	queryParamWidth     = "width"

	sessionCookieName = "uptimechart_session"
	maxChartWidth     = 10000
)

// urls is a common url manager with common utilities around URLs so they are handled in a single place.
var urls = urlManager{}

type urlManager struct{}

// ComponentFromRequest will return the component from a request (empty if doesn't have).
func (u urlManager) ComponentFromRequest(r *http.Request) string {
	return r.URL.Query().Get(queryParamComponent)
}

// URLWithComponent will return a URL that adds a component to the URL.
func (u urlManager) URLWithComponent(url string, component string) string {
	return u.AddQueryParm(url, queryParamComponent, component)
}

// DateRangeFromRequest will return the date range from a request (empty if doesn't have).
func (u urlManager) DateRangeFromRequest(r *http.Request) conventions.DateRange {
	return conventions.DateRange(r.URL.Query().Get(queryParamFrom))
}

// URLWithDateRange will return a URL that adds a date range to the URL.
func (u urlManager) URLWithDateRange(url string, dr conventions.DateRange) string {
	return u.AddQueryParm(url, queryParamFrom, string(dr))
}

// WidthFromRequest will return the chart container width from a request (zero if doesn't have).
func (u urlManager) WidthFromRequest(r *http.Request) (float64, error) {
	ws := r.URL.Query().Get(queryParamWidth)
	if ws == "" {
		return 0, nil
	}

	w, err := strconv.ParseFloat(ws, 64)
	if err != nil || w < 0 || w > maxChartWidth {
		return 0, fmt.Errorf("invalid width %q", ws)
	}

	return w, nil
}

// SessionIDFromRequest will return the chart session ID from the request cookies (empty if doesn't have).
func (u urlManager) SessionIDFromRequest(r *http.Request) string {
	c, err := r.Cookie(sessionCookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

// SetSessionID will set the chart session ID cookie on the response.
func (u urlManager) SetSessionID(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    id,
		Path:     ServePrefix,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// NonAppURL will return a URL that is not part of the app.
func (u urlManager) NonAppURL(url string) string {
	return ServePrefix + url
}

// AppURL will return a URL that is part of the app.
func (u urlManager) AppURL(url string) string {
	return ServePrefix + URLPathAppPrefix + url
}

// RedirectToIndex will redirect to the index.
func (u urlManager) RedirectToIndex(w http.ResponseWriter, r *http.Request) {
	u.RedirectToURL(w, r, u.NonAppURL("/"))
}

func (u urlManager) RedirectToURL(w http.ResponseWriter, r *http.Request, url string) {
	// If HTMX request, redirect with HTMX, if not regular redirect.
	if htmx.NewRequest(r.Header).IsHTMXRequest() {
		htmx.NewResponse().WithRedirect(url).SetHeaders(w)
		return
	}

	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

func (u urlManager) AddQueryParm(url, key, value string) string {
	queryParamFmt := "?%s=%s"
	if strings.Contains(url, "?") {
		queryParamFmt = "&%s=%s"
	}

	return url + fmt.Sprintf(queryParamFmt, key, value)
}
