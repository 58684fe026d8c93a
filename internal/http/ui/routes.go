package ui

import (
	"fmt"
	"net/http"

	"github.com/slok/go-http-metrics/middleware/std"
)

const (
	URLPathAppPrefix = "/app"

	URLParamChart = "chart"
)

func (u ui) registerStaticFilesRoutes() {
	u.staticFilesRouter.Handle("/*", http.StripPrefix(ServePrefix, http.FileServer(http.FS(staticFS))))
}

func (u ui) registerRoutes() {
	u.wrapGet("/", u.handlerIndex())

	// App.
	u.wrapGet(URLPathAppPrefix+"/uptime", u.handlerUptime())
	u.wrapGet(URLPathAppPrefix+"/uptime.svg", u.handlerUptimeSVG())
	u.wrapGet(URLPathAppPrefix+"/uptime.json", u.handlerUptimeJSON())
	u.wrapGet(URLPathAppPrefix+"/history", u.handlerHistory())
	u.wrapGet(URLPathAppPrefix+"/history.svg", u.handlerHistorySVG())
	u.wrapGet(URLPathAppPrefix+"/history.json", u.handlerHistoryJSON())

	// Websocket sessions are long lived, they are measured by the interaction metrics.
	u.router.Get(URLPathAppPrefix+fmt.Sprintf("/ws/{%s:bullet|history}", URLParamChart), u.handlerInteractionWS())
}

func (u ui) wrapGet(pattern string, h http.HandlerFunc) {
	u.router.With(
		// Add endpoint middlewares.
		std.HandlerProvider(pattern, u.metricsMiddleware),
	).Get(pattern, h)
}
