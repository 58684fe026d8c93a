package ui

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/rcreports/uptimechart/internal/chart/dispatch"
	"github.com/rcreports/uptimechart/internal/http/backend/app"
	"github.com/rcreports/uptimechart/internal/log"
	"github.com/rcreports/uptimechart/pkg/common/conventions"
	commonerrors "github.com/rcreports/uptimechart/pkg/common/errors"
)

const (
	wsWriteTimeout  = 5 * time.Second
	wsMaxReadBytes  = 4096
	wsMsgTypeMove   = "move"
	wsMsgTypeLeave  = "leave"
	wsMsgTypeRedraw = "redraw"
	wsMsgTypeResize = "resize"
	wsMsgTypeRange  = "range"
	wsMsgTypeSVG    = "svg"
	wsMsgTypeTip    = "tooltip"
	wsMsgTypeError  = "error"
)

var wsUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		host := strings.ToLower(strings.TrimSpace(r.Host))
		originHost := strings.ToLower(strings.TrimSpace(u.Host))
		return host == originHost
	},
}

// wsClientMessage is a message from the browser, positions are on chart coordinates.
type wsClientMessage struct {
	Type  string                `json:"type"`
	X     float64               `json:"x"`
	Y     float64               `json:"y"`
	From  conventions.DateRange `json:"from"`
	Width float64               `json:"width"`
}

type wsTooltip struct {
	Visible      bool           `json:"visible"`
	Event        dispatch.Event `json:"event"`
	TransitionMs int64          `json:"transitionMs"`
}

type wsServerMessage struct {
	Type    string     `json:"type"`
	SVG     string     `json:"svg,omitempty"`
	Tooltip *wsTooltip `json:"tooltip,omitempty"`
	Error   string     `json:"error,omitempty"`
}

// wsConn serializes the writes of a websocket connection.
type wsConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *wsConn) send(msg wsServerMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_ = c.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	return c.conn.WriteJSON(msg)
}

func (u ui) handlerInteractionWS() http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		chartName := chi.URLParam(r, URLParamChart)

		width, err := urls.WidthFromRequest(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		view, err := u.serviceApp.NewView(ctx, app.NewViewRequest{
			Chart:     chartName,
			DateRange: urls.DateRangeFromRequest(r),
			Width:     width,
			SessionID: urls.SessionIDFromRequest(r),
		})
		if err != nil {
			u.handleChartError(w, err)
			return
		}

		conn, err := wsUpgrader.Upgrade(w, r, nil)
		if err != nil {
			u.logger.Warningf("Could not upgrade websocket: %s", err)
			return
		}
		defer conn.Close()
		conn.SetReadLimit(wsMaxReadBytes)

		t0 := time.Now()
		defer func() {
			u.interactionMetrics.MeasureInteractionSessionDuration(ctx, chartName, time.Since(t0))
		}()

		u.serveInteraction(ctx, &wsConn{conn: conn}, view)
	})
}

func (u ui) serveInteraction(ctx context.Context, conn *wsConn, view app.View) {
	logger := u.logger.WithValues(log.Kv{"chart": view.Chart()})

	sendSVG := func(ctx context.Context) error {
		svg, err := view.SVG()
		if err != nil {
			return err
		}
		return conn.send(wsServerMessage{Type: wsMsgTypeSVG, SVG: svg})
	}

	view.OnRedrawRequested(sendSVG)
	view.Tooltip().OnChange(func(s dispatch.TooltipState) {
		err := conn.send(wsServerMessage{Type: wsMsgTypeTip, Tooltip: &wsTooltip{
			Visible:      s.Visible,
			Event:        s.Event,
			TransitionMs: s.Transition.Milliseconds(),
		}})
		if err != nil {
			logger.Debugf("Could not send tooltip: %s", err)
		}
	})

	if err := sendSVG(ctx); err != nil {
		logger.Warningf("Could not send chart: %s", err)
		return
	}

	for {
		var msg wsClientMessage
		err := conn.conn.ReadJSON(&msg)
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Debugf("Websocket closed: %s", err)
			}
			return
		}
		u.interactionMetrics.AddInteractionEvent(ctx, view.Chart(), msg.Type)

		err = u.handleInteractionMessage(ctx, view, msg)
		if err != nil {
			logger.Warningf("Could not handle %q message: %s", msg.Type, err)
			errMsg := "could not handle message"
			if errors.Is(err, commonerrors.ErrInvalidRange) {
				errMsg = "invalid date range"
			}
			if err := conn.send(wsServerMessage{Type: wsMsgTypeError, Error: errMsg}); err != nil {
				return
			}
		}
	}
}

func (u ui) handleInteractionMessage(ctx context.Context, view app.View, msg wsClientMessage) error {
	switch msg.Type {
	case wsMsgTypeMove:
		view.Pointer(msg.X, msg.Y)
	case wsMsgTypeLeave:
		view.PointerLeave()
	case wsMsgTypeRedraw:
		return view.Refresh(ctx)
	case wsMsgTypeResize:
		if msg.Width < 0 || msg.Width > maxChartWidth {
			return errors.New("invalid width")
		}
		return view.Resize(ctx, msg.Width)
	case wsMsgTypeRange:
		return view.SetDateRange(ctx, msg.From)
	default:
		return errors.New("unknown message type")
	}

	return nil
}
