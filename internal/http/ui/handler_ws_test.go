package ui_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rcreports/uptimechart/internal/chart"
	"github.com/rcreports/uptimechart/internal/chart/dispatch"
	"github.com/rcreports/uptimechart/internal/http/backend/app"
	"github.com/rcreports/uptimechart/pkg/common/conventions"
	commonerrors "github.com/rcreports/uptimechart/pkg/common/errors"
)

// testLayout has a single hit testable bar on the first 10 pixels.
type testLayout struct {
	width float64
}

func (l testLayout) HitTest(x, y float64) (dispatch.Event, bool) {
	if x < 0 || x >= 10 || y < 0 || y >= 10 {
		return dispatch.Event{}, false
	}
	return dispatch.Event{Target: "bar", Value: 99.5, Label: "National", Color: "blue"}, true
}

type testView struct {
	inst *chart.Instance[string, testLayout]

	mu         sync.Mutex
	dateRanges []conventions.DateRange
	fetches    int
}

func newTestView() *testView {
	v := &testView{}
	v.inst = chart.NewInstance(func(data string, width float64) testLayout {
		return testLayout{width: width}
	}, 100, dispatch.TooltipConfig{HideDuration: 500 * time.Millisecond})
	v.inst.Render("data")
	return v
}

func (v *testView) Chart() string                        { return app.ChartBullet }
func (v *testView) Pointer(x, y float64)                 { v.inst.Pointer(x, y) }
func (v *testView) PointerLeave()                        { v.inst.PointerLeave() }
func (v *testView) Tooltip() *dispatch.Tooltip           { return v.inst.Tooltip() }
func (v *testView) OnRedrawRequested(f chart.RedrawFunc) { v.inst.OnRedrawRequested(f) }

// Refresh counts the data fetches and renders again.
func (v *testView) Refresh(ctx context.Context) error {
	v.mu.Lock()
	v.fetches++
	v.mu.Unlock()
	v.inst.Render("data")
	return v.inst.RequestRedraw(ctx)
}

func (v *testView) Redraw(ctx context.Context) error {
	if _, err := v.inst.Update(); err != nil {
		return err
	}
	return v.inst.RequestRedraw(ctx)
}

func (v *testView) Resize(ctx context.Context, width float64) error {
	if _, err := v.inst.Resize(width); err != nil {
		return err
	}
	return v.inst.RequestRedraw(ctx)
}

func (v *testView) SetDateRange(ctx context.Context, dr conventions.DateRange) error {
	if dr != conventions.DateRangeOneMonth {
		return fmt.Errorf("unknown %q: %w", dr, commonerrors.ErrInvalidRange)
	}
	v.mu.Lock()
	v.dateRanges = append(v.dateRanges, dr)
	v.mu.Unlock()
	return v.inst.RequestRedraw(ctx)
}

func (v *testView) SVG() (string, error) {
	return fmt.Sprintf(`<svg width="%g"></svg>`, v.inst.Layout().width), nil
}

type testWSMessage struct {
	Type    string `json:"type"`
	SVG     string `json:"svg"`
	Error   string `json:"error"`
	Tooltip *struct {
		Visible      bool           `json:"visible"`
		Event        dispatch.Event `json:"event"`
		TransitionMs int64          `json:"transitionMs"`
	} `json:"tooltip"`
}

func TestHandlerInteractionWS(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	m := newMocks(t)
	view := newTestView()
	expReq := app.NewViewRequest{Chart: "bullet", DateRange: conventions.DateRangeYear, Width: 100, SessionID: "s1"}
	m.ServiceApp.On("NewView", mock.Anything, expReq).Once().Return(view, nil)

	srv := httptest.NewServer(newTestUIHandler(t, m))
	defer srv.Close()

	header := http.Header{}
	header.Add("Cookie", "uptimechart_session=s1")
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/u/app/ws/bullet?from=year&width=100"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, header)
	require.NoError(err)
	defer conn.Close()

	read := func() testWSMessage {
		var msg testWSMessage
		_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		require.NoError(conn.ReadJSON(&msg))
		return msg
	}
	send := func(msg map[string]any) {
		require.NoError(conn.WriteJSON(msg))
	}

	// The chart is sent when connected.
	msg := read()
	assert.Equal("svg", msg.Type)
	assert.Equal(`<svg width="100"></svg>`, msg.SVG)

	// Pointer over the bar shows the tooltip.
	send(map[string]any{"type": "move", "x": 5, "y": 5})
	msg = read()
	assert.Equal("tooltip", msg.Type)
	require.NotNil(msg.Tooltip)
	assert.True(msg.Tooltip.Visible)
	assert.Equal("National", msg.Tooltip.Event.Label)
	assert.Equal(99.5, msg.Tooltip.Event.Value)
	assert.Equal(&dispatch.Point{X: 5, Y: 5}, msg.Tooltip.Event.Pos)

	// Leaving hides the tooltip.
	send(map[string]any{"type": "leave"})
	msg = read()
	assert.Equal("tooltip", msg.Type)
	require.NotNil(msg.Tooltip)
	assert.False(msg.Tooltip.Visible)
	assert.Equal(int64(500), msg.Tooltip.TransitionMs)

	// Resizing redraws the chart.
	send(map[string]any{"type": "resize", "width": 300})
	msg = read()
	assert.Equal("svg", msg.Type)
	assert.Equal(`<svg width="300"></svg>`, msg.SVG)

	// Changing the range redraws the chart.
	send(map[string]any{"type": "range", "from": "oneMonth"})
	msg = read()
	assert.Equal("svg", msg.Type)

	// Invalid ranges are reported.
	send(map[string]any{"type": "range", "from": "decade"})
	msg = read()
	assert.Equal("error", msg.Type)
	assert.Equal("invalid date range", msg.Error)

	// Invalid widths are reported.
	send(map[string]any{"type": "resize", "width": 20000})
	msg = read()
	assert.Equal("error", msg.Type)
	assert.Equal("could not handle message", msg.Error)

	// Unknown messages are reported.
	send(map[string]any{"type": "dance"})
	msg = read()
	assert.Equal("error", msg.Type)

	// Resizes only lay out again, they don't fetch the data.
	view.mu.Lock()
	assert.Equal(0, view.fetches)
	view.mu.Unlock()

	// Forced redraws fetch the data again and keep the width.
	send(map[string]any{"type": "redraw"})
	msg = read()
	assert.Equal("svg", msg.Type)
	assert.Equal(`<svg width="300"></svg>`, msg.SVG)

	view.mu.Lock()
	assert.Equal([]conventions.DateRange{conventions.DateRangeOneMonth}, view.dateRanges)
	assert.Equal(1, view.fetches)
	view.mu.Unlock()
}

func TestHandlerInteractionWSErrors(t *testing.T) {
	tests := map[string]struct {
		path    string
		mock    func(m mocks)
		expCode int
	}{
		"An unknown chart should not be found.": {
			path:    "/u/app/ws/pie",
			mock:    func(m mocks) {},
			expCode: 404,
		},

		"An invalid width should fail before upgrading.": {
			path:    "/u/app/ws/history?width=-1",
			mock:    func(m mocks) {},
			expCode: 400,
		},

		"An invalid range should fail before upgrading.": {
			path: "/u/app/ws/bullet?from=decade",
			mock: func(m mocks) {
				expReq := app.NewViewRequest{Chart: "bullet", DateRange: "decade"}
				m.ServiceApp.On("NewView", mock.Anything, expReq).Once().Return(nil, fmt.Errorf("wrong: %w", commonerrors.ErrInvalidRange))
			},
			expCode: 400,
		},

		"An error creating the view should fail before upgrading.": {
			path: "/u/app/ws/history",
			mock: func(m mocks) {
				m.ServiceApp.On("NewView", mock.Anything, mock.Anything).Once().Return(nil, fmt.Errorf("something"))
			},
			expCode: 500,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			m := newMocks(t)
			test.mock(m)

			srv := httptest.NewServer(newTestUIHandler(t, m))
			defer srv.Close()

			wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + test.path
			_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
			require.ErrorIs(err, websocket.ErrBadHandshake)
			require.NotNil(resp)
			assert.Equal(test.expCode, resp.StatusCode)
		})
	}
}
