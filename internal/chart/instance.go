package chart

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rcreports/uptimechart/internal/chart/dispatch"
)

// ErrNotBound is returned when an instance is updated before binding data.
var ErrNotBound = errors.New("chart instance has no bound data")

// LayoutFunc lays out data for a container width.
type LayoutFunc[D any, L dispatch.HitTester] func(data D, containerWidth float64) L

// RedrawFunc is called when a redraw is requested.
type RedrawFunc func(ctx context.Context) error

// Instance is a chart bound to a container (its width) and a dataset. It keeps
// the latest layout so pointer events can be hit tested against it, and has
// its own dispatcher with a subscribed tooltip.
type Instance[D any, L dispatch.HitTester] struct {
	layout LayoutFunc[D, L]

	mu      sync.Mutex
	width   float64
	data    D
	bound   bool
	current L

	dispatcher *dispatch.Dispatcher
	tooltip    *dispatch.Tooltip
	tracker    *dispatch.Tracker

	redrawMu  sync.Mutex
	redrawers []RedrawFunc
}

// NewInstance returns a new chart instance.
func NewInstance[D any, L dispatch.HitTester](f LayoutFunc[D, L], containerWidth float64, tooltipCfg dispatch.TooltipConfig) *Instance[D, L] {
	d := dispatch.NewDispatcher()
	t := dispatch.NewTooltip(tooltipCfg)
	t.Subscribe(d, "tooltip")

	return &Instance[D, L]{
		layout:     f,
		width:      containerWidth,
		dispatcher: d,
		tooltip:    t,
		tracker:    dispatch.NewTracker(d),
	}
}

// Render binds the data to the instance and lays it out.
func (i *Instance[D, L]) Render(data D) L {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.data = data
	i.bound = true
	return i.relayout()
}

// Update lays out again the bound data. Calling it repeatedly without changes
// gives the same layout.
func (i *Instance[D, L]) Update() (L, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if !i.bound {
		var zero L
		return zero, ErrNotBound
	}

	return i.relayout(), nil
}

// Resize changes the container width and lays out again the bound data, if any.
func (i *Instance[D, L]) Resize(containerWidth float64) (L, error) {
	i.mu.Lock()
	i.width = containerWidth
	i.mu.Unlock()

	return i.Update()
}

// Layout returns the latest layout.
func (i *Instance[D, L]) Layout() L {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.current
}

func (i *Instance[D, L]) relayout() L {
	i.current = i.layout(i.data, i.width)
	i.tracker.Reset()
	return i.current
}

// Pointer handles a pointer move at (x, y) hit testing the current layout.
func (i *Instance[D, L]) Pointer(x, y float64) {
	i.tracker.Move(i.Layout(), x, y)
}

// PointerLeave handles the pointer leaving the chart.
func (i *Instance[D, L]) PointerLeave() {
	i.tracker.Leave()
}

// Dispatcher returns the instance interaction dispatcher.
func (i *Instance[D, L]) Dispatcher() *dispatch.Dispatcher { return i.dispatcher }

// Tooltip returns the instance tooltip.
func (i *Instance[D, L]) Tooltip() *dispatch.Tooltip { return i.tooltip }

// OnRedrawRequested registers a callback that will be called on redraw requests.
func (i *Instance[D, L]) OnRedrawRequested(f RedrawFunc) {
	i.redrawMu.Lock()
	defer i.redrawMu.Unlock()
	i.redrawers = append(i.redrawers, f)
}

// RequestRedraw calls synchronously all the redraw callbacks in registration
// order. All of them are called even if some fail.
func (i *Instance[D, L]) RequestRedraw(ctx context.Context) error {
	i.redrawMu.Lock()
	rs := make([]RedrawFunc, len(i.redrawers))
	copy(rs, i.redrawers)
	i.redrawMu.Unlock()

	var errs []error
	for idx, r := range rs {
		err := r(ctx)
		if err != nil {
			errs = append(errs, fmt.Errorf("redraw callback %d failed: %w", idx, err))
		}
	}

	return errors.Join(errs...)
}
