package dispatch

import "sync"

// HitTester knows what chart element is at a position.
type HitTester interface {
	HitTest(x, y float64) (Event, bool)
}

//go:generate mockery --case underscore --output dispatchmock --outpkg dispatchmock --name HitTester

// Tracker converts raw pointer positions into hover, move and leave events.
type Tracker struct {
	d *Dispatcher

	mu      sync.Mutex
	current *Event
}

// NewTracker returns a new Tracker that emits on the dispatcher.
func NewTracker(d *Dispatcher) *Tracker {
	return &Tracker{d: d}
}

// Move handles a pointer move to (x, y). When the pointer changes of element
// the old one receives a leave and the new one a hover, if it stays on the
// same element it receives a move.
func (t *Tracker) Move(h HitTester, x, y float64) {
	hit, ok := h.HitTest(x, y)

	t.mu.Lock()
	prev := t.current
	if ok {
		if hit.Pos == nil {
			hit.Pos = &Point{X: x, Y: y}
		}
		t.current = &hit
	} else {
		t.current = nil
	}
	t.mu.Unlock()

	switch {
	case !ok && prev == nil:
		return
	case !ok:
		t.d.Emit(EventLeave, *prev)
	case prev == nil:
		t.d.Emit(EventHover, hit)
	case prev.Target != hit.Target:
		t.d.Emit(EventLeave, *prev)
		t.d.Emit(EventHover, hit)
	default:
		t.d.Emit(EventMove, hit)
	}
}

// Leave handles the pointer leaving the chart.
func (t *Tracker) Leave() {
	t.mu.Lock()
	prev := t.current
	t.current = nil
	t.mu.Unlock()

	if prev != nil {
		t.d.Emit(EventLeave, *prev)
	}
}

// Reset forgets the current element without emitting, used after the chart
// layout changes.
func (t *Tracker) Reset() {
	t.mu.Lock()
	t.current = nil
	t.mu.Unlock()
}
