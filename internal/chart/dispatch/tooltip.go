package dispatch

import (
	"sync"
	"time"
)

// TooltipConfig is the tooltip configuration.
type TooltipConfig struct {
	// ShowDuration is the show transition duration, zero is immediate.
	ShowDuration time.Duration
	// HideDuration is the hide transition duration, zero is immediate.
	HideDuration time.Duration
}

// TooltipState is the tooltip rendering state.
type TooltipState struct {
	Visible    bool          `json:"visible"`
	Event      Event         `json:"event"`
	Transition time.Duration `json:"-"`
}

// Tooltip is the interaction events consumer that tracks what a tooltip
// should show. It doesn't validate events, it always reflects the latest one.
type Tooltip struct {
	cfg TooltipConfig

	mu        sync.Mutex
	state     TooltipState
	listeners []func(TooltipState)
}

// NewTooltip returns a new hidden tooltip.
func NewTooltip(cfg TooltipConfig) *Tooltip {
	return &Tooltip{cfg: cfg}
}

// Subscribe subscribes the tooltip to the dispatcher events using `name`.
func (t *Tooltip) Subscribe(d *Dispatcher, name string) {
	d.On(EventHover, name, t.hover)
	d.On(EventMove, name, t.move)
	d.On(EventLeave, name, t.leave)
}

// OnChange registers a listener that will be called with the new state every
// time the tooltip state changes.
func (t *Tooltip) OnChange(f func(TooltipState)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.listeners = append(t.listeners, f)
}

// State returns the current tooltip state.
func (t *Tooltip) State() TooltipState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

func (t *Tooltip) hover(e Event) {
	t.set(func(s *TooltipState) {
		s.Visible = true
		s.Event = e
		s.Transition = t.cfg.ShowDuration
	})
}

func (t *Tooltip) move(e Event) {
	t.set(func(s *TooltipState) {
		// Moves don't bring the position on all cases, keep the last one.
		if e.Pos == nil {
			e.Pos = s.Event.Pos
		}
		s.Event = e
		s.Transition = 0
	})
}

func (t *Tooltip) leave(e Event) {
	t.set(func(s *TooltipState) {
		s.Visible = false
		s.Event = e
		s.Transition = t.cfg.HideDuration
	})
}

func (t *Tooltip) set(f func(s *TooltipState)) {
	t.mu.Lock()
	f(&t.state)
	state := t.state
	listeners := make([]func(TooltipState), len(t.listeners))
	copy(listeners, t.listeners)
	t.mu.Unlock()

	for _, l := range listeners {
		l(state)
	}
}
