package dispatch

import (
	"sync"
)

// EventType is the type of an interaction event.
type EventType string

const (
	EventHover EventType = "hover"
	EventMove  EventType = "move"
	EventLeave EventType = "leave"
)

// Point is a position in chart (SVG user space) coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Event is the payload of an interaction event. Target identifies the chart
// element that generated it.
type Event struct {
	Type   EventType `json:"type"`
	Target string    `json:"target"`
	Value  float64   `json:"value"`
	Label  string    `json:"label"`
	Color  string    `json:"color"`
	Pos    *Point    `json:"pos,omitempty"`
	Icon   string    `json:"icon,omitempty"`
}

// Handler handles interaction events.
type Handler func(Event)

type namedHandler struct {
	name string
	h    Handler
}

// Dispatcher is a typed publish/subscribe hub for interaction events.
// Handlers are registered by name, registering a name again replaces the
// previous handler in the same position. Handlers run synchronously in
// registration order.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[EventType][]namedHandler
}

// NewDispatcher returns a new Dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		handlers: map[EventType][]namedHandler{},
	}
}

// On registers a named handler for an event type. A nil handler removes the
// named handler.
func (d *Dispatcher) On(t EventType, name string, h Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()

	hs := d.handlers[t]
	for i, nh := range hs {
		if nh.name != name {
			continue
		}

		if h == nil {
			d.handlers[t] = append(hs[:i:i], hs[i+1:]...)
			return
		}
		hs[i].h = h
		return
	}

	if h == nil {
		return
	}
	d.handlers[t] = append(hs, namedHandler{name: name, h: h})
}

// Emit publishes the event to all the handlers of the type.
func (d *Dispatcher) Emit(t EventType, e Event) {
	e.Type = t

	d.mu.RLock()
	hs := make([]namedHandler, len(d.handlers[t]))
	copy(hs, d.handlers[t])
	d.mu.RUnlock()

	for _, nh := range hs {
		nh.h(e)
	}
}

// Handlers returns the number of handlers registered for the type.
func (d *Dispatcher) Handlers(t EventType) int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.handlers[t])
}
