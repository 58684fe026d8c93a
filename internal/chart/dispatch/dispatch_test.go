package dispatch_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcreports/uptimechart/internal/chart/dispatch"
	"github.com/rcreports/uptimechart/internal/chart/dispatch/dispatchmock"
)

func TestDispatcherNamedHandlers(t *testing.T) {
	tests := map[string]struct {
		register func(d *dispatch.Dispatcher, calls *[]string)
		expCalls []string
	}{
		"Handlers should be called in registration order.": {
			register: func(d *dispatch.Dispatcher, calls *[]string) {
				d.On(dispatch.EventHover, "a", func(dispatch.Event) { *calls = append(*calls, "a") })
				d.On(dispatch.EventHover, "b", func(dispatch.Event) { *calls = append(*calls, "b") })
			},
			expCalls: []string{"a", "b"},
		},

		"Registering the same name should replace the handler in place.": {
			register: func(d *dispatch.Dispatcher, calls *[]string) {
				d.On(dispatch.EventHover, "a", func(dispatch.Event) { *calls = append(*calls, "a") })
				d.On(dispatch.EventHover, "b", func(dispatch.Event) { *calls = append(*calls, "b") })
				d.On(dispatch.EventHover, "a", func(dispatch.Event) { *calls = append(*calls, "a2") })
			},
			expCalls: []string{"a2", "b"},
		},

		"A nil handler should remove the named handler.": {
			register: func(d *dispatch.Dispatcher, calls *[]string) {
				d.On(dispatch.EventHover, "a", func(dispatch.Event) { *calls = append(*calls, "a") })
				d.On(dispatch.EventHover, "b", func(dispatch.Event) { *calls = append(*calls, "b") })
				d.On(dispatch.EventHover, "a", nil)
			},
			expCalls: []string{"b"},
		},

		"Handlers of other types should not be called.": {
			register: func(d *dispatch.Dispatcher, calls *[]string) {
				d.On(dispatch.EventLeave, "a", func(dispatch.Event) { *calls = append(*calls, "a") })
			},
			expCalls: []string{},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)

			d := dispatch.NewDispatcher()
			calls := []string{}
			test.register(d, &calls)

			d.Emit(dispatch.EventHover, dispatch.Event{Label: "NP"})

			assert.Equal(test.expCalls, calls)
		})
	}
}

func TestDispatcherEmitSetsType(t *testing.T) {
	d := dispatch.NewDispatcher()

	var got dispatch.Event
	d.On(dispatch.EventMove, "test", func(e dispatch.Event) { got = e })
	d.Emit(dispatch.EventMove, dispatch.Event{Value: 98.05, Label: "NP", Color: "blue"})

	assert.Equal(t, dispatch.Event{Type: dispatch.EventMove, Value: 98.05, Label: "NP", Color: "blue"}, got)
}

func TestTooltip(t *testing.T) {
	np := dispatch.Event{Target: "m0", Value: 98.05, Label: "NP", Color: "blue", Pos: &dispatch.Point{X: 10, Y: 20}}
	qh2 := dispatch.Event{Target: "m1", Value: 99.05, Label: "QH2", Color: "chocolate"}

	tests := map[string]struct {
		cfg      dispatch.TooltipConfig
		events   func(d *dispatch.Dispatcher)
		expState dispatch.TooltipState
	}{
		"Initially the tooltip should be hidden.": {
			events:   func(d *dispatch.Dispatcher) {},
			expState: dispatch.TooltipState{},
		},

		"A hover should show the tooltip.": {
			cfg: dispatch.TooltipConfig{ShowDuration: 200 * time.Millisecond},
			events: func(d *dispatch.Dispatcher) {
				d.Emit(dispatch.EventHover, np)
			},
			expState: dispatch.TooltipState{
				Visible:    true,
				Event:      dispatch.Event{Type: dispatch.EventHover, Target: "m0", Value: 98.05, Label: "NP", Color: "blue", Pos: &dispatch.Point{X: 10, Y: 20}},
				Transition: 200 * time.Millisecond,
			},
		},

		"A leave should hide the tooltip.": {
			cfg: dispatch.TooltipConfig{ShowDuration: 200 * time.Millisecond, HideDuration: 500 * time.Millisecond},
			events: func(d *dispatch.Dispatcher) {
				d.Emit(dispatch.EventHover, np)
				d.Emit(dispatch.EventLeave, np)
			},
			expState: dispatch.TooltipState{
				Visible:    false,
				Event:      dispatch.Event{Type: dispatch.EventLeave, Target: "m0", Value: 98.05, Label: "NP", Color: "blue", Pos: &dispatch.Point{X: 10, Y: 20}},
				Transition: 500 * time.Millisecond,
			},
		},

		"A move without position should keep the last position.": {
			events: func(d *dispatch.Dispatcher) {
				d.Emit(dispatch.EventHover, np)
				d.Emit(dispatch.EventMove, dispatch.Event{Target: "m0", Value: 98.05, Label: "NP", Color: "blue"})
			},
			expState: dispatch.TooltipState{
				Visible: true,
				Event:   dispatch.Event{Type: dispatch.EventMove, Target: "m0", Value: 98.05, Label: "NP", Color: "blue", Pos: &dispatch.Point{X: 10, Y: 20}},
			},
		},

		"Two hovers without leave should reflect the latest.": {
			events: func(d *dispatch.Dispatcher) {
				d.Emit(dispatch.EventHover, np)
				d.Emit(dispatch.EventHover, qh2)
			},
			expState: dispatch.TooltipState{
				Visible: true,
				Event:   dispatch.Event{Type: dispatch.EventHover, Target: "m1", Value: 99.05, Label: "QH2", Color: "chocolate"},
			},
		},

		"A leave after a leave should keep it hidden.": {
			events: func(d *dispatch.Dispatcher) {
				d.Emit(dispatch.EventLeave, np)
				d.Emit(dispatch.EventLeave, qh2)
			},
			expState: dispatch.TooltipState{
				Visible: false,
				Event:   dispatch.Event{Type: dispatch.EventLeave, Target: "m1", Value: 99.05, Label: "QH2", Color: "chocolate"},
			},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)

			d := dispatch.NewDispatcher()
			tt := dispatch.NewTooltip(test.cfg)
			tt.Subscribe(d, "tooltip")

			test.events(d)

			assert.Equal(test.expState, tt.State())
		})
	}
}

func TestTooltipOnChange(t *testing.T) {
	d := dispatch.NewDispatcher()
	tt := dispatch.NewTooltip(dispatch.TooltipConfig{})
	tt.Subscribe(d, "tooltip")

	var got []bool
	tt.OnChange(func(s dispatch.TooltipState) { got = append(got, s.Visible) })

	d.Emit(dispatch.EventHover, dispatch.Event{})
	d.Emit(dispatch.EventMove, dispatch.Event{})
	d.Emit(dispatch.EventLeave, dispatch.Event{})

	assert.Equal(t, []bool{true, true, false}, got)
}

func TestTracker(t *testing.T) {
	np := dispatch.Event{Target: "m0", Label: "NP"}
	qh2 := dispatch.Event{Target: "m1", Label: "QH2"}

	tests := map[string]struct {
		mock      func(m *dispatchmock.HitTester)
		moves     [][2]float64
		leave     bool
		expEvents []string
	}{
		"Moving outside any element should not emit.": {
			mock: func(m *dispatchmock.HitTester) {
				m.On("HitTest", 1.0, 1.0).Once().Return(dispatch.Event{}, false)
			},
			moves:     [][2]float64{{1, 1}},
			expEvents: []string{},
		},

		"Entering an element should emit a hover.": {
			mock: func(m *dispatchmock.HitTester) {
				m.On("HitTest", 1.0, 1.0).Once().Return(np, true)
			},
			moves:     [][2]float64{{1, 1}},
			expEvents: []string{"hover:NP"},
		},

		"Moving inside the same element should emit moves.": {
			mock: func(m *dispatchmock.HitTester) {
				m.On("HitTest", 1.0, 1.0).Once().Return(np, true)
				m.On("HitTest", 2.0, 1.0).Once().Return(np, true)
			},
			moves:     [][2]float64{{1, 1}, {2, 1}},
			expEvents: []string{"hover:NP", "move:NP"},
		},

		"Changing of element should emit a leave and a hover.": {
			mock: func(m *dispatchmock.HitTester) {
				m.On("HitTest", 1.0, 1.0).Once().Return(np, true)
				m.On("HitTest", 1.0, 30.0).Once().Return(qh2, true)
			},
			moves:     [][2]float64{{1, 1}, {1, 30}},
			expEvents: []string{"hover:NP", "leave:NP", "hover:QH2"},
		},

		"Moving out of an element should emit a leave.": {
			mock: func(m *dispatchmock.HitTester) {
				m.On("HitTest", 1.0, 1.0).Once().Return(np, true)
				m.On("HitTest", 900.0, 1.0).Once().Return(dispatch.Event{}, false)
			},
			moves:     [][2]float64{{1, 1}, {900, 1}},
			expEvents: []string{"hover:NP", "leave:NP"},
		},

		"Leaving the chart should emit a leave of the current element.": {
			mock: func(m *dispatchmock.HitTester) {
				m.On("HitTest", 1.0, 1.0).Once().Return(np, true)
			},
			moves:     [][2]float64{{1, 1}},
			leave:     true,
			expEvents: []string{"hover:NP", "leave:NP"},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			m := dispatchmock.NewHitTester(t)
			test.mock(m)

			d := dispatch.NewDispatcher()
			events := []string{}
			for _, et := range []dispatch.EventType{dispatch.EventHover, dispatch.EventMove, dispatch.EventLeave} {
				d.On(et, "test", func(e dispatch.Event) {
					require.NotNil(e.Pos)
					events = append(events, string(e.Type)+":"+e.Label)
				})
			}

			tr := dispatch.NewTracker(d)
			for _, mv := range test.moves {
				tr.Move(m, mv[0], mv[1])
			}
			if test.leave {
				tr.Leave()
			}

			assert.Equal(test.expEvents, events)
		})
	}
}

func TestTrackerUsesPointerPositionWhenMissing(t *testing.T) {
	m := dispatchmock.NewHitTester(t)
	m.On("HitTest", 3.0, 4.0).Once().Return(dispatch.Event{Target: "m0"}, true)
	m.On("HitTest", 5.0, 4.0).Once().Return(dispatch.Event{Target: "m0", Pos: &dispatch.Point{X: 99, Y: 5}}, true)

	d := dispatch.NewDispatcher()
	var got []dispatch.Point
	d.On(dispatch.EventHover, "test", func(e dispatch.Event) { got = append(got, *e.Pos) })
	d.On(dispatch.EventMove, "test", func(e dispatch.Event) { got = append(got, *e.Pos) })

	tr := dispatch.NewTracker(d)
	tr.Move(m, 3, 4)
	tr.Move(m, 5, 4)

	assert.Equal(t, []dispatch.Point{{X: 3, Y: 4}, {X: 99, Y: 5}}, got)
}
