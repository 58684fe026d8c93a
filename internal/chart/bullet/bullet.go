package bullet

import (
	"fmt"
	"math"
	"strconv"

	"github.com/rcreports/uptimechart/internal/chart/dispatch"
	"github.com/rcreports/uptimechart/internal/chart/scale"
	"github.com/rcreports/uptimechart/internal/chart/session"
	"github.com/rcreports/uptimechart/internal/chart/shape"
	"github.com/rcreports/uptimechart/pkg/common/model"
)

const (
	defaultContainerWidth = 960
	initialMinimum        = 99.0
	axisTicks             = 10

	// Colors of the non measure elements, the ones set by the bullet stylesheet.
	range0Fill = "#eee"
	range1Fill = "#ddd"
	markerFill = "#fff"
)

// Measure is a cell measure bar.
type Measure struct {
	Cell     model.Cell `json:"cell"`
	Bar      shape.Rect `json:"bar"`
	Title    shape.Text `json:"title"`
	Subtitle shape.Text `json:"subtitle"`
	// TitleY is the vertical translation of the title group.
	TitleY float64 `json:"titleY"`
}

// Marker is the target triangle marker.
type Marker struct {
	Value float64 `json:"value"`
	// X and Y are the marker translation.
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Path string  `json:"path"`
	Fill string  `json:"fill"`
	// Triangle are the vertices in the bars group coordinates.
	Triangle shape.Triangle `json:"-"`
}

// Gauge is the layout of a single bullet (one service).
type Gauge struct {
	Datum model.BulletDatum `json:"datum"`
	Title shape.Text        `json:"title"`
	// X and Y are the translation of the bars group.
	X        float64       `json:"x"`
	Y        float64       `json:"y"`
	Height   float64       `json:"height"`
	Ranges   [2]shape.Rect `json:"ranges"`
	Measures []Measure     `json:"measures"`
	Marker   Marker        `json:"marker"`
	Axis     shape.Axis    `json:"axis"`
}

// Layout is the bullet chart layout.
type Layout struct {
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	UsableWidth float64 `json:"usableWidth"`
	Minimum     float64 `json:"minimum"`
	// Scale is nil when there is no data.
	Scale  *scale.Linear `json:"-"`
	Gauges []Gauge       `json:"gauges"`
	NoData *shape.Text   `json:"noData,omitempty"`

	rangeLabels [2]string
	targetLabel string
}

// Domain returns the scale domain of the layout.
func (l Layout) Domain() session.Domain {
	if l.Scale == nil {
		return session.Domain{}
	}
	return session.Domain(l.Scale.Domain())
}

// Chart lays out bullet charts.
type Chart struct {
	cfg Config
}

// New returns a new bullet Chart.
func New(cfg Config) (*Chart, error) {
	err := cfg.validate()
	if err != nil {
		return nil, fmt.Errorf("invalid bullet chart configuration: %w", err)
	}

	return &Chart{cfg: cfg}, nil
}

// Config returns a copy of the chart configuration.
func (c *Chart) Config() Config { return c.cfg }

// UsableWidth returns the width available for the gauges.
func (c *Chart) UsableWidth(containerWidth float64) float64 {
	w := c.cfg.Width
	if w == 0 {
		w = containerWidth
	}
	if w == 0 {
		w = defaultContainerWidth
	}

	w = w - c.cfg.Margin.Left - c.cfg.Margin.Right
	if w < c.cfg.MinimumWidth {
		return c.cfg.MinimumWidth
	}
	return w
}

// Minimum returns the scale start of the data: one unit under the lowest
// value, rounded down. The search starts at 99 so data with all values near
// 100 still gets a margin. NaN values are ignored.
func Minimum(data []model.BulletDatum) float64 {
	minimum := initialMinimum
	lower := func(v float64) {
		if v < minimum {
			minimum = v
		}
	}

	for _, d := range data {
		lower(d.National)
		lower(d.Target)
		for _, c := range d.Cells {
			lower(c.Uptime)
		}
	}

	return math.Floor(minimum - 1)
}

// Layout lays out one gauge per datum, stacked vertically and sharing the same
// scale. If the session has a locked domain with a lower minimum than the one
// computed from the data, the locked one is used.
func (c *Chart) Layout(data []model.BulletDatum, containerWidth float64, sess *session.Session) Layout {
	cfg := c.cfg
	usableWidth := c.UsableWidth(containerWidth)
	l := Layout{
		Width:       usableWidth + cfg.Margin.Left + cfg.Margin.Right,
		UsableWidth: usableWidth,
		rangeLabels: cfg.RangeLabels,
		targetLabel: cfg.TargetLabel,
	}

	if len(data) == 0 {
		// Sized as if we had 3 bars.
		emptyHeight := (cfg.BulletHeight+cfg.BulletSpacing)*3 + cfg.BulletSpacing
		l.Height = emptyHeight + cfg.Margin.Top + cfg.Margin.Bottom
		l.NoData = &shape.Text{
			X:      cfg.Margin.Left + usableWidth/2,
			Y:      cfg.Margin.Top + emptyHeight/2,
			DY:     "-.7em",
			Anchor: "middle",
			Class:  "nvd3 nv-noData",
			Text:   cfg.NoData,
		}
		return l
	}

	// A locked domain can only lower the minimum, the data must always fit.
	minimum := Minimum(data)
	if sess != nil {
		if d, ok := sess.LockedDomain(); ok {
			minimum = math.Min(minimum, d[0])
		}
	}

	sc := scale.NewLinear([2]float64{minimum, 100}, [2]float64{0, usableWidth}, true)
	l.Minimum = minimum
	l.Scale = &sc

	ticks := sc.Ticks(axisTicks)
	format := sc.TickFormat(axisTicks)
	tickMarks := make([]shape.Tick, 0, len(ticks))
	for _, t := range ticks {
		tickMarks = append(tickMarks, shape.Tick{X: sc.Scale(t), Label: format(t)})
	}

	blockY := 0.0
	for _, d := range data {
		g := c.layoutGauge(d, sc, blockY, tickMarks)
		l.Gauges = append(l.Gauges, g)
		blockY += g.Height + cfg.TitleHeight + cfg.TitlePadding + cfg.Margin.Top + cfg.Margin.Bottom
	}
	l.Height = blockY

	return l
}

func (c *Chart) layoutGauge(d model.BulletDatum, sc scale.Linear, blockY float64, ticks []shape.Tick) Gauge {
	cfg := c.cfg
	minimum := sc.Domain()[0]
	x0 := sc.Scale(minimum)
	height := (cfg.BulletHeight+cfg.BulletSpacing)*float64(len(d.Cells)) + cfg.BulletSpacing

	title := d.Service
	if cfg.Title != "" {
		title = cfg.Title + ": " + d.Service
	}

	g := Gauge{
		Datum: d,
		Title: shape.Text{
			X:     cfg.Margin.Left,
			Y:     blockY + cfg.Margin.Top + cfg.TitleHeight,
			Class: "nv_title",
			Text:  title,
		},
		X:      cfg.Margin.Left,
		Y:      blockY + cfg.TitleHeight + cfg.Margin.Top + cfg.TitlePadding,
		Height: height,
		Ranges: [2]shape.Rect{
			{X: x0, Width: sc.Scale(100) - x0, Height: height, Class: "nv-range nv-range0", Fill: range0Fill},
			{X: x0, Width: sc.Scale(d.National) - x0, Height: height, Class: "nv-range nv-range1", Fill: range1Fill},
		},
		Axis: shape.Axis{
			X:      x0,
			Y:      height,
			Start:  0,
			End:    sc.Range()[1],
			Orient: shape.OrientBottom,
			Ticks:  ticks,
		},
	}

	for i, cell := range d.Cells {
		top := cfg.BulletSpacing + (cfg.BulletHeight+cfg.BulletSpacing)*float64(i)
		g.Measures = append(g.Measures, Measure{
			Cell: cell,
			Bar: shape.Rect{
				X:      x0,
				Y:      top,
				Width:  sc.Scale(cell.Uptime) - x0,
				Height: cfg.BulletHeight,
				Class:  fmt.Sprintf("nv-measure%d", i),
				Fill:   cfg.Color(cell.Name),
			},
			TitleY:   top + cfg.BulletHeight/2,
			Title:    shape.Text{X: -6, Anchor: "end", Class: "nv-title", Text: cell.Name},
			Subtitle: shape.Text{X: -6, DY: "1em", Anchor: "end", Class: "nv-subtitle", Text: cfg.Subtitle},
		})
	}

	h3 := height / 6
	mx, my := sc.Scale(d.Target), height/2
	g.Marker = Marker{
		Value: d.Target,
		X:     mx,
		Y:     my,
		Path:  fmt.Sprintf("M 0 %s L %s %s L %s %s Z", num(h3), num(h3), num(-h3), num(-h3), num(-h3)),
		Fill:  markerFill,
		Triangle: shape.Triangle{
			{mx, my + h3},
			{mx + h3, my - h3},
			{mx - h3, my - h3},
		},
	}

	return g
}

// HitTest returns the interaction event of the element at (x, y) in SVG
// coordinates. The target marker is over the measures, the measures over the
// comparison range and this over the background range.
func (l Layout) HitTest(x, y float64) (dispatch.Event, bool) {
	for gi, g := range l.Gauges {
		lx, ly := x-g.X, y-g.Y
		if ly < 0 || ly > g.Height {
			continue
		}

		if g.Marker.Triangle.Contains(lx, ly) {
			return dispatch.Event{
				Target: fmt.Sprintf("gauge/%d/marker", gi),
				Value:  g.Marker.Value,
				Label:  l.targetLabel,
				Color:  g.Marker.Fill,
				Pos:    &dispatch.Point{X: g.X + g.Marker.X, Y: g.Y + g.Height/3},
			}, true
		}

		for mi := len(g.Measures) - 1; mi >= 0; mi-- {
			m := g.Measures[mi]
			if m.Bar.Contains(lx, ly) {
				return dispatch.Event{
					Target: fmt.Sprintf("gauge/%d/measure/%d", gi, mi),
					Value:  m.Cell.Uptime,
					Label:  m.Cell.Name,
					Color:  m.Bar.Fill,
				}, true
			}
		}

		rangeValues := [2]float64{100, g.Datum.National}
		for ri := len(g.Ranges) - 1; ri >= 0; ri-- {
			r := g.Ranges[ri]
			if r.Contains(lx, ly) {
				return dispatch.Event{
					Target: fmt.Sprintf("gauge/%d/range/%d", gi, ri),
					Value:  rangeValues[ri],
					Label:  l.rangeLabels[ri],
					Color:  r.Fill,
				}, true
			}
		}
	}

	return dispatch.Event{}, false
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
