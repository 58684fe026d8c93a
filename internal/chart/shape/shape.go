// Package shape has the positioned SVG primitives the chart layouts are made of.
// Coordinates are on the SVG user space of the element's parent group.
package shape

import "math"

// Margin is the space around a chart.
type Margin struct {
	Top    float64 `json:"top" yaml:"top"`
	Right  float64 `json:"right" yaml:"right"`
	Bottom float64 `json:"bottom" yaml:"bottom"`
	Left   float64 `json:"left" yaml:"left"`
}

// Rect is a positioned rectangle.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Class  string  `json:"class,omitempty"`
	Fill   string  `json:"fill,omitempty"`
}

// Contains returns true if the point is inside the rect (edges included).
// Negative widths and NaN coordinates never contain anything.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width && y >= r.Y && y <= r.Y+r.Height
}

// Text is a positioned text.
type Text struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	DY     string  `json:"dy,omitempty"`
	Anchor string  `json:"anchor,omitempty"`
	Class  string  `json:"class,omitempty"`
	Text   string  `json:"text"`
}

// Line is a positioned line.
type Line struct {
	X1    float64 `json:"x1"`
	Y1    float64 `json:"y1"`
	X2    float64 `json:"x2"`
	Y2    float64 `json:"y2"`
	Class string  `json:"class,omitempty"`
}

// Tick is an axis tick.
type Tick struct {
	X     float64 `json:"x"`
	Label string  `json:"label"`
}

// Axis is an horizontal axis translated to (X, Y).
type Axis struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Start  float64 `json:"start"`
	End    float64 `json:"end"`
	Orient string  `json:"orient"`
	Ticks  []Tick  `json:"ticks"`
}

const (
	OrientTop    = "top"
	OrientBottom = "bottom"
)

// Triangle is a triangle given by its vertices.
type Triangle [3][2]float64

// Contains returns true if the point is inside the triangle (edges included).
func (t Triangle) Contains(x, y float64) bool {
	sign := func(p, a, b [2]float64) float64 {
		return (p[0]-b[0])*(a[1]-b[1]) - (a[0]-b[0])*(p[1]-b[1])
	}

	p := [2]float64{x, y}
	d1 := sign(p, t[0], t[1])
	d2 := sign(p, t[1], t[2])
	d3 := sign(p, t[2], t[0])

	// NaN coordinates give NaN signs, those are never inside.
	if math.IsNaN(d1) || math.IsNaN(d2) || math.IsNaN(d3) {
		return false
	}

	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0

	return !(hasNeg && hasPos)
}
