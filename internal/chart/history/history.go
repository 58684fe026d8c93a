package history

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/rcreports/uptimechart/internal/chart/dispatch"
	"github.com/rcreports/uptimechart/internal/chart/scale"
	"github.com/rcreports/uptimechart/internal/chart/shape"
	"github.com/rcreports/uptimechart/pkg/common/model"
	utilstime "github.com/rcreports/uptimechart/pkg/common/utils/time"
)

const (
	defaultContainerWidth = 960
	axisTicks             = 10
	dateLayout            = "2006-01-02"

	// Tooltip is placed over the outage bar.
	tooltipOffset = 11

	legendOffset   = 150
	legendSwatch   = 15
	legendTextLeft = 20

	ClassPlanned   = "uptm_planned"
	ClassUnplanned = "uptm_unplanned"

	IconPlanned   = "check"
	IconUnplanned = "cross"

	PlannedFill   = "#f0ad4e"
	UnplannedFill = "#d9534f"
	UpFill        = "#5cb85c"
)

// OutageBar is an outage rectangle.
type OutageBar struct {
	Outage model.Outage `json:"outage"`
	Bar    shape.Rect   `json:"bar"`
	// Hours is the outage duration in hours and Label the tooltip text.
	Hours float64 `json:"hours"`
	Label string  `json:"label"`
	Icon  string  `json:"icon"`
}

// Row is the layout of a service timeline. Its elements are relative to the
// row translation (0, Y).
type Row struct {
	Service  string      `json:"service"`
	Y        float64     `json:"y"`
	Label    shape.Text  `json:"label"`
	Baseline shape.Rect  `json:"baseline"`
	Outages  []OutageBar `json:"outages"`
}

// LegendItem is a legend entry.
type LegendItem struct {
	Swatch shape.Rect `json:"swatch"`
	Text   shape.Text `json:"text"`
}

// Legend is translated to (0, Y) from the chart origin.
type Legend struct {
	Y     float64      `json:"y"`
	Items []LegendItem `json:"items"`
}

// Layout is the history chart layout. Elements other than NoData are relative
// to the chart origin, that is translated to (Margin.Left, Margin.Top).
type Layout struct {
	Width          float64      `json:"width"`
	Height         float64      `json:"height"`
	AvailableWidth float64      `json:"availableWidth"`
	Margin         shape.Margin `json:"margin"`
	Start          time.Time    `json:"start"`
	End            time.Time    `json:"end"`
	// Scale is nil when there is no data.
	Scale         *scale.Time  `json:"-"`
	Heading       shape.Text   `json:"heading"`
	Subheading    shape.Text   `json:"subheading"`
	Legend        Legend       `json:"legend"`
	Axis          shape.Axis   `json:"axis"`
	Grid          []shape.Line `json:"grid"`
	Rows          []Row        `json:"rows"`
	TooltipHeight float64      `json:"tooltipHeight"`
	NoData        *shape.Text  `json:"noData,omitempty"`

	lineSpacing float64
	barHeight   float64
}

// Chart lays out history charts.
type Chart struct {
	cfg Config
}

// New returns a new history Chart.
func New(cfg Config) (*Chart, error) {
	err := cfg.validate()
	if err != nil {
		return nil, fmt.Errorf("invalid history chart configuration: %w", err)
	}

	return &Chart{cfg: cfg}, nil
}

// Config returns a copy of the chart configuration.
func (c *Chart) Config() Config { return c.cfg }

// AvailableWidth returns the width available for the timelines.
func (c *Chart) AvailableWidth(containerWidth float64) float64 {
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

// Layout lays out a row per datum (in input order) on a timeline that goes
// from one year before `now` to `now`.
func (c *Chart) Layout(data []model.HistoryDatum, containerWidth float64, now time.Time) Layout {
	cfg := c.cfg
	availableWidth := c.AvailableWidth(containerWidth)
	end := now
	start := utilstime.YearAgo(now)
	rowHeight := cfg.BarHeight + cfg.LineSpacing

	l := Layout{
		Width:          availableWidth + cfg.Margin.Left + cfg.Margin.Right,
		AvailableWidth: availableWidth,
		Margin:         cfg.Margin,
		Start:          start,
		End:            end,
		TooltipHeight:  cfg.BarHeight + tooltipOffset,
		lineSpacing:    cfg.LineSpacing,
		barHeight:      cfg.BarHeight,
	}

	if len(data) == 0 {
		l.Height = rowHeight + cfg.Margin.Top + cfg.Margin.Bottom
		l.NoData = &shape.Text{
			X:      cfg.Margin.Left + availableWidth/2,
			Y:      cfg.Margin.Top + rowHeight/2,
			DY:     "-.7em",
			Anchor: "middle",
			Class:  "nvd3 nv-noData",
			Text:   cfg.NoData,
		}
		return l
	}

	n := float64(len(data))
	height := rowHeight * n
	l.Height = height + cfg.Margin.Top + cfg.Margin.Bottom

	sc := scale.NewTime(start, end, [2]float64{0, availableWidth})
	l.Scale = &sc

	// Axis and vertical grid.
	l.Axis = shape.Axis{Start: 0, End: availableWidth, Orient: shape.OrientTop}
	gridBottom := cfg.BarHeight*n + cfg.LineSpacing*n - 1 + cfg.PaddingBottom
	for _, t := range sc.Ticks(axisTicks) {
		x := sc.Scale(t)
		l.Axis.Ticks = append(l.Axis.Ticks, shape.Tick{X: x, Label: scale.FormatTimeTick(t)})
		l.Grid = append(l.Grid, shape.Line{X1: x, X2: x, Y1: 0, Y2: gridBottom, Class: "uptm_vert_grid"})
	}

	for i, d := range data {
		row := Row{
			Service: d.Service,
			Y:       rowHeight * float64(i),
			Label: shape.Text{
				X:     cfg.PaddingLeft,
				Y:     cfg.LineSpacing + cfg.BarHeight/2,
				Class: "uptm_ytitle",
				Text:  d.Service,
			},
			Baseline: shape.Rect{
				X:      sc.Scale(start),
				Y:      cfg.LineSpacing,
				Width:  sc.Scale(end),
				Height: cfg.BarHeight,
				Class:  "uptime_line",
				Fill:   UpFill,
			},
		}

		for _, o := range d.Outages {
			row.Outages = append(row.Outages, c.layoutOutage(o, sc))
		}

		l.Rows = append(l.Rows, row)
	}

	// Titles.
	l.Heading = shape.Text{X: cfg.PaddingLeft, Y: cfg.PaddingTopHeading, Class: "uptm_heading", Text: cfg.HeadingText}
	l.Subheading = shape.Text{
		X:     cfg.PaddingLeft,
		Y:     cfg.PaddingTopHeading + 17,
		Class: "uptm_subheading",
		Text:  fmt.Sprintf("from %s to %s", start.UTC().Format(dateLayout), end.UTC().Format(dateLayout)),
	}

	legendX := availableWidth + cfg.Margin.Right - legendOffset
	l.Legend = Legend{
		Y: -12,
		Items: []LegendItem{
			{
				Swatch: shape.Rect{X: legendX, Y: cfg.PaddingTopHeading, Width: legendSwatch, Height: legendSwatch, Class: ClassPlanned, Fill: PlannedFill},
				Text:   shape.Text{X: legendX + legendTextLeft, Y: cfg.PaddingTopHeading + 8.5, Class: "uptm_legend", Text: "Planned"},
			},
			{
				Swatch: shape.Rect{X: legendX, Y: cfg.PaddingTopHeading + 17, Width: legendSwatch, Height: legendSwatch, Class: ClassUnplanned, Fill: UnplannedFill},
				Text:   shape.Text{X: legendX + legendTextLeft, Y: cfg.PaddingTopHeading + 8.5 + 15 + 2, Class: "uptm_legend", Text: "Unplanned"},
			},
		},
	}

	return l
}

func (c *Chart) layoutOutage(o model.Outage, sc scale.Time) OutageBar {
	x0 := sc.ScaleMillis(o.Start)
	width := OutageWidth(x0, sc.ScaleMillis(o.End))

	class, fill, icon := ClassUnplanned, UnplannedFill, IconUnplanned
	if o.Planned {
		class, fill, icon = ClassPlanned, PlannedFill, IconPlanned
	}

	hours := OutageHours(o)
	return OutageBar{
		Outage: o,
		Bar: shape.Rect{
			X:      x0,
			Y:      c.cfg.LineSpacing,
			Width:  width,
			Height: c.cfg.BarHeight,
			Class:  class,
			Fill:   fill,
		},
		Hours: hours,
		Label: o.StartTime().Format(dateLayout) + " " + FormatHours(hours) + "h",
		Icon:  icon,
	}
}

// OutageWidth returns the rendered width of an outage that goes from x0 to x1,
// rounded up and with a minimum of one pixel so it is always visible. NaN
// positions give a NaN width.
func OutageWidth(x0, x1 float64) float64 {
	w := math.Ceil(x1 - x0)
	if w < 1 {
		return 1
	}
	return w
}

// OutageHours returns the absolute duration of the outage in hours.
func OutageHours(o model.Outage) float64 {
	return math.Abs(float64(o.Start-o.End)) / 36e5
}

// FormatHours formats the hours with one decimal when they are more than one
// hour, and with one significant digit otherwise. Rounding is done on the exact
// decimal value of the float with halves rounded up, so 1.15 (stored as
// 1.1499...) gives 1.1.
func FormatHours(h float64) string {
	if math.IsNaN(h) || math.IsInf(h, 0) {
		return strconv.FormatFloat(h, 'f', -1, 64)
	}

	if h > 1 {
		digits, exp := exactDigits(h)
		digits, exp = roundHalfUp(digits, exp, exp+2)
		return digits[:exp+1] + "." + digits[exp+1:exp+2]
	}

	return formatOneSignificant(h)
}

func formatOneSignificant(v float64) string {
	if v == 0 {
		return "0"
	}

	neg := v < 0
	digits, e := exactDigits(math.Abs(v))
	digits, e = roundHalfUp(digits, e, 1)
	d := digits[:1]

	var s string
	switch {
	case e < -6:
		s = fmt.Sprintf("%se%d", d, e)
	case e < 0:
		s = "0." + strings.Repeat("0", -e-1) + d
	default:
		s = d + strings.Repeat("0", e)
	}

	if neg {
		return "-" + s
	}
	return s
}

// exactDigits returns the significant decimal digits of a positive finite
// float without any rounding and the decimal exponent of the first one.
func exactDigits(v float64) (string, int) {
	// 767 digits are enough for the exact expansion of any float64.
	s := strconv.FormatFloat(v, 'e', 767, 64)
	i := strings.IndexByte(s, 'e')
	exp, _ := strconv.Atoi(s[i+1:])
	digits := strings.TrimRight(strings.Replace(s[:i], ".", "", 1), "0")
	if digits == "" {
		digits = "0"
	}

	return digits, exp
}

// roundHalfUp rounds the digits to n significant digits. The returned digits
// have n digits, or n+1 when the rounding carries into a new leading digit
// and the exponent is increased.
func roundHalfUp(digits string, exp, n int) (string, int) {
	if n < 1 {
		n = 1
	}
	if len(digits) <= n {
		return digits + strings.Repeat("0", n-len(digits)), exp
	}

	b := []byte(digits[:n])
	if digits[n] < '5' {
		return string(b), exp
	}

	for i := n - 1; i >= 0; i-- {
		if b[i] < '9' {
			b[i]++
			return string(b), exp
		}
		b[i] = '0'
	}

	return "1" + string(b), exp + 1
}

// HitTest returns the interaction event of the outage at (x, y) in SVG
// coordinates. Outages drawn later are on top.
func (l Layout) HitTest(x, y float64) (dispatch.Event, bool) {
	lx, ly := x-l.Margin.Left, y-l.Margin.Top

	for ri, r := range l.Rows {
		ry := ly - r.Y
		if ry < l.lineSpacing || ry > l.lineSpacing+l.barHeight {
			continue
		}

		for oi := len(r.Outages) - 1; oi >= 0; oi-- {
			o := r.Outages[oi]
			if !o.Bar.Contains(lx, ry) {
				continue
			}

			return dispatch.Event{
				Target: fmt.Sprintf("row/%d/outage/%d", ri, oi),
				Value:  o.Hours,
				Label:  o.Label,
				Color:  o.Bar.Fill,
				Icon:   o.Icon,
				Pos: &dispatch.Point{
					X: l.Margin.Left + o.Bar.X,
					Y: l.Margin.Top + r.Y + o.Bar.Y - tooltipOffset,
				},
			}, true
		}
	}

	return dispatch.Event{}, false
}
