package color

import (
	"fmt"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

var category10 = []string{
	"1f77b4", "ff7f0e", "2ca02c", "d62728", "9467bd",
	"8c564b", "e377c2", "7f7f7f", "bcbd22", "17becf",
}

// Palette is an ordered list of colors.
type Palette []drawing.Color

// Category10 returns the ten color categorical palette.
func Category10() Palette {
	p := make(Palette, 0, len(category10))
	for _, h := range category10 {
		p = append(p, drawing.ColorFromHex(h))
	}
	return p
}

// ParsePalette parses `#rrggbb` (or `#rgb`) colors into a palette.
func ParsePalette(hexes []string) (Palette, error) {
	p := make(Palette, 0, len(hexes))
	for _, h := range hexes {
		if !IsHex(h) {
			return nil, fmt.Errorf("%q is not an hex color", h)
		}
		p = append(p, drawing.ColorFromHex(strings.TrimPrefix(h, "#")))
	}
	return p, nil
}

// Hex returns the color in `#rrggbb` format.
func Hex(c drawing.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Hexes returns the palette colors in `#rrggbb` format.
func (p Palette) Hexes() []string {
	res := make([]string, 0, len(p))
	for _, c := range p {
		res = append(res, Hex(c))
	}
	return res
}

// Assignments are the colors assigned to names.
type Assignments map[string]string

// Func returns a color Func backed by the assignments, names without
// assignment get DefaultColor.
func (a Assignments) Func() Func {
	return FromTable(Table(a))
}

// Assign assigns a palette color to each name. Names that had a previous
// assignment keep it, so repeated renders with overlapping names are stable.
// New names get the first palette color not in use, when the palette is
// exhausted colors are reused cyclically.
func Assign(names []string, previous Assignments, palette Palette) Assignments {
	res := Assignments{}
	used := map[string]bool{}

	for _, n := range names {
		if c, ok := previous[n]; ok {
			res[n] = c
			used[c] = true
		}
	}

	hexes := palette.Hexes()
	next := 0
	for _, n := range names {
		if _, ok := res[n]; ok {
			continue
		}

		if len(hexes) == 0 {
			res[n] = DefaultColor
			continue
		}

		c := ""
		for i := 0; i < len(hexes); i++ {
			candidate := hexes[(next+i)%len(hexes)]
			if !used[candidate] {
				c = candidate
				next = (next + i + 1) % len(hexes)
				break
			}
		}

		// All used, cycle.
		if c == "" {
			c = hexes[next]
			next = (next + 1) % len(hexes)
		}

		res[n] = c
		used[c] = true
	}

	return res
}
