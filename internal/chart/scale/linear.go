package scale

import (
	"math"
	"strconv"
)

// Linear is a continuous linear scale that maps a domain into a range.
type Linear struct {
	domain [2]float64
	rng    [2]float64
	clamp  bool
}

// NewLinear returns a new linear scale.
func NewLinear(domain, rng [2]float64, clamp bool) Linear {
	return Linear{domain: domain, rng: rng, clamp: clamp}
}

func (l Linear) Domain() [2]float64 { return l.domain }
func (l Linear) Range() [2]float64  { return l.rng }
func (l Linear) Clamped() bool      { return l.clamp }

// Scale maps a domain value into the range. A zero span domain maps everything
// to the start of the range. NaN values propagate.
func (l Linear) Scale(v float64) float64 {
	t := normalize(l.domain[0], l.domain[1], v)
	if l.clamp {
		t = clampUnit(t)
	}
	return interpolate(l.rng[0], l.rng[1], t)
}

// Invert maps a range value back into the domain.
func (l Linear) Invert(v float64) float64 {
	t := normalize(l.rng[0], l.rng[1], v)
	if l.clamp {
		t = clampUnit(t)
	}
	return interpolate(l.domain[0], l.domain[1], t)
}

// Ticks returns approximately count human friendly values inside the domain.
func (l Linear) Ticks(count int) []float64 {
	start, stop, step := tickRange(l.domain, count)
	if step == 0 || math.IsNaN(step) || math.IsInf(step, 0) {
		return nil
	}

	return floatRange(start, stop, step)
}

// TickFormat returns the formatter for the ticks returned with the same count,
// it uses the minimum precision that shows the tick step.
func (l Linear) TickFormat(count int) func(float64) string {
	_, _, step := tickRange(l.domain, count)
	precision := 0
	if step > 0 && !math.IsInf(step, 0) {
		precision = int(-math.Floor(math.Log10(step) + .01))
		if precision < 0 {
			precision = 0
		}
	}

	return func(v float64) string {
		return strconv.FormatFloat(v, 'f', precision, 64)
	}
}

// tickRange returns the first tick, the tick stop limit and the step. The step
// is a power of ten multiplied by 1, 2 or 5, the one that gives the closest
// number of ticks to count.
func tickRange(domain [2]float64, count int) (start, stop, step float64) {
	if count <= 0 {
		count = 10
	}

	d0, d1 := domain[0], domain[1]
	if d1 < d0 {
		d0, d1 = d1, d0
	}

	span := d1 - d0
	if span == 0 || math.IsNaN(span) {
		return d0, d1, 0
	}

	m := float64(count)
	step = math.Pow(10, math.Floor(math.Log10(span/m)))
	err := m / span * step
	switch {
	case err <= .15:
		step *= 10
	case err <= .35:
		step *= 5
	case err <= .75:
		step *= 2
	}

	start = math.Ceil(d0/step) * step
	stop = math.Floor(d1/step)*step + step*.5
	return start, stop, step
}

// floatRange returns [start, stop) by step, multiplying by a power of ten
// first so decimal steps don't accumulate float errors.
func floatRange(start, stop, step float64) []float64 {
	k := 1.0
	for math.Mod(math.Abs(step)*k, 1) != 0 && k < 1e15 {
		k *= 10
	}

	start, stop, step = start*k, stop*k, step*k

	var res []float64
	for i := 0; ; i++ {
		v := start + step*float64(i)
		if v >= stop {
			break
		}
		res = append(res, v/k)
	}

	return res
}

func normalize(a, b, v float64) float64 {
	span := b - a
	if span == 0 {
		return 0
	}
	return (v - a) / span
}

func interpolate(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clampUnit(t float64) float64 {
	switch {
	case t < 0:
		return 0
	case t > 1:
		return 1
	}
	return t
}
