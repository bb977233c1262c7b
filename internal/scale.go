package internal

import (
	"math"
)

// Domain is a closed interval of data values.
type Domain struct {
	Lo float64
	Hi float64
}

// Extent returns the domain spanning the smallest and largest of values.
func Extent(values []float64) Domain {
	if len(values) == 0 {
		return Domain{}
	}
	d := Domain{Lo: values[0], Hi: values[0]}
	for _, v := range values[1:] {
		d.Lo = math.Min(d.Lo, v)
		d.Hi = math.Max(d.Hi, v)
	}
	return d
}

func (d Domain) Len() float64 {
	return d.Hi - d.Lo
}

// Contains reports whether v lies within the domain, bounds included.
func (d Domain) Contains(v float64) bool {
	return v >= d.Lo && v <= d.Hi
}

// Valid reports whether the domain can be used as a visible window.
func (d Domain) Valid() bool {
	if math.IsNaN(d.Lo) || math.IsNaN(d.Hi) || math.IsInf(d.Lo, 0) || math.IsInf(d.Hi, 0) {
		return false
	}
	return d.Lo < d.Hi
}

// LinearScale maps a data domain onto a pixel range. The range may be
// inverted (From > To), which is how the y axis grows upward.
type LinearScale struct {
	domain Domain
	from   float64
	to     float64
}

func NewLinearScale(domain Domain, from, to float64) LinearScale {
	return LinearScale{domain: domain, from: from, to: to}
}

func (s LinearScale) Domain() Domain {
	return s.domain
}

// Range returns the pixel bounds the domain maps onto.
func (s LinearScale) Range() (float64, float64) {
	return s.from, s.to
}

// Scale converts a data value to a pixel coordinate. A degenerate domain
// maps every value to the middle of the range.
func (s LinearScale) Scale(v float64) float64 {
	if s.domain.Len() == 0 {
		return (s.from + s.to) / 2
	}
	t := (v - s.domain.Lo) / s.domain.Len()
	return s.from + t*(s.to-s.from)
}

// Invert converts a pixel coordinate back to a data value.
func (s LinearScale) Invert(px float64) float64 {
	if s.to == s.from || s.domain.Len() == 0 {
		return s.domain.Lo
	}
	t := (px - s.from) / (s.to - s.from)
	return s.domain.Lo + t*s.domain.Len()
}

// Ticks returns roughly count round values inside the domain, spaced by
// 1, 2 or 5 times a power of ten.
func (s LinearScale) Ticks(count int) []float64 {
	if count <= 0 {
		return nil
	}
	if s.domain.Len() == 0 {
		return []float64{s.domain.Lo}
	}
	step := tickStep(s.domain.Len(), count)
	// Work in whole multiples of step so -0.3/0.1 lands on -3, not -2.9999.
	start := math.Ceil(s.domain.Lo/step - 1e-9)
	stop := math.Floor(s.domain.Hi/step + 1e-9)
	var ticks []float64
	for i := start; i <= stop; i++ {
		ticks = append(ticks, roundTo(i*step, step))
	}
	return ticks
}

func tickStep(span float64, count int) float64 {
	raw := span / float64(count)
	power := math.Pow(10, math.Floor(math.Log10(raw)))
	switch m := raw / power; {
	case m >= 7.071:
		return 10 * power
	case m >= 3.162:
		return 5 * power
	case m >= 1.414:
		return 2 * power
	default:
		return power
	}
}

func roundTo(v, step float64) float64 {
	digits := math.Max(0, -math.Floor(math.Log10(step)))
	p := math.Pow(10, digits)
	r := math.Round(v*p) / p
	if r == 0 {
		return 0
	}
	return r
}
