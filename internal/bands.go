package internal

import (
	"math"
)

// Cycle describes the light schedule of the experiment, in minutes.
type Cycle struct {
	DayLength   int // Length of one full light/dark period.
	NightOffset int // Offset into each period at which the lights go off.
}

func defaultCycle() Cycle {
	return Cycle{DayLength: 1440, NightOffset: 720}
}

// Band is a night interval [Lo, Hi) already clipped to a visible domain.
type Band struct {
	Period int
	Lo     float64
	Hi     float64
}

// NightBands returns the night intervals intersecting the domain. Period i
// is dark over [i*day+offset, (i+1)*day). Intersections that come out
// empty are dropped.
func NightBands(domain Domain, cycle Cycle) []Band {
	if cycle.DayLength <= 0 || domain.Hi < domain.Lo {
		return nil
	}
	day := float64(cycle.DayLength)

	var bands []Band
	first := int(math.Floor(domain.Lo / day))
	last := int(math.Floor(domain.Hi / day))
	for i := first; i <= last; i++ {
		start := float64(i)*day + float64(cycle.NightOffset)
		end := float64(i+1) * day

		lo := math.Max(start, domain.Lo)
		hi := math.Min(end, domain.Hi)
		if lo >= hi {
			continue
		}
		bands = append(bands, Band{Period: i, Lo: lo, Hi: hi})
	}
	return bands
}
