package internal

import (
	"fmt"
	"math"
	"math/rand"
)

// NewFakeReadings generates readings for the given number of subjects over
// the given number of days, one every step minutes. Temperatures follow a
// circadian curve, warmer during the dark phase, with smooth noise.
func NewFakeReadings(subjects, days, step int, cycle Cycle) []Reading {
	if step <= 0 {
		step = 30
	}
	var readings []Reading
	for s := 0; s < subjects; s++ {
		subject := fmt.Sprintf("m%d", s+1)
		base := 36.8 + rand.Float64()*0.4

		n := days * cycle.DayLength / step
		noise := getSmoothNoise(n+1, 0.15)
		for i := 0; i <= n; i++ {
			minute := i * step
			readings = append(readings, Reading{
				Subject:     subject,
				Minute:      minute,
				Temperature: round2(base + circadian(minute, cycle) + noise[i]),
			})
		}
	}
	return readings
}

// Peaks half way through the dark phase, about 0.8°C above the light phase trough.
func circadian(minute int, cycle Cycle) float64 {
	day := float64(cycle.DayLength)
	night := float64(cycle.NightOffset)
	peak := night + (day-night)/2
	phase := 2 * math.Pi * (float64(minute) - peak) / day
	return 0.4 * math.Cos(phase)
}

// Returns n random values within [-amplitude, amplitude], with smooth transitions.
func getSmoothNoise(n int, amplitude float64) []float64 {
	values := make([]float64, n)
	for i := range values {
		target := (rand.Float64()*2 - 1) * amplitude
		next := target
		if i > 0 {
			// Smooth the change from one value to the next.
			next = (values[i-1]*3 + target) / 4
		}
		values[i] = next
	}
	return values
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
