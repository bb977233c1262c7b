package internal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtent(t *testing.T) {
	assert.Equal(t, Domain{Lo: -2, Hi: 7}, Extent([]float64{3, -2, 7, 0}))
	assert.Equal(t, Domain{Lo: 5, Hi: 5}, Extent([]float64{5}))
	assert.Equal(t, Domain{}, Extent(nil))
}

func TestDomainValid(t *testing.T) {
	assert.True(t, Domain{Lo: 0, Hi: 1}.Valid())
	assert.False(t, Domain{Lo: 1, Hi: 1}.Valid())
	assert.False(t, Domain{Lo: 2, Hi: 1}.Valid())
	assert.False(t, Domain{Lo: math.NaN(), Hi: 1}.Valid())
	assert.False(t, Domain{Lo: 0, Hi: math.Inf(1)}.Valid())
}

func TestLinearScale(t *testing.T) {
	x := NewLinearScale(Domain{Lo: 0, Hi: 100}, 0, 500)
	assert.InDelta(t, 250, x.Scale(50), 1e-9)
	assert.InDelta(t, 50, x.Invert(250), 1e-9)
	assert.InDelta(t, 600, x.Scale(120), 1e-9, "values outside the domain extrapolate")

	y := NewLinearScale(Domain{Lo: 36, Hi: 39}, 340, 40)
	assert.InDelta(t, 340, y.Scale(36), 1e-9)
	assert.InDelta(t, 40, y.Scale(39), 1e-9)
	assert.InDelta(t, 37.5, y.Invert(190), 1e-9)
}

func TestLinearScaleRoundTrip(t *testing.T) {
	s := NewLinearScale(Domain{Lo: 0, Hi: 2160}, 70, 770)
	for _, px := range []float64{70, 123.4, 400, 769.99} {
		assert.InDelta(t, px, s.Scale(s.Invert(px)), 1e-9)
	}
}

func TestLinearScaleDegenerate(t *testing.T) {
	s := NewLinearScale(Domain{Lo: 42, Hi: 42}, 70, 770)
	assert.Equal(t, 420.0, s.Scale(42))
	assert.Equal(t, 42.0, s.Invert(100))
	assert.Equal(t, []float64{42}, s.Ticks(10))
}

func TestTicks(t *testing.T) {
	minutes := NewLinearScale(Domain{Lo: 0, Hi: 2160}, 70, 770)
	assert.Equal(t, []float64{0, 200, 400, 600, 800, 1000, 1200, 1400, 1600, 1800, 2000}, minutes.Ticks(10))

	temps := NewLinearScale(Domain{Lo: 36.5, Hi: 38.5}, 340, 40)
	assert.Equal(t, []float64{36.5, 37, 37.5, 38, 38.5}, temps.Ticks(5))

	small := NewLinearScale(Domain{Lo: -0.3, Hi: 0.3}, 0, 100)
	assert.Equal(t, []float64{-0.3, -0.2, -0.1, 0, 0.1, 0.2, 0.3}, small.Ticks(6))

	assert.Nil(t, minutes.Ticks(0))
}
