package thicket

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Clamp returns the value f clamped to the range [low, high].
func Clamp[T constraints.Ordered](f, low, high T) T {
	if f < low {
		return low
	}
	if f > high {
		return high
	}
	return f
}

// round1 rounds v to one decimal place, halves rounding toward +Inf.
func round1(v float64) float64 {
	r := math.Floor(v*10+0.5) / 10
	if r == 0 {
		return 0 // normalize -0
	}
	return r
}

// velocity is a single rounded, optionally clamped velocity component. It is
// shared by Platformer and Particle so both follow the same write rules.
type velocity struct {
	v      float64
	max    float64
	hasMax bool
}

// set rounds value to one decimal, then clamps it into [-max, max] when a
// max is set. A later SetMax does not touch the stored value.
func (c *velocity) set(value float64) {
	value = round1(value)
	if c.hasMax {
		value = Clamp(value, -c.max, c.max)
	}
	c.v = value
}

// setMax installs the symmetric bound. Negative values are treated as their magnitude.
func (c *velocity) setMax(max float64) {
	c.max = math.Abs(max)
	c.hasMax = true
}

func (c *velocity) clearMax() {
	c.max = 0
	c.hasMax = false
}

// friction scales the velocity, snapping magnitudes below restThreshold to zero.
func (c *velocity) friction(f float64) {
	next := c.v * f
	if math.Abs(next) < restThreshold {
		c.v = 0
		return
	}
	c.set(next)
}

// restThreshold is the velocity magnitude below which friction stops an object.
const restThreshold = 0.3
