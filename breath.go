package postfx

import (
	"math"
	"time"
)

// DefaultBreathSpeed is the angular speed of Breath in radians per second.
const DefaultBreathSpeed = 2.0

// Breath pulses a per-object bloom strength between 0 and 1.
//
// Hosts feed Strength into the emissive intensity written to the bloom
// source so that glowing objects appear to breathe.
type Breath struct {
	// Speed is the angular speed in radians per second.
	Speed float64
}

// Strength returns (sin(t*Speed)+1)/2 for the elapsed time t.
func (b Breath) Strength(t time.Duration) float32 {
	return float32((math.Sin(t.Seconds()*b.Speed) + 1) * 0.5)
}
