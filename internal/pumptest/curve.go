package pumptest

import (
	"math"

	"pumpversuch/internal/models"
)

// Shape of the seed curve.
const (
	drawdownAmplitude = 1.5 // m reached at the pump-off minute by the log curve
	rampEndMinute     = 30  // the log ramp stops here, the plateau follows
	pinnedTailMinutes = 30  // the last samples inside this window sit at the static level
)

// SynthesizeLevels returns one advisory water level per timestamp.
//
// The curve ramps logarithmically over the first 30 minutes, holds a plateau
// until the pump is switched off and then recovers linearly so that it
// reaches the static level 30 minutes before the end. Values never drop
// below the static level and are rounded to centimetres.
func SynthesizeLevels(times []int, static float64, pumpOffMinute, totalMinutes int) []float64 {
	out := make([]float64, len(times))
	plateau := rampLevel(min(rampEndMinute, pumpOffMinute), static, pumpOffMinute)
	recoveryEnd := totalMinutes - pinnedTailMinutes

	for i, t := range times {
		var v float64
		switch {
		case t <= 0:
			v = static
		case t <= pumpOffMinute && t <= rampEndMinute:
			v = rampLevel(t, static, pumpOffMinute)
		case t <= pumpOffMinute:
			v = plateau
		default:
			v = recoveryLevel(t, static, plateau, pumpOffMinute, recoveryEnd)
		}
		out[i] = settle(v, static)
	}
	return out
}

// DefaultSamples builds the seed table for the given parameters.
func DefaultSamples(p models.Parameters) []models.Sample {
	times := Intervals(p.TotalMinutes(), StepMinutes)
	levels := SynthesizeLevels(times, p.StaticWaterLevel, p.PumpOffMinute(), p.TotalMinutes())
	out := make([]models.Sample, len(times))
	for i, t := range times {
		out[i] = models.Sample{TimeMinutes: t, WaterLevel: levels[i]}
	}
	return out
}

// rampLevel is the log drawdown normalized to reach the amplitude at pump-off.
func rampLevel(t int, static float64, pumpOffMinute int) float64 {
	if t <= 0 || pumpOffMinute <= 0 {
		return static
	}
	return static + drawdownAmplitude*math.Log10(float64(t)+1)/math.Log10(float64(pumpOffMinute)+1)
}

func recoveryLevel(t int, static, plateau float64, pumpOffMinute, recoveryEnd int) float64 {
	// No room between pump-off and the pinned tail: recover immediately.
	if recoveryEnd <= pumpOffMinute || t >= recoveryEnd {
		return static
	}
	frac := float64(t-pumpOffMinute) / float64(recoveryEnd-pumpOffMinute)
	return math.Max(plateau-(plateau-static)*frac, static)
}

// settle rounds to centimetres without crossing the static level, which is
// returned unrounded.
func settle(v, static float64) float64 {
	if v == static {
		return static
	}
	return math.Max(math.Round(v*100)/100, static)
}
