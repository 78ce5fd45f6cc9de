package pumptest

import (
	"pumpversuch/internal/models"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// FlowRateAt reports the pump rate for a sample time. The sample at the
// pump-off minute already reads 0.
func FlowRateAt(t int, p models.Parameters) float64 {
	if t < p.PumpOffMinute() {
		return p.TargetFlowRate
	}
	return 0
}

// Derive computes flow rate and drawdown for every sample, in table order.
func Derive(samples []models.Sample, p models.Parameters) []models.DerivedPoint {
	out := make([]models.DerivedPoint, len(samples))
	for i, s := range samples {
		out[i] = models.DerivedPoint{
			TimeMinutes: s.TimeMinutes,
			FlowRate:    FlowRateAt(s.TimeMinutes, p),
			Drawdown:    s.WaterLevel - p.StaticWaterLevel,
		}
	}
	return out
}

// Deepest returns the first sample holding the maximum water level.
func Deepest(samples []models.Sample) (models.Extremum, bool) {
	if len(samples) == 0 {
		return models.Extremum{}, false
	}
	// floats.MaxIdx returns the first index on ties.
	i := floats.MaxIdx(levels(samples))
	return models.Extremum{
		Index:       i,
		TimeMinutes: samples[i].TimeMinutes,
		WaterLevel:  samples[i].WaterLevel,
	}, true
}

// Summarize computes the aggregate figures shown beside the charts.
func Summarize(samples []models.Sample, p models.Parameters) models.Summary {
	var sum models.Summary
	if len(samples) == 0 {
		return sum
	}

	drawdowns := make([]float64, len(samples))
	var pumping []float64
	for i, s := range samples {
		drawdowns[i] = s.WaterLevel - p.StaticWaterLevel
		if s.TimeMinutes < p.PumpOffMinute() {
			pumping = append(pumping, s.WaterLevel)
		} else {
			sum.RecoverySamples++
		}
	}
	sum.PumpingSamples = len(pumping)
	sum.MaxDrawdown = floats.Max(drawdowns)
	sum.ResidualDrawdown = drawdowns[len(drawdowns)-1]

	if len(pumping) > 0 {
		sum.MeanPumpingLevel = stat.Mean(pumping, nil)
	}
	if sum.MaxDrawdown > 0 {
		sum.SpecificCapacity = p.TargetFlowRate / sum.MaxDrawdown
		sum.RecoveryPercent = (sum.MaxDrawdown - sum.ResidualDrawdown) / sum.MaxDrawdown * 100
	}
	return sum
}

// Analyze bundles Derive, Deepest and Summarize.
func Analyze(samples []models.Sample, p models.Parameters) models.Analysis {
	a := models.Analysis{
		Points:  Derive(samples, p),
		Summary: Summarize(samples, p),
	}
	if ext, ok := Deepest(samples); ok {
		a.Deepest = &ext
	}
	return a
}

func levels(samples []models.Sample) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = s.WaterLevel
	}
	return out
}
