package models

// Sample is one row of the measurement table.
type Sample struct {
	TimeMinutes int     `json:"time_min"`
	WaterLevel  float64 `json:"water_level_m"` // m below ground
}

// DerivedPoint carries the values computed per sample.
type DerivedPoint struct {
	TimeMinutes int     `json:"time_min"`
	FlowRate    float64 `json:"flow_rate"` // m³/h, target rate or 0
	Drawdown    float64 `json:"drawdown"`  // level - static level
}

// Extremum is the deepest sample of a table.
type Extremum struct {
	Index       int     `json:"index"`
	TimeMinutes int     `json:"time_min"`
	WaterLevel  float64 `json:"water_level_m"`
}

// Summary holds aggregate figures of a protocol.
type Summary struct {
	MaxDrawdown      float64 `json:"max_drawdown"`
	SpecificCapacity float64 `json:"specific_capacity"` // m³/h per m of drawdown
	MeanPumpingLevel float64 `json:"mean_pumping_level"`
	ResidualDrawdown float64 `json:"residual_drawdown"`
	RecoveryPercent  float64 `json:"recovery_percent"`
	PumpingSamples   int     `json:"pumping_samples"`
	RecoverySamples  int     `json:"recovery_samples"`
}

// Analysis bundles everything derived from a session's table.
type Analysis struct {
	Points  []DerivedPoint `json:"points"`
	Deepest *Extremum      `json:"deepest,omitempty"`
	Summary Summary        `json:"summary"`
}
