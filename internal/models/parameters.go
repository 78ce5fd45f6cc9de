package models

import (
	"errors"
	"fmt"
	"math"
)

// Defaults used for a fresh session.
const (
	DefaultProjectName        = "BV Müller - Brunnen 1"
	DefaultStaticWaterLevel   = 2.10 // m below ground
	DefaultTargetFlowRate     = 5.0  // m³/h
	DefaultPumpDurationHours  = 8
	DefaultTotalDurationHours = 9
)

// ErrInvalidParameters is returned by Validate for any rejected field.
var ErrInvalidParameters = errors.New("invalid parameters")

// Parameters are the pump test settings entered in the form.
type Parameters struct {
	StaticWaterLevel   float64 `json:"static_water_level"`   // m
	TargetFlowRate     float64 `json:"target_flow_rate"`     // m³/h
	PumpDurationHours  int     `json:"pump_duration_hours"`  // h, >= 1
	TotalDurationHours int     `json:"total_duration_hours"` // h, >= pump
}

// DefaultParameters returns the form defaults.
func DefaultParameters() Parameters {
	return Parameters{
		StaticWaterLevel:   DefaultStaticWaterLevel,
		TargetFlowRate:     DefaultTargetFlowRate,
		PumpDurationHours:  DefaultPumpDurationHours,
		TotalDurationHours: DefaultTotalDurationHours,
	}
}

// PumpOffMinute is the elapsed minute at which the pump is switched off.
func (p Parameters) PumpOffMinute() int { return p.PumpDurationHours * 60 }

// TotalMinutes is the length of the whole protocol in minutes.
func (p Parameters) TotalMinutes() int { return p.TotalDurationHours * 60 }

// Validate enforces the same bounds the input widgets do.
func (p Parameters) Validate() error {
	switch {
	case math.IsNaN(p.StaticWaterLevel) || math.IsInf(p.StaticWaterLevel, 0):
		return fmt.Errorf("%w: static_water_level must be a finite number", ErrInvalidParameters)
	case math.IsNaN(p.TargetFlowRate) || math.IsInf(p.TargetFlowRate, 0):
		return fmt.Errorf("%w: target_flow_rate must be a finite number", ErrInvalidParameters)
	case p.TargetFlowRate < 0:
		return fmt.Errorf("%w: target_flow_rate must not be negative", ErrInvalidParameters)
	case p.PumpDurationHours < 1:
		return fmt.Errorf("%w: pump_duration_hours must be >= 1, got %d", ErrInvalidParameters, p.PumpDurationHours)
	case p.TotalDurationHours < p.PumpDurationHours:
		return fmt.Errorf("%w: total_duration_hours %d is below pump_duration_hours %d",
			ErrInvalidParameters, p.TotalDurationHours, p.PumpDurationHours)
	}
	return nil
}

// RegeneratesTable reports whether switching from p to next invalidates the
// measurement table. Only the flow rate may change without a new table.
func (p Parameters) RegeneratesTable(next Parameters) bool {
	return p.StaticWaterLevel != next.StaticWaterLevel ||
		p.PumpDurationHours != next.PumpDurationHours ||
		p.TotalDurationHours != next.TotalDurationHours
}
