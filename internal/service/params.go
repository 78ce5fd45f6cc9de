package service

import (
	"time"

	"pumpversuch/internal/charts"
	"pumpversuch/internal/models"
)

// SessionUpdate is the form submission.
type SessionUpdate struct {
	ProjectName string
	Parameters  models.Parameters
}

// ChartRequest selects the diagram to render.
type ChartRequest struct {
	Kind           charts.Kind
	WithHysteresis bool // only used when Kind == charts.KindStack
}

// LogFilter supports history filtering by session, time range and type.
type LogFilter struct {
	SessionID string
	From      time.Time // inclusive; zero means no lower bound
	To        time.Time // inclusive; zero means no upper bound
	Type      string    // "", "CREATED", "PARAMETERS", "TABLE_EDITED", ...
}
