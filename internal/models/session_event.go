package models

import "time"

// Event types recorded in the session log.
const (
	EventCreated          = "CREATED"
	EventParameters       = "PARAMETERS"
	EventTableRegenerated = "TABLE_REGENERATED"
	EventTableEdited      = "TABLE_EDITED"
	EventImported         = "IMPORTED"
	EventRendered         = "RENDERED"
	EventExported         = "EXPORTED"
)

// SessionEvent is a single log entry.
type SessionEvent struct {
	EventID     string    `json:"event_id"`
	SessionID   string    `json:"session_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // CREATED | PARAMETERS | TABLE_REGENERATED | ...
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}
