package models

import "time"

// Session is the state owned by one browser session: form values and the editable table.
type Session struct {
	ID          string     `json:"id"`
	ProjectName string     `json:"project_name"`
	Parameters  Parameters `json:"parameters"`
	Samples     []Sample   `json:"samples"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
