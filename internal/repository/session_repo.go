package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"pumpversuch/internal/models"
)

type SessionSQLite struct {
	db *sql.DB
}

func NewSessionSQLite(db *sql.DB) *SessionSQLite {
	return &SessionSQLite{db: db}
}

var _ SessionRepo = (*SessionSQLite)(nil)

const (
	insertSessionSQL = `
		INSERT INTO sessions (id, project_name, static_level, flow_rate, pump_hours, total_hours, samples, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	updateSessionSQL = `
		UPDATE sessions SET
			project_name=?,
			static_level=?,
			flow_rate=?,
			pump_hours=?,
			total_hours=?,
			samples=?,
			updated_at=?
		WHERE id=?
	`

	selectSessionSQL = `
		SELECT id, project_name, static_level, flow_rate, pump_hours, total_hours, samples, created_at, updated_at
		FROM sessions WHERE id=?
	`

	deleteSessionSQL = `DELETE FROM sessions WHERE id=?`

	pruneSessionsSQL = `DELETE FROM sessions WHERE updated_at < ?`
)

// ErrSessionMissing is returned by Save for an ID that was never created.
var ErrSessionMissing = errors.New("session does not exist")

// marshalSamples converts the table to a JSON string; nil becomes "[]".
func marshalSamples(samples []models.Sample) (string, error) {
	if samples == nil {
		samples = []models.Sample{}
	}
	b, err := json.Marshal(samples)
	if err != nil {
		return "", fmt.Errorf("marshal samples: %w", err)
	}
	return string(b), nil
}

func unmarshalSamples(s string) ([]models.Sample, error) {
	out := []models.Sample{}
	if s == "" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil, fmt.Errorf("unmarshal samples: %w", err)
	}
	return out, nil
}

// Create inserts a new session row.
func (r *SessionSQLite) Create(ctx context.Context, s models.Session) error {
	samples, err := marshalSamples(s.Samples)
	if err != nil {
		return err
	}
	p := s.Parameters
	_, err = r.db.ExecContext(ctx, insertSessionSQL,
		s.ID,
		s.ProjectName,
		p.StaticWaterLevel,
		p.TargetFlowRate,
		p.PumpDurationHours,
		p.TotalDurationHours,
		samples,
		formatTimestamp(s.CreatedAt),
		formatTimestamp(s.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert session %q: %w", s.ID, err)
	}
	return nil
}

// Save overwrites parameters, table and updated_at of an existing session.
func (r *SessionSQLite) Save(ctx context.Context, s models.Session) error {
	samples, err := marshalSamples(s.Samples)
	if err != nil {
		return err
	}
	p := s.Parameters
	res, err := r.db.ExecContext(ctx, updateSessionSQL,
		s.ProjectName,
		p.StaticWaterLevel,
		p.TargetFlowRate,
		p.PumpDurationHours,
		p.TotalDurationHours,
		samples,
		formatTimestamp(s.UpdatedAt),
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("update session %q: %w", s.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for session %q: %w", s.ID, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrSessionMissing, s.ID)
	}
	return nil
}

// Load fetches a session by ID.
func (r *SessionSQLite) Load(ctx context.Context, id string) (models.Session, bool, error) {
	var (
		s                models.Session
		samples          string
		created, updated string
	)
	err := r.db.QueryRowContext(ctx, selectSessionSQL, id).Scan(
		&s.ID,
		&s.ProjectName,
		&s.Parameters.StaticWaterLevel,
		&s.Parameters.TargetFlowRate,
		&s.Parameters.PumpDurationHours,
		&s.Parameters.TotalDurationHours,
		&samples,
		&created,
		&updated,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Session{}, false, nil
		}
		return models.Session{}, false, fmt.Errorf("select session %q: %w", id, err)
	}

	if s.Samples, err = unmarshalSamples(samples); err != nil {
		return models.Session{}, false, err
	}
	if s.CreatedAt, err = parseTimestamp(created); err != nil {
		return models.Session{}, false, err
	}
	if s.UpdatedAt, err = parseTimestamp(updated); err != nil {
		return models.Session{}, false, err
	}
	return s, true, nil
}

// Delete removes a session and, through the foreign key, its events.
func (r *SessionSQLite) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, deleteSessionSQL, id); err != nil {
		return fmt.Errorf("delete session %q: %w", id, err)
	}
	return nil
}

// PruneIdle removes sessions whose updated_at is older than cutoff. Their
// events are removed by the foreign key.
func (r *SessionSQLite) PruneIdle(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, pruneSessionsSQL, formatTimestamp(cutoff))
	if err != nil {
		return 0, fmt.Errorf("prune sessions before %s: %w", cutoff.UTC().Format(time.RFC3339), err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected for prune: %w", err)
	}
	return n, nil
}
