package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"pumpversuch/internal/export"
	"pumpversuch/internal/models"
	"pumpversuch/internal/pumptest"

	"github.com/google/uuid"
)

type ProtocolService struct {
	store    *sessionStore
	defaults Defaults
	ttl      time.Duration
}

func NewProtocolService(store *sessionStore, defaults Defaults, ttl time.Duration) *ProtocolService {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &ProtocolService{store: store, defaults: defaults, ttl: ttl}
}

// Create starts a session with the default parameters and a fresh seed table.
// Sessions idle for longer than the TTL are pruned first.
func (s *ProtocolService) Create(ctx context.Context) (models.Session, error) {
	now := time.Now().UTC()
	sess := models.Session{
		ID:          uuid.NewString(),
		ProjectName: s.defaults.ProjectName,
		Parameters:  s.defaults.Parameters,
		Samples:     pumptest.DefaultSamples(s.defaults.Parameters),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	s.store.pruneIdle(ctx, now, s.ttl)
	if err := s.store.sessions.Create(ctx, sess); err != nil {
		return models.Session{}, err
	}
	s.store.recordOrLog(ctx, sess.ID, change{
		Type:        models.EventCreated,
		Description: "Session created",
		Metadata:    map[string]any{"rows": len(sess.Samples)},
	})
	return sess, nil
}

// Get returns the session or ErrSessionNotFound.
func (s *ProtocolService) Get(ctx context.Context, id string) (models.Session, error) {
	return s.store.load(ctx, id)
}

// SetParameters applies the form. A change of static level or durations
// replaces the table with a new seed; project name and flow rate keep it.
func (s *ProtocolService) SetParameters(ctx context.Context, id string, u SessionUpdate) (models.Session, error) {
	if err := u.Parameters.Validate(); err != nil {
		return models.Session{}, err
	}
	return s.store.mutate(ctx, id, func(sess *models.Session) (change, error) {
		regenerate := sess.Parameters.RegeneratesTable(u.Parameters)
		if name := strings.TrimSpace(u.ProjectName); name != "" {
			sess.ProjectName = name
		}
		sess.Parameters = u.Parameters

		ch := change{
			Type:        models.EventParameters,
			Description: "Parameters updated",
			Metadata:    parameterMeta(u.Parameters),
		}
		if regenerate {
			sess.Samples = pumptest.DefaultSamples(u.Parameters)
			ch.Type = models.EventTableRegenerated
			ch.Description = "Parameters updated; table regenerated"
			ch.Metadata["rows"] = len(sess.Samples)
		}
		return ch, nil
	})
}

// Reset discards all edits and writes the seed table for the current parameters.
func (s *ProtocolService) Reset(ctx context.Context, id string) (models.Session, error) {
	return s.store.mutate(ctx, id, func(sess *models.Session) (change, error) {
		sess.Samples = pumptest.DefaultSamples(sess.Parameters)
		return change{
			Type:        models.EventTableRegenerated,
			Description: "Table reset to defaults",
			Metadata:    map[string]any{"rows": len(sess.Samples)},
		}, nil
	})
}

// ReplaceSamples stores an edited table as-is. Times need not be ordered or unique.
func (s *ProtocolService) ReplaceSamples(ctx context.Context, id string, samples []models.Sample) (models.Session, error) {
	return s.store.mutate(ctx, id, func(sess *models.Session) (change, error) {
		sess.Samples = cloneSamples(samples)
		return edited("Table replaced", len(sess.Samples)), nil
	})
}

func (s *ProtocolService) AddSample(ctx context.Context, id string, smp *models.Sample) (models.Session, error) {
	return s.store.mutate(ctx, id, func(sess *models.Session) (change, error) {
		row := nextRow(sess.Samples, sess.Parameters)
		if smp != nil {
			row = *smp
		}
		sess.Samples = append(sess.Samples, row)
		return edited(fmt.Sprintf("Row added at %d min", row.TimeMinutes), len(sess.Samples)), nil
	})
}

func (s *ProtocolService) UpdateSample(ctx context.Context, id string, index int, smp models.Sample) (models.Session, error) {
	return s.store.mutate(ctx, id, func(sess *models.Session) (change, error) {
		if err := checkIndex(index, len(sess.Samples)); err != nil {
			return change{}, err
		}
		sess.Samples[index] = smp
		return edited(fmt.Sprintf("Row %d edited", index), len(sess.Samples)), nil
	})
}

func (s *ProtocolService) RemoveSample(ctx context.Context, id string, index int) (models.Session, error) {
	return s.store.mutate(ctx, id, func(sess *models.Session) (change, error) {
		if err := checkIndex(index, len(sess.Samples)); err != nil {
			return change{}, err
		}
		sess.Samples = append(sess.Samples[:index:index], sess.Samples[index+1:]...)
		return edited(fmt.Sprintf("Row %d removed", index), len(sess.Samples)), nil
	})
}

// ImportCSV replaces the table with the rows of a CSV export.
func (s *ProtocolService) ImportCSV(ctx context.Context, id string, r io.Reader) (models.Session, error) {
	samples, err := export.ReadCSV(r)
	if err != nil {
		return models.Session{}, err
	}
	return s.store.mutate(ctx, id, func(sess *models.Session) (change, error) {
		sess.Samples = samples
		return change{
			Type:        models.EventImported,
			Description: "Table imported from CSV",
			Metadata:    map[string]any{"rows": len(samples)},
		}, nil
	})
}

func (s *ProtocolService) Delete(ctx context.Context, id string) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if _, err := s.store.load(ctx, id); err != nil {
		return err
	}
	return s.store.sessions.Delete(ctx, id)
}

// helpers

func edited(desc string, rows int) change {
	return change{Type: models.EventTableEdited, Description: desc, Metadata: map[string]any{"rows": rows}}
}

func checkIndex(index, n int) error {
	if index < 0 || index >= n {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrRowOutOfRange, index, n)
	}
	return nil
}

// nextRow continues the table by one step, repeating the last level.
func nextRow(samples []models.Sample, p models.Parameters) models.Sample {
	if len(samples) == 0 {
		return models.Sample{TimeMinutes: 0, WaterLevel: p.StaticWaterLevel}
	}
	last := samples[len(samples)-1]
	return models.Sample{TimeMinutes: last.TimeMinutes + pumptest.StepMinutes, WaterLevel: last.WaterLevel}
}

func cloneSamples(in []models.Sample) []models.Sample {
	out := make([]models.Sample, len(in))
	copy(out, in)
	return out
}

func parameterMeta(p models.Parameters) map[string]any {
	return map[string]any{
		"static_water_level":   p.StaticWaterLevel,
		"target_flow_rate":     p.TargetFlowRate,
		"pump_duration_hours":  p.PumpDurationHours,
		"total_duration_hours": p.TotalDurationHours,
	}
}
