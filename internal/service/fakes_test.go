package service

import (
	"context"
	"time"

	"pumpversuch/internal/models"
	"pumpversuch/internal/repository"
)

// fakeSessionRepo keeps sessions in a map.
type fakeSessionRepo struct {
	rows    map[string]models.Session
	loadErr  error
	saveErr  error
	pruneErr error
	saves    int
	cutoffs  []time.Time
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{rows: map[string]models.Session{}}
}

func (f *fakeSessionRepo) Create(ctx context.Context, s models.Session) error {
	f.rows[s.ID] = copySession(s)
	return nil
}

func (f *fakeSessionRepo) Save(ctx context.Context, s models.Session) error {
	f.saves++
	if f.saveErr != nil {
		return f.saveErr
	}
	if _, ok := f.rows[s.ID]; !ok {
		return repository.ErrSessionMissing
	}
	f.rows[s.ID] = copySession(s)
	return nil
}

func (f *fakeSessionRepo) Load(ctx context.Context, id string) (models.Session, bool, error) {
	if f.loadErr != nil {
		return models.Session{}, false, f.loadErr
	}
	s, ok := f.rows[id]
	return copySession(s), ok, nil
}

func (f *fakeSessionRepo) Delete(ctx context.Context, id string) error {
	delete(f.rows, id)
	return nil
}

func (f *fakeSessionRepo) PruneIdle(ctx context.Context, cutoff time.Time) (int64, error) {
	f.cutoffs = append(f.cutoffs, cutoff)
	if f.pruneErr != nil {
		return 0, f.pruneErr
	}
	var n int64
	for id, s := range f.rows {
		if s.UpdatedAt.Before(cutoff) {
			delete(f.rows, id)
			n++
		}
	}
	return n, nil
}

func copySession(s models.Session) models.Session {
	s.Samples = append([]models.Sample(nil), s.Samples...)
	return s
}

// localEventRepo records appended events.
type localEventRepo struct {
	appendErr error
	events    []models.SessionEvent
}

func (f *localEventRepo) Append(ctx context.Context, e models.SessionEvent) error {
	f.events = append(f.events, e)
	return f.appendErr
}

func (f *localEventRepo) List(ctx context.Context, sessionID string, from, to time.Time, typ string) ([]models.SessionEvent, error) {
	var out []models.SessionEvent
	for _, e := range f.events {
		if e.SessionID == sessionID && (typ == "" || e.Type == typ) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *localEventRepo) lastType() string {
	if len(f.events) == 0 {
		return ""
	}
	return f.events[len(f.events)-1].Type
}

func newTestService() (*Service, *fakeSessionRepo, *localEventRepo) {
	sessions := newFakeSessionRepo()
	events := &localEventRepo{}
	svc := NewService(&repository.Repository{SessionRepo: sessions, EventRepo: events}, Options{})
	return svc, sessions, events
}
