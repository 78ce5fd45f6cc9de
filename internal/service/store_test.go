package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"pumpversuch/internal/logger"
	"pumpversuch/internal/models"
	"pumpversuch/internal/repository"
)

func TestProtocol_Create_PrunesIdleSessions(t *testing.T) {
	sessions := newFakeSessionRepo()
	repos := &repository.Repository{SessionRepo: sessions, EventRepo: &localEventRepo{}}
	svc := NewService(repos, Options{SessionTTL: time.Hour})

	now := time.Now().UTC()
	sessions.rows["stale"] = models.Session{ID: "stale", UpdatedAt: now.Add(-2 * time.Hour)}
	sessions.rows["recent"] = models.Session{ID: "recent", UpdatedAt: now.Add(-10 * time.Minute)}

	s := mustCreate(t, svc)

	if _, ok := sessions.rows["stale"]; ok {
		t.Fatalf("stale session kept")
	}
	for _, id := range []string{"recent", s.ID} {
		if _, ok := sessions.rows[id]; !ok {
			t.Fatalf("session %q pruned", id)
		}
	}
	if len(sessions.cutoffs) != 1 {
		t.Fatalf("expected one prune, got %d", len(sessions.cutoffs))
	}
	if age := now.Sub(sessions.cutoffs[0]); age < 59*time.Minute || age > 61*time.Minute {
		t.Fatalf("cutoff %v is not one TTL back", sessions.cutoffs[0])
	}
}

func TestProtocol_Create_DefaultTTLMatchesCookie(t *testing.T) {
	svc, sessions, _ := newTestService()

	mustCreate(t, svc)

	if len(sessions.cutoffs) != 1 {
		t.Fatalf("expected one prune, got %d", len(sessions.cutoffs))
	}
	if age := time.Since(sessions.cutoffs[0]); age < DefaultSessionTTL || age > DefaultSessionTTL+time.Minute {
		t.Fatalf("unexpected cutoff age %v", age)
	}
}

func TestProtocol_Create_PruneFailureIsLogged(t *testing.T) {
	var buf bytes.Buffer
	sessions := newFakeSessionRepo()
	sessions.pruneErr = errors.New("database is locked")
	repos := &repository.Repository{SessionRepo: sessions, EventRepo: &localEventRepo{}}
	svc := NewService(repos, Options{Log: logger.New(&buf, logger.DebugLevel)})

	s := mustCreate(t, svc)

	if _, ok := sessions.rows[s.ID]; !ok {
		t.Fatalf("session not created")
	}
	if !strings.Contains(buf.String(), "session_prune_failed") {
		t.Fatalf("expected prune failure in log, got %q", buf.String())
	}
}

func TestMutate_EventAppendFailureKeepsSavedChange(t *testing.T) {
	var buf bytes.Buffer
	sessions := newFakeSessionRepo()
	events := &localEventRepo{}
	repos := &repository.Repository{SessionRepo: sessions, EventRepo: events}
	svc := NewService(repos, Options{Log: logger.New(&buf, logger.DebugLevel)})
	ctx := context.Background()

	s := mustCreate(t, svc)
	events.appendErr = errors.New("disk full")

	got, err := svc.UpdateSample(ctx, s.ID, 1, models.Sample{TimeMinutes: 15, WaterLevel: 3.33})
	if err != nil {
		t.Fatalf("UpdateSample: %v", err)
	}
	if got.Samples[1].WaterLevel != 3.33 {
		t.Fatalf("returned session misses the edit: %+v", got.Samples[1])
	}
	if sessions.rows[s.ID].Samples[1].WaterLevel != 3.33 {
		t.Fatalf("edit not saved")
	}
	if !strings.Contains(buf.String(), "event_append_failed") {
		t.Fatalf("expected append failure in log, got %q", buf.String())
	}
}

func TestCreate_EventAppendFailureStillReturnsSession(t *testing.T) {
	sessions := newFakeSessionRepo()
	events := &localEventRepo{appendErr: errors.New("disk full")}
	svc := NewService(&repository.Repository{SessionRepo: sessions, EventRepo: events}, Options{})

	s, err := svc.Create(context.Background())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, ok := sessions.rows[s.ID]; !ok {
		t.Fatalf("session not persisted")
	}
}
