package service

import (
	"context"
	"fmt"
	"time"

	"pumpversuch/internal/models"

	"github.com/google/uuid"
)

// change describes what a mutation did, for the session log.
type change struct {
	Type        string
	Description string
	Metadata    map[string]any
}

func (st *sessionStore) load(ctx context.Context, id string) (models.Session, error) {
	s, found, err := st.sessions.Load(ctx, id)
	if err != nil {
		return models.Session{}, err
	}
	if !found {
		return models.Session{}, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return s, nil
}

// mutate loads a session, applies fn, saves the result and appends the
// event fn returns. The session is not saved when fn fails.
func (st *sessionStore) mutate(ctx context.Context, id string, fn func(s *models.Session) (change, error)) (models.Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, err := st.load(ctx, id)
	if err != nil {
		return models.Session{}, err
	}
	ch, err := fn(&s)
	if err != nil {
		return models.Session{}, err
	}
	s.UpdatedAt = time.Now().UTC()
	if err := st.sessions.Save(ctx, s); err != nil {
		return models.Session{}, err
	}
	st.recordOrLog(ctx, s.ID, ch)
	return s, nil
}

// recordOrLog appends the event for work that has already happened. A failed
// append is logged and does not fail the request.
func (st *sessionStore) recordOrLog(ctx context.Context, sessionID string, ch change) {
	err := st.record(ctx, sessionID, ch)
	if err != nil && st.log != nil {
		st.log.Errorw("event_append_failed", "session", sessionID, "type", ch.Type, "error", err)
	}
}

// pruneIdle drops sessions untouched since before now-ttl. Failures are
// logged; creating a session does not depend on them.
func (st *sessionStore) pruneIdle(ctx context.Context, now time.Time, ttl time.Duration) {
	n, err := st.sessions.PruneIdle(ctx, now.Add(-ttl))
	if st.log == nil {
		return
	}
	if err != nil {
		st.log.Errorw("session_prune_failed", "error", err)
		return
	}
	if n > 0 {
		st.log.Infow("sessions_pruned", "count", n, "ttl", ttl)
	}
}

func (st *sessionStore) record(ctx context.Context, sessionID string, ch change) error {
	ev := models.SessionEvent{
		EventID:     uuid.NewString(),
		SessionID:   sessionID,
		OccurredAt:  time.Now().UTC(),
		Type:        ch.Type,
		Description: ch.Description,
	}
	if len(ch.Metadata) > 0 {
		ev.Metadata = ch.Metadata
	}
	return st.events.Append(ctx, ev)
}
