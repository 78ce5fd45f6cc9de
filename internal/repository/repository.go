package repository

import (
	"context"
	"database/sql"
	"time"

	"pumpversuch/internal/models"
)

type SessionRepo interface {
	Create(ctx context.Context, s models.Session) error
	Save(ctx context.Context, s models.Session) error
	// Load returns found=false and no error for unknown IDs.
	Load(ctx context.Context, id string) (s models.Session, found bool, err error)
	Delete(ctx context.Context, id string) error
	// PruneIdle deletes sessions last changed before cutoff and returns how many went.
	PruneIdle(ctx context.Context, cutoff time.Time) (int64, error)
}

type EventRepo interface {
	Append(ctx context.Context, e models.SessionEvent) error
	List(ctx context.Context, sessionID string, from, to time.Time, typ string) ([]models.SessionEvent, error)
}

type Repository struct {
	SessionRepo SessionRepo
	EventRepo   EventRepo
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		SessionRepo: NewSessionSQLite(db),
		EventRepo:   NewEventSQLite(db),
	}
}
