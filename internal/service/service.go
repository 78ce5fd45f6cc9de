package service

import (
	"context"
	"io"
	"sync"
	"time"

	"pumpversuch/internal/charts"
	"pumpversuch/internal/logger"
	"pumpversuch/internal/models"
	"pumpversuch/internal/repository"
)

// Protocol owns the per-session form values and measurement table.
type Protocol interface {
	Create(ctx context.Context) (models.Session, error)
	Get(ctx context.Context, id string) (models.Session, error)
	SetParameters(ctx context.Context, id string, u SessionUpdate) (models.Session, error)
	Reset(ctx context.Context, id string) (models.Session, error)
	ReplaceSamples(ctx context.Context, id string, samples []models.Sample) (models.Session, error)
	// AddSample appends s, or a row 15 minutes after the last one when s is nil.
	AddSample(ctx context.Context, id string, s *models.Sample) (models.Session, error)
	UpdateSample(ctx context.Context, id string, index int, s models.Sample) (models.Session, error)
	RemoveSample(ctx context.Context, id string, index int) (models.Session, error)
	ImportCSV(ctx context.Context, id string, r io.Reader) (models.Session, error)
	// Delete ends the session; its log goes with it.
	Delete(ctx context.Context, id string) error
}

// Analysis derives flow, drawdown, deepest point and summary from the current table.
type Analysis interface {
	Analyze(ctx context.Context, id string) (models.Analysis, error)
}

// Charts renders the diagrams of a session.
type Charts interface {
	Render(ctx context.Context, id string, req ChartRequest) ([]byte, error)
}

// Export serializes the current table.
type Export interface {
	CSV(ctx context.Context, id string) ([]byte, error)
	XLSX(ctx context.Context, id string) ([]byte, error)
}

// EventLog exposes the append-only session log with filtering access.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.SessionEvent, error)
}

// Service aggregates all sub-services.
type Service struct {
	Protocol
	Analysis
	Charts
	Export
	EventLog
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, opts Options) *Service {
	opts = opts.withDefaults()
	store := &sessionStore{sessions: repos.SessionRepo, events: repos.EventRepo, log: opts.Log}
	return &Service{
		Protocol: NewProtocolService(store, opts.Defaults, opts.SessionTTL),
		Analysis: NewAnalysisService(store),
		Charts:   NewChartService(store, opts.Chart),
		Export:   NewExportService(store, opts.Chart),
		EventLog: NewEventLogService(repos.EventRepo),
	}
}

// sessionStore is shared by the sub-services. mu serialises read-modify-write
// cycles on sessions.
type sessionStore struct {
	mu       sync.Mutex
	sessions repository.SessionRepo
	events   repository.EventRepo
	log      *logger.Logger // optional
}

// Options configure a Service.
type Options struct {
	Defaults Defaults
	Chart    charts.Options
	// SessionTTL is how long an untouched session is kept. Idle sessions are
	// pruned whenever a new one is created.
	SessionTTL time.Duration
	Log        *logger.Logger
}

// DefaultSessionTTL matches the lifetime of the session cookie.
const DefaultSessionTTL = 7 * 24 * time.Hour

// Defaults seed a new session.
type Defaults struct {
	ProjectName string
	Parameters  models.Parameters
}

func (o Options) withDefaults() Options {
	if o.Defaults.Parameters == (models.Parameters{}) {
		o.Defaults.Parameters = models.DefaultParameters()
	}
	if o.Defaults.ProjectName == "" {
		o.Defaults.ProjectName = models.DefaultProjectName
	}
	if o.SessionTTL <= 0 {
		o.SessionTTL = DefaultSessionTTL
	}
	return o
}
