package handlers

import (
	"context"
	"io"
	"net/http"
	"sync"

	"pumpversuch/internal/models"
	"pumpversuch/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockProtocol struct {
	mu       sync.Mutex
	sessions map[string]models.Session
	nextID   string
	err      error

	created     int
	lastUpdate  service.SessionUpdate
	lastSamples []models.Sample
	lastAdd     *models.Sample
	lastIndex   int
	lastImport  string
}

func newMockProtocol(sessions ...models.Session) *mockProtocol {
	m := &mockProtocol{sessions: map[string]models.Session{}, nextID: "new-session"}
	for _, s := range sessions {
		m.sessions[s.ID] = s
	}
	return m
}

func (m *mockProtocol) Create(ctx context.Context) (models.Session, error) {
	m.created++
	if m.err != nil {
		return models.Session{}, m.err
	}
	s := models.Session{ID: m.nextID, ProjectName: models.DefaultProjectName, Parameters: models.DefaultParameters(), Samples: []models.Sample{}}
	m.put(s)
	return s, nil
}

func (m *mockProtocol) Get(ctx context.Context, id string) (models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return models.Session{}, service.ErrSessionNotFound
	}
	return s, nil
}

func (m *mockProtocol) SetParameters(ctx context.Context, id string, u service.SessionUpdate) (models.Session, error) {
	m.lastUpdate = u
	return m.result(id)
}

func (m *mockProtocol) Reset(ctx context.Context, id string) (models.Session, error) {
	return m.result(id)
}

func (m *mockProtocol) ReplaceSamples(ctx context.Context, id string, samples []models.Sample) (models.Session, error) {
	m.lastSamples = samples
	return m.result(id)
}

func (m *mockProtocol) AddSample(ctx context.Context, id string, s *models.Sample) (models.Session, error) {
	m.lastAdd = s
	return m.result(id)
}

func (m *mockProtocol) UpdateSample(ctx context.Context, id string, index int, s models.Sample) (models.Session, error) {
	m.lastIndex = index
	m.lastSamples = []models.Sample{s}
	return m.result(id)
}

func (m *mockProtocol) RemoveSample(ctx context.Context, id string, index int) (models.Session, error) {
	m.lastIndex = index
	return m.result(id)
}

func (m *mockProtocol) ImportCSV(ctx context.Context, id string, r io.Reader) (models.Session, error) {
	raw, _ := io.ReadAll(r)
	m.lastImport = string(raw)
	return m.result(id)
}

func (m *mockProtocol) put(s models.Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
}

func (m *mockProtocol) drop(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

func (m *mockProtocol) Delete(ctx context.Context, id string) error {
	if _, err := m.Get(ctx, id); err != nil {
		return err
	}
	m.drop(id)
	return nil
}

func (m *mockProtocol) result(id string) (models.Session, error) {
	if m.err != nil {
		return models.Session{}, m.err
	}
	return m.Get(context.Background(), id)
}

type mockAnalysis struct {
	resp models.Analysis
	err  error
}

func (m *mockAnalysis) Analyze(ctx context.Context, id string) (models.Analysis, error) {
	return m.resp, m.err
}

type mockCharts struct {
	png     []byte
	err     error
	lastReq service.ChartRequest
}

func (m *mockCharts) Render(ctx context.Context, id string, req service.ChartRequest) ([]byte, error) {
	m.lastReq = req
	return m.png, m.err
}

type mockExport struct {
	csv  []byte
	xlsx []byte
	err  error
}

func (m *mockExport) CSV(ctx context.Context, id string) ([]byte, error)  { return m.csv, m.err }
func (m *mockExport) XLSX(ctx context.Context, id string) ([]byte, error) { return m.xlsx, m.err }

type mockEventLog struct {
	resp       []models.SessionEvent
	err        error
	lastFilter service.LogFilter
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]models.SessionEvent, error) {
	m.lastFilter = f
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

const testSessionID = "s-1"

func testSession() models.Session {
	return models.Session{
		ID:          testSessionID,
		ProjectName: models.DefaultProjectName,
		Parameters:  models.DefaultParameters(),
		Samples:     []models.Sample{{TimeMinutes: 0, WaterLevel: 2.1}, {TimeMinutes: 15, WaterLevel: 2.77}},
	}
}

// newMockService returns a service whose Protocol knows testSession.
func newMockService() (*service.Service, *mockProtocol) {
	p := newMockProtocol(testSession())
	return &service.Service{
		Protocol: p,
		Analysis: &mockAnalysis{},
		Charts:   &mockCharts{},
		Export:   &mockExport{},
		EventLog: &mockEventLog{},
	}, p
}

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func sessionHeaderFor(id string) http.Header {
	h := http.Header{}
	if id != "" {
		h.Set(sessionHeader, id)
	}
	return h
}
