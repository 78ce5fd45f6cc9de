package repository_test

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"reflect"
	"regexp"
	"testing"
	"time"

	"pumpversuch/internal/models"
	"pumpversuch/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func TestSessionSQLite_Create_WritesParametersAndSamplesJSON(t *testing.T) {
	db, mock := newMock(t)
	repo := repository.NewSessionSQLite(db)

	created := time.Date(2026, 3, 1, 8, 0, 0, 0, time.FixedZone("CET", 3600))
	s := models.Session{
		ID:          "abc",
		ProjectName: "Brunnen 2",
		Parameters:  models.DefaultParameters(),
		Samples:     []models.Sample{{TimeMinutes: 0, WaterLevel: 2.1}, {TimeMinutes: 15, WaterLevel: 2.77}},
		CreatedAt:   created,
		UpdatedAt:   created,
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO sessions")).
		WithArgs(
			"abc",
			"Brunnen 2",
			2.10,
			5.0,
			8,
			9,
			`[{"time_min":0,"water_level_m":2.1},{"time_min":15,"water_level_m":2.77}]`,
			"2026-03-01 07:00:00.000000000", // stored as UTC
			"2026-03-01 07:00:00.000000000",
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), s); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSessionSQLite_Create_NilSamplesStoredAsEmptyArray(t *testing.T) {
	db, mock := newMock(t)
	repo := repository.NewSessionSQLite(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO sessions")).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
			sqlmock.AnyArg(), sqlmock.AnyArg(), "[]", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), models.Session{ID: "x"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSessionSQLite_Save_UnknownIDReturnsErrSessionMissing(t *testing.T) {
	db, mock := newMock(t)
	repo := repository.NewSessionSQLite(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE sessions SET")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Save(context.Background(), models.Session{ID: "ghost"})
	if !errors.Is(err, repository.ErrSessionMissing) {
		t.Fatalf("Save() error = %v, want ErrSessionMissing", err)
	}
}

func TestSessionSQLite_Save_UpdatesRow(t *testing.T) {
	db, mock := newMock(t)
	repo := repository.NewSessionSQLite(db)

	isUTCRecent := sqlmockArgumentFunc(func(v driver.Value) bool {
		s, ok := v.(string)
		if !ok {
			return false
		}
		tm, err := time.ParseInLocation("2006-01-02 15:04:05.000000000", s, time.UTC)
		return err == nil && time.Since(tm) < 5*time.Second
	})

	mock.ExpectExec(regexp.QuoteMeta("UPDATE sessions SET")).
		WithArgs("P", 1.0, 2.0, 3, 4, "[]", isUTCRecent, "id-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	s := models.Session{
		ID:          "id-1",
		ProjectName: "P",
		Parameters:  models.Parameters{StaticWaterLevel: 1, TargetFlowRate: 2, PumpDurationHours: 3, TotalDurationHours: 4},
	}
	if err := repo.Save(context.Background(), s); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSessionSQLite_Load_Success(t *testing.T) {
	db, mock := newMock(t)
	repo := repository.NewSessionSQLite(db)

	rows := sqlmock.NewRows([]string{"id", "project_name", "static_level", "flow_rate", "pump_hours", "total_hours", "samples", "created_at", "updated_at"}).
		AddRow("s1", "BV", 2.1, 5.0, 8, 9, `[{"time_min":0,"water_level_m":2.1}]`,
			"2026-01-02 03:04:05.000000000", "2026-01-02 03:05:00.500000000")

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, project_name, static_level")).
		WithArgs("s1").
		WillReturnRows(rows)

	got, found, err := repo.Load(context.Background(), "s1")
	if err != nil || !found {
		t.Fatalf("Load() = found %v, err %v", found, err)
	}
	want := models.Session{
		ID:          "s1",
		ProjectName: "BV",
		Parameters:  models.DefaultParameters(),
		Samples:     []models.Sample{{TimeMinutes: 0, WaterLevel: 2.1}},
		CreatedAt:   time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		UpdatedAt:   time.Date(2026, 1, 2, 3, 5, 0, 500_000_000, time.UTC),
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Load() = %+v, want %+v", got, want)
	}
}

func TestSessionSQLite_Load_NotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := repository.NewSessionSQLite(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, project_name")).
		WithArgs("nope").
		WillReturnError(sql.ErrNoRows)

	_, found, err := repo.Load(context.Background(), "nope")
	if err != nil || found {
		t.Fatalf("Load() = found %v, err %v; want not found, nil", found, err)
	}
}

func TestSessionSQLite_Load_InvalidSamplesJSON(t *testing.T) {
	db, mock := newMock(t)
	repo := repository.NewSessionSQLite(db)

	rows := sqlmock.NewRows([]string{"id", "project_name", "static_level", "flow_rate", "pump_hours", "total_hours", "samples", "created_at", "updated_at"}).
		AddRow("s1", "BV", 2.1, 5.0, 8, 9, `{not an array}`, "2026-01-02 03:04:05.000000000", "2026-01-02 03:04:05.000000000")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, project_name")).WillReturnRows(rows)

	if _, _, err := repo.Load(context.Background(), "s1"); err == nil {
		t.Fatalf("Load() expected error due to invalid samples JSON, got nil")
	}
}

func TestSessionSQLite_Load_QueryError(t *testing.T) {
	db, mock := newMock(t)
	repo := repository.NewSessionSQLite(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, project_name")).WillReturnError(errors.New("disk gone"))

	if _, _, err := repo.Load(context.Background(), "s1"); err == nil {
		t.Fatalf("Load() expected error, got nil")
	}
}

// Helpers

type sqlmockArgumentFunc func(v driver.Value) bool

func (f sqlmockArgumentFunc) Match(v driver.Value) bool {
	return f(v)
}

func TestSessionSQLite_PruneIdle_DeletesBeforeCutoff(t *testing.T) {
	db, mock := newMock(t)
	repo := repository.NewSessionSQLite(db)

	cutoff := time.Date(2026, 3, 1, 8, 0, 0, 0, time.FixedZone("CET", 3600))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM sessions WHERE updated_at < ?")).
		WithArgs("2026-03-01 07:00:00.000000000").
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := repo.PruneIdle(context.Background(), cutoff)
	if err != nil {
		t.Fatalf("PruneIdle() error = %v", err)
	}
	if n != 3 {
		t.Fatalf("PruneIdle() = %d, want 3", n)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSessionSQLite_PruneIdle_PropagatesError(t *testing.T) {
	db, mock := newMock(t)
	repo := repository.NewSessionSQLite(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM sessions")).
		WillReturnError(errors.New("disk I/O error"))

	if _, err := repo.PruneIdle(context.Background(), time.Now()); err == nil {
		t.Fatalf("expected error")
	}
}
