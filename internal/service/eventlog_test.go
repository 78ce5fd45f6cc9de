package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"pumpversuch/internal/models"
)

// capturingEventRepo records the arguments List was called with.
type capturingEventRepo struct {
	gotSession string
	gotFrom    time.Time
	gotTo      time.Time
	gotType    string

	events []models.SessionEvent
	err    error

	calls int
}

func (f *capturingEventRepo) List(ctx context.Context, sessionID string, from, to time.Time, typ string) ([]models.SessionEvent, error) {
	f.calls++
	f.gotSession = sessionID
	f.gotFrom = from
	f.gotTo = to
	f.gotType = typ
	return f.events, f.err
}

func (f *capturingEventRepo) Append(ctx context.Context, e models.SessionEvent) error {
	return nil
}

func mustTimeIn(loc *time.Location, y int, m time.Month, d, hh, mm, ss int) time.Time {
	return time.Date(y, m, d, hh, mm, ss, 0, loc)
}

func Test_normalizeToUTC(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   time.Time
		want func(time.Time) bool
	}{
		{
			name: "zero time remains zero",
			in:   time.Time{},
			want: func(out time.Time) bool { return out.IsZero() },
		},
		{
			name: "non-UTC converted to UTC preserving instant",
			in:   mustTimeIn(time.FixedZone("UTC+2", 2*3600), 2026, time.May, 4, 9, 15, 0),
			want: func(out time.Time) bool {
				exp := time.Date(2026, time.May, 4, 7, 15, 0, 0, time.UTC)
				return out.Location() == time.UTC && out.Equal(exp)
			},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := normalizeToUTC(tc.in)
			if !tc.want(got) {
				t.Fatalf("unexpected normalizeToUTC result: %v (loc=%v)", got, got.Location())
			}
		})
	}
}

func Test_normalizeEventType(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in, exp string
	}{
		{in: "", exp: ""},
		{in: "  created ", exp: "CREATED"},
		{in: "table_edited", exp: "TABLE_EDITED"},
	}

	for _, c := range cases {
		if got := normalizeEventType(c.in); got != c.exp {
			t.Fatalf("normalizeEventType(%q) = %q; want %q", c.in, got, c.exp)
		}
	}
}

func Test_normalizeAndValidateFilter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		in       LogFilter
		wantFrom time.Time
		wantType string
		wantErr  error
	}{
		{
			name:    "session required",
			in:      LogFilter{Type: "created"},
			wantErr: errMissingSession,
		},
		{
			name:    "blank session rejected",
			in:      LogFilter{SessionID: "   "},
			wantErr: errMissingSession,
		},
		{
			name: "from after to",
			in: LogFilter{
				SessionID: "s1",
				From:      time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
				To:        time.Date(2026, 1, 1, 23, 0, 0, 0, time.UTC),
			},
			wantErr: errInvalidTimeRange,
		},
		{
			name: "normalize tz and type",
			in: LogFilter{
				SessionID: " s1 ",
				From:      mustTimeIn(time.FixedZone("UTC+2", 2*3600), 2026, time.March, 1, 10, 0, 0),
				Type:      " exported ",
			},
			wantFrom: time.Date(2026, time.March, 1, 8, 0, 0, 0, time.UTC),
			wantType: models.EventExported,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := normalizeAndValidateFilter(tc.in)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected err %v; got %v", tc.wantErr, err)
			}
			if err != nil {
				return
			}
			if got.SessionID != "s1" {
				t.Fatalf("session: got %q", got.SessionID)
			}
			if !got.From.Equal(tc.wantFrom) {
				t.Fatalf("from: got %v; want %v", got.From, tc.wantFrom)
			}
			if got.Type != tc.wantType {
				t.Fatalf("type: got %q; want %q", got.Type, tc.wantType)
			}
		})
	}
}

func TestEventLogService_List_DelegatesNormalizedParams(t *testing.T) {
	t.Parallel()

	frepo := &capturingEventRepo{events: []models.SessionEvent{{EventID: "1"}}}
	svc := NewEventLogService(frepo)

	toLocal := mustTimeIn(time.FixedZone("UTC-2", -2*3600), 2026, time.October, 1, 12, 30, 0)
	out, err := svc.List(context.Background(), LogFilter{SessionID: "abc", To: toLocal, Type: " rendered"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 || frepo.calls != 1 {
		t.Fatalf("unexpected result %+v after %d calls", out, frepo.calls)
	}
	if frepo.gotSession != "abc" || frepo.gotType != models.EventRendered || !frepo.gotFrom.IsZero() {
		t.Fatalf("unexpected repo args: %+v", frepo)
	}
	if want := time.Date(2026, time.October, 1, 14, 30, 0, 0, time.UTC); !frepo.gotTo.Equal(want) {
		t.Fatalf("repo gotTo=%v; want %v", frepo.gotTo, want)
	}
}

func TestEventLogService_List_ValidationSkipsRepo(t *testing.T) {
	t.Parallel()

	frepo := &capturingEventRepo{}
	svc := NewEventLogService(frepo)

	if _, err := svc.List(context.Background(), LogFilter{}); !errors.Is(err, errMissingSession) {
		t.Fatalf("expected errMissingSession; got %v", err)
	}
	if frepo.calls != 0 {
		t.Fatalf("repo should not be called on validation error, calls=%d", frepo.calls)
	}
}

func TestEventLogService_List_RepoErrorPropagation(t *testing.T) {
	t.Parallel()

	frepo := &capturingEventRepo{err: errors.New("db down")}
	svc := NewEventLogService(frepo)

	_, err := svc.List(context.Background(), LogFilter{SessionID: "abc"})
	if !errors.Is(err, frepo.err) {
		t.Fatalf("expected repo error to propagate; got %v", err)
	}
}
