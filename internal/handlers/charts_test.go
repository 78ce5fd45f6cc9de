package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pumpversuch/internal/charts"
	"pumpversuch/internal/export"
	"pumpversuch/internal/logger"
	"pumpversuch/internal/service"

	"github.com/gin-gonic/gin"
)

func TestGetChart(t *testing.T) {
	pngBytes := []byte("\x89PNG\r\n\x1a\n")

	cases := []struct {
		name     string
		path     string
		err      error
		wantCode int
		wantReq  service.ChartRequest
	}{
		{name: "level", path: "/api/v1/session/charts/level", wantCode: http.StatusOK, wantReq: service.ChartRequest{Kind: charts.KindLevel}},
		{name: "stack with hysteresis", path: "/api/v1/session/charts/stack?hysteresis=true", wantCode: http.StatusOK,
			wantReq: service.ChartRequest{Kind: charts.KindStack, WithHysteresis: true}},
		{name: "unknown kind", path: "/api/v1/session/charts/pie", wantCode: http.StatusBadRequest},
		{name: "bad flag", path: "/api/v1/session/charts/stack?hysteresis=maybe", wantCode: http.StatusBadRequest},
		{name: "empty table", path: "/api/v1/session/charts/flow", err: fmt.Errorf("%w", charts.ErrNoSamples), wantCode: http.StatusUnprocessableEntity},
		{name: "render failure", path: "/api/v1/session/charts/flow", err: errors.New("font"), wantCode: http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, _ := newMockService()
			mc := &mockCharts{png: pngBytes, err: tc.err}
			s.Charts = mc

			w := do(t, s, http.MethodGet, tc.path, "", nil)
			if w.Code != tc.wantCode {
				t.Fatalf("status: got %d, want %d (body=%s)", w.Code, tc.wantCode, w.Body.String())
			}
			if tc.wantCode != http.StatusOK {
				return
			}
			if ct := w.Header().Get("Content-Type"); ct != "image/png" {
				t.Fatalf("content type %q", ct)
			}
			if w.Body.String() != string(pngBytes) {
				t.Fatalf("body not forwarded")
			}
			if mc.lastReq != tc.wantReq {
				t.Fatalf("request: got %+v, want %+v", mc.lastReq, tc.wantReq)
			}
		})
	}
}

func TestExportDownloads(t *testing.T) {
	s, _ := newMockService()
	s.Export = &mockExport{csv: []byte("Zeit [min],Wasserstand [m]\n0,2.1\n"), xlsx: []byte("PK")}

	w := do(t, s, http.MethodGet, "/api/v1/session/export.csv", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("csv status=%d", w.Code)
	}
	if got := w.Header().Get("Content-Disposition"); got != `attachment; filename="`+export.CSVFileName+`"` {
		t.Fatalf("disposition %q", got)
	}
	if got := w.Header().Get("Content-Type"); got != contentTypeCSV {
		t.Fatalf("content type %q", got)
	}

	w = do(t, s, http.MethodGet, "/api/v1/session/export.xlsx", "", nil)
	if w.Code != http.StatusOK || w.Body.String() != "PK" {
		t.Fatalf("xlsx status=%d", w.Code)
	}
	if got := w.Header().Get("Content-Disposition"); got != `attachment; filename="pumpversuch_daten.xlsx"` {
		t.Fatalf("disposition %q", got)
	}
}

func TestExportFailure_LogsError(t *testing.T) {
	s, _ := newMockService()
	s.Export = &mockExport{err: errors.New("boom")}

	var buf bytes.Buffer
	gin.SetMode(gin.TestMode)
	r := NewHandler(s, logger.New(&buf, logger.DebugLevel)).InitRoutes()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/session/export.csv", nil)
	req.Header.Set(sessionHeader, testSessionID)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d", w.Code)
	}
	out := buf.String()
	for _, want := range []string{"export_csv_failed", "boom", testSessionID, "http_request"} {
		if !strings.Contains(out, want) {
			t.Fatalf("log lacks %q: %s", want, out)
		}
	}
}
