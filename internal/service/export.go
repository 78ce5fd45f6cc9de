package service

import (
	"context"

	"pumpversuch/internal/charts"
	"pumpversuch/internal/export"
	"pumpversuch/internal/models"
	"pumpversuch/internal/pumptest"
)

type ExportService struct {
	store *sessionStore
	chart charts.Options
}

func NewExportService(store *sessionStore, chart charts.Options) *ExportService {
	return &ExportService{store: store, chart: chart}
}

// CSV returns the table in the pumpversuch_daten.csv format.
func (s *ExportService) CSV(ctx context.Context, id string) ([]byte, error) {
	sess, err := s.store.load(ctx, id)
	if err != nil {
		return nil, err
	}
	raw, err := export.EncodeCSV(sess.Samples)
	if err != nil {
		return nil, err
	}
	s.recordExport(ctx, sess, "csv", len(raw))
	return raw, nil
}

// XLSX returns a workbook with the table, the derived columns and the
// stacked chart. An empty table is exported without a chart.
func (s *ExportService) XLSX(ctx context.Context, id string) ([]byte, error) {
	sess, err := s.store.load(ctx, id)
	if err != nil {
		return nil, err
	}
	wb := export.Workbook{
		ProjectName: sess.ProjectName,
		Parameters:  sess.Parameters,
		Samples:     sess.Samples,
		Analysis:    pumptest.Analyze(sess.Samples, sess.Parameters),
	}
	if len(sess.Samples) > 0 {
		if wb.ChartPNG, err = charts.Stack(chartInput(sess), s.chart, true); err != nil {
			return nil, err
		}
	}
	raw, err := export.EncodeXLSX(wb)
	if err != nil {
		return nil, err
	}
	s.recordExport(ctx, sess, "xlsx", len(raw))
	return raw, nil
}

func (s *ExportService) recordExport(ctx context.Context, sess models.Session, format string, size int) {
	s.store.recordOrLog(ctx, sess.ID, change{
		Type:        models.EventExported,
		Description: "Table exported as " + format,
		Metadata:    map[string]any{"format": format, "rows": len(sess.Samples), "bytes": size},
	})
}
