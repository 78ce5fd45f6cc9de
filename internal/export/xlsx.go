package export

import (
	"bytes"
	"fmt"

	"pumpversuch/internal/models"

	"github.com/xuri/excelize/v2"
)

const (
	sheetSamples    = "Messwerte"
	sheetParameters = "Parameter"
)

var samplesHeader = []string{HeaderTime, HeaderLevel, "Förderrate Q [m³/h]", "Absenkung s [m]"}

// Workbook is everything that goes into the spreadsheet export.
type Workbook struct {
	ProjectName string
	Parameters  models.Parameters
	Samples     []models.Sample
	Analysis    models.Analysis
	ChartPNG    []byte // optional, placed next to the parameters
}

// EncodeXLSX builds a workbook with one sheet for the table and one for the
// parameters and summary figures.
func EncodeXLSX(wb Workbook) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetSamples); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(sheetParameters); err != nil {
		return nil, fmt.Errorf("create sheet %q: %w", sheetParameters, err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	if err := writeSamplesSheet(f, wb, headerStyle); err != nil {
		return nil, err
	}
	if err := writeParametersSheet(f, wb, headerStyle); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSamplesSheet(f *excelize.File, wb Workbook, headerStyle int) error {
	if err := f.SetSheetRow(sheetSamples, "A1", &samplesHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := f.SetCellStyle(sheetSamples, "A1", "D1", headerStyle); err != nil {
		return fmt.Errorf("style header: %w", err)
	}
	for i, s := range wb.Samples {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{s.TimeMinutes, s.WaterLevel}
		if i < len(wb.Analysis.Points) {
			p := wb.Analysis.Points[i]
			row = append(row, p.FlowRate, p.Drawdown)
		}
		if err := f.SetSheetRow(sheetSamples, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	return f.SetColWidth(sheetSamples, "A", "D", 20)
}

func writeParametersSheet(f *excelize.File, wb Workbook, headerStyle int) error {
	p := wb.Parameters
	sum := wb.Analysis.Summary
	rows := [][]any{
		{"Projekt", wb.ProjectName},
		{"Ruhewasserspiegel [m u. GOK]", p.StaticWaterLevel},
		{"Förderleistung [m³/h]", p.TargetFlowRate},
		{"Pumpdauer [h]", p.PumpDurationHours},
		{"Gesamtdauer [h]", p.TotalDurationHours},
		{"Max. Absenkung [m]", sum.MaxDrawdown},
		{"Spez. Ergiebigkeit [m³/h/m]", sum.SpecificCapacity},
		{"Restabsenkung [m]", sum.ResidualDrawdown},
		{"Wiederanstieg [%]", sum.RecoveryPercent},
	}
	if d := wb.Analysis.Deepest; d != nil {
		rows = append(rows, []any{"Tiefster Punkt [min]", d.TimeMinutes}, []any{"Tiefster Wasserstand [m]", d.WaterLevel})
	}
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetParameters, cell, &rows[i]); err != nil {
			return fmt.Errorf("write parameter row %d: %w", i+1, err)
		}
	}
	if err := f.SetCellStyle(sheetParameters, "A1", fmt.Sprintf("A%d", len(rows)), headerStyle); err != nil {
		return fmt.Errorf("style parameter labels: %w", err)
	}
	if err := f.SetColWidth(sheetParameters, "A", "A", 32); err != nil {
		return err
	}
	if len(wb.ChartPNG) == 0 {
		return nil
	}
	return f.AddPictureFromBytes(sheetParameters, "D1", &excelize.Picture{
		Extension: ".png",
		File:      wb.ChartPNG,
		Format:    &excelize.GraphicOptions{ScaleX: 0.6, ScaleY: 0.6, AltText: "Diagramme"},
	})
}

// DecodeXLSXSamples reads the table sheet back. It is used to verify exports.
func DecodeXLSXSamples(raw []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer func() { _ = f.Close() }()
	return f.GetRows(sheetSamples)
}
