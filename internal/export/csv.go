package export

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"pumpversuch/internal/models"
)

// File names offered to the browser.
const (
	CSVFileName  = "pumpversuch_daten.csv"
	XLSXFileName = "pumpversuch_daten.xlsx"
)

// Column headers of the measurement table.
const (
	HeaderTime  = "Zeit [min]"
	HeaderLevel = "Wasserstand [m]"
)

// ErrMalformedCSV is wrapped by every ReadCSV failure.
var ErrMalformedCSV = errors.New("malformed csv")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteCSV writes the table with a single header row.
func WriteCSV(w io.Writer, samples []models.Sample) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{HeaderTime, HeaderLevel}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for i, s := range samples {
		row := []string{strconv.Itoa(s.TimeMinutes), formatFloat(s.WaterLevel)}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// EncodeCSV is WriteCSV into a byte slice.
func EncodeCSV(samples []models.Sample) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, samples); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ReadCSV parses a table written by WriteCSV. A leading UTF-8 BOM, CRLF line
// endings and blank lines are accepted.
func ReadCSV(r io.Reader) ([]models.Sample, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = 2
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty input", ErrMalformedCSV)
		}
		return nil, fmt.Errorf("%w: header: %v", ErrMalformedCSV, err)
	}
	if strings.TrimSpace(header[0]) != HeaderTime || strings.TrimSpace(header[1]) != HeaderLevel {
		return nil, fmt.Errorf("%w: unexpected header %q", ErrMalformedCSV, strings.Join(header, ","))
	}

	out := make([]models.Sample, 0, 64)
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedCSV, err)
		}
		line, _ := cr.FieldPos(0)
		s, err := parseRow(rec)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedCSV, line, err)
		}
		out = append(out, s)
	}
	return out, nil
}

func parseRow(rec []string) (models.Sample, error) {
	t, err := strconv.Atoi(strings.TrimSpace(rec[0]))
	if err != nil {
		// Spreadsheets like to write whole minutes as "15.0".
		f, ferr := strconv.ParseFloat(strings.TrimSpace(rec[0]), 64)
		if ferr != nil || f != float64(int(f)) {
			return models.Sample{}, fmt.Errorf("time %q is not a whole number of minutes", rec[0])
		}
		t = int(f)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(rec[1]), 64)
	if err != nil {
		return models.Sample{}, fmt.Errorf("water level %q is not a number", rec[1])
	}
	return models.Sample{TimeMinutes: t, WaterLevel: v}, nil
}

// formatFloat uses the shortest representation that parses back to v.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
