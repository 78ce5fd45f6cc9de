package export

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"pumpversuch/internal/models"
	"pumpversuch/internal/pumptest"

	"github.com/stretchr/testify/require"
)

func TestWriteCSV_Format(t *testing.T) {
	samples := []models.Sample{
		{TimeMinutes: 0, WaterLevel: 2.1},
		{TimeMinutes: 15, WaterLevel: 2.77},
	}

	got, err := EncodeCSV(samples)

	require.NoError(t, err)
	require.Equal(t, "Zeit [min],Wasserstand [m]\n0,2.1\n15,2.77\n", string(got))
}

func TestCSV_RoundTrip(t *testing.T) {
	samples := pumptest.DefaultSamples(models.DefaultParameters())
	samples = append(samples,
		models.Sample{TimeMinutes: 600, WaterLevel: 1.0 / 3.0},
		models.Sample{TimeMinutes: 615, WaterLevel: math.Nextafter(2.1, 3)},
		models.Sample{TimeMinutes: 5, WaterLevel: -0.25}, // edits need not be ordered
	)

	raw, err := EncodeCSV(samples)
	require.NoError(t, err)

	back, err := ReadCSV(bytes.NewReader(raw))
	require.NoError(t, err)
	require.Equal(t, samples, back)
}

func TestReadCSV_Tolerances(t *testing.T) {
	in := "\xEF\xBB\xBFZeit [min],Wasserstand [m]\r\n0,2.10\r\n\r\n15.0, 2.5\r\n"

	got, err := ReadCSV(strings.NewReader(in))

	require.NoError(t, err)
	require.Equal(t, []models.Sample{{TimeMinutes: 0, WaterLevel: 2.1}, {TimeMinutes: 15, WaterLevel: 2.5}}, got)
}

func TestReadCSV_HeaderOnly(t *testing.T) {
	got, err := ReadCSV(strings.NewReader("Zeit [min],Wasserstand [m]\n"))

	require.NoError(t, err)
	require.Empty(t, got)
}

func TestReadCSV_Errors(t *testing.T) {
	cases := map[string]string{
		"empty":         "",
		"wrong_header":  "time,level\n0,2.1\n",
		"bad_time":      "Zeit [min],Wasserstand [m]\nabc,2.1\n",
		"fraction_time": "Zeit [min],Wasserstand [m]\n7.5,2.1\n",
		"bad_level":     "Zeit [min],Wasserstand [m]\n0,tief\n",
		"extra_column":  "Zeit [min],Wasserstand [m]\n0,2.1,5\n",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(in))
			require.ErrorIs(t, err, ErrMalformedCSV)
		})
	}
}

func TestReadCSV_ErrorNamesLine(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("Zeit [min],Wasserstand [m]\n0,2.1\n15,x\n"))

	require.ErrorContains(t, err, "line 3")
}
