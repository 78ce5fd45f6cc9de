// Package charts renders the protocol diagrams as PNG images.
package charts

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"sort"

	"pumpversuch/internal/models"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrNoSamples is returned when there is nothing to plot.
var ErrNoSamples = errors.New("no samples to plot")

// Kind selects a diagram.
type Kind string

const (
	KindLevel      Kind = "level"
	KindFlow       Kind = "flow"
	KindHysteresis Kind = "hysteresis"
	KindStack      Kind = "stack"
)

// ParseKind maps a path segment to a Kind.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindLevel, KindFlow, KindHysteresis, KindStack:
		return k, nil
	}
	return "", fmt.Errorf("unknown chart kind %q", s)
}

// Options size the output. UnitHeight is the height of the flow chart; the
// level and hysteresis charts are twice as tall.
type Options struct {
	Width      int
	UnitHeight int
}

const (
	defaultWidth      = 1000
	defaultUnitHeight = 250
)

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = defaultWidth
	}
	if o.UnitHeight <= 0 {
		o.UnitHeight = defaultUnitHeight
	}
	return o
}

// Input is what the diagrams are drawn from.
type Input struct {
	ProjectName string
	Parameters  models.Parameters
	Samples     []models.Sample
	Analysis    models.Analysis
}

var (
	colorLevel    = drawing.ColorFromHex("0077b6")
	colorStatic   = drawing.ColorFromHex("808080")
	colorPumpOff  = drawing.ColorFromHex("d62828")
	colorFlow     = drawing.ColorFromHex("2a9d8f")
	colorPath     = drawing.ColorFromHex("e76f51")
	colorGrid     = drawing.ColorFromHex("d0d0d0")
	dashed        = []float64{6, 4}
	gridLineStyle = chart.Style{StrokeColor: colorGrid, StrokeWidth: 1, StrokeDashArray: []float64{3, 3}}
)

// Render draws a single diagram.
func Render(kind Kind, in Input, o Options) ([]byte, error) {
	o = o.withDefaults()
	switch kind {
	case KindLevel:
		return renderPNG(levelChart(in, o))
	case KindFlow:
		return renderPNG(flowChart(in, o))
	case KindHysteresis:
		return renderPNG(hysteresisChart(in, o))
	case KindStack:
		return Stack(in, o, true)
	}
	return nil, fmt.Errorf("unknown chart kind %q", kind)
}

func renderPNG(c chart.Chart, err error) ([]byte, error) {
	if err != nil {
		return nil, err
	}
	c.Elements = []chart.Renderable{chart.Legend(&c)}
	var buf bytes.Buffer
	if err := c.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render %q: %w", c.Title, err)
	}
	return buf.Bytes(), nil
}

// series is the table sorted by time alongside its derived values.
type series struct {
	times    []float64
	levels   []float64
	flows    []float64
	drawdown []float64
}

func sortedSeries(in Input) series {
	idx := make([]int, len(in.Samples))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return in.Samples[idx[a]].TimeMinutes < in.Samples[idx[b]].TimeMinutes
	})

	var s series
	for _, i := range idx {
		smp := in.Samples[i]
		s.times = append(s.times, float64(smp.TimeMinutes))
		s.levels = append(s.levels, smp.WaterLevel)
		if i < len(in.Analysis.Points) {
			s.flows = append(s.flows, in.Analysis.Points[i].FlowRate)
			s.drawdown = append(s.drawdown, in.Analysis.Points[i].Drawdown)
		} else {
			s.flows = append(s.flows, 0)
			s.drawdown = append(s.drawdown, smp.WaterLevel-in.Parameters.StaticWaterLevel)
		}
	}
	return s
}

func levelChart(in Input, o Options) (chart.Chart, error) {
	if len(in.Samples) == 0 {
		return chart.Chart{}, ErrNoSamples
	}
	s := sortedSeries(in)
	static := in.Parameters.StaticWaterLevel
	pumpOff := float64(in.Parameters.PumpOffMinute())
	xr := timeRange(s.times, in.Parameters)
	lo, hi := paddedBounds(append([]float64{static}, s.levels...))

	list := []chart.Series{
		chart.ContinuousSeries{
			Name:    "Messwerte",
			Style:   chart.Style{StrokeColor: colorLevel, StrokeWidth: 2, DotColor: colorLevel, DotWidth: 3},
			XValues: s.times,
			YValues: s.levels,
		},
		chart.ContinuousSeries{
			Name:    fmt.Sprintf("RWS (%gm)", static),
			Style:   chart.Style{StrokeColor: colorStatic, StrokeWidth: 1, StrokeDashArray: dashed},
			XValues: []float64{xr.Min, xr.Max},
			YValues: []float64{static, static},
		},
		pumpOffMarker(pumpOff, lo, hi),
	}
	if d := in.Analysis.Deepest; d != nil {
		list = append(list, chart.AnnotationSeries{
			Name: "Tiefster Punkt",
			Annotations: []chart.Value2{{
				XValue: float64(d.TimeMinutes),
				YValue: d.WaterLevel,
				Label:  fmt.Sprintf("Max: %.2f m (%d min)", d.WaterLevel, d.TimeMinutes),
			}},
		})
	}

	title := "1. Zeit-Absenkungs-Plan"
	if in.ProjectName != "" {
		title = in.ProjectName + ": " + title
	}
	c := baseChart(title, o.Width, 2*o.UnitHeight)
	c.XAxis = hourAxis(xr)
	c.YAxis = chart.YAxis{
		Name:           "Tiefe unter GOK [m]",
		Range:          &chart.ContinuousRange{Min: lo, Max: hi, Descending: true},
		GridMajorStyle: gridLineStyle,
		ValueFormatter: meterFormatter,
	}
	c.Series = list
	return c, nil
}

func flowChart(in Input, o Options) (chart.Chart, error) {
	if len(in.Samples) == 0 {
		return chart.Chart{}, ErrNoSamples
	}
	s := sortedSeries(in)
	xs, ys := stepPost(s.times, s.flows)
	top := in.Parameters.TargetFlowRate * 1.2
	if top <= 0 {
		top = 1
	}

	c := baseChart("2. Pumpenleistung über die Zeit", o.Width, o.UnitHeight)
	c.XAxis = hourAxis(timeRange(s.times, in.Parameters))
	c.XAxis.Name = "Zeit [min]"
	c.YAxis = chart.YAxis{
		Name:           "Q [m³/h]",
		Range:          &chart.ContinuousRange{Min: 0, Max: top},
		GridMajorStyle: gridLineStyle,
	}
	c.Series = []chart.Series{
		chart.ContinuousSeries{
			Name:    "Förderrate Q",
			Style:   chart.Style{StrokeColor: colorFlow, StrokeWidth: 2, FillColor: colorFlow.WithAlpha(76)},
			XValues: xs,
			YValues: ys,
		},
		pumpOffMarker(float64(in.Parameters.PumpOffMinute()), 0, top),
	}
	return c, nil
}

func hysteresisChart(in Input, o Options) (chart.Chart, error) {
	if len(in.Samples) == 0 {
		return chart.Chart{}, ErrNoSamples
	}
	s := sortedSeries(in)
	qMax := math.Max(in.Parameters.TargetFlowRate, 0.1)
	lo, hi := paddedBounds(append([]float64{0}, s.drawdown...))
	last := len(s.times) - 1

	c := baseChart("3. Förderleistung vs. Absenkung (Hysterese)", o.Width, 2*o.UnitHeight)
	c.XAxis = chart.XAxis{
		Name:           "Förderleistung Q [m³/h]",
		Range:          &chart.ContinuousRange{Min: -0.1 * qMax, Max: 1.2 * qMax},
		GridMajorStyle: gridLineStyle,
	}
	c.YAxis = chart.YAxis{
		Name:           "Absenkung s [m]",
		Range:          &chart.ContinuousRange{Min: lo, Max: hi, Descending: true},
		GridMajorStyle: gridLineStyle,
		ValueFormatter: meterFormatter,
	}
	c.Series = []chart.Series{
		chart.ContinuousSeries{
			Name:    "Verlauf (Hysterese)",
			Style:   chart.Style{StrokeColor: colorPath, StrokeWidth: 1.5, DotColor: colorPath, DotWidth: 4},
			XValues: s.flows,
			YValues: s.drawdown,
		},
		chart.AnnotationSeries{
			Name: "Start/Ende",
			Annotations: []chart.Value2{
				{XValue: s.flows[0], YValue: s.drawdown[0], Label: "Start"},
				{XValue: s.flows[last], YValue: s.drawdown[last], Label: "Ende"},
			},
		},
	}
	return c, nil
}

func baseChart(title string, width, height int) chart.Chart {
	return chart.Chart{
		Title:      title,
		TitleStyle: chart.Style{FontSize: 13},
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20}},
	}
}

func pumpOffMarker(x, lo, hi float64) chart.ContinuousSeries {
	return chart.ContinuousSeries{
		Name:    "Pumpe AUS",
		Style:   chart.Style{StrokeColor: colorPumpOff, StrokeWidth: 2, StrokeDashArray: dashed},
		XValues: []float64{x, x},
		YValues: []float64{lo, hi},
	}
}

// stepPost holds each value until the next sample, like a step plot with where="post".
func stepPost(xs, ys []float64) ([]float64, []float64) {
	outX := make([]float64, 0, 2*len(xs))
	outY := make([]float64, 0, 2*len(ys))
	for i := range xs {
		outX = append(outX, xs[i])
		outY = append(outY, ys[i])
		if i+1 < len(xs) {
			outX = append(outX, xs[i+1])
			outY = append(outY, ys[i])
		}
	}
	return outX, outY
}

// timeRange spans the configured protocol and any edited rows outside it.
func timeRange(times []float64, p models.Parameters) *chart.ContinuousRange {
	lo, hi := 0.0, float64(p.TotalMinutes())
	for _, t := range times {
		lo = math.Min(lo, t)
		hi = math.Max(hi, t)
	}
	if hi <= lo {
		hi = lo + 15
	}
	return &chart.ContinuousRange{Min: lo, Max: hi}
}

// hourAxis labels the time axis in whole hours, at most about a dozen ticks.
func hourAxis(r *chart.ContinuousRange) chart.XAxis {
	hours := int(math.Ceil((r.Max - r.Min) / 60))
	every := max(1, int(math.Ceil(float64(hours)/12)))
	start := int(math.Ceil(r.Min/60)) * 60

	var ticks []chart.Tick
	for t := start; float64(t) <= r.Max; t += every * 60 {
		ticks = append(ticks, chart.Tick{Value: float64(t), Label: fmt.Sprintf("%dh", t/60)})
	}
	return chart.XAxis{Range: r, Ticks: ticks, GridMajorStyle: gridLineStyle}
}

// paddedBounds returns min and max widened by 10% (at least 5 cm).
func paddedBounds(vs []float64) (float64, float64) {
	lo, hi := vs[0], vs[0]
	for _, v := range vs[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	pad := math.Max((hi-lo)*0.1, 0.05)
	return lo - pad, hi + pad
}

func meterFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("%.2f", f)
	}
	return ""
}
