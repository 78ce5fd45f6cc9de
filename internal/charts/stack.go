package charts

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
)

// Stack renders the level and flow charts, plus the hysteresis chart when
// asked, one below the other in a single PNG.
func Stack(in Input, o Options, withHysteresis bool) ([]byte, error) {
	o = o.withDefaults()
	kinds := []Kind{KindLevel, KindFlow}
	if withHysteresis {
		kinds = append(kinds, KindHysteresis)
	}

	parts := make([]image.Image, 0, len(kinds))
	height := 0
	for _, k := range kinds {
		raw, err := Render(k, in, o)
		if err != nil {
			return nil, err
		}
		img, err := png.Decode(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("decode %s chart: %w", k, err)
		}
		parts = append(parts, img)
		height += img.Bounds().Dy()
	}

	canvas := image.NewRGBA(image.Rect(0, 0, o.Width, height))
	draw.Draw(canvas, canvas.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	y := 0
	for _, img := range parts {
		b := img.Bounds()
		draw.Draw(canvas, image.Rect(0, y, b.Dx(), y+b.Dy()), img, b.Min, draw.Over)
		y += b.Dy()
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, fmt.Errorf("encode stacked chart: %w", err)
	}
	return buf.Bytes(), nil
}
