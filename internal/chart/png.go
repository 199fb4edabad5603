package chart

import (
	"fmt"
	"io"
	"sync"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/cxd309/trajectory-engine/internal/kinematics"
)

// Plot area margins in pixels.
const (
	marginLeft   = 70.0
	marginRight  = 30.0
	marginTop    = 50.0
	marginBottom = 60.0
)

// fontSource parses Go Regular once; FontSource is safe to share.
var fontSource = sync.OnceValues(func() (*text.FontSource, error) {
	return text.NewFontSource(goregular.TTF)
})

// RenderPNG draws tr as a PNG image of opts.Width x opts.Height pixels.
func RenderPNG(w io.Writer, tr kinematics.Trajectory, opts Options) error {
	src, err := fontSource()
	if err != nil {
		return fmt.Errorf("chart: loading font: %w", err)
	}

	dc := gg.NewContext(opts.Width, opts.Height)
	defer func() { _ = dc.Close() }()
	dc.ClearWithColor(gg.White)

	b := dataBounds(tr.Samples)
	pw := float64(opts.Width) - marginLeft - marginRight
	ph := float64(opts.Height) - marginTop - marginBottom
	toPx := func(x, y float64) (float64, float64) {
		px := marginLeft + (x-b.minX)/(b.maxX-b.minX)*pw
		py := marginTop + ph - (y-b.minY)/(b.maxY-b.minY)*ph
		return px, py
	}

	small := src.Face(11)
	dc.SetFont(small)
	dc.SetLineWidth(1)

	// Grid and tick labels.
	for _, v := range ticks(b.minX, b.maxX, 8) {
		px, _ := toPx(v, b.minY)
		dc.SetRGB(0.88, 0.88, 0.88)
		dc.DrawLine(px, marginTop, px, marginTop+ph)
		_ = dc.Stroke()
		dc.SetRGB(0.25, 0.25, 0.25)
		dc.DrawStringAnchored(formatTick(v), px, marginTop+ph+8, 0.5, 1)
	}
	for _, v := range ticks(b.minY, b.maxY, 6) {
		_, py := toPx(b.minX, v)
		dc.SetRGB(0.88, 0.88, 0.88)
		dc.DrawLine(marginLeft, py, marginLeft+pw, py)
		_ = dc.Stroke()
		dc.SetRGB(0.25, 0.25, 0.25)
		dc.DrawStringAnchored(formatTick(v), marginLeft-8, py, 1, 0.35)
	}

	// Axes through the origin.
	ox, oy := toPx(0, 0)
	dc.SetRGB(0, 0, 0)
	dc.DrawLine(marginLeft, oy, marginLeft+pw, oy)
	dc.DrawLine(ox, marginTop, ox, marginTop+ph)
	if err := dc.Stroke(); err != nil {
		return fmt.Errorf("chart: drawing axes: %w", err)
	}

	// Path.
	dc.SetHexColor("#1f77b4")
	if tr.FlightTime > 0 && len(tr.Samples) > 1 {
		dc.SetLineWidth(2)
		for i, s := range tr.Samples {
			px, py := toPx(s.PositionX, s.PositionY)
			if i == 0 {
				dc.MoveTo(px, py)
				continue
			}
			dc.LineTo(px, py)
		}
		if err := dc.Stroke(); err != nil {
			return fmt.Errorf("chart: drawing trajectory: %w", err)
		}
	} else if len(tr.Samples) > 0 {
		px, py := toPx(tr.Samples[0].PositionX, tr.Samples[0].PositionY)
		dc.DrawCircle(px, py, 4)
		if err := dc.Fill(); err != nil {
			return fmt.Errorf("chart: drawing launch point: %w", err)
		}
	}

	if x, y, ok := apex(tr); ok {
		px, py := toPx(x, y)
		dc.SetHexColor("#d62728")
		dc.DrawCircle(px, py, 4)
		_ = dc.Fill()
		dc.DrawStringAnchored(fmt.Sprintf("apex %.2f m", y), px, py-10, 0.5, 0)
	}

	// Labels.
	dc.SetRGB(0.1, 0.1, 0.1)
	dc.SetFont(src.Face(13))
	dc.DrawStringAnchored(xLabel, marginLeft+pw/2, float64(opts.Height)-12, 0.5, 0)
	dc.DrawStringAnchored(yLabel, marginLeft, marginTop-10, 0.5, 0)
	dc.SetFont(src.Face(18))
	dc.DrawStringAnchored(opts.Title, float64(opts.Width)/2, 28, 0.5, 0)
	if c := caption(tr); c != "" {
		dc.SetRGB(0.7, 0.1, 0.1)
		dc.SetFont(small)
		dc.DrawStringAnchored(c, marginLeft+pw/2, marginTop+ph/2, 0.5, 0.5)
	}

	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("chart: encoding png: %w", err)
	}
	return nil
}
