package chart

import (
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/cxd309/trajectory-engine/internal/kinematics"
)

var (
	pathColor = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}
	apexColor = color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff}
)

// RenderVector draws tr with gonum/plot in a vector format: "svg", "pdf" or "eps".
// Width and Height are in points.
func RenderVector(w io.Writer, tr kinematics.Trajectory, format string, opts Options) error {
	switch format {
	case "svg", "pdf", "eps":
	default:
		return fmt.Errorf("%w %q", ErrUnsupportedFormat, format)
	}

	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid())

	b := dataBounds(tr.Samples)
	p.X.Min, p.X.Max = b.minX, b.maxX
	p.Y.Min, p.Y.Max = b.minY, b.maxY

	pts := make(plotter.XYs, len(tr.Samples))
	for i, s := range tr.Samples {
		pts[i].X = s.PositionX
		pts[i].Y = s.PositionY
	}

	if tr.FlightTime > 0 {
		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("chart: building line: %w", err)
		}
		line.Color = pathColor
		line.Width = vg.Points(2)
		p.Add(line)
	} else if len(pts) > 0 {
		sc, err := plotter.NewScatter(pts[:1])
		if err != nil {
			return fmt.Errorf("chart: building launch point: %w", err)
		}
		sc.Color = pathColor
		sc.Shape = draw.CircleGlyph{}
		p.Add(sc)
	}

	if x, y, ok := apex(tr); ok {
		sc, err := plotter.NewScatter(plotter.XYs{{X: x, Y: y}})
		if err != nil {
			return fmt.Errorf("chart: building apex: %w", err)
		}
		sc.Color = apexColor
		sc.Shape = draw.CircleGlyph{}
		p.Add(sc)
		p.Legend.Add(fmt.Sprintf("apex %.2f m", y), sc)
	}
	if c := caption(tr); c != "" {
		p.Title.Text += " (" + c + ")"
	}

	wt, err := p.WriterTo(vg.Points(float64(opts.Width)), vg.Points(float64(opts.Height)), format)
	if err != nil {
		return fmt.Errorf("chart: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("chart: writing %s: %w", format, err)
	}
	return nil
}
