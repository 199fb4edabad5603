// Package chart renders a trajectory's X/Y path as an image.
//
// PNG output is rasterised with gogpu/gg; SVG, PDF and EPS output goes through
// gonum/plot. Save picks the renderer from the file extension.
package chart

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/cxd309/trajectory-engine/internal/kinematics"
)

// ErrUnsupportedFormat is returned for output formats no renderer handles.
var ErrUnsupportedFormat = errors.New("chart: unsupported format")

const (
	xLabel = "Position X (m)"
	yLabel = "Position Y (m)"
)

// Options controls the output size and title.
type Options struct {
	Width  int // pixels for PNG, points for vector formats
	Height int
	Title  string
}

// DefaultOptions returns an 800x600 chart titled "Projectile Trajectory".
func DefaultOptions() Options {
	return Options{Width: 800, Height: 600, Title: "Projectile Trajectory"}
}

// Save renders tr to path. The extension selects the format: .png, .svg, .pdf or .eps.
func Save(path string, tr kinematics.Trajectory, opts Options) (err error) {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if !Supported(format) {
		return fmt.Errorf("%w %q", ErrUnsupportedFormat, filepath.Ext(path))
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("chart: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("chart: %w", cerr)
		}
	}()

	if format == "png" {
		return RenderPNG(f, tr, opts)
	}
	return RenderVector(f, tr, format, opts)
}

// Supported reports whether format (without the dot) can be rendered.
func Supported(format string) bool {
	switch format {
	case "png", "svg", "pdf", "eps":
		return true
	}
	return false
}

// bounds is the data window shown on the chart. It always contains the origin.
type bounds struct {
	minX, maxX, minY, maxY float64
}

func dataBounds(samples []kinematics.Sample) bounds {
	b := bounds{}
	for _, s := range samples {
		b.minX = math.Min(b.minX, s.PositionX)
		b.maxX = math.Max(b.maxX, s.PositionX)
		b.minY = math.Min(b.minY, s.PositionY)
		b.maxY = math.Max(b.maxY, s.PositionY)
	}
	if b.maxX-b.minX == 0 {
		b.maxX = b.minX + 1
	}
	if b.maxY-b.minY == 0 {
		b.maxY = b.minY + 1
	}
	return b
}

// ticks returns evenly spaced round values covering [lo, hi], roughly n of them,
// using steps of 1, 2 or 5 times a power of ten.
func ticks(lo, hi float64, n int) []float64 {
	if hi <= lo || n < 1 {
		return []float64{lo}
	}
	raw := (hi - lo) / float64(n)
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	step := mag
	for _, m := range []float64{1, 2, 5, 10} {
		step = m * mag
		if step >= raw {
			break
		}
	}

	var out []float64
	for v := math.Ceil(lo/step) * step; v <= hi+step*1e-9; v += step {
		// Snap accumulated error so labels print cleanly.
		out = append(out, math.Round(v/step)*step)
	}
	return out
}

// apex returns the position of the highest point when it is reached during flight.
func apex(tr kinematics.Trajectory) (x, y float64, ok bool) {
	if tr.FlightTime <= 0 || tr.Summary == nil || len(tr.Samples) == 0 {
		return 0, 0, false
	}
	s0 := tr.Samples[0]
	g := -s0.AccelerationY
	if g <= 0 {
		return 0, 0, false
	}
	tPeak := s0.VelocityY / g
	if tPeak < 0 || tPeak > tr.FlightTime {
		return 0, 0, false
	}
	return s0.VelocityX * tPeak, tr.Summary.MaxHeight, true
}

// caption describes degenerate outcomes; empty for a normal flight.
func caption(tr kinematics.Trajectory) string {
	switch tr.Status {
	case kinematics.StatusNoFlight:
		return "no flight: launch conditions have no landing time"
	case kinematics.StatusUnreachable:
		return "target range unreachable at a vertical launch"
	}
	return ""
}

func formatTick(v float64) string {
	if v == 0 {
		v = 0 // drop the sign of -0
	}
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}
