package kinematics

import (
	"errors"
	"fmt"
	"math"
)

const (
	// DefaultGravity is the simplified gravitational acceleration, m/s².
	DefaultGravity = 10.0
	// DefaultSamples is the number of trajectory samples produced per computation.
	DefaultSamples = 500
)

// ErrInvalidModel is wrapped by model configuration failures.
var ErrInvalidModel = errors.New("invalid trajectory model")

// Status describes how a computation ended.
type Status string

const (
	// StatusOK is a regular flight, possibly of zero length (v0 = 0 at ground level).
	StatusOK Status = "ok"
	// StatusNoFlight marks an elevated launch with a negative discriminant: no real
	// landing time exists, so the trajectory collapses to its launch point.
	StatusNoFlight Status = "no_flight"
	// StatusUnreachable marks a range-given launch with zero horizontal velocity: the
	// target range cannot be reached, so the trajectory collapses to its launch point.
	StatusUnreachable Status = "unreachable"
)

// Model is the constant-gravity projectile model.
//
// JSON: {"gravity": 10, "samples": 500}
type Model struct {
	Gravity float64 `json:"gravity"` // downward acceleration, m/s² (positive)
	Samples int     `json:"samples"` // number of samples over [0, t_flight]
}

// Sample is the kinematic state at one instant, all SI units.
type Sample struct {
	Time          float64 `json:"time"`           // s
	PositionX     float64 `json:"position_x"`     // m
	PositionY     float64 `json:"position_y"`     // m
	VelocityX     float64 `json:"velocity_x"`     // m/s
	VelocityY     float64 `json:"velocity_y"`     // m/s
	AccelerationX float64 `json:"acceleration_x"` // m/s²
	AccelerationY float64 `json:"acceleration_y"` // m/s²
}

// Summary holds the scalar metrics derived from a trajectory.
type Summary struct {
	FlightTime  float64 `json:"flight_time"`  // s
	Range       float64 `json:"range"`        // m
	MaxHeight   float64 `json:"max_height"`   // m
	FinalSpeed  float64 `json:"final_speed"`  // m/s, at impact
	ImpactAngle float64 `json:"impact_angle"` // degrees from horizontal, negative when descending
}

// Trajectory is the result of one computation.
type Trajectory struct {
	Launch     Launch   `json:"launch"`
	Status     Status   `json:"status"`
	FlightTime float64  `json:"flight_time"` // s
	Samples    []Sample `json:"samples"`
	Summary    *Summary `json:"summary,omitempty"`
}

// Default returns the model with DefaultGravity and DefaultSamples.
func Default() Model {
	return Model{Gravity: DefaultGravity, Samples: DefaultSamples}
}

// Validate reports whether the model can produce a trajectory.
func (m Model) Validate() error {
	if math.IsNaN(m.Gravity) || math.IsInf(m.Gravity, 0) || m.Gravity <= 0 {
		return fmt.Errorf("%w: gravity must be a finite value > 0, got %v", ErrInvalidModel, m.Gravity)
	}
	if m.Samples < 2 {
		return fmt.Errorf("%w: samples must be >= 2, got %d", ErrInvalidModel, m.Samples)
	}
	return nil
}

// Compute validates l and returns its sampled trajectory together with the summary.
func (m Model) Compute(l Launch) (Trajectory, error) {
	if err := m.Validate(); err != nil {
		return Trajectory{}, err
	}
	if err := l.Validate(); err != nil {
		return Trajectory{}, err
	}
	l.Mode = l.mode()

	vx, vy := l.velocity()
	tFlight, status := m.flightTime(l.Mode, vx, vy, l.Height, l.Range)

	tr := Trajectory{
		Launch:     l,
		Status:     status,
		FlightTime: tFlight,
		Samples:    m.sample(l, vx, vy, tFlight),
		Summary:    m.summarise(l, vx, vy, tFlight),
	}
	if !tr.finite() {
		return Trajectory{}, fmt.Errorf("%w: speed %v, height %v and range %v overflow the %s trajectory",
			ErrInvalidLaunch, l.Speed, l.Height, l.Range, l.Mode)
	}
	return tr, nil
}

// finite reports whether every time, position, velocity and summary value is a
// finite number. Inputs near the float64 limit can overflow on the way there.
func (t Trajectory) finite() bool {
	ok := func(vs ...float64) bool {
		for _, v := range vs {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
		return true
	}
	if !ok(t.FlightTime) {
		return false
	}
	for _, s := range t.Samples {
		if !ok(s.Time, s.PositionX, s.PositionY, s.VelocityX, s.VelocityY) {
			return false
		}
	}
	if s := t.Summary; s != nil {
		return ok(s.Range, s.MaxHeight, s.FinalSpeed, s.ImpactAngle)
	}
	return true
}

// flightTime returns t_flight for the given mode. Inputs are assumed validated, except
// that a negative h0 is tolerated so the negative-discriminant guard stays reachable.
func (m Model) flightTime(mode Mode, vx, vy, h0, r float64) (float64, Status) {
	g := m.Gravity
	switch mode {
	case ModeElevated:
		d := vy*vy + 2*g*h0
		if d < 0 {
			return 0, StatusNoFlight
		}
		return (vy + math.Sqrt(d)) / g, StatusOK
	case ModeRangeGiven:
		if vx == 0 {
			return 0, StatusUnreachable
		}
		return r / vx, StatusOK
	default:
		return 2 * vy / g, StatusOK
	}
}

// sample evaluates the equations of motion at Samples evenly spaced instants over
// [0, tFlight]. The final instant is exactly tFlight.
func (m Model) sample(l Launch, vx, vy, tFlight float64) []Sample {
	g := m.Gravity
	y0 := l.initialHeight()
	n := m.Samples

	samples := make([]Sample, n)
	for i := range samples {
		t := tFlight * float64(i) / float64(n-1)
		if i == n-1 {
			t = tFlight
		}
		samples[i] = Sample{
			Time:          t,
			PositionX:     vx * t,
			PositionY:     y0 + vy*t - 0.5*g*t*t,
			VelocityX:     vx,
			VelocityY:     vy - g*t,
			AccelerationX: 0,
			AccelerationY: -g,
		}
	}
	return samples
}

func (m Model) summarise(l Launch, vx, vy, tFlight float64) *Summary {
	g := m.Gravity
	y0 := l.initialHeight()

	tPeak := vy / g
	vfx := vx
	vfy := vy - g*tFlight

	return &Summary{
		FlightTime:  tFlight,
		Range:       vx * tFlight,
		MaxHeight:   y0 + vy*tPeak - 0.5*g*tPeak*tPeak,
		FinalSpeed:  math.Hypot(vfx, vfy),
		ImpactAngle: math.Atan2(vfy, vfx) * 180 / math.Pi,
	}
}

// Positions returns the X and Y position series of t, in sample order.
func (t Trajectory) Positions() (xs, ys []float64) {
	xs = make([]float64, len(t.Samples))
	ys = make([]float64, len(t.Samples))
	for i, s := range t.Samples {
		xs[i] = s.PositionX
		ys[i] = s.PositionY
	}
	return xs, ys
}
