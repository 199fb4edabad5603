// Package kinematics implements the closed-form point-mass projectile model: launch
// parameters in, a time-sampled trajectory and its summary metrics out.
//
// The model is pure. Every call to Model.Compute builds a fresh Trajectory from its
// inputs and holds no state between calls. Degenerate flights (no real landing time,
// or a range that cannot be reached) are reported through Status rather than errors,
// so callers can always render something.
package kinematics

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	// ErrInvalidLaunch is wrapped by every launch-parameter precondition failure.
	ErrInvalidLaunch = errors.New("invalid launch parameters")

	// ErrUnknownMode is returned when a mode tag is not one of the known modes.
	ErrUnknownMode = errors.New("unknown launch mode")
)

// Mode selects which optional launch parameter governs the flight time.
type Mode string

const (
	// ModeGround launches and lands at height zero. Height and range are ignored.
	ModeGround Mode = "ground"
	// ModeElevated launches from Height and lands at zero. Range is ignored.
	ModeElevated Mode = "elevated"
	// ModeRangeGiven infers the flight time from a known horizontal Range. Height is ignored.
	ModeRangeGiven Mode = "range"
)

// ParseMode maps a mode tag to a Mode. An empty tag selects ModeGround.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ModeGround, nil
	case ModeGround, ModeElevated, ModeRangeGiven:
		return m, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownMode, s)
	}
}

func (m Mode) String() string { return string(m) }

// UnmarshalJSON implements json.Unmarshaler. Unknown tags are rejected.
func (m *Mode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("reading launch mode: %w", err)
	}
	parsed, err := ParseMode(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Launch holds the inputs of a single computation.
// Speed is in m/s, Angle in degrees from horizontal, Height and Range in metres.
type Launch struct {
	Mode   Mode    `json:"mode"`
	Speed  float64 `json:"speed"`            // v0, m/s
	Angle  float64 `json:"angle"`            // degrees, [0, 90]
	Height float64 `json:"height,omitempty"` // h0, metres; ModeElevated only
	Range  float64 `json:"range,omitempty"`  // r, metres; ModeRangeGiven only
}

// Validate checks the launch preconditions: speed, height and range non-negative and
// finite, angle within [0, 90] and a known mode. Fields ignored by the active mode
// are still checked, so a bad value never hides behind a mode switch.
func (l Launch) Validate() error {
	if _, err := ParseMode(string(l.Mode)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidLaunch, err)
	}
	if !finiteNonNegative(l.Speed) {
		return fmt.Errorf("%w: speed must be a finite value >= 0, got %v", ErrInvalidLaunch, l.Speed)
	}
	if math.IsNaN(l.Angle) || l.Angle < 0 || l.Angle > 90 {
		return fmt.Errorf("%w: angle must be within [0, 90] degrees, got %v", ErrInvalidLaunch, l.Angle)
	}
	if !finiteNonNegative(l.Height) {
		return fmt.Errorf("%w: height must be a finite value >= 0, got %v", ErrInvalidLaunch, l.Height)
	}
	if !finiteNonNegative(l.Range) {
		return fmt.Errorf("%w: range must be a finite value >= 0, got %v", ErrInvalidLaunch, l.Range)
	}
	return nil
}

// mode returns the effective mode, treating the zero value as ModeGround.
func (l Launch) mode() Mode {
	if l.Mode == "" {
		return ModeGround
	}
	return l.Mode
}

// initialHeight is y0: the launch height in ModeElevated, zero otherwise.
func (l Launch) initialHeight() float64 {
	if l.mode() == ModeElevated {
		return l.Height
	}
	return 0
}

// velocity decomposes Speed at Angle into horizontal and vertical components.
// 0° and 90° are snapped so the orthogonal component is exactly zero.
func (l Launch) velocity() (vx, vy float64) {
	switch l.Angle {
	case 0:
		return l.Speed, 0
	case 90:
		return 0, l.Speed
	}
	sin, cos := math.Sincos(l.Angle * math.Pi / 180)
	return l.Speed * cos, l.Speed * sin
}

func finiteNonNegative(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}
