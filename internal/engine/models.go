package engine

import (
	"github.com/cxd309/trajectory-engine/internal/kinematics"
)

// RunMeta holds the identity of a run.
type RunMeta struct {
	RunID string `json:"run_id"`
}

// TrajectoryInput is the JSON-serialisable input to the engine.
// Model is optional; a nil model selects kinematics.Default.
type TrajectoryInput struct {
	Meta        RunMeta           `json:"run_meta"`
	Model       *kinematics.Model `json:"model,omitempty"`
	Launch      kinematics.Launch `json:"launch"`
	SkipSummary bool              `json:"skip_summary,omitempty"`
}

// TrajectoryLog is the complete output of a run.
type TrajectoryLog struct {
	Meta       RunMeta             `json:"run_meta"`
	Model      kinematics.Model    `json:"model"`
	Launch     kinematics.Launch   `json:"launch"`
	Status     kinematics.Status   `json:"status"`
	FlightTime float64             `json:"flight_time"` // seconds
	Samples    []kinematics.Sample `json:"samples"`
	Summary    *kinematics.Summary `json:"summary,omitempty"`
}

// Trajectory returns the log's result as a kinematics.Trajectory, for renderers
// that work on the core type.
func (l TrajectoryLog) Trajectory() kinematics.Trajectory {
	return kinematics.Trajectory{
		Launch:     l.Launch,
		Status:     l.Status,
		FlightTime: l.FlightTime,
		Samples:    l.Samples,
		Summary:    l.Summary,
	}
}

// Engine is a validated, ready-to-run computation.
type Engine struct {
	meta        RunMeta
	model       kinematics.Model
	launch      kinematics.Launch
	skipSummary bool
}
