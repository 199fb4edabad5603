// Package engine wraps the trajectory model in the JSON run envelope shared by the
// CLI, the terminal view and the WASM bridge.
//
// A run is a single pass:
//
//  1. Validate - the model configuration and the launch parameters are checked,
//     and a run ID is assigned when the input carries none.
//
//  2. Compute - the model produces the sampled trajectory; the summary is dropped
//     when the input asks for samples only.
package engine

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/cxd309/trajectory-engine/internal/kinematics"
)

// New constructs an Engine from a TrajectoryInput, validating the model and launch.
func New(input TrajectoryInput) (*Engine, error) {
	model := kinematics.Default()
	if input.Model != nil {
		model = *input.Model
	}
	if err := model.Validate(); err != nil {
		return nil, fmt.Errorf("model: %w", err)
	}
	if err := input.Launch.Validate(); err != nil {
		return nil, fmt.Errorf("launch: %w", err)
	}

	meta := input.Meta
	if meta.RunID == "" {
		meta.RunID = uuid.NewString()
	}

	return &Engine{
		meta:        meta,
		model:       model,
		launch:      input.Launch,
		skipSummary: input.SkipSummary,
	}, nil
}

// Run executes the computation and returns the log.
func (e *Engine) Run() (TrajectoryLog, error) {
	tr, err := e.model.Compute(e.launch)
	if err != nil {
		return TrajectoryLog{}, fmt.Errorf("run %s: %w", e.meta.RunID, err)
	}

	log := Logger().With("run_id", e.meta.RunID, "mode", tr.Launch.Mode)
	switch tr.Status {
	case kinematics.StatusNoFlight:
		log.Warn("no real landing time, trajectory collapsed to launch point")
	case kinematics.StatusUnreachable:
		log.Warn("target range unreachable with zero horizontal velocity", "range", tr.Launch.Range)
	default:
		log.Debug("trajectory computed", "flight_time", tr.FlightTime, "samples", len(tr.Samples))
	}

	out := TrajectoryLog{
		Meta:       e.meta,
		Model:      e.model,
		Launch:     tr.Launch,
		Status:     tr.Status,
		FlightTime: tr.FlightTime,
		Samples:    tr.Samples,
		Summary:    tr.Summary,
	}
	if e.skipSummary {
		out.Summary = nil
	}
	return out, nil
}

// Compute is shorthand for New followed by Run.
func Compute(input TrajectoryInput) (TrajectoryLog, error) {
	e, err := New(input)
	if err != nil {
		return TrajectoryLog{}, err
	}
	return e.Run()
}

// RunJSON is the primary entry point for the CLI and WASM targets.
// It accepts a JSON-encoded TrajectoryInput, runs the computation, and returns a
// JSON-encoded TrajectoryLog.
func RunJSON(jsonInput string) (string, error) {
	var input TrajectoryInput
	if err := json.Unmarshal([]byte(jsonInput), &input); err != nil {
		return "", fmt.Errorf("invalid input JSON: %w", err)
	}

	trajLog, err := Compute(input)
	if err != nil {
		return "", err
	}

	out, err := json.Marshal(trajLog)
	if err != nil {
		return "", fmt.Errorf("marshaling output: %w", err)
	}
	return string(out), nil
}
