package engine

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cxd309/trajectory-engine/internal/kinematics"
)

func TestRunJSON(t *testing.T) {
	in := `{
		"run_meta": {"run_id": "demo-1"},
		"launch": {"mode": "range", "speed": 50, "angle": 45, "range": 100}
	}`

	out, err := RunJSON(in)
	require.NoError(t, err)

	var got TrajectoryLog
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "demo-1", got.Meta.RunID)
	assert.Equal(t, kinematics.Default(), got.Model)
	assert.Equal(t, kinematics.StatusOK, got.Status)
	assert.InDelta(t, 2.828, got.FlightTime, 1e-3)
	require.Len(t, got.Samples, kinematics.DefaultSamples)
	require.NotNil(t, got.Summary)
	assert.InDelta(t, 100, got.Summary.Range, 1e-9)
}

func TestRunJSONCustomModel(t *testing.T) {
	in := `{"model": {"gravity": 1.62, "samples": 20}, "launch": {"speed": 10, "angle": 90}, "skip_summary": true}`

	out, err := RunJSON(in)
	require.NoError(t, err)

	var got TrajectoryLog
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Len(t, got.Samples, 20)
	assert.InDelta(t, 20/1.62, got.FlightTime, 1e-9)
	assert.Nil(t, got.Summary)
	assert.NotContains(t, out, `"summary"`)
	assert.Equal(t, kinematics.ModeGround, got.Launch.Mode)

	_, err = uuid.Parse(got.Meta.RunID)
	assert.NoError(t, err, "generated run id should be a UUID")
}

func TestRunJSONErrors(t *testing.T) {
	cases := map[string]struct {
		input string
		is    error
	}{
		"malformed":     {input: `{"launch":`},
		"unknown mode":  {input: `{"launch": {"mode": "lob", "speed": 1, "angle": 1}}`, is: kinematics.ErrUnknownMode},
		"bad angle":     {input: `{"launch": {"speed": 1, "angle": 120}}`, is: kinematics.ErrInvalidLaunch},
		"bad gravity":   {input: `{"model": {"gravity": -9.8, "samples": 10}, "launch": {"speed": 1, "angle": 1}}`, is: kinematics.ErrInvalidModel},
		"missing model": {input: `{"model": {}, "launch": {"speed": 1, "angle": 1}}`, is: kinematics.ErrInvalidModel},
		"overflow":      {input: `{"launch": {"mode": "elevated", "speed": 1e160, "angle": 45}}`, is: kinematics.ErrInvalidLaunch},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := RunJSON(tc.input)
			require.Error(t, err)
			if tc.is != nil {
				assert.True(t, errors.Is(err, tc.is), "got %v", err)
			}
		})
	}
}

func TestRunDegenerateOutcomesLogged(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	got, err := Compute(TrajectoryInput{
		Meta:   RunMeta{RunID: "vertical"},
		Launch: kinematics.Launch{Mode: kinematics.ModeRangeGiven, Speed: 20, Angle: 90, Range: 10},
	})
	require.NoError(t, err)
	assert.Equal(t, kinematics.StatusUnreachable, got.Status)
	assert.Equal(t, 0.0, got.FlightTime)

	logged := buf.String()
	assert.Contains(t, logged, "level=WARN")
	assert.Contains(t, logged, "run_id=vertical")
	assert.Contains(t, logged, "unreachable")

	buf.Reset()
	_, err = Compute(TrajectoryInput{Launch: kinematics.Launch{Speed: 20, Angle: 30}})
	require.NoError(t, err)
	assert.True(t, strings.Contains(buf.String(), "trajectory computed"), buf.String())
}

func TestLoggerDefaultSilent(t *testing.T) {
	SetLogger(nil)
	l := Logger()
	require.NotNil(t, l)
	assert.False(t, l.Enabled(t.Context(), slog.LevelError))
}

func TestTrajectoryLogTrajectory(t *testing.T) {
	got, err := Compute(TrajectoryInput{Launch: kinematics.Launch{Mode: kinematics.ModeElevated, Speed: 5, Angle: 10, Height: 2}})
	require.NoError(t, err)

	tr := got.Trajectory()
	assert.Equal(t, got.Samples, tr.Samples)
	assert.Equal(t, got.Summary, tr.Summary)
	assert.Equal(t, kinematics.ModeElevated, tr.Launch.Mode)
}
