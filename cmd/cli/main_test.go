package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cxd309/trajectory-engine/internal/engine"
	"github.com/cxd309/trajectory-engine/internal/kinematics"
	"github.com/cxd309/trajectory-engine/internal/table"
)

func TestRunReport(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run([]string{"-speed", "50", "-angle", "45"}, nil, &stdout, &stderr)
	require.NoError(t, err, stderr.String())

	assert.Contains(t, stdout.String(), "7.07 seconds")
	assert.Contains(t, stdout.String(), "250.00 meters")
}

func TestRunJSONFromStdin(t *testing.T) {
	in := strings.NewReader(`{"run_meta":{"run_id":"stdin"},"launch":{"mode":"elevated","speed":0,"angle":0,"height":10}}`)
	var stdout, stderr bytes.Buffer
	require.NoError(t, run([]string{"-"}, in, &stdout, &stderr))

	var out engine.TrajectoryLog
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &out))
	assert.Equal(t, "stdin", out.Meta.RunID)
	assert.InDelta(t, 1.414, out.FlightTime, 1e-3)
	assert.Equal(t, kinematics.Default(), out.Model)
}

func TestRunConfigGravity(t *testing.T) {
	t.Setenv("TRAJECTORY_GRAVITY", "1.62")
	t.Setenv("TRAJECTORY_SAMPLES", "10")

	var stdout, stderr bytes.Buffer
	require.NoError(t, run([]string{"-json", "-speed", "10", "-angle", "90", "-no-summary"}, nil, &stdout, &stderr))

	var out engine.TrajectoryLog
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &out))
	assert.Len(t, out.Samples, 10)
	assert.InDelta(t, 20/1.62, out.FlightTime, 1e-9)
	assert.Nil(t, out.Summary)
}

func TestRunExports(t *testing.T) {
	t.Setenv("TRAJECTORY_AUDIO_SECONDS", "0.2")
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "projectile_data.csv")
	plotPath := filepath.Join(dir, "trajectory.png")
	wavPath := filepath.Join(dir, "flight.wav")

	var stdout, stderr bytes.Buffer
	err := run([]string{
		"-mode", "range", "-speed", "50", "-angle", "45", "-range", "100",
		"-csv", csvPath, "-plot", plotPath, "-wav", wavPath,
	}, nil, &stdout, &stderr)
	require.NoError(t, err, stderr.String())

	f, err := os.Open(csvPath)
	require.NoError(t, err)
	defer f.Close()
	samples, err := table.Read(f)
	require.NoError(t, err)
	require.Len(t, samples, kinematics.DefaultSamples)
	assert.InDelta(t, 100, samples[len(samples)-1].PositionX, 1e-9)

	for _, p := range []string{plotPath, wavPath} {
		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}
	assert.Contains(t, stderr.String(), "wrote chart")
}

func TestRunElevatedDefaultHeight(t *testing.T) {
	var stdout, stderr bytes.Buffer
	require.NoError(t, run([]string{"-json", "-mode", "elevated", "-speed", "0", "-angle", "0"}, nil, &stdout, &stderr))

	var out engine.TrajectoryLog
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &out))
	assert.Equal(t, 10.0, out.Launch.Height)
	assert.InDelta(t, 1.414, out.FlightTime, 1e-3)
	assert.Equal(t, 10.0, out.Samples[0].PositionY)
}

func TestRunCSVToStdout(t *testing.T) {
	var stdout, stderr bytes.Buffer
	require.NoError(t, run([]string{"-speed", "20", "-angle", "30", "-csv", "-"}, nil, &stdout, &stderr))

	got := stdout.String()
	assert.Contains(t, got, "Time in the air")
	i := strings.Index(got, strings.Join(table.Header, ","))
	require.GreaterOrEqual(t, i, 0, got)

	samples, err := table.Read(strings.NewReader(got[i:]))
	require.NoError(t, err)
	require.Len(t, samples, kinematics.DefaultSamples)
	assert.InDelta(t, 2.0, samples[len(samples)-1].Time, 1e-12)
}

func TestRunErrors(t *testing.T) {
	cases := map[string][]string{
		"bad mode":       {"-mode", "sideways"},
		"bad angle":      {"-angle", "91"},
		"negative speed": {"-speed", "-3"},
		"two inputs":     {"a.json", "b.json"},
		"missing file":   {filepath.Join(t.TempDir(), "none.json")},
		"bad plot":       {"-plot", filepath.Join(t.TempDir(), "chart.bmp")},
		"unknown flag":   {"-drag", "0.3"},
		"csv with json":  {"-json", "-csv", "-"},
		"overflow":       {"-json", "-mode", "elevated", "-speed", "1e160"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			assert.Error(t, run(args, nil, &stdout, &stderr))
		})
	}
}
