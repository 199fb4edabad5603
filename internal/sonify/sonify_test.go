package sonify

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cxd309/trajectory-engine/internal/kinematics"
)

func flight(t *testing.T, l kinematics.Launch) kinematics.Trajectory {
	t.Helper()
	tr, err := kinematics.Default().Compute(l)
	require.NoError(t, err)
	return tr
}

// TestFlightStreamerPitch verifies pitch tracks altitude
func TestFlightStreamerPitch(t *testing.T) {
	opts := DefaultOptions()
	s := NewFlightStreamer(flight(t, kinematics.Launch{Mode: kinematics.ModeGround, Speed: 30, Angle: 60}), opts)

	assert.InDelta(t, opts.LowHz, s.frequency(0), 1e-6)
	assert.InDelta(t, opts.HighHz, s.frequency(0.5), 1)
	assert.InDelta(t, opts.LowHz, s.frequency(1), 1e-6)
	assert.Greater(t, s.frequency(0.4), s.frequency(0.2))
}

// TestFlightStreamerFlatTone verifies a degenerate flight plays a steady low tone
func TestFlightStreamerFlatTone(t *testing.T) {
	opts := DefaultOptions()
	s := NewFlightStreamer(flight(t, kinematics.Launch{Mode: kinematics.ModeRangeGiven, Speed: 30, Angle: 90, Range: 10}), opts)
	for _, p := range []float64{0, 0.3, 1} {
		assert.Equal(t, opts.LowHz, s.frequency(p))
	}
}

// TestFlightStreamerStream verifies sample count and amplitude bounds
func TestFlightStreamerStream(t *testing.T) {
	opts := DefaultOptions()
	opts.SampleRate = 8000
	opts.Duration = 250 * time.Millisecond

	s := NewFlightStreamer(flight(t, kinematics.Launch{Mode: kinematics.ModeElevated, Speed: 15, Angle: 20, Height: 30}), opts)
	require.Equal(t, 2000, s.Len())

	buf := make([][2]float64, 512)
	total := 0
	for {
		n, ok := s.Stream(buf)
		if !ok {
			break
		}
		for i := 0; i < n; i++ {
			assert.LessOrEqual(t, buf[i][0], opts.Volume)
			assert.GreaterOrEqual(t, buf[i][0], -opts.Volume)
			assert.Equal(t, buf[i][0], buf[i][1])
		}
		total += n
	}
	assert.Equal(t, 2000, total)
	assert.NoError(t, s.Err())

	n, ok := s.Stream(buf)
	assert.Equal(t, 0, n)
	assert.False(t, ok)
}

// TestWriteFileRoundTrip verifies the WAV decodes with the requested format
func TestWriteFileRoundTrip(t *testing.T) {
	opts := DefaultOptions()
	opts.SampleRate = 22050
	opts.Duration = 500 * time.Millisecond

	path := filepath.Join(t.TempDir(), "flight.wav")
	require.NoError(t, WriteFile(path, flight(t, kinematics.Launch{Speed: 20, Angle: 45}), opts))

	f, err := os.Open(path)
	require.NoError(t, err)

	stream, format, err := wav.Decode(f)
	require.NoError(t, err)
	defer stream.Close() // also closes f

	assert.Equal(t, beep.SampleRate(22050), format.SampleRate)
	assert.Equal(t, 2, format.NumChannels)
	assert.Equal(t, 2, format.Precision)
	assert.Equal(t, format.SampleRate.N(opts.Duration), stream.Len())
}

func TestEncodeWAVRejectsBadOptions(t *testing.T) {
	opts := DefaultOptions()
	opts.Duration = 0
	path := filepath.Join(t.TempDir(), "silent.wav")
	assert.Error(t, WriteFile(path, flight(t, kinematics.Launch{Speed: 1, Angle: 1}), opts))
}
