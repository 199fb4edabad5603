// Package sonify renders a trajectory as sound: a tone whose pitch follows the
// projectile's altitude from launch to impact.
package sonify

import (
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"

	"github.com/cxd309/trajectory-engine/internal/kinematics"
)

// fadeSeconds is the length of the fade in and fade out applied to the tone.
const fadeSeconds = 0.01

// Options controls the rendered tone.
type Options struct {
	SampleRate int           // Hz
	Duration   time.Duration // playback length, independent of flight time
	LowHz      float64       // pitch at the lowest altitude
	HighHz     float64       // pitch at the highest altitude
	Volume     float64       // peak amplitude, (0, 1]
}

// DefaultOptions returns a 3 second tone at 44.1 kHz sweeping 220-880 Hz.
func DefaultOptions() Options {
	return Options{
		SampleRate: 44100,
		Duration:   3 * time.Second,
		LowHz:      220,
		HighHz:     880,
		Volume:     0.3,
	}
}

// FlightStreamer is a beep.Streamer playing the altitude profile of a trajectory.
type FlightStreamer struct {
	heights []float64 // altitude per trajectory sample, normalised to [0, 1]
	opts    Options
	rate    beep.SampleRate
	total   int
	pos     int
	phase   float64
}

// NewFlightStreamer creates a streamer for tr. A trajectory without altitude
// change plays a steady tone at LowHz.
func NewFlightStreamer(tr kinematics.Trajectory, opts Options) *FlightStreamer {
	rate := beep.SampleRate(opts.SampleRate)

	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, s := range tr.Samples {
		minY = math.Min(minY, s.PositionY)
		maxY = math.Max(maxY, s.PositionY)
	}
	heights := make([]float64, len(tr.Samples))
	if span := maxY - minY; span > 0 {
		for i, s := range tr.Samples {
			heights[i] = (s.PositionY - minY) / span
		}
	}

	return &FlightStreamer{
		heights: heights,
		opts:    opts,
		rate:    rate,
		total:   rate.N(opts.Duration),
	}
}

// Len returns the total number of audio samples the streamer produces.
func (f *FlightStreamer) Len() int { return f.total }

// frequency returns the pitch at progress p through the flight, p in [0, 1].
func (f *FlightStreamer) frequency(p float64) float64 {
	h := 0.0
	if n := len(f.heights); n == 1 {
		h = f.heights[0]
	} else if n > 1 {
		idx := p * float64(n-1)
		i := int(math.Floor(idx))
		if i >= n-1 {
			h = f.heights[n-1]
		} else {
			frac := idx - float64(i)
			h = f.heights[i]*(1-frac) + f.heights[i+1]*frac
		}
	}
	return f.opts.LowHz + h*(f.opts.HighHz-f.opts.LowHz)
}

func (f *FlightStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	if f.pos >= f.total {
		return 0, false
	}
	fade := fadeSeconds * float64(f.rate)
	for i := range samples {
		if f.pos >= f.total {
			return i, true
		}
		p := 0.0
		if f.total > 1 {
			p = float64(f.pos) / float64(f.total-1)
		}
		f.phase += 2 * math.Pi * f.frequency(p) / float64(f.rate)
		if f.phase > 2*math.Pi {
			f.phase -= 2 * math.Pi
		}

		env := math.Min(1, math.Min(float64(f.pos)/fade, float64(f.total-1-f.pos)/fade))
		v := f.opts.Volume * env * math.Sin(f.phase)
		samples[i][0] = v
		samples[i][1] = v
		f.pos++
	}
	return len(samples), true
}

func (f *FlightStreamer) Err() error {
	return nil
}

// EncodeWAV writes tr as a 16-bit stereo WAV to w.
func EncodeWAV(w io.WriteSeeker, tr kinematics.Trajectory, opts Options) error {
	if opts.SampleRate <= 0 || opts.Duration <= 0 {
		return fmt.Errorf("sonify: sample rate and duration must be positive, got %d Hz for %v", opts.SampleRate, opts.Duration)
	}
	format := beep.Format{
		SampleRate:  beep.SampleRate(opts.SampleRate),
		NumChannels: 2,
		Precision:   2,
	}
	if err := wav.Encode(w, NewFlightStreamer(tr, opts), format); err != nil {
		return fmt.Errorf("sonify: encoding wav: %w", err)
	}
	return nil
}

// WriteFile renders tr into a WAV file at path.
func WriteFile(path string, tr kinematics.Trajectory, opts Options) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("sonify: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("sonify: %w", cerr)
		}
	}()
	return EncodeWAV(f, tr, opts)
}
