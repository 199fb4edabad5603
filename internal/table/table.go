// Package table converts trajectory samples to and from their CSV tabular form.
package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/cxd309/trajectory-engine/internal/kinematics"
)

// Header is the column header row, in column order.
var Header = []string{
	"Time (s)",
	"Position X (m)",
	"Position Y (m)",
	"Velocity X (m/s)",
	"Velocity Y (m/s)",
	"Acceleration X (m/s²)",
	"Acceleration Y (m/s²)",
}

// ErrHeader is returned by Read when the first row is not Header.
var ErrHeader = errors.New("table: unexpected header row")

// Records returns the header row followed by one row per sample. Floats use the
// shortest representation that parses back to the same value.
func Records(samples []kinematics.Sample) [][]string {
	rows := make([][]string, 0, len(samples)+1)
	rows = append(rows, append([]string(nil), Header...))
	for _, s := range samples {
		rows = append(rows, []string{
			formatFloat(s.Time),
			formatFloat(s.PositionX),
			formatFloat(s.PositionY),
			formatFloat(s.VelocityX),
			formatFloat(s.VelocityY),
			formatFloat(s.AccelerationX),
			formatFloat(s.AccelerationY),
		})
	}
	return rows
}

// Write encodes samples as CSV to w.
func Write(w io.Writer, samples []kinematics.Sample) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(Records(samples)); err != nil {
		return fmt.Errorf("table: writing csv: %w", err)
	}
	return nil
}

// Read parses CSV produced by Write back into samples.
func Read(r io.Reader) ([]kinematics.Sample, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(Header)

	head, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("table: reading header: %w", err)
	}
	for i, col := range Header {
		if head[i] != col {
			return nil, fmt.Errorf("%w: column %d is %q, want %q", ErrHeader, i, head[i], col)
		}
	}

	var samples []kinematics.Sample
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("table: reading row: %w", err)
		}

		var vals [7]float64
		for i, field := range row {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("table: line %d column %q: %w", line, Header[i], err)
			}
			vals[i] = v
		}
		samples = append(samples, kinematics.Sample{
			Time:          vals[0],
			PositionX:     vals[1],
			PositionY:     vals[2],
			VelocityX:     vals[3],
			VelocityY:     vals[4],
			AccelerationX: vals[5],
			AccelerationY: vals[6],
		})
	}
	return samples, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
