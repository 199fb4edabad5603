// Package report formats a trajectory summary for terminal output.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cxd309/trajectory-engine/internal/kinematics"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(18)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	noteStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).MarginTop(1)
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 2)
)

// Line is one labelled value of the report.
type Line struct {
	Label string
	Value string
}

// Lines returns the report rows for tr, in display order. Without a summary only
// the flight time is reported.
func Lines(tr kinematics.Trajectory) []Line {
	lines := []Line{{"Time in the air", fmt.Sprintf("%.2f seconds", tr.FlightTime)}}
	if s := tr.Summary; s != nil {
		lines = append(lines,
			Line{"Range", fmt.Sprintf("%.2f meters", s.Range)},
			Line{"Maximum Height", fmt.Sprintf("%.2f meters", s.MaxHeight)},
			Line{"Final Velocity", fmt.Sprintf("%.2f m/s", s.FinalSpeed)},
			Line{"Angle of Impact", fmt.Sprintf("%.2f degrees", s.ImpactAngle)},
		)
	}
	return lines
}

// Note explains a degenerate outcome; empty for a normal flight.
func Note(tr kinematics.Trajectory) string {
	switch tr.Status {
	case kinematics.StatusNoFlight:
		return "No flight: the launch conditions have no landing time."
	case kinematics.StatusUnreachable:
		return "Target unreachable: a vertical launch has no horizontal velocity."
	}
	return ""
}

// Render returns the styled, boxed report.
func Render(tr kinematics.Trajectory) string {
	var b strings.Builder
	l := tr.Launch
	header := fmt.Sprintf("%s launch: %.2f m/s at %.2f°", l.Mode, l.Speed, l.Angle)
	switch l.Mode {
	case kinematics.ModeElevated:
		header += fmt.Sprintf(" from %.2f m", l.Height)
	case kinematics.ModeRangeGiven:
		header += fmt.Sprintf(" over %.2f m", l.Range)
	}
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")

	for _, line := range Lines(tr) {
		b.WriteString(labelStyle.Render(line.Label) + valueStyle.Render(line.Value) + "\n")
	}
	if n := Note(tr); n != "" {
		b.WriteString(noteStyle.Render(n))
	}
	return boxStyle.Render(strings.TrimRight(b.String(), "\n"))
}
