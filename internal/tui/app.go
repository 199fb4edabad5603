// Package tui is a terminal view for re-evaluating one trajectory while tuning
// its launch parameters one at a time.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/guptarohit/asciigraph"

	"github.com/cxd309/trajectory-engine/internal/engine"
	"github.com/cxd309/trajectory-engine/internal/kinematics"
	"github.com/cxd309/trajectory-engine/internal/report"
)

// param identifies a tunable launch parameter.
type param int

const (
	paramSpeed param = iota
	paramAngle
	paramHeight
	paramRange
)

type paramInfo struct {
	name string
	unit string
	step float64
	min  float64
	max  float64
}

var params = map[param]paramInfo{
	paramSpeed:  {name: "Speed", unit: "m/s", step: 1, min: 0, max: 1000},
	paramAngle:  {name: "Angle", unit: "°", step: 1, min: 0, max: 90},
	paramHeight: {name: "Height", unit: "m", step: 1, min: 0, max: 10000},
	paramRange:  {name: "Range", unit: "m", step: 5, min: 0, max: 100000},
}

var modeCycle = []kinematics.Mode{kinematics.ModeGround, kinematics.ModeElevated, kinematics.ModeRangeGiven}

var (
	titleStyle    = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	labelStyle    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	valueStyle    = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	selectedStyle = tcell.StyleDefault.Foreground(tcell.ColorFuchsia).Bold(true)
	plotStyle     = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	noteStyle     = tcell.StyleDefault.Foreground(tcell.ColorRed)
	helpStyle     = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
)

// App holds the view state. It is driven by HandleEvent and Draw, or by Run.
type App struct {
	screen   tcell.Screen
	model    kinematics.Model
	launch   kinematics.Launch
	selected int
	traj     kinematics.Trajectory
	err      error
	log      *slog.Logger
}

// New creates an App on screen and computes the initial trajectory. A nil log
// discards output.
func New(screen tcell.Screen, model kinematics.Model, launch kinematics.Launch, log *slog.Logger) *App {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if launch.Mode == "" {
		launch.Mode = kinematics.ModeGround
	}
	a := &App{screen: screen, model: model, launch: launch, log: log}
	a.evaluate()
	return a
}

// Launch returns the current launch parameters.
func (a *App) Launch() kinematics.Launch { return a.launch }

// Trajectory returns the trajectory for the current launch parameters.
func (a *App) Trajectory() kinematics.Trajectory { return a.traj }

// Err returns the error of the last evaluation, if any.
func (a *App) Err() error { return a.err }

// visible returns the parameters meaningful in the current mode.
func (a *App) visible() []param {
	switch a.launch.Mode {
	case kinematics.ModeElevated:
		return []param{paramSpeed, paramAngle, paramHeight}
	case kinematics.ModeRangeGiven:
		return []param{paramSpeed, paramAngle, paramRange}
	default:
		return []param{paramSpeed, paramAngle}
	}
}

func (a *App) value(p param) *float64 {
	switch p {
	case paramSpeed:
		return &a.launch.Speed
	case paramAngle:
		return &a.launch.Angle
	case paramHeight:
		return &a.launch.Height
	default:
		return &a.launch.Range
	}
}

func (a *App) evaluate() {
	out, err := engine.Compute(engine.TrajectoryInput{
		Meta:   engine.RunMeta{RunID: "tui"},
		Model:  &a.model,
		Launch: a.launch,
	})
	a.err = err
	if err != nil {
		a.log.Error("evaluation failed", "error", err)
		return
	}
	a.traj = out.Trajectory()
	a.log.Debug("re-evaluated", "mode", a.launch.Mode, "speed", a.launch.Speed, "angle", a.launch.Angle,
		"status", a.traj.Status, "flight_time", a.traj.FlightTime)
}

// adjust moves the selected parameter by steps increments, clamped to its domain.
func (a *App) adjust(steps float64) {
	p := a.visible()[a.selected]
	info := params[p]
	v := a.value(p)
	next := math.Round((*v+steps*info.step)*1000) / 1000
	*v = math.Max(info.min, math.Min(info.max, next))
	a.evaluate()
}

func (a *App) move(delta int) {
	n := len(a.visible())
	a.selected = ((a.selected+delta)%n + n) % n
}

func (a *App) cycleMode() {
	for i, m := range modeCycle {
		if m == a.launch.Mode {
			a.launch.Mode = modeCycle[(i+1)%len(modeCycle)]
			break
		}
	}
	if a.selected >= len(a.visible()) {
		a.selected = len(a.visible()) - 1
	}
	a.evaluate()
}

// HandleEvent applies ev and reports whether the view should keep running.
//
// Keys: Up/Down/Tab select, Left/Right step, PgUp/PgDn step x10, m cycles the
// mode, q/Esc/Ctrl-C quit.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyUp, tcell.KeyBacktab:
			a.move(-1)
		case tcell.KeyDown, tcell.KeyTab:
			a.move(1)
		case tcell.KeyLeft:
			a.adjust(-1)
		case tcell.KeyRight:
			a.adjust(1)
		case tcell.KeyPgDn:
			a.adjust(-10)
		case tcell.KeyPgUp:
			a.adjust(10)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case 'm':
				a.cycleMode()
			case '+':
				a.adjust(1)
			case '-':
				a.adjust(-1)
			}
		}
	case *tcell.EventResize:
		a.screen.Sync()
	}
	return true
}

// Draw renders the current state and shows it.
func (a *App) Draw() {
	a.screen.Clear()
	w, h := a.screen.Size()
	y := 0

	a.text(0, y, titleStyle, fmt.Sprintf("Projectile Trajectory | mode: %s", a.launch.Mode))
	y += 2

	for i, p := range a.visible() {
		info := params[p]
		line := fmt.Sprintf("%-8s %10.2f %s", info.name, *a.value(p), info.unit)
		if i == a.selected {
			a.text(0, y, selectedStyle, "> "+line)
		} else {
			a.text(0, y, labelStyle, "  "+line)
		}
		y++
	}
	y++

	if a.err != nil {
		a.text(0, y, noteStyle, a.err.Error())
		y += 2
	} else {
		for _, l := range report.Lines(a.traj) {
			a.text(2, y, labelStyle, fmt.Sprintf("%-16s", l.Label))
			a.text(18, y, valueStyle, l.Value)
			y++
		}
		if n := report.Note(a.traj); n != "" {
			a.text(2, y, noteStyle, n)
			y++
		}
		y++

		plotH := h - y - 3
		if a.traj.FlightTime > 0 && plotH >= 3 && w > 20 {
			_, ys := a.traj.Positions()
			chart := asciigraph.Plot(ys,
				asciigraph.Height(plotH),
				asciigraph.Width(min(w-12, 100)),
				asciigraph.Precision(1),
				asciigraph.Caption("Position Y (m) over Position X"))
			for _, line := range strings.Split(chart, "\n") {
				a.text(0, y, plotStyle, line)
				y++
			}
		}
	}

	a.text(0, h-1, helpStyle, "↑↓:Select  ←→:Adjust  PgUp/PgDn:x10  m:Mode  q:Quit")
	a.screen.Show()
}

func (a *App) text(x, y int, style tcell.Style, s string) {
	for _, r := range s {
		a.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

// Run draws and processes events until a quit key or ctx is done. It returns
// nil on quit and ctx.Err() on cancellation.
func (a *App) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	a.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if !a.HandleEvent(ev) {
				return nil
			}
			a.Draw()
		}
	}
}
