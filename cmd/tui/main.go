// Command tui opens an interactive terminal view of one trajectory. Arrow keys
// select and step a launch parameter and the trajectory is re-evaluated on every
// change.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"

	"github.com/cxd309/trajectory-engine/internal/config"
	"github.com/cxd309/trajectory-engine/internal/kinematics"
	"github.com/cxd309/trajectory-engine/internal/logging"
	"github.com/cxd309/trajectory-engine/internal/tui"
)

func main() {
	var (
		configPath = flag.String("config", "", "JSON config file (TRAJECTORY_* env vars override it)")
		mode       = flag.String("mode", "ground", "launch mode: ground, elevated or range")
		speed      = flag.Float64("speed", 50, "initial speed (m/s)")
		angle      = flag.Float64("angle", 45, "launch angle (degrees, 0-90)")
		height     = flag.Float64("height", 10, "initial height (m), elevated mode")
		rng        = flag.Float64("range", 100, "known horizontal range (m), range mode")
		logPath    = flag.String("log", "", "append logs to this file (the terminal is in use)")
	)
	flag.Parse()

	m, err := kinematics.ParseMode(*mode)
	if err != nil {
		fail(err)
	}
	launch := kinematics.Launch{Mode: m, Speed: *speed, Angle: *angle, Height: *height, Range: *rng}
	if err := launch.Validate(); err != nil {
		fail(err)
	}

	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		fail(err)
	}

	log := logging.New(io.Discard, "ERROR", "text")
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fail(err)
		}
		defer f.Close()
		log = logging.New(f, cfg.LogLevel, cfg.LogFormat)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fail(err)
	}
	if err := screen.Init(); err != nil {
		fail(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err = tui.New(screen, cfg.Model(), launch, log).Run(ctx)
	stop()
	screen.Fini()
	if err != nil && !errors.Is(err, context.Canceled) {
		fail(err)
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
