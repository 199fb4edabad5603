// Command trajectory computes one projectile trajectory and prints its summary.
//
// Launch parameters come from flags, or from a TrajectoryInput JSON file argument
// ("-" reads stdin), in which case the TrajectoryLog JSON is written to stdout as
// with -json. Optional exports write the samples as CSV, a chart and a WAV tone.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/cxd309/trajectory-engine/internal/chart"
	"github.com/cxd309/trajectory-engine/internal/config"
	"github.com/cxd309/trajectory-engine/internal/engine"
	"github.com/cxd309/trajectory-engine/internal/kinematics"
	"github.com/cxd309/trajectory-engine/internal/logging"
	"github.com/cxd309/trajectory-engine/internal/report"
	"github.com/cxd309/trajectory-engine/internal/sonify"
	"github.com/cxd309/trajectory-engine/internal/table"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	configPath string
	mode       string
	launch     kinematics.Launch
	asJSON     bool
	noSummary  bool
	csvPath    string
	plotPath   string
	wavPath    string
	inputPath  string
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("trajectory", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.configPath, "config", "", "JSON config file (TRAJECTORY_* env vars override it)")
	fs.StringVar(&o.mode, "mode", "ground", "launch mode: ground, elevated or range")
	fs.Float64Var(&o.launch.Speed, "speed", 50, "initial speed (m/s)")
	fs.Float64Var(&o.launch.Angle, "angle", 45, "launch angle (degrees, 0-90)")
	fs.Float64Var(&o.launch.Height, "height", 10, "initial height (m), elevated mode")
	fs.Float64Var(&o.launch.Range, "range", 0, "known horizontal range (m), range mode")
	fs.BoolVar(&o.asJSON, "json", false, "write the JSON log instead of the report")
	fs.BoolVar(&o.noSummary, "no-summary", false, "omit the summary metrics")
	fs.StringVar(&o.csvPath, "csv", "", "write the samples as CSV to this file (\"-\" prints them after the report)")
	fs.StringVar(&o.plotPath, "plot", "", "write a chart to this file (.png, .svg, .pdf or .eps)")
	fs.StringVar(&o.wavPath, "wav", "", "write the flight as a WAV tone to this file")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 1 {
		return options{}, fmt.Errorf("expected at most one input file, got %d", fs.NArg())
	}
	o.inputPath = fs.Arg(0)
	if o.csvPath == "-" && (o.asJSON || o.inputPath != "") {
		return options{}, fmt.Errorf("-csv - cannot share stdout with the JSON log")
	}
	return o, nil
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	o, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	cfg, err := config.LoadWithEnv(o.configPath)
	if err != nil {
		return err
	}
	engine.SetLogger(logging.New(stderr, cfg.LogLevel, cfg.LogFormat))

	input, err := buildInput(o, cfg, stdin)
	if err != nil {
		return err
	}

	trajLog, err := engine.Compute(input)
	if err != nil {
		return err
	}
	tr := trajLog.Trajectory()

	if err := export(o, cfg, tr); err != nil {
		return err
	}

	if o.asJSON || o.inputPath != "" {
		enc := json.NewEncoder(stdout)
		if err := enc.Encode(trajLog); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
		return nil
	}
	if _, err := fmt.Fprintln(stdout, report.Render(tr)); err != nil {
		return err
	}
	if o.csvPath == "-" {
		return table.Write(stdout, tr.Samples)
	}
	return nil
}

// buildInput reads the JSON input file when one is given, otherwise it assembles
// the input from flags. The config supplies the model when the input has none.
func buildInput(o options, cfg *config.Config, stdin io.Reader) (engine.TrajectoryInput, error) {
	model := cfg.Model()

	if o.inputPath == "" {
		mode, err := kinematics.ParseMode(o.mode)
		if err != nil {
			return engine.TrajectoryInput{}, err
		}
		l := o.launch
		l.Mode = mode
		return engine.TrajectoryInput{Model: &model, Launch: l, SkipSummary: o.noSummary}, nil
	}

	var (
		data []byte
		err  error
	)
	if o.inputPath == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(o.inputPath)
	}
	if err != nil {
		return engine.TrajectoryInput{}, fmt.Errorf("reading input: %w", err)
	}

	var input engine.TrajectoryInput
	if err := json.Unmarshal(data, &input); err != nil {
		return engine.TrajectoryInput{}, fmt.Errorf("invalid input JSON: %w", err)
	}
	if input.Model == nil {
		input.Model = &model
	}
	input.SkipSummary = input.SkipSummary || o.noSummary
	return input, nil
}

func export(o options, cfg *config.Config, tr kinematics.Trajectory) error {
	log := engine.Logger()

	if o.csvPath != "" && o.csvPath != "-" {
		if err := writeCSV(o.csvPath, tr.Samples); err != nil {
			return err
		}
		log.Info("wrote samples", "path", o.csvPath, "rows", len(tr.Samples))
	}
	if o.plotPath != "" {
		opts := chart.DefaultOptions()
		opts.Width, opts.Height = cfg.ChartWidth, cfg.ChartHeight
		if err := chart.Save(o.plotPath, tr, opts); err != nil {
			return err
		}
		log.Info("wrote chart", "path", o.plotPath)
	}
	if o.wavPath != "" {
		opts := sonify.DefaultOptions()
		opts.SampleRate = cfg.AudioSampleRate
		opts.Duration = time.Duration(cfg.AudioSeconds * float64(time.Second))
		if err := sonify.WriteFile(o.wavPath, tr, opts); err != nil {
			return err
		}
		log.Info("wrote audio", "path", o.wavPath, "duration", opts.Duration)
	}
	return nil
}

func writeCSV(path string, samples []kinematics.Sample) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("writing csv: %w", cerr)
		}
	}()
	return table.Write(f, samples)
}
