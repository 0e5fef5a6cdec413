package config

import (
	"flag"
	"io"
)

// Flags holds the command-line overrides. Only flags given on the command
// line override other sources.
type Flags struct {
	fs *flag.FlagSet

	config     string
	scene      string
	width      int
	height     int
	tps        float64
	tpf        int64
	frames     int
	workers    int
	background string
	out        string
	zip        string
	window     bool
	terminal   bool
	scale      int
	hold       bool
	debug      bool
	logFile    string
}

// NewFlags registers the overrides on a new flag set.
func NewFlags(name string, output io.Writer) *Flags {
	f := &Flags{fs: flag.NewFlagSet(name, flag.ContinueOnError)}
	if output != nil {
		f.fs.SetOutput(output)
	}
	fs := f.fs
	fs.StringVar(&f.config, "config", "", "Path to config file")
	fs.StringVar(&f.scene, "scene", "", "Path to scene file")
	fs.IntVar(&f.width, "width", 0, "Frame width in pixels")
	fs.IntVar(&f.height, "height", 0, "Frame height in pixels")
	fs.Float64Var(&f.tps, "tps", 0, "Simulation ticks per second")
	fs.Int64Var(&f.tpf, "tpf", 0, "Ticks per frame")
	fs.IntVar(&f.frames, "frames", 0, "Number of frames to render")
	fs.IntVar(&f.workers, "workers", 0, "Frame encoder workers")
	fs.StringVar(&f.background, "background", "", "Background color (hex)")
	fs.StringVar(&f.out, "out", "", "Output directory for frames")
	fs.StringVar(&f.zip, "zip", "", "Write frames to a zip archive")
	fs.BoolVar(&f.window, "window", false, "Play frames in a window")
	fs.BoolVar(&f.terminal, "terminal", false, "Preview frames in the terminal")
	fs.IntVar(&f.scale, "scale", 0, "Window scale factor")
	fs.BoolVar(&f.hold, "hold", false, "Keep the window open after the last frame")
	fs.BoolVar(&f.debug, "debug", false, "Enable debug logging")
	fs.StringVar(&f.logFile, "log-file", "", "Also log to this file")
	return f
}

// Parse parses args, not including the program name.
func (f *Flags) Parse(args []string) error {
	return f.fs.Parse(args)
}

// Args returns the arguments left after the flags.
func (f *Flags) Args() []string { return f.fs.Args() }

// ConfigPath returns the explicit config path if provided via -config.
func (f *Flags) ConfigPath() string { return f.config }

// Usage prints the flag defaults.
func (f *Flags) Usage() { f.fs.PrintDefaults() }

// apply copies the explicitly set flags into cfg.
func (f *Flags) apply(cfg *Config) {
	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "scene":
			cfg.Scene = f.scene
		case "width":
			cfg.Render.Width = f.width
		case "height":
			cfg.Render.Height = f.height
		case "tps":
			cfg.Render.TicksPerSecond = f.tps
		case "tpf":
			cfg.Render.TicksPerFrame = f.tpf
		case "frames":
			cfg.Render.Frames = f.frames
		case "workers":
			cfg.Render.Workers = f.workers
		case "background":
			cfg.Render.Background = f.background
		case "out":
			cfg.Output.Dir = f.out
		case "zip":
			cfg.Output.Zip = f.zip
		case "window":
			cfg.Preview.Window = f.window
		case "terminal":
			cfg.Preview.Terminal = f.terminal
		case "scale":
			cfg.Preview.Scale = f.scale
		case "hold":
			cfg.Preview.Hold = f.hold
		case "debug":
			if f.debug {
				cfg.Logging.Level = "debug"
			}
		case "log-file":
			cfg.Logging.File = f.logFile
		}
	})
	if cfg.Scene == "" && len(f.fs.Args()) > 0 {
		cfg.Scene = f.fs.Arg(0)
	}
}
