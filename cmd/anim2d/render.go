package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/phanxgames/anim2d"
	"github.com/phanxgames/anim2d/internal/config"
	"github.com/phanxgames/anim2d/iswriter"
	"github.com/phanxgames/anim2d/raster"
	"github.com/phanxgames/anim2d/scene"
)

// job is a built scene with its frames scheduled and its writers attached.
type job struct {
	log    *zap.Logger
	scene  *scene.Scene
	window *iswriter.Window
	frames int
}

// fillDefaults copies the configured render settings into the fields the
// scene document leaves unset.
func fillDefaults(ad *scene.AnimationDoc, ac anim2d.AnimationConfig) {
	if ad.Width <= 0 {
		ad.Width = ac.Width
	}
	if ad.Height <= 0 {
		ad.Height = ac.Height
	}
	if ad.TicksPerSecond <= 0 {
		ad.TicksPerSecond = ac.TicksPerSecond
	}
	if ad.TicksPerFrame <= 0 {
		ad.TicksPerFrame = ac.TicksPerFrame
	}
	if ad.MaxFrames <= 0 {
		ad.MaxFrames = ac.MaxFrames
	}
	if ad.Background == nil {
		ad.Background = &scene.Color{Color: ac.Background}
	}
}

func prepare(cfg *config.Config, log *zap.Logger) (*job, error) {
	doc, err := scene.Load(cfg.Scene)
	if err != nil {
		return nil, err
	}
	ac, err := cfg.Animation()
	if err != nil {
		return nil, err
	}
	fillDefaults(&doc.Animation, ac)

	runID := uuid.New()
	sc, err := scene.Build(doc, filepath.Dir(cfg.Scene),
		anim2d.WithLogger(log),
		anim2d.WithRunID(runID),
		anim2d.WithEncoderWorkers(cfg.Render.Workers),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cfg.Scene, err)
	}
	a := sc.Animation
	size := a.Config()
	a.SetRenderer(raster.NewCanvas(size.Width, size.Height))

	j := &job{log: log, scene: sc}
	writers, err := j.openWriters(cfg)
	if err != nil {
		return nil, err
	}
	if len(writers) == 0 {
		return nil, errors.New("no output selected")
	}
	w := iswriter.Multi(writers...)
	if err := a.SetWriter(w, ""); err != nil {
		_ = w.Close()
		return nil, err
	}

	j.frames = cfg.Render.Frames
	if j.frames <= 0 {
		j.frames = sc.Frames()
	}
	if err := sc.ScheduleFrames(j.frames); err != nil {
		_ = a.Close()
		return nil, err
	}
	log.Info("scene ready",
		zap.String("scene", cfg.Scene),
		zap.String("run", runID.String()),
		zap.Strings("objects", sc.ObjectNames()),
		zap.Int("frames", j.frames),
		zap.Int("width", size.Width),
		zap.Int("height", size.Height),
		zap.Float64("fps", size.FrameRate()),
	)
	return j, nil
}

// openWriters creates every configured output. On error the writers
// already opened are closed.
func (j *job) openWriters(cfg *config.Config) (ws []anim2d.ImageSequenceWriter, err error) {
	defer func() {
		if err != nil {
			for _, w := range ws {
				_ = w.Close()
			}
			ws = nil
		}
	}()
	if cfg.Output.Dir != "" {
		d, err := iswriter.NewDir(cfg.Output.Dir, j.log.Named("dir"))
		if err != nil {
			return ws, err
		}
		ws = append(ws, d)
	}
	if cfg.Output.Zip != "" {
		z, err := iswriter.CreateZip(cfg.Output.Zip)
		if err != nil {
			return ws, err
		}
		ws = append(ws, z)
	}
	if cfg.Preview.Terminal {
		t, err := iswriter.NewTerminal(nil)
		if err != nil {
			return ws, fmt.Errorf("terminal preview: %w", err)
		}
		ws = append(ws, t)
	}
	if cfg.Preview.Window {
		j.window = iswriter.NewWindow(iswriter.WindowOptions{
			Title: filepath.Base(cfg.Scene),
			Scale: cfg.Preview.Scale,
			Hold:  cfg.Preview.Hold,
		})
		ws = append(ws, j.window)
	}
	return ws, nil
}

// run plays the simulation to the end. A preview window has to own the
// main goroutine, so with one open the simulation runs beside it.
func (j *job) run(ctx context.Context) error {
	if j.window == nil {
		return j.render(ctx)
	}
	done := make(chan error, 1)
	go func() { done <- j.render(ctx) }()
	werr := j.window.Run()
	return errors.Join(<-done, werr)
}

func (j *job) render(ctx context.Context) error {
	a := j.scene.Animation
	start := time.Now()
	err := a.Run(ctx)
	if cerr := a.Close(); cerr != nil {
		err = errors.Join(err, cerr)
	}
	if err != nil {
		return err
	}
	j.log.Info("render finished",
		zap.Int("frames", a.FrameCount()),
		zap.Float64("sim_time", a.CurrentTime()),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}
