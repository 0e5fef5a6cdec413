package main

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/phanxgames/anim2d"
	"github.com/phanxgames/anim2d/internal/config"
	"github.com/phanxgames/anim2d/iswriter"
	"github.com/phanxgames/anim2d/scene"
)

const testScene = `
animation: {width: 32, height: 24, maxFrames: 50}
paths:
  track: {kind: line, x: -10, x2: 10}
objects:
  - name: dot
    type: figure
    path: track
    pathVelocity: 5
    shapes: [{kind: ellipse, rx: 2, ry: 2, fill: "#ff0000"}]
timeline:
  - {at: 0.1, object: dot, action: velocity, value: 10}
`

func writeScene(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "dot.yaml")
	if err := os.WriteFile(path, []byte(testScene), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunWritesFrames(t *testing.T) {
	scenePath := writeScene(t)
	out := filepath.Join(t.TempDir(), "frames")
	zipPath := filepath.Join(t.TempDir(), "frames.zip")

	var stderr bytes.Buffer
	err := run(context.Background(), []string{"-out", out, "-zip", zipPath, "-frames", "3", scenePath}, &stderr)
	if err != nil {
		t.Fatalf("run: %v\n%s", err, stderr.String())
	}

	data, err := os.ReadFile(filepath.Join(out, iswriter.MetadataName))
	if err != nil {
		t.Fatal(err)
	}
	md, err := iswriter.ReadMetadata(data)
	if err != nil {
		t.Fatal(err)
	}
	if md.Width != 32 || md.Height != 24 || md.NameTemplate != "img%02d.png" {
		t.Errorf("metadata = %+v", md)
	}
	for _, name := range []string{"img01.png", "img02.png", "img03.png"} {
		if _, err := os.Stat(filepath.Join(out, name)); err != nil {
			t.Errorf("missing frame: %v", err)
		}
	}

	zr, err := zip.OpenReader(zipPath)
	if err != nil {
		t.Fatal(err)
	}
	defer zr.Close()
	if len(zr.File) != 4 {
		t.Errorf("zip has %d entries, want 4", len(zr.File))
	}
}

func TestRunErrors(t *testing.T) {
	scenePath := writeScene(t)
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no scene", []string{"-out", t.TempDir()}, "no scene file"},
		{"missing scene", []string{filepath.Join(t.TempDir(), "nope.yaml")}, "nope.yaml"},
		{"no output", []string{"-out", "", scenePath}, "no output selected"},
		{"bad flag", []string{"-bogus"}, "bogus"},
		{"too many frames", []string{"-out", t.TempDir(), "-frames", "60", scenePath}, "limit"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stderr bytes.Buffer
			err := run(context.Background(), tt.args, &stderr)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) && !strings.Contains(stderr.String(), tt.want) {
				t.Errorf("error %q (stderr %q) does not mention %q", err, stderr.String(), tt.want)
			}
		})
	}
}

func TestRunHelp(t *testing.T) {
	var stderr bytes.Buffer
	err := run(context.Background(), []string{"-h"}, &stderr)
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("err = %v, want flag.ErrHelp", err)
	}
	if !strings.Contains(stderr.String(), "-scene") {
		t.Errorf("usage missing flags:\n%s", stderr.String())
	}
}

func TestRunCanceled(t *testing.T) {
	scenePath := writeScene(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := run(ctx, []string{"-out", t.TempDir(), scenePath}, &bytes.Buffer{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestFillDefaults(t *testing.T) {
	ac := anim2d.DefaultAnimationConfig()
	ac.Width, ac.Background = 100, anim2d.ColorBlack

	ad := scene.AnimationDoc{Height: 50}
	fillDefaults(&ad, ac)
	if ad.Width != 100 || ad.Height != 50 || ad.TicksPerFrame != ac.TicksPerFrame {
		t.Errorf("filled = %+v", ad)
	}
	if ad.Background == nil || ad.Background.Color != anim2d.ColorBlack {
		t.Errorf("background = %v", ad.Background)
	}
}

func TestPrepareFramesFromTimeline(t *testing.T) {
	scenePath := writeScene(t)
	cfg := config.Default()
	cfg.Scene = scenePath
	cfg.Output.Dir = t.TempDir()

	j, err := prepare(cfg, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	defer j.scene.Animation.Close()
	// last timeline action at tick 100 with 40 ticks per frame
	if j.frames != 3 {
		t.Errorf("frames = %d, want 3", j.frames)
	}
	if j.window != nil {
		t.Error("window opened without being asked for")
	}
}
