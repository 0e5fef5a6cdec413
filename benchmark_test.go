package anim2d_test

import (
	"context"
	"math"
	"testing"

	"github.com/phanxgames/anim2d"
	"github.com/phanxgames/anim2d/raster"
)

// benchTrack returns a closed spline through n points on a wavy circle.
func benchTrack(b *testing.B, n int) *anim2d.Path {
	b.Helper()
	pts := make([]anim2d.Vec2, n)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(n)
		r := 100 + 20*math.Sin(5*a)
		pts[i] = anim2d.Vec2{X: r * math.Cos(a), Y: r * math.Sin(a)}
	}
	p, err := anim2d.SplinePath(pts, true)
	if err != nil {
		b.Fatal(err)
	}
	return p
}

// setupBenchAnimation creates an animation with n figures circling a
// track, drawn by the software renderer.
func setupBenchAnimation(b *testing.B, n, frames int) *anim2d.Animation {
	b.Helper()
	cfg := anim2d.DefaultAnimationConfig()
	cfg.Width, cfg.Height = 320, 240
	cfg.MaxFrames = frames
	a, err := anim2d.NewAnimation(cfg, anim2d.WithRenderer(raster.NewCanvas(cfg.Width, cfg.Height)))
	if err != nil {
		b.Fatal(err)
	}
	if _, err := anim2d.NewView(a, "view", anim2d.ViewConfig{
		Init: &anim2d.ViewInit{XF: 0.5, YF: 0.5, ScaleX: 1, ScaleY: 1},
	}); err != nil {
		b.Fatal(err)
	}
	track := benchTrack(b, 24)
	fill := anim2d.Color{R: 0.2, G: 0.4, B: 0.8, A: 1}
	for i := 0; i < n; i++ {
		f, err := anim2d.NewFigure(a, "", anim2d.FigureConfig{
			Motion: anim2d.Motion{PathVelocity: 40 + float64(i%7)},
			Shapes: []anim2d.Shape{{Kind: anim2d.ShapeEllipse, RX: 3, RY: 3, Style: anim2d.Style{Fill: &fill}}},
		})
		if err != nil {
			b.Fatal(err)
		}
		start := anim2d.PathStart{U0: track.MaxParameter() * float64(i) / float64(n), AngleRelative: true}
		if err := f.SetPath(track, start); err != nil {
			b.Fatal(err)
		}
	}
	return a
}

// --- Path Benchmarks ---

func BenchmarkPathLength_Spline64(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		p := benchTrack(b, 64)
		_ = p.Length()
	}
}

func BenchmarkPathU_Spline64(b *testing.B) {
	p := benchTrack(b, 64)
	total := p.Length()
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = p.U(total * float64(i%1000) / 1000)
	}
}

// --- Frame Benchmarks ---

func BenchmarkFrames_100Figures(b *testing.B) {
	a := setupBenchAnimation(b, 100, b.N)
	if err := a.ScheduleFrames(0, b.N); err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	b.ReportAllocs()
	if err := a.Run(context.Background()); err != nil {
		b.Fatal(err)
	}
}

func BenchmarkFrames_1000Figures(b *testing.B) {
	a := setupBenchAnimation(b, 1000, b.N)
	if err := a.ScheduleFrames(0, b.N); err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	b.ReportAllocs()
	if err := a.Run(context.Background()); err != nil {
		b.Fatal(err)
	}
}
