package anim2d

import (
	"errors"
	"fmt"
	"image/color"
	"math"
)

// ErrInvalidArgument is wrapped by every error caused by a bad value passed
// to a mutator (NaN coordinates, non-positive zoom, unknown names).
var ErrInvalidArgument = errors.New("invalid argument")

// ErrInvalidState is wrapped by every error caused by calling an operation
// before its prerequisites are met (uninitialized view, missing path).
var ErrInvalidState = errors.New("invalid state")

func argError(op, format string, args ...any) error {
	return fmt.Errorf("anim2d: %s: %w: %s", op, ErrInvalidArgument, fmt.Sprintf(format, args...))
}

func stateError(op, format string, args ...any) error {
	return fmt.Errorf("anim2d: %s: %w: %s", op, ErrInvalidState, fmt.Sprintf(format, args...))
}

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorBlack and ColorWhite are opaque black and white.
var (
	ColorBlack = Color{0, 0, 0, 1}
	ColorWhite = Color{1, 1, 1, 1}
)

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

// NRGBA converts c to an 8-bit non-premultiplied color.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: uint8(math.Round(clamp01(c.R) * 255)),
		G: uint8(math.Round(clamp01(c.G) * 255)),
		B: uint8(math.Round(clamp01(c.B) * 255)),
		A: uint8(math.Round(clamp01(c.A) * 255)),
	}
}

// ColorFrom converts any color.Color to a Color.
func ColorFrom(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{
		R: float64(n.R) / 255,
		G: float64(n.G) / 255,
		B: float64(n.B) / 255,
		A: float64(n.A) / 255,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Vec2 is a 2D vector used for positions, control points and sizes.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle in graph coordinates, Y increasing upward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// union returns the smallest rectangle containing r and the point (x, y).
func (r Rect) union(x, y float64) Rect {
	x0, y0 := math.Min(r.X, x), math.Min(r.Y, y)
	x1, y1 := math.Max(r.X+r.Width, x), math.Max(r.Y+r.Height, y)
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

func isNaN(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) {
			return true
		}
	}
	return false
}
