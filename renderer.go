package anim2d

import (
	"image"
	"math"
)

// LineCap is the shape drawn at the open ends of stroked lines.
type LineCap uint8

const (
	CapButt LineCap = iota
	CapRound
	CapSquare
)

// LineJoin is the shape drawn where stroked segments meet.
type LineJoin uint8

const (
	JoinMiter LineJoin = iota
	JoinRound
	JoinBevel
)

// Stroke describes how paths are outlined. Width is in user-space units
// and is scaled by the current transform.
type Stroke struct {
	Width      float64
	Cap        LineCap
	Join       LineJoin
	MiterLimit float64
	Dash       []float64
	DashOffset float64
}

// DefaultStroke is a one unit wide solid stroke with butt caps and miter
// joins.
var DefaultStroke = Stroke{Width: 1, MiterLimit: 10}

// Font selects the face and size used by DrawText. Size is in user-space
// units.
type Font struct {
	Family string
	Size   float64
}

// DefaultFont is the regular face at twelve units.
var DefaultFont = Font{Family: "regular", Size: 12}

// RenderState is the part of a renderer's state that the compositor saves
// before drawing an object and restores afterwards.
type RenderState struct {
	Transform Affine
	Paint     Color
	Stroke    Stroke
	Font      Font
}

// DefaultRenderState is the state a renderer starts each frame with.
func DefaultRenderState() RenderState {
	return RenderState{
		Transform: Identity,
		Paint:     ColorBlack,
		Stroke:    DefaultStroke,
		Font:      DefaultFont,
	}
}

// Renderer is a drawing surface in graph coordinates. The window maps
// graph coordinates (y up) to pixels (y down); the transform maps user
// coordinates to graph coordinates. Drawing calls use the composition of
// both.
type Renderer interface {
	// Size returns the surface size in pixels.
	Size() (width, height int)
	// Clear fills the whole surface with c and resets the render state.
	Clear(c Color)

	SetWindow(w ViewWindow)
	Window() ViewWindow

	State() RenderState
	SetState(s RenderState)
	Transform() Affine
	SetTransform(m Affine)
	SetPaint(c Color)
	SetStroke(s Stroke)
	SetFont(f Font)

	FillPath(p *Path)
	StrokePath(p *Path)
	// DrawImage draws img with m mapping image pixels (y down) to user
	// coordinates.
	DrawImage(img image.Image, m Affine)
	// DrawText draws s with its baseline starting at (x, y) in user
	// coordinates.
	DrawText(s string, x, y float64)

	// Image returns the surface contents.
	Image() image.Image
}

// ViewWindow places graph coordinates on a surface. The graph point
// (X, Y) appears at the pixel fraction (XF, YF) of the surface, measured
// from the lower left corner; ScaleX and ScaleY are pixels per graph unit;
// the graph is rotated by -Angle about (X, Y) so that a view turned by
// Angle sees its own frame upright.
type ViewWindow struct {
	X, Y           float64
	XF, YF         float64
	ScaleX, ScaleY float64
	Angle          float64
}

// DefaultViewWindow maps graph coordinates one to one onto pixels with
// the origin in the lower left corner.
var DefaultViewWindow = ViewWindow{ScaleX: 1, ScaleY: 1}

// Matrix returns the graph-to-pixel matrix for a width by height surface.
func (v ViewWindow) Matrix(width, height int) Affine {
	ox := float64(width) * v.XF
	oy := float64(height) * (1 - v.YF)
	return Translate(ox, oy).
		Mul(Scale(v.ScaleX, -v.ScaleY)).
		Mul(Rotate(-v.Angle)).
		Mul(Translate(-v.X, -v.Y))
}

// GraphToPixel converts a graph point to pixel coordinates.
func (v ViewWindow) GraphToPixel(width, height int, x, y float64) (px, py float64) {
	return v.Matrix(width, height).Apply(x, y)
}

// PixelToGraph converts pixel coordinates to a graph point.
func (v ViewWindow) PixelToGraph(width, height int, px, py float64) (x, y float64) {
	return v.Matrix(width, height).Invert().Apply(px, py)
}

// VisibleBounds returns the axis-aligned graph-space rectangle covering
// the surface.
func (v ViewWindow) VisibleBounds(width, height int) Rect {
	inv := v.Matrix(width, height).Invert()
	w, h := float64(width), float64(height)

	x0, y0 := inv.Apply(0, 0)
	x1, y1 := inv.Apply(w, 0)
	x2, y2 := inv.Apply(w, h)
	x3, y3 := inv.Apply(0, h)

	minX := math.Min(math.Min(x0, x1), math.Min(x2, x3))
	minY := math.Min(math.Min(y0, y1), math.Min(y2, y3))
	maxX := math.Max(math.Max(x0, x1), math.Max(x2, x3))
	maxY := math.Max(math.Max(y0, y1), math.Max(y2, y3))

	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
