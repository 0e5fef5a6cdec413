// Package raster provides a software [anim2d.Renderer] that draws into an
// in-memory RGBA image. Paths are filled and stroked with rasterx, images
// are resampled with golang.org/x/image/draw and text uses the Go fonts.
package raster

import (
	"image"
	"image/draw"
	"math"

	"github.com/srwiley/rasterx"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"

	"github.com/phanxgames/anim2d"
)

// Canvas is a raster drawing surface. It is not safe for concurrent use.
type Canvas struct {
	img     *image.RGBA
	scanner *rasterx.ScannerGV
	dasher  *rasterx.Dasher

	window anim2d.ViewWindow
	view   anim2d.Affine // window matrix for the current size
	state  anim2d.RenderState

	faces *faceCache
}

// NewCanvas creates a width by height canvas cleared to transparent.
func NewCanvas(width, height int) *Canvas {
	if width <= 0 || height <= 0 {
		panic("raster: canvas size must be positive")
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	sc := rasterx.NewScannerGV(width, height, img, img.Bounds())
	c := &Canvas{
		img:     img,
		scanner: sc,
		dasher:  rasterx.NewDasher(width, height, sc),
		state:   anim2d.DefaultRenderState(),
		faces:   newFaceCache(),
	}
	c.SetWindow(anim2d.DefaultViewWindow)
	return c
}

var _ anim2d.Renderer = (*Canvas)(nil)

// Size returns the canvas size in pixels.
func (c *Canvas) Size() (int, int) {
	b := c.img.Bounds()
	return b.Dx(), b.Dy()
}

// Clear fills the canvas with col and resets the render state.
func (c *Canvas) Clear(col anim2d.Color) {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(col.NRGBA()), image.Point{}, draw.Src)
	c.state = anim2d.DefaultRenderState()
}

// SetWindow sets the graph-to-pixel mapping.
func (c *Canvas) SetWindow(w anim2d.ViewWindow) {
	c.window = w
	width, height := c.Size()
	c.view = w.Matrix(width, height)
}

// Window returns the graph-to-pixel mapping.
func (c *Canvas) Window() anim2d.ViewWindow { return c.window }

func (c *Canvas) State() anim2d.RenderState { return c.state }

func (c *Canvas) SetState(s anim2d.RenderState) { c.state = s }

func (c *Canvas) Transform() anim2d.Affine { return c.state.Transform }

func (c *Canvas) SetTransform(m anim2d.Affine) { c.state.Transform = m }

func (c *Canvas) SetPaint(col anim2d.Color) { c.state.Paint = col }

func (c *Canvas) SetStroke(s anim2d.Stroke) { c.state.Stroke = s }

func (c *Canvas) SetFont(f anim2d.Font) { c.state.Font = f }

// Image returns the canvas image. It is overwritten by later drawing.
func (c *Canvas) Image() image.Image { return c.img }

// device returns the user-to-pixel matrix.
func (c *Canvas) device() anim2d.Affine {
	return c.view.Mul(c.state.Transform)
}

// FillPath fills p with the current paint.
func (c *Canvas) FillPath(p *anim2d.Path) {
	if p == nil || p.NumSegments() == 0 {
		return
	}
	f := &c.dasher.Filler
	f.Clear()
	f.SetWinding(p.WindingRule() == anim2d.WindNonZero)
	addPath(f, p, c.device(), true)
	f.SetColor(c.state.Paint.NRGBA())
	f.Draw()
	f.Clear()
}

// StrokePath outlines p with the current paint and stroke. Widths and
// dash lengths scale with the transform.
func (c *Canvas) StrokePath(p *anim2d.Path) {
	if p == nil || p.NumSegments() == 0 {
		return
	}
	m := c.device()
	sc := m.MeanScale()
	st := c.state.Stroke

	width := st.Width * sc
	if !(width > 0) {
		return
	}
	var dash []float64
	if len(st.Dash) > 0 {
		dash = make([]float64, len(st.Dash))
		for i, d := range st.Dash {
			dash[i] = d * sc
		}
	}
	miter := st.MiterLimit
	if !(miter > 0) {
		miter = anim2d.DefaultStroke.MiterLimit
	}

	d := c.dasher
	d.Clear()
	d.SetStroke(toFixed(width), toFixed(miter), capFunc(st.Cap), nil, nil, joinMode(st.Join), dash, st.DashOffset*sc)
	addPath(d, p, m, false)
	d.SetColor(c.state.Paint.NRGBA())
	d.Draw()
	d.Clear()
}

// DrawImage draws img with m taking image pixels to user coordinates.
func (c *Canvas) DrawImage(img image.Image, m anim2d.Affine) {
	if img == nil || img.Bounds().Empty() {
		return
	}
	s2d := c.device().Mul(m)
	xdraw.BiLinear.Transform(c.img, toAff3(s2d), img, img.Bounds(), xdraw.Over, nil)
}

func toFixed(v float64) fixed.Int26_6 {
	f := fixed.Int26_6(math.Round(v * 64))
	if f < 1 {
		f = 1
	}
	return f
}

// toAff3 converts to the row-major layout x/image uses.
func toAff3(m anim2d.Affine) f64.Aff3 {
	return f64.Aff3{m[0], m[2], m[4], m[1], m[3], m[5]}
}

func capFunc(c anim2d.LineCap) rasterx.CapFunc {
	switch c {
	case anim2d.CapRound:
		return rasterx.RoundCap
	case anim2d.CapSquare:
		return rasterx.SquareCap
	}
	return rasterx.ButtCap
}

func joinMode(j anim2d.LineJoin) rasterx.JoinMode {
	switch j {
	case anim2d.JoinRound:
		return rasterx.Round
	case anim2d.JoinBevel:
		return rasterx.Bevel
	}
	return rasterx.MiterClip
}

// addPath feeds p's segments, mapped through m, to a rasterx adder. A
// filled subpath is always closed.
func addPath(a rasterx.Adder, p *anim2d.Path, m anim2d.Affine, fill bool) {
	pt := func(v anim2d.Vec2) fixed.Point26_6 {
		x, y := m.Apply(v.X, v.Y)
		return rasterx.ToFixedP(x, y)
	}
	for _, sp := range p.Subpaths() {
		if len(sp.Segments) == 0 {
			continue
		}
		a.Start(pt(sp.Segments[0].P[0]))
		for _, s := range sp.Segments {
			switch s.Kind {
			case anim2d.SegLine:
				a.Line(pt(s.P[1]))
			case anim2d.SegQuad:
				a.QuadBezier(pt(s.P[1]), pt(s.P[2]))
			case anim2d.SegCubic:
				a.CubeBezier(pt(s.P[1]), pt(s.P[2]), pt(s.P[3]))
			}
		}
		a.Stop(sp.Closed || fill)
	}
}
