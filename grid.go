package anim2d

import (
	"io"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// CartesianGrid draws evenly spaced horizontal and vertical lines over a
// rectangle in graph coordinates.
type CartesianGrid struct {
	ObjectBase

	cfg          GridConfig
	minor, major *Path
	axes         *Path
	majorStyle   Style
}

// NewCartesianGrid creates a grid. When cfg.MajorStyle has no stroke
// color, major lines use the minor color darkened halfway to black.
func NewCartesianGrid(a *Animation, name string, cfg GridConfig) (*CartesianGrid, error) {
	b := cfg.Bounds
	if isNaN(b.X, b.Y, b.Width, b.Height, cfg.Spacing) || b.Width <= 0 || b.Height <= 0 {
		return nil, argError("NewCartesianGrid", "bad bounds %+v", b)
	}
	if !(cfg.Spacing > 0) {
		return nil, argError("NewCartesianGrid", "spacing must be positive, got %g", cfg.Spacing)
	}
	if cfg.Subdivisions < 0 {
		return nil, argError("NewCartesianGrid", "negative subdivisions %d", cfg.Subdivisions)
	}
	if err := cfg.Style.validate("NewCartesianGrid"); err != nil {
		return nil, err
	}
	if cfg.Style.Stroke == nil {
		c := Color{0.8, 0.8, 0.8, 1}
		cfg.Style.Stroke = &c
	}
	g := &CartesianGrid{cfg: cfg, majorStyle: cfg.MajorStyle}
	if g.majorStyle.Stroke == nil {
		c := darken(*cfg.Style.Stroke, 0.5)
		g.majorStyle.Stroke = &c
	}
	if err := g.build(); err != nil {
		return nil, err
	}
	if err := a.register(g, name, cfg.Visibility); err != nil {
		return nil, err
	}
	return g, nil
}

// darken blends c toward black by t in Lab space, keeping alpha.
func darken(c Color, t float64) Color {
	cc := colorful.Color{R: c.R, G: c.G, B: c.B}
	d := cc.BlendLab(colorful.Color{}, t).Clamped()
	return Color{R: d.R, G: d.G, B: d.B, A: c.A}
}

// gridLines returns the multiples of spacing in [lo, hi] as (value, index)
// pairs, index counting from zero at the origin.
func gridLines(lo, hi, spacing float64) (vals []float64, idx []int) {
	first := math.Ceil(lo / spacing)
	for k := first; k*spacing <= hi+1e-9*spacing; k++ {
		vals = append(vals, k*spacing)
		idx = append(idx, int(k))
	}
	return vals, idx
}

func (g *CartesianGrid) build() error {
	b := g.cfg.Bounds
	minor := NewPathBuilder(WindNonZero)
	major := NewPathBuilder(WindNonZero)
	nMinor, nMajor := 0, 0
	pick := func(i int) (*PathBuilder, *int) {
		if g.cfg.Subdivisions > 0 && i%g.cfg.Subdivisions == 0 {
			return major, &nMajor
		}
		return minor, &nMinor
	}
	xs, xi := gridLines(b.X, b.X+b.Width, g.cfg.Spacing)
	for i, x := range xs {
		pb, n := pick(xi[i])
		if err := pb.Append(CPoint{Kind: CMoveTo, X: x, Y: b.Y}, CPoint{Kind: CSegEnd, X: x, Y: b.Y + b.Height}); err != nil {
			return err
		}
		*n++
	}
	ys, yi := gridLines(b.Y, b.Y+b.Height, g.cfg.Spacing)
	for i, y := range ys {
		pb, n := pick(yi[i])
		if err := pb.Append(CPoint{Kind: CMoveTo, X: b.X, Y: y}, CPoint{Kind: CSegEnd, X: b.X + b.Width, Y: y}); err != nil {
			return err
		}
		*n++
	}
	var err error
	if nMinor > 0 {
		if g.minor, err = minor.Path(); err != nil {
			return err
		}
	}
	if nMajor > 0 {
		if g.major, err = major.Path(); err != nil {
			return err
		}
	}
	if g.cfg.Axes != nil {
		axes := NewPathBuilder(WindNonZero)
		n := 0
		if b.Contains(0, b.Y) {
			_ = axes.Append(CPoint{Kind: CMoveTo, X: 0, Y: b.Y}, CPoint{Kind: CSegEnd, X: 0, Y: b.Y + b.Height})
			n++
		}
		if b.Contains(b.X, 0) {
			_ = axes.Append(CPoint{Kind: CMoveTo, X: b.X, Y: 0}, CPoint{Kind: CSegEnd, X: b.X + b.Width, Y: 0})
			n++
		}
		if n > 0 {
			if g.axes, err = axes.Path(); err != nil {
				return err
			}
		}
	}
	return nil
}

// Update does nothing; grids do not move.
func (g *CartesianGrid) Update(float64, int64) error { return nil }

// Draw strokes minor lines, then major lines, then the axes.
func (g *CartesianGrid) Draw(r Renderer) error {
	if g.minor != nil {
		g.cfg.Style.paint(r, g.minor)
	}
	if g.major != nil {
		g.majorStyle.paint(r, g.major)
	}
	if g.axes != nil {
		g.cfg.Axes.paint(r, g.axes)
	}
	return nil
}

func (g *CartesianGrid) PrintState(w io.Writer) error {
	sp := &statePrinter{w: w}
	g.printState(sp)
	b := g.cfg.Bounds
	sp.line("    bounds: x [%g, %g] y [%g, %g]", b.X, b.X+b.Width, b.Y, b.Y+b.Height)
	sp.line("    spacing: %g", g.cfg.Spacing)
	return sp.err
}

func (g *CartesianGrid) PrintConfiguration(w io.Writer) error {
	return printConfiguration(w, g.name, g.cfg)
}

// PolarGrid draws concentric circles and radial spokes around a center.
type PolarGrid struct {
	ObjectBase

	cfg  PolarGridConfig
	path *Path
}

// NewPolarGrid creates a polar grid.
func NewPolarGrid(a *Animation, name string, cfg PolarGridConfig) (*PolarGrid, error) {
	if isNaN(cfg.X, cfg.Y, cfg.Radius, cfg.RadialSpacing) {
		return nil, argError("NewPolarGrid", "NaN in polar grid configuration")
	}
	if !(cfg.Radius > 0) || !(cfg.RadialSpacing > 0) {
		return nil, argError("NewPolarGrid", "radius and spacing must be positive, got %g and %g", cfg.Radius, cfg.RadialSpacing)
	}
	if cfg.Spokes < 0 {
		return nil, argError("NewPolarGrid", "negative spoke count %d", cfg.Spokes)
	}
	if err := cfg.Style.validate("NewPolarGrid"); err != nil {
		return nil, err
	}
	if cfg.Style.Stroke == nil {
		c := Color{0.8, 0.8, 0.8, 1}
		cfg.Style.Stroke = &c
	}
	b := NewPathBuilder(WindNonZero)
	for r := cfg.RadialSpacing; r <= cfg.Radius*(1+1e-9); r += cfg.RadialSpacing {
		if err := b.Circle(cfg.X, cfg.Y, r); err != nil {
			return nil, err
		}
	}
	for i := 0; i < cfg.Spokes; i++ {
		sin, cos := math.Sincos(2 * math.Pi * float64(i) / float64(cfg.Spokes))
		if err := b.Append(
			CPoint{Kind: CMoveTo, X: cfg.X, Y: cfg.Y},
			CPoint{Kind: CSegEnd, X: cfg.X + cfg.Radius*cos, Y: cfg.Y + cfg.Radius*sin},
		); err != nil {
			return nil, err
		}
	}
	p, err := b.Path()
	if err != nil {
		return nil, err
	}
	g := &PolarGrid{cfg: cfg, path: p}
	if err := a.register(g, name, cfg.Visibility); err != nil {
		return nil, err
	}
	return g, nil
}

// Update does nothing; grids do not move.
func (g *PolarGrid) Update(float64, int64) error { return nil }

// Draw strokes the circles and spokes.
func (g *PolarGrid) Draw(r Renderer) error {
	g.cfg.Style.paint(r, g.path)
	return nil
}

func (g *PolarGrid) PrintState(w io.Writer) error {
	sp := &statePrinter{w: w}
	g.printState(sp)
	sp.line("    center: (%g, %g)", g.cfg.X, g.cfg.Y)
	sp.line("    radius: %g", g.cfg.Radius)
	return sp.err
}

func (g *PolarGrid) PrintConfiguration(w io.Writer) error {
	return printConfiguration(w, g.name, g.cfg)
}
