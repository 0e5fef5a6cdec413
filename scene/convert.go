package scene

import (
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/phanxgames/anim2d"
)

// Func builds the function a FuncDoc describes.
func (f *FuncDoc) Func() (anim2d.Func, error) {
	switch f.Kind {
	case "constant":
		return anim2d.Constant(f.Value), nil
	case "linear":
		return anim2d.Linear(f.From, f.Rate), nil
	case "sine":
		a, w, p, o := f.Amplitude, f.Frequency, f.Phase, f.Offset
		return anim2d.NewFunc(
			func(x float64) float64 { return o + a*math.Sin(w*x+p) },
			func(x float64) float64 { return a * w * math.Cos(w*x+p) },
			func(x float64) float64 { return -a * w * w * math.Sin(w*x+p) },
			math.Inf(1)), nil
	case "ease":
		if !(f.Duration > 0) {
			return nil, fmt.Errorf("ease function needs a positive duration")
		}
		fn, ok := anim2d.EasingByName(orDefault(f.Easing, "linear"))
		if !ok {
			return nil, fmt.Errorf("unknown easing %q", f.Easing)
		}
		return anim2d.EaseFunc(f.From, f.To, f.Duration, fn), nil
	case "spring":
		return anim2d.SpringFunc(f.From, f.To, anim2d.SpringParams{
			FPS:       f.FPS,
			Frequency: f.Frequency,
			Damping:   f.Damping,
			Duration:  f.Duration,
		}), nil
	}
	return nil, fmt.Errorf("unknown function kind %q", f.Kind)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func parseCap(s string) (anim2d.LineCap, error) {
	switch s {
	case "", "butt":
		return anim2d.CapButt, nil
	case "round":
		return anim2d.CapRound, nil
	case "square":
		return anim2d.CapSquare, nil
	}
	return 0, fmt.Errorf("unknown line cap %q", s)
}

func parseJoin(s string) (anim2d.LineJoin, error) {
	switch s {
	case "", "miter":
		return anim2d.JoinMiter, nil
	case "round":
		return anim2d.JoinRound, nil
	case "bevel":
		return anim2d.JoinBevel, nil
	}
	return 0, fmt.Errorf("unknown line join %q", s)
}

func parseArc(s string) (anim2d.ArcType, error) {
	switch s {
	case "", "open":
		return anim2d.ArcOpen, nil
	case "chord":
		return anim2d.ArcChord, nil
	case "pie":
		return anim2d.ArcPie, nil
	}
	return 0, fmt.Errorf("unknown arc type %q", s)
}

// Style converts the document style.
func (s StyleDoc) Style() (anim2d.Style, error) {
	cp, err := parseCap(s.Cap)
	if err != nil {
		return anim2d.Style{}, err
	}
	jn, err := parseJoin(s.Join)
	if err != nil {
		return anim2d.Style{}, err
	}
	return anim2d.Style{
		Fill:        colorPtr(s.Fill),
		Stroke:      colorPtr(s.Stroke),
		StrokeWidth: s.StrokeWidth,
		Dash:        s.Dash,
		Cap:         cp,
		Join:        jn,
	}, nil
}

// CPoint converts the point. Type names may be written in kebab case.
func (p PointDoc) CPoint() (anim2d.CPoint, error) {
	kind, err := anim2d.ParseCPointKind(strings.ToUpper(strings.ReplaceAll(p.Type, "-", "_")))
	if err != nil {
		return anim2d.CPoint{}, err
	}
	cp := anim2d.CPoint{Kind: kind, X: p.X, Y: p.Y}
	if kind != anim2d.CSplineFunction {
		if p.FX != nil || p.FY != nil {
			return cp, fmt.Errorf("%s point cannot carry functions", kind)
		}
		return cp, nil
	}
	if p.FX == nil || p.FY == nil {
		return cp, fmt.Errorf("%s point needs fx and fy", kind)
	}
	if cp.FX, err = p.FX.Func(); err != nil {
		return cp, fmt.Errorf("fx: %w", err)
	}
	if cp.FY, err = p.FY.Func(); err != nil {
		return cp, fmt.Errorf("fy: %w", err)
	}
	cp.T1, cp.T2, cp.N = p.T1, p.T2, p.N
	return cp, nil
}

func cpoints(pts []PointDoc) ([]anim2d.CPoint, error) {
	out := make([]anim2d.CPoint, len(pts))
	for i, p := range pts {
		cp, err := p.CPoint()
		if err != nil {
			return nil, fmt.Errorf("point %d: %w", i, err)
		}
		out[i] = cp
	}
	return out, nil
}

// Path builds the path.
func (d PathDoc) Path() (*anim2d.Path, error) {
	rule := anim2d.WindNonZero
	if d.Winding != "" {
		r, err := anim2d.ParseWindingRule(d.Winding)
		if err != nil {
			return nil, err
		}
		rule = r
	}
	vertices := func() []anim2d.Vec2 {
		vs := make([]anim2d.Vec2, len(d.Vertices))
		for i, v := range d.Vertices {
			vs[i] = anim2d.Vec2{X: v[0], Y: v[1]}
		}
		return vs
	}

	switch d.Kind {
	case "line":
		return anim2d.LinePath(d.X, d.Y, d.X2, d.Y2)
	case "polyline":
		return anim2d.PolylinePath(vertices(), d.Closed)
	case "spline":
		return anim2d.SplinePath(vertices(), d.Closed)
	}

	b := anim2d.NewPathBuilder(rule)
	if d.Intervals > 0 {
		b.SetIntervals(d.Intervals)
	}
	var err error
	switch d.Kind {
	case "", "points":
		var pts []anim2d.CPoint
		if pts, err = cpoints(d.Points); err == nil {
			err = b.Append(pts...)
		}
	case "rect":
		err = b.Rect(d.X, d.Y, d.Width, d.Height)
	case "circle":
		err = b.Circle(d.X, d.Y, d.R)
	case "ellipse":
		err = b.Ellipse(d.X, d.Y, d.RX, d.RY)
	case "arc":
		var kind anim2d.ArcType
		if kind, err = parseArc(d.Arc); err == nil {
			err = b.Arc(d.X, d.Y, d.RX, d.RY, d.Start, d.Extent, kind)
		}
	default:
		return nil, fmt.Errorf("unknown path kind %q", d.Kind)
	}
	if err != nil {
		return nil, err
	}
	return b.Path()
}

// shapeContext resolves the references a shape may make.
type shapeContext struct {
	paths   map[string]*anim2d.Path
	baseDir string
	images  map[string]image.Image
}

func (c *shapeContext) image(name string) (image.Image, error) {
	if img, ok := c.images[name]; ok {
		return img, nil
	}
	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(c.baseDir, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", path, err)
	}
	c.images[name] = img
	return img, nil
}

func (c *shapeContext) shape(d ShapeDoc) (anim2d.Shape, error) {
	style, err := d.Style()
	if err != nil {
		return anim2d.Shape{}, err
	}
	kind, err := anim2d.ParseShapeKind(d.Kind)
	if err != nil {
		return anim2d.Shape{}, err
	}
	s := anim2d.Shape{
		Kind:  kind,
		Style: style,
		X:     d.X, Y: d.Y,
		X2: d.X2, Y2: d.Y2,
		Width: d.Width, Height: d.Height,
		RX: d.RX, RY: d.RY,
		Start: d.Start, Extent: d.Extent,
		Angle: d.Angle,
		Text:  d.Text,
		Font:  anim2d.DefaultFont,
	}
	if d.Font.Family != "" {
		s.Font.Family = d.Font.Family
	}
	if d.Font.Size > 0 {
		s.Font.Size = d.Font.Size
	}
	switch kind {
	case anim2d.ShapeArc:
		if s.Arc, err = parseArc(d.Arc); err != nil {
			return s, err
		}
	case anim2d.ShapeCurve:
		if s.Points, err = cpoints(d.Points); err != nil {
			return s, err
		}
	case anim2d.ShapePath:
		p, ok := c.paths[d.Path]
		if !ok {
			return s, fmt.Errorf("unknown path %q", d.Path)
		}
		s.Path = p
	case anim2d.ShapeImage:
		if s.Image, err = c.image(d.Image); err != nil {
			return s, err
		}
	}
	return s, nil
}

func (c *shapeContext) shapes(docs []ShapeDoc) ([]anim2d.Shape, error) {
	out := make([]anim2d.Shape, len(docs))
	for i, d := range docs {
		s, err := c.shape(d)
		if err != nil {
			return nil, fmt.Errorf("shape %d (%s): %w", i, d.Kind, err)
		}
		out[i] = s
	}
	return out, nil
}
