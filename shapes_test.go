package anim2d

import (
	"bytes"
	"errors"
	"image"
	"math"
	"strings"
	"testing"
)

func colorPtr(c Color) *Color { return &c }

func TestFigureBoundsFromShapes(t *testing.T) {
	a := newTestAnimation(t)
	f, err := NewFigure(a, "box", FigureConfig{
		Placement: Placement{RefPoint: RefCenter},
		Shapes: []Shape{
			RectShape(0, 0, 10, 20, Style{Fill: colorPtr(ColorBlack)}),
			LineShape(-4, 5, 0, 5, Style{Stroke: colorPtr(ColorBlack)}),
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	b := f.RefPointBounds()
	assertNear(t, "min x", b.X, -4)
	assertNear(t, "width", b.Width, 14)
	assertNear(t, "height", b.Height, 20)
	assertRefPoint(t, &f.PlacedObject, 3, 10, RefCenter)
}

func TestFigureDraw(t *testing.T) {
	r := newFakeRenderer(64, 48)
	a := newTestAnimation(t, WithRenderer(r))
	red := Color{1, 0, 0, 1}
	f, err := NewFigure(a, "f", FigureConfig{
		Placement: Placement{X: 30, Y: 20},
		Shapes: []Shape{
			RectShape(0, 0, 4, 4, Style{Fill: &red, Stroke: colorPtr(ColorBlack), StrokeWidth: 2}),
			TextShape("hi", 0, 0, Font{}, Style{}),
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := f.Draw(r); err != nil {
		t.Fatal(err)
	}
	if got := strings.Join(r.ops, " "); got != "fill stroke text:hi" {
		t.Errorf("ops = %q", got)
	}
	// shapes restore the state; the figure transform stays in place
	if r.state.Paint != ColorBlack || r.state.Stroke.Width != 1 {
		t.Errorf("state leaked from shapes: %+v", r.state)
	}
	x, y := r.state.Transform.Apply(0, 0)
	assertNear(t, "x", x, 30)
	assertNear(t, "y", y, 20)
}

func TestShapeValidation(t *testing.T) {
	nan := math.NaN()
	bad := map[string]Shape{
		"nan rect":     RectShape(0, 0, nan, 1, Style{}),
		"nil path":     PathShape(nil, Style{}),
		"nil image":    ImageShape(nil, 0, 0, 1, 1),
		"open curve":   CurveShape([]CPoint{{Kind: CMoveTo}, {Kind: CControl, X: 1}}, Style{}),
		"bad kind":     {Kind: ShapeKind(99)},
		"negative pen": RectShape(0, 0, 1, 1, Style{StrokeWidth: -1}),
	}
	for name, s := range bad {
		if _, err := compileShape(s); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("%s: err = %v, want ErrInvalidArgument", name, err)
		}
	}
}

func TestLayerShapes(t *testing.T) {
	r := newFakeRenderer(8, 8)
	a := newTestAnimation(t)
	l, err := NewLayer(a, "bg", LayerConfig{})
	if err != nil {
		t.Fatal(err)
	}
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	if err := l.AddShapes(
		ImageShape(img, 1, 1, 0, 0),
		EllipseShape(0, 0, 2, 1, Style{Stroke: colorPtr(ColorBlack)}),
	); err != nil {
		t.Fatal(err)
	}
	if err := l.AddShapes(RectShape(0, 0, math.Inf(1), math.NaN(), Style{})); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("AddShapes(NaN) = %v", err)
	}
	if l.NumShapes() != 2 {
		t.Fatalf("NumShapes = %d, want 2", l.NumShapes())
	}
	if err := l.Draw(r); err != nil {
		t.Fatal(err)
	}
	if got := strings.Join(r.ops, " "); got != "image stroke" {
		t.Errorf("ops = %q", got)
	}
	l.ClearShapes()
	if l.NumShapes() != 0 {
		t.Errorf("NumShapes after clear = %d", l.NumShapes())
	}
}

func TestImageShapeBounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	c, err := compileShape(ImageShape(img, 1, 1, 0, 0))
	if err != nil {
		t.Fatal(err)
	}
	b := c.bounds()
	assertNear(t, "x", b.X, 1)
	assertNear(t, "width", b.Width, 4)
	assertNear(t, "height", b.Height, 2)
}

func TestParseShapeKind(t *testing.T) {
	for _, k := range []ShapeKind{ShapeArc, ShapeCurve, ShapeEllipse, ShapeImage, ShapeLine, ShapeRect, ShapePath, ShapeText} {
		got, err := ParseShapeKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParseShapeKind(%q) = %v, %v", k.String(), got, err)
		}
	}
	if _, err := ParseShapeKind("blob"); err == nil {
		t.Error("ParseShapeKind(blob) succeeded")
	}
}

func TestCartesianGrid(t *testing.T) {
	a := newTestAnimation(t)
	g, err := NewCartesianGrid(a, "grid", GridConfig{
		Bounds:       Rect{X: -5, Y: -5, Width: 10, Height: 10},
		Spacing:      1,
		Subdivisions: 5,
		Axes:         &Style{Stroke: colorPtr(ColorBlack)},
	})
	if err != nil {
		t.Fatal(err)
	}
	if n := len(g.minor.Subpaths()); n != 16 {
		t.Errorf("minor lines = %d, want 16", n)
	}
	if n := len(g.major.Subpaths()); n != 6 {
		t.Errorf("major lines = %d, want 6", n)
	}
	if n := len(g.axes.Subpaths()); n != 2 {
		t.Errorf("axes = %d, want 2", n)
	}
	r := newFakeRenderer(8, 8)
	if err := g.Draw(r); err != nil {
		t.Fatal(err)
	}
	if got := strings.Join(r.ops, " "); got != "stroke stroke stroke" {
		t.Errorf("ops = %q", got)
	}

	if _, err := NewCartesianGrid(a, "", GridConfig{Bounds: Rect{Width: 1, Height: 1}}); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("zero spacing: %v", err)
	}
}

func TestDarkenKeepsHueAndAlpha(t *testing.T) {
	c := darken(Color{1, 1, 1, 0.5}, 0.5)
	if !(c.R > 0 && c.R < 1) {
		t.Errorf("R = %g, want strictly between 0 and 1", c.R)
	}
	// Lab blending round-trips through floating point, so a gray stays gray
	// only to within a few parts in 1e5.
	assertNearTol(t, "G", c.G, c.R, 1e-3)
	assertNearTol(t, "B", c.B, c.R, 1e-3)
	assertNear(t, "A", c.A, 0.5)

	darker := darken(Color{1, 1, 1, 1}, 0.8)
	if !(darker.R < c.R) {
		t.Errorf("darken by 0.8 gives R = %g, not darker than %g", darker.R, c.R)
	}
}

func TestPolarGrid(t *testing.T) {
	a := newTestAnimation(t)
	g, err := NewPolarGrid(a, "polar", PolarGridConfig{Radius: 3, RadialSpacing: 1, Spokes: 4})
	if err != nil {
		t.Fatal(err)
	}
	if n := len(g.path.Subpaths()); n != 7 {
		t.Errorf("subpaths = %d, want 7", n)
	}
	if _, err := NewPolarGrid(a, "", PolarGridConfig{Radius: 3}); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("zero spacing: %v", err)
	}
}

func TestConnectingLine(t *testing.T) {
	a := newTestAnimation(t)
	f, err := NewFigure(a, "end", FigureConfig{Placement: Placement{X: 10}})
	if err != nil {
		t.Fatal(err)
	}
	l, err := NewConnectingLine(a, "link", LineConfig{
		To:    LineEnd{Object: f},
		Start: 0.2,
		End:   0.8,
	})
	if err != nil {
		t.Fatal(err)
	}
	x1, _, x2, _ := l.Endpoints()
	assertNear(t, "x1", x1, 2)
	assertNear(t, "x2", x2, 8)
	assertNear(t, "Length", l.Length(), 10)

	if err := f.SetLocation(0, 20); err != nil {
		t.Fatal(err)
	}
	_, y1, _, y2 := l.Endpoints()
	assertNear(t, "y1", y1, 4)
	assertNear(t, "y2", y2, 16)

	r := newFakeRenderer(8, 8)
	if err := l.Draw(r); err != nil {
		t.Fatal(err)
	}
	if strings.Join(r.ops, " ") != "stroke" {
		t.Errorf("ops = %v", r.ops)
	}

	if err := l.SetTrim(0.9, 0.1); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("inverted trim: %v", err)
	}
	if _, err := NewConnectingLine(a, "", LineConfig{End: 2}); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("trim past end: %v", err)
	}
}

func TestTweenTrimOrdersEnds(t *testing.T) {
	a := newTestAnimation(t)
	l, err := NewConnectingLine(a, "l", LineConfig{To: LineEnd{X: 10}})
	if err != nil {
		t.Fatal(err)
	}
	g := TweenTrim(l, 1, 0, 1, nil)
	if err := g.Update(0.75); err != nil {
		t.Fatal(err)
	}
	if l.start > l.end {
		t.Errorf("trim [%g, %g] is inverted", l.start, l.end)
	}
	if err := g.Update(0.5); err != nil {
		t.Fatal(err)
	}
	if !g.Done {
		t.Error("tween not done")
	}
	assertNear(t, "start", l.start, 0)
	assertNear(t, "end", l.end, 1)
}

func TestPrintConfigurationYAML(t *testing.T) {
	a := newTestAnimation(t)
	l, err := NewConnectingLine(a, "link", LineConfig{Visibility: Visibility{ZOrder: Z(3)}, To: LineEnd{X: 4, Y: 5}})
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := l.PrintConfiguration(&buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"link:", "zorder: 3", "x: 4", `"y": 5`} {
		if !strings.Contains(out, want) {
			t.Errorf("configuration lacks %q:\n%s", want, out)
		}
	}
}
