package anim2d

import (
	"errors"
	"math"
	"testing"
)

// mustPath returns a checker for a path constructor's results, used as
// mustPath(t)(LinePath(...)).
func mustPath(t *testing.T) func(*Path, error) *Path {
	t.Helper()
	return func(p *Path, err error) *Path {
		t.Helper()
		if err != nil {
			t.Fatalf("path: %v", err)
		}
		return p
	}
}

func TestLinePathEvaluation(t *testing.T) {
	p := mustPath(t)(LinePath(0, 0, 60, 80))
	assertNear(t, "Length", p.Length(), 100)
	assertNear(t, "MaxParameter", p.MaxParameter(), 1)
	assertNear(t, "U(50)", p.U(50), 0.5)
	assertNear(t, "X", p.X(0.5), 30)
	assertNear(t, "Y", p.Y(0.5), 40)
	assertNear(t, "DxDu", p.DxDu(0.2), 60)
	assertNear(t, "DyDu", p.DyDu(0.2), 80)
	assertNear(t, "D2xDu2", p.D2xDu2(0.2), 0)
	assertNear(t, "tangent", p.TangentAngle(0.3), math.Atan2(80, 60))
	if p.Closed() {
		t.Error("line should be open")
	}
}

func TestStraightSegmentLengthsAreExact(t *testing.T) {
	p := mustPath(t)(LinePath(0, 0, 100, 0))
	if p.Length() != 100 {
		t.Errorf("Length = %v, want exactly 100", p.Length())
	}
	q := mustPath(t)(PolylinePath([]Vec2{{0, 0}, {30, 0}, {30, 40}, {0, 40}}, true))
	if q.Length() != 140 {
		t.Errorf("closed polyline Length = %v, want exactly 140", q.Length())
	}
	if s := q.S(2); s != 70 {
		t.Errorf("S(2) = %v, want exactly 70", s)
	}
}

func TestOpenPathClampsParameter(t *testing.T) {
	p := mustPath(t)(LinePath(0, 0, 10, 0))
	assertNear(t, "U(-5)", p.U(-5), 0)
	assertNear(t, "U(15)", p.U(15), 1)
	assertNear(t, "X(3)", p.X(3), 10)
}

func TestCollinearSplineIsUniform(t *testing.T) {
	p := mustPath(t)(SplinePath([]Vec2{{0, 0}, {10, 0}, {20, 0}, {30, 0}}, false))
	if p.NumSegments() != 3 {
		t.Fatalf("NumSegments = %d, want 3", p.NumSegments())
	}
	assertNear(t, "Length", p.Length(), 30)
	segs := p.Segments()
	if segs[0].Kind != SegCubic || segs[2].End() != (Vec2{30, 0}) {
		t.Errorf("Segments = %+v", segs)
	}
	segs[0].P[0] = Vec2{99, 99}
	assertNear(t, "X(0) after editing copy", p.X(0), 0)
	for _, s := range []float64{0, 2.5, 10, 17, 29.9} {
		assertNearTol(t, "U", p.U(s), s/10, 1e-9)
	}
}

func TestSplineRoundTrip(t *testing.T) {
	p := mustPath(t)(SplinePath([]Vec2{{0, 0}, {30, 50}, {80, 20}, {100, 90}, {40, 120}}, false))
	L := p.Length()
	for i := 0; i <= 40; i++ {
		s := L * float64(i) / 40
		u := p.U(s)
		assertNearTol(t, "S(U(s))", p.S(u), s, 1e-8)
	}
}

func TestSplineIsSmoothAtKnots(t *testing.T) {
	p := mustPath(t)(SplinePath([]Vec2{{0, 0}, {30, 50}, {80, 20}, {100, 90}}, false))
	segs := p.Subpaths()[0].Segments
	for i := 0; i+1 < len(segs); i++ {
		dx0, dy0 := segs[i].deriv(1)
		dx1, dy1 := segs[i+1].deriv(0)
		assertNearTol(t, "dx", dx0, dx1, 1e-9)
		assertNearTol(t, "dy", dy0, dy1, 1e-9)
		ddx0, ddy0 := segs[i].deriv2(1)
		ddx1, ddy1 := segs[i+1].deriv2(0)
		assertNearTol(t, "ddx", ddx0, ddx1, 1e-9)
		assertNearTol(t, "ddy", ddy0, ddy1, 1e-9)
	}
}

func TestClosedSplineWraps(t *testing.T) {
	p := mustPath(t)(SplinePath([]Vec2{{0, 0}, {10, 0}, {10, 10}, {0, 10}}, true))
	if !p.Closed() {
		t.Fatal("expected closed path")
	}
	if p.NumSegments() != 4 {
		t.Fatalf("NumSegments = %d, want 4", p.NumSegments())
	}
	L := p.Length()
	assertNearTol(t, "U wraps", p.U(L+5), p.U(5), 1e-9)
	assertNearTol(t, "U negative", p.U(-5), p.U(L-5), 1e-9)
	assertNearTol(t, "S laps", p.S(p.MaxParameter()+1), L+p.S(1), 1e-9)

	// No corner at the first knot.
	segs := p.Subpaths()[0].Segments
	dx0, dy0 := segs[len(segs)-1].deriv(1)
	dx1, dy1 := segs[0].deriv(0)
	assertNearTol(t, "dx", dx0, dx1, 1e-9)
	assertNearTol(t, "dy", dy0, dy1, 1e-9)
}

func TestCircleLength(t *testing.T) {
	b := NewPathBuilder(WindNonZero)
	if err := b.Circle(5, 5, 10); err != nil {
		t.Fatal(err)
	}
	p := mustPath(t)(b.Path())
	if !p.Closed() {
		t.Error("circle should be closed")
	}
	if p.NumSegments() != 4 {
		t.Errorf("NumSegments = %d, want 4", p.NumSegments())
	}
	want := 2 * math.Pi * 10
	assertNearTol(t, "Length", p.Length(), want, 1e-3*want)
}

func TestPolylineClosed(t *testing.T) {
	p := mustPath(t)(PolylinePath([]Vec2{{0, 0}, {4, 0}, {4, 3}}, true))
	assertNear(t, "Length", p.Length(), 12)
	assertNear(t, "closing segment start", p.X(2), 4)
}

func TestPathTransform(t *testing.T) {
	p := mustPath(t)(LinePath(0, 0, 10, 0))
	q := p.Transform(Translate(5, 1).Mul(Scale(2, 2)))
	assertNear(t, "X", q.X(1), 25)
	assertNear(t, "Y", q.Y(1), 1)
	assertNear(t, "Length", q.Length(), 20)
	assertNear(t, "original untouched", p.X(1), 10)
}

func TestPathBuilderCurves(t *testing.T) {
	b := NewPathBuilder(WindEvenOdd)
	steps := []error{
		b.MoveTo(0, 0),
		b.QuadTo(5, 10, 10, 0),
		b.CubicTo(12, -5, 18, -5, 20, 0),
		b.Close(),
	}
	for i, err := range steps {
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
	p := mustPath(t)(b.Path())
	if p.WindingRule() != WindEvenOdd {
		t.Error("winding rule not kept")
	}
	// quad, cubic, closing line
	if p.NumSegments() != 3 {
		t.Fatalf("NumSegments = %d, want 3", p.NumSegments())
	}
	assertNear(t, "quad apex", p.Y(0.5), 5)
}

func TestPathBuilderSegEndVariants(t *testing.T) {
	b := NewPathBuilder(WindNonZero)
	err := b.Append(
		CPoint{Kind: CMoveTo, X: 0, Y: 0},
		CPoint{Kind: CSegEndNext},
		CPoint{Kind: CSpline, X: 10, Y: 0},
		CPoint{Kind: CSpline, X: 20, Y: 5},
		CPoint{Kind: CSpline, X: 30, Y: 0},
		CPoint{Kind: CSegEndPrev},
		CPoint{Kind: CSegEnd, X: 40, Y: 0},
	)
	if err != nil {
		t.Fatal(err)
	}
	p := mustPath(t)(b.Path())
	// line, two spline pieces, line
	if p.NumSegments() != 4 {
		t.Fatalf("NumSegments = %d, want 4", p.NumSegments())
	}
	assertNear(t, "end", p.X(4), 40)
	assertNear(t, "first knot", p.X(1), 10)
}

func TestPathBuilderSplineFunction(t *testing.T) {
	b := NewPathBuilder(WindNonZero)
	err := b.Append(
		CPoint{Kind: CMoveToNext},
		CPoint{Kind: CSplineFunction, FX: Linear(0, 1), FY: Constant(3), T1: 0, T2: 30, N: 3},
		CPoint{Kind: CSegEndPrev},
	)
	if err != nil {
		t.Fatal(err)
	}
	p := mustPath(t)(b.Path())
	assertNear(t, "Length", p.Length(), 30)
	assertNear(t, "Y", p.Y(1.5), 3)
}

func TestPathBuilderRejectsInvalidSequences(t *testing.T) {
	tests := []struct {
		name string
		pts  []CPoint
	}{
		{"starts with SEG_END", []CPoint{{Kind: CSegEnd, X: 1, Y: 1}}},
		{"three controls", []CPoint{
			{Kind: CMoveTo}, {Kind: CControl}, {Kind: CControl}, {Kind: CControl},
		}},
		{"close empty subpath", []CPoint{{Kind: CMoveTo}, {Kind: CClose}}},
		{"MOVE_TO_NEXT then SEG_END", []CPoint{{Kind: CMoveToNext}, {Kind: CSegEnd, X: 1}}},
		{"SEG_END_NEXT then CONTROL", []CPoint{{Kind: CMoveTo}, {Kind: CSegEndNext}, {Kind: CControl}}},
		{"SEG_END_PREV outside spline", []CPoint{{Kind: CMoveTo}, {Kind: CSegEndPrev}}},
		{"two controls before spline", []CPoint{
			{Kind: CMoveTo}, {Kind: CControl}, {Kind: CControl, X: 1}, {Kind: CSpline, X: 2},
		}},
		{"spline control then spline", []CPoint{
			{Kind: CMoveTo}, {Kind: CSpline, X: 1}, {Kind: CControl, X: 2}, {Kind: CSpline, X: 3},
		}},
		{"NaN coordinate", []CPoint{{Kind: CMoveTo, X: math.NaN()}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewPathBuilder(WindNonZero)
			err := b.Append(tt.pts...)
			if !errors.Is(err, ErrInvalidArgument) {
				t.Fatalf("err = %v, want ErrInvalidArgument", err)
			}
			if _, err := b.Path(); err == nil {
				t.Fatal("Path should keep failing after an invalid point")
			}
		})
	}
}

func TestPathBuilderIncomplete(t *testing.T) {
	b := NewPathBuilder(WindNonZero)
	if err := b.Append(CPoint{Kind: CMoveTo}, CPoint{Kind: CControl, X: 1, Y: 1}); err != nil {
		t.Fatal(err)
	}
	if _, err := b.Path(); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("err = %v, want ErrInvalidArgument", err)
	}
}

func TestParseNames(t *testing.T) {
	if k, err := ParseCPointKind("SEG_END_NEXT"); err != nil || k != CSegEndNext {
		t.Errorf("ParseCPointKind = %v, %v", k, err)
	}
	if _, err := ParseCPointKind("BOGUS"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("err = %v, want ErrInvalidArgument", err)
	}
	if _, err := ParseWindingRule("spiral"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("err = %v, want ErrInvalidArgument", err)
	}
}
