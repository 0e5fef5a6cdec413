package anim2d

import "math"

// ArcType selects how an arc is closed.
type ArcType uint8

const (
	ArcOpen  ArcType = iota // just the curve
	ArcChord                // closed by a straight line between its ends
	ArcPie                  // closed through the center
)

// LinePath returns a single straight segment.
func LinePath(x0, y0, x1, y1 float64) (*Path, error) {
	b := NewPathBuilder(WindNonZero)
	if err := b.MoveTo(x0, y0); err != nil {
		return nil, err
	}
	if err := b.LineTo(x1, y1); err != nil {
		return nil, err
	}
	return b.Path()
}

// PolylinePath returns straight segments through pts, closed back to the
// first point when closed is set.
func PolylinePath(pts []Vec2, closed bool) (*Path, error) {
	if len(pts) < 2 {
		return nil, argError("PolylinePath", "need at least two points, got %d", len(pts))
	}
	b := NewPathBuilder(WindNonZero)
	if err := b.MoveTo(pts[0].X, pts[0].Y); err != nil {
		return nil, err
	}
	for _, p := range pts[1:] {
		if err := b.LineTo(p.X, p.Y); err != nil {
			return nil, err
		}
	}
	if closed {
		if err := b.Close(); err != nil {
			return nil, err
		}
	}
	return b.Path()
}

// SplinePath returns a smooth spline through pts. A closed spline is a
// smooth cycle with no corner at the first point.
func SplinePath(pts []Vec2, closed bool) (*Path, error) {
	if len(pts) < 2 {
		return nil, argError("SplinePath", "need at least two points, got %d", len(pts))
	}
	b := NewPathBuilder(WindNonZero)
	cps := make([]CPoint, 0, len(pts)+2)
	if closed {
		cps = append(cps, CPoint{Kind: CMoveToNext})
		for _, p := range pts {
			cps = append(cps, CPoint{Kind: CSpline, X: p.X, Y: p.Y})
		}
		cps = append(cps, CPoint{Kind: CClose})
	} else {
		cps = append(cps, CPoint{Kind: CMoveTo, X: pts[0].X, Y: pts[0].Y})
		for _, p := range pts[1 : len(pts)-1] {
			cps = append(cps, CPoint{Kind: CSpline, X: p.X, Y: p.Y})
		}
		last := pts[len(pts)-1]
		cps = append(cps, CPoint{Kind: CSegEnd, X: last.X, Y: last.Y})
	}
	if err := b.Append(cps...); err != nil {
		return nil, err
	}
	return b.Path()
}

// Rect appends a closed rectangle subpath.
func (b *PathBuilder) Rect(x, y, w, h float64) error {
	return b.Append(
		CPoint{Kind: CMoveTo, X: x, Y: y},
		CPoint{Kind: CSegEnd, X: x + w, Y: y},
		CPoint{Kind: CSegEnd, X: x + w, Y: y + h},
		CPoint{Kind: CSegEnd, X: x, Y: y + h},
		CPoint{Kind: CClose})
}

// Ellipse appends a closed ellipse centered at (cx, cy).
func (b *PathBuilder) Ellipse(cx, cy, rx, ry float64) error {
	if err := b.arcPieces(cx, cy, rx, ry, 0, 2*math.Pi, true); err != nil {
		return err
	}
	return b.Close()
}

// Circle appends a closed circle.
func (b *PathBuilder) Circle(cx, cy, r float64) error {
	return b.Ellipse(cx, cy, r, r)
}

// Arc appends an elliptical arc starting at angle start and sweeping
// extent radians counterclockwise.
func (b *PathBuilder) Arc(cx, cy, rx, ry, start, extent float64, kind ArcType) error {
	if kind == ArcPie {
		if err := b.MoveTo(cx, cy); err != nil {
			return err
		}
		sx, sy := cx+rx*math.Cos(start), cy+ry*math.Sin(start)
		if err := b.LineTo(sx, sy); err != nil {
			return err
		}
		if err := b.arcPieces(cx, cy, rx, ry, start, extent, false); err != nil {
			return err
		}
		return b.Close()
	}
	if err := b.arcPieces(cx, cy, rx, ry, start, extent, true); err != nil {
		return err
	}
	if kind == ArcChord {
		return b.Close()
	}
	return nil
}

// arcPieces appends cubic approximations of an elliptical arc, at most a
// quarter turn each.
func (b *PathBuilder) arcPieces(cx, cy, rx, ry, start, extent float64, move bool) error {
	if isNaN(cx, cy, rx, ry, start, extent) {
		return argError("Arc", "NaN argument")
	}
	n := int(math.Ceil(math.Abs(extent) / (math.Pi / 2)))
	if n == 0 {
		n = 1
	}
	step := extent / float64(n)
	k := 4.0 / 3.0 * math.Tan(step/4)
	a := start
	if move {
		if err := b.MoveTo(cx+rx*math.Cos(a), cy+ry*math.Sin(a)); err != nil {
			return err
		}
	}
	for i := 0; i < n; i++ {
		s0, c0 := math.Sincos(a)
		s1, c1 := math.Sincos(a + step)
		err := b.CubicTo(
			cx+rx*(c0-k*s0), cy+ry*(s0+k*c0),
			cx+rx*(c1+k*s1), cy+ry*(s1-k*c1),
			cx+rx*c1, cy+ry*s1)
		if err != nil {
			return err
		}
		a += step
	}
	return nil
}
