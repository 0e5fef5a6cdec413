package anim2d

import (
	"fmt"
	"math"
)

// CPointKind tags a CPoint.
type CPointKind uint8

const (
	// CMoveTo starts a subpath at (X, Y).
	CMoveTo CPointKind = iota
	// CMoveToNext starts a subpath at the first point of the spline that
	// must follow it.
	CMoveToNext
	// CControl is a Bézier control point. One or two in a row, ended by
	// CSegEnd or CClose; a single one may also set the first control point
	// of a following spline, and one after a spline sets its last.
	CControl
	// CSpline is a knot of a smooth spline.
	CSpline
	// CSplineFunction contributes knots sampled from FX, FY over [T1, T2].
	CSplineFunction
	// CSegEnd ends the current segment or spline at (X, Y).
	CSegEnd
	// CSegEndPrev ends the current spline at its last knot.
	CSegEndPrev
	// CSegEndNext draws a line to the first knot of the spline that must
	// follow it.
	CSegEndNext
	// CClose closes the current subpath.
	CClose
)

var cpointKindNames = [...]string{
	CMoveTo:         "MOVE_TO",
	CMoveToNext:     "MOVE_TO_NEXT",
	CControl:        "CONTROL",
	CSpline:         "SPLINE",
	CSplineFunction: "SPLINE_FUNCTION",
	CSegEnd:         "SEG_END",
	CSegEndPrev:     "SEG_END_PREV",
	CSegEndNext:     "SEG_END_NEXT",
	CClose:          "CLOSE",
}

func (k CPointKind) String() string {
	if int(k) < len(cpointKindNames) {
		return cpointKindNames[k]
	}
	return fmt.Sprintf("CPointKind(%d)", k)
}

// ParseCPointKind maps a name such as "SEG_END" to its kind.
func ParseCPointKind(s string) (CPointKind, error) {
	for i, name := range cpointKindNames {
		if name == s {
			return CPointKind(i), nil
		}
	}
	return 0, argError("ParseCPointKind", "unknown point type %q", s)
}

// CPoint is one entry of a path description. X and Y are ignored for
// CMoveToNext, CSegEndPrev, CSegEndNext and CClose. FX, FY, T1, T2 and N are
// used only by CSplineFunction, which samples N+1 knots.
type CPoint struct {
	Kind   CPointKind
	X, Y   float64
	FX, FY Func
	T1, T2 float64
	N      int
}

type buildState uint8

const (
	stStart       buildState = iota
	stMoved                  // after MOVE_TO
	stAnchor                 // after SEG_END or SEG_END_PREV
	stControl                // one or two control points pending
	stMoveNext               // after MOVE_TO_NEXT
	stSegEndNext             // after SEG_END_NEXT
	stSpline                 // inside a run of spline knots
	stSplineCtl              // spline run followed by its last control point
	stClosed                 // after CLOSE
)

// PathBuilder assembles a Path from CPoints. Every accepted transition is an
// explicit case below; anything else is rejected with ErrInvalidArgument and
// leaves the builder unusable.
type PathBuilder struct {
	rule      WindingRule
	intervals int

	segs []Segment
	subs []subpathRange

	state      buildState
	cur, start Vec2
	controls   []Vec2

	knots    []Vec2
	ctlFirst *Vec2
	ctlLast  *Vec2
	cyclic   bool // run may close into a smooth cycle

	count int
	err   error
}

// NewPathBuilder returns an empty builder producing paths with the given
// winding rule.
func NewPathBuilder(rule WindingRule) *PathBuilder {
	return &PathBuilder{rule: rule}
}

// SetIntervals sets the number of quadrature intervals per segment used for
// arc-length computations.
func (b *PathBuilder) SetIntervals(n int) {
	b.intervals = n
}

// Append feeds points to the builder in order.
func (b *PathBuilder) Append(pts ...CPoint) error {
	for _, p := range pts {
		if b.err != nil {
			return b.err
		}
		if err := b.add(p); err != nil {
			b.err = fmt.Errorf("point %d (%s): %w", b.count, p.Kind, err)
			return b.err
		}
		b.count++
	}
	return nil
}

func (b *PathBuilder) invalid(p CPoint) error {
	return argError("PathBuilder", "%s not allowed here", p.Kind)
}

func (b *PathBuilder) add(p CPoint) error {
	if p.Kind != CSplineFunction && isNaN(p.X, p.Y) {
		return argError("PathBuilder", "NaN coordinate")
	}
	pt := Vec2{p.X, p.Y}

	switch b.state {
	case stStart:
		switch p.Kind {
		case CMoveTo:
			b.moveTo(pt)
			b.state = stMoved
		case CMoveToNext:
			b.state = stMoveNext
		default:
			return b.invalid(p)
		}

	case stClosed:
		switch p.Kind {
		case CMoveTo:
			b.moveTo(pt)
			b.state = stMoved
		case CMoveToNext:
			b.state = stMoveNext
		case CSpline, CSplineFunction:
			// implicit MOVE_TO_NEXT
			return b.beginRunAtKnot(p, true)
		default:
			return b.invalid(p)
		}

	case stMoved, stAnchor:
		switch p.Kind {
		case CMoveTo:
			b.moveTo(pt)
			b.state = stMoved
		case CMoveToNext:
			b.state = stMoveNext
		case CControl:
			b.controls = append(b.controls[:0], pt)
			b.state = stControl
		case CSegEnd:
			b.line(pt)
			b.state = stAnchor
		case CSegEndNext:
			b.state = stSegEndNext
		case CSpline, CSplineFunction:
			b.knots = append(b.knots[:0], b.cur)
			b.ctlFirst, b.ctlLast = nil, nil
			b.cyclic = b.state == stMoved
			b.state = stSpline
			return b.addKnots(p)
		case CClose:
			if b.state == stMoved {
				return argError("PathBuilder", "CLOSE of an empty subpath")
			}
			b.close()
		default:
			return b.invalid(p)
		}

	case stControl:
		switch p.Kind {
		case CControl:
			if len(b.controls) == 2 {
				return argError("PathBuilder", "more than two control points")
			}
			b.controls = append(b.controls, pt)
		case CSegEnd:
			b.curve(pt)
			b.state = stAnchor
		case CClose:
			b.curve(b.start)
			b.finishClose()
		case CSpline, CSplineFunction:
			if len(b.controls) != 1 {
				return argError("PathBuilder", "a spline may be preceded by one control point, got %d", len(b.controls))
			}
			first := b.controls[0]
			b.knots = append(b.knots[:0], b.cur)
			b.ctlFirst, b.ctlLast = &first, nil
			b.cyclic = false
			b.state = stSpline
			return b.addKnots(p)
		default:
			return b.invalid(p)
		}

	case stMoveNext:
		switch p.Kind {
		case CSpline, CSplineFunction:
			return b.beginRunAtKnot(p, true)
		default:
			return b.invalid(p)
		}

	case stSegEndNext:
		switch p.Kind {
		case CSpline, CSplineFunction:
			from := b.cur
			if err := b.beginRunAtKnot(p, false); err != nil {
				return err
			}
			// line from the previous point to the first knot
			first := b.knots[0]
			b.cur = from
			b.line(first)
		default:
			return b.invalid(p)
		}

	case stSpline:
		switch p.Kind {
		case CSpline, CSplineFunction:
			return b.addKnots(p)
		case CControl:
			last := pt
			b.ctlLast = &last
			b.state = stSplineCtl
		case CSegEnd:
			b.knots = append(b.knots, pt)
			return b.emitRun(stAnchor)
		case CSegEndPrev:
			return b.emitRun(stAnchor)
		case CClose:
			if b.cyclic && b.ctlFirst == nil {
				return b.emitCycle()
			}
			b.knots = append(b.knots, b.start)
			if err := b.emitRun(stAnchor); err != nil {
				return err
			}
			b.finishClose()
		default:
			return b.invalid(p)
		}

	case stSplineCtl:
		switch p.Kind {
		case CSegEnd:
			b.knots = append(b.knots, pt)
			return b.emitRun(stAnchor)
		case CClose:
			b.knots = append(b.knots, b.start)
			if err := b.emitRun(stAnchor); err != nil {
				return err
			}
			b.finishClose()
		default:
			return b.invalid(p)
		}
	}
	return nil
}

// beginRunAtKnot starts a spline run whose first knot is the first point
// supplied by p. With move set, that knot also starts a new subpath.
func (b *PathBuilder) beginRunAtKnot(p CPoint, move bool) error {
	b.knots = b.knots[:0]
	b.ctlFirst, b.ctlLast = nil, nil
	b.cyclic = move
	if err := b.addKnots(p); err != nil {
		return err
	}
	if move {
		b.moveTo(b.knots[0])
	}
	b.state = stSpline
	return nil
}

func (b *PathBuilder) addKnots(p CPoint) error {
	if p.Kind == CSpline {
		b.knots = append(b.knots, Vec2{p.X, p.Y})
		return nil
	}
	if p.FX == nil || p.FY == nil || p.N < 1 {
		return argError("PathBuilder", "SPLINE_FUNCTION needs FX, FY and N >= 1")
	}
	for i := 0; i <= p.N; i++ {
		t := p.T1 + (p.T2-p.T1)*float64(i)/float64(p.N)
		k := Vec2{p.FX.Value(t), p.FY.Value(t)}
		if isNaN(k.X, k.Y) {
			return argError("PathBuilder", "SPLINE_FUNCTION is NaN at %g", t)
		}
		if n := len(b.knots); n > 0 && b.knots[n-1] == k {
			continue
		}
		b.knots = append(b.knots, k)
	}
	return nil
}

func (b *PathBuilder) moveTo(p Vec2) {
	b.subs = append(b.subs, subpathRange{start: len(b.segs), end: len(b.segs)})
	b.cur, b.start = p, p
}

func (b *PathBuilder) push(s Segment) {
	b.segs = append(b.segs, s)
	b.subs[len(b.subs)-1].end = len(b.segs)
	b.cur = s.End()
}

func (b *PathBuilder) line(p Vec2) {
	b.push(Segment{Kind: SegLine, P: [4]Vec2{b.cur, p}})
}

func (b *PathBuilder) curve(p Vec2) {
	if len(b.controls) == 1 {
		b.push(Segment{Kind: SegQuad, P: [4]Vec2{b.cur, b.controls[0], p}})
	} else {
		b.push(Segment{Kind: SegCubic, P: [4]Vec2{b.cur, b.controls[0], b.controls[1], p}})
	}
	b.controls = b.controls[:0]
}

func (b *PathBuilder) close() {
	d := math.Hypot(b.cur.X-b.start.X, b.cur.Y-b.start.Y)
	scale := math.Max(1, math.Max(math.Abs(b.start.X), math.Abs(b.start.Y)))
	switch {
	case d > 1e-12*scale:
		b.line(b.start)
	case d > 0:
		// round-off from a full arc: snap the last segment onto the start
		last := &b.segs[len(b.segs)-1]
		last.P[last.Kind+1] = b.start
	}
	b.finishClose()
}

func (b *PathBuilder) finishClose() {
	b.subs[len(b.subs)-1].closed = true
	b.cur = b.start
	b.state = stClosed
}

func (b *PathBuilder) emitRun(next buildState) error {
	if len(b.knots) < 2 {
		return argError("PathBuilder", "a spline needs at least two knots")
	}
	p1, p2 := splineControls(b.knots, b.ctlFirst, b.ctlLast)
	for i := range p1 {
		b.push(Segment{Kind: SegCubic, P: [4]Vec2{b.knots[i], p1[i], p2[i], b.knots[i+1]}})
	}
	b.state = next
	return nil
}

func (b *PathBuilder) emitCycle() error {
	knots := b.knots
	if len(knots) > 1 && knots[len(knots)-1] == knots[0] {
		knots = knots[:len(knots)-1]
	}
	if len(knots) < 2 {
		return argError("PathBuilder", "a closed spline needs at least two distinct knots")
	}
	p1, p2 := cyclicControls(knots)
	n := len(knots)
	for i := range knots {
		b.push(Segment{Kind: SegCubic, P: [4]Vec2{knots[i], p1[i], p2[i], knots[(i+1)%n]}})
	}
	b.finishClose()
	return nil
}

// MoveTo starts a new subpath.
func (b *PathBuilder) MoveTo(x, y float64) error {
	return b.Append(CPoint{Kind: CMoveTo, X: x, Y: y})
}

// LineTo adds a straight segment.
func (b *PathBuilder) LineTo(x, y float64) error {
	return b.Append(CPoint{Kind: CSegEnd, X: x, Y: y})
}

// QuadTo adds a quadratic Bézier segment.
func (b *PathBuilder) QuadTo(cx, cy, x, y float64) error {
	return b.Append(
		CPoint{Kind: CControl, X: cx, Y: cy},
		CPoint{Kind: CSegEnd, X: x, Y: y})
}

// CubicTo adds a cubic Bézier segment.
func (b *PathBuilder) CubicTo(c1x, c1y, c2x, c2y, x, y float64) error {
	return b.Append(
		CPoint{Kind: CControl, X: c1x, Y: c1y},
		CPoint{Kind: CControl, X: c2x, Y: c2y},
		CPoint{Kind: CSegEnd, X: x, Y: y})
}

// SplineTo adds a smooth spline from the current point through pts, ending
// at the last one.
func (b *PathBuilder) SplineTo(pts ...Vec2) error {
	if len(pts) == 0 {
		return nil
	}
	for _, p := range pts[:len(pts)-1] {
		if err := b.Append(CPoint{Kind: CSpline, X: p.X, Y: p.Y}); err != nil {
			return err
		}
	}
	last := pts[len(pts)-1]
	if len(pts) == 1 {
		return b.LineTo(last.X, last.Y)
	}
	return b.Append(CPoint{Kind: CSegEnd, X: last.X, Y: last.Y})
}

// Close closes the current subpath.
func (b *PathBuilder) Close() error {
	return b.Append(CPoint{Kind: CClose})
}

// Path returns the built path. It fails if a segment or spline is still
// open or nothing was drawn.
func (b *PathBuilder) Path() (*Path, error) {
	if b.err != nil {
		return nil, b.err
	}
	switch b.state {
	case stMoved, stAnchor, stClosed:
	default:
		return nil, argError("PathBuilder", "path description ends mid-segment")
	}
	if len(b.segs) == 0 {
		return nil, argError("PathBuilder", "path has no segments")
	}
	subs := make([]subpathRange, 0, len(b.subs))
	for _, s := range b.subs {
		if s.end > s.start {
			subs = append(subs, s)
		}
	}
	return &Path{
		segs:      append([]Segment(nil), b.segs...),
		subs:      subs,
		rule:      b.rule,
		intervals: b.intervals,
	}, nil
}
