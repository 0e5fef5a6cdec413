package anim2d

import (
	"math"
	"sort"
)

// WindingRule selects how a path's interior is determined when filled.
type WindingRule uint8

const (
	WindNonZero WindingRule = iota
	WindEvenOdd
)

// ParseWindingRule maps "non-zero" and "even-odd" to a WindingRule.
func ParseWindingRule(s string) (WindingRule, error) {
	switch s {
	case "", "non-zero", "nonzero":
		return WindNonZero, nil
	case "even-odd", "evenodd":
		return WindEvenOdd, nil
	}
	return 0, argError("ParseWindingRule", "unknown winding rule %q", s)
}

// DefaultInversionLimit is the distance tolerance used by Path.U.
const DefaultInversionLimit = 1e-10

// defaultIntervals is the number of quadrature intervals per segment.
const defaultIntervals = 8

// SegmentKind identifies the curve type of a Segment.
type SegmentKind uint8

const (
	SegLine SegmentKind = iota
	SegQuad
	SegCubic
)

// Segment is one Bézier piece of a path. P[0] is the start point; the end
// point is P[1], P[2] or P[3] for lines, quadratics and cubics.
type Segment struct {
	Kind SegmentKind
	P    [4]Vec2
}

// End returns the segment's end point.
func (s Segment) End() Vec2 {
	return s.P[s.Kind+1]
}

func (s Segment) at(t float64) (x, y float64) {
	p := &s.P
	switch s.Kind {
	case SegLine:
		return p[0].X + t*(p[1].X-p[0].X), p[0].Y + t*(p[1].Y-p[0].Y)
	case SegQuad:
		mt := 1 - t
		a, b, c := mt*mt, 2*mt*t, t*t
		return a*p[0].X + b*p[1].X + c*p[2].X, a*p[0].Y + b*p[1].Y + c*p[2].Y
	default:
		mt := 1 - t
		a, b, c, d := mt*mt*mt, 3*mt*mt*t, 3*mt*t*t, t*t*t
		return a*p[0].X + b*p[1].X + c*p[2].X + d*p[3].X,
			a*p[0].Y + b*p[1].Y + c*p[2].Y + d*p[3].Y
	}
}

func (s Segment) deriv(t float64) (dx, dy float64) {
	p := &s.P
	switch s.Kind {
	case SegLine:
		return p[1].X - p[0].X, p[1].Y - p[0].Y
	case SegQuad:
		mt := 1 - t
		return 2*mt*(p[1].X-p[0].X) + 2*t*(p[2].X-p[1].X),
			2*mt*(p[1].Y-p[0].Y) + 2*t*(p[2].Y-p[1].Y)
	default:
		mt := 1 - t
		a, b, c := 3*mt*mt, 6*mt*t, 3*t*t
		return a*(p[1].X-p[0].X) + b*(p[2].X-p[1].X) + c*(p[3].X-p[2].X),
			a*(p[1].Y-p[0].Y) + b*(p[2].Y-p[1].Y) + c*(p[3].Y-p[2].Y)
	}
}

func (s Segment) deriv2(t float64) (ddx, ddy float64) {
	p := &s.P
	switch s.Kind {
	case SegLine:
		return 0, 0
	case SegQuad:
		return 2 * (p[2].X - 2*p[1].X + p[0].X), 2 * (p[2].Y - 2*p[1].Y + p[0].Y)
	default:
		mt := 1 - t
		return 6*mt*(p[2].X-2*p[1].X+p[0].X) + 6*t*(p[3].X-2*p[2].X+p[1].X),
			6*mt*(p[2].Y-2*p[1].Y+p[0].Y) + 6*t*(p[3].Y-2*p[2].Y+p[1].Y)
	}
}

func (s Segment) speed(t float64) float64 {
	return math.Hypot(s.deriv(t))
}

// 8-point Gauss-Legendre nodes and weights on [-1, 1].
var (
	glNodes = [4]float64{
		0.1834346424956498, 0.5255324099163290,
		0.7966664774136267, 0.9602898564975363,
	}
	glWeights = [4]float64{
		0.3626837833783620, 0.3137066458778873,
		0.2223810344533745, 0.1012285362903763,
	}
)

// length integrates the segment speed over [t0, t1].
func (s Segment) length(t0, t1 float64) float64 {
	if t1 == t0 {
		return 0
	}
	if s.Kind == SegLine {
		return s.chord() * (t1 - t0)
	}
	half, mid := (t1-t0)/2, (t1+t0)/2
	sum := 0.0
	for i, x := range glNodes {
		sum += glWeights[i] * (s.speed(mid-half*x) + s.speed(mid+half*x))
	}
	return sum * half
}

// chord is the distance between the segment's end points, the exact length
// of a line segment.
func (s Segment) chord() float64 {
	return math.Hypot(s.P[1].X-s.P[0].X, s.P[1].Y-s.P[0].Y)
}

// Subpath is a run of consecutive segments started by a move-to.
type Subpath struct {
	Segments []Segment
	Closed   bool
}

type subpathRange struct {
	start, end int
	closed     bool
}

// Path is a piecewise Bézier curve. The path parameter u runs from 0 to the
// number of segments; its integer part selects a segment and its fractional
// part is that segment's Bézier parameter.
//
// A Path must not be modified once it is attached to an object: followers
// cache distances computed from it.
type Path struct {
	segs      []Segment
	subs      []subpathRange
	rule      WindingRule
	intervals int

	// cumulative arc length at each quadrature interval boundary, built on
	// first use
	table []float64
}

// WindingRule returns the fill rule of the path.
func (p *Path) WindingRule() WindingRule { return p.rule }

// NumSegments returns the number of segments.
func (p *Path) NumSegments() int { return len(p.segs) }

// Segments returns a copy of the path's segments across all subpaths.
func (p *Path) Segments() []Segment { return append([]Segment(nil), p.segs...) }

// MaxParameter returns the largest path parameter, the segment count.
func (p *Path) MaxParameter() float64 { return float64(len(p.segs)) }

// Closed reports whether the path is a single closed loop. Objects moving
// along a closed path wrap around instead of stopping at its end.
func (p *Path) Closed() bool {
	return len(p.subs) == 1 && p.subs[0].closed
}

// Subpaths returns the path's subpaths in drawing order.
func (p *Path) Subpaths() []Subpath {
	out := make([]Subpath, 0, len(p.subs))
	for _, r := range p.subs {
		out = append(out, Subpath{Segments: p.segs[r.start:r.end], Closed: r.closed})
	}
	return out
}

// Bounds returns the bounding box of the path's control polygon, which
// contains the curve.
func (p *Path) Bounds() Rect {
	if len(p.segs) == 0 {
		return Rect{}
	}
	first := p.segs[0].P[0]
	r := Rect{X: first.X, Y: first.Y}
	for _, s := range p.segs {
		for i := 0; i <= int(s.Kind)+1; i++ {
			r = r.union(s.P[i].X, s.P[i].Y)
		}
	}
	return r
}

// Transform returns a copy of p with every control point mapped through m.
func (p *Path) Transform(m Affine) *Path {
	q := &Path{
		segs:      make([]Segment, len(p.segs)),
		subs:      append([]subpathRange(nil), p.subs...),
		rule:      p.rule,
		intervals: p.intervals,
	}
	for i, s := range p.segs {
		for j := 0; j <= int(s.Kind)+1; j++ {
			s.P[j].X, s.P[j].Y = m.Apply(s.P[j].X, s.P[j].Y)
		}
		q.segs[i] = s
	}
	return q
}

// locate splits a path parameter into a segment index and a local Bézier
// parameter, wrapping for closed paths and clamping otherwise.
func (p *Path) locate(u float64) (int, float64) {
	n := float64(len(p.segs))
	if p.Closed() {
		u = math.Mod(u, n)
		if u < 0 {
			u += n
		}
	}
	if u <= 0 {
		return 0, math.Max(u, 0)
	}
	if u >= n {
		return len(p.segs) - 1, 1
	}
	i := math.Floor(u)
	return int(i), u - i
}

// X returns the x coordinate at parameter u.
func (p *Path) X(u float64) float64 {
	if len(p.segs) == 0 {
		return math.NaN()
	}
	i, t := p.locate(u)
	x, _ := p.segs[i].at(t)
	return x
}

// Y returns the y coordinate at parameter u.
func (p *Path) Y(u float64) float64 {
	if len(p.segs) == 0 {
		return math.NaN()
	}
	i, t := p.locate(u)
	_, y := p.segs[i].at(t)
	return y
}

// Point returns the point at parameter u.
func (p *Path) Point(u float64) Vec2 {
	if len(p.segs) == 0 {
		return Vec2{math.NaN(), math.NaN()}
	}
	i, t := p.locate(u)
	x, y := p.segs[i].at(t)
	return Vec2{x, y}
}

// DxDu returns dX/du at parameter u.
func (p *Path) DxDu(u float64) float64 {
	dx, _ := p.tangent(u)
	return dx
}

// DyDu returns dY/du at parameter u.
func (p *Path) DyDu(u float64) float64 {
	_, dy := p.tangent(u)
	return dy
}

func (p *Path) tangent(u float64) (float64, float64) {
	if len(p.segs) == 0 {
		return math.NaN(), math.NaN()
	}
	i, t := p.locate(u)
	return p.segs[i].deriv(t)
}

// D2xDu2 returns d²X/du² at parameter u.
func (p *Path) D2xDu2(u float64) float64 {
	if len(p.segs) == 0 {
		return math.NaN()
	}
	i, t := p.locate(u)
	ddx, _ := p.segs[i].deriv2(t)
	return ddx
}

// D2yDu2 returns d²Y/du² at parameter u.
func (p *Path) D2yDu2(u float64) float64 {
	if len(p.segs) == 0 {
		return math.NaN()
	}
	i, t := p.locate(u)
	_, ddy := p.segs[i].deriv2(t)
	return ddy
}

// TangentAngle returns atan2(dY/du, dX/du) at u. It is NaN where the tangent
// is undefined (a cusp or a zero-length segment).
func (p *Path) TangentAngle(u float64) float64 {
	dx, dy := p.tangent(u)
	if dx == 0 && dy == 0 {
		return math.NaN()
	}
	return math.Atan2(dy, dx)
}

func (p *Path) ensureTable() {
	if p.table != nil {
		return
	}
	if p.intervals <= 0 {
		p.intervals = defaultIntervals
	}
	n := p.intervals
	p.table = make([]float64, len(p.segs)*n+1)
	k := 0
	for _, s := range p.segs {
		base := p.table[k]
		for j := 0; j < n; j++ {
			switch {
			case s.Kind != SegLine:
				t0 := float64(j) / float64(n)
				t1 := float64(j+1) / float64(n)
				p.table[k+1] = p.table[k] + s.length(t0, t1)
			case j == n-1:
				p.table[k+1] = base + s.chord()
			default:
				p.table[k+1] = base + s.chord()*float64(j+1)/float64(n)
			}
			k++
		}
	}
}

// Length returns the total arc length of the path.
func (p *Path) Length() float64 {
	p.ensureTable()
	return p.table[len(p.table)-1]
}

// S returns the arc length from the start of the path to parameter u. For
// closed paths, parameters past the end keep accumulating whole laps.
func (p *Path) S(u float64) float64 {
	if len(p.segs) == 0 {
		return 0
	}
	p.ensureTable()
	laps := 0.0
	if p.Closed() {
		n := float64(len(p.segs))
		laps = math.Floor(u / n)
		u -= laps * n
	}
	i, t := p.locate(u)
	j := int(t * float64(p.intervals))
	if j >= p.intervals {
		j = p.intervals - 1
	}
	t0 := float64(j) / float64(p.intervals)
	return laps*p.Length() + p.table[i*p.intervals+j] + p.segs[i].length(t0, t)
}

// U returns the path parameter at arc length s using DefaultInversionLimit.
func (p *Path) U(s float64) float64 {
	return p.UWithin(s, DefaultInversionLimit)
}

// UWithin returns the path parameter at arc length s, iterating until the
// distance error is below limit. Open paths clamp s to [0, Length]; closed
// paths wrap it, returning a parameter in [0, MaxParameter).
func (p *Path) UWithin(s, limit float64) float64 {
	if len(p.segs) == 0 {
		return math.NaN()
	}
	if limit <= 0 {
		limit = DefaultInversionLimit
	}
	p.ensureTable()
	total := p.Length()
	if p.Closed() && total > 0 {
		s = math.Mod(s, total)
		if s < 0 {
			s += total
		}
	}
	if s <= 0 {
		return 0
	}
	if s >= total {
		return float64(len(p.segs))
	}

	// Interval j with table[j] <= s < table[j+1].
	j := sort.Search(len(p.table), func(k int) bool { return p.table[k] > s }) - 1
	if j < 0 {
		j = 0
	}
	if j >= len(p.table)-1 {
		j = len(p.table) - 2
	}
	seg := j / p.intervals
	lo := float64(j%p.intervals) / float64(p.intervals)
	hi := lo + 1/float64(p.intervals)
	base, span := p.table[j], p.table[j+1]-p.table[j]
	sg := p.segs[seg]
	if span <= 0 {
		return float64(seg) + lo
	}

	a, b := lo, hi
	t := lo + (s-base)/span*(hi-lo)
	for iter := 0; iter < 64; iter++ {
		f := base + sg.length(lo, t) - s
		if math.Abs(f) <= limit {
			break
		}
		if f > 0 {
			b = t
		} else {
			a = t
		}
		next := t - f/sg.speed(t)
		if math.IsNaN(next) || math.IsInf(next, 0) || next <= a || next >= b {
			next = (a + b) / 2
		}
		if next == t {
			break
		}
		t = next
	}
	return float64(seg) + t
}
