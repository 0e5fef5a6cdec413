package anim2d

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/tanema/gween/ease"
)

// Func is a real-valued function of time used to drive a distance, an angle
// or a zoom. Arguments larger than DomainMax are clamped to it before
// evaluation.
type Func interface {
	Value(x float64) float64
	DomainMax() float64
}

// Derivative is implemented by functions that can report their first
// derivative.
type Derivative interface {
	Deriv(x float64) float64
}

// SecondDerivative is implemented by functions that can report their second
// derivative.
type SecondDerivative interface {
	Deriv2(x float64) float64
}

// evalFunc evaluates f and whatever derivatives it provides at x clamped to
// the domain. Missing derivatives are NaN.
func evalFunc(f Func, x float64) (v, d1, d2 float64) {
	if m := f.DomainMax(); x > m {
		x = m
	}
	v, d1, d2 = f.Value(x), math.NaN(), math.NaN()
	if d, ok := f.(Derivative); ok {
		d1 = d.Deriv(x)
	}
	if d, ok := f.(SecondDerivative); ok {
		d2 = d.Deriv2(x)
	}
	return v, d1, d2
}

type funcOf struct {
	f, df, d2f func(float64) float64
	max        float64
}

func (g funcOf) Value(x float64) float64 { return g.f(x) }
func (g funcOf) DomainMax() float64 { return g.max }

func (g funcOf) Deriv(x float64) float64 {
	if g.df == nil {
		return math.NaN()
	}
	return g.df(x)
}

func (g funcOf) Deriv2(x float64) float64 {
	if g.d2f == nil {
		return math.NaN()
	}
	return g.d2f(x)
}

// NewFunc wraps plain functions as a Func. df and d2f may be nil, in which
// case the corresponding derivative is reported as unavailable (NaN).
// A domainMax of +Inf leaves the argument unclamped.
func NewFunc(f, df, d2f func(float64) float64, domainMax float64) Func {
	if f == nil {
		panic("anim2d: NewFunc requires a non-nil function")
	}
	return funcOf{f: f, df: df, d2f: d2f, max: domainMax}
}

// Constant returns the function x -> c.
func Constant(c float64) Func {
	return NewFunc(
		func(float64) float64 { return c },
		func(float64) float64 { return 0 },
		func(float64) float64 { return 0 },
		math.Inf(1))
}

// Linear returns the function x -> c0 + c1*x.
func Linear(c0, c1 float64) Func {
	return NewFunc(
		func(x float64) float64 { return c0 + c1*x },
		func(float64) float64 { return c1 },
		func(float64) float64 { return 0 },
		math.Inf(1))
}

// easeFunc moves from one value to another over a fixed duration following
// a gween easing curve. It holds the final value past the duration.
type easeFunc struct {
	from, to, duration float64
	fn                 ease.TweenFunc
}

// EaseFunc returns a function that eases from one value to another over
// duration using fn (for example ease.InOutCubic). Its derivatives are not
// available. Intermediate values are computed in float32, so they are
// accurate to about 1e-7 relative to the span; the end points are exact.
func EaseFunc(from, to, duration float64, fn ease.TweenFunc) Func {
	if fn == nil {
		fn = ease.Linear
	}
	return easeFunc{from: from, to: to, duration: duration, fn: fn}
}

func (e easeFunc) Value(x float64) float64 {
	if x >= e.duration {
		return e.to
	}
	if x <= 0 {
		return e.from
	}
	return float64(e.fn(float32(x), float32(e.from), float32(e.to-e.from), float32(e.duration)))
}

func (e easeFunc) DomainMax() float64 { return e.duration }

var easings = map[string]ease.TweenFunc{
	"linear":        ease.Linear,
	"in-quad":       ease.InQuad,
	"out-quad":      ease.OutQuad,
	"in-out-quad":   ease.InOutQuad,
	"in-cubic":      ease.InCubic,
	"out-cubic":     ease.OutCubic,
	"in-out-cubic":  ease.InOutCubic,
	"in-sine":       ease.InSine,
	"out-sine":      ease.OutSine,
	"in-out-sine":   ease.InOutSine,
	"in-expo":       ease.InExpo,
	"out-expo":      ease.OutExpo,
	"in-out-expo":   ease.InOutExpo,
	"in-back":       ease.InBack,
	"out-back":      ease.OutBack,
	"in-out-back":   ease.InOutBack,
	"in-elastic":    ease.InElastic,
	"out-elastic":   ease.OutElastic,
	"in-bounce":     ease.InBounce,
	"out-bounce":    ease.OutBounce,
	"in-out-bounce": ease.InOutBounce,
}

// EasingByName looks up an easing curve by its kebab-case name
// ("in-out-cubic", "out-bounce", ...).
func EasingByName(name string) (ease.TweenFunc, bool) {
	fn, ok := easings[name]
	return fn, ok
}

// SpringParams configures a damped spring. Frequency is the angular
// frequency and Damping the damping ratio (1 is critically damped).
type SpringParams struct {
	FPS       int
	Frequency float64
	Damping   float64
	Duration  float64
}

// springFunc holds a precomputed harmonica spring trajectory, one sample per
// spring step.
type springFunc struct {
	fps      float64
	duration float64
	pos, vel []float64
}

// SpringFunc returns a function that follows a damped spring released at
// from with zero velocity and pulled toward to. The velocity of the spring is
// available as the first derivative.
func SpringFunc(from, to float64, p SpringParams) Func {
	if p.FPS <= 0 {
		p.FPS = 60
	}
	if p.Duration <= 0 {
		p.Duration = 1
	}
	spring := harmonica.NewSpring(harmonica.FPS(p.FPS), p.Frequency, p.Damping)
	n := int(math.Ceil(p.Duration*float64(p.FPS))) + 1
	sf := &springFunc{
		fps:      float64(p.FPS),
		duration: p.Duration,
		pos:      make([]float64, n),
		vel:      make([]float64, n),
	}
	sf.pos[0] = from
	for i := 1; i < n; i++ {
		sf.pos[i], sf.vel[i] = spring.Update(sf.pos[i-1], sf.vel[i-1], to)
	}
	return sf
}

func (s *springFunc) sample(values []float64, x float64) float64 {
	if x <= 0 {
		return values[0]
	}
	f := x * s.fps
	i := int(f)
	if i >= len(values)-1 {
		return values[len(values)-1]
	}
	frac := f - float64(i)
	return values[i] + frac*(values[i+1]-values[i])
}

func (s *springFunc) Value(x float64) float64 { return s.sample(s.pos, x) }
func (s *springFunc) Deriv(x float64) float64 { return s.sample(s.vel, x) }
func (s *springFunc) DomainMax() float64 { return s.duration }
