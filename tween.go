package anim2d

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup eases up to four values of one object together. Add it to an
// animation with AddTween and it is stepped by the elapsed simulation time
// before each frame; once every tween finishes, Done is set and the group
// is dropped. If the target object is deleted the group stops immediately.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	apply  func(vals [4]float64) error
	target Object
	Done   bool
}

// Update advances all tweens by dt time units and applies the values.
func (g *TweenGroup) Update(dt float32) error {
	if g.Done {
		return nil
	}
	if g.target != nil && g.target.objectBase().deleted {
		g.Done = true
		return nil
	}

	var vals [4]float64
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		vals[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
	return g.apply(vals)
}

// Mover is an object whose position and angle can be set directly.
type Mover interface {
	Placed
	SetLocation(x, y float64) error
	SetAngle(angle float64) error
}

// TweenLocation eases o's position to (toX, toY).
func TweenLocation(o Mover, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	x, y, _ := o.Position()
	g := &TweenGroup{count: 2, target: o}
	g.tweens[0] = gween.New(float32(x), float32(toX), duration, easeOrLinear(fn))
	g.tweens[1] = gween.New(float32(y), float32(toY), duration, easeOrLinear(fn))
	g.apply = func(v [4]float64) error { return o.SetLocation(v[0], v[1]) }
	return g
}

// TweenAngle eases o's angle to the given value.
func TweenAngle(o Mover, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	_, _, angle := o.Position()
	g := &TweenGroup{count: 1, target: o}
	g.tweens[0] = gween.New(float32(angle), float32(to), duration, easeOrLinear(fn))
	g.apply = func(v [4]float64) error { return o.SetAngle(v[0]) }
	return g
}

// TweenZoom eases a view's zoom factor to the given value.
func TweenZoom(v *View, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1, target: v}
	g.tweens[0] = gween.New(float32(v.Zoom()), float32(to), duration, easeOrLinear(fn))
	g.apply = func(vals [4]float64) error { return v.SetZoom(vals[0]) }
	return g
}

// TweenTrim eases the drawn fraction of a connecting line.
func TweenTrim(l *ConnectingLine, toStart, toEnd float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2, target: l}
	g.tweens[0] = gween.New(float32(l.start), float32(toStart), duration, easeOrLinear(fn))
	g.tweens[1] = gween.New(float32(l.end), float32(toEnd), duration, easeOrLinear(fn))
	g.apply = func(v [4]float64) error {
		s, e := clamp01(v[0]), clamp01(v[1])
		if s > e {
			s, e = e, s
		}
		return l.SetTrim(s, e)
	}
	return g
}

func easeOrLinear(fn ease.TweenFunc) ease.TweenFunc {
	if fn == nil {
		return ease.Linear
	}
	return fn
}
