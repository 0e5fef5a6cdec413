package scene

import (
	"fmt"

	"github.com/tanema/gween/ease"

	"github.com/phanxgames/anim2d"
)

// Actions lists the timeline vocabulary.
var Actions = []string{
	"path", "clear-path", "velocity", "acceleration",
	"angular-velocity", "angular-acceleration", "angle-relative", "path-angle",
	"distance-function", "visible", "zorder", "delete", "position",
	"zoom", "zoom-rate", "log-zoom", "zoom-to", "scroll-to", "trim",
}

type locator interface {
	SetLocation(x, y float64) error
	SetPosition(x, y, angle float64) error
}

// action resolves ad against the built objects. Unknown objects, actions
// and arguments are reported here rather than when the action runs.
func (s *Scene) action(ad ActionDoc) (anim2d.TimelineEntry, error) {
	e := anim2d.TimelineEntry{Time: ad.At, Label: ad.Object + " " + ad.Action}
	o, ok := s.objects[ad.Object]
	if !ok {
		return e, fmt.Errorf("unknown object %q", ad.Object)
	}
	enabled := ad.Enabled == nil || *ad.Enabled

	switch ad.Action {
	case "visible":
		e.Do = func() error { o.SetVisible(enabled); return nil }
		return e, nil
	case "zorder":
		if ad.ZOrder == nil {
			return e, fmt.Errorf("zorder needs a zorder value")
		}
		z := *ad.ZOrder
		e.Do = func() error { o.SetZOrder(z, enabled); return nil }
		return e, nil
	case "delete":
		e.Do = func() error { o.Delete(); return nil }
		return e, nil
	case "position":
		l, ok := o.(locator)
		if !ok {
			return e, fmt.Errorf("%s cannot be positioned", ad.Object)
		}
		x, y := ad.X, ad.Y
		if ad.Angle != nil {
			angle := *ad.Angle
			e.Do = func() error { return l.SetPosition(x, y, angle) }
		} else {
			e.Do = func() error { return l.SetLocation(x, y) }
		}
		return e, nil
	case "trim":
		l, ok := s.lines[ad.Object]
		if !ok {
			return e, fmt.Errorf("%s is not a line", ad.Object)
		}
		start, end := ad.Value, ad.End
		if end == 0 {
			end = 1
		}
		e.Do = func() error { return l.SetTrim(start, end) }
		return e, nil
	case "zoom", "zoom-rate", "log-zoom", "zoom-to", "scroll-to":
		v, ok := s.views[ad.Object]
		if !ok {
			return e, fmt.Errorf("%s is not a view", ad.Object)
		}
		return s.viewAction(e, v, ad)
	}

	d, ok := s.directed[ad.Object]
	if !ok {
		if !knownAction(ad.Action) {
			return e, fmt.Errorf("unknown action %q", ad.Action)
		}
		return e, fmt.Errorf("%s does not move along paths", ad.Object)
	}
	val := ad.Value
	switch ad.Action {
	case "path":
		p, ok := s.Paths[ad.Path]
		if !ok {
			return e, fmt.Errorf("unknown path %q", ad.Path)
		}
		start := pathStart(ad.Start)
		e.Do = func() error { return d.SetPath(p, start) }
	case "clear-path":
		e.Do = d.ClearPath
	case "velocity":
		e.Do = func() error { return d.SetPathVelocity(val) }
	case "acceleration":
		e.Do = func() error { return d.SetPathAcceleration(val) }
	case "angular-velocity":
		e.Do = func() error { return d.SetAngularVelocity(val) }
	case "angular-acceleration":
		e.Do = func() error { return d.SetAngularAcceleration(val) }
	case "angle-relative":
		e.Do = func() error { return d.SetAngleRelative(enabled) }
	case "path-angle":
		e.Do = func() error { return d.SetPathAngle(val) }
	case "distance-function":
		var fn anim2d.Func
		if ad.Function != nil {
			var err error
			if fn, err = ad.Function.Func(); err != nil {
				return e, err
			}
		}
		e.Do = func() error { return d.SetDistanceFunction(fn) }
	default:
		return e, fmt.Errorf("unknown action %q", ad.Action)
	}
	return e, nil
}

func (s *Scene) viewAction(e anim2d.TimelineEntry, v *anim2d.View, ad ActionDoc) (anim2d.TimelineEntry, error) {
	val, dur := ad.Value, ad.Duration
	var easing ease.TweenFunc
	if ad.Easing != "" {
		fn, ok := anim2d.EasingByName(ad.Easing)
		if !ok {
			return e, fmt.Errorf("unknown easing %q", ad.Easing)
		}
		easing = fn
	}
	switch ad.Action {
	case "zoom":
		e.Do = func() error { return v.SetZoom(val) }
	case "zoom-rate":
		e.Do = func() error { return v.SetZoomRate(val) }
	case "log-zoom":
		e.Do = func() error { return v.SetLogZoomRate(val, dur) }
	case "zoom-to":
		e.Do = func() error { return v.ZoomTo(val, dur, easing) }
	case "scroll-to":
		x, y := ad.X, ad.Y
		e.Do = func() error { return v.ScrollTo(x, y, dur, easing) }
	}
	return e, nil
}

func knownAction(name string) bool {
	for _, a := range Actions {
		if a == name {
			return true
		}
	}
	return false
}
