package anim2d

import (
	"io"
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"go.uber.org/zap"
)

// View is a directed object that acts as the camera: it can follow a path
// like any other directed object and additionally carries a zoom factor.
// Drawing a view sets the renderer's window so that objects drawn after it
// (with higher z-order) are seen from the view's position.
//
// Only one view should be drawn per frame.
type View struct {
	DirectedObject

	cfg ViewConfig

	initialized bool
	xf, yf      float64
	scaleX      float64
	scaleY      float64
	zoom        float64
	zoomRate    float64
	initial     ViewInit

	zoomTween *zoomTween
}

// zoomTween eases the zoom factor between two values starting at a given
// simulation time.
type zoomTween struct {
	tween  *gween.Tween
	start  float64
	target float64
}

// NewView creates a view. When cfg.Init is set the view is initialized
// immediately; otherwise Initialize must be called before the first frame
// that draws it.
func NewView(a *Animation, name string, cfg ViewConfig) (*View, error) {
	v := &View{cfg: cfg, zoom: 1, scaleX: 1, scaleY: 1}
	if err := a.register(v, name, cfg.Visibility); err != nil {
		return nil, err
	}
	v.initDirected()
	if err := v.applyPlacement(cfg.Placement); err != nil {
		v.Delete()
		return nil, err
	}
	if err := v.applyMotion(cfg.Motion); err != nil {
		v.Delete()
		return nil, err
	}
	if cfg.Init != nil {
		if err := v.Initialize(*cfg.Init); err != nil {
			v.Delete()
			return nil, err
		}
	}
	return v, nil
}

// Initialize places the view at (X, Y), makes that graph point appear at
// the surface fraction (XF, YF), and sets the scale in pixels per graph
// unit and the starting zoom. It may be called only once.
func (v *View) Initialize(init ViewInit) error {
	if v.initialized {
		return stateError("Initialize", "view %s already initialized", v.name)
	}
	if isNaN(init.X, init.Y, init.XF, init.YF, init.ScaleX, init.ScaleY) {
		return argError("Initialize", "NaN in %+v", init)
	}
	if init.ScaleX <= 0 || init.ScaleY <= 0 {
		return argError("Initialize", "scale must be positive, got (%g, %g)", init.ScaleX, init.ScaleY)
	}
	zoom := init.Zoom
	if zoom == 0 {
		zoom = 1
	}
	if !(zoom > 0) {
		return argError("Initialize", "zoom must be positive, got %g", zoom)
	}
	if err := v.SetLocation(init.X, init.Y); err != nil {
		return err
	}
	v.xf, v.yf = init.XF, init.YF
	v.scaleX, v.scaleY = init.ScaleX, init.ScaleY
	v.zoom = zoom
	v.initial = init
	v.initial.Zoom = zoom
	v.initialized = true
	v.traceEvent("initialized", zap.Float64("zoom", zoom))
	return nil
}

// Initialized reports whether Initialize has been called.
func (v *View) Initialized() bool { return v.initialized }

// Update applies the zoom rate over the time since the previous update and
// then advances the view like any directed object.
func (v *View) Update(t float64, tick int64) error {
	if t <= v.lastTime && tick <= v.lastTick {
		return nil
	}
	if v.initialized {
		switch {
		case v.zoomTween != nil:
			z, done := v.zoomTween.tween.Set(float32(t - v.zoomTween.start))
			v.zoom = float64(z)
			if done {
				v.zoom = v.zoomTween.target
				v.zoomTween = nil
			}
		case v.zoomRate != 0:
			v.zoom *= math.Exp(v.zoomRate * (t - v.lastTime))
		}
	}
	if err := v.DirectedObject.update(t, tick); err != nil {
		return err
	}
	if v.initialized && v.zoomRate != 0 {
		v.traceUpdate("zoom", zap.Float64("zoom", v.zoom))
	}
	return nil
}

// Zoom returns the zoom factor.
func (v *View) Zoom() float64 { return v.zoom }

// ZoomRate returns the logarithmic zoom rate.
func (v *View) ZoomRate() float64 { return v.zoomRate }

// SetZoom sets the zoom factor. It cancels any zoom easing in progress.
func (v *View) SetZoom(zoom float64) error {
	if !(zoom > 0) || math.IsInf(zoom, 1) {
		return argError("SetZoom", "zoom must be positive and finite, got %g", zoom)
	}
	if err := v.sync(); err != nil {
		return err
	}
	v.zoom = zoom
	v.zoomTween = nil
	v.traceEvent("set zoom", zap.Float64("zoom", zoom))
	return nil
}

// SetZoomRate sets the logarithmic zoom rate r: the zoom is multiplied by
// exp(r*dt) over an interval dt.
func (v *View) SetZoomRate(rate float64) error {
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return argError("SetZoomRate", "bad rate %g", rate)
	}
	if err := v.sync(); err != nil {
		return err
	}
	v.zoomRate = rate
	v.zoomTween = nil
	v.traceEvent("set zoom rate", zap.Float64("rate", rate))
	return nil
}

// SetLogZoomRate sets the zoom rate that takes the current zoom to target
// in dt time units.
func (v *View) SetLogZoomRate(target, dt float64) error {
	if !(target > 0) || math.IsInf(target, 1) {
		return argError("SetLogZoomRate", "target zoom must be positive and finite, got %g", target)
	}
	if !(dt > 0) {
		return argError("SetLogZoomRate", "interval must be positive, got %g", dt)
	}
	if err := v.sync(); err != nil {
		return err
	}
	return v.SetZoomRate(math.Log(target/v.zoom) / dt)
}

// ZoomTo eases the zoom from its current value to target over duration
// time units. A nil easing is linear. The easing is evaluated in float32,
// so intermediate zooms carry about 1e-7 relative error; target is reached
// exactly once duration has elapsed.
func (v *View) ZoomTo(target, duration float64, easing ease.TweenFunc) error {
	if !(target > 0) || math.IsInf(target, 1) {
		return argError("ZoomTo", "target zoom must be positive and finite, got %g", target)
	}
	if !(duration > 0) {
		return argError("ZoomTo", "duration must be positive, got %g", duration)
	}
	if err := v.sync(); err != nil {
		return err
	}
	if easing == nil {
		easing = ease.Linear
	}
	v.zoomRate = 0
	v.zoomTween = &zoomTween{
		tween:  gween.New(float32(v.zoom), float32(target), float32(duration), easing),
		start:  v.anim.CurrentTime(),
		target: target,
	}
	v.traceEvent("zoom to", zap.Float64("target", target), zap.Float64("duration", duration))
	return nil
}

// ScrollTo moves the view in a straight line from its position to (x, y)
// over duration time units, eased by easing. It replaces any path.
func (v *View) ScrollTo(x, y, duration float64, easing ease.TweenFunc) error {
	if isNaN(x, y) {
		return argError("ScrollTo", "NaN in (%g, %g)", x, y)
	}
	if !(duration > 0) {
		return argError("ScrollTo", "duration must be positive, got %g", duration)
	}
	if err := v.sync(); err != nil {
		return err
	}
	if x == v.x && y == v.y {
		return nil
	}
	p, err := LinePath(v.x, v.y, x, y)
	if err != nil {
		return err
	}
	angle := v.angle
	if err := v.SetPath(p, PathStart{Angle: angle}); err != nil {
		return err
	}
	return v.SetDistanceFunction(EaseFunc(0, p.Length(), duration, easing))
}

// SetWindowFraction sets where on the surface the view's position appears,
// as fractions of the width and height from the lower left corner.
func (v *View) SetWindowFraction(xf, yf float64) error {
	if !v.initialized {
		return stateError("SetWindowFraction", "view %s not initialized", v.name)
	}
	if isNaN(xf, yf) {
		return argError("SetWindowFraction", "NaN in (%g, %g)", xf, yf)
	}
	v.xf, v.yf = xf, yf
	return nil
}

// SetScale sets the scale in pixels per graph unit before zoom.
func (v *View) SetScale(sx, sy float64) error {
	if !v.initialized {
		return stateError("SetScale", "view %s not initialized", v.name)
	}
	if !(sx > 0) || !(sy > 0) {
		return argError("SetScale", "scale must be positive, got (%g, %g)", sx, sy)
	}
	v.scaleX, v.scaleY = sx, sy
	return nil
}

// Window returns the coordinate window the view imposes on a renderer.
func (v *View) Window() (ViewWindow, error) {
	if !v.initialized {
		return ViewWindow{}, stateError("Window", "view %s not initialized", v.name)
	}
	return ViewWindow{
		X:      v.x,
		Y:      v.y,
		XF:     v.xf,
		YF:     v.yf,
		ScaleX: v.scaleX * v.zoom,
		ScaleY: v.scaleY * v.zoom,
		Angle:  v.angle,
	}, nil
}

// Draw sets r's window from the view.
func (v *View) Draw(r Renderer) error {
	w, err := v.Window()
	if err != nil {
		return err
	}
	r.SetWindow(w)
	return nil
}

// PrintState writes the view's state.
func (v *View) PrintState(w io.Writer) error {
	sp := &statePrinter{w: w}
	v.DirectedObject.printState(sp)
	sp.line("    initialized: %t", v.initialized)
	sp.line("    zoom factor: %g", v.zoom)
	sp.line("    zoom rate (logarithmic): %g", v.zoomRate)
	return sp.err
}

// PrintConfiguration writes the configuration the view was created with,
// including its initialization.
func (v *View) PrintConfiguration(w io.Writer) error {
	cfg := v.cfg
	if v.initialized {
		init := v.initial
		cfg.Init = &init
	}
	return printConfiguration(w, v.name, cfg)
}
