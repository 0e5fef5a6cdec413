package anim2d

import (
	"io"
	"math"

	"go.uber.org/zap"
)

// PathState reports how a DirectedObject relates to its path.
type PathState uint8

const (
	// NoPath means the object is free; only angular motion applies.
	NoPath PathState = iota
	// PathPending means a path is attached but its start time lies ahead.
	PathPending
	// PathActive means the object is moving along its path.
	PathActive
)

func (s PathState) String() string {
	switch s {
	case NoPath:
		return "no-path"
	case PathPending:
		return "pending"
	case PathActive:
		return "active"
	}
	return "PathState(?)"
}

// PathStart describes how an object joins a path.
type PathStart struct {
	// U0 is the path parameter the object starts from.
	U0 float64
	// Angle is the initial angle. When AngleRelative is set it is measured
	// from the path tangent.
	Angle         float64
	AngleRelative bool
	// Delay is the time from now until motion along the path begins.
	Delay float64
}

// DirectedObject is a placed object that can follow a path. Its distance
// along the path is either integrated from a velocity and acceleration or
// given by a function of the time since the path started. Its angle is
// integrated from an angular velocity and acceleration or given by a
// function, and can be measured relative to the path tangent.
//
// A path attached to an object is treated as read-only.
type DirectedObject struct {
	PlacedObject

	path           *Path
	time0          float64
	s0, u0, s      float64
	pathVelocity   float64
	pathAccel      float64
	angleRelative  bool
	pathAngle      float64
	angularVel     float64
	angularAccel   float64
	distFn         Func
	angleFn        Func
	pathAngleFn    Func
	inversionLimit float64
	frozen         bool

	lastTime float64
	lastTick int64
}

// initDirected resets the motion state for an object that has just been
// registered with its animation.
func (d *DirectedObject) initDirected() {
	d.time0 = math.NaN()
	d.s0, d.u0 = math.NaN(), math.NaN()
	d.inversionLimit = -1
	d.lastTime, d.lastTick = d.now()
}

// Update advances the object to time t. A call whose time and tick are
// both no later than the previous update changes nothing.
func (d *DirectedObject) Update(t float64, tick int64) error {
	return d.update(t, tick)
}

func (d *DirectedObject) update(t float64, tick int64) error {
	if t <= d.lastTime && tick <= d.lastTick {
		return nil
	}
	switch {
	case d.path != nil && t >= d.time0:
		if d.lastTime < d.time0 {
			// Catch up to the start time as a free object so angular
			// motion before the path starts is not lost.
			p := d.path
			d.path = nil
			err := d.update(d.time0, d.anim.TicksFor(d.time0))
			d.path = p
			if err != nil {
				return err
			}
		}
		if err := d.advanceOnPath(t); err != nil {
			return err
		}
	case d.path == nil:
		if err := d.advanceFree(t); err != nil {
			return err
		}
	}
	d.lastTime, d.lastTick = t, tick
	return nil
}

func (d *DirectedObject) advanceFree(t float64) error {
	if d.angularVel == 0 && d.angularAccel == 0 {
		return nil
	}
	dt := t - d.lastTime
	w := zeroIfNaN(d.angularVel)
	dw := zeroIfNaN(d.angularAccel) * dt
	d.angularVel += dw
	return d.PlacedObject.SetAngle(d.angle + w*dt + 0.5*dw*dt)
}

func (d *DirectedObject) advanceOnPath(t float64) error {
	arg := t - d.time0
	if d.distFn == nil {
		dt := t - d.lastTime
		v := zeroIfNaN(d.pathVelocity)
		dv := zeroIfNaN(d.pathAccel) * dt
		s := d.s + v*dt + 0.5*dv*dt
		if d.path.Closed() || !d.reachesEnd(s) {
			d.s = s
			d.pathVelocity += dv
		} else {
			d.s = math.Max(0, math.Min(s, d.path.Length()))
			d.pathVelocity, d.pathAccel = 0, 0
		}
	} else {
		d.s, d.pathVelocity, d.pathAccel = evalFunc(d.distFn, arg)
	}

	switch {
	case d.angleFn == nil && d.pathAngleFn == nil:
		dt := t - d.lastTime
		w := zeroIfNaN(d.angularVel)
		dw := zeroIfNaN(d.angularAccel) * dt
		d.pathAngle += w*dt + 0.5*dw*dt
		d.angularVel += dw
	case d.pathAngleFn != nil:
		d.pathAngle, d.angularVel, d.angularAccel = evalFunc(d.pathAngleFn, arg)
	default:
		d.pathAngle, d.angularVel, d.angularAccel = evalFunc(d.angleFn, t)
	}
	angle := d.pathAngle

	u := d.currentU()
	x, y := d.path.X(u), d.path.Y(u)
	d.frozen = false
	if d.angleRelative {
		tangent := d.path.TangentAngle(u)
		if math.IsNaN(tangent) {
			d.frozen = true
			d.traceUpdate("tangent undefined, angle frozen", zap.Float64("u", u))
			return d.PlacedObject.SetPosition(x, y, d.angle)
		}
		if d.angleFn == nil || d.pathAngleFn != nil {
			angle += tangent
		} else {
			d.pathAngle -= tangent
		}
	}
	if err := d.PlacedObject.SetPosition(x, y, angle); err != nil {
		return err
	}
	if math.IsNaN(d.angularVel) {
		d.angularVel = 0
	}
	return nil
}

// reachesEnd reports whether moving from the current distance to s runs
// off an open path or lands on one of its ends, within the inversion
// limit.
func (d *DirectedObject) reachesEnd(s float64) bool {
	tol := DefaultInversionLimit
	if d.inversionLimit > 0 {
		tol = d.inversionLimit
	}
	length := d.path.Length()
	switch {
	case s < 0 || s > length:
		return true
	case s > d.s:
		return s >= length-tol
	case s < d.s:
		return s <= tol
	}
	return false
}

// currentU returns the path parameter for the current distance, reusing
// the starting parameter while the object has not moved.
func (d *DirectedObject) currentU() float64 {
	if d.s == d.s0 {
		return d.u0
	}
	if d.inversionLimit >= 0 {
		return d.path.UWithin(d.s, d.inversionLimit)
	}
	return d.path.U(d.s)
}

func zeroIfNaN(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}

// SetPath attaches p. The object is positioned at p's point for start.U0
// immediately; motion along the path begins start.Delay time units from
// now. With a relative angle and no tangent at start.U0 the object keeps
// its current angle. A nil path detaches the current one.
func (d *DirectedObject) SetPath(p *Path, start PathStart) error {
	if p == nil {
		return d.ClearPath()
	}
	if p.NumSegments() == 0 {
		return argError("SetPath", "empty path")
	}
	if isNaN(start.U0, start.Angle, start.Delay) {
		return argError("SetPath", "NaN in start %+v", start)
	}
	if err := d.sync(); err != nil {
		return err
	}
	d.path = p
	d.angleRelative = start.AngleRelative
	d.pathAngle = start.Angle
	d.pathAngleFn = nil
	d.time0 = d.anim.CurrentTime() + start.Delay
	d.u0 = start.U0
	d.s = p.S(start.U0)
	d.s0 = d.s
	d.frozen = false

	angle := start.Angle
	if start.AngleRelative {
		if tangent := p.TangentAngle(start.U0); !math.IsNaN(tangent) {
			angle += tangent
		} else {
			angle = d.angle
			d.frozen = true
		}
	}
	d.traceEvent("set path",
		zap.Float64("u0", start.U0),
		zap.Float64("angle", start.Angle),
		zap.Bool("angleRelative", start.AngleRelative),
		zap.Float64("time0", d.time0))
	return d.PlacedObject.SetPosition(p.X(start.U0), p.Y(start.U0), angle)
}

// ClearPath detaches the path and resets distance and angle motion to
// neutral values. The current position and angle are kept.
func (d *DirectedObject) ClearPath() error {
	if err := d.sync(); err != nil {
		return err
	}
	d.path = nil
	d.distFn, d.angleFn, d.pathAngleFn = nil, nil, nil
	d.pathVelocity, d.pathAccel = 0, 0
	d.s0, d.u0, d.time0 = math.NaN(), math.NaN(), math.NaN()
	d.s = 0
	d.angleRelative = false
	d.pathAngle = 0
	d.frozen = false
	d.traceEvent("clear path")
	return nil
}

// SetPosition sets the position and angle. While a path is active the
// position is overwritten by the next update; the angle carries over as
// the path angle.
func (d *DirectedObject) SetPosition(x, y, angle float64) error {
	if err := d.sync(); err != nil {
		return err
	}
	if err := d.PlacedObject.SetPosition(x, y, angle); err != nil {
		return err
	}
	d.syncPathAngle()
	return nil
}

// SetLocation sets the position, keeping the angle.
func (d *DirectedObject) SetLocation(x, y float64) error {
	if isNaN(x, y) {
		return argError("SetLocation", "NaN in (%g, %g)", x, y)
	}
	return d.SetPosition(x, y, d.angle)
}

// SetAngle sets the angle as drawn.
func (d *DirectedObject) SetAngle(angle float64) error {
	if math.IsNaN(angle) {
		return argError("SetAngle", "NaN angle")
	}
	return d.SetPosition(d.x, d.y, angle)
}

func (d *DirectedObject) syncPathAngle() {
	d.pathAngle = d.angle
	if d.path != nil && d.angleRelative {
		if tangent := d.path.TangentAngle(d.currentU()); !math.IsNaN(tangent) {
			d.pathAngle -= tangent
		}
	}
}

// SetPathAngle sets the angle measured in the current angle mode: from the
// tangent when the angle is relative, absolute otherwise.
func (d *DirectedObject) SetPathAngle(angle float64) error {
	if math.IsNaN(angle) {
		return argError("SetPathAngle", "NaN angle")
	}
	if err := d.sync(); err != nil {
		return err
	}
	if d.path == nil {
		return stateError("SetPathAngle", "no path")
	}
	d.pathAngle = angle
	drawn := angle
	if d.angleRelative {
		if tangent := d.path.TangentAngle(d.currentU()); !math.IsNaN(tangent) {
			drawn += tangent
		}
	}
	return d.PlacedObject.SetAngle(drawn)
}

// SetAngleRelative switches between angles measured from the path tangent
// and absolute angles. The drawn angle does not change at the switch.
func (d *DirectedObject) SetAngleRelative(relative bool) error {
	if err := d.sync(); err != nil {
		return err
	}
	if d.path == nil {
		return stateError("SetAngleRelative", "no path")
	}
	if relative == d.angleRelative {
		return nil
	}
	tangent := zeroIfNaN(d.path.TangentAngle(d.currentU()))
	if relative {
		d.pathAngle -= tangent
	} else {
		d.pathAngle += tangent
	}
	d.angleRelative = relative
	d.traceEvent("set angle relative", zap.Bool("relative", relative))
	return nil
}

// SetPathVelocity sets the velocity along the path.
func (d *DirectedObject) SetPathVelocity(v float64) error {
	if math.IsNaN(v) {
		return argError("SetPathVelocity", "NaN velocity")
	}
	if err := d.sync(); err != nil {
		return err
	}
	d.pathVelocity = v
	d.traceEvent("set path velocity", zap.Float64("v", v))
	return nil
}

// SetPathAcceleration sets the acceleration along the path.
func (d *DirectedObject) SetPathAcceleration(a float64) error {
	if math.IsNaN(a) {
		return argError("SetPathAcceleration", "NaN acceleration")
	}
	if err := d.sync(); err != nil {
		return err
	}
	d.pathAccel = a
	d.traceEvent("set path acceleration", zap.Float64("a", a))
	return nil
}

// SetAngularVelocity sets the angular velocity in radians per time unit.
func (d *DirectedObject) SetAngularVelocity(w float64) error {
	if math.IsNaN(w) {
		return argError("SetAngularVelocity", "NaN angular velocity")
	}
	if err := d.sync(); err != nil {
		return err
	}
	d.angularVel = w
	d.traceEvent("set angular velocity", zap.Float64("w", w))
	return nil
}

// SetAngularAcceleration sets the angular acceleration.
func (d *DirectedObject) SetAngularAcceleration(a float64) error {
	if math.IsNaN(a) {
		return argError("SetAngularAcceleration", "NaN angular acceleration")
	}
	if err := d.sync(); err != nil {
		return err
	}
	d.angularAccel = a
	d.traceEvent("set angular acceleration", zap.Float64("a", a))
	return nil
}

// SetDistanceFunction makes the distance along the path a function of the
// time since the path started. Arguments beyond the function's domain are
// clamped to it. A nil f returns to velocity integration.
func (d *DirectedObject) SetDistanceFunction(f Func) error {
	if err := d.sync(); err != nil {
		return err
	}
	d.distFn = f
	d.traceEvent("set distance function", zap.Bool("set", f != nil))
	return nil
}

// SetAngleFunction makes the drawn angle a function of absolute time. A
// path angle function, when set, takes precedence.
func (d *DirectedObject) SetAngleFunction(f Func) error {
	if err := d.sync(); err != nil {
		return err
	}
	d.angleFn = f
	d.traceEvent("set angle function", zap.Bool("set", f != nil))
	return nil
}

// SetPathAngleFunction makes the path angle a function of the time since
// the path started.
func (d *DirectedObject) SetPathAngleFunction(f Func) error {
	if err := d.sync(); err != nil {
		return err
	}
	d.pathAngleFn = f
	d.traceEvent("set path angle function", zap.Bool("set", f != nil))
	return nil
}

// SetInversionLimit sets the tolerance used when converting distance to
// path parameter. A negative limit selects the path's default.
func (d *DirectedObject) SetInversionLimit(limit float64) {
	if math.IsNaN(limit) || limit < 0 {
		limit = -1
	}
	d.inversionLimit = limit
}

// InversionLimit returns the inversion limit, or a negative value when the
// path default is used.
func (d *DirectedObject) InversionLimit() float64 { return d.inversionLimit }

// State reports whether the object is free, waiting for its path to start,
// or moving along it.
func (d *DirectedObject) State() PathState {
	switch {
	case d.path == nil:
		return NoPath
	case d.lastTime < d.time0:
		return PathPending
	}
	return PathActive
}

// HasPath reports whether a path is attached.
func (d *DirectedObject) HasPath() bool { return d.path != nil }

// Path returns the attached path or nil.
func (d *DirectedObject) Path() *Path { return d.path }

// PathLength returns the attached path's length, or 0 without a path.
func (d *DirectedObject) PathLength() float64 {
	if d.path == nil {
		return 0
	}
	return d.path.Length()
}

// InitialPathTime returns the time motion along the path begins, or +Inf
// when there is no path.
func (d *DirectedObject) InitialPathTime() float64 {
	if d.path == nil {
		return math.Inf(1)
	}
	return d.time0
}

// Distance returns the distance along the path, or NaN without a path.
func (d *DirectedObject) Distance() float64 {
	if d.path == nil {
		return math.NaN()
	}
	return d.s
}

// PathParameter returns the current path parameter, or NaN without a path.
func (d *DirectedObject) PathParameter() float64 {
	if d.path == nil {
		return math.NaN()
	}
	return d.currentU()
}

// U converts a distance along the attached path to a path parameter.
func (d *DirectedObject) U(s float64) (float64, error) {
	if d.path == nil {
		return math.NaN(), stateError("U", "no path")
	}
	if d.inversionLimit >= 0 {
		return d.path.UWithin(s, d.inversionLimit), nil
	}
	return d.path.U(s), nil
}

// S converts a path parameter of the attached path to a distance.
func (d *DirectedObject) S(u float64) (float64, error) {
	if d.path == nil {
		return math.NaN(), stateError("S", "no path")
	}
	return d.path.S(u), nil
}

// PathVelocity returns the velocity along the path. It is NaN when a
// distance function without a derivative drives the motion.
func (d *DirectedObject) PathVelocity() float64 { return d.pathVelocity }

// PathAcceleration returns the acceleration along the path.
func (d *DirectedObject) PathAcceleration() float64 { return d.pathAccel }

// AngularVelocity returns the angular velocity.
func (d *DirectedObject) AngularVelocity() float64 { return d.angularVel }

// AngularAcceleration returns the angular acceleration.
func (d *DirectedObject) AngularAcceleration() float64 { return d.angularAccel }

// PathAngle returns the angle in the current angle mode.
func (d *DirectedObject) PathAngle() float64 { return d.pathAngle }

// AngleRelative reports whether the angle is measured from the tangent.
func (d *DirectedObject) AngleRelative() bool { return d.path != nil && d.angleRelative }

// TangentDegenerate reports whether the last update held the angle because
// the path tangent was undefined.
func (d *DirectedObject) TangentDegenerate() bool { return d.frozen }

// LastUpdate returns the time and tick of the last applied update.
func (d *DirectedObject) LastUpdate() (float64, int64) { return d.lastTime, d.lastTick }

// Draw is a no-op; types embedding DirectedObject draw themselves.
func (d *DirectedObject) Draw(Renderer) error { return nil }

// PrintState writes the object's state.
func (d *DirectedObject) PrintState(w io.Writer) error {
	sp := &statePrinter{w: w}
	d.printState(sp)
	return sp.err
}

func (d *DirectedObject) printState(sp *statePrinter) {
	d.PlacedObject.printState(sp)
	sp.line("    path state: %s", d.State())
	if d.path == nil {
		sp.line("    angular velocity: %g", d.angularVel)
		sp.line("    angular acceleration: %g", d.angularAccel)
		return
	}
	sp.line("    path length: %g (closed: %t)", d.path.Length(), d.path.Closed())
	sp.line("    initial path time: %g", d.time0)
	sp.line("    distance: %g (u = %g)", d.s, d.currentU())
	sp.line("    path velocity: %g", d.pathVelocity)
	sp.line("    path acceleration: %g", d.pathAccel)
	sp.line("    angle relative: %t", d.angleRelative)
	sp.line("    path angle: %g", d.pathAngle)
	sp.line("    angular velocity: %g", d.angularVel)
	sp.line("    angular acceleration: %g", d.angularAccel)
	sp.line("    distance function: %t", d.distFn != nil)
	sp.line("    angle function: %t", d.angleFn != nil)
	sp.line("    path angle function: %t", d.pathAngleFn != nil)
}
