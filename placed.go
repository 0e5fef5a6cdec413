package anim2d

import (
	"math"
	"strings"

	"go.uber.org/zap"
)

// RefPointName names one of the nine standard anchors of an object's
// bounding box. Upper and lower refer to graph coordinates, where y grows
// upward.
type RefPointName uint8

const (
	// RefNone marks a reference point that is not at a named anchor.
	RefNone RefPointName = iota
	RefUpperLeft
	RefUpperCenter
	RefUpperRight
	RefCenterLeft
	RefCenter
	RefCenterRight
	RefLowerLeft
	RefLowerCenter
	RefLowerRight
)

var refPointNames = [...]string{
	RefNone:        "NONE",
	RefUpperLeft:   "UPPER_LEFT",
	RefUpperCenter: "UPPER_CENTER",
	RefUpperRight:  "UPPER_RIGHT",
	RefCenterLeft:  "CENTER_LEFT",
	RefCenter:      "CENTER",
	RefCenterRight: "CENTER_RIGHT",
	RefLowerLeft:   "LOWER_LEFT",
	RefLowerCenter: "LOWER_CENTER",
	RefLowerRight:  "LOWER_RIGHT",
}

func (n RefPointName) String() string {
	if int(n) < len(refPointNames) {
		return refPointNames[n]
	}
	return "RefPointName(?)"
}

// ParseRefPointName accepts UPPER_LEFT style names and their kebab-case
// spellings (upper-left). The empty string parses as RefNone.
func ParseRefPointName(s string) (RefPointName, error) {
	if s == "" {
		return RefNone, nil
	}
	key := strings.ToUpper(strings.ReplaceAll(s, "-", "_"))
	for i, name := range refPointNames {
		if name == key {
			return RefPointName(i), nil
		}
	}
	return RefNone, argError("ParseRefPointName", "unknown reference point %q", s)
}

func (n RefPointName) MarshalText() ([]byte, error) { return []byte(n.String()), nil }

func (n *RefPointName) UnmarshalText(b []byte) error {
	v, err := ParseRefPointName(string(b))
	if err != nil {
		return err
	}
	*n = v
	return nil
}

// fractions returns the anchor's position as fractions of the bounding box.
func (n RefPointName) fractions() (fx, fy float64) {
	switch n {
	case RefUpperLeft:
		return 0, 1
	case RefUpperCenter:
		return 0.5, 1
	case RefUpperRight:
		return 1, 1
	case RefCenterLeft:
		return 0, 0.5
	case RefCenter:
		return 0.5, 0.5
	case RefCenterRight:
		return 1, 0.5
	case RefLowerLeft:
		return 0, 0
	case RefLowerCenter:
		return 0.5, 0
	case RefLowerRight:
		return 1, 0
	}
	return math.NaN(), math.NaN()
}

// PlacedObject is an object with a position and orientation in graph
// coordinates and a reference point that is mapped onto that position.
type PlacedObject struct {
	ObjectBase

	x, y, angle float64

	xMin, xMax, yMin, yMax float64
	refX, refY             float64
	refName                RefPointName
}

// X returns the x coordinate of the reference point in graph coordinates.
func (p *PlacedObject) X() float64 { return p.x }

// Y returns the y coordinate of the reference point in graph coordinates.
func (p *PlacedObject) Y() float64 { return p.y }

// Angle returns the orientation in radians, counterclockwise positive.
func (p *PlacedObject) Angle() float64 { return p.angle }

// Position returns x, y and angle together.
func (p *PlacedObject) Position() (x, y, angle float64) { return p.x, p.y, p.angle }

// SetPosition sets the position and angle. NaN values are rejected and
// leave the object unchanged.
func (p *PlacedObject) SetPosition(x, y, angle float64) error {
	if isNaN(x, y, angle) {
		return argError("SetPosition", "NaN in (%g, %g, %g)", x, y, angle)
	}
	p.x, p.y, p.angle = x, y, angle
	p.traceUpdate("set position", zap.Float64("x", x), zap.Float64("y", y), zap.Float64("angle", angle))
	return nil
}

// SetLocation sets the position, keeping the angle.
func (p *PlacedObject) SetLocation(x, y float64) error {
	if isNaN(x, y) {
		return argError("SetLocation", "NaN in (%g, %g)", x, y)
	}
	return p.SetPosition(x, y, p.angle)
}

// SetAngle sets the angle, keeping the position.
func (p *PlacedObject) SetAngle(angle float64) error {
	if math.IsNaN(angle) {
		return argError("SetAngle", "NaN angle")
	}
	return p.SetPosition(p.x, p.y, angle)
}

// DrawTransform maps object-local coordinates to graph coordinates: the
// reference point goes to the origin, the result is rotated by the angle,
// then translated to the position.
func (p *PlacedObject) DrawTransform() Affine {
	return placementTransform(p.x, p.y, p.angle, p.refX, p.refY)
}

// RefPoint returns the reference point in local coordinates.
func (p *PlacedObject) RefPoint() (x, y float64) { return p.refX, p.refY }

// RefPointName returns the anchor the reference point sits on, or RefNone.
func (p *PlacedObject) RefPointName() RefPointName { return p.refName }

// RefPointBounds returns the local bounding box used by named and
// fractional reference points.
func (p *PlacedObject) RefPointBounds() Rect {
	return Rect{X: p.xMin, Y: p.yMin, Width: p.xMax - p.xMin, Height: p.yMax - p.yMin}
}

// SetRefPointBounds sets a width by height bounding box centered on the
// local origin and re-applies the current reference point name.
func (p *PlacedObject) SetRefPointBounds(width, height float64) error {
	if isNaN(width, height) || width < 0 || height < 0 {
		return argError("SetRefPointBounds", "bad size %gx%g", width, height)
	}
	return p.SetRefPointBoundsRange(-width/2, width/2, -height/2, height/2)
}

// SetRefPointBoundsRange sets the bounding box from its extremes and
// re-applies the current reference point name.
func (p *PlacedObject) SetRefPointBoundsRange(xMin, xMax, yMin, yMax float64) error {
	if isNaN(xMin, xMax, yMin, yMax) || xMin > xMax || yMin > yMax {
		return argError("SetRefPointBoundsRange", "bad bounds x [%g, %g] y [%g, %g]", xMin, xMax, yMin, yMax)
	}
	p.xMin, p.xMax, p.yMin, p.yMax = xMin, xMax, yMin, yMax
	if p.refName != RefNone {
		fx, fy := p.refName.fractions()
		p.refX, p.refY = p.fractionPoint(fx, fy)
	}
	return nil
}

// SetRefPointByName moves the reference point to a named anchor of the
// bounding box. RefNone selects the local origin.
func (p *PlacedObject) SetRefPointByName(name RefPointName) error {
	if int(name) >= len(refPointNames) {
		return argError("SetRefPointByName", "unknown reference point %d", name)
	}
	if name == RefNone {
		p.refX, p.refY, p.refName = 0, 0, RefNone
		p.traceEvent("set ref point", zap.Stringer("name", name))
		return nil
	}
	fx, fy := name.fractions()
	p.refX, p.refY = p.fractionPoint(fx, fy)
	p.refName = name
	p.traceEvent("set ref point", zap.Stringer("name", name))
	return nil
}

// SetRefPoint sets the reference point in local coordinates. If it lands
// exactly on a named anchor the name is recorded, otherwise it is cleared.
func (p *PlacedObject) SetRefPoint(x, y float64) error {
	if isNaN(x, y) {
		return argError("SetRefPoint", "NaN in (%g, %g)", x, y)
	}
	p.refX, p.refY = x, y
	p.refName = p.anchorAt(x, y)
	p.traceEvent("set ref point", zap.Float64("x", x), zap.Float64("y", y))
	return nil
}

// SetRefPointByFraction sets the reference point as fractions of the
// bounding box, 0 at the minimum edge and 1 at the maximum edge.
func (p *PlacedObject) SetRefPointByFraction(fx, fy float64) error {
	if isNaN(fx, fy) {
		return argError("SetRefPointByFraction", "NaN in (%g, %g)", fx, fy)
	}
	for name := RefUpperLeft; name <= RefLowerRight; name++ {
		if nx, ny := name.fractions(); nx == fx && ny == fy {
			return p.SetRefPointByName(name)
		}
	}
	p.refX, p.refY = p.fractionPoint(fx, fy)
	p.refName = RefNone
	return nil
}

func (p *PlacedObject) fractionPoint(fx, fy float64) (float64, float64) {
	return p.xMin + fx*(p.xMax-p.xMin), p.yMin + fy*(p.yMax-p.yMin)
}

func (p *PlacedObject) anchorAt(x, y float64) RefPointName {
	if p.xMin == p.xMax || p.yMin == p.yMax {
		return RefNone
	}
	xc, yc := (p.xMin+p.xMax)/2, (p.yMin+p.yMax)/2
	var col, row int
	switch x {
	case p.xMin:
		col = 0
	case xc:
		col = 1
	case p.xMax:
		col = 2
	default:
		return RefNone
	}
	switch y {
	case p.yMax:
		row = 0
	case yc:
		row = 1
	case p.yMin:
		row = 2
	default:
		return RefNone
	}
	return RefUpperLeft + RefPointName(row*3+col)
}

// applyPlacement configures position, bounds and reference point from a
// construction config.
func (p *PlacedObject) applyPlacement(pl Placement) error {
	if pl.Width != 0 || pl.Height != 0 {
		if err := p.SetRefPointBounds(pl.Width, pl.Height); err != nil {
			return err
		}
	}
	if pl.RefPoint != RefNone {
		if err := p.SetRefPointByName(pl.RefPoint); err != nil {
			return err
		}
	}
	if isNaN(pl.X, pl.Y, pl.Angle) {
		return argError("applyPlacement", "NaN in (%g, %g, %g)", pl.X, pl.Y, pl.Angle)
	}
	p.x, p.y, p.angle = pl.X, pl.Y, pl.Angle
	return nil
}

func (p *PlacedObject) printState(sp *statePrinter) {
	p.ObjectBase.printState(sp)
	sp.line("    position: (%g, %g)", p.x, p.y)
	sp.line("    angle: %g", p.angle)
	sp.line("    ref point: (%g, %g) %s", p.refX, p.refY, p.refName)
	sp.line("    ref point bounds: x [%g, %g] y [%g, %g]", p.xMin, p.xMax, p.yMin, p.yMax)
}
