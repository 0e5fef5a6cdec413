package anim2d

import (
	"math"
)

// Visibility is the stacking configuration shared by all objects. A nil
// ZOrder selects the lowest z-order, so such objects draw first and keep
// their creation order among themselves.
type Visibility struct {
	ZOrder *int64 `yaml:"zorder,omitempty"`
	Hidden bool   `yaml:"hidden,omitempty"`
}

// Z returns a pointer to z for use in Visibility.ZOrder.
func Z(z int64) *int64 { return &z }

func (v Visibility) zorder() int64 {
	if v.ZOrder == nil {
		return math.MinInt64
	}
	return *v.ZOrder
}

// Placement is the initial position, orientation and reference point of a
// placed object. Width and Height, when non-zero, define a bounding box
// centered on the local origin for named reference points.
type Placement struct {
	X        float64      `yaml:"x"`
	Y        float64      `yaml:"y"`
	Angle    float64      `yaml:"angle"`
	Width    float64      `yaml:"width,omitempty"`
	Height   float64      `yaml:"height,omitempty"`
	RefPoint RefPointName `yaml:"refPoint,omitempty"`
}

// Style is how a shape or path is painted. A nil Fill or Stroke skips that
// pass.
type Style struct {
	Fill        *Color    `yaml:"fill,omitempty"`
	Stroke      *Color    `yaml:"stroke,omitempty"`
	StrokeWidth float64   `yaml:"strokeWidth,omitempty"`
	Dash        []float64 `yaml:"dash,omitempty"`
	Cap         LineCap   `yaml:"cap,omitempty"`
	Join        LineJoin  `yaml:"join,omitempty"`
}

func (s Style) validate(op string) error {
	if math.IsNaN(s.StrokeWidth) || s.StrokeWidth < 0 {
		return argError(op, "bad stroke width %g", s.StrokeWidth)
	}
	for _, d := range s.Dash {
		if math.IsNaN(d) || d < 0 {
			return argError(op, "bad dash length %g", d)
		}
	}
	return nil
}

func (s Style) stroke() Stroke {
	st := DefaultStroke
	if s.StrokeWidth > 0 {
		st.Width = s.StrokeWidth
	}
	st.Cap, st.Join = s.Cap, s.Join
	st.Dash = s.Dash
	return st
}

// paint fills then strokes p with the style.
func (s Style) paint(r Renderer, p *Path) {
	if s.Fill != nil {
		r.SetPaint(*s.Fill)
		r.FillPath(p)
	}
	if s.Stroke != nil {
		r.SetPaint(*s.Stroke)
		r.SetStroke(s.stroke())
		r.StrokePath(p)
	}
}

// Motion is the initial motion of a directed object.
type Motion struct {
	PathVelocity        float64 `yaml:"pathVelocity,omitempty"`
	PathAcceleration    float64 `yaml:"pathAcceleration,omitempty"`
	AngularVelocity     float64 `yaml:"angularVelocity,omitempty"`
	AngularAcceleration float64 `yaml:"angularAcceleration,omitempty"`
}

// DirectedConfig configures a bare DirectedObject.
type DirectedConfig struct {
	Visibility `yaml:",inline"`
	Placement  `yaml:",inline"`
	Motion     `yaml:",inline"`
}

// ViewInit is the one-time initialization of a View.
type ViewInit struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	XF     float64 `yaml:"xf"`
	YF     float64 `yaml:"yf"`
	ScaleX float64 `yaml:"scaleX"`
	ScaleY float64 `yaml:"scaleY"`
	// Zoom defaults to 1.
	Zoom float64 `yaml:"zoom,omitempty"`
}

// ViewConfig configures a View.
type ViewConfig struct {
	Visibility `yaml:",inline"`
	Placement  `yaml:",inline"`
	Motion     `yaml:",inline"`
	Init       *ViewInit `yaml:"init,omitempty"`
}

// FigureConfig configures a Figure.
type FigureConfig struct {
	Visibility `yaml:",inline"`
	Placement  `yaml:",inline"`
	Motion     `yaml:",inline"`
	Shapes     []Shape `yaml:"-"`
}

// LayerConfig configures a Layer.
type LayerConfig struct {
	Visibility `yaml:",inline"`
	Shapes     []Shape `yaml:"-"`
}

// PathObjectConfig configures a PathObject.
type PathObjectConfig struct {
	Visibility `yaml:",inline"`
	Style      `yaml:",inline"`
	Path       *Path `yaml:"-"`
}

// LineEnd is one end of a ConnectingLine: a placed object's position, or
// a fixed point when Object is nil.
type LineEnd struct {
	Object Placed  `yaml:"-"`
	X      float64 `yaml:"x,omitempty"`
	Y      float64 `yaml:"y,omitempty"`
}

// LineConfig configures a ConnectingLine. Start and End trim the drawn
// line to the fraction [Start, End] of the distance between its ends; an
// End of zero means 1.
type LineConfig struct {
	Visibility `yaml:",inline"`
	Style      `yaml:",inline"`
	From       LineEnd `yaml:"from"`
	To         LineEnd `yaml:"to"`
	Start      float64 `yaml:"start,omitempty"`
	End        float64 `yaml:"end,omitempty"`
}

// GridConfig configures a CartesianGrid. The grid covers Bounds with lines
// every Spacing units, and every Subdivisions-th line uses MajorStyle.
type GridConfig struct {
	Visibility   `yaml:",inline"`
	Bounds       Rect    `yaml:"bounds"`
	Spacing      float64 `yaml:"spacing"`
	Subdivisions int     `yaml:"subdivisions,omitempty"`
	Style        Style   `yaml:"style"`
	MajorStyle   Style   `yaml:"majorStyle"`
	Axes         *Style  `yaml:"axes,omitempty"`
}

// PolarGridConfig configures a PolarGrid centered on (X, Y): circles every
// RadialSpacing units out to Radius and Spokes radial lines.
type PolarGridConfig struct {
	Visibility    `yaml:",inline"`
	X             float64 `yaml:"x"`
	Y             float64 `yaml:"y"`
	Radius        float64 `yaml:"radius"`
	RadialSpacing float64 `yaml:"radialSpacing"`
	Spokes        int     `yaml:"spokes"`
	Style         Style   `yaml:"style"`
}
