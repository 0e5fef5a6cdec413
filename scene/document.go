// Package scene reads declarative animation descriptions from YAML and
// builds them into an [anim2d.Animation].
//
// A document names reusable paths, lists objects in creation order and
// carries a timeline of actions applied to those objects:
//
//	animation: {width: 320, height: 240, ticksPerSecond: 1000, ticksPerFrame: 40}
//	paths:
//	  orbit: {kind: circle, r: 80}
//	objects:
//	  - {name: planet, type: figure, path: orbit, pathVelocity: 40,
//	     shapes: [{kind: ellipse, rx: 6, ry: 6, fill: "#3366cc"}]}
//	timeline:
//	  - {at: 2, object: planet, action: velocity, value: 80}
package scene

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Document is a parsed scene file.
type Document struct {
	Animation AnimationDoc       `yaml:"animation"`
	Frames    int                `yaml:"frames,omitempty"`
	Trace     string             `yaml:"trace,omitempty"`
	Paths     map[string]PathDoc `yaml:"paths,omitempty"`
	Objects   []ObjectDoc        `yaml:"objects"`
	Timeline  []ActionDoc        `yaml:"timeline,omitempty"`
}

// AnimationDoc overrides the library's animation defaults. Zero fields
// keep the default.
type AnimationDoc struct {
	Width          int     `yaml:"width,omitempty"`
	Height         int     `yaml:"height,omitempty"`
	TicksPerSecond float64 `yaml:"ticksPerSecond,omitempty"`
	TicksPerFrame  int64   `yaml:"ticksPerFrame,omitempty"`
	MaxFrames      int     `yaml:"maxFrames,omitempty"`
	Background     *Color  `yaml:"background,omitempty"`
}

// PathDoc describes a path either as a list of control points or as one
// of the stock shapes.
type PathDoc struct {
	// Kind is "points" (the default), "line", "polyline", "spline",
	// "rect", "circle", "ellipse" or "arc".
	Kind      string       `yaml:"kind,omitempty"`
	Winding   string       `yaml:"winding,omitempty"`
	Intervals int          `yaml:"intervals,omitempty"`
	Points    []PointDoc   `yaml:"points,omitempty"`
	Vertices  [][2]float64 `yaml:"vertices,omitempty"`
	Closed    bool         `yaml:"closed,omitempty"`

	X      float64 `yaml:"x,omitempty"`
	Y      float64 `yaml:"y,omitempty"`
	X2     float64 `yaml:"x2,omitempty"`
	Y2     float64 `yaml:"y2,omitempty"`
	Width  float64 `yaml:"width,omitempty"`
	Height float64 `yaml:"height,omitempty"`
	R      float64 `yaml:"r,omitempty"`
	RX     float64 `yaml:"rx,omitempty"`
	RY     float64 `yaml:"ry,omitempty"`
	Start  float64 `yaml:"start,omitempty"`
	Extent float64 `yaml:"extent,omitempty"`
	Arc    string  `yaml:"arc,omitempty"`
}

// PointDoc is one control point, a tagged variant keyed by type
// (MOVE_TO, SPLINE, SEG_END, ... or their kebab-case spellings).
type PointDoc struct {
	Type string   `yaml:"type"`
	X    float64  `yaml:"x,omitempty"`
	Y    float64  `yaml:"y,omitempty"`
	FX   *FuncDoc `yaml:"fx,omitempty"`
	FY   *FuncDoc `yaml:"fy,omitempty"`
	T1   float64  `yaml:"t1,omitempty"`
	T2   float64  `yaml:"t2,omitempty"`
	N    int      `yaml:"n,omitempty"`
}

// FuncDoc describes a function of time.
type FuncDoc struct {
	// Kind is "constant", "linear", "sine", "ease" or "spring".
	Kind string `yaml:"kind"`

	Value float64 `yaml:"value,omitempty"` // constant
	From  float64 `yaml:"from,omitempty"`  // linear offset; ease and spring start
	Rate  float64 `yaml:"rate,omitempty"`  // linear slope
	To    float64 `yaml:"to,omitempty"`

	Amplitude float64 `yaml:"amplitude,omitempty"`
	Frequency float64 `yaml:"frequency,omitempty"` // sine angular frequency; spring frequency
	Phase     float64 `yaml:"phase,omitempty"`
	Offset    float64 `yaml:"offset,omitempty"`

	Duration float64 `yaml:"duration,omitempty"`
	Easing   string  `yaml:"easing,omitempty"`
	Damping  float64 `yaml:"damping,omitempty"`
	FPS      int     `yaml:"fps,omitempty"`
}

// StyleDoc is how a shape, path or line is painted.
type StyleDoc struct {
	Fill        *Color    `yaml:"fill,omitempty"`
	Stroke      *Color    `yaml:"stroke,omitempty"`
	StrokeWidth float64   `yaml:"strokeWidth,omitempty"`
	Dash        []float64 `yaml:"dash,omitempty"`
	Cap         string    `yaml:"cap,omitempty"`
	Join        string    `yaml:"join,omitempty"`
}

// FontDoc selects a font family and size.
type FontDoc struct {
	Family string  `yaml:"family,omitempty"`
	Size   float64 `yaml:"size,omitempty"`
}

// ShapeDoc is one drawable item of a figure or layer.
type ShapeDoc struct {
	Kind     string `yaml:"kind"`
	StyleDoc `yaml:",inline"`

	X      float64 `yaml:"x,omitempty"`
	Y      float64 `yaml:"y,omitempty"`
	X2     float64 `yaml:"x2,omitempty"`
	Y2     float64 `yaml:"y2,omitempty"`
	Width  float64 `yaml:"width,omitempty"`
	Height float64 `yaml:"height,omitempty"`
	RX     float64 `yaml:"rx,omitempty"`
	RY     float64 `yaml:"ry,omitempty"`
	Start  float64 `yaml:"start,omitempty"`
	Extent float64 `yaml:"extent,omitempty"`
	Arc    string  `yaml:"arc,omitempty"`
	Angle  float64 `yaml:"angle,omitempty"`

	Points []PointDoc `yaml:"points,omitempty"`
	// Path names an entry of the document's paths.
	Path string `yaml:"path,omitempty"`
	// Image is a PNG file, relative to the scene file.
	Image string  `yaml:"image,omitempty"`
	Text  string  `yaml:"text,omitempty"`
	Font  FontDoc `yaml:"font,omitempty"`
}

// StartDoc is how an object joins a path.
type StartDoc struct {
	U0       float64 `yaml:"u0,omitempty"`
	Angle    float64 `yaml:"angle,omitempty"`
	Relative bool    `yaml:"relative,omitempty"`
	Delay    float64 `yaml:"delay,omitempty"`
}

// ViewInitDoc initializes a view.
type ViewInitDoc struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	XF     float64 `yaml:"xf"`
	YF     float64 `yaml:"yf"`
	ScaleX float64 `yaml:"scaleX"`
	ScaleY float64 `yaml:"scaleY"`
	Zoom   float64 `yaml:"zoom,omitempty"`
}

// EndDoc is one end of a connecting line: a named object or a fixed point.
type EndDoc struct {
	Object string  `yaml:"object,omitempty"`
	X      float64 `yaml:"x,omitempty"`
	Y      float64 `yaml:"y,omitempty"`
}

// RectDoc is an axis-aligned rectangle.
type RectDoc struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// ObjectDoc describes one object. Which fields apply depends on Type:
// "figure", "directed", "view", "layer", "path", "line", "grid" or
// "polar-grid".
type ObjectDoc struct {
	Name   string `yaml:"name,omitempty"`
	Type   string `yaml:"type"`
	ZOrder *int64 `yaml:"zorder,omitempty"`
	Hidden bool   `yaml:"hidden,omitempty"`
	Trace  string `yaml:"trace,omitempty"`

	// placement
	X        float64 `yaml:"x,omitempty"`
	Y        float64 `yaml:"y,omitempty"`
	Angle    float64 `yaml:"angle,omitempty"`
	Width    float64 `yaml:"width,omitempty"`
	Height   float64 `yaml:"height,omitempty"`
	RefPoint string  `yaml:"refPoint,omitempty"`

	// motion
	PathVelocity        float64  `yaml:"pathVelocity,omitempty"`
	PathAcceleration    float64  `yaml:"pathAcceleration,omitempty"`
	AngularVelocity     float64  `yaml:"angularVelocity,omitempty"`
	AngularAcceleration float64  `yaml:"angularAcceleration,omitempty"`
	Path                string   `yaml:"path,omitempty"`
	Start               StartDoc `yaml:"start,omitempty"`
	DistanceFunction    *FuncDoc `yaml:"distanceFunction,omitempty"`
	AngleFunction       *FuncDoc `yaml:"angleFunction,omitempty"`
	PathAngleFunction   *FuncDoc `yaml:"pathAngleFunction,omitempty"`
	InversionLimit      float64  `yaml:"inversionLimit,omitempty"`

	// view
	Init     *ViewInitDoc `yaml:"init,omitempty"`
	ZoomRate float64      `yaml:"zoomRate,omitempty"`

	// figure and layer
	Shapes []ShapeDoc `yaml:"shapes,omitempty"`

	// path object and line
	StyleDoc  `yaml:",inline"`
	From      EndDoc  `yaml:"from,omitempty"`
	To        EndDoc  `yaml:"to,omitempty"`
	TrimStart float64 `yaml:"trimStart,omitempty"`
	TrimEnd   float64 `yaml:"trimEnd,omitempty"`

	// grids
	Bounds        RectDoc   `yaml:"bounds,omitempty"`
	Spacing       float64   `yaml:"spacing,omitempty"`
	Subdivisions  int       `yaml:"subdivisions,omitempty"`
	MajorStyle    *StyleDoc `yaml:"majorStyle,omitempty"`
	Axes          *StyleDoc `yaml:"axes,omitempty"`
	Radius        float64   `yaml:"radius,omitempty"`
	RadialSpacing float64   `yaml:"radialSpacing,omitempty"`
	Spokes        int       `yaml:"spokes,omitempty"`
}

// ActionDoc is one timeline entry.
type ActionDoc struct {
	At     float64 `yaml:"at"`
	Object string  `yaml:"object"`
	Action string  `yaml:"action"`

	Value    float64  `yaml:"value,omitempty"`
	X        float64  `yaml:"x,omitempty"`
	Y        float64  `yaml:"y,omitempty"`
	Angle    *float64 `yaml:"angle,omitempty"`
	Enabled  *bool    `yaml:"enabled,omitempty"`
	ZOrder   *int64   `yaml:"zorder,omitempty"`
	Path     string   `yaml:"path,omitempty"`
	Start    StartDoc `yaml:"start,omitempty"`
	Duration float64  `yaml:"duration,omitempty"`
	Easing   string   `yaml:"easing,omitempty"`
	// Function replaces the distance function for "distance-function".
	Function *FuncDoc `yaml:"function,omitempty"`
	End      float64  `yaml:"end,omitempty"`
}

// Parse decodes a scene document. Unknown keys are rejected.
func Parse(data []byte) (*Document, error) {
	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("parse scene: empty document")
		}
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	return &doc, nil
}

// Load reads and parses the scene file at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Marshal encodes doc as YAML.
func Marshal(doc *Document) ([]byte, error) {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal scene: %w", err)
	}
	return data, nil
}
