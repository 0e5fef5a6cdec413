package anim2d

import (
	"image"
	"math"
)

// ShapeKind selects which fields of a Shape are meaningful.
type ShapeKind uint8

const (
	// ShapeArc is an elliptical arc centered on (X, Y) with radii RX, RY
	// from angle Start through Extent radians, closed per Arc.
	ShapeArc ShapeKind = iota
	// ShapeCurve is a path built from Points.
	ShapeCurve
	// ShapeEllipse is an ellipse centered on (X, Y) with radii RX, RY.
	ShapeEllipse
	// ShapeImage draws Image with its lower left corner at (X, Y), scaled
	// to Width by Height units and rotated by Angle about (X, Y).
	ShapeImage
	// ShapeLine is the segment from (X, Y) to (X2, Y2).
	ShapeLine
	// ShapeRect is the rectangle with lower left corner (X, Y).
	ShapeRect
	// ShapePath draws Path.
	ShapePath
	// ShapeText draws Text with its baseline starting at (X, Y).
	ShapeText
)

var shapeKindNames = [...]string{
	ShapeArc:     "arc",
	ShapeCurve:   "curve",
	ShapeEllipse: "ellipse",
	ShapeImage:   "image",
	ShapeLine:    "line",
	ShapeRect:    "rect",
	ShapePath:    "path",
	ShapeText:    "text",
}

func (k ShapeKind) String() string {
	if int(k) < len(shapeKindNames) {
		return shapeKindNames[k]
	}
	return "ShapeKind(?)"
}

// ParseShapeKind maps a lower-case shape name to its kind.
func ParseShapeKind(s string) (ShapeKind, error) {
	for i, name := range shapeKindNames {
		if name == s {
			return ShapeKind(i), nil
		}
	}
	return 0, argError("ParseShapeKind", "unknown shape %q", s)
}

// Shape is one drawable item of a Layer or Figure. Coordinates are in the
// owner's local space.
type Shape struct {
	Kind  ShapeKind
	Style Style

	X, Y          float64
	X2, Y2        float64
	Width, Height float64
	RX, RY        float64
	Start, Extent float64
	Arc           ArcType
	Angle         float64

	Points []CPoint
	Path   *Path
	Image  image.Image
	Text   string
	Font   Font
}

// RectShape returns a rectangle shape.
func RectShape(x, y, w, h float64, style Style) Shape {
	return Shape{Kind: ShapeRect, X: x, Y: y, Width: w, Height: h, Style: style}
}

// EllipseShape returns an ellipse shape.
func EllipseShape(cx, cy, rx, ry float64, style Style) Shape {
	return Shape{Kind: ShapeEllipse, X: cx, Y: cy, RX: rx, RY: ry, Style: style}
}

// ArcShape returns an arc shape.
func ArcShape(cx, cy, rx, ry, start, extent float64, kind ArcType, style Style) Shape {
	return Shape{Kind: ShapeArc, X: cx, Y: cy, RX: rx, RY: ry, Start: start, Extent: extent, Arc: kind, Style: style}
}

// LineShape returns a line segment shape.
func LineShape(x1, y1, x2, y2 float64, style Style) Shape {
	return Shape{Kind: ShapeLine, X: x1, Y: y1, X2: x2, Y2: y2, Style: style}
}

// CurveShape returns a shape built from path control points.
func CurveShape(points []CPoint, style Style) Shape {
	return Shape{Kind: ShapeCurve, Points: points, Style: style}
}

// PathShape returns a shape drawing an existing path.
func PathShape(p *Path, style Style) Shape {
	return Shape{Kind: ShapePath, Path: p, Style: style}
}

// ImageShape returns an image shape.
func ImageShape(img image.Image, x, y, w, h float64) Shape {
	return Shape{Kind: ShapeImage, Image: img, X: x, Y: y, Width: w, Height: h}
}

// TextShape returns a text shape painted with the style's fill color.
func TextShape(s string, x, y float64, font Font, style Style) Shape {
	return Shape{Kind: ShapeText, Text: s, X: x, Y: y, Font: font, Style: style}
}

// compiledShape is a validated shape with its outline built.
type compiledShape struct {
	Shape
	path *Path
}

func compileShapes(shapes []Shape) ([]compiledShape, error) {
	out := make([]compiledShape, 0, len(shapes))
	for i, s := range shapes {
		c, err := compileShape(s)
		if err != nil {
			return nil, argError("compileShapes", "shape %d (%s): %v", i, s.Kind, err)
		}
		out = append(out, c)
	}
	return out, nil
}

func compileShape(s Shape) (compiledShape, error) {
	if err := s.Style.validate("compileShape"); err != nil {
		return compiledShape{}, err
	}
	if isNaN(s.X, s.Y, s.X2, s.Y2, s.Width, s.Height, s.RX, s.RY, s.Start, s.Extent, s.Angle) {
		return compiledShape{}, argError("compileShape", "NaN coordinate")
	}
	c := compiledShape{Shape: s}
	b := NewPathBuilder(WindNonZero)
	var err error
	switch s.Kind {
	case ShapeRect:
		err = b.Rect(s.X, s.Y, s.Width, s.Height)
	case ShapeEllipse:
		err = b.Ellipse(s.X, s.Y, s.RX, s.RY)
	case ShapeArc:
		err = b.Arc(s.X, s.Y, s.RX, s.RY, s.Start, s.Extent, s.Arc)
	case ShapeLine:
		if err = b.MoveTo(s.X, s.Y); err == nil {
			err = b.LineTo(s.X2, s.Y2)
		}
	case ShapeCurve:
		err = b.Append(s.Points...)
	case ShapePath:
		if s.Path == nil {
			return c, argError("compileShape", "path shape without a path")
		}
		c.path = s.Path
		return c, nil
	case ShapeImage:
		if s.Image == nil {
			return c, argError("compileShape", "image shape without an image")
		}
		return c, nil
	case ShapeText:
		return c, nil
	default:
		return c, argError("compileShape", "unknown shape kind %d", s.Kind)
	}
	if err != nil {
		return c, err
	}
	c.path, err = b.Path()
	return c, err
}

// bounds returns the shape's extent in local coordinates. Text has no
// known extent and contributes only its origin.
func (c compiledShape) bounds() Rect {
	switch c.Kind {
	case ShapeImage:
		w, h := c.imageSize()
		m := RotateAbout(c.Angle, c.X, c.Y)
		r := Rect{X: c.X, Y: c.Y}
		for _, p := range [][2]float64{{c.X + w, c.Y}, {c.X + w, c.Y + h}, {c.X, c.Y + h}} {
			x, y := m.Apply(p[0], p[1])
			r = r.union(x, y)
		}
		return r
	case ShapeText:
		return Rect{X: c.X, Y: c.Y}
	}
	return c.path.Bounds()
}

// imageSize returns the drawn size, defaulting to one unit per pixel.
func (c compiledShape) imageSize() (w, h float64) {
	b := c.Image.Bounds()
	w, h = c.Width, c.Height
	if w == 0 {
		w = float64(b.Dx())
	}
	if h == 0 {
		h = float64(b.Dy())
	}
	return w, h
}

// drawShape renders one shape through r's current transform.
func drawShape(r Renderer, c compiledShape) {
	switch c.Kind {
	case ShapeImage:
		b := c.Image.Bounds()
		if b.Empty() {
			return
		}
		w, h := c.imageSize()
		m := RotateAbout(c.Angle, c.X, c.Y).
			Mul(Translate(c.X, c.Y+h)).
			Mul(Scale(w/float64(b.Dx()), -h/float64(b.Dy()))).
			Mul(Translate(-float64(b.Min.X), -float64(b.Min.Y)))
		r.DrawImage(c.Image, m)
	case ShapeText:
		paint := ColorBlack
		if c.Style.Fill != nil {
			paint = *c.Style.Fill
		}
		font := c.Font
		if font.Size == 0 {
			font = DefaultFont
		}
		r.SetPaint(paint)
		r.SetFont(font)
		if c.Angle != 0 {
			r.SetTransform(r.Transform().Mul(RotateAbout(c.Angle, c.X, c.Y)))
		}
		r.DrawText(c.Text, c.X, c.Y)
	default:
		c.Style.paint(r, c.path)
	}
}

// shapesBounds returns the union of the shapes' extents.
func shapesBounds(shapes []compiledShape) (Rect, bool) {
	var r Rect
	for i, c := range shapes {
		b := c.bounds()
		if i == 0 {
			r = b
			continue
		}
		r = r.union(b.X, b.Y).union(b.X+b.Width, b.Y+b.Height)
	}
	return r, len(shapes) > 0 && !math.IsNaN(r.Width)
}

// drawShapes renders shapes in order, restoring r's state after each.
func drawShapes(r Renderer, shapes []compiledShape) {
	for _, c := range shapes {
		st := r.State()
		drawShape(r, c)
		r.SetState(st)
	}
}
