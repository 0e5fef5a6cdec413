package anim2d

import (
	"io"

	"go.uber.org/zap"
)

// Layer is a static group of shapes drawn in graph coordinates, typically
// a background or a set of labels.
type Layer struct {
	ObjectBase

	cfg    LayerConfig
	shapes []compiledShape
}

// NewLayer creates a layer holding cfg.Shapes.
func NewLayer(a *Animation, name string, cfg LayerConfig) (*Layer, error) {
	shapes, err := compileShapes(cfg.Shapes)
	if err != nil {
		return nil, err
	}
	l := &Layer{cfg: cfg, shapes: shapes}
	if err := a.register(l, name, cfg.Visibility); err != nil {
		return nil, err
	}
	return l, nil
}

// AddShapes appends shapes to the layer.
func (l *Layer) AddShapes(shapes ...Shape) error {
	compiled, err := compileShapes(shapes)
	if err != nil {
		return err
	}
	l.shapes = append(l.shapes, compiled...)
	l.traceEvent("add shapes", zap.Int("count", len(shapes)))
	return nil
}

// ClearShapes removes every shape.
func (l *Layer) ClearShapes() {
	l.shapes = nil
	l.traceEvent("clear shapes")
}

// NumShapes returns the number of shapes.
func (l *Layer) NumShapes() int { return len(l.shapes) }

// Update does nothing; layers do not move.
func (l *Layer) Update(float64, int64) error { return nil }

// Draw draws the shapes.
func (l *Layer) Draw(r Renderer) error {
	drawShapes(r, l.shapes)
	return nil
}

func (l *Layer) PrintState(w io.Writer) error {
	sp := &statePrinter{w: w}
	l.printState(sp)
	sp.line("    shapes: %d", len(l.shapes))
	return sp.err
}

func (l *Layer) PrintConfiguration(w io.Writer) error {
	return printConfiguration(w, l.name, l.cfg)
}
