package anim2d

import (
	"io"

	"go.uber.org/zap"
)

// Figure is a directed object drawn as a list of shapes in its local
// coordinates. The shapes are moved, rotated about the reference point
// and placed at the figure's position each frame.
type Figure struct {
	DirectedObject

	cfg    FigureConfig
	shapes []compiledShape
}

// NewFigure creates a figure. When cfg.Placement has no size, the
// reference point bounds are the extent of the shapes.
func NewFigure(a *Animation, name string, cfg FigureConfig) (*Figure, error) {
	shapes, err := compileShapes(cfg.Shapes)
	if err != nil {
		return nil, err
	}
	f := &Figure{cfg: cfg, shapes: shapes}
	if err := a.register(f, name, cfg.Visibility); err != nil {
		return nil, err
	}
	if err := f.configure(); err != nil {
		f.Delete()
		return nil, err
	}
	return f, nil
}

func (f *Figure) configure() error {
	f.initDirected()
	pl := f.cfg.Placement
	if pl.Width == 0 && pl.Height == 0 {
		if b, ok := shapesBounds(f.shapes); ok {
			if err := f.SetRefPointBoundsRange(b.X, b.X+b.Width, b.Y, b.Y+b.Height); err != nil {
				return err
			}
		}
	}
	if err := f.applyPlacement(pl); err != nil {
		return err
	}
	return f.applyMotion(f.cfg.Motion)
}

// applyMotion sets the initial velocities of a freshly created object.
func (d *DirectedObject) applyMotion(m Motion) error {
	if isNaN(m.PathVelocity, m.PathAcceleration, m.AngularVelocity, m.AngularAcceleration) {
		return argError("applyMotion", "NaN in %+v", m)
	}
	d.pathVelocity = m.PathVelocity
	d.pathAccel = m.PathAcceleration
	d.angularVel = m.AngularVelocity
	d.angularAccel = m.AngularAcceleration
	return nil
}

// SetShapes replaces the figure's shapes. The reference point bounds are
// unchanged.
func (f *Figure) SetShapes(shapes ...Shape) error {
	compiled, err := compileShapes(shapes)
	if err != nil {
		return err
	}
	f.shapes = compiled
	f.traceEvent("set shapes", zap.Int("count", len(shapes)))
	return nil
}

// NumShapes returns the number of shapes.
func (f *Figure) NumShapes() int { return len(f.shapes) }

// Draw draws the shapes through the figure's draw transform.
func (f *Figure) Draw(r Renderer) error {
	r.SetTransform(r.Transform().Mul(f.DrawTransform()))
	drawShapes(r, f.shapes)
	return nil
}

func (f *Figure) PrintState(w io.Writer) error {
	sp := &statePrinter{w: w}
	f.printState(sp)
	sp.line("    shapes: %d", len(f.shapes))
	return sp.err
}

func (f *Figure) PrintConfiguration(w io.Writer) error {
	return printConfiguration(w, f.name, f.cfg)
}

// NewDirectedObject creates an invisible-by-drawing directed object, useful
// as a moving anchor for connecting lines or as a path follower whose
// position is read by other code.
func NewDirectedObject(a *Animation, name string, cfg DirectedConfig) (*DirectedObject, error) {
	d := &DirectedObject{}
	if err := a.register(d, name, cfg.Visibility); err != nil {
		return nil, err
	}
	d.initDirected()
	if err := d.applyPlacement(cfg.Placement); err != nil {
		d.Delete()
		return nil, err
	}
	if err := d.applyMotion(cfg.Motion); err != nil {
		d.Delete()
		return nil, err
	}
	return d, nil
}
