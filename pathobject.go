package anim2d

import (
	"io"
)

// PathObject is a named path that is drawn with a style and that directed
// objects can follow.
type PathObject struct {
	ObjectBase

	cfg  PathObjectConfig
	path *Path
}

// NewPathObject creates a path object.
func NewPathObject(a *Animation, name string, cfg PathObjectConfig) (*PathObject, error) {
	if cfg.Path == nil || cfg.Path.NumSegments() == 0 {
		return nil, argError("NewPathObject", "missing or empty path")
	}
	if err := cfg.Style.validate("NewPathObject"); err != nil {
		return nil, err
	}
	p := &PathObject{cfg: cfg, path: cfg.Path}
	if err := a.register(p, name, cfg.Visibility); err != nil {
		return nil, err
	}
	return p, nil
}

// Path returns the path.
func (p *PathObject) Path() *Path { return p.path }

// Style returns the style the path is drawn with.
func (p *PathObject) Style() Style { return p.cfg.Style }

// Update does nothing; paths do not move.
func (p *PathObject) Update(float64, int64) error { return nil }

// Draw fills and strokes the path.
func (p *PathObject) Draw(r Renderer) error {
	p.cfg.Style.paint(r, p.path)
	return nil
}

func (p *PathObject) PrintState(w io.Writer) error {
	sp := &statePrinter{w: w}
	p.printState(sp)
	sp.line("    segments: %d", p.path.NumSegments())
	sp.line("    length: %g", p.path.Length())
	sp.line("    closed: %t", p.path.Closed())
	return sp.err
}

func (p *PathObject) PrintConfiguration(w io.Writer) error {
	return printConfiguration(w, p.name, p.cfg)
}
