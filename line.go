package anim2d

import (
	"io"
	"math"
)

// Placed is an object with a position, such as a Figure or View.
type Placed interface {
	Object
	Position() (x, y, angle float64)
}

// ConnectingLine is a straight line between two placed objects or fixed
// points, redrawn each frame from the ends' current positions.
type ConnectingLine struct {
	ObjectBase

	cfg        LineConfig
	from, to   LineEnd
	start, end float64
}

// NewConnectingLine creates a connecting line.
func NewConnectingLine(a *Animation, name string, cfg LineConfig) (*ConnectingLine, error) {
	if err := cfg.Style.validate("NewConnectingLine"); err != nil {
		return nil, err
	}
	end := cfg.End
	if end == 0 {
		end = 1
	}
	if isNaN(cfg.From.X, cfg.From.Y, cfg.To.X, cfg.To.Y, cfg.Start, end) {
		return nil, argError("NewConnectingLine", "NaN in line configuration")
	}
	if cfg.Start < 0 || end > 1 || cfg.Start > end {
		return nil, argError("NewConnectingLine", "bad trim [%g, %g]", cfg.Start, end)
	}
	if cfg.Style.Stroke == nil {
		c := ColorBlack
		cfg.Style.Stroke = &c
	}
	l := &ConnectingLine{cfg: cfg, from: cfg.From, to: cfg.To, start: cfg.Start, end: end}
	if err := a.register(l, name, cfg.Visibility); err != nil {
		return nil, err
	}
	return l, nil
}

// SetEnds replaces both ends.
func (l *ConnectingLine) SetEnds(from, to LineEnd) error {
	if isNaN(from.X, from.Y, to.X, to.Y) {
		return argError("SetEnds", "NaN end")
	}
	l.from, l.to = from, to
	return nil
}

// SetTrim draws only the fraction [start, end] of the line.
func (l *ConnectingLine) SetTrim(start, end float64) error {
	if isNaN(start, end) || start < 0 || end > 1 || start > end {
		return argError("SetTrim", "bad trim [%g, %g]", start, end)
	}
	l.start, l.end = start, end
	return nil
}

func endPoint(e LineEnd) (float64, float64) {
	if e.Object == nil {
		return e.X, e.Y
	}
	x, y, _ := e.Object.Position()
	return x, y
}

// Endpoints returns the trimmed line's ends in graph coordinates.
func (l *ConnectingLine) Endpoints() (x1, y1, x2, y2 float64) {
	ax, ay := endPoint(l.from)
	bx, by := endPoint(l.to)
	dx, dy := bx-ax, by-ay
	return ax + l.start*dx, ay + l.start*dy, ax + l.end*dx, ay + l.end*dy
}

// Length returns the untrimmed distance between the ends.
func (l *ConnectingLine) Length() float64 {
	ax, ay := endPoint(l.from)
	bx, by := endPoint(l.to)
	return math.Hypot(bx-ax, by-ay)
}

// Update brings the end objects up to time t so the line joins their
// current positions.
func (l *ConnectingLine) Update(t float64, tick int64) error {
	for _, e := range []LineEnd{l.from, l.to} {
		if e.Object != nil {
			if err := e.Object.Update(t, tick); err != nil {
				return err
			}
		}
	}
	return nil
}

// Draw strokes the line. Nothing is drawn when the trimmed line is empty.
func (l *ConnectingLine) Draw(r Renderer) error {
	x1, y1, x2, y2 := l.Endpoints()
	if x1 == x2 && y1 == y2 {
		return nil
	}
	p, err := LinePath(x1, y1, x2, y2)
	if err != nil {
		return err
	}
	l.cfg.Style.paint(r, p)
	return nil
}

func (l *ConnectingLine) PrintState(w io.Writer) error {
	sp := &statePrinter{w: w}
	l.printState(sp)
	x1, y1, x2, y2 := l.Endpoints()
	sp.line("    from: (%g, %g)", x1, y1)
	sp.line("    to: (%g, %g)", x2, y2)
	sp.line("    trim: [%g, %g]", l.start, l.end)
	return sp.err
}

func (l *ConnectingLine) PrintConfiguration(w io.Writer) error {
	return printConfiguration(w, l.name, l.cfg)
}
