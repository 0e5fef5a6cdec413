package anim2d

import (
	"fmt"
	"io"
	"math"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Object is anything an Animation can update and draw. Concrete objects
// satisfy it by embedding ObjectBase and providing Update, Draw and
// PrintState.
type Object interface {
	objectBase() *ObjectBase

	// Update advances the object to simulation time t at tick. Calls whose
	// time and tick are not newer than the last applied update are no-ops.
	Update(t float64, tick int64) error

	// Draw renders the object. It is called after Update for the frame.
	Draw(r Renderer) error

	// PrintState writes the object's current state, one field per line.
	PrintState(w io.Writer) error
}

// ObjectBase carries the bookkeeping every animation object shares: its
// name, owning animation, z-order, creation sequence and visibility.
type ObjectBase struct {
	anim *Animation
	self Object
	name string
	seq  int64

	zorder  int64
	visible bool
	deleted bool

	trace TraceLevel
	log   *zap.Logger
}

func (b *ObjectBase) objectBase() *ObjectBase { return b }

// Name returns the object's name, unique within its animation.
func (b *ObjectBase) Name() string { return b.name }

// Animation returns the animation the object belongs to.
func (b *ObjectBase) Animation() *Animation { return b.anim }

// Sequence returns the creation sequence number used to order objects with
// equal z-order.
func (b *ObjectBase) Sequence() int64 { return b.seq }

// ZOrder returns the stacking key. Lower values are drawn first.
func (b *ObjectBase) ZOrder() int64 { return b.zorder }

// Visible reports whether the object is drawn.
func (b *ObjectBase) Visible() bool { return b.visible }

// Deleted reports whether the object was removed from its animation.
func (b *ObjectBase) Deleted() bool { return b.deleted }

// SetZOrder sets the z-order and visibility together. The object is
// removed from the draw order under its old key and reinserted under the
// new one only when one of them actually changes.
func (b *ObjectBase) SetZOrder(z int64, visible bool) {
	if b.deleted {
		return
	}
	if z == b.zorder && visible == b.visible {
		return
	}
	if b.visible {
		b.anim.visible.remove(b.self)
	}
	b.zorder = z
	b.visible = visible
	if b.visible {
		b.anim.visible.insert(b.self)
	}
	b.traceEvent("set zorder", zap.Int64("zorder", z), zap.Bool("visible", visible))
}

// SetVisible shows or hides the object, keeping its z-order.
func (b *ObjectBase) SetVisible(visible bool) {
	b.SetZOrder(b.zorder, visible)
}

// Delete removes the object from its animation. A deleted object is never
// drawn again and its name may be reused.
func (b *ObjectBase) Delete() {
	if b.deleted {
		return
	}
	b.SetVisible(false)
	b.anim.unregister(b.self)
	b.deleted = true
	b.traceEvent("deleted")
}

// now returns the animation's current time and tick.
func (b *ObjectBase) now() (float64, int64) {
	return b.anim.CurrentTime(), b.anim.CurrentTicks()
}

// sync brings the outermost object up to the animation's current time so a
// mutation never skips or double-applies pending motion.
func (b *ObjectBase) sync() error {
	t, tick := b.now()
	return b.self.Update(t, tick)
}

func (b *ObjectBase) printState(p *statePrinter) {
	p.line("%s:", b.name)
	p.line("    zorder: %s", formatZOrder(b.zorder))
	p.line("    sequence: %d", b.seq)
	p.line("    visible: %t", b.visible)
}

func formatZOrder(z int64) string {
	if z == math.MinInt64 {
		return "min"
	}
	return fmt.Sprint(z)
}

// statePrinter writes indented state lines, remembering the first error.
type statePrinter struct {
	w   io.Writer
	err error
}

func (p *statePrinter) line(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format+"\n", args...)
}

// printConfiguration writes an object's construction config as a YAML
// document keyed by the object's name.
func printConfiguration(w io.Writer, name string, cfg any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(map[string]any{name: cfg}); err != nil {
		return fmt.Errorf("print configuration of %s: %w", name, err)
	}
	return enc.Close()
}
