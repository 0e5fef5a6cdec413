package anim2d

import (
	"context"
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/phanxgames/anim2d/internal/ids"
	"github.com/phanxgames/anim2d/sim"
)

// Event priorities within a tick: timeline entries run before the frame
// generated at the same tick, so a frame shows their effect.
const (
	TimelinePriority = 0
	FramePriority    = 1000
)

// AnimationConfig is the fixed configuration of an Animation.
type AnimationConfig struct {
	Width          int     `yaml:"width"`
	Height         int     `yaml:"height"`
	TicksPerSecond float64 `yaml:"ticksPerSecond"`
	TicksPerFrame  int64   `yaml:"ticksPerFrame"`
	MaxFrames      int     `yaml:"maxFrames"`
	Background     Color   `yaml:"background"`
}

// DefaultAnimationConfig returns a 640x480, 25 frames per second
// configuration on a white background.
func DefaultAnimationConfig() AnimationConfig {
	return AnimationConfig{
		Width:          640,
		Height:         480,
		TicksPerSecond: 1000,
		TicksPerFrame:  40,
		MaxFrames:      10000,
		Background:     ColorWhite,
	}
}

// FrameRate returns frames per time unit.
func (c AnimationConfig) FrameRate() float64 {
	return c.TicksPerSecond / float64(c.TicksPerFrame)
}

func (c AnimationConfig) validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return argError("NewAnimation", "bad size %dx%d", c.Width, c.Height)
	}
	if !(c.TicksPerSecond > 0) || math.IsInf(c.TicksPerSecond, 1) {
		return argError("NewAnimation", "ticks per second must be positive, got %g", c.TicksPerSecond)
	}
	if c.TicksPerFrame <= 0 {
		return argError("NewAnimation", "ticks per frame must be positive, got %d", c.TicksPerFrame)
	}
	if c.MaxFrames < 0 {
		return argError("NewAnimation", "negative frame limit %d", c.MaxFrames)
	}
	return nil
}

// Option configures an Animation.
type Option func(*Animation)

// WithLogger sets the logger. Objects trace through it.
func WithLogger(l *zap.Logger) Option {
	return func(a *Animation) {
		if l != nil {
			a.log = l
		}
	}
}

// WithRenderer sets the renderer frames are drawn with.
func WithRenderer(r Renderer) Option {
	return func(a *Animation) { a.renderer = r }
}

// WithSimulation runs the animation on an existing scheduler. Its tick
// rate must equal the configured ticks per second.
func WithSimulation(s *sim.Simulation) Option {
	return func(a *Animation) { a.sim = s }
}

// WithRunID sets the run id attached to logs and sequence metadata.
func WithRunID(id uuid.UUID) Option {
	return func(a *Animation) { a.runID = id }
}

// WithEncoderWorkers sets how many frames may be PNG-encoded at once.
func WithEncoderWorkers(n int) Option {
	return func(a *Animation) { a.workers = n }
}

// Animation owns a set of objects, a discrete-event clock and the frame
// pipeline. Objects are updated and drawn in z-order once per frame.
type Animation struct {
	cfg   AnimationConfig
	sim   *sim.Simulation
	log   *zap.Logger
	runID uuid.UUID

	objects map[string]Object
	visible zorderSet
	nextSeq int64

	renderer Renderer
	writer   ImageSequenceWriter
	template string
	encoder  *frameEncoder
	workers  int

	scheduledFrames int
	endingFrameTick int64
	frames          int

	tweens    []*TweenGroup
	tweenTime float64

	closed bool
}

// NewAnimation creates an animation.
func NewAnimation(cfg AnimationConfig, opts ...Option) (*Animation, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	a := &Animation{
		cfg:      cfg,
		log:      zap.NewNop(),
		objects:  make(map[string]Object),
		nextSeq:  math.MinInt64,
		template: frameNameTemplate(cfg.MaxFrames),
		workers:  2,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.runID == uuid.Nil {
		a.runID = uuid.New()
	}
	a.log = a.log.With(zap.String("run", a.runID.String()))
	if a.sim == nil {
		s, err := sim.New(cfg.TicksPerSecond, sim.WithLogger(a.log.Named("sim")))
		if err != nil {
			return nil, err
		}
		a.sim = s
	} else if a.sim.TicksPerUnit() != cfg.TicksPerSecond {
		return nil, argError("NewAnimation", "simulation runs %g ticks per unit, config says %g",
			a.sim.TicksPerUnit(), cfg.TicksPerSecond)
	}
	a.tweenTime = a.sim.CurrentTime()
	return a, nil
}

// Config returns the animation's configuration.
func (a *Animation) Config() AnimationConfig { return a.cfg }

// Sim returns the scheduler driving the animation.
func (a *Animation) Sim() *sim.Simulation { return a.sim }

// Logger returns the animation's logger.
func (a *Animation) Logger() *zap.Logger { return a.log }

// RunID returns the id of this run.
func (a *Animation) RunID() uuid.UUID { return a.runID }

// CurrentTime returns the simulation time.
func (a *Animation) CurrentTime() float64 { return a.sim.CurrentTime() }

// CurrentTicks returns the simulation tick.
func (a *Animation) CurrentTicks() int64 { return a.sim.CurrentTicks() }

// TicksFor converts a time to ticks.
func (a *Animation) TicksFor(t float64) int64 { return a.sim.TicksFor(t) }

// TimeFor converts ticks to a time.
func (a *Animation) TimeFor(tick int64) float64 { return a.sim.TimeFor(tick) }

// FrameCount returns the number of frames generated so far.
func (a *Animation) FrameCount() int { return a.frames }

// kindPrefix returns the generated-name prefix for an object.
func kindPrefix(o Object) string {
	switch o.(type) {
	case *Figure:
		return ids.PrefixFigure
	case *View:
		return ids.PrefixView
	case *Layer:
		return ids.PrefixLayer
	case *PathObject:
		return ids.PrefixPath
	case *ConnectingLine:
		return ids.PrefixLine
	case *CartesianGrid, *PolarGrid:
		return ids.PrefixGrid
	case *DirectedObject:
		return ids.PrefixDirected
	}
	return ids.PrefixObject
}

// register adds o under name, assigning its creation sequence. An empty
// name is replaced by a generated one.
func (a *Animation) register(o Object, name string, vis Visibility) error {
	if a == nil {
		panic("anim2d: object created with nil animation")
	}
	if name == "" {
		name = ids.New(kindPrefix(o))
	}
	if _, ok := a.objects[name]; ok {
		return argError("register", "object %q already exists", name)
	}
	b := o.objectBase()
	b.anim = a
	b.self = o
	b.name = name
	b.seq = a.nextSeq
	a.nextSeq++
	b.zorder = vis.zorder()
	b.visible = !vis.Hidden
	b.log = a.log.With(zap.String("object", name))
	a.objects[name] = o
	if b.visible {
		a.visible.insert(o)
	}
	return nil
}

func (a *Animation) unregister(o Object) {
	delete(a.objects, o.objectBase().name)
}

// Object returns the object with the given name.
func (a *Animation) Object(name string) (Object, bool) {
	o, ok := a.objects[name]
	return o, ok
}

// Objects returns every object in creation order.
func (a *Animation) Objects() []Object {
	out := make([]Object, 0, len(a.objects))
	for _, o := range a.objects {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].objectBase().seq < out[j].objectBase().seq
	})
	return out
}

// VisibleObjects returns the visible objects in drawing order.
func (a *Animation) VisibleObjects() []Object { return a.visible.snapshot() }

// SetRenderer sets the renderer frames are drawn with.
func (a *Animation) SetRenderer(r Renderer) { a.renderer = r }

// Renderer returns the renderer, or nil.
func (a *Animation) Renderer() Renderer { return a.renderer }

// SetWriter directs frames to w as PNG images named by template, a printf
// pattern taking the frame number. An empty template selects img%0Nd.png
// with N the digit count of the frame limit. It must be called before the
// first frame.
func (a *Animation) SetWriter(w ImageSequenceWriter, template string) error {
	if a.closed {
		return stateError("SetWriter", "animation closed")
	}
	if a.frames > 0 || a.writer != nil {
		return stateError("SetWriter", "frames already directed to a writer or generated")
	}
	if template == "" {
		template = frameNameTemplate(a.cfg.MaxFrames)
	}
	md := SequenceMetadata{
		Width:        a.cfg.Width,
		Height:       a.cfg.Height,
		MimeType:     "image/png",
		FrameRate:    a.cfg.FrameRate(),
		NameTemplate: template,
		FrameCount:   a.cfg.MaxFrames,
		RunID:        a.runID.String(),
	}
	if err := w.AddMetadata(md); err != nil {
		return fmt.Errorf("anim2d: add metadata: %w", err)
	}
	a.writer = w
	a.template = template
	a.encoder = newFrameEncoder(w, a.workers, a.log.Named("frames"))
	return nil
}

// AddTween starts stepping g before each frame.
func (a *Animation) AddTween(g *TweenGroup) {
	a.tweens = append(a.tweens, g)
}

func (a *Animation) stepTweens(t float64) error {
	dt := float32(t - a.tweenTime)
	a.tweenTime = t
	if len(a.tweens) == 0 || dt <= 0 {
		return nil
	}
	live := a.tweens[:0]
	for _, g := range a.tweens {
		if err := g.Update(dt); err != nil {
			return err
		}
		if !g.Done {
			live = append(live, g)
		}
	}
	clear(a.tweens[len(live):])
	a.tweens = live
	return nil
}

// ScheduleFrames schedules n frames, the first at startTick and then one
// every TicksPerFrame ticks. Frame runs may not overlap earlier runs and
// the total may not exceed MaxFrames.
func (a *Animation) ScheduleFrames(startTick int64, n int) error {
	if n < 0 {
		return argError("ScheduleFrames", "negative frame count %d", n)
	}
	if a.closed {
		return stateError("ScheduleFrames", "animation closed")
	}
	if startTick < a.endingFrameTick {
		return stateError("ScheduleFrames", "start tick %d precedes the end of scheduled frames at %d", startTick, a.endingFrameTick)
	}
	if startTick < a.sim.CurrentTicks() {
		return stateError("ScheduleFrames", "start tick %d is in the past", startTick)
	}
	if a.scheduledFrames+n > a.cfg.MaxFrames {
		return stateError("ScheduleFrames", "%d frames would exceed the limit of %d", a.scheduledFrames+n, a.cfg.MaxFrames)
	}
	if n == 0 {
		return nil
	}
	a.scheduledFrames += n
	a.endingFrameTick = startTick + int64(n)*a.cfg.TicksPerFrame

	remaining := n
	var frame func() error
	frame = func() error {
		if err := a.GenerateFrame(); err != nil {
			return err
		}
		remaining--
		if remaining > 0 {
			_, err := a.sim.ScheduleAfter(a.cfg.TicksPerFrame, FramePriority, "frame", frame)
			return err
		}
		return nil
	}
	_, err := a.sim.ScheduleAt(startTick, FramePriority, "frame", frame)
	return err
}

// GenerateFrame draws one frame at the current simulation time: the
// surface is cleared, then each visible object in z-order is updated and
// drawn. The renderer state is restored after every object but the last.
func (a *Animation) GenerateFrame() error {
	if a.renderer == nil {
		return stateError("GenerateFrame", "no renderer")
	}
	if a.closed {
		return stateError("GenerateFrame", "animation closed")
	}
	t, tick := a.CurrentTime(), a.CurrentTicks()
	if err := a.stepTweens(t); err != nil {
		return err
	}

	r := a.renderer
	r.Clear(a.cfg.Background)
	r.SetWindow(DefaultViewWindow)
	objs := a.visible.snapshot()
	for i, o := range objs {
		var saved RenderState
		last := i == len(objs)-1
		if !last {
			saved = r.State()
		}
		if err := o.Update(t, tick); err != nil {
			return fmt.Errorf("update %s: %w", o.objectBase().name, err)
		}
		if err := o.Draw(r); err != nil {
			return fmt.Errorf("draw %s: %w", o.objectBase().name, err)
		}
		if !last {
			r.SetState(saved)
		}
	}
	a.frames++
	a.log.Debug("frame", zap.Int("frame", a.frames), zap.Int64("tick", tick), zap.Int("objects", len(objs)))

	if a.encoder == nil {
		return nil
	}
	return a.encoder.submit(fmt.Sprintf(a.template, a.frames), r.Image())
}

// At schedules fn at time t, ahead of any frame at the same tick.
func (a *Animation) At(t float64, label string, fn func() error) (*sim.Event, error) {
	if math.IsNaN(t) {
		return nil, argError("At", "NaN time")
	}
	ev, err := a.sim.ScheduleAt(a.TicksFor(t), TimelinePriority, label, fn)
	if err != nil {
		return nil, fmt.Errorf("anim2d: At: %w: %w", ErrInvalidState, err)
	}
	return ev, nil
}

// Run runs the simulation until no events remain.
func (a *Animation) Run(ctx context.Context) error {
	if a.closed {
		return stateError("Run", "animation closed")
	}
	return a.sim.Run(ctx)
}

// RunUntil runs the simulation through tick.
func (a *Animation) RunUntil(ctx context.Context, tick int64) error {
	if a.closed {
		return stateError("RunUntil", "animation closed")
	}
	return a.sim.RunUntil(ctx, tick)
}

// Close waits for pending frames to be written and closes the writer.
func (a *Animation) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true
	var err error
	if a.encoder != nil {
		err = a.encoder.close()
	}
	if a.writer != nil {
		if cerr := a.writer.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("anim2d: close writer: %w", cerr)
		}
	}
	return err
}

// PrintState writes the state of every object in creation order.
func (a *Animation) PrintState(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "time %g (tick %d), %d frames\n", a.CurrentTime(), a.CurrentTicks(), a.frames); err != nil {
		return err
	}
	for _, o := range a.Objects() {
		if err := o.PrintState(w); err != nil {
			return err
		}
	}
	return nil
}
