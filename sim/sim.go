// Package sim is a single-threaded discrete-event scheduler. Time is an
// integer tick count; a fixed number of ticks makes one time unit. Events
// run in order of tick, then priority, then scheduling order.
package sim

import (
	"container/heap"
	"context"
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"
)

// ErrPastTick is returned when an event is scheduled before the current
// tick.
var ErrPastTick = errors.New("sim: tick is in the past")

// ErrStopped is returned by Run and RunUntil after Stop was called.
var ErrStopped = errors.New("sim: stopped")

// Event is a scheduled call.
type Event struct {
	tick     int64
	priority int
	seq      uint64
	label    string
	fn       func() error

	index    int
	canceled bool
}

// Tick returns the tick the event runs at.
func (e *Event) Tick() int64 { return e.tick }

// Priority returns the event's priority. Lower values run first within a
// tick.
func (e *Event) Priority() int { return e.priority }

// Label returns the event's label.
func (e *Event) Label() string { return e.label }

// Cancel prevents the event from running. Canceling an event that already
// ran has no effect.
func (e *Event) Cancel() { e.canceled = true }

// Canceled reports whether Cancel was called.
func (e *Event) Canceled() bool { return e.canceled }

type eventQueue []*Event

func (q eventQueue) Len() int { return len(q) }

func (q eventQueue) Less(i, j int) bool {
	a, b := q[i], q[j]
	if a.tick != b.tick {
		return a.tick < b.tick
	}
	if a.priority != b.priority {
		return a.priority < b.priority
	}
	return a.seq < b.seq
}

func (q eventQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *eventQueue) Push(x any) {
	e := x.(*Event)
	e.index = len(*q)
	*q = append(*q, e)
}

func (q *eventQueue) Pop() any {
	old := *q
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*q = old[:n-1]
	return e
}

// Option configures a Simulation.
type Option func(*Simulation)

// WithLogger sets the logger events are traced to at debug level.
func WithLogger(l *zap.Logger) Option {
	return func(s *Simulation) {
		if l != nil {
			s.log = l
		}
	}
}

// WithStartTick sets the initial tick.
func WithStartTick(tick int64) Option {
	return func(s *Simulation) { s.ticks = tick }
}

// Simulation owns the clock and the event queue.
type Simulation struct {
	ticks        int64
	ticksPerUnit float64
	queue        eventQueue
	seq          uint64
	stopped      bool
	dispatched   uint64
	log          *zap.Logger
}

// New returns a simulation with ticksPerUnit ticks per time unit.
func New(ticksPerUnit float64, opts ...Option) (*Simulation, error) {
	if !(ticksPerUnit > 0) || math.IsInf(ticksPerUnit, 1) {
		return nil, fmt.Errorf("sim: ticks per unit must be positive, got %g", ticksPerUnit)
	}
	s := &Simulation{ticksPerUnit: ticksPerUnit, log: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// CurrentTicks returns the current tick.
func (s *Simulation) CurrentTicks() int64 { return s.ticks }

// CurrentTime returns the current time in time units.
func (s *Simulation) CurrentTime() float64 { return s.TimeFor(s.ticks) }

// TicksPerUnit returns the number of ticks in one time unit.
func (s *Simulation) TicksPerUnit() float64 { return s.ticksPerUnit }

// TicksFor converts a time to the nearest tick.
func (s *Simulation) TicksFor(t float64) int64 {
	return int64(math.Round(t * s.ticksPerUnit))
}

// TimeFor converts a tick to a time.
func (s *Simulation) TimeFor(tick int64) float64 {
	return float64(tick) / s.ticksPerUnit
}

// Pending returns the number of queued events, canceled ones included.
func (s *Simulation) Pending() int { return len(s.queue) }

// Dispatched returns the number of events run so far.
func (s *Simulation) Dispatched() uint64 { return s.dispatched }

// ScheduleAt queues fn to run at tick. Events at the same tick run in
// ascending priority, then in the order they were scheduled.
func (s *Simulation) ScheduleAt(tick int64, priority int, label string, fn func() error) (*Event, error) {
	if fn == nil {
		panic("sim: ScheduleAt with nil func")
	}
	if tick < s.ticks {
		return nil, fmt.Errorf("schedule %q at %d (now %d): %w", label, tick, s.ticks, ErrPastTick)
	}
	e := &Event{tick: tick, priority: priority, seq: s.seq, label: label, fn: fn}
	s.seq++
	heap.Push(&s.queue, e)
	return e, nil
}

// ScheduleAfter queues fn to run delay ticks from now.
func (s *Simulation) ScheduleAfter(delay int64, priority int, label string, fn func() error) (*Event, error) {
	return s.ScheduleAt(s.ticks+delay, priority, label, fn)
}

// next pops the earliest live event without running it.
func (s *Simulation) next() *Event {
	for len(s.queue) > 0 {
		e := heap.Pop(&s.queue).(*Event)
		if !e.canceled {
			return e
		}
	}
	return nil
}

func (s *Simulation) peekTick() (int64, bool) {
	for len(s.queue) > 0 {
		if s.queue[0].canceled {
			heap.Pop(&s.queue)
			continue
		}
		return s.queue[0].tick, true
	}
	return 0, false
}

func (s *Simulation) dispatch(e *Event) error {
	s.ticks = e.tick
	s.dispatched++
	s.log.Debug("event",
		zap.String("label", e.label),
		zap.Int64("tick", e.tick),
		zap.Int("priority", e.priority))
	if err := e.fn(); err != nil {
		return fmt.Errorf("event %q at tick %d: %w", e.label, e.tick, err)
	}
	return nil
}

// Step runs the next event. It reports false when the queue is empty.
func (s *Simulation) Step() (bool, error) {
	e := s.next()
	if e == nil {
		return false, nil
	}
	return true, s.dispatch(e)
}

// Run dispatches events until the queue is empty, an event fails, Stop is
// called or ctx is done.
func (s *Simulation) Run(ctx context.Context) error {
	s.stopped = false
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if s.stopped {
			return ErrStopped
		}
		ok, err := s.Step()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}
}

// RunUntil dispatches every event scheduled at or before tick and then
// advances the clock to tick.
func (s *Simulation) RunUntil(ctx context.Context, tick int64) error {
	if tick < s.ticks {
		return fmt.Errorf("run until %d (now %d): %w", tick, s.ticks, ErrPastTick)
	}
	s.stopped = false
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if s.stopped {
			return ErrStopped
		}
		next, ok := s.peekTick()
		if !ok || next > tick {
			break
		}
		if err := s.dispatch(s.next()); err != nil {
			return err
		}
	}
	s.ticks = tick
	return nil
}

// Stop makes a running Run or RunUntil return after the current event.
func (s *Simulation) Stop() { s.stopped = true }
