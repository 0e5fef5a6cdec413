package anim2d

import (
	"fmt"
	"math"
	"sort"

	"github.com/phanxgames/anim2d/sim"
)

// TimelineEntry is a call into an object's mutators at a given time.
type TimelineEntry struct {
	Time  float64
	Label string
	Do    func() error
}

// ScheduleTimeline schedules every entry. Entries at the same time run in
// the order given. Nothing is scheduled if any entry is invalid.
func (a *Animation) ScheduleTimeline(entries []TimelineEntry) ([]*sim.Event, error) {
	now := a.CurrentTicks()
	for i, e := range entries {
		if e.Do == nil {
			return nil, argError("ScheduleTimeline", "entry %d (%s) has no action", i, e.Label)
		}
		if math.IsNaN(e.Time) || math.IsInf(e.Time, 0) {
			return nil, argError("ScheduleTimeline", "entry %d (%s) has bad time %g", i, e.Label, e.Time)
		}
		if a.TicksFor(e.Time) < now {
			return nil, stateError("ScheduleTimeline", "entry %d (%s) at %g is in the past", i, e.Label, e.Time)
		}
	}
	ordered := make([]TimelineEntry, len(entries))
	copy(ordered, entries)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Time < ordered[j].Time })

	events := make([]*sim.Event, 0, len(ordered))
	for _, e := range ordered {
		ev, err := a.At(e.Time, e.Label, e.Do)
		if err != nil {
			for _, done := range events {
				done.Cancel()
			}
			return nil, fmt.Errorf("schedule %q: %w", e.Label, err)
		}
		events = append(events, ev)
	}
	return events, nil
}
