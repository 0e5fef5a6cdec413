package sim

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newSim(t *testing.T) *Simulation {
	t.Helper()
	s, err := New(100)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestNewRejectsBadRate(t *testing.T) {
	for _, tpu := range []float64{0, -1} {
		if _, err := New(tpu); err == nil {
			t.Errorf("New(%g) succeeded", tpu)
		}
	}
}

func TestEventOrder(t *testing.T) {
	s := newSim(t)
	var got []string
	add := func(tick int64, prio int, label string) {
		if _, err := s.ScheduleAt(tick, prio, label, func() error {
			got = append(got, label)
			return nil
		}); err != nil {
			t.Fatalf("ScheduleAt: %v", err)
		}
	}
	add(10, 0, "c")
	add(5, 1, "b")
	add(5, 0, "a")
	add(10, 0, "d")
	add(10, -1, "early")

	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := []string{"a", "b", "early", "c", "d"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
	if s.CurrentTicks() != 10 {
		t.Errorf("CurrentTicks = %d, want 10", s.CurrentTicks())
	}
	if s.Dispatched() != 5 {
		t.Errorf("Dispatched = %d, want 5", s.Dispatched())
	}
}

func TestScheduleInPast(t *testing.T) {
	s := newSim(t)
	if err := s.RunUntil(context.Background(), 50); err != nil {
		t.Fatalf("RunUntil: %v", err)
	}
	_, err := s.ScheduleAt(49, 0, "late", func() error { return nil })
	if !errors.Is(err, ErrPastTick) {
		t.Fatalf("err = %v, want ErrPastTick", err)
	}
}

func TestCancel(t *testing.T) {
	s := newSim(t)
	ran := false
	e, err := s.ScheduleAt(3, 0, "x", func() error {
		ran = true
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	e.Cancel()
	if err := s.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if ran {
		t.Error("canceled event ran")
	}
}

func TestRunUntilAdvancesClock(t *testing.T) {
	s := newSim(t)
	var ticks []int64
	for _, tick := range []int64{10, 20, 30} {
		if _, err := s.ScheduleAt(tick, 0, "e", func() error {
			ticks = append(ticks, s.CurrentTicks())
			return nil
		}); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.RunUntil(context.Background(), 25); err != nil {
		t.Fatal(err)
	}
	if len(ticks) != 2 || ticks[0] != 10 || ticks[1] != 20 {
		t.Errorf("ran at %v, want [10 20]", ticks)
	}
	if s.CurrentTicks() != 25 {
		t.Errorf("CurrentTicks = %d, want 25", s.CurrentTicks())
	}
	if got := s.CurrentTime(); got != 0.25 {
		t.Errorf("CurrentTime = %g, want 0.25", got)
	}
	if s.Pending() != 1 {
		t.Errorf("Pending = %d, want 1", s.Pending())
	}
}

func TestEventErrorStopsRun(t *testing.T) {
	s := newSim(t)
	boom := errors.New("boom")
	if _, err := s.ScheduleAt(1, 0, "bad", func() error { return boom }); err != nil {
		t.Fatal(err)
	}
	ran := false
	if _, err := s.ScheduleAt(2, 0, "after", func() error {
		ran = true
		return nil
	}); err != nil {
		t.Fatal(err)
	}
	err := s.Run(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
	if ran {
		t.Error("event after failure ran")
	}
}

func TestStopAndContext(t *testing.T) {
	s := newSim(t)
	for i := int64(0); i < 5; i++ {
		if _, err := s.ScheduleAt(i, 0, "e", func() error {
			if s.CurrentTicks() == 2 {
				s.Stop()
			}
			return nil
		}); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.Run(context.Background()); !errors.Is(err, ErrStopped) {
		t.Fatalf("err = %v, want ErrStopped", err)
	}
	if s.CurrentTicks() != 2 {
		t.Errorf("stopped at %d, want 2", s.CurrentTicks())
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestTickConversion(t *testing.T) {
	s := newSim(t)
	if got := s.TicksFor(1.234); got != 123 {
		t.Errorf("TicksFor(1.234) = %d, want 123", got)
	}
	if got := s.TimeFor(250); got != 2.5 {
		t.Errorf("TimeFor(250) = %g, want 2.5", got)
	}
}

func TestDispatchLogging(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	s, err := New(10, WithLogger(zap.New(core)))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.ScheduleAt(4, 2, "frame", func() error { return nil }); err != nil {
		t.Fatal(err)
	}
	if err := s.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	entries := logs.FilterMessage("event").All()
	if len(entries) != 1 {
		t.Fatalf("got %d event records, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["label"] != "frame" || fields["tick"] != int64(4) {
		t.Errorf("fields = %v", fields)
	}
}
