package anim

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestFrameQueueDefersRequestsMadeDuringTick(t *testing.T) {
	q := NewFrameQueue()
	calls := 0
	var again func()
	again = func() {
		calls++
		q.RequestFrame(again)
	}
	q.RequestFrame(again)

	for i := 1; i <= 5; i++ {
		if ran := q.Tick(); ran != 1 {
			t.Fatalf("tick %d ran %d callbacks, want 1", i, ran)
		}
		if calls != i {
			t.Fatalf("after tick %d calls = %d", i, calls)
		}
	}
	if q.Frames() != 5 {
		t.Errorf("Frames() = %d, want 5", q.Frames())
	}
}

func TestFrameQueueCancel(t *testing.T) {
	q := NewFrameQueue()
	ran := false
	id := q.RequestFrame(func() { ran = true })
	q.CancelFrame(id)
	q.CancelFrame(12345)

	if n := q.Tick(); n != 0 || ran {
		t.Errorf("cancelled callback ran (n=%d)", n)
	}
	if q.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", q.Pending())
	}
}

func TestFrameQueueOrder(t *testing.T) {
	q := NewFrameQueue()
	var got []int
	for i := 0; i < 3; i++ {
		i := i
		q.RequestFrame(func() { got = append(got, i) })
	}
	q.Tick()
	if len(got) != 3 || got[0] != 0 || got[1] != 1 || got[2] != 2 {
		t.Errorf("run order = %v, want [0 1 2]", got)
	}
}

func TestFrameQueueRunStopsOnCancel(t *testing.T) {
	q := NewFrameQueue()
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := q.Run(ctx, 200)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Run() = %v, want deadline exceeded", err)
	}
	if q.Frames() == 0 {
		t.Error("Run() never ticked")
	}
}

func TestLoopRunsOncePerFrame(t *testing.T) {
	q := NewFrameQueue()
	steps := 0
	l := NewLoop(q, func() { steps++ })
	l.Start()
	l.Start()

	for i := 0; i < 10; i++ {
		q.Tick()
	}
	if steps != 10 || l.Frames() != 10 {
		t.Errorf("steps = %d frames = %d, want 10", steps, l.Frames())
	}
	if q.Pending() != 1 {
		t.Errorf("Pending() = %d, want exactly one armed frame", q.Pending())
	}
}

func TestLoopStop(t *testing.T) {
	q := NewFrameQueue()
	steps := 0
	l := NewLoop(q, func() { steps++ })
	l.Start()
	q.Tick()
	l.Stop()

	if q.Pending() != 0 {
		t.Errorf("Pending() after Stop = %d", q.Pending())
	}
	for i := 0; i < 5; i++ {
		q.Tick()
	}
	if steps != 1 {
		t.Errorf("steps = %d after Stop, want 1", steps)
	}
	if l.Running() {
		t.Error("Running() after Stop")
	}

	// restart picks up again
	l.Start()
	q.Tick()
	if steps != 2 {
		t.Errorf("steps after restart = %d, want 2", steps)
	}
}

func TestLoopStopAfter(t *testing.T) {
	q := NewFrameQueue()
	steps := 0
	l := NewLoop(q, func() { steps++ })
	l.StopAfter(7)
	l.Start()

	for i := 0; i < 20; i++ {
		q.Tick()
	}
	if steps != 7 {
		t.Errorf("steps = %d, want 7", steps)
	}
	if l.Running() || q.Pending() != 0 {
		t.Error("loop still armed after StopAfter")
	}
}

func TestLoopStopFromInsideStep(t *testing.T) {
	q := NewFrameQueue()
	var l *Loop
	steps := 0
	l = NewLoop(q, func() {
		steps++
		if steps == 3 {
			l.Stop()
		}
	})
	l.Start()
	for i := 0; i < 10; i++ {
		q.Tick()
	}
	if steps != 3 {
		t.Errorf("steps = %d, want 3", steps)
	}
}
