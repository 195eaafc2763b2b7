// Package anim schedules per-frame work the way a browser's
// requestAnimationFrame does: callbacks are requested for the next frame,
// run once when that frame ticks, and must re-request to keep going.
package anim

import (
	"context"
	"sync"
	"time"
)

// FrameID identifies a requested callback so it can be cancelled.
type FrameID uint64

// Scheduler hands out next-frame callbacks.
type Scheduler interface {
	RequestFrame(fn func()) FrameID
	CancelFrame(id FrameID)
}

// FrameQueue is a Scheduler driven by explicit Tick calls. Callbacks
// requested while a tick is running wait for the following tick, so a
// self-rescheduling callback runs exactly once per frame.
type FrameQueue struct {
	mu      sync.Mutex
	nextID  FrameID
	order   []FrameID
	pending map[FrameID]func()
	frames  uint64
}

func NewFrameQueue() *FrameQueue {
	return &FrameQueue{pending: make(map[FrameID]func())}
}

func (q *FrameQueue) RequestFrame(fn func()) FrameID {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.nextID++
	id := q.nextID
	q.pending[id] = fn
	q.order = append(q.order, id)
	return id
}

// CancelFrame drops a pending callback. Unknown or already run ids are
// ignored.
func (q *FrameQueue) CancelFrame(id FrameID) {
	q.mu.Lock()
	defer q.mu.Unlock()
	delete(q.pending, id)
}

// Tick runs the callbacks that were pending when it started, in request
// order, and returns how many ran. Callbacks run without the queue lock
// held and one at a time.
func (q *FrameQueue) Tick() int {
	q.mu.Lock()
	batch := q.order
	q.order = nil
	q.frames++
	q.mu.Unlock()

	ran := 0
	for _, id := range batch {
		q.mu.Lock()
		fn, ok := q.pending[id]
		delete(q.pending, id)
		q.mu.Unlock()
		if !ok {
			continue
		}
		fn()
		ran++
	}
	return ran
}

// Pending returns the number of callbacks waiting for the next tick.
func (q *FrameQueue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Frames returns the number of ticks so far.
func (q *FrameQueue) Frames() uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.frames
}

// Run ticks the queue fps times per second until ctx is done and returns
// ctx.Err().
func (q *FrameQueue) Run(ctx context.Context, fps int) error {
	if fps < 1 {
		fps = 1
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			q.Tick()
		}
	}
}
