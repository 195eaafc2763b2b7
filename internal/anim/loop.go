package anim

import "sync"

// Loop runs step once per frame on a Scheduler until stopped. Each step
// completes before the next frame is requested, so steps never overlap.
type Loop struct {
	sched Scheduler
	step  func()

	mu      sync.Mutex
	running bool
	handle  FrameID
	frames  uint64
	limit   uint64 // 0 means unlimited
}

func NewLoop(s Scheduler, step func()) *Loop {
	return &Loop{sched: s, step: step}
}

// Start arms the first frame. Starting a running loop is a no-op.
func (l *Loop) Start() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.running {
		return
	}
	l.running = true
	l.handle = l.sched.RequestFrame(l.frame)
}

// Stop cancels the pending frame. A step already running finishes, but no
// further frame is requested.
func (l *Loop) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.running {
		return
	}
	l.running = false
	l.limit = 0
	l.sched.CancelFrame(l.handle)
}

// StopAfter stops the loop once n more frames have run. n = 0 stops it
// immediately.
func (l *Loop) StopAfter(n uint64) {
	if n == 0 {
		l.Stop()
		return
	}
	l.mu.Lock()
	l.limit = l.frames + n
	l.mu.Unlock()
}

func (l *Loop) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.running
}

// Frames returns the number of steps run so far.
func (l *Loop) Frames() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.frames
}

func (l *Loop) frame() {
	l.mu.Lock()
	if !l.running {
		l.mu.Unlock()
		return
	}
	l.mu.Unlock()

	l.step()

	l.mu.Lock()
	defer l.mu.Unlock()
	l.frames++
	if l.limit != 0 && l.frames >= l.limit {
		l.running = false
		l.limit = 0
		return
	}
	if l.running {
		l.handle = l.sched.RequestFrame(l.frame)
	}
}
