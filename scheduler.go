package thicket

import "time"

// Scheduler queues engine work onto the host platform's single event thread.
type Scheduler interface {
	// RequestFrame runs fn on the next display frame. Only one request is
	// pending at a time; a new request replaces the old one.
	RequestFrame(fn func() error)
	// Every runs fn each time interval elapses. The returned func cancels it.
	Every(interval time.Duration, fn func()) (cancel func())
}

type interval struct {
	every time.Duration
	next  time.Time
	fn    func()
	dead  bool
}

// FrameScheduler is a cooperative Scheduler pumped by the host once per
// display frame. Ebitengine's Update drives it in Run; headless hosts and
// tests call Pump directly.
type FrameScheduler struct {
	clock     Clock
	pending   func() error
	intervals []*interval
}

// NewFrameScheduler creates a scheduler whose timers read clock.
func NewFrameScheduler(clock Clock) *FrameScheduler {
	if clock == nil {
		clock = SystemClock{}
	}
	return &FrameScheduler{clock: clock}
}

// RequestFrame implements Scheduler.
func (s *FrameScheduler) RequestFrame(fn func() error) {
	s.pending = fn
}

// Every implements Scheduler. The first run is one interval from now.
func (s *FrameScheduler) Every(every time.Duration, fn func()) func() {
	iv := &interval{every: every, next: s.clock.Now().Add(every), fn: fn}
	s.intervals = append(s.intervals, iv)
	return func() { iv.dead = true }
}

// Pending reports whether a frame callback is queued.
func (s *FrameScheduler) Pending() bool {
	return s.pending != nil
}

// Pump fires due timers, then runs the pending frame callback, if any. The
// callback is dequeued before it runs so it can request the next frame.
func (s *FrameScheduler) Pump() error {
	now := s.clock.Now()
	current := s.intervals
	s.intervals = nil // timers registered by callbacks land here
	live := current[:0]
	for _, iv := range current {
		if iv.dead {
			continue
		}
		if !now.Before(iv.next) {
			iv.fn()
			iv.next = iv.next.Add(iv.every)
			if iv.next.Before(now) {
				iv.next = now.Add(iv.every)
			}
		}
		if !iv.dead {
			live = append(live, iv)
		}
	}
	clear(current[len(live):])
	s.intervals = append(live, s.intervals...)

	fn := s.pending
	s.pending = nil
	if fn == nil {
		return nil
	}
	return fn()
}
