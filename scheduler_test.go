package thicket

import (
	"errors"
	"testing"
	"time"
)

func TestRequestFrameRunsOnce(t *testing.T) {
	s := NewFrameScheduler(NewManualClock(time.Unix(0, 0)))
	n := 0
	s.RequestFrame(func() error { n++; return nil })
	if !s.Pending() {
		t.Fatal("Pending = false after RequestFrame")
	}
	if err := s.Pump(); err != nil {
		t.Fatal(err)
	}
	if err := s.Pump(); err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("ran %d times, want 1", n)
	}
}

func TestRequestFrameReplaces(t *testing.T) {
	s := NewFrameScheduler(NewManualClock(time.Unix(0, 0)))
	var got string
	s.RequestFrame(func() error { got = "first"; return nil })
	s.RequestFrame(func() error { got = "second"; return nil })
	_ = s.Pump()
	if got != "second" {
		t.Errorf("ran %q, want second", got)
	}
}

func TestRequestFrameFromCallback(t *testing.T) {
	s := NewFrameScheduler(NewManualClock(time.Unix(0, 0)))
	n := 0
	var frame func() error
	frame = func() error {
		n++
		s.RequestFrame(frame)
		return nil
	}
	s.RequestFrame(frame)
	for i := 0; i < 5; i++ {
		_ = s.Pump()
	}
	if n != 5 {
		t.Errorf("ran %d frames, want 5", n)
	}
}

func TestPumpReturnsFrameError(t *testing.T) {
	s := NewFrameScheduler(NewManualClock(time.Unix(0, 0)))
	boom := errors.New("boom")
	s.RequestFrame(func() error { return boom })
	if err := s.Pump(); !errors.Is(err, boom) {
		t.Errorf("err = %v, want boom", err)
	}
}

func TestEvery(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	s := NewFrameScheduler(clock)
	n := 0
	cancel := s.Every(time.Second, func() { n++ })

	clock.Advance(999 * time.Millisecond)
	_ = s.Pump()
	if n != 0 {
		t.Fatalf("fired early: n = %d", n)
	}
	clock.Advance(time.Millisecond)
	_ = s.Pump()
	if n != 1 {
		t.Fatalf("n = %d after 1s, want 1", n)
	}
	clock.Advance(time.Second)
	_ = s.Pump()
	if n != 2 {
		t.Fatalf("n = %d after 2s, want 2", n)
	}

	// A long stall fires once, not once per missed interval.
	clock.Advance(10 * time.Second)
	_ = s.Pump()
	if n != 3 {
		t.Fatalf("n = %d after stall, want 3", n)
	}

	cancel()
	clock.Advance(5 * time.Second)
	_ = s.Pump()
	if n != 3 {
		t.Errorf("fired after cancel: n = %d", n)
	}
}

func TestEveryRegisteredFromCallback(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	s := NewFrameScheduler(clock)
	inner := 0
	registered := false
	s.Every(time.Second, func() {
		if !registered {
			registered = true
			s.Every(time.Second, func() { inner++ })
		}
	})
	clock.Advance(time.Second)
	_ = s.Pump()
	if got := len(s.intervals); got != 2 {
		t.Fatalf("intervals = %d, want 2", got)
	}
	clock.Advance(time.Second)
	_ = s.Pump()
	if inner != 1 {
		t.Errorf("inner = %d, want 1", inner)
	}
}
