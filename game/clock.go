package game

import (
	"sync"
	"time"
)

// TimeSource supplies the current time in milliseconds. Only differences
// between readings matter.
type TimeSource interface {
	NowMS() float64
}

// WallTime reads the system clock.
type WallTime struct{}

// NowMS implements TimeSource.
func (WallTime) NowMS() float64 {
	return float64(time.Now().UnixNano()) / float64(time.Millisecond)
}

// SteppedTime only moves when told to. Fast headless runs and tests advance
// it by one tick interval per tick.
type SteppedTime struct {
	mu  sync.Mutex
	now float64
}

// NowMS implements TimeSource.
func (s *SteppedTime) NowMS() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// Advance moves the clock forward by ms.
func (s *SteppedTime) Advance(ms float64) {
	s.mu.Lock()
	s.now += ms
	s.mu.Unlock()
}

// Clock measures elapsed run time with paused intervals taken out.
type Clock struct {
	src         TimeSource
	start       float64
	pausedTotal float64
	pauseStart  float64
	paused      bool
	started     bool
}

// NewClock creates a clock reading from src.
func NewClock(src TimeSource) *Clock {
	if src == nil {
		src = WallTime{}
	}
	return &Clock{src: src}
}

// Start resets the clock to zero elapsed time.
func (c *Clock) Start() {
	*c = Clock{src: c.src, start: c.src.NowMS(), started: true}
}

// Elapsed returns the run time in milliseconds excluding pauses. While
// paused it stays at the value it had when the pause began.
func (c *Clock) Elapsed() float64 {
	if !c.started {
		return 0
	}
	now := c.src.NowMS()
	if c.paused {
		now = c.pauseStart
	}
	return now - c.start - c.pausedTotal
}

// Pause freezes elapsed time. Pausing twice is a no-op.
func (c *Clock) Pause() {
	if c.paused || !c.started {
		return
	}
	c.paused = true
	c.pauseStart = c.src.NowMS()
}

// Resume adds the pause length to the paused total. Resuming a running
// clock is a no-op.
func (c *Clock) Resume() {
	if !c.paused {
		return
	}
	c.pausedTotal += c.src.NowMS() - c.pauseStart
	c.paused = false
}

// Paused reports whether the clock is paused.
func (c *Clock) Paused() bool { return c.paused }

// PausedTotal returns the accumulated paused time in milliseconds.
func (c *Clock) PausedTotal() float64 { return c.pausedTotal }
