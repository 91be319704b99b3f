package msgstore

import (
	"sync"
	"time"
)

// Clock supplies timestamps for stored rows.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the process clock. Go's time.Now carries a monotonic
// reading, so successive calls never regress even across wall-clock
// adjustments.
type SystemClock struct{}

var _ Clock = SystemClock{}

func (SystemClock) Now() time.Time { return time.Now() }

// FakeClock is a settable Clock for tests.
type FakeClock struct {
	mu  sync.Mutex
	now time.Time
}

var _ Clock = &FakeClock{}

func NewFakeClock(start time.Time) *FakeClock {
	return &FakeClock{now: start}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *FakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
