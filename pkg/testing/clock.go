package testing

import (
	"sync"
	"time"

	"github.com/go-drift/cardsheet/pkg/animation"
)

// FakeClock provides controllable time for deterministic animation tests.
// All methods are safe for concurrent use.
type FakeClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFakeClock returns a FakeClock starting at a fixed epoch.
func NewFakeClock() *FakeClock {
	return &FakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

// Now returns the current fake time.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Set sets the clock to an exact time.
func (c *FakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// Pump runs animation frames for total, advancing clk by frame before each
// one. A final frame lands exactly at total.
func Pump(clk *FakeClock, total, frame time.Duration) {
	if frame <= 0 {
		frame = FrameDuration
	}
	var elapsed time.Duration
	for elapsed < total {
		step := frame
		if elapsed+step > total {
			step = total - elapsed
		}
		clk.Advance(step)
		elapsed += step
		animation.StepTickers()
	}
}
