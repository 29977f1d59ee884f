package animation

import (
	"fmt"
	"time"
)

// AnimationStatus is where a controller is in its single forward run.
//
//	          Forward()            progress reaches 1
//	Dismissed ─────────► Forward ─────────────────────► Completed
//
// Stop leaves the status at Forward; an abandoned run never completes.
type AnimationStatus int

const (
	// AnimationDismissed means the controller has not started.
	AnimationDismissed AnimationStatus = iota
	// AnimationForward means the controller is running, or was stopped
	// while running.
	AnimationForward
	// AnimationCompleted means the controller reached the end of its
	// duration.
	AnimationCompleted
)

func (s AnimationStatus) String() string {
	switch s {
	case AnimationDismissed:
		return "dismissed"
	case AnimationForward:
		return "forward"
	case AnimationCompleted:
		return "completed"
	default:
		return fmt.Sprintf("AnimationStatus(%d)", int(s))
	}
}

// AnimationController produces eased progress in [0, 1] over Duration,
// driven by a Ticker. A Curve may overshoot, in which case Value does too,
// but the final frame always lands on exactly 1.
//
// Stop abandons a run without a status change, which is how a superseded
// animation is dropped. Call Dispose when done.
type AnimationController struct {
	// Value is the eased progress of the current run.
	Value float64
	// Duration is the length of a run. Zero or less completes on the first
	// frame.
	Duration time.Duration
	// Curve eases linear progress. Nil means linear.
	Curve func(float64) float64

	status          AnimationStatus
	ticker          *Ticker
	listeners       []listener[func()]
	statusListeners []listener[func(AnimationStatus)]
	nextID          int
}

type listener[F any] struct {
	id int
	fn F
}

// NewAnimationController creates a controller with the given duration and
// a linear curve.
func NewAnimationController(duration time.Duration) *AnimationController {
	return &AnimationController{Duration: duration, Curve: LinearCurve}
}

// Forward starts a run from 0. A run already in progress is restarted.
func (c *AnimationController) Forward() {
	c.Stop()
	c.Value = 0
	c.setStatus(AnimationForward)
	c.ticker = NewTicker(c.tick)
	c.ticker.Start()
}

func (c *AnimationController) tick(elapsed time.Duration) {
	progress := 1.0
	if c.Duration > 0 {
		progress = min(float64(elapsed)/float64(c.Duration), 1)
	}
	switch {
	case progress >= 1:
		c.Value = 1
	case c.Curve != nil:
		c.Value = c.Curve(progress)
	default:
		c.Value = progress
	}
	c.notify()

	if progress >= 1 && c.ticker != nil {
		c.Stop()
		c.setStatus(AnimationCompleted)
	}
}

// Stop halts the run at its current value. Status listeners are not
// notified.
func (c *AnimationController) Stop() {
	if c.ticker != nil {
		c.ticker.Stop()
		c.ticker = nil
	}
}

// Remaining returns how much of Duration is left, floored at zero. It is
// zero when the controller is not running.
func (c *AnimationController) Remaining() time.Duration {
	if !c.IsAnimating() {
		return 0
	}
	return max(c.Duration-c.ticker.Elapsed(), 0)
}

// Status returns the current status.
func (c *AnimationController) Status() AnimationStatus {
	return c.status
}

// IsAnimating reports whether a run is in progress.
func (c *AnimationController) IsAnimating() bool {
	return c.ticker != nil && c.ticker.IsActive()
}

// AddListener registers fn to run after every value change. It returns an
// unsubscribe function.
func (c *AnimationController) AddListener(fn func()) func() {
	id := c.id()
	c.listeners = append(c.listeners, listener[func()]{id, fn})
	return func() { c.listeners = without(c.listeners, id) }
}

// AddStatusListener registers fn to run on every status change. It returns
// an unsubscribe function.
func (c *AnimationController) AddStatusListener(fn func(AnimationStatus)) func() {
	id := c.id()
	c.statusListeners = append(c.statusListeners, listener[func(AnimationStatus)]{id, fn})
	return func() { c.statusListeners = without(c.statusListeners, id) }
}

func (c *AnimationController) id() int {
	c.nextID++
	return c.nextID
}

func without[F any](ls []listener[F], id int) []listener[F] {
	out := ls[:0:0]
	for _, l := range ls {
		if l.id != id {
			out = append(out, l)
		}
	}
	return out
}

func (c *AnimationController) setStatus(status AnimationStatus) {
	if c.status == status {
		return
	}
	c.status = status
	for _, l := range c.statusListeners {
		l.fn(status)
	}
}

func (c *AnimationController) notify() {
	for _, l := range c.listeners {
		l.fn()
	}
}

// Dispose stops the controller and drops every listener.
func (c *AnimationController) Dispose() {
	c.Stop()
	c.listeners = nil
	c.statusListeners = nil
}
