// Package animation provides the timing primitives behind the card
// transition: a replaceable [Clock], frame-driven [Ticker]s, a 0-1
// [AnimationController], easing curves, spring physics and tweens.
//
// Nothing here blocks. An animation "in flight" is an active ticker whose
// callback runs each time the host's frame loop calls [StepTickers]. All
// callbacks are expected on the UI goroutine; the mutex only protects the
// ticker registry from hosts that pump frames from a different goroutine
// than the one starting animations.
//
// # Basic Usage
//
//	c := animation.NewAnimationController(600 * time.Millisecond)
//	c.Curve = animation.CriticallyDampedCurve(0)
//	c.AddListener(func() { view.SetFrame(graphics.LerpRect(from, to, c.Value)) })
//	c.Forward()
//
//	// once per frame, from the host
//	animation.StepTickers()
package animation

import (
	"slices"
	"sync"
	"time"
)

var (
	tickerMu sync.Mutex
	// active holds running tickers in start order, so each frame steps
	// them in the order their animations began.
	active []*Ticker
)

// Ticker calls a callback once per frame while active, with the time
// elapsed since Start.
type Ticker struct {
	callback func(elapsed time.Duration)
	running  bool
	start    time.Time
}

// NewTicker creates a stopped ticker.
func NewTicker(callback func(elapsed time.Duration)) *Ticker {
	return &Ticker{callback: callback}
}

// Start registers the ticker with the frame loop. Starting a running
// ticker does nothing.
func (t *Ticker) Start() {
	if t.running {
		return
	}
	t.running = true
	t.start = Now()
	tickerMu.Lock()
	active = append(active, t)
	tickerMu.Unlock()
}

// Stop unregisters the ticker. A stopped ticker never fires again, even
// when it was stopped part way through the current frame.
func (t *Ticker) Stop() {
	if !t.running {
		return
	}
	t.running = false
	tickerMu.Lock()
	if i := slices.Index(active, t); i >= 0 {
		active = slices.Delete(active, i, i+1)
	}
	tickerMu.Unlock()
}

// IsActive reports whether the ticker is running.
func (t *Ticker) IsActive() bool {
	return t.running
}

// Elapsed returns the time since Start, or zero when stopped.
func (t *Ticker) Elapsed() time.Duration {
	if !t.running {
		return 0
	}
	return Now().Sub(t.start)
}

// StepTickers runs one frame: every running ticker's callback is called
// once with its elapsed time. Tickers started during the frame first fire
// on the next one. The host calls this from its frame loop.
func StepTickers() {
	tickerMu.Lock()
	frame := slices.Clone(active)
	tickerMu.Unlock()

	now := Now()
	for _, t := range frame {
		if t.running && t.callback != nil {
			t.callback(now.Sub(t.start))
		}
	}
}

// HasActiveTickers reports whether any ticker is running.
func HasActiveTickers() bool {
	tickerMu.Lock()
	defer tickerMu.Unlock()
	return len(active) > 0
}
