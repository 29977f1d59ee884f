package testing

import (
	"errors"
	"testing"
	"time"

	"github.com/go-drift/cardsheet/pkg/animation"
	"github.com/go-drift/cardsheet/pkg/card"
	"github.com/go-drift/cardsheet/pkg/graphics"
)

const (
	// DefaultTestWidth is the default logical width of the container.
	DefaultTestWidth = 390
	// DefaultTestHeight is the default logical height of the container.
	DefaultTestHeight = 844
	// DefaultSafeTop is the default top safe-area inset.
	DefaultSafeTop = 47
	// FrameDuration is how far Pump advances the clock per frame.
	FrameDuration = 16 * time.Millisecond
)

// ErrSettleTimeout is returned when PumpAndSettle exceeds its timeout.
var ErrSettleTimeout = errors.New("PumpAndSettle timed out: animations did not settle")

// HostTester drives a card transition against fake host views with a fake
// clock, so animations and gestures run deterministically.
type HostTester struct {
	Host       *FakeHost
	Transition *card.Transition

	clock     *FakeClock
	prevClock animation.Clock
	pointers  map[int64]*pointerState
	nextID    int64
}

// NewHostTester creates a tester with a default-sized container and
// installs its fake clock. Call Cleanup when done, or use
// NewHostTesterWithT instead.
func NewHostTester(opts ...card.Option) *HostTester {
	size := graphics.Size{Width: DefaultTestWidth, Height: DefaultTestHeight}
	return NewSizedHostTester(size, card.HostMetrics{SafeAreaTop: DefaultSafeTop, DisplayScale: 3}, opts...)
}

// NewSizedHostTester creates a tester for a container of the given size
// and metrics and installs its fake clock.
func NewSizedHostTester(size graphics.Size, metrics card.HostMetrics, opts ...card.Option) *HostTester {
	clk := NewFakeClock()
	h := NewFakeHost(size, metrics.SafeAreaTop)
	t := &HostTester{
		Host:     h,
		clock:    clk,
		pointers: make(map[int64]*pointerState),
	}
	t.prevClock = animation.SetClock(clk)
	t.Transition = card.New(h.Host(), card.NewConfig(metrics, opts...))
	return t
}

// NewHostTesterWithT creates a tester that cleans up via t.Cleanup.
func NewHostTesterWithT(t *testing.T, opts ...card.Option) *HostTester {
	tester := NewHostTester(opts...)
	t.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup stops leftover animations and restores the animation clock.
func (t *HostTester) Cleanup() {
	t.Transition.Animator().Stop()
	for animation.HasActiveTickers() {
		t.clock.Advance(time.Hour)
		animation.StepTickers()
	}
	animation.SetClock(t.prevClock)
}

// Clock returns the fake clock.
func (t *HostTester) Clock() *FakeClock {
	return t.clock
}

// Pump runs one frame at the current time.
func (t *HostTester) Pump() {
	animation.StepTickers()
}

// PumpFor runs frames for d, advancing the clock FrameDuration at a time.
func (t *HostTester) PumpFor(d time.Duration) {
	Pump(t.clock, d, FrameDuration)
}

// PumpAndSettle runs frames until no animation is active or timeout
// elapses.
func (t *HostTester) PumpAndSettle(timeout time.Duration) error {
	var elapsed time.Duration
	for elapsed < timeout {
		t.Pump()
		if !animation.HasActiveTickers() {
			return nil
		}
		t.clock.Advance(FrameDuration)
		elapsed += FrameDuration
	}
	return ErrSettleTimeout
}

// Present presents the card and pumps until it has settled.
func (t *HostTester) Present() error {
	t.Transition.Present(nil)
	return t.PumpAndSettle(2 * time.Second)
}

// Resize changes the container size and runs a layout pass.
func (t *HostTester) Resize(size graphics.Size) {
	t.Host.Container.Size = size
	t.Transition.ContainerDidLayout()
}
