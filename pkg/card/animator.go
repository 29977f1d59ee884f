package card

import (
	"time"

	"github.com/go-drift/cardsheet/pkg/animation"
	"github.com/go-drift/cardsheet/pkg/graphics"
)

// PresentDuration is the length of the entrance, dismissal and retarget
// animations.
const PresentDuration = 600 * time.Millisecond

// RelayoutDuration is how long a settled card takes to follow a container
// layout change.
const RelayoutDuration = 200 * time.Millisecond

// Animator moves a view's frame with a critically damped curve.
//
// Every run is tagged with the epoch current when it started. Starting or
// retargeting bumps the epoch, so when a superseded run winds down its
// completion is silently dropped; only the latest run reports completion.
type Animator struct {
	view     View
	duration time.Duration

	epoch  uint64
	run    *animatorRun
	target graphics.Rect
}

type animatorRun struct {
	epoch      uint64
	controller *animation.AnimationController
	onComplete func(finished bool)
	done       bool
}

// NewAnimator creates an animator for view. A non-positive duration uses
// PresentDuration.
func NewAnimator(view View, duration time.Duration) *Animator {
	if duration <= 0 {
		duration = PresentDuration
	}
	return &Animator{view: view, duration: duration}
}

// Epoch returns the epoch of the latest run.
func (a *Animator) Epoch() uint64 { return a.epoch }

// InFlight reports whether a run is animating.
func (a *Animator) InFlight() bool { return a.run != nil }

// Remaining returns the time left on the run in flight, or zero.
func (a *Animator) Remaining() time.Duration {
	if a.run == nil {
		return 0
	}
	return a.run.controller.Remaining()
}

// Target returns the frame the latest run is heading to.
func (a *Animator) Target() graphics.Rect { return a.target }

// Start animates from from to to over the full duration, superseding any
// run in flight. onComplete fires once, when this run lands, unless a later
// Start or Retarget supersedes it first.
func (a *Animator) Start(from, to graphics.Rect, onComplete func(finished bool)) uint64 {
	a.supersede()
	a.view.SetFrame(from)
	return a.launch(from, to, a.duration, onComplete)
}

// Retarget redirects the animation to to. An in-flight run is replaced by
// one starting at the currently rendered frame and finishing in the time the
// old run had left; its completion callback moves over to the new run. When
// the size changes, the view is laid out once at the final frame and put
// back, so content reflows before it moves. With nothing in flight the view
// animates from where it is over the full duration.
func (a *Animator) Retarget(to graphics.Rect) uint64 {
	current := a.view.Frame()
	old := a.run
	if old == nil {
		a.supersede()
		return a.launch(current, to, a.duration, nil)
	}

	remaining := old.controller.Remaining()
	onComplete := old.onComplete
	sizeChanged := !to.SameSize(a.target)
	a.supersede()

	if sizeChanged {
		a.view.SetFrame(to)
		if lv, ok := a.view.(LayoutView); ok {
			lv.LayoutIfNeeded()
		}
		a.view.SetFrame(current)
	}
	return a.launch(current, to, remaining, onComplete)
}

// AnimateTo moves the view from its current frame to to over d, superseding
// any run in flight. The superseded run's completion is dropped.
func (a *Animator) AnimateTo(to graphics.Rect, d time.Duration) uint64 {
	current := a.view.Frame()
	a.supersede()
	return a.launch(current, to, d, nil)
}

// Stop abandons the run in flight, leaving the view where it is. Its
// completion is dropped.
func (a *Animator) Stop() {
	a.supersede()
}

// supersede bumps the epoch and winds down the current run, which then sees
// a stale epoch.
func (a *Animator) supersede() {
	a.epoch++
	if run := a.run; run != nil {
		run.controller.Stop()
		a.finish(run, false)
	}
}

// launch starts a run tagged with the current epoch. Callers supersede
// first.
func (a *Animator) launch(from, to graphics.Rect, d time.Duration, onComplete func(bool)) uint64 {
	a.target = to

	c := animation.NewAnimationController(d)
	c.Curve = animation.CriticallyDampedCurve(0)
	run := &animatorRun{epoch: a.epoch, controller: c, onComplete: onComplete}
	frames := animation.TweenRect(from, to)
	c.AddListener(func() {
		if a.run == run {
			a.view.SetFrame(frames.Transform(c))
		}
	})
	c.AddStatusListener(func(s animation.AnimationStatus) {
		if s == animation.AnimationCompleted {
			a.finish(run, true)
		}
	})
	a.run = run
	c.Forward()
	return run.epoch
}

func (a *Animator) finish(run *animatorRun, finished bool) {
	if run.done {
		return
	}
	run.done = true
	run.controller.Dispose()
	if a.run == run {
		a.run = nil
	}
	if run.epoch != a.epoch || run.onComplete == nil {
		return
	}
	run.onComplete(finished)
}
