// Package card implements a card-style modal presentation: the presented
// content slides up from the bottom edge while the screen beneath shrinks
// into a dimmed card behind it, and a downward drag can dismiss it.
//
// The package never draws. It computes frames, transforms and opacities and
// writes them to host views through small capability interfaces ([View],
// [ScrollView], [Indicator]), so it runs unchanged against a real toolkit or
// the fakes in pkg/testing. Animations are frame-driven by
// animation.StepTickers and all methods must be called from the UI
// goroutine.
//
// # Usage
//
//	cfg := card.NewConfig(card.HostMetrics{SafeAreaTop: 47, DisplayScale: 3})
//	tr := card.New(host, cfg)
//	tr.Present(nil)
//	// each layout pass
//	tr.ContainerDidLayout()
package card

import (
	"fmt"
	"time"

	"github.com/go-drift/cardsheet/pkg/animation"
	"github.com/go-drift/cardsheet/pkg/errors"
	"github.com/go-drift/cardsheet/pkg/gestures"
	"github.com/go-drift/cardsheet/pkg/graphics"
)

// Phase is the presentation lifecycle phase.
type Phase int

const (
	PhaseDetached Phase = iota
	PhasePresenting
	PhasePresented
	PhaseDismissing
)

func (p Phase) String() string {
	switch p {
	case PhaseDetached:
		return "detached"
	case PhasePresenting:
		return "presenting"
	case PhasePresented:
		return "presented"
	case PhaseDismissing:
		return "dismissing"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Transition coordinates one presentation of a card over a presenting view.
type Transition struct {
	host *Host
	cfg  *Config

	arena      *gestures.GestureArena
	animator   *Animator
	machine    *DismissalMachine
	arbiter    *Arbiter
	tap        *gestures.TapRecognizer
	tapHost    GestureHost
	handleTap  *gestures.TapRecognizer
	background *animation.AnimationController

	phase          Phase
	size           graphics.Size
	scroll         ScrollView
	pendingPresent func(bool)
	hasPending     bool
	dismissDone    []func(bool)
	lastClamp      *errors.RangeError
}

// New creates a transition for host. A nil cfg uses defaults derived from
// the container's safe area.
func New(host *Host, cfg *Config) *Transition {
	if cfg == nil {
		var safeTop float64
		if host.Container != nil {
			safeTop = host.Container.SafeAreaTop()
		}
		cfg = NewConfig(HostMetrics{SafeAreaTop: safeTop})
	}
	t := &Transition{
		host:     host,
		cfg:      cfg,
		animator: NewAnimator(host.Presented, PresentDuration),
	}
	t.machine = newDismissalMachine(cfg, host)
	t.machine.baseScale = t.baseScale
	t.machine.commit = t.requestDismiss
	t.arbiter = NewArbiter(host.Arena, host.Listeners.shouldStart, DragHandlers{
		Begin:  t.machine.Begin,
		Change: func(_ DragSource, y float64) { t.machine.Change(y) },
		End:    func(_ DragSource, y float64) { t.machine.End(y) },
		Cancel: func(DragSource) { t.machine.Cancel() },
	})
	t.arena = t.arbiter.Arena()
	t.machine.scroll = t.arbiter.ScrollView
	t.machine.baseline = t.arbiter.Baseline
	return t
}

// Config returns the live configuration.
func (t *Transition) Config() *Config { return t.cfg }

// Phase returns the lifecycle phase.
func (t *Transition) Phase() Phase { return t.phase }

// Machine returns the interactive dismissal machine.
func (t *Transition) Machine() *DismissalMachine { return t.machine }

// Animator returns the presented frame animator.
func (t *Transition) Animator() *Animator { return t.animator }

// Arbiter returns the gesture arbiter.
func (t *Transition) Arbiter() *Arbiter { return t.arbiter }

// Arena returns the arena the transition's recognizers compete in.
func (t *Transition) Arena() *gestures.GestureArena { return t.arena }

// containerSize returns the container size, or false when there is no
// container or it has not been laid out yet.
func (t *Transition) containerSize() (graphics.Size, bool) {
	if t.host.Container == nil || t.host.Presented == nil {
		return graphics.Size{}, false
	}
	size := t.host.Container.Bounds()
	if size.IsEmpty() {
		return graphics.Size{}, false
	}
	return size, true
}

// frame computes the presented frame and reports a custom height clamp
// once per distinct offending value.
func (t *Transition) frame(size graphics.Size) graphics.Rect {
	rect, clamp := PresentedFrame(size, t.cfg)
	if clamp == nil {
		t.lastClamp = nil
		return rect
	}
	if t.lastClamp == nil || t.lastClamp.Value != clamp.Value || t.lastClamp.Max != clamp.Max {
		errors.Report(&errors.TransitionError{
			Op:   "card.PresentedFrame",
			Kind: errors.KindConfig,
			Err:  clamp,
		})
	}
	t.lastClamp = clamp
	return rect
}

func (t *Transition) baseScale() float64 {
	size, ok := t.containerSize()
	if !ok {
		return 1
	}
	return PresentingScaleFactor(size, t.cfg)
}

// Present animates the card in from below. done is called once the card has
// settled. Without a laid-out container Present is deferred until the next
// ContainerDidLayout. Calling it while already presented does nothing.
func (t *Transition) Present(done func(finished bool)) {
	if t.phase != PhaseDetached {
		return
	}
	size, ok := t.containerSize()
	if !ok {
		t.pendingPresent = done
		t.hasPending = true
		return
	}
	t.pendingPresent = nil
	t.hasPending = false
	t.phase = PhasePresenting
	t.size = size

	t.captureSnapshot(size)
	if r, ok := t.host.Presented.(CornerRounder); ok {
		r.SetCornerRadius(t.cfg.CornerRadius)
	}
	if ind := t.host.Indicator; ind != nil {
		ind.SetStyle(IndicatorArrow)
		ind.SetHidden(!t.cfg.ShowIndicator)
		if c, ok := ind.(ColoredIndicator); ok {
			c.SetColor(t.cfg.IndicatorColor)
		}
		if t.cfg.ShowIndicator {
			t.attachHandleTap()
		}
	}
	if v := t.host.Dimming; v != nil {
		v.SetFrame(graphics.RectFromSize(size))
		v.SetOpacity(0)
	}
	t.host.Presented.SetTransform(graphics.IdentityTransform)

	target := t.frame(size)
	t.animateBackground(PresentingScaleFactor(size, t.cfg), t.cfg.DimAlpha, PresentDuration)
	t.animator.Start(OffscreenFrame(size, target), target, func(finished bool) {
		t.didPresent()
		if done != nil {
			errors.Guard("card.Transition.Present", func() { done(finished) })
		}
	})
}

func (t *Transition) captureSnapshot(size graphics.Size) {
	snap := t.host.Snapshot
	if snap == nil {
		return
	}
	snap.SetFrame(graphics.RectFromSize(size))
	snap.SetTransform(graphics.IdentityTransform)
	t.refreshSnapshot()
}

// refreshSnapshot renders the presenting view into the snapshot view again,
// leaving its frame and transform alone.
func (t *Transition) refreshSnapshot() {
	snap := t.host.Snapshot
	if snap == nil {
		return
	}
	src, ok := t.host.Presenting.(Snapshotter)
	if !ok || src == nil {
		return
	}
	img, err := src.Snapshot()
	if err != nil {
		errors.Report(&errors.TransitionError{
			Op:   "card.Transition.refreshSnapshot",
			Kind: errors.KindSnapshot,
			Err:  err,
		})
		return
	}
	if iv, ok := snap.(ImageView); ok {
		iv.SetImage(img)
	}
}

// UpdatePresentingController re-captures the presenting view into the
// background snapshot. Call it after the presenting content changed while
// the card is up.
func (t *Transition) UpdatePresentingController() {
	if t.phase != PhasePresenting && t.phase != PhasePresented {
		return
	}
	t.refreshSnapshot()
}

func (t *Transition) didPresent() {
	t.phase = PhasePresented
	t.arbiter.AttachPresented(t.host.Presented)
	t.arbiter.Bind(t.scroll)
	if t.cfg.TapToDismissEnabled {
		t.attachTap()
	}
}

func (t *Transition) attachTap() {
	host, ok := t.host.Dimming.(GestureHost)
	if !ok || host == nil {
		return
	}
	tap := gestures.NewTapRecognizer(t.arena)
	tap.OnTap = func(graphics.Offset) { t.requestDismiss() }
	t.tap = tap
	t.tapHost = host
	host.AddRecognizer(tap)
}

func (t *Transition) detachTap() {
	if t.tap != nil {
		t.tapHost.RemoveRecognizer(t.tap)
		t.tap.Dispose()
		t.tap = nil
		t.tapHost = nil
	}
	if t.handleTap != nil {
		if host, ok := t.host.Indicator.(GestureHost); ok {
			host.RemoveRecognizer(t.handleTap)
		}
		t.handleTap.Dispose()
		t.handleTap = nil
	}
}

// attachHandleTap lets a tap on the indicator dismiss the card.
func (t *Transition) attachHandleTap() {
	host, ok := t.host.Indicator.(GestureHost)
	if !ok || host == nil || t.handleTap != nil {
		return
	}
	tap := gestures.NewTapRecognizer(t.arena)
	tap.OnTap = func(graphics.Offset) { t.requestDismiss() }
	t.handleTap = tap
	host.AddRecognizer(tap)
}

// animateBackground tweens the snapshot scale and dimming opacity from
// their current values over d.
func (t *Transition) animateBackground(toScale, toAlpha float64, d time.Duration) {
	if t.background != nil {
		t.background.Dispose()
	}
	c := animation.NewAnimationController(d)
	c.Curve = animation.CriticallyDampedCurve(0)

	var scale *animation.Tween[graphics.Transform]
	if v := t.host.Snapshot; v != nil {
		scale = animation.TweenTransform(v.Transform(), graphics.ScaleTransform(toScale))
	}
	var alpha *animation.Tween[float64]
	if v := t.host.Dimming; v != nil {
		alpha = animation.TweenFloat64(v.Opacity(), toAlpha)
	}
	c.AddListener(func() {
		if scale != nil {
			t.host.Snapshot.SetTransform(scale.Transform(c))
		}
		if alpha != nil {
			t.host.Dimming.SetOpacity(alpha.Transform(c))
		}
	})
	c.AddStatusListener(func(s animation.AnimationStatus) {
		if s == animation.AnimationCompleted && t.background == c {
			c.Dispose()
			t.background = nil
		}
	})
	t.background = c
	c.Forward()
}

// ContainerDidLayout recomputes the presented frame after a host layout
// pass. A deferred Present starts here. An animation in flight is
// retargeted; a settled card animates to the new frame over
// RelayoutDuration. A drag or spring-back keeps running on top, since it
// only moves the card through its transform. A size change re-captures the
// background snapshot.
func (t *Transition) ContainerDidLayout() {
	size, ok := t.containerSize()
	if !ok {
		return
	}
	if t.phase == PhaseDetached {
		if t.hasPending {
			t.Present(t.pendingPresent)
		}
		return
	}
	if t.phase == PhaseDismissing {
		return
	}
	if v := t.host.Snapshot; v != nil {
		v.SetFrame(graphics.RectFromSize(size))
	}
	if v := t.host.Dimming; v != nil {
		v.SetFrame(graphics.RectFromSize(size))
	}
	if size != t.size {
		t.size = size
		t.refreshSnapshot()
	}
	target := t.frame(size)
	if t.animator.InFlight() {
		if !target.ApproxEqual(t.animator.Target()) {
			t.animator.Retarget(target)
			if t.phase == PhasePresenting {
				t.animateBackground(PresentingScaleFactor(size, t.cfg), t.cfg.DimAlpha, t.animator.Remaining())
			}
		}
		return
	}
	if !target.ApproxEqual(t.host.Presented.Frame()) {
		t.animator.AnimateTo(target, RelayoutDuration)
	}
	if t.machine.State() != StateIdle {
		t.machine.refresh()
		return
	}
	if t.background == nil && t.host.Snapshot != nil {
		t.host.Snapshot.SetTransform(graphics.ScaleTransform(PresentingScaleFactor(size, t.cfg)))
	}
}

// UpdateCustomHeight changes the content height and animates the card to
// the new frame, retargeting an animation in flight. A settled card also
// asks the container for a layout pass. Outside a presentation the value is
// stored for the next Present.
func (t *Transition) UpdateCustomHeight(h float64) {
	t.cfg.SetCustomHeight(h)
	if t.phase != PhasePresenting && t.phase != PhasePresented {
		return
	}
	size, ok := t.containerSize()
	if !ok {
		return
	}
	target := t.frame(size)
	if t.animator.InFlight() {
		t.animator.Retarget(target)
		return
	}
	if target.ApproxEqual(t.host.Presented.Frame()) {
		return
	}
	t.host.Container.SetNeedsLayout()
	t.animator.Retarget(target)
}

// SetScrollView binds the scroll view nested in the presented content so a
// drag that starts in it at the top of its content dismisses the card. It
// may be called again whenever the content swaps scroll views; nil unbinds.
func (t *Transition) SetScrollView(sv ScrollView) {
	t.scroll = sv
	if t.phase == PhasePresented {
		t.arbiter.Bind(sv)
	}
}

// requestDismiss is the machine's commit: the host sink decides, falling
// back to a direct dismissal.
func (t *Transition) requestDismiss() {
	if t.host.Dismiss == nil {
		t.Dismiss(nil)
		return
	}
	if !errors.Guard("card.DismissSink.RequestDismiss", t.host.Dismiss.RequestDismiss) {
		t.Dismiss(nil)
	}
}

// Dismiss animates the card out below the container and restores the
// background. done is called once the presentation is fully detached. A
// Dismiss while already dismissing joins the one in progress.
func (t *Transition) Dismiss(done func(finished bool)) {
	switch t.phase {
	case PhaseDetached:
		if t.hasPending {
			t.pendingPresent = nil
			t.hasPending = false
		}
		if done != nil {
			errors.Guard("card.Transition.Dismiss", func() { done(false) })
		}
		return
	case PhaseDismissing:
		if done != nil {
			t.dismissDone = append(t.dismissDone, done)
		}
		return
	}

	t.phase = PhaseDismissing
	if done != nil {
		t.dismissDone = append(t.dismissDone, done)
	}
	t.host.Listeners.dismissWillBegin()
	t.machine.Latch()
	t.arbiter.Detach()
	t.detachTap()
	if t.host.Indicator != nil {
		t.host.Indicator.SetStyle(IndicatorArrow)
	}

	size, ok := t.containerSize()
	if !ok {
		t.animator.Stop()
		t.didDismiss(false)
		return
	}
	t.animateBackground(1, 0, PresentDuration)
	// A drag translation left on the card is kept; it only pushes the card
	// further out.
	from := t.host.Presented.Frame()
	t.animator.Start(from, OffscreenFrame(size, from), t.didDismiss)
}

func (t *Transition) didDismiss(finished bool) {
	t.phase = PhaseDetached
	t.machine.Finish()
	if t.background != nil {
		t.background.Dispose()
		t.background = nil
	}
	if v := t.host.Snapshot; v != nil {
		v.SetTransform(graphics.IdentityTransform)
	}
	if v := t.host.Dimming; v != nil {
		v.SetOpacity(0)
	}
	if v := t.host.Presented; v != nil {
		v.SetTransform(graphics.IdentityTransform)
	}
	t.host.Listeners.dismissDidEnd()
	pending := t.dismissDone
	t.dismissDone = nil
	for _, fn := range pending {
		errors.Guard("card.Transition.Dismiss", func() { fn(finished) })
	}
}
