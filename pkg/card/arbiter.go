package card

import (
	"math"

	"github.com/go-drift/cardsheet/pkg/gestures"
)

// DragSource identifies which recognizer drives a drag.
type DragSource int

const (
	// SourcePresented is the transition's own pan on the presented view.
	SourcePresented DragSource = iota
	// SourceScroll is the shadow pan attached to the nested scroll view.
	SourceScroll
)

func (s DragSource) String() string {
	if s == SourceScroll {
		return "scroll"
	}
	return "presented"
}

// DragHandlers receive vertical drag streams from the arbiter.
type DragHandlers struct {
	Begin  func(source DragSource, translationY float64) bool
	Change func(source DragSource, translationY float64)
	End    func(source DragSource, translationY float64)
	Cancel func(source DragSource)
}

// BaselineAdjustment is the offset subtracted from a scroll-originated drag
// so the card only starts moving once the content has reached its top:
// max(offsetY + insetTop - translationY, 0).
func BaselineAdjustment(offsetY, insetTop, translationY float64) float64 {
	return math.Max(offsetY+insetTop-translationY, 0)
}

// Arbiter owns the transition's pan recognizers and decides who drives a
// vertical drag. The presented pan competes exclusively. The shadow pan on
// the nested scroll view recognizes together with the scroll view's native
// pan, so content scrolling and the dismiss drag coexist.
type Arbiter struct {
	arena       *gestures.GestureArena
	shouldStart func() bool
	handlers    DragHandlers

	presentedHost GestureHost
	presentedPan  *gestures.PanRecognizer
	presented     stream

	scroll       ScrollView
	shadow       *gestures.PanRecognizer
	shadowStream stream

	hostPolicy func(winner, member gestures.ArenaMember) bool
}

// stream tracks one recognizer's current drag.
type stream struct {
	consulted bool
	allowed   bool
	active    bool
}

// NewArbiter installs the arbiter's simultaneous-recognition policy on
// arena. A policy already present on the arena keeps deciding for pairs
// that do not involve the arbiter's recognizers.
func NewArbiter(arena *gestures.GestureArena, shouldStart func() bool, handlers DragHandlers) *Arbiter {
	if arena == nil {
		arena = gestures.NewGestureArena()
	}
	a := &Arbiter{
		arena:       arena,
		shouldStart: shouldStart,
		handlers:    handlers,
		hostPolicy:  arena.Simultaneous,
	}
	arena.Simultaneous = a.policy
	return a
}

// Arena returns the arena the arbiter's recognizers compete in.
func (a *Arbiter) Arena() *gestures.GestureArena {
	return a.arena
}

func (a *Arbiter) policy(winner, member gestures.ArenaMember) bool {
	if a.owns(winner) || a.owns(member) {
		return a.ShouldRecognizeSimultaneously(winner, member)
	}
	if a.hostPolicy != nil {
		return a.hostPolicy(winner, member)
	}
	return false
}

func (a *Arbiter) owns(m gestures.ArenaMember) bool {
	if m == nil {
		return false
	}
	if a.presentedPan != nil && m == gestures.ArenaMember(a.presentedPan) {
		return true
	}
	return a.shadow != nil && m == gestures.ArenaMember(a.shadow)
}

// ShouldBegin asks the host predicate whether an interactive dismissal may
// start. It defaults to true.
func (a *Arbiter) ShouldBegin(gestures.ArenaMember) bool {
	if a.shouldStart == nil {
		return true
	}
	return a.shouldStart()
}

// ShouldRecognizeSimultaneously is true only for the bound scroll view's
// native pan paired with the shadow pan on that same scroll view.
func (a *Arbiter) ShouldRecognizeSimultaneously(x, y gestures.ArenaMember) bool {
	if a.scroll == nil || a.shadow == nil || x == nil || y == nil {
		return false
	}
	native := a.scroll.PanRecognizer()
	if native == nil {
		return false
	}
	shadow := gestures.ArenaMember(a.shadow)
	return (x == native && y == shadow) || (x == shadow && y == native)
}

// AttachPresented installs the presented pan on view. Views that cannot
// host recognizers are left alone.
func (a *Arbiter) AttachPresented(view View) {
	host, ok := view.(GestureHost)
	if !ok || host == nil {
		return
	}
	a.DetachPresented()
	pan := gestures.NewPanRecognizer(a.arena)
	a.presented = stream{}
	a.wire(pan, SourcePresented, &a.presented)
	a.presentedHost = host
	a.presentedPan = pan
	host.AddRecognizer(pan)
}

// DetachPresented removes the presented pan.
func (a *Arbiter) DetachPresented() {
	if a.presentedPan == nil {
		return
	}
	if a.presentedHost != nil {
		a.presentedHost.RemoveRecognizer(a.presentedPan)
	}
	a.presentedPan.Dispose()
	a.presentedPan = nil
	a.presentedHost = nil
}

// Bind switches the nested scroll view. The previous shadow pan is removed
// and disposed before a fresh one is attached to sv; a drag it was driving
// is cancelled. Passing nil unbinds.
func (a *Arbiter) Bind(sv ScrollView) {
	if sv == a.scroll && a.shadow != nil {
		return
	}
	a.unbind()
	if sv == nil {
		return
	}
	shadow := gestures.NewPanRecognizer(a.arena)
	a.shadowStream = stream{}
	a.wire(shadow, SourceScroll, &a.shadowStream)
	a.scroll = sv
	a.shadow = shadow
	sv.AddRecognizer(shadow)
}

func (a *Arbiter) unbind() {
	if a.shadow != nil {
		if a.scroll != nil {
			a.scroll.RemoveRecognizer(a.shadow)
		}
		wasActive := a.shadowStream.active
		a.shadow.Dispose()
		a.shadow = nil
		a.shadowStream = stream{}
		if wasActive && a.handlers.Cancel != nil {
			a.handlers.Cancel(SourceScroll)
		}
	}
	a.scroll = nil
}

// Detach removes every recognizer the arbiter installed.
func (a *Arbiter) Detach() {
	a.DetachPresented()
	a.unbind()
}

// ScrollView returns the bound scroll view, or nil.
func (a *Arbiter) ScrollView() ScrollView {
	return a.scroll
}

// Baseline returns the baseline adjustment for a scroll-originated drag
// starting at translationY. It is 0 when no scroll view is bound.
func (a *Arbiter) Baseline(translationY float64) float64 {
	if a.scroll == nil {
		return 0
	}
	return BaselineAdjustment(a.scroll.ContentOffset().Y, a.scroll.ContentInset().Top, translationY)
}

func (a *Arbiter) wire(pan *gestures.PanRecognizer, source DragSource, s *stream) {
	pan.ShouldBegin = func(*gestures.PanRecognizer) bool {
		s.consulted = true
		s.allowed = a.ShouldBegin(pan)
		return s.allowed
	}
	pan.OnStart = func(d gestures.DragStartDetails) {
		// A pan accepted alongside the scroll view's native pan never went
		// through ShouldBegin.
		if !s.consulted {
			s.allowed = a.ShouldBegin(pan)
		}
		s.consulted = false
		if !s.allowed || a.handlers.Begin == nil {
			return
		}
		s.active = a.handlers.Begin(source, d.Translation.Y)
	}
	pan.OnUpdate = func(d gestures.DragUpdateDetails) {
		if s.active && a.handlers.Change != nil {
			a.handlers.Change(source, d.Translation.Y)
		}
	}
	pan.OnEnd = func(d gestures.DragEndDetails) {
		if !s.active {
			return
		}
		s.active = false
		if a.handlers.End != nil {
			a.handlers.End(source, d.Translation.Y)
		}
	}
	pan.OnCancel = func() {
		if !s.active {
			return
		}
		s.active = false
		if a.handlers.Cancel != nil {
			a.handlers.Cancel(source)
		}
	}
}
