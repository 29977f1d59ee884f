package card

import (
	"fmt"
	"math"
	"time"

	"github.com/go-drift/cardsheet/pkg/animation"
	"github.com/go-drift/cardsheet/pkg/graphics"
)

// RestoreDuration is how long a cancelled drag takes to spring back.
const RestoreDuration = 600 * time.Millisecond

// restoreVelocity is the spring-back's initial velocity in units of the
// restore distance per second.
const restoreVelocity = 1.0

// DismissalState is the interactive dismissal machine's state.
//
//	Idle ──Begin──► Armed ──Change──► Tracking ──End(>= threshold)──► Completing
//	 ▲                │                  │
//	 │                └──────End/Cancel──┴──► Restoring ──settled──► Idle
//	 └──────────────────────────────────────────── Finish
type DismissalState int

const (
	StateIdle DismissalState = iota
	StateArmed
	StateTracking
	StateCompleting
	StateRestoring
)

func (s DismissalState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateArmed:
		return "armed"
	case StateTracking:
		return "tracking"
	case StateCompleting:
		return "completing"
	case StateRestoring:
		return "restoring"
	default:
		return fmt.Sprintf("DismissalState(%d)", int(s))
	}
}

// GestureSession holds the state of one drag, from begin to end or cancel.
type GestureSession struct {
	source                   DragSource
	currentTranslation       float64
	scrollBaselineAdjustment float64
	isDismissing             bool
}

// Source returns the recognizer driving the drag.
func (s *GestureSession) Source() DragSource { return s.source }

// CurrentTranslation returns the last friction-adjusted translation applied.
func (s *GestureSession) CurrentTranslation() float64 { return s.currentTranslation }

// ScrollBaselineAdjustment returns the baseline captured at begin.
func (s *GestureSession) ScrollBaselineAdjustment() float64 { return s.scrollBaselineAdjustment }

// IsDismissing reports whether the drag has committed to a dismissal. Once
// set it is never cleared; later changes are ignored.
func (s *GestureSession) IsDismissing() bool { return s.isDismissing }

// DismissalMachine turns drag streams into card, snapshot and dimming
// updates, and decides on release whether to dismiss or spring back.
type DismissalMachine struct {
	cfg       *Config
	host      *Host
	scroll    func() ScrollView
	baseScale func() float64
	baseline  func(translationY float64) float64
	commit    func()

	state   DismissalState
	session *GestureSession
	restore *restoreRun
}

type restoreRun struct {
	ticker *animation.Ticker
	sim    *animation.SpringSimulation
	last   time.Duration
}

func newDismissalMachine(cfg *Config, host *Host) *DismissalMachine {
	return &DismissalMachine{
		cfg:       cfg,
		host:      host,
		scroll:    func() ScrollView { return nil },
		baseScale: func() float64 { return 1 },
		baseline:  func(float64) float64 { return 0 },
		commit:    func() {},
	}
}

// State returns the current state.
func (m *DismissalMachine) State() DismissalState { return m.state }

// Session returns the live gesture session, or nil between drags.
func (m *DismissalMachine) Session() *GestureSession { return m.session }

// IsDismissing reports whether the machine has latched into dismissal.
func (m *DismissalMachine) IsDismissing() bool {
	return m.session != nil && m.session.isDismissing
}

// Begin starts tracking a drag from source whose recognizer reported
// translationY at recognition. It returns false when the drag is refused:
// swipe-to-dismiss is off, a dismissal is already committed, or another
// drag is being tracked.
func (m *DismissalMachine) Begin(source DragSource, translationY float64) bool {
	if !m.cfg.SwipeToDismissEnabled {
		return false
	}
	switch m.state {
	case StateCompleting, StateArmed, StateTracking:
		return false
	case StateRestoring:
		m.haltRestore()
	}

	m.host.Listeners.interactiveStart()

	m.session = &GestureSession{source: source}
	if source == SourceScroll {
		m.session.scrollBaselineAdjustment = m.baseline(translationY)
	}
	if m.host.Indicator != nil {
		m.host.Indicator.SetStyle(IndicatorLine)
	}
	removeAnimations(m.host.Presenting)
	m.state = StateArmed
	return true
}

// Change applies a drag update. It is ignored once the session has latched
// into dismissal.
func (m *DismissalMachine) Change(translationY float64) {
	s := m.session
	if s == nil || s.isDismissing {
		return
	}
	if m.state != StateArmed && m.state != StateTracking {
		return
	}
	m.state = StateTracking

	raw := translationY - s.scrollBaselineAdjustment
	if s.source == SourceScroll {
		// Content above its top edge scrolls; the card waits.
		raw = math.Max(raw, 0)
	}
	prev := s.currentTranslation
	t := FrictionTranslation(raw, m.cfg)
	s.currentTranslation = t
	m.apply(t)

	if s.source == SourceScroll && t != prev {
		m.compensateScroll(t - prev)
	}
}

// compensateScroll shifts the nested content by delta while the scroll
// view's own pan is tracking, so the content stays put under the finger.
func (m *DismissalMachine) compensateScroll(delta float64) {
	sv := m.scroll()
	if sv == nil || !nativePanTracking(sv) {
		return
	}
	off := sv.ContentOffset()
	off.Y += delta
	sv.SetContentOffset(off)
}

// nativePanTracking reports whether sv's own pan is mid-gesture. Recognizers
// that cannot tell are assumed to be tracking.
func nativePanTracking(sv ScrollView) bool {
	native := sv.PanRecognizer()
	if native == nil {
		return false
	}
	if a, ok := native.(ActivityReporter); ok {
		return a.IsActive()
	}
	return true
}

// End finishes the drag. A translation at or past the dismiss threshold
// latches the session and requests dismissal; anything shorter springs the
// card back.
func (m *DismissalMachine) End(translationY float64) {
	s := m.session
	if s == nil || s.isDismissing {
		return
	}
	if m.state != StateArmed && m.state != StateTracking {
		return
	}
	m.Change(translationY)

	if s.currentTranslation >= m.cfg.DismissThreshold {
		s.isDismissing = true
		m.state = StateCompleting
		m.host.Listeners.interactiveFinish(true)
		m.commit()
		return
	}
	m.host.Listeners.interactiveFinish(false)
	m.startRestore()
}

// Cancel abandons the drag and springs the card back.
func (m *DismissalMachine) Cancel() {
	s := m.session
	if s == nil || s.isDismissing {
		return
	}
	if m.state != StateArmed && m.state != StateTracking {
		return
	}
	m.host.Listeners.interactiveFinish(false)
	m.startRestore()
}

// Latch commits to dismissal outside of a drag, for example when the host
// dismisses programmatically mid-drag or mid-restore.
func (m *DismissalMachine) Latch() {
	m.haltRestore()
	if m.session == nil {
		m.session = &GestureSession{}
	}
	m.session.isDismissing = true
	m.state = StateCompleting
}

// refresh re-renders the current drag or spring-back, for example after
// the container changed size under it.
func (m *DismissalMachine) refresh() {
	switch {
	case m.restore != nil:
		m.apply(m.restore.sim.Position())
	case m.session != nil && !m.session.isDismissing:
		m.apply(m.session.currentTranslation)
	}
}

// Finish drops the session once the presentation is gone.
func (m *DismissalMachine) Finish() {
	m.haltRestore()
	m.session = nil
	m.state = StateIdle
}

func (m *DismissalMachine) startRestore() {
	from := m.session.currentTranslation
	m.session = nil
	if m.host.Indicator != nil {
		m.host.Indicator.SetStyle(IndicatorArrow)
	}
	m.state = StateRestoring

	run := &restoreRun{
		sim: animation.NewSpringSimulation(animation.CriticalSpring(RestoreDuration), from, -from*restoreVelocity, 0),
	}
	run.ticker = animation.NewTicker(func(elapsed time.Duration) {
		if m.restore != run {
			return
		}
		done := run.sim.Step((elapsed - run.last).Seconds())
		run.last = elapsed
		if elapsed >= RestoreDuration {
			run.sim.Finish()
			done = true
		}
		m.apply(run.sim.Position())
		if done {
			run.ticker.Stop()
			m.restore = nil
			m.state = StateIdle
		}
	})
	m.restore = run
	if run.sim.IsDone() {
		m.apply(0)
		m.restore = nil
		m.state = StateIdle
		return
	}
	run.ticker.Start()
}

// haltRestore stops a spring-back in progress and puts every view back at
// rest so a new drag starts from identity.
func (m *DismissalMachine) haltRestore() {
	run := m.restore
	if run == nil {
		return
	}
	m.restore = nil
	run.ticker.Stop()
	removeAnimations(m.host.Presented)
	removeAnimations(m.host.Snapshot)
	m.apply(0)
	if m.state == StateRestoring {
		m.state = StateIdle
	}
}

// apply renders a translation onto the presented card and its background.
func (m *DismissalMachine) apply(t float64) {
	if v := m.host.Presented; v != nil {
		v.SetTransform(graphics.TranslationTransform(0, t))
	}
	if v := m.host.Snapshot; v != nil {
		scale := m.baseScale()
		if m.cfg.ScaleEnabled {
			scale *= SnapshotScale(t)
		}
		v.SetTransform(graphics.ScaleTransform(scale))
	}
	if v := m.host.Dimming; v != nil {
		v.SetOpacity(DimAlphaFor(t, m.cfg.DimAlpha))
	}
}

func removeAnimations(v View) {
	if r, ok := v.(AnimationRemover); ok && r != nil {
		r.RemoveAllAnimations()
	}
}
