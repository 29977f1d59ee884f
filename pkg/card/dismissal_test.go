package card_test

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/go-drift/cardsheet/pkg/card"
	"github.com/go-drift/cardsheet/pkg/gestures"
	"github.com/go-drift/cardsheet/pkg/graphics"
	drifttest "github.com/go-drift/cardsheet/pkg/testing"
)

func presentedTester(t *testing.T, opts ...card.Option) *drifttest.HostTester {
	t.Helper()
	tester := drifttest.NewHostTesterWithT(t, opts...)
	if err := tester.Present(); err != nil {
		t.Fatal(err)
	}
	return tester
}

func translationOf(v *drifttest.FakeView) float64 {
	return v.Transform().TranslateY
}

func TestDismissal_ThresholdIsInclusive(t *testing.T) {
	tests := []struct {
		name        string
		translation float64
		dismiss     bool
	}{
		{"at threshold", 240, true},
		{"just below", 239.999, false},
		{"well past", 400, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tester := presentedTester(t, card.WithFriction(false), card.WithDisplayScale(1000))
			m := tester.Transition.Machine()

			if !m.Begin(card.SourcePresented, 0) {
				t.Fatal("Begin refused")
			}
			m.Change(tt.translation)
			m.End(tt.translation)

			if got := m.IsDismissing(); got != tt.dismiss {
				t.Errorf("dismissing = %v, want %v", got, tt.dismiss)
			}
			want := "interactiveFinish(false)"
			if tt.dismiss {
				want = "interactiveFinish(true)"
			}
			if tester.Host.Log.Count(want) != 1 {
				t.Errorf("events = %v, want %s", tester.Host.Log.Events, want)
			}
		})
	}
}

func TestDismissal_LatchIgnoresLaterChanges(t *testing.T) {
	tester := presentedTester(t, card.WithFriction(false))
	m := tester.Transition.Machine()
	presented := tester.Host.Presented

	m.Begin(card.SourcePresented, 0)
	m.Change(300)
	m.End(300)
	if !m.IsDismissing() || m.State() != card.StateCompleting {
		t.Fatalf("state = %v dismissing=%v, want latched completing", m.State(), m.IsDismissing())
	}
	before := presented.Transform()
	dim := tester.Host.Dimming.Opacity()

	m.Change(20)
	m.End(20)
	m.Cancel()

	if presented.Transform() != before {
		t.Errorf("transform changed after latch: %v -> %v", before, presented.Transform())
	}
	if tester.Host.Dimming.Opacity() != dim {
		t.Error("dimming changed after latch")
	}
	if !m.IsDismissing() {
		t.Error("latch must never clear during the session")
	}
	if tester.Host.Log.Count("interactiveFinish(true)") != 1 || tester.Host.Log.Count("interactiveFinish(false)") != 0 {
		t.Errorf("events = %v", tester.Host.Log.Events)
	}
}

func TestDismissal_ChangeAppliesEffects(t *testing.T) {
	tester := presentedTester(t)
	m := tester.Transition.Machine()
	h := tester.Host

	m.Begin(card.SourcePresented, 0)
	if m.State() != card.StateArmed {
		t.Fatalf("state = %v, want armed", m.State())
	}
	if h.Indicator.Style != card.IndicatorLine {
		t.Error("indicator should flatten while dragging")
	}
	if h.Presenting.AnimationRemovals != 1 {
		t.Errorf("presenting animation removals = %d, want 1", h.Presenting.AnimationRemovals)
	}

	m.Change(50)

	if m.State() != card.StateTracking {
		t.Errorf("state = %v, want tracking", m.State())
	}
	if got := translationOf(h.Presented); got != 25 {
		t.Errorf("translation = %v, want 25", got)
	}
	base := card.PresentingScaleFactor(h.Container.Size, tester.Transition.Config())
	wantScale := base * card.SnapshotScale(25)
	if got := h.Snapshot.Transform().ScaleX; math.Abs(got-wantScale) > 1e-12 {
		t.Errorf("snapshot scale = %v, want %v", got, wantScale)
	}
	if got, want := h.Dimming.Opacity(), card.DimAlphaFor(25, card.DefaultDimAlpha); got != want {
		t.Errorf("dim = %v, want %v", got, want)
	}
}

func TestDismissal_UpwardDrag(t *testing.T) {
	tests := []struct {
		name     string
		friction bool
		want     float64
	}{
		{"friction rubber-bands upward", true, -100},
		{"without friction the card stays put", false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tester := presentedTester(t, card.WithFriction(tt.friction))
			m := tester.Transition.Machine()

			m.Begin(card.SourcePresented, 0)
			m.Change(-200)
			if got := translationOf(tester.Host.Presented); got != tt.want {
				t.Errorf("translation = %v, want %v", got, tt.want)
			}

			m.End(-200)
			if m.IsDismissing() {
				t.Fatal("an upward drag must not dismiss")
			}
			if err := tester.PumpAndSettle(2 * time.Second); err != nil {
				t.Fatal(err)
			}
			if m.State() != card.StateIdle {
				t.Errorf("state = %v, want idle", m.State())
			}
			if !tester.Host.Presented.Transform().IsIdentity() {
				t.Errorf("transform = %v, want identity after the spring-back", tester.Host.Presented.Transform())
			}
		})
	}
}

func TestDismissal_ThresholdUsesFrictionAdjustedTranslation(t *testing.T) {
	tests := []struct {
		raw     float64
		dismiss bool
	}{
		// 760 maps to about 166 on screen, short of the 240 threshold.
		{760, false},
		{1600, true},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.raw), func(t *testing.T) {
			tester := presentedTester(t)
			m := tester.Transition.Machine()

			m.Begin(card.SourcePresented, 0)
			m.Change(tt.raw)
			m.End(tt.raw)

			if got := m.IsDismissing(); got != tt.dismiss {
				t.Errorf("dismissing = %v, want %v (on screen %v)",
					got, tt.dismiss, card.FrictionTranslation(tt.raw, tester.Transition.Config()))
			}
		})
	}
}

func TestDismissal_ScaleDisabledKeepsSnapshot(t *testing.T) {
	tester := presentedTester(t, card.WithScale(false))
	m := tester.Transition.Machine()

	m.Begin(card.SourcePresented, 0)
	m.Change(200)

	if got := tester.Host.Snapshot.Transform(); !got.IsIdentity() {
		t.Errorf("snapshot transform = %v, want identity", got)
	}
}

func TestDismissal_SpringsBack(t *testing.T) {
	tester := presentedTester(t)
	m := tester.Transition.Machine()
	h := tester.Host

	m.Begin(card.SourcePresented, 0)
	m.Change(100)
	m.End(100)

	if m.State() != card.StateRestoring {
		t.Fatalf("state = %v, want restoring", m.State())
	}
	if m.Session() != nil {
		t.Error("session should end with the gesture")
	}
	if h.Indicator.Style != card.IndicatorArrow {
		t.Error("indicator should return to the arrow")
	}

	tester.PumpFor(300 * time.Millisecond)
	mid := translationOf(h.Presented)
	if mid <= 0 || mid >= 50 {
		t.Errorf("mid-restore translation = %v, want between 0 and 50", mid)
	}

	tester.PumpFor(300 * time.Millisecond)

	if m.State() != card.StateIdle {
		t.Errorf("state = %v, want idle", m.State())
	}
	if !h.Presented.Transform().IsIdentity() {
		t.Errorf("presented transform = %v, want identity", h.Presented.Transform())
	}
	if got := h.Dimming.Opacity(); got != card.DefaultDimAlpha {
		t.Errorf("dim = %v, want %v", got, card.DefaultDimAlpha)
	}
	if tester.Transition.Phase() != card.PhasePresented {
		t.Errorf("phase = %v, want presented", tester.Transition.Phase())
	}
}

func TestDismissal_BeginDuringRestoreSnapsToIdentity(t *testing.T) {
	tester := presentedTester(t)
	m := tester.Transition.Machine()
	h := tester.Host

	m.Begin(card.SourcePresented, 0)
	m.Change(100)
	m.End(100)
	tester.PumpFor(100 * time.Millisecond)
	removals := h.Presented.AnimationRemovals

	if !m.Begin(card.SourcePresented, 0) {
		t.Fatal("a new drag should interrupt the spring-back")
	}

	if !h.Presented.Transform().IsIdentity() {
		t.Errorf("transform = %v, want identity before the new drag applies", h.Presented.Transform())
	}
	if h.Presented.AnimationRemovals != removals+1 {
		t.Error("the spring-back should be removed from the presented view")
	}

	// The halted spring never touches the card again.
	m.Change(40)
	tester.PumpFor(time.Second)
	if got := translationOf(h.Presented); got != 20 {
		t.Errorf("translation = %v, want 20", got)
	}
}

func TestDismissal_CancelRestores(t *testing.T) {
	tester := presentedTester(t)
	m := tester.Transition.Machine()

	m.Begin(card.SourcePresented, 0)
	m.Change(80)
	m.Cancel()

	if m.State() != card.StateRestoring {
		t.Errorf("state = %v, want restoring", m.State())
	}
	if err := tester.PumpAndSettle(2 * time.Second); err != nil {
		t.Fatal(err)
	}
	if m.State() != card.StateIdle {
		t.Errorf("state = %v, want idle", m.State())
	}
}

func TestDismissal_SwipeDisabledRefuses(t *testing.T) {
	tester := presentedTester(t, card.WithSwipeToDismiss(false))
	m := tester.Transition.Machine()

	if m.Begin(card.SourcePresented, 0) {
		t.Error("Begin should refuse when swipe-to-dismiss is off")
	}
	m.Change(300)
	if got := translationOf(tester.Host.Presented); got != 0 {
		t.Errorf("translation = %v, want 0", got)
	}
	if len(tester.Host.Log.Events) != 0 {
		t.Errorf("events = %v, want none", tester.Host.Log.Events)
	}
}

func TestDismissal_OneDragAtATime(t *testing.T) {
	tester := presentedTester(t)
	m := tester.Transition.Machine()

	m.Begin(card.SourcePresented, 0)
	if m.Begin(card.SourceScroll, 0) {
		t.Error("a second drag should be refused while one is tracked")
	}
}

// nativePan stands in for a scroll view's own pan recognizer.
type nativePan struct{ active bool }

func (*nativePan) AcceptGesture(int64) {}
func (*nativePan) RejectGesture(int64) {}
func (p *nativePan) IsActive() bool    { return p.active }

type stubScrollView struct {
	*drifttest.FakeScrollView
	native *nativePan
}

func (s *stubScrollView) PanRecognizer() gestures.ArenaMember { return s.native }

func TestDismissal_ScrollCompensation(t *testing.T) {
	tests := []struct {
		name          string
		nativeActive  bool
		first, second float64
	}{
		{"native pan tracking", true, 50, 30},
		{"native pan idle", false, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tester := presentedTester(t)
			sv := &stubScrollView{
				FakeScrollView: tester.Host.NewScrollView("list", graphics.Rect{Y: 60, Width: 390, Height: 784}),
				native:         &nativePan{active: tt.nativeActive},
			}
			tester.Transition.SetScrollView(sv)
			m := tester.Transition.Machine()

			m.Begin(card.SourceScroll, 0)
			m.Change(100)
			if got := sv.ContentOffset().Y; got != tt.first {
				t.Errorf("offset = %v, want %v after a 50pt card move", got, tt.first)
			}
			m.Change(60)
			if got := sv.ContentOffset().Y; got != tt.second {
				t.Errorf("offset = %v, want %v", got, tt.second)
			}
			if got := translationOf(tester.Host.Presented); got != 30 {
				t.Errorf("translation = %v, want 30", got)
			}
		})
	}
}

func TestDismissal_ScrolledContentDoesNotMoveCard(t *testing.T) {
	tester := presentedTester(t)
	sv := tester.Host.NewScrollView("list", graphics.Rect{Y: 60, Width: 390, Height: 784})
	sv.SetContentOffset(graphics.Offset{Y: 200})
	tester.Transition.SetScrollView(sv)
	m := tester.Transition.Machine()

	m.Begin(card.SourceScroll, 0)
	if got := m.Session().ScrollBaselineAdjustment(); got != 200 {
		t.Fatalf("baseline = %v, want 200", got)
	}
	m.Change(150)

	if got := m.Session().CurrentTranslation(); got != 0 {
		t.Errorf("translation = %v, want 0 while content is above its top", got)
	}
	if got := translationOf(tester.Host.Presented); got != 0 {
		t.Errorf("card moved to %v", got)
	}
}

func TestDismissalStateString(t *testing.T) {
	tests := map[card.DismissalState]string{
		card.StateIdle:          "idle",
		card.StateArmed:         "armed",
		card.StateTracking:      "tracking",
		card.StateCompleting:    "completing",
		card.StateRestoring:     "restoring",
		card.DismissalState(42): "DismissalState(42)",
	}
	for s, want := range tests {
		if got := s.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", int(s), got, want)
		}
	}
}
