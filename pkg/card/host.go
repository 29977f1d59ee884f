package card

import (
	"image"

	"github.com/go-drift/cardsheet/pkg/errors"
	"github.com/go-drift/cardsheet/pkg/gestures"
	"github.com/go-drift/cardsheet/pkg/graphics"
)

// Container is the host window or container view the card is laid out in.
type Container interface {
	// Bounds returns the current container size. An empty size means the
	// container is not attached yet.
	Bounds() graphics.Size
	// SafeAreaTop returns the top safe-area inset.
	SafeAreaTop() float64
	// SetNeedsLayout asks the host for a layout pass, which ends in a call
	// to Transition.ContainerDidLayout.
	SetNeedsLayout()
}

// View is the capability set the transition needs from any host view.
type View interface {
	Frame() graphics.Rect
	SetFrame(graphics.Rect)
	Transform() graphics.Transform
	SetTransform(graphics.Transform)
	Opacity() float64
	SetOpacity(float64)
}

// Snapshotter renders a static image of a view.
type Snapshotter interface {
	Snapshot() (image.Image, error)
}

// ImageView displays a static image.
type ImageView interface {
	SetImage(image.Image)
}

// LayoutView lays out its content synchronously at its current frame.
type LayoutView interface {
	LayoutIfNeeded()
}

// AnimationRemover drops any host-driven animations on a view, leaving it
// at its model values.
type AnimationRemover interface {
	RemoveAllAnimations()
}

// CornerRounder clips a view to rounded top corners.
type CornerRounder interface {
	SetCornerRadius(float64)
}

// GestureHost routes pointer events to attached recognizers.
type GestureHost interface {
	AddRecognizer(gestures.PointerHandler)
	RemoveRecognizer(gestures.PointerHandler)
}

// ScrollView is a scrollable view nested inside the presented content.
type ScrollView interface {
	GestureHost
	ContentOffset() graphics.Offset
	SetContentOffset(graphics.Offset)
	ContentInset() graphics.EdgeInsets
	// PanRecognizer returns the scroll view's own drag recognizer as it
	// competes in the transition's arena.
	PanRecognizer() gestures.ArenaMember
}

// ActivityReporter is implemented by recognizers that can tell whether they
// are in the middle of a gesture, such as gestures.PanRecognizer.
type ActivityReporter interface {
	IsActive() bool
}

// IndicatorStyle is the visual state of the drag indicator.
type IndicatorStyle int

const (
	// IndicatorArrow is the idle chevron.
	IndicatorArrow IndicatorStyle = iota
	// IndicatorLine is the flattened bar shown while dragging.
	IndicatorLine
)

func (s IndicatorStyle) String() string {
	if s == IndicatorLine {
		return "line"
	}
	return "arrow"
}

// Indicator is the drag affordance drawn at the top of the card. An
// indicator that is also a GestureHost dismisses the card when tapped.
type Indicator interface {
	SetStyle(IndicatorStyle)
	SetHidden(bool)
}

// ColoredIndicator is an Indicator whose tint can be set.
type ColoredIndicator interface {
	SetColor(graphics.Color)
}

// DismissSink tears down the presentation on the host's side.
type DismissSink interface {
	RequestDismiss()
}

// DismissFunc adapts a function to DismissSink.
type DismissFunc func()

// RequestDismiss calls f.
func (f DismissFunc) RequestDismiss() { f() }

// Listeners are optional, synchronous callbacks. Nil fields are skipped.
type Listeners struct {
	OnInteractiveDismissStart  func()
	OnInteractiveDismissFinish func(willDismiss bool)
	OnDismissWillBegin         func()
	OnDismissDidEnd            func()
	// ShouldStartInteractiveDismiss vetoes a drag before it begins.
	ShouldStartInteractiveDismiss func() bool
}

func (l *Listeners) interactiveStart() {
	if l.OnInteractiveDismissStart != nil {
		errors.Guard("card.Listeners.OnInteractiveDismissStart", l.OnInteractiveDismissStart)
	}
}

func (l *Listeners) interactiveFinish(willDismiss bool) {
	if l.OnInteractiveDismissFinish != nil {
		errors.Guard("card.Listeners.OnInteractiveDismissFinish", func() {
			l.OnInteractiveDismissFinish(willDismiss)
		})
	}
}

func (l *Listeners) dismissWillBegin() {
	if l.OnDismissWillBegin != nil {
		errors.Guard("card.Listeners.OnDismissWillBegin", l.OnDismissWillBegin)
	}
}

func (l *Listeners) dismissDidEnd() {
	if l.OnDismissDidEnd != nil {
		errors.Guard("card.Listeners.OnDismissDidEnd", l.OnDismissDidEnd)
	}
}

func (l *Listeners) shouldStart() bool {
	if l.ShouldStartInteractiveDismiss == nil {
		return true
	}
	allowed := true
	if !errors.Guard("card.Listeners.ShouldStartInteractiveDismiss", func() {
		allowed = l.ShouldStartInteractiveDismiss()
	}) {
		return false
	}
	return allowed
}

// Host bundles every collaborator of one presented/presenting pair.
// Only Container and Presented are required for anything to happen;
// every other field may be nil.
type Host struct {
	Container Container
	// Presented is the card content.
	Presented View
	// Presenting is the screen beneath; it is snapshotted, never moved.
	Presenting View
	// Snapshot displays the presenting snapshot and carries the scale effect.
	Snapshot View
	// Dimming is the overlay whose opacity darkens the background.
	Dimming   View
	Indicator Indicator
	Dismiss   DismissSink
	Listeners Listeners
	// Arena is shared with the host's own recognizers, in particular the
	// nested scroll view's pan. Nil creates a private arena.
	Arena *gestures.GestureArena
}
