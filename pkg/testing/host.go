package testing

import (
	"fmt"
	"image"
	"slices"

	"golang.org/x/image/draw"

	"github.com/go-drift/cardsheet/pkg/card"
	"github.com/go-drift/cardsheet/pkg/gestures"
	"github.com/go-drift/cardsheet/pkg/graphics"
)

// SnapshotFill is the color of the solid image a FakeView renders when it
// has no SnapshotImage.
var SnapshotFill = graphics.RGB(0x3a, 0x6e, 0xa5)

// FakeContainer is a container with a settable size.
type FakeContainer struct {
	Size    graphics.Size
	SafeTop float64
	// LayoutRequests counts SetNeedsLayout calls.
	LayoutRequests int
}

func (c *FakeContainer) Bounds() graphics.Size { return c.Size }
func (c *FakeContainer) SafeAreaTop() float64  { return c.SafeTop }
func (c *FakeContainer) SetNeedsLayout()       { c.LayoutRequests++ }

// FakeView records every write the transition makes. It implements all of
// the optional view capabilities.
type FakeView struct {
	Name string

	frame        graphics.Rect
	transform    graphics.Transform
	opacity      float64
	cornerRadius float64
	image        image.Image
	recognizers  []gestures.PointerHandler

	// Frames holds every frame passed to SetFrame, in order.
	Frames []graphics.Rect
	// LayoutFrames holds the frame at each LayoutIfNeeded call.
	LayoutFrames []graphics.Rect
	// AnimationRemovals counts RemoveAllAnimations calls.
	AnimationRemovals int

	// SnapshotImage is returned by Snapshot. Nil renders a solid image the
	// size of the frame.
	SnapshotImage image.Image
	// SnapshotErr makes Snapshot fail.
	SnapshotErr error
}

// NewFakeView creates a view with an identity transform and full opacity.
func NewFakeView(name string) *FakeView {
	return &FakeView{Name: name, transform: graphics.IdentityTransform, opacity: 1}
}

func (v *FakeView) Frame() graphics.Rect { return v.frame }

func (v *FakeView) SetFrame(r graphics.Rect) {
	v.frame = r
	v.Frames = append(v.Frames, r)
}

func (v *FakeView) Transform() graphics.Transform     { return v.transform }
func (v *FakeView) SetTransform(t graphics.Transform) { v.transform = t }
func (v *FakeView) Opacity() float64                  { return v.opacity }
func (v *FakeView) SetOpacity(a float64)              { v.opacity = a }

// VisibleRect is the frame with the view's transform applied.
func (v *FakeView) VisibleRect() graphics.Rect {
	return v.transform.Apply(v.frame)
}

func (v *FakeView) LayoutIfNeeded() {
	v.LayoutFrames = append(v.LayoutFrames, v.frame)
}

func (v *FakeView) RemoveAllAnimations() { v.AnimationRemovals++ }

func (v *FakeView) SetCornerRadius(r float64) { v.cornerRadius = r }

// CornerRadius returns the last corner radius set.
func (v *FakeView) CornerRadius() float64 { return v.cornerRadius }

func (v *FakeView) SetImage(img image.Image) { v.image = img }

// Image returns the last image set.
func (v *FakeView) Image() image.Image { return v.image }

func (v *FakeView) Snapshot() (image.Image, error) {
	if v.SnapshotErr != nil {
		return nil, v.SnapshotErr
	}
	if v.SnapshotImage != nil {
		return v.SnapshotImage, nil
	}
	w, h := int(v.frame.Width), int(v.frame.Height)
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("snapshot %s: empty frame", v.Name)
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(SnapshotFill), image.Point{}, draw.Src)
	return img, nil
}

func (v *FakeView) AddRecognizer(h gestures.PointerHandler) {
	v.recognizers = append(v.recognizers, h)
}

func (v *FakeView) RemoveRecognizer(h gestures.PointerHandler) {
	for i, r := range v.recognizers {
		if r == h {
			v.recognizers = append(v.recognizers[:i], v.recognizers[i+1:]...)
			return
		}
	}
}

// Recognizers returns the attached recognizers in attach order.
func (v *FakeView) Recognizers() []gestures.PointerHandler {
	return append([]gestures.PointerHandler(nil), v.recognizers...)
}

// FakeScrollView is a scroll view whose native pan scrolls its content
// offset, including past the top edge.
type FakeScrollView struct {
	*FakeView
	offset graphics.Offset
	Inset  graphics.EdgeInsets
	native *gestures.PanRecognizer
	// Offsets holds every content offset set, by the native pan or by the
	// transition.
	Offsets []graphics.Offset
}

// NewFakeScrollView creates a scroll view whose native pan competes in
// arena.
func NewFakeScrollView(name string, arena *gestures.GestureArena) *FakeScrollView {
	sv := &FakeScrollView{FakeView: NewFakeView(name)}
	sv.native = gestures.NewPanRecognizer(arena)
	sv.native.OnUpdate = func(d gestures.DragUpdateDetails) {
		off := sv.offset
		off.Y -= d.Delta.Y
		sv.SetContentOffset(off)
	}
	sv.AddRecognizer(sv.native)
	return sv
}

func (s *FakeScrollView) ContentOffset() graphics.Offset { return s.offset }

func (s *FakeScrollView) SetContentOffset(o graphics.Offset) {
	s.offset = o
	s.Offsets = append(s.Offsets, o)
}

func (s *FakeScrollView) ContentInset() graphics.EdgeInsets { return s.Inset }

func (s *FakeScrollView) PanRecognizer() gestures.ArenaMember { return s.native }

// NativePan returns the scroll view's own pan recognizer.
func (s *FakeScrollView) NativePan() *gestures.PanRecognizer { return s.native }

// Indicator placement inside the presented view.
const (
	IndicatorTop    = 12
	IndicatorWidth  = 36
	IndicatorHeight = 13
)

// FakeIndicator records indicator state. It sits centred at the top of the
// presented view and takes taps there while visible.
type FakeIndicator struct {
	Style  card.IndicatorStyle
	Hidden bool
	Color  graphics.Color
	Styles []card.IndicatorStyle

	recognizers []gestures.PointerHandler
}

func (i *FakeIndicator) SetStyle(s card.IndicatorStyle) {
	i.Style = s
	i.Styles = append(i.Styles, s)
}

func (i *FakeIndicator) SetHidden(h bool)          { i.Hidden = h }
func (i *FakeIndicator) SetColor(c graphics.Color) { i.Color = c }

func (i *FakeIndicator) AddRecognizer(h gestures.PointerHandler) {
	i.recognizers = append(i.recognizers, h)
}

func (i *FakeIndicator) RemoveRecognizer(h gestures.PointerHandler) {
	i.recognizers = slices.DeleteFunc(i.recognizers, func(r gestures.PointerHandler) bool { return r == h })
}

// Recognizers returns the attached recognizers in attach order.
func (i *FakeIndicator) Recognizers() []gestures.PointerHandler {
	return slices.Clone(i.recognizers)
}

// Rect returns the indicator's frame in container coordinates for a
// presented view showing at presented.
func (i *FakeIndicator) Rect(presented graphics.Rect) graphics.Rect {
	return graphics.Rect{
		X:      presented.X + (presented.Width-IndicatorWidth)/2,
		Y:      presented.Y + IndicatorTop,
		Width:  IndicatorWidth,
		Height: IndicatorHeight,
	}
}

// EventLog records listener callbacks and dismissal requests as strings,
// for example "interactiveFinish(true)".
type EventLog struct {
	Events []string
	// Veto makes ShouldStartInteractiveDismiss return false.
	Veto bool
	// ShouldStartCalls counts predicate calls.
	ShouldStartCalls int
}

func (l *EventLog) add(format string, args ...any) {
	l.Events = append(l.Events, fmt.Sprintf(format, args...))
}

// Listeners returns listeners that record into l.
func (l *EventLog) Listeners() card.Listeners {
	return card.Listeners{
		OnInteractiveDismissStart: func() { l.add("interactiveStart") },
		OnInteractiveDismissFinish: func(willDismiss bool) {
			l.add("interactiveFinish(%t)", willDismiss)
		},
		OnDismissWillBegin: func() { l.add("dismissWillBegin") },
		OnDismissDidEnd:    func() { l.add("dismissDidEnd") },
		ShouldStartInteractiveDismiss: func() bool {
			l.ShouldStartCalls++
			return !l.Veto
		},
	}
}

// Sink returns a dismiss sink that records "requestDismiss" and then calls
// forward, if set.
func (l *EventLog) Sink(forward func()) card.DismissSink {
	return card.DismissFunc(func() {
		l.add("requestDismiss")
		if forward != nil {
			forward()
		}
	})
}

// Count returns how many times event was recorded.
func (l *EventLog) Count(event string) int {
	n := 0
	for _, e := range l.Events {
		if e == event {
			n++
		}
	}
	return n
}

// FakeHost is a complete set of fake collaborators for one presentation.
type FakeHost struct {
	Arena      *gestures.GestureArena
	Container  *FakeContainer
	Presented  *FakeView
	Presenting *FakeView
	Snapshot   *FakeView
	Dimming    *FakeView
	Indicator  *FakeIndicator
	Log        *EventLog
	// ScrollViews are nested in Presented, topmost last.
	ScrollViews []*FakeScrollView
}

// NewFakeHost creates fakes for a container of the given size.
func NewFakeHost(size graphics.Size, safeTop float64) *FakeHost {
	presenting := NewFakeView("presenting")
	presenting.SetFrame(graphics.RectFromSize(size))
	return &FakeHost{
		Arena:      gestures.NewGestureArena(),
		Container:  &FakeContainer{Size: size, SafeTop: safeTop},
		Presented:  NewFakeView("presented"),
		Presenting: presenting,
		Snapshot:   NewFakeView("snapshot"),
		Dimming:    NewFakeView("dimming"),
		Indicator:  &FakeIndicator{},
		Log:        &EventLog{},
	}
}

// NewScrollView creates a scroll view nested in Presented covering frame,
// in container coordinates.
func (h *FakeHost) NewScrollView(name string, frame graphics.Rect) *FakeScrollView {
	sv := NewFakeScrollView(name, h.Arena)
	sv.SetFrame(frame)
	h.ScrollViews = append(h.ScrollViews, sv)
	return sv
}

// Host returns the card host wired to the fakes. Dismissal requests go
// straight to the transition.
func (h *FakeHost) Host() *card.Host {
	return &card.Host{
		Container:  h.Container,
		Presented:  h.Presented,
		Presenting: h.Presenting,
		Snapshot:   h.Snapshot,
		Dimming:    h.Dimming,
		Indicator:  h.Indicator,
		Listeners:  h.Log.Listeners(),
		Arena:      h.Arena,
	}
}

// hitTest returns the pointer handlers under pos, innermost first.
func (h *FakeHost) hitTest(pos graphics.Offset) []gestures.PointerHandler {
	var handlers []gestures.PointerHandler
	presented := h.Presented.VisibleRect()
	if contains(presented, pos) {
		if !h.Indicator.Hidden && contains(h.Indicator.Rect(presented), pos) {
			handlers = append(handlers, h.Indicator.Recognizers()...)
		}
		shift := h.Presented.Transform().TranslateY
		for i := len(h.ScrollViews) - 1; i >= 0; i-- {
			sv := h.ScrollViews[i]
			r := sv.Frame()
			r.Y += shift
			if contains(r, pos) {
				handlers = append(handlers, sv.Recognizers()...)
			}
		}
		return append(handlers, h.Presented.Recognizers()...)
	}
	return h.Dimming.Recognizers()
}

func contains(r graphics.Rect, p graphics.Offset) bool {
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.MaxY()
}
