package gestures

import (
	"testing"
	"time"

	"github.com/go-drift/cardsheet/pkg/graphics"
)

type recordingMember struct {
	accepted []int64
	rejected []int64
}

func (m *recordingMember) AcceptGesture(p int64) { m.accepted = append(m.accepted, p) }
func (m *recordingMember) RejectGesture(p int64) { m.rejected = append(m.rejected, p) }

func TestArena_ResolveRejectsOthers(t *testing.T) {
	arena := NewGestureArena()
	a, b := &recordingMember{}, &recordingMember{}
	arena.Add(1, a)
	arena.Add(1, b)

	arena.Resolve(1, a)

	if len(a.accepted) != 1 {
		t.Errorf("winner accepted %d times, want 1", len(a.accepted))
	}
	if len(b.rejected) != 1 || len(b.accepted) != 0 {
		t.Errorf("loser accepted=%v rejected=%v, want rejected once", b.accepted, b.rejected)
	}
	if !arena.IsResolved(1) {
		t.Error("pointer should be resolved")
	}
}

func TestArena_SimultaneousPolicy(t *testing.T) {
	arena := NewGestureArena()
	a, b, c := &recordingMember{}, &recordingMember{}, &recordingMember{}
	arena.Simultaneous = func(winner, member ArenaMember) bool {
		return (winner == a && member == b) || (winner == b && member == a)
	}
	arena.Add(7, a)
	arena.Add(7, b)
	arena.Add(7, c)

	arena.Resolve(7, a)

	if len(b.accepted) != 1 {
		t.Error("simultaneous member should be accepted with the winner")
	}
	if len(c.rejected) != 1 {
		t.Error("non-simultaneous member should be rejected")
	}
	if got := len(arena.Winners(7)); got != 2 {
		t.Errorf("winners = %d, want 2", got)
	}
}

func TestArena_LateMemberJudgedAgainstWinners(t *testing.T) {
	arena := NewGestureArena()
	a, late, outsider := &recordingMember{}, &recordingMember{}, &recordingMember{}
	arena.Simultaneous = func(winner, member ArenaMember) bool { return member == late }
	arena.Add(3, a)
	arena.Resolve(3, a)

	arena.Add(3, late)
	arena.Add(3, outsider)

	if len(late.accepted) != 1 {
		t.Error("late simultaneous member should be accepted")
	}
	if len(outsider.rejected) != 1 {
		t.Error("late exclusive member should be rejected")
	}
}

func TestArena_SecondResolveLoses(t *testing.T) {
	arena := NewGestureArena()
	a, b := &recordingMember{}, &recordingMember{}
	arena.Add(1, a)
	arena.Add(1, b)
	arena.Resolve(1, a)
	arena.Resolve(1, b)

	if len(b.accepted) != 0 {
		t.Error("second resolver must not win an exclusive pointer")
	}
}

func TestArena_Release(t *testing.T) {
	arena := NewGestureArena()
	arena.Add(1, &recordingMember{})
	arena.Release(1)
	if arena.IsResolved(1) || arena.Winners(1) != nil {
		t.Error("released pointer should be forgotten")
	}
}

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func ev(id int64, phase PointerPhase, x, y float64, ms int) PointerEvent {
	return PointerEvent{
		PointerID: id,
		Position:  graphics.Offset{X: x, Y: y},
		Phase:     phase,
		Time:      t0.Add(time.Duration(ms) * time.Millisecond),
	}
}

type panLog struct {
	starts  []DragStartDetails
	updates []DragUpdateDetails
	ends    []DragEndDetails
	cancels int
}

func (l *panLog) attach(p *PanRecognizer) {
	p.OnStart = func(d DragStartDetails) { l.starts = append(l.starts, d) }
	p.OnUpdate = func(d DragUpdateDetails) { l.updates = append(l.updates, d) }
	p.OnEnd = func(d DragEndDetails) { l.ends = append(l.ends, d) }
	p.OnCancel = func() { l.cancels++ }
}

func TestPanRecognizer_VerticalDrag(t *testing.T) {
	p := NewPanRecognizer(NewGestureArena())
	var log panLog
	log.attach(p)

	p.AddPointer(ev(1, PointerPhaseDown, 100, 100, 0))
	p.HandleEvent(ev(1, PointerPhaseMove, 100, 104, 16)) // inside slop
	if len(log.starts) != 0 {
		t.Fatal("should not start inside slop")
	}
	p.HandleEvent(ev(1, PointerPhaseMove, 101, 130, 32))
	p.HandleEvent(ev(1, PointerPhaseMove, 101, 160, 48))
	p.HandleEvent(ev(1, PointerPhaseUp, 101, 160, 64))

	if len(log.starts) != 1 {
		t.Fatalf("starts = %d, want 1", len(log.starts))
	}
	if len(log.updates) != 2 {
		t.Fatalf("updates = %d, want 2", len(log.updates))
	}
	if got := log.updates[1].Translation.Y; got != 60 {
		t.Errorf("translation = %v, want 60", got)
	}
	if len(log.ends) != 1 {
		t.Fatalf("ends = %d, want 1", len(log.ends))
	}
	if log.ends[0].Velocity.Y <= 0 {
		t.Errorf("release velocity = %v, want downward", log.ends[0].Velocity.Y)
	}
}

func TestPanRecognizer_HorizontalRejects(t *testing.T) {
	p := NewPanRecognizer(NewGestureArena())
	var log panLog
	log.attach(p)

	p.AddPointer(ev(1, PointerPhaseDown, 100, 100, 0))
	p.HandleEvent(ev(1, PointerPhaseMove, 140, 102, 16))
	p.HandleEvent(ev(1, PointerPhaseMove, 140, 200, 32))

	if len(log.starts) != 0 || len(log.updates) != 0 {
		t.Error("horizontal drag must not be recognized")
	}
}

func TestPanRecognizer_ShouldBeginFalse(t *testing.T) {
	p := NewPanRecognizer(NewGestureArena())
	p.ShouldBegin = func(*PanRecognizer) bool { return false }
	var log panLog
	log.attach(p)

	p.AddPointer(ev(1, PointerPhaseDown, 0, 0, 0))
	p.HandleEvent(ev(1, PointerPhaseMove, 0, 50, 16))

	if len(log.starts) != 0 {
		t.Error("ShouldBegin=false must keep the recognizer idle")
	}
}

func TestPanRecognizer_CancelAfterStart(t *testing.T) {
	p := NewPanRecognizer(NewGestureArena())
	var log panLog
	log.attach(p)

	p.AddPointer(ev(1, PointerPhaseDown, 0, 0, 0))
	p.HandleEvent(ev(1, PointerPhaseMove, 0, 50, 16))
	p.HandleEvent(ev(1, PointerPhaseCancel, 0, 50, 32))

	if log.cancels != 1 {
		t.Errorf("cancels = %d, want 1", log.cancels)
	}
	if len(log.ends) != 0 {
		t.Error("cancel must not report an end")
	}
}

func TestPanRecognizer_DisposedIgnoresEvents(t *testing.T) {
	p := NewPanRecognizer(NewGestureArena())
	var log panLog
	log.attach(p)

	p.AddPointer(ev(1, PointerPhaseDown, 0, 0, 0))
	p.HandleEvent(ev(1, PointerPhaseMove, 0, 50, 16))
	p.Dispose()
	p.HandleEvent(ev(1, PointerPhaseMove, 0, 80, 32))
	p.HandleEvent(ev(1, PointerPhaseUp, 0, 80, 48))
	p.AddPointer(ev(2, PointerPhaseDown, 0, 0, 64))

	if len(log.updates) != 1 {
		t.Errorf("updates = %d, want 1 (none after dispose)", len(log.updates))
	}
	if len(log.ends) != 0 || log.cancels != 0 {
		t.Error("disposed recognizer must not fire end or cancel")
	}
	if !p.IsDisposed() {
		t.Error("IsDisposed should be true")
	}
}

func TestPanRecognizer_SimultaneousWithNative(t *testing.T) {
	arena := NewGestureArena()
	native := NewPanRecognizer(arena)
	shadow := NewPanRecognizer(arena)
	arena.Simultaneous = func(a, b ArenaMember) bool {
		return (a == native && b == shadow) || (a == shadow && b == native)
	}
	var nativeLog, shadowLog panLog
	nativeLog.attach(native)
	shadowLog.attach(shadow)

	down := ev(1, PointerPhaseDown, 0, 0, 0)
	native.AddPointer(down)
	shadow.AddPointer(down)
	move := ev(1, PointerPhaseMove, 0, 40, 16)
	native.HandleEvent(move)
	shadow.HandleEvent(move)

	if len(nativeLog.starts) != 1 || len(shadowLog.starts) != 1 {
		t.Fatalf("both recognizers should start, native=%d shadow=%d",
			len(nativeLog.starts), len(shadowLog.starts))
	}
	if len(shadowLog.updates) != 1 {
		t.Errorf("shadow updates = %d, want 1", len(shadowLog.updates))
	}
}

func TestTapRecognizer(t *testing.T) {
	arena := NewGestureArena()
	tap := NewTapRecognizer(arena)
	taps := 0
	tap.OnTap = func(graphics.Offset) { taps++ }

	tap.AddPointer(ev(1, PointerPhaseDown, 10, 10, 0))
	tap.HandleEvent(ev(1, PointerPhaseUp, 11, 11, 50))
	arena.Release(1)

	tap.AddPointer(ev(2, PointerPhaseDown, 10, 10, 100))
	tap.HandleEvent(ev(2, PointerPhaseMove, 10, 60, 116))
	tap.HandleEvent(ev(2, PointerPhaseUp, 10, 60, 132))

	if taps != 1 {
		t.Errorf("taps = %d, want 1", taps)
	}
}

func TestTapRecognizer_LosesToPan(t *testing.T) {
	arena := NewGestureArena()
	tap := NewTapRecognizer(arena)
	pan := NewPanRecognizer(arena)
	taps := 0
	tap.OnTap = func(graphics.Offset) { taps++ }

	down := ev(1, PointerPhaseDown, 0, 0, 0)
	tap.AddPointer(down)
	pan.AddPointer(down)
	move := ev(1, PointerPhaseMove, 0, 6, 16)
	pan.HandleEvent(move) // inside slop, pan still undecided
	tap.HandleEvent(move)
	move = ev(1, PointerPhaseMove, 0, 30, 32)
	pan.HandleEvent(move)
	tap.HandleEvent(move)
	up := ev(1, PointerPhaseUp, 0, 30, 48)
	pan.HandleEvent(up)
	tap.HandleEvent(up)

	if taps != 0 {
		t.Error("tap must lose once a pan has claimed the pointer")
	}
}

func TestPointerPhaseString(t *testing.T) {
	tests := map[PointerPhase]string{
		PointerPhaseDown:   "down",
		PointerPhaseMove:   "move",
		PointerPhaseUp:     "up",
		PointerPhaseCancel: "cancel",
		PointerPhase(9):    "PointerPhase(9)",
	}
	for phase, want := range tests {
		if got := phase.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", int(phase), got, want)
		}
	}
}
