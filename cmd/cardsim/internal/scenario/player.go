package scenario

import (
	"fmt"
	"io"
	"time"

	"github.com/go-drift/cardsheet/pkg/card"
	"github.com/go-drift/cardsheet/pkg/graphics"
	drifttest "github.com/go-drift/cardsheet/pkg/testing"
)

const defaultDragMoves = 10

// Record is the observable state after one step.
type Record struct {
	Step        int
	Action      Action
	Elapsed     time.Duration
	Phase       card.Phase
	State       card.DismissalState
	Frame       graphics.Rect
	Translation float64
	Dim         float64
	Scale       float64
}

func (r Record) String() string {
	return fmt.Sprintf("%3d %-8s t=%6s phase=%-10s state=%-10s frame=(%.1f,%.1f %.1fx%.1f) ty=%.2f dim=%.3f scale=%.4f",
		r.Step, r.Action, r.Elapsed, r.Phase, r.State,
		r.Frame.X, r.Frame.Y, r.Frame.Width, r.Frame.Height,
		r.Translation, r.Dim, r.Scale)
}

// Player runs a scenario against an in-memory host.
type Player struct {
	scenario *Scenario
	tester   *drifttest.HostTester
	out      io.Writer
	start    time.Time
	scroll   *drifttest.FakeScrollView
	records  []Record
}

// NewPlayer creates a player writing one line per step to out. A nil out
// discards the lines. Close must be called when done.
func NewPlayer(s *Scenario, out io.Writer) *Player {
	if out == nil {
		out = io.Discard
	}
	tester := drifttest.NewSizedHostTester(s.Size(), s.Metrics(), s.Options()...)
	return &Player{
		scenario: s,
		tester:   tester,
		out:      out,
		start:    tester.Clock().Now(),
	}
}

// Tester returns the host tester the scenario runs on.
func (p *Player) Tester() *drifttest.HostTester { return p.tester }

// Records returns the state recorded after each step so far.
func (p *Player) Records() []Record { return p.records }

// Close stops animations and restores the animation clock.
func (p *Player) Close() { p.tester.Cleanup() }

// Run plays every step in order.
func (p *Player) Run() error {
	for i, step := range p.scenario.Steps {
		if err := p.play(step); err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, step.Action, err)
		}
		rec := p.record(i+1, step.Action)
		p.records = append(p.records, rec)
		if _, err := fmt.Fprintln(p.out, rec); err != nil {
			return err
		}
	}
	return nil
}

func (p *Player) play(step Step) error {
	t := p.tester
	h := t.Host
	switch step.Action {
	case ActionPresent:
		t.Transition.Present(nil)
		t.Pump()
	case ActionAdvance:
		t.PumpFor(step.Duration)
	case ActionDrag:
		moves := step.Moves
		if moves <= 0 {
			moves = defaultDragMoves
		}
		return t.DragFrom(p.point(step), graphics.Offset{Y: step.DY}, moves)
	case ActionTap:
		return t.TapAt(p.point(step))
	case ActionHeight:
		t.Transition.UpdateCustomHeight(*step.Value)
	case ActionDismiss:
		t.Transition.Dismiss(nil)
		t.Pump()
	case ActionScroll:
		if p.scroll == nil {
			p.scroll = h.NewScrollView("content", h.Presented.Frame())
			t.Transition.SetScrollView(p.scroll)
		}
		p.scroll.SetContentOffset(graphics.Offset{Y: *step.Value})
	case ActionResize:
		t.Resize(graphics.Size{Width: step.Width, Height: step.Height})
	case ActionRefresh:
		t.Transition.UpdatePresentingController()
	}
	return nil
}

// point defaults the x coordinate to the container's horizontal centre.
func (p *Player) point(step Step) graphics.Offset {
	x := step.X
	if x == 0 {
		x = p.scenario.Container.Width / 2
	}
	return graphics.Offset{X: x, Y: step.Y}
}

func (p *Player) record(n int, action Action) Record {
	h := p.tester.Host
	tr := p.tester.Transition
	return Record{
		Step:        n,
		Action:      action,
		Elapsed:     p.tester.Clock().Now().Sub(p.start),
		Phase:       tr.Phase(),
		State:       tr.Machine().State(),
		Frame:       h.Presented.Frame(),
		Translation: h.Presented.Transform().TranslateY,
		Dim:         h.Dimming.Opacity(),
		Scale:       h.Snapshot.Transform().ScaleX,
	}
}
