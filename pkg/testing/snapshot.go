package testing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-drift/cardsheet/pkg/graphics"
)

// UpdateSnapshotsEnv names the environment variable that rewrites golden
// files instead of comparing against them.
const UpdateSnapshotsEnv = "CARDSHEET_UPDATE_SNAPSHOTS"

// TestingT is the subset of *testing.T used by MatchesFile, allowing
// test doubles to intercept failures.
type TestingT interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
	Name() string
}

// Snapshot captures the visible state of every fake view.
type Snapshot struct {
	Phase     string      `json:"phase"`
	Machine   string      `json:"machine"`
	Views     []ViewState `json:"views"`
	Indicator string      `json:"indicator,omitempty"`
}

// ViewState is one view's frame, transform and opacity, rounded to two
// decimals.
type ViewState struct {
	Name      string     `json:"name"`
	Frame     [4]float64 `json:"frame"`
	Transform [4]float64 `json:"transform"`
	Opacity   float64    `json:"opacity"`
}

// CaptureSnapshot captures the tester's views.
func (t *HostTester) CaptureSnapshot() *Snapshot {
	h := t.Host
	snap := &Snapshot{
		Phase:   t.Transition.Phase().String(),
		Machine: t.Transition.Machine().State().String(),
	}
	for _, v := range []*FakeView{h.Presented, h.Snapshot, h.Dimming} {
		snap.Views = append(snap.Views, captureView(v))
	}
	for _, sv := range h.ScrollViews {
		snap.Views = append(snap.Views, captureView(sv.FakeView))
	}
	if !h.Indicator.Hidden {
		snap.Indicator = h.Indicator.Style.String()
	}
	return snap
}

func captureView(v *FakeView) ViewState {
	f, tr := v.Frame(), v.Transform()
	return ViewState{
		Name:      v.Name,
		Frame:     [4]float64{round2(f.X), round2(f.Y), round2(f.Width), round2(f.Height)},
		Transform: [4]float64{round2(tr.ScaleX), round2(tr.ScaleY), round2(tr.TranslateX), round2(tr.TranslateY)},
		Opacity:   round2(v.Opacity()),
	}
}

// View returns the captured state of the named view.
func (s *Snapshot) View(name string) (ViewState, bool) {
	for _, v := range s.Views {
		if v.Name == name {
			return v, true
		}
	}
	return ViewState{}, false
}

// Rect returns the captured frame as a rect.
func (v ViewState) Rect() graphics.Rect {
	return graphics.Rect{X: v.Frame[0], Y: v.Frame[1], Width: v.Frame[2], Height: v.Frame[3]}
}

// MatchesFile compares this snapshot against a golden file. On mismatch it
// reports a diff and instructions for updating. When the update variable is
// set to 1, the file is silently rewritten instead.
func (s *Snapshot) MatchesFile(t TestingT, path string) {
	t.Helper()

	if os.Getenv(UpdateSnapshotsEnv) == "1" {
		if err := s.UpdateFile(path); err != nil {
			t.Fatalf("failed to update snapshot: %v", err)
		}
		return
	}

	expected, err := loadSnapshot(path)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("snapshot file missing: %s\n\nTo create: %s=1 go test -run %s", path, UpdateSnapshotsEnv, t.Name())
			return
		}
		t.Fatalf("failed to load snapshot: %v", err)
		return
	}

	if diff := s.Diff(expected); diff != "" {
		t.Errorf("snapshot mismatch: %s\n%s\n\nTo update: %s=1 go test -run %s", path, diff, UpdateSnapshotsEnv, t.Name())
	}
}

// UpdateFile writes this snapshot to path, creating directories as needed.
func (s *Snapshot) UpdateFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := marshalSnapshot(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Diff returns a line diff between other (expected) and this snapshot, or
// the empty string if they are equal.
func (s *Snapshot) Diff(other *Snapshot) string {
	a, _ := marshalSnapshot(s)
	b, _ := marshalSnapshot(other)
	if bytes.Equal(a, b) {
		return ""
	}
	return unifiedDiff(string(b), string(a))
}

func round2(v float64) float64 {
	r := math.Round(v*100) / 100
	if r == 0 {
		return 0 // no negative zero in golden files
	}
	return r
}

func loadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("invalid snapshot JSON: %w", err)
	}
	return &snap, nil
}

func marshalSnapshot(s *Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// unifiedDiff produces a simple line-oriented diff.
func unifiedDiff(expected, actual string) string {
	expectedLines := strings.Split(expected, "\n")
	actualLines := strings.Split(actual, "\n")

	var buf strings.Builder
	buf.WriteString("--- expected\n+++ actual\n")

	maxLen := max(len(expectedLines), len(actualLines))
	for i := 0; i < maxLen; i++ {
		var e, a string
		if i < len(expectedLines) {
			e = expectedLines[i]
		}
		if i < len(actualLines) {
			a = actualLines[i]
		}
		if e != a {
			if i < len(expectedLines) {
				fmt.Fprintf(&buf, "-%s\n", e)
			}
			if i < len(actualLines) {
				fmt.Fprintf(&buf, "+%s\n", a)
			}
		}
	}
	return buf.String()
}
