package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFloatFlag(t *testing.T) {
	tests := []struct {
		args    []string
		i       int
		want    float64
		next    int
		wantErr bool
	}{
		{[]string{"--scale", "2"}, 0, 2, 1, false},
		{[]string{"--scale=2.5"}, 0, 2.5, 0, false},
		{[]string{"x", "--scale", "4", "10"}, 1, 4, 2, false},
		{[]string{"--scale"}, 0, 0, 0, true},
		{[]string{"--scale", "big"}, 0, 0, 0, true},
	}
	for _, tt := range tests {
		got, next, err := floatFlag(tt.args, tt.i, "--scale")
		if (err != nil) != tt.wantErr {
			t.Errorf("floatFlag(%v) err = %v, wantErr %v", tt.args, err, tt.wantErr)
			continue
		}
		if tt.wantErr {
			continue
		}
		if got != tt.want || next != tt.next {
			t.Errorf("floatFlag(%v) = %v, %d; want %v, %d", tt.args, got, next, tt.want, tt.next)
		}
	}
}

func TestCommandsRegistered(t *testing.T) {
	for _, name := range []string{"run", "friction", "frame"} {
		if _, ok := commands[name]; !ok {
			t.Errorf("command %q not registered", name)
		}
	}
}

func TestExecute_UnknownCommand(t *testing.T) {
	err := execute([]string{"fling"})
	if err == nil || !strings.Contains(err.Error(), "unknown command") {
		t.Errorf("err = %v, want unknown command", err)
	}
}

func TestRunFriction_RequiresInput(t *testing.T) {
	if err := runFriction(nil); err == nil {
		t.Error("expected an error without raw translations")
	}
	if err := runFriction([]string{"abc"}); err == nil {
		t.Error("expected an error for a non-numeric translation")
	}
}

func TestRunFrame_UnknownFlag(t *testing.T) {
	if err := runFrame([]string{"--depth", "3"}); err == nil {
		t.Error("expected an error for an unknown flag")
	}
}

func TestRunScenario_WritesPNG(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "present.yaml")
	data := "steps:\n  - action: present\n  - action: advance\n    duration: 1s\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "bg.png")

	if err := runScenario([]string{path, "--png", out}); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(out)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Error("png is empty")
	}
}
