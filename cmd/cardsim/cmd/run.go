package cmd

import (
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"strings"

	"github.com/go-drift/cardsheet/cmd/cardsim/internal/scenario"
	"github.com/go-drift/cardsheet/pkg/errors"
	"github.com/go-drift/cardsheet/pkg/snapshot"
)

func init() {
	RegisterCommand(&Command{
		Name:  "run",
		Short: "Play a scenario file",
		Long: `Play a scenario file step by step and print the card state after each
step: elapsed simulated time, presentation phase, dismissal state, frame,
drag offset, dimming and background scale.

A scenario is YAML:

  version: v1
  container: {width: 390, height: 844, safeTop: 47, displayScale: 3}
  card: {customHeight: 500, dimAlpha: 0.5}
  steps:
    - action: present
    - action: advance
      duration: 600ms
    - action: drag
      y: 400
      dy: 1600

Actions: present, advance, drag, tap, height, scroll, resize, refresh, dismiss.

Flags:
  --png FILE   Write the composed background after the last step
  --verbose    Report contained errors with their kind and stack trace`,
		Usage: "cardsim run <scenario.yaml> [--png FILE] [--verbose]",
		Run:   runScenario,
	})
}

func runScenario(args []string) error {
	var path, pngPath string
	verbose := false
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--png":
			if i+1 >= len(args) {
				return fmt.Errorf("--png requires a file path")
			}
			pngPath = args[i+1]
			i++
		case strings.HasPrefix(arg, "--png="):
			pngPath = strings.TrimPrefix(arg, "--png=")
		case arg == "--verbose":
			verbose = true
		case strings.HasPrefix(arg, "--"):
			return fmt.Errorf("unknown flag %q", arg)
		default:
			if path != "" {
				return fmt.Errorf("only one scenario file may be given")
			}
			path = arg
		}
	}
	if path == "" {
		return fmt.Errorf("scenario file is required\n\nUsage: cardsim run <scenario.yaml> [--png FILE]")
	}

	s, err := scenario.Load(path)
	if err != nil {
		return err
	}

	errors.SetHandler(&errors.LogHandler{Verbose: verbose})
	defer errors.SetHandler(nil)

	if s.Name != "" {
		fmt.Printf("scenario: %s (%s)\n", s.Name, s.Version)
	}
	p := scenario.NewPlayer(s, os.Stdout)
	defer p.Close()
	if err := p.Run(); err != nil {
		return err
	}

	if pngPath != "" {
		if err := writeBackground(p, pngPath); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", pngPath)
	}
	return nil
}

// writeBackground composes the presenting snapshot as it currently appears
// behind the card.
func writeBackground(p *scenario.Player, path string) error {
	h := p.Tester().Host
	src := h.Snapshot.Image()
	if src == nil {
		img, err := snapshot.Capture(h.Presenting)
		if err != nil {
			return err
		}
		src = img
	}

	size := h.Container.Size
	dst := image.NewRGBA(image.Rect(0, 0, int(math.Round(size.Width)), int(math.Round(size.Height))))
	cfg := p.Tester().Transition.Config()
	snapshot.Compose(dst, src, h.Snapshot.Transform().ScaleX, h.Dimming.Opacity(), cfg.CornerRadius)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := png.Encode(f, dst); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return f.Close()
}
