package cmd

import (
	"fmt"
	"strings"

	"github.com/go-drift/cardsheet/pkg/card"
	"github.com/go-drift/cardsheet/pkg/graphics"
)

func init() {
	RegisterCommand(&Command{
		Name:  "frame",
		Short: "Show the presented card frame for a container",
		Long: `Show the frame the card settles at, the offscreen frame it enters from,
and the scale applied to the presenting content.

Flags:
  --width W          Container width (default: 390)
  --height H         Container height (default: 844)
  --custom-height C  Content height; clamped to the container
  --safe-top T       Top safe-area inset (default: 47)`,
		Usage: "cardsim frame [--width W] [--height H] [--custom-height C] [--safe-top T]",
		Run:   runFrame,
	})
}

func runFrame(args []string) error {
	size := graphics.Size{Width: 390, Height: 844}
	safeTop := 47.0
	var opts []card.Option

	for i := 0; i < len(args); i++ {
		name, _, _ := strings.Cut(args[i], "=")
		var (
			v   float64
			err error
		)
		switch name {
		case "--width", "--height", "--custom-height", "--safe-top":
			v, i, err = floatFlag(args, i, name)
			if err != nil {
				return err
			}
		default:
			return fmt.Errorf("unknown flag %q\n\nUsage: cardsim frame [--width W] [--height H] [--custom-height C] [--safe-top T]", args[i])
		}
		switch name {
		case "--width":
			size.Width = v
		case "--height":
			size.Height = v
		case "--custom-height":
			opts = append(opts, card.WithCustomHeight(v))
		case "--safe-top":
			safeTop = v
		}
	}

	cfg := card.NewConfig(card.HostMetrics{SafeAreaTop: safeTop}, opts...)
	frame, rangeErr := card.PresentedFrame(size, cfg)
	if rangeErr != nil {
		fmt.Printf("warning: %v\n", rangeErr)
	}
	off := card.OffscreenFrame(size, frame)
	fmt.Printf("presented:  x=%.2f y=%.2f w=%.2f h=%.2f\n", frame.X, frame.Y, frame.Width, frame.Height)
	fmt.Printf("offscreen:  x=%.2f y=%.2f w=%.2f h=%.2f\n", off.X, off.Y, off.Width, off.Height)
	fmt.Printf("background: scale=%.4f dim=%.2f\n", card.PresentingScaleFactor(size, cfg), cfg.DimAlpha)
	return nil
}
