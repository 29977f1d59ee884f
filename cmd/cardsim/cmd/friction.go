package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-drift/cardsheet/pkg/card"
)

func init() {
	RegisterCommand(&Command{
		Name:  "friction",
		Short: "Show the card offset for raw drag distances",
		Long: `Show how far the card moves for each raw downward drag distance.

Drags up to 120pt move the card half as far. Beyond that the card follows
an arctangent curve with a small linear term. Results are rounded to device
pixels.

Flags:
  --scale N       Device pixels per point (default: 3)
  --no-friction   Disable the friction curve`,
		Usage: "cardsim friction [--scale N] [--no-friction] <raw>...",
		Run:   runFriction,
	})
}

func runFriction(args []string) error {
	scale := 3.0
	friction := true
	var raws []float64
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--scale" || strings.HasPrefix(arg, "--scale="):
			v, next, err := floatFlag(args, i, "--scale")
			if err != nil {
				return err
			}
			scale, i = v, next
		case arg == "--no-friction":
			friction = false
		default:
			v, err := strconv.ParseFloat(arg, 64)
			if err != nil {
				return fmt.Errorf("invalid translation %q: %w", arg, err)
			}
			raws = append(raws, v)
		}
	}
	if len(raws) == 0 {
		return fmt.Errorf("at least one raw translation is required\n\nUsage: cardsim friction [--scale N] <raw>...")
	}

	cfg := card.NewConfig(card.HostMetrics{DisplayScale: scale}, card.WithFriction(friction))
	fmt.Printf("%10s %10s %10s %8s\n", "raw", "offset", "scale", "dim")
	for _, raw := range raws {
		t := card.FrictionTranslation(raw, cfg)
		fmt.Printf("%10.2f %10.2f %10.4f %8.3f\n", raw, t, card.SnapshotScale(t), card.DimAlphaFor(t, cfg.DimAlpha))
	}
	return nil
}
